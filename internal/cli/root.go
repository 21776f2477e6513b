// Package cli provides the Cobra command structure for nescassist.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dshills/nescassist/internal/assist"
	"github.com/dshills/nescassist/internal/config"
	"github.com/dshills/nescassist/internal/engine/buffer"
	"github.com/dshills/nescassist/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globals holds what the persistent flags resolve to.
type globals struct {
	configPath string
	logLevel   string
	cfg        *config.Config
	logger     *log.Logger
}

// assistant builds an assistant from the loaded configuration.
func (g *globals) assistant() *assist.Assistant {
	return assist.New(assist.WithConfig(g.cfg), assist.WithLogger(g.logger))
}

// NewRootCommand creates the root nescassist command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	g := &globals{cfg: config.Default(), logger: logging.Default()}

	rootCmd := &cobra.Command{
		Use:   "nescassist",
		Short: "Structural editing assistant for nesC sources",
		Long: `nescassist answers the structural questions an editor asks while nesC code
is typed: which bracket matches which, how deep a line should be indented,
how a pasted block should be shifted, and where auto-inserted closers go.

The subcommands expose these services on files and on scripted keystrokes.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(g.configPath)
			if err != nil {
				return err
			}
			g.cfg = cfg
			level := cfg.Log.Level
			if cmd.Flags().Changed("log-level") {
				level = g.logLevel
			}
			logging.SetLevel(level)
			g.logger = logging.Default()
			cmd.SetContext(logging.WithLogger(cmd.Context(), g.logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", config.DefaultLogLevel,
		"log level: debug, info, warn, error")

	rootCmd.AddCommand(newTokensCommand(g))
	rootCmd.AddCommand(newMatchCommand(g))
	rootCmd.AddCommand(newIndentCommand(g))
	rootCmd.AddCommand(newReindentCommand(g))
	rootCmd.AddCommand(newReplayCommand(g))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// readDocument loads path into a snapshot, keeping its line endings.
func readDocument(path string) (*buffer.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	text := string(data)
	return buffer.NewBufferFromString(text, buffer.WithDetectedLineEnding(text)).Snapshot(), nil
}
