package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/nescassist/internal/logging"
)

func newReindentCommand(g *globals) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "reindent FILE",
		Short: "Reindent a file",
		Long: `Reindent FILE by pasting it back line by line, so that every line gets
the indentation its context asks for. Lines inside block comments are kept
as they are. The result is printed unless --write is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			doc, err := readDocument(path)
			if err != nil {
				return err
			}
			text, err := g.assistant().Reindent(doc)
			if err != nil {
				return err
			}
			if !write {
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(text), info.Mode().Perm()); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			logging.FromContext(cmd.Context()).Info("reindented", logging.FieldPath, path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to FILE")
	return cmd
}
