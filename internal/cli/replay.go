package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/dshills/nescassist/internal/config"
	"github.com/dshills/nescassist/internal/config/watcher"
	"github.com/dshills/nescassist/internal/logging"
	"github.com/dshills/nescassist/internal/replay"
)

func newReplayCommand(g *globals) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "replay SCRIPT...",
		Short: "Run keystroke scripts",
		Long: `Run each YAML keystroke SCRIPT through an editing session and print the
final buffer with | at the caret. Failed expect steps are listed and make
the command fail.

With --watch the scripts run again whenever a script or the config file
changes, until interrupted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			runner := replay.NewRunner(replay.WithConfig(g.cfg), replay.WithLogger(logging.FromContext(ctx)))
			if !watch {
				return runScripts(ctx, out, runner, args)
			}
			return watchScripts(ctx, out, runner, g.configPath, args)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "re-run when a script or the config file changes")
	return cmd
}

// runScripts runs every script and reports ErrExpectationsFailed if any
// expectation did not hold.
func runScripts(ctx context.Context, out io.Writer, runner *replay.Runner, paths []string) error {
	failed := 0
	for _, path := range paths {
		s, err := replay.Load(path)
		if err != nil {
			return err
		}
		res, err := runner.Run(ctx, s)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		name := res.Name
		if name == "" {
			name = path
		}
		status := "ok"
		if !res.Passed() {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(out, "--- %s: %s (%d steps)\n", status, name, res.Steps)
		for _, m := range res.Mismatches {
			fmt.Fprintf(out, "    %s\n", m)
		}
		fmt.Fprintln(out, res.Output)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scripts: %w", failed, len(paths), ErrExpectationsFailed)
	}
	return nil
}

// watchScripts runs the scripts, then again after every change to them or
// to the config file, until ctx is done. A config file that fails to
// reload leaves the previous configuration in place.
func watchScripts(ctx context.Context, out io.Writer, runner *replay.Runner, configPath string, paths []string) error {
	logger := logging.FromContext(ctx)
	w, err := watcher.New(watcher.WithLogger(logger))
	if err != nil {
		return err
	}
	defer w.Close()

	for _, p := range paths {
		if err := w.Add(p); err != nil {
			return err
		}
	}

	var mu sync.Mutex
	run := func() {
		mu.Lock()
		defer mu.Unlock()
		err := runScripts(ctx, out, runner, paths)
		if err != nil && !errors.Is(err, ErrExpectationsFailed) {
			logger.Error("replay failed", logging.FieldError, err)
		}
	}
	run()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	if configPath != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := config.Watch(ctx, configPath, func(cfg *config.Config, err error) {
				if err != nil {
					return
				}
				mu.Lock()
				runner.SetConfig(cfg)
				mu.Unlock()
				run()
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("config watch stopped", logging.FieldPath, configPath, logging.FieldError, err)
			}
		}()
	}

	err = w.Run(ctx, func(string) { run() })
	cancel()
	wg.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
