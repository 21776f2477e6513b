package config

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/dshills/nescassist/internal/config/watcher"
	"github.com/dshills/nescassist/internal/logging"
)

// Watch reloads the config file at path whenever it changes and passes
// the result to fn. A reload that fails to parse or validate is passed as
// an error; the caller keeps its previous configuration. Watch blocks
// until ctx is done.
func Watch(ctx context.Context, path string, fn func(*Config, error)) error {
	logger := logging.FromContext(ctx)
	w, err := watcher.New(watcher.WithLogger(logger))
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		return err
	}
	return w.Run(ctx, func(changed string) {
		cfg, err := Load(changed)
		logReload(logger, changed, err)
		fn(cfg, err)
	})
}

func logReload(logger *log.Logger, path string, err error) {
	if err != nil {
		logger.Warn("config reload failed", logging.FieldPath, path, logging.FieldError, err)
		return
	}
	logger.Info("config reloaded", logging.FieldPath, path)
}
