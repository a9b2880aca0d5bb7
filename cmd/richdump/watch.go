package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watch calls changed each time fname is written until ctx is done. The
// directory is watched so that editors replacing the file are noticed.
// Errors from changed are logged and watching continues.
func watch(ctx context.Context, log *zap.Logger, fname string, changed func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create file watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(fname)
	if err != nil {
		return fmt.Errorf("unable to locate %s: %w", fname, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("unable to watch %s: %w", fname, err)
	}
	log.Info("Watching for changes", zap.String("file", abs))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Debug("File changed", zap.Stringer("op", event.Op))
			if err := changed(); err != nil {
				log.Warn("Unable to show changed file", zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("File watcher error", zap.Error(err))
		}
	}
}
