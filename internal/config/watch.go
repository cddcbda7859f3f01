package config

import (
	"context"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch re-loads the config file whenever it changes and invokes onChange
// with the new Config (env overlay applied). It blocks until ctx is
// cancelled. Editors often replace files atomically, so rename and remove
// events trigger a re-add of the watch target.
func Watch(ctx context.Context, path string, onChange func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				// Give the editor a moment to finish the atomic replace.
				time.Sleep(100 * time.Millisecond)
				if _, err := os.Stat(path); os.IsNotExist(err) {
					continue
				}
				_ = watcher.Add(path)
			}
			cfg, err := Load(path)
			if err != nil {
				continue
			}
			FromEnv(&cfg)
			onChange(cfg)
		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		}
	}
}
