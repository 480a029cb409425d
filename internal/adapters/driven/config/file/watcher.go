package file

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kisanmitra/formbridge/internal/logger"
)

// debounceWindow coalesces the write bursts editors and config
// management tools produce for a single logical change.
const debounceWindow = 250 * time.Millisecond

// Watch re-loads the config file whenever it changes and calls
// onReload with each successfully parsed result. Parse and validation
// failures are logged and skipped; the previous configuration stays in
// effect. Watch blocks until ctx is done.
//
// The parent directory is watched rather than the file itself so
// rename-based atomic writes (the common editor save strategy) keep
// working after the original inode disappears.
func Watch(ctx context.Context, path string, onReload func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return err
	}
	target := filepath.Clean(path)

	var timer *time.Timer
	reload := func() {
		cfg, err := Load(path)
		if err != nil {
			logger.Warn("config reload skipped: %v", err)
			return
		}
		logger.Info("config reloaded from %s", path)
		onReload(cfg)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, reload)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher: %v", err)
		}
	}
}
