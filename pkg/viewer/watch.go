package viewer

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/taigrr/vitrine/pkg/sections"
)

// reloadDelay coalesces the bursts of events editors produce on save.
const reloadDelay = 100 * time.Millisecond

// WatchStory reloads the story at path whenever it changes on disk and
// sends each successfully parsed version to out. It returns when ctx is
// done. The parent directory is watched so that editors replacing the file
// by rename are still seen.
func WatchStory(ctx context.Context, path string, out chan<- *sections.Story, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve story path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer.Reset(reloadDelay)
			}

		case <-timer.C:
			story, err := sections.LoadStory(abs)
			if err != nil {
				log.Warn("story reload failed", zap.String("path", abs), zap.Error(err))
				continue
			}
			log.Info("story reloaded", zap.String("path", abs), zap.Int("sections", len(story.Sections)))
			select {
			case out <- story:
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("story watcher error", zap.Error(err))
		}
	}
}
