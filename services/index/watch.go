package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/meghashyamc/docsearch/textsafe"
)

// Watch rebuilds the index from rootPath whenever its pages change, once the
// tree has been quiet for delay. It blocks until ctx is cancelled.
func (s *Service) Watch(ctx context.Context, rootPath string, delay time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.logger.Error("could not create content watcher", "err", err.Error())
		return fmt.Errorf("could not create content watcher: %w", err)
	}
	defer watcher.Close()

	info, err := os.Stat(rootPath)
	if err != nil {
		s.logger.Error("could not stat content path", "path", rootPath, "err", err.Error())
		return fmt.Errorf("could not stat content path: %w", err)
	}

	isRelevant := func(event fsnotify.Event) bool {
		return s.isRelevantEvent(watcher, event)
	}
	if info.IsDir() {
		if err := s.addWatchTree(watcher, rootPath); err != nil {
			return err
		}
	} else {
		// editors often replace files, so watch the parent and filter by name
		listPath := filepath.Clean(rootPath)
		if err := watcher.Add(filepath.Dir(listPath)); err != nil {
			s.logger.Error("could not watch directory", "path", filepath.Dir(listPath), "err", err.Error())
			return fmt.Errorf("could not watch directory %s: %w", filepath.Dir(listPath), err)
		}
		isRelevant = func(event fsnotify.Event) bool {
			return filepath.Clean(event.Name) == listPath && event.Op != fsnotify.Chmod
		}
	}

	rebuild := textsafe.NewDebouncer(func(trigger string) {
		s.logger.Info("content changed, rebuilding index", "trigger", trigger)
		if _, err := s.RebuildFrom(rootPath); err != nil {
			s.logger.Error("rebuild after content change failed", "err", err.Error())
		}
	}, delay)
	defer rebuild.Stop()

	s.logger.Info("watching content for changes", "root", rootPath, "delay", delay.String())

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("content watcher stopped", "reason", ctx.Err())
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRelevant(event) {
				continue
			}
			rebuild.Call(event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("content watcher error", "err", err.Error())
		}
	}
}

func (s *Service) isRelevantEvent(watcher *fsnotify.Watcher, event fsnotify.Event) bool {
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := s.addWatchTree(watcher, event.Name); err != nil {
				s.logger.Warn("could not watch new directory", "path", event.Name, "err", err.Error())
			}
			return true
		}
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		// removed directories carry no extension
		return isPageFile(event.Name) || filepath.Ext(event.Name) == ""
	}

	return isPageFile(event.Name) && (event.Has(fsnotify.Create) || event.Has(fsnotify.Write))
}

func (s *Service) addWatchTree(watcher *fsnotify.Watcher, rootPath string) error {
	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			s.logger.Error("could not walk through directory", "path", path, "err", err.Error())
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") && path != rootPath {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			s.logger.Error("could not watch directory", "path", path, "err", err.Error())
			return fmt.Errorf("could not watch directory %s: %w", path, err)
		}
		return nil
	})
}
