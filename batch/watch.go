package batch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/eawag-rdm/lucparser/scanner"
)

const (
	// settle is how long to wait after a write so that a burst of writes
	// from one save is read as a whole.
	settle = 100 * time.Millisecond
	// unchangedTTL bounds how long identical content is skipped.
	unchangedTTL = time.Hour
)

type watchSet struct {
	files   map[string]bool // files named explicitly
	dirs    map[string]bool // directories whose query files are watched
	targets *scanner.Scanner
}

func (w *watchSet) accepts(name string) bool {
	name = filepath.Clean(name)
	if w.files[name] {
		return true
	}
	return w.dirs[filepath.Dir(name)] && w.targets.IsTargetFile(name)
}

func newTargets() *scanner.Scanner {
	return scanner.New("", scanner.DefaultExtensions...)
}

// add registers path with the watcher. Directories are watched
// recursively, single files through their parent directory so that
// editors replacing the file do not drop the watch.
func (w *watchSet) add(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		w.files[filepath.Clean(path)] = true
		return watcher.Add(filepath.Dir(path))
	}

	return filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			return nil
		}
		if p != path && strings.HasPrefix(fi.Name(), ".") {
			return filepath.SkipDir
		}
		w.dirs[filepath.Clean(p)] = true
		return watcher.Add(p)
	})
}

// Watch processes query files below paths again each time they are
// written and passes every result to handle. It returns when ctx is done.
func Watch(ctx context.Context, logger *zap.Logger, p Processor, paths []string, handle func(*FileResult)) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	set := &watchSet{
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		targets: newTargets(),
	}
	for _, path := range paths {
		if err := set.add(watcher, path); err != nil {
			return fmt.Errorf("error adding %s to watcher: %w", path, err)
		}
	}
	logger.Info("Watching for changes", zap.Strings("paths", paths))

	cache := newDigestCache(unchangedTTL)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !set.accepts(event.Name) {
				continue
			}

			time.Sleep(settle)
			data, err := os.ReadFile(event.Name)
			if err != nil {
				logger.Error("Error reading file", zap.String("file", event.Name), zap.Error(err))
				continue
			}
			if !cache.changed(event.Name, data) {
				logger.Debug("Skipping unchanged file", zap.String("file", event.Name))
				continue
			}

			result, err := ProcessLines(p, event.Name, bytes.NewReader(data))
			if err != nil {
				cache.forget(event.Name)
				logger.Error("Error processing file", zap.String("file", event.Name), zap.Error(err))
				continue
			}
			handle(result)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", zap.Error(err))
		}
	}
}
