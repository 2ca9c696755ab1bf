package corpus

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/advisor-cli/internal/logger"
)

// debounceWindow collapses editor write bursts into one reload.
const debounceWindow = 500 * time.Millisecond

// Watcher observes the corpus file and triggers a reload callback
// when it changes. This is an administrative path: watch failures are
// logged and never fatal to the serving process.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	reload  func(ctx context.Context) error
}

// NewWatcher creates a watcher for the corpus file at path. The
// reload callback is invoked after edits settle.
func NewWatcher(path string, reload func(ctx context.Context) error) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory rather than the file so that atomic
	// rename-in-place saves (the common editor pattern) are seen.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	return &Watcher{path: path, watcher: fw, reload: reload}, nil
}

// Run processes filesystem events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("Corpus change detected: %s", event.Op)
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerC = timer.C
			} else {
				timer.Reset(debounceWindow)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			logger.Info("Corpus changed, reloading knowledge base")
			if err := w.reload(ctx); err != nil {
				logger.Warn("Corpus reload failed: %v", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Corpus watcher error: %v", err)
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
