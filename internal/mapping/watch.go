package mapping

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports changes to a mapping file. It watches the parent
// directory because editors commonly replace files by rename.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *zap.Logger

	changes chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

// Watch starts watching path and returns once the watch is registered.
func Watch(path string, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("resolve mapping path: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		logger:  logger,
		changes: make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Changes delivers one value per burst of file events. The channel is
// closed when the watcher stops.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher and waits for its loop to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.doneCh)
	defer close(w.changes)

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("mapping file changed", zap.String("path", w.path), zap.String("op", event.Op.String()))
			select {
			case w.changes <- struct{}{}:
			default:
				// A change is already pending.
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("mapping watcher error", zap.Error(err))
		}
	}
}
