// Package watch reruns a callback when any of a set of files changes.
//
// Parent directories are watched rather than the files themselves, so
// editors that save by renaming a temporary file over the original are
// still noticed. Bursts of events are collapsed by a debounce period.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Luna88k/msbuild/errors"
	"github.com/Luna88k/msbuild/logger"
)

// DefaultDebounce collapses rapid successive saves into one run.
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc is invoked after a debounced change. Its error is logged
// and watching continues.
type ChangeFunc func(ctx context.Context, changed string) error

// Watcher watches a fixed set of files.
type Watcher struct {
	files    map[string]struct{}
	fs       *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.SugaredLogger
}

// New watches paths. A debounce <= 0 uses DefaultDebounce.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.NewInvalidArgumentError("no files to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		files:    make(map[string]struct{}, len(paths)),
		fs:       fsw,
		debounce: debounce,
		logger:   logger.ComponentLogger("watch"),
	}
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", p)
		}
		w.files[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to watch directory %s", dir)
		}
		dirs[dir] = struct{}{}
	}
	return w, nil
}

// Run blocks until ctx is done, calling onChange after each debounced
// burst of writes to a watched file. The watcher is closed on return.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	defer w.fs.Close()

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debugw("Change detected",
				logger.FieldFile, event.Name,
				"op", event.Op.String())

			pending = event.Name
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := onChange(ctx, pending); err != nil {
				w.logger.Errorw("Change handler failed",
					logger.FieldFile, pending,
					logger.FieldError, err.Error())
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("Watcher error", logger.FieldError, err.Error())
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}
