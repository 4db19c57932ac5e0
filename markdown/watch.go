package markdown

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the bursts of events editors produce on save.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports writes to a single file. It watches the parent directory
// so that editors which save by renaming a new file into place are seen too.
type Watcher struct {
	path     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// NewWatcher starts watching path. Events that arrive before Run is called
// are delivered once it starts.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	return &Watcher{path: abs, debounce: debounce, fsw: fsw}, nil
}

// Run calls onChange after each settled burst of writes until ctx is done.
// Errors from onChange are logged and do not stop the watch.
func (w *Watcher) Run(ctx context.Context, onChange func() error) error {
	defer w.fsw.Close()

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			log.Debug("change", "path", ev.Name, "op", ev.Op)
			if timer == nil {
				timer = time.AfterFunc(w.debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(w.debounce)
			}
		case <-fire:
			if err := onChange(); err != nil {
				log.Error("render failed", "path", w.path, "err", err)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", w.path, err)
		}
	}
}
