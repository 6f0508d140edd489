// Package watch re-runs a callback when Composer regenerates the autoload
// manifests. Events inside the debounce window are coalesced so a full
// dump-autoload, which rewrites several files, triggers one callback.
package watch

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/quantmind-br/autoload-priority/internal/utils"
)

// DefaultDebounce is used when Config.Debounce is not positive
const DefaultDebounce = 300 * time.Millisecond

// Config holds the parameters for a Watcher
type Config struct {
	// Dir is the directory to watch, usually vendor/composer
	Dir string

	// Files are base names inside Dir that trigger the callback.
	// Empty means every file in Dir.
	Files []string

	// Debounce is the quiet period after the last event before the callback fires
	Debounce time.Duration

	// OnChange receives the sorted base names that changed. Errors are logged
	// and do not stop the watcher.
	OnChange func(ctx context.Context, changed []string) error

	Logger *utils.Logger
}

// Watcher fires a debounced callback when watched files change.
// Run must be called exactly once.
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	logger   *utils.Logger
	started  atomic.Bool
}

// New creates a Watcher and registers cfg.Dir with fsnotify
func New(cfg Config) (*Watcher, error) {
	if cfg.Dir == "" {
		return nil, errors.New("watch: directory is required")
	}
	if !utils.DirExists(cfg.Dir) {
		return nil, fmt.Errorf("watch: directory %s does not exist", cfg.Dir)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	logger := cfg.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(cfg.Dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch: add directory %q: %w", cfg.Dir, err)
	}

	files := make(map[string]bool, len(cfg.Files))
	for _, f := range cfg.Files {
		files[filepath.Base(f)] = true
	}

	return &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		files:    files,
		debounce: debounce,
		logger:   logger.WithComponent("watch"),
	}, nil
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks.
// It returns nil on cancellation and an error when the watcher breaks.
// An in-flight callback is waited for before Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		busy    sync.Mutex
	)

	rearm := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil && ctx.Err() == nil {
			timer.Reset(w.debounce)
		}
	}

	// schedule must be called with mu held
	schedule := func() {
		if timer == nil {
			timer = time.AfterFunc(w.debounce, func() { w.fire(ctx, &mu, &busy, pending, rearm) })
			return
		}
		timer.Reset(w.debounce)
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()

		// wait for an in-flight callback
		busy.Lock()
		defer busy.Unlock()

		if err := w.fsw.Close(); err != nil {
			w.logger.Warn().Err(err).Msg("Failed to close fsnotify watcher")
		}
	}()

	w.logger.Info().
		Str("dir", w.cfg.Dir).
		Dur("debounce", w.debounce).
		Msg("Watching for manifest changes")

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}

			name := filepath.Base(evt.Name)
			if !w.relevant(evt, name) {
				continue
			}

			w.logger.Debug().
				Str("file", name).
				Str("op", evt.Op.String()).
				Msg("Manifest changed")

			mu.Lock()
			pending[name] = struct{}{}
			schedule()
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				// Events were dropped; assume every watched file changed.
				w.logger.Warn().Msg("Event queue overflowed, re-running for all files")
				mu.Lock()
				for f := range w.files {
					pending[f] = struct{}{}
				}
				schedule()
				mu.Unlock()
				continue
			}
			w.logger.Warn().Err(err).Msg("fsnotify error")
		}
	}
}

// fire drains pending and runs the callback. When a previous callback is
// still running the timer is re-armed so the pending set is not lost.
func (w *Watcher) fire(ctx context.Context, mu, busy *sync.Mutex, pending map[string]struct{}, rearm func()) {
	if ctx.Err() != nil {
		return
	}
	if !busy.TryLock() {
		w.logger.Debug().Msg("Previous run still in progress, postponing")
		rearm()
		return
	}
	defer busy.Unlock()

	mu.Lock()
	if len(pending) == 0 {
		mu.Unlock()
		return
	}
	changed := slices.Sorted(maps.Keys(pending))
	clear(pending)
	mu.Unlock()

	if w.cfg.OnChange == nil || ctx.Err() != nil {
		return
	}
	if err := w.cfg.OnChange(ctx, changed); err != nil {
		w.logger.Error().Err(err).Strs("changed", changed).Msg("Callback failed")
	}
}

// relevant filters out chmod-only events and files outside the watch list.
// Temp files written next to a manifest are ignored by name.
func (w *Watcher) relevant(evt fsnotify.Event, name string) bool {
	if evt.Op == fsnotify.Chmod {
		return false
	}
	if len(w.files) == 0 {
		return true
	}
	return w.files[name]
}
