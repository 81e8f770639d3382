// Package dirwatcher keeps an input directory under watch and converts
// transport files as they arrive. New .xpt files are debounced so that a
// copy-in-progress settles before its batch starts.
package dirwatcher

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/sasport/internal/domain"
	"github.com/bft-labs/sasport/internal/ports"
)

// ConvertFunc runs a batch over the given transport file paths.
type ConvertFunc func(ctx context.Context, paths []string)

// Config holds configuration options for the directory watcher.
type Config struct {
	// Debounce is the delay to wait after a file event before converting.
	// Default: 500 milliseconds
	Debounce time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{Debounce: 500 * time.Millisecond}
}

// Watcher monitors one directory for new transport files.
type Watcher struct {
	dir      string
	debounce time.Duration
	convert  ConvertFunc
	logger   ports.Logger

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer

	// convertMu serializes batches: a flush that fires while a previous
	// batch is still converting waits for it to finish.
	convertMu sync.Mutex
}

// New creates a watcher over dir that hands settled files to convert.
func New(dir string, cfg Config, convert ConvertFunc, logger ports.Logger) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}
	return &Watcher{
		dir:      dir,
		debounce: cfg.Debounce,
		convert:  convert,
		logger:   logger,
		pending:  make(map[string]struct{}),
	}
}

// Run watches until ctx is canceled. Pending files that have not settled
// when ctx ends are dropped; the next run picks them up from the directory.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return err
	}

	w.logger.Info("watching for transport files", ports.String("dir", w.dir))

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			name := filepath.Base(ev.Name)
			if strings.HasPrefix(name, ".") || !domain.HasSourceExtension(name) {
				continue
			}
			w.note(ctx, ev.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", ports.Err(err))
		}
	}
}

// note records a file event and (re)arms the debounce timer.
func (w *Watcher) note(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.flush(ctx)
	})
}

// flush hands the settled files to the converter in a deterministic order.
func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	sort.Strings(paths)

	w.convertMu.Lock()
	defer w.convertMu.Unlock()

	if ctx.Err() != nil {
		return
	}
	w.convert(ctx, paths)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
