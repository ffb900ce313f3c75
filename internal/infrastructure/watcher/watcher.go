package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// EventHandler processes one newly created audio file
type EventHandler func(ctx context.Context, path string) error

// Options tunes a Watcher
type Options struct {
	// Extensions lists accepted file extensions without the dot
	Extensions []string
	// MaxConcurrent bounds how many files are handled at once
	MaxConcurrent int
	// SettleDelay is waited after a create event so the writer can finish
	SettleDelay time.Duration
}

// Watcher hands every audio file created in a directory to a handler
type Watcher struct {
	dir        string
	handler    EventHandler
	logger     *zap.Logger
	watcher    *fsnotify.Watcher
	extensions map[string]struct{}
	settle     time.Duration
	semaphore  chan struct{}
	wg         sync.WaitGroup
}

// New creates a watcher on dir
func New(dir string, handler EventHandler, opts Options, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 1
	}
	if opts.SettleDelay < 0 {
		opts.SettleDelay = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	extensions := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		extensions[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}

	return &Watcher{
		dir:        dir,
		handler:    handler,
		logger:     logger,
		watcher:    fsw,
		extensions: extensions,
		settle:     opts.SettleDelay,
		semaphore:  make(chan struct{}, opts.MaxConcurrent),
	}, nil
}

// Start blocks until ctx is done, waiting for in-flight handlers before it
// returns
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info("👀 Watching for audio files",
		zap.String("dir", w.dir),
		zap.Int("max_concurrent", cap(w.semaphore)),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Waiting for ongoing processing to complete...")
			w.wg.Wait()
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				w.wg.Wait()
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !w.Accepts(event.Name) {
				w.logger.Debug("Ignoring file", zap.String("path", event.Name))
				continue
			}

			w.logger.Info("🎧 New audio detected", zap.String("path", event.Name))

			select {
			case w.semaphore <- struct{}{}:
			case <-ctx.Done():
				w.wg.Wait()
				return ctx.Err()
			}

			w.wg.Add(1)
			go func(path string) {
				defer w.wg.Done()
				defer func() { <-w.semaphore }()

				if w.settle > 0 {
					select {
					case <-time.After(w.settle):
					case <-ctx.Done():
						return
					}
				}

				if err := w.handler(ctx, path); err != nil {
					w.logger.Error("❌ Failed to process file", zap.String("path", path), zap.Error(err))
				}
			}(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				w.wg.Wait()
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("Watcher error", zap.Error(err))
		}
	}
}

// Stop closes the file watcher
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// Accepts reports whether path has an accepted extension. Hidden files are
// skipped since editors and uploaders use them as temp files.
func (w *Watcher) Accepts(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
	_, ok := w.extensions[ext]
	return ok
}
