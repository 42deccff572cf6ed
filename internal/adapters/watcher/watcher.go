package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/evolux/internal/core/domain"
	"go.trai.ch/evolux/internal/core/ports"
)

const defaultWindow = 250 * time.Millisecond

// Reloader watches a cache directory for changed implementation files and
// reports the affected call sites, debounced.
type Reloader struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	logger    ports.Logger
	base      string
}

// New creates a Reloader for the cache directory at base. onChange receives
// the call sites whose cached files changed within one debounce window.
func New(base string, window time.Duration, logger ports.Logger, onChange func(sites []domain.CallSite)) (*Reloader, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if window <= 0 {
		window = defaultWindow
	}

	return &Reloader{
		fsWatcher: fsWatcher,
		debouncer: NewDebouncer(window, func(paths []string) {
			onChange(sitesFromPaths(paths))
		}),
		logger: logger,
		base:   base,
	}, nil
}

// Start begins watching. The cache directory must exist.
func (r *Reloader) Start(ctx context.Context) error {
	if err := r.fsWatcher.Add(r.base); err != nil {
		return err
	}
	go r.processEvents(ctx)
	return nil
}

// Stop flushes pending notifications and releases the watcher.
func (r *Reloader) Stop() error {
	r.debouncer.Flush()
	return r.fsWatcher.Close()
}

func (r *Reloader) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-r.fsWatcher.Events:
			if !ok {
				return
			}
			if !r.relevant(event) {
				continue
			}
			r.debouncer.Add(event.Name)
		case err, ok := <-r.fsWatcher.Errors:
			if !ok {
				return
			}
			r.logger.Warn("cache watch error", "error", err.Error())
		}
	}
}

// relevant filters for mutations of cached implementation files, skipping
// the temp files used for atomic writes.
func (r *Reloader) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".evolux-") {
		return false
	}
	return filepath.Ext(name) == ".py"
}

// sitesFromPaths recovers call sites from cached file names. The module
// part keeps its underscored form; matching against live handles goes
// through CallSite.Key, which is unaffected.
func sitesFromPaths(paths []string) []domain.CallSite {
	sites := make([]domain.CallSite, 0, len(paths))
	for _, path := range paths {
		stem := strings.TrimSuffix(filepath.Base(path), ".py")
		idx := strings.Index(stem, "__")
		if idx < 0 {
			continue
		}
		sites = append(sites, domain.CallSite{Module: stem[:idx], Function: stem[idx+2:]})
	}
	return sites
}
