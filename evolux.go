// Package evolux wraps incomplete Python functions and evolves working
// implementations for them on demand. A wrapped call site runs its cached
// or freshly synthesized implementation in a subprocess sandbox; a missing
// implementation, or a qualifying runtime failure, triggers a synthesis
// loop against the configured backend.
package evolux

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/evolux/internal/adapters/cache"
	"go.trai.ch/evolux/internal/adapters/config"
	"go.trai.ch/evolux/internal/adapters/llm"
	"go.trai.ch/evolux/internal/adapters/logger"
	"go.trai.ch/evolux/internal/adapters/sandbox"
	"go.trai.ch/evolux/internal/adapters/validate"
	"go.trai.ch/evolux/internal/adapters/watcher"
	"go.trai.ch/evolux/internal/core/domain"
	"go.trai.ch/evolux/internal/core/ports"
	"go.trai.ch/evolux/internal/engine/evolve"
)

// Re-exported types so callers never import internal packages.
type (
	// Config is the per-call-site configuration.
	Config = domain.Config
	// FuncMeta describes the wrapped function.
	FuncMeta = domain.FuncMeta
	// CallSite identifies a wrapped function by module and name.
	CallSite = domain.CallSite
	// Handle is one wrapped call site.
	Handle = evolve.Handle
	// Fallback is the caller-supplied native behavior.
	Fallback = evolve.Fallback
)

// ErrNotImplemented marks a fallback as incomplete. Returning it always
// triggers synthesis, regardless of the auto-resynthesis setting.
var ErrNotImplemented = domain.ErrNotImplemented

// DefaultConfig returns a Config populated with the default budgets and
// import allowlist.
func DefaultConfig() Config {
	return domain.DefaultConfig()
}

// Runtime owns the synthesis engine and the wrapped handles. Handles from
// the same runtime share one in-flight synthesis per call site.
type Runtime struct {
	engine       *evolve.Engine
	logger       ports.Logger
	loader       *config.Loader
	reloadWindow time.Duration

	mu       sync.Mutex
	handles  map[string][]*Handle
	watchers map[string]*watcher.Reloader
	stops    []func() error
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithHotReload watches each cache directory and drops a handle's loaded
// implementation when its cached file changes on disk, so the next call
// picks up the edit. The window coalesces bursts of file events.
func WithHotReload(window time.Duration) Option {
	return func(r *Runtime) {
		r.reloadWindow = window
	}
}

// NewRuntime creates a Runtime backed by the default adapters: the
// on-disk implementation cache, the OpenAI-compatible synthesis backend,
// and the python subprocess sandbox.
func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{
		logger:   logger.New(),
		loader:   config.New(),
		handles:  map[string][]*Handle{},
		watchers: map[string]*watcher.Reloader{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.engine == nil {
		r.engine = evolve.New(
			func(base string) ports.ImplementationStore { return cache.New(base) },
			func(model string) (ports.Synthesizer, error) { return llm.NewClient(model) },
			func(interpreter string) ports.SandboxExecutor { return sandbox.New(interpreter) },
			validate.New(),
			r.logger,
		)
	}
	return r
}

// Wrap registers a call site and returns its handle. Project settings from
// an evolux.yaml near the wrapped function's file are applied first; fields
// set explicitly in cfg win over the file.
func (r *Runtime) Wrap(meta FuncMeta, cfg Config, fallback Fallback) (*Handle, error) {
	fileCfg, err := r.fileConfig(meta)
	if err != nil {
		return nil, err
	}
	cfg = mergeConfig(fileCfg, cfg)

	h, err := r.engine.NewHandle(meta, cfg, fallback)
	if err != nil {
		return nil, err
	}

	r.register(h, cacheBase(meta, h.Config()))
	return h, nil
}

// Close stops all hot-reload watchers. Wrapped handles stay usable.
func (r *Runtime) Close() error {
	r.mu.Lock()
	stops := r.stops
	r.stops = nil
	r.watchers = map[string]*watcher.Reloader{}
	r.mu.Unlock()

	var firstErr error
	for _, stop := range stops {
		if err := stop(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Runtime) fileConfig(meta FuncMeta) (Config, error) {
	start := ""
	if meta.File != "" {
		start = filepath.Dir(meta.File)
	}
	settings, path, err := r.loader.Load(start)
	if err != nil {
		return Config{}, err
	}
	if path == "" {
		return Config{}, nil
	}
	return settings.Apply(Config{}), nil
}

func (r *Runtime) register(h *Handle, base string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := h.Site().Key()
	r.handles[key] = append(r.handles[key], h)

	if r.reloadWindow > 0 {
		r.ensureWatcherLocked(base)
	}
}

// ensureWatcherLocked starts one reloader per distinct cache directory.
// The directory is created up front because the watch target must exist
// before the first synthesis writes to it.
func (r *Runtime) ensureWatcherLocked(base string) {
	if _, ok := r.watchers[base]; ok {
		return
	}
	if err := os.MkdirAll(base, domain.DirPerm); err != nil {
		r.logger.Warn("hot reload disabled for cache dir", "dir", base, "error", err.Error())
		return
	}

	rl, err := watcher.New(base, r.reloadWindow, r.logger, r.invalidate)
	if err != nil {
		r.logger.Warn("hot reload disabled for cache dir", "dir", base, "error", err.Error())
		return
	}
	if err := rl.Start(context.Background()); err != nil {
		r.logger.Warn("hot reload disabled for cache dir", "dir", base, "error", err.Error())
		return
	}

	r.watchers[base] = rl
	r.stops = append(r.stops, rl.Stop)
}

// invalidate drops the loaded implementation of every handle whose cached
// file changed, so the next call probes the store again.
func (r *Runtime) invalidate(sites []domain.CallSite) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, site := range sites {
		for _, h := range r.handles[site.Key()] {
			h.Invalidate()
			r.logger.Info("reloading implementation after cache change",
				"site", h.Site().String())
		}
	}
}

// cacheBase resolves the cache directory a handle persists to, mirroring
// how the engine picks it at wrap time.
func cacheBase(meta FuncMeta, cfg Config) string {
	if cfg.CacheDir != "" {
		return cfg.CacheDir
	}
	return domain.CacheBaseFor(meta.File)
}

// mergeConfig overlays the caller's explicit settings onto the ones loaded
// from the project file. Code wins over file, field by field.
func mergeConfig(file, code Config) Config {
	out := file
	if code.AllowImports != nil {
		out.AllowImports = code.AllowImports
	}
	if code.DisableAutoResynthesis {
		out.DisableAutoResynthesis = true
	}
	if code.ExecTimeout > 0 {
		out.ExecTimeout = code.ExecTimeout
	}
	if code.SynthesisTimeout > 0 {
		out.SynthesisTimeout = code.SynthesisTimeout
	}
	if code.MaxAttempts > 0 {
		out.MaxAttempts = code.MaxAttempts
	}
	if code.CacheDir != "" {
		out.CacheDir = code.CacheDir
	}
	if code.Model != "" {
		out.Model = code.Model
	}
	if code.Interpreter != "" {
		out.Interpreter = code.Interpreter
	}
	return out
}

var (
	defaultOnce    sync.Once
	defaultRuntime *Runtime
)

// Default returns the process-wide Runtime, created on first use.
func Default() *Runtime {
	defaultOnce.Do(func() {
		defaultRuntime = NewRuntime()
	})
	return defaultRuntime
}

// Wrap registers a call site on the default Runtime.
func Wrap(meta FuncMeta, cfg Config, fallback Fallback) (*Handle, error) {
	return Default().Wrap(meta, cfg, fallback)
}
