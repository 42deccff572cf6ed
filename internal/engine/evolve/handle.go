package evolve

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/evolux/internal/core/domain"
	"go.trai.ch/evolux/internal/core/ports"
	"go.trai.ch/zerr"
)

// Fallback is the caller-supplied native behavior of a wrapped function.
// Returning domain.ErrNotImplemented marks the function as incomplete and
// always triggers synthesis.
type Fallback func(ctx context.Context, args []any, kwargs map[string]any) (any, error)

// Handle is one wrapped call site. It carries the hot implementation in an
// atomic cell: readers on the fast path never take a lock, and a finished
// synthesis publishes by swapping the pointer.
type Handle struct {
	engine   *Engine
	meta     domain.FuncMeta
	cfg      domain.Config
	store    ports.ImplementationStore
	synth    ports.Synthesizer
	sandbox  ports.SandboxExecutor
	fallback Fallback

	current atomic.Pointer[domain.Implementation]

	probeMu sync.Mutex
	probed  bool
}

// NewHandle wraps a call site. Setup problems (bad config, missing
// credentials) surface here, before any call runs.
func (e *Engine) NewHandle(meta domain.FuncMeta, cfg domain.Config, fallback Fallback) (*Handle, error) {
	if meta.Site.Module == "" || meta.Site.Function == "" {
		return nil, zerr.With(domain.ErrMissingFunctionName, "site", meta.Site.String())
	}

	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	synth, err := e.newSynth(cfg.Model)
	if err != nil {
		return nil, err
	}

	base := cfg.CacheDir
	if base == "" {
		base = domain.CacheBaseFor(meta.File)
	}

	return &Handle{
		engine:   e,
		meta:     meta,
		cfg:      cfg,
		store:    e.newStore(base),
		synth:    synth,
		sandbox:  e.newSandbox(cfg.Interpreter),
		fallback: fallback,
	}, nil
}

// Site returns the wrapped call site.
func (h *Handle) Site() domain.CallSite {
	return h.meta.Site
}

// Config returns the effective configuration after defaulting.
func (h *Handle) Config() domain.Config {
	return h.cfg
}

// Invalidate drops the published implementation so the next call probes
// the store again. Used when the cached file changes on disk.
func (h *Handle) Invalidate() {
	h.probeMu.Lock()
	defer h.probeMu.Unlock()
	h.current.Store(nil)
	h.probed = false
}

// Call invokes the wrapped function. A cached or previously synthesized
// implementation runs in the sandbox; otherwise the native fallback runs.
// A qualifying failure from either path starts the synthesis loop, and the
// synthesized result is returned to this very call.
func (h *Handle) Call(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
	if impl := h.hot(); impl != nil {
		result, err := h.execute(ctx, impl.Source, args, kwargs)
		if err == nil {
			return result, nil
		}
		if !h.qualifies(err) {
			return nil, err
		}
		return h.synthesize(ctx, args, kwargs, err)
	}

	if h.fallback != nil {
		result, err := h.fallback(ctx, args, kwargs)
		if err == nil {
			return result, nil
		}
		if !h.qualifies(err) {
			return nil, err
		}
		return h.synthesize(ctx, args, kwargs, err)
	}

	return h.synthesize(ctx, args, kwargs, domain.ErrNotImplemented)
}

// hot returns the published implementation, probing the store once per
// handle. Concurrent callers wait for the in-flight store read instead of
// treating it as a miss, so a warm on-disk cache never triggers synthesis.
// A cache read failure or a signature mismatch degrades to a miss.
func (h *Handle) hot() *domain.Implementation {
	if impl := h.current.Load(); impl != nil {
		return impl
	}

	h.probeMu.Lock()
	defer h.probeMu.Unlock()
	if h.probed {
		return h.current.Load()
	}
	h.probed = true

	impl, err := h.store.Load(h.meta.Site)
	if err != nil {
		h.engine.logger.Warn("cache read failed, treating as miss",
			"site", h.meta.Site.String(), "error", err.Error())
		return nil
	}
	if impl == nil {
		return nil
	}
	if impl.SignatureHash != "" && impl.SignatureHash != h.meta.SignatureHash() {
		h.engine.logger.Warn("signature changed, ignoring cached implementation",
			"site", h.meta.Site.String())
		return nil
	}

	h.current.Store(impl)
	return impl
}

// qualifies reports whether a runtime failure triggers synthesis. The
// explicit not-implemented signal always does; anything else only when
// auto-resynthesis is enabled.
func (h *Handle) qualifies(err error) bool {
	if errors.Is(err, domain.ErrNotImplemented) ||
		strings.Contains(err.Error(), "NotImplementedError") {
		return true
	}
	return !h.cfg.DisableAutoResynthesis
}

// synthesize funnels concurrent triggers for the same call site through
// one synthesis loop. The winner is served by its validating run; followers
// wait for the published implementation and then execute their own
// arguments against it.
func (h *Handle) synthesize(ctx context.Context, args []any, kwargs map[string]any, trigger error) (any, error) {
	winner := false
	result, err, _ := h.engine.group.Do(h.meta.Site.Key(), func() (any, error) {
		winner = true
		return h.synthesizeLoop(ctx, args, kwargs, trigger)
	})
	if err != nil {
		return nil, err
	}
	if !winner {
		if impl := h.current.Load(); impl != nil {
			return h.execute(ctx, impl.Source, args, kwargs)
		}
	}
	return result, nil
}

// synthesizeLoop spends the attempt budget. Each attempt feeds the prior
// failure back into the next request; exhaustion wraps the last failure.
func (h *Handle) synthesizeLoop(ctx context.Context, args []any, kwargs map[string]any, trigger error) (any, error) {
	h.engine.logger.Info("synthesizing implementation",
		"site", h.meta.Site.String(), "trigger", trigger.Error())

	lastErr := trigger
	for attempt := 1; attempt <= h.cfg.MaxAttempts; attempt++ {
		result, err := h.attempt(ctx, args, kwargs, attempt, lastErr)
		if err == nil {
			h.engine.logger.Info("synthesis succeeded",
				"site", h.meta.Site.String(), "attempt", attempt)
			return result, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}
		h.engine.logger.Warn("synthesis attempt failed",
			"site", h.meta.Site.String(), "attempt", attempt, "error", err.Error())
		lastErr = err
	}

	return nil, zerr.With(
		errors.Join(domain.ErrSynthesisExhausted, lastErr),
		"attempts", h.cfg.MaxAttempts,
	)
}

// attempt runs one synthesis round: generate, normalize, validate,
// execute, publish. Validation always precedes execution.
func (h *Handle) attempt(ctx context.Context, args []any, kwargs map[string]any, attempt int, lastErr error) (any, error) {
	req := domain.SynthesisRequest{
		Meta:         h.meta,
		Args:         args,
		Kwargs:       kwargs,
		AllowImports: h.cfg.AllowImports,
		LastError:    lastErr.Error(),
		Attempt:      attempt,
	}

	sctx, cancel := context.WithTimeout(ctx, h.cfg.SynthesisTimeout)
	body, err := h.synth.Synthesize(sctx, req)
	cancel()
	if err != nil {
		return nil, err
	}

	body = NormalizeBody(body)
	if body == "" {
		return nil, domain.ErrEmptyCandidate
	}
	body = EnsureImports(body, h.cfg.AllowImports)
	fnSrc := WrapFunction(h.meta, body)

	if err := h.engine.validator.Validate(fnSrc, h.cfg.AllowImports); err != nil {
		return nil, err
	}

	result, err := h.execute(ctx, fnSrc, args, kwargs)
	if err != nil && isSyntaxFailure(err) {
		// One in-attempt indentation repair before giving the backend
		// another try.
		repaired := WrapFunction(h.meta, RepairIndentation(body))
		if vErr := h.engine.validator.Validate(repaired, h.cfg.AllowImports); vErr == nil {
			if repairedResult, repairedErr := h.execute(ctx, repaired, args, kwargs); repairedErr == nil {
				fnSrc = repaired
				result = repairedResult
				err = nil
			}
		}
	}
	if err != nil {
		return nil, err
	}

	h.publish(fnSrc, attempt)
	return result, nil
}

// publish swaps the hot implementation and persists it. Persistence
// failure is logged but never discards the in-memory result.
func (h *Handle) publish(fnSrc string, attempt int) {
	impl := domain.Implementation{
		Module:        h.meta.Site.Module,
		Function:      h.meta.Site.Function,
		Source:        fnSrc,
		SignatureHash: h.meta.SignatureHash(),
		Attempt:       attempt,
		GeneratedAt:   time.Now().UTC(),
	}
	h.current.Store(&impl)

	if err := h.store.Save(impl, h.meta.Source); err != nil {
		h.engine.logger.Warn("failed to persist evolved implementation",
			"site", h.meta.Site.String(), "error", err.Error())
	}
}

func (h *Handle) execute(ctx context.Context, source string, args []any, kwargs map[string]any) (any, error) {
	return h.sandbox.Execute(ctx, domain.SandboxRun{
		Source:       source,
		Function:     h.meta.Site.Function,
		Args:         args,
		Kwargs:       kwargs,
		AllowImports: h.cfg.AllowImports,
		Timeout:      h.cfg.ExecTimeout,
	})
}

// isSyntaxFailure detects interpreter compile errors reported through the
// sandbox.
func isSyntaxFailure(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SyntaxError") || strings.Contains(msg, "IndentationError")
}
