package evolux

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/evolux/internal/core/domain"
	"go.trai.ch/evolux/internal/core/ports"
	"go.trai.ch/evolux/internal/core/ports/mocks"
	"go.trai.ch/evolux/internal/engine/evolve"
	"go.uber.org/mock/gomock"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any) {}
func (nopLogger) Warn(string, ...any) {}
func (nopLogger) Error(error)         {}

type staticSynth struct {
	calls atomic.Int32
	model string
}

func (s *staticSynth) Synthesize(context.Context, domain.SynthesisRequest) (string, error) {
	s.calls.Add(1)
	return "return x + y", nil
}

type okValidator struct{}

func (okValidator) Validate(string, []string) error { return nil }

// sumSandbox pretends to run the synthesized addition: it checks the
// candidate body made it into the source and sums the integer arguments.
type sumSandbox struct{}

func (sumSandbox) Execute(_ context.Context, run domain.SandboxRun) (any, error) {
	if !strings.Contains(run.Source, "return x + y") {
		return nil, errors.New("unexpected source")
	}
	sum := 0
	for _, a := range run.Args {
		n, ok := a.(int)
		if !ok {
			return nil, errors.New("unexpected argument type")
		}
		sum += n
	}
	return sum, nil
}

func newTestRuntime(t *testing.T, store ports.ImplementationStore, opts ...Option) (*Runtime, *staticSynth) {
	t.Helper()

	synth := &staticSynth{}
	r := NewRuntime(opts...)
	r.logger = nopLogger{}
	r.engine = evolve.New(
		func(string) ports.ImplementationStore { return store },
		func(model string) (ports.Synthesizer, error) {
			synth.model = model
			return synth, nil
		},
		func(string) ports.SandboxExecutor { return sumSandbox{} },
		okValidator{},
		nopLogger{},
	)
	return r, synth
}

func testMeta(t *testing.T) FuncMeta {
	t.Helper()
	return FuncMeta{
		Site:      CallSite{Module: "demo", Function: "add"},
		Signature: "(x, y)",
		Source:    "def add(x, y):\n    raise NotImplementedError\n",
		File:      filepath.Join(t.TempDir(), "demo.py"),
	}
}

func TestRuntime_WrapAndEvolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockImplementationStore(ctrl)
	r, synth := newTestRuntime(t, store)
	meta := testMeta(t)

	store.EXPECT().Load(meta.Site).Return(nil, nil)
	store.EXPECT().Save(gomock.Any(), meta.Source).Return(nil)

	h, err := r.Wrap(meta, Config{CacheDir: t.TempDir()}, nil)
	require.NoError(t, err)

	result, err := h.Call(context.Background(), []any{1, 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result)
	assert.Equal(t, int32(1), synth.calls.Load())

	// The published implementation serves later calls without another
	// synthesis or store probe.
	result, err = h.Call(context.Background(), []any{4, 5}, nil)
	require.NoError(t, err)
	assert.Equal(t, 9, result)
	assert.Equal(t, int32(1), synth.calls.Load())
}

func TestRuntime_FallbackResultSkipsSynthesis(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockImplementationStore(ctrl)
	r, synth := newTestRuntime(t, store)
	meta := testMeta(t)

	store.EXPECT().Load(meta.Site).Return(nil, nil)

	h, err := r.Wrap(meta, Config{CacheDir: t.TempDir()}, func(context.Context, []any, map[string]any) (any, error) {
		return 42, nil
	})
	require.NoError(t, err)

	result, err := h.Call(context.Background(), []any{1, 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, int32(0), synth.calls.Load())
}

func TestRuntime_FileConfigPrecedence(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockImplementationStore(ctrl)
	r, synth := newTestRuntime(t, store)

	projectDir := t.TempDir()
	settings := "model: file-model\nmax_attempts: 5\nauto_resynthesize: false\n"
	require.NoError(t, os.WriteFile(
		filepath.Join(projectDir, domain.SettingsFileName), []byte(settings), 0o600))

	meta := FuncMeta{
		Site:      CallSite{Module: "demo", Function: "add"},
		Signature: "(x, y)",
		File:      filepath.Join(projectDir, "demo.py"),
	}

	h, err := r.Wrap(meta, Config{Model: "code-model", CacheDir: t.TempDir()}, nil)
	require.NoError(t, err)

	cfg := h.Config()
	assert.Equal(t, "code-model", cfg.Model, "explicit config wins over the file")
	assert.Equal(t, 5, cfg.MaxAttempts, "unset fields come from the file")
	assert.True(t, cfg.DisableAutoResynthesis)
	assert.Equal(t, "code-model", synth.model)
}

func TestRuntime_HotReloadInvalidatesHandle(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockImplementationStore(ctrl)
	r, _ := newTestRuntime(t, store, WithHotReload(50*time.Millisecond))
	defer func() { _ = r.Close() }()
	meta := testMeta(t)
	base := t.TempDir()

	impl := &domain.Implementation{
		Module:   "demo",
		Function: "add",
		Source:   "def add(x, y):\n    return x + y\n",
	}
	var loads atomic.Int32
	store.EXPECT().Load(meta.Site).DoAndReturn(func(domain.CallSite) (*domain.Implementation, error) {
		loads.Add(1)
		return impl, nil
	}).AnyTimes()

	h, err := r.Wrap(meta, Config{CacheDir: base}, nil)
	require.NoError(t, err)

	result, err := h.Call(context.Background(), []any{1, 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result)
	require.Equal(t, int32(1), loads.Load())

	// An on-disk edit of the cached file drops the loaded implementation,
	// so a later call probes the store again.
	require.NoError(t, os.WriteFile(
		filepath.Join(base, "demo__add.py"), []byte(impl.Source), 0o600))

	assert.Eventually(t, func() bool {
		_, callErr := h.Call(context.Background(), []any{2, 3}, nil)
		return callErr == nil && loads.Load() >= 2
	}, 5*time.Second, 50*time.Millisecond)
}

func TestMergeConfig(t *testing.T) {
	file := Config{Model: "file-model", MaxAttempts: 5, Interpreter: "python3.12"}
	code := Config{Model: "code-model", ExecTimeout: 2 * time.Second}

	merged := mergeConfig(file, code)
	assert.Equal(t, "code-model", merged.Model)
	assert.Equal(t, 5, merged.MaxAttempts)
	assert.Equal(t, "python3.12", merged.Interpreter)
	assert.Equal(t, 2*time.Second, merged.ExecTimeout)
}

func TestDefaultRuntimeIsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
}
