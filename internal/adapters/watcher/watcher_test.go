package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/evolux/internal/adapters/watcher"
	"go.trai.ch/evolux/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any) {}
func (nopLogger) Warn(string, ...any) {}
func (nopLogger) Error(error)         {}

func TestDebouncer_CoalescesEvents(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var batches [][]string
	d := watcher.NewDebouncer(50*time.Millisecond, func(paths []string) {
		mu.Lock()
		defer mu.Unlock()
		batches = append(batches, paths)
	})

	d.Add("a.py")
	d.Add("a.py")
	d.Add("b.py")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(batches) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, batches[0], 2)
}

func TestDebouncer_FlushDeliversSynchronously(t *testing.T) {
	t.Parallel()

	var got []string
	d := watcher.NewDebouncer(time.Hour, func(paths []string) {
		got = paths
	})

	d.Add("a.py")
	d.Flush()

	assert.Equal(t, []string{"a.py"}, got)
}

func TestReloader_ReportsChangedSites(t *testing.T) {
	t.Parallel()

	base := t.TempDir()

	var mu sync.Mutex
	var sites []domain.CallSite
	r, err := watcher.New(base, 50*time.Millisecond, nopLogger{}, func(changed []domain.CallSite) {
		mu.Lock()
		defer mu.Unlock()
		sites = append(sites, changed...)
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, r.Start(ctx))
	defer func() { _ = r.Stop() }()

	require.NoError(t, os.WriteFile(
		filepath.Join(base, "demo__add.py"),
		[]byte("def add(x, y):\n    return x + y\n"), 0o600))
	// Temp files from atomic writes never surface.
	require.NoError(t, os.WriteFile(
		filepath.Join(base, ".evolux-12345"), []byte("partial"), 0o600))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(sites) > 0
	}, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, domain.CallSite{Module: "demo", Function: "add"}, sites[0])
	for _, site := range sites {
		assert.NotContains(t, site.Function, "evolux-")
	}
}
