package sandbox_test

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/evolux/internal/adapters/sandbox"
	"go.trai.ch/evolux/internal/core/domain"
)

// requirePython skips tests on machines without a python3 binary.
func requirePython(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}
}

func TestExecutor_Execute(t *testing.T) {
	t.Parallel()
	requirePython(t)

	e := sandbox.New("")
	result, err := e.Execute(context.Background(), domain.SandboxRun{
		Source:   "def add(x, y):\n    return x + y\n",
		Function: "add",
		Args:     []any{1, 2},
		Timeout:  10 * time.Second,
	})
	require.NoError(t, err)
	// JSON numbers decode as float64.
	assert.Equal(t, float64(3), result)
}

func TestExecutor_Kwargs(t *testing.T) {
	t.Parallel()
	requirePython(t)

	e := sandbox.New("")
	result, err := e.Execute(context.Background(), domain.SandboxRun{
		Source:   "def greet(name, punct='!'):\n    return 'hi ' + name + punct\n",
		Function: "greet",
		Args:     []any{"sam"},
		Kwargs:   map[string]any{"punct": "?"},
		Timeout:  10 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, "hi sam?", result)
}

func TestExecutor_RaisingCandidate(t *testing.T) {
	t.Parallel()
	requirePython(t)

	e := sandbox.New("")
	_, err := e.Execute(context.Background(), domain.SandboxRun{
		Source:   "def boom():\n    raise ValueError('nope')\n",
		Function: "boom",
		Timeout:  10 * time.Second,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSandboxFailed)
}

func TestExecutor_DisallowedImportAtRuntime(t *testing.T) {
	t.Parallel()
	requirePython(t)

	e := sandbox.New("")
	_, err := e.Execute(context.Background(), domain.SandboxRun{
		Source:       "def sneaky():\n    import socket\n    return socket.gethostname()\n",
		Function:     "sneaky",
		AllowImports: []string{"json"},
		Timeout:      10 * time.Second,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSandboxFailed)
	assert.ErrorContains(t, err, "Disallowed import")
}

func TestExecutor_AllowedImport(t *testing.T) {
	t.Parallel()
	requirePython(t)

	e := sandbox.New("")
	result, err := e.Execute(context.Background(), domain.SandboxRun{
		Source:       "import json\ndef roundtrip(s):\n    return json.loads(s)\n",
		Function:     "roundtrip",
		Args:         []any{`{"a": 1}`},
		AllowImports: []string{"json"},
		Timeout:      10 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, result)
}

func TestExecutor_Timeout(t *testing.T) {
	t.Parallel()
	requirePython(t)

	e := sandbox.New("")
	start := time.Now()
	_, err := e.Execute(context.Background(), domain.SandboxRun{
		Source:   "def spin():\n    while True:\n        pass\n",
		Function: "spin",
		Timeout:  500 * time.Millisecond,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExecutionTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestExecutor_MissingFunction(t *testing.T) {
	t.Parallel()
	requirePython(t)

	e := sandbox.New("")
	_, err := e.Execute(context.Background(), domain.SandboxRun{
		Source:   "x = 1\n",
		Function: "ghost",
		Timeout:  10 * time.Second,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSandboxFailed)
}

func TestExecutor_MissingInterpreter(t *testing.T) {
	t.Parallel()

	e := sandbox.New("definitely-not-a-real-interpreter")
	_, err := e.Execute(context.Background(), domain.SandboxRun{
		Source:   "def f():\n    return 1\n",
		Function: "f",
		Timeout:  time.Second,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSandboxFailed)
}
