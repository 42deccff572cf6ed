package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/evolux/internal/adapters/config"
	"go.trai.ch/evolux/internal/core/domain"
)

func writeSettings(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, domain.SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := writeSettings(t, dir, `
model: gpt-5
cache_dir: /tmp/evolux-cache
interpreter: python3.12
allow_imports: [json, math]
timeout_seconds: 2.5
synthesis_timeout_seconds: 30
max_attempts: 5
auto_resynthesize: false
`)

	s, path, err := config.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, want, path)
	assert.Equal(t, "gpt-5", s.Model)
	assert.Equal(t, "/tmp/evolux-cache", s.CacheDir)
	assert.Equal(t, "python3.12", s.Interpreter)
	assert.Equal(t, []string{"json", "math"}, s.AllowImports)
	assert.InDelta(t, 2.5, s.TimeoutSeconds, 1e-9)
	assert.Equal(t, 5, s.MaxAttempts)
	require.NotNil(t, s.AutoResynthesize)
	assert.False(t, *s.AutoResynthesize)
}

func TestLoader_LoadWalksUp(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	want := writeSettings(t, root, "model: gpt-5\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	s, path, err := config.New().Load(nested)
	require.NoError(t, err)
	assert.Equal(t, want, path)
	assert.Equal(t, "gpt-5", s.Model)
}

func TestLoader_LoadMissingIsNotAnError(t *testing.T) {
	t.Parallel()

	s, path, err := config.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, config.Settings{}, s)
}

func TestLoader_LoadMalformed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSettings(t, dir, "model: [unclosed\n")

	_, _, err := config.New().Load(dir)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
}

func TestSettings_Apply(t *testing.T) {
	t.Parallel()

	resync := false
	s := config.Settings{
		Model:            "gpt-5-mini",
		TimeoutSeconds:   2,
		MaxAttempts:      7,
		AutoResynthesize: &resync,
	}

	cfg := s.Apply(domain.DefaultConfig())

	assert.Equal(t, "gpt-5-mini", cfg.Model)
	assert.Equal(t, 2*time.Second, cfg.ExecTimeout)
	assert.Equal(t, 7, cfg.MaxAttempts)
	assert.True(t, cfg.DisableAutoResynthesis)
	// Untouched fields keep their defaults.
	assert.Equal(t, domain.DefaultAllowImports(), cfg.AllowImports)
	assert.Equal(t, domain.DefaultSynthesisTimeout, cfg.SynthesisTimeout)
}
