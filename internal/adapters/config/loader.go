// Package config loads optional project settings from an evolux.yaml file
// found by walking up from a starting directory.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/evolux/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Settings mirrors the evolux.yaml schema. All fields are optional;
// anything unset falls back to the built-in defaults.
type Settings struct {
	Model                   string   `yaml:"model"`
	CacheDir                string   `yaml:"cache_dir"`
	Interpreter             string   `yaml:"interpreter"`
	AllowImports            []string `yaml:"allow_imports"`
	TimeoutSeconds          float64  `yaml:"timeout_seconds"`
	SynthesisTimeoutSeconds float64  `yaml:"synthesis_timeout_seconds"`
	MaxAttempts             int      `yaml:"max_attempts"`
	AutoResynthesize        *bool    `yaml:"auto_resynthesize"`
}

// Loader finds and parses the project settings file.
type Loader struct{}

// New creates a Loader.
func New() *Loader {
	return &Loader{}
}

// Load walks up from startDir looking for an evolux.yaml. A missing file is
// not an error: zero Settings and an empty path are returned.
func (l *Loader) Load(startDir string) (Settings, string, error) {
	path, found := l.findSettingsFile(startDir)
	if !found {
		return Settings{}, "", nil
	}

	//nolint:gosec // path comes from the upward directory walk
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, "", zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, "", zerr.Wrap(zerr.With(err, "path", path), domain.ErrConfigParseFailed.Error())
	}
	return s, path, nil
}

// findSettingsFile walks from start to the filesystem root looking for the
// settings file.
func (l *Loader) findSettingsFile(start string) (string, bool) {
	cur := start
	if cur == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", false
		}
		cur = cwd
	}

	for {
		candidate := filepath.Join(cur, domain.SettingsFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", false
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", false
		}
		cur = parent
	}
}

// Apply overlays the settings onto a configuration, leaving unset fields
// untouched.
func (s Settings) Apply(cfg domain.Config) domain.Config {
	if s.Model != "" {
		cfg.Model = s.Model
	}
	if s.CacheDir != "" {
		cfg.CacheDir = s.CacheDir
	}
	if s.Interpreter != "" {
		cfg.Interpreter = s.Interpreter
	}
	if s.AllowImports != nil {
		cfg.AllowImports = s.AllowImports
	}
	if s.TimeoutSeconds > 0 {
		cfg.ExecTimeout = time.Duration(s.TimeoutSeconds * float64(time.Second))
	}
	if s.SynthesisTimeoutSeconds > 0 {
		cfg.SynthesisTimeout = time.Duration(s.SynthesisTimeoutSeconds * float64(time.Second))
	}
	if s.MaxAttempts > 0 {
		cfg.MaxAttempts = s.MaxAttempts
	}
	if s.AutoResynthesize != nil {
		cfg.DisableAutoResynthesis = !*s.AutoResynthesize
	}
	return cfg
}
