// Package app implements the CLI use cases on top of the core ports.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/evolux/internal/core/domain"
	"go.trai.ch/evolux/internal/core/ports"
	"go.trai.ch/zerr"
)

// StoreFactory builds a store for a cache directory chosen per invocation.
type StoreFactory func(base string) ports.ImplementationStore

// App wires the CLI operations.
type App struct {
	newStore StoreFactory
	logger   ports.Logger
}

// New creates an App.
func New(newStore StoreFactory, logger ports.Logger) *App {
	return &App{newStore: newStore, logger: logger}
}

// Components bundles everything the command layer needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

// ShowOptions selects which artifact of a call site to display.
type ShowOptions struct {
	Module     string
	Function   string
	Kind       domain.ArtifactKind
	CacheDir   string
	Regenerate bool
}

// Show prints the requested artifact for an evolved call site: the diff
// text itself, or the file path for the markdown and HTML flavors.
func (a *App) Show(opts ShowOptions, w io.Writer) error {
	store := a.newStore(resolveCacheDir(opts.CacheDir))
	site := domain.CallSite{Module: opts.Module, Function: opts.Function}

	impl, err := store.Load(site)
	if err != nil {
		return err
	}
	if impl == nil {
		return zerr.With(domain.ErrNotEvolved, "site", site.String())
	}

	if opts.Regenerate {
		if err := store.Regenerate(site); err != nil {
			// Best effort: regeneration needs the original snapshot,
			// which older caches may not have.
			a.logger.Warn("could not regenerate artifacts",
				"site", site.String(), "error", err.Error())
		}
	}

	if opts.Kind == domain.ArtifactDiff {
		text, err := store.DiffText(site)
		if err != nil {
			if errors.Is(err, domain.ErrArtifactMissing) {
				fmt.Fprintln(w, "No diff available.")
				return nil
			}
			return err
		}
		fmt.Fprintln(w, text)
		return nil
	}

	path, err := store.ArtifactPath(site, opts.Kind)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, path)
	return nil
}

// Clean removes cached implementations in scope and reports how many
// files went away. An empty scope clears the whole cache.
func (a *App) Clean(scope domain.Scope, cacheDir string, w io.Writer) error {
	store := a.newStore(resolveCacheDir(cacheDir))

	removed, err := store.Delete(scope)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Removed %d file(s)\n", removed)
	return nil
}

// List prints the call sites with a cached implementation in scope, one
// per line.
func (a *App) List(scope domain.Scope, cacheDir string, w io.Writer) error {
	store := a.newStore(resolveCacheDir(cacheDir))

	sites, err := store.List(scope)
	if err != nil {
		return err
	}
	for _, site := range sites {
		fmt.Fprintln(w, site.String())
	}
	return nil
}

// resolveCacheDir falls back to <cwd>/.evolux/cache when no directory is
// given, matching where the runtime puts the cache for code run from the
// project root.
func resolveCacheDir(dir string) string {
	if dir != "" {
		return dir
	}
	cwd, err := os.Getwd()
	if err != nil {
		return domain.DefaultCachePath()
	}
	return filepath.Join(cwd, domain.EvoluxDirName, domain.CacheDirName)
}
