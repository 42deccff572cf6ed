package ports

import "go.trai.ch/evolux/internal/core/domain"

//go:generate mockgen -source=store.go -destination=mocks/store_mock.go -package=mocks

// ImplementationStore persists synthesized implementations and their diff
// artifacts. Load returns (nil, nil) when no implementation exists for the
// site, so callers can distinguish absence from failure.
type ImplementationStore interface {
	Load(site domain.CallSite) (*domain.Implementation, error)
	// Save persists the implementation atomically and regenerates its diff
	// artifacts against originalSource (the pre-synthesis body, possibly
	// empty).
	Save(impl domain.Implementation, originalSource string) error
	List(scope domain.Scope) ([]domain.CallSite, error)
	// DiffText returns the stored unified diff for a site, computing it
	// from the original and evolved sources when the stored artifact is
	// missing.
	DiffText(site domain.CallSite) (string, error)
	// ArtifactPath returns the on-disk location of an existing artifact.
	ArtifactPath(site domain.CallSite, kind domain.ArtifactKind) (string, error)
	// Regenerate rebuilds all diff artifacts from the current original and
	// evolved sources.
	Regenerate(site domain.CallSite) error
	// Delete removes everything in scope and returns the number of files
	// removed. A scope that matches nothing removes zero files and is not
	// an error.
	Delete(scope domain.Scope) (int, error)
}
