package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// Implementation is the persisted unit for one call site: the normalized
// source of a validated, successfully executed function, plus generation
// metadata. At most one exists per call site; a later resynthesis overwrites
// it atomically.
type Implementation struct {
	Module        string    `json:"module"`
	Function      string    `json:"function"`
	Source        string    `json:"-"`
	SignatureHash string    `json:"signature_hash,omitzero"`
	Attempt       int       `json:"attempt,omitzero"`
	GeneratedAt   time.Time `json:"generated_at,omitzero"`
}

// Site returns the call site this implementation belongs to.
func (i Implementation) Site() CallSite {
	return CallSite{Module: i.Module, Function: i.Function}
}

// ArtifactKind names a diff artifact flavor.
type ArtifactKind string

const (
	ArtifactDiff     ArtifactKind = "diff"
	ArtifactMarkdown ArtifactKind = "md"
	ArtifactHTML     ArtifactKind = "html"
)

// ParseArtifactKind maps a user-supplied artifact name to its kind.
func ParseArtifactKind(s string) (ArtifactKind, error) {
	switch ArtifactKind(s) {
	case ArtifactDiff, ArtifactMarkdown, ArtifactHTML:
		return ArtifactKind(s), nil
	default:
		return "", zerr.With(ErrUnknownArtifactKind, "kind", s)
	}
}

// Scope selects cached implementations for listing or removal.
// The zero value matches everything; Module alone matches a whole module;
// Module plus Function matches a single call site.
type Scope struct {
	Module   string
	Function string
}

// Validate rejects a function-only scope, which has no meaning on disk.
func (s Scope) Validate() error {
	if s.Function != "" && s.Module == "" {
		return ErrScopeFunctionWithoutModule
	}
	return nil
}

// Matches reports whether the given call site falls inside the scope.
func (s Scope) Matches(site CallSite) bool {
	if s.Module != "" && s.Module != site.Module {
		return false
	}
	if s.Function != "" && s.Function != site.Function {
		return false
	}
	return true
}
