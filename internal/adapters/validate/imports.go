// Package validate statically checks candidate source against an import
// allowlist. Validation always runs before any execution, and source that
// cannot be analyzed is rejected rather than passed through.
package validate

import (
	"regexp"
	"strings"

	"go.trai.ch/evolux/internal/core/domain"
	"go.trai.ch/zerr"
)

var (
	importRe       = regexp.MustCompile(`^\s*import\s+(.*)$`)
	fromRe         = regexp.MustCompile(`^\s*from\s+(\S+)\s+import\b`)
	dunderImportRe = regexp.MustCompile(`__import__\s*\(`)
	moduleNameRe   = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)*$`)
)

// Validator scans candidate source line by line for import statements and
// dynamic import calls.
type Validator struct{}

// New creates a Validator.
func New() *Validator {
	return &Validator{}
}

// Validate checks every import in source against the allowlist. Matching is
// by top-level module name: "import json.decoder" is governed by "json".
func (v *Validator) Validate(source string, allow []string) error {
	if strings.TrimSpace(source) == "" {
		return domain.ErrEmptyCandidate
	}

	allowed := make(map[string]struct{}, len(allow))
	for _, mod := range allow {
		allowed[topLevel(mod)] = struct{}{}
	}

	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	for _, line := range strings.Split(normalized, "\n") {
		if dunderImportRe.MatchString(line) {
			return zerr.With(domain.ErrDisallowedImport, "module", "__import__")
		}

		mods, err := importedModules(line)
		if err != nil {
			return err
		}
		for _, mod := range mods {
			if _, ok := allowed[mod]; !ok {
				return zerr.With(domain.ErrDisallowedImport, "module", mod)
			}
		}
	}
	return nil
}

// importedModules extracts the top-level module names an import statement
// on this line refers to. Non-import lines yield nothing.
func importedModules(line string) ([]string, error) {
	if m := fromRe.FindStringSubmatch(line); m != nil {
		mod := m[1]
		if strings.HasPrefix(mod, ".") {
			// Relative imports have no resolvable top-level module.
			return nil, zerr.With(domain.ErrDisallowedImport, "module", mod)
		}
		if !moduleNameRe.MatchString(mod) {
			return nil, zerr.With(domain.ErrUnparsableCandidate, "line", strings.TrimSpace(line))
		}
		return []string{topLevel(mod)}, nil
	}

	m := importRe.FindStringSubmatch(line)
	if m == nil {
		return nil, nil
	}

	var mods []string
	for _, clause := range strings.Split(m[1], ",") {
		name := strings.TrimSpace(clause)
		if idx := strings.Index(name, " as "); idx >= 0 {
			name = strings.TrimSpace(name[:idx])
		}
		if !moduleNameRe.MatchString(name) {
			return nil, zerr.With(domain.ErrUnparsableCandidate, "line", strings.TrimSpace(line))
		}
		mods = append(mods, topLevel(name))
	}
	return mods, nil
}

func topLevel(mod string) string {
	if idx := strings.Index(mod, "."); idx >= 0 {
		return mod[:idx]
	}
	return mod
}
