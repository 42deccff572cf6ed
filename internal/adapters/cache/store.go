// Package cache implements the implementation store using a file-per-site
// layout under a project-local cache directory.
//
// Layout:
//
//	<base>/<safe_module>__<func>.py            evolved source
//	<base>/originals/<safe_module>__<func>.py  pre-synthesis snapshot
//	<base>/diffs/<safe_module>__<func>.diff    unified diff
//	<base>/diffs/<safe_module>__<func>.md      markdown report
//	<base>/diffs/<safe_module>__<func>.html    rendered report
//	<base>/diffs/<safe_module>__<func>.meta.json
package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.trai.ch/evolux/internal/core/domain"
	"go.trai.ch/evolux/internal/report"
	"go.trai.ch/zerr"
)

// Store implements ports.ImplementationStore on the local filesystem.
type Store struct {
	base string
	now  func() time.Time
}

// New creates a store rooted at base. The directory is created lazily on
// the first Save.
func New(base string) *Store {
	return &Store{base: base, now: time.Now}
}

// metaRecord is the on-disk metadata document next to the diff artifacts.
type metaRecord struct {
	domain.Implementation
	Paths map[string]string `json:"paths"`
}

// Load reads the evolved source and metadata for a call site.
// Returns (nil, nil) when nothing is cached for the site.
func (s *Store) Load(site domain.CallSite) (*domain.Implementation, error) {
	data, err := os.ReadFile(s.sourcePath(site))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	impl := domain.Implementation{
		Module:   site.Module,
		Function: site.Function,
		Source:   string(data),
	}

	metaData, err := os.ReadFile(s.metaPath(site))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Source without metadata is still usable.
			return &impl, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var meta metaRecord
	if err := json.Unmarshal(metaData, &meta); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}
	impl.SignatureHash = meta.SignatureHash
	impl.Attempt = meta.Attempt
	impl.GeneratedAt = meta.GeneratedAt

	return &impl, nil
}

// Save persists an implementation atomically and regenerates its diff
// artifacts. The source is written to a temp file in the cache directory
// and renamed into place, so readers never observe a partial write.
func (s *Store) Save(impl domain.Implementation, originalSource string) error {
	site := impl.Site()

	if err := os.MkdirAll(s.base, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}
	if err := s.writeAtomic(s.sourcePath(site), []byte(impl.Source)); err != nil {
		return err
	}

	diffsDir := filepath.Join(s.base, domain.DiffsDirName)
	if err := os.MkdirAll(diffsDir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	if originalSource != "" {
		if err := s.writeArtifacts(site, originalSource, impl.Source); err != nil {
			return err
		}
	}

	meta := metaRecord{
		Implementation: impl,
		Paths: map[string]string{
			"cached":    s.sourcePath(site),
			"original":  s.originalPath(site),
			"diff":      s.diffPath(site, ".diff"),
			"diff_md":   s.diffPath(site, ".md"),
			"diff_html": s.diffPath(site, ".html"),
		},
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}
	return s.writeAtomic(s.metaPath(site), data)
}

// writeArtifacts stores the original snapshot and the diff artifacts
// derived from it.
func (s *Store) writeArtifacts(site domain.CallSite, originalSource, evolvedSource string) error {
	originalsDir := filepath.Join(s.base, domain.OriginalsDirName)
	if err := os.MkdirAll(originalsDir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}
	if err := s.writeAtomic(s.originalPath(site), []byte(originalSource)); err != nil {
		return err
	}

	generatedAt := s.now()
	diffText, err := report.Unified(site, originalSource, evolvedSource, generatedAt)
	if err != nil {
		return err
	}
	md := report.Markdown(site, diffText, generatedAt)
	html := report.HTML(site, md)

	if err := s.writeAtomic(s.diffPath(site, ".diff"), []byte(diffText)); err != nil {
		return err
	}
	if err := s.writeAtomic(s.diffPath(site, ".md"), []byte(md)); err != nil {
		return err
	}
	return s.writeAtomic(s.diffPath(site, ".html"), []byte(html))
}

// List returns the call sites with a cached implementation inside scope,
// sorted by module then function.
func (s *Store) List(scope domain.Scope) ([]domain.CallSite, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.base)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var sites []domain.CallSite
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".py") {
			continue
		}
		site, ok := s.siteFromFilename(entry.Name())
		if !ok {
			continue
		}
		if s.matches(scope, site) {
			sites = append(sites, site)
		}
	}

	sort.Slice(sites, func(i, j int) bool {
		if sites[i].Module != sites[j].Module {
			return sites[i].Module < sites[j].Module
		}
		return sites[i].Function < sites[j].Function
	})
	return sites, nil
}

// Delete removes cached files inside scope and returns the number removed.
// A missing cache directory or an empty scope match removes nothing.
func (s *Store) Delete(scope domain.Scope) (int, error) {
	if err := scope.Validate(); err != nil {
		return 0, err
	}
	if _, err := os.Stat(s.base); errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}

	// Whole cache: count files, then remove the directory tree.
	if scope.Module == "" {
		removed := 0
		walkErr := filepath.WalkDir(s.base, func(_ string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				removed++
			}
			return nil
		})
		if walkErr != nil {
			return 0, zerr.Wrap(walkErr, domain.ErrStoreReadFailed.Error())
		}
		if err := os.RemoveAll(s.base); err != nil {
			return 0, zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
		}
		return removed, nil
	}

	sites, err := s.List(scope)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, site := range sites {
		for _, target := range s.sitePaths(site) {
			if err := os.Remove(target); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return removed, zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
			}
			removed++
		}
	}

	s.pruneEmptyDirs()
	return removed, nil
}

// DiffText returns the stored unified diff, computing it from the original
// and evolved sources when the stored file is missing.
func (s *Store) DiffText(site domain.CallSite) (string, error) {
	data, err := os.ReadFile(s.diffPath(site, ".diff"))
	if err == nil {
		return string(data), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	original, evolved, err := s.readPair(site)
	if err != nil {
		return "", err
	}
	return report.Unified(site, original, evolved, s.now())
}

// ArtifactPath returns the location of an existing artifact file.
func (s *Store) ArtifactPath(site domain.CallSite, kind domain.ArtifactKind) (string, error) {
	path := s.diffPath(site, "."+string(kind))
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(domain.ErrArtifactMissing, "path", path)
		}
		return "", zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	return path, nil
}

// Regenerate rebuilds the diff artifacts from the current original and
// evolved sources.
func (s *Store) Regenerate(site domain.CallSite) error {
	original, evolved, err := s.readPair(site)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(s.base, domain.DiffsDirName), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}
	return s.writeArtifacts(site, original, evolved)
}

// readPair loads the original snapshot and the evolved source for a site.
// Either one missing means no artifacts can be produced.
func (s *Store) readPair(site domain.CallSite) (original, evolved string, err error) {
	originalData, err := os.ReadFile(s.originalPath(site))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", "", zerr.With(domain.ErrArtifactMissing, "site", site.String())
		}
		return "", "", zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	evolvedData, err := os.ReadFile(s.sourcePath(site))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", "", zerr.With(domain.ErrArtifactMissing, "site", site.String())
		}
		return "", "", zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	return string(originalData), string(evolvedData), nil
}

// sitePaths lists every file a call site may own on disk.
func (s *Store) sitePaths(site domain.CallSite) []string {
	return []string{
		s.sourcePath(site),
		s.originalPath(site),
		s.diffPath(site, ".diff"),
		s.diffPath(site, ".md"),
		s.diffPath(site, ".html"),
		s.metaPath(site),
	}
}

// pruneEmptyDirs removes the artifact directories, and the base itself,
// when nothing is left inside them.
func (s *Store) pruneEmptyDirs() {
	dirs := []string{
		filepath.Join(s.base, domain.DiffsDirName),
		filepath.Join(s.base, domain.OriginalsDirName),
		s.base,
	}
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err == nil && len(entries) == 0 {
			_ = os.Remove(dir)
		}
	}
}

// siteFromFilename recovers a call site from a cached file name. The real
// dotted module name comes from the metadata document when present;
// otherwise the underscored form from the file name is used as-is.
func (s *Store) siteFromFilename(name string) (domain.CallSite, bool) {
	stem := strings.TrimSuffix(name, ".py")
	idx := strings.Index(stem, "__")
	if idx < 0 {
		return domain.CallSite{}, false
	}
	site := domain.CallSite{Module: stem[:idx], Function: stem[idx+2:]}

	metaData, err := os.ReadFile(filepath.Join(s.base, domain.DiffsDirName, stem+".meta.json"))
	if err == nil {
		var meta metaRecord
		if jsonErr := json.Unmarshal(metaData, &meta); jsonErr == nil && meta.Module != "" {
			site.Module = meta.Module
		}
	}
	return site, true
}

// matches applies a scope to a site, accepting either the dotted or the
// underscored module form so sites recovered from file names still match.
func (s *Store) matches(scope domain.Scope, site domain.CallSite) bool {
	if scope.Matches(site) {
		return true
	}
	if scope.Module == "" {
		return false
	}
	safe := domain.Scope{Module: domain.SafeModule(scope.Module), Function: scope.Function}
	return safe.Matches(site)
}

// writeAtomic writes data to path via a temp file in the same directory
// followed by a rename.
func (s *Store) writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, ".evolux-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

func (s *Store) sourcePath(site domain.CallSite) string {
	return filepath.Join(s.base, site.Key()+".py")
}

func (s *Store) originalPath(site domain.CallSite) string {
	return filepath.Join(s.base, domain.OriginalsDirName, site.Key()+".py")
}

func (s *Store) diffPath(site domain.CallSite, ext string) string {
	return filepath.Join(s.base, domain.DiffsDirName, site.Key()+ext)
}

func (s *Store) metaPath(site domain.CallSite) string {
	return filepath.Join(s.base, domain.DiffsDirName, site.Key()+".meta.json")
}
