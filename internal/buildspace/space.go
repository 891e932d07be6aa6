// Package buildspace compiles configured lint crates into Go plugins
// inside a per-project build directory, with a fingerprint cache that
// skips up-to-date plugins across runs.
package buildspace

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// cacheSchemaVersion invalidates persisted fingerprints when the
// payload format changes.
const cacheSchemaVersion uint16 = 1

// Space is the build directory of one project: compiled plugin
// libraries, git checkouts, and the fingerprint cache.
type Space struct {
	dir string

	mu    sync.Mutex
	cache cachePayload
}

type cachePayload struct {
	Schema  uint16
	Entries map[string]cacheEntry
}

type cacheEntry struct {
	Fingerprint string
	Lib         string
}

// Open creates (or reopens) the build space under root, conventionally
// the directory holding the project manifest.
func Open(root string) (*Space, error) {
	dir := filepath.Join(root, ".marker")
	for _, sub := range []string{"lib", "git"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, err
		}
	}
	s := &Space{dir: dir, cache: cachePayload{Schema: cacheSchemaVersion, Entries: map[string]cacheEntry{}}}
	s.loadCache()
	return s, nil
}

// Dir returns the build space root.
func (s *Space) Dir() string { return s.dir }

func (s *Space) cachePath() string { return filepath.Join(s.dir, "fingerprints.mp") }

func (s *Space) libPath(crate string) string {
	return filepath.Join(s.dir, "lib", crate+".so")
}

func (s *Space) gitPath(crate string) string {
	return filepath.Join(s.dir, "git", crate)
}

// loadCache reads the persisted fingerprints. Any failure starts with
// an empty cache: the worst case is a rebuild.
func (s *Space) loadCache() {
	data, err := os.ReadFile(s.cachePath())
	if err != nil {
		return
	}
	var payload cachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return
	}
	if payload.Schema != cacheSchemaVersion || payload.Entries == nil {
		return
	}
	s.cache = payload
}

func (s *Space) saveCache() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := msgpack.Marshal(&s.cache)
	if err != nil {
		return err
	}
	tmp := s.cachePath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.cachePath())
}

// cached reports whether a crate's plugin is up to date.
func (s *Space) cached(crate, fingerprint string) (string, bool) {
	s.mu.Lock()
	entry, ok := s.cache.Entries[crate]
	s.mu.Unlock()
	if !ok || entry.Fingerprint != fingerprint {
		return "", false
	}
	if _, err := os.Stat(entry.Lib); err != nil {
		return "", false
	}
	return entry.Lib, true
}

func (s *Space) remember(crate, fingerprint, lib string) {
	s.mu.Lock()
	s.cache.Entries[crate] = cacheEntry{Fingerprint: fingerprint, Lib: lib}
	s.mu.Unlock()
}

// fingerprint hashes a crate's source tree plus the build inputs that
// would change the resulting plugin.
func fingerprint(dir string, salt ...string) (string, error) {
	h := sha256.New()
	for _, s := range salt {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if name != "." && (strings.HasPrefix(name, ".") || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".go") || d.Name() == "go.mod" || d.Name() == "go.sum" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	sort.Strings(files)

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		h.Write([]byte(rel))
		h.Write([]byte{0})
		h.Write(content)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
