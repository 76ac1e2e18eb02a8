// Package discovery finds result documents on disk for index manifest
// generation: it walks a directory tree and probes every JSON file that
// matches the name criteria to confirm it actually holds test results.
package discovery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cqv/internal/domain"
)

// Discovered is one JSON file confirmed to be a result document
type Discovered struct {
	Path   string
	Engine string
	Total  int
}

// Discoverer walks a directory tree for result documents. Hidden
// directories and the configured skip list are never descended into.
type Discoverer struct {
	skipDirs map[string]bool
	pattern  string
}

// NewDiscoverer creates a Discoverer. The pattern narrows candidate
// filenames: wildcards per filepath.Match ("*-results.json"), anything
// without wildcards as a substring match, empty matches every name.
func NewDiscoverer(skipDirs []string, pattern string) *Discoverer {
	skip := make(map[string]bool, len(skipDirs))
	for _, dir := range skipDirs {
		skip[dir] = true
	}
	return &Discoverer{skipDirs: skip, pattern: pattern}
}

// Discover finds every result document under root. skipped lists the JSON
// files that matched the name criteria but are not result documents
// (manifests, unrelated JSON); the caller decides how loudly to report
// them.
func (d *Discoverer) Discover(root string) (found []Discovered, skipped []string, err error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, fmt.Errorf("scan path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("scan path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := entry.Name()
		if entry.IsDir() {
			if strings.HasPrefix(name, ".") && name != "." && name != ".." {
				return filepath.SkipDir
			}
			if d.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(name, ".json") || !d.matchesPattern(name) {
			return nil
		}

		disc, ok, err := probe(path)
		if err != nil {
			return err
		}
		if !ok {
			skipped = append(skipped, path)
			return nil
		}
		found = append(found, disc)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return found, skipped, nil
}

func (d *Discoverer) matchesPattern(name string) bool {
	if d.pattern == "" {
		return true
	}
	if matched, err := filepath.Match(d.pattern, name); err == nil && matched {
		return true
	}
	if !strings.ContainsAny(d.pattern, "*?") {
		return strings.Contains(name, d.pattern)
	}
	return false
}

// probe reads one candidate file and confirms it is a result document.
// Parseable JSON without a results array is not an error, just not a
// result document (manifests and unrelated JSON land here).
func probe(path string) (Discovered, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Discovered{}, false, fmt.Errorf("error reading file %s: %w", path, err)
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Discovered{}, false, nil
	}
	if doc.Results == nil {
		return Discovered{}, false, nil
	}

	return Discovered{
		Path:   path,
		Engine: doc.Engine.Label(""),
		Total:  len(doc.Results),
	}, true, nil
}
