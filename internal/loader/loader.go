package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"cqv/internal/domain"
)

// Loader fetches result documents and index manifests from local paths or
// http(s) URLs. Failures are terminal for the one operation; no retries.
type Loader struct {
	client *http.Client
	log    *zap.Logger
}

// New creates a Loader. A nil logger is replaced with a no-op one.
func New(timeout time.Duration, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Loader{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// IsURL reports whether ref is an http(s) URL rather than a local path
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Load reads and parses one result document from a local path or URL.
// Read errors and malformed JSON are wrapped with a descriptive message.
func (l *Loader) Load(ctx context.Context, ref string) (*domain.Document, error) {
	data, err := l.fetch(ctx, ref)
	if err != nil {
		return nil, err
	}

	return Parse(data, ref)
}

// Parse decodes one already-fetched result document
func Parse(data []byte, ref string) (*domain.Document, error) {
	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse results document %s: %w", ref, err)
	}
	return &doc, nil
}

// LoadRaw reads one document without parsing it, for schema validation
func (l *Loader) LoadRaw(ctx context.Context, ref string) ([]byte, error) {
	return l.fetch(ctx, ref)
}

// LoadIndex reads an index manifest and resolves each listed file against
// the manifest's own location.
func (l *Loader) LoadIndex(ctx context.Context, ref string) ([]string, error) {
	data, err := l.fetch(ctx, ref)
	if err != nil {
		return nil, err
	}

	var idx domain.Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse index manifest %s: %w", ref, err)
	}

	resolved := make([]string, 0, len(idx.Files))
	for _, f := range idx.Files {
		resolved = append(resolved, Resolve(ref, f))
	}
	return resolved, nil
}

// Resolve resolves a manifest entry relative to the manifest reference.
// Absolute entries (URLs or rooted paths) are returned as-is.
func Resolve(indexRef, entry string) string {
	if IsURL(entry) || filepath.IsAbs(entry) {
		return entry
	}
	if IsURL(indexRef) {
		u, err := url.Parse(indexRef)
		if err != nil {
			return entry
		}
		u.Path = path.Join(path.Dir(u.Path), entry)
		u.RawQuery = ""
		return u.String()
	}
	return filepath.Join(filepath.Dir(indexRef), entry)
}

// Fetched is one outcome of a multi-file fetch
type Fetched struct {
	Ref      string
	Filename string
	Doc      *domain.Document
}

// FetchAll loads every referenced document concurrently and waits for all
// outcomes. Individually failed fetches are dropped with a warning; the
// batch never aborts because one file failed. Results keep the input
// order. The optional progress callback is invoked once per completed
// fetch (success or failure).
func (l *Loader) FetchAll(ctx context.Context, refs []string, progress func(done, total int)) []Fetched {
	type outcome struct {
		idx int
		doc *domain.Document
		err error
	}

	results := make([]outcome, len(refs))
	var wg sync.WaitGroup
	var mu sync.Mutex
	done := 0

	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref string) {
			defer wg.Done()
			doc, err := l.Load(ctx, ref)
			results[i] = outcome{idx: i, doc: doc, err: err}

			mu.Lock()
			done++
			if progress != nil {
				progress(done, len(refs))
			}
			mu.Unlock()
		}(i, ref)
	}
	wg.Wait()

	fetched := make([]Fetched, 0, len(refs))
	for i, out := range results {
		if out.err != nil {
			l.log.Warn("dropping failed fetch",
				zap.String("ref", refs[i]),
				zap.Error(out.err))
			continue
		}
		fetched = append(fetched, Fetched{
			Ref:      refs[i],
			Filename: Filename(refs[i]),
			Doc:      out.doc,
		})
	}
	return fetched
}

// Filename extracts the display filename from a path or URL
func Filename(ref string) string {
	if IsURL(ref) {
		if u, err := url.Parse(ref); err == nil {
			return path.Base(u.Path)
		}
	}
	return filepath.Base(ref)
}

// fetch reads raw bytes from a URL or local path
func (l *Loader) fetch(ctx context.Context, ref string) ([]byte, error) {
	if IsURL(ref) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
		if err != nil {
			return nil, fmt.Errorf("build request for %s: %w", ref, err)
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", ref, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: unexpected status %s", ref, resp.Status)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read body of %s: %w", ref, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", ref, err)
	}
	return data, nil
}
