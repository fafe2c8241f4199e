// internal/search/search.go

// Package search finds entities by keyword across the script files of an
// archive. Matching is case-insensitive, every keyword must match, and
// underscores count as spaces, so `one handed` finds `one_handed`.
package search

import (
	"context"
	"path"
	"strings"

	"github.com/PakBeast/PakBeast/internal/address"
	"github.com/PakBeast/PakBeast/internal/ctxlog"
	"github.com/PakBeast/PakBeast/internal/pak"
	"github.com/PakBeast/PakBeast/internal/script"
	"github.com/PakBeast/PakBeast/internal/textutil"
	"github.com/PakBeast/PakBeast/internal/worker"
)

// DefaultExtensions is the entry filter applied when a Query does not
// bring its own: the script-like formats the game ships.
var DefaultExtensions = []string{".scr", ".ini", ".loot", ".gui", ".cfg", ".json", ".txt"}

// Query selects entities by keyword.
type Query struct {
	Keywords   []string
	Extensions []string // nil means DefaultExtensions
}

// Hit is one matching entity.
type Hit struct {
	Address address.Address `json:"address"`
	Kind    script.Kind     `json:"kind"`
	Name    string          `json:"name"`
	Context string          `json:"context,omitempty"` // enclosing blocks, display names preferred
	Value   string          `json:"value,omitempty"`
	Line    int             `json:"line"`
}

// Result is the outcome of an archive-wide search.
type Result struct {
	Hits []Hit `json:"hits"`
	// Skipped lists entries that carry a searchable extension but hold
	// no decodable text.
	Skipped []string `json:"skipped,omitempty"`
}

// File returns the hits within one parsed file, in document order. An
// empty keyword list matches nothing.
func File(sf *script.SourceFile, q Query) []Hit {
	keywords := normalizeAll(q.Keywords)
	if len(keywords) == 0 {
		return nil
	}

	var hits []Hit
	sf.Walk(func(e *script.Entity) {
		if e.Deleted() {
			return
		}
		blockPath := contextFor(sf, e)
		if !matches(keywords, haystack(blockPath, e)) {
			return
		}
		hit := Hit{
			Address: e.Addr,
			Kind:    e.Kind,
			Name:    e.Name,
			Context: blockPath,
			Line:    e.Line,
		}
		if e.Kind != script.KindBlock {
			hit.Value = e.ValueText()
		}
		hits = append(hits, hit)
	})
	return hits
}

// Archive searches every filtered entry on the worker pool. Entries that
// are binary, corrupt, or otherwise undecodable are skipped and listed
// in the Result; only cancellation returns an error.
func Archive(ctx context.Context, arc *pak.Archive, q Query, workers int) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	extensions := q.Extensions
	if extensions == nil {
		extensions = DefaultExtensions
	}
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}

	var candidates []*pak.Entry
	for _, e := range arc.Entries() {
		if allowed[strings.ToLower(path.Ext(e.Name()))] {
			candidates = append(candidates, e)
		}
	}
	logger.Debug("Searching archive.", "entries", len(candidates), "keywords", q.Keywords)

	type outcome struct {
		hits    []Hit
		skipped string
	}
	pool := worker.NewPool(workers, func(ctx context.Context, e *pak.Entry) (outcome, error) {
		data, err := e.Payload()
		if err != nil {
			ctxlog.FromContext(ctx).Debug("Skipping unreadable entry.", "entry", e.Name(), "error", err)
			return outcome{skipped: e.Name()}, nil
		}
		if !textutil.IsText(data) {
			return outcome{skipped: e.Name()}, nil
		}
		sf, err := script.Parse(e.Name(), data)
		if err != nil {
			return outcome{skipped: e.Name()}, nil
		}
		return outcome{hits: File(sf, q)}, nil
	})

	results, err := pool.Execute(ctx, candidates)
	if err != nil {
		return nil, err
	}

	out := &Result{}
	for _, r := range results {
		if r.Value.skipped != "" {
			out.Skipped = append(out.Skipped, r.Value.skipped)
			continue
		}
		out.Hits = append(out.Hits, r.Value.hits...)
	}
	logger.Debug("Search finished.", "hits", len(out.Hits), "skipped", len(out.Skipped))
	return out, nil
}

// contextFor labels the enclosing blocks outermost first, preferring a
// block's display name over its type, the way the game names instances.
func contextFor(sf *script.SourceFile, e *script.Entity) string {
	if len(e.Addr.Path) <= 1 {
		return ""
	}
	labels := make([]string, 0, len(e.Addr.Path)-1)
	for k := 1; k < len(e.Addr.Path); k++ {
		ancestor, ok := sf.Find(address.Address{File: e.Addr.File, Path: e.Addr.Path[:k]})
		if !ok {
			continue
		}
		label := ancestor.Name
		if ancestor.DisplayName != "" {
			label = ancestor.DisplayName
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, " > ")
}

func haystack(blockPath string, e *script.Entity) string {
	parts := []string{blockPath, e.Name, e.DisplayName}
	if e.Kind != script.KindBlock {
		parts = append(parts, e.ValueText())
	}
	return normalize(strings.Join(parts, " "))
}

func matches(keywords []string, hay string) bool {
	for _, kw := range keywords {
		if !strings.Contains(hay, kw) {
			return false
		}
	}
	return true
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "_", " ")
}

func normalizeAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = normalize(strings.TrimSpace(kw)); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
