// internal/diff/archive.go
package diff

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"runtime"
	"slices"

	"github.com/PakBeast/PakBeast/internal/ctxlog"
	"github.com/PakBeast/PakBeast/internal/edit"
	"github.com/PakBeast/PakBeast/internal/pak"
	"github.com/PakBeast/PakBeast/internal/script"
	"github.com/PakBeast/PakBeast/internal/textutil"
	"github.com/PakBeast/PakBeast/internal/worker"
)

// FileKind classifies one entry pair in an archive comparison.
type FileKind string

const (
	FileUnchanged      FileKind = "unchanged"
	FileAdded          FileKind = "added"
	FileRemoved        FileKind = "removed"
	FileBinaryModified FileKind = "modified-binary"
	FileTextModified   FileKind = "modified-text"
)

// FileDiff is the comparison outcome for one entry name. Text pairs
// carry their entity-level records; other kinds are bare.
type FileDiff struct {
	Path    string   `json:"path"`
	Kind    FileKind `json:"kind"`
	Records []Record `json:"records,omitempty"`
}

// Report is an archive-level comparison, ordered by entry name.
// Identical pairs are only counted, never listed.
type Report struct {
	Files     []FileDiff `json:"files"`
	Unchanged int        `json:"unchanged"`
}

// Options tunes an archive comparison.
type Options struct {
	Workers int // defaults to GOMAXPROCS
}

// Archives compares two containers entry by entry, pairing by name. Each
// pair is classified and, when both sides hold text, diffed at the
// entity level. Pairs are processed on the worker pool; a cancelled
// context or an unreadable entry aborts the comparison.
func Archives(ctx context.Context, a, b *pak.Archive, opts Options) (*Report, error) {
	logger := ctxlog.FromContext(ctx)
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	nameSet := make(map[string]struct{}, a.Len()+b.Len())
	for _, n := range a.Names() {
		nameSet[n] = struct{}{}
	}
	for _, n := range b.Names() {
		nameSet[n] = struct{}{}
	}
	names := slices.Sorted(maps.Keys(nameSet))
	logger.Debug("Comparing archives.", "pairs", len(names), "workers", workers)

	pool := worker.NewPool(workers, func(ctx context.Context, name string) (FileDiff, error) {
		return comparePair(a, b, name)
	})
	results, err := pool.Execute(ctx, names)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, r := range results {
		if r.Err != nil {
			return nil, fmt.Errorf("comparing %s: %w", r.Input, r.Err)
		}
		if r.Value.Kind == FileUnchanged {
			report.Unchanged++
			continue
		}
		report.Files = append(report.Files, r.Value)
	}
	logger.Debug("Comparison finished.", "changed", len(report.Files), "unchanged", report.Unchanged)
	return report, nil
}

func comparePair(a, b *pak.Archive, name string) (FileDiff, error) {
	aEntry, inA := a.Entry(name)
	bEntry, inB := b.Entry(name)
	switch {
	case !inA:
		return FileDiff{Path: name, Kind: FileAdded}, nil
	case !inB:
		return FileDiff{Path: name, Kind: FileRemoved}, nil
	}

	aData, err := aEntry.Payload()
	if err != nil {
		return FileDiff{}, err
	}
	bData, err := bEntry.Payload()
	if err != nil {
		return FileDiff{}, err
	}

	if bytes.Equal(aData, bData) {
		return FileDiff{Path: name, Kind: FileUnchanged}, nil
	}
	if !textutil.IsText(aData) || !textutil.IsText(bData) {
		return FileDiff{Path: name, Kind: FileBinaryModified}, nil
	}

	aFile, err := script.Parse(name, aData)
	if err != nil {
		return FileDiff{}, err
	}
	bFile, err := script.Parse(name, bData)
	if err != nil {
		return FileDiff{}, err
	}
	return FileDiff{Path: name, Kind: FileTextModified, Records: Files(name, aFile, bFile)}, nil
}

// Edits converts the report into the edit set that replays its text
// changes: Modified records become set edits, Removed records delete
// edits. Added entities have no edit form and are left out.
func (r *Report) Edits() []edit.Edit {
	var edits []edit.Edit
	for _, f := range r.Files {
		for _, rec := range f.Records {
			switch rec.Kind {
			case Modified:
				edits = append(edits, edit.Set(rec.Address, rec.New...))
			case Removed:
				edits = append(edits, edit.Delete(rec.Address))
			}
		}
	}
	return edits
}
