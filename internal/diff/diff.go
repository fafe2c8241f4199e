// internal/diff/diff.go

// Package diff computes entity-level change lists between two versions
// of a script file, and file-level reports between two archives.
package diff

import (
	"cmp"
	"slices"

	"github.com/PakBeast/PakBeast/internal/address"
	"github.com/PakBeast/PakBeast/internal/script"
)

// Kind classifies one entity-level change.
type Kind string

const (
	Added    Kind = "added"
	Removed  Kind = "removed"
	Modified Kind = "modified"
)

// Record is one entity-level change between two versions of a file.
// Modified and Removed records carry the old version's address and
// position, Added records the new version's.
type Record struct {
	File       string           `json:"file"`
	Kind       Kind             `json:"kind"`
	EntityKind script.Kind      `json:"entity"`
	Address    address.Address  `json:"address"`
	Old        []script.Literal `json:"old,omitempty"`
	New        []script.Literal `json:"new,omitempty"`
	Line       int              `json:"line"`
}

type groupKey struct {
	names string
	kind  script.Kind
}

// Files compares two parses of the same logical file and returns the
// change records in document order. Entities match by exact address
// first; survivors pair greedily in document order within the same
// (index-free path, kind) group, which keeps occurrence shifts from
// flooding the report when an entity was inserted or removed above its
// same-name siblings. What remains is Added or Removed. Blocks never
// modify: their children report their own changes, and descendants of
// an added or removed block are folded into the block's record.
func Files(name string, a, b *script.SourceFile) []Record {
	aEnts := liveEntities(a)
	bEnts := liveEntities(b)

	bByPath := make(map[string]*script.Entity, len(bEnts))
	for _, be := range bEnts {
		bByPath[be.Addr.PathString()] = be
	}

	pairs := make(map[*script.Entity]*script.Entity, len(aEnts))
	taken := make(map[*script.Entity]bool, len(bEnts))
	for _, ae := range aEnts {
		if be, ok := bByPath[ae.Addr.PathString()]; ok && be.Kind == ae.Kind {
			pairs[ae] = be
			taken[be] = true
		}
	}

	groups := make(map[groupKey][]*script.Entity)
	for _, be := range bEnts {
		if !taken[be] {
			key := groupKey{be.Addr.NamesKey(), be.Kind}
			groups[key] = append(groups[key], be)
		}
	}
	for _, ae := range aEnts {
		if _, ok := pairs[ae]; ok {
			continue
		}
		key := groupKey{ae.Addr.NamesKey(), ae.Kind}
		if candidates := groups[key]; len(candidates) > 0 {
			be := candidates[0]
			groups[key] = candidates[1:]
			pairs[ae] = be
			taken[be] = true
		}
	}

	var records []Record
	for _, ae := range aEnts {
		be, ok := pairs[ae]
		if !ok {
			records = append(records, newRecord(name, Removed, ae))
			continue
		}
		if ae.Kind == script.KindBlock {
			continue
		}
		if !equalValues(ae.Values(), be.Values()) {
			rec := newRecord(name, Modified, ae)
			rec.Old = ae.Values()
			rec.New = be.Values()
			records = append(records, rec)
		}
	}
	for _, be := range bEnts {
		if !taken[be] {
			records = append(records, newRecord(name, Added, be))
		}
	}

	records = suppressDescendants(records)
	slices.SortStableFunc(records, func(x, y Record) int {
		if c := cmp.Compare(x.Line, y.Line); c != 0 {
			return c
		}
		if c := cmp.Compare(kindRank(x.Kind), kindRank(y.Kind)); c != 0 {
			return c
		}
		return cmp.Compare(x.Address.String(), y.Address.String())
	})
	return records
}

func liveEntities(sf *script.SourceFile) []*script.Entity {
	var out []*script.Entity
	sf.Walk(func(e *script.Entity) {
		if !e.Deleted() {
			out = append(out, e)
		}
	})
	return out
}

func newRecord(file string, kind Kind, e *script.Entity) Record {
	rec := Record{
		File:       file,
		Kind:       kind,
		EntityKind: e.Kind,
		Address:    address.Address{File: file, Path: e.Addr.Path},
		Line:       e.Line,
	}
	if e.Kind != script.KindBlock {
		switch kind {
		case Removed:
			rec.Old = e.Values()
		case Added:
			rec.New = e.Values()
		}
	}
	return rec
}

func equalValues(a, b []script.Literal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].EqualValue(b[i]) {
			return false
		}
	}
	return true
}

// suppressDescendants drops records that lie inside an added or removed
// block's subtree; the block record subsumes them. Removed and Modified
// records live on the old side, Added records on the new side, and
// containment only counts within the same side.
func suppressDescendants(records []Record) []Record {
	var oldBlocks, newBlocks []address.Address
	for _, r := range records {
		if r.EntityKind != script.KindBlock {
			continue
		}
		switch r.Kind {
		case Removed:
			oldBlocks = append(oldBlocks, r.Address)
		case Added:
			newBlocks = append(newBlocks, r.Address)
		}
	}
	if len(oldBlocks) == 0 && len(newBlocks) == 0 {
		return records
	}

	out := records[:0]
	for _, r := range records {
		anchors := oldBlocks
		if r.Kind == Added {
			anchors = newBlocks
		}
		inside := false
		for _, block := range anchors {
			if block.Contains(r.Address) {
				inside = true
				break
			}
		}
		if !inside {
			out = append(out, r)
		}
	}
	return out
}

func kindRank(k Kind) int {
	switch k {
	case Modified:
		return 0
	case Removed:
		return 1
	default:
		return 2
	}
}
