// internal/edit/edit.go

// Package edit defines the recorded change operations applied to parsed
// script files. An edit log lives independently of any parse: it can be
// saved, reloaded, and replayed against a fresh baseline.
package edit

import (
	"fmt"

	"github.com/PakBeast/PakBeast/internal/address"
	"github.com/PakBeast/PakBeast/internal/script"
)

// Op is the operation an Edit performs.
type Op int

const (
	// OpSet replaces the values of the addressed entity.
	OpSet Op = iota
	// OpDelete removes the addressed entity, a block together with its
	// whole subtree.
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpSet:
		return "set"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

// Edit is one recorded operation against an addressed entity. Disabled
// edits stay in the log but are skipped at build time.
type Edit struct {
	Address address.Address
	Op      Op
	Values  []script.Literal
	Enabled bool
	Note    string
}

// Set builds an enabled value-replacement edit.
func Set(addr address.Address, values ...script.Literal) Edit {
	return Edit{Address: addr, Op: OpSet, Values: values, Enabled: true}
}

// Delete builds an enabled entity-removal edit.
func Delete(addr address.Address) Edit {
	return Edit{Address: addr, Op: OpDelete, Enabled: true}
}

// Apply maps the edit onto its parsed file. Callers replay a log in
// recorded order, so repeated edits to one address compose
// last-write-wins; anything after a delete reports ErrAddressNotFound.
// Enabled is the caller's concern: Apply applies unconditionally.
func Apply(sf *script.SourceFile, e Edit) error {
	switch e.Op {
	case OpSet:
		return sf.SetValues(e.Address, e.Values)
	case OpDelete:
		return sf.Delete(e.Address)
	}
	return fmt.Errorf("unknown edit operation %d", e.Op)
}

// ByFile groups the enabled edits by target file, preserving recorded
// order within each group. The returned file names are in order of
// first appearance.
func ByFile(edits []Edit) (map[string][]Edit, []string) {
	grouped := make(map[string][]Edit)
	var files []string
	for _, e := range edits {
		if !e.Enabled {
			continue
		}
		if _, seen := grouped[e.Address.File]; !seen {
			files = append(files, e.Address.File)
		}
		grouped[e.Address.File] = append(grouped[e.Address.File], e)
	}
	return grouped, files
}
