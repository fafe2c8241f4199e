// internal/script/sourcefile.go
package script

import (
	"fmt"
	"strings"

	"github.com/PakBeast/PakBeast/internal/address"
)

// SourceFile is the parsed, editable representation of one text entry.
// It is derived state: cheap to rebuild from the entry payload, never
// shared between goroutines.
type SourceFile struct {
	Name string

	text     string
	segments []segment
	order    []*Entity
	index    map[string]*Entity
}

// Entities returns every recognized entity in document order, outermost
// first (a block precedes its children).
func (sf *SourceFile) Entities() []*Entity { return sf.order }

// Walk visits every entity in document order.
func (sf *SourceFile) Walk(fn func(*Entity)) {
	for _, e := range sf.order {
		fn(e)
	}
}

// Find returns the entity at addr, whether deleted or live.
func (sf *SourceFile) Find(addr address.Address) (*Entity, bool) {
	e, ok := sf.index[addr.PathString()]
	return e, ok
}

// SetValues replaces the values of the entity at addr. It reports a
// wrapped ErrAddressNotFound for unknown or already-deleted addresses
// and ErrTypeMismatch for incompatible value shapes.
func (sf *SourceFile) SetValues(addr address.Address, values []Literal) error {
	e, err := sf.lookup(addr)
	if err != nil {
		return err
	}
	return e.setValues(values)
}

// Delete removes the entity at addr from the rendering; for a block
// that includes its whole subtree. The address stays reserved: deleting
// or editing it again reports ErrAddressNotFound.
func (sf *SourceFile) Delete(addr address.Address) error {
	e, err := sf.lookup(addr)
	if err != nil {
		return err
	}
	e.markDeleted()
	return nil
}

func (sf *SourceFile) lookup(addr address.Address) (*Entity, error) {
	e, ok := sf.index[addr.PathString()]
	if !ok || e.deleted {
		return nil, fmt.Errorf("%s: %w", addr, ErrAddressNotFound)
	}
	return e, nil
}

// Render folds the skeleton back into text. With no edits applied the
// result is byte-identical to the parsed input.
func (sf *SourceFile) Render() []byte {
	var sb strings.Builder
	sb.Grow(len(sf.text))
	for _, seg := range sf.segments {
		if seg.ent != nil {
			sb.WriteString(seg.ent.currentText())
		} else {
			sb.WriteString(seg.text)
		}
	}
	return []byte(sb.String())
}

// assign walks the finished tree once, allocating occurrence indices
// within each sibling group and registering every entity under its
// address. Indices are fixed from here on; deletions never renumber.
func (sf *SourceFile) assign(parent address.Address, segs []segment) {
	counts := make(map[string]int)
	for _, seg := range segs {
		e := seg.ent
		if e == nil {
			continue
		}
		idx := counts[e.Name]
		counts[e.Name]++
		e.Addr = parent.Child(e.Name, idx)
		sf.order = append(sf.order, e)
		sf.index[e.Addr.PathString()] = e
		if e.Kind == KindBlock {
			sf.assign(e.Addr, e.children)
		}
	}
}
