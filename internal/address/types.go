// internal/address/types.go
package address

// Segment represents a single component of an address path, e.g. `name[index]`.
type Segment struct {
	Name  string
	Index int // occurrence among same-name siblings; zero-based.
}

// NewSegment creates a path segment with the implied zero occurrence.
func NewSegment(name string) Segment {
	return Segment{Name: name}
}

// NewSegmentIndexed creates a path segment with an explicit occurrence index.
func NewSegmentIndexed(name string, index int) Segment {
	return Segment{Name: name, Index: index}
}

// Address is the structured representation of a unique entity identifier:
// the archive entry name plus the path of enclosing blocks down to the
// entity itself (the last segment).
type Address struct {
	File string
	Path []Segment
}

// New builds an address from a file name and path segments.
func New(file string, path ...Segment) Address {
	return Address{File: file, Path: path}
}

// Child returns a copy of the address extended by one path segment.
func (a Address) Child(name string, index int) Address {
	child := Address{File: a.File, Path: make([]Segment, 0, len(a.Path)+1)}
	child.Path = append(child.Path, a.Path...)
	child.Path = append(child.Path, Segment{Name: name, Index: index})
	return child
}

// Leaf returns the final path segment, the entity's own name and occurrence.
// The zero Segment is returned for an empty path.
func (a Address) Leaf() Segment {
	if len(a.Path) == 0 {
		return Segment{}
	}
	return a.Path[len(a.Path)-1]
}

// IsZero reports whether the address carries no information at all.
func (a Address) IsZero() bool {
	return a.File == "" && len(a.Path) == 0
}
