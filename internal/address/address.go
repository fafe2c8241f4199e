// internal/address/address.go
package address

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// String serializes the Address into its canonical `file:path` form.
func (a Address) String() string {
	if a.File == "" {
		return a.PathString()
	}
	return a.File + ":" + a.PathString()
}

// PathString serializes only the path part, without the file prefix.
// Occurrence index zero is implied and omitted.
func (a Address) PathString() string {
	var sb strings.Builder
	for i, segment := range a.Path {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(formatSegmentName(segment.Name))
		if segment.Index > 0 {
			fmt.Fprintf(&sb, "[%d]", segment.Index)
		}
	}
	return sb.String()
}

func formatSegmentName(name string) string {
	if bareName.MatchString(name) {
		return name
	}
	return strconv.Quote(name)
}

// MarshalText serializes the canonical form, so addresses embed in JSON
// reports as plain strings.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses the canonical form back.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Equal checks for deep equality between two addresses.
func (a Address) Equal(other Address) bool {
	return a.File == other.File && slices.Equal(a.Path, other.Path)
}

// SamePath reports whether two addresses share the same path, ignoring
// which file they belong to.
func (a Address) SamePath(other Address) bool {
	return slices.Equal(a.Path, other.Path)
}

// Contains reports whether other lies strictly inside a's subtree: same
// file, with a's path a proper prefix of other's.
func (a Address) Contains(other Address) bool {
	if a.File != other.File || len(a.Path) >= len(other.Path) {
		return false
	}
	return slices.Equal(a.Path, other.Path[:len(a.Path)])
}

// NamesKey returns the path with every occurrence index stripped, as a
// grouping key for best-effort matching when indices shift.
func (a Address) NamesKey() string {
	var sb strings.Builder
	for i, segment := range a.Path {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(formatSegmentName(segment.Name))
	}
	return sb.String()
}
