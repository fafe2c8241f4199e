// internal/pak/archive.go
package pak

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// Archive is an ordered collection of named entries decoded from one
// container. It owns its entries; payload changes go through SetPayload
// so the archive can track what must be recompressed on Pack.
type Archive struct {
	entries []*Entry
	byName  map[string]*Entry
	raw     []byte // original container bytes; returned verbatim while unmodified
	comment string
	dirty   bool
}

// Open decodes container bytes into an Archive. Malformed input (a bad
// index, a truncated entry, duplicate entry names) fails with a
// *FormatError and no Archive. Every entry's compressed bytes are read
// up front; decompression happens lazily per entry.
func Open(data []byte) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &FormatError{Reason: "reading container index", Err: err}
	}
	zr.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})

	arc := &Archive{
		raw:     data,
		comment: zr.Comment,
		byName:  make(map[string]*Entry, len(zr.File)),
	}
	for _, f := range zr.File {
		if _, dup := arc.byName[f.Name]; dup {
			return nil, &FormatError{Reason: fmt.Sprintf("duplicate entry name %q", f.Name)}
		}
		raw, err := f.OpenRaw()
		if err != nil {
			return nil, &FormatError{Reason: fmt.Sprintf("entry %q", f.Name), Err: err}
		}
		compressed, err := io.ReadAll(raw)
		if err != nil {
			return nil, &FormatError{Reason: fmt.Sprintf("entry %q is truncated", f.Name), Err: err}
		}
		e := &Entry{name: f.Name, hdr: f.FileHeader, file: f, compressed: compressed}
		arc.entries = append(arc.entries, e)
		arc.byName[f.Name] = e
	}
	return arc, nil
}

// Len returns the number of entries.
func (a *Archive) Len() int { return len(a.entries) }

// Entries returns the entries in container order.
func (a *Archive) Entries() []*Entry { return a.entries }

// Entry returns the named entry.
func (a *Archive) Entry(name string) (*Entry, bool) {
	e, ok := a.byName[name]
	return e, ok
}

// Names returns entry names in container order.
func (a *Archive) Names() []string {
	names := make([]string, len(a.entries))
	for i, e := range a.entries {
		names[i] = e.name
	}
	return names
}

// Comment returns the archive-level comment.
func (a *Archive) Comment() string { return a.comment }

// Modified reports whether any entry payload was replaced.
func (a *Archive) Modified() bool { return a.dirty }

// SetPayload replaces the named entry's payload. The entry will be
// recompressed with its original method on the next Pack.
func (a *Archive) SetPayload(name string, data []byte) error {
	e, ok := a.byName[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrEntryNotFound)
	}
	e.payload = data
	e.decoded = true
	e.modified = true
	e.compressed = nil
	a.dirty = true
	return nil
}

// Clone returns an independent copy sharing immutable payload bytes.
// SetPayload on the clone never touches the original, which is how the
// build pipeline keeps its all-or-nothing promise.
func (a *Archive) Clone() *Archive {
	clone := &Archive{
		raw:     a.raw,
		comment: a.comment,
		dirty:   a.dirty,
		byName:  make(map[string]*Entry, len(a.entries)),
	}
	for _, e := range a.entries {
		ce := *e
		clone.entries = append(clone.entries, &ce)
		clone.byName[ce.name] = &ce
	}
	return clone
}

// Pack encodes the archive back into container bytes. A fully
// unmodified archive returns its original bytes unchanged; otherwise
// unmodified entries are copied raw and modified entries recompressed.
func (a *Archive) Pack() ([]byte, error) {
	if !a.dirty && a.raw != nil {
		return a.raw, nil
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})
	if a.comment != "" {
		if err := zw.SetComment(a.comment); err != nil {
			return nil, fmt.Errorf("writing container comment: %w", err)
		}
	}
	for _, e := range a.entries {
		if err := e.writeTo(zw); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing container: %w", err)
	}
	return buf.Bytes(), nil
}
