// internal/pak/entry.go
package pak

import (
	"archive/zip"
	"fmt"
	"io"
	"time"
)

// Entry is one named payload inside an Archive. The original header and
// compressed bytes are kept so an untouched entry round-trips bit for
// bit. An Entry is not safe for concurrent use; parallel pipelines hand
// each entry to exactly one worker.
type Entry struct {
	name       string
	hdr        zip.FileHeader
	file       *zip.File // nil once the payload was replaced
	compressed []byte    // original raw bytes; nil once replaced
	payload    []byte
	decoded    bool
	modified   bool
}

// Name returns the entry's name, a forward-slash relative path.
func (e *Entry) Name() string { return e.name }

// Modified reports whether the payload was replaced since Open.
func (e *Entry) Modified() bool { return e.modified }

// Size returns the uncompressed payload size in bytes.
func (e *Entry) Size() uint64 {
	if e.modified {
		return uint64(len(e.payload))
	}
	return e.hdr.UncompressedSize64
}

// CompressedSize returns the stored size in bytes. For a modified entry
// the final size is unknown until Pack, so the payload size is reported.
func (e *Entry) CompressedSize() uint64 {
	if e.modified {
		return uint64(len(e.payload))
	}
	return e.hdr.CompressedSize64
}

// Method returns the container's compression method id for this entry.
func (e *Entry) Method() uint16 { return e.hdr.Method }

// ModTime returns the entry's recorded modification time.
func (e *Entry) ModTime() time.Time { return e.hdr.Modified }

// Payload returns the decompressed payload, decoding it on first use.
// A decompression or checksum failure means the container lied about
// this entry and surfaces as a *FormatError.
func (e *Entry) Payload() ([]byte, error) {
	if e.decoded {
		return e.payload, nil
	}
	rc, err := e.file.Open()
	if err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("entry %q", e.name), Err: err}
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("decompressing entry %q", e.name), Err: err}
	}
	e.payload = data
	e.decoded = true
	return data, nil
}

// writeTo appends the entry to the container being built: a raw copy of
// the original bytes while unmodified, a fresh compression pass after a
// payload replacement.
func (e *Entry) writeTo(zw *zip.Writer) error {
	if !e.modified && e.compressed != nil {
		hdr := e.hdr
		w, err := zw.CreateRaw(&hdr)
		if err != nil {
			return fmt.Errorf("entry %q: %w", e.name, err)
		}
		if _, err := w.Write(e.compressed); err != nil {
			return fmt.Errorf("entry %q: %w", e.name, err)
		}
		return nil
	}

	hdr := zip.FileHeader{
		Name:     e.name,
		Method:   e.hdr.Method,
		Modified: e.hdr.Modified,
		Comment:  e.hdr.Comment,
	}
	w, err := zw.CreateHeader(&hdr)
	if err != nil {
		return fmt.Errorf("entry %q: %w", e.name, err)
	}
	if _, err := w.Write(e.payload); err != nil {
		return fmt.Errorf("entry %q: %w", e.name, err)
	}
	return nil
}
