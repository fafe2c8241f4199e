// internal/textutil/textutil.go

// Package textutil classifies entry payloads as text or binary.
package textutil

import (
	"bytes"
	"unicode/utf8"
)

// IsText reports whether data can be treated as a text payload: free of
// NUL bytes and valid UTF-8. Empty payloads count as text.
func IsText(data []byte) bool {
	if bytes.IndexByte(data, 0x00) >= 0 {
		return false
	}
	return utf8.Valid(data)
}
