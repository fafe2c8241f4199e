// internal/pak/errors.go
package pak

import (
	"errors"
	"fmt"
)

// ErrEntryNotFound reports an operation against an entry name the
// archive does not contain.
var ErrEntryNotFound = errors.New("entry not found")

// FormatError reports a malformed or truncated container. It is fatal
// to the single Open or Pack call that produced it, never to the
// process.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	switch {
	case e.Err == nil:
		return fmt.Sprintf("container format: %s", e.Reason)
	case e.Reason == "":
		return fmt.Sprintf("container format: %v", e.Err)
	default:
		return fmt.Sprintf("container format: %s: %v", e.Reason, e.Err)
	}
}

func (e *FormatError) Unwrap() error { return e.Err }
