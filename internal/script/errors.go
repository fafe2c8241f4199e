// internal/script/errors.go
package script

import (
	"errors"
	"fmt"
)

// Sentinel errors for edit application. Every return site wraps them
// with address context, so callers match with errors.Is and still get a
// message naming the offending entity.
var (
	ErrAddressNotFound = errors.New("address not found")
	ErrTypeMismatch    = errors.New("value shape mismatch")
)

// DecodeError reports an entry whose payload cannot be treated as text.
// Archive-level operations skip such files and carry on; only a direct
// parse of the single file surfaces it.
type DecodeError struct {
	Name   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: cannot decode as text: %s", e.Name, e.Reason)
}
