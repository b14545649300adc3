package header

import (
	"errors"
	"fmt"
)

// Errors returned by various header methods and functions.
var (
	// ErrNoSuchField is returned by Header methods when the operation
	// being performed failed because the header named does not exist.
	ErrNoSuchField = errors.New("no such header field")

	// ErrNoSuchFieldParameter is returned by Header methods when the
	// operation being performed failed because the header exists, but a
	// sub-field of the header does not exist.
	ErrNoSuchFieldParameter = errors.New("no such header field parameter")

	// ErrManyFields is returned by Header methods when the operation
	// being performed failed because the there are multiple fields with the
	// given name.
	ErrManyFields = errors.New("many header fields found")

	// ErrWrongKind is returned when a value is rendered into a field the
	// registry maps to a different kind of value.
	ErrWrongKind = errors.New("value kind does not match the header field")

	// ErrIndexOutOfRange when an attempt is made to access a header field index
	// that is too large or to small.
	ErrIndexOutOfRange = errors.New("header field index is out of range")

	// ErrWrongAddressType is returned by address setting methods when given
	// something that is not an address.
	ErrWrongAddressType = errors.New("incorrect address type during write")

	// ErrBadFieldName is returned when a field name is empty or holds
	// characters other than printable ASCII without a colon.
	ErrBadFieldName = errors.New("bad header field name")
)

// MalformedHeaderError is returned when a field body does not match the
// grammar the registry assigns to the field.
type MalformedHeaderError struct {
	Name   string // the field name as given
	Reason string // what went wrong
	Offset int    // byte offset into the unfolded body
	Err    error  // the underlying *lex.SyntaxError
}

// Error returns the error message.
func (err *MalformedHeaderError) Error() string {
	return fmt.Sprintf("malformed %s header: %s (at offset %d)", err.Name, err.Reason, err.Offset)
}

// Unwrap returns the underlying syntax error.
func (err *MalformedHeaderError) Unwrap() error {
	return err.Err
}

// ValidationError describes one field that breaks the multiplicity rules of
// the registry.
type ValidationError struct {
	Name   string // the field name
	Index  int    // index of the offending field or -1 if the field is missing
	Reason string
}

// Error returns the error message.
func (err *ValidationError) Error() string {
	if err.Index < 0 {
		return fmt.Sprintf("%s header: %s", err.Name, err.Reason)
	}
	return fmt.Sprintf("%s header at field %d: %s", err.Name, err.Index, err.Reason)
}
