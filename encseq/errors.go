package encseq

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported is returned by operations the block encoding does not offer.
	ErrUnsupported = errors.New("encseq: unsupported operation")
	// ErrHeaderNotFound is returned when no extension header has the id.
	ErrHeaderNotFound = errors.New("encseq: extension header not found")
	// ErrReservedHeader is returned for user header ids in the reserved range.
	ErrReservedHeader = errors.New("encseq: reserved extension header id")
	// ErrTableTooLarge is returned when Size^BlockSize codes do not fit 64 bits.
	ErrTableTooLarge = errors.New("encseq: block code table too large")
	// ErrInvalidSymbol is returned when the input holds a code outside the alphabet.
	ErrInvalidSymbol = errors.New("encseq: invalid symbol")
	// ErrMalformedBits is returned when a BitInserter reports more bits than allowed.
	ErrMalformedBits = errors.New("encseq: bit inserter wrote too many bits")
	// ErrInvalidOption is returned for out of range build parameters.
	ErrInvalidOption = errors.New("encseq: invalid option")
)

// FormatError reports a structurally invalid index file.
type FormatError struct {
	Name   string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("encseq: malformed index %q: %s", e.Name, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

// HeaderSizeError reports a header writer that wrote a different number of
// bytes than it declared.
type HeaderSizeError struct {
	ID       uint16
	Declared uint32
	Written  int
}

func (e *HeaderSizeError) Error() string {
	return fmt.Sprintf("encseq: extension header %d: declared %d bytes, wrote %d", e.ID, e.Declared, e.Written)
}
