package alphabet

import (
	"fmt"
	"strings"
)

// ReadMode selects the orientation a sequence is read in.
type ReadMode uint8

const (
	// Forward reads positions in order.
	Forward ReadMode = iota
	// Reverse reads from the last position to the first.
	Reverse
	// Complement reads in order and complements every regular code.
	Complement
	// ReverseComplement combines Reverse and Complement.
	ReverseComplement
)

var readModeNames = [...]string{"fwd", "rev", "cpl", "rcl"}

// String returns the short name of the read mode.
func (m ReadMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("ReadMode(%d)", m)
	}
	return readModeNames[m]
}

// Valid reports whether m is one of the four read modes.
func (m ReadMode) Valid() bool { return m <= ReverseComplement }

// IsReverse reports whether positions are read from the end.
func (m ReadMode) IsReverse() bool { return m == Reverse || m == ReverseComplement }

// IsComplement reports whether symbols are complemented.
func (m ReadMode) IsComplement() bool { return m == Complement || m == ReverseComplement }

// Position maps logical position pos of a sequence of total symbols to the
// stored position.
func (m ReadMode) Position(pos, total uint64) uint64 {
	if m.IsReverse() {
		return total - 1 - pos
	}
	return pos
}

// ParseReadMode parses a short ("rcl") or long ("reversecomplement") name.
func ParseReadMode(s string) (ReadMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fwd", "forward":
		return Forward, nil
	case "rev", "reverse":
		return Reverse, nil
	case "cpl", "complement":
		return Complement, nil
	case "rcl", "reversecomplement", "reverse-complement":
		return ReverseComplement, nil
	}
	return Forward, fmt.Errorf("alphabet: unknown read mode %q", s)
}
