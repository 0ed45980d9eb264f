package mmsearch

import (
	"errors"

	"github.com/hupe1980/seqdex/alphabet"
)

// ErrStop may be returned by a Sink to end an enumeration early. The
// enumeration returns it unchanged.
var ErrStop = errors.New("mmsearch: stop")

// Match is a maximal exact match.
type Match struct {
	// DBStart is the match start in the database read in its suffix table's mode.
	DBStart uint64
	Length  uint64
	// ReadMode is the mode the query was read in.
	ReadMode alphabet.ReadMode
	// QuerySeqNum is the query unit, advanced at every query separator.
	QuerySeqNum uint64
	// QueryOffset is relative to the start of the query unit.
	QueryOffset uint64
	QueryLength uint64
	SelfMatch   bool
}

// Sink receives matches. The Match is reused between calls; copy it to keep
// it. A non-nil error stops the enumeration.
type Sink interface {
	Process(db Accessor, m *Match) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(db Accessor, m *Match) error

func (f SinkFunc) Process(db Accessor, m *Match) error { return f(db, m) }
