package mmsearch

import (
	"errors"
	"fmt"

	"github.com/hupe1980/seqdex/alphabet"
)

var (
	// ErrInvalidQuery is returned for a malformed QueryRep.
	ErrInvalidQuery = errors.New("mmsearch: invalid query")
	// ErrInvalidMinLength is returned for a zero minimum match length.
	ErrInvalidMinLength = errors.New("mmsearch: minimum match length must be positive")
)

// QueryRep describes a query: either a raw forward code buffer or a window
// of an encoded text read in ReadMode.
type QueryRep struct {
	Sequence []byte
	Encoded  Accessor
	ReadMode alphabet.ReadMode
	StartPos uint64
	Length   uint64
}

// Raw returns a QueryRep over a whole forward code buffer.
func Raw(codes []byte) QueryRep {
	return QueryRep{Sequence: codes, ReadMode: alphabet.Forward, Length: uint64(len(codes))}
}

func (q QueryRep) validate() error {
	switch {
	case (q.Sequence == nil) == (q.Encoded == nil) && q.Length > 0:
		return fmt.Errorf("%w: need exactly one of Sequence and Encoded", ErrInvalidQuery)
	case !q.ReadMode.Valid():
		return fmt.Errorf("%w: read mode %d", ErrInvalidQuery, q.ReadMode)
	case q.Sequence != nil && q.ReadMode != alphabet.Forward:
		return fmt.Errorf("%w: raw query read in %s", ErrInvalidQuery, q.ReadMode)
	case q.Sequence != nil && q.StartPos+q.Length > uint64(len(q.Sequence)):
		return fmt.Errorf("%w: window [%d,%d) beyond %d codes", ErrInvalidQuery, q.StartPos, q.StartPos+q.Length, len(q.Sequence))
	case q.Encoded != nil && q.StartPos+q.Length > q.Encoded.TotalLength():
		return fmt.Errorf("%w: window [%d,%d) beyond %d symbols", ErrInvalidQuery, q.StartPos, q.StartPos+q.Length, q.Encoded.TotalLength())
	}
	return nil
}

// queryReader reads a validated QueryRep relative to its start.
type queryReader struct {
	q  QueryRep
	sc Scanner
}

func newQueryReader(q QueryRep) (*queryReader, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	r := &queryReader{q: q}
	if q.Encoded != nil {
		r.sc = q.Encoded.NewScanner(q.ReadMode)
	}
	return r, nil
}

func (r *queryReader) at(pos uint64) byte {
	if pos >= r.q.Length {
		panic(fmt.Sprintf("mmsearch: query position %d beyond length %d", pos, r.q.Length))
	}
	if r.sc != nil {
		return r.sc.CharAt(r.q.StartPos + pos)
	}
	return r.q.Sequence[r.q.StartPos+pos]
}

// hasSpecial reports whether [from, from+n) holds a special symbol.
func (r *queryReader) hasSpecial(from, n uint64) bool {
	for i := range n {
		if alphabet.IsSpecial(r.at(from + i)) {
			return true
		}
	}
	return false
}

func (r *queryReader) release() {
	if r.sc != nil {
		r.sc.Release()
	}
}
