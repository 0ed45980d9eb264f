package mmsearch

import (
	"fmt"

	"github.com/hupe1980/seqdex/alphabet"
)

// LCPInterval is an inclusive suffix table range whose suffixes share a
// prefix of Offset symbols.
type LCPInterval struct {
	Left   uint64
	Right  uint64
	Offset uint64
}

// Empty returns the canonical empty interval.
func Empty() LCPInterval { return LCPInterval{Left: 1, Right: 0} }

// IsEmpty reports whether the interval holds no suffix.
func (itv LCPInterval) IsEmpty() bool { return itv.Left > itv.Right }

// Count returns the number of suffixes in the interval.
func (itv LCPInterval) Count() uint64 {
	if itv.IsEmpty() {
		return 0
	}
	return itv.Right - itv.Left + 1
}

// searcher compares a query substring against database suffixes.
type searcher struct {
	db     Scanner
	total  uint64
	suftab SuffixTable
	query  *queryReader
	offset uint64
	minLen uint64
}

// compare matches the query substring against the suffix at start, skipping
// the lcp symbols already known to agree. It returns the sign of query minus
// suffix and the extended common prefix length. Reaching minLen counts as
// equal; the end of the database and two special symbols count as the
// query being smaller.
func (s *searcher) compare(start, lcp uint64) (int, uint64) {
	for sidx := start + lcp; ; sidx, lcp = sidx+1, lcp+1 {
		if lcp >= s.minLen {
			return 0, lcp
		}
		if sidx >= s.total {
			return -1, lcp
		}
		dc := s.db.CharAt(sidx)
		qc := s.query.at(s.offset + lcp)
		if qc != dc {
			return int(qc) - int(dc), lcp
		}
		// Unreachable through run, which rejects query windows holding a
		// special.
		if alphabet.IsSpecial(dc) {
			return -1, lcp
		}
	}
}

// search narrows itv to the suffixes starting with the query substring. ok
// is false when there is none.
func (s *searcher) search(itv LCPInterval) (LCPInterval, bool) {
	leftSave := itv.Left
	left, right := itv.Left, itv.Right

	ret, lcp := s.compare(s.suftab.At(left), itv.Offset)
	if ret > 0 {
		lpref := lcp
		ret, lcp = s.compare(s.suftab.At(right), itv.Offset)
		if ret > 0 {
			return itv, false
		}
		rpref := lcp
		for right > left+1 {
			mid := left + (right-left)/2
			ret, lcp = s.compare(s.suftab.At(mid), min(lpref, rpref))
			if ret <= 0 {
				right, rpref = mid, lcp
			} else {
				left, lpref = mid, lcp
			}
		}
		itv.Left = right
	}

	left, right = leftSave, itv.Right
	ret, lcp = s.compare(s.suftab.At(left), itv.Offset)
	if ret < 0 {
		return itv, false
	}
	lpref := lcp
	ret, lcp = s.compare(s.suftab.At(right), itv.Offset)
	if ret >= 0 {
		return itv, true
	}
	rpref := lcp
	for right > left+1 {
		mid := left + (right-left)/2
		ret, lcp = s.compare(s.suftab.At(mid), min(lpref, rpref))
		if ret >= 0 {
			left, lpref = mid, lcp
		} else {
			right, rpref = mid, lcp
		}
	}
	itv.Right = left
	return itv, true
}

// run searches itv and normalizes every miss to Empty.
func (s *searcher) run(itv LCPInterval) LCPInterval {
	if itv.IsEmpty() || itv.Right >= s.suftab.Len() {
		return Empty()
	}
	if s.query.q.Length < s.offset+s.minLen || s.query.hasSpecial(s.offset, s.minLen) {
		return Empty()
	}
	found, ok := s.search(itv)
	if !ok || found.IsEmpty() {
		return Empty()
	}
	return found
}

// Search returns the part of itv whose suffixes start with the minLen
// symbols of q at offset, or Empty.
func Search(db Accessor, suftab SuffixTable, itv LCPInterval, q QueryRep, offset, minLen uint64) (LCPInterval, error) {
	if minLen == 0 {
		return Empty(), ErrInvalidMinLength
	}
	qr, err := newQueryReader(q)
	if err != nil {
		return Empty(), err
	}
	defer qr.release()

	sc := db.NewScanner(suftab.ReadMode())
	defer sc.Release()

	s := &searcher{db: sc, total: db.TotalLength(), suftab: suftab, query: qr, offset: offset, minLen: minLen}
	return s.run(itv), nil
}

// Iterator yields the database positions of an interval in suffix order.
type Iterator struct {
	itv    LCPInterval
	next   uint64
	suftab SuffixTable
}

func newIterator(suftab SuffixTable, itv LCPInterval) *Iterator {
	return &Iterator{itv: itv, next: itv.Left, suftab: suftab}
}

// NewIterator searches q at offset within itv.
func NewIterator(db Accessor, suftab SuffixTable, itv LCPInterval, q QueryRep, offset, minLen uint64) (*Iterator, error) {
	found, err := Search(db, suftab, itv, q, offset, minLen)
	if err != nil {
		return nil, err
	}
	return newIterator(suftab, found), nil
}

// NewIteratorComplete searches the whole forward pattern within itv.
func NewIteratorComplete(db Accessor, suftab SuffixTable, itv LCPInterval, pattern []byte) *Iterator {
	if len(pattern) == 0 {
		if itv.IsEmpty() || itv.Right >= suftab.Len() {
			itv = Empty()
		}
		return newIterator(suftab, itv)
	}
	it, err := NewIterator(db, suftab, itv, Raw(pattern), 0, uint64(len(pattern)))
	if err != nil {
		panic(fmt.Sprintf("mmsearch: %v", err))
	}
	return it
}

// Next returns the next database position.
func (it *Iterator) Next() (uint64, bool) {
	if it.itv.IsEmpty() || it.next > it.itv.Right {
		return 0, false
	}
	pos := it.suftab.At(it.next)
	it.next++
	return pos, true
}

// Count returns the size of the interval, independent of iteration progress.
func (it *Iterator) Count() uint64 { return it.itv.Count() }

// IsEmpty reports whether the iterator has no positions. A nil Iterator is
// empty.
func (it *Iterator) IsEmpty() bool { return it == nil || it.itv.IsEmpty() }

// Equal reports whether both iterators cover the same interval bounds.
func (it *Iterator) Equal(other *Iterator) bool {
	return it.itv.Left == other.itv.Left && it.itv.Right == other.itv.Right
}

// Interval returns the searched interval.
func (it *Iterator) Interval() LCPInterval { return it.itv }
