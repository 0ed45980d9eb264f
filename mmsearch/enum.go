package mmsearch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hupe1980/seqdex/alphabet"
	"github.com/hupe1980/seqdex/blobstore"
	"github.com/hupe1980/seqdex/encseq"
	"github.com/hupe1980/seqdex/suffixarray"
)

type options struct {
	logger *slog.Logger
}

// Option configures an enumeration.
type Option func(*options)

// WithLogger logs enumeration summaries at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// countingSink counts delivered matches.
type countingSink struct {
	Sink
	n uint64
}

func (c *countingSink) Process(db Accessor, m *Match) error {
	c.n++
	return c.Sink.Process(db, m)
}

// RunQuerySubstringMatch reports every maximal match of at least minLen
// symbols between one query and the database. The query unit starts at
// queryUnit and advances at every separator of the query, resetting the
// reported offset.
func RunQuerySubstringMatch(selfMatch bool, db Accessor, suftab SuffixTable, queryUnit uint64, q QueryRep, minLen uint64, sink Sink) error {
	if minLen == 0 {
		return ErrInvalidMinLength
	}
	qr, err := newQueryReader(q)
	if err != nil {
		return err
	}
	defer qr.release()
	if q.Length < minLen || suftab.Len() == 0 {
		return nil
	}

	sc := db.NewScanner(suftab.ReadMode())
	defer sc.Release()

	s := &searcher{db: sc, total: db.TotalLength(), suftab: suftab, query: qr, minLen: minLen}
	whole := LCPInterval{Left: 0, Right: suftab.Len() - 1}
	unit, local := queryUnit, uint64(0)
	var m Match

	for s.offset = 0; s.offset <= q.Length-minLen; s.offset++ {
		it := newIterator(suftab, s.run(whole))
		for dbStart, ok := it.Next(); ok; dbStart, ok = it.Next() {
			if !s.leftMaximal(dbStart) {
				continue
			}
			m = Match{
				DBStart:     dbStart,
				Length:      minLen + s.extendRight(dbStart+minLen, minLen),
				ReadMode:    q.ReadMode,
				QuerySeqNum: unit,
				QueryOffset: local,
				QueryLength: q.Length,
				SelfMatch:   selfMatch,
			}
			if err := sink.Process(db, &m); err != nil {
				return err
			}
		}
		if qr.at(s.offset) == alphabet.Separator {
			unit++
			local = 0
		} else {
			local++
		}
	}
	return nil
}

// leftMaximal reports whether the match at dbStart cannot be extended to
// the left.
func (s *searcher) leftMaximal(dbStart uint64) bool {
	if dbStart == 0 || s.offset == 0 {
		return true
	}
	dc := s.db.CharAt(dbStart - 1)
	return alphabet.IsSpecial(dc) || dc != s.query.at(s.offset-1)
}

// extendRight returns how many symbols past dbEnd still match the query.
func (s *searcher) extendRight(dbEnd, matched uint64) uint64 {
	dbPos, qPos := dbEnd, s.offset+matched
	for dbPos < s.total && qPos < s.query.q.Length {
		dc := s.db.CharAt(dbPos)
		if alphabet.IsSpecial(dc) || dc != s.query.at(qPos) {
			break
		}
		dbPos++
		qPos++
	}
	return dbPos - dbEnd
}

// EnumQueryMatches matches every query, given as forward original codes,
// against the database. Query i is unit i; queries shorter than minLen are
// skipped.
func EnumQueryMatches(db Accessor, suftab SuffixTable, queries [][]byte, minLen uint64, sink Sink, opts ...Option) error {
	o := buildOptions(opts)
	cs := &countingSink{Sink: sink}
	start := time.Now()

	for i, q := range queries {
		if uint64(len(q)) < minLen {
			continue
		}
		if err := RunQuerySubstringMatch(false, db, suftab, uint64(i), Raw(q), minLen, cs); err != nil {
			return err
		}
	}
	o.logger.Debug("mmsearch: query matches",
		"queries", len(queries),
		"min_length", minLen,
		"matches", cs.n,
		"duration", time.Since(start))
	return nil
}

// EnumSelfMatches matches every sequence of seq, read in mode, against seq
// itself. Sequence i is unit i. Reverse modes read each sequence from its
// own end, so a unit is always exactly one sequence. Forward mode reports
// every sequence's match with itself.
func EnumSelfMatches(seq *encseq.Sequence, suftab SuffixTable, mode alphabet.ReadMode, minLen uint64, sink Sink, opts ...Option) error {
	if err := seq.Alphabet().Check(mode); err != nil {
		return err
	}
	o := buildOptions(opts)
	cs := &countingSink{Sink: sink}
	db := Encoded(seq)
	total := seq.Length()

	for i := range seq.NumSequences() {
		start, length := seq.SequenceInfo(i)
		if length < minLen {
			continue
		}
		if mode.IsReverse() {
			start = total - (start + length)
		}
		q := QueryRep{Encoded: db, ReadMode: mode, StartPos: start, Length: length}
		if err := RunQuerySubstringMatch(true, db, suftab, i, q, minLen, cs); err != nil {
			return err
		}
	}
	o.logger.Debug("mmsearch: self matches",
		"sequences", seq.NumSequences(),
		"read_mode", mode.String(),
		"min_length", minLen,
		"matches", cs.n)
	return nil
}

// SubstringMatch indexes db, original codes of alpha, in memory and reports
// the maximal matches of query against it as unit 0.
func SubstringMatch(ctx context.Context, db, query []byte, minLen uint64, alpha *alphabet.Alphabet, sink Sink, opts ...Option) error {
	seq, err := encseq.Build(ctx, blobstore.NewMemoryStore(), "substringmatch", alpha, db)
	if err != nil {
		return fmt.Errorf("mmsearch: encode database: %w", err)
	}
	defer seq.Close()

	suftab, err := suffixarray.FromSequence(seq, alphabet.Forward)
	if err != nil {
		return err
	}
	o := buildOptions(opts)
	cs := &countingSink{Sink: sink}
	if err := RunQuerySubstringMatch(false, Encoded(seq), suftab, 0, Raw(query), minLen, cs); err != nil {
		return err
	}
	o.logger.Debug("mmsearch: substring matches", "db_length", len(db), "query_length", len(query), "matches", cs.n)
	return nil
}
