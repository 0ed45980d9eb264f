package seqdex

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/seqdex/alphabet"
	"github.com/hupe1980/seqdex/blobstore"
	"github.com/hupe1980/seqdex/encseq"
	"github.com/hupe1980/seqdex/mmsearch"
	"github.com/hupe1980/seqdex/project"
	"github.com/hupe1980/seqdex/suffixarray"
)

// Blob name suffixes of the three files making up an index.
const (
	SequenceSuffix    = ".eis"
	SuffixTableSuffix = ".suf"
	ProjectSuffix     = ".prj"
)

type (
	// Match is a maximal exact match.
	Match = mmsearch.Match
	// Sink receives matches.
	Sink = mmsearch.Sink
	// SinkFunc adapts a function to Sink.
	SinkFunc = mmsearch.SinkFunc
)

// Index is an opened sequence index: the block encoded sequence store, its
// suffix array and the project file describing both.
//
// Enumerations may run concurrently. Close must not race with them.
type Index struct {
	name   string
	seq    *encseq.Sequence
	suftab *suffixarray.Array
	info   project.Info
	db     mmsearch.Accessor
	opts   options
	logger *Logger

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Local returns a blob store rooted at dir.
func Local(dir string) blobstore.Store {
	return blobstore.NewLocalStore(dir)
}

// Create encodes seqs with alpha, joined by separators, and writes the
// sequence store, the suffix array and the project file for name into store.
// A nil alpha selects DNA.
func Create(ctx context.Context, store blobstore.Store, name string, alpha *alphabet.Alphabet, seqs [][]byte, optFns ...Option) (ix *Index, err error) {
	o := applyOptions(optFns)
	start := time.Now()
	var length uint64
	defer func() {
		o.metricsCollector.RecordCreate(length, time.Since(start), err)
		o.logger.LogCreate(ctx, name, length, o.blockSize, err)
	}()

	if len(seqs) == 0 {
		return nil, ErrNoSequences
	}
	if alpha == nil {
		alpha = alphabet.DNA()
	}
	if err := alpha.Check(o.readMode); err != nil {
		return nil, err
	}
	codes, err := alphabet.EncodeSequences(alpha, seqs...)
	if err != nil {
		return nil, err
	}

	seq, err := encseq.Build(ctx, store, name+SequenceSuffix, alpha, codes,
		encseq.WithBlockSize(o.blockSize),
		encseq.WithBucketBlocks(o.bucketBlocks),
		encseq.WithLogger(o.logger.Logger),
	)
	if err != nil {
		return nil, translateError(err)
	}
	defer func() {
		if err != nil {
			_ = seq.Close()
			cleanup(ctx, store, o.logger, name+SequenceSuffix, name+SuffixTableSuffix)
		}
	}()

	suftab, err := suffixarray.FromSequence(seq, o.readMode)
	if err != nil {
		return nil, err
	}
	if err := suffixarray.Write(ctx, store, name+SuffixTableSuffix, suftab); err != nil {
		return nil, err
	}

	info := project.Info{
		TotalLength:       seq.Length(),
		SpecialCharacters: seq.SpecialCount(),
		NumOfSequences:    seq.NumSequences(),
		NumOfDBSequences:  seq.NumSequences(),
		Longest:           longest(seqs),
		PrefixLength:      o.prefixLength,
		IntegerSize:       project.IntegerSize,
		LittleEndian:      true,
		ReadMode:          uint(o.readMode),
		BlockSize:         uint(seq.BlockSize()),
		BucketBlocks:      uint(seq.BucketBlocks()),
	}
	if info.PrefixLength == 0 {
		info.PrefixLength = project.RecommendedPrefixLength(alpha.NumChars(), info.TotalLength)
	}
	if err := project.Write(ctx, store, name+ProjectSuffix, info); err != nil {
		return nil, err
	}

	length = seq.Length()
	return newIndex(name, seq, suftab, info, o), nil
}

// Open loads the index name from store and checks the project file against
// the sequence store and suffix array it describes. Build options are
// ignored.
func Open(ctx context.Context, store blobstore.Store, name string, optFns ...Option) (ix *Index, err error) {
	o := applyOptions(optFns)
	start := time.Now()
	defer func() {
		o.metricsCollector.RecordOpen(time.Since(start), err)
		var length uint64
		if ix != nil {
			length = ix.info.TotalLength
		}
		o.logger.LogOpen(ctx, name, length, err)
	}()

	info, err := project.Read(ctx, store, name+ProjectSuffix)
	if err != nil {
		return nil, translateError(err)
	}
	if err := info.Validate(); err != nil {
		return nil, translateError(err)
	}

	seq, err := encseq.Load(ctx, store, name+SequenceSuffix, encseq.WithLogger(o.logger.Logger))
	if err != nil {
		return nil, translateError(err)
	}
	suftab, err := suffixarray.Read(ctx, store, name+SuffixTableSuffix)
	if err != nil {
		_ = seq.Close()
		return nil, translateError(err)
	}
	if err := checkProject(info, seq, suftab); err != nil {
		_ = seq.Close()
		return nil, err
	}
	return newIndex(name, seq, suftab, info, o), nil
}

func applyOptions(optFns []Option) options {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

func newIndex(name string, seq *encseq.Sequence, suftab *suffixarray.Array, info project.Info, o options) *Index {
	return &Index{
		name:   name,
		seq:    seq,
		suftab: suftab,
		info:   info,
		db:     mmsearch.Encoded(seq),
		opts:   o,
		logger: o.logger.WithIndex(name),
	}
}

func checkProject(info project.Info, seq *encseq.Sequence, suftab *suffixarray.Array) error {
	checks := []struct {
		key             string
		project, actual uint64
	}{
		{"totallength", info.TotalLength, seq.Length()},
		{"specialcharacters", info.SpecialCharacters, seq.SpecialCount()},
		{"numofsequences", info.NumOfSequences, seq.NumSequences()},
		{"blocksize", uint64(info.BlockSize), uint64(seq.BlockSize())},
		{"bucketblocks", uint64(info.BucketBlocks), uint64(seq.BucketBlocks())},
		{"readmode", uint64(info.ReadMode), uint64(suftab.ReadMode())},
		{"suffixes", info.TotalLength + 1, suftab.Len()},
	}
	for _, c := range checks {
		if c.project != c.actual {
			return &ErrIndexMismatch{Key: c.key, Project: c.project, Actual: c.actual}
		}
	}
	return nil
}

func cleanup(ctx context.Context, store blobstore.Store, logger *Logger, names ...string) {
	ctx = context.WithoutCancel(ctx)
	for _, n := range names {
		if err := store.Delete(ctx, n); err != nil && !errors.Is(err, blobstore.ErrNotFound) {
			logger.WarnContext(ctx, "cleanup failed", "blob", n, "error", err)
		}
	}
}

func longest(seqs [][]byte) uint64 {
	var n int
	for _, s := range seqs {
		n = max(n, len(s))
	}
	return uint64(n)
}

// Name returns the index name.
func (ix *Index) Name() string { return ix.name }

// Info returns the project file content.
func (ix *Index) Info() project.Info { return ix.info }

// Alphabet returns the alphabet the sequences were encoded with.
func (ix *Index) Alphabet() *alphabet.Alphabet { return ix.seq.Alphabet() }

// Sequence returns the block encoded sequence store.
func (ix *Index) Sequence() *encseq.Sequence { return ix.seq }

// SuffixArray returns the suffix array.
func (ix *Index) SuffixArray() *suffixarray.Array { return ix.suftab }

// EnumQueryMatches reports the maximal matches of at least minLen symbols
// between every query and the index. Query i is unit i. Queries are text of
// the index alphabet; a separator character starts a new unit.
func (ix *Index) EnumQueryMatches(ctx context.Context, queries [][]byte, minLen uint64, sink Sink) (err error) {
	cs := &countingSink{ctx: ctx, sink: sink}
	start := time.Now()
	defer func() { ix.record(ctx, "query", cs.n.Load(), time.Since(start), err) }()

	encoded, err := ix.prepare(queries, minLen)
	if err != nil {
		return err
	}
	return mmsearch.EnumQueryMatches(ix.db, ix.suftab, encoded, minLen, cs, mmsearch.WithLogger(ix.logger.Logger))
}

// EnumSelfMatches reports the maximal matches of at least minLen symbols
// between every sequence of the index, read in mode, and the index itself.
func (ix *Index) EnumSelfMatches(ctx context.Context, mode alphabet.ReadMode, minLen uint64, sink Sink) (err error) {
	cs := &countingSink{ctx: ctx, sink: sink}
	start := time.Now()
	defer func() { ix.record(ctx, "self", cs.n.Load(), time.Since(start), err) }()

	if ix.closed.Load() {
		return ErrClosed
	}
	if minLen == 0 {
		return ErrInvalidMinLength
	}
	return mmsearch.EnumSelfMatches(ix.seq, ix.suftab, mode, minLen, cs, mmsearch.WithLogger(ix.logger.Logger))
}

func (ix *Index) prepare(queries [][]byte, minLen uint64) ([][]byte, error) {
	if ix.closed.Load() {
		return nil, ErrClosed
	}
	if minLen == 0 {
		return nil, ErrInvalidMinLength
	}
	alpha := ix.seq.Alphabet()
	encoded := make([][]byte, len(queries))
	for i, q := range queries {
		codes, err := alpha.EncodeText(q)
		if err != nil {
			return nil, &ErrInvalidQuery{Query: i, cause: err}
		}
		encoded[i] = codes
	}
	return encoded, nil
}

func (ix *Index) record(ctx context.Context, kind string, matches uint64, d time.Duration, err error) {
	ix.opts.metricsCollector.RecordEnumerate(kind, matches, d, err)
	ix.logger.LogEnumerate(ctx, ix.name, kind, matches, err)
}

// countingSink forwards matches and stops once ctx is done.
type countingSink struct {
	ctx  context.Context
	sink Sink
	n    atomic.Uint64
}

func (c *countingSink) Process(db mmsearch.Accessor, m *Match) error {
	if err := c.ctx.Err(); err != nil {
		return err
	}
	c.n.Add(1)
	return c.sink.Process(db, m)
}

// SubstringMatch indexes db in memory and reports the maximal matches of at
// least minLen symbols between query and db. Both are text of alpha; a nil
// alpha selects DNA.
func SubstringMatch(ctx context.Context, db, query []byte, minLen uint64, alpha *alphabet.Alphabet, sink Sink, optFns ...Option) (err error) {
	o := applyOptions(optFns)
	cs := &countingSink{ctx: ctx, sink: sink}
	start := time.Now()
	defer func() {
		o.metricsCollector.RecordEnumerate("substring", cs.n.Load(), time.Since(start), err)
		o.logger.LogEnumerate(ctx, "", "substring", cs.n.Load(), err)
	}()

	if alpha == nil {
		alpha = alphabet.DNA()
	}
	dbCodes, err := alpha.EncodeText(db)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	queryCodes, err := alpha.EncodeText(query)
	if err != nil {
		return &ErrInvalidQuery{Query: 0, cause: err}
	}
	return mmsearch.SubstringMatch(ctx, dbCodes, queryCodes, minLen, alpha, cs, mmsearch.WithLogger(o.logger.Logger))
}
