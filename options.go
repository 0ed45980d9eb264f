package seqdex

import (
	"runtime"

	"github.com/hupe1980/seqdex/alphabet"
	"github.com/hupe1980/seqdex/encseq"
)

type options struct {
	blockSize        int
	bucketBlocks     int
	readMode         alphabet.ReadMode
	prefixLength     uint
	workers          int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Create and Open. Open ignores the build parameters and
// takes them from the project file.
type Option func(*options)

func defaultOptions() options {
	return options{
		blockSize:        encseq.DefaultBlockSize,
		bucketBlocks:     encseq.DefaultBucketBlocks,
		readMode:         alphabet.Forward,
		workers:          runtime.GOMAXPROCS(0),
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
}

// WithBlockSize sets the number of symbols per encoded block.
//
// Larger blocks shrink the block code table lookups per symbol but grow the
// table itself as alphabet size to the power of the block size.
func WithBlockSize(n int) Option {
	return func(o *options) {
		o.blockSize = n
	}
}

// WithBucketBlocks sets the number of blocks between rank checkpoints.
func WithBucketBlocks(n int) Option {
	return func(o *options) {
		o.bucketBlocks = n
	}
}

// WithReadMode sets the mode the suffix array is sorted in. Complement modes
// need an alphabet with a complement.
func WithReadMode(m alphabet.ReadMode) Option {
	return func(o *options) {
		o.readMode = m
	}
}

// WithPrefixLength overrides the prefix length recorded in the project file.
// Zero keeps the recommended value for the alphabet and sequence length.
func WithPrefixLength(k uint) Option {
	return func(o *options) {
		o.prefixLength = k
	}
}

// WithWorkers bounds the goroutines used by EnumQueryMatchesParallel.
// Values below one fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &seqdex.BasicMetricsCollector{}
//	ix, _ := seqdex.Create(ctx, store, "genome", alphabet.DNA(), seqs,
//	    seqdex.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}
