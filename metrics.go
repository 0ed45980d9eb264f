package seqdex

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordCreate is called after each index build with the number of
	// encoded symbols.
	RecordCreate(length uint64, duration time.Duration, err error)

	// RecordOpen is called after each index load.
	RecordOpen(duration time.Duration, err error)

	// RecordEnumerate is called after each match enumeration. kind is
	// "query", "self" or "parallel".
	RecordEnumerate(kind string, matches uint64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCreate(uint64, time.Duration, error)            {}
func (NoopMetricsCollector) RecordOpen(time.Duration, error)                      {}
func (NoopMetricsCollector) RecordEnumerate(string, uint64, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	CreateCount     atomic.Int64
	CreateErrors    atomic.Int64
	CreatedSymbols  atomic.Int64
	OpenCount       atomic.Int64
	OpenErrors      atomic.Int64
	EnumerateCount  atomic.Int64
	EnumerateErrors atomic.Int64
	MatchCount      atomic.Int64
	EnumerateNanos  atomic.Int64
}

// RecordCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCreate(length uint64, _ time.Duration, err error) {
	b.CreateCount.Add(1)
	if err != nil {
		b.CreateErrors.Add(1)
		return
	}
	b.CreatedSymbols.Add(int64(length))
}

// RecordOpen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOpen(_ time.Duration, err error) {
	b.OpenCount.Add(1)
	if err != nil {
		b.OpenErrors.Add(1)
	}
}

// RecordEnumerate implements MetricsCollector. Sink requested stops do not
// count as errors.
func (b *BasicMetricsCollector) RecordEnumerate(_ string, matches uint64, duration time.Duration, err error) {
	b.EnumerateCount.Add(1)
	b.MatchCount.Add(int64(matches))
	b.EnumerateNanos.Add(duration.Nanoseconds())
	if err != nil && !isStop(err) {
		b.EnumerateErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		CreateCount:     b.CreateCount.Load(),
		CreateErrors:    b.CreateErrors.Load(),
		CreatedSymbols:  b.CreatedSymbols.Load(),
		OpenCount:       b.OpenCount.Load(),
		OpenErrors:      b.OpenErrors.Load(),
		EnumerateCount:  b.EnumerateCount.Load(),
		EnumerateErrors: b.EnumerateErrors.Load(),
		MatchCount:      b.MatchCount.Load(),
	}
	if s.EnumerateCount > 0 {
		s.EnumerateAvgNanos = b.EnumerateNanos.Load() / s.EnumerateCount
	}
	return s
}

// BasicMetricsStats is a point-in-time snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	CreateCount       int64
	CreateErrors      int64
	CreatedSymbols    int64
	OpenCount         int64
	OpenErrors        int64
	EnumerateCount    int64
	EnumerateErrors   int64
	MatchCount        int64
	EnumerateAvgNanos int64
}
