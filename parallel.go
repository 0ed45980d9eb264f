package seqdex

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/seqdex/mmsearch"
)

// EnumQueryMatchesParallel reports the same matches as EnumQueryMatches,
// in the same order, while matching up to WithWorkers queries at once.
// The sink is called from the calling goroutine only.
//
// Matches of a query are buffered until every earlier query has been
// delivered.
func (ix *Index) EnumQueryMatchesParallel(ctx context.Context, queries [][]byte, minLen uint64, sink Sink) (err error) {
	var delivered uint64
	start := time.Now()
	defer func() { ix.record(ctx, "parallel", delivered, time.Since(start), err) }()

	encoded, err := ix.prepare(queries, minLen)
	if err != nil {
		return err
	}
	n := len(encoded)
	if n == 0 {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	results := make([][]Match, n)
	ready := make([]chan struct{}, n)
	for i := range ready {
		ready[i] = make(chan struct{})
	}

	var next atomic.Int64
	for range min(ix.opts.workers, n) {
		g.Go(func() error {
			for {
				i := int(next.Add(1) - 1)
				if i >= n {
					return nil
				}
				if err := ix.matchOne(gctx, i, encoded[i], minLen, &results[i]); err != nil {
					return err
				}
				close(ready[i])
			}
		})
	}

	var sinkErr error
deliver:
	for i := range n {
		select {
		case <-ready[i]:
		case <-gctx.Done():
			break deliver
		}
		for j := range results[i] {
			delivered++
			if err := sink.Process(ix.db, &results[i][j]); err != nil {
				sinkErr = err
				cancel()
				break deliver
			}
		}
		results[i] = nil
	}

	waitErr := g.Wait()
	if sinkErr != nil {
		return sinkErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return waitErr
}

// matchOne collects the matches of query i. Each call reads the index
// through its own scanner.
func (ix *Index) matchOne(ctx context.Context, i int, query []byte, minLen uint64, out *[]Match) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if uint64(len(query)) < minLen {
		return nil
	}
	collect := mmsearch.SinkFunc(func(_ mmsearch.Accessor, m *Match) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		*out = append(*out, *m)
		return nil
	})
	return mmsearch.RunQuerySubstringMatch(false, ix.db, ix.suftab, uint64(i), mmsearch.Raw(query), minLen, collect)
}
