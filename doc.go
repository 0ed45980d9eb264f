// Package seqdex provides an embedded index for maximal exact match search
// over biological sequences.
//
// An index is three blobs in a blobstore.Store: the block encoded sequence
// store (name.eis), its suffix array (name.suf) and a project file
// (name.prj) describing both. Stores may be local directories, memory, S3
// or MinIO.
//
// # Quick Start
//
// Local mode:
//
//	ctx := context.Background()
//	ix, _ := seqdex.Create(ctx, seqdex.Local("./data"), "genome", alphabet.DNA(), seqs)
//	ix, _ := seqdex.Open(ctx, seqdex.Local("./data"), "genome") // re-open existing
//
// Cloud mode:
//
//	s3Store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("indexes/"))
//	ix, _ := seqdex.Open(ctx, s3Store, "genome")
//
// # Enumerating Matches
//
// Matches are pushed to a Sink. The Match is reused between calls; copy it
// to keep it. Returning ErrStop ends the enumeration early.
//
//	err := ix.EnumQueryMatches(ctx, queries, 20, seqdex.SinkFunc(
//	    func(db mmsearch.Accessor, m *seqdex.Match) error {
//	        fmt.Println(m.QuerySeqNum, m.QueryOffset, m.DBStart, m.Length)
//	        return nil
//	    }))
//
// EnumQueryMatchesParallel matches queries on several goroutines and
// delivers the same matches in the same order. EnumSelfMatches matches the
// indexed sequences against the index itself in any read mode.
//
// # Observability
//
// WithLogger and WithMetricsCollector attach a structured logger and a
// metrics collector to every operation.
package seqdex
