// Package mmsearch finds maximal exact matches between query sequences and
// a suffix array indexed database.
//
// For every query offset the suffix interval sharing the next minimum-length
// symbols with the query is narrowed by two binary searches that carry the
// longest common prefix of the interval bounds, so each comparison resumes
// where the bounds already agree. Every suffix of the interval that is left
// maximal is extended to the right and reported to a Sink.
//
// Special symbols never match: a query window holding one yields an empty
// interval.
package mmsearch
