package seqdex

import (
	"errors"
	"fmt"

	"github.com/hupe1980/seqdex/blobstore"
	"github.com/hupe1980/seqdex/encseq"
	"github.com/hupe1980/seqdex/mmsearch"
	"github.com/hupe1980/seqdex/project"
	"github.com/hupe1980/seqdex/suffixarray"
)

var (
	// ErrNotFound is returned when one of the index files does not exist.
	ErrNotFound = errors.New("seqdex: index not found")
	// ErrNoSequences is returned by Create without input sequences.
	ErrNoSequences = errors.New("seqdex: no sequences")
	// ErrClosed is returned by operations on a closed Index.
	ErrClosed = errors.New("seqdex: index closed")
	// ErrCorrupt is returned when an index file fails validation.
	ErrCorrupt = errors.New("seqdex: corrupt index")
	// ErrInvalidMinLength is returned for a zero minimum match length.
	ErrInvalidMinLength = mmsearch.ErrInvalidMinLength
	// ErrStop may be returned by a Sink to end an enumeration early.
	ErrStop = mmsearch.ErrStop
)

// ErrIndexMismatch indicates that the project file disagrees with the
// sequence store or suffix array it describes.
type ErrIndexMismatch struct {
	Key     string
	Project uint64
	Actual  uint64
}

func (e *ErrIndexMismatch) Error() string {
	return fmt.Sprintf("index mismatch: %s is %d in the project file, %d in the index", e.Key, e.Project, e.Actual)
}

// ErrInvalidQuery indicates a query that cannot be encoded with the index
// alphabet.
type ErrInvalidQuery struct {
	Query int
	cause error
}

func (e *ErrInvalidQuery) Error() string {
	return fmt.Sprintf("invalid query %d: %v", e.Query, e.cause)
}

func (e *ErrInvalidQuery) Unwrap() error { return e.cause }

func isStop(err error) bool {
	return errors.Is(err, ErrStop)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Not found unification.
	if errors.Is(err, blobstore.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	// Corruption unification.
	var fe *encseq.FormatError
	if errors.As(err, &fe) {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if errors.Is(err, suffixarray.ErrCorrupt) || errors.Is(err, project.ErrMalformed) {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	return err
}
