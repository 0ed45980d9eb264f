package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist. It matches
// os.ErrNotExist under errors.Is.
var ErrNotFound = os.ErrNotExist

// Store holds the files of index projects. Implementations must be safe for
// concurrent use.
type Store interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Create starts writing a blob. It becomes visible on Close.
	Create(ctx context.Context, name string) (WritableBlob, error)
	// Put writes a whole blob atomically.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a stored file.
type Blob interface {
	io.ReaderAt
	io.Closer
	Size() int64
}

// WritableBlob is a blob being written.
type WritableBlob interface {
	io.Writer
	// Close publishes the blob.
	Close() error
	// Abort discards everything written. The blob never becomes visible.
	Abort() error
}

// Mappable is implemented by blobs whose bytes are addressable in place.
type Mappable interface {
	// Bytes returns the content, valid until the blob is closed.
	Bytes() ([]byte, error)
}

// ReadAll returns the content of b. Mappable blobs are returned without a copy.
func ReadAll(b Blob) ([]byte, error) {
	if m, ok := b.(Mappable); ok {
		return m.Bytes()
	}
	buf := make([]byte, b.Size())
	n, err := b.ReadAt(buf, 0)
	if err != nil && !(errors.Is(err, io.EOF) && int64(n) == b.Size()) {
		return nil, err
	}
	if int64(n) != b.Size() {
		return nil, fmt.Errorf("blobstore: short read: %d of %d bytes", n, b.Size())
	}
	return buf, nil
}

// Get reads a whole blob into memory.
func Get(ctx context.Context, s Store, name string) ([]byte, error) {
	b, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	data, err := ReadAll(b)
	if err != nil {
		return nil, err
	}
	if _, ok := b.(Mappable); ok {
		// The mapping dies with the blob.
		data = append([]byte(nil), data...)
	}
	return data, nil
}
