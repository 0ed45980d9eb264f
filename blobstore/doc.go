// Package blobstore abstracts where the files of an index project live.
//
// An index project named "genome" consists of the blobs "genome.eis"
// (encoded sequence), "genome.suf" (suffix array) and "genome.prj"
// (project metadata). Each is written once and read many times.
//
// # Implementations
//
//   - LocalStore: files on disk, memory mapped on Open
//   - MemoryStore: in-memory, for tests and on-the-fly indexes
//   - s3.Store: Amazon S3, multipart uploads through the transfer manager
//   - minio.Store: MinIO and other S3 compatible services
//
// Blobs that implement Mappable expose their bytes in place; loaders use
// that to avoid copying large indexes.
package blobstore
