// Package s3 stores index projects in Amazon S3.
//
//	store, err := s3.New(ctx, "genomes",
//	    s3.WithPrefix("hg38/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//	idx, err := seqdex.Open(ctx, store, "chr1")
//
// Reads are ranged GetObject calls. Writes stream through the transfer
// manager, which switches to multipart uploads for large files. Small files
// written with Put carry a CRC32C checksum that S3 verifies on arrival.
package s3
