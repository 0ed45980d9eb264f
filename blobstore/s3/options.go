package s3

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Options configures a Store.
type Options struct {
	// Prefix is prepended to every blob name.
	Prefix string
	// Region overrides the region from the shared AWS config. Used by New only.
	Region string
	// PartSize is the multipart upload part size. Default 8 MiB.
	PartSize int64
	// Concurrency is the number of parts uploaded in parallel. Default 5.
	Concurrency int
	// Checksum requests CRC32C validation of uploads. Default true.
	Checksum bool
	// ClientOptions are applied to the S3 client built by New.
	ClientOptions []func(*s3.Options)
}

func defaultOptions() Options {
	return Options{
		PartSize:    8 << 20,
		Concurrency: 5,
		Checksum:    true,
	}
}

// WithPrefix stores every blob below prefix.
func WithPrefix(prefix string) func(*Options) {
	return func(o *Options) { o.Prefix = prefix }
}

// WithRegion sets the AWS region.
func WithRegion(region string) func(*Options) {
	return func(o *Options) { o.Region = region }
}

// WithPartSize sets the multipart upload part size.
func WithPartSize(n int64) func(*Options) {
	return func(o *Options) { o.PartSize = n }
}

// WithConcurrency sets how many parts upload in parallel.
func WithConcurrency(n int) func(*Options) {
	return func(o *Options) { o.Concurrency = n }
}

// WithoutChecksum disables CRC32C upload validation, for S3 compatible
// services that reject it.
func WithoutChecksum() func(*Options) {
	return func(o *Options) { o.Checksum = false }
}

// WithEndpoint points the client at a custom endpoint with path style
// addressing, for local S3 emulators.
func WithEndpoint(url string) func(*Options) {
	return func(o *Options) {
		o.ClientOptions = append(o.ClientOptions, func(so *s3.Options) {
			so.BaseEndpoint = aws.String(url)
			so.UsePathStyle = true
		})
	}
}
