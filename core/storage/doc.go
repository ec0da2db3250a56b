// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so CSV record sources and mapping configs can be read
// from, and reports uploaded to, AWS S3 or self-hosted MinIO.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easy to
// mock storage interactions in unit tests (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: used by EnsureBucket before report uploads.
//   - PutObject: uploads reports.
//   - GetObject: streams CSV documents and mapping configs.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.EnsureBucket(ctx, client, "reports", "")
package storage
