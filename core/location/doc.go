// Package location parses the identifiers that tell a run where to read records,
// mapping configs and where to write reports.
//
// # Syntax
//
//   - s3://bucket/path/to/object.csv : an object in S3/MinIO storage
//   - db://table_name                : a table in the configured database
//   - file:///abs/path or a bare path : a file on the local filesystem
//
// # Usage
//
//	loc, err := location.Parse("s3://exports/customers.csv")
//	rc, err := location.NewOpener(client).Open(ctx, loc)
package location
