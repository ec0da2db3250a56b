// Package records provides the record sources a run reads from.
//
// # Sources
//
//   - CSVSource: a CSV document on disk or in S3/MinIO storage. The header row names
//     the fields; every record of one document has the same field set.
//   - TableSource: every row of a database table, values rendered as text.
//
// Resolver picks the source matching a location identifier (see package location).
// Every failure is reported as a reconcile.SourceReadError.
package records
