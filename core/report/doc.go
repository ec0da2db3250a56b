// Package report persists and renders validation results.
//
// The persisted document is the JSON form of reconcile.ValidationResult, indented
// with two spaces. Field names and nesting are an external contract:
//
//	{
//	  "rowCountCheck":     { ... },   // only when counts differ
//	  "fieldMappingCheck": [ ... ],   // only failed entries
//	  "mismatchedRecords": [ ... ],   // only when non-empty
//	  "status": "success" | "failed"
//	}
//
// FileSink writes to disk, ObjectSink uploads to S3/MinIO. Render produces a colored
// summary for terminals.
package report
