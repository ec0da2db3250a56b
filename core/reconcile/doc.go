// Package reconcile compares two tabular record sets against a declared field mapping.
//
// A run answers three questions:
//   - Do the source and target hold the same number of records?
//   - Does every mapped field exist in both schemas?
//   - Does every source record have a target record, joined on the unique key,
//     with equal values on every mapped field?
//
// # Architecture
//
// 1. Checks: CheckRowCount, CheckFieldMapping and CheckValues are pure functions over
//    in-memory records. Reconcile runs all three and assembles a ValidationResult whose
//    sections are present only when they carry a finding.
//
// 2. Engine: Run loads both sides concurrently through the RecordSource interface and
//    hands the records to Reconcile. Load failures are fatal (SourceReadError); findings
//    are data, never errors.
//
// 3. Cache: optional TTL cache of loaded record sets with stampede protection, for
//    repeated runs against the same locations.
//
// # Comparison rules
//
// Values are compared as exact, case-sensitive strings. Target records are indexed by
// the target field the unique key maps to; duplicate target keys keep the last record.
// Options.DuplicateKeys makes duplicates visible (report) or fatal to the status (fail).
//
// # Usage Example
//
//	spec := &reconcile.Spec{
//	    Source:  sourceRecords,
//	    Target:  targetRecords,
//	    Mapping: mapping,
//	}
//	result, err := reconcile.Run(ctx, spec)
package reconcile
