// Package validation runs reconciliations end to end and exposes them over HTTP.
//
// A run resolves the source and target locations (local path, s3:// object or
// db:// table), loads the mapping configuration, reconciles the records and
// writes the JSON report to the requested destinations. Data-quality findings
// only change the report's status; configuration and read failures abort the
// run before anything is written.
//
// # History
//
// When a database is configured and history is enabled, every completed run is
// stored as a ValidationRun with its summary counts and report document.
//
// # Routes
//
//   - POST /validations: run a validation, the report is the response body and
//     the run id is returned in X-Run-ID.
//   - GET /validations: recent runs.
//   - GET /validations/:id: one run with its report.
package validation
