// Package middleware groups the HTTP middleware of the Fiber application.
//
//   - auth: API key validation through the X-API-Key header (or api_key query).
//   - rayid: per-request ray id stored in locals and echoed as X-Ray-ID.
//
// rayid must be registered first so every later log line carries the id.
package middleware
