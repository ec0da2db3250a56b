// Package logger provides structured logging based on Zap.
//
// New builds a production (JSON) or development logger from Config. The
// debug level switches to the development preset, which also yields ISO8601
// timestamps for console output.
//
// WithRayID attaches the request's ray_id (set by the rayid middleware) so
// every log line of an HTTP request can be correlated.
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("validation finished", zap.String("status", "success"))
package logger
