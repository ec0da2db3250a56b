// Package server holds the HTTP server configuration.
//
// The start command reads Config for the listen port, the API key guarding
// every route except the Swagger UI, and the maximum request body size.
package server
