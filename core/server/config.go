package server

import "errors"

// ErrNoApiKey is returned by Validate when the API would be served without authentication.
var ErrNoApiKey = errors.New("server.api_key is empty; set SERVER_API_KEY or SERVER_ALLOW_ANONYMOUS=true")

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// AllowAnonymous serves the API without a key. Only honoured when ApiKey is empty.
	AllowAnonymous bool `mapstructure:"allow_anonymous" default:"false"`
	// BodyLimitMB caps request bodies, in megabytes.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"4"`
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	return ":" + c.Port
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 4 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}

// Validate refuses a configuration that leaves the API open without an explicit opt-out.
func (c Config) Validate() error {
	if c.ApiKey == "" && !c.AllowAnonymous {
		return ErrNoApiKey
	}
	return nil
}
