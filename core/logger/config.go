package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level emitted (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the output encoding (json or console).
	Format string `mapstructure:"format" default:"json"`
}
