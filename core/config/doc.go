// Package config provides configuration management for the reconciler.
//
// It loads an optional .env file with godotenv, then reads environment
// variables through Viper. Defaults come from the `default` struct tags of each
// section and are registered by reflection so AutomaticEnv can see every key.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, anonymous opt-out and body limit
//   - Storage: S3/MinIO credentials and report bucket
//   - Log: logging level and format
//   - Database: optional MySQL or SQLite connection
//   - Validation: default locations, report targets and the HTTP location allowlist
//
// Nested keys map to upper-case variables joined by underscores, so
// validation.duplicate_keys is read from VALIDATION_DUPLICATE_KEYS.
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Validation.Source)
package config
