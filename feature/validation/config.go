package validation

import (
	"time"

	"tool-compare-data/core/reconcile"
)

// Config holds the defaults of a validation run.
type Config struct {
	// Source is the location of the source records.
	Source string `mapstructure:"source" default:"data/source.csv"`
	// Target is the location of the target records.
	Target string `mapstructure:"target" default:"data/target.csv"`
	// Mapping is the location of the mapping configuration.
	Mapping string `mapstructure:"mapping" default:"config/mapping.json"`
	// Report is the local path of the JSON report. Empty disables it.
	Report string `mapstructure:"report" default:"report/result.json"`
	// ReportObject is the object key of the uploaded report in the storage bucket. Empty disables it.
	ReportObject string `mapstructure:"report_object" default:""`
	// DuplicateKeys selects how repeated target keys are handled (ignore, report, fail).
	DuplicateKeys string `mapstructure:"duplicate_keys" default:"ignore"`
	// History records every run in the database when one is configured.
	History bool `mapstructure:"history" default:"false"`
	// AllowedLocations lists the roots (directories, s3://bucket/prefix, db://table) that
	// HTTP callers may name in place of the defaults. Empty allows only the defaults.
	AllowedLocations []string `mapstructure:"allowed_locations" default:""`
	// CacheTTLSeconds keeps loaded datasets in memory between runs. 0 disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
}

// Policy returns the configured duplicate key policy.
func (c Config) Policy() (reconcile.DuplicateKeyPolicy, error) {
	if c.DuplicateKeys == "" {
		return reconcile.DuplicateKeysIgnore, nil
	}
	p := reconcile.DuplicateKeyPolicy(c.DuplicateKeys)
	if !p.Valid() {
		return "", reconcile.NewConfigError("", "unknown duplicate key policy %q", c.DuplicateKeys)
	}
	return p, nil
}

// CacheTTL returns the dataset cache lifetime.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
