package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "reports", cfg.Storage.Bucket)
	assert.False(t, cfg.Database.Enabled)

	v := cfg.Validation
	assert.Equal(t, "data/source.csv", v.Source)
	assert.Equal(t, "data/target.csv", v.Target)
	assert.Equal(t, "config/mapping.json", v.Mapping)
	assert.Equal(t, "report/result.json", v.Report)
	assert.Empty(t, v.ReportObject)
	assert.Equal(t, "ignore", v.DuplicateKeys)
	assert.False(t, v.History)
	assert.Empty(t, v.AllowedLocations)
	assert.Zero(t, v.CacheTTLSeconds)
	assert.Empty(t, cfg.Server.ApiKey)
	assert.False(t, cfg.Server.AllowAnonymous)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("VALIDATION_SOURCE", "s3://exports/source.csv")
	t.Setenv("VALIDATION_DUPLICATE_KEYS", "fail")
	t.Setenv("VALIDATION_CACHE_TTL_SECONDS", "60")
	t.Setenv("DATABASE_ENABLED", "true")
	t.Setenv("VALIDATION_ALLOWED_LOCATIONS", "data/,s3://exports/daily/")
	t.Setenv("SERVER_ALLOW_ANONYMOUS", "true")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "s3://exports/source.csv", cfg.Validation.Source)
	assert.Equal(t, "fail", cfg.Validation.DuplicateKeys)
	assert.Equal(t, 60, cfg.Validation.CacheTTLSeconds)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, []string{"data/", "s3://exports/daily/"}, cfg.Validation.AllowedLocations)
	assert.True(t, cfg.Server.AllowAnonymous)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "SERVER_PORT=9191\nVALIDATION_MAPPING=config/mapping.yaml\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("VALIDATION_MAPPING")
	})

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9191", cfg.Server.Port)
	assert.Equal(t, "config/mapping.yaml", cfg.Validation.Mapping)
}

func TestRegisterDefaults(t *testing.T) {
	type inner struct {
		Name string `mapstructure:"name" default:"x"`
	}
	type outer struct {
		Inner   inner  `mapstructure:"inner"`
		Flag    string `mapstructure:"flag" default:"on"`
		Ignored string
	}

	v := viper.New()
	registerDefaults(v, reflect.TypeOf(&outer{}), "")

	assert.Equal(t, "x", v.GetString("inner.name"))
	assert.Equal(t, "on", v.GetString("flag"))
	assert.False(t, v.IsSet("ignored"))
}
