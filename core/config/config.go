package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"tool-compare-data/core/database"
	"tool-compare-data/core/logger"
	"tool-compare-data/core/server"
	"tool-compare-data/core/storage"
	"tool-compare-data/feature/validation"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full settings tree of the reconciler, one section per concern.
type Config struct {
	// Server configures the validation API.
	Server server.Config `mapstructure:"server"`
	// Storage configures the MinIO client used for s3:// locations and report uploads.
	Storage storage.Config `mapstructure:"storage"`
	// Log configures the zap logger.
	Log logger.Config `mapstructure:"log"`
	// Database configures db:// sources and the run history.
	Database database.Config `mapstructure:"database"`
	// Validation holds the default locations and policy of a run.
	Validation validation.Config `mapstructure:"validation"`
}

// envFile is the .env file read from dir.
const envFile = ".env"

// Load reads the settings of the reconciler. Values in dir/.env override the process
// environment, which overrides the defaults declared on each section.
func Load(dir string) (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Overload(filepath.Join(dir, envFile))

	v := viper.New()
	registerDefaults(v, reflect.TypeOf(Config{}), "")

	// validation.duplicate_keys <- VALIDATION_DUPLICATE_KEYS
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &cfg, nil
}

// registerDefaults walks the sections of t and declares every tagged key with its
// `default` value. Keys are registered even without a default since AutomaticEnv only
// resolves keys viper already knows. List fields take comma separated values.
func registerDefaults(v *viper.Viper, t reflect.Type, prefix string) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	for i := range t.NumField() {
		field := t.Field(i)
		name := field.Tag.Get("mapstructure")
		if name == "" {
			continue
		}

		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		if field.Type.Kind() == reflect.Struct {
			registerDefaults(v, field.Type, key)
			continue
		}
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
