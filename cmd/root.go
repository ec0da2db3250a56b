package cmd

import (
	"fmt"
	"os"

	"tool-compare-data/core/config"
	"tool-compare-data/core/database"
	"tool-compare-data/core/logger"
	"tool-compare-data/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "tool-compare-data",
	Short: "Source/target data reconciliation",
	Long: `tool-compare-data compares a source and a target record set through a field mapping
and a unique key, and writes a JSON report of row count, schema and value mismatches.
Records can be read from local CSV files, S3/MinIO objects or database tables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format and debug preset give readable ISO8601 output for a CLI
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// environment bundles the dependencies shared by the commands.
type environment struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	store  storage.Client
}

// setup loads configuration and connects the optional backends.
// A disabled or unreachable database and an invalid storage config only produce warnings.
func setup() (*environment, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	env := &environment{cfg: cfg, logger: l}

	if cfg.Database.Enabled {
		if conn, err := database.Connect(cfg.Database); err != nil {
			l.Warn("Optional database connection failed", zap.Error(err))
		} else {
			env.db = conn
			l.Debug("Connected to database", zap.String("driver", cfg.Database.Driver))
		}
	}

	if client, err := storage.NewClient(cfg.Storage); err != nil {
		l.Warn("Object storage unavailable", zap.Error(err))
	} else {
		env.store = client
	}

	return env, nil
}
