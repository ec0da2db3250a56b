package cmd

import (
	"context"
	"fmt"

	"tool-compare-data/core/report"
	"tool-compare-data/feature/validation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the validate command
	sourceFlag        string
	targetFlag        string
	mappingFlag       string
	reportFlag        string
	reportObjectFlag  string
	duplicateKeysFlag string
	formatFlag        string
	historyFlag       bool
)

// validateCmd runs one validation and writes its report.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Compare source and target records and write a report",
	Long: `Loads the source and target records, checks row counts, field mapping and values
keyed by the mapping's unique key, and writes the JSON report.

Locations are local paths, s3://bucket/key objects or db://table tables.
Defaults come from the VALIDATION_* configuration. Data mismatches are reported
with status "failed" and do not change the exit code; unreadable inputs or an
invalid mapping exit with 1 and write no report.

Examples:
  # Legacy layout (data/source.csv, data/target.csv, config/mapping.json)
  validate

  # Compare a CSV export against a table and upload the report
  validate --source exports/users.csv --target db://users --report-object runs/users.json

  # Fail the run when the target repeats keys
  validate --duplicate-keys fail --format json`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&sourceFlag, "source", "", "Source records location (default from config)")
	validateCmd.Flags().StringVar(&targetFlag, "target", "", "Target records location (default from config)")
	validateCmd.Flags().StringVar(&mappingFlag, "mapping", "", "Mapping configuration location (default from config)")
	validateCmd.Flags().StringVar(&reportFlag, "report", "", "Report file path (default from config)")
	validateCmd.Flags().StringVar(&reportObjectFlag, "report-object", "", "Also upload the report to this object key in the storage bucket")
	validateCmd.Flags().StringVar(&duplicateKeysFlag, "duplicate-keys", "", "Duplicate target key policy: ignore, report or fail")
	validateCmd.Flags().StringVar(&formatFlag, "format", "text", "Output format: text or json")
	validateCmd.Flags().BoolVar(&historyFlag, "history", false, "Record the run in the database")

	RootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if formatFlag != "text" && formatFlag != "json" {
		return fmt.Errorf("unknown output format %q", formatFlag)
	}

	env, err := setup()
	if err != nil {
		return err
	}
	defer env.logger.Sync()

	vcfg := env.cfg.Validation
	if historyFlag {
		vcfg.History = true
	}

	svc := validation.NewService(env.store, env.cfg.Storage.Bucket, env.logger, env.db, vcfg)
	ctx := context.Background()
	if err := svc.Migrate(ctx); err != nil {
		return err
	}

	req := validation.Request{
		Source:        sourceFlag,
		Target:        targetFlag,
		Mapping:       mappingFlag,
		DuplicateKeys: duplicateKeysFlag,
		Report:        vcfg.Report,
		ReportObject:  vcfg.ReportObject,
	}
	if reportFlag != "" {
		req.Report = reportFlag
	}
	if reportObjectFlag != "" {
		req.ReportObject = reportObjectFlag
	}

	outcome, err := svc.Run(ctx, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if formatFlag == "json" {
		data, err := report.Marshal(outcome.Result)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	} else {
		fmt.Fprint(out, report.Render(outcome.Result))
	}

	env.logger.Debug("Validation command finished", zap.String("run_id", outcome.RunID))
	return nil
}
