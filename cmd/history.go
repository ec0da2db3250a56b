package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"tool-compare-data/feature/validation"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

// historyCmd lists recorded validation runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent validation runs",
	Long:  `Prints the most recent validation runs recorded in the database (requires DATABASE_ENABLED and VALIDATION_HISTORY).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		defer env.logger.Sync()

		vcfg := env.cfg.Validation
		vcfg.History = true
		svc := validation.NewService(env.store, env.cfg.Storage.Bucket, env.logger, env.db, vcfg)
		if !svc.HistoryEnabled() {
			return fmt.Errorf("%w: enable and configure the database", validation.ErrHistoryDisabled)
		}

		ctx := context.Background()
		if err := svc.Migrate(ctx); err != nil {
			return err
		}
		runs, err := svc.History(ctx, historyLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if historyJSON {
			data, err := json.MarshalIndent(runs, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ID", "CREATED", "STATUS", "SOURCE", "TARGET", "MISSING", "MISMATCHED", "DUPLICATES")
		for _, run := range runs {
			t.Row(
				run.ID,
				run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				run.Status,
				run.Source,
				run.Target,
				fmt.Sprint(run.MissingTargetRows),
				fmt.Sprint(run.ValueMismatches),
				fmt.Sprint(run.DuplicateKeys),
			)
		}
		fmt.Fprintln(out, t.String())
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print runs as JSON")
	RootCmd.AddCommand(historyCmd)
}
