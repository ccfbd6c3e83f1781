package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"printvault/internal/catalog"
	"printvault/internal/config"
	"printvault/internal/pipeline"
)

func newEnrichCommand(ctx *commandContext) *cobra.Command {
	var (
		applyMode bool
		force     bool
		jsonOut   bool
		batchSize int
		recordIDs []int64
		missing   string
		domains   []string
	)

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Resolve metadata proposals for cataloged records",
		Long: `Enrich tokenizes each record's path, resolves it against the curated
vocabulary, refines segmentation and kit structure from siblings, and
reports the resulting proposals. Runs are dry by default; --apply persists
the proposals conservatively (only empty fields are filled unless --force).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				if batchSize > 0 {
					cfg.Engine.BatchSize = batchSize
				}

				runner := pipeline.NewRunner(cfg, store, logger)
				outcome, runErr := runner.Run(cmd.Context(), pipeline.Options{
					Apply:        applyMode,
					Force:        force,
					RecordIDs:    recordIDs,
					MissingField: missing,
					Domains:      domains,
				})
				if runErr != nil && outcome == nil {
					return runErr
				}

				if jsonOut {
					if err := writeJSON(cmd, outcome.Report); err != nil {
						return err
					}
				} else {
					printReport(cmd, outcome)
					if path, err := saveReport(cfg, outcome); err == nil && path != "" {
						fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
					}
				}

				if runErr != nil {
					return runErr
				}
				if !outcome.Report.HasChanges() {
					return errNothingToDo
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&applyMode, "apply", false, "Persist proposals instead of dry-running")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite fields that already hold a different value")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the run report as JSON")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Records per commit during apply (default from config)")
	cmd.Flags().Int64SliceVar(&recordIDs, "record", nil, "Restrict the run to specific record IDs")
	cmd.Flags().StringVar(&missing, "missing", "", "Restrict the run to records missing this field")
	cmd.Flags().StringSliceVar(&domains, "domain", nil, "Domains to resolve, in order (default from config)")
	return cmd
}

func printReport(cmd *cobra.Command, outcome *pipeline.Outcome) {
	out := cmd.OutOrStdout()
	report := outcome.Report

	mode := "dry-run"
	if report.Apply {
		mode = "apply"
	}
	fmt.Fprintf(out, "Run %s (%s): examined %d records, %d with changes\n",
		report.RunID, mode, report.TotalExamined, len(report.Proposals))

	if outcome.VocabReport != nil && outcome.VocabReport.HasIssues() {
		fmt.Fprintf(out, "Vocabulary issues: %d skipped, %d conflicts (see `printvault vocab lint`)\n",
			len(outcome.VocabReport.Skipped), len(outcome.VocabReport.Conflicts))
	}

	if len(report.Proposals) == 0 {
		fmt.Fprintln(out, "No changes proposed")
		return
	}

	var rows [][]string
	for _, changeset := range report.Proposals {
		for _, change := range changeset.Changes {
			rows = append(rows, []string{
				strconv.FormatInt(changeset.RecordID, 10),
				changeset.Path,
				change.Field,
				change.Old,
				change.New,
			})
		}
	}
	fmt.Fprintln(out, renderTable(
		[]tableColumn{{"ID", true}, {"Path", false}, {"Field", false}, {"Old", false}, {"New", false}},
		rows,
	))

	if len(report.FieldChangeSummary) > 0 {
		var parts []string
		for _, field := range catalog.EnrichableFields {
			if count := report.FieldChangeSummary[field]; count > 0 {
				parts = append(parts, fmt.Sprintf("%s=%d", field, count))
			}
		}
		fmt.Fprintf(out, "Field changes: %s\n", strings.Join(parts, " "))
	}
}

// saveReport writes the JSON report next to earlier runs so applies stay
// diffable. Failures are non-fatal; the report already printed.
func saveReport(cfg *config.Config, outcome *pipeline.Outcome) (string, error) {
	if cfg.Paths.ReportDir == "" {
		return "", nil
	}
	data, err := json.MarshalIndent(outcome.Report, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(cfg.Paths.ReportDir, "enrich-"+outcome.RunID+".json")
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
