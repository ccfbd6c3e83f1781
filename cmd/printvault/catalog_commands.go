package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"printvault/internal/catalog"
	"printvault/internal/config"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Seed and inspect the record catalog",
	}

	catalogCmd.AddCommand(newCatalogAddCommand(ctx))
	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))
	catalogCmd.AddCommand(newCatalogStatusCommand(ctx))

	return catalogCmd
}

func newCatalogAddCommand(ctx *commandContext) *cobra.Command {
	var system, category string

	cmd := &cobra.Command{
		Use:   "add <path>...",
		Short: "Add records for model paths",
		Long: `Add records one archive path at a time. Paths are taken as-is and are
never scanned or hashed; the declared system and category apply to every
path in the invocation.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				for _, path := range args {
					record, err := store.NewRecord(cmd.Context(), path, system, category)
					if err != nil {
						return fmt.Errorf("add %s: %w", path, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Added record %d: %s\n", record.ID, record.Path)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&system, "system", "", "Declared game system for the added records")
	cmd.Flags().StringVar(&category, "category", "", "Declared category for the added records")
	return cmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut   bool
		missing   string
		recordIDs []int64
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				records, err := store.List(cmd.Context(), catalog.Scope{IDs: recordIDs, MissingField: missing})
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, records)
				}
				if len(records) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty")
					return nil
				}

				rows := make([][]string, 0, len(records))
				for _, record := range records {
					rows = append(rows, []string{
						strconv.FormatInt(record.ID, 10),
						record.Path,
						record.Designer,
						record.CodexFaction,
						record.CodexUnitName,
						record.Segmentation,
						formatScale(record),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]tableColumn{{"ID", true}, {"Path", false}, {"Designer", false}, {"Faction", false}, {"Unit", false}, {"Seg", false}, {"Scale", false}},
					rows,
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit records as JSON")
	cmd.Flags().StringVar(&missing, "missing", "", "Only records missing this field")
	cmd.Flags().Int64SliceVar(&recordIDs, "record", nil, "Only these record IDs")
	return cmd
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one record in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid record id %q", args[0])
			}
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				record, err := store.GetByID(cmd.Context(), id)
				if err != nil {
					return err
				}
				if record == nil {
					return fmt.Errorf("record %d not found", id)
				}
				if jsonOut {
					return writeJSON(cmd, record)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Record %d\n", record.ID)
				fmt.Fprintf(out, "  Path:         %s\n", record.Path)
				fmt.Fprintf(out, "  System:       %s\n", record.System)
				fmt.Fprintf(out, "  Category:     %s\n", record.Category)
				for _, field := range catalog.EnrichableFields {
					if field == catalog.FieldWarnings {
						continue
					}
					fmt.Fprintf(out, "  %-13s %s\n", field+":", record.FieldValue(field))
				}
				if len(record.Warnings) > 0 {
					fmt.Fprintf(out, "  Warnings:     %s\n", strings.Join(record.Warnings, "; "))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the record as JSON")
	return cmd
}

func newCatalogStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Summarize catalog coverage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, stats)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Records: %d\n", stats.Total)
				if stats.Total == 0 {
					return nil
				}
				var rows [][]string
				for _, field := range catalog.EnrichableFields {
					count, ok := stats.MissingField[field]
					if !ok {
						continue
					}
					rows = append(rows, []string{field, strconv.Itoa(count)})
				}
				fmt.Fprintln(out, renderTable(
					[]tableColumn{{"Missing Field", false}, {"Count", true}},
					rows,
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the summary as JSON")
	return cmd
}

func formatScale(record *catalog.Record) string {
	switch {
	case record.ScaleRatio != 0:
		return "1:" + strconv.Itoa(record.ScaleRatio)
	case record.ScaleMM != 0:
		return strconv.Itoa(record.ScaleMM) + "mm"
	default:
		return ""
	}
}
