package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"printvault/internal/vocab"
)

func newVocabCommand(ctx *commandContext) *cobra.Command {
	vocabCmd := &cobra.Command{
		Use:   "vocab",
		Short: "Inspect the curated vocabulary",
	}

	vocabCmd.AddCommand(newVocabLintCommand(ctx))
	vocabCmd.AddCommand(newVocabShowCommand(ctx))

	return vocabCmd
}

func newVocabLintCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Build the vocabulary index and report curation issues",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			entries, err := vocab.LoadDir(cfg.Paths.VocabDir)
			if err != nil {
				return err
			}
			_, report := vocab.BuildIndex(entries)

			if jsonOut {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Indexed %d entries from %s\n", report.Indexed, cfg.Paths.VocabDir)
			if !report.HasIssues() {
				fmt.Fprintln(out, "No issues found")
				return nil
			}

			var rows [][]string
			for _, conflict := range report.Skipped {
				rows = append(rows, []string{"skipped", string(conflict.Domain), conflict.Key, conflict.Reason})
			}
			for _, conflict := range report.Conflicts {
				rows = append(rows, []string{"conflict", string(conflict.Domain), conflict.Key, conflict.Reason})
			}
			fmt.Fprintln(out, renderTable(
				[]tableColumn{{"Type", false}, {"Domain", false}, {"Key", false}, {"Reason", false}},
				rows,
			))
			return fmt.Errorf("vocabulary has %d issues", len(rows))
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the build report as JSON")
	return cmd
}

func newVocabShowCommand(ctx *commandContext) *cobra.Command {
	var showPhrases bool

	cmd := &cobra.Command{
		Use:   "show <domain> [key]",
		Short: "Show indexed entries or phrases for a domain",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			domain, ok := vocab.ParseDomain(args[0])
			if !ok {
				return fmt.Errorf("unknown domain %q", args[0])
			}
			entries, err := vocab.LoadDir(cfg.Paths.VocabDir)
			if err != nil {
				return err
			}
			index, _ := vocab.BuildIndex(entries)

			if len(args) == 2 || showPhrases {
				return showDomainPhrases(cmd, index, domain, args)
			}
			return showDomainEntries(cmd, index, domain)
		},
	}

	cmd.Flags().BoolVar(&showPhrases, "phrases", false, "List every indexed phrase instead of the entry summary")
	return cmd
}

func showDomainEntries(cmd *cobra.Command, index *vocab.Index, domain vocab.Domain) error {
	keys := index.Keys(domain)
	if len(keys) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No %s entries indexed\n", domain)
		return nil
	}

	var rows [][]string
	for _, key := range keys {
		entry, ok := index.Entry(domain, key)
		if !ok {
			continue
		}
		rows = append(rows, []string{
			key,
			entry.DisplayName,
			string(entry.Tier),
			entry.System,
			entry.ParentKey,
			strconv.Itoa(len(phrasesForKey(index, domain, key))),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]tableColumn{{"Key", false}, {"Display", false}, {"Tier", false}, {"System", false}, {"Parent", false}, {"Phrases", true}},
		rows,
	))
	return nil
}

func showDomainPhrases(cmd *cobra.Command, index *vocab.Index, domain vocab.Domain, args []string) error {
	var filterKey string
	if len(args) == 2 {
		filterKey = args[1]
	}

	var rows [][]string
	appendPhrases := func(tier vocab.Tier) {
		phrases := index.Phrases(domain, tier)
		sorted := make([]string, 0, len(phrases))
		for phrase := range phrases {
			sorted = append(sorted, phrase)
		}
		sort.Strings(sorted)
		for _, phrase := range sorted {
			for _, key := range phrases[phrase] {
				if filterKey != "" && key != filterKey {
					continue
				}
				rows = append(rows, []string{phrase, key, string(tier)})
			}
		}
	}
	appendPhrases(vocab.TierStrong)
	appendPhrases(vocab.TierWeak)

	if len(rows) == 0 {
		if filterKey != "" {
			return fmt.Errorf("no phrases indexed for %s key %q", domain, filterKey)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "No %s phrases indexed\n", domain)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]tableColumn{{"Phrase", false}, {"Key", false}, {"Tier", false}},
		rows,
	))
	return nil
}

func phrasesForKey(index *vocab.Index, domain vocab.Domain, key string) []string {
	var matched []string
	for _, tier := range []vocab.Tier{vocab.TierStrong, vocab.TierWeak} {
		for phrase, keys := range index.Phrases(domain, tier) {
			for _, holder := range keys {
				if holder == key {
					matched = append(matched, phrase)
					break
				}
			}
		}
	}
	sort.Strings(matched)
	return matched
}
