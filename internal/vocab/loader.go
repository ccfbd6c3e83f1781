package vocab

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"printvault/internal/textutil"
	"printvault/internal/tokenize"
)

// canonicalKey folds curated keys to snake_case so "Grey Legion" and
// "grey_legion" name the same entry.
func canonicalKey(raw string) string {
	return textutil.SnakeCase(raw)
}

// entryFile is the curated on-disk shape: one file per domain.
type entryFile struct {
	Domain  string      `yaml:"domain"`
	Entries []entryYAML `yaml:"entries"`
}

type entryYAML struct {
	Key           string              `yaml:"key"`
	DisplayName   string              `yaml:"display_name"`
	System        string              `yaml:"system"`
	Tier          string              `yaml:"tier"`
	Aliases       []string            `yaml:"aliases"`
	LocaleAliases map[string][]string `yaml:"locale_aliases"`
	ExcludeTerms  []string            `yaml:"exclude_terms"`
	ContextTags   []string            `yaml:"context_tags"`
	Parent        string              `yaml:"parent"`
}

// LoadFile parses one curated vocabulary file. JSON files parse too since
// YAML is a superset.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary file: %w", err)
	}
	var file entryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse vocabulary file %s: %w", filepath.Base(path), err)
	}
	domain, ok := ParseDomain(file.Domain)
	if !ok {
		return nil, fmt.Errorf("vocabulary file %s: unknown domain %q", filepath.Base(path), file.Domain)
	}

	entries := make([]Entry, 0, len(file.Entries))
	for _, raw := range file.Entries {
		tier, ok := ParseTier(raw.Tier)
		if !ok {
			// Curation mistake, not fatal: treat the entry as strong.
			tier = TierStrong
		}
		entry := Entry{
			Domain:       domain,
			Key:          canonicalKey(raw.Key),
			DisplayName:  strings.TrimSpace(raw.DisplayName),
			System:       strings.TrimSpace(raw.System),
			Tier:         tier,
			Aliases:      raw.Aliases,
			ExcludeTerms: raw.ExcludeTerms,
			ContextTags:  raw.ContextTags,
			ParentKey:    canonicalKey(raw.Parent),
		}
		if len(raw.LocaleAliases) > 0 {
			entry.LocaleAliases = make(map[tokenize.Locale][]string, len(raw.LocaleAliases))
			for locale, aliases := range raw.LocaleAliases {
				entry.LocaleAliases[tokenize.Locale(strings.ToLower(locale))] = aliases
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// LoadDir loads every .yaml/.yml/.json file in a directory, sorted by name
// so repeated loads produce the same entry order.
func LoadDir(dir string) ([]Entry, error) {
	listing, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary directory: %w", err)
	}
	names := make([]string, 0, len(listing))
	for _, item := range listing {
		if item.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(item.Name())) {
		case ".yaml", ".yml", ".json":
			names = append(names, item.Name())
		}
	}
	sort.Strings(names)

	var entries []Entry
	for _, name := range names {
		fileEntries, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		entries = append(entries, fileEntries...)
	}
	return entries, nil
}
