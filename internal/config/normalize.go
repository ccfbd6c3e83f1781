package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEngine()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.Database) == "" {
		c.Paths.Database = defaultDatabasePath
	}
	if c.Paths.Database, err = expandPath(c.Paths.Database); err != nil {
		return fmt.Errorf("paths.database: %w", err)
	}
	if strings.TrimSpace(c.Paths.VocabDir) == "" {
		c.Paths.VocabDir = defaultVocabDir
	}
	if c.Paths.VocabDir, err = expandPath(c.Paths.VocabDir); err != nil {
		return fmt.Errorf("paths.vocab_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ReportDir) == "" {
		c.Paths.ReportDir = defaultReportDir
	}
	if c.Paths.ReportDir, err = expandPath(c.Paths.ReportDir); err != nil {
		return fmt.Errorf("paths.report_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeEngine() {
	if c.Engine.BatchSize <= 0 {
		c.Engine.BatchSize = defaultBatchSize
	}
	if c.Engine.MaxRunnersUp <= 0 {
		c.Engine.MaxRunnersUp = defaultMaxRunnersUp
	}
	if c.Engine.WeakConsensusMin <= 0 {
		c.Engine.WeakConsensusMin = defaultWeakConsensusMin
	}
	if len(c.Engine.Domains) == 0 {
		c.Engine.Domains = append([]string(nil), defaultDomains...)
		return
	}
	domains := make([]string, 0, len(c.Engine.Domains))
	seen := make(map[string]struct{}, len(c.Engine.Domains))
	for _, domain := range c.Engine.Domains {
		normalized := strings.ToLower(strings.TrimSpace(domain))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		domains = append(domains, normalized)
	}
	if len(domains) == 0 {
		domains = append([]string(nil), defaultDomains...)
	}
	c.Engine.Domains = domains
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "auto":
		c.Logging.Format = "auto"
	case "json", "text", "console":
	default:
		c.Logging.Format = "auto"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
