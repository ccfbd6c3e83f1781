package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory configuration.
type Paths struct {
	Database  string `toml:"database"`
	VocabDir  string `toml:"vocab_dir"`
	LogDir    string `toml:"log_dir"`
	ReportDir string `toml:"report_dir"`
}

// Engine contains configuration for enrichment runs.
type Engine struct {
	BatchSize        int      `toml:"batch_size"`
	MaxRunnersUp     int      `toml:"max_runners_up"`
	WeakConsensusMin int      `toml:"weak_consensus_min"`
	Domains          []string `toml:"domains"`
}

// Resolver contains scoring overrides. Zero values fall back to the
// built-in constants.
type Resolver struct {
	BaseScore      float64 `toml:"base_score"`
	LengthBonus    float64 `toml:"length_bonus"`
	LengthBonusCap float64 `toml:"length_bonus_cap"`
	SystemBonus    float64 `toml:"system_bonus"`
	SegmentBonus   float64 `toml:"segment_bonus"`
	GenericPenalty float64 `toml:"generic_penalty"`
	CoAcceptDelta  float64 `toml:"co_accept_delta"`
	MountSeedScore float64 `toml:"mount_seed_score"`
	RiderBoost     float64 `toml:"rider_boost"`
	MountPenalty   float64 `toml:"mount_penalty"`
	SpellSeedScore float64 `toml:"spell_seed_score"`
	SpellBoost     float64 `toml:"spell_boost"`
}

// Bias contains per-module enable switches.
type Bias struct {
	Mount        bool `toml:"mount"`
	Spell        bool `toml:"spell"`
	Abbreviation bool `toml:"abbreviation"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for printvault.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Engine   Engine   `toml:"engine"`
	Resolver Resolver `toml:"resolver"`
	Bias     Bias     `toml:"bias"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/printvault/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The bool reports
// whether a file was actually found; without one the defaults apply.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("printvault.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{filepath.Dir(c.Paths.Database), c.Paths.LogDir, c.Paths.ReportDir}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockPath returns the run lock file location, kept next to the database so
// every writer against the same catalog contends on the same lock.
func (c *Config) LockPath() string {
	return c.Paths.Database + ".lock"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
