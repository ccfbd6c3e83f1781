package config

const (
	defaultDatabasePath     = "~/.local/share/printvault/catalog.db"
	defaultVocabDir         = "~/.config/printvault/vocab"
	defaultLogDir           = "~/.local/share/printvault/logs"
	defaultReportDir        = "~/.local/share/printvault/reports"
	defaultBatchSize        = 200
	defaultMaxRunnersUp     = 5
	defaultWeakConsensusMin = 2
	defaultLogFormat        = "auto"
	defaultLogLevel         = "info"
)

// defaultDomains is the enrichment order. Faction resolves before unit so a
// resolved faction can gate spell-context injection on the same record.
var defaultDomains = []string{
	"designer", "franchise", "character", "lineage", "faction", "unit",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Database:  defaultDatabasePath,
			VocabDir:  defaultVocabDir,
			LogDir:    defaultLogDir,
			ReportDir: defaultReportDir,
		},
		Engine: Engine{
			BatchSize:        defaultBatchSize,
			MaxRunnersUp:     defaultMaxRunnersUp,
			WeakConsensusMin: defaultWeakConsensusMin,
			Domains:          append([]string(nil), defaultDomains...),
		},
		Bias: Bias{
			Mount:        true,
			Spell:        true,
			Abbreviation: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
