package catalog

import "time"

// Record is one cataloged model file or archive folder.
type Record struct {
	ID         int64
	Path       string
	Filename   string
	ParentPath string

	// System and Category are declared by the operator at add time, never
	// inferred.
	System   string
	Category string

	// Normalized fields. Empty means unknown; the apply engine only ever
	// fills empty fields unless forced.
	Designer       string
	Franchise      string
	Character      string
	LineageFamily  string
	LineageSubtype string
	CodexFaction   string
	CodexUnitName  string
	Segmentation   string
	KitRole        string
	ScaleRatio     int
	ScaleMM        int
	Locale         string

	Warnings []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Enrichable field names, matching their column names. The apply engine
// addresses fields by these strings.
const (
	FieldDesigner       = "designer"
	FieldFranchise      = "franchise"
	FieldCharacter      = "character"
	FieldLineageFamily  = "lineage_family"
	FieldLineageSubtype = "lineage_subtype"
	FieldCodexFaction   = "codex_faction"
	FieldCodexUnitName  = "codex_unit_name"
	FieldSegmentation   = "segmentation"
	FieldKitRole        = "kit_role"
	FieldScaleRatio     = "scale_ratio"
	FieldScaleMM        = "scale_mm"
	FieldLocale         = "locale"
	FieldWarnings       = "warnings"
)

// EnrichableFields lists every field the apply engine may write, in report
// order.
var EnrichableFields = []string{
	FieldDesigner,
	FieldFranchise,
	FieldCharacter,
	FieldLineageFamily,
	FieldLineageSubtype,
	FieldCodexFaction,
	FieldCodexUnitName,
	FieldSegmentation,
	FieldKitRole,
	FieldScaleRatio,
	FieldScaleMM,
	FieldLocale,
	FieldWarnings,
}

// fieldColumns maps enrichable field names to their SQL columns. Field names
// outside this map are rejected before any SQL is built.
var fieldColumns = map[string]string{
	FieldDesigner:       "designer",
	FieldFranchise:      "franchise",
	FieldCharacter:      "character",
	FieldLineageFamily:  "lineage_family",
	FieldLineageSubtype: "lineage_subtype",
	FieldCodexFaction:   "codex_faction",
	FieldCodexUnitName:  "codex_unit_name",
	FieldSegmentation:   "segmentation",
	FieldKitRole:        "kit_role",
	FieldScaleRatio:     "scale_ratio",
	FieldScaleMM:        "scale_mm",
	FieldLocale:         "locale",
	FieldWarnings:       "warnings_json",
}

// FieldValue returns the record's current value for an enrichable scalar
// field, formatted the way change reports render it. Warnings is not a
// scalar and reports as a count.
func (r *Record) FieldValue(field string) string {
	switch field {
	case FieldDesigner:
		return r.Designer
	case FieldFranchise:
		return r.Franchise
	case FieldCharacter:
		return r.Character
	case FieldLineageFamily:
		return r.LineageFamily
	case FieldLineageSubtype:
		return r.LineageSubtype
	case FieldCodexFaction:
		return r.CodexFaction
	case FieldCodexUnitName:
		return r.CodexUnitName
	case FieldSegmentation:
		return r.Segmentation
	case FieldKitRole:
		return r.KitRole
	case FieldScaleRatio:
		return formatInt(r.ScaleRatio)
	case FieldScaleMM:
		return formatInt(r.ScaleMM)
	case FieldLocale:
		return r.Locale
	default:
		return ""
	}
}

// RecordUpdate carries the field changes for one record within a batch.
type RecordUpdate struct {
	ID     int64
	Fields map[string]any
}

// Stats summarizes the catalog for status output.
type Stats struct {
	Total        int
	MissingField map[string]int
}

// VocabConflict is a persisted vocabulary build issue.
type VocabConflict struct {
	ID        int64
	RunID     string
	Domain    string
	Key       string
	Reason    string
	CreatedAt time.Time
}
