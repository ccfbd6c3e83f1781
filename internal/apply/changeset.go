package apply

import (
	"fmt"
	"strconv"
	"strings"

	"printvault/internal/catalog"
)

// Proposal is the full enrichment computed for one record, before
// conservatism decides what actually lands.
type Proposal struct {
	// Fields maps enrichable field names to proposed values: string for
	// text fields, int for scale fields.
	Fields map[string]any
	// Warnings are merged into the record's warning list by union.
	Warnings []string
}

// SetField records a proposed text value, ignoring empties.
func (p *Proposal) SetField(field, value string) {
	if value == "" {
		return
	}
	if p.Fields == nil {
		p.Fields = make(map[string]any)
	}
	p.Fields[field] = value
}

// SetIntField records a proposed numeric value, ignoring zeroes.
func (p *Proposal) SetIntField(field string, value int) {
	if value == 0 {
		return
	}
	if p.Fields == nil {
		p.Fields = make(map[string]any)
	}
	p.Fields[field] = value
}

// FieldChange records one accepted write for the run report.
type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old,omitempty"`
	New   string `json:"new"`
}

// Changeset is the conservative subset of a proposal for one record. An
// empty Changes list means the record needs nothing.
type Changeset struct {
	RecordID int64         `json:"record_id"`
	Path     string        `json:"path"`
	Changes  []FieldChange `json:"changes"`

	fields map[string]any
}

// Empty reports whether the changeset would write anything.
func (c *Changeset) Empty() bool {
	return len(c.Changes) == 0
}

// Update converts the changeset into the store's batch update shape.
func (c *Changeset) Update() catalog.RecordUpdate {
	return catalog.RecordUpdate{ID: c.RecordID, Fields: c.fields}
}

// Compute filters a proposal down to the writes conservatism allows. Without
// force only empty fields are filled; with force differing values are
// overwritten too. Warnings always merge by union. Compute is pure: it never
// touches the store.
func Compute(record *catalog.Record, proposal Proposal, force bool) Changeset {
	changeset := Changeset{RecordID: record.ID, Path: record.Path}

	for _, field := range catalog.EnrichableFields {
		if field == catalog.FieldWarnings {
			continue
		}
		value, ok := proposal.Fields[field]
		if !ok {
			continue
		}
		proposed := displayValue(value)
		if proposed == "" {
			continue
		}
		current := record.FieldValue(field)
		if current == proposed {
			continue
		}
		if current != "" && !force {
			continue
		}
		changeset.addChange(field, current, proposed, value)
	}

	if merged, grew := mergeWarnings(record.Warnings, proposal.Warnings); grew {
		changeset.addChange(catalog.FieldWarnings,
			strings.Join(record.Warnings, "; "), strings.Join(merged, "; "), merged)
	}

	return changeset
}

func (c *Changeset) addChange(field, old, display string, value any) {
	c.Changes = append(c.Changes, FieldChange{Field: field, Old: old, New: display})
	if c.fields == nil {
		c.fields = make(map[string]any)
	}
	c.fields[field] = value
}

// mergeWarnings unions new warnings into the existing list, preserving the
// existing order and appending unseen entries in proposal order.
func mergeWarnings(existing, proposed []string) ([]string, bool) {
	if len(proposed) == 0 {
		return existing, false
	}
	seen := make(map[string]struct{}, len(existing))
	merged := make([]string, 0, len(existing)+len(proposed))
	for _, warning := range existing {
		seen[warning] = struct{}{}
		merged = append(merged, warning)
	}
	grew := false
	for _, warning := range proposed {
		if warning == "" {
			continue
		}
		if _, ok := seen[warning]; ok {
			continue
		}
		seen[warning] = struct{}{}
		merged = append(merged, warning)
		grew = true
	}
	return merged, grew
}

func displayValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		if v == 0 {
			return ""
		}
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
