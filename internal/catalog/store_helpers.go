package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

const recordColumns = "id, path, filename, parent_path, system, category, designer, franchise, character, lineage_family, lineage_subtype, codex_faction, codex_unit_name, segmentation, kit_role, scale_ratio, scale_mm, locale, warnings_json, created_at, updated_at"

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		id             int64
		path           string
		filename       string
		parentPath     string
		system         sql.NullString
		category       sql.NullString
		designer       sql.NullString
		franchise      sql.NullString
		character      sql.NullString
		lineageFamily  sql.NullString
		lineageSubtype sql.NullString
		codexFaction   sql.NullString
		codexUnitName  sql.NullString
		segmentation   sql.NullString
		kitRole        sql.NullString
		scaleRatio     sql.NullInt64
		scaleMM        sql.NullInt64
		locale         sql.NullString
		warningsJSON   sql.NullString
		createdRaw     sql.NullString
		updatedRaw     sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&path,
		&filename,
		&parentPath,
		&system,
		&category,
		&designer,
		&franchise,
		&character,
		&lineageFamily,
		&lineageSubtype,
		&codexFaction,
		&codexUnitName,
		&segmentation,
		&kitRole,
		&scaleRatio,
		&scaleMM,
		&locale,
		&warningsJSON,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	record := &Record{
		ID:             id,
		Path:           path,
		Filename:       filename,
		ParentPath:     parentPath,
		System:         system.String,
		Category:       category.String,
		Designer:       designer.String,
		Franchise:      franchise.String,
		Character:      character.String,
		LineageFamily:  lineageFamily.String,
		LineageSubtype: lineageSubtype.String,
		CodexFaction:   codexFaction.String,
		CodexUnitName:  codexUnitName.String,
		Segmentation:   segmentation.String,
		KitRole:        kitRole.String,
		ScaleRatio:     int(scaleRatio.Int64),
		ScaleMM:        int(scaleMM.Int64),
		Locale:         locale.String,
	}
	if warningsJSON.Valid && warningsJSON.String != "" {
		// Unreadable warnings are dropped rather than failing the scan.
		_ = json.Unmarshal([]byte(warningsJSON.String), &record.Warnings)
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		record.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		record.UpdatedAt = updated
	}
	return record, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}

func formatInt(value int) string {
	if value == 0 {
		return ""
	}
	return strconv.Itoa(value)
}
