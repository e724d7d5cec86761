// Package builder assembles extracted category and template tables into
// the normalized CategoryType tree.
package builder

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/cimtools/cimcat/pkg/cimcat/config"
	"github.com/cimtools/cimcat/pkg/cimcat/models"
	"github.com/cimtools/cimcat/pkg/cimcat/parser"
)

// Build merges the two extracted tables into an ordered list of
// CategoryType. Types keep their first-seen order and categories their
// source order within a type; template rows are joined by category name.
// A blank category-type cell inherits the value of the previous kept row
// (merged cells leave continuations blank). A template row referencing
// an unknown category is dropped with a warning; a duplicate category
// name within one type is an error because it would make the template
// join ambiguous.
func Build(categoryRows, templateRows []parser.Row, cfg *config.Config, log *slog.Logger) ([]models.CategoryType, error) {
	cols := cfg.Columns

	// Expressions per category name, in source order.
	templates := make(map[string][]string)
	for _, row := range templateRows {
		name := row.Values[cols.TemplateCategory]
		expr := row.Values[cols.TemplateExpression]
		if expr == "" {
			log.Debug("template row has no expression", "row", row.Number)
			continue
		}
		templates[name] = append(templates[name], expr)
	}

	var types []models.CategoryType
	typeIndex := make(map[string]int)
	seen := make(map[string]map[string]bool)
	known := make(map[string]bool)

	lastType := ""
	for _, row := range categoryRows {
		typeName := row.Values[cols.CategoryType]
		if typeName == "" {
			typeName = lastType
		}
		if typeName == "" {
			log.Warn("category row has no category type, skipping", "row", row.Number)
			continue
		}
		lastType = typeName

		catName := row.Values[cols.Category]
		if catName == "" {
			log.Warn("category row has no category name, skipping", "row", row.Number)
			continue
		}

		ti, ok := typeIndex[typeName]
		if !ok {
			ti = len(types)
			typeIndex[typeName] = ti
			types = append(types, models.CategoryType{Name: typeName, Order: ti})
			seen[typeName] = make(map[string]bool)
		}
		if seen[typeName][catName] {
			return nil, fmt.Errorf("duplicate category %q in category type %q (row %d)",
				catName, typeName, row.Number)
		}
		seen[typeName][catName] = true
		known[catName] = true

		cat := models.Category{
			Name:                  catName,
			Description:           row.Values[cols.Description],
			Order:                 len(types[ti].Categories),
			StorageDepth:          storageDepth(row.Values[cols.StorageDepth], cfg.Defaults.StorageDepth, row.Number, log),
			ActionTimeWithinShift: cfg.Defaults.ActionTimeWithinShift,
			MessageRequired:       cfg.Defaults.MessageRequired,
			ReportForHigherStaff:  cfg.Defaults.ReportForHigherStaff,
			ShiftPersonRestricted: cfg.Defaults.ShiftPersonRestricted,
		}
		for i, expr := range templates[catName] {
			cat.Templates = append(cat.Templates, models.RecordTemplate{Text: expr, Order: i})
		}
		types[ti].Categories = append(types[ti].Categories, cat)
	}

	for name, exprs := range templates {
		if !known[name] {
			log.Warn("template rows reference unknown category, dropped",
				"category", name, "templates", len(exprs))
		}
	}

	return types, nil
}

// storageDepth parses an optional storage-depth cell, falling back to
// the configured default for blank or invalid values.
func storageDepth(raw string, def, rowNum int, log *slog.Logger) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Warn("invalid storage depth, using default", "row", rowNum, "value", raw, "default", def)
		return def
	}
	return n
}
