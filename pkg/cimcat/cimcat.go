// Package cimcat converts styled category spreadsheets into CIM RDF/XML
// model documents. Rows marked with a red fill or font are excluded;
// the rest are normalized into a CategoryType -> Category ->
// RecordTemplate tree and emitted as a cross-referenced RDF graph.
package cimcat

import (
	"fmt"
	"log/slog"

	"github.com/cimtools/cimcat/pkg/cimcat/builder"
	"github.com/cimtools/cimcat/pkg/cimcat/config"
	"github.com/cimtools/cimcat/pkg/cimcat/parser"
	"github.com/cimtools/cimcat/pkg/cimcat/rdfxml"
	"github.com/xuri/excelize/v2"
)

// Convert reads the workbook at path and returns the generated RDF/XML
// document. parentUID overrides the configured default when non-empty.
func Convert(path string, cfg *config.Config, parentUID string, log *slog.Logger) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	return ConvertFile(f, cfg, parentUID, log)
}

// ConvertFile runs the pipeline against an already opened workbook.
func ConvertFile(f *excelize.File, cfg *config.Config, parentUID string, log *slog.Logger) (string, error) {
	cols := cfg.Columns

	categoryRows, err := parser.ExtractTable(f, cfg.Sheets.Categories,
		[]string{cols.CategoryType, cols.Category},
		[]string{cols.Description, cols.StorageDepth},
		cfg.Colors, log)
	if err != nil {
		return "", fmt.Errorf("categories sheet: %w", err)
	}

	templateRows, err := parser.ExtractTable(f, cfg.Sheets.Templates,
		[]string{cols.TemplateCategory, cols.TemplateExpression},
		nil, cfg.Colors, log)
	if err != nil {
		return "", fmt.Errorf("templates sheet: %w", err)
	}

	tree, err := builder.Build(categoryRows, templateRows, cfg, log)
	if err != nil {
		return "", err
	}

	if parentUID == "" {
		parentUID = cfg.ParentUID
	}
	return rdfxml.New(cfg, log).Generate(tree, parentUID)
}
