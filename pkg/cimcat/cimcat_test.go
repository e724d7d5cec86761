package cimcat

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/cimtools/cimcat/pkg/cimcat/config"
	"github.com/cimtools/cimcat/pkg/cimcat/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testLog = slog.New(slog.NewTextHandler(io.Discard, nil))

// buildWorkbook writes a two-sheet survey workbook: categories with an
// offset header, a red row, and a merged-type continuation; templates
// with one orphan row.
func buildWorkbook(t *testing.T, cfg *config.Config) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	cats := cfg.Sheets.Categories
	tmpls := cfg.Sheets.Templates
	require.NoError(t, f.SetSheetName("Sheet1", cats))
	_, err := f.NewSheet(tmpls)
	require.NoError(t, err)

	// Categories sheet, header on row 2.
	f.SetCellValue(cats, "A1", "Event category survey")
	f.SetCellValue(cats, "A2", cfg.Columns.CategoryType)
	f.SetCellValue(cats, "B2", cfg.Columns.Category)
	f.SetCellValue(cats, "A3", "Operational")
	f.SetCellValue(cats, "B3", "Switching")
	f.SetCellValue(cats, "B4", "Outage") // continuation of the merged type cell
	f.SetCellValue(cats, "A5", "Operational")
	f.SetCellValue(cats, "B5", "Deprecated")
	f.SetCellValue(cats, "A6", "Administrative")
	f.SetCellValue(cats, "B6", "Shift change")

	redStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FF0000"}},
	})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(cats, "A5", "B5", redStyle))

	// Templates sheet, header on row 1.
	f.SetCellValue(tmpls, "A1", cfg.Columns.TemplateCategory)
	f.SetCellValue(tmpls, "B1", cfg.Columns.TemplateExpression)
	f.SetCellValue(tmpls, "A2", "Outage")
	f.SetCellValue(tmpls, "B2", "line * tripped")
	f.SetCellValue(tmpls, "A3", "Outage")
	f.SetCellValue(tmpls, "B3", "breaker * opened")
	f.SetCellValue(tmpls, "A4", "Unknown category")
	f.SetCellValue(tmpls, "B4", "orphan expression")

	path := filepath.Join(t.TempDir(), "survey.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestConvertEndToEnd(t *testing.T) {
	cfg := config.Default()
	path := buildWorkbook(t, cfg)

	out, err := Convert(path, cfg, "PARENT-UID", testLog)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(out))

	// The red "Deprecated" row is gone; the merged type cell carried
	// forward; the orphan template row is dropped.
	assert.Len(t, doc.FindElements("//me:DjCategoryType"), 2)
	cats := doc.FindElements("//me:DjCategory")
	require.Len(t, cats, 3)
	var names []string
	for _, cat := range cats {
		names = append(names, cat.SelectElement("cim:IdentifiedObject.name").Text())
	}
	assert.Equal(t, []string{"Switching", "Outage", "Shift change"}, names)
	assert.Len(t, doc.FindElements("//me:DjRecordTemplate"), 2)
	assert.Empty(t, doc.FindElements("//me:DjRecordTemplate[me:DjRecordTemplate.text='orphan expression']"))

	fm := doc.FindElement("//md:FullModel")
	require.NotNil(t, fm)
	assert.Equal(t, "#_PARENT-UID",
		fm.SelectElement("me:Model.ParentObject").SelectAttrValue("rdf:resource", ""))
}

func TestConvertUsesConfiguredParentUID(t *testing.T) {
	cfg := config.Default()
	path := buildWorkbook(t, cfg)

	out, err := Convert(path, cfg, "", testLog)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(out))
	fm := doc.FindElement("//md:FullModel")
	require.NotNil(t, fm)
	assert.Equal(t, "#_"+cfg.ParentUID,
		fm.SelectElement("me:Model.ParentObject").SelectAttrValue("rdf:resource", ""))
}

func TestConvertHeaderNotFoundAborts(t *testing.T) {
	cfg := config.Default()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", cfg.Sheets.Categories))
	_, err := f.NewSheet(cfg.Sheets.Templates)
	require.NoError(t, err)
	f.SetCellValue(cfg.Sheets.Categories, "A1", "not a header")

	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, f.SaveAs(path))

	_, err = Convert(path, cfg, "", testLog)
	var hnf *parser.HeaderNotFoundError
	require.True(t, errors.As(err, &hnf), "expected HeaderNotFoundError, got %v", err)
	assert.Equal(t, cfg.Sheets.Categories, hnf.Sheet)
}

func TestConvertMissingFile(t *testing.T) {
	_, err := Convert(filepath.Join(t.TempDir(), "nope.xlsx"), config.Default(), "", testLog)
	require.Error(t, err)
}
