package parser

import (
	"github.com/xuri/excelize/v2"
)

// StyleOf resolves the effective fill and font colors of a cell by
// walking the workbook stylesheet (cellXfs -> fills/fonts). Any gap in
// the chain (no xf record, no fill, pattern "none", missing color)
// yields an absent color, never an error.
func StyleOf(f *excelize.File, sheet, cell string) CellStyle {
	var style CellStyle

	idx, err := f.GetCellStyle(sheet, cell)
	if err != nil || f.Styles == nil || f.Styles.CellXfs == nil {
		return style
	}
	xfs := f.Styles.CellXfs.Xf
	if idx < 0 || idx >= len(xfs) {
		return style
	}
	xf := xfs[idx]

	if xf.FillID != nil && f.Styles.Fills != nil {
		fills := f.Styles.Fills.Fill
		if id := *xf.FillID; id >= 0 && id < len(fills) && fills[id] != nil {
			if pf := fills[id].PatternFill; pf != nil && pf.PatternType != "none" && pf.FgColor != nil {
				c := pf.FgColor
				style.Fill = CellColor{
					ARGB: c.RGB,
					// Slot 0 is indistinguishable from "no indexed
					// color" in the stylesheet; it is never red.
					Indexed:    c.Indexed,
					HasIndexed: c.Indexed != 0,
					Theme:      c.Theme,
					Tint:       c.Tint,
				}
			}
		}
	}

	if xf.FontID != nil && f.Styles.Fonts != nil {
		fonts := f.Styles.Fonts.Font
		if id := *xf.FontID; id >= 0 && id < len(fonts) && fonts[id] != nil && fonts[id].Color != nil {
			c := fonts[id].Color
			style.Font = CellColor{
				ARGB:       c.RGB,
				Indexed:    c.Indexed,
				HasIndexed: c.Indexed != 0,
				Theme:      c.Theme,
				Tint:       c.Tint,
			}
		}
	}

	return style
}
