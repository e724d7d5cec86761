// Package parser reads styled tables out of xlsx workbooks: it locates
// header rows, maps columns, and drops rows marked red by fill or font.
package parser

import (
	"strings"

	"github.com/cimtools/cimcat/pkg/cimcat/config"
)

// CellColor is a neutral view of one OOXML color. A color is encoded as
// an explicit ARGB value, a legacy palette slot, or a theme reference
// with tint; absent fields stay zero.
type CellColor struct {
	// ARGB is the explicit hex value ("FFRRGGBB" or "RRGGBB"), if any.
	ARGB string
	// Indexed is the palette slot; valid only when HasIndexed is set.
	Indexed    int
	HasIndexed bool
	// Theme is the theme color index, nil when the color is not themed.
	Theme *int
	Tint  float64
}

// CellStyle carries the two colors that matter for suppression.
type CellStyle struct {
	Fill CellColor
	Font CellColor
}

// Suppressed reports whether a cell style marks its row as excluded.
// It is total: malformed color encodings never suppress.
func Suppressed(style CellStyle, rule config.ColorRule) bool {
	return IsRed(style.Fill, rule) || IsRed(style.Font, rule)
}

// IsRed reports whether a single color matches the red rules.
func IsRed(c CellColor, rule config.ColorRule) bool {
	if argb, ok := normalizeARGB(c.ARGB); ok {
		for _, red := range rule.RedARGB {
			if strings.EqualFold(argb, red) {
				return true
			}
		}
	}
	if c.HasIndexed {
		for _, slot := range rule.RedIndexed {
			if c.Indexed == slot {
				return true
			}
		}
	}
	if c.Theme != nil && c.Tint >= rule.RedThemeTintThreshold {
		for _, idx := range rule.RedThemeIndices {
			if *c.Theme == idx {
				return true
			}
		}
	}
	return false
}

// normalizeARGB canonicalizes a hex color to uppercase FFRRGGBB form.
// Six-digit values get an opaque alpha; eight-digit values keep their
// RGB tail. Anything else is reported as not a color.
func normalizeARGB(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'A' || r > 'F') {
			return "", false
		}
	}
	switch len(s) {
	case 6:
		return "FF" + s, true
	case 8:
		return "FF" + s[2:], true
	}
	return "", false
}
