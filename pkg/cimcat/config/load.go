package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Load builds the effective configuration by layering built-in defaults,
// an optional YAML config file, and any matching command-line flags.
// Flag names map to config keys with dashes replaced by underscores.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if flags != nil {
		p := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		})
		if err := k.Load(p, nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func defaultMap() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"colors": map[string]interface{}{
			"red_argb":                 d.Colors.RedARGB,
			"red_indexed":              d.Colors.RedIndexed,
			"red_theme_indices":        d.Colors.RedThemeIndices,
			"red_theme_tint_threshold": d.Colors.RedThemeTintThreshold,
		},
		"sheets": map[string]interface{}{
			"categories": d.Sheets.Categories,
			"templates":  d.Sheets.Templates,
		},
		"columns": map[string]interface{}{
			"category_type":       d.Columns.CategoryType,
			"category":            d.Columns.Category,
			"description":         d.Columns.Description,
			"storage_depth":       d.Columns.StorageDepth,
			"template_category":   d.Columns.TemplateCategory,
			"template_expression": d.Columns.TemplateExpression,
		},
		"defaults": map[string]interface{}{
			"storage_depth":     d.Defaults.StorageDepth,
			"order":             d.Defaults.Order,
			"message_required":  d.Defaults.MessageRequired,
			"report_higher":     d.Defaults.ReportForHigherStaff,
			"shift_restricted":  d.Defaults.ShiftPersonRestricted,
			"action_time_shift": d.Defaults.ActionTimeWithinShift,
		},
		"namespaces": map[string]interface{}{
			"rdf": d.Namespaces.RDF,
			"md":  d.Namespaces.MD,
			"cim": d.Namespaces.CIM,
			"me":  d.Namespaces.ME,
		},
		"model_created_format": d.ModelCreatedFormat,
		"parent_uid":           d.ParentUID,
	}
}
