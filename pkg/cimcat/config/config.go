// Package config defines the configuration surface consumed by the
// conversion pipeline: color matching rules, sheet and column names,
// field defaults, and the namespace map of the generated document.
package config

// ColorRule describes which colors mark a row as suppressed ("red").
type ColorRule struct {
	// RedARGB lists ARGB hex values (FFRRGGBB) treated as red.
	RedARGB []string `koanf:"red_argb"`
	// RedIndexed lists legacy palette slots treated as red.
	RedIndexed []int `koanf:"red_indexed"`
	// RedThemeIndices lists theme color indices that can be red.
	RedThemeIndices []int `koanf:"red_theme_indices"`
	// RedThemeTintThreshold is the minimum tint for a theme color to
	// count as red. A theme color suppresses only when its index is in
	// RedThemeIndices and its tint is at or above this threshold.
	RedThemeTintThreshold float64 `koanf:"red_theme_tint_threshold"`
}

// Sheets names the two input sheets.
type Sheets struct {
	Categories string `koanf:"categories"`
	Templates  string `koanf:"templates"`
}

// Columns names the header cells the extractor looks for. CategoryType,
// Category, TemplateCategory and TemplateExpression are required on their
// sheets; Description and StorageDepth are read when present.
type Columns struct {
	CategoryType       string `koanf:"category_type"`
	Category           string `koanf:"category"`
	Description        string `koanf:"description"`
	StorageDepth       string `koanf:"storage_depth"`
	TemplateCategory   string `koanf:"template_category"`
	TemplateExpression string `koanf:"template_expression"`
}

// Defaults supplies values for fields left blank in the source rows.
type Defaults struct {
	StorageDepth          int  `koanf:"storage_depth"`
	Order                 int  `koanf:"order"`
	MessageRequired       bool `koanf:"message_required"`
	ReportForHigherStaff  bool `koanf:"report_higher"`
	ShiftPersonRestricted bool `koanf:"shift_restricted"`
	ActionTimeWithinShift bool `koanf:"action_time_shift"`
}

// Namespaces holds the four namespace URIs declared on the RDF root.
type Namespaces struct {
	RDF string `koanf:"rdf"`
	MD  string `koanf:"md"`
	CIM string `koanf:"cim"`
	ME  string `koanf:"me"`
}

// Config is the full configuration consumed, not owned, by the pipeline.
type Config struct {
	Colors     ColorRule  `koanf:"colors"`
	Sheets     Sheets     `koanf:"sheets"`
	Columns    Columns    `koanf:"columns"`
	Defaults   Defaults   `koanf:"defaults"`
	Namespaces Namespaces `koanf:"namespaces"`
	// ModelCreatedFormat is the time layout for md:Model.created.
	ModelCreatedFormat string `koanf:"model_created_format"`
	// ParentUID is the parent object used when none is supplied at
	// invocation.
	ParentUID string `koanf:"parent_uid"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Colors: ColorRule{
			RedARGB: []string{
				"FFFF0000", // pure red
				"FFCC0000",
				"FF990000",
				"FF660000",
				"FF330000",
				"FF8B0000", // deep red
				"FFFF3333",
				"FFFF6666",
				"FFFF9999",
				"FFFFCCCC",
				"FFD32121", // Office red
				"FFB80C0C",
				"FFA52222",
				"FFE66161",
				"FFE74C3C",
				"FFC0392B",
				"FFD91E18",
			},
			RedIndexed:            []int{3, 10, 46},
			RedThemeIndices:       []int{5, 6, 7},
			RedThemeTintThreshold: -0.5,
		},
		Sheets: Sheets{
			Categories: "Categories",
			Templates:  "Templates",
		},
		Columns: Columns{
			CategoryType:       "Category type",
			Category:           "Category",
			Description:        "Description",
			StorageDepth:       "Storage depth",
			TemplateCategory:   "Category",
			TemplateExpression: "Key expression",
		},
		Defaults: Defaults{
			StorageDepth: 1095, // three years
		},
		Namespaces: Namespaces{
			RDF: "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
			MD:  "http://iec.ch/TC57/61970-552/ModelDescription/1#",
			CIM: "http://iec.ch/TC57/2014/CIM-schema-cim16#",
			ME:  "http://monitel.com/2014/schema-cim16#",
		},
		ModelCreatedFormat: "2006-01-02T15:04:05.000Z",
		ParentUID:          "0377FACB-0EA4-4990-A4DD-DC9DE6BFB5B4",
	}
}
