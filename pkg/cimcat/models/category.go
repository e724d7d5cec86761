// Package models defines the normalized category tree built from a workbook.
package models

// CategoryType is a top-level grouping of categories.
type CategoryType struct {
	// Name is the type name from the categories sheet.
	Name string
	// Description is optional free text; empty when the source has none.
	Description string
	// Order is the 0-based position among distinct types in source order.
	Order int
	// Categories holds the type's categories in source order.
	Categories []Category
}

// Category is a named event classification belonging to one CategoryType.
type Category struct {
	Name        string
	Description string
	// Order is the 0-based position within the owning type.
	Order int
	// StorageDepth is the retention depth in days.
	StorageDepth int
	// Flags below come from configuration defaults.
	ActionTimeWithinShift bool
	MessageRequired       bool
	ReportForHigherStaff  bool
	ShiftPersonRestricted bool
	// Templates holds the category's record templates in source order.
	Templates []RecordTemplate
}

// RecordTemplate is a textual matching expression belonging to one Category.
type RecordTemplate struct {
	Text string
	// Order is the 0-based position within the owning category.
	Order int
}
