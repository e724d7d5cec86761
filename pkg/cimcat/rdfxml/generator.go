// Package rdfxml renders a category tree as a CIM RDF/XML model document.
package rdfxml

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/cimtools/cimcat/pkg/cimcat/config"
	"github.com/cimtools/cimcat/pkg/cimcat/models"
	"github.com/google/uuid"
)

// SerializationError reports a tree that cannot be rendered as
// well-formed XML.
type SerializationError struct {
	Element string
	Err     error
}

func (e *SerializationError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("serialization error in %s: %v", e.Element, e.Err)
	}
	return fmt.Sprintf("serialization error: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// Generator renders category trees. NewUID and Now default to random
// UUIDs and the wall clock; tests swap them for deterministic sources.
type Generator struct {
	Namespaces    config.Namespaces
	CreatedFormat string
	ModelVersion  string
	ModelName     string
	NewUID        func() string
	Now           func() time.Time
	Log           *slog.Logger
}

// New returns a Generator configured from cfg.
func New(cfg *config.Config, log *slog.Logger) *Generator {
	return &Generator{
		Namespaces:    cfg.Namespaces,
		CreatedFormat: cfg.ModelCreatedFormat,
		ModelVersion:  "ver:sample;",
		ModelName:     "CIM16",
		NewUID:        uuid.NewString,
		Now:           time.Now,
		Log:           log,
	}
}

// Generate emits the RDF/XML document for the tree. Every generated UID
// is unique within one call; the same tree gets fresh UIDs on each call.
// Containment is expressed both by nesting and by rdf:resource
// back-references on each child pointing at its owner's UID.
func (g *Generator) Generate(tree []models.CategoryType, parentUID string) (string, error) {
	uids := make(map[string]bool)
	newUID := func() (string, error) {
		id := g.NewUID()
		if uids[id] {
			return "", &SerializationError{Err: fmt.Errorf("duplicate uid generated: %s", id)}
		}
		uids[id] = true
		return id, nil
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("rdf:RDF")
	root.CreateAttr("xmlns:rdf", g.Namespaces.RDF)
	root.CreateAttr("xmlns:md", g.Namespaces.MD)
	root.CreateAttr("xmlns:cim", g.Namespaces.CIM)
	root.CreateAttr("xmlns:me", g.Namespaces.ME)

	fmUID, err := newUID()
	if err != nil {
		return "", err
	}
	fullModel := root.CreateElement("md:FullModel")
	fullModel.CreateAttr("rdf:about", ref(fmUID))
	fullModel.CreateElement("md:Model.created").SetText(g.Now().UTC().Format(g.CreatedFormat))
	fullModel.CreateElement("md:Model.version").SetText(g.ModelVersion)
	fullModel.CreateElement("me:Model.name").SetText(g.ModelName)
	fullModel.CreateElement("me:Model.ParentObject").CreateAttr("rdf:resource", ref(parentUID))

	countTypes, countCats, countTemplates := 0, 0, 0

	for _, ct := range tree {
		if ct.Name == "" {
			g.Log.Warn("skipping category type with empty name")
			continue
		}
		if err := checkText(ct.Name, "category type name"); err != nil {
			return "", err
		}

		ctUID, err := newUID()
		if err != nil {
			return "", err
		}
		ctElem := root.CreateElement("me:DjCategoryType")
		ctElem.CreateAttr("rdf:about", ref(ctUID))
		ctElem.CreateElement("cim:IdentifiedObject.name").SetText(ct.Name)
		if ct.Description != "" {
			if err := checkText(ct.Description, "category type description"); err != nil {
				return "", err
			}
			ctElem.CreateElement("cim:IdentifiedObject.description").SetText(ct.Description)
		}
		ctElem.CreateElement("me:IdentifiedObject.ParentObject").CreateAttr("rdf:resource", ref(parentUID))
		ctElem.CreateElement("me:DjCategoryType.order").SetText(strconv.Itoa(ct.Order))

		catUIDs := make([]string, len(ct.Categories))
		for i := range ct.Categories {
			if catUIDs[i], err = newUID(); err != nil {
				return "", err
			}
		}
		for _, id := range catUIDs {
			ctElem.CreateElement("me:DjCategoryType.Categories").CreateAttr("rdf:resource", ref(id))
		}

		for i, cat := range ct.Categories {
			if cat.Name == "" {
				g.Log.Warn("skipping category with empty name", "categoryType", ct.Name)
				continue
			}
			if err := checkText(cat.Name, "category name"); err != nil {
				return "", err
			}

			catElem := ctElem.CreateElement("me:DjCategory")
			catElem.CreateAttr("rdf:about", ref(catUIDs[i]))
			catElem.CreateElement("cim:IdentifiedObject.name").SetText(cat.Name)
			if cat.Description != "" {
				if err := checkText(cat.Description, "category description"); err != nil {
					return "", err
				}
				catElem.CreateElement("cim:IdentifiedObject.description").SetText(cat.Description)
			}
			catElem.CreateElement("me:IdentifiedObject.ParentObject").CreateAttr("rdf:resource", ref(ctUID))
			catElem.CreateElement("me:DjCategory.order").SetText(strconv.Itoa(cat.Order))
			catElem.CreateElement("me:DjCategory.actionTimeWithinShift").SetText(strconv.FormatBool(cat.ActionTimeWithinShift))
			catElem.CreateElement("me:DjCategory.messageRequired").SetText(strconv.FormatBool(cat.MessageRequired))
			catElem.CreateElement("me:DjCategory.reportForHigherOperationalStaff").SetText(strconv.FormatBool(cat.ReportForHigherStaff))
			catElem.CreateElement("me:DjCategory.shiftPersonRestricted").SetText(strconv.FormatBool(cat.ShiftPersonRestricted))
			catElem.CreateElement("me:DjCategory.storageDepth").SetText(strconv.Itoa(cat.StorageDepth))
			catElem.CreateElement("me:DjCategory.CategoryType").CreateAttr("rdf:resource", ref(ctUID))

			tmplUIDs := make([]string, len(cat.Templates))
			for j := range cat.Templates {
				if tmplUIDs[j], err = newUID(); err != nil {
					return "", err
				}
			}
			for _, id := range tmplUIDs {
				catElem.CreateElement("me:DjCategory.Templates").CreateAttr("rdf:resource", ref(id))
			}

			for j, tmpl := range cat.Templates {
				if err := checkText(tmpl.Text, "template text"); err != nil {
					return "", err
				}
				tmplElem := catElem.CreateElement("me:DjRecordTemplate")
				tmplElem.CreateAttr("rdf:about", ref(tmplUIDs[j]))
				tmplElem.CreateElement("me:DjRecordTemplate.order").SetText(strconv.Itoa(tmpl.Order))
				tmplElem.CreateElement("me:DjRecordTemplate.text").SetText(tmpl.Text)
				tmplElem.CreateElement("me:DjRecordTemplate.Category").CreateAttr("rdf:resource", ref(catUIDs[i]))
				countTemplates++
			}
			countCats++
		}
		countTypes++
	}

	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return "", &SerializationError{Err: err}
	}

	g.Log.Info("model document generated",
		"types", countTypes, "categories", countCats, "templates", countTemplates)
	return out, nil
}

func ref(uid string) string {
	return "#_" + uid
}

// checkText rejects characters that cannot appear in XML 1.0 text
// content regardless of escaping.
func checkText(s, what string) error {
	for _, r := range s {
		if r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		if r < 0x20 || (r >= 0xD800 && r <= 0xDFFF) || r == 0xFFFE || r == 0xFFFF {
			return &SerializationError{Element: what, Err: fmt.Errorf("illegal character %U", r)}
		}
	}
	return nil
}
