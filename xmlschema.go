// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package skydecoder

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// The XML document shape mirrors original_source/src/xml_parser.cpp's
// asterix_category root: header, user_application_profile, data_items,
// validation_rules. Two deliberate departures from the original: fields
// carry a generic type+bits pair instead of the original's enumerated
// per-width type names (uint8, uint12, ...; the original never even
// exposed a signed-integer string despite having an INT8..INT32 enum), and
// an FX-gated extension is nested directly inside its triggering field
// rather than matched back to it by name after the fact.

type xmlCategory struct {
	XMLName xml.Name        `xml:"asterix_category"`
	Header  xmlHeader       `xml:"header"`
	UAP     xmlUAP          `xml:"user_application_profile"`
	Items   []xmlDataItem   `xml:"data_items>data_item"`
	Rules   []xmlValidation `xml:"validation_rules>rule"`
}

type xmlHeader struct {
	Category int    `xml:"category"`
	Name     string `xml:"name"`
	Version  string `xml:"version"`
}

type xmlUAP struct {
	Items []string `xml:"uap_items>item"`
}

type xmlDataItem struct {
	ID     string     `xml:"id,attr"`
	Name   string     `xml:"name"`
	Format string     `xml:"format"`
	Length int        `xml:"length"`
	Fields []xmlField `xml:"structure>field"`
}

type xmlField struct {
	Name      string        `xml:"name,attr"`
	Type      string        `xml:"type,attr"`
	Bits      int           `xml:"bits,attr"`
	LSB       string        `xml:"lsb,attr"`
	Unit      string        `xml:"unit,attr"`
	Encoding  string        `xml:"encoding,attr"`
	Extension *xmlExtension `xml:"extension"`
}

type xmlExtension struct {
	Condition string     `xml:"condition,attr"`
	Fields    []xmlField `xml:"field"`
}

type xmlValidation struct {
	Item      string `xml:"item,attr"`
	Field     string `xml:"field,attr"`
	Kind      string `xml:"kind,attr"`
	Predicate string `xml:"predicate,attr"`
}

// LoadXML parses one category definition document from r.
func LoadXML(r io.Reader) (*Category, error) {
	var doc xmlCategory
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode category xml: %w", err)
	}
	return buildCategoryFromXML(doc)
}

// LoadXMLFile opens path and parses it via LoadXML.
func LoadXMLFile(path string) (*Category, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open category file %s: %w", path, err)
	}
	defer f.Close()
	return LoadXML(f)
}

// LoadCategoriesFromDir loads every *.xml file directly under dir as a
// category definition, keyed by its header's category number. This is the
// directory-based loading convenience original_source/src/decode_asterix.cpp's
// main uses ad hoc (loading a fixed list of category files); here it's
// generalized to any directory of category XML files.
func LoadCategoriesFromDir(dir string) (map[uint8]*Category, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read category directory %s: %w", dir, err)
	}
	out := make(map[uint8]*Category)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			continue
		}
		cat, err := LoadXMLFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		out[cat.Header.Number] = cat
	}
	return out, nil
}

func buildCategoryFromXML(doc xmlCategory) (*Category, error) {
	if doc.Header.Category < 0 || doc.Header.Category > 255 {
		return nil, fmt.Errorf("category number %d out of range: %w", doc.Header.Category, ErrSchemaMismatch)
	}
	header := CategoryHeader{
		Number:  uint8(doc.Header.Category),
		Name:    doc.Header.Name,
		Version: doc.Header.Version,
	}

	items := make([]DataItemDef, 0, len(doc.Items))
	for _, xi := range doc.Items {
		format, err := parseXMLFormat(xi.Format)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", xi.ID, err)
		}
		fields := make([]FieldDef, 0, len(xi.Fields))
		for _, xf := range xi.Fields {
			fd, err := xmlFieldToDef(xf)
			if err != nil {
				return nil, fmt.Errorf("item %s field %s: %w", xi.ID, xf.Name, err)
			}
			fields = append(fields, fd)
		}
		items = append(items, DataItemDef{
			ID:     xi.ID,
			Name:   xi.Name,
			Format: format,
			Length: xi.Length,
			Fields: fields,
		})
	}

	rules := make([]ValidationRule, 0, len(doc.Rules))
	for _, xr := range doc.Rules {
		kind, err := parseXMLRuleKind(xr.Kind)
		if err != nil {
			return nil, err
		}
		rules = append(rules, ValidationRule{
			ItemID:    xr.Item,
			Field:     xr.Field,
			Kind:      kind,
			Predicate: xr.Predicate,
		})
	}

	return NewCategory(header, doc.UAP.Items, items, rules), nil
}

func xmlFieldToDef(xf xmlField) (FieldDef, error) {
	t, err := parseXMLType(xf.Type)
	if err != nil {
		return FieldDef{}, err
	}
	lsb, err := parseLSB(xf.LSB)
	if err != nil {
		return FieldDef{}, err
	}
	fd := FieldDef{
		Name:     xf.Name,
		Type:     t,
		Bits:     xf.Bits,
		LSB:      lsb,
		Unit:     parseXMLUnit(xf.Unit),
		Encoding: xf.Encoding,
	}
	if xf.Extension != nil {
		fd.Condition = xf.Extension.Condition
		ext := make([]FieldDef, 0, len(xf.Extension.Fields))
		for _, xef := range xf.Extension.Fields {
			child, err := xmlFieldToDef(xef)
			if err != nil {
				return FieldDef{}, err
			}
			ext = append(ext, child)
		}
		fd.Extension = ext
	}
	return fd, nil
}

// parseLSB accepts either a plain decimal ("0.25") or a "numerator/denominator"
// fraction ("1/256"), matching the original's lsb attribute grammar.
func parseLSB(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		num, err := strconv.ParseFloat(s[:idx], 64)
		if err != nil {
			return 0, fmt.Errorf("lsb numerator %q: %w", s, ErrSchemaMismatch)
		}
		den, err := strconv.ParseFloat(s[idx+1:], 64)
		if err != nil || den == 0 {
			return 0, fmt.Errorf("lsb denominator %q: %w", s, ErrSchemaMismatch)
		}
		return num / den, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("lsb %q: %w", s, ErrSchemaMismatch)
	}
	return v, nil
}

func parseXMLFormat(s string) (ItemFormat, error) {
	switch s {
	case "fixed":
		return FormatFixed, nil
	case "variable":
		return FormatVariable, nil
	case "explicit":
		return FormatExplicit, nil
	case "repetitive":
		return FormatRepetitive, nil
	default:
		return 0, fmt.Errorf("unknown item format %q: %w", s, ErrSchemaMismatch)
	}
}

func parseXMLType(s string) (PrimitiveType, error) {
	switch s {
	case "unsigned":
		return TypeUnsigned, nil
	case "signed":
		return TypeSigned, nil
	case "boolean":
		return TypeBoolean, nil
	case "string":
		return TypeString, nil
	case "bytes":
		return TypeRawBytes, nil
	default:
		return 0, fmt.Errorf("unknown field type %q: %w", s, ErrSchemaMismatch)
	}
}

func parseXMLUnit(s string) Unit {
	switch s {
	case "s":
		return UnitSeconds
	case "NM":
		return UnitNauticalMiles
	case "degrees":
		return UnitDegrees
	case "FL":
		return UnitFlightLevel
	case "ft":
		return UnitFeet
	case "kts":
		return UnitKnots
	case "m/s":
		return UnitMetresPerSecond
	default:
		return UnitNone
	}
}

func parseXMLRuleKind(s string) (RuleKind, error) {
	switch s {
	case "mandatory":
		return RuleMandatory, nil
	case "conditional":
		return RuleConditional, nil
	case "optional":
		return RuleOptional, nil
	case "mode_a_octal":
		return RuleModeAOctal, nil
	case "callsign_charset":
		return RuleCallsignCharset, nil
	default:
		return 0, fmt.Errorf("unknown validation rule kind %q: %w", s, ErrSchemaMismatch)
	}
}
