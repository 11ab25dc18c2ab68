// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package skydecoder

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// The YAML shape mirrors xmlschema.go's document model field-for-field, as
// an alternate, more compact authoring format for the same category
// definitions. Field and UAP order come for free from ordinary YAML
// sequences decoded straight into typed Go slices, so there's no
// order-losing intermediate map step to work around.

type yamlCategory struct {
	Header yamlHeader       `yaml:"header"`
	UAP    []string         `yaml:"uap"`
	Items  []yamlDataItem   `yaml:"data_items"`
	Rules  []yamlValidation `yaml:"validation_rules"`
}

type yamlHeader struct {
	Category uint8  `yaml:"category"`
	Name     string `yaml:"name"`
	Version  string `yaml:"version"`
}

type yamlDataItem struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Format string      `yaml:"format"`
	Length int         `yaml:"length"`
	Fields []yamlField `yaml:"fields"`
}

type yamlField struct {
	Name      string      `yaml:"name"`
	Type      string      `yaml:"type"`
	Bits      int         `yaml:"bits"`
	LSB       string      `yaml:"lsb"`
	Unit      string      `yaml:"unit"`
	Encoding  string      `yaml:"encoding"`
	Condition string      `yaml:"condition"`
	Extension []yamlField `yaml:"extension"`
}

type yamlValidation struct {
	Item      string `yaml:"item"`
	Field     string `yaml:"field"`
	Kind      string `yaml:"kind"`
	Predicate string `yaml:"predicate"`
}

// LoadYAML parses one category definition document from r.
func LoadYAML(r io.Reader) (*Category, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read category yaml: %w", err)
	}
	var doc yamlCategory
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode category yaml: %w", err)
	}
	return buildCategoryFromYAML(doc)
}

// LoadYAMLFile opens path and parses it via LoadYAML.
func LoadYAMLFile(path string) (*Category, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open category file %s: %w", path, err)
	}
	defer f.Close()
	return LoadYAML(f)
}

func buildCategoryFromYAML(doc yamlCategory) (*Category, error) {
	items := make([]DataItemDef, 0, len(doc.Items))
	for _, yi := range doc.Items {
		format, err := parseXMLFormat(yi.Format)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", yi.ID, err)
		}
		fields := make([]FieldDef, 0, len(yi.Fields))
		for _, yf := range yi.Fields {
			fd, err := yamlFieldToDef(yf)
			if err != nil {
				return nil, fmt.Errorf("item %s field %s: %w", yi.ID, yf.Name, err)
			}
			fields = append(fields, fd)
		}
		items = append(items, DataItemDef{
			ID:     yi.ID,
			Name:   yi.Name,
			Format: format,
			Length: yi.Length,
			Fields: fields,
		})
	}

	rules := make([]ValidationRule, 0, len(doc.Rules))
	for _, yr := range doc.Rules {
		kind, err := parseXMLRuleKind(yr.Kind)
		if err != nil {
			return nil, err
		}
		rules = append(rules, ValidationRule{
			ItemID:    yr.Item,
			Field:     yr.Field,
			Kind:      kind,
			Predicate: yr.Predicate,
		})
	}

	header := CategoryHeader{
		Number:  doc.Header.Category,
		Name:    doc.Header.Name,
		Version: doc.Header.Version,
	}
	return NewCategory(header, doc.UAP, items, rules), nil
}

func yamlFieldToDef(yf yamlField) (FieldDef, error) {
	t, err := parseXMLType(yf.Type)
	if err != nil {
		return FieldDef{}, err
	}
	lsb, err := parseLSB(yf.LSB)
	if err != nil {
		return FieldDef{}, err
	}
	fd := FieldDef{
		Name:      yf.Name,
		Type:      t,
		Bits:      yf.Bits,
		LSB:       lsb,
		Unit:      parseXMLUnit(yf.Unit),
		Encoding:  yf.Encoding,
		Condition: yf.Condition,
	}
	if len(yf.Extension) > 0 {
		ext := make([]FieldDef, 0, len(yf.Extension))
		for _, yef := range yf.Extension {
			child, err := yamlFieldToDef(yef)
			if err != nil {
				return FieldDef{}, err
			}
			ext = append(ext, child)
		}
		fd.Extension = ext
	}
	return fd, nil
}
