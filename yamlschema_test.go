// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package skydecoder

import (
	"strings"
	"testing"
)

const testCategoryYAML = `
header:
  category: 2
  name: CAT002
  version: "1.0"
uap:
  - I002/010
  - I002/000
data_items:
  - id: I002/010
    name: Data Source Identifier
    format: fixed
    length: 2
    fields:
      - name: SAC
        type: unsigned
        bits: 8
      - name: SIC
        type: unsigned
        bits: 8
  - id: I002/000
    name: Message Type
    format: variable
    fields:
      - name: A
        type: unsigned
        bits: 7
      - name: FX
        type: boolean
        bits: 1
        extension:
          - name: B
            type: unsigned
            bits: 8
        condition: "FX == 1"
validation_rules:
  - item: I002/010
    kind: mandatory
  - item: I002/070
    field: Mode3A
    kind: mode_a_octal
`

func TestLoadYAML(t *testing.T) {
	cat, err := LoadYAML(strings.NewReader(testCategoryYAML))
	if err != nil {
		t.Fatalf("LoadYAML() error = %v", err)
	}
	if cat.Header.Number != 2 || cat.Header.Name != "CAT002" {
		t.Fatalf("cat.Header = %+v", cat.Header)
	}
	if len(cat.UAP) != 2 || cat.UAP[0] != "I002/010" || cat.UAP[1] != "I002/000" {
		t.Fatalf("cat.UAP = %v", cat.UAP)
	}

	src, ok := cat.ItemByID("I002/010")
	if !ok || src.Format != FormatFixed || src.Length != 2 || len(src.Fields) != 2 {
		t.Fatalf("I002/010 = %+v, ok=%v", src, ok)
	}
	if src.Fields[0].Name != "SAC" || src.Fields[1].Name != "SIC" {
		t.Fatalf("I002/010 fields out of order: %+v", src.Fields)
	}

	msg, ok := cat.ItemByID("I002/000")
	if !ok || msg.Format != FormatVariable {
		t.Fatalf("I002/000 = %+v, ok=%v", msg, ok)
	}
	if len(msg.Fields) != 2 || msg.Fields[1].Condition != "FX == 1" || len(msg.Fields[1].Extension) != 1 {
		t.Fatalf("I002/000 fields = %+v", msg.Fields)
	}
	if msg.Fields[1].Extension[0].Name != "B" {
		t.Fatalf("I002/000 extension field = %+v", msg.Fields[1].Extension[0])
	}

	if len(cat.Rules) != 2 || cat.Rules[0].Kind != RuleMandatory || cat.Rules[1].Kind != RuleModeAOctal {
		t.Fatalf("cat.Rules = %+v", cat.Rules)
	}
}

func TestLoadYAMLRejectsUnknownFormat(t *testing.T) {
	bad := strings.Replace(testCategoryYAML, "format: fixed", "format: bogus", 1)
	if _, err := LoadYAML(strings.NewReader(bad)); err == nil {
		t.Fatalf("LoadYAML() error = nil, want an error for an unknown format")
	}
}

func TestLoadYAMLRejectsUnknownFieldType(t *testing.T) {
	bad := strings.Replace(testCategoryYAML, "type: unsigned\n        bits: 8", "type: bogus\n        bits: 8", 1)
	if _, err := LoadYAML(strings.NewReader(bad)); err == nil {
		t.Fatalf("LoadYAML() error = nil, want an error for an unknown field type")
	}
}
