// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package skydecoder

import "testing"

func TestNewDecoderDiscardsLogsWhenNotDebugging(t *testing.T) {
	d := NewDecoder(Config{})
	if d.logger == nil {
		t.Fatalf("logger is nil")
	}
}

func TestLoadCategoryAndLookup(t *testing.T) {
	d := NewDecoder(Config{})
	cat := NewCategory(CategoryHeader{Number: 2, Name: "Test"}, nil, nil, nil)
	d.LoadCategory(cat)

	got, ok := d.GetCategory(2)
	if !ok || got != cat {
		t.Fatalf("GetCategory(2) = %v, %v", got, ok)
	}
	if _, ok := d.GetCategory(99); ok {
		t.Fatalf("GetCategory(99) found a category that was never loaded")
	}
}

func TestSupportedCategoriesSorted(t *testing.T) {
	d := NewDecoder(Config{})
	d.LoadCategory(NewCategory(CategoryHeader{Number: 34}, nil, nil, nil))
	d.LoadCategory(NewCategory(CategoryHeader{Number: 2}, nil, nil, nil))
	d.LoadCategory(NewCategory(CategoryHeader{Number: 21}, nil, nil, nil))

	got := d.SupportedCategories()
	want := []uint8{2, 21, 34}
	if len(got) != len(want) {
		t.Fatalf("SupportedCategories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SupportedCategories() = %v, want %v", got, want)
		}
	}
}

func TestDecodeMessageUnsupportedCategory(t *testing.T) {
	d := NewDecoder(Config{})
	rec := d.DecodeMessage(9, []byte{0x00})
	if rec.Valid {
		t.Fatalf("DecodeMessage() with no loaded category returned Valid = true")
	}
}
