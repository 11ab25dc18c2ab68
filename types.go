// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package skydecoder

import "fmt"

// ValueKind discriminates the storage field a FieldValue actually holds.
type ValueKind int

const (
	KindUint ValueKind = iota
	KindInt
	KindBool
	KindString
	KindBytes
)

// FieldValue is a tagged union over the decoded primitive kinds (Design
// Note 9): exactly one of Uint/Int/Bool/Str/Bytes is meaningful, selected by
// Kind. Callers switch over Kind rather than doing type assertions.
type FieldValue struct {
	Kind  ValueKind
	Uint  uint32
	Int   int32
	Bool  bool
	Str   string
	Bytes []byte
}

// String renders the value for logging and debugging; it does not apply
// unit or LSB scaling (see Field.Format for that).
func (v FieldValue) String() string {
	switch v.Kind {
	case KindUint:
		return fmt.Sprintf("%d", v.Uint)
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case KindString:
		return v.Str
	case KindBytes:
		return fmt.Sprintf("% X", v.Bytes)
	default:
		return "<invalid>"
	}
}

// Field is one decoded field: its typed value, unit and bit width, and its
// own validity. A field error invalidates only the field (§7); the item
// that contains it may still be valid.
type Field struct {
	Name         string
	Value        FieldValue
	Unit         Unit
	Bits         int
	LSB          float64
	Valid        bool
	ErrorMessage string
}

// Scaled returns Value.Uint or Value.Int multiplied by the field's LSB
// multiplier, for numeric kinds. It is a derived accessor only: the stored
// Value is always the raw integer (§4.4's LSB-scaling rule).
func (f Field) Scaled() (float64, bool) {
	lsb := f.LSB
	if lsb == 0 {
		lsb = 1
	}
	switch f.Value.Kind {
	case KindUint:
		return float64(f.Value.Uint) * lsb, true
	case KindInt:
		return float64(f.Value.Int) * lsb, true
	default:
		return 0, false
	}
}

// DataItem is one decoded data item: its identifier, name, and ordered
// field list. An item error invalidates the item and makes the containing
// record report Valid = false, but never stops the record's walk (§7): the
// cursor still resynchronizes to the item's declared byte span and later
// items are still decoded.
type DataItem struct {
	ID           string
	Name         string
	Fields       []Field
	Valid        bool
	ErrorMessage string
}

// FieldByName returns the first field with the given name, if present.
func (di DataItem) FieldByName(name string) (Field, bool) {
	for _, f := range di.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Record is one decoded ASTERIX record: FSPEC-selected data items plus the
// exact number of bytes consumed. Category is carried so Validate and the
// analyzer can look up the owning schema from a bare Record (see
// SPEC_FULL.md §3).
type Record struct {
	Category     uint8
	Length       int
	Items        []DataItem
	Valid        bool
	ErrorMessage string
}

// ItemByID returns the first data item with the given identifier, if present.
func (r Record) ItemByID(id string) (DataItem, bool) {
	for _, it := range r.Items {
		if it.ID == id {
			return it, true
		}
	}
	return DataItem{}, false
}

// Block is one decoded ASTERIX block: the 3-byte header plus its records.
// Valid iff the header parsed and at least one individually-valid record
// was produced (SPEC_FULL.md §4.5, §9 open question 3).
type Block struct {
	Category uint8
	Length   int
	Records  []Record
	Valid    bool
}

// anyRecordValid reports whether at least one record in the block decoded
// successfully, the deciding factor for Block.Valid.
func anyRecordValid(records []Record) bool {
	for _, r := range records {
		if r.Valid {
			return true
		}
	}
	return false
}
