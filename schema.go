// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package skydecoder

// PrimitiveType is the set of field value types a FieldDef may declare.
type PrimitiveType int

const (
	// TypeUnsigned is an unsigned integer of 1-32 bits.
	TypeUnsigned PrimitiveType = iota
	// TypeSigned is a two's-complement signed integer of 8/16/24/32 bits.
	TypeSigned
	// TypeBoolean is a single bit, non-zero meaning true.
	TypeBoolean
	// TypeString is a width-derived byte run, optionally 6-bit-ASCII encoded.
	TypeString
	// TypeRawBytes is the field's byte window, left-packed, uninterpreted.
	TypeRawBytes
)

// String renders the primitive type name, used in schema-loading error
// messages and debug logging.
func (t PrimitiveType) String() string {
	switch t {
	case TypeUnsigned:
		return "unsigned"
	case TypeSigned:
		return "signed"
	case TypeBoolean:
		return "boolean"
	case TypeString:
		return "string"
	case TypeRawBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// ItemFormat is the byte-span-determination strategy for a data item.
type ItemFormat int

const (
	// FormatFixed items occupy a schema-declared fixed byte count.
	FormatFixed ItemFormat = iota
	// FormatVariable items extend one byte at a time until an FX bit of 0.
	FormatVariable
	// FormatExplicit items are prefixed by a total-length byte.
	FormatExplicit
	// FormatRepetitive items are prefixed by a repetition-count byte.
	FormatRepetitive
)

func (f ItemFormat) String() string {
	switch f {
	case FormatFixed:
		return "fixed"
	case FormatVariable:
		return "variable"
	case FormatExplicit:
		return "explicit"
	case FormatRepetitive:
		return "repetitive"
	default:
		return "unknown"
	}
}

// Unit is a semantic label attached to a field's scaled value. Units never
// affect the stored raw integer; they only inform presentation (format.go).
type Unit int

const (
	UnitNone Unit = iota
	UnitSeconds
	UnitNauticalMiles
	UnitDegrees
	UnitFlightLevel
	UnitFeet
	UnitKnots
	UnitMetresPerSecond
)

func (u Unit) String() string {
	switch u {
	case UnitSeconds:
		return "s"
	case UnitNauticalMiles:
		return "NM"
	case UnitDegrees:
		return "degrees"
	case UnitFlightLevel:
		return "FL"
	case UnitFeet:
		return "ft"
	case UnitKnots:
		return "kts"
	case UnitMetresPerSecond:
		return "m/s"
	default:
		return ""
	}
}

// RuleKind is the strictness class of a ValidationRule.
type RuleKind int

const (
	// RuleMandatory fails if the referenced data item is absent from the record.
	RuleMandatory RuleKind = iota
	// RuleConditional is accepted but not evaluated; see spec §4.6.
	RuleConditional
	// RuleOptional always passes.
	RuleOptional
	// RuleModeAOctal checks that every one of a field's four octal digits is <= 7.
	RuleModeAOctal
	// RuleCallsignCharset checks a field's string value against ^[A-Z0-9 ]{1,8}$.
	RuleCallsignCharset
)

// ValidationRule binds a rule kind to the data item or field it constrains.
// Field is optional: mandatory/conditional/optional rules target a whole
// DataItem by id, while the supplemental ModeAOctal/CallsignCharset rules
// additionally name the Field within that item.
type ValidationRule struct {
	ItemID    string
	Field     string
	Kind      RuleKind
	Predicate string
}

// FieldDef declares one field within a DataItemDef's structure.
type FieldDef struct {
	Name      string
	Type      PrimitiveType
	Bits      int
	LSB       float64 // 0 means unset, treated as 1 at use sites.
	Unit      Unit
	Encoding  string // e.g. "6bit_ascii"
	Condition string
	Extension []FieldDef
}

// lsbOrDefault returns the field's LSB multiplier, defaulting to 1 when
// unset, since a zero-value FieldDef should scale its raw value by identity.
func (f FieldDef) lsbOrDefault() float64 {
	if f.LSB == 0 {
		return 1
	}
	return f.LSB
}

// DataItemDef declares one data item's identity, framing format and fields.
type DataItemDef struct {
	ID     string
	Name   string
	Format ItemFormat
	Length int // byte length for Fixed, per-repetition length for Repetitive.
	Fields []FieldDef
}

// CategoryHeader is the descriptive header of a Category.
type CategoryHeader struct {
	Number  uint8
	Name    string
	Version string
}

// Category is the immutable, in-memory schema for one ASTERIX category: a
// header, an ordered UAP, a data-item catalog, and validation rules. Once
// constructed via NewCategory it exposes no mutator; the core only ever
// looks values up in it.
type Category struct {
	Header CategoryHeader
	UAP    []string
	Rules  []ValidationRule
	items  map[string]DataItemDef
}

// NewCategory builds an immutable Category from its parts, copying the UAP
// slice and indexing items by id for O(1) lookup.
func NewCategory(header CategoryHeader, uap []string, items []DataItemDef, rules []ValidationRule) *Category {
	idx := make(map[string]DataItemDef, len(items))
	for _, it := range items {
		idx[it.ID] = it
	}
	uapCopy := make([]string, len(uap))
	copy(uapCopy, uap)
	rulesCopy := make([]ValidationRule, len(rules))
	copy(rulesCopy, rules)
	return &Category{
		Header: header,
		UAP:    uapCopy,
		Rules:  rulesCopy,
		items:  idx,
	}
}

// ItemByID looks up a data item definition by its identifier (e.g. "I002/010").
func (c *Category) ItemByID(id string) (DataItemDef, bool) {
	it, ok := c.items[id]
	return it, ok
}

// Items returns every data item definition in the category, in unspecified
// order. Used by the CLI's verbose category listing.
func (c *Category) Items() []DataItemDef {
	out := make([]DataItemDef, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it)
	}
	return out
}
