// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package skydecoder

import (
	"fmt"
	"log/slog"
)

// decodeDataItem decodes exactly one data item from c per its definition
// (§4.4). It never returns an error: any failure is captured on the
// returned DataItem, and the cursor is always left resynchronized to the
// item's byte span - or left unmoved, if no span could be computed at all
// (an Explicit/Repetitive prefix byte itself was unreadable; see
// DESIGN.md's open question 5). logger receives the item's own
// ConditionUnsupported warnings, if any.
func decodeDataItem(def DataItemDef, c *Cursor, logger *slog.Logger) DataItem {
	item := DataItem{ID: def.ID, Name: def.Name, Valid: true}
	switch def.Format {
	case FormatFixed:
		return decodeFixedItem(def, c, item, logger)
	case FormatExplicit:
		return decodeExplicitItem(def, c, item, logger)
	case FormatRepetitive:
		return decodeRepetitiveItem(def, c, item, logger)
	case FormatVariable:
		return decodeVariableItem(def, c, item, logger)
	default:
		return failItem(item, fmt.Errorf("item %s: unknown format: %w", def.ID, ErrTypeError))
	}
}

// failItem marks item invalid with err's message, preserving any fields
// already decoded.
func failItem(item DataItem, err error) DataItem {
	item.Valid = false
	item.ErrorMessage = err.Error()
	return item
}

// decodeFixedItem consumes the item's declared fixed byte count and walks
// its fields once against that span, starting at bit 0.
func decodeFixedItem(def DataItemDef, c *Cursor, item DataItem, logger *slog.Logger) DataItem {
	if def.Length <= 0 {
		return failItem(item, fmt.Errorf("item %s: fixed format requires a declared length: %w", def.ID, ErrSchemaMismatch))
	}
	payload, err := c.TakeSpan(def.Length)
	if err != nil {
		return failItem(item, err)
	}
	fields, _ := decodeFieldList(def.Fields, payload, 0, logger)
	item.Fields = fields
	return item
}

// decodeExplicitItem reads the item's own total length byte L, then
// consumes the remaining L-1 bytes as the field payload.
func decodeExplicitItem(def DataItemDef, c *Cursor, item DataItem, logger *slog.Logger) DataItem {
	l, err := c.ReadU8()
	if err != nil {
		return failItem(item, fmt.Errorf("item %s: explicit length byte: %w", def.ID, err))
	}
	if l < 1 {
		return failItem(item, fmt.Errorf("item %s: explicit length byte %d must be >= 1: %w", def.ID, l, ErrSchemaMismatch))
	}
	payload, err := c.TakeSpan(int(l) - 1)
	if err != nil {
		return failItem(item, err)
	}
	fields, _ := decodeFieldList(def.Fields, payload, 0, logger)
	item.Fields = fields
	return item
}

// decodeRepetitiveItem reads the repetition count byte R, then walks the
// item's declared field list once per repetition against successive
// def.Length-byte rows of the R*length payload, appending each
// repetition's fields to the item in order.
func decodeRepetitiveItem(def DataItemDef, c *Cursor, item DataItem, logger *slog.Logger) DataItem {
	if def.Length <= 0 {
		return failItem(item, fmt.Errorf("item %s: repetitive format requires a declared per-repetition length: %w", def.ID, ErrSchemaMismatch))
	}
	r, err := c.ReadU8()
	if err != nil {
		return failItem(item, fmt.Errorf("item %s: repetition count byte: %w", def.ID, err))
	}
	payload, err := c.TakeSpan(int(r) * def.Length)
	if err != nil {
		return failItem(item, err)
	}

	rowBits := def.Length * 8
	var fields []Field
	for rep := 0; rep < int(r); rep++ {
		rowFields, _ := decodeFieldList(def.Fields, payload, rep*rowBits, logger)
		fields = append(fields, rowFields...)
	}
	item.Fields = fields
	return item
}

// decodeVariableItem determines the FX-terminated byte span, then walks the
// item's declared field list once per byte-row within that span (see
// decodeVariableFields).
func decodeVariableItem(def DataItemDef, c *Cursor, item DataItem, logger *slog.Logger) DataItem {
	span, err := variableItemSpan(c)
	if err != nil {
		return failItem(item, err)
	}
	payload, err := c.TakeSpan(span)
	if err != nil {
		return failItem(item, err)
	}
	fields, walkErr := decodeVariableFields(def.Fields, payload, logger)
	item.Fields = fields
	if walkErr != nil {
		return failItem(item, walkErr)
	}
	return item
}

// variableItemSpan reads bytes one at a time from c until the first byte
// whose FX bit (bit 0) is 0, then rewinds c to where it started: the caller
// takes the span itself via TakeSpan once the length is known. It reports
// the number of bytes inspected even on failure (ran out of data before
// finding an FX=0 byte), though in that case the cursor is left unmoved
// since no span could actually be computed.
func variableItemSpan(c *Cursor) (int, error) {
	start := c.Pos()
	n := 0
	for {
		b, err := c.ReadU8()
		if err != nil {
			c.pos = start
			return n, fmt.Errorf("variable item byte %d: %w", n, err)
		}
		n++
		if b&0x01 == 0 {
			c.pos = start
			return n, nil
		}
	}
}

// decodeVariableFields applies fieldDefs once per fixed-width "row" of
// payload, where a row's width is the sum of the declared fields' bit
// widths (a two-field {A:u7, FX:u1} declaration is one 8-bit row per byte
// of the variable item's span). Decoding stops if fewer than a full row of
// bits remains.
func decodeVariableFields(fieldDefs []FieldDef, payload []byte, logger *slog.Logger) ([]Field, error) {
	rowBits := 0
	for _, fd := range fieldDefs {
		rowBits += fd.Bits
	}
	if rowBits <= 0 {
		return nil, fmt.Errorf("variable item has a zero-width field row: %w", ErrSchemaMismatch)
	}
	totalBits := len(payload) * 8
	var out []Field
	for bitOffset := 0; bitOffset+rowBits <= totalBits; bitOffset += rowBits {
		rowFields, _ := decodeFieldList(fieldDefs, payload, bitOffset, logger)
		out = append(out, rowFields...)
	}
	return out, nil
}

// decodeFieldList walks fieldDefs in order over itemBytes starting at
// startBit, producing one Field per non-spare definition plus any
// FX-triggered extension fields. It returns the ending bit offset (past any
// fired extension, including nested ones) so callers advance their own
// running offset correctly. A field's own conversion failure never stops
// the walk (§7 - a field error invalidates only that field); an unsupported
// condition is logged to logger as a warning (§10) and its extension is
// skipped, without invalidating fields already produced.
func decodeFieldList(fieldDefs []FieldDef, itemBytes []byte, startBit int, logger *slog.Logger) ([]Field, int) {
	var out []Field
	bitOffset := startBit

	for _, fd := range fieldDefs {
		if fd.Name == "spare" {
			bitOffset += fd.Bits
			continue
		}

		f := decodeField(fd, itemBytes, bitOffset)
		bitOffset += fd.Bits
		out = append(out, f)

		if fd.Condition == "" || len(fd.Extension) == 0 {
			continue
		}
		triggered, condErr := evaluateCondition(fd.Condition, out)
		if condErr != nil {
			logger.Warn("extension condition unsupported, skipping extension", "field", fd.Name, "condition", fd.Condition, "error", condErr)
			continue
		}
		if !triggered {
			continue
		}
		ext, endBit := decodeFieldList(fd.Extension, itemBytes, bitOffset, logger)
		out = append(out, ext...)
		bitOffset = endBit
	}

	return out, bitOffset
}

// decodeField extracts and converts a single field's value. Any conversion
// failure invalidates only this field (§7); it never aborts the item-level
// walk, which is why decodeField itself has no error return.
func decodeField(fd FieldDef, itemBytes []byte, bitOffset int) Field {
	f := Field{Name: fd.Name, Unit: fd.Unit, Bits: fd.Bits, LSB: fd.lsbOrDefault(), Valid: true}

	switch fd.Type {
	case TypeUnsigned:
		raw, err := ExtractBits(itemBytes, bitOffset, fd.Bits)
		if err != nil {
			return invalidField(f, err)
		}
		f.Value = convertUnsigned(raw)

	case TypeSigned:
		raw, err := ExtractBits(itemBytes, bitOffset, fd.Bits)
		if err != nil {
			return invalidField(f, err)
		}
		v, err := convertSigned(raw, fd.Bits)
		if err != nil {
			return invalidField(f, err)
		}
		f.Value = v

	case TypeBoolean:
		raw, err := ExtractBits(itemBytes, bitOffset, fd.Bits)
		if err != nil {
			return invalidField(f, err)
		}
		f.Value = convertBoolean(raw)

	case TypeString:
		if fd.Encoding == "6bit_ascii" {
			window, err := ExtractBitRun(itemBytes, bitOffset, fd.Bits)
			if err != nil {
				return invalidField(f, err)
			}
			v, err := convertString(window, fd.Encoding, 0, false)
			if err != nil {
				return invalidField(f, err)
			}
			f.Value = v
		} else {
			raw, err := ExtractBits(itemBytes, bitOffset, fd.Bits)
			if err != nil {
				return invalidField(f, err)
			}
			v, err := convertString(nil, fd.Encoding, raw, true)
			if err != nil {
				return invalidField(f, err)
			}
			f.Value = v
		}

	case TypeRawBytes:
		window, err := ExtractBitRun(itemBytes, bitOffset, fd.Bits)
		if err != nil {
			return invalidField(f, err)
		}
		f.Value = convertRawBytes(window)

	default:
		return invalidField(f, fmt.Errorf("field %s: unknown primitive type: %w", fd.Name, ErrTypeError))
	}

	return f
}

// invalidField marks f invalid with err's message, preserving its Name,
// Unit, Bits and LSB so callers can still report which field failed.
func invalidField(f Field, err error) Field {
	f.Valid = false
	f.ErrorMessage = err.Error()
	return f
}
