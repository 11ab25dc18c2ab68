// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package skydecoder

import (
	"fmt"
	"strconv"
	"strings"
)

// icaoAlphabet is the fixed 48-entry 6-bit ICAO alphabet table: index 0 is
// space, 1-26 are A-Z, 27-31 and 42-47 are spare (rendered as space), and
// 32-41 are the decimal digits. Ported verbatim from
// original_source/src/field_parser.cpp's decode_6bit_ascii.
const icaoAlphabet = " ABCDEFGHIJKLMNOPQRSTUVWXYZ     0123456789      "

// convertUnsigned stores a raw extraction directly; per §4.4 an unsigned
// N-bit field's value is r itself, in the smallest containing unsigned type.
func convertUnsigned(raw uint32) FieldValue {
	return FieldValue{Kind: KindUint, Uint: raw}
}

// convertSigned sign-extends a raw N-bit extraction to a signed 32-bit
// value. N must be 8, 16, 24 or 32; any other width is a TypeError.
// Subtracts 2^N when the sign bit is set rather than using an OR-mask.
func convertSigned(raw uint32, bits int) (FieldValue, error) {
	switch bits {
	case 8, 16, 24, 32:
	default:
		return FieldValue{}, fmt.Errorf("signed field of %d bits: %w", bits, ErrTypeError)
	}
	signBit := uint32(1) << uint(bits-1)
	var v int64 = int64(raw)
	if raw&signBit != 0 {
		v -= int64(1) << uint(bits)
	}
	return FieldValue{Kind: KindInt, Int: int32(v)}, nil
}

// convertBoolean reports whether the raw extraction is non-zero.
func convertBoolean(raw uint32) FieldValue {
	return FieldValue{Kind: KindBool, Bool: raw != 0}
}

// decode6BitASCII reinterprets data as a stream of 6-bit ICAO alphabet
// codes, MSB-first, stopping when fewer than 6 bits remain. A leading space
// is suppressed only while the accumulated output is still empty; trailing
// spaces are always trimmed. Ported from decode_6bit_ascii.
func decode6BitASCII(data []byte) string {
	var b strings.Builder
	totalBits := len(data) * 8
	for bitPos := 0; bitPos+6 <= totalBits; bitPos += 6 {
		code, err := ExtractBits(data, bitPos, 6)
		if err != nil {
			break
		}
		if int(code) >= len(icaoAlphabet) {
			continue
		}
		ch := icaoAlphabet[code]
		if ch != ' ' || b.Len() > 0 {
			b.WriteByte(ch)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// convertString converts a raw byte window per the field's encoding hint:
// "6bit_ascii" reinterprets the whole window as a 6-bit character stream
// (via ExtractBitRun, since the window may exceed 32 bits); the absence of
// an encoding hint yields the decimal representation of the raw extraction
// (limited to 32 bits, via ExtractBits).
func convertString(windowBytes []byte, encoding string, raw uint32, hasRaw bool) (FieldValue, error) {
	if encoding == "6bit_ascii" {
		return FieldValue{Kind: KindString, Str: decode6BitASCII(windowBytes)}, nil
	}
	if !hasRaw {
		return FieldValue{}, fmt.Errorf("string field without 6bit_ascii encoding exceeds 32 bits: %w", ErrTypeError)
	}
	return FieldValue{Kind: KindString, Str: strconv.FormatUint(uint64(raw), 10)}, nil
}

// convertRawBytes returns the field's byte window left-packed, copied so
// the decoded tree never aliases the input buffer (Design Note 9).
func convertRawBytes(windowBytes []byte) FieldValue {
	out := make([]byte, len(windowBytes))
	copy(out, windowBytes)
	return FieldValue{Kind: KindBytes, Bytes: out}
}

// stripAllWhitespace removes every whitespace rune, not just leading and
// trailing, matching original_source/src/field_parser.cpp's
// evaluate_condition, which strips isspace() characters from the whole
// substring before comparing.
func stripAllWhitespace(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// evaluateCondition evaluates the minimal `field == literal` condition
// grammar (§4.4) against the fields already decoded within the current
// item. Only boolean and 8-bit-unsigned left-hand fields are supported;
// anything else - a missing field, a different type, or a missing "==" -
// returns (false, ErrConditionUnsupported), which callers treat as "skip
// the extension, log a warning" rather than as a hard failure.
func evaluateCondition(condition string, fields []Field) (bool, error) {
	idx := strings.Index(condition, "==")
	if idx < 0 {
		return false, fmt.Errorf("condition %q has no ==: %w", condition, ErrConditionUnsupported)
	}
	name := stripAllWhitespace(condition[:idx])
	literal := stripAllWhitespace(condition[idx+2:])

	var target *Field
	for i := range fields {
		if fields[i].Name == name {
			target = &fields[i]
			break
		}
	}
	if target == nil {
		return false, fmt.Errorf("condition references unknown field %q: %w", name, ErrConditionUnsupported)
	}

	switch target.Value.Kind {
	case KindBool:
		switch literal {
		case "1":
			return target.Value.Bool, nil
		case "0":
			return !target.Value.Bool, nil
		default:
			return false, fmt.Errorf("boolean condition literal %q unsupported: %w", literal, ErrConditionUnsupported)
		}
	case KindUint:
		if target.Bits > 8 {
			return false, fmt.Errorf("condition field %q is wider than 8 bits: %w", name, ErrConditionUnsupported)
		}
		want, err := strconv.Atoi(literal)
		if err != nil {
			return false, fmt.Errorf("condition literal %q is not an integer: %w", literal, ErrConditionUnsupported)
		}
		return int(target.Value.Uint) == want, nil
	default:
		return false, fmt.Errorf("condition field %q has unsupported type: %w", name, ErrConditionUnsupported)
	}
}
