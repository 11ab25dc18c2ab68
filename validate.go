// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package skydecoder

import (
	"regexp"
	"strconv"
)

// callsignPattern is the supplemental callsign-charset rule's predicate: up
// to eight uppercase letters, digits or spaces, grounded
// on original_source/src/utils.cpp's is_valid_callsign.
var callsignPattern = regexp.MustCompile(`^[A-Z0-9 ]{1,8}$`)

// Validate checks rec against the validation rules of its own owning
// category, looked up via rec.Category so callers never thread a *Category
// through the call. Conditional rules are accepted without evaluation, per
// the deliberately narrow condition grammar; optional rules always pass.
// The supplemental ModeAOctal and CallsignCharset rules check a named
// field's raw value against their respective formats when the field is
// present, and pass silently when it is absent (they constrain format, not
// presence - RuleMandatory already covers presence). A record whose
// category was never loaded into d fails validation outright, since none of
// its rules can be checked.
//
// A missing mandatory item only fails validation in strict mode
// (d.config.Strict); in the default non-strict mode it is logged as a
// warning and validation proceeds, mirroring original_source/src/asterix_decoder.cpp's
// validate_mandatory_fields.
func (d *Decoder) Validate(rec Record) bool {
	cat, ok := d.GetCategory(rec.Category)
	if !ok {
		return false
	}
	for _, rule := range cat.Rules {
		if !d.checkRule(rec, rule) {
			return false
		}
	}
	return true
}

// checkRule reports whether rec satisfies a single rule.
func (d *Decoder) checkRule(rec Record, rule ValidationRule) bool {
	switch rule.Kind {
	case RuleMandatory:
		if _, ok := rec.ItemByID(rule.ItemID); ok {
			return true
		}
		if d.config.Strict {
			return false
		}
		d.logger.Warn("mandatory item missing", "item", rule.ItemID, "category", rec.Category)
		return true
	case RuleConditional:
		return true
	case RuleOptional:
		return true
	case RuleModeAOctal:
		return checkModeAOctal(rec, rule)
	case RuleCallsignCharset:
		return checkCallsignCharset(rec, rule)
	default:
		return true
	}
}

// checkModeAOctal validates that a Mode-A code field's raw value, printed
// as an octal digit string, has at most four digits, each <= 7 - four octal
// digits packed into a 12-bit field is the standard ASTERIX Mode-A encoding,
// so any value above 0o7777 is rejected.
// Grounded on original_source/src/utils.cpp's is_valid_mode_a_code.
func checkModeAOctal(rec Record, rule ValidationRule) bool {
	item, ok := rec.ItemByID(rule.ItemID)
	if !ok {
		return true
	}
	field, ok := item.FieldByName(rule.Field)
	if !ok || field.Value.Kind != KindUint {
		return true
	}
	octal := strconv.FormatUint(uint64(field.Value.Uint), 8)
	if len(octal) > 4 {
		return false
	}
	for _, r := range octal {
		if r < '0' || r > '7' {
			return false
		}
	}
	return true
}

// checkCallsignCharset validates that a callsign string field matches
// callsignPattern. Grounded on utils.cpp's is_valid_callsign.
func checkCallsignCharset(rec Record, rule ValidationRule) bool {
	item, ok := rec.ItemByID(rule.ItemID)
	if !ok {
		return true
	}
	field, ok := item.FieldByName(rule.Field)
	if !ok || field.Value.Kind != KindString {
		return true
	}
	return callsignPattern.MatchString(field.Value.Str)
}

// ValidateBlock checks every record in block via d.Validate, plus the
// block-level length sanity check (I2): the sum of every record's length
// plus the 3-byte header must equal the declared block length. In strict
// mode (d.config.Strict) a length mismatch fails the block outright; in
// lenient mode it is tolerated (the mismatch is still visible via
// block.Valid/record inspection, just not treated as a validation failure).
func (d *Decoder) ValidateBlock(block Block) bool {
	for _, rec := range block.Records {
		if !d.Validate(rec) {
			return false
		}
	}
	if !d.config.Strict {
		return true
	}
	sum := blockHeaderLen
	for _, rec := range block.Records {
		sum += rec.Length
	}
	return sum == block.Length
}
