// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package skydecoder

import "errors"

// Error kinds. Errors returned directly (Cursor reads, ExtractBits,
// ExtractBitRun, schema loading) wrap these sentinels and can be classified
// with errors.Is. In the decoded tree, an invalid Field or DataItem, and a
// Record whose FSPEC could not be decoded, carry the rendered error text as
// a plain ErrorMessage string, which includes the sentinel's own text. A
// Record that is invalid only because one of its items is invalid carries no
// message, and Block has no message field at all.
var (
	// ErrTruncated means the cursor ran past the end of the input before
	// satisfying a read.
	ErrTruncated = errors.New("skydecoder: truncated")

	// ErrSchemaMismatch means the schema and the input disagree: an
	// unknown category, an unknown item id referenced by a UAP, an FSPEC
	// that exceeds the 16-byte ceiling, or a format that requires a
	// declared length the schema does not provide.
	ErrSchemaMismatch = errors.New("skydecoder: schema mismatch")

	// ErrTypeError means a field's declared type or bit width cannot be
	// converted: width over 32 bits for an integer/bool primitive,
	// an unrecognized primitive type, or sign extension requested for a
	// width other than 8/16/24/32.
	ErrTypeError = errors.New("skydecoder: type error")

	// ErrConditionUnsupported means an FX-gated extension's condition
	// used an operator or a field type the minimal condition grammar
	// does not support. The extension is skipped, not the whole item.
	ErrConditionUnsupported = errors.New("skydecoder: condition unsupported")

	// ErrValidationFailed means a validation rule failed in strict mode.
	ErrValidationFailed = errors.New("skydecoder: validation failed")
)
