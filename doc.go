// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

// Package skydecoder decodes ASTERIX surveillance binary messages into
// structured records against an externally-loaded category schema.
//
// The package is a single-pass, synchronous decoder: it never mutates the
// schema it is given, never blocks on I/O, and never panics on malformed
// input. Every decode failure is captured on the smallest tree node that can
// still resynchronize (field, item, record, or block) rather than returned
// as a Go error; see Block, Record and DataItem.
package skydecoder
