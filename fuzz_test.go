// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package skydecoder

import "testing"

// FuzzDecodeBlock exercises Decoder.DecodeBlock against arbitrary byte
// strings, seeded from the worked single-record, multi-record, and
// truncated-input scenarios exercised by hand in record_test.go. It never
// asserts a particular Valid outcome - only that decoding a category-002
// block never panics and never returns a record count exceeding
// maxRecordsPerBlock, and that DecodeBlock never reports a length larger
// than the input it was actually given.
func FuzzDecodeBlock(f *testing.F) {
	f.Add([]byte{0x02, 0x00, 0x0B, 0xF0, 0x00, 0x10, 0x01, 0x00, 0x12, 0x34, 0x56})
	f.Add([]byte{
		0x02, 0x00, 0x16,
		0xF0, 0x00, 0x10, 0x01, 0x00, 0x12, 0x34, 0x56,
		0x78, 0x9A, 0xBC, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00,
		0x00,
		0x00,
	})
	f.Add([]byte{0x02, 0x00, 0x20, 0xF0, 0x00, 0x10})
	f.Add([]byte{0x02, 0x00})
	f.Add([]byte{})
	f.Add([]byte{0x02, 0x00, 0x03})
	f.Add([]byte{0x99, 0x00, 0x05, 0x00, 0x00})

	d := newTestDecoderWithCAT002()

	f.Fuzz(func(t *testing.T, data []byte) {
		block := d.DecodeBlock(data)
		if len(block.Records) > maxRecordsPerBlock {
			t.Fatalf("len(block.Records) = %d, exceeds ceiling %d", len(block.Records), maxRecordsPerBlock)
		}
		if block.Length > len(data) {
			t.Fatalf("block.Length = %d, exceeds input length %d", block.Length, len(data))
		}
		for _, rec := range block.Records {
			for _, item := range rec.Items {
				if item.Valid {
					for _, field := range item.Fields {
						_ = field.Format()
					}
				}
			}
		}
	})
}

// FuzzDecodeStream exercises Decoder.DecodeStream, which must never panic
// on arbitrary concatenations of block-shaped bytes and must never return
// more blocks than could fit in the input.
func FuzzDecodeStream(f *testing.F) {
	f.Add([]byte{
		0x02, 0x00, 0x0B, 0xF0, 0x00, 0x10, 0x01, 0x00, 0x12, 0x34, 0x56,
		0x02, 0x00, 0x0B, 0xF0, 0x00, 0x10, 0x01, 0x00, 0x12, 0x34, 0x56,
	})
	f.Add([]byte{0x02, 0x00, 0x0B, 0xF0, 0x00, 0x10, 0x01, 0x00, 0x12, 0x34, 0x56, 0x02, 0x00})
	f.Add([]byte{})

	d := newTestDecoderWithCAT002()

	f.Fuzz(func(t *testing.T, data []byte) {
		blocks := d.DecodeStream(data)
		if len(blocks) > len(data) {
			t.Fatalf("len(blocks) = %d, exceeds input length %d", len(blocks), len(data))
		}
	})
}
