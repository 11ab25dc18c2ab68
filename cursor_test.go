// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package skydecoder

import (
	"errors"
	"testing"
)

func TestCursorReadU8(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02})
	v, err := c.ReadU8()
	if err != nil || v != 0x01 {
		t.Fatalf("ReadU8() = %v, %v, want 0x01, nil", v, err)
	}
	if c.Pos() != 1 {
		t.Fatalf("Pos() = %d, want 1", c.Pos())
	}
	c2 := NewCursor(nil)
	if _, err := c2.ReadU8(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("ReadU8() on empty cursor error = %v, want ErrTruncated", err)
	}
}

func TestCursorReadU16BE(t *testing.T) {
	c := NewCursor([]byte{0x12, 0x34})
	v, err := c.ReadU16BE()
	if err != nil || v != 0x1234 {
		t.Fatalf("ReadU16BE() = %v, %v, want 0x1234, nil", v, err)
	}
}

func TestCursorReadU24BE(t *testing.T) {
	c := NewCursor([]byte{0x12, 0x34, 0x56})
	v, err := c.ReadU24BE()
	if err != nil || v != 0x123456 {
		t.Fatalf("ReadU24BE() = %v, %v, want 0x123456, nil", v, err)
	}
}

func TestCursorTakeSpanAdvancesPastEndOnTruncation(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02})
	if _, err := c.TakeSpan(5); !errors.Is(err, ErrTruncated) {
		t.Fatalf("TakeSpan() error = %v, want ErrTruncated", err)
	}
	if c.Pos() != 5 {
		t.Fatalf("Pos() after truncated TakeSpan = %d, want 5 (resynchronized past end)", c.Pos())
	}
}

func TestCursorTakeSpanSuccess(t *testing.T) {
	c := NewCursor([]byte{0xAA, 0xBB, 0xCC})
	got, err := c.TakeSpan(2)
	if err != nil {
		t.Fatalf("TakeSpan() error = %v", err)
	}
	want := []byte{0xAA, 0xBB}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("TakeSpan() = %v, want %v", got, want)
	}
	if c.Pos() != 2 {
		t.Fatalf("Pos() = %d, want 2", c.Pos())
	}
}

func TestExtractBits(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		startBit int
		n        int
		want     uint32
	}{
		{"whole byte", []byte{0xFF}, 0, 8, 0xFF},
		{"high nibble", []byte{0xF0}, 0, 4, 0xF},
		{"low nibble", []byte{0x0F}, 4, 4, 0xF},
		{"cross byte boundary", []byte{0x01, 0x80}, 7, 2, 0x3},
		{"seven bits from a byte", []byte{0x81}, 0, 7, 0x40},
		{"two bytes big endian", []byte{0x12, 0x34}, 0, 16, 0x1234},
		{"zero bits", []byte{0xFF}, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBits(tt.data, tt.startBit, tt.n)
			if err != nil {
				t.Fatalf("ExtractBits() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("ExtractBits() = 0x%X, want 0x%X", got, tt.want)
			}
		})
	}
}

func TestExtractBitsOverflow(t *testing.T) {
	if _, err := ExtractBits([]byte{0, 0, 0, 0, 0}, 0, 33); !errors.Is(err, ErrTypeError) {
		t.Fatalf("ExtractBits(33 bits) error = %v, want ErrTypeError", err)
	}
}

func TestExtractBitsWindowExceedsData(t *testing.T) {
	if _, err := ExtractBits([]byte{0xFF}, 0, 16); !errors.Is(err, ErrTruncated) {
		t.Fatalf("ExtractBits() error = %v, want ErrTruncated", err)
	}
}

func TestExtractBitRun(t *testing.T) {
	// 0xB6 = 1011 0110; six-bit groups starting at bit 0: 101101 (0x2D), then
	// only 2 bits remain (10) so a second call at offset 6 for 6 bits should
	// fail; here we just check a full-width extraction round-trips.
	got, err := ExtractBitRun([]byte{0xB6}, 0, 8)
	if err != nil {
		t.Fatalf("ExtractBitRun() error = %v", err)
	}
	if len(got) != 1 || got[0] != 0xB6 {
		t.Fatalf("ExtractBitRun() = %v, want [0xB6]", got)
	}
}

func TestExtractBitRunWiderThan32Bits(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	got, err := ExtractBitRun(data, 0, 40)
	if err != nil {
		t.Fatalf("ExtractBitRun() error = %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("len(ExtractBitRun()) = %d, want 5", len(got))
	}
	for i, b := range got {
		if b != data[i] {
			t.Fatalf("ExtractBitRun()[%d] = 0x%X, want 0x%X", i, b, data[i])
		}
	}
}

func TestExtractBitRunMidByteOffset(t *testing.T) {
	// bits 4..11 of {0xAB, 0xCD} = "1011 1100" = 0xBC
	got, err := ExtractBitRun([]byte{0xAB, 0xCD}, 4, 8)
	if err != nil {
		t.Fatalf("ExtractBitRun() error = %v", err)
	}
	if len(got) != 1 || got[0] != 0xBC {
		t.Fatalf("ExtractBitRun() = %v, want [0xBC]", got)
	}
}
