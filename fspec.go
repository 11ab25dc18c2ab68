// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package skydecoder

import "fmt"

// maxFSPECBytes is the defensive ceiling on FSPEC length (§4.3, §9). It is
// not part of the ASTERIX standard; it exists to bound adversarial input.
const maxFSPECBytes = 16

// decodeFSPEC reads the variable-length field-presence bitmap from c,
// stopping at the first byte whose FX bit (bit 0) is 0. It returns the
// bytes read so far even on failure, so callers can still account for
// partial consumption when a record fails fatally.
func decodeFSPEC(c *Cursor) ([]byte, error) {
	var out []byte
	for i := 0; i < maxFSPECBytes; i++ {
		b, err := c.ReadU8()
		if err != nil {
			return out, fmt.Errorf("fspec byte %d: %w", i, ErrTruncated)
		}
		out = append(out, b)
		if b&0x01 == 0 {
			return out, nil
		}
	}
	return out, fmt.Errorf("fspec exceeds %d bytes: %w", maxFSPECBytes, ErrSchemaMismatch)
}

// uapItemsFromFSPEC maps the FSPEC's set presence bits to UAP item
// identifiers, using the normative slot formula 7*b + (7-p) for FSPEC byte
// b and bit position p in {7..1} (§4.3). Slots beyond len(uap) are ignored
// silently; identifiers of "" or "spare" are dropped, since they carry no
// data item.
func uapItemsFromFSPEC(fspec []byte, uap []string) []string {
	var out []string
	for b, byteVal := range fspec {
		for p := 7; p >= 1; p-- {
			if byteVal&(1<<uint(p)) == 0 {
				continue
			}
			slot := 7*b + (7 - p)
			if slot >= len(uap) {
				continue
			}
			id := uap[slot]
			if id == "" || id == "spare" {
				continue
			}
			out = append(out, id)
		}
	}
	return out
}
