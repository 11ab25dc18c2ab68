// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package skydecoder

import (
	"fmt"
	"log/slog"
)

// multiRecordCategory is the only category number the source dispatches to
// multi-record traversal for (§9 open question 1: extension to other
// categories is left as schema metadata for future work, not guessed at
// here).
const multiRecordCategory = 2

// maxRecordsPerBlock bounds a multi-record block against adversarial input
// that never produces a terminating record (§4.5, §9).
const maxRecordsPerBlock = 1000

// blockHeaderLen is the fixed 3-byte category+length prefix of every block.
const blockHeaderLen = 3

// decodeRecord decodes one record - FSPEC plus its present data items -
// starting at c's current position, against cat's UAP and item catalog. Its
// FSPEC failing is always fatal (no items can even be identified). Beyond
// that, the record walk always runs to completion regardless of individual
// item failures - the cursor still resynchronizes to each item's declared
// span - but the record as a whole is only Valid if every item it produced
// is itself valid, since a record riddled with truncated items is not a
// usable decode even though no single item failure aborted it.
func decodeRecord(c *Cursor, cat *Category, logger *slog.Logger) Record {
	start := c.Pos()
	fspec, err := decodeFSPEC(c)
	if err != nil {
		return Record{
			Category:     cat.Header.Number,
			Length:       c.Pos() - start,
			Valid:        false,
			ErrorMessage: err.Error(),
		}
	}

	ids := uapItemsFromFSPEC(fspec, cat.UAP)
	items := make([]DataItem, 0, len(ids))
	valid := true
	for _, id := range ids {
		def, ok := cat.ItemByID(id)
		if !ok {
			logger.Warn("record references an item absent from the category catalog", "item", id, "category", cat.Header.Number)
			continue
		}
		it := decodeDataItem(def, c, logger)
		items = append(items, it)
		if !it.Valid {
			valid = false
		}
	}

	return Record{
		Category: cat.Header.Number,
		Length:   c.Pos() - start,
		Items:    items,
		Valid:    valid,
	}
}

// decodeMultiRecord walks payload as a sequence of records (category 002's
// framing): while bytes remain, decode one record. Only a fatal failure -
// the FSPEC itself could not be decoded, so the cursor has no reliable
// notion of where the next record starts - triggers strict-mode stop or
// lenient-mode single-byte resynchronization; item-scope failures never
// abort the loop, since decodeRecord always resynchronizes the cursor past
// every item's declared span regardless of the item's own validity.
// decodeRecord sets ErrorMessage only on the FSPEC-fatal path, which is
// what distinguishes the two here.
func decodeMultiRecord(payload []byte, cat *Category, strict bool, logger *slog.Logger) []Record {
	c := NewCursor(payload)
	var records []Record
	for c.Remaining() > 0 {
		if len(records) >= maxRecordsPerBlock {
			logger.Warn("multi-record block hit the record ceiling", "ceiling", maxRecordsPerBlock, "category", cat.Header.Number)
			break
		}
		rec := decodeRecord(c, cat, logger)
		records = append(records, rec)
		if rec.ErrorMessage == "" {
			continue
		}
		if strict {
			break
		}
		if err := c.Skip(1); err != nil {
			break
		}
	}
	return records
}

// decodeSingleRecord decodes exactly one record from payload (the
// traditional, non-002 framing). Bytes left over after the record are not
// an error - they're simply outside this decoder's model of the category -
// but they are logged so a mis-declared block length is noticeable.
func decodeSingleRecord(payload []byte, cat *Category, logger *slog.Logger) []Record {
	c := NewCursor(payload)
	rec := decodeRecord(c, cat, logger)
	if c.Remaining() > 0 {
		logger.Warn("single-record block has trailing bytes past the decoded record", "trailing", c.Remaining(), "category", cat.Header.Number)
	}
	return []Record{rec}
}

// DecodeBlock decodes one ASTERIX block from data: the 3-byte header
// (category, big-endian length including the header) followed by its
// records. An unknown category yields an invalid block with no records
// parsed (§4.5); otherwise records are decoded via decodeMultiRecord for
// category 2 or decodeSingleRecord otherwise.
func (d *Decoder) DecodeBlock(data []byte) Block {
	c := NewCursor(data)
	cat, err := c.ReadU8()
	if err != nil {
		return Block{Valid: false}
	}
	length, err := c.ReadU16BE()
	if err != nil {
		return Block{Category: cat, Valid: false}
	}

	category, ok := d.GetCategory(cat)
	if !ok {
		d.logger.Warn("block references an unsupported category", "category", cat)
		return Block{Category: cat, Length: int(length), Valid: false}
	}

	end := int(length)
	if end > len(data) {
		d.logger.Warn("block declares a length longer than the supplied data", "declared", end, "available", len(data))
		end = len(data)
	}
	if end < blockHeaderLen {
		d.logger.Warn("block declares a length shorter than the header itself", "declared", end)
		return Block{Category: cat, Length: int(length), Valid: false}
	}
	payload := data[blockHeaderLen:end]

	var records []Record
	if cat == multiRecordCategory {
		records = decodeMultiRecord(payload, category, d.config.Strict, d.logger)
	} else {
		records = decodeSingleRecord(payload, category, d.logger)
	}

	return Block{
		Category: cat,
		Length:   int(length),
		Records:  records,
		Valid:    anyRecordValid(records),
	}
}

// DecodeStream decodes data as a back-to-back sequence of blocks, each
// self-describing its own length via its header. It stops at the first
// point a full header can't be read or a declared length would overrun the
// remaining data, logging a warning rather than panicking on trailing
// partial data (§6).
func (d *Decoder) DecodeStream(data []byte) []Block {
	var blocks []Block
	pos := 0
	for pos < len(data) {
		remaining := data[pos:]
		if len(remaining) < blockHeaderLen {
			d.logger.Warn("stream ends with a partial block header", "trailing_bytes", len(remaining))
			break
		}
		length := int(remaining[1])<<8 | int(remaining[2])
		if length < blockHeaderLen || pos+length > len(data) {
			d.logger.Warn("stream block declares a length that would overrun the input", "declared", length, "offset", pos)
			break
		}
		blocks = append(blocks, d.DecodeBlock(data[pos:pos+length]))
		pos += length
	}
	return blocks
}

// DecodeMessage decodes a single record directly against category, without
// any block framing - the §6 convenience entry point for callers that
// already know which category a bare payload belongs to.
func (d *Decoder) DecodeMessage(category uint8, data []byte) Record {
	cat, ok := d.GetCategory(category)
	if !ok {
		return Record{Category: category, Valid: false, ErrorMessage: fmt.Errorf("category %d: %w", category, ErrSchemaMismatch).Error()}
	}
	c := NewCursor(data)
	return decodeRecord(c, cat, d.logger)
}
