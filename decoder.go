// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package skydecoder

import (
	"io"
	"log/slog"
	"sort"
	"sync"
)

// Config carries the decoder's two configuration knobs (§5): correctness is
// unaffected by either, they only control failure-propagation strictness
// and log verbosity.
type Config struct {
	// Strict promotes record- and validation-level warnings to failures:
	// a multi-record block stops at its first fatal record instead of
	// resynchronizing, and Validate/ValidateBlock treat warnings as
	// failures.
	Strict bool
	// Debug enables logging of warnings (unknown items, trailing bytes,
	// ceiling hits) to Logger. When false, Logger is replaced with a
	// discarding handler so call sites never need their own "if debug"
	// guards.
	Debug bool
	// Logger receives warnings when Debug is true. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Decoder holds the schema map and configuration for a decode session.
// Schemas are immutable once loaded (§5, §9); the schema map itself is
// guarded by a mutex only to allow LoadCategory to be called concurrently
// with decoding from other goroutines, not because decoding mutates
// anything.
type Decoder struct {
	config     Config
	logger     *slog.Logger
	mu         sync.RWMutex
	categories map[uint8]*Category
}

// NewDecoder builds a Decoder from cfg. Per §10's ambient-logging design,
// verbosity is gated once here via the handler rather than at each
// individual warning call site.
func NewDecoder(cfg Config) *Decoder {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Debug {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Decoder{
		config:     cfg,
		logger:     logger,
		categories: make(map[uint8]*Category),
	}
}

// LoadCategory registers cat under its header's category number, making it
// available to DecodeBlock, DecodeStream and DecodeMessage. It overwrites
// any category previously loaded under the same number.
func (d *Decoder) LoadCategory(cat *Category) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.categories[cat.Header.Number] = cat
}

// GetCategory returns the loaded category numbered n, if any.
func (d *Decoder) GetCategory(n uint8) (*Category, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	cat, ok := d.categories[n]
	return cat, ok
}

// SupportedCategories returns every loaded category number in ascending order.
func (d *Decoder) SupportedCategories() []uint8 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]uint8, 0, len(d.categories))
	for n := range d.categories {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
