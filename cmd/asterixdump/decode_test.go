// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"strings"
	"testing"

	skydecoder "github.com/nathan-casabieille/SkyDecoder"
)

func TestPassFail(t *testing.T) {
	if passFail(true) != "PASS" {
		t.Fatalf("passFail(true) = %q, want PASS", passFail(true))
	}
	if passFail(false) != "FAIL" {
		t.Fatalf("passFail(false) = %q, want FAIL", passFail(false))
	}
}

func TestPrintBlockIncludesRecordsItemsAndFields(t *testing.T) {
	block := skydecoder.Block{
		Category: 2,
		Length:   11,
		Valid:    true,
		Records: []skydecoder.Record{
			{
				Length: 8,
				Valid:  true,
				Items: []skydecoder.DataItem{
					{
						ID:    "I002/010",
						Name:  "Data Source Identifier",
						Valid: true,
						Fields: []skydecoder.Field{
							{Name: "SAC", Value: skydecoder.FieldValue{Kind: skydecoder.KindUint, Uint: 12}},
						},
					},
				},
			},
		},
	}

	var buf bytes.Buffer
	printBlock(&buf, block)
	out := buf.String()

	for _, want := range []string{"category=2", "I002/010", "SAC", "record[0]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("printBlock() output missing %q, got:\n%s", want, out)
		}
	}
}

func TestPrintSessionStatsIncludesTopItems(t *testing.T) {
	stats := skydecoder.SessionStats{
		TotalBlocks:  2,
		ValidBlocks:  1,
		TotalRecords: 3,
		ValidRecords: 2,
		ItemCounts:   map[string]int{"I002/010": 2, "I002/000": 1},
	}

	var buf bytes.Buffer
	printSessionStats(&buf, stats)
	out := buf.String()

	if !strings.Contains(out, "blocks=2") || !strings.Contains(out, "I002/010") {
		t.Fatalf("printSessionStats() output = %q", out)
	}
}

func TestDecodeCmdFlagsRegistered(t *testing.T) {
	cmd := newDecodeCmd()
	for _, name := range []string{"categories-dir", "strict", "debug", "json-out"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Fatalf("decode command missing flag %q", name)
		}
	}
}

func TestDecodeCmdRequiresExactlyOneArg(t *testing.T) {
	cmd := newDecodeCmd()
	if err := cmd.Args(cmd, nil); err == nil {
		t.Fatalf("Args(nil) error = nil, want an error for zero arguments")
	}
	if err := cmd.Args(cmd, []string{"one.dat"}); err != nil {
		t.Fatalf("Args(one arg) error = %v, want nil", err)
	}
}
