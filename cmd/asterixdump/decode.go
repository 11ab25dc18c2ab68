// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	skydecoder "github.com/nathan-casabieille/SkyDecoder"
)

func newDecodeCmd() *cobra.Command {
	var categoriesDir string
	var strict bool
	var debug bool
	var jsonOut string

	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode an ASTERIX message file and print its contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newCLILogger(debug)

			categories, err := skydecoder.LoadCategoriesFromDir(categoriesDir)
			if err != nil {
				return fmt.Errorf("load categories: %w", err)
			}

			dec := skydecoder.NewDecoder(skydecoder.Config{Strict: strict, Debug: debug, Logger: logger})
			for _, cat := range categories {
				dec.LoadCategory(cat)
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			blocks := dec.DecodeStream(data)
			out := cmd.OutOrStdout()

			var jsonRecord *skydecoder.Record
			for _, block := range blocks {
				printBlock(out, block)
				if _, ok := dec.GetCategory(block.Category); !ok {
					continue
				}
				fmt.Fprintf(out, "  block validation: %s\n", passFail(dec.ValidateBlock(block)))
				for i, rec := range block.Records {
					fmt.Fprintf(out, "    record[%d] validation: %s\n", i, passFail(dec.Validate(rec)))
					if jsonRecord == nil && rec.Valid {
						r := rec
						jsonRecord = &r
					}
				}
			}

			printSessionStats(out, skydecoder.AnalyzeSession(blocks))

			if jsonOut == "" {
				return nil
			}
			if jsonRecord == nil {
				return fmt.Errorf("no successfully decoded record to export to %s", jsonOut)
			}
			return writeRecordJSON(jsonOut, jsonRecord)
		},
	}

	cmd.Flags().StringVar(&categoriesDir, "categories-dir", "./categories", "directory of category XML definitions")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat validation warnings as failures")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	cmd.Flags().StringVar(&jsonOut, "json-out", "", "write the first successfully decoded record to this JSON file")
	return cmd
}

func newCLILogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

func printBlock(w io.Writer, block skydecoder.Block) {
	fmt.Fprintf(w, "block: category=%d length=%d valid=%t records=%d\n", block.Category, block.Length, block.Valid, len(block.Records))
	for i, rec := range block.Records {
		fmt.Fprintf(w, "  record[%d]: length=%d valid=%t\n", i, rec.Length, rec.Valid)
		for _, item := range rec.Items {
			fmt.Fprintf(w, "    %s %s valid=%t\n", item.ID, item.Name, item.Valid)
			for _, field := range item.Fields {
				fmt.Fprintf(w, "      %-16s %s\n", field.Name, field.Format())
			}
		}
	}
}

func printSessionStats(w io.Writer, stats skydecoder.SessionStats) {
	fmt.Fprintf(w, "\nsession: blocks=%d (valid=%d invalid=%d) records=%d (valid=%d) success=%.1f%%\n",
		stats.TotalBlocks, stats.ValidBlocks, stats.InvalidBlocks, stats.TotalRecords, stats.ValidRecords, stats.SuccessRatePct)
	for _, item := range stats.TopItems(10) {
		fmt.Fprintf(w, "  %-12s %d\n", item.ID, item.Count)
	}
}

func writeRecordJSON(path string, rec *skydecoder.Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
