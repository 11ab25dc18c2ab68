// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

// Command asterixdump is a thin front-end over the skydecoder package: it
// loads category definitions from a directory, decodes a message file, and
// prints the result. It is not imported by skydecoder and carries its own
// dependency on cobra for flag/subcommand parsing.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "asterixdump",
		Short: "Decode and inspect ASTERIX surveillance message files",
	}
	root.AddCommand(newDecodeCmd())
	root.AddCommand(newCategoriesCmd())
	return root
}
