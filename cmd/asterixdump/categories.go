// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	skydecoder "github.com/nathan-casabieille/SkyDecoder"
)

func newCategoriesCmd() *cobra.Command {
	var categoriesDir string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the category definitions loaded from a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := skydecoder.LoadCategoriesFromDir(categoriesDir)
			if err != nil {
				return fmt.Errorf("load categories: %w", err)
			}

			dec := skydecoder.NewDecoder(skydecoder.Config{})
			for _, cat := range categories {
				dec.LoadCategory(cat)
			}

			out := cmd.OutOrStdout()
			for _, num := range dec.SupportedCategories() {
				cat, _ := dec.GetCategory(num)
				fmt.Fprintf(out, "%3d  %-10s %s\n", num, cat.Header.Name, cat.Header.Version)
				if !verbose {
					continue
				}
				items := cat.Items()
				sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
				for _, item := range items {
					fmt.Fprintf(out, "       %-10s %s\n", item.ID, item.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&categoriesDir, "categories-dir", "./categories", "directory of category XML definitions")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also list each category's data items")
	return cmd
}
