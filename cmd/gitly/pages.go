// Package main provides the entry point for the gitly CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitly/gitly/internal/config"
	"github.com/gitly/gitly/internal/output"
	"github.com/gitly/gitly/internal/publish"
	"github.com/gitly/gitly/internal/store"
)

// newPagesCmd creates the pages command.
func newPagesCmd() *cobra.Command {
	return newPagesCmdInternal(nil)
}

// newPagesCmdInternal creates the pages command with optional store injection.
func newPagesCmdInternal(st *store.Store) *cobra.Command {
	var outFlag string

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Write static redirect pages",
		Long: `Write one static HTML redirect page per record plus an index, suitable
for publishing with GitHub Pages or any static host.

Examples:
  gitly pages
  gitly pages --out public`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPages(cmd, st, outFlag)
		},
	}

	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Output directory (defaults to the configured pages dir)")

	return cmd
}

// runPages executes the pages command.
func runPages(cmd *cobra.Command, st *store.Store, outDir string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())

	if outDir == "" {
		cfg, err := config.Load(config.Path())
		if err != nil {
			printer.Error(err)
			return err
		}
		outDir = cfg.PagesDir
	}

	st, err := openStore(st)
	if err != nil {
		printer.Error(err)
		return err
	}

	walker, err := st.Walk(store.WalkOptions{})
	if err != nil {
		printer.Error(err)
		return err
	}
	records, err := walker.All()
	if err != nil {
		printer.Error(err)
		return err
	}

	if err := publish.WritePages(records, outDir); err != nil {
		wrapped := output.NewSystemErrorWithCause("writing pages", err)
		printer.Error(wrapped)
		return wrapped
	}

	return printer.Success(map[string]any{
		"message": fmt.Sprintf("wrote %d pages to %s", len(records), outDir),
		"count":   len(records),
		"dir":     outDir,
	})
}
