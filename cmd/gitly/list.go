// Package main provides the entry point for the gitly CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/gitly/gitly/internal/output"
	"github.com/gitly/gitly/internal/store"
)

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	return newListCmdInternal(nil)
}

// newListCmdInternal creates the list command with optional store injection.
func newListCmdInternal(st *store.Store) *cobra.Command {
	var fromFlag string
	var untilFlag string
	var onelineFlag bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List redirects in creation order",
		Long: `List all redirects, oldest first. Commits that are not redirect
records (merges, unrelated history) are skipped.

Examples:
  gitly list
  gitly list --oneline
  gitly list --from 4a7d1ed4          # records created after this commit
  gitly list --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, st, fromFlag, untilFlag, onelineFlag)
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "List only records created after this commit (exclusive)")
	cmd.Flags().StringVar(&untilFlag, "until", "", "List records up to this commit (defaults to the branch tip)")
	cmd.Flags().BoolVar(&onelineFlag, "oneline", false, "Show compact format: <short>  <url>")

	return cmd
}

// runList executes the list command.
func runList(cmd *cobra.Command, st *store.Store, from, until string, oneline bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())

	st, err := openStore(st)
	if err != nil {
		printer.Error(err)
		return err
	}

	walker, err := st.Walk(store.WalkOptions{From: from, Until: until})
	if err != nil {
		printer.Error(err)
		return err
	}
	records, err := walker.All()
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(records)
	}

	if len(records) == 0 {
		printer.Dim("no redirects")
		return nil
	}

	if oneline {
		for _, rec := range records {
			printer.Print("%s  %s\n", rec.Short, rec.URL)
		}
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Short,
			rec.URL,
			rec.Description,
			rec.Created.Format("2006-01-02"),
		})
	}
	printer.Table([]string{"SHORT", "URL", "DESCRIPTION", "CREATED"}, rows)
	return nil
}
