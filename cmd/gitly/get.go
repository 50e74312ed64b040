// Package main provides the entry point for the gitly CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/gitly/gitly/internal/output"
	"github.com/gitly/gitly/internal/store"
)

// newGetCmd creates the get command.
func newGetCmd() *cobra.Command {
	return newGetCmdInternal(nil)
}

// newGetCmdInternal creates the get command with optional store injection.
func newGetCmdInternal(st *store.Store) *cobra.Command {
	var urlOnlyFlag bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Look up a redirect by id",
		Long: `Look up a redirect by its canonical or short id.

Examples:
  gitly get 2t6XGK
  gitly get 2t6XGK --url     # print only the target URL
  gitly get 2t6XGK --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, st, args[0], urlOnlyFlag)
		},
	}

	cmd.Flags().BoolVar(&urlOnlyFlag, "url", false, "Print only the target URL")

	return cmd
}

// runGet executes the get command.
func runGet(cmd *cobra.Command, st *store.Store, id string, urlOnly bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())

	st, err := openStore(st)
	if err != nil {
		printer.Error(err)
		return err
	}

	rec, err := st.Get(id)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(rec)
	}
	if urlOnly {
		printer.Println(rec.URL)
		return nil
	}
	printRedirect(printer, rec)
	return nil
}
