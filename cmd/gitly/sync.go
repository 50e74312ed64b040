// Package main provides the entry point for the gitly CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/gitly/gitly/internal/output"
	"github.com/gitly/gitly/internal/store"
)

// newSyncCmd creates the sync command.
func newSyncCmd() *cobra.Command {
	return newSyncCmdInternal(nil)
}

// newSyncCmdInternal creates the sync command with optional store injection.
func newSyncCmdInternal(st *store.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push local records to the remote",
		Long: `Push the tracked branch to the remote. When the remote has records
this clone has not seen, the push is rejected; sync then fetches, merges,
and retries the push once. A second rejection is reported as an error.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, st)
		},
	}
}

// runSync executes the sync command.
func runSync(cmd *cobra.Command, st *store.Store) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())

	st, err := openStore(st)
	if err != nil {
		printer.Error(err)
		return err
	}

	if err := st.Sync(); err != nil {
		printer.Error(err)
		return err
	}

	return printer.Success(map[string]any{"message": "synced"})
}
