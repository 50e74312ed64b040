// Package main provides the entry point for the gitly CLI.
package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitly/gitly/internal/output"
	"github.com/gitly/gitly/internal/redirect"
	"github.com/gitly/gitly/internal/store"
)

// newAddCmd creates the add command.
func newAddCmd() *cobra.Command {
	return newAddCmdInternal(nil)
}

// newAddCmdInternal creates the add command with optional store injection.
// If st is nil, the real store is opened when the command runs.
func newAddCmdInternal(st *store.Store) *cobra.Command {
	var descriptionFlag string
	var metaFlags []string
	var syncFlag bool

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Create a short link for a URL",
		Long: `Create a short link by appending a record commit to the store.

The target URL must be absolute and use http, https, or ftp. Metadata is
stored as key=value pairs alongside the URL.

Examples:
  gitly add https://example.com/docs
  gitly add https://example.com/docs -d "project docs"
  gitly add https://example.com/docs -m owner=platform -m ttl=30d
  gitly add https://example.com/docs --sync`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, st, args[0], descriptionFlag, metaFlags, syncFlag)
		},
	}

	cmd.Flags().StringVarP(&descriptionFlag, "description", "d", "", "Description of the link")
	cmd.Flags().StringArrayVarP(&metaFlags, "meta", "m", nil, "Metadata as key=value (repeatable)")
	cmd.Flags().BoolVar(&syncFlag, "sync", false, "Push to the remote after creating")

	return cmd
}

// runAdd executes the add command.
func runAdd(cmd *cobra.Command, st *store.Store, rawURL, description string, metaFlags []string, syncAfter bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())

	meta, err := parseMetaFlags(metaFlags)
	if err != nil {
		printer.Error(err)
		return err
	}

	st, err = openStore(st)
	if err != nil {
		printer.Error(err)
		return err
	}

	rec, err := st.Create(redirect.Fields{
		URL:         rawURL,
		Description: description,
		Meta:        meta,
	})
	if err != nil {
		printer.Error(err)
		return err
	}

	if syncAfter {
		if err := st.Sync(); err != nil {
			printer.Error(err)
			return err
		}
	}

	if printer.IsJSON() {
		return printer.WriteJSON(rec)
	}
	printRedirect(printer, rec)
	return nil
}

// parseMetaFlags parses repeated key=value flags into a map.
func parseMetaFlags(flags []string) (map[string]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	meta := make(map[string]string, len(flags))
	for _, raw := range flags {
		key, val, found := strings.Cut(raw, "=")
		if !found || key == "" {
			return nil, output.NewUserError("invalid --meta " + raw + ": expected key=value")
		}
		meta[key] = val
	}
	return meta, nil
}
