// Package main provides the entry point for the gitly CLI.
package main

import (
	"github.com/gitly/gitly/internal/config"
	"github.com/gitly/gitly/internal/output"
	"github.com/gitly/gitly/internal/redirect"
	"github.com/gitly/gitly/internal/store"
)

// openStore returns the injected store when present, otherwise opens the
// repository named by the config file. Commands take an optional store so
// tests can run them against a mock repository.
func openStore(injected *store.Store) (*store.Store, error) {
	if injected != nil {
		return injected, nil
	}
	cfg, err := config.Load(config.Path())
	if err != nil {
		return nil, err
	}
	return store.Open(cfg)
}

// printRedirect renders a single redirect in human mode.
func printRedirect(printer *output.Printer, rec *redirect.Redirect) {
	printer.KeyValue("short", rec.Short)
	printer.KeyValue("id", rec.ID)
	printer.KeyValue("url", rec.URL)
	if rec.Description != "" {
		printer.KeyValue("description", rec.Description)
	}
	for key, val := range rec.Meta {
		printer.KeyValue(key, val)
	}
	printer.Dim("created %s by %s", rec.Created.Format("2006-01-02 15:04"), rec.Creator)
}
