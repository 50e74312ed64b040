// Package main provides the entry point for the gitly CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gitly/gitly/internal/config"
	"github.com/gitly/gitly/internal/output"
)

// newConfigCmd creates the config command with show and set subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change gitly configuration",
		Long: `Show or change the persisted gitly configuration.

Examples:
  gitly config init
  gitly config show
  gitly config set repository ~/links
  gitly config set branch main
  gitly config set remote origin
  gitly config set pages-dir public`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

// newConfigInitCmd creates the config init subcommand.
func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the defaults",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, config.Path())
		},
	}
}

// newConfigShowCmd creates the config show subcommand.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, config.Path())
		},
	}
}

// newConfigSetCmd creates the config set subcommand.
func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, config.Path(), args[0], args[1])
		},
	}
}

// runConfigInit executes the config init subcommand. An existing file is
// left alone.
func runConfigInit(cmd *cobra.Command, path string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())

	if _, err := os.Stat(path); err == nil {
		err := output.NewUserError("config file already exists at " + path)
		printer.Error(err)
		return err
	}

	cfg, err := config.Load(path)
	if err != nil {
		printer.Error(err)
		return err
	}
	if err := cfg.Save(path); err != nil {
		wrapped := output.NewSystemErrorWithCause("saving config", err)
		printer.Error(wrapped)
		return wrapped
	}

	return printer.Success(map[string]any{"message": "wrote " + path, "path": path})
}

// runConfigShow executes the config show subcommand.
func runConfigShow(cmd *cobra.Command, path string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())

	cfg, err := config.Load(path)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"path":       path,
			"repository": cfg.Repository,
			"branch":     cfg.Branch,
			"remote":     cfg.Remote,
			"pages_dir":  cfg.PagesDir,
		})
	}

	printer.KeyValue("repository", cfg.Repository)
	printer.KeyValue("branch", cfg.Branch)
	printer.KeyValue("remote", cfg.Remote)
	printer.KeyValue("pages-dir", cfg.PagesDir)
	printer.Dim("config file: %s", path)
	return nil
}

// runConfigSet executes the config set subcommand.
func runConfigSet(cmd *cobra.Command, path, key, value string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout())).
		WithStderr(cmd.ErrOrStderr())

	cfg, err := config.Load(path)
	if err != nil {
		printer.Error(err)
		return err
	}

	switch key {
	case "repository":
		cfg.Repository = value
	case "branch":
		cfg.Branch = value
	case "remote":
		cfg.Remote = value
	case "pages-dir":
		cfg.PagesDir = value
	default:
		err := output.NewUserError("unknown config key " + key + " (expected repository, branch, remote, or pages-dir)")
		printer.Error(err)
		return err
	}

	if err := cfg.Save(path); err != nil {
		wrapped := output.NewSystemErrorWithCause("saving config", err)
		printer.Error(wrapped)
		return wrapped
	}

	return printer.Success(map[string]any{"message": key + " set", "key": key, "value": value})
}
