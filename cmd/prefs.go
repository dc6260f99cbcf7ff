package cmd

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"ouiplayer/internal/prefs"
	"ouiplayer/internal/provider"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage stored preferences",
}

var prefsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every preference with its effective value",
	Args:  cobra.NoArgs,
	RunE:  prefsListRun,
}

var prefsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of a preference",
	Args:  cobra.ExactArgs(1),
	RunE:  prefsGetRun,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a preference",
	Args:  cobra.ExactArgs(2),
	RunE:  prefsSetRun,
}

var prefsUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a stored preference so its default applies",
	Args:  cobra.ExactArgs(1),
	RunE:  prefsUnsetRun,
}

var prefsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Store the default of every preference not yet set",
	Args:  cobra.NoArgs,
	RunE:  prefsInitRun,
}

func init() {
	prefsCmd.AddCommand(prefsListCmd, prefsGetCmd, prefsSetCmd, prefsUnsetCmd, prefsInitCmd)
}

// knownPref returns the default of a preference key.
func knownPref(key string) (prefs.Pref, bool) {
	defs := prefs.Defaults(provider.NewRegistry())
	i := slices.IndexFunc(defs, func(p prefs.Pref) bool { return p.Key == key })
	if i < 0 {
		return prefs.Pref{}, false
	}
	return defs[i], true
}

func prefsListRun(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	type row struct {
		Key     string `json:"key"`
		Value   string `json:"value"`
		Default string `json:"default"`
	}
	var rows []row
	for _, p := range prefs.Defaults(provider.NewRegistry()) {
		rows = append(rows, row{Key: p.Key, Value: prefs.Lookup(store, p.Key, p.Default), Default: p.Default})
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	for _, r := range rows {
		marker := ""
		if r.Value != r.Default {
			marker = " *"
		}
		fmt.Fprintf(out, "%s\t%s%s\n", r.Key, r.Value, marker)
	}
	return nil
}

func prefsGetRun(cmd *cobra.Command, args []string) error {
	p, ok := knownPref(args[0])
	if !ok {
		return fmt.Errorf("unknown preference %q", args[0])
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Fprintln(cmd.OutOrStdout(), prefs.Lookup(store, p.Key, p.Default))
	return nil
}

func prefsSetRun(cmd *cobra.Command, args []string) error {
	if _, ok := knownPref(args[0]); !ok {
		return fmt.Errorf("unknown preference %q", args[0])
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Set(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("setting %s: %w", args[0], err)
	}
	logger.Debug("preference stored", "key", args[0], "value", args[1])
	return nil
}

func prefsUnsetRun(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("removing %s: %w", args[0], err)
	}
	return nil
}

func prefsInitRun(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := prefs.Install(cmd.Context(), store, provider.NewRegistry())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Stored %d default preferences.\n", n)
	return nil
}
