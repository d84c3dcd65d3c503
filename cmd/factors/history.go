// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/factors/internal/history"
	"github.com/pdiddy/factors/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded factorizations (list, show, export)",
	Long: `History reads the local SQLite database written by "factors of --record"
and "factors serve --record".`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded factorizations ordered by n",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	primeOnly, _ := cmd.Flags().GetBool("prime")
	limit, _ := cmd.Flags().GetInt("limit")
	results, err := store.List(cmd.Context(), history.ListOptions{PrimeOnly: primeOnly, Limit: limit})
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No results found.")
		return nil
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if err := formatFactorizations(cmd.OutOrStdout(), results, false); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d results\n", len(results))
	return nil
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show N",
	Short: "Show the recorded factorization of N",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid integer %q", args[0])
	}

	store, err := history.Open(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	f, err := store.Get(cmd.Context(), n)
	if err != nil {
		return err
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatFactorizations(cmd.OutOrStdout(), []types.Factorization{f}, jsonOutput)
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the full history to stdout as YAML or JSON",
	Args:  cobra.NoArgs,
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := history.Open(historyConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	switch format {
	case "yaml", "":
		return store.ExportYAML(cmd.Context(), cmd.OutOrStdout())
	case "json":
		return store.ExportJSON(cmd.Context(), cmd.OutOrStdout())
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

func init() {
	historyCmd.PersistentFlags().String("db", "factors.db", "history database path")

	historyListCmd.Flags().Bool("prime", false, "list primes only")
	historyListCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	historyListCmd.Flags().Bool("json", false, "output results as JSON")

	historyShowCmd.Flags().Bool("json", false, "output result as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
