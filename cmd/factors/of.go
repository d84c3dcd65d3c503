// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/factors/internal/divisors"
	"github.com/pdiddy/factors/internal/history"
	"github.com/pdiddy/factors/pkg/types"
)

var ofCmd = &cobra.Command{
	Use:   "of N [N...]",
	Short: "List the divisors of one or more positive integers",
	Long: `Of prints the divisors of each argument in ascending order. Inputs
below 1 are rejected. Use --record to save results in the history database
and --workers to factor several large inputs concurrently.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOf,
}

func runOf(cmd *cobra.Command, args []string) error {
	nums, err := parseInts(args)
	if err != nil {
		return err
	}

	workers := intSetting(cmd, "workers", keyWorkers)
	results, err := divisors.FactorAll(cmd.Context(), nums, workers)
	if err != nil {
		return err
	}

	if rec, _ := cmd.Flags().GetBool("record"); rec {
		store, err := history.Open(historyConfig(cmd))
		if err != nil {
			return err
		}
		defer store.Close()
		for _, f := range results {
			if err := store.Put(cmd.Context(), f); err != nil {
				return err
			}
		}
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatFactorizations(cmd.OutOrStdout(), results, jsonOutput)
}

func parseInts(args []string) ([]int, error) {
	nums := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", a)
		}
		nums[i] = n
	}
	return nums, nil
}

func formatFactorizations(w io.Writer, results []types.Factorization, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(results) == 1 {
			return enc.Encode(results[0])
		}
		return enc.Encode(results)
	}

	for _, f := range results {
		note := fmt.Sprintf("%d divisors", f.Count)
		if f.Count == 1 {
			note = "1 divisor"
		}
		if f.Prime {
			note += ", prime"
		}
		fmt.Fprintf(w, "Factors of %d: %s (%s)\n", f.N, divisors.Format(f.Divisors), note)
	}
	return nil
}

func init() {
	ofCmd.Flags().Bool("json", false, "output results as JSON")
	ofCmd.Flags().Bool("record", false, "save results in the history database")
	ofCmd.Flags().String("db", "factors.db", "history database path")
	ofCmd.Flags().Int("workers", 1, "number of inputs factored concurrently")

	rootCmd.AddCommand(ofCmd)
}
