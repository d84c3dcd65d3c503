// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/pdiddy/factors/internal/client"
	"github.com/pdiddy/factors/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch N [N...]",
	Short: "Fetch divisors from a running factors server",
	Long: `Fetch queries the HTTP API started by "factors serve". Rate-limited
responses (429) are retried with exponential backoff.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	nums, err := parseInts(args)
	if err != nil {
		return err
	}

	cfg := clientConfig(cmd)
	c := client.New(cfg.URL, &http.Client{Timeout: cfg.Timeout}, cfg.MaxRetries)

	results := make([]types.Factorization, 0, len(nums))
	for _, n := range nums {
		f, err := c.Factors(cmd.Context(), n)
		if err != nil {
			return err
		}
		results = append(results, f)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatFactorizations(cmd.OutOrStdout(), results, jsonOutput)
}

func init() {
	fetchCmd.Flags().String("url", "http://localhost:8080", "base URL of the factors server")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (0 = none)")
	fetchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(fetchCmd)
}
