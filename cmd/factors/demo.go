// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/factors/internal/divisors"
)

// demoInputs are the fixed smoke-test inputs: a composite, a prime and a
// power of two.
var demoInputs = []int{45, 53, 64}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Print the divisors of 45, 53 and 64",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, n := range demoInputs {
			divs, err := divisors.Factors(n)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), divisors.Format(divs))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
