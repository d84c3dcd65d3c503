// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the factors CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the factors CLI.
var rootCmd = &cobra.Command{
	Use:   "factors",
	Short: "Enumerate the positive divisors of integers",
	Long: `factors lists the positive divisors of positive integers by trial
division: every candidate from 1 to n is tested.

Results can be recorded in a local SQLite history, exported as YAML or JSON,
served over HTTP, and fetched from a running server.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./factors.yaml or ~/.config/factors/factors.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("factors")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "factors"))
		}
	}

	viper.SetEnvPrefix("FACTORS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
