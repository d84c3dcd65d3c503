// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/factors/pkg/types"
)

// Configuration keys as they appear in factors.yaml. The file is flat and
// each key also reads from FACTORS_<KEY> (e.g. FACTORS_DB_PATH).
const (
	keyWorkers         = "workers"
	keyLogLevel        = "log_level"
	keyDBPath          = "db_path"
	keyHistoryMax      = "max_results"
	keyListen          = "listen"
	keyMaxInput        = "max_input"
	keyMaxInFlight     = "max_in_flight"
	keyShutdownTimeout = "shutdown_timeout"
	keyURL             = "url"
	keyTimeout         = "timeout"
	keyMaxRetries      = "max_retries"
)

// An explicitly set flag wins over config; config wins over the flag default.

func stringSetting(cmd *cobra.Command, flag, key string) string {
	v, _ := cmd.Flags().GetString(flag)
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	return v
}

func intSetting(cmd *cobra.Command, flag, key string) int {
	v, _ := cmd.Flags().GetInt(flag)
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return v
}

func durationSetting(cmd *cobra.Command, flag, key string) time.Duration {
	v, _ := cmd.Flags().GetDuration(flag)
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	return v
}

func historyConfig(cmd *cobra.Command) types.HistoryConfig {
	return types.HistoryConfig{
		DBPath:     stringSetting(cmd, "db", keyDBPath),
		MaxResults: viper.GetInt(keyHistoryMax),
	}
}

func serverConfig(cmd *cobra.Command) types.ServerConfig {
	return types.ServerConfig{
		Listen:          stringSetting(cmd, "listen", keyListen),
		MaxInput:        intSetting(cmd, "max-input", keyMaxInput),
		MaxInFlight:     intSetting(cmd, "max-in-flight", keyMaxInFlight),
		ShutdownTimeout: viper.GetDuration(keyShutdownTimeout),
	}
}

func clientConfig(cmd *cobra.Command) types.ClientConfig {
	return types.ClientConfig{
		URL:        stringSetting(cmd, "url", keyURL),
		Timeout:    durationSetting(cmd, "timeout", keyTimeout),
		MaxRetries: viper.GetInt(keyMaxRetries),
	}
}

// newLogger builds the structured logger used by long-running commands.
func newLogger(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		config.Level = lvl
	}
	return config.Build()
}
