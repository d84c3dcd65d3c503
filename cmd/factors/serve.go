// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/factors/internal/history"
	"github.com/pdiddy/factors/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve divisor enumeration over HTTP",
	Long: `Serve exposes GET /factors/{n} and GET /healthz. Inputs above
--max-input are refused with 422 and requests beyond --max-in-flight
receive 429. With --record every served result is saved in the history
database. The server shuts down gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(stringSetting(cmd, "log-level", keyLogLevel))
	if err != nil {
		return err
	}
	defer logger.Sync()

	var recorder server.Recorder
	if rec, _ := cmd.Flags().GetBool("record"); rec {
		store, err := history.Open(historyConfig(cmd))
		if err != nil {
			return err
		}
		defer store.Close()
		recorder = store
	}

	cfg := serverConfig(cmd)
	logger.Info("starting",
		zap.String("version", version),
		zap.String("listen", cfg.Listen),
		zap.Int("max_input", cfg.MaxInput),
		zap.Int("max_in_flight", cfg.MaxInFlight),
		zap.Bool("record", recorder != nil))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, logger, recorder).ListenAndServe(ctx)
}

func init() {
	serveCmd.Flags().String("listen", ":8080", "address to listen on")
	serveCmd.Flags().Int("max-input", 10000000, "largest n accepted (0 = unlimited)")
	serveCmd.Flags().Int("max-in-flight", 64, "concurrent factorizations before 429 (0 = unlimited)")
	serveCmd.Flags().Bool("record", false, "save served results in the history database")
	serveCmd.Flags().String("db", "factors.db", "history database path")
	serveCmd.Flags().String("log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd)
}

