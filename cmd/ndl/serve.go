// ABOUTME: CLI command for the read-only HTTP analytics API.
// ABOUTME: Serves /api/users/{user}/... views plus /health and /metrics.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agranty/no-days-lost-sub000/internal/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve analytics over HTTP",
	Long: `Serve the analytics views as JSON.

ENDPOINTS:

  GET /api/users/{user}/streaks
  GET /api/users/{user}/progress/{exercise}
  GET /api/users/{user}/volume
  GET /api/users/{user}/calendar?month=YYYY-MM
  GET /api/users/{user}/bodyweight
  GET /health
  GET /metrics                              Prometheus metrics

The address defaults to listen_addr from the config (127.0.0.1:8080).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.ListenAddr
		if serveAddr != "" {
			addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return httpapi.NewServer(addr, svc, repo, log).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: listen_addr from config)")
	rootCmd.AddCommand(serveCmd)
}
