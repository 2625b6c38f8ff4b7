// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agranty/no-days-lost-sub000/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout, so logs go to stderr or the
configured log file. Tools default to the configured --user.

CONFIGURATION:

  {
    "mcpServers": {
      "ndl": { "command": "ndl", "args": ["mcp", "--user", "alice"] }
    }
  }

AVAILABLE TOOLS:

  log_session            Log a workout session
  add_strength_set       Add weight x reps to a session
  add_cardio_set         Add distance and time to a session
  log_body_weight        Record body weight
  list_sessions          List sessions, most recent first
  list_exercises         List the exercise catalog
  get_streaks            Daily and weekly streaks
  get_exercise_progress  1RM history and PRs
  get_body_part_volume   Weekly volume per body part
  get_calendar           Monthly heat map
  get_body_weight_trend  Deduplicated weight with rolling average

AVAILABLE RESOURCES:

  ndl://sessions/recent  Last 10 sessions with sets
  ndl://summary          Streaks, this week, latest body weight`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, svc, cfg.User, log)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
