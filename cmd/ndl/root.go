// ABOUTME: Root Cobra command for the ndl CLI.
// ABOUTME: Loads config, logging, storage, and analytics via PersistentPreRunE.
package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/agranty/no-days-lost-sub000/internal/analytics"
	"github.com/agranty/no-days-lost-sub000/internal/config"
	"github.com/agranty/no-days-lost-sub000/internal/logging"
	"github.com/agranty/no-days-lost-sub000/internal/storage"
)

var (
	cfgFile      string
	flagUser     string
	flagBackend  string
	flagDataDir  string
	flagLogLevel string

	cfg       *config.Config
	repo      storage.Repository
	svc       *analytics.Service
	log       *logrus.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "ndl",
	Short: "No days lost: a personal training log",
	Long: `ndl records workout sessions and turns them into training analytics.

WHAT IT TRACKS:

  Sessions      a training day with duration, perceived exertion, and notes
  Sets          strength (weight x reps) or cardio (distance and time)
  Body weight   daily weigh-ins, deduplicated per day

QUICK START:

  $ ndl bodypart add Chest
  $ ndl exercise add "Bench Press" --category strength --body-part Chest
  $ ndl session add --user alice --duration 45 --effort 7
  $ ndl set add abc12345 "Bench Press" --weight 100 --reps 5
  $ ndl stats progress "Bench Press"

STATS:

  $ ndl stats streaks        # current and best daily/weekly streaks
  $ ndl stats volume         # weekly volume per body part with insights
  $ ndl stats calendar       # monthly heat map
  $ ndl stats weight         # body weight with rolling average

SERVERS:

  $ ndl serve                # read-only JSON API and /metrics
  $ ndl mcp                  # Model Context Protocol server on stdio

DATA STORAGE:

  SQLite at ~/.local/share/ndl/ndl.db by default. Set "backend": "kv" in
  ~/.config/ndl/config.json (or NDL_BACKEND=kv) to use the Badger store.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		return initResources()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeResources()
	},
}

// initResources loads config and opens everything commands share.
func initResources() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFile(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides(cfg)

	log, logCloser = logging.Setup(logging.SetupParams{
		LogFileName:   config.ExpandPath(cfg.LogFile),
		LogToStderr:   true,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogJSON,
	})

	opts, err := cfg.AnalyticsOptions()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	repo, err = cfg.OpenStorage(log)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	svc = analytics.NewService(repo, opts, log)

	log.WithFields(logrus.Fields{
		"backend":  cfg.GetBackend(),
		"data_dir": cfg.GetDataDir(),
	}).Debug("storage opened")
	return nil
}

func applyFlagOverrides(c *config.Config) {
	if flagUser != "" {
		c.User = flagUser
	}
	if flagBackend != "" {
		c.Backend = flagBackend
	}
	if flagDataDir != "" {
		c.DataDir = flagDataDir
	}
	if flagLogLevel != "" {
		c.LogLevel = flagLogLevel
	}
}

// closeResources is safe to call more than once.
func closeResources() error {
	var err error
	if repo != nil {
		err = multierr.Append(err, repo.Close())
		repo = nil
	}
	if logCloser != nil {
		err = multierr.Append(err, logCloser.Close())
		logCloser = nil
	}
	svc = nil
	return err
}

// requireUser returns the effective user or explains how to set one.
func requireUser() (string, error) {
	if cfg == nil || cfg.User == "" {
		return "", errors.New("no user: pass --user or set \"user\" in the config file")
	}
	return cfg.User, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/ndl/config.json)")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "user identity")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: sqlite or kv")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
}
