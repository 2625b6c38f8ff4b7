// ABOUTME: CLI command for copying data between the sqlite and kv backends.
// ABOUTME: Refuses to write into a destination that already holds data.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agranty/no-days-lost-sub000/internal/storage"
)

var (
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data to another storage backend",
	Long: `Copy every body part, exercise, session, set, and body weight entry from the
current backend to another one in the same data directory.

USAGE:

  ndl migrate --to kv --dry-run   # Preview what would be copied
  ndl migrate --to kv             # Copy sqlite data into the Badger store
  ndl --backend kv migrate --to sqlite

AFTER MIGRATION:

  Point the config at the new backend:
    {"backend": "kv"}
  The source data is left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateTo == cfg.GetBackend() {
			return fmt.Errorf("already using the %s backend", migrateTo)
		}

		dstCfg := *cfg
		dstCfg.Backend = migrateTo
		dstPath, err := dstCfg.StoragePath()
		if err != nil {
			return err
		}

		if migrateDryRun {
			data, err := repo.GetAllData()
			if err != nil {
				return fmt.Errorf("failed to read source: %w", err)
			}
			sets := 0
			for _, s := range data.Sessions {
				sets += len(s.Sets)
			}
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Printf("\nWould copy from %s to %s (%s):\n", cfg.GetBackend(), migrateTo, dstPath)
			printMigrateSummary(&storage.MigrateSummary{
				BodyParts:   len(data.BodyParts),
				Exercises:   len(data.Exercises),
				Sessions:    len(data.Sessions),
				Sets:        sets,
				BodyWeights: len(data.BodyWeights),
			})
			return nil
		}

		existing, err := destinationExists(migrateTo, dstPath)
		if err != nil {
			return err
		}

		dst, err := dstCfg.OpenStorage(log)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer dst.Close()

		if existing && !migrateForce {
			occupied, err := hasData(dst)
			if err != nil {
				return fmt.Errorf("failed to read destination: %w", err)
			}
			if occupied {
				return fmt.Errorf("destination %s already has data (use --force to merge)", dstPath)
			}
		}

		summary, err := storage.MigrateData(repo, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %s → %s", cfg.GetBackend(), migrateTo)
		printMigrateSummary(summary)
		return nil
	},
}

// destinationExists reports whether the destination store was created before.
func destinationExists(backend, path string) (bool, error) {
	if backend == storage.BackendKV {
		return storage.IsDirNonEmpty(path)
	}
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	return err == nil, err
}

func hasData(r storage.Repository) (bool, error) {
	data, err := r.GetAllData()
	if err != nil {
		return false, err
	}
	n := len(data.BodyParts) + len(data.Exercises) + len(data.Sessions) + len(data.BodyWeights)
	return n > 0, nil
}

func printMigrateSummary(s *storage.MigrateSummary) {
	fmt.Printf("  Body parts:   %d\n", s.BodyParts)
	fmt.Printf("  Exercises:    %d\n", s.Exercises)
	fmt.Printf("  Sessions:     %d\n", s.Sessions)
	fmt.Printf("  Sets:         %d\n", s.Sets)
	fmt.Printf("  Body weights: %d\n", s.BodyWeights)
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", storage.BackendKV, "destination backend: sqlite or kv")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "write into a destination that already has data")
	rootCmd.AddCommand(migrateCmd)
}
