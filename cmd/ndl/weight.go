// ABOUTME: CLI commands for body weight logging.
// ABOUTME: Supports add, list, and delete; the trend lives under stats weight.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agranty/no-days-lost-sub000/internal/analytics"
	"github.com/agranty/no-days-lost-sub000/internal/models"
)

var (
	weightUnit  string
	weightDate  string
	weightNotes string
	weightFrom  string
	weightTo    string
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Log body weight",
	Long: `Record body weight. Several entries on one day are kept; analytics use
the one recorded last.`,
}

var weightAddCmd = &cobra.Command{
	Use:   "add <value>",
	Short: "Add a body weight entry",
	Long: `Add a body weight entry for the current user.

Examples:
  ndl weight add 81.2
  ndl weight add 179 --unit lb --date 2024-03-04 --notes "after run"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireUser()
		if err != nil {
			return err
		}
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid value: %s", args[0])
		}
		unit, err := models.ParseWeightUnit(weightUnit)
		if err != nil {
			return err
		}
		date, err := dayOrToday(weightDate)
		if err != nil {
			return err
		}

		b := models.NewBodyWeightLog(user, date, value, unit)
		if weightNotes != "" {
			b.WithNotes(weightNotes)
		}
		if err := repo.LogBodyWeight(b); err != nil {
			return fmt.Errorf("failed to log body weight: %w", err)
		}

		color.Green("✓ Logged body weight")
		fmt.Printf("  %s %s %.1f %s\n", faint.Sprint(shortID(b.ID)), analytics.FormatDay(b.Date), b.Weight, b.Unit)
		return nil
	},
}

var weightListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List body weight entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireUser()
		if err != nil {
			return err
		}
		r, err := dateRange(weightFrom, weightTo)
		if err != nil {
			return err
		}

		logs, err := repo.ListBodyWeights(cmd.Context(), user, r)
		if err != nil {
			return fmt.Errorf("failed to list body weights: %w", err)
		}
		if len(logs) == 0 {
			fmt.Println("No body weight entries found.")
			return nil
		}

		for _, b := range logs {
			notes := ""
			if b.Notes != nil && *b.Notes != "" {
				notes = faint.Sprintf(" (%s)", truncate(*b.Notes, 30))
			}
			fmt.Printf("%s %s %6.1f %s%s\n",
				faint.Sprint(shortID(b.ID)),
				analytics.FormatDay(b.Date),
				b.Weight,
				b.Unit,
				notes)
		}
		return nil
	},
}

var weightDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a body weight entry",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.DeleteBodyWeight(args[0]); err != nil {
			return fmt.Errorf("failed to delete body weight: %w", err)
		}
		color.Yellow("✗ Deleted body weight %s", args[0])
		return nil
	},
}

func init() {
	weightAddCmd.Flags().StringVar(&weightUnit, "unit", string(models.UnitKg), "weight unit: kg or lb")
	weightAddCmd.Flags().StringVar(&weightDate, "date", "", "day (YYYY-MM-DD, default today)")
	weightAddCmd.Flags().StringVarP(&weightNotes, "notes", "n", "", "notes")

	weightListCmd.Flags().StringVar(&weightFrom, "from", "", "first day to include (YYYY-MM-DD)")
	weightListCmd.Flags().StringVar(&weightTo, "to", "", "last day to include (YYYY-MM-DD)")

	weightCmd.AddCommand(weightAddCmd)
	weightCmd.AddCommand(weightListCmd)
	weightCmd.AddCommand(weightDeleteCmd)
	rootCmd.AddCommand(weightCmd)
}
