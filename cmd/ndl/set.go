// ABOUTME: CLI commands for adding and removing sets within a session.
// ABOUTME: A set is strength (--weight/--reps) or cardio (--distance/--time).
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agranty/no-days-lost-sub000/internal/analytics"
	"github.com/agranty/no-days-lost-sub000/internal/models"
)

var (
	setWeight   float64
	setReps     int
	setUnit     string
	setDistance float64
	setTime     float64
	setPace     float64
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Manage sets",
}

var setAddCmd = &cobra.Command{
	Use:   "add <session-id> <exercise>",
	Short: "Add a set to a session",
	Long: `Add a strength or cardio set to a session.

The exercise may be given by name (case-insensitive) or ID prefix. Strength
sets store an estimated one-rep max (Epley); cardio sets store pace, derived
from distance and time when --pace is not given.

Examples:
  ndl set add abc12345 "Bench Press" --weight 100 --reps 5
  ndl set add abc12345 Squat --weight 225 --reps 3 --unit lb
  ndl set add abc12345 Run --distance 5000 --time 1500`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		strength := setReps != 0 || setWeight != 0
		cardio := setDistance != 0 || setTime != 0 || setPace != 0
		if strength == cardio {
			return errors.New("give either --weight/--reps or --distance/--time")
		}

		s, err := repo.GetSession(args[0])
		if err != nil {
			return fmt.Errorf("session not found: %s", args[0])
		}
		e, err := repo.GetExercise(args[1])
		if err != nil {
			return fmt.Errorf("exercise not found: %s", args[1])
		}

		var set *models.WorkoutSet
		if strength {
			if setReps <= 0 || setWeight < 0 {
				return fmt.Errorf("strength sets need positive --reps and non-negative --weight")
			}
			unit, err := models.ParseWeightUnit(setUnit)
			if err != nil {
				return err
			}
			set = models.NewStrengthSet(s.ID, e.ID, setWeight, unit, setReps)
		} else {
			if setDistance <= 0 || setTime < 0 || setPace < 0 {
				return fmt.Errorf("cardio sets need a positive --distance")
			}
			set = models.NewCardioSet(s.ID, e.ID, setDistance, setTime)
			if setPace > 0 {
				set.WithPace(setPace)
			}
		}
		if e.Category != models.CategoryMobility && (e.Category == models.CategoryCardio) != cardio {
			color.Yellow("⚠ %s is a %s exercise", e.Name, e.Category)
		}
		analytics.AnnotateSet(set)

		if err := repo.AddSet(set); err != nil {
			return fmt.Errorf("failed to add set: %w", err)
		}

		color.Green("✓ Added %s set", e.Name)
		fmt.Printf("  %s %s\n", faint.Sprint(shortID(set.ID)), describeSet(*set))
		return nil
	},
}

var setDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a set",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.DeleteSet(args[0]); err != nil {
			return fmt.Errorf("failed to delete set: %w", err)
		}
		color.Yellow("✗ Deleted set %s", args[0])
		return nil
	},
}

func init() {
	setAddCmd.Flags().Float64VarP(&setWeight, "weight", "w", 0, "weight lifted")
	setAddCmd.Flags().IntVarP(&setReps, "reps", "r", 0, "repetitions")
	setAddCmd.Flags().StringVar(&setUnit, "unit", string(models.UnitKg), "weight unit: kg or lb")
	setAddCmd.Flags().Float64Var(&setDistance, "distance", 0, "distance in meters")
	setAddCmd.Flags().Float64Var(&setTime, "time", 0, "duration in seconds")
	setAddCmd.Flags().Float64Var(&setPace, "pace", 0, "device-reported pace in seconds per km")

	setCmd.AddCommand(setAddCmd)
	setCmd.AddCommand(setDeleteCmd)
	rootCmd.AddCommand(setCmd)
}
