// ABOUTME: CLI commands for the exercise catalog.
// ABOUTME: Supports bodypart add/list and exercise add/list.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agranty/no-days-lost-sub000/internal/models"
)

var (
	exerciseCategory string
	exerciseBodyPart string
	exerciseListCat  string
)

var bodyPartCmd = &cobra.Command{
	Use:     "bodypart",
	Aliases: []string{"bp"},
	Short:   "Manage body parts",
	Long: `Body parts are free-text muscle group names that exercises point at.

Volume analytics fold them into chest, back, legs, arms, shoulders, and core
by keyword, so "Upper Chest" and "Pecs" both count as chest.`,
}

var bodyPartAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a body part",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bp := models.NewBodyPart(args[0])
		if bp.Name == "" {
			return errors.New("body part name cannot be empty")
		}
		if err := repo.CreateBodyPart(bp); err != nil {
			return fmt.Errorf("failed to add body part: %w", err)
		}

		color.Green("✓ Added body part %s", bp.Name)
		fmt.Printf("  ID: %s\n", shortID(bp.ID))
		return nil
	},
}

var bodyPartListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List body parts",
	RunE: func(cmd *cobra.Command, args []string) error {
		parts, err := repo.ListBodyParts()
		if err != nil {
			return fmt.Errorf("failed to list body parts: %w", err)
		}
		if len(parts) == 0 {
			fmt.Println("No body parts found.")
			return nil
		}
		for _, bp := range parts {
			fmt.Printf("%s %s\n", faint.Sprint(shortID(bp.ID)), bp.Name)
		}
		return nil
	},
}

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage exercises",
	Long: `Exercises are the catalog entries sets refer to.

CATEGORIES:

  strength   weight x reps, tracked by estimated 1RM and top-set volume
  cardio     distance and duration, tracked by pace
  mobility   logged but not analyzed`,
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an exercise",
	Long: `Add an exercise to the catalog.

Examples:
  ndl exercise add "Bench Press" --category strength --body-part Chest
  ndl exercise add Run --category cardio`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidCategory(exerciseCategory) {
			return fmt.Errorf("unknown category: %s (use strength, cardio, or mobility)", exerciseCategory)
		}

		e := models.NewExercise(args[0], models.Category(exerciseCategory))
		if e.Name == "" {
			return errors.New("exercise name cannot be empty")
		}
		if exerciseBodyPart != "" {
			bp, err := repo.GetBodyPart(exerciseBodyPart)
			if err != nil {
				return fmt.Errorf("body part not found: %s", exerciseBodyPart)
			}
			e.WithBodyPart(bp.ID)
		}

		if err := repo.CreateExercise(e); err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}

		color.Green("✓ Added %s exercise %s", e.Category, e.Name)
		fmt.Printf("  ID: %s\n", shortID(e.ID))
		return nil
	},
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		var category *models.Category
		if exerciseListCat != "" {
			if !models.IsValidCategory(exerciseListCat) {
				return fmt.Errorf("unknown category: %s", exerciseListCat)
			}
			c := models.Category(strings.ToLower(exerciseListCat))
			category = &c
		}

		exercises, err := repo.ListExercises(category)
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}
		if len(exercises) == 0 {
			fmt.Println("No exercises found.")
			return nil
		}

		parts, err := repo.ListBodyParts()
		if err != nil {
			return fmt.Errorf("failed to list body parts: %w", err)
		}
		names := make(map[string]string, len(parts))
		for _, bp := range parts {
			names[bp.ID.String()] = bp.Name
		}

		for _, e := range exercises {
			bodyPart := ""
			if e.PrimaryBodyPartID != nil {
				bodyPart = faint.Sprint(names[e.PrimaryBodyPartID.String()])
			}
			fmt.Printf("%s %s %s %s\n",
				faint.Sprint(shortID(e.ID)),
				padRight(e.Name, 24),
				padRight(string(e.Category), 9),
				bodyPart)
		}
		return nil
	},
}

func init() {
	exerciseAddCmd.Flags().StringVarP(&exerciseCategory, "category", "c", string(models.CategoryStrength), "strength, cardio, or mobility")
	exerciseAddCmd.Flags().StringVarP(&exerciseBodyPart, "body-part", "b", "", "primary body part name or ID")
	exerciseListCmd.Flags().StringVarP(&exerciseListCat, "category", "c", "", "filter by category")

	bodyPartCmd.AddCommand(bodyPartAddCmd)
	bodyPartCmd.AddCommand(bodyPartListCmd)
	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseListCmd)
	rootCmd.AddCommand(bodyPartCmd)
	rootCmd.AddCommand(exerciseCmd)
}
