// ABOUTME: CLI commands for workout sessions.
// ABOUTME: Supports add, list, show, and delete subcommands.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/agranty/no-days-lost-sub000/internal/analytics"
	"github.com/agranty/no-days-lost-sub000/internal/models"
)

var (
	sessionDate     string
	sessionDuration int
	sessionEffort   int
	sessionNotes    string

	sessionFrom  string
	sessionTo    string
	sessionLimit int
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"s"},
	Short:   "Manage workout sessions",
	Long: `A session is one training day for one user. Sets are added to it with
'ndl set add'.

WORKFLOW:

  1. Start a session:    ndl session add --duration 45 --effort 7
  2. Add sets to it:     ndl set add abc12345 "Bench Press" --weight 100 --reps 5
  3. Review it:          ndl session show abc12345`,
}

var sessionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a session",
	Long: `Add a workout session for the current user.

Examples:
  ndl session add
  ndl session add --date 2024-03-04 --duration 45 --effort 7 --notes "Push day"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireUser()
		if err != nil {
			return err
		}
		date, err := dayOrToday(sessionDate)
		if err != nil {
			return err
		}

		s := models.NewWorkoutSession(user, date)
		if sessionDuration > 0 {
			s.WithDuration(sessionDuration)
		}
		if sessionEffort != 0 {
			s.WithExertion(sessionEffort)
		}
		if sessionNotes != "" {
			s.WithNotes(sessionNotes)
		}

		if err := repo.CreateSession(s); err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}

		color.Green("✓ Added session for %s on %s", user, analytics.FormatDay(s.Date))
		fmt.Printf("  ID: %s\n", shortID(s.ID))
		if s.DurationMinutes != nil {
			fmt.Printf("  Duration: %d min\n", *s.DurationMinutes)
		}
		return nil
	},
}

var sessionListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List sessions, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireUser()
		if err != nil {
			return err
		}
		r, err := dateRange(sessionFrom, sessionTo)
		if err != nil {
			return err
		}

		sessions, err := repo.ListSessions(cmd.Context(), user, r)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}
		if sessionLimit > 0 && len(sessions) > sessionLimit {
			sessions = sessions[:sessionLimit]
		}

		for _, s := range sessions {
			notes := ""
			if s.Notes != nil && *s.Notes != "" {
				notes = faint.Sprintf(" (%s)", truncate(*s.Notes, 30))
			}
			fmt.Printf("%s %s %s %s%s\n",
				faint.Sprint(shortID(s.ID)),
				analytics.FormatDay(s.Date),
				padRight(formatDuration(s.DurationMinutes), 8),
				padRight(formatEffort(s.PerceivedExertion), 6),
				notes)
		}
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a session with its sets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := repo.GetSessionWithSets(args[0])
		if err != nil {
			return fmt.Errorf("failed to get session: %w", err)
		}

		fmt.Printf("Session: %s\n", shortID(s.ID))
		fmt.Printf("User: %s\n", s.UserID)
		fmt.Printf("Date: %s\n", analytics.FormatDay(s.Date))
		if s.DurationMinutes != nil {
			fmt.Printf("Duration: %d min\n", *s.DurationMinutes)
		}
		if s.PerceivedExertion != nil {
			fmt.Printf("Effort: %d/10\n", *s.PerceivedExertion)
		}
		if s.Notes != nil {
			fmt.Printf("Notes: %s\n", *s.Notes)
		}

		if len(s.Sets) == 0 {
			return nil
		}

		names := make(map[uuid.UUID]string)
		fmt.Println("\nSets:")
		for _, set := range s.Sets {
			name, ok := names[set.ExerciseID]
			if !ok {
				name = shortID(set.ExerciseID)
				if e, err := repo.GetExercise(set.ExerciseID.String()); err == nil {
					name = e.Name
				}
				names[set.ExerciseID] = name
			}
			fmt.Printf("  %s %s %s\n", faint.Sprint(shortID(set.ID)), padRight(name, 20), describeSet(set))
		}
		return nil
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a session and its sets",
	Long: `Delete a session by its ID or ID prefix. All of its sets are deleted too.

CAUTION:

  There is no undo. If the prefix matches multiple sessions, an error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := repo.GetSession(args[0])
		if err != nil {
			return fmt.Errorf("session not found: %s", args[0])
		}
		if err := repo.DeleteSession(s.ID.String()); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}

		color.Yellow("✗ Deleted session")
		fmt.Printf("  %s %s %s\n", faint.Sprint(shortID(s.ID)), s.UserID, analytics.FormatDay(s.Date))
		return nil
	},
}

// describeSet renders a set's measurements on one line.
func describeSet(set models.WorkoutSet) string {
	switch {
	case set.Weight != nil && set.Reps != nil:
		line := fmt.Sprintf("%g %s x %d", *set.Weight, set.Unit, *set.Reps)
		if set.EstimatedOneRepMax != nil {
			line += faint.Sprintf("  (1RM %.1f)", *set.EstimatedOneRepMax)
		}
		return line
	case set.DistanceMeters != nil:
		line := fmt.Sprintf("%.2f km", *set.DistanceMeters/1000)
		if set.DurationSeconds != nil {
			line += fmt.Sprintf(" in %.1f min", *set.DurationSeconds/60)
		}
		if set.PaceSecondsPerKm != nil {
			line += faint.Sprintf("  (%s)", formatPace(*set.PaceSecondsPerKm))
		}
		return line
	default:
		return "-"
	}
}

func init() {
	sessionAddCmd.Flags().StringVar(&sessionDate, "date", "", "session day (YYYY-MM-DD, default today)")
	sessionAddCmd.Flags().IntVarP(&sessionDuration, "duration", "d", 0, "duration in minutes")
	sessionAddCmd.Flags().IntVarP(&sessionEffort, "effort", "e", 0, "perceived exertion 1-10")
	sessionAddCmd.Flags().StringVarP(&sessionNotes, "notes", "n", "", "session notes")

	sessionListCmd.Flags().StringVar(&sessionFrom, "from", "", "first day to include (YYYY-MM-DD)")
	sessionListCmd.Flags().StringVar(&sessionTo, "to", "", "last day to include (YYYY-MM-DD)")
	sessionListCmd.Flags().IntVarP(&sessionLimit, "limit", "n", 20, "max number of results")

	sessionCmd.AddCommand(sessionAddCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	rootCmd.AddCommand(sessionCmd)
}
