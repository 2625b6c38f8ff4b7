// ABOUTME: CLI commands rendering the analytics views.
// ABOUTME: streaks, progress, volume, calendar heat map, and body weight trend.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agranty/no-days-lost-sub000/internal/analytics"
)

var (
	statsJSON     bool
	calendarMonth string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Training analytics",
	Long: `Compute training analytics for the current user.

VIEWS:

  streaks    consecutive training days and Sunday-start weeks
  progress   per-session estimated 1RM and PRs, or cardio pace PRs
  volume     weekly weight x reps per body part, distribution, insights
  calendar   monthly heat map with intensity levels 0-4
  weight     body weight deduplicated per day with a rolling average

Add --json to print the raw view.`,
}

var statsStreaksCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Show training streaks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireUser()
		if err != nil {
			return err
		}
		stats, err := svc.Streaks(cmd.Context(), user)
		if err != nil {
			return err
		}
		if statsJSON {
			return printJSON(stats)
		}

		bold := color.New(color.Bold)
		fmt.Printf("Daily streak:  %s days %s\n", bold.Sprint(stats.CurrentDaily), faint.Sprintf("(best %d)", stats.BestDaily))
		fmt.Printf("Weekly streak: %s weeks %s\n", bold.Sprint(stats.CurrentWeekly), faint.Sprintf("(best %d)", stats.BestWeekly))
		return nil
	},
}

var statsProgressCmd = &cobra.Command{
	Use:   "progress <exercise>",
	Short: "Show progress and PRs for an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireUser()
		if err != nil {
			return err
		}
		e, err := repo.GetExercise(args[0])
		if err != nil {
			return fmt.Errorf("exercise not found: %s", args[0])
		}

		progress, err := svc.ExerciseProgress(cmd.Context(), user, e.ID)
		if err != nil {
			return err
		}
		if progress.ExerciseName == "" {
			progress.ExerciseName = e.Name
			progress.Category = e.Category
		}
		if statsJSON {
			return printJSON(progress)
		}

		color.New(color.Bold).Println(progress.ExerciseName)
		switch {
		case progress.Strength != nil:
			printStrength(progress.Strength)
		case progress.Cardio != nil:
			printCardio(progress.Cardio)
		default:
			fmt.Println("No sets logged yet.")
		}
		return nil
	},
}

func printStrength(p *analytics.StrengthProgress) {
	pr := color.New(color.FgYellow, color.Bold)
	for _, s := range p.Sessions {
		marker := ""
		if s.IsPR {
			marker = pr.Sprint("  ★ PR")
		}
		fmt.Printf("  %s  %s  1RM %s%s\n",
			analytics.FormatDay(s.Date),
			padRight(fmt.Sprintf("%g x %d", s.TopSetWeight, s.TopSetReps), 12),
			padLeft(fmt.Sprintf("%.1f", s.EstimatedOneRepMax), 6),
			marker)
	}
	fmt.Printf("\nBest 1RM: %.1f kg  Best top set: %.0f kg  Progress: %+.1f%%\n",
		p.BestOneRepMax, p.BestTopSetVolume, p.ProgressPercent)
}

func printCardio(p *analytics.CardioProgress) {
	pr := color.New(color.FgYellow, color.Bold)
	for _, s := range p.Sessions {
		marker := ""
		if kind, ok := s.PrimaryPR(); ok {
			marker = pr.Sprintf("  ★ %s", strings.ReplaceAll(string(kind), "_", " "))
		}
		fmt.Printf("  %s  %6.2f km  %6.1f min  %s%s\n",
			analytics.FormatDay(s.Date),
			s.DistanceKm,
			s.DurationMinutes,
			formatPace(s.PaceSecondsPerKm),
			marker)
	}
	fmt.Printf("\nFastest mile: %s  Fastest 5K: %s  Longest: %.2f km\n",
		formatPace(p.FastestMilePace), formatPace(p.Fastest5KPace), p.LongestDistanceKm)
}

var statsVolumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Show weekly volume per body part",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireUser()
		if err != nil {
			return err
		}
		report, err := svc.BodyPartVolume(cmd.Context(), user)
		if err != nil {
			return err
		}
		if statsJSON {
			return printJSON(report)
		}

		header := padRight("Week of", 12)
		for _, b := range report.Buckets {
			header += padLeft(string(b), 10)
		}
		fmt.Println(faint.Sprint(header + padLeft("total", 10)))
		for _, w := range report.Weeks {
			row := padRight(analytics.FormatDay(w.WeekStart), 12)
			for _, b := range report.Buckets {
				row += padLeft(fmt.Sprintf("%.0f", w.Volumes[b]), 10)
			}
			fmt.Println(row + padLeft(fmt.Sprintf("%.0f", w.Total), 10))
		}

		if len(report.Distribution) > 0 {
			fmt.Println("\nDistribution:")
			for _, share := range report.Distribution {
				fmt.Printf("  %s %3d%% %s\n", padRight(string(share.Bucket), 10), share.Percent, strings.Repeat("█", share.Percent/5))
			}
		}
		if len(report.Insights) > 0 {
			fmt.Println("\nInsights:")
			for _, insight := range report.Insights {
				fmt.Printf("  • %s\n", insight)
			}
		}
		return nil
	},
}

var statsCalendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a monthly training heat map",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireUser()
		if err != nil {
			return err
		}
		month := analytics.MonthStart(svc.Today())
		if calendarMonth != "" {
			if month, err = analytics.ParseMonth(calendarMonth); err != nil {
				return fmt.Errorf("invalid month: %s (use YYYY-MM)", calendarMonth)
			}
		}

		view, err := svc.Calendar(cmd.Context(), user, month)
		if err != nil {
			return err
		}
		if statsJSON {
			return printJSON(view)
		}

		printCalendar(view, month)
		return nil
	},
}

var levelColors = []*color.Color{
	color.New(color.Faint),
	color.New(color.FgGreen),
	color.New(color.FgHiGreen),
	color.New(color.FgBlack, color.BgGreen),
	color.New(color.FgBlack, color.BgHiGreen),
}

func printCalendar(view analytics.CalendarView, month time.Time) {
	levels := make(map[string]int, len(view.Days))
	for _, d := range view.Days {
		levels[analytics.FormatDay(d.Date)] = d.Level
	}

	color.New(color.Bold).Println(month.Format("January 2006"))
	fmt.Println(faint.Sprint("Su Mo Tu We Th Fr Sa"))

	end := analytics.MonthEnd(month)
	for day := analytics.WeekStart(month); !day.After(end); day = day.AddDate(0, 0, 1) {
		cell := "  "
		if day.Month() == month.Month() {
			cell = levelColors[levels[analytics.FormatDay(day)]].Sprintf("%2d", day.Day())
		}
		if day.Weekday() == time.Saturday || day.Equal(end) {
			fmt.Println(cell)
		} else {
			fmt.Print(cell + " ")
		}
	}

	if len(view.Weeks) > 0 {
		fmt.Println("\nRecent weeks:")
		for _, w := range view.Weeks {
			fmt.Printf("  %s  %d sessions  %3d sets  %8.0f kg\n",
				analytics.FormatDay(w.WeekStart), w.Sessions, w.Sets, w.Volume)
		}
	}
}

var statsWeightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Show the body weight trend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := requireUser()
		if err != nil {
			return err
		}
		trend, err := svc.BodyWeightTrend(cmd.Context(), user)
		if err != nil {
			return err
		}
		if statsJSON {
			return printJSON(trend)
		}
		if len(trend.Points) == 0 {
			fmt.Println("No body weight entries found.")
			return nil
		}

		for _, p := range trend.Points {
			fmt.Printf("  %s  %7.2f %s  %s\n",
				analytics.FormatDay(p.Date), p.Weight, trend.Unit,
				faint.Sprintf("avg %.2f", p.RollingAverage))
		}
		change := color.New(color.FgGreen)
		if trend.Change > 0 {
			change = color.New(color.FgYellow)
		}
		fmt.Printf("\nLatest: %.2f %s  Change: %s\n",
			trend.Latest.Weight, trend.Unit, change.Sprintf("%+.2f %s", trend.Change, trend.Unit))
		return nil
	},
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	statsCmd.PersistentFlags().BoolVar(&statsJSON, "json", false, "print the view as JSON")
	statsCalendarCmd.Flags().StringVarP(&calendarMonth, "month", "m", "", "month (YYYY-MM, default current)")

	statsCmd.AddCommand(statsStreaksCmd)
	statsCmd.AddCommand(statsProgressCmd)
	statsCmd.AddCommand(statsVolumeCmd)
	statsCmd.AddCommand(statsCalendarCmd)
	statsCmd.AddCommand(statsWeightCmd)
	rootCmd.AddCommand(statsCmd)
}
