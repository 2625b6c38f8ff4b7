// ABOUTME: MCP tool implementations for the training log.
// ABOUTME: Logging tools write through storage, stats tools run the analytics views.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/agranty/no-days-lost-sub000/internal/analytics"
	"github.com/agranty/no-days-lost-sub000/internal/models"
)

func (s *Server) registerTools() {
	// log_session
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_session",
		Description: "Log a workout session for a day",
	}, s.handleLogSession)

	// add_strength_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_strength_set",
		Description: "Add a weight and reps set to a session",
	}, s.handleAddStrengthSet)

	// add_cardio_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_cardio_set",
		Description: "Add a distance and duration set to a session",
	}, s.handleAddCardioSet)

	// log_body_weight
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_body_weight",
		Description: "Record body weight for a day",
	}, s.handleLogBodyWeight)

	// list_sessions
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_sessions",
		Description: "List a user's sessions, most recent first",
	}, s.handleListSessions)

	// list_exercises
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List catalog exercises, optionally filtered by category",
	}, s.handleListExercises)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_streaks",
		Description: "Current and best daily and weekly training streaks",
	}, s.handleGetStreaks)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_exercise_progress",
		Description: "Per-session 1RM estimates and PRs for a strength exercise, or pace PRs for cardio",
	}, s.handleGetExerciseProgress)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_body_part_volume",
		Description: "Weekly volume per body part with distribution and insights",
	}, s.handleGetBodyPartVolume)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_calendar",
		Description: "Training heat map for a month with weekly summaries",
	}, s.handleGetCalendar)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_body_weight_trend",
		Description: "Body weight series deduplicated per day with rolling averages",
	}, s.handleGetBodyWeightTrend)
}

// Tool input/output types

type logSessionInput struct {
	User              string `json:"user,omitempty" jsonschema:"User identity, defaults to the configured user"`
	Date              string `json:"date,omitempty" jsonschema:"Session day as YYYY-MM-DD, defaults to today"`
	DurationMinutes   int    `json:"duration_minutes,omitempty" jsonschema:"Duration in minutes"`
	PerceivedExertion int    `json:"perceived_exertion,omitempty" jsonschema:"Perceived exertion from 1 to 10"`
	Notes             string `json:"notes,omitempty" jsonschema:"Session notes"`
}

type sessionOutput struct {
	ID      string `json:"id"`
	User    string `json:"user"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

type addStrengthSetInput struct {
	SessionID string  `json:"session_id" jsonschema:"Session ID or prefix"`
	Exercise  string  `json:"exercise" jsonschema:"Exercise name or ID prefix"`
	Weight    float64 `json:"weight" jsonschema:"Weight lifted"`
	Reps      int     `json:"reps" jsonschema:"Repetitions performed"`
	Unit      string  `json:"unit,omitempty" jsonschema:"kg or lb, defaults to kg"`
}

type addCardioSetInput struct {
	SessionID        string  `json:"session_id" jsonschema:"Session ID or prefix"`
	Exercise         string  `json:"exercise" jsonschema:"Exercise name or ID prefix"`
	DistanceMeters   float64 `json:"distance_meters" jsonschema:"Distance covered in meters"`
	DurationSeconds  float64 `json:"duration_seconds" jsonschema:"Elapsed time in seconds"`
	PaceSecondsPerKm float64 `json:"pace_seconds_per_km,omitempty" jsonschema:"Device-reported pace, derived from distance and duration when omitted"`
}

type setOutput struct {
	ID                 string   `json:"id"`
	Exercise           string   `json:"exercise"`
	EstimatedOneRepMax *float64 `json:"estimated_one_rep_max,omitempty"`
	PaceSecondsPerKm   *float64 `json:"pace_seconds_per_km,omitempty"`
	Message            string   `json:"message"`
}

type logBodyWeightInput struct {
	User   string  `json:"user,omitempty" jsonschema:"User identity, defaults to the configured user"`
	Date   string  `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
	Weight float64 `json:"weight" jsonschema:"Body weight"`
	Unit   string  `json:"unit,omitempty" jsonschema:"kg or lb, defaults to kg"`
	Notes  string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type bodyWeightOutput struct {
	ID      string  `json:"id"`
	Date    string  `json:"date"`
	Weight  float64 `json:"weight"`
	Unit    string  `json:"unit"`
	Message string  `json:"message"`
}

type listSessionsInput struct {
	User  string `json:"user,omitempty" jsonschema:"User identity, defaults to the configured user"`
	From  string `json:"from,omitempty" jsonschema:"First day to include (YYYY-MM-DD)"`
	To    string `json:"to,omitempty" jsonschema:"Last day to include (YYYY-MM-DD)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type listExercisesInput struct {
	Category string `json:"category,omitempty" jsonschema:"Filter by category (strength, cardio, mobility)"`
}

type userInput struct {
	User string `json:"user,omitempty" jsonschema:"User identity, defaults to the configured user"`
}

type exerciseProgressInput struct {
	User     string `json:"user,omitempty" jsonschema:"User identity, defaults to the configured user"`
	Exercise string `json:"exercise" jsonschema:"Exercise name or ID prefix"`
}

type calendarInput struct {
	User  string `json:"user,omitempty" jsonschema:"User identity, defaults to the configured user"`
	Month string `json:"month,omitempty" jsonschema:"Month as YYYY-MM, defaults to the current month"`
}

// Tool handlers

func (s *Server) handleLogSession(ctx context.Context, req *mcp.CallToolRequest, input logSessionInput) (*mcp.CallToolResult, sessionOutput, error) {
	user, err := s.resolveUser(input.User)
	if err != nil {
		return nil, sessionOutput{}, err
	}
	date, err := s.dayOrToday(input.Date)
	if err != nil {
		return nil, sessionOutput{}, err
	}

	sess := models.NewWorkoutSession(user, date)
	if input.DurationMinutes > 0 {
		sess.WithDuration(input.DurationMinutes)
	}
	if input.PerceivedExertion != 0 {
		sess.WithExertion(input.PerceivedExertion)
	}
	if input.Notes != "" {
		sess.WithNotes(input.Notes)
	}

	if err := s.repo.CreateSession(sess); err != nil {
		return nil, sessionOutput{}, fmt.Errorf("failed to create session: %w", err)
	}

	day := analytics.FormatDay(sess.Date)
	return nil, sessionOutput{
		ID:      sess.ID.String()[:8],
		User:    user,
		Date:    day,
		Message: fmt.Sprintf("Logged session for %s on %s (ID: %s)", user, day, sess.ID.String()[:8]),
	}, nil
}

func (s *Server) handleAddStrengthSet(ctx context.Context, req *mcp.CallToolRequest, input addStrengthSetInput) (*mcp.CallToolResult, setOutput, error) {
	if input.Weight < 0 {
		return nil, setOutput{}, fmt.Errorf("weight cannot be negative: %g", input.Weight)
	}
	if input.Reps <= 0 {
		return nil, setOutput{}, fmt.Errorf("reps must be positive: %d", input.Reps)
	}
	unit, err := models.ParseWeightUnit(input.Unit)
	if err != nil {
		return nil, setOutput{}, err
	}

	sess, ex, err := s.sessionAndExercise(input.SessionID, input.Exercise)
	if err != nil {
		return nil, setOutput{}, err
	}

	set := models.NewStrengthSet(sess.ID, ex.ID, input.Weight, unit, input.Reps)
	analytics.AnnotateSet(set)
	if err := s.repo.AddSet(set); err != nil {
		return nil, setOutput{}, fmt.Errorf("failed to add set: %w", err)
	}

	out := setOutput{
		ID:                 set.ID.String()[:8],
		Exercise:           ex.Name,
		EstimatedOneRepMax: set.EstimatedOneRepMax,
		Message:            fmt.Sprintf("Added %s: %g %s x %d", ex.Name, input.Weight, unit, input.Reps),
	}
	if set.EstimatedOneRepMax != nil {
		out.Message += fmt.Sprintf(" (est. 1RM %.1f %s)", *set.EstimatedOneRepMax, unit)
	}
	return nil, out, nil
}

func (s *Server) handleAddCardioSet(ctx context.Context, req *mcp.CallToolRequest, input addCardioSetInput) (*mcp.CallToolResult, setOutput, error) {
	if input.DistanceMeters <= 0 {
		return nil, setOutput{}, fmt.Errorf("distance must be positive: %g", input.DistanceMeters)
	}
	if input.DurationSeconds < 0 || input.PaceSecondsPerKm < 0 {
		return nil, setOutput{}, errors.New("duration and pace cannot be negative")
	}

	sess, ex, err := s.sessionAndExercise(input.SessionID, input.Exercise)
	if err != nil {
		return nil, setOutput{}, err
	}

	set := models.NewCardioSet(sess.ID, ex.ID, input.DistanceMeters, input.DurationSeconds)
	if input.PaceSecondsPerKm > 0 {
		set.WithPace(input.PaceSecondsPerKm)
	}
	analytics.AnnotateSet(set)
	if err := s.repo.AddSet(set); err != nil {
		return nil, setOutput{}, fmt.Errorf("failed to add set: %w", err)
	}

	return nil, setOutput{
		ID:               set.ID.String()[:8],
		Exercise:         ex.Name,
		PaceSecondsPerKm: set.PaceSecondsPerKm,
		Message:          fmt.Sprintf("Added %s: %.0f m in %.0f s", ex.Name, input.DistanceMeters, input.DurationSeconds),
	}, nil
}

func (s *Server) handleLogBodyWeight(ctx context.Context, req *mcp.CallToolRequest, input logBodyWeightInput) (*mcp.CallToolResult, bodyWeightOutput, error) {
	user, err := s.resolveUser(input.User)
	if err != nil {
		return nil, bodyWeightOutput{}, err
	}
	date, err := s.dayOrToday(input.Date)
	if err != nil {
		return nil, bodyWeightOutput{}, err
	}
	unit, err := models.ParseWeightUnit(input.Unit)
	if err != nil {
		return nil, bodyWeightOutput{}, err
	}

	b := models.NewBodyWeightLog(user, date, input.Weight, unit)
	if input.Notes != "" {
		b.WithNotes(input.Notes)
	}
	if err := s.repo.LogBodyWeight(b); err != nil {
		return nil, bodyWeightOutput{}, fmt.Errorf("failed to log body weight: %w", err)
	}

	day := analytics.FormatDay(b.Date)
	return nil, bodyWeightOutput{
		ID:      b.ID.String()[:8],
		Date:    day,
		Weight:  b.Weight,
		Unit:    string(unit),
		Message: fmt.Sprintf("Logged %.1f %s for %s on %s", b.Weight, unit, user, day),
	}, nil
}

func (s *Server) handleListSessions(ctx context.Context, req *mcp.CallToolRequest, input listSessionsInput) (*mcp.CallToolResult, any, error) {
	user, err := s.resolveUser(input.User)
	if err != nil {
		return nil, nil, err
	}
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var r models.DateRange
	if input.From != "" {
		from, err := analytics.ParseDay(input.From)
		if err != nil {
			return nil, nil, err
		}
		r.From = &from
	}
	if input.To != "" {
		to, err := analytics.ParseDay(input.To)
		if err != nil {
			return nil, nil, err
		}
		r.To = &to
	}

	sessions, err := s.repo.ListSessions(ctx, user, r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil, map[string]interface{}{"message": "No sessions found."}, nil
	}
	if len(sessions) > input.Limit {
		sessions = sessions[:input.Limit]
	}
	return nil, sessions, nil
}

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, any, error) {
	var category *models.Category
	if input.Category != "" {
		if !models.IsValidCategory(input.Category) {
			return nil, nil, fmt.Errorf("unknown category: %s", input.Category)
		}
		c := models.Category(strings.ToLower(input.Category))
		category = &c
	}

	exercises, err := s.repo.ListExercises(category)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	if len(exercises) == 0 {
		return nil, map[string]interface{}{"message": "No exercises found."}, nil
	}
	return nil, exercises, nil
}

func (s *Server) handleGetStreaks(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, analytics.StreakStats, error) {
	user, err := s.resolveUser(input.User)
	if err != nil {
		return nil, analytics.StreakStats{}, err
	}
	stats, err := s.svc.Streaks(ctx, user)
	if err != nil {
		return nil, analytics.StreakStats{}, err
	}
	return nil, stats, nil
}

func (s *Server) handleGetExerciseProgress(ctx context.Context, req *mcp.CallToolRequest, input exerciseProgressInput) (*mcp.CallToolResult, any, error) {
	user, err := s.resolveUser(input.User)
	if err != nil {
		return nil, nil, err
	}
	ex, err := s.repo.GetExercise(input.Exercise)
	if err != nil {
		return nil, nil, fmt.Errorf("exercise not found: %s", input.Exercise)
	}

	progress, err := s.svc.ExerciseProgress(ctx, user, ex.ID)
	if err != nil {
		return nil, nil, err
	}
	if progress.ExerciseName == "" {
		progress.ExerciseName = ex.Name
		progress.Category = ex.Category
	}
	return nil, progress, nil
}

func (s *Server) handleGetBodyPartVolume(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	user, err := s.resolveUser(input.User)
	if err != nil {
		return nil, nil, err
	}
	report, err := s.svc.BodyPartVolume(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return nil, report, nil
}

func (s *Server) handleGetCalendar(ctx context.Context, req *mcp.CallToolRequest, input calendarInput) (*mcp.CallToolResult, any, error) {
	user, err := s.resolveUser(input.User)
	if err != nil {
		return nil, nil, err
	}
	month := analytics.MonthStart(s.svc.Today())
	if input.Month != "" {
		if month, err = analytics.ParseMonth(input.Month); err != nil {
			return nil, nil, err
		}
	}

	view, err := s.svc.Calendar(ctx, user, month)
	if err != nil {
		return nil, nil, err
	}
	return nil, view, nil
}

func (s *Server) handleGetBodyWeightTrend(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	user, err := s.resolveUser(input.User)
	if err != nil {
		return nil, nil, err
	}
	trend, err := s.svc.BodyWeightTrend(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return nil, trend, nil
}

// sessionAndExercise resolves the two references every set tool needs.
func (s *Server) sessionAndExercise(sessionID, exercise string) (*models.WorkoutSession, *models.Exercise, error) {
	sess, err := s.repo.GetSession(sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("session not found: %s", sessionID)
	}
	ex, err := s.repo.GetExercise(exercise)
	if err != nil {
		return nil, nil, fmt.Errorf("exercise not found: %s", exercise)
	}
	return sess, ex, nil
}

func (s *Server) dayOrToday(value string) (time.Time, error) {
	if value == "" {
		return s.svc.Today(), nil
	}
	return analytics.ParseDay(value)
}
