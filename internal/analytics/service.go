// ABOUTME: Fetch-then-aggregate service behind the CLI, HTTP API, and MCP tools.
// ABOUTME: Every view takes the user explicitly and is timed into prometheus.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/agranty/no-days-lost-sub000/internal/metrics"
	"github.com/agranty/no-days-lost-sub000/internal/models"
)

// ErrNoUser is returned when a view is requested without a user identity.
var ErrNoUser = errors.New("no user identity")

// Store is the read side the service needs from storage.
type Store interface {
	ListSessions(ctx context.Context, userID string, r models.DateRange) ([]*models.WorkoutSession, error)
	ListSetDetails(ctx context.Context, userID string, f models.SetFilter) ([]*models.SetDetail, error)
	ListBodyWeights(ctx context.Context, userID string, r models.DateRange) ([]*models.BodyWeightLog, error)
}

// Options tunes the aggregation windows and display units.
type Options struct {
	VolumeWeeks       int
	DistributionWeeks int
	Fallback          Bucket
	WeightUnit        models.WeightUnit
	WeightWindow      int
}

// DefaultOptions matches the defaults of each aggregator.
func DefaultOptions() Options {
	return Options{
		VolumeWeeks:       8,
		DistributionWeeks: 4,
		Fallback:          BucketOther,
		WeightUnit:        models.UnitKg,
		WeightWindow:      DefaultWeightWindow,
	}
}

// Service loads a user's history and runs one aggregator per call.
type Service struct {
	store Store
	opts  Options
	now   func() time.Time
	log   *logrus.Entry
}

// NewService creates a Service. A nil logger uses the standard logrus logger.
func NewService(store Store, opts Options, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		store: store,
		opts:  opts,
		now:   time.Now,
		log:   logger.WithField("component", "analytics"),
	}
}

// WithClock overrides the clock used for "today".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today returns the service's current calendar day.
func (s *Service) Today() time.Time {
	return Day(s.now())
}

// ExerciseProgress holds the strength or cardio history for one exercise.
// Both are nil when the exercise has no logged sets.
type ExerciseProgress struct {
	ExerciseID   uuid.UUID         `json:"exercise_id"`
	ExerciseName string            `json:"exercise_name,omitempty"`
	Category     models.Category   `json:"category,omitempty"`
	Strength     *StrengthProgress `json:"strength,omitempty"`
	Cardio       *CardioProgress   `json:"cardio,omitempty"`
}

// Streaks computes training streaks over all of the user's sessions.
func (s *Service) Streaks(ctx context.Context, userID string) (StreakStats, error) {
	var stats StreakStats
	err := s.observe(metrics.ViewStreaks, userID, func() error {
		sessions, err := s.store.ListSessions(ctx, userID, models.DateRange{})
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		dates := make([]time.Time, 0, len(sessions))
		for _, sess := range sessions {
			dates = append(dates, sess.Date)
		}
		stats = ComputeStreaks(dates, s.Today())
		return nil
	})
	return stats, err
}

// ExerciseProgress computes strength or cardio progression for an exercise,
// chosen by the exercise's category.
func (s *Service) ExerciseProgress(ctx context.Context, userID string, exerciseID uuid.UUID) (ExerciseProgress, error) {
	result := ExerciseProgress{ExerciseID: exerciseID}
	err := s.observe(metrics.ViewProgress, userID, func() error {
		details, err := s.store.ListSetDetails(ctx, userID, models.SetFilter{ExerciseID: &exerciseID})
		if err != nil {
			return fmt.Errorf("list sets: %w", err)
		}
		if len(details) == 0 {
			return nil
		}
		result.ExerciseName = details[0].ExerciseName
		result.Category = details[0].Category

		if result.Category == models.CategoryCardio {
			cardio := ComputeCardioProgress(exerciseID, cardioEfforts(details))
			result.Cardio = &cardio
			return nil
		}
		strength := ComputeStrengthProgress(exerciseID, strengthSets(details))
		result.Strength = &strength
		return nil
	})
	return result, err
}

// BodyPartVolume computes the weekly body part matrix ending with this week.
func (s *Service) BodyPartVolume(ctx context.Context, userID string) (VolumeReport, error) {
	opts := VolumeOptions{
		Weeks:             s.opts.VolumeWeeks,
		DistributionWeeks: s.opts.DistributionWeeks,
		Normalizer:        NewBodyPartNormalizer(s.opts.Fallback),
	}
	if opts.Weeks <= 0 {
		opts.Weeks = DefaultVolumeOptions().Weeks
	}
	today := s.Today()
	report := ComputeVolumeReport(nil, today, opts)

	err := s.observe(metrics.ViewVolume, userID, func() error {
		from := WeekStart(today).AddDate(0, 0, -7*(opts.Weeks-1))
		strength := models.CategoryStrength
		details, err := s.store.ListSetDetails(ctx, userID, models.SetFilter{
			Category: &strength,
			Range:    models.DateRange{From: &from},
		})
		if err != nil {
			return fmt.Errorf("list sets: %w", err)
		}

		sets := make([]VolumeSet, 0, len(details))
		for _, d := range details {
			if d.Weight == nil || d.Reps == nil {
				continue
			}
			sets = append(sets, VolumeSet{
				Date:     d.SessionDate,
				BodyPart: d.BodyPart,
				Weight:   d.Unit.ToKg(*d.Weight),
				Reps:     *d.Reps,
			})
		}
		report = ComputeVolumeReport(sets, today, opts)
		return nil
	})
	return report, err
}

// Calendar computes the heat map for month, fetching three extra weeks before
// the month so the weekly summaries have trailing context.
func (s *Service) Calendar(ctx context.Context, userID string, month time.Time) (CalendarView, error) {
	view := ComputeCalendar(nil, month)
	err := s.observe(metrics.ViewCalendar, userID, func() error {
		from := WeekStart(MonthStart(month)).AddDate(0, 0, -7*(summaryWeeks-1))
		to := MonthEnd(month)
		r := models.DateRange{From: &from, To: &to}

		sessions, err := s.store.ListSessions(ctx, userID, r)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		details, err := s.store.ListSetDetails(ctx, userID, models.SetFilter{Range: r})
		if err != nil {
			return fmt.Errorf("list sets: %w", err)
		}
		view = ComputeCalendar(calendarSessions(sessions, details, NewBodyPartNormalizer(s.opts.Fallback)), month)
		return nil
	})
	return view, err
}

// BodyWeightTrend computes the deduplicated body weight series.
func (s *Service) BodyWeightTrend(ctx context.Context, userID string) (WeightTrend, error) {
	trend := ComputeWeightTrend(nil, s.opts.WeightUnit, s.opts.WeightWindow)
	err := s.observe(metrics.ViewBodyWeight, userID, func() error {
		logs, err := s.store.ListBodyWeights(ctx, userID, models.DateRange{})
		if err != nil {
			return fmt.Errorf("list body weights: %w", err)
		}
		trend = ComputeWeightTrend(logs, s.opts.WeightUnit, s.opts.WeightWindow)
		return nil
	})
	return trend, err
}

func (s *Service) observe(view, userID string, fn func() error) error {
	if userID == "" {
		metrics.AnalyticsErrorsTotal.WithLabelValues(view).Inc()
		return fmt.Errorf("%s: %w", view, ErrNoUser)
	}

	timer := prometheus.NewTimer(metrics.AnalyticsDuration.WithLabelValues(view))
	err := fn()
	elapsed := timer.ObserveDuration()

	entry := s.log.WithFields(logrus.Fields{"view": view, "user": userID, "elapsed": elapsed})
	if err != nil {
		metrics.AnalyticsErrorsTotal.WithLabelValues(view).Inc()
		entry.WithError(err).Warn("analytics view failed")
		return fmt.Errorf("%s: %w", view, err)
	}
	entry.Debug("analytics view computed")
	return nil
}

func strengthSets(details []*models.SetDetail) []StrengthSet {
	out := make([]StrengthSet, 0, len(details))
	for _, d := range details {
		if d.Weight == nil || d.Reps == nil {
			continue
		}
		out = append(out, StrengthSet{
			Date:   d.SessionDate,
			Weight: d.Unit.ToKg(*d.Weight),
			Reps:   *d.Reps,
		})
	}
	return out
}

func cardioEfforts(details []*models.SetDetail) []CardioEffort {
	out := make([]CardioEffort, 0, len(details))
	for _, d := range details {
		if d.DistanceMeters == nil {
			continue
		}
		e := CardioEffort{
			Date:             d.SessionDate,
			DistanceMeters:   *d.DistanceMeters,
			PaceSecondsPerKm: d.PaceSecondsPerKm,
		}
		if d.DurationSeconds != nil {
			e.DurationSeconds = *d.DurationSeconds
		}
		out = append(out, e)
	}
	return out
}

// calendarSessions attaches each session's sets, volume in kilograms, and
// normalized body parts.
func calendarSessions(sessions []*models.WorkoutSession, details []*models.SetDetail, n BodyPartNormalizer) []CalendarSession {
	bySession := make(map[uuid.UUID][]*models.SetDetail, len(sessions))
	for _, d := range details {
		bySession[d.SessionID] = append(bySession[d.SessionID], d)
	}

	out := make([]CalendarSession, 0, len(sessions))
	for _, sess := range sessions {
		cs := CalendarSession{Date: sess.Date}
		if sess.DurationMinutes != nil {
			cs.DurationMinutes = *sess.DurationMinutes
		}
		seenPart := make(map[Bucket]bool)
		seenExercise := make(map[string]bool)
		for _, d := range bySession[sess.ID] {
			cs.SetCount++
			if d.Weight != nil && d.Reps != nil && *d.Weight > 0 && *d.Reps > 0 {
				cs.Volume += d.Unit.ToKg(*d.Weight) * float64(*d.Reps)
			}
			if d.BodyPart != "" {
				if b := n.Normalize(d.BodyPart); !seenPart[b] {
					seenPart[b] = true
					cs.BodyParts = append(cs.BodyParts, string(b))
				}
			}
			if !seenExercise[d.ExerciseName] {
				seenExercise[d.ExerciseName] = true
				cs.Exercises = append(cs.Exercises, d.ExerciseName)
			}
		}
		out = append(out, cs)
	}
	return out
}

// AnnotateSet fills the stored 1RM estimate for strength sets and the derived
// pace for cardio sets that lack one.
func AnnotateSet(set *models.WorkoutSet) {
	if set.IsStrength() {
		est := roundTo(EstimateOneRepMax(*set.Weight, *set.Reps), 1)
		set.EstimatedOneRepMax = &est
	}
	if set.IsCardio() && set.PaceSecondsPerKm == nil && set.DurationSeconds != nil && *set.DurationSeconds > 0 {
		pace := roundTo(*set.DurationSeconds/(*set.DistanceMeters/1000), 1)
		set.PaceSecondsPerKm = &pace
	}
}
