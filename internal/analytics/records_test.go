package analytics_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agranty/no-days-lost-sub000/internal/analytics"
)

func TestEstimateOneRepMax(t *testing.T) {
	assert.InDelta(t, 116.67, analytics.EstimateOneRepMax(100, 5), 0.01)
	assert.InDelta(t, 100*(1+1.0/30), analytics.EstimateOneRepMax(100, 1), 1e-9)
	assert.Zero(t, analytics.EstimateOneRepMax(0, 5))
	assert.Zero(t, analytics.EstimateOneRepMax(100, 0))
}

func TestProgressPercent_ZeroGuard(t *testing.T) {
	assert.Zero(t, analytics.ProgressPercent(0, 120))
	assert.Equal(t, 50.0, analytics.ProgressPercent(100, 150))
	assert.Equal(t, -10.0, analytics.ProgressPercent(100, 90))
}

func TestComputeStrengthProgress_TwoSessionScenario(t *testing.T) {
	exerciseID := uuid.New()
	progress := analytics.ComputeStrengthProgress(exerciseID, []analytics.StrengthSet{
		{Date: day("2024-01-08"), Weight: 105, Reps: 5},
		{Date: day("2024-01-01"), Weight: 100, Reps: 5},
	})

	require.Len(t, progress.Sessions, 2)
	assert.Equal(t, day("2024-01-01"), progress.Sessions[0].Date)
	assert.Equal(t, 116.7, progress.Sessions[0].EstimatedOneRepMax)
	assert.Equal(t, 122.5, progress.Sessions[1].EstimatedOneRepMax)
	assert.True(t, progress.Sessions[1].IsPR)
	assert.ElementsMatch(t, []analytics.PRKind{analytics.PROneRepMax, analytics.PRBestTopSet}, progress.Sessions[1].PRKinds)
	assert.Equal(t, 5.0, progress.ProgressPercent)
	assert.Equal(t, 122.5, progress.BestOneRepMax)
	assert.Equal(t, 525.0, progress.BestTopSetVolume)

	require.Len(t, progress.Records, 2)
	assert.Equal(t, analytics.PRRecord{
		ExerciseID: exerciseID,
		AchievedAt: day("2024-01-08"),
		Kind:       analytics.PROneRepMax,
		Value:      122.5,
	}, progress.Records[0])
	assert.Equal(t, analytics.PRBestTopSet, progress.Records[1].Kind)
	assert.Equal(t, 525.0, progress.Records[1].Value)
}

func TestComputeStrengthProgress_FirstSessionIsPR(t *testing.T) {
	progress := analytics.ComputeStrengthProgress(uuid.New(), []analytics.StrengthSet{
		{Date: day("2024-01-01"), Weight: 60, Reps: 8},
	})
	require.Len(t, progress.Sessions, 1)
	assert.True(t, progress.Sessions[0].IsPR)
	assert.Zero(t, progress.ProgressPercent)
}

func TestComputeStrengthProgress_TieIsNotPR(t *testing.T) {
	progress := analytics.ComputeStrengthProgress(uuid.New(), []analytics.StrengthSet{
		{Date: day("2024-01-01"), Weight: 100, Reps: 5},
		{Date: day("2024-01-03"), Weight: 100, Reps: 5},
	})
	require.Len(t, progress.Sessions, 2)
	assert.False(t, progress.Sessions[1].IsPR)
	assert.Empty(t, progress.Sessions[1].PRKinds)
	assert.Equal(t, day("2024-01-01"), progress.Records[0].AchievedAt)
}

func TestComputeStrengthProgress_TopSetVolumeAloneIsPR(t *testing.T) {
	progress := analytics.ComputeStrengthProgress(uuid.New(), []analytics.StrengthSet{
		{Date: day("2024-01-01"), Weight: 100, Reps: 5},
		{Date: day("2024-01-03"), Weight: 60, Reps: 10},
	})
	require.Len(t, progress.Sessions, 2)
	second := progress.Sessions[1]
	assert.True(t, second.IsPR)
	assert.Equal(t, []analytics.PRKind{analytics.PRBestTopSet}, second.PRKinds)
	assert.Equal(t, 116.7, progress.BestOneRepMax)
}

func TestComputeStrengthProgress_SessionMaxAcrossSets(t *testing.T) {
	progress := analytics.ComputeStrengthProgress(uuid.New(), []analytics.StrengthSet{
		{Date: day("2024-01-01"), Weight: 100, Reps: 3},
		{Date: day("2024-01-01"), Weight: 70, Reps: 6},
	})
	require.Len(t, progress.Sessions, 1)
	sess := progress.Sessions[0]
	// top set is by volume, 1RM is the best estimate from any set
	assert.Equal(t, 70.0, sess.TopSetWeight)
	assert.Equal(t, 6, sess.TopSetReps)
	assert.Equal(t, 420.0, sess.TopSetVolume)
	assert.Equal(t, 110.0, sess.EstimatedOneRepMax)
}

func TestComputeStrengthProgress_SkipsInvalidSets(t *testing.T) {
	progress := analytics.ComputeStrengthProgress(uuid.New(), []analytics.StrengthSet{
		{Date: day("2024-01-01"), Weight: 0, Reps: 5},
		{Date: day("2024-01-02"), Weight: 80, Reps: 0},
	})
	assert.Empty(t, progress.Sessions)
	assert.Empty(t, progress.Records)
	assert.Zero(t, progress.ProgressPercent)

	empty := analytics.ComputeStrengthProgress(uuid.New(), nil)
	assert.NotNil(t, empty.Sessions)
	assert.Empty(t, empty.Sessions)
}

func TestComputeStrengthProgress_PRIffStrictlyBeatsPrior(t *testing.T) {
	sets := []analytics.StrengthSet{
		{Date: day("2024-02-01"), Weight: 80, Reps: 8},
		{Date: day("2024-02-03"), Weight: 85, Reps: 5},
		{Date: day("2024-02-05"), Weight: 80, Reps: 8},
		{Date: day("2024-02-07"), Weight: 90, Reps: 3},
		{Date: day("2024-02-09"), Weight: 70, Reps: 12},
	}
	progress := analytics.ComputeStrengthProgress(uuid.New(), sets)
	require.Len(t, progress.Sessions, 5)

	var best1RM, bestVol float64
	for _, s := range progress.Sessions {
		want := s.EstimatedOneRepMax > best1RM || s.TopSetVolume > bestVol
		assert.Equal(t, want, s.IsPR, "session %s", s.Date.Format("2006-01-02"))
		if s.EstimatedOneRepMax > best1RM {
			best1RM = s.EstimatedOneRepMax
		}
		if s.TopSetVolume > bestVol {
			bestVol = s.TopSetVolume
		}
	}
}
