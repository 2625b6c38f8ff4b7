package analytics_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agranty/no-days-lost-sub000/internal/analytics"
)

func TestCardioEffort_Pace(t *testing.T) {
	supplied := 275.0
	assert.Equal(t, 300.0, analytics.CardioEffort{DistanceMeters: 2000, DurationSeconds: 600}.Pace())
	assert.Equal(t, 275.0, analytics.CardioEffort{DistanceMeters: 2000, DurationSeconds: 600, PaceSecondsPerKm: &supplied}.Pace())
	assert.Zero(t, analytics.CardioEffort{DistanceMeters: 2000}.Pace())
}

func TestComputeCardioProgress(t *testing.T) {
	exerciseID := uuid.New()
	supplied := 280.0
	efforts := []analytics.CardioEffort{
		// deliberately out of order
		{Date: day("2024-01-05"), DistanceMeters: 5000, DurationSeconds: 1600},
		{Date: day("2024-01-01"), DistanceMeters: 2000, DurationSeconds: 600},
		{Date: day("2024-01-09"), DistanceMeters: 1000, DurationSeconds: 240},
		{Date: day("2024-01-12"), DistanceMeters: 1600, DurationSeconds: 600, PaceSecondsPerKm: &supplied},
		{Date: day("2024-01-15"), DistanceMeters: 0, DurationSeconds: 300},
		{Date: day("2024-01-20"), DistanceMeters: 10000, DurationSeconds: 2700},
	}

	progress := analytics.ComputeCardioProgress(exerciseID, efforts)
	require.Len(t, progress.Sessions, 5, "zero-distance effort is skipped")

	// 2000 m at 300 s/km: first effort takes mile and longest
	first := progress.Sessions[0]
	assert.Equal(t, []analytics.PRKind{analytics.PRFastestMile, analytics.PRLongestDistance}, first.PRKinds)
	primary, ok := first.PrimaryPR()
	require.True(t, ok)
	assert.Equal(t, analytics.PRFastestMile, primary)

	// 5000 m at 320 s/km: slower mile, first 5K, longer distance
	second := progress.Sessions[1]
	assert.Equal(t, []analytics.PRKind{analytics.PRFastest5K, analytics.PRLongestDistance}, second.PRKinds)
	primary, _ = second.PrimaryPR()
	assert.Equal(t, analytics.PRFastest5K, primary)

	// 1000 m is below the mile threshold and not the longest
	third := progress.Sessions[2]
	assert.False(t, third.IsPR())
	_, ok = third.PrimaryPR()
	assert.False(t, ok)
	assert.Equal(t, 240.0, third.PaceSecondsPerKm)

	// supplied pace wins over the derived 375 s/km
	fourth := progress.Sessions[3]
	assert.Equal(t, []analytics.PRKind{analytics.PRFastestMile}, fourth.PRKinds)
	assert.Equal(t, 280.0, fourth.PaceSecondsPerKm)

	// 10 km at 270 s/km takes all three at once
	fifth := progress.Sessions[4]
	assert.Equal(t, []analytics.PRKind{analytics.PRFastestMile, analytics.PRFastest5K, analytics.PRLongestDistance}, fifth.PRKinds)
	primary, _ = fifth.PrimaryPR()
	assert.Equal(t, analytics.PRFastestMile, primary)

	assert.Equal(t, 270.0, progress.FastestMilePace)
	assert.Equal(t, 270.0, progress.Fastest5KPace)
	assert.Equal(t, 10.0, progress.LongestDistanceKm)

	require.Len(t, progress.Records, 3)
	for _, r := range progress.Records {
		assert.Equal(t, exerciseID, r.ExerciseID)
		assert.Equal(t, day("2024-01-20"), r.AchievedAt)
	}
}

func TestComputeCardioProgress_Empty(t *testing.T) {
	progress := analytics.ComputeCardioProgress(uuid.New(), nil)
	assert.Empty(t, progress.Sessions)
	assert.Empty(t, progress.Records)
	assert.Zero(t, progress.FastestMilePace)
}

func TestComputeCardioProgress_ShortEffortsHaveNoPaceRecords(t *testing.T) {
	progress := analytics.ComputeCardioProgress(uuid.New(), []analytics.CardioEffort{
		{Date: day("2024-01-01"), DistanceMeters: 800, DurationSeconds: 180},
	})
	require.Len(t, progress.Records, 1)
	assert.Equal(t, analytics.PRLongestDistance, progress.Records[0].Kind)
	assert.Equal(t, 0.8, progress.Records[0].Value)
	assert.Zero(t, progress.FastestMilePace)
}
