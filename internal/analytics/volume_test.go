package analytics_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agranty/no-days-lost-sub000/internal/analytics"
)

func TestBodyPartNormalizer_Normalize(t *testing.T) {
	n := analytics.NewBodyPartNormalizer("")

	tests := map[string]analytics.Bucket{
		"Chest":         analytics.BucketChest,
		"Pectorals":     analytics.BucketChest,
		"Lats":          analytics.BucketBack,
		"Upper Back":    analytics.BucketBack,
		"Traps":         analytics.BucketBack,
		"Quadriceps":    analytics.BucketLegs,
		"Hamstrings":    analytics.BucketLegs,
		"Glutes":        analytics.BucketLegs,
		"Calves":        analytics.BucketLegs,
		"Hip Abductors": analytics.BucketLegs,
		"Biceps":        analytics.BucketArms,
		"Triceps":       analytics.BucketArms,
		"Forearms":      analytics.BucketArms,
		"Rear Delts":    analytics.BucketShoulders,
		"Shoulders":     analytics.BucketShoulders,
		"Abs":           analytics.BucketCore,
		"Obliques":      analytics.BucketCore,
		"Core":          analytics.BucketCore,
		"Neck":          analytics.BucketOther,
		"":              analytics.BucketOther,
	}
	for raw, want := range tests {
		assert.Equal(t, want, n.Normalize(raw), "raw %q", raw)
	}
}

func TestBodyPartNormalizer_LegacyArmsFallback(t *testing.T) {
	n := analytics.NewBodyPartNormalizer(analytics.BucketArms)
	assert.Equal(t, analytics.BucketArms, n.Normalize("Neck"))
	assert.Len(t, n.Buckets(), 6)
	assert.NotContains(t, n.Buckets(), analytics.BucketOther)

	other := analytics.NewBodyPartNormalizer(analytics.BucketOther)
	assert.Len(t, other.Buckets(), 7)
}

func TestParseBucket(t *testing.T) {
	b, err := analytics.ParseBucket(" Legs ")
	require.NoError(t, err)
	assert.Equal(t, analytics.BucketLegs, b)

	b, err = analytics.ParseBucket("other")
	require.NoError(t, err)
	assert.Equal(t, analytics.BucketOther, b)

	_, err = analytics.ParseBucket("neck")
	assert.Error(t, err)
}

func TestComputeVolumeReport(t *testing.T) {
	// 2024-03-10 is a Sunday; the 8-week window starts 2024-01-21
	today := day("2024-03-13")
	sets := []analytics.VolumeSet{
		{Date: day("2024-03-11"), BodyPart: "Chest", Weight: 100, Reps: 10},
		{Date: day("2024-03-12"), BodyPart: "Lats", Weight: 50, Reps: 10},
		{Date: day("2024-03-11"), BodyPart: "Neck", Weight: 20, Reps: 10},
		{Date: day("2024-03-04"), BodyPart: "Quadriceps", Weight: 100, Reps: 5},
		{Date: day("2024-03-04"), BodyPart: "Forearms", Weight: 10, Reps: 10},
		{Date: day("2024-03-05"), BodyPart: "Chest", Weight: 0, Reps: 10},
		{Date: day("2024-01-01"), BodyPart: "Chest", Weight: 500, Reps: 10},
	}

	report := analytics.ComputeVolumeReport(sets, today, analytics.DefaultVolumeOptions())

	require.Len(t, report.Weeks, 8)
	assert.Equal(t, day("2024-01-21"), report.Weeks[0].WeekStart)
	assert.Equal(t, day("2024-03-10"), report.Weeks[7].WeekStart)
	for _, w := range report.Weeks {
		assert.Len(t, w.Volumes, 7, "every bucket present in week %s", w.WeekStart)
	}

	current := report.Weeks[7]
	assert.Equal(t, 1000.0, current.Volumes[analytics.BucketChest])
	assert.Equal(t, 500.0, current.Volumes[analytics.BucketBack])
	assert.Equal(t, 200.0, current.Volumes[analytics.BucketOther])
	assert.Zero(t, current.Volumes[analytics.BucketLegs])
	assert.Equal(t, 1700.0, current.Total)

	previous := report.Weeks[6]
	assert.Equal(t, 500.0, previous.Volumes[analytics.BucketLegs])
	assert.Equal(t, 100.0, previous.Volumes[analytics.BucketArms])

	assert.Equal(t, []analytics.BucketShare{
		{Bucket: analytics.BucketChest, Volume: 1000, Percent: 43},
		{Bucket: analytics.BucketBack, Volume: 500, Percent: 22},
		{Bucket: analytics.BucketLegs, Volume: 500, Percent: 22},
		{Bucket: analytics.BucketOther, Volume: 200, Percent: 9},
		{Bucket: analytics.BucketArms, Volume: 100, Percent: 4},
	}, report.Distribution)

	assert.Equal(t, []string{
		"Legs volume is down 100% from last week.",
		"Arms volume is down 100% from last week.",
		"Chest makes up 43% of your recent volume; consider balancing other body parts.",
	}, report.Insights)
}

func TestComputeVolumeReport_Empty(t *testing.T) {
	report := analytics.ComputeVolumeReport(nil, day("2024-03-13"), analytics.VolumeOptions{})
	assert.Len(t, report.Weeks, 8)
	assert.Empty(t, report.Distribution)
	assert.Equal(t, []string{analytics.EncouragementInsight}, report.Insights)
}

func TestVolumeInsights_WellBalanced(t *testing.T) {
	dist := []analytics.BucketShare{
		{Bucket: analytics.BucketChest, Percent: 25},
		{Bucket: analytics.BucketBack, Percent: 25},
		{Bucket: analytics.BucketLegs, Percent: 25},
		{Bucket: analytics.BucketArms, Percent: 25},
	}
	insights := analytics.VolumeInsights(nil, dist, analytics.Buckets)
	assert.Equal(t, []string{"Your training is well-balanced across body parts."}, insights)
}

func TestVolumeInsights_WeekOverWeekIncrease(t *testing.T) {
	weeks := []analytics.WeeklyVolume{
		{Volumes: map[analytics.Bucket]float64{analytics.BucketBack: 1000, analytics.BucketChest: 1000}},
		{Volumes: map[analytics.Bucket]float64{analytics.BucketBack: 1250, analytics.BucketChest: 1100}},
	}
	insights := analytics.VolumeInsights(weeks, nil, analytics.Buckets)
	assert.Equal(t, []string{"Back volume is up 25% from last week."}, insights)
}

func TestComputeVolumeReport_DistributionSumsToHundred(t *testing.T) {
	f := gofakeit.New(99)
	today := day("2024-03-13")
	parts := []string{"Chest", "Lats", "Quads", "Biceps", "Delts", "Abs", "Neck"}

	for i := 0; i < 100; i++ {
		var sets []analytics.VolumeSet
		n := f.Number(1, 40)
		for j := 0; j < n; j++ {
			sets = append(sets, analytics.VolumeSet{
				Date:     today.AddDate(0, 0, -f.Number(0, 20)),
				BodyPart: parts[f.Number(0, len(parts)-1)],
				Weight:   float64(f.Number(1, 200)),
				Reps:     f.Number(1, 15),
			})
		}
		report := analytics.ComputeVolumeReport(sets, today, analytics.DefaultVolumeOptions())

		sum := 0
		for k, share := range report.Distribution {
			assert.Positive(t, share.Percent)
			if k > 0 {
				assert.LessOrEqual(t, share.Percent, report.Distribution[k-1].Percent)
			}
			sum += share.Percent
		}
		assert.InDelta(t, 100, sum, float64(len(report.Buckets)))
		assert.NotEmpty(t, report.Insights)
	}
}
