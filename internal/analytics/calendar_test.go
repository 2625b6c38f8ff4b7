package analytics_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agranty/no-days-lost-sub000/internal/analytics"
)

func TestIntensityLevel(t *testing.T) {
	tests := []struct {
		volume, max float64
		want        int
	}{
		{1000, 1000, 4},
		{800, 1000, 4},
		{799, 1000, 3},
		{600, 1000, 3},
		{400, 1000, 2},
		{200, 1000, 1},
		{199, 1000, 0},
		{0, 1000, 0},
		{0, 0, 0},
		{0.5, 0, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, analytics.IntensityLevel(tt.volume, tt.max), "volume %v max %v", tt.volume, tt.max)
	}
}

func TestComputeCalendar(t *testing.T) {
	sessions := []analytics.CalendarSession{
		{Date: day("2024-02-14"), SetCount: 1, Volume: 50},
		{Date: day("2024-02-28"), SetCount: 3, Volume: 300},
		{Date: day("2024-03-04"), DurationMinutes: 45, SetCount: 4, Volume: 600, BodyParts: []string{"chest"}, Exercises: []string{"Bench Press"}},
		{Date: day("2024-03-04"), DurationMinutes: 30, SetCount: 2, Volume: 400, BodyParts: []string{"back"}, Exercises: []string{"Row", "Bench Press"}},
		{Date: day("2024-03-06"), SetCount: 5, Volume: 500},
		{Date: day("2024-03-20"), SetCount: 1, Volume: 100},
		{Date: day("2024-03-25"), DurationMinutes: 30, SetCount: 2},
	}

	view := analytics.ComputeCalendar(sessions, day("2024-03-15"))

	assert.Equal(t, "2024-03", view.Month)
	assert.Equal(t, 1000.0, view.MaxVolume)
	require.Len(t, view.Days, 4)

	mar4 := view.Days[0]
	assert.Equal(t, day("2024-03-04"), mar4.Date)
	assert.Equal(t, 2, mar4.Sessions)
	assert.Equal(t, 1000.0, mar4.Volume)
	assert.Equal(t, 75, mar4.DurationMinutes)
	assert.Equal(t, 6, mar4.SetCount)
	assert.Equal(t, []string{"back", "chest"}, mar4.BodyParts)
	assert.Equal(t, 2, mar4.ExerciseCount)
	assert.Equal(t, 4, mar4.Level)

	assert.Equal(t, 2, view.Days[1].Level)
	assert.Equal(t, 0, view.Days[2].Level)
	assert.Equal(t, 0, view.Days[3].Level)

	assert.Equal(t, []analytics.WeekSummary{
		{WeekStart: day("2024-02-25"), Sessions: 1, Sets: 3, Volume: 300},
		{WeekStart: day("2024-03-03"), Sessions: 2, Sets: 11, Volume: 1500},
		{WeekStart: day("2024-03-17"), Sessions: 1, Sets: 1, Volume: 100},
		{WeekStart: day("2024-03-24"), Sessions: 1, Sets: 2, Volume: 0},
	}, view.Weeks)
}

func TestComputeCalendar_Empty(t *testing.T) {
	view := analytics.ComputeCalendar(nil, day("2024-03-01"))
	assert.Equal(t, 1.0, view.MaxVolume)
	assert.Empty(t, view.Days)
	assert.Empty(t, view.Weeks)
}

func TestComputeCalendar_LevelsMonotonicInVolume(t *testing.T) {
	f := gofakeit.New(3)
	month := day("2024-05-01")

	for i := 0; i < 50; i++ {
		var sessions []analytics.CalendarSession
		n := f.Number(1, 25)
		for j := 0; j < n; j++ {
			sessions = append(sessions, analytics.CalendarSession{
				Date:   month.AddDate(0, 0, f.Number(0, 30)),
				Volume: float64(f.Number(0, 5000)),
			})
		}
		view := analytics.ComputeCalendar(sessions, month)
		for _, a := range view.Days {
			assert.GreaterOrEqual(t, a.Level, 0)
			assert.LessOrEqual(t, a.Level, 4)
			for _, b := range view.Days {
				if a.Volume > b.Volume {
					assert.GreaterOrEqual(t, a.Level, b.Level)
				}
			}
		}
	}
}
