package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdports/gridiron/go/internal/models"
)

func TestSeasonDatesOpenerIsThursday(t *testing.T) {
	for year := 2020; year <= 2035; year++ {
		dates := SeasonDates(year)
		assert.Equal(t, time.Thursday, dates.RegularSeasonStart.Weekday(), "year %d", year)
		assert.True(t, dates.RegularSeasonStart.Day() >= 4 && dates.RegularSeasonStart.Day() <= 10)
	}
}

func TestPhaseForDate(t *testing.T) {
	year := 2025
	dates := SeasonDates(year)

	tests := []struct {
		name string
		date time.Time
		want models.Phase
	}{
		{"new year's day", time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), models.PhaseOffseason},
		{"day before free agency", dates.FreeAgencyStart.AddDate(0, 0, -1), models.PhaseOffseason},
		{"free agency opens", dates.FreeAgencyStart, models.PhaseFreeAgency},
		{"draft opens", dates.DraftStart, models.PhaseDraft},
		{"camp opens", dates.TrainingCampStart, models.PhaseTrainingCamp},
		{"preseason", dates.PreseasonWeek1, models.PhasePreseason},
		{"opening night", dates.RegularSeasonStart, models.PhaseRegularSeason},
		{"mid november", time.Date(year, time.November, 15, 0, 0, 0, 0, time.UTC), models.PhaseRegularSeason},
		{"wild card", dates.WildCardStart, models.PhasePostseason},
		{"super bowl", dates.SuperBowl, models.PhasePostseason},
		{"day after super bowl", dates.SuperBowl.AddDate(0, 0, 1), models.PhaseOffseason},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PhaseForDate(tt.date, year))
		})
	}
}

func TestPhaseForDateIsTotal(t *testing.T) {
	// Walk an entire league year a day at a time; every date must map
	// to exactly one phase and transitions must be forward-only until
	// the wrap back to offseason.
	year := 2026
	d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		phase := PhaseForDate(d, year)
		require.NotEmpty(t, phase, "no phase for %s", d)
		d = AddDays(d, 1)
	}
}

func TestWeekForDate(t *testing.T) {
	year := 2025
	dates := SeasonDates(year)

	assert.Equal(t, 1, WeekForDate(dates.RegularSeasonStart, year))
	assert.Equal(t, 1, WeekForDate(dates.RegularSeasonStart.AddDate(0, 0, 6), year))
	assert.Equal(t, 2, WeekForDate(dates.RegularSeasonStart.AddDate(0, 0, 7), year))
	assert.Equal(t, 18, WeekForDate(dates.RegularSeasonStart.AddDate(0, 0, 17*7), year))
	// Clamped past the final week.
	assert.Equal(t, 18, WeekForDate(dates.RegularSeasonStart.AddDate(0, 0, 30*7), year))
	// Preseason dates clamp to week 1.
	assert.Equal(t, 1, WeekForDate(dates.PreseasonWeek1, year))
}

func TestTradeDeadlineFallsInWeekNine(t *testing.T) {
	for year := 2023; year <= 2030; year++ {
		dates := SeasonDates(year)
		assert.Equal(t, 9, WeekForDate(dates.TradeDeadline, year), "year %d", year)
		assert.Equal(t, time.Tuesday, dates.TradeDeadline.Weekday())
	}
}

func TestAddDaysNormalizesToMidnight(t *testing.T) {
	d := time.Date(2025, time.March, 1, 17, 30, 0, 0, time.UTC)
	got := AddDays(d, 3)
	assert.Equal(t, time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC), got)
}

func TestWeekStart(t *testing.T) {
	year := 2025
	dates := SeasonDates(year)
	assert.Equal(t, dates.RegularSeasonStart, WeekStart(year, 1))
	assert.Equal(t, dates.RegularSeasonStart.AddDate(0, 0, 7*8), WeekStart(year, 9))
}
