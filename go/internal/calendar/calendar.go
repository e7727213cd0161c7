// Package calendar maps in-world dates onto season phases and weeks.
// Every function is pure; all other engine components derive phase and
// week state through this package rather than tracking it themselves.
package calendar

import (
	"time"

	"github.com/jdports/gridiron/go/internal/models"
)

// RegularSeasonWeeks is the number of scheduled league weeks.
const RegularSeasonWeeks = 18

// Dates holds the landmark dates of one league year. All values are
// UTC midnights; the league year for season N runs from the offseason
// of calendar year N into the postseason of calendar year N+1.
type Dates struct {
	FreeAgencyStart    time.Time
	DraftStart         time.Time
	TrainingCampStart  time.Time
	PreseasonWeek1     time.Time
	RegularSeasonStart time.Time
	TradeDeadline      time.Time
	WildCardStart      time.Time
	SuperBowl          time.Time
}

// SeasonDates computes the landmark dates for a season year.
// The regular season opens on the first Thursday on or after September 4;
// weeks run Thursday through Wednesday from there.
func SeasonDates(year int) Dates {
	faStart := date(year, time.March, 12)
	draftStart := date(year, time.April, 24)
	campStart := date(year, time.July, 22)
	preseason := date(year, time.August, 8)

	rsStart := date(year, time.September, 4)
	for rsStart.Weekday() != time.Thursday {
		rsStart = rsStart.AddDate(0, 0, 1)
	}

	// Deadline is the Tuesday of week 9.
	deadline := rsStart.AddDate(0, 0, 8*7+5)
	// Wild card weekend opens the Saturday after week 18 closes.
	wildCard := rsStart.AddDate(0, 0, RegularSeasonWeeks*7+2)
	superBowl := wildCard.AddDate(0, 0, 29)

	return Dates{
		FreeAgencyStart:    faStart,
		DraftStart:         draftStart,
		TrainingCampStart:  campStart,
		PreseasonWeek1:     preseason,
		RegularSeasonStart: rsStart,
		TradeDeadline:      deadline,
		WildCardStart:      wildCard,
		SuperBowl:          superBowl,
	}
}

// PhaseForDate maps a date to the season phase it falls in for the
// given season year. The mapping is total: every date yields exactly
// one phase. Dates past the Super Bowl (or before free agency opens)
// are the offseason.
func PhaseForDate(d time.Time, year int) models.Phase {
	dates := SeasonDates(year)
	day := truncate(d)

	switch {
	case day.Before(dates.FreeAgencyStart):
		return models.PhaseOffseason
	case day.Before(dates.DraftStart):
		return models.PhaseFreeAgency
	case day.Before(dates.TrainingCampStart):
		return models.PhaseDraft
	case day.Before(dates.PreseasonWeek1):
		return models.PhaseTrainingCamp
	case day.Before(dates.RegularSeasonStart):
		return models.PhasePreseason
	case day.Before(dates.WildCardStart):
		return models.PhaseRegularSeason
	case !day.After(dates.SuperBowl):
		return models.PhasePostseason
	default:
		return models.PhaseOffseason
	}
}

// WeekForDate maps a date to the league week it falls in, clamped to
// [1, RegularSeasonWeeks]. Dates before the opener report week 1.
func WeekForDate(d time.Time, year int) int {
	dates := SeasonDates(year)
	day := truncate(d)
	if day.Before(dates.RegularSeasonStart) {
		return 1
	}
	week := int(day.Sub(dates.RegularSeasonStart).Hours()/24/7) + 1
	if week > RegularSeasonWeeks {
		return RegularSeasonWeeks
	}
	return week
}

// WeekStart returns the Thursday a league week opens on.
func WeekStart(year, week int) time.Time {
	return SeasonDates(year).RegularSeasonStart.AddDate(0, 0, (week-1)*7)
}

// AddDays advances a date by n calendar days, preserving UTC midnight.
func AddDays(d time.Time, n int) time.Time {
	return truncate(d).AddDate(0, 0, n)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func truncate(d time.Time) time.Time {
	y, m, dd := d.UTC().Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}
