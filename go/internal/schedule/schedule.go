// Package schedule builds a full league season: 272 matchups, bye
// weeks, and a week/date assignment that satisfies the league format.
package schedule

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jdports/gridiron/go/internal/calendar"
	"github.com/jdports/gridiron/go/internal/models"
)

const (
	// TotalGames is the league-wide game count: 32 teams x 17 games / 2.
	TotalGames = 272
	// GamesPerTeam is each team's schedule length.
	GamesPerTeam = 17
	// ByeWeekFirst and ByeWeekLast bound the bye window.
	ByeWeekFirst = 6
	ByeWeekLast  = 13
	// TeamsOnByePerWeek is how many teams rest in each bye week.
	TeamsOnByePerWeek = 4

	weekCapacity    = 16
	byeWeekCapacity = 14

	// maxPlacementAttempts bounds the randomized-restart search.
	maxPlacementAttempts = 2000
)

// ErrUnsatisfiable is returned when the placement search exhausts its
// retry budget without finding a legal week assignment.
var ErrUnsatisfiable = errors.New("schedule: placement search exhausted retry budget")

// Result is a generated season schedule.
type Result struct {
	Games    []models.Game
	ByeWeeks []models.ByeWeek
}

// Generate produces a complete season schedule for the 32 league teams.
// Previous standings, when provided, drive the rank-based matchups;
// without them divisions fall back to a stable name ordering.
func Generate(teams []models.Team, seasonID uuid.UUID, year int, prev []models.TeamStanding, rng *rand.Rand) (*Result, error) {
	league, err := newLeague(teams, prev)
	if err != nil {
		return nil, err
	}

	matchups := buildMatchups(league, year)
	if len(matchups) != TotalGames {
		return nil, fmt.Errorf("schedule: built %d matchups, want %d", len(matchups), TotalGames)
	}

	byes := assignByes(league, rng)

	weeks, err := assignWeeks(matchups, byes, rng)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Games:    buildGames(league, weeks, seasonID, year, rng),
		ByeWeeks: buildByeWeeks(byes, seasonID),
	}
	if err := Validate(result, teams); err != nil {
		return nil, fmt.Errorf("schedule: generated schedule failed validation: %w", err)
	}
	return result, nil
}

// Validate checks the structural invariants of a generated schedule: game and
// per-team counts, no double-booking, byes respected, and an
// all-divisional week 18 covering every team.
func Validate(result *Result, teams []models.Team) error {
	if len(result.Games) != TotalGames {
		return fmt.Errorf("have %d games, want %d", len(result.Games), TotalGames)
	}

	division := make(map[uuid.UUID]models.DivisionKey, len(teams))
	for _, t := range teams {
		division[t.ID] = models.DivisionKey{Conference: t.Conference, Division: t.Division}
	}

	byeOf := make(map[uuid.UUID]int)
	for _, b := range result.ByeWeeks {
		byeOf[b.TeamID] = b.Week
	}

	perTeam := make(map[uuid.UUID]int)
	booked := make(map[uuid.UUID]map[int]bool)
	week18 := make(map[uuid.UUID]bool)

	for _, g := range result.Games {
		for _, teamID := range []uuid.UUID{g.HomeTeamID, g.AwayTeamID} {
			perTeam[teamID]++
			if booked[teamID] == nil {
				booked[teamID] = make(map[int]bool)
			}
			if booked[teamID][g.Week] {
				return fmt.Errorf("team %s double-booked in week %d", teamID, g.Week)
			}
			booked[teamID][g.Week] = true
			if byeOf[teamID] == g.Week {
				return fmt.Errorf("team %s scheduled during its bye week %d", teamID, g.Week)
			}
			if g.Week == calendar.RegularSeasonWeeks {
				week18[teamID] = true
			}
		}
		if g.Week == calendar.RegularSeasonWeeks && division[g.HomeTeamID] != division[g.AwayTeamID] {
			return fmt.Errorf("week 18 game %s is not divisional", g.ID)
		}
	}

	for _, t := range teams {
		if perTeam[t.ID] != GamesPerTeam {
			return fmt.Errorf("team %s has %d games, want %d", t.ID, perTeam[t.ID], GamesPerTeam)
		}
		if !week18[t.ID] {
			return fmt.Errorf("team %s missing from week 18", t.ID)
		}
	}
	return nil
}

// buildGames turns placed matchups into dated, slotted Game rows.
// Each week gets one Thursday, one Sunday night, and one Monday night
// game; the rest fill the Sunday windows.
func buildGames(league *league, weeks map[int][]matchup, seasonID uuid.UUID, year int, rng *rand.Rand) []models.Game {
	var games []models.Game
	weekNums := make([]int, 0, len(weeks))
	for w := range weeks {
		weekNums = append(weekNums, w)
	}
	sort.Ints(weekNums)

	for _, week := range weekNums {
		start := calendar.WeekStart(year, week)
		for i, m := range weeks[week] {
			slot, offset := slotFor(i)
			home := league.byID[m.home]
			games = append(games, models.Game{
				ID:         uuid.New(),
				SeasonID:   seasonID,
				Week:       week,
				Date:       start.AddDate(0, 0, offset),
				Slot:       slot,
				HomeTeamID: m.home,
				AwayTeamID: m.away,
				Weather:    rollWeather(home, start.Month(), rng),
				Simulated:  false,
			})
		}
	}
	return games
}

// slotFor maps a game's index within a week to a broadcast slot and a
// day offset from the week's Thursday start.
func slotFor(i int) (models.TimeSlot, int) {
	switch i {
	case 0:
		return models.SlotThursdayNight, 0
	case 1:
		return models.SlotSundayNight, 3
	case 2:
		return models.SlotMondayNight, 4
	default:
		if i%4 == 3 {
			return models.SlotSundayLate, 3
		}
		return models.SlotSundayEarly, 3
	}
}

// rollWeather picks game conditions from the venue and time of year.
func rollWeather(home models.Team, month time.Month, rng *rand.Rand) models.Weather {
	if home.Dome {
		return models.WeatherDome
	}
	winter := month == time.December || month == time.January
	draw := rng.Float64()
	switch {
	case winter && draw < 0.20:
		return models.WeatherSnow
	case draw < 0.35:
		return models.WeatherRain
	case draw < 0.45:
		return models.WeatherWind
	default:
		return models.WeatherClear
	}
}

func buildByeWeeks(byes map[uuid.UUID]int, seasonID uuid.UUID) []models.ByeWeek {
	out := make([]models.ByeWeek, 0, len(byes))
	for teamID, week := range byes {
		out = append(out, models.ByeWeek{
			ID:       uuid.New(),
			SeasonID: seasonID,
			TeamID:   teamID,
			Week:     week,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Week != out[j].Week {
			return out[i].Week < out[j].Week
		}
		return out[i].TeamID.String() < out[j].TeamID.String()
	})
	return out
}
