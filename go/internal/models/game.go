package models

import (
	"time"

	"github.com/google/uuid"
)

// Weather represents the playing conditions for a game
type Weather string

const (
	WeatherClear Weather = "CLEAR"
	WeatherRain  Weather = "RAIN"
	WeatherSnow  Weather = "SNOW"
	WeatherWind  Weather = "WIND"
	WeatherDome  Weather = "DOME"
)

// TimeSlot represents a game's broadcast window
type TimeSlot string

const (
	SlotThursdayNight TimeSlot = "THURSDAY_NIGHT"
	SlotSundayEarly   TimeSlot = "SUNDAY_EARLY"
	SlotSundayLate    TimeSlot = "SUNDAY_LATE"
	SlotSundayNight   TimeSlot = "SUNDAY_NIGHT"
	SlotMondayNight   TimeSlot = "MONDAY_NIGHT"
)

// Game is a scheduled matchup. Scores stay nil until the game is
// simulated; Simulated flips to true exactly once.
type Game struct {
	ID         uuid.UUID `json:"id"`
	SeasonID   uuid.UUID `json:"season_id"`
	Week       int       `json:"week"`
	Date       time.Time `json:"date"`
	Slot       TimeSlot  `json:"slot"`
	HomeTeamID uuid.UUID `json:"home_team_id"`
	AwayTeamID uuid.UUID `json:"away_team_id"`
	HomeScore  *int      `json:"home_score,omitempty"`
	AwayScore  *int      `json:"away_score,omitempty"`
	Overtime   bool      `json:"overtime"`
	Weather    Weather   `json:"weather"`
	Simulated  bool      `json:"simulated"`
}

// ByeWeek records a team's open week for a season.
type ByeWeek struct {
	ID       uuid.UUID `json:"id"`
	SeasonID uuid.UUID `json:"season_id"`
	TeamID   uuid.UUID `json:"team_id"`
	Week     int       `json:"week"`
}

// TeamStanding accumulates a team's results for a season. Mutated only
// by the game engine's post-game update.
type TeamStanding struct {
	ID            uuid.UUID `json:"id"`
	TeamID        uuid.UUID `json:"team_id"`
	SeasonID      uuid.UUID `json:"season_id"`
	Wins          int       `json:"wins"`
	Losses        int       `json:"losses"`
	Ties          int       `json:"ties"`
	PointsFor     int       `json:"points_for"`
	PointsAgainst int       `json:"points_against"`
}

// WinPct returns the team's win percentage, counting ties as half wins.
func (s *TeamStanding) WinPct() float64 {
	played := s.Wins + s.Losses + s.Ties
	if played == 0 {
		return 0.5
	}
	return (float64(s.Wins) + 0.5*float64(s.Ties)) / float64(played)
}
