// Package events defines the payloads written to the outbox as the
// simulation advances. Consumers decode by event type.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/jdports/gridiron/go/internal/models"
)

// Event types carried on the outbox.
const (
	TypeGameSimulated   = "GAME_SIMULATED"
	TypePlayerSigned    = "PLAYER_SIGNED"
	TypePhaseChanged    = "PHASE_CHANGED"
	TypeSeasonEnded     = "SEASON_ENDED"
	TypeSeasonScheduled = "SEASON_SCHEDULED"
)

// GameSimulated is emitted once per simulated game.
type GameSimulated struct {
	GameID     uuid.UUID `json:"game_id"`
	SeasonID   uuid.UUID `json:"season_id"`
	Week       int       `json:"week"`
	HomeTeamID uuid.UUID `json:"home_team_id"`
	AwayTeamID uuid.UUID `json:"away_team_id"`
	HomeScore  int       `json:"home_score"`
	AwayScore  int       `json:"away_score"`
	Overtime   bool      `json:"overtime"`
	PlayedOn   time.Time `json:"played_on"`
}

// PlayerSigned is emitted when a free agent accepts an offer.
type PlayerSigned struct {
	PlayerID     uuid.UUID `json:"player_id"`
	TeamID       uuid.UUID `json:"team_id"`
	SeasonID     uuid.UUID `json:"season_id"`
	AnnualSalary int64     `json:"annual_salary"`
	Years        int       `json:"years"`
	SignedOn     time.Time `json:"signed_on"`
}

// PhaseChanged is emitted when the calendar moves a season into a new
// phase.
type PhaseChanged struct {
	SeasonID uuid.UUID    `json:"season_id"`
	From     models.Phase `json:"from"`
	To       models.Phase `json:"to"`
	Date     time.Time    `json:"date"`
}

// SeasonEnded is emitted after the offseason pipeline completes.
type SeasonEnded struct {
	SeasonID     uuid.UUID `json:"season_id"`
	NextSeasonID uuid.UUID `json:"next_season_id"`
	Year         int       `json:"year"`
	Retirements  int       `json:"retirements"`
	Expirations  int       `json:"expirations"`
}

// SeasonScheduled is emitted when a new season's slate is generated.
type SeasonScheduled struct {
	SeasonID uuid.UUID `json:"season_id"`
	Year     int       `json:"year"`
	Games    int       `json:"games"`
}
