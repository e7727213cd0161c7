package models

import (
	"time"

	"github.com/google/uuid"
)

// RosterStatus represents a player's availability on a roster
type RosterStatus string

const (
	RosterStatusActive         RosterStatus = "ACTIVE"
	RosterStatusInjuredReserve RosterStatus = "INJURED_RESERVE"
	RosterStatusPracticeSquad  RosterStatus = "PRACTICE_SQUAD"
	RosterStatusInactive       RosterStatus = "INACTIVE"
)

// RosterSpot places a player on a team for one season.
// Unique per (season, team, player). DepthPosition ranks the player
// within their position group; 1 is the starter.
type RosterSpot struct {
	ID            uuid.UUID    `json:"id"`
	SeasonID      uuid.UUID    `json:"season_id"`
	TeamID        uuid.UUID    `json:"team_id"`
	PlayerID      uuid.UUID    `json:"player_id"`
	Status        RosterStatus `json:"status"`
	DepthPosition int          `json:"depth_position"`
	AcquiredAt    time.Time    `json:"acquired_at"`
}

// RosterPlayer is the joined view of a roster spot the engine works with:
// the spot plus the player's identity and season attributes.
type RosterPlayer struct {
	PlayerID      uuid.UUID        `json:"player_id"`
	Name          string           `json:"name"`
	Position      Position         `json:"position"`
	DepthPosition int              `json:"depth_position"`
	Status        RosterStatus     `json:"status"`
	Attributes    PlayerAttributes `json:"attributes"`
}
