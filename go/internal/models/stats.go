package models

import (
	"github.com/google/uuid"
)

// StatLine is one player's accumulated stats for a single game.
// Only the fields relevant to the player's position are populated.
type StatLine struct {
	PlayerID uuid.UUID `json:"player_id"`
	TeamID   uuid.UUID `json:"team_id"`
	Position Position  `json:"position"`

	PassAttempts    int `json:"pass_attempts,omitempty"`
	PassCompletions int `json:"pass_completions,omitempty"`
	PassYards       int `json:"pass_yards,omitempty"`
	PassTDs         int `json:"pass_tds,omitempty"`
	Interceptions   int `json:"interceptions,omitempty"`

	RushAttempts int `json:"rush_attempts,omitempty"`
	RushYards    int `json:"rush_yards,omitempty"`
	RushTDs      int `json:"rush_tds,omitempty"`

	Receptions    int `json:"receptions,omitempty"`
	ReceivingYards int `json:"receiving_yards,omitempty"`
	ReceivingTDs  int `json:"receiving_tds,omitempty"`

	Tackles int `json:"tackles,omitempty"`
	Sacks   int `json:"sacks,omitempty"`

	FieldGoalsMade int `json:"field_goals_made,omitempty"`
	ExtraPointsMade int `json:"extra_points_made,omitempty"`
}

// PlayerGameStats persists a stat line against a simulated game.
type PlayerGameStats struct {
	ID       uuid.UUID `json:"id"`
	GameID   uuid.UUID `json:"game_id"`
	SeasonID uuid.UUID `json:"season_id"`
	Week     int       `json:"week"`
	Line     StatLine  `json:"line"`
}

// PlayerSeasonSummary aggregates a player's season for progression checks.
type PlayerSeasonSummary struct {
	PlayerID    uuid.UUID `json:"player_id"`
	SeasonID    uuid.UUID `json:"season_id"`
	GamesPlayed int       `json:"games_played"`
	PassYards   int       `json:"pass_yards"`
	PassTDs     int       `json:"pass_tds"`
	RushYards   int       `json:"rush_yards"`
	RushTDs     int       `json:"rush_tds"`
	ReceivingYards int    `json:"receiving_yards"`
	ReceivingTDs int      `json:"receiving_tds"`
	Tackles     int       `json:"tackles"`
	Sacks       int       `json:"sacks"`
	FieldGoalsMade int    `json:"field_goals_made"`
}
