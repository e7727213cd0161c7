package models

import (
	"time"

	"github.com/google/uuid"
)

// Position represents a player's position group
type Position string

const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
	PositionOL Position = "OL"
	PositionDL Position = "DL"
	PositionLB Position = "LB"
	PositionCB Position = "CB"
	PositionS  Position = "S"
	PositionK  Position = "K"
	PositionP  Position = "P"
)

// OffensivePositions are the groups that feed a team's offense rating.
func OffensivePositions() []Position {
	return []Position{PositionQB, PositionRB, PositionWR, PositionTE, PositionOL}
}

// DefensivePositions are the groups that feed a team's defense rating.
func DefensivePositions() []Position {
	return []Position{PositionDL, PositionLB, PositionCB, PositionS}
}

// DevelopmentTrait shapes a player's age-based progression curve
type DevelopmentTrait string

const (
	TraitSuperstar DevelopmentTrait = "SUPERSTAR"
	TraitStar      DevelopmentTrait = "STAR"
	TraitNormal    DevelopmentTrait = "NORMAL"
	TraitSlow      DevelopmentTrait = "SLOW"
)

// Player represents a player's lifetime identity, independent of any season.
type Player struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Position  Position  `json:"position"`
	College   *string   `json:"college,omitempty"`
	BirthYear int       `json:"birth_year"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName returns the player's display name.
func (p *Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

// PlayerAttributes is the season-scoped rating snapshot of a player.
// One row exists per (player, season). All ratings live in [40, 99].
type PlayerAttributes struct {
	ID               uuid.UUID        `json:"id"`
	PlayerID         uuid.UUID        `json:"player_id"`
	SeasonID         uuid.UUID        `json:"season_id"`
	Age              int              `json:"age"`
	Overall          int              `json:"overall"`
	Speed            int              `json:"speed"`
	Strength         int              `json:"strength"`
	Agility          int              `json:"agility"`
	Awareness        int              `json:"awareness"`
	InjuryProneness  int              `json:"injury_proneness"`
	Morale           int              `json:"morale"`
	YearsPro         int              `json:"years_pro"`
	DevelopmentTrait DevelopmentTrait `json:"development_trait"`
}

// RatingFloor and RatingCeiling bound every attribute and overall rating.
const (
	RatingFloor   = 40
	RatingCeiling = 99
)

// ClampRating clamps a rating into [RatingFloor, RatingCeiling].
func ClampRating(v int) int {
	if v < RatingFloor {
		return RatingFloor
	}
	if v > RatingCeiling {
		return RatingCeiling
	}
	return v
}

// WeightedOverall recomputes the overall rating from the sub-attributes
// (speed 30%, strength 20%, agility 25%, awareness 25%).
func WeightedOverall(speed, strength, agility, awareness int) int {
	overall := float64(speed)*0.30 + float64(strength)*0.20 + float64(agility)*0.25 + float64(awareness)*0.25
	return ClampRating(int(overall + 0.5))
}

// PlayerRetirement records a player leaving the league at the end of a season.
type PlayerRetirement struct {
	ID           uuid.UUID `json:"id"`
	PlayerID     uuid.UUID `json:"player_id"`
	SeasonID     uuid.UUID `json:"season_id"`
	Age          int       `json:"age"`
	FinalOverall int       `json:"final_overall"`
	YearsPro     int       `json:"years_pro"`
	RetiredAt    time.Time `json:"retired_at"`
}
