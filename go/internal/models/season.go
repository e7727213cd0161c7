package models

import (
	"time"

	"github.com/google/uuid"
)

// Phase represents one of the season's mutually-exclusive calendar states
type Phase string

const (
	PhaseOffseason     Phase = "OFFSEASON"
	PhaseFreeAgency    Phase = "FREE_AGENCY"
	PhaseDraft         Phase = "DRAFT"
	PhaseTrainingCamp  Phase = "TRAINING_CAMP"
	PhasePreseason     Phase = "PRESEASON"
	PhaseRegularSeason Phase = "REGULAR_SEASON"
	PhasePostseason    Phase = "POSTSEASON"
)

// IsMarketPhase reports whether free-agency activity runs during the phase.
func (p Phase) IsMarketPhase() bool {
	switch p {
	case PhaseFreeAgency, PhaseDraft, PhaseTrainingCamp:
		return true
	}
	return false
}

// Season is the in-world clock and phase state for one league year.
// Exactly one non-template season exists per franchise; the template
// season is read-only and seeds new franchises.
type Season struct {
	ID                  uuid.UUID `json:"id"`
	FranchiseID         *uuid.UUID `json:"franchise_id,omitempty"` // nil for the template season
	Year                int       `json:"year"`
	CurrentWeek         int       `json:"current_week"` // 1-18
	Phase               Phase     `json:"phase"`
	SimulationDate      time.Time `json:"simulation_date"`
	TradeDeadlinePassed bool      `json:"trade_deadline_passed"`
	IsTemplate          bool      `json:"is_template"`
	CreatedAt           time.Time `json:"created_at"`
}

// Franchise is one user's save. Immutable after creation except for
// CurrentSeasonID and the soft-delete flag.
type Franchise struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	TeamID          uuid.UUID `json:"team_id"`
	CurrentSeasonID uuid.UUID `json:"current_season_id"`
	Deleted         bool      `json:"deleted"`
	CreatedAt       time.Time `json:"created_at"`
}
