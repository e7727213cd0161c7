package models

import (
	"time"

	"github.com/google/uuid"
)

// Contract holds a player's financial terms with a team for a season.
// YearsRemaining decrements at each season end; reaching zero ends the
// contract and creates a FreeAgent record.
type Contract struct {
	ID               uuid.UUID `json:"id"`
	PlayerID         uuid.UUID `json:"player_id"`
	TeamID           uuid.UUID `json:"team_id"`
	SeasonID         uuid.UUID `json:"season_id"`
	AnnualSalary     int64     `json:"annual_salary"`
	GuaranteedMoney  int64     `json:"guaranteed_money"`
	YearsTotal       int       `json:"years_total"`
	YearsRemaining   int       `json:"years_remaining"`
	SignedAt         time.Time `json:"signed_at"`
}

// CapHit is the contract's charge against the team's cap for the season.
func (c *Contract) CapHit() int64 {
	return c.AnnualSalary
}

// FreeAgentStatus represents a free agent's market state
type FreeAgentStatus string

const (
	FreeAgentAvailable FreeAgentStatus = "AVAILABLE"
	FreeAgentSigned    FreeAgentStatus = "SIGNED"
)

// FreeAgent marks a player available to sign during a season.
type FreeAgent struct {
	ID             uuid.UUID       `json:"id"`
	PlayerID       uuid.UUID       `json:"player_id"`
	SeasonID       uuid.UUID       `json:"season_id"`
	MarketValue    int64           `json:"market_value"`
	PreviousTeamID *uuid.UUID      `json:"previous_team_id,omitempty"`
	Status         FreeAgentStatus `json:"status"`
	ListedAt       time.Time       `json:"listed_at"`
}

// TeamFinances tracks a team's cap position for a season.
// Invariant: CapSpace = SalaryCap + RolloverCap - sum of active cap hits.
type TeamFinances struct {
	ID          uuid.UUID `json:"id"`
	TeamID      uuid.UUID `json:"team_id"`
	SeasonID    uuid.UUID `json:"season_id"`
	SalaryCap   int64     `json:"salary_cap"`
	CapSpace    int64     `json:"cap_space"`
	DeadMoney   int64     `json:"dead_money"`
	RolloverCap int64     `json:"rollover_cap"`
}
