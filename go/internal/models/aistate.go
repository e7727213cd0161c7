package models

import (
	"time"

	"github.com/google/uuid"
)

// Strategy represents a front office's season-long posture
type Strategy string

const (
	StrategyWinNow  Strategy = "WIN_NOW"
	StrategyContend Strategy = "CONTEND"
	StrategyRebuild Strategy = "REBUILD"
)

// PriorityTier buckets a position by how urgently the team needs it
type PriorityTier string

const (
	TierCritical PriorityTier = "CRITICAL"
	TierHigh     PriorityTier = "HIGH"
	TierMedium   PriorityTier = "MEDIUM"
	TierLow      PriorityTier = "LOW"
)

// TeamAIState is a team's strategic profile for one season, generated
// once and thereafter mutated only by budget tracking.
type TeamAIState struct {
	ID             uuid.UUID                 `json:"id"`
	TeamID         uuid.UUID                 `json:"team_id"`
	SeasonID       uuid.UUID                 `json:"season_id"`
	Strategy       Strategy                  `json:"strategy"`
	Aggressiveness float64                   `json:"aggressiveness"` // [0.5, 1.5]
	RiskTolerance  float64                   `json:"risk_tolerance"` // [0.2, 0.9]
	Priorities     map[Position]PriorityTier `json:"priorities"`     // stored as jsonb
	WeeklyBudget   int64                     `json:"weekly_budget"`
	BudgetSpent    int64                     `json:"budget_spent"`
	GeneratedAt    time.Time                 `json:"generated_at"`
}

// RemainingBudget returns what the team may still commit this week.
func (s *TeamAIState) RemainingBudget() int64 {
	if s.BudgetSpent >= s.WeeklyBudget {
		return 0
	}
	return s.WeeklyBudget - s.BudgetSpent
}
