// Package personality derives a team's season-long strategic profile
// from its prior record, roster shape, cap position, and needs.
// A profile is generated once per team per season and persisted as
// TeamAIState; only budget tracking mutates it afterwards.
package personality

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jdports/gridiron/go/internal/models"
	"github.com/jdports/gridiron/go/internal/needs"
)

// Aggressiveness and risk tolerance bounds.
const (
	AggressivenessMin = 0.5
	AggressivenessMax = 1.5
	RiskMin           = 0.2
	RiskMax           = 0.9
)

// Input is the context a profile is derived from.
type Input struct {
	TeamID      uuid.UUID
	SeasonID    uuid.UUID
	PriorWins   int
	PriorLosses int
	PriorTies   int
	AvgAge      float64
	AvgTalent   float64
	CapSpace    int64
	Needs       needs.TeamNeeds
}

func (in Input) priorWinPct() float64 {
	played := in.PriorWins + in.PriorLosses + in.PriorTies
	if played == 0 {
		return 0.5
	}
	return (float64(in.PriorWins) + 0.5*float64(in.PriorTies)) / float64(played)
}

// Generate builds the team's profile. The rng feeds only the small
// temperament jitter, so profiles replay under a fixed seed.
func Generate(in Input, rng *rand.Rand, now time.Time) *models.TeamAIState {
	strategy := chooseStrategy(in)
	criticals := in.Needs.CriticalCount()

	aggressiveness := clampF(
		1.0+
			capSpaceBoost(in.CapSpace)+
			strategyAggression(strategy)+
			recordAggression(in.priorWinPct())+
			0.05*float64(minInt(criticals, 3))+
			(rng.Float64()-0.5)*0.1,
		AggressivenessMin, AggressivenessMax)

	risk := clampF(
		0.5+
			strategyRisk(strategy)+
			capSpaceRisk(in.CapSpace)+
			recordRisk(in.priorWinPct())+
			0.02*float64(minInt(criticals, 5))+
			(rng.Float64()-0.5)*0.1,
		RiskMin, RiskMax)

	priorities := make(map[models.Position]models.PriorityTier, len(in.Needs.Positions))
	for _, p := range in.Needs.Positions {
		priorities[p.Position] = p.Priority
	}

	budget := int64(float64(in.CapSpace) * budgetFraction(strategy) * aggressiveness)
	if budget < 0 {
		budget = 0
	}

	return &models.TeamAIState{
		ID:             uuid.New(),
		TeamID:         in.TeamID,
		SeasonID:       in.SeasonID,
		Strategy:       strategy,
		Aggressiveness: aggressiveness,
		RiskTolerance:  risk,
		Priorities:     priorities,
		WeeklyBudget:   budget,
		BudgetSpent:    0,
		GeneratedAt:    now,
	}
}

// chooseStrategy applies the record/age/talent thresholds: a bad team
// or thin roster rebuilds, a strong old roster pushes now, everything
// else contends.
func chooseStrategy(in Input) models.Strategy {
	winPct := in.priorWinPct()
	switch {
	case winPct < 0.40 || in.AvgTalent < 72:
		return models.StrategyRebuild
	case winPct >= 0.55 && in.AvgAge >= 28.5:
		return models.StrategyWinNow
	default:
		return models.StrategyContend
	}
}

func capSpaceBoost(capSpace int64) float64 {
	switch {
	case capSpace > 60_000_000:
		return 0.20
	case capSpace > 30_000_000:
		return 0.10
	case capSpace < 10_000_000:
		return -0.20
	default:
		return 0
	}
}

func strategyAggression(s models.Strategy) float64 {
	switch s {
	case models.StrategyWinNow:
		return 0.15
	case models.StrategyRebuild:
		return -0.15
	default:
		return 0
	}
}

func recordAggression(winPct float64) float64 {
	switch {
	case winPct >= 0.60:
		return 0.05
	case winPct < 0.40:
		return -0.05
	default:
		return 0
	}
}

func strategyRisk(s models.Strategy) float64 {
	switch s {
	case models.StrategyRebuild:
		return 0.15
	case models.StrategyWinNow:
		return 0.10
	default:
		return 0
	}
}

func capSpaceRisk(capSpace int64) float64 {
	if capSpace > 50_000_000 {
		return 0.05
	}
	return 0
}

func recordRisk(winPct float64) float64 {
	if winPct < 0.35 {
		return 0.05
	}
	return 0
}

// budgetFraction is the share of cap space a team commits per week of
// free agency before aggressiveness scaling.
func budgetFraction(s models.Strategy) float64 {
	switch s {
	case models.StrategyWinNow:
		return 0.25
	case models.StrategyRebuild:
		return 0.10
	default:
		return 0.15
	}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
