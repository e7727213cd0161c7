// Package agent implements a team's autonomous daily free-agency
// behavior: deciding whether the front office works today, scoring the
// available market, and turning targets into contract offers.
package agent

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jdports/gridiron/go/internal/models"
	"github.com/jdports/gridiron/go/internal/needs"
)

// scoreCutoff is the evaluation floor below which a free agent is not
// worth an offer.
const scoreCutoff = 30.0

// FreeAgentView joins a free agent with the player facts the agent
// evaluates: position, age, and current overall.
type FreeAgentView struct {
	FreeAgent models.FreeAgent
	Position  models.Position
	Age       int
	Overall   int
}

// Offer is one team's bid for a free agent, held until the market
// processor batch-resolves the day.
type Offer struct {
	ID              uuid.UUID `json:"id"`
	TeamID          uuid.UUID `json:"team_id"`
	FreeAgentID     uuid.UUID `json:"free_agent_id"`
	PlayerID        uuid.UUID `json:"player_id"`
	AnnualSalary    int64     `json:"annual_salary"`
	Years           int       `json:"years"`
	GuaranteedMoney int64     `json:"guaranteed_money"`
	// EvalScore is the offering team's own valuation of the player;
	// the market reuses it as the role-opportunity signal.
	EvalScore float64 `json:"eval_score"`
	Week      int     `json:"week"`
}

// IsActiveDay reports whether a team's front office works a given day.
// Teams only operate during market phases and on a weekday count set
// by their aggressiveness band; the per-team offset staggers activity
// so the league never moves in lockstep.
func IsActiveDay(state *models.TeamAIState, date time.Time, phase models.Phase) bool {
	if !phase.IsMarketPhase() {
		return false
	}
	wd := date.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	dayIdx := int(wd) - 1 // Monday = 0
	offset := int(state.TeamID[0]) % 5
	return (dayIdx+offset)%5 < activeWeekdays(state.Aggressiveness)
}

// activeWeekdays maps an aggressiveness band to working days per week.
func activeWeekdays(aggressiveness float64) int {
	switch {
	case aggressiveness >= 1.3:
		return 5
	case aggressiveness >= 1.1:
		return 4
	case aggressiveness <= 0.7:
		return 2
	default:
		return 3
	}
}

// maxTargets caps how many free agents a team chases in one day.
func maxTargets(aggressiveness float64) int {
	switch {
	case aggressiveness >= 1.3:
		return 5
	case aggressiveness >= 1.1:
		return 4
	case aggressiveness <= 0.7:
		return 2
	default:
		return 3
	}
}

// target pairs a market view with the team's evaluation of it.
type target struct {
	view  FreeAgentView
	score float64
}

// PlanOffers evaluates the open market for one team and returns its
// offers for the day. Candidates the team cannot afford are skipped
// silently rather than erroring.
func PlanOffers(state *models.TeamAIState, teamNeeds needs.TeamNeeds, market []FreeAgentView, capSpace int64, week int) []Offer {
	var targets []target
	for _, view := range market {
		if view.FreeAgent.Status != models.FreeAgentAvailable {
			continue
		}
		score := Evaluate(state, teamNeeds, view)
		if score <= scoreCutoff {
			continue
		}
		targets = append(targets, target{view: view, score: score})
	}

	sort.Slice(targets, func(i, j int) bool {
		if targets[i].score != targets[j].score {
			return targets[i].score > targets[j].score
		}
		return targets[i].view.FreeAgent.ID.String() < targets[j].view.FreeAgent.ID.String()
	})
	if limit := maxTargets(state.Aggressiveness); len(targets) > limit {
		targets = targets[:limit]
	}

	var offers []Offer
	for _, tgt := range targets {
		offer := buildOffer(state, teamNeeds, tgt, week)
		if offer.AnnualSalary > capSpace {
			continue
		}
		if offer.AnnualSalary > state.RemainingBudget() {
			continue
		}
		offers = append(offers, offer)
	}
	return offers
}

// Evaluate scores one free agent for one team: positional need,
// raw talent, a youth bias scaled by risk tolerance, and a wishlist
// bonus for priority positions.
func Evaluate(state *models.TeamAIState, teamNeeds needs.TeamNeeds, view FreeAgentView) float64 {
	var needScore float64
	if need, ok := teamNeeds.ByPosition(view.Position); ok {
		needScore = float64(need.Score)
	}

	talent := clampF(float64(view.Overall-55)*0.8, 0, 35)
	youth := state.RiskTolerance * float64(27-view.Age) * 2

	var wishlist float64
	switch state.Priorities[view.Position] {
	case models.TierCritical:
		wishlist = 10
	case models.TierHigh:
		wishlist = 5
	}

	return needScore*0.5 + talent + youth + wishlist
}

// buildOffer prices a target: market value scaled by aggressiveness,
// positional urgency, strategy, and week-in-period pricing. Length and
// guarantees follow value tier and risk tolerance.
func buildOffer(state *models.TeamAIState, teamNeeds needs.TeamNeeds, tgt target, week int) Offer {
	value := float64(tgt.view.FreeAgent.MarketValue) * state.Aggressiveness

	if need, ok := teamNeeds.ByPosition(tgt.view.Position); ok {
		switch {
		case need.Score >= 75:
			value *= 1.15
		case need.Score >= 50:
			value *= 1.05
		case need.Score < 25:
			value *= 0.9
		}
	}

	switch state.Strategy {
	case models.StrategyWinNow:
		value *= 1.10
	case models.StrategyRebuild:
		value *= 0.95
	}

	value *= weekPricing(week)

	salary := int64(value)
	years := contractYears(tgt.view.FreeAgent.MarketValue)
	guaranteedPct := 0.40 + 0.30*(state.RiskTolerance-0.2)/0.7
	guaranteed := int64(float64(salary) * float64(years) * guaranteedPct)

	return Offer{
		ID:              uuid.New(),
		TeamID:          state.TeamID,
		FreeAgentID:     tgt.view.FreeAgent.ID,
		PlayerID:        tgt.view.FreeAgent.PlayerID,
		AnnualSalary:    salary,
		Years:           years,
		GuaranteedMoney: guaranteed,
		EvalScore:       tgt.score,
		Week:            week,
	}
}

// weekPricing front-loads the market: an early premium that decays
// into late-period discounts.
func weekPricing(week int) float64 {
	switch {
	case week <= 2:
		return 1.10
	case week <= 4:
		return 1.05
	case week >= 14:
		return 0.80
	case week >= 10:
		return 0.90
	default:
		return 1.0
	}
}

// contractYears scales length with the player's market tier.
func contractYears(marketValue int64) int {
	switch {
	case marketValue >= 15_000_000:
		return 4
	case marketValue >= 8_000_000:
		return 3
	default:
		return 2
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
