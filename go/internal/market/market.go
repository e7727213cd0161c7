// Package market batch-resolves a day of free-agency offers. All
// teams' offers are collected before any player decides, so no team
// ever sees another's bid; each signing then applies atomically
// through the store.
package market

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jdports/gridiron/go/internal/agent"
	"github.com/jdports/gridiron/go/internal/models"
)

// Offer evaluation weights.
const (
	weightMoney    = 0.70
	weightQuality  = 0.15
	weightRole     = 0.10
	weightLocation = 0.05

	// moneyRatioCap bounds the money contribution: overbidding past
	// 150% of market value buys no extra goodwill.
	moneyRatioCap = 1.5
)

// TeamContext is what a player knows about an offering team.
type TeamContext struct {
	WinPct float64
}

// Decision records one free agent's choice among offers.
type Decision struct {
	FreeAgentID uuid.UUID   `json:"free_agent_id"`
	PlayerID    uuid.UUID   `json:"player_id"`
	Winner      agent.Offer `json:"winner"`
	Score       float64     `json:"score"`
	OfferCount  int         `json:"offer_count"`
}

// Signing is the atomic unit a decision turns into: four writes that
// must all apply or none.
type Signing struct {
	Contract   models.Contract
	RosterSpot models.RosterSpot
	FreeAgent  uuid.UUID
	TeamID     uuid.UUID
	SeasonID   uuid.UUID
	CapDelta   int64 // negative: the new annual salary leaving cap space
}

// Signer executes a signing atomically against the backing store.
type Signer interface {
	ExecuteSigning(ctx context.Context, signing Signing) error
}

// Outcome summarizes a processed batch. Store failures are counted,
// not raised; the batch always runs to completion.
type Outcome struct {
	Signed    int
	Failed    int
	Decisions []Decision
	// Succeeded holds the decisions whose signings applied, for
	// budget tracking and event emission downstream.
	Succeeded []Decision
}

// ResolveOffers decides every contested free agent. Scoring weighs
// money (ratio to market value, capped), team quality, the offering
// team's own role evaluation, and a uniform-random location factor.
// The highest score wins; ties go to the offer evaluated first.
func ResolveOffers(freeAgents []models.FreeAgent, offers []agent.Offer, teams map[uuid.UUID]TeamContext, rng *rand.Rand) []Decision {
	marketValue := make(map[uuid.UUID]int64, len(freeAgents))
	for _, fa := range freeAgents {
		marketValue[fa.ID] = fa.MarketValue
	}

	byAgent := make(map[uuid.UUID][]agent.Offer)
	var order []uuid.UUID
	for _, offer := range offers {
		if _, seen := byAgent[offer.FreeAgentID]; !seen {
			order = append(order, offer.FreeAgentID)
		}
		byAgent[offer.FreeAgentID] = append(byAgent[offer.FreeAgentID], offer)
	}

	var decisions []Decision
	for _, faID := range order {
		contenders := byAgent[faID]
		var best agent.Offer
		bestScore := -1.0
		for _, offer := range contenders {
			score := scoreOffer(offer, marketValue[faID], teams[offer.TeamID], rng)
			if score > bestScore {
				best, bestScore = offer, score
			}
		}
		decisions = append(decisions, Decision{
			FreeAgentID: faID,
			PlayerID:    best.PlayerID,
			Winner:      best,
			Score:       bestScore,
			OfferCount:  len(contenders),
		})
	}
	return decisions
}

func scoreOffer(offer agent.Offer, marketValue int64, team TeamContext, rng *rand.Rand) float64 {
	ratio := moneyRatioCap
	if marketValue > 0 {
		ratio = float64(offer.AnnualSalary) / float64(marketValue)
		if ratio > moneyRatioCap {
			ratio = moneyRatioCap
		}
	}
	money := ratio / moneyRatioCap * 100

	quality := team.WinPct * 100

	role := offer.EvalScore
	if role > 100 {
		role = 100
	}
	if role < 0 {
		role = 0
	}

	location := rng.Float64() * 100

	return money*weightMoney + quality*weightQuality + role*weightRole + location*weightLocation
}

// ExecuteDecisions turns decisions into signings. Each failed store
// write marks the signing failed and moves on.
func ExecuteDecisions(ctx context.Context, signer Signer, seasonID uuid.UUID, decisions []Decision, now time.Time) Outcome {
	outcome := Outcome{Decisions: decisions}
	for _, d := range decisions {
		signing := buildSigning(seasonID, d, now)
		if err := signer.ExecuteSigning(ctx, signing); err != nil {
			log.Warn().
				Err(err).
				Str("free_agent_id", d.FreeAgentID.String()).
				Str("team_id", d.Winner.TeamID.String()).
				Msg("signing failed")
			outcome.Failed++
			continue
		}
		log.Info().
			Str("player_id", d.PlayerID.String()).
			Str("team_id", d.Winner.TeamID.String()).
			Int64("annual_salary", d.Winner.AnnualSalary).
			Int("years", d.Winner.Years).
			Msg("free agent signed")
		outcome.Signed++
		outcome.Succeeded = append(outcome.Succeeded, d)
	}
	return outcome
}

func buildSigning(seasonID uuid.UUID, d Decision, now time.Time) Signing {
	offer := d.Winner
	return Signing{
		Contract: models.Contract{
			ID:              uuid.New(),
			PlayerID:        d.PlayerID,
			TeamID:          offer.TeamID,
			SeasonID:        seasonID,
			AnnualSalary:    offer.AnnualSalary,
			GuaranteedMoney: offer.GuaranteedMoney,
			YearsTotal:      offer.Years,
			YearsRemaining:  offer.Years,
			SignedAt:        now,
		},
		RosterSpot: models.RosterSpot{
			ID:            uuid.New(),
			SeasonID:      seasonID,
			TeamID:        offer.TeamID,
			PlayerID:      d.PlayerID,
			Status:        models.RosterStatusActive,
			DepthPosition: nextDepthPlaceholder,
			AcquiredAt:    now,
		},
		FreeAgent: d.FreeAgentID,
		TeamID:    offer.TeamID,
		SeasonID:  seasonID,
		CapDelta:  -offer.AnnualSalary,
	}
}

// nextDepthPlaceholder ranks a fresh signing at the bottom of the
// depth chart; the store's ExecuteSigning compacts it to the real next
// rank within the position group.
const nextDepthPlaceholder = 99
