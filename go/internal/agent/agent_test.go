package agent

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdports/gridiron/go/internal/models"
	"github.com/jdports/gridiron/go/internal/needs"
)

func testState(strategy models.Strategy, aggressiveness, risk float64) *models.TeamAIState {
	return &models.TeamAIState{
		ID:             uuid.New(),
		TeamID:         uuid.New(),
		SeasonID:       uuid.New(),
		Strategy:       strategy,
		Aggressiveness: aggressiveness,
		RiskTolerance:  risk,
		Priorities:     map[models.Position]models.PriorityTier{},
		WeeklyBudget:   1_000_000_000,
	}
}

func view(pos models.Position, age, overall int, marketValue int64) FreeAgentView {
	return FreeAgentView{
		FreeAgent: models.FreeAgent{
			ID:          uuid.New(),
			PlayerID:    uuid.New(),
			SeasonID:    uuid.New(),
			MarketValue: marketValue,
			Status:      models.FreeAgentAvailable,
		},
		Position: pos,
		Age:      age,
		Overall:  overall,
	}
}

// needyAt builds an assessment where only the given position is thin.
func needyAt(teamID, seasonID uuid.UUID, pos models.Position) needs.TeamNeeds {
	var roster []models.RosterPlayer
	for _, p := range []models.Position{
		models.PositionQB, models.PositionRB, models.PositionWR, models.PositionTE,
		models.PositionOL, models.PositionDL, models.PositionLB, models.PositionCB,
		models.PositionS, models.PositionK, models.PositionP,
	} {
		if p == pos {
			continue
		}
		for i := 0; i < 8; i++ {
			roster = append(roster, models.RosterPlayer{
				PlayerID:      uuid.New(),
				Position:      p,
				DepthPosition: i + 1,
				Status:        models.RosterStatusActive,
				Attributes:    models.PlayerAttributes{Overall: 85},
			})
		}
	}
	return needs.Assess(teamID, seasonID, roster)
}

func TestActiveWeekdayCountMatchesAggressivenessBand(t *testing.T) {
	tests := []struct {
		aggressiveness float64
		wantDays       int
	}{
		{1.4, 5},
		{1.2, 4},
		{0.9, 3},
		{0.6, 2},
	}

	// A Monday during free agency.
	monday := time.Date(2025, time.March, 17, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Monday, monday.Weekday())

	for _, tt := range tests {
		state := testState(models.StrategyContend, tt.aggressiveness, 0.5)
		active := 0
		for d := 0; d < 7; d++ {
			if IsActiveDay(state, monday.AddDate(0, 0, d), models.PhaseFreeAgency) {
				active++
			}
		}
		assert.Equal(t, tt.wantDays, active, "aggressiveness %.1f", tt.aggressiveness)
	}
}

func TestNeverActiveOutsideMarketPhases(t *testing.T) {
	state := testState(models.StrategyWinNow, 1.5, 0.9)
	monday := time.Date(2025, time.October, 6, 0, 0, 0, 0, time.UTC)

	for _, phase := range []models.Phase{
		models.PhaseOffseason, models.PhasePreseason, models.PhaseRegularSeason, models.PhasePostseason,
	} {
		for d := 0; d < 7; d++ {
			assert.False(t, IsActiveDay(state, monday.AddDate(0, 0, d), phase), "phase %s", phase)
		}
	}
}

func TestPlanOffersDiscardsUnaffordable(t *testing.T) {
	// A rebuild team with aggressiveness 0.6 and $80M of cap space.
	state := testState(models.StrategyRebuild, 0.6, 0.5)
	teamNeeds := needyAt(state.TeamID, state.SeasonID, models.PositionQB)

	affordable := view(models.PositionQB, 25, 88, 20_000_000)
	tooRich := view(models.PositionQB, 25, 90, 200_000_000)

	offers := PlanOffers(state, teamNeeds, []FreeAgentView{affordable, tooRich}, 80_000_000, 1)
	require.Len(t, offers, 1)
	assert.Equal(t, affordable.FreeAgent.ID, offers[0].FreeAgentID)
	assert.LessOrEqual(t, offers[0].AnnualSalary, int64(80_000_000))
}

func TestPlanOffersSkipsLowScoresAndSignedPlayers(t *testing.T) {
	state := testState(models.StrategyContend, 1.0, 0.5)
	teamNeeds := needyAt(state.TeamID, state.SeasonID, models.PositionQB)

	// An old, mediocre punter on a team with no punter need.
	dud := view(models.PositionP, 36, 58, 1_000_000)
	signed := view(models.PositionQB, 25, 90, 10_000_000)
	signed.FreeAgent.Status = models.FreeAgentSigned

	offers := PlanOffers(state, teamNeeds, []FreeAgentView{dud, signed}, 100_000_000, 1)
	assert.Empty(t, offers)
}

func TestPlanOffersCapsTargetCount(t *testing.T) {
	state := testState(models.StrategyRebuild, 0.6, 0.5)
	teamNeeds := needyAt(state.TeamID, state.SeasonID, models.PositionWR)

	var market []FreeAgentView
	for i := 0; i < 10; i++ {
		market = append(market, view(models.PositionWR, 24, 85, 5_000_000))
	}

	offers := PlanOffers(state, teamNeeds, market, 500_000_000, 1)
	assert.Len(t, offers, 2, "a conservative team chases at most two targets")
}

func TestOfferPricing(t *testing.T) {
	state := testState(models.StrategyWinNow, 1.2, 0.9)
	state.Priorities[models.PositionQB] = models.TierCritical

	// Fully stocked roster except one bad quarterback: count deficit 40
	// plus maxed quality deficit pushes QB need into the critical band.
	var roster []models.RosterPlayer
	for _, p := range []models.Position{
		models.PositionRB, models.PositionWR, models.PositionTE,
		models.PositionOL, models.PositionDL, models.PositionLB, models.PositionCB,
		models.PositionS, models.PositionK, models.PositionP,
	} {
		for i := 0; i < 8; i++ {
			roster = append(roster, models.RosterPlayer{
				PlayerID:      uuid.New(),
				Position:      p,
				DepthPosition: i + 1,
				Status:        models.RosterStatusActive,
				Attributes:    models.PlayerAttributes{Overall: 85},
			})
		}
	}
	roster = append(roster, models.RosterPlayer{
		PlayerID:      uuid.New(),
		Position:      models.PositionQB,
		DepthPosition: 1,
		Status:        models.RosterStatusActive,
		Attributes:    models.PlayerAttributes{Overall: 45},
	})
	teamNeeds := needs.Assess(state.TeamID, state.SeasonID, roster)

	qb := view(models.PositionQB, 26, 90, 20_000_000)
	offers := PlanOffers(state, teamNeeds, []FreeAgentView{qb}, 1_000_000_000, 1)
	require.Len(t, offers, 1)
	offer := offers[0]

	need, ok := teamNeeds.ByPosition(models.PositionQB)
	require.True(t, ok)
	require.GreaterOrEqual(t, need.Score, 75)

	// 20M x 1.2 aggressiveness x 1.15 urgency x 1.10 win-now x 1.10 week-1 premium.
	want := int64(20_000_000 * 1.2 * 1.15 * 1.10 * 1.10)
	assert.InDelta(t, float64(want), float64(offer.AnnualSalary), 2)

	assert.Equal(t, 4, offer.Years, "a 20M market value commands a four-year deal")

	// Risk tolerance 0.9 maxes the guarantee at 70% of total value.
	wantGuarantee := int64(float64(offer.AnnualSalary) * 4 * 0.70)
	assert.InDelta(t, float64(wantGuarantee), float64(offer.GuaranteedMoney), 2)
}

func TestOfferRespectsWeeklyBudget(t *testing.T) {
	state := testState(models.StrategyContend, 1.0, 0.5)
	state.WeeklyBudget = 3_000_000
	teamNeeds := needyAt(state.TeamID, state.SeasonID, models.PositionQB)

	qb := view(models.PositionQB, 25, 88, 20_000_000)
	offers := PlanOffers(state, teamNeeds, []FreeAgentView{qb}, 500_000_000, 1)
	assert.Empty(t, offers, "offer exceeds the weekly budget")
}

func TestLateWeekDiscount(t *testing.T) {
	state := testState(models.StrategyContend, 1.0, 0.5)
	teamNeeds := needyAt(state.TeamID, state.SeasonID, models.PositionRB)
	rb := view(models.PositionRB, 24, 84, 6_000_000)

	early := PlanOffers(state, teamNeeds, []FreeAgentView{rb}, 500_000_000, 1)
	late := PlanOffers(state, teamNeeds, []FreeAgentView{rb}, 500_000_000, 15)
	require.Len(t, early, 1)
	require.Len(t, late, 1)
	assert.Greater(t, early[0].AnnualSalary, late[0].AnnualSalary)
}
