package personality

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdports/gridiron/go/internal/models"
	"github.com/jdports/gridiron/go/internal/needs"
)

func baseInput() Input {
	return Input{
		TeamID:      uuid.New(),
		SeasonID:    uuid.New(),
		PriorWins:   9,
		PriorLosses: 8,
		AvgAge:      27,
		AvgTalent:   78,
		CapSpace:    25_000_000,
	}
}

func gen(in Input) *models.TeamAIState {
	return Generate(in, rand.New(rand.NewSource(1)), time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC))
}

func TestStrategySelection(t *testing.T) {
	tests := []struct {
		name   string
		adjust func(*Input)
		want   models.Strategy
	}{
		{"average team contends", func(in *Input) {}, models.StrategyContend},
		{"losing team rebuilds", func(in *Input) { in.PriorWins, in.PriorLosses = 4, 13 }, models.StrategyRebuild},
		{"thin roster rebuilds", func(in *Input) { in.AvgTalent = 68 }, models.StrategyRebuild},
		{"strong old roster wins now", func(in *Input) {
			in.PriorWins, in.PriorLosses = 12, 5
			in.AvgAge = 29.5
		}, models.StrategyWinNow},
		{"strong young roster contends", func(in *Input) {
			in.PriorWins, in.PriorLosses = 12, 5
			in.AvgAge = 25.5
		}, models.StrategyContend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			tt.adjust(&in)
			assert.Equal(t, tt.want, gen(in).Strategy)
		})
	}
}

func TestAggressivenessAndRiskStayInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		in := baseInput()
		in.PriorWins = rng.Intn(18)
		in.PriorLosses = 17 - in.PriorWins
		in.AvgAge = 24 + rng.Float64()*8
		in.AvgTalent = 60 + rng.Float64()*30
		in.CapSpace = int64(rng.Intn(120_000_000))

		state := Generate(in, rng, time.Now())
		assert.GreaterOrEqual(t, state.Aggressiveness, AggressivenessMin)
		assert.LessOrEqual(t, state.Aggressiveness, AggressivenessMax)
		assert.GreaterOrEqual(t, state.RiskTolerance, RiskMin)
		assert.LessOrEqual(t, state.RiskTolerance, RiskMax)
	}
}

func TestCapRichTeamsAreMoreAggressive(t *testing.T) {
	rich := baseInput()
	rich.CapSpace = 90_000_000
	poor := baseInput()
	poor.CapSpace = 5_000_000

	assert.Greater(t, gen(rich).Aggressiveness, gen(poor).Aggressiveness)
}

func TestPrioritiesMirrorNeeds(t *testing.T) {
	in := baseInput()
	in.Needs = needs.Assess(in.TeamID, in.SeasonID, nil) // empty roster: everything needed

	state := gen(in)
	require.NotEmpty(t, state.Priorities)
	qb, ok := state.Priorities[models.PositionQB]
	require.True(t, ok)
	assert.Equal(t, models.TierCritical, qb)
}

func TestWeeklyBudgetScalesWithStrategy(t *testing.T) {
	winNow := baseInput()
	winNow.PriorWins, winNow.PriorLosses = 13, 4
	winNow.AvgAge = 30

	rebuild := baseInput()
	rebuild.PriorWins, rebuild.PriorLosses = 3, 14

	wn, rb := gen(winNow), gen(rebuild)
	require.Equal(t, models.StrategyWinNow, wn.Strategy)
	require.Equal(t, models.StrategyRebuild, rb.Strategy)
	assert.Greater(t, wn.WeeklyBudget, rb.WeeklyBudget)
	assert.LessOrEqual(t, wn.WeeklyBudget, winNow.CapSpace)
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	in := baseInput()
	now := time.Now()
	a := Generate(in, rand.New(rand.NewSource(9)), now)
	b := Generate(in, rand.New(rand.NewSource(9)), now)

	assert.Equal(t, a.Strategy, b.Strategy)
	assert.Equal(t, a.Aggressiveness, b.Aggressiveness)
	assert.Equal(t, a.RiskTolerance, b.RiskTolerance)
	assert.Equal(t, a.WeeklyBudget, b.WeeklyBudget)
}

func TestRemainingBudget(t *testing.T) {
	state := gen(baseInput())
	state.WeeklyBudget = 10_000_000
	state.BudgetSpent = 4_000_000
	assert.Equal(t, int64(6_000_000), state.RemainingBudget())
	state.BudgetSpent = 12_000_000
	assert.Zero(t, state.RemainingBudget())
}
