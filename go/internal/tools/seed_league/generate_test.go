package main

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdports/gridiron/go/internal/models"
)

func testTeams() []models.Team {
	divisions := models.Divisions()
	teams := make([]models.Team, 32)
	for i := range teams {
		div := divisions[i%len(divisions)]
		teams[i] = models.Team{
			ID:         deterministicTeamID(fmt.Sprintf("T%02d", i)),
			Name:       fmt.Sprintf("Team %02d", i),
			Code:       fmt.Sprintf("T%02d", i),
			City:       fmt.Sprintf("City %02d", i),
			Conference: div.Conference,
			Division:   div.Division,
		}
	}
	return teams
}

func TestGenerateLeague(t *testing.T) {
	teams := testTeams()
	now := time.Now().UTC()
	league, err := generateLeague(teams, 2025, now, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	rosterSize := 0
	for _, slot := range rosterPlan {
		rosterSize += slot.Count
	}

	assert.True(t, league.Season.IsTemplate)
	assert.Equal(t, 2025, league.Season.Year)
	assert.Len(t, league.Players, 32*rosterSize+freeAgentPool)
	assert.Len(t, league.Attributes, 32*rosterSize+freeAgentPool)
	assert.Len(t, league.Spots, 32*rosterSize)
	assert.Len(t, league.Contracts, 32*rosterSize)
	assert.Len(t, league.FreeAgents, freeAgentPool)
	assert.Len(t, league.Finances, 32)
	assert.Len(t, league.Standings, 32)
	assert.Len(t, league.Games, 272)
	assert.Len(t, league.ByeWeeks, 32)

	// Every team fills the depth chart exactly and fits under the cap.
	spotsByTeam := make(map[string]map[models.Position]int)
	for _, spot := range league.Spots {
		key := spot.TeamID.String()
		if spotsByTeam[key] == nil {
			spotsByTeam[key] = make(map[models.Position]int)
		}
	}
	posByPlayer := make(map[string]models.Position, len(league.Players))
	for _, p := range league.Players {
		posByPlayer[p.ID.String()] = p.Position
	}
	for _, spot := range league.Spots {
		spotsByTeam[spot.TeamID.String()][posByPlayer[spot.PlayerID.String()]]++
	}
	for _, counts := range spotsByTeam {
		for _, slot := range rosterPlan {
			assert.Equal(t, slot.Count, counts[slot.Pos])
		}
	}
	for _, fin := range league.Finances {
		assert.Equal(t, int64(salaryCap), fin.SalaryCap)
		assert.Positive(t, fin.CapSpace, "generated payroll must fit under the cap")
	}

	for _, a := range league.Attributes {
		assert.GreaterOrEqual(t, a.Overall, models.RatingFloor)
		assert.LessOrEqual(t, a.Overall, models.RatingCeiling)
	}
	for _, fa := range league.FreeAgents {
		assert.Equal(t, models.FreeAgentAvailable, fa.Status)
		assert.GreaterOrEqual(t, fa.MarketValue, int64(minimumSalary)*9/10)
	}
}

func TestDeterministicTeamIDIsStable(t *testing.T) {
	assert.Equal(t, deterministicTeamID("BOS"), deterministicTeamID("BOS"))
	assert.NotEqual(t, deterministicTeamID("BOS"), deterministicTeamID("PRO"))
}
