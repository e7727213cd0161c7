package gamesim

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdports/gridiron/go/internal/models"
)

func testLineup(overall int) Lineup {
	lineup := Lineup{TeamID: uuid.New()}
	positions := []models.Position{
		models.PositionQB, models.PositionRB, models.PositionWR, models.PositionTE,
		models.PositionOL, models.PositionDL, models.PositionLB, models.PositionCB,
		models.PositionS, models.PositionK,
	}
	for _, pos := range positions {
		for depth := 1; depth <= 3; depth++ {
			lineup.Players = append(lineup.Players, models.RosterPlayer{
				PlayerID:      uuid.New(),
				Position:      pos,
				DepthPosition: depth,
				Status:        models.RosterStatusActive,
				Attributes:    models.PlayerAttributes{Overall: overall},
			})
		}
	}
	return lineup
}

func TestSimulateNeverEndsTied(t *testing.T) {
	home := testLineup(80)
	away := testLineup(80)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		res := Simulate(home, away, models.WeatherClear, rng)
		assert.NotEqual(t, res.HomeScore, res.AwayScore, "game %d tied", i)
	}
}

func TestOvertimeOnlyWhenTiedAfterRegulation(t *testing.T) {
	home := testLineup(85)
	away := testLineup(75)
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 500; i++ {
		res := Simulate(home, away, models.WeatherClear, rng)
		var sudden int
		preHome, preAway := res.HomeScore, res.AwayScore
		for _, ev := range res.Events {
			if ev.Type == EventSuddenDeathFG {
				sudden++
				if ev.TeamID == res.HomeTeamID {
					preHome -= ev.Points
				} else {
					preAway -= ev.Points
				}
			}
		}
		if res.Overtime {
			assert.Equal(t, 1, sudden)
			assert.Equal(t, preHome, preAway, "overtime without a regulation tie")
		} else {
			assert.Zero(t, sudden)
		}
	}
}

func TestScoreMatchesEvents(t *testing.T) {
	home := testLineup(82)
	away := testLineup(78)
	rng := rand.New(rand.NewSource(3))

	res := Simulate(home, away, models.WeatherClear, rng)

	var homePts, awayPts int
	for _, ev := range res.Events {
		switch ev.TeamID {
		case res.HomeTeamID:
			homePts += ev.Points
		case res.AwayTeamID:
			awayPts += ev.Points
		default:
			t.Fatalf("event for unknown team %s", ev.TeamID)
		}
	}
	assert.Equal(t, res.HomeScore, homePts)
	assert.Equal(t, res.AwayScore, awayPts)
}

func TestSimulateIsDeterministicForSeed(t *testing.T) {
	home := testLineup(80)
	away := testLineup(70)

	a := Simulate(home, away, models.WeatherSnow, rand.New(rand.NewSource(42)))
	b := Simulate(home, away, models.WeatherSnow, rand.New(rand.NewSource(42)))

	assert.Equal(t, a.HomeScore, b.HomeScore)
	assert.Equal(t, a.AwayScore, b.AwayScore)
	assert.Equal(t, a.Events, b.Events)
}

func TestEmptyPositionGroupsUseDefaultRating(t *testing.T) {
	home := Lineup{TeamID: uuid.New()} // nobody dressed at all
	away := testLineup(70)
	rng := rand.New(rand.NewSource(5))

	require.NotPanics(t, func() {
		res := Simulate(home, away, models.WeatherClear, rng)
		assert.NotEqual(t, res.HomeScore, res.AwayScore)
	})
}

func TestBetterRosterWinsMoreOften(t *testing.T) {
	strong := testLineup(92)
	weak := testLineup(60)
	rng := rand.New(rand.NewSource(19))

	wins := 0
	const trials = 400
	for i := 0; i < trials; i++ {
		res := Simulate(strong, weak, models.WeatherClear, rng)
		if res.HomeScore > res.AwayScore {
			wins++
		}
	}
	assert.Greater(t, wins, trials*6/10, "a 92-overall roster should beat a 60-overall roster well over half the time")
}

func TestWeatherSuppressesScoring(t *testing.T) {
	home := testLineup(80)
	away := testLineup(80)

	total := func(weather models.Weather, seed int64) int {
		rng := rand.New(rand.NewSource(seed))
		sum := 0
		for i := 0; i < 400; i++ {
			res := Simulate(home, away, weather, rng)
			sum += res.HomeScore + res.AwayScore
		}
		return sum
	}

	clear := total(models.WeatherClear, 23)
	snow := total(models.WeatherSnow, 23)
	assert.Greater(t, clear, snow, "snow games should average fewer points than clear games")
}

func TestStatAllocation(t *testing.T) {
	home := testLineup(80)
	away := testLineup(80)
	rng := rand.New(rand.NewSource(31))

	res := Simulate(home, away, models.WeatherClear, rng)

	byPlayer := make(map[uuid.UUID]models.StatLine)
	for _, line := range res.Stats {
		byPlayer[line.PlayerID] = line
	}

	for _, lineup := range []Lineup{home, away} {
		tds, fgs := 0, 0
		for _, ev := range res.Events {
			if ev.TeamID != lineup.TeamID {
				continue
			}
			switch ev.Type {
			case EventTouchdown:
				tds++
			case EventFieldGoal, EventSuddenDeathFG:
				fgs++
			}
		}

		qb := starter(lineup.Players, models.PositionQB)
		require.NotNil(t, qb)
		qbLine, ok := byPlayer[qb.PlayerID]
		require.True(t, ok, "starting QB has no stat line")
		assert.Equal(t, (tds+1)/2, qbLine.PassTDs)
		assert.GreaterOrEqual(t, qbLine.PassAttempts, qbLine.PassCompletions)

		k := starter(lineup.Players, models.PositionK)
		require.NotNil(t, k)
		kLine, ok := byPlayer[k.PlayerID]
		require.True(t, ok, "kicker has no stat line")
		assert.Equal(t, tds, kLine.ExtraPointsMade)
		assert.Equal(t, fgs, kLine.FieldGoalsMade)

		// Backup QBs get nothing.
		for _, p := range lineup.Players {
			if p.Position == models.PositionQB && p.DepthPosition > 1 {
				_, found := byPlayer[p.PlayerID]
				assert.False(t, found, "backup QB should not accrue stats")
			}
		}
	}
}
