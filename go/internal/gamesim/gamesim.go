// Package gamesim simulates a single game between two rosters.
// It is pure: rosters come in as value objects, results go out as
// value objects, and all randomness flows through the injected source.
package gamesim

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/jdports/gridiron/go/internal/models"
)

// Possessions is the fixed number of alternating drives per game.
const Possessions = 24

// DefaultGroupRating stands in for any position group with no eligible
// player so the rating means stay defined.
const DefaultGroupRating = 70.0

// homeFieldBonus is rating points added to the home team's advantage,
// spread across its own possessions.
const homeFieldBonus = 2.0

// EventType classifies a scoring event
type EventType string

const (
	EventTouchdown     EventType = "TOUCHDOWN"
	EventFieldGoal     EventType = "FIELD_GOAL"
	EventSuddenDeathFG EventType = "SUDDEN_DEATH_FG"
)

// Lineup is one team's roster going into a game.
type Lineup struct {
	TeamID  uuid.UUID
	Players []models.RosterPlayer
}

// ScoringEvent records one score and the possession it happened on.
type ScoringEvent struct {
	Possession int       `json:"possession"`
	TeamID     uuid.UUID `json:"team_id"`
	Type       EventType `json:"type"`
	Points     int       `json:"points"`
}

// Result is the full outcome of a simulated game.
type Result struct {
	HomeTeamID uuid.UUID
	AwayTeamID uuid.UUID
	HomeScore  int
	AwayScore  int
	Overtime   bool
	Events     []ScoringEvent
	Stats      []models.StatLine
}

// teamTally accumulates per-team drive outcomes during simulation.
type teamTally struct {
	touchdowns int
	fieldGoals int
	turnovers  int
}

func (t teamTally) points() int {
	return t.touchdowns*7 + t.fieldGoals*3
}

// Simulate plays one game between two lineups under the given weather.
// The home team takes the odd possessions and the home-field bonus.
func Simulate(home, away Lineup, weather models.Weather, rng *rand.Rand) Result {
	homeOff := groupMean(home.Players, models.OffensivePositions())
	homeDef := groupMean(home.Players, models.DefensivePositions())
	awayOff := groupMean(away.Players, models.OffensivePositions())
	awayDef := groupMean(away.Players, models.DefensivePositions())

	mult := weatherMultiplier(weather)

	var homeTally, awayTally teamTally
	var events []ScoringEvent

	for i := 0; i < Possessions; i++ {
		homeBall := i%2 == 0
		var adv float64
		var tally *teamTally
		var teamID uuid.UUID
		if homeBall {
			adv = homeOff - awayDef + homeFieldBonus
			tally = &homeTally
			teamID = home.TeamID
		} else {
			adv = awayOff - homeDef
			tally = &awayTally
			teamID = away.TeamID
		}

		outcome := simulatePossession(adv, mult, rng)
		switch outcome {
		case EventTouchdown:
			tally.touchdowns++
			events = append(events, ScoringEvent{Possession: i + 1, TeamID: teamID, Type: EventTouchdown, Points: 7})
		case EventFieldGoal:
			tally.fieldGoals++
			events = append(events, ScoringEvent{Possession: i + 1, TeamID: teamID, Type: EventFieldGoal, Points: 3})
		case outcomeTurnover:
			tally.turnovers++
		}
	}

	homeScore := homeTally.points()
	awayScore := awayTally.points()
	overtime := homeScore == awayScore

	if overtime {
		// Sudden-death field goal, winner by coin flip.
		if rng.Intn(2) == 0 {
			homeTally.fieldGoals++
			homeScore += 3
			events = append(events, ScoringEvent{Possession: Possessions + 1, TeamID: home.TeamID, Type: EventSuddenDeathFG, Points: 3})
		} else {
			awayTally.fieldGoals++
			awayScore += 3
			events = append(events, ScoringEvent{Possession: Possessions + 1, TeamID: away.TeamID, Type: EventSuddenDeathFG, Points: 3})
		}
	}

	stats := allocateStats(home, homeTally, awayTally.turnovers)
	stats = append(stats, allocateStats(away, awayTally, homeTally.turnovers)...)

	return Result{
		HomeTeamID: home.TeamID,
		AwayTeamID: away.TeamID,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
		Overtime:   overtime,
		Events:     events,
		Stats:      stats,
	}
}

// outcomeTurnover is internal to the drive model; turnovers never score
// so they are not an exported event type.
const outcomeTurnover EventType = "TURNOVER"

// simulatePossession resolves one drive from the offense's advantage.
// Outcome probabilities are linear in the advantage and a random field
// position, each clamped to its band, decided by a single uniform draw.
func simulatePossession(advantage, weatherMult float64, rng *rand.Rand) EventType {
	fieldPos := 20 + rng.Float64()*40 // own 20 to opponent 40

	pTD := clamp(0.18+advantage*0.006+(fieldPos-40)*0.002, 0.05, 0.45) * weatherMult
	pFG := clamp(0.15+advantage*0.003+(fieldPos-40)*0.0015, 0.05, 0.35) * weatherMult
	pTO := clamp(0.12-advantage*0.004, 0.05, 0.25)

	draw := rng.Float64()
	switch {
	case draw < pTD:
		return EventTouchdown
	case draw < pTD+pFG:
		return EventFieldGoal
	case draw < pTD+pFG+pTO:
		return outcomeTurnover
	default:
		return "PUNT"
	}
}

func weatherMultiplier(w models.Weather) float64 {
	switch w {
	case models.WeatherRain:
		return 0.9
	case models.WeatherSnow:
		return 0.8
	case models.WeatherWind:
		return 0.85
	default:
		return 1.0
	}
}

// groupMean averages the overall rating of the depth-one starters in
// the given position groups. Groups with no eligible player count as
// DefaultGroupRating.
func groupMean(players []models.RosterPlayer, groups []models.Position) float64 {
	var sum float64
	for _, pos := range groups {
		sum += starterRating(players, pos)
	}
	return sum / float64(len(groups))
}

func starterRating(players []models.RosterPlayer, pos models.Position) float64 {
	for _, p := range players {
		if p.Position == pos && p.DepthPosition == 1 && p.Status == models.RosterStatusActive {
			return float64(p.Attributes.Overall)
		}
	}
	return DefaultGroupRating
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
