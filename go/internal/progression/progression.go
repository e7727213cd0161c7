// Package progression ages players at season end: retirement draws,
// age/trait development curves, performance and morale modifiers, and
// the attribute recompute that follows.
package progression

import (
	"math"
	"math/rand"

	"github.com/jdports/gridiron/go/internal/models"
)

// MinGamesForPerformance is how many appearances a season needs before
// its stats move a player's development.
const MinGamesForPerformance = 8

// Input is one player's season going into the offseason.
type Input struct {
	Position   models.Position
	Attributes models.PlayerAttributes
	Summary    *models.PlayerSeasonSummary // nil when the player has no logged stats
}

// Outcome is the progression result for one player.
type Outcome struct {
	Retired               bool
	RetirementProbability float64
	Delta                 int
	Updated               models.PlayerAttributes // next season's snapshot
}

// Progress advances one player a season: age up, draw retirement, and
// if still playing apply the development delta to every sub-attribute.
func Progress(in Input, rng *rand.Rand) Outcome {
	attrs := in.Attributes
	attrs.Age++
	attrs.YearsPro++

	prob := RetirementProbability(attrs.Age, attrs.Overall, attrs.InjuryProneness)
	if rng.Float64() < prob {
		return Outcome{Retired: true, RetirementProbability: prob, Updated: attrs}
	}

	delta := baseDelta(attrs.Age, attrs.DevelopmentTrait) +
		performanceModifier(in.Position, in.Summary) +
		moraleModifier(attrs.Morale)

	attrs.Speed = applyDelta(attrs.Speed, delta, true)
	attrs.Agility = applyDelta(attrs.Agility, delta, true)
	attrs.Strength = applyDelta(attrs.Strength, delta, false)
	attrs.Awareness = applyDelta(attrs.Awareness, delta, false)
	attrs.Overall = models.WeightedOverall(attrs.Speed, attrs.Strength, attrs.Agility, attrs.Awareness)

	return Outcome{
		Retired:               false,
		RetirementProbability: prob,
		Delta:                 delta,
		Updated:               attrs,
	}
}

// RetirementProbability combines the age band with injury and
// performance modifiers, clamped to [0, 1]. Elite players in their
// prime hang on longer.
func RetirementProbability(age, overall, injuryProneness int) float64 {
	var prob float64
	switch {
	case age < 30:
		return 0
	case age <= 32:
		prob = 0.05
	case age <= 34:
		prob = 0.15
	case age <= 37:
		prob = 0.40
	default:
		prob = 0.75
	}

	if injuryProneness >= 80 {
		prob += 0.10
	}
	if overall < 65 {
		prob += 0.15
	}
	if overall >= 85 && age <= 32 {
		prob -= 0.10
	}

	if prob < 0 {
		return 0
	}
	if prob > 1 {
		return 1
	}
	return prob
}

// baseDelta is the age/trait development curve: young players with
// strong traits gain the most, old players with weak traits lose the
// most.
func baseDelta(age int, trait models.DevelopmentTrait) int {
	var row [4]int // superstar, star, normal, slow
	switch {
	case age <= 23:
		row = [4]int{3, 2, 1, 1}
	case age <= 26:
		row = [4]int{2, 2, 1, 0}
	case age <= 29:
		row = [4]int{1, 1, 0, 0}
	case age <= 32:
		row = [4]int{0, 0, -1, -1}
	default:
		row = [4]int{-1, -1, -2, -3}
	}

	switch trait {
	case models.TraitSuperstar:
		return row[0]
	case models.TraitStar:
		return row[1]
	case models.TraitSlow:
		return row[3]
	default:
		return row[2]
	}
}

// performanceModifier grades the season against position thresholds:
// +1 for a great year, -1 for a poor one, 0 otherwise. Short seasons
// never qualify.
func performanceModifier(pos models.Position, s *models.PlayerSeasonSummary) int {
	if s == nil || s.GamesPlayed < MinGamesForPerformance {
		return 0
	}

	switch pos {
	case models.PositionQB:
		return grade(s.PassYards, 4200, 3200)
	case models.PositionRB:
		return grade(s.RushYards, 1200, 600)
	case models.PositionWR:
		return grade(s.ReceivingYards, 1100, 500)
	case models.PositionTE:
		return grade(s.ReceivingYards, 700, 300)
	case models.PositionDL, models.PositionLB, models.PositionCB, models.PositionS:
		if s.Sacks >= 10 || s.Tackles >= 100 {
			return 1
		}
		if s.Tackles < 40 {
			return -1
		}
		return 0
	case models.PositionK:
		return grade(s.FieldGoalsMade, 25, 15)
	default:
		return 0
	}
}

func grade(value, great, poor int) int {
	switch {
	case value >= great:
		return 1
	case value < poor:
		return -1
	default:
		return 0
	}
}

func moraleModifier(morale int) int {
	switch {
	case morale >= 85:
		return 1
	case morale <= 30:
		return -1
	default:
		return 0
	}
}

// applyDelta moves one attribute. Speed and agility erode 30% faster
// than the other attributes when the delta is negative.
func applyDelta(value, delta int, fastTwitch bool) int {
	d := delta
	if delta < 0 && fastTwitch {
		d = int(math.Round(float64(delta) * 1.3))
	}
	return models.ClampRating(value + d)
}
