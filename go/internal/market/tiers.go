package market

import "math/rand"

// Tiered weekly availability: free agents come off the board in waves.
// Each overall-rating tier carries a signing-probability curve and a
// value-multiplier curve over the first twenty weeks of the market,
// producing the early rush on stars and late bargains on depth.

// marketWeeks is the horizon of the tier curves; weeks past it reuse
// the final value.
const marketWeeks = 20

type tier struct {
	minOverall int
	signProb   [marketWeeks]float64
	valueMult  [marketWeeks]float64
}

var tiers = []tier{
	{
		// Elite players all but disappear in the first fortnight.
		minOverall: 85,
		signProb: [marketWeeks]float64{
			0.95, 0.90, 0.75, 0.60, 0.45, 0.35, 0.30, 0.25, 0.20, 0.20,
			0.20, 0.20, 0.20, 0.20, 0.20, 0.20, 0.20, 0.20, 0.20, 0.20,
		},
		valueMult: [marketWeeks]float64{
			1.20, 1.15, 1.10, 1.05, 1.00, 0.98, 0.95, 0.95, 0.92, 0.90,
			0.90, 0.88, 0.85, 0.85, 0.82, 0.80, 0.80, 0.80, 0.80, 0.80,
		},
	},
	{
		minOverall: 75,
		signProb: [marketWeeks]float64{
			0.70, 0.70, 0.65, 0.60, 0.55, 0.50, 0.45, 0.40, 0.35, 0.30,
			0.30, 0.30, 0.30, 0.30, 0.30, 0.30, 0.30, 0.30, 0.30, 0.30,
		},
		valueMult: [marketWeeks]float64{
			1.10, 1.08, 1.05, 1.02, 1.00, 0.98, 0.95, 0.92, 0.90, 0.88,
			0.85, 0.85, 0.82, 0.80, 0.80, 0.78, 0.75, 0.75, 0.75, 0.75,
		},
	},
	{
		minOverall: 65,
		signProb: [marketWeeks]float64{
			0.40, 0.42, 0.45, 0.48, 0.50, 0.52, 0.55, 0.55, 0.55, 0.55,
			0.55, 0.55, 0.55, 0.55, 0.55, 0.55, 0.55, 0.55, 0.55, 0.55,
		},
		valueMult: [marketWeeks]float64{
			1.00, 1.00, 0.98, 0.96, 0.94, 0.92, 0.90, 0.88, 0.86, 0.84,
			0.82, 0.80, 0.78, 0.76, 0.74, 0.72, 0.70, 0.70, 0.70, 0.70,
		},
	},
	{
		// Camp bodies trickle in all period long.
		minOverall: 0,
		signProb: [marketWeeks]float64{
			0.15, 0.18, 0.20, 0.25, 0.30, 0.35, 0.40, 0.45, 0.50, 0.55,
			0.60, 0.60, 0.60, 0.60, 0.60, 0.60, 0.60, 0.60, 0.60, 0.60,
		},
		valueMult: [marketWeeks]float64{
			0.95, 0.92, 0.90, 0.88, 0.85, 0.82, 0.80, 0.78, 0.75, 0.72,
			0.70, 0.68, 0.65, 0.62, 0.60, 0.60, 0.60, 0.60, 0.60, 0.60,
		},
	},
}

func tierFor(overall int) tier {
	for _, t := range tiers {
		if overall >= t.minOverall {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

func weekIndex(week int) int {
	if week < 1 {
		week = 1
	}
	if week > marketWeeks {
		week = marketWeeks
	}
	return week - 1
}

// InPlay draws whether a free agent is actively shopping this week.
func InPlay(overall, week int, rng *rand.Rand) bool {
	return rng.Float64() < SignProbability(overall, week)
}

// SignProbability exposes the raw curve for a rating and week.
func SignProbability(overall, week int) float64 {
	return tierFor(overall).signProb[weekIndex(week)]
}

// ValueMultiplier scales a free agent's market value for the week.
func ValueMultiplier(overall, week int) float64 {
	return tierFor(overall).valueMult[weekIndex(week)]
}
