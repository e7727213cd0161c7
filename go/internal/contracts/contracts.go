// Package contracts handles season-end cap arithmetic: contract
// rollover, expiry into free agency, and next-season cap computation.
package contracts

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jdports/gridiron/go/internal/models"
)

// MaxRollover caps how much unused cap space carries into next season.
const MaxRollover = 20_000_000

// salaryInflation is the year-over-year market growth applied when
// estimating an expiring player's value.
const salaryInflation = 1.05

// RolloverResult partitions an ending season's contracts.
type RolloverResult struct {
	// Carried are the next-season contracts for players still under
	// contract.
	Carried []models.Contract
	// Expired are the new free-agent listings for contracts that ran
	// out. The caller removes the matching roster spots.
	Expired []models.FreeAgent
	// DroppedRetired counts contracts silently dropped for retirees.
	DroppedRetired int
}

// Rollover processes every contract of the ending season. Retired
// players' deals vanish; everyone else loses a year, with expiring
// deals turning into free-agent listings priced off the old salary.
func Rollover(all []models.Contract, retired map[uuid.UUID]bool, nextSeasonID uuid.UUID, now time.Time, rng *rand.Rand) RolloverResult {
	var result RolloverResult
	for _, c := range all {
		if retired[c.PlayerID] {
			result.DroppedRetired++
			continue
		}

		remaining := c.YearsRemaining - 1
		if remaining <= 0 {
			prevTeam := c.TeamID
			result.Expired = append(result.Expired, models.FreeAgent{
				ID:             uuid.New(),
				PlayerID:       c.PlayerID,
				SeasonID:       nextSeasonID,
				MarketValue:    EstimateMarketValue(c.AnnualSalary, rng),
				PreviousTeamID: &prevTeam,
				Status:         models.FreeAgentAvailable,
				ListedAt:       now,
			})
			continue
		}

		result.Carried = append(result.Carried, models.Contract{
			ID:              uuid.New(),
			PlayerID:        c.PlayerID,
			TeamID:          c.TeamID,
			SeasonID:        nextSeasonID,
			AnnualSalary:    c.AnnualSalary,
			GuaranteedMoney: reducedGuarantee(c, remaining),
			YearsTotal:      c.YearsTotal,
			YearsRemaining:  remaining,
			SignedAt:        c.SignedAt,
		})
	}
	return result
}

// reducedGuarantee burns guaranteed money off proportionally to the
// years already played.
func reducedGuarantee(c models.Contract, remaining int) int64 {
	if c.YearsTotal <= 0 {
		return 0
	}
	return c.GuaranteedMoney * int64(remaining) / int64(c.YearsTotal)
}

// EstimateMarketValue prices an expiring player: previous salary with
// a year of inflation and a seeded 0.9-1.1 market spread.
func EstimateMarketValue(previousSalary int64, rng *rand.Rand) int64 {
	spread := 0.9 + rng.Float64()*0.2
	return int64(float64(previousSalary) * salaryInflation * spread)
}

// NextSeasonFinances rolls a team's cap forward: same salary cap, up
// to MaxRollover of unused space carried, less the cap hits already
// committed to next season.
func NextSeasonFinances(current models.TeamFinances, nextSeasonID uuid.UUID, nextSeasonCapHits int64) models.TeamFinances {
	rollover := current.CapSpace
	if rollover > MaxRollover {
		rollover = MaxRollover
	}
	if rollover < 0 {
		rollover = 0
	}

	return models.TeamFinances{
		ID:          uuid.New(),
		TeamID:      current.TeamID,
		SeasonID:    nextSeasonID,
		SalaryCap:   current.SalaryCap,
		RolloverCap: rollover,
		CapSpace:    current.SalaryCap + rollover - nextSeasonCapHits,
		DeadMoney:   0,
	}
}

// CapHitTotal sums the cap charges of a contract set.
func CapHitTotal(all []models.Contract) int64 {
	var total int64
	for i := range all {
		total += all[i].CapHit()
	}
	return total
}
