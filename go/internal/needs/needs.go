// Package needs derives positional deficiency scores from a roster
// snapshot. Output is a pure function of roster state: callers
// recompute on demand rather than persisting the result.
package needs

import (
	"sort"

	"github.com/google/uuid"

	"github.com/jdports/gridiron/go/internal/models"
)

// qualityThreshold is the average rating below which a position group
// starts accruing a quality deficit.
const qualityThreshold = 75.0

// idealRoster is the headcount a full depth chart carries per position.
var idealRoster = map[models.Position]int{
	models.PositionQB: 3,
	models.PositionRB: 4,
	models.PositionWR: 6,
	models.PositionTE: 3,
	models.PositionOL: 8,
	models.PositionDL: 6,
	models.PositionLB: 6,
	models.PositionCB: 5,
	models.PositionS:  4,
	models.PositionK:  1,
	models.PositionP:  1,
}

// PositionNeed is one position's deficiency assessment.
type PositionNeed struct {
	Position     models.Position     `json:"position"`
	Score        int                 `json:"score"` // [0, 100]
	Priority     models.PriorityTier `json:"priority"`
	CurrentCount int                 `json:"current_count"`
	IdealCount   int                 `json:"ideal_count"`
	AvgRating    float64             `json:"avg_rating"`
}

// TeamNeeds is the full assessment for one team and season, sorted
// most-needed first.
type TeamNeeds struct {
	TeamID    uuid.UUID      `json:"team_id"`
	SeasonID  uuid.UUID      `json:"season_id"`
	Positions []PositionNeed `json:"positions"`
}

// ByPosition returns the need for a single position.
func (n *TeamNeeds) ByPosition(pos models.Position) (PositionNeed, bool) {
	for _, p := range n.Positions {
		if p.Position == pos {
			return p, true
		}
	}
	return PositionNeed{}, false
}

// CriticalCount reports how many positions sit in the critical band.
func (n *TeamNeeds) CriticalCount() int {
	count := 0
	for _, p := range n.Positions {
		if p.Priority == models.TierCritical {
			count++
		}
	}
	return count
}

// Assess scores every tracked position against the ideal roster table.
// The score is a weighted sum of count deficit (up to 60 points) and
// quality deficit for groups averaging under 75 (up to 40 points).
func Assess(teamID, seasonID uuid.UUID, roster []models.RosterPlayer) TeamNeeds {
	counts := make(map[models.Position]int)
	ratingSums := make(map[models.Position]int)
	for _, p := range roster {
		if p.Status != models.RosterStatusActive {
			continue
		}
		counts[p.Position]++
		ratingSums[p.Position] += p.Attributes.Overall
	}

	result := TeamNeeds{TeamID: teamID, SeasonID: seasonID}
	for pos, ideal := range idealRoster {
		count := counts[pos]
		var avg float64
		if count > 0 {
			avg = float64(ratingSums[pos]) / float64(count)
		}

		score := 0
		if deficit := ideal - count; deficit > 0 {
			score += minInt(60, deficit*20)
		}
		// An empty group is the worst possible quality, not no quality.
		if count == 0 {
			score += 40
		} else if avg < qualityThreshold {
			score += minInt(40, int((qualityThreshold-avg)*2))
		}
		if score > 100 {
			score = 100
		}

		result.Positions = append(result.Positions, PositionNeed{
			Position:     pos,
			Score:        score,
			Priority:     priorityFor(score),
			CurrentCount: count,
			IdealCount:   ideal,
			AvgRating:    avg,
		})
	}

	sort.Slice(result.Positions, func(i, j int) bool {
		if result.Positions[i].Score != result.Positions[j].Score {
			return result.Positions[i].Score > result.Positions[j].Score
		}
		return result.Positions[i].Position < result.Positions[j].Position
	})
	return result
}

// priorityFor maps a need score into its priority band.
func priorityFor(score int) models.PriorityTier {
	switch {
	case score >= 75:
		return models.TierCritical
	case score >= 50:
		return models.TierHigh
	case score >= 25:
		return models.TierMedium
	default:
		return models.TierLow
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
