package gamesim

import (
	"sort"

	"github.com/jdports/gridiron/go/internal/models"
)

// allocateStats distributes a team's final tally into individual stat
// lines. The split is a deterministic function of the score and the
// roster's depth order: no extra randomness, so the same result always
// yields the same box score.
func allocateStats(lineup Lineup, tally teamTally, oppTurnovers int) []models.StatLine {
	points := tally.points()
	passTDs := (tally.touchdowns + 1) / 2
	rushTDs := tally.touchdowns - passTDs

	var lines []models.StatLine

	if qb := starter(lineup.Players, models.PositionQB); qb != nil {
		completions := 14 + points/2
		lines = append(lines, models.StatLine{
			PlayerID:        qb.PlayerID,
			TeamID:          lineup.TeamID,
			Position:        models.PositionQB,
			PassAttempts:    completions + 12,
			PassCompletions: completions,
			PassYards:       150 + points*6,
			PassTDs:         passTDs,
			Interceptions:   tally.turnovers / 2,
		})
	}

	backs := depthOrder(lineup.Players, models.PositionRB)
	rushYards := 80 + points*3
	rushShares := []int{65, 25, 10}
	for i, rb := range backs {
		if i >= len(rushShares) {
			break
		}
		yards := rushYards * rushShares[i] / 100
		tds := 0
		if i == 0 {
			tds = rushTDs
		}
		lines = append(lines, models.StatLine{
			PlayerID:     rb.PlayerID,
			TeamID:       lineup.TeamID,
			Position:     models.PositionRB,
			RushAttempts: 4 + yards/5,
			RushYards:    yards,
			RushTDs:      tds,
		})
	}

	// Receivers split the passing volume by depth rank: three wideouts
	// and the starting tight end.
	targets := depthOrder(lineup.Players, models.PositionWR)
	if len(targets) > 3 {
		targets = targets[:3]
	}
	if te := starter(lineup.Players, models.PositionTE); te != nil {
		targets = append(targets, *te)
	}
	passYards := 150 + points*6
	recShares := []int{35, 25, 15, 25}
	for i, rcv := range targets {
		if i >= len(recShares) {
			break
		}
		tds := 0
		if i < passTDs {
			tds = 1
		}
		if i == 0 && passTDs > len(recShares) {
			tds += passTDs - len(recShares)
		}
		yards := passYards * recShares[i] / 100
		lines = append(lines, models.StatLine{
			PlayerID:       rcv.PlayerID,
			TeamID:         lineup.TeamID,
			Position:       rcv.Position,
			Receptions:     2 + yards/12,
			ReceivingYards: yards,
			ReceivingTDs:   tds,
		})
	}

	// Defensive starters get tackle and sack counts.
	sacks := oppTurnovers/2 + 1
	for _, pos := range models.DefensivePositions() {
		if d := starter(lineup.Players, pos); d != nil {
			line := models.StatLine{
				PlayerID: d.PlayerID,
				TeamID:   lineup.TeamID,
				Position: pos,
				Tackles:  defensiveTackles(pos),
			}
			if pos == models.PositionDL {
				line.Sacks = sacks
			}
			lines = append(lines, line)
		}
	}

	if k := starter(lineup.Players, models.PositionK); k != nil {
		lines = append(lines, models.StatLine{
			PlayerID:        k.PlayerID,
			TeamID:          lineup.TeamID,
			Position:        models.PositionK,
			FieldGoalsMade:  tally.fieldGoals,
			ExtraPointsMade: tally.touchdowns,
		})
	}

	return lines
}

func defensiveTackles(pos models.Position) int {
	switch pos {
	case models.PositionLB:
		return 8
	case models.PositionDL:
		return 5
	default:
		return 4
	}
}

func starter(players []models.RosterPlayer, pos models.Position) *models.RosterPlayer {
	for i := range players {
		p := &players[i]
		if p.Position == pos && p.DepthPosition == 1 && p.Status == models.RosterStatusActive {
			return p
		}
	}
	return nil
}

// depthOrder returns the active players at a position sorted by depth
// rank, starter first.
func depthOrder(players []models.RosterPlayer, pos models.Position) []models.RosterPlayer {
	var out []models.RosterPlayer
	for _, p := range players {
		if p.Position == pos && p.Status == models.RosterStatusActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepthPosition < out[j].DepthPosition })
	return out
}
