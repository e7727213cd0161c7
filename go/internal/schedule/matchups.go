package schedule

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jdports/gridiron/go/internal/models"
)

// matchup is a (home, away) pairing before week placement.
type matchup struct {
	home       uuid.UUID
	away       uuid.UUID
	divisional bool
}

// league indexes the 32 teams by division with a rank order inside
// each division (prior-season record when available).
type league struct {
	byID      map[uuid.UUID]models.Team
	divisions map[models.DivisionKey][]models.Team // rank-ordered, best first
}

func newLeague(teams []models.Team, prev []models.TeamStanding) (*league, error) {
	if len(teams) != 32 {
		return nil, fmt.Errorf("schedule: league needs 32 teams, got %d", len(teams))
	}

	winPct := make(map[uuid.UUID]float64)
	for i := range prev {
		s := prev[i]
		winPct[s.TeamID] = s.WinPct()
	}

	l := &league{
		byID:      make(map[uuid.UUID]models.Team, len(teams)),
		divisions: make(map[models.DivisionKey][]models.Team, 8),
	}
	for _, t := range teams {
		l.byID[t.ID] = t
		key := models.DivisionKey{Conference: t.Conference, Division: t.Division}
		l.divisions[key] = append(l.divisions[key], t)
	}

	if len(l.divisions) != 8 {
		return nil, fmt.Errorf("schedule: league needs 8 divisions, got %d", len(l.divisions))
	}
	for key, members := range l.divisions {
		if len(members) != 4 {
			return nil, fmt.Errorf("schedule: division %s %s has %d teams, want 4", key.Conference, key.Division, len(members))
		}
		sort.Slice(members, func(i, j int) bool {
			pi, pj := winPct[members[i].ID], winPct[members[j].ID]
			if pi != pj {
				return pi > pj
			}
			return members[i].Name < members[j].Name
		})
	}
	return l, nil
}

func (l *league) division(conf models.Conference, div models.Division) []models.Team {
	return l.divisions[models.DivisionKey{Conference: conf, Division: div}]
}

// buildMatchups produces the full 272-game slate:
// 6 divisional + 4 paired-division intra-conference + 2 rank-based
// intra-conference + 4 paired-division inter-conference + 1 rank-matched
// seventeenth game per team. Pairings rotate with the season year.
func buildMatchups(l *league, year int) []matchup {
	var out []matchup
	out = append(out, divisionalMatchups(l)...)
	out = append(out, intraConferenceMatchups(l, year)...)
	out = append(out, interConferenceMatchups(l, year)...)
	out = append(out, seventeenthGameMatchups(l, year)...)
	return out
}

// divisionalMatchups: every team hosts each division rival once.
func divisionalMatchups(l *league) []matchup {
	var out []matchup
	for _, key := range models.Divisions() {
		members := l.divisions[key]
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				out = append(out,
					matchup{home: members[i].ID, away: members[j].ID, divisional: true},
					matchup{home: members[j].ID, away: members[i].ID, divisional: true},
				)
			}
		}
	}
	return out
}

// divisionOrder is the rotation base for pairings.
var divisionOrder = []models.Division{
	models.DivisionEast, models.DivisionNorth, models.DivisionSouth, models.DivisionWest,
}

// intraPairings returns the two division pairings inside a conference
// for a season year. The three possible pairings of four divisions
// rotate on a three-year cycle.
func intraPairings(year int) [2][2]models.Division {
	switch year % 3 {
	case 0:
		return [2][2]models.Division{{divisionOrder[0], divisionOrder[1]}, {divisionOrder[2], divisionOrder[3]}}
	case 1:
		return [2][2]models.Division{{divisionOrder[0], divisionOrder[2]}, {divisionOrder[1], divisionOrder[3]}}
	default:
		return [2][2]models.Division{{divisionOrder[0], divisionOrder[3]}, {divisionOrder[1], divisionOrder[2]}}
	}
}

// intraConferenceMatchups: each team plays all four teams of its
// paired division (two home, two away), plus rank-based games against
// the same-rank team in each unpaired division (one home, one away).
func intraConferenceMatchups(l *league, year int) []matchup {
	var out []matchup
	for _, conf := range []models.Conference{models.ConferenceAFC, models.ConferenceNFC} {
		pairings := intraPairings(year)
		for _, pair := range pairings {
			out = append(out, crossDivision(l.division(conf, pair[0]), l.division(conf, pair[1]))...)
		}
		// Rank-based games run across the pairing boundary.
		a, b := l.division(conf, pairings[0][0]), l.division(conf, pairings[0][1])
		c, d := l.division(conf, pairings[1][0]), l.division(conf, pairings[1][1])
		for rank := 0; rank < 4; rank++ {
			if rank%2 == 0 {
				out = append(out,
					matchup{home: a[rank].ID, away: c[rank].ID},
					matchup{home: d[rank].ID, away: a[rank].ID},
					matchup{home: b[rank].ID, away: d[rank].ID},
					matchup{home: c[rank].ID, away: b[rank].ID},
				)
			} else {
				out = append(out,
					matchup{home: c[rank].ID, away: a[rank].ID},
					matchup{home: a[rank].ID, away: d[rank].ID},
					matchup{home: d[rank].ID, away: b[rank].ID},
					matchup{home: b[rank].ID, away: c[rank].ID},
				)
			}
		}
	}
	return out
}

// interConferenceMatchups: AFC division i hosts-and-travels against the
// NFC division offset by the season year.
func interConferenceMatchups(l *league, year int) []matchup {
	var out []matchup
	for i, div := range divisionOrder {
		nfcDiv := divisionOrder[(i+year)%4]
		out = append(out, crossDivision(
			l.division(models.ConferenceAFC, div),
			l.division(models.ConferenceNFC, nfcDiv),
		)...)
	}
	return out
}

// seventeenthGameMatchups: one extra cross-conference game against the
// same-rank team of a division not already on the schedule. The AFC
// hosts in even years.
func seventeenthGameMatchups(l *league, year int) []matchup {
	var out []matchup
	for i, div := range divisionOrder {
		nfcDiv := divisionOrder[(i+year+2)%4]
		afc := l.division(models.ConferenceAFC, div)
		nfc := l.division(models.ConferenceNFC, nfcDiv)
		for rank := 0; rank < 4; rank++ {
			if year%2 == 0 {
				out = append(out, matchup{home: afc[rank].ID, away: nfc[rank].ID})
			} else {
				out = append(out, matchup{home: nfc[rank].ID, away: afc[rank].ID})
			}
		}
	}
	return out
}

// crossDivision builds the 16 games between two divisions with a 2-2
// home/away split for every team.
func crossDivision(a, b []models.Team) []matchup {
	var out []matchup
	for i := range a {
		for j := range b {
			if (i+j)%2 == 0 {
				out = append(out, matchup{home: a[i].ID, away: b[j].ID})
			} else {
				out = append(out, matchup{home: b[j].ID, away: a[i].ID})
			}
		}
	}
	return out
}
