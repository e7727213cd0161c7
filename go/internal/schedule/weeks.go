package schedule

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/jdports/gridiron/go/internal/calendar"
)

// assignByes spreads the 32 teams four per week across the bye window.
func assignByes(l *league, rng *rand.Rand) map[uuid.UUID]int {
	ids := make([]uuid.UUID, 0, len(l.byID))
	for id := range l.byID {
		ids = append(ids, id)
	}
	// Map iteration order is not stable; sort before shuffling so the
	// outcome is a pure function of the rng.
	sortUUIDs(ids)
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	byes := make(map[uuid.UUID]int, len(ids))
	for i, id := range ids {
		byes[id] = ByeWeekFirst + i/TeamsOnByePerWeek
	}
	return byes
}

// assignWeeks places all matchups into weeks 1-18. Week 18 is carved
// out first as an all-divisional slate covering every team; the rest
// go through a greedy most-constrained-first search with randomized
// restarts.
func assignWeeks(matchups []matchup, byes map[uuid.UUID]int, rng *rand.Rand) (map[int][]matchup, error) {
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		week18, remaining := pickWeek18(matchups, rng)
		placed, ok := greedyPlace(remaining, byes, rng)
		if !ok {
			continue
		}
		placed[calendar.RegularSeasonWeeks] = week18
		return placed, nil
	}
	return nil, ErrUnsatisfiable
}

// pickWeek18 selects 16 divisional matchups whose teams are pairwise
// disjoint: for each division, one of the three ways to split its four
// teams into two games, with a random home/away orientation.
func pickWeek18(matchups []matchup, rng *rand.Rand) ([]matchup, []matchup) {
	// Group the divisional matchups by their unordered pair.
	type pairKey struct{ a, b uuid.UUID }
	key := func(x, y uuid.UUID) pairKey {
		if x.String() < y.String() {
			return pairKey{x, y}
		}
		return pairKey{y, x}
	}

	teamsSeen := make(map[uuid.UUID][]uuid.UUID) // team -> division mates encountered
	byPair := make(map[pairKey][]int)
	for i, m := range matchups {
		if !m.divisional {
			continue
		}
		byPair[key(m.home, m.away)] = append(byPair[key(m.home, m.away)], i)
		teamsSeen[m.home] = appendUnique(teamsSeen[m.home], m.away)
	}

	chosen := make(map[int]bool)
	covered := make(map[uuid.UUID]bool)

	// The three disjoint splits of a four-team division.
	splits := [3][2][2]int{
		{{0, 1}, {2, 3}},
		{{0, 2}, {1, 3}},
		{{0, 3}, {1, 2}},
	}

	// Iterate teams in a stable order so the rng draws replay.
	teamIDs := make([]uuid.UUID, 0, len(teamsSeen))
	for id := range teamsSeen {
		teamIDs = append(teamIDs, id)
	}
	sortUUIDs(teamIDs)

	for _, team := range teamIDs {
		rivals := teamsSeen[team]
		if covered[team] || len(rivals) != 3 {
			continue
		}
		division := append([]uuid.UUID{team}, rivals...)
		sortUUIDs(division)
		split := splits[rng.Intn(3)]
		for _, pair := range split {
			k := key(division[pair[0]], division[pair[1]])
			idxs := byPair[k]
			chosen[idxs[rng.Intn(len(idxs))]] = true
		}
		for _, id := range division {
			covered[id] = true
		}
	}

	var week18, remaining []matchup
	for i, m := range matchups {
		if chosen[i] {
			week18 = append(week18, m)
		} else {
			remaining = append(remaining, m)
		}
	}
	return week18, remaining
}

// greedyPlace assigns matchups to weeks 1-17 most-constrained-first:
// on every step the matchup with the fewest legal weeks left is placed
// into its least-loaded legal week. Returns false on a dead end.
func greedyPlace(matchups []matchup, byes map[uuid.UUID]int, rng *rand.Rand) (map[int][]matchup, bool) {
	const lastWeek = calendar.RegularSeasonWeeks - 1

	capacity := make([]int, lastWeek+1)
	for w := 1; w <= lastWeek; w++ {
		capacity[w] = weekCapacity
		if w >= ByeWeekFirst && w <= ByeWeekLast {
			capacity[w] = byeWeekCapacity
		}
	}

	busy := make(map[uuid.UUID]map[int]bool, 32)
	legalWeeks := func(m matchup) []int {
		var weeks []int
		for w := 1; w <= lastWeek; w++ {
			if capacity[w] == 0 || busy[m.home][w] || busy[m.away][w] {
				continue
			}
			if byes[m.home] == w || byes[m.away] == w {
				continue
			}
			weeks = append(weeks, w)
		}
		return weeks
	}

	unplaced := make([]matchup, len(matchups))
	copy(unplaced, matchups)
	rng.Shuffle(len(unplaced), func(i, j int) { unplaced[i], unplaced[j] = unplaced[j], unplaced[i] })

	placed := make(map[int][]matchup)
	for len(unplaced) > 0 {
		// Most-constrained matchup first.
		best, bestWeeks := -1, []int(nil)
		for i, m := range unplaced {
			weeks := legalWeeks(m)
			if len(weeks) == 0 {
				return nil, false
			}
			if best == -1 || len(weeks) < len(bestWeeks) {
				best, bestWeeks = i, weeks
				if len(weeks) == 1 {
					break
				}
			}
		}

		m := unplaced[best]
		unplaced[best] = unplaced[len(unplaced)-1]
		unplaced = unplaced[:len(unplaced)-1]

		// Least-loaded legal week, random among ties.
		var candidates []int
		maxCap := -1
		for _, w := range bestWeeks {
			switch {
			case capacity[w] > maxCap:
				maxCap = capacity[w]
				candidates = candidates[:0]
				candidates = append(candidates, w)
			case capacity[w] == maxCap:
				candidates = append(candidates, w)
			}
		}
		week := candidates[rng.Intn(len(candidates))]

		capacity[week]--
		for _, id := range []uuid.UUID{m.home, m.away} {
			if busy[id] == nil {
				busy[id] = make(map[int]bool)
			}
			busy[id][week] = true
		}
		placed[week] = append(placed[week], m)
	}
	return placed, true
}

func appendUnique(list []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for _, v := range list {
		if v == id {
			return list
		}
	}
	return append(list, id)
}

func sortUUIDs(ids []uuid.UUID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j].String() < ids[j-1].String(); j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
}
