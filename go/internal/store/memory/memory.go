// Package memory is an in-memory store.Store used by tests and local
// runs without a database. All methods copy on the way in and out, and
// list methods return deterministic orderings so seeded simulations
// replay byte-for-byte.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jdports/gridiron/go/internal/market"
	"github.com/jdports/gridiron/go/internal/models"
	"github.com/jdports/gridiron/go/internal/store"
)

// Store holds every entity in maps behind a single mutex.
type Store struct {
	mu sync.Mutex

	franchises  map[uuid.UUID]models.Franchise
	seasons     map[uuid.UUID]models.Season
	teams       map[uuid.UUID]models.Team
	players     map[uuid.UUID]models.Player
	attrs       map[uuid.UUID]map[uuid.UUID]models.PlayerAttributes // season -> player
	spots       map[uuid.UUID]map[uuid.UUID]models.RosterSpot       // season -> player
	contracts   map[uuid.UUID][]models.Contract                     // season
	freeAgents  map[uuid.UUID]map[uuid.UUID]models.FreeAgent        // season -> free agent id
	finances    map[uuid.UUID]map[uuid.UUID]models.TeamFinances     // season -> team
	standings   map[uuid.UUID]map[uuid.UUID]models.TeamStanding     // season -> team
	games       map[uuid.UUID]models.Game
	byes        map[uuid.UUID][]models.ByeWeek // season
	aiStates    map[uuid.UUID]map[uuid.UUID]models.TeamAIState // season -> team
	stats       map[uuid.UUID][]models.PlayerGameStats          // season
	retirements []models.PlayerRetirement
}

var _ store.Store = (*Store)(nil)

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		franchises: make(map[uuid.UUID]models.Franchise),
		seasons:    make(map[uuid.UUID]models.Season),
		teams:      make(map[uuid.UUID]models.Team),
		players:    make(map[uuid.UUID]models.Player),
		attrs:      make(map[uuid.UUID]map[uuid.UUID]models.PlayerAttributes),
		spots:      make(map[uuid.UUID]map[uuid.UUID]models.RosterSpot),
		contracts:  make(map[uuid.UUID][]models.Contract),
		freeAgents: make(map[uuid.UUID]map[uuid.UUID]models.FreeAgent),
		finances:   make(map[uuid.UUID]map[uuid.UUID]models.TeamFinances),
		standings:  make(map[uuid.UUID]map[uuid.UUID]models.TeamStanding),
		games:      make(map[uuid.UUID]models.Game),
		byes:       make(map[uuid.UUID][]models.ByeWeek),
		aiStates:   make(map[uuid.UUID]map[uuid.UUID]models.TeamAIState),
		stats:      make(map[uuid.UUID][]models.PlayerGameStats),
	}
}

func sortByID(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
}

// Franchises

func (s *Store) CreateFranchise(_ context.Context, franchise *models.Franchise) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.franchises[franchise.ID] = *franchise
	return nil
}

func (s *Store) GetFranchise(_ context.Context, id uuid.UUID) (*models.Franchise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.franchises[id]
	if !ok || f.Deleted {
		return nil, store.ErrNotFound
	}
	return &f, nil
}

func (s *Store) UpdateFranchiseSeason(_ context.Context, id, seasonID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.franchises[id]
	if !ok {
		return store.ErrNotFound
	}
	f.CurrentSeasonID = seasonID
	s.franchises[id] = f
	return nil
}

// Seasons

func (s *Store) CreateSeason(_ context.Context, season *models.Season) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seasons[season.ID] = *season
	return nil
}

func (s *Store) GetSeason(_ context.Context, id uuid.UUID) (*models.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	season, ok := s.seasons[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &season, nil
}

func (s *Store) GetTemplateSeason(_ context.Context) (*models.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, season := range s.seasons {
		if season.IsTemplate {
			out := season
			return &out, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UpdateSeasonState(_ context.Context, id uuid.UUID, state store.SeasonState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	season, ok := s.seasons[id]
	if !ok {
		return store.ErrNotFound
	}
	season.SimulationDate = state.SimulationDate
	season.CurrentWeek = state.CurrentWeek
	season.Phase = state.Phase
	season.TradeDeadlinePassed = state.TradeDeadlinePassed
	s.seasons[id] = season
	return nil
}

// Teams

func (s *Store) CreateTeams(_ context.Context, teams []models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range teams {
		s.teams[t.ID] = t
	}
	return nil
}

func (s *Store) GetTeam(_ context.Context, id uuid.UUID) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &t, nil
}

func (s *Store) ListTeams(_ context.Context) ([]models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0
	})
	return out, nil
}

// Players

func (s *Store) CreatePlayers(_ context.Context, players []models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range players {
		s.players[p.ID] = p
	}
	return nil
}

func (s *Store) GetPlayer(_ context.Context, id uuid.UUID) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *Store) ListPlayersByIDs(_ context.Context, ids []uuid.UUID) ([]models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Player, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.players[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// Attributes

func (s *Store) CreateAttributes(_ context.Context, attrs []models.PlayerAttributes) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range attrs {
		season := s.attrs[a.SeasonID]
		if season == nil {
			season = make(map[uuid.UUID]models.PlayerAttributes)
			s.attrs[a.SeasonID] = season
		}
		season[a.PlayerID] = a
	}
	return nil
}

func (s *Store) GetAttributes(_ context.Context, playerID, seasonID uuid.UUID) (*models.PlayerAttributes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attrs[seasonID][playerID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &a, nil
}

func (s *Store) ListAttributesBySeason(_ context.Context, seasonID uuid.UUID) ([]models.PlayerAttributes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(s.attrs[seasonID]))
	for id := range s.attrs[seasonID] {
		ids = append(ids, id)
	}
	sortByID(ids)
	out := make([]models.PlayerAttributes, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.attrs[seasonID][id])
	}
	return out, nil
}

// Rosters

func (s *Store) CreateRosterSpots(_ context.Context, spots []models.RosterSpot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, spot := range spots {
		s.putSpotLocked(spot)
	}
	return nil
}

func (s *Store) putSpotLocked(spot models.RosterSpot) {
	season := s.spots[spot.SeasonID]
	if season == nil {
		season = make(map[uuid.UUID]models.RosterSpot)
		s.spots[spot.SeasonID] = season
	}
	season[spot.PlayerID] = spot
}

func (s *Store) ListRosterSpots(_ context.Context, seasonID uuid.UUID) ([]models.RosterSpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listSpotsLocked(seasonID), nil
}

func (s *Store) listSpotsLocked(seasonID uuid.UUID) []models.RosterSpot {
	ids := make([]uuid.UUID, 0, len(s.spots[seasonID]))
	for id := range s.spots[seasonID] {
		ids = append(ids, id)
	}
	sortByID(ids)
	out := make([]models.RosterSpot, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.spots[seasonID][id])
	}
	return out
}

func (s *Store) ListTeamRoster(_ context.Context, seasonID, teamID uuid.UUID) ([]models.RosterPlayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.RosterPlayer
	for _, spot := range s.listSpotsLocked(seasonID) {
		if spot.TeamID != teamID {
			continue
		}
		player, ok := s.players[spot.PlayerID]
		if !ok {
			return nil, fmt.Errorf("roster spot references unknown player %s", spot.PlayerID)
		}
		out = append(out, models.RosterPlayer{
			PlayerID:      spot.PlayerID,
			Name:          player.FullName(),
			Position:      player.Position,
			DepthPosition: spot.DepthPosition,
			Status:        spot.Status,
			Attributes:    s.attrs[seasonID][spot.PlayerID],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].DepthPosition < out[j].DepthPosition
	})
	return out, nil
}

func (s *Store) DeleteRosterSpot(_ context.Context, seasonID, playerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	season := s.spots[seasonID]
	if _, ok := season[playerID]; !ok {
		return store.ErrNotFound
	}
	delete(season, playerID)
	return nil
}

// Contracts

func (s *Store) CreateContracts(_ context.Context, contracts []models.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range contracts {
		s.contracts[c.SeasonID] = append(s.contracts[c.SeasonID], c)
	}
	return nil
}

func (s *Store) ListContractsBySeason(_ context.Context, seasonID uuid.UUID) ([]models.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Contract, len(s.contracts[seasonID]))
	copy(out, s.contracts[seasonID])
	return out, nil
}

func (s *Store) ListContractsByTeam(_ context.Context, seasonID, teamID uuid.UUID) ([]models.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Contract
	for _, c := range s.contracts[seasonID] {
		if c.TeamID == teamID {
			out = append(out, c)
		}
	}
	return out, nil
}

// Free agents

func (s *Store) CreateFreeAgents(_ context.Context, agents []models.FreeAgent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fa := range agents {
		season := s.freeAgents[fa.SeasonID]
		if season == nil {
			season = make(map[uuid.UUID]models.FreeAgent)
			s.freeAgents[fa.SeasonID] = season
		}
		season[fa.ID] = fa
	}
	return nil
}

func (s *Store) ListAvailableFreeAgents(_ context.Context, seasonID uuid.UUID) ([]models.FreeAgent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(s.freeAgents[seasonID]))
	for id, fa := range s.freeAgents[seasonID] {
		if fa.Status == models.FreeAgentAvailable {
			ids = append(ids, id)
		}
	}
	sortByID(ids)
	out := make([]models.FreeAgent, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.freeAgents[seasonID][id])
	}
	return out, nil
}

// Finances

func (s *Store) CreateFinances(_ context.Context, finances []models.TeamFinances) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range finances {
		season := s.finances[f.SeasonID]
		if season == nil {
			season = make(map[uuid.UUID]models.TeamFinances)
			s.finances[f.SeasonID] = season
		}
		season[f.TeamID] = f
	}
	return nil
}

func (s *Store) GetFinances(_ context.Context, teamID, seasonID uuid.UUID) (*models.TeamFinances, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.finances[seasonID][teamID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &f, nil
}

func (s *Store) ListFinancesBySeason(_ context.Context, seasonID uuid.UUID) ([]models.TeamFinances, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(s.finances[seasonID]))
	for id := range s.finances[seasonID] {
		ids = append(ids, id)
	}
	sortByID(ids)
	out := make([]models.TeamFinances, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.finances[seasonID][id])
	}
	return out, nil
}

// Standings

func (s *Store) CreateStandings(_ context.Context, standings []models.TeamStanding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range standings {
		season := s.standings[st.SeasonID]
		if season == nil {
			season = make(map[uuid.UUID]models.TeamStanding)
			s.standings[st.SeasonID] = season
		}
		season[st.TeamID] = st
	}
	return nil
}

func (s *Store) GetStanding(_ context.Context, teamID, seasonID uuid.UUID) (*models.TeamStanding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.standings[seasonID][teamID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &st, nil
}

func (s *Store) ListStandingsBySeason(_ context.Context, seasonID uuid.UUID) ([]models.TeamStanding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(s.standings[seasonID]))
	for id := range s.standings[seasonID] {
		ids = append(ids, id)
	}
	sortByID(ids)
	out := make([]models.TeamStanding, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.standings[seasonID][id])
	}
	return out, nil
}

func (s *Store) UpdateStanding(_ context.Context, standing *models.TeamStanding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	season := s.standings[standing.SeasonID]
	if _, ok := season[standing.TeamID]; !ok {
		return store.ErrNotFound
	}
	season[standing.TeamID] = *standing
	return nil
}

// Games

func (s *Store) CreateGames(_ context.Context, games []models.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range games {
		s.games[g.ID] = g
	}
	return nil
}

func (s *Store) ListGames(_ context.Context, filter store.GameFilter) ([]models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Game
	for _, g := range s.games {
		if g.SeasonID != filter.SeasonID {
			continue
		}
		if filter.Date != nil && !g.Date.Equal(*filter.Date) {
			continue
		}
		if filter.Week != nil && g.Week != *filter.Week {
			continue
		}
		if filter.Simulated != nil && g.Simulated != *filter.Simulated {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0
	})
	return out, nil
}

func (s *Store) RecordGameResult(_ context.Context, gameID uuid.UUID, homeScore, awayScore int, overtime bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[gameID]
	if !ok {
		return store.ErrNotFound
	}
	if g.Simulated {
		return store.ErrAlreadySimulated
	}
	g.HomeScore = &homeScore
	g.AwayScore = &awayScore
	g.Overtime = overtime
	g.Simulated = true
	s.games[gameID] = g
	return nil
}

func (s *Store) CreateByeWeeks(_ context.Context, byes []models.ByeWeek) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range byes {
		s.byes[b.SeasonID] = append(s.byes[b.SeasonID], b)
	}
	return nil
}

func (s *Store) ListByeWeeks(_ context.Context, seasonID uuid.UUID) ([]models.ByeWeek, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ByeWeek, len(s.byes[seasonID]))
	copy(out, s.byes[seasonID])
	return out, nil
}

// AI states

func (s *Store) SaveAIState(_ context.Context, state *models.TeamAIState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	season := s.aiStates[state.SeasonID]
	if season == nil {
		season = make(map[uuid.UUID]models.TeamAIState)
		s.aiStates[state.SeasonID] = season
	}
	stored := *state
	stored.Priorities = make(map[models.Position]models.PriorityTier, len(state.Priorities))
	for k, v := range state.Priorities {
		stored.Priorities[k] = v
	}
	season[state.TeamID] = stored
	return nil
}

func (s *Store) GetAIState(_ context.Context, teamID, seasonID uuid.UUID) (*models.TeamAIState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.aiStates[seasonID][teamID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &state, nil
}

func (s *Store) AddAIStateSpend(_ context.Context, id uuid.UUID, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, season := range s.aiStates {
		for teamID, state := range season {
			if state.ID == id {
				state.BudgetSpent += amount
				season[teamID] = state
				return nil
			}
		}
	}
	return store.ErrNotFound
}

func (s *Store) ResetAIStateBudgets(_ context.Context, seasonID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	season := s.aiStates[seasonID]
	for teamID, state := range season {
		state.BudgetSpent = 0
		season[teamID] = state
	}
	return nil
}

// Stats

func (s *Store) CreatePlayerStats(_ context.Context, stats []models.PlayerGameStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range stats {
		s.stats[line.SeasonID] = append(s.stats[line.SeasonID], line)
	}
	return nil
}

func (s *Store) SummarizeSeason(_ context.Context, seasonID uuid.UUID) (map[uuid.UUID]models.PlayerSeasonSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uuid.UUID]models.PlayerSeasonSummary)
	for _, gs := range s.stats[seasonID] {
		summary := out[gs.Line.PlayerID]
		summary.PlayerID = gs.Line.PlayerID
		summary.SeasonID = seasonID
		summary.GamesPlayed++
		summary.PassYards += gs.Line.PassYards
		summary.PassTDs += gs.Line.PassTDs
		summary.RushYards += gs.Line.RushYards
		summary.RushTDs += gs.Line.RushTDs
		summary.ReceivingYards += gs.Line.ReceivingYards
		summary.ReceivingTDs += gs.Line.ReceivingTDs
		summary.Tackles += gs.Line.Tackles
		summary.Sacks += gs.Line.Sacks
		summary.FieldGoalsMade += gs.Line.FieldGoalsMade
		out[gs.Line.PlayerID] = summary
	}
	return out, nil
}

// Retirements

func (s *Store) CreateRetirements(_ context.Context, retirements []models.PlayerRetirement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retirements = append(s.retirements, retirements...)
	return nil
}

// ExecuteSigning applies one free-agent signing as a unit: contract,
// roster spot (depth compacted to the back of the position group),
// free-agent flip to SIGNED, and the cap-space debit. Validation
// failures leave the store untouched.
func (s *Store) ExecuteSigning(_ context.Context, signing market.Signing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seasonFAs := s.freeAgents[signing.SeasonID]
	fa, ok := seasonFAs[signing.FreeAgent]
	if !ok {
		return store.ErrNotFound
	}
	if fa.Status != models.FreeAgentAvailable {
		return store.ErrFreeAgentUnavailable
	}

	seasonFin := s.finances[signing.SeasonID]
	fin, ok := seasonFin[signing.TeamID]
	if !ok {
		return store.ErrNotFound
	}
	if fin.CapSpace+signing.CapDelta < 0 {
		return store.ErrInsufficientCapSpace
	}

	player, ok := s.players[signing.RosterSpot.PlayerID]
	if !ok {
		return store.ErrNotFound
	}

	spot := signing.RosterSpot
	spot.DepthPosition = s.nextDepthLocked(signing.SeasonID, signing.TeamID, player.Position)

	s.contracts[signing.SeasonID] = append(s.contracts[signing.SeasonID], signing.Contract)
	s.putSpotLocked(spot)

	fa.Status = models.FreeAgentSigned
	seasonFAs[signing.FreeAgent] = fa

	fin.CapSpace += signing.CapDelta
	seasonFin[signing.TeamID] = fin
	return nil
}

func (s *Store) nextDepthLocked(seasonID, teamID uuid.UUID, pos models.Position) int {
	depth := 0
	for _, spot := range s.spots[seasonID] {
		if spot.TeamID != teamID {
			continue
		}
		p, ok := s.players[spot.PlayerID]
		if !ok || p.Position != pos {
			continue
		}
		if spot.DepthPosition > depth {
			depth = spot.DepthPosition
		}
	}
	return depth + 1
}
