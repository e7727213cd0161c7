package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jdports/gridiron/go/internal/contracts"
	"github.com/jdports/gridiron/go/internal/events"
	"github.com/jdports/gridiron/go/internal/models"
	"github.com/jdports/gridiron/go/internal/progression"
	"github.com/jdports/gridiron/go/internal/schedule"
	"github.com/jdports/gridiron/go/internal/store"
)

// runSeasonEnd rolls the franchise into the next league year: player
// progression and retirements, contract rollover, cap recomputation,
// fresh standings, and the new season's schedule. The franchise points
// at the new season when this returns.
func (e *Engine) runSeasonEnd(ctx context.Context, franchise *models.Franchise, season *models.Season, date time.Time, result *AdvanceResult) error {
	now := e.clock.Now().UTC()

	next := &models.Season{
		ID:             uuid.New(),
		FranchiseID:    season.FranchiseID,
		Year:           season.Year + 1,
		CurrentWeek:    1,
		Phase:          models.PhaseOffseason,
		SimulationDate: date,
		CreatedAt:      now,
	}
	if err := e.store.CreateSeason(ctx, next); err != nil {
		return fmt.Errorf("failed to create next season: %w", err)
	}

	retired, retiredCount, err := e.progressPlayers(ctx, season, next)
	if err != nil {
		return err
	}

	expirations, carriedByTeam, err := e.rollContracts(ctx, season, next, retired, now)
	if err != nil {
		return err
	}

	if err := e.rollFinances(ctx, season, next, carriedByTeam); err != nil {
		return err
	}

	teams, err := e.store.ListTeams(ctx)
	if err != nil {
		return fmt.Errorf("failed to list teams: %w", err)
	}

	standings := make([]models.TeamStanding, len(teams))
	for i, team := range teams {
		standings[i] = models.TeamStanding{ID: uuid.New(), TeamID: team.ID, SeasonID: next.ID}
	}
	if err := e.store.CreateStandings(ctx, standings); err != nil {
		return fmt.Errorf("failed to create standings: %w", err)
	}

	games, err := e.scheduleSeason(ctx, season, next, teams)
	if err != nil {
		return err
	}

	if err := e.store.UpdateSeasonState(ctx, season.ID, store.SeasonState{
		SimulationDate:      date,
		CurrentWeek:         season.CurrentWeek,
		Phase:               models.PhaseOffseason,
		TradeDeadlinePassed: season.TradeDeadlinePassed,
	}); err != nil {
		return fmt.Errorf("failed to close out season: %w", err)
	}
	if err := e.store.UpdateFranchiseSeason(ctx, franchise.ID, next.ID); err != nil {
		return fmt.Errorf("failed to point franchise at next season: %w", err)
	}
	franchise.CurrentSeasonID = next.ID

	if err := e.recorder.SeasonEnded(ctx, events.SeasonEnded{
		SeasonID:     season.ID,
		NextSeasonID: next.ID,
		Year:         season.Year,
		Retirements:  retiredCount,
		Expirations:  expirations,
	}); err != nil {
		return err
	}
	if err := e.recorder.SeasonScheduled(ctx, events.SeasonScheduled{
		SeasonID: next.ID,
		Year:     next.Year,
		Games:    games,
	}); err != nil {
		return err
	}

	log.Info().
		Str("season_id", season.ID.String()).
		Str("next_season_id", next.ID.String()).
		Int("year", next.Year).
		Int("retirements", retiredCount).
		Int("expirations", expirations).
		Msg("season rolled over")
	result.addMessage("season %d complete: %d retirements, %d contracts expired", season.Year, retiredCount, expirations)
	return nil
}

// progressPlayers ages every player with attributes this season and
// writes next season's snapshots. Returns the set of retirees.
func (e *Engine) progressPlayers(ctx context.Context, season, next *models.Season) (map[uuid.UUID]bool, int, error) {
	attrs, err := e.store.ListAttributesBySeason(ctx, season.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attributes: %w", err)
	}
	summaries, err := e.store.SummarizeSeason(ctx, season.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to summarize season: %w", err)
	}

	ids := make([]uuid.UUID, len(attrs))
	for i, a := range attrs {
		ids[i] = a.PlayerID
	}
	players, err := e.store.ListPlayersByIDs(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list players: %w", err)
	}
	position := make(map[uuid.UUID]models.Position, len(players))
	for _, p := range players {
		position[p.ID] = p.Position
	}

	retired := make(map[uuid.UUID]bool)
	var retirements []models.PlayerRetirement
	var nextAttrs []models.PlayerAttributes
	now := e.clock.Now().UTC()

	for _, a := range attrs {
		var summary *models.PlayerSeasonSummary
		if s, ok := summaries[a.PlayerID]; ok {
			summary = &s
		}
		out := progression.Progress(progression.Input{
			Position:   position[a.PlayerID],
			Attributes: a,
			Summary:    summary,
		}, e.rng)

		if out.Retired {
			retired[a.PlayerID] = true
			retirements = append(retirements, models.PlayerRetirement{
				ID:           uuid.New(),
				PlayerID:     a.PlayerID,
				SeasonID:     season.ID,
				Age:          out.Updated.Age,
				FinalOverall: out.Updated.Overall,
				YearsPro:     out.Updated.YearsPro,
				RetiredAt:    now,
			})
			continue
		}

		updated := out.Updated
		updated.ID = uuid.New()
		updated.SeasonID = next.ID
		nextAttrs = append(nextAttrs, updated)
	}

	if err := e.store.CreateRetirements(ctx, retirements); err != nil {
		return nil, 0, fmt.Errorf("failed to create retirements: %w", err)
	}
	if err := e.store.CreateAttributes(ctx, nextAttrs); err != nil {
		return nil, 0, fmt.Errorf("failed to create next-season attributes: %w", err)
	}
	return retired, len(retirements), nil
}

// rollContracts carries active deals into the next season, lists
// expiring players as free agents, and carries forward both roster
// spots and the unsigned remainder of this season's market.
func (e *Engine) rollContracts(ctx context.Context, season, next *models.Season, retired map[uuid.UUID]bool, now time.Time) (int, map[uuid.UUID]int64, error) {
	all, err := e.store.ListContractsBySeason(ctx, season.ID)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list contracts: %w", err)
	}

	rolled := contracts.Rollover(all, retired, next.ID, now, e.rng)
	if err := e.store.CreateContracts(ctx, rolled.Carried); err != nil {
		return 0, nil, fmt.Errorf("failed to carry contracts: %w", err)
	}

	carriedByTeam := make(map[uuid.UUID]int64)
	carriedPlayers := make(map[uuid.UUID]bool, len(rolled.Carried))
	for i := range rolled.Carried {
		c := &rolled.Carried[i]
		carriedByTeam[c.TeamID] += c.CapHit()
		carriedPlayers[c.PlayerID] = true
	}

	spots, err := e.store.ListRosterSpots(ctx, season.ID)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list roster spots: %w", err)
	}
	var nextSpots []models.RosterSpot
	for _, spot := range spots {
		if !carriedPlayers[spot.PlayerID] {
			continue
		}
		spot.ID = uuid.New()
		spot.SeasonID = next.ID
		nextSpots = append(nextSpots, spot)
	}
	if err := e.store.CreateRosterSpots(ctx, nextSpots); err != nil {
		return 0, nil, fmt.Errorf("failed to carry roster spots: %w", err)
	}

	nextAgents := rolled.Expired
	unsigned, err := e.store.ListAvailableFreeAgents(ctx, season.ID)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list unsigned free agents: %w", err)
	}
	for _, fa := range unsigned {
		if retired[fa.PlayerID] {
			continue
		}
		fa.ID = uuid.New()
		fa.SeasonID = next.ID
		fa.ListedAt = now
		nextAgents = append(nextAgents, fa)
	}
	if err := e.store.CreateFreeAgents(ctx, nextAgents); err != nil {
		return 0, nil, fmt.Errorf("failed to list next-season free agents: %w", err)
	}

	return len(rolled.Expired), carriedByTeam, nil
}

func (e *Engine) rollFinances(ctx context.Context, season, next *models.Season, carriedByTeam map[uuid.UUID]int64) error {
	finances, err := e.store.ListFinancesBySeason(ctx, season.ID)
	if err != nil {
		return fmt.Errorf("failed to list finances: %w", err)
	}
	nextFinances := make([]models.TeamFinances, len(finances))
	for i, f := range finances {
		nextFinances[i] = contracts.NextSeasonFinances(f, next.ID, carriedByTeam[f.TeamID])
	}
	if err := e.store.CreateFinances(ctx, nextFinances); err != nil {
		return fmt.Errorf("failed to create next-season finances: %w", err)
	}
	return nil
}

func (e *Engine) scheduleSeason(ctx context.Context, season, next *models.Season, teams []models.Team) (int, error) {
	prev, err := e.store.ListStandingsBySeason(ctx, season.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to list prior standings: %w", err)
	}

	generated, err := schedule.Generate(teams, next.ID, next.Year, prev, e.rng)
	if err != nil {
		return 0, fmt.Errorf("failed to generate schedule: %w", err)
	}
	if err := e.store.CreateGames(ctx, generated.Games); err != nil {
		return 0, fmt.Errorf("failed to create games: %w", err)
	}
	if err := e.store.CreateByeWeeks(ctx, generated.ByeWeeks); err != nil {
		return 0, fmt.Errorf("failed to create bye weeks: %w", err)
	}
	return len(generated.Games), nil
}
