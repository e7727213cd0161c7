package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jdports/gridiron/go/internal/models"
	"github.com/jdports/gridiron/go/internal/store"
)

// CreateFranchise starts a new save for the given team by copying the
// template season wholesale: attributes, rosters, contracts, finances,
// free agents, standings, and the opening schedule all get fresh IDs
// under the new season. The template itself is never mutated.
func (e *Engine) CreateFranchise(ctx context.Context, name string, teamID uuid.UUID) (*models.Franchise, error) {
	if _, err := e.store.GetTeam(ctx, teamID); err != nil {
		return nil, fmt.Errorf("failed to load team: %w", err)
	}
	template, err := e.store.GetTemplateSeason(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load template season: %w", err)
	}

	now := e.clock.Now().UTC()
	franchise := &models.Franchise{
		ID:        uuid.New(),
		Name:      name,
		TeamID:    teamID,
		CreatedAt: now,
	}
	fid := franchise.ID
	season := &models.Season{
		ID:             uuid.New(),
		FranchiseID:    &fid,
		Year:           template.Year,
		CurrentWeek:    template.CurrentWeek,
		Phase:          template.Phase,
		SimulationDate: template.SimulationDate,
		CreatedAt:      now,
	}
	franchise.CurrentSeasonID = season.ID

	if err := e.store.CreateSeason(ctx, season); err != nil {
		return nil, fmt.Errorf("failed to create season: %w", err)
	}
	if err := e.copyTemplate(ctx, template.ID, season.ID); err != nil {
		return nil, err
	}
	if err := e.store.CreateFranchise(ctx, franchise); err != nil {
		return nil, fmt.Errorf("failed to create franchise: %w", err)
	}

	log.Info().
		Str("franchise_id", franchise.ID.String()).
		Str("team_id", teamID.String()).
		Int("year", season.Year).
		Msg("franchise created from template")
	return franchise, nil
}

func (e *Engine) copyTemplate(ctx context.Context, templateID, seasonID uuid.UUID) error {
	attrs, err := e.store.ListAttributesBySeason(ctx, templateID)
	if err != nil {
		return fmt.Errorf("failed to list template attributes: %w", err)
	}
	for i := range attrs {
		attrs[i].ID = uuid.New()
		attrs[i].SeasonID = seasonID
	}
	if err := e.store.CreateAttributes(ctx, attrs); err != nil {
		return fmt.Errorf("failed to copy attributes: %w", err)
	}

	spots, err := e.store.ListRosterSpots(ctx, templateID)
	if err != nil {
		return fmt.Errorf("failed to list template roster spots: %w", err)
	}
	for i := range spots {
		spots[i].ID = uuid.New()
		spots[i].SeasonID = seasonID
	}
	if err := e.store.CreateRosterSpots(ctx, spots); err != nil {
		return fmt.Errorf("failed to copy roster spots: %w", err)
	}

	contracts, err := e.store.ListContractsBySeason(ctx, templateID)
	if err != nil {
		return fmt.Errorf("failed to list template contracts: %w", err)
	}
	for i := range contracts {
		contracts[i].ID = uuid.New()
		contracts[i].SeasonID = seasonID
	}
	if err := e.store.CreateContracts(ctx, contracts); err != nil {
		return fmt.Errorf("failed to copy contracts: %w", err)
	}

	finances, err := e.store.ListFinancesBySeason(ctx, templateID)
	if err != nil {
		return fmt.Errorf("failed to list template finances: %w", err)
	}
	for i := range finances {
		finances[i].ID = uuid.New()
		finances[i].SeasonID = seasonID
	}
	if err := e.store.CreateFinances(ctx, finances); err != nil {
		return fmt.Errorf("failed to copy finances: %w", err)
	}

	agents, err := e.store.ListAvailableFreeAgents(ctx, templateID)
	if err != nil {
		return fmt.Errorf("failed to list template free agents: %w", err)
	}
	for i := range agents {
		agents[i].ID = uuid.New()
		agents[i].SeasonID = seasonID
	}
	if err := e.store.CreateFreeAgents(ctx, agents); err != nil {
		return fmt.Errorf("failed to copy free agents: %w", err)
	}

	standings, err := e.store.ListStandingsBySeason(ctx, templateID)
	if err != nil {
		return fmt.Errorf("failed to list template standings: %w", err)
	}
	for i := range standings {
		standings[i].ID = uuid.New()
		standings[i].SeasonID = seasonID
	}
	if err := e.store.CreateStandings(ctx, standings); err != nil {
		return fmt.Errorf("failed to copy standings: %w", err)
	}

	games, err := e.store.ListGames(ctx, store.GameFilter{SeasonID: templateID})
	if err != nil {
		return fmt.Errorf("failed to list template games: %w", err)
	}
	for i := range games {
		games[i].ID = uuid.New()
		games[i].SeasonID = seasonID
	}
	if err := e.store.CreateGames(ctx, games); err != nil {
		return fmt.Errorf("failed to copy games: %w", err)
	}

	byes, err := e.store.ListByeWeeks(ctx, templateID)
	if err != nil {
		return fmt.Errorf("failed to list template bye weeks: %w", err)
	}
	for i := range byes {
		byes[i].ID = uuid.New()
		byes[i].SeasonID = seasonID
	}
	if err := e.store.CreateByeWeeks(ctx, byes); err != nil {
		return fmt.Errorf("failed to copy bye weeks: %w", err)
	}
	return nil
}
