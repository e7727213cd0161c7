package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jdports/gridiron/go/internal/gamesim"
	"github.com/jdports/gridiron/go/internal/models"
	"github.com/jdports/gridiron/go/internal/needs"
	"github.com/jdports/gridiron/go/internal/schedule"
	"github.com/jdports/gridiron/go/internal/store"
)

// CurrentSeason returns the season a franchise is playing.
func (e *Engine) CurrentSeason(ctx context.Context, franchiseID uuid.UUID) (*models.Season, error) {
	franchise, err := e.store.GetFranchise(ctx, franchiseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load franchise: %w", err)
	}
	season, err := e.store.GetSeason(ctx, franchise.CurrentSeasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load season: %w", err)
	}
	return season, nil
}

// AssessTeamNeeds evaluates a team's roster against the ideal
// composition for the season.
func (e *Engine) AssessTeamNeeds(ctx context.Context, seasonID, teamID uuid.UUID) (needs.TeamNeeds, error) {
	roster, err := e.store.ListTeamRoster(ctx, seasonID, teamID)
	if err != nil {
		return needs.TeamNeeds{}, fmt.Errorf("failed to load roster: %w", err)
	}
	return needs.Assess(teamID, seasonID, roster), nil
}

// TeamPersonality returns a team's strategic profile for the season,
// generating it on first access.
func (e *Engine) TeamPersonality(ctx context.Context, seasonID, teamID uuid.UUID) (*models.TeamAIState, error) {
	season, err := e.store.GetSeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load season: %w", err)
	}
	return e.ensureAIState(ctx, season, teamID)
}

// GenerateTeamPersonality derives a fresh profile from the team's
// current context without persisting it.
func (e *Engine) GenerateTeamPersonality(ctx context.Context, seasonID, teamID uuid.UUID) (*models.TeamAIState, error) {
	season, err := e.store.GetSeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load season: %w", err)
	}
	return e.generatePersonality(ctx, season, teamID)
}

// LoadTeamPersonality reads a persisted profile.
func (e *Engine) LoadTeamPersonality(ctx context.Context, seasonID, teamID uuid.UUID) (*models.TeamAIState, error) {
	return e.store.GetAIState(ctx, teamID, seasonID)
}

// SaveTeamPersonality persists a profile, replacing any existing one
// for the team and season.
func (e *Engine) SaveTeamPersonality(ctx context.Context, state *models.TeamAIState) error {
	return e.store.SaveAIState(ctx, state)
}

// Standings lists the season's standings.
func (e *Engine) Standings(ctx context.Context, seasonID uuid.UUID) ([]models.TeamStanding, error) {
	return e.store.ListStandingsBySeason(ctx, seasonID)
}

// TeamByCode resolves a team's short code to its ID.
func (e *Engine) TeamByCode(ctx context.Context, code string) (uuid.UUID, error) {
	teams, err := e.store.ListTeams(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, team := range teams {
		if team.Code == code {
			return team.ID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("team %q: %w", code, store.ErrNotFound)
}

// SimulateGame runs one game off the clock with the engine's random
// source, without persisting anything.
func (e *Engine) SimulateGame(home, away gamesim.Lineup, weather models.Weather) gamesim.Result {
	return gamesim.Simulate(home, away, weather, e.rng)
}

// GenerateSeasonSchedule builds a full slate for a season without
// persisting it. Prior standings drive the rank-based matchups.
func (e *Engine) GenerateSeasonSchedule(ctx context.Context, seasonID uuid.UUID, year int, prev []models.TeamStanding) (*schedule.Result, error) {
	teams, err := e.store.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return schedule.Generate(teams, seasonID, year, prev, e.rng)
}
