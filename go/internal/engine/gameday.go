package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jdports/gridiron/go/internal/events"
	"github.com/jdports/gridiron/go/internal/gamesim"
	"github.com/jdports/gridiron/go/internal/models"
	"github.com/jdports/gridiron/go/internal/store"
)

// simulateGamesOn plays every unsimulated game scheduled for the date,
// in the store's stable order.
func (e *Engine) simulateGamesOn(ctx context.Context, season *models.Season, date time.Time, result *AdvanceResult) error {
	unplayed := false
	games, err := e.store.ListGames(ctx, store.GameFilter{
		SeasonID:  season.ID,
		Date:      &date,
		Simulated: &unplayed,
	})
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}

	for i := range games {
		if err := e.simulateGame(ctx, season, &games[i], result); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) simulateGame(ctx context.Context, season *models.Season, game *models.Game, result *AdvanceResult) error {
	home, err := e.store.ListTeamRoster(ctx, season.ID, game.HomeTeamID)
	if err != nil {
		return fmt.Errorf("failed to load home roster: %w", err)
	}
	away, err := e.store.ListTeamRoster(ctx, season.ID, game.AwayTeamID)
	if err != nil {
		return fmt.Errorf("failed to load away roster: %w", err)
	}

	sim := gamesim.Simulate(
		gamesim.Lineup{TeamID: game.HomeTeamID, Players: home},
		gamesim.Lineup{TeamID: game.AwayTeamID, Players: away},
		game.Weather,
		e.rng,
	)

	if err := e.store.RecordGameResult(ctx, game.ID, sim.HomeScore, sim.AwayScore, sim.Overtime); err != nil {
		return fmt.Errorf("failed to record game result: %w", err)
	}

	if err := e.applyStandings(ctx, season.ID, game, sim); err != nil {
		return err
	}

	stats := make([]models.PlayerGameStats, 0, len(sim.Stats))
	for _, line := range sim.Stats {
		stats = append(stats, models.PlayerGameStats{
			ID:       uuid.New(),
			GameID:   game.ID,
			SeasonID: season.ID,
			Week:     game.Week,
			Line:     line,
		})
	}
	if err := e.store.CreatePlayerStats(ctx, stats); err != nil {
		return fmt.Errorf("failed to persist player stats: %w", err)
	}

	if err := e.recorder.GameSimulated(ctx, events.GameSimulated{
		GameID:     game.ID,
		SeasonID:   season.ID,
		Week:       game.Week,
		HomeTeamID: game.HomeTeamID,
		AwayTeamID: game.AwayTeamID,
		HomeScore:  sim.HomeScore,
		AwayScore:  sim.AwayScore,
		Overtime:   sim.Overtime,
		PlayedOn:   game.Date,
	}); err != nil {
		return err
	}

	log.Info().
		Str("game_id", game.ID.String()).
		Int("week", game.Week).
		Int("home_score", sim.HomeScore).
		Int("away_score", sim.AwayScore).
		Bool("overtime", sim.Overtime).
		Msg("game simulated")
	result.addMessage("week %d: %d-%d%s", game.Week, sim.HomeScore, sim.AwayScore, overtimeSuffix(sim.Overtime))
	return nil
}

func overtimeSuffix(ot bool) string {
	if ot {
		return " (OT)"
	}
	return ""
}

// applyStandings credits both teams with the game's outcome.
func (e *Engine) applyStandings(ctx context.Context, seasonID uuid.UUID, game *models.Game, sim gamesim.Result) error {
	update := func(teamID uuid.UUID, scored, allowed int) error {
		standing, err := e.store.GetStanding(ctx, teamID, seasonID)
		if err != nil {
			return fmt.Errorf("failed to load standing: %w", err)
		}
		switch {
		case scored > allowed:
			standing.Wins++
		case scored < allowed:
			standing.Losses++
		default:
			standing.Ties++
		}
		standing.PointsFor += scored
		standing.PointsAgainst += allowed
		if err := e.store.UpdateStanding(ctx, standing); err != nil {
			return fmt.Errorf("failed to update standing: %w", err)
		}
		return nil
	}

	if err := update(game.HomeTeamID, sim.HomeScore, sim.AwayScore); err != nil {
		return err
	}
	return update(game.AwayTeamID, sim.AwayScore, sim.HomeScore)
}
