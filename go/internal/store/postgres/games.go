package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jdports/gridiron/go/internal/models"
	"github.com/jdports/gridiron/go/internal/sqlutil"
	"github.com/jdports/gridiron/go/internal/store"
)

// Games

func (s *Store) CreateGames(ctx context.Context, games []models.Game) error {
	return sqlutil.Run(ctx, s.db, func(tx *sql.Tx) error {
		const q = `INSERT INTO games (id, season_id, week, date, slot, home_team_id, away_team_id,
		                              home_score, away_score, overtime, weather, simulated)
		           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
		for _, g := range games {
			if _, err := tx.ExecContext(ctx, q,
				g.ID, g.SeasonID, g.Week, g.Date, g.Slot, g.HomeTeamID, g.AwayTeamID,
				sqlutil.ToSqlInt32(g.HomeScore), sqlutil.ToSqlInt32(g.AwayScore),
				g.Overtime, g.Weather, g.Simulated); err != nil {
				return fmt.Errorf("failed to create game: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) ListGames(ctx context.Context, filter store.GameFilter) ([]models.Game, error) {
	q := `SELECT id, season_id, week, date, slot, home_team_id, away_team_id,
	             home_score, away_score, overtime, weather, simulated
	      FROM games WHERE season_id = $1`
	args := []any{filter.SeasonID}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		q += fmt.Sprintf(" AND date = $%d", len(args))
	}
	if filter.Week != nil {
		args = append(args, *filter.Week)
		q += fmt.Sprintf(" AND week = $%d", len(args))
	}
	if filter.Simulated != nil {
		args = append(args, *filter.Simulated)
		q += fmt.Sprintf(" AND simulated = $%d", len(args))
	}
	q += " ORDER BY date, id"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var out []models.Game
	for rows.Next() {
		var g models.Game
		var home, away sql.NullInt32
		if err := rows.Scan(&g.ID, &g.SeasonID, &g.Week, &g.Date, &g.Slot,
			&g.HomeTeamID, &g.AwayTeamID, &home, &away, &g.Overtime,
			&g.Weather, &g.Simulated); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		g.HomeScore = sqlutil.FromSqlInt32(home)
		g.AwayScore = sqlutil.FromSqlInt32(away)
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *Store) RecordGameResult(ctx context.Context, gameID uuid.UUID, homeScore, awayScore int, overtime bool) error {
	const q = `UPDATE games
	           SET home_score = $2, away_score = $3, overtime = $4, simulated = TRUE
	           WHERE id = $1 AND NOT simulated`
	res, err := s.db.ExecContext(ctx, q, gameID, homeScore, awayScore, overtime)
	if err != nil {
		return fmt.Errorf("failed to record game result: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish missing from replayed.
		var simulated bool
		err := s.db.QueryRowContext(ctx, `SELECT simulated FROM games WHERE id = $1`, gameID).Scan(&simulated)
		if err != nil {
			return mapNotFound(err)
		}
		return store.ErrAlreadySimulated
	}
	return nil
}

// Bye weeks

func (s *Store) CreateByeWeeks(ctx context.Context, byes []models.ByeWeek) error {
	return sqlutil.Run(ctx, s.db, func(tx *sql.Tx) error {
		const q = `INSERT INTO bye_weeks (id, season_id, team_id, week) VALUES ($1, $2, $3, $4)`
		for _, b := range byes {
			if _, err := tx.ExecContext(ctx, q, b.ID, b.SeasonID, b.TeamID, b.Week); err != nil {
				return fmt.Errorf("failed to create bye week: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) ListByeWeeks(ctx context.Context, seasonID uuid.UUID) ([]models.ByeWeek, error) {
	const q = `SELECT id, season_id, team_id, week FROM bye_weeks WHERE season_id = $1 ORDER BY week, team_id`
	rows, err := s.db.QueryContext(ctx, q, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bye weeks: %w", err)
	}
	defer rows.Close()

	var out []models.ByeWeek
	for rows.Next() {
		var b models.ByeWeek
		if err := rows.Scan(&b.ID, &b.SeasonID, &b.TeamID, &b.Week); err != nil {
			return nil, fmt.Errorf("failed to scan bye week: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Standings

func (s *Store) CreateStandings(ctx context.Context, standings []models.TeamStanding) error {
	return sqlutil.Run(ctx, s.db, func(tx *sql.Tx) error {
		const q = `INSERT INTO team_standings (id, team_id, season_id, wins, losses, ties, points_for, points_against)
		           VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		for _, st := range standings {
			if _, err := tx.ExecContext(ctx, q,
				st.ID, st.TeamID, st.SeasonID, st.Wins, st.Losses, st.Ties,
				st.PointsFor, st.PointsAgainst); err != nil {
				return fmt.Errorf("failed to create standing: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) GetStanding(ctx context.Context, teamID, seasonID uuid.UUID) (*models.TeamStanding, error) {
	const q = `SELECT id, team_id, season_id, wins, losses, ties, points_for, points_against
	           FROM team_standings WHERE team_id = $1 AND season_id = $2`
	var st models.TeamStanding
	err := s.db.QueryRowContext(ctx, q, teamID, seasonID).Scan(
		&st.ID, &st.TeamID, &st.SeasonID, &st.Wins, &st.Losses, &st.Ties,
		&st.PointsFor, &st.PointsAgainst)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &st, nil
}

func (s *Store) ListStandingsBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.TeamStanding, error) {
	const q = `SELECT id, team_id, season_id, wins, losses, ties, points_for, points_against
	           FROM team_standings WHERE season_id = $1 ORDER BY team_id`
	rows, err := s.db.QueryContext(ctx, q, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list standings: %w", err)
	}
	defer rows.Close()

	var out []models.TeamStanding
	for rows.Next() {
		var st models.TeamStanding
		if err := rows.Scan(&st.ID, &st.TeamID, &st.SeasonID, &st.Wins, &st.Losses,
			&st.Ties, &st.PointsFor, &st.PointsAgainst); err != nil {
			return nil, fmt.Errorf("failed to scan standing: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *Store) UpdateStanding(ctx context.Context, standing *models.TeamStanding) error {
	const q = `UPDATE team_standings
	           SET wins = $3, losses = $4, ties = $5, points_for = $6, points_against = $7
	           WHERE team_id = $1 AND season_id = $2`
	res, err := s.db.ExecContext(ctx, q,
		standing.TeamID, standing.SeasonID, standing.Wins, standing.Losses, standing.Ties,
		standing.PointsFor, standing.PointsAgainst)
	if err != nil {
		return fmt.Errorf("failed to update standing: %w", err)
	}
	return requireRow(res)
}

// Stats

func (s *Store) CreatePlayerStats(ctx context.Context, stats []models.PlayerGameStats) error {
	return sqlutil.Run(ctx, s.db, func(tx *sql.Tx) error {
		const q = `INSERT INTO player_game_stats (id, game_id, season_id, week, line)
		           VALUES ($1, $2, $3, $4, $5)`
		for _, gs := range stats {
			line, err := sqlutil.ToJSONB(gs.Line)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, q, gs.ID, gs.GameID, gs.SeasonID, gs.Week, line); err != nil {
				return fmt.Errorf("failed to create player stats: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) SummarizeSeason(ctx context.Context, seasonID uuid.UUID) (map[uuid.UUID]models.PlayerSeasonSummary, error) {
	const q = `SELECT (line->>'player_id')::uuid,
	                  COUNT(*),
	                  COALESCE(SUM((line->>'pass_yards')::int), 0),
	                  COALESCE(SUM((line->>'pass_tds')::int), 0),
	                  COALESCE(SUM((line->>'rush_yards')::int), 0),
	                  COALESCE(SUM((line->>'rush_tds')::int), 0),
	                  COALESCE(SUM((line->>'receiving_yards')::int), 0),
	                  COALESCE(SUM((line->>'receiving_tds')::int), 0),
	                  COALESCE(SUM((line->>'tackles')::int), 0),
	                  COALESCE(SUM((line->>'sacks')::int), 0),
	                  COALESCE(SUM((line->>'field_goals_made')::int), 0)
	           FROM player_game_stats
	           WHERE season_id = $1
	           GROUP BY 1`
	rows, err := s.db.QueryContext(ctx, q, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize season: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]models.PlayerSeasonSummary)
	for rows.Next() {
		var sum models.PlayerSeasonSummary
		if err := rows.Scan(&sum.PlayerID, &sum.GamesPlayed, &sum.PassYards, &sum.PassTDs,
			&sum.RushYards, &sum.RushTDs, &sum.ReceivingYards, &sum.ReceivingTDs,
			&sum.Tackles, &sum.Sacks, &sum.FieldGoalsMade); err != nil {
			return nil, fmt.Errorf("failed to scan season summary: %w", err)
		}
		sum.SeasonID = seasonID
		out[sum.PlayerID] = sum
	}
	return out, rows.Err()
}
