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

// Franchises

func (s *Store) CreateFranchise(ctx context.Context, franchise *models.Franchise) error {
	const q = `INSERT INTO franchises (id, name, team_id, current_season_id, deleted, created_at)
	           VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.db.ExecContext(ctx, q,
		franchise.ID, franchise.Name, franchise.TeamID, franchise.CurrentSeasonID,
		franchise.Deleted, franchise.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create franchise: %w", err)
	}
	return nil
}

func (s *Store) GetFranchise(ctx context.Context, id uuid.UUID) (*models.Franchise, error) {
	const q = `SELECT id, name, team_id, current_season_id, deleted, created_at
	           FROM franchises WHERE id = $1 AND NOT deleted`
	var f models.Franchise
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&f.ID, &f.Name, &f.TeamID, &f.CurrentSeasonID, &f.Deleted, &f.CreatedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &f, nil
}

func (s *Store) UpdateFranchiseSeason(ctx context.Context, id, seasonID uuid.UUID) error {
	const q = `UPDATE franchises SET current_season_id = $2 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, q, id, seasonID)
	if err != nil {
		return fmt.Errorf("failed to update franchise season: %w", err)
	}
	return requireRow(res)
}

// Seasons

func (s *Store) CreateSeason(ctx context.Context, season *models.Season) error {
	const q = `INSERT INTO seasons (id, franchise_id, year, current_week, phase, simulation_date,
	                                trade_deadline_passed, is_template, created_at)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := s.db.ExecContext(ctx, q,
		season.ID, sqlutil.ToNullUUID(season.FranchiseID), season.Year, season.CurrentWeek,
		season.Phase, season.SimulationDate, season.TradeDeadlinePassed, season.IsTemplate,
		season.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create season: %w", err)
	}
	return nil
}

func (s *Store) GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error) {
	const q = `SELECT id, franchise_id, year, current_week, phase, simulation_date,
	                  trade_deadline_passed, is_template, created_at
	           FROM seasons WHERE id = $1`
	return s.scanSeason(s.db.QueryRowContext(ctx, q, id))
}

func (s *Store) GetTemplateSeason(ctx context.Context) (*models.Season, error) {
	const q = `SELECT id, franchise_id, year, current_week, phase, simulation_date,
	                  trade_deadline_passed, is_template, created_at
	           FROM seasons WHERE is_template`
	return s.scanSeason(s.db.QueryRowContext(ctx, q))
}

func (s *Store) scanSeason(row *sql.Row) (*models.Season, error) {
	var season models.Season
	var franchiseID uuid.NullUUID
	err := row.Scan(&season.ID, &franchiseID, &season.Year, &season.CurrentWeek, &season.Phase,
		&season.SimulationDate, &season.TradeDeadlinePassed, &season.IsTemplate, &season.CreatedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	season.FranchiseID = sqlutil.FromNullUUID(franchiseID)
	return &season, nil
}

func (s *Store) UpdateSeasonState(ctx context.Context, id uuid.UUID, state store.SeasonState) error {
	const q = `UPDATE seasons
	           SET simulation_date = $2, current_week = $3, phase = $4, trade_deadline_passed = $5
	           WHERE id = $1`
	res, err := s.db.ExecContext(ctx, q,
		id, state.SimulationDate, state.CurrentWeek, state.Phase, state.TradeDeadlinePassed)
	if err != nil {
		return fmt.Errorf("failed to update season state: %w", err)
	}
	return requireRow(res)
}

// Teams

func (s *Store) CreateTeams(ctx context.Context, teams []models.Team) error {
	return sqlutil.Run(ctx, s.db, func(tx *sql.Tx) error {
		const q = `INSERT INTO teams (id, name, code, city, conference, division, stadium, dome, created_at)
		           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
		for _, t := range teams {
			if _, err := tx.ExecContext(ctx, q,
				t.ID, t.Name, t.Code, t.City, t.Conference, t.Division,
				sqlutil.ToSqlString(t.Stadium), t.Dome, t.CreatedAt); err != nil {
				return fmt.Errorf("failed to create team %s: %w", t.Code, err)
			}
		}
		return nil
	})
}

func (s *Store) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	const q = `SELECT id, name, code, city, conference, division, stadium, dome, created_at
	           FROM teams WHERE id = $1`
	var t models.Team
	var stadium sql.NullString
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&t.ID, &t.Name, &t.Code, &t.City, &t.Conference, &t.Division, &stadium, &t.Dome, &t.CreatedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	t.Stadium = sqlutil.FromSqlStringPtr(stadium)
	return &t, nil
}

func (s *Store) ListTeams(ctx context.Context) ([]models.Team, error) {
	const q = `SELECT id, name, code, city, conference, division, stadium, dome, created_at
	           FROM teams ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		var stadium sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &t.Code, &t.City, &t.Conference, &t.Division,
			&stadium, &t.Dome, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		t.Stadium = sqlutil.FromSqlStringPtr(stadium)
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// Players

func (s *Store) CreatePlayers(ctx context.Context, players []models.Player) error {
	return sqlutil.Run(ctx, s.db, func(tx *sql.Tx) error {
		const q = `INSERT INTO players (id, first_name, last_name, position, college, birth_year, created_at)
		           VALUES ($1, $2, $3, $4, $5, $6, $7)`
		for _, p := range players {
			if _, err := tx.ExecContext(ctx, q,
				p.ID, p.FirstName, p.LastName, p.Position,
				sqlutil.ToSqlString(p.College), p.BirthYear, p.CreatedAt); err != nil {
				return fmt.Errorf("failed to create player: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	const q = `SELECT id, first_name, last_name, position, college, birth_year, created_at
	           FROM players WHERE id = $1`
	var p models.Player
	var college sql.NullString
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Position, &college, &p.BirthYear, &p.CreatedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	p.College = sqlutil.FromSqlStringPtr(college)
	return &p, nil
}

func (s *Store) ListPlayersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Player, error) {
	const q = `SELECT id, first_name, last_name, position, college, birth_year, created_at
	           FROM players WHERE id = ANY($1)`
	rows, err := s.db.QueryContext(ctx, q, uuidArray(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		var college sql.NullString
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Position, &college,
			&p.BirthYear, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		p.College = sqlutil.FromSqlStringPtr(college)
		players = append(players, p)
	}
	return players, rows.Err()
}

// requireRow maps a zero-row update to ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// uuidArray renders ids as a Postgres array literal; the pgx stdlib
// driver has no native []uuid.UUID binding over database/sql.
func uuidArray(ids []uuid.UUID) string {
	out := "{"
	for i, id := range ids {
		if i > 0 {
			out += ","
		}
		out += id.String()
	}
	return out + "}"
}
