package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jdports/gridiron/go/internal/models"
	"github.com/jdports/gridiron/go/internal/sqlutil"
)

// Attributes

const attributeColumns = `id, player_id, season_id, age, overall, speed, strength, agility,
	awareness, injury_proneness, morale, years_pro, development_trait`

func (s *Store) CreateAttributes(ctx context.Context, attrs []models.PlayerAttributes) error {
	return sqlutil.Run(ctx, s.db, func(tx *sql.Tx) error {
		q := `INSERT INTO player_attributes (` + attributeColumns + `)
		      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
		for _, a := range attrs {
			if _, err := tx.ExecContext(ctx, q,
				a.ID, a.PlayerID, a.SeasonID, a.Age, a.Overall, a.Speed, a.Strength,
				a.Agility, a.Awareness, a.InjuryProneness, a.Morale, a.YearsPro,
				a.DevelopmentTrait); err != nil {
				return fmt.Errorf("failed to create player attributes: %w", err)
			}
		}
		return nil
	})
}

func scanAttributes(row interface{ Scan(...any) error }) (models.PlayerAttributes, error) {
	var a models.PlayerAttributes
	err := row.Scan(&a.ID, &a.PlayerID, &a.SeasonID, &a.Age, &a.Overall, &a.Speed, &a.Strength,
		&a.Agility, &a.Awareness, &a.InjuryProneness, &a.Morale, &a.YearsPro, &a.DevelopmentTrait)
	return a, err
}

func (s *Store) GetAttributes(ctx context.Context, playerID, seasonID uuid.UUID) (*models.PlayerAttributes, error) {
	q := `SELECT ` + attributeColumns + ` FROM player_attributes WHERE player_id = $1 AND season_id = $2`
	a, err := scanAttributes(s.db.QueryRowContext(ctx, q, playerID, seasonID))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &a, nil
}

func (s *Store) ListAttributesBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.PlayerAttributes, error) {
	q := `SELECT ` + attributeColumns + ` FROM player_attributes WHERE season_id = $1 ORDER BY player_id`
	rows, err := s.db.QueryContext(ctx, q, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attributes: %w", err)
	}
	defer rows.Close()

	var out []models.PlayerAttributes
	for rows.Next() {
		a, err := scanAttributes(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attributes: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Roster spots

func (s *Store) CreateRosterSpots(ctx context.Context, spots []models.RosterSpot) error {
	return sqlutil.Run(ctx, s.db, func(tx *sql.Tx) error {
		const q = `INSERT INTO roster_spots (id, season_id, team_id, player_id, status, depth_position, acquired_at)
		           VALUES ($1, $2, $3, $4, $5, $6, $7)`
		for _, spot := range spots {
			if _, err := tx.ExecContext(ctx, q,
				spot.ID, spot.SeasonID, spot.TeamID, spot.PlayerID, spot.Status,
				spot.DepthPosition, spot.AcquiredAt); err != nil {
				return fmt.Errorf("failed to create roster spot: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) ListRosterSpots(ctx context.Context, seasonID uuid.UUID) ([]models.RosterSpot, error) {
	const q = `SELECT id, season_id, team_id, player_id, status, depth_position, acquired_at
	           FROM roster_spots WHERE season_id = $1 ORDER BY player_id`
	rows, err := s.db.QueryContext(ctx, q, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster spots: %w", err)
	}
	defer rows.Close()

	var out []models.RosterSpot
	for rows.Next() {
		var spot models.RosterSpot
		if err := rows.Scan(&spot.ID, &spot.SeasonID, &spot.TeamID, &spot.PlayerID,
			&spot.Status, &spot.DepthPosition, &spot.AcquiredAt); err != nil {
			return nil, fmt.Errorf("failed to scan roster spot: %w", err)
		}
		out = append(out, spot)
	}
	return out, rows.Err()
}

func (s *Store) ListTeamRoster(ctx context.Context, seasonID, teamID uuid.UUID) ([]models.RosterPlayer, error) {
	const q = `SELECT rs.player_id, p.first_name || ' ' || p.last_name, p.position,
	                  rs.depth_position, rs.status,
	                  pa.id, pa.player_id, pa.season_id, pa.age, pa.overall, pa.speed, pa.strength,
	                  pa.agility, pa.awareness, pa.injury_proneness, pa.morale, pa.years_pro,
	                  pa.development_trait
	           FROM roster_spots rs
	           JOIN players p ON p.id = rs.player_id
	           JOIN player_attributes pa ON pa.player_id = rs.player_id AND pa.season_id = rs.season_id
	           WHERE rs.season_id = $1 AND rs.team_id = $2
	           ORDER BY p.position, rs.depth_position`
	rows, err := s.db.QueryContext(ctx, q, seasonID, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team roster: %w", err)
	}
	defer rows.Close()

	var out []models.RosterPlayer
	for rows.Next() {
		var rp models.RosterPlayer
		a := &rp.Attributes
		if err := rows.Scan(&rp.PlayerID, &rp.Name, &rp.Position, &rp.DepthPosition, &rp.Status,
			&a.ID, &a.PlayerID, &a.SeasonID, &a.Age, &a.Overall, &a.Speed, &a.Strength,
			&a.Agility, &a.Awareness, &a.InjuryProneness, &a.Morale, &a.YearsPro,
			&a.DevelopmentTrait); err != nil {
			return nil, fmt.Errorf("failed to scan roster player: %w", err)
		}
		out = append(out, rp)
	}
	return out, rows.Err()
}

func (s *Store) DeleteRosterSpot(ctx context.Context, seasonID, playerID uuid.UUID) error {
	const q = `DELETE FROM roster_spots WHERE season_id = $1 AND player_id = $2`
	res, err := s.db.ExecContext(ctx, q, seasonID, playerID)
	if err != nil {
		return fmt.Errorf("failed to delete roster spot: %w", err)
	}
	return requireRow(res)
}
