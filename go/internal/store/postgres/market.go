package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jdports/gridiron/go/internal/market"
	"github.com/jdports/gridiron/go/internal/models"
	"github.com/jdports/gridiron/go/internal/sqlutil"
	"github.com/jdports/gridiron/go/internal/store"
)

// Contracts

const contractColumns = `id, player_id, team_id, season_id, annual_salary, guaranteed_money,
	years_total, years_remaining, signed_at`

const insertContractSQL = `INSERT INTO contracts (id, player_id, team_id, season_id, annual_salary,
	guaranteed_money, years_total, years_remaining, signed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (s *Store) CreateContracts(ctx context.Context, contracts []models.Contract) error {
	return sqlutil.Run(ctx, s.db, func(tx *sql.Tx) error {
		for _, c := range contracts {
			if err := insertContract(ctx, tx, c); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertContract(ctx context.Context, tx *sql.Tx, c models.Contract) error {
	if _, err := tx.ExecContext(ctx, insertContractSQL,
		c.ID, c.PlayerID, c.TeamID, c.SeasonID, c.AnnualSalary, c.GuaranteedMoney,
		c.YearsTotal, c.YearsRemaining, c.SignedAt); err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

func (s *Store) listContracts(ctx context.Context, q string, args ...any) ([]models.Contract, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var out []models.Contract
	for rows.Next() {
		var c models.Contract
		if err := rows.Scan(&c.ID, &c.PlayerID, &c.TeamID, &c.SeasonID, &c.AnnualSalary,
			&c.GuaranteedMoney, &c.YearsTotal, &c.YearsRemaining, &c.SignedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) ListContractsBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.Contract, error) {
	q := `SELECT ` + contractColumns + ` FROM contracts WHERE season_id = $1 ORDER BY id`
	return s.listContracts(ctx, q, seasonID)
}

func (s *Store) ListContractsByTeam(ctx context.Context, seasonID, teamID uuid.UUID) ([]models.Contract, error) {
	q := `SELECT ` + contractColumns + ` FROM contracts WHERE season_id = $1 AND team_id = $2 ORDER BY id`
	return s.listContracts(ctx, q, seasonID, teamID)
}

// Free agents

func (s *Store) CreateFreeAgents(ctx context.Context, agents []models.FreeAgent) error {
	return sqlutil.Run(ctx, s.db, func(tx *sql.Tx) error {
		const q = `INSERT INTO free_agents (id, player_id, season_id, market_value, previous_team_id, status, listed_at)
		           VALUES ($1, $2, $3, $4, $5, $6, $7)`
		for _, fa := range agents {
			if _, err := tx.ExecContext(ctx, q,
				fa.ID, fa.PlayerID, fa.SeasonID, fa.MarketValue,
				sqlutil.ToNullUUID(fa.PreviousTeamID), fa.Status, fa.ListedAt); err != nil {
				return fmt.Errorf("failed to create free agent: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) ListAvailableFreeAgents(ctx context.Context, seasonID uuid.UUID) ([]models.FreeAgent, error) {
	const q = `SELECT id, player_id, season_id, market_value, previous_team_id, status, listed_at
	           FROM free_agents WHERE season_id = $1 AND status = $2 ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q, seasonID, models.FreeAgentAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to list free agents: %w", err)
	}
	defer rows.Close()

	var out []models.FreeAgent
	for rows.Next() {
		var fa models.FreeAgent
		var prevTeam uuid.NullUUID
		if err := rows.Scan(&fa.ID, &fa.PlayerID, &fa.SeasonID, &fa.MarketValue,
			&prevTeam, &fa.Status, &fa.ListedAt); err != nil {
			return nil, fmt.Errorf("failed to scan free agent: %w", err)
		}
		fa.PreviousTeamID = sqlutil.FromNullUUID(prevTeam)
		out = append(out, fa)
	}
	return out, rows.Err()
}

// Finances

func (s *Store) CreateFinances(ctx context.Context, finances []models.TeamFinances) error {
	return sqlutil.Run(ctx, s.db, func(tx *sql.Tx) error {
		const q = `INSERT INTO team_finances (id, team_id, season_id, salary_cap, cap_space, dead_money, rollover_cap)
		           VALUES ($1, $2, $3, $4, $5, $6, $7)`
		for _, f := range finances {
			if _, err := tx.ExecContext(ctx, q,
				f.ID, f.TeamID, f.SeasonID, f.SalaryCap, f.CapSpace, f.DeadMoney,
				f.RolloverCap); err != nil {
				return fmt.Errorf("failed to create team finances: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) GetFinances(ctx context.Context, teamID, seasonID uuid.UUID) (*models.TeamFinances, error) {
	const q = `SELECT id, team_id, season_id, salary_cap, cap_space, dead_money, rollover_cap
	           FROM team_finances WHERE team_id = $1 AND season_id = $2`
	var f models.TeamFinances
	err := s.db.QueryRowContext(ctx, q, teamID, seasonID).Scan(
		&f.ID, &f.TeamID, &f.SeasonID, &f.SalaryCap, &f.CapSpace, &f.DeadMoney, &f.RolloverCap)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &f, nil
}

func (s *Store) ListFinancesBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.TeamFinances, error) {
	const q = `SELECT id, team_id, season_id, salary_cap, cap_space, dead_money, rollover_cap
	           FROM team_finances WHERE season_id = $1 ORDER BY team_id`
	rows, err := s.db.QueryContext(ctx, q, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team finances: %w", err)
	}
	defer rows.Close()

	var out []models.TeamFinances
	for rows.Next() {
		var f models.TeamFinances
		if err := rows.Scan(&f.ID, &f.TeamID, &f.SeasonID, &f.SalaryCap, &f.CapSpace,
			&f.DeadMoney, &f.RolloverCap); err != nil {
			return nil, fmt.Errorf("failed to scan team finances: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// ExecuteSigning applies one signing in a single transaction: lock the
// free agent and the team's cap row, verify both, then write the
// contract, the roster spot at the back of the position group, the
// SIGNED flip, and the cap debit.
func (s *Store) ExecuteSigning(ctx context.Context, signing market.Signing) error {
	return sqlutil.Run(ctx, s.db, func(tx *sql.Tx) error {
		var status models.FreeAgentStatus
		err := tx.QueryRowContext(ctx,
			`SELECT status FROM free_agents WHERE id = $1 FOR UPDATE`,
			signing.FreeAgent).Scan(&status)
		if err != nil {
			return mapNotFound(err)
		}
		if status != models.FreeAgentAvailable {
			return store.ErrFreeAgentUnavailable
		}

		var capSpace int64
		err = tx.QueryRowContext(ctx,
			`SELECT cap_space FROM team_finances WHERE team_id = $1 AND season_id = $2 FOR UPDATE`,
			signing.TeamID, signing.SeasonID).Scan(&capSpace)
		if err != nil {
			return mapNotFound(err)
		}
		if capSpace+signing.CapDelta < 0 {
			return store.ErrInsufficientCapSpace
		}

		if err := insertContract(ctx, tx, signing.Contract); err != nil {
			return err
		}

		spot := signing.RosterSpot
		const depthSQL = `SELECT COALESCE(MAX(rs.depth_position), 0) + 1
		                  FROM roster_spots rs
		                  JOIN players p ON p.id = rs.player_id
		                  WHERE rs.season_id = $1 AND rs.team_id = $2
		                    AND p.position = (SELECT position FROM players WHERE id = $3)`
		if err := tx.QueryRowContext(ctx, depthSQL,
			signing.SeasonID, signing.TeamID, spot.PlayerID).Scan(&spot.DepthPosition); err != nil {
			return fmt.Errorf("failed to rank depth position: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO roster_spots (id, season_id, team_id, player_id, status, depth_position, acquired_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			spot.ID, spot.SeasonID, spot.TeamID, spot.PlayerID, spot.Status,
			spot.DepthPosition, spot.AcquiredAt); err != nil {
			return fmt.Errorf("failed to create roster spot: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE free_agents SET status = $2 WHERE id = $1`,
			signing.FreeAgent, models.FreeAgentSigned); err != nil {
			return fmt.Errorf("failed to mark free agent signed: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE team_finances SET cap_space = cap_space + $3 WHERE team_id = $1 AND season_id = $2`,
			signing.TeamID, signing.SeasonID, signing.CapDelta); err != nil {
			return fmt.Errorf("failed to debit cap space: %w", err)
		}
		return nil
	})
}
