package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/jdports/gridiron/go/internal/models"
	"github.com/jdports/gridiron/go/internal/sqlutil"
)

// AI states

func (s *Store) SaveAIState(ctx context.Context, state *models.TeamAIState) error {
	priorities, err := sqlutil.ToJSONB(state.Priorities)
	if err != nil {
		return err
	}
	const q = `INSERT INTO team_ai_states (id, team_id, season_id, strategy, aggressiveness,
	                                       risk_tolerance, priorities, weekly_budget, budget_spent, generated_at)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	           ON CONFLICT (season_id, team_id) DO UPDATE SET
	               strategy = EXCLUDED.strategy,
	               aggressiveness = EXCLUDED.aggressiveness,
	               risk_tolerance = EXCLUDED.risk_tolerance,
	               priorities = EXCLUDED.priorities,
	               weekly_budget = EXCLUDED.weekly_budget,
	               budget_spent = EXCLUDED.budget_spent,
	               generated_at = EXCLUDED.generated_at`
	_, err = s.db.ExecContext(ctx, q,
		state.ID, state.TeamID, state.SeasonID, state.Strategy, state.Aggressiveness,
		state.RiskTolerance, priorities, state.WeeklyBudget, state.BudgetSpent, state.GeneratedAt)
	if err != nil {
		return fmt.Errorf("failed to save ai state: %w", err)
	}
	return nil
}

func (s *Store) GetAIState(ctx context.Context, teamID, seasonID uuid.UUID) (*models.TeamAIState, error) {
	const q = `SELECT id, team_id, season_id, strategy, aggressiveness, risk_tolerance,
	                  priorities, weekly_budget, budget_spent, generated_at
	           FROM team_ai_states WHERE team_id = $1 AND season_id = $2`
	var state models.TeamAIState
	var priorities pqtype.NullRawMessage
	err := s.db.QueryRowContext(ctx, q, teamID, seasonID).Scan(
		&state.ID, &state.TeamID, &state.SeasonID, &state.Strategy, &state.Aggressiveness,
		&state.RiskTolerance, &priorities, &state.WeeklyBudget, &state.BudgetSpent,
		&state.GeneratedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	state.Priorities = make(map[models.Position]models.PriorityTier)
	if err := sqlutil.FromJSONB(priorities, &state.Priorities); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Store) AddAIStateSpend(ctx context.Context, id uuid.UUID, amount int64) error {
	const q = `UPDATE team_ai_states SET budget_spent = budget_spent + $2 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, q, id, amount)
	if err != nil {
		return fmt.Errorf("failed to add ai state spend: %w", err)
	}
	return requireRow(res)
}

func (s *Store) ResetAIStateBudgets(ctx context.Context, seasonID uuid.UUID) error {
	const q = `UPDATE team_ai_states SET budget_spent = 0 WHERE season_id = $1`
	if _, err := s.db.ExecContext(ctx, q, seasonID); err != nil {
		return fmt.Errorf("failed to reset ai state budgets: %w", err)
	}
	return nil
}

// Retirements

func (s *Store) CreateRetirements(ctx context.Context, retirements []models.PlayerRetirement) error {
	return sqlutil.Run(ctx, s.db, func(tx *sql.Tx) error {
		const q = `INSERT INTO player_retirements (id, player_id, season_id, age, final_overall, years_pro, retired_at)
		           VALUES ($1, $2, $3, $4, $5, $6, $7)`
		for _, r := range retirements {
			if _, err := tx.ExecContext(ctx, q,
				r.ID, r.PlayerID, r.SeasonID, r.Age, r.FinalOverall, r.YearsPro, r.RetiredAt); err != nil {
				return fmt.Errorf("failed to create retirement: %w", err)
			}
		}
		return nil
	})
}
