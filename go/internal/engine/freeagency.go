package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jdports/gridiron/go/internal/agent"
	"github.com/jdports/gridiron/go/internal/calendar"
	"github.com/jdports/gridiron/go/internal/events"
	"github.com/jdports/gridiron/go/internal/market"
	"github.com/jdports/gridiron/go/internal/models"
	"github.com/jdports/gridiron/go/internal/needs"
	"github.com/jdports/gridiron/go/internal/personality"
	"github.com/jdports/gridiron/go/internal/store"
)

// runFreeAgencyDay plays one market day: every active front office
// plans its offers against the same snapshot of the market, then the
// batch resolves and signs at once.
func (e *Engine) runFreeAgencyDay(ctx context.Context, season *models.Season, date time.Time, phase models.Phase, result *AdvanceResult) error {
	freeAgents, err := e.store.ListAvailableFreeAgents(ctx, season.ID)
	if err != nil {
		return fmt.Errorf("failed to list free agents: %w", err)
	}
	if len(freeAgents) == 0 {
		return nil
	}

	// Weekly budgets refresh at the top of each market week.
	if date.Weekday() == time.Monday {
		if err := e.store.ResetAIStateBudgets(ctx, season.ID); err != nil {
			return fmt.Errorf("failed to reset weekly budgets: %w", err)
		}
	}

	week := marketWeek(date, season.Year)
	views, err := e.marketViews(ctx, season.ID, freeAgents, week)
	if err != nil {
		return err
	}
	if len(views) == 0 {
		return nil
	}

	teams, err := e.store.ListTeams(ctx)
	if err != nil {
		return fmt.Errorf("failed to list teams: %w", err)
	}

	teamCtx := make(map[uuid.UUID]market.TeamContext, len(teams))
	stateByTeam := make(map[uuid.UUID]uuid.UUID, len(teams))
	var offers []agent.Offer

	for i := range teams {
		team := &teams[i]
		standing, err := e.store.GetStanding(ctx, team.ID, season.ID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to load standing: %w", err)
		}
		winPct := 0.5
		if standing != nil {
			winPct = standing.WinPct()
		}
		teamCtx[team.ID] = market.TeamContext{WinPct: winPct}

		state, err := e.ensureAIState(ctx, season, team.ID)
		if err != nil {
			return err
		}
		stateByTeam[team.ID] = state.ID

		if !agent.IsActiveDay(state, date, phase) {
			continue
		}

		roster, err := e.store.ListTeamRoster(ctx, season.ID, team.ID)
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}
		finances, err := e.store.GetFinances(ctx, team.ID, season.ID)
		if err != nil {
			return fmt.Errorf("failed to load finances: %w", err)
		}

		teamNeeds := needs.Assess(team.ID, season.ID, roster)
		offers = append(offers, agent.PlanOffers(state, teamNeeds, views, finances.CapSpace, week)...)
	}

	if len(offers) == 0 {
		return nil
	}

	decisions := market.ResolveOffers(freeAgents, offers, teamCtx, e.rng)
	outcome := market.ExecuteDecisions(ctx, e.store, season.ID, decisions, e.clock.Now().UTC())

	for _, d := range outcome.Succeeded {
		if stateID, ok := stateByTeam[d.Winner.TeamID]; ok {
			if err := e.store.AddAIStateSpend(ctx, stateID, d.Winner.AnnualSalary); err != nil {
				return fmt.Errorf("failed to track budget spend: %w", err)
			}
		}
		if err := e.recorder.PlayerSigned(ctx, events.PlayerSigned{
			PlayerID:     d.PlayerID,
			TeamID:       d.Winner.TeamID,
			SeasonID:     season.ID,
			AnnualSalary: d.Winner.AnnualSalary,
			Years:        d.Winner.Years,
			SignedOn:     date,
		}); err != nil {
			return err
		}
	}

	if outcome.Signed > 0 || outcome.Failed > 0 {
		result.addMessage("free agency: %d signed, %d failed", outcome.Signed, outcome.Failed)
	}
	return nil
}

// marketWeek counts weeks since free agency opened, starting at 1.
func marketWeek(date time.Time, year int) int {
	start := calendar.SeasonDates(year).FreeAgencyStart
	if date.Before(start) {
		return 1
	}
	return int(date.Sub(start).Hours()/24/7) + 1
}

// marketViews joins free agents with player facts and keeps the ones
// shopping this week. Availability is drawn once per agent per market
// week and held, and each view's asking price carries the week's tier
// multiplier, so every team all week sees the same market.
func (e *Engine) marketViews(ctx context.Context, seasonID uuid.UUID, freeAgents []models.FreeAgent, week int) ([]agent.FreeAgentView, error) {
	ids := make([]uuid.UUID, len(freeAgents))
	for i, fa := range freeAgents {
		ids[i] = fa.PlayerID
	}
	players, err := e.store.ListPlayersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load free-agent players: %w", err)
	}
	position := make(map[uuid.UUID]models.Position, len(players))
	for _, p := range players {
		position[p.ID] = p.Position
	}

	views := make([]agent.FreeAgentView, 0, len(freeAgents))
	for _, fa := range freeAgents {
		attrs, err := e.store.GetAttributes(ctx, fa.PlayerID, seasonID)
		if err != nil {
			return nil, fmt.Errorf("failed to load free-agent attributes: %w", err)
		}
		if !e.inPlayThisWeek(fa.ID, attrs.Overall, week) {
			continue
		}
		priced := fa
		priced.MarketValue = int64(float64(fa.MarketValue) * market.ValueMultiplier(attrs.Overall, week))
		views = append(views, agent.FreeAgentView{
			FreeAgent: priced,
			Position:  position[fa.PlayerID],
			Age:       attrs.Age,
			Overall:   attrs.Overall,
		})
	}
	return views, nil
}

// inPlayThisWeek draws a free agent's availability once per market
// week and holds the result, so the weekly tier curve applies as a
// weekly rate rather than compounding across the week's days.
func (e *Engine) inPlayThisWeek(freeAgentID uuid.UUID, overall, week int) bool {
	key := marketDraw{freeAgent: freeAgentID, week: week}
	e.mu.Lock()
	defer e.mu.Unlock()
	if v, ok := e.marketDraws[key]; ok {
		return v
	}
	v := market.InPlay(overall, week, e.rng)
	e.marketDraws[key] = v
	return v
}

// ensureAIState loads a team's season profile, generating and saving
// it on first touch.
func (e *Engine) ensureAIState(ctx context.Context, season *models.Season, teamID uuid.UUID) (*models.TeamAIState, error) {
	state, err := e.store.GetAIState(ctx, teamID, season.ID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to load ai state: %w", err)
	}

	state, err = e.generatePersonality(ctx, season, teamID)
	if err != nil {
		return nil, err
	}
	if err := e.store.SaveAIState(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save ai state: %w", err)
	}
	log.Info().
		Str("team_id", teamID.String()).
		Str("strategy", string(state.Strategy)).
		Float64("aggressiveness", state.Aggressiveness).
		Msg("generated team personality")
	return state, nil
}

func (e *Engine) generatePersonality(ctx context.Context, season *models.Season, teamID uuid.UUID) (*models.TeamAIState, error) {
	roster, err := e.store.ListTeamRoster(ctx, season.ID, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	finances, err := e.store.GetFinances(ctx, teamID, season.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load finances: %w", err)
	}

	in := personality.Input{
		TeamID:   teamID,
		SeasonID: season.ID,
		CapSpace: finances.CapSpace,
		Needs:    needs.Assess(teamID, season.ID, roster),
	}

	standing, err := e.store.GetStanding(ctx, teamID, season.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to load standing: %w", err)
	}
	if standing != nil {
		in.PriorWins = standing.Wins
		in.PriorLosses = standing.Losses
		in.PriorTies = standing.Ties
	}

	if len(roster) > 0 {
		var age, talent float64
		for _, rp := range roster {
			age += float64(rp.Attributes.Age)
			talent += float64(rp.Attributes.Overall)
		}
		in.AvgAge = age / float64(len(roster))
		in.AvgTalent = talent / float64(len(roster))
	}

	return personality.Generate(in, e.rng, e.clock.Now().UTC()), nil
}
