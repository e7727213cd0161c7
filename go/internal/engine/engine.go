// Package engine advances franchise time. AdvanceByDays walks the
// calendar one day at a time, running whatever each date holds —
// scheduled games, AI free agency, phase transitions, and the season
// rollover — committing progress after every day.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/jdports/gridiron/go/internal/calendar"
	"github.com/jdports/gridiron/go/internal/events"
	"github.com/jdports/gridiron/go/internal/models"
	"github.com/jdports/gridiron/go/internal/store"
)

// ErrInvalidAdvance rejects a negative day count.
var ErrInvalidAdvance = errors.New("engine: days must be non-negative")

// Recorder captures domain events as the simulation advances. The
// outbox repository implements it; tests use NopRecorder.
type Recorder interface {
	GameSimulated(ctx context.Context, payload events.GameSimulated) error
	PlayerSigned(ctx context.Context, payload events.PlayerSigned) error
	PhaseChanged(ctx context.Context, payload events.PhaseChanged) error
	SeasonEnded(ctx context.Context, payload events.SeasonEnded) error
	SeasonScheduled(ctx context.Context, payload events.SeasonScheduled) error
}

// NopRecorder drops every event.
type NopRecorder struct{}

func (NopRecorder) GameSimulated(context.Context, events.GameSimulated) error   { return nil }
func (NopRecorder) PlayerSigned(context.Context, events.PlayerSigned) error     { return nil }
func (NopRecorder) PhaseChanged(context.Context, events.PhaseChanged) error     { return nil }
func (NopRecorder) SeasonEnded(context.Context, events.SeasonEnded) error       { return nil }
func (NopRecorder) SeasonScheduled(context.Context, events.SeasonScheduled) error { return nil }

// marketDraw keys one free agent's availability draw for one market
// week.
type marketDraw struct {
	freeAgent uuid.UUID
	week      int
}

// Engine drives the simulation for every franchise against one store.
type Engine struct {
	store    store.Store
	recorder Recorder
	clock    clockwork.Clock
	rng      *rand.Rand

	mu          sync.Mutex
	locks       map[uuid.UUID]*sync.Mutex
	marketDraws map[marketDraw]bool
}

// New builds an engine. The seed fixes every stochastic draw, so two
// engines with the same seed and store replay identically.
func New(st store.Store, recorder Recorder, clock clockwork.Clock, seed int64) *Engine {
	return &Engine{
		store:       st,
		recorder:    recorder,
		clock:       clock,
		rng:         rand.New(rand.NewSource(seed)),
		locks:       make(map[uuid.UUID]*sync.Mutex),
		marketDraws: make(map[marketDraw]bool),
	}
}

// franchiseLock serializes advances per franchise; different
// franchises may advance concurrently.
func (e *Engine) franchiseLock(id uuid.UUID) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[id]
	if !ok {
		l = &sync.Mutex{}
		e.locks[id] = l
	}
	return l
}

// AdvanceResult reports what a call to AdvanceByDays did. Days already
// advanced stay committed even when a later day fails.
type AdvanceResult struct {
	DaysRequested int
	DaysAdvanced  int
	SeasonEnded   bool
	Messages      []string
}

func (r *AdvanceResult) addMessage(format string, args ...any) {
	r.Messages = append(r.Messages, fmt.Sprintf(format, args...))
}

// AdvanceByDays moves a franchise's season forward day by day. Each
// day runs in a fixed order: games on that date, AI free agency,
// phase transition, then season end. A season end stops the loop with
// the franchise already pointed at the new season; the caller advances
// again to continue. Advancing zero days is a no-op.
func (e *Engine) AdvanceByDays(ctx context.Context, franchiseID uuid.UUID, days int) (*AdvanceResult, error) {
	if days < 0 {
		return nil, ErrInvalidAdvance
	}

	lock := e.franchiseLock(franchiseID)
	lock.Lock()
	defer lock.Unlock()

	result := &AdvanceResult{DaysRequested: days}

	franchise, err := e.store.GetFranchise(ctx, franchiseID)
	if err != nil {
		return result, fmt.Errorf("failed to load franchise: %w", err)
	}
	season, err := e.store.GetSeason(ctx, franchise.CurrentSeasonID)
	if err != nil {
		return result, fmt.Errorf("failed to load season: %w", err)
	}

	for day := 0; day < days; day++ {
		date := calendar.AddDays(season.SimulationDate, 1)

		ended, err := e.advanceOneDay(ctx, franchise, season, date, result)
		if err != nil {
			return result, fmt.Errorf("failed to advance to %s: %w", date.Format("2006-01-02"), err)
		}
		result.DaysAdvanced++

		if ended {
			result.SeasonEnded = true
			break
		}
	}

	log.Info().
		Str("franchise_id", franchiseID.String()).
		Int("days", result.DaysAdvanced).
		Str("date", season.SimulationDate.Format("2006-01-02")).
		Str("phase", string(season.Phase)).
		Msg("advance complete")
	return result, nil
}

// advanceOneDay runs one date's events and persists the season state.
// Reports whether the season ended on this date.
func (e *Engine) advanceOneDay(ctx context.Context, franchise *models.Franchise, season *models.Season, date time.Time, result *AdvanceResult) (bool, error) {
	newPhase := calendar.PhaseForDate(date, season.Year)

	// Gate on the date's own phase: the opening Thursday holds both
	// the transition into the regular season and a scheduled game.
	if newPhase == models.PhaseRegularSeason || newPhase == models.PhasePostseason {
		if err := e.simulateGamesOn(ctx, season, date, result); err != nil {
			return false, err
		}
	}

	if newPhase.IsMarketPhase() {
		if err := e.runFreeAgencyDay(ctx, season, date, newPhase, result); err != nil {
			return false, err
		}
	}

	if newPhase != season.Phase {
		if err := e.recorder.PhaseChanged(ctx, events.PhaseChanged{
			SeasonID: season.ID,
			From:     season.Phase,
			To:       newPhase,
			Date:     date,
		}); err != nil {
			return false, err
		}
		result.addMessage("phase changed: %s -> %s", season.Phase, newPhase)

		if season.Phase == models.PhasePostseason && newPhase == models.PhaseOffseason {
			if err := e.runSeasonEnd(ctx, franchise, season, date, result); err != nil {
				return false, err
			}
			return true, nil
		}
		season.Phase = newPhase
	}

	season.SimulationDate = date
	if season.Phase == models.PhaseRegularSeason {
		season.CurrentWeek = calendar.WeekForDate(date, season.Year)
	}
	if !season.TradeDeadlinePassed && !date.Before(calendar.SeasonDates(season.Year).TradeDeadline) {
		season.TradeDeadlinePassed = true
		result.addMessage("trade deadline passed")
	}

	if err := e.store.UpdateSeasonState(ctx, season.ID, store.SeasonState{
		SimulationDate:      season.SimulationDate,
		CurrentWeek:         season.CurrentWeek,
		Phase:               season.Phase,
		TradeDeadlinePassed: season.TradeDeadlinePassed,
	}); err != nil {
		return false, fmt.Errorf("failed to persist season state: %w", err)
	}
	return false, nil
}
