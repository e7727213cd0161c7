package engine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdports/gridiron/go/internal/calendar"
	"github.com/jdports/gridiron/go/internal/market"
	"github.com/jdports/gridiron/go/internal/models"
	"github.com/jdports/gridiron/go/internal/store"
	"github.com/jdports/gridiron/go/internal/store/memory"
)

type fixture struct {
	store     *memory.Store
	engine    *Engine
	franchise *models.Franchise
	season    *models.Season
	teams     []models.Team
}

func newFixture(t *testing.T, teamCount, year int, phase models.Phase, simDate time.Time) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memory.New()

	divisions := models.Divisions()
	teams := make([]models.Team, teamCount)
	for i := range teams {
		div := divisions[i%len(divisions)]
		teams[i] = models.Team{
			ID:         uuid.New(),
			Name:       fmt.Sprintf("Team %02d", i),
			Code:       fmt.Sprintf("T%02d", i),
			City:       fmt.Sprintf("City %02d", i),
			Conference: div.Conference,
			Division:   div.Division,
			Dome:       i%4 == 0,
			CreatedAt:  time.Now(),
		}
	}
	require.NoError(t, st.CreateTeams(ctx, teams))

	season := &models.Season{
		ID:             uuid.New(),
		Year:           year,
		CurrentWeek:    1,
		Phase:          phase,
		SimulationDate: simDate,
		CreatedAt:      time.Now(),
	}
	franchise := &models.Franchise{
		ID:              uuid.New(),
		Name:            "Test Franchise",
		TeamID:          teams[0].ID,
		CurrentSeasonID: season.ID,
		CreatedAt:       time.Now(),
	}
	fid := franchise.ID
	season.FranchiseID = &fid
	require.NoError(t, st.CreateSeason(ctx, season))
	require.NoError(t, st.CreateFranchise(ctx, franchise))

	standings := make([]models.TeamStanding, len(teams))
	for i, team := range teams {
		standings[i] = models.TeamStanding{ID: uuid.New(), TeamID: team.ID, SeasonID: season.ID}
	}
	require.NoError(t, st.CreateStandings(ctx, standings))

	clock := clockwork.NewFakeClockAt(time.Date(year, 6, 1, 12, 0, 0, 0, time.UTC))
	return &fixture{
		store:     st,
		engine:    New(st, NopRecorder{}, clock, 42),
		franchise: franchise,
		season:    season,
		teams:     teams,
	}
}

// addPlayer creates a player with season attributes and a roster spot.
func (f *fixture) addPlayer(t *testing.T, teamID uuid.UUID, pos models.Position, depth, age, overall int) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	p := models.Player{
		ID:        uuid.New(),
		FirstName: "Player",
		LastName:  string(pos),
		Position:  pos,
		BirthYear: f.season.Year - age,
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.store.CreatePlayers(ctx, []models.Player{p}))
	require.NoError(t, f.store.CreateAttributes(ctx, []models.PlayerAttributes{{
		ID: uuid.New(), PlayerID: p.ID, SeasonID: f.season.ID,
		Age: age, Overall: overall, Speed: overall, Strength: overall,
		Agility: overall, Awareness: overall, InjuryProneness: 40, Morale: 60,
		YearsPro: age - 22, DevelopmentTrait: models.TraitNormal,
	}}))
	require.NoError(t, f.store.CreateRosterSpots(ctx, []models.RosterSpot{{
		ID: uuid.New(), SeasonID: f.season.ID, TeamID: teamID, PlayerID: p.ID,
		Status: models.RosterStatusActive, DepthPosition: depth, AcquiredAt: time.Now(),
	}}))
	return p.ID
}

func (f *fixture) fillRoster(t *testing.T, teamID uuid.UUID, skip ...models.Position) {
	t.Helper()
	skipSet := make(map[models.Position]bool)
	for _, pos := range skip {
		skipSet[pos] = true
	}
	counts := map[models.Position]int{
		models.PositionQB: 2, models.PositionRB: 2, models.PositionWR: 3,
		models.PositionTE: 1, models.PositionOL: 2, models.PositionDL: 2,
		models.PositionLB: 2, models.PositionCB: 2, models.PositionS: 1,
		models.PositionK: 1, models.PositionP: 1,
	}
	for pos, n := range counts {
		if skipSet[pos] {
			continue
		}
		for d := 1; d <= n; d++ {
			f.addPlayer(t, teamID, pos, d, 27, 80)
		}
	}
}

func TestAdvanceZeroDaysIsNoOp(t *testing.T) {
	simDate := time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, 2, 2025, models.PhaseRegularSeason, simDate)

	result, err := f.engine.AdvanceByDays(context.Background(), f.franchise.ID, 0)
	require.NoError(t, err)
	assert.Zero(t, result.DaysAdvanced)

	season, err := f.store.GetSeason(context.Background(), f.season.ID)
	require.NoError(t, err)
	assert.True(t, season.SimulationDate.Equal(simDate))
	assert.Equal(t, models.PhaseRegularSeason, season.Phase)
}

func TestAdvanceRejectsNegativeDays(t *testing.T) {
	f := newFixture(t, 2, 2025, models.PhaseOffseason, time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC))
	_, err := f.engine.AdvanceByDays(context.Background(), f.franchise.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidAdvance)
}

func TestAdvanceUnknownFranchise(t *testing.T) {
	f := newFixture(t, 2, 2025, models.PhaseOffseason, time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC))
	_, err := f.engine.AdvanceByDays(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAdvanceSimulatesOnlyDatedGames(t *testing.T) {
	ctx := context.Background()
	// Sunday of week 1; the window ends the following Sunday.
	simDate := time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, 2, 2025, models.PhaseRegularSeason, simDate)
	home, away := f.teams[0], f.teams[1]
	f.fillRoster(t, home.ID)
	f.fillRoster(t, away.ID)

	inWindow1 := models.Game{
		ID: uuid.New(), SeasonID: f.season.ID, Week: 1,
		Date: time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC), Slot: models.SlotMondayNight,
		HomeTeamID: home.ID, AwayTeamID: away.ID, Weather: models.WeatherClear,
	}
	inWindow2 := models.Game{
		ID: uuid.New(), SeasonID: f.season.ID, Week: 2,
		Date: time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC), Slot: models.SlotThursdayNight,
		HomeTeamID: away.ID, AwayTeamID: home.ID, Weather: models.WeatherRain,
	}
	beyondWindow := models.Game{
		ID: uuid.New(), SeasonID: f.season.ID, Week: 3,
		Date: time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC), Slot: models.SlotSundayEarly,
		HomeTeamID: home.ID, AwayTeamID: away.ID, Weather: models.WeatherClear,
	}
	require.NoError(t, f.store.CreateGames(ctx, []models.Game{inWindow1, inWindow2, beyondWindow}))

	result, err := f.engine.AdvanceByDays(ctx, f.franchise.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, result.DaysAdvanced)
	assert.False(t, result.SeasonEnded)

	played := true
	simulated, err := f.store.ListGames(ctx, store.GameFilter{SeasonID: f.season.ID, Simulated: &played})
	require.NoError(t, err)
	require.Len(t, simulated, 2)
	for _, g := range simulated {
		require.NotNil(t, g.HomeScore)
		require.NotNil(t, g.AwayScore)
		assert.NotEqual(t, *g.HomeScore, *g.AwayScore, "sudden death breaks ties")
	}

	// Both teams carry two results; points bookkeeping matches scores.
	for _, team := range []models.Team{home, away} {
		standing, err := f.store.GetStanding(ctx, team.ID, f.season.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, standing.Wins+standing.Losses+standing.Ties)
		assert.Positive(t, standing.PointsFor+standing.PointsAgainst)
	}

	season, err := f.store.GetSeason(ctx, f.season.ID)
	require.NoError(t, err)
	assert.True(t, season.SimulationDate.Equal(calendar.AddDays(simDate, 7)))
	assert.Equal(t, 2, season.CurrentWeek)

	// Stat lines landed for both simulated games.
	summaries, err := f.store.SummarizeSeason(ctx, f.season.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, summaries)
}

func TestAdvanceRunsFreeAgencySigning(t *testing.T) {
	ctx := context.Background()
	// Free agency opened March 12.
	simDate := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	f := newFixture(t, 2, 2025, models.PhaseFreeAgency, simDate)
	needy, rival := f.teams[0], f.teams[1]
	f.fillRoster(t, needy.ID, models.PositionQB)
	f.fillRoster(t, rival.ID)

	require.NoError(t, f.store.CreateFinances(ctx, []models.TeamFinances{
		{ID: uuid.New(), TeamID: needy.ID, SeasonID: f.season.ID, SalaryCap: 255_000_000, CapSpace: 80_000_000},
		{ID: uuid.New(), TeamID: rival.ID, SeasonID: f.season.ID, SalaryCap: 255_000_000, CapSpace: 80_000_000},
	}))

	qb := models.Player{
		ID: uuid.New(), FirstName: "Free", LastName: "Agent",
		Position: models.PositionQB, BirthYear: 1999, CreatedAt: time.Now(),
	}
	require.NoError(t, f.store.CreatePlayers(ctx, []models.Player{qb}))
	require.NoError(t, f.store.CreateAttributes(ctx, []models.PlayerAttributes{{
		ID: uuid.New(), PlayerID: qb.ID, SeasonID: f.season.ID,
		Age: 26, Overall: 90, Speed: 90, Strength: 90, Agility: 90, Awareness: 90,
		InjuryProneness: 30, Morale: 70, YearsPro: 4, DevelopmentTrait: models.TraitStar,
	}}))
	fa := models.FreeAgent{
		ID: uuid.New(), PlayerID: qb.ID, SeasonID: f.season.ID,
		MarketValue: 8_000_000, Status: models.FreeAgentAvailable, ListedAt: time.Now(),
	}
	require.NoError(t, f.store.CreateFreeAgents(ctx, []models.FreeAgent{fa}))

	// Keep the quarterback shopping every week so the outcome does not
	// hang on the availability draws.
	for week := 1; week <= 4; week++ {
		f.engine.marketDraws[marketDraw{freeAgent: fa.ID, week: week}] = true
	}

	result, err := f.engine.AdvanceByDays(ctx, f.franchise.ID, 21)
	require.NoError(t, err)
	assert.Equal(t, 21, result.DaysAdvanced)

	// An elite quarterback does not survive three weeks of open market.
	available, err := f.store.ListAvailableFreeAgents(ctx, f.season.ID)
	require.NoError(t, err)
	assert.Empty(t, available)

	contracts, err := f.store.ListContractsBySeason(ctx, f.season.ID)
	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.Equal(t, qb.ID, contracts[0].PlayerID)
	assert.Positive(t, contracts[0].AnnualSalary)

	signedTeam := contracts[0].TeamID
	fin, err := f.store.GetFinances(ctx, signedTeam, f.season.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(80_000_000)-contracts[0].AnnualSalary, fin.CapSpace)

	state, err := f.store.GetAIState(ctx, signedTeam, f.season.ID)
	require.NoError(t, err)
	assert.NotZero(t, state.WeeklyBudget)
}

func TestAdvanceStopsAtSeasonEndAndResumes(t *testing.T) {
	ctx := context.Background()
	dates := calendar.SeasonDates(2025)
	f := newFixture(t, 32, 2025, models.PhasePostseason, dates.SuperBowl)

	// A certain retiree and a survivor under contract on the franchise team.
	team := f.teams[0]
	retiree := f.addPlayer(t, team.ID, models.PositionRB, 1, 38, 62)
	survivor := f.addPlayer(t, team.ID, models.PositionQB, 1, 25, 80)

	// Bump the retiree's injury proneness so the retirement draw is certain.
	attrs, err := f.store.GetAttributes(ctx, retiree, f.season.ID)
	require.NoError(t, err)
	bumped := *attrs
	bumped.InjuryProneness = 85
	require.NoError(t, f.store.CreateAttributes(ctx, []models.PlayerAttributes{bumped}))

	require.NoError(t, f.store.CreateContracts(ctx, []models.Contract{
		{ID: uuid.New(), PlayerID: retiree, TeamID: team.ID, SeasonID: f.season.ID,
			AnnualSalary: 2_000_000, GuaranteedMoney: 1_000_000, YearsTotal: 3, YearsRemaining: 2, SignedAt: time.Now()},
		{ID: uuid.New(), PlayerID: survivor, TeamID: team.ID, SeasonID: f.season.ID,
			AnnualSalary: 10_000_000, GuaranteedMoney: 20_000_000, YearsTotal: 4, YearsRemaining: 3, SignedAt: time.Now()},
	}))
	require.NoError(t, f.store.CreateFinances(ctx, []models.TeamFinances{{
		ID: uuid.New(), TeamID: team.ID, SeasonID: f.season.ID,
		SalaryCap: 255_000_000, CapSpace: 30_000_000,
	}}))

	result, err := f.engine.AdvanceByDays(ctx, f.franchise.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DaysAdvanced, "season end stops the loop")
	assert.True(t, result.SeasonEnded)

	franchise, err := f.store.GetFranchise(ctx, f.franchise.ID)
	require.NoError(t, err)
	require.NotEqual(t, f.season.ID, franchise.CurrentSeasonID)

	next, err := f.store.GetSeason(ctx, franchise.CurrentSeasonID)
	require.NoError(t, err)
	assert.Equal(t, 2026, next.Year)
	assert.Equal(t, models.PhaseOffseason, next.Phase)

	// Full slate for the new year: 272 games, 32 byes, zeroed standings.
	games, err := f.store.ListGames(ctx, store.GameFilter{SeasonID: next.ID})
	require.NoError(t, err)
	assert.Len(t, games, 272)
	byes, err := f.store.ListByeWeeks(ctx, next.ID)
	require.NoError(t, err)
	assert.Len(t, byes, 32)
	standings, err := f.store.ListStandingsBySeason(ctx, next.ID)
	require.NoError(t, err)
	assert.Len(t, standings, 32)

	// Retiree is gone, survivor carried with a year burned off.
	_, err = f.store.GetAttributes(ctx, retiree, next.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	carriedAttrs, err := f.store.GetAttributes(ctx, survivor, next.ID)
	require.NoError(t, err)
	assert.Equal(t, 26, carriedAttrs.Age)

	carried, err := f.store.ListContractsBySeason(ctx, next.ID)
	require.NoError(t, err)
	require.Len(t, carried, 1)
	assert.Equal(t, survivor, carried[0].PlayerID)
	assert.Equal(t, 2, carried[0].YearsRemaining)

	roster, err := f.store.ListTeamRoster(ctx, next.ID, team.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, survivor, roster[0].PlayerID)

	// Resuming advances the new season without touching the old one.
	again, err := f.engine.AdvanceByDays(ctx, f.franchise.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, again.DaysAdvanced)
	resumed, err := f.store.GetSeason(ctx, next.ID)
	require.NoError(t, err)
	assert.True(t, resumed.SimulationDate.After(next.SimulationDate))
}

func TestAssessTeamNeedsFlagsMissingPosition(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2, 2025, models.PhaseOffseason, time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC))
	f.fillRoster(t, f.teams[0].ID, models.PositionK)

	teamNeeds, err := f.engine.AssessTeamNeeds(ctx, f.season.ID, f.teams[0].ID)
	require.NoError(t, err)
	kicker, ok := teamNeeds.ByPosition(models.PositionK)
	require.True(t, ok)
	assert.Zero(t, kicker.CurrentCount)
	assert.Positive(t, kicker.Score)
}

func TestMarketViewsApplyWeeklyTierPricing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2, 2025, models.PhaseFreeAgency, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))

	qb := models.Player{ID: uuid.New(), FirstName: "Market", LastName: "QB", Position: models.PositionQB, BirthYear: 1999, CreatedAt: time.Now()}
	require.NoError(t, f.store.CreatePlayers(ctx, []models.Player{qb}))
	require.NoError(t, f.store.CreateAttributes(ctx, []models.PlayerAttributes{{
		ID: uuid.New(), PlayerID: qb.ID, SeasonID: f.season.ID,
		Age: 26, Overall: 90, Speed: 90, Strength: 90, Agility: 90, Awareness: 90,
		InjuryProneness: 30, Morale: 70, YearsPro: 4, DevelopmentTrait: models.TraitStar,
	}}))
	fa := models.FreeAgent{
		ID: uuid.New(), PlayerID: qb.ID, SeasonID: f.season.ID,
		MarketValue: 10_000_000, Status: models.FreeAgentAvailable, ListedAt: time.Now(),
	}
	require.NoError(t, f.store.CreateFreeAgents(ctx, []models.FreeAgent{fa}))

	// Pin the availability draw so the view is guaranteed to appear.
	f.engine.marketDraws[marketDraw{freeAgent: fa.ID, week: 1}] = true

	views, err := f.engine.marketViews(ctx, f.season.ID, []models.FreeAgent{fa}, 1)
	require.NoError(t, err)
	require.Len(t, views, 1)

	// Week 1 elite asking price carries the early-rush premium.
	want := int64(float64(fa.MarketValue) * market.ValueMultiplier(90, 1))
	assert.Equal(t, want, views[0].FreeAgent.MarketValue)
	assert.Greater(t, views[0].FreeAgent.MarketValue, fa.MarketValue)
}

func TestFreeAgentAvailabilityHeldForMarketWeek(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2, 2025, models.PhaseFreeAgency, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))

	var freeAgents []models.FreeAgent
	for i := 0; i < 20; i++ {
		p := models.Player{ID: uuid.New(), FirstName: "Depth", LastName: fmt.Sprintf("Player%02d", i), Position: models.PositionWR, BirthYear: 1998, CreatedAt: time.Now()}
		require.NoError(t, f.store.CreatePlayers(ctx, []models.Player{p}))
		require.NoError(t, f.store.CreateAttributes(ctx, []models.PlayerAttributes{{
			ID: uuid.New(), PlayerID: p.ID, SeasonID: f.season.ID,
			Age: 27, Overall: 62, Speed: 62, Strength: 62, Agility: 62, Awareness: 62,
			InjuryProneness: 40, Morale: 60, YearsPro: 5, DevelopmentTrait: models.TraitNormal,
		}}))
		freeAgents = append(freeAgents, models.FreeAgent{
			ID: uuid.New(), PlayerID: p.ID, SeasonID: f.season.ID,
			MarketValue: 1_500_000, Status: models.FreeAgentAvailable, ListedAt: time.Now(),
		})
	}
	require.NoError(t, f.store.CreateFreeAgents(ctx, freeAgents))

	// Every day of the same market week sees the same availability.
	first, err := f.engine.marketViews(ctx, f.season.ID, freeAgents, 1)
	require.NoError(t, err)
	second, err := f.engine.marketViews(ctx, f.season.ID, freeAgents, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	for _, fa := range freeAgents {
		_, drawn := f.engine.marketDraws[marketDraw{freeAgent: fa.ID, week: 1}]
		assert.True(t, drawn)
	}
}

func TestCreateFranchiseCopiesTemplate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2, 2025, models.PhaseOffseason, time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC))

	template := &models.Season{
		ID: uuid.New(), Year: 2025, CurrentWeek: 1, Phase: models.PhaseOffseason,
		SimulationDate: time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC),
		IsTemplate:     true, CreatedAt: time.Now(),
	}
	require.NoError(t, f.store.CreateSeason(ctx, template))

	p := models.Player{ID: uuid.New(), FirstName: "Template", LastName: "QB", Position: models.PositionQB, BirthYear: 1998, CreatedAt: time.Now()}
	require.NoError(t, f.store.CreatePlayers(ctx, []models.Player{p}))
	require.NoError(t, f.store.CreateAttributes(ctx, []models.PlayerAttributes{{
		ID: uuid.New(), PlayerID: p.ID, SeasonID: template.ID,
		Age: 27, Overall: 82, Speed: 82, Strength: 82, Agility: 82, Awareness: 82,
		InjuryProneness: 40, Morale: 60, YearsPro: 5, DevelopmentTrait: models.TraitNormal,
	}}))
	require.NoError(t, f.store.CreateRosterSpots(ctx, []models.RosterSpot{{
		ID: uuid.New(), SeasonID: template.ID, TeamID: f.teams[0].ID, PlayerID: p.ID,
		Status: models.RosterStatusActive, DepthPosition: 1, AcquiredAt: time.Now(),
	}}))
	require.NoError(t, f.store.CreateContracts(ctx, []models.Contract{{
		ID: uuid.New(), PlayerID: p.ID, TeamID: f.teams[0].ID, SeasonID: template.ID,
		AnnualSalary: 5_000_000, GuaranteedMoney: 8_000_000, YearsTotal: 3, YearsRemaining: 2, SignedAt: time.Now(),
	}}))
	require.NoError(t, f.store.CreateFinances(ctx, []models.TeamFinances{{
		ID: uuid.New(), TeamID: f.teams[0].ID, SeasonID: template.ID,
		SalaryCap: 255_000_000, CapSpace: 60_000_000,
	}}))
	require.NoError(t, f.store.CreateStandings(ctx, []models.TeamStanding{{
		ID: uuid.New(), TeamID: f.teams[0].ID, SeasonID: template.ID,
	}}))
	require.NoError(t, f.store.CreateGames(ctx, []models.Game{{
		ID: uuid.New(), SeasonID: template.ID, Week: 1,
		Date: time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC), Slot: models.SlotSundayEarly,
		HomeTeamID: f.teams[0].ID, AwayTeamID: f.teams[1].ID, Weather: models.WeatherClear,
	}}))

	franchise, err := f.engine.CreateFranchise(ctx, "Fresh Save", f.teams[0].ID)
	require.NoError(t, err)
	require.NotEqual(t, template.ID, franchise.CurrentSeasonID)

	season, err := f.store.GetSeason(ctx, franchise.CurrentSeasonID)
	require.NoError(t, err)
	assert.Equal(t, template.Year, season.Year)
	assert.False(t, season.IsTemplate)
	require.NotNil(t, season.FranchiseID)
	assert.Equal(t, franchise.ID, *season.FranchiseID)

	roster, err := f.store.ListTeamRoster(ctx, season.ID, f.teams[0].ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, p.ID, roster[0].PlayerID)

	games, err := f.store.ListGames(ctx, store.GameFilter{SeasonID: season.ID})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.False(t, games[0].Simulated)

	// The template stays intact for the next save.
	tmplGames, err := f.store.ListGames(ctx, store.GameFilter{SeasonID: template.ID})
	require.NoError(t, err)
	assert.Len(t, tmplGames, 1)
	tmplRoster, err := f.store.ListTeamRoster(ctx, template.ID, f.teams[0].ID)
	require.NoError(t, err)
	assert.Len(t, tmplRoster, 1)
}

func TestTeamPersonalityIsStable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2, 2025, models.PhaseFreeAgency, time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC))
	f.fillRoster(t, f.teams[0].ID)
	require.NoError(t, f.store.CreateFinances(ctx, []models.TeamFinances{{
		ID: uuid.New(), TeamID: f.teams[0].ID, SeasonID: f.season.ID,
		SalaryCap: 255_000_000, CapSpace: 40_000_000,
	}}))

	first, err := f.engine.TeamPersonality(ctx, f.season.ID, f.teams[0].ID)
	require.NoError(t, err)
	second, err := f.engine.TeamPersonality(ctx, f.season.ID, f.teams[0].ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "generated once, then loaded")
	assert.Equal(t, first.Strategy, second.Strategy)
}
