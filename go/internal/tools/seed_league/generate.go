package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jdports/gridiron/go/internal/models"
	"github.com/jdports/gridiron/go/internal/schedule"
)

const (
	salaryCap     = 255_000_000
	minimumSalary = 840_000
	freeAgentPool = 140
)

// rosterPlan is the depth chart every generated team fills, in a
// stable order so a fixed seed reproduces the same league.
var rosterPlan = []struct {
	Pos   models.Position
	Count int
}{
	{models.PositionQB, 3},
	{models.PositionRB, 4},
	{models.PositionWR, 6},
	{models.PositionTE, 3},
	{models.PositionOL, 8},
	{models.PositionDL, 6},
	{models.PositionLB, 6},
	{models.PositionCB, 5},
	{models.PositionS, 4},
	{models.PositionK, 1},
	{models.PositionP, 1},
}

var firstNames = []string{
	"Marcus", "Jalen", "Derrick", "Tyler", "Brandon", "Chris", "Jordan", "Malik",
	"Devin", "Austin", "Caleb", "Isaiah", "Trevor", "Xavier", "Cameron", "Andre",
	"Terry", "Quentin", "Reggie", "Dante", "Cole", "Hunter", "Elijah", "Nathan",
	"Victor", "Omar", "Russell", "Shane", "Tony", "Wade", "Kyle", "Gabriel",
	"Darius", "Emmett", "Forrest", "Grant", "Harold", "Ivan", "Jonah", "Keenan",
}

var lastNames = []string{
	"Washington", "Jefferson", "Brooks", "Carter", "Dawson", "Ellison", "Foster",
	"Grant", "Harrison", "Ingram", "Jenkins", "Kendrick", "Lawson", "Mitchell",
	"Norwood", "Owens", "Patterson", "Quinn", "Reeves", "Sanders", "Thornton",
	"Underwood", "Vance", "Whitfield", "Young", "Abernathy", "Boyd", "Crawford",
	"Dixon", "Eastman", "Fleming", "Garrison", "Holloway", "Irving", "Jacobs",
	"Kirkland", "Lockhart", "Mercer", "Nash", "Overton", "Pruitt", "Rhodes",
	"Sheffield", "Tanner", "Upton", "Vaughn", "Wheeler", "Xiong", "Yates", "Zimmer",
}

// leagueData is everything the template season holds before any
// franchise copies it.
type leagueData struct {
	Season     *models.Season
	Players    []models.Player
	Attributes []models.PlayerAttributes
	Spots      []models.RosterSpot
	Contracts  []models.Contract
	Finances   []models.TeamFinances
	Standings  []models.TeamStanding
	FreeAgents []models.FreeAgent
	Games      []models.Game
	ByeWeeks   []models.ByeWeek
}

// deterministicTeamID derives a stable UUID from the team code so
// re-running the seeder never duplicates teams.
func deterministicTeamID(code string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("team:"+code))
}

// generateLeague builds the template season: a full depth chart, live
// contracts, cap sheets, a free-agent pool, and the opening schedule.
func generateLeague(teams []models.Team, year int, now time.Time, rng *rand.Rand) (*leagueData, error) {
	season := &models.Season{
		ID:             uuid.New(),
		Year:           year,
		CurrentWeek:    1,
		Phase:          models.PhaseOffseason,
		SimulationDate: time.Date(year, 3, 1, 0, 0, 0, 0, time.UTC),
		IsTemplate:     true,
		CreatedAt:      now,
	}

	league := &leagueData{Season: season}

	for _, team := range teams {
		var teamSalary int64
		for _, slot := range rosterPlan {
			for depth := 1; depth <= slot.Count; depth++ {
				player, attrs := generatePlayer(slot.Pos, depth, season, year, now, rng)
				contract := generateContract(player.ID, team.ID, season.ID, attrs.Overall, now, rng)
				teamSalary += contract.AnnualSalary

				league.Players = append(league.Players, player)
				league.Attributes = append(league.Attributes, attrs)
				league.Contracts = append(league.Contracts, contract)
				league.Spots = append(league.Spots, models.RosterSpot{
					ID:            uuid.New(),
					SeasonID:      season.ID,
					TeamID:        team.ID,
					PlayerID:      player.ID,
					Status:        models.RosterStatusActive,
					DepthPosition: depth,
					AcquiredAt:    now,
				})
			}
		}

		league.Finances = append(league.Finances, models.TeamFinances{
			ID:        uuid.New(),
			TeamID:    team.ID,
			SeasonID:  season.ID,
			SalaryCap: salaryCap,
			CapSpace:  salaryCap - teamSalary,
		})
		league.Standings = append(league.Standings, models.TeamStanding{
			ID:       uuid.New(),
			TeamID:   team.ID,
			SeasonID: season.ID,
		})
	}

	for i := 0; i < freeAgentPool; i++ {
		slot := rosterPlan[i%len(rosterPlan)]
		player, attrs := generatePlayer(slot.Pos, 2+rng.Intn(3), season, year, now, rng)
		league.Players = append(league.Players, player)
		league.Attributes = append(league.Attributes, attrs)
		league.FreeAgents = append(league.FreeAgents, models.FreeAgent{
			ID:          uuid.New(),
			PlayerID:    player.ID,
			SeasonID:    season.ID,
			MarketValue: salaryFor(attrs.Overall, rng) * 9 / 10,
			Status:      models.FreeAgentAvailable,
			ListedAt:    now,
		})
	}

	slate, err := schedule.Generate(teams, season.ID, year, league.Standings, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to generate opening schedule: %w", err)
	}
	league.Games = slate.Games
	league.ByeWeeks = slate.ByeWeeks

	return league, nil
}

// generatePlayer rolls a player whose talent tapers with depth-chart
// position. Sub-attributes scatter around the target and the overall
// is recomputed from them.
func generatePlayer(pos models.Position, depth int, season *models.Season, year int, now time.Time, rng *rand.Rand) (models.Player, models.PlayerAttributes) {
	age := 22 + rng.Intn(12)
	player := models.Player{
		ID:        uuid.New(),
		FirstName: firstNames[rng.Intn(len(firstNames))],
		LastName:  lastNames[rng.Intn(len(lastNames))],
		Position:  pos,
		BirthYear: year - age,
		CreatedAt: now,
	}

	target := 76 - 4*(depth-1) + rng.Intn(7) - 3
	if target < 55 {
		target = 55
	}
	if target > 92 {
		target = 92
	}
	roll := func() int {
		return models.ClampRating(target + rng.Intn(13) - 6)
	}
	speed, strength, agility, awareness := roll(), roll(), roll(), roll()

	attrs := models.PlayerAttributes{
		ID:               uuid.New(),
		PlayerID:         player.ID,
		SeasonID:         season.ID,
		Age:              age,
		Overall:          models.WeightedOverall(speed, strength, agility, awareness),
		Speed:            speed,
		Strength:         strength,
		Agility:          agility,
		Awareness:        awareness,
		InjuryProneness:  20 + rng.Intn(60),
		Morale:           40 + rng.Intn(50),
		YearsPro:         maxInt(0, age-22),
		DevelopmentTrait: rollTrait(rng),
	}
	return player, attrs
}

func generateContract(playerID, teamID, seasonID uuid.UUID, overall int, now time.Time, rng *rand.Rand) models.Contract {
	years := 1 + rng.Intn(4)
	salary := salaryFor(overall, rng)
	guaranteedPct := 30 + rng.Intn(31)
	return models.Contract{
		ID:              uuid.New(),
		PlayerID:        playerID,
		TeamID:          teamID,
		SeasonID:        seasonID,
		AnnualSalary:    salary,
		GuaranteedMoney: salary * int64(years) * int64(guaranteedPct) / 100,
		YearsTotal:      years,
		YearsRemaining:  years,
		SignedAt:        now,
	}
}

// salaryFor prices talent quadratically above the league minimum with
// a ±10% negotiation jitter.
func salaryFor(overall int, rng *rand.Rand) int64 {
	salary := int64(minimumSalary)
	if overall > 55 {
		excess := int64(overall - 55)
		salary += excess * excess * 15_000
	}
	jitter := 0.9 + rng.Float64()*0.2
	return int64(float64(salary) * jitter)
}

func rollTrait(rng *rand.Rand) models.DevelopmentTrait {
	switch roll := rng.Float64(); {
	case roll < 0.05:
		return models.TraitSuperstar
	case roll < 0.20:
		return models.TraitStar
	case roll < 0.80:
		return models.TraitNormal
	default:
		return models.TraitSlow
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
