package main

import (
	"context"
	"encoding/json"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jdports/gridiron/go/internal/dbconfig"
	"github.com/jdports/gridiron/go/internal/models"
	"github.com/jdports/gridiron/go/internal/store"
	"github.com/jdports/gridiron/go/internal/store/postgres"
)

// teamSeed mirrors the teams.json layout.
type teamSeed struct {
	Name       string            `json:"name"`
	Code       string            `json:"code"`
	City       string            `json:"city"`
	Conference models.Conference `json:"conference"`
	Division   models.Division   `json:"division"`
	Stadium    string            `json:"stadium"`
	Dome       bool              `json:"dome"`
}

func main() {
	teamsPath := flag.String("teams", "go/internal/assets/teams.json", "path to the teams JSON snapshot")
	year := flag.Int("year", 2025, "league year of the template season")
	seed := flag.Int64("seed", 1, "random seed for league generation")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	ctx := context.Background()
	st, err := postgres.Open(ctx, dbconfig.NewConfigFromEnv())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer st.Close()
	if err := st.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	data, err := os.ReadFile(*teamsPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *teamsPath).Msg("failed to read teams file")
	}
	var seeds []teamSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		log.Fatal().Err(err).Msg("failed to parse teams file")
	}

	now := time.Now().UTC()
	teams := make([]models.Team, len(seeds))
	for i, s := range seeds {
		stadium := s.Stadium
		teams[i] = models.Team{
			ID:         deterministicTeamID(s.Code),
			Name:       s.Name,
			Code:       s.Code,
			City:       s.City,
			Conference: s.Conference,
			Division:   s.Division,
			Stadium:    &stadium,
			Dome:       s.Dome,
			CreatedAt:  now,
		}
	}

	league, err := generateLeague(teams, *year, now, rand.New(rand.NewSource(*seed)))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to generate league")
	}

	if err := persistLeague(ctx, st, teams, league); err != nil {
		log.Fatal().Err(err).Msg("failed to persist league")
	}

	log.Info().
		Int("teams", len(teams)).
		Int("players", len(league.Players)).
		Int("free_agents", len(league.FreeAgents)).
		Int("games", len(league.Games)).
		Int("year", *year).
		Str("season_id", league.Season.ID.String()).
		Msg("template league seeded")
}

func persistLeague(ctx context.Context, st store.Store, teams []models.Team, league *leagueData) error {
	if err := st.CreateTeams(ctx, teams); err != nil {
		return err
	}
	if err := st.CreateSeason(ctx, league.Season); err != nil {
		return err
	}
	if err := st.CreatePlayers(ctx, league.Players); err != nil {
		return err
	}
	if err := st.CreateAttributes(ctx, league.Attributes); err != nil {
		return err
	}
	if err := st.CreateRosterSpots(ctx, league.Spots); err != nil {
		return err
	}
	if err := st.CreateContracts(ctx, league.Contracts); err != nil {
		return err
	}
	if err := st.CreateFinances(ctx, league.Finances); err != nil {
		return err
	}
	if err := st.CreateStandings(ctx, league.Standings); err != nil {
		return err
	}
	if err := st.CreateFreeAgents(ctx, league.FreeAgents); err != nil {
		return err
	}
	if err := st.CreateGames(ctx, league.Games); err != nil {
		return err
	}
	return st.CreateByeWeeks(ctx, league.ByeWeeks)
}
