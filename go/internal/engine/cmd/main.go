package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/jdports/gridiron/go/internal/dbconfig"
	"github.com/jdports/gridiron/go/internal/engine"
	"github.com/jdports/gridiron/go/internal/outbox"
	"github.com/jdports/gridiron/go/internal/store/postgres"
)

// Config is the simulation cmd's YAML file. Flags override it.
type Config struct {
	Simulation struct {
		Seed int64 `yaml:"seed"`
		Days int   `yaml:"days"`
	} `yaml:"simulation"`
	Franchise struct {
		ID       string `yaml:"id"`
		Name     string `yaml:"name"`
		TeamCode string `yaml:"team_code"`
	} `yaml:"franchise"`
}

func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Simulation.Seed = 1
	cfg.Simulation.Days = 1
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	franchiseFlag := flag.String("franchise", "", "franchise id to advance (overrides config)")
	daysFlag := flag.Int("days", 0, "days to advance (overrides config)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if *franchiseFlag != "" {
		cfg.Franchise.ID = *franchiseFlag
	}
	if *daysFlag > 0 {
		cfg.Simulation.Days = *daysFlag
	}

	ctx := context.Background()
	st, err := postgres.Open(ctx, dbconfig.NewConfigFromEnv())
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer st.Close()
	if err := st.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	recorder := outbox.NewRepository(st.DB())
	eng := engine.New(st, recorder, clockwork.NewRealClock(), cfg.Simulation.Seed)

	franchiseID, err := resolveFranchise(ctx, eng, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("resolve franchise")
	}

	result, err := eng.AdvanceByDays(ctx, franchiseID, cfg.Simulation.Days)
	if result == nil {
		log.Fatal().Err(err).Msg("advance failed")
	}
	for _, msg := range result.Messages {
		log.Info().Msg(msg)
	}
	if err != nil {
		log.Fatal().Err(err).
			Int("days_advanced", result.DaysAdvanced).
			Msg("advance failed partway; completed days stay committed")
	}
	log.Info().
		Int("days_advanced", result.DaysAdvanced).
		Bool("season_ended", result.SeasonEnded).
		Msg("done")
}

// resolveFranchise returns the configured franchise, creating one from
// the template season when only a team code is given.
func resolveFranchise(ctx context.Context, eng *engine.Engine, cfg *Config) (uuid.UUID, error) {
	if cfg.Franchise.ID != "" {
		id, err := uuid.Parse(cfg.Franchise.ID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to parse franchise id: %w", err)
		}
		return id, nil
	}
	if cfg.Franchise.TeamCode == "" {
		return uuid.Nil, fmt.Errorf("config needs a franchise id or a team code")
	}

	teamID, err := eng.TeamByCode(ctx, cfg.Franchise.TeamCode)
	if err != nil {
		return uuid.Nil, err
	}
	name := cfg.Franchise.Name
	if name == "" {
		name = cfg.Franchise.TeamCode + " franchise"
	}
	franchise, err := eng.CreateFranchise(ctx, name, teamID)
	if err != nil {
		return uuid.Nil, err
	}
	return franchise.ID, nil
}
