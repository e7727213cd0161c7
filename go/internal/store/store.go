// Package store defines the repository interfaces the engine persists
// through, one per entity. Two implementations exist: store/postgres
// against the real database and store/memory as a fake for tests.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jdports/gridiron/go/internal/market"
	"github.com/jdports/gridiron/go/internal/models"
)

var (
	// ErrNotFound is returned for lookups of missing records.
	ErrNotFound = errors.New("store: not found")
	// ErrInsufficientCapSpace aborts a signing whose salary does not
	// fit under the team's cap.
	ErrInsufficientCapSpace = errors.New("store: insufficient cap space")
	// ErrFreeAgentUnavailable aborts a signing whose target was
	// already signed.
	ErrFreeAgentUnavailable = errors.New("store: free agent unavailable")
	// ErrAlreadySimulated rejects recording a result twice.
	ErrAlreadySimulated = errors.New("store: game already simulated")
)

// SeasonState is the mutable slice of Season the simulation loop
// writes each day.
type SeasonState struct {
	SimulationDate      time.Time
	CurrentWeek         int
	Phase               models.Phase
	TradeDeadlinePassed bool
}

// GameFilter narrows game listings.
type GameFilter struct {
	SeasonID  uuid.UUID
	Date      *time.Time
	Week      *int
	Simulated *bool
}

type FranchiseRepository interface {
	CreateFranchise(ctx context.Context, franchise *models.Franchise) error
	GetFranchise(ctx context.Context, id uuid.UUID) (*models.Franchise, error)
	UpdateFranchiseSeason(ctx context.Context, id, seasonID uuid.UUID) error
}

type SeasonRepository interface {
	CreateSeason(ctx context.Context, season *models.Season) error
	GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error)
	GetTemplateSeason(ctx context.Context) (*models.Season, error)
	UpdateSeasonState(ctx context.Context, id uuid.UUID, state SeasonState) error
}

type TeamRepository interface {
	CreateTeams(ctx context.Context, teams []models.Team) error
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
}

type PlayerRepository interface {
	CreatePlayers(ctx context.Context, players []models.Player) error
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	ListPlayersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Player, error)
}

type AttributesRepository interface {
	CreateAttributes(ctx context.Context, attrs []models.PlayerAttributes) error
	GetAttributes(ctx context.Context, playerID, seasonID uuid.UUID) (*models.PlayerAttributes, error)
	ListAttributesBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.PlayerAttributes, error)
}

type RosterRepository interface {
	CreateRosterSpots(ctx context.Context, spots []models.RosterSpot) error
	ListRosterSpots(ctx context.Context, seasonID uuid.UUID) ([]models.RosterSpot, error)
	// ListTeamRoster returns the joined view: spots with player
	// identity and season attributes attached.
	ListTeamRoster(ctx context.Context, seasonID, teamID uuid.UUID) ([]models.RosterPlayer, error)
	DeleteRosterSpot(ctx context.Context, seasonID, playerID uuid.UUID) error
}

type ContractRepository interface {
	CreateContracts(ctx context.Context, contracts []models.Contract) error
	ListContractsBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.Contract, error)
	ListContractsByTeam(ctx context.Context, seasonID, teamID uuid.UUID) ([]models.Contract, error)
}

type FreeAgentRepository interface {
	CreateFreeAgents(ctx context.Context, agents []models.FreeAgent) error
	ListAvailableFreeAgents(ctx context.Context, seasonID uuid.UUID) ([]models.FreeAgent, error)
}

type FinancesRepository interface {
	CreateFinances(ctx context.Context, finances []models.TeamFinances) error
	GetFinances(ctx context.Context, teamID, seasonID uuid.UUID) (*models.TeamFinances, error)
	ListFinancesBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.TeamFinances, error)
}

type StandingRepository interface {
	CreateStandings(ctx context.Context, standings []models.TeamStanding) error
	GetStanding(ctx context.Context, teamID, seasonID uuid.UUID) (*models.TeamStanding, error)
	ListStandingsBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.TeamStanding, error)
	UpdateStanding(ctx context.Context, standing *models.TeamStanding) error
}

type GameRepository interface {
	CreateGames(ctx context.Context, games []models.Game) error
	ListGames(ctx context.Context, filter GameFilter) ([]models.Game, error)
	// RecordGameResult writes scores exactly once; recording an
	// already-simulated game is an error.
	RecordGameResult(ctx context.Context, gameID uuid.UUID, homeScore, awayScore int, overtime bool) error
	CreateByeWeeks(ctx context.Context, byes []models.ByeWeek) error
	ListByeWeeks(ctx context.Context, seasonID uuid.UUID) ([]models.ByeWeek, error)
}

type AIStateRepository interface {
	SaveAIState(ctx context.Context, state *models.TeamAIState) error
	GetAIState(ctx context.Context, teamID, seasonID uuid.UUID) (*models.TeamAIState, error)
	AddAIStateSpend(ctx context.Context, id uuid.UUID, amount int64) error
	ResetAIStateBudgets(ctx context.Context, seasonID uuid.UUID) error
}

type StatsRepository interface {
	CreatePlayerStats(ctx context.Context, stats []models.PlayerGameStats) error
	// SummarizeSeason aggregates every player's stat lines in one
	// read, keyed by player.
	SummarizeSeason(ctx context.Context, seasonID uuid.UUID) (map[uuid.UUID]models.PlayerSeasonSummary, error)
}

type RetirementRepository interface {
	CreateRetirements(ctx context.Context, retirements []models.PlayerRetirement) error
}

// Store is the full persistence surface the simulation engine runs
// against, including the atomic signing path used by the free-agency
// market.
type Store interface {
	FranchiseRepository
	SeasonRepository
	TeamRepository
	PlayerRepository
	AttributesRepository
	RosterRepository
	ContractRepository
	FreeAgentRepository
	FinancesRepository
	StandingRepository
	GameRepository
	AIStateRepository
	StatsRepository
	RetirementRepository
	market.Signer
}
