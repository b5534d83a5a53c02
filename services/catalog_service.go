package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/askhat/football-analysis/models"
	"github.com/askhat/football-analysis/repositories"
	"golang.org/x/sync/errgroup"
)

// CatalogService serves the league/team/player catalog the match setup
// pages browse, and owns the custom teams and players a user adds on
// top of the seeded data.
type CatalogService interface {
	ListLeagues(ctx context.Context) ([]*models.League, error)
	ListTeams(ctx context.Context, leagueID int) ([]*models.Team, error)
	GetTeam(ctx context.Context, teamID int) (*models.Team, error)
	ListPlayers(ctx context.Context, teamID int) ([]*models.Player, error)
	ListPositions(ctx context.Context) ([]models.Position, error)
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, teamID int) error
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, playerID int) error
	SeedIfEmpty(ctx context.Context) error
}

type CreateTeamInput struct {
	LeagueID int    `json:"league_id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Stadium  string `json:"stadium"`
}

type CreatePlayerInput struct {
	TeamID       int    `json:"team_id"`
	Name         string `json:"name"`
	PositionID   int    `json:"position_id"`
	JerseyNumber int    `json:"jersey_number"`
	Age          int    `json:"age"`
}

type catalogService struct {
	db         *sql.DB
	leagueRepo repositories.LeagueRepository
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	logger     *slog.Logger
}

func NewCatalogService(
	db *sql.DB,
	leagueRepo repositories.LeagueRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	logger *slog.Logger,
) CatalogService {
	return &catalogService{
		db:         db,
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		logger:     logger,
	}
}

func (s *catalogService) ListLeagues(ctx context.Context) ([]*models.League, error) {
	return s.leagueRepo.List(ctx)
}

func (s *catalogService) ListTeams(ctx context.Context, leagueID int) ([]*models.Team, error) {
	if _, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		if errors.Is(err, repositories.ErrLeagueNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, err
	}
	return s.teamRepo.ListByLeague(ctx, leagueID)
}

func (s *catalogService) GetTeam(ctx context.Context, teamID int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (s *catalogService) ListPlayers(ctx context.Context, teamID int) ([]*models.Player, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return s.playerRepo.ListByTeam(ctx, teamID)
}

func (s *catalogService) ListPositions(ctx context.Context) ([]models.Position, error) {
	return s.playerRepo.ListPositions(ctx)
}

func (s *catalogService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}
	if _, err := s.leagueRepo.GetByID(ctx, input.LeagueID); err != nil {
		if errors.Is(err, repositories.ErrLeagueNotFound) {
			return nil, ErrLeagueNotFound
		}
		return nil, err
	}

	team := &models.Team{
		LeagueID: input.LeagueID,
		Name:     input.Name,
		City:     input.City,
		Stadium:  input.Stadium,
		IsCustom: true,
	}
	if err := s.teamRepo.Create(ctx, s.db, team); err != nil {
		return nil, fmt.Errorf("failed to create custom team: %w", err)
	}
	return team, nil
}

func (s *catalogService) DeleteTeam(ctx context.Context, teamID int) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return err
	}
	// Seeded teams stay; only user-added ones can be removed.
	if !team.IsCustom {
		return ErrForbiddenOperation
	}
	return s.teamRepo.Delete(ctx, teamID)
}

func (s *catalogService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	if input.Name == "" {
		return nil, ErrPlayerNameRequired
	}
	if _, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	player := &models.Player{
		TeamID:       input.TeamID,
		Name:         input.Name,
		PositionID:   input.PositionID,
		JerseyNumber: input.JerseyNumber,
		Age:          input.Age,
		IsCustom:     true,
	}
	if err := s.playerRepo.Create(ctx, s.db, player); err != nil {
		return nil, fmt.Errorf("failed to create custom player: %w", err)
	}
	return player, nil
}

func (s *catalogService) DeletePlayer(ctx context.Context, playerID int) error {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}
	if !player.IsCustom {
		return ErrForbiddenOperation
	}
	return s.playerRepo.Delete(ctx, playerID)
}

// SeedIfEmpty loads the fixture catalog on a fresh database. Leagues
// are inserted first; the per-league team and player trees are then
// loaded concurrently.
func (s *catalogService) SeedIfEmpty(ctx context.Context) error {
	count, err := s.leagueRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check catalog state: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := s.playerRepo.SeedPositions(ctx, s.db, fixturePositions); err != nil {
		return err
	}

	leagueIDs := make(map[string]int, len(fixtureLeagues))
	for _, fl := range fixtureLeagues {
		league := fl
		if err := s.leagueRepo.Create(ctx, s.db, &league); err != nil {
			return err
		}
		leagueIDs[league.Name] = league.ID
	}

	g, gctx := errgroup.WithContext(ctx)
	for leagueName, teams := range fixtureTeams {
		leagueID, ok := leagueIDs[leagueName]
		if !ok {
			continue
		}
		teams := teams
		g.Go(func() error {
			for _, ft := range teams {
				team := ft
				team.LeagueID = leagueID
				if err := s.teamRepo.Create(gctx, s.db, &team); err != nil {
					return err
				}
				for _, fp := range fixturePlayers[team.Name] {
					player := fp
					player.TeamID = team.ID
					if err := s.playerRepo.Create(gctx, s.db, &player); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	s.logger.Info("catalog fixtures seeded", slog.Int("leagues", len(fixtureLeagues)))
	return nil
}
