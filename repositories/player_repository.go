package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/askhat/football-analysis/models"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerTeamInvalid = errors.New("player references an unknown team")
)

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error)
	Delete(ctx context.Context, id int) error
	SeedPositions(ctx context.Context, exec SQLExecutor, positions []models.Position) error
	ListPositions(ctx context.Context) ([]models.Position, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	query := `
		INSERT INTO players (team_id, name, position_id, jersey_number, age, is_custom)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := exec.QueryRowContext(ctx, query,
		player.TeamID,
		player.Name,
		player.PositionID,
		player.JerseyNumber,
		player.Age,
		player.IsCustom,
	).Scan(&player.ID, &player.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "players_team_id_fkey" {
			return ErrPlayerTeamInvalid
		}
		return fmt.Errorf("failed to insert player %q: %w", player.Name, err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT p.id, p.team_id, p.name, p.position_id, pos.name, p.jersey_number, p.age, p.is_custom, p.created_at
		FROM players p
		JOIN positions pos ON pos.id = p.position_id
		WHERE p.id = $1`

	player := &models.Player{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&player.ID,
		&player.TeamID,
		&player.Name,
		&player.PositionID,
		&player.Position,
		&player.JerseyNumber,
		&player.Age,
		&player.IsCustom,
		&player.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to scan player by id %d: %w", id, err)
	}
	return player, nil
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	query := `
		SELECT p.id, p.team_id, p.name, p.position_id, pos.name, p.jersey_number, p.age, p.is_custom, p.created_at
		FROM players p
		JOIN positions pos ON pos.id = p.position_id
		WHERE p.team_id = $1
		ORDER BY p.jersey_number ASC, p.id ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query players for team %d: %w", teamID, err)
	}
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		var player models.Player
		if scanErr := rows.Scan(
			&player.ID,
			&player.TeamID,
			&player.Name,
			&player.PositionID,
			&player.Position,
			&player.JerseyNumber,
			&player.Age,
			&player.IsCustom,
			&player.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", scanErr)
		}
		players = append(players, &player)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during player rows iteration: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) SeedPositions(ctx context.Context, exec SQLExecutor, positions []models.Position) error {
	for _, pos := range positions {
		if _, err := exec.ExecContext(ctx,
			`INSERT INTO positions (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
			pos.ID, pos.Name); err != nil {
			return fmt.Errorf("failed to seed position %q: %w", pos.Name, err)
		}
	}
	return nil
}

func (r *postgresPlayerRepository) ListPositions(ctx context.Context) ([]models.Position, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM positions ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	positions := make([]models.Position, 0)
	for rows.Next() {
		var pos models.Position
		if scanErr := rows.Scan(&pos.ID, &pos.Name); scanErr != nil {
			return nil, fmt.Errorf("failed to scan position row: %w", scanErr)
		}
		positions = append(positions, pos)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during position rows iteration: %w", err)
	}
	return positions, nil
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}
