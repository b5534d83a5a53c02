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
	ErrEventNotFound       = errors.New("event not found")
	ErrEventSessionInvalid = errors.New("event references an unknown session")
)

type EventRepository interface {
	// Upsert removes any stored event with the same id and appends the
	// new one at the end of the log, in a single transaction.
	Upsert(ctx context.Context, event *models.Event) error
	ListBySession(ctx context.Context, sessionID int) ([]*models.Event, error)
	GetByID(ctx context.Context, sessionID int, id string) (*models.Event, error)
	Delete(ctx context.Context, sessionID int, id string) error
	Clear(ctx context.Context, sessionID int) error
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

const eventColumns = `
	id, session_id, type, video_timestamp, start_time, end_time, duration, half,
	player, player_receiver, player_out, player_in, team,
	start_x, start_y, end_x, end_y,
	technique, result, extra_info, pass_type, body_part, save_technique, created_at`

func (r *postgresEventRepository) Upsert(ctx context.Context, event *models.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin event upsert tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM events WHERE session_id = $1 AND id = $2`,
		event.SessionID, event.ID); err != nil {
		return fmt.Errorf("failed to delete prior event %s: %w", event.ID, err)
	}

	var startX, startY, endX, endY *float64
	if event.StartLocation != nil {
		startX, startY = &event.StartLocation.X, &event.StartLocation.Y
	}
	if event.EndLocation != nil {
		endX, endY = &event.EndLocation.X, &event.EndLocation.Y
	}

	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, NOW())
		RETURNING created_at`

	err = tx.QueryRowContext(ctx, query,
		event.ID,
		event.SessionID,
		event.Type,
		event.VideoTimestamp,
		event.StartTime,
		event.EndTime,
		event.Duration,
		event.Half,
		event.Player,
		event.PlayerReceiver,
		event.PlayerOut,
		event.PlayerIn,
		event.Team,
		startX,
		startY,
		endX,
		endY,
		event.Technique,
		event.Result,
		event.ExtraInfo,
		event.PassType,
		event.BodyPart,
		event.SaveTechnique,
	).Scan(&event.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "events_session_id_fkey" {
			return ErrEventSessionInvalid
		}
		return fmt.Errorf("failed to insert event %s: %w", event.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit event upsert: %w", err)
	}
	return nil
}

func (r *postgresEventRepository) ListBySession(ctx context.Context, sessionID int) ([]*models.Event, error) {
	// seq is a serial column so the log renders in insertion order;
	// an upserted event moves to the end, like the delete-and-append
	// it replaces.
	query := `SELECT ` + eventColumns + ` FROM events WHERE session_id = $1 ORDER BY seq ASC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events for session %d: %w", sessionID, err)
	}
	defer rows.Close()

	events := make([]*models.Event, 0)
	for rows.Next() {
		event, scanErr := scanEvent(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during event rows iteration: %w", err)
	}
	return events, nil
}

func (r *postgresEventRepository) GetByID(ctx context.Context, sessionID int, id string) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE session_id = $1 AND id = $2`

	row := r.db.QueryRowContext(ctx, query, sessionID, id)
	event, err := scanEventRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to scan event %s: %w", id, err)
	}
	return event, nil
}

func (r *postgresEventRepository) Delete(ctx context.Context, sessionID int, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM events WHERE session_id = $1 AND id = $2`, sessionID, id)
	if err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

func (r *postgresEventRepository) Clear(ctx context.Context, sessionID int) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM events WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to clear events for session %d: %w", sessionID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(rows *sql.Rows) (*models.Event, error) {
	event, err := scanEventRow(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan event row: %w", err)
	}
	return event, nil
}

func scanEventRow(row rowScanner) (*models.Event, error) {
	event := &models.Event{}
	var startX, startY, endX, endY *float64

	err := row.Scan(
		&event.ID,
		&event.SessionID,
		&event.Type,
		&event.VideoTimestamp,
		&event.StartTime,
		&event.EndTime,
		&event.Duration,
		&event.Half,
		&event.Player,
		&event.PlayerReceiver,
		&event.PlayerOut,
		&event.PlayerIn,
		&event.Team,
		&startX,
		&startY,
		&endX,
		&endY,
		&event.Technique,
		&event.Result,
		&event.ExtraInfo,
		&event.PassType,
		&event.BodyPart,
		&event.SaveTechnique,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startX != nil && startY != nil {
		event.StartLocation = &models.Location{X: *startX, Y: *startY}
	}
	if endX != nil && endY != nil {
		event.EndLocation = &models.Location{X: *endX, Y: *endY}
	}
	return event, nil
}
