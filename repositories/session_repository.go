package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/askhat/football-analysis/models"
)

var ErrSessionNotFound = errors.New("analysis session not found")

type SessionRepository interface {
	Create(ctx context.Context, session *models.AnalysisSession) error
	GetByID(ctx context.Context, id int) (*models.AnalysisSession, error)
	ListByUser(ctx context.Context, userID int) ([]*models.AnalysisSession, error)
	UpdateLineup(ctx context.Context, id int, lineup models.Lineup) error
	UpdateTeams(ctx context.Context, id int, session *models.AnalysisSession) error
	UpdateVideoKey(ctx context.Context, id int, videoKey *string) error
	UpdatePlayback(ctx context.Context, id int, position float64, playing bool) error
	UpdateHalf(ctx context.Context, id int, half models.Half, active bool) error
	Delete(ctx context.Context, id int) error
}

type postgresSessionRepository struct {
	db *sql.DB
}

func NewPostgresSessionRepository(db *sql.DB) SessionRepository {
	return &postgresSessionRepository{db: db}
}

// The lineup is stored as a single JSON document and replaced
// wholesale on every change; last writer wins.
func (r *postgresSessionRepository) Create(ctx context.Context, session *models.AnalysisSession) error {
	lineupJSON, err := json.Marshal(session.Lineup)
	if err != nil {
		return fmt.Errorf("failed to marshal lineup: %w", err)
	}

	query := `
		INSERT INTO analysis_sessions
			(user_id, home_team_id, home_team, away_team_id, away_team, lineup,
			 playback_position, is_playing, current_half, half_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	err = r.db.QueryRowContext(ctx, query,
		session.UserID,
		session.HomeTeamID,
		session.HomeTeam,
		session.AwayTeamID,
		session.AwayTeam,
		lineupJSON,
		session.PlaybackPosition,
		session.IsPlaying,
		session.CurrentHalf,
		session.HalfActive,
	).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert analysis session: %w", err)
	}
	return nil
}

func (r *postgresSessionRepository) GetByID(ctx context.Context, id int) (*models.AnalysisSession, error) {
	query := `
		SELECT id, user_id, home_team_id, home_team, away_team_id, away_team, lineup,
		       video_key, playback_position, is_playing, current_half, half_active, created_at
		FROM analysis_sessions
		WHERE id = $1`

	session := &models.AnalysisSession{}
	var lineupJSON []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.HomeTeamID,
		&session.HomeTeam,
		&session.AwayTeamID,
		&session.AwayTeam,
		&lineupJSON,
		&session.VideoKey,
		&session.PlaybackPosition,
		&session.IsPlaying,
		&session.CurrentHalf,
		&session.HalfActive,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to scan session by id %d: %w", id, err)
	}

	if err := json.Unmarshal(lineupJSON, &session.Lineup); err != nil {
		// A corrupt lineup document degrades to an empty lineup rather
		// than making the whole session unreadable.
		session.Lineup = models.Lineup{Starting: []models.Player{}, Substitutes: []models.Player{}}
	}
	return session, nil
}

func (r *postgresSessionRepository) ListByUser(ctx context.Context, userID int) ([]*models.AnalysisSession, error) {
	query := `
		SELECT id, user_id, home_team_id, home_team, away_team_id, away_team, lineup,
		       video_key, playback_position, is_playing, current_half, half_active, created_at
		FROM analysis_sessions
		WHERE user_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions for user %d: %w", userID, err)
	}
	defer rows.Close()

	sessions := make([]*models.AnalysisSession, 0)
	for rows.Next() {
		session := &models.AnalysisSession{}
		var lineupJSON []byte
		if scanErr := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.HomeTeamID,
			&session.HomeTeam,
			&session.AwayTeamID,
			&session.AwayTeam,
			&lineupJSON,
			&session.VideoKey,
			&session.PlaybackPosition,
			&session.IsPlaying,
			&session.CurrentHalf,
			&session.HalfActive,
			&session.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", scanErr)
		}
		if err := json.Unmarshal(lineupJSON, &session.Lineup); err != nil {
			session.Lineup = models.Lineup{Starting: []models.Player{}, Substitutes: []models.Player{}}
		}
		sessions = append(sessions, session)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during session rows iteration: %w", err)
	}
	return sessions, nil
}

func (r *postgresSessionRepository) UpdateLineup(ctx context.Context, id int, lineup models.Lineup) error {
	lineupJSON, err := json.Marshal(lineup)
	if err != nil {
		return fmt.Errorf("failed to marshal lineup: %w", err)
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE analysis_sessions SET lineup = $1 WHERE id = $2`, lineupJSON, id)
	if err != nil {
		return fmt.Errorf("failed to update lineup for session %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrSessionNotFound)
}

// UpdateTeams rewrites the team pairing together with the lineup,
// which is rebuilt from the new home roster by the caller.
func (r *postgresSessionRepository) UpdateTeams(ctx context.Context, id int, session *models.AnalysisSession) error {
	lineupJSON, err := json.Marshal(session.Lineup)
	if err != nil {
		return fmt.Errorf("failed to marshal lineup: %w", err)
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE analysis_sessions
		 SET home_team_id = $1, home_team = $2, away_team_id = $3, away_team = $4, lineup = $5
		 WHERE id = $6`,
		session.HomeTeamID, session.HomeTeam, session.AwayTeamID, session.AwayTeam, lineupJSON, id)
	if err != nil {
		return fmt.Errorf("failed to update teams for session %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrSessionNotFound)
}

func (r *postgresSessionRepository) UpdateVideoKey(ctx context.Context, id int, videoKey *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE analysis_sessions SET video_key = $1, playback_position = 0, is_playing = FALSE WHERE id = $2`,
		videoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update video key for session %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrSessionNotFound)
}

func (r *postgresSessionRepository) UpdatePlayback(ctx context.Context, id int, position float64, playing bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE analysis_sessions SET playback_position = $1, is_playing = $2 WHERE id = $3`,
		position, playing, id)
	if err != nil {
		return fmt.Errorf("failed to update playback for session %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrSessionNotFound)
}

func (r *postgresSessionRepository) UpdateHalf(ctx context.Context, id int, half models.Half, active bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE analysis_sessions SET current_half = $1, half_active = $2 WHERE id = $3`,
		half, active, id)
	if err != nil {
		return fmt.Errorf("failed to update half for session %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrSessionNotFound)
}

func (r *postgresSessionRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM analysis_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrSessionNotFound)
}
