package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/askhat/football-analysis/models"
	"github.com/askhat/football-analysis/repositories"
	"github.com/askhat/football-analysis/storage"
)

// LiveBroadcaster pushes a message to every websocket client watching
// a session. Implemented by live.Hub.
type LiveBroadcaster interface {
	BroadcastSessionUpdate(sessionID int, messageType string, payload interface{})
}

type SessionService interface {
	Create(ctx context.Context, userID int, input CreateSessionInput) (*models.AnalysisSession, error)
	GetByID(ctx context.Context, id int) (*models.AnalysisSession, error)
	ListByUser(ctx context.Context, userID int) ([]*models.AnalysisSession, error)
	SetTeams(ctx context.Context, userID, sessionID int, input CreateSessionInput) (*models.AnalysisSession, error)
	AttachVideo(ctx context.Context, userID, sessionID int, videoKey string) error
	Play(ctx context.Context, userID, sessionID int) error
	Pause(ctx context.Context, userID, sessionID int, position float64) error
	Seek(ctx context.Context, userID, sessionID int, position float64) error
	SetHalf(ctx context.Context, userID, sessionID int, half models.Half, active bool) error
	Delete(ctx context.Context, userID, sessionID int) error
}

type CreateSessionInput struct {
	HomeTeamID int `json:"home_team_id"`
	AwayTeamID int `json:"away_team_id"`
}

type sessionService struct {
	sessionRepo repositories.SessionRepository
	teamRepo    repositories.TeamRepository
	playerRepo  repositories.PlayerRepository
	uploader    storage.FileUploader
	hub         LiveBroadcaster
}

func NewSessionService(
	sessionRepo repositories.SessionRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
	hub LiveBroadcaster,
) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		uploader:    uploader,
		hub:         hub,
	}
}

func (s *sessionService) Create(ctx context.Context, userID int, input CreateSessionInput) (*models.AnalysisSession, error) {
	homeTeam, err := s.teamRepo.GetByID(ctx, input.HomeTeamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	awayTeam, err := s.teamRepo.GetByID(ctx, input.AwayTeamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	// The home team's roster starts on the bench; lineup selection
	// moves players into the starting set one by one.
	roster, err := s.playerRepo.ListByTeam(ctx, homeTeam.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for team %d: %w", homeTeam.ID, err)
	}
	substitutes := make([]models.Player, 0, len(roster))
	for _, p := range roster {
		substitutes = append(substitutes, *p)
	}

	session := &models.AnalysisSession{
		UserID:     userID,
		HomeTeamID: homeTeam.ID,
		HomeTeam:   homeTeam.Name,
		AwayTeamID: awayTeam.ID,
		AwayTeam:   awayTeam.Name,
		Lineup: models.Lineup{
			Starting:    []models.Player{},
			Substitutes: substitutes,
		},
		CurrentHalf: models.HalfFirst,
		HalfActive:  false,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) GetByID(ctx context.Context, id int) (*models.AnalysisSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	s.fillVideoURL(session)
	return session, nil
}

func (s *sessionService) ListByUser(ctx context.Context, userID int) ([]*models.AnalysisSession, error) {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, session := range sessions {
		s.fillVideoURL(session)
	}
	return sessions, nil
}

// SetTeams swaps the matchup of an existing session. The lineup is
// rebuilt from the new home roster, discarding the previous selection.
func (s *sessionService) SetTeams(ctx context.Context, userID, sessionID int, input CreateSessionInput) (*models.AnalysisSession, error) {
	session, err := s.getOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	homeTeam, err := s.teamRepo.GetByID(ctx, input.HomeTeamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	awayTeam, err := s.teamRepo.GetByID(ctx, input.AwayTeamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	roster, err := s.playerRepo.ListByTeam(ctx, homeTeam.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for team %d: %w", homeTeam.ID, err)
	}
	substitutes := make([]models.Player, 0, len(roster))
	for _, p := range roster {
		substitutes = append(substitutes, *p)
	}

	session.HomeTeamID = homeTeam.ID
	session.HomeTeam = homeTeam.Name
	session.AwayTeamID = awayTeam.ID
	session.AwayTeam = awayTeam.Name
	session.Lineup = models.Lineup{
		Starting:    []models.Player{},
		Substitutes: substitutes,
	}
	if err := s.sessionRepo.UpdateTeams(ctx, sessionID, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) AttachVideo(ctx context.Context, userID, sessionID int, videoKey string) error {
	if _, err := s.getOwned(ctx, userID, sessionID); err != nil {
		return err
	}
	// Replacing the video resets playback to the start, paused.
	if err := s.sessionRepo.UpdateVideoKey(ctx, sessionID, &videoKey); err != nil {
		return err
	}
	s.broadcastPlayback(sessionID, "VIDEO_UPDATED", 0, false)
	return nil
}

func (s *sessionService) Play(ctx context.Context, userID, sessionID int) error {
	session, err := s.getOwned(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if session.VideoKey == nil {
		return ErrNoVideoAttached
	}
	if err := s.sessionRepo.UpdatePlayback(ctx, sessionID, session.PlaybackPosition, true); err != nil {
		return err
	}
	s.broadcastPlayback(sessionID, "PLAYBACK_UPDATED", session.PlaybackPosition, true)
	return nil
}

func (s *sessionService) Pause(ctx context.Context, userID, sessionID int, position float64) error {
	session, err := s.getOwned(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if session.VideoKey == nil {
		return ErrNoVideoAttached
	}
	if position < 0 {
		position = session.PlaybackPosition
	}
	if err := s.sessionRepo.UpdatePlayback(ctx, sessionID, position, false); err != nil {
		return err
	}
	s.broadcastPlayback(sessionID, "PLAYBACK_UPDATED", position, false)
	return nil
}

func (s *sessionService) Seek(ctx context.Context, userID, sessionID int, position float64) error {
	session, err := s.getOwned(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if session.VideoKey == nil {
		return ErrNoVideoAttached
	}
	if position < 0 {
		position = 0
	}
	// Seeking always leaves the video paused, so the user tags against
	// a stable frame.
	if err := s.sessionRepo.UpdatePlayback(ctx, sessionID, position, false); err != nil {
		return err
	}
	s.broadcastPlayback(sessionID, "PLAYBACK_UPDATED", position, false)
	return nil
}

func (s *sessionService) SetHalf(ctx context.Context, userID, sessionID int, half models.Half, active bool) error {
	switch half {
	case models.HalfFirst, models.HalfSecond, models.HalfExtraTime, models.HalfPenalties:
	default:
		return ErrInvalidHalf
	}
	if _, err := s.getOwned(ctx, userID, sessionID); err != nil {
		return err
	}
	if err := s.sessionRepo.UpdateHalf(ctx, sessionID, half, active); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.BroadcastSessionUpdate(sessionID, "HALF_UPDATED", map[string]interface{}{
			"half":   half,
			"active": active,
		})
	}
	return nil
}

func (s *sessionService) Delete(ctx context.Context, userID, sessionID int) error {
	if _, err := s.getOwned(ctx, userID, sessionID); err != nil {
		return err
	}
	return s.sessionRepo.Delete(ctx, sessionID)
}

func (s *sessionService) fillVideoURL(session *models.AnalysisSession) {
	if s.uploader == nil || session.VideoKey == nil {
		return
	}
	session.VideoURL = s.uploader.GetPublicURL(*session.VideoKey)
}

func (s *sessionService) broadcastPlayback(sessionID int, messageType string, position float64, playing bool) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastSessionUpdate(sessionID, messageType, map[string]interface{}{
		"position": position,
		"playing":  playing,
	})
}

func (s *sessionService) getOwned(ctx context.Context, userID, sessionID int) (*models.AnalysisSession, error) {
	session, err := s.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrForbiddenOperation
	}
	return session, nil
}
