package services

import (
	"context"
	"errors"

	"github.com/askhat/football-analysis/models"
	"github.com/askhat/football-analysis/repositories"
)

// EventLogService reads and prunes a session's finalized events.
// Mutations fan out to live viewers so every open log stays in sync.
type EventLogService interface {
	List(ctx context.Context, sessionID int) ([]*models.Event, error)
	Get(ctx context.Context, sessionID int, eventID string) (*models.Event, error)
	Delete(ctx context.Context, userID, sessionID int, eventID string) error
	Clear(ctx context.Context, userID, sessionID int) error
	Activate(ctx context.Context, userID, sessionID int, eventID string) (*models.Event, error)
}

type eventLogService struct {
	sessionRepo repositories.SessionRepository
	eventRepo   repositories.EventRepository
	hub         LiveBroadcaster
}

func NewEventLogService(
	sessionRepo repositories.SessionRepository,
	eventRepo repositories.EventRepository,
	hub LiveBroadcaster,
) EventLogService {
	return &eventLogService{
		sessionRepo: sessionRepo,
		eventRepo:   eventRepo,
		hub:         hub,
	}
}

func (s *eventLogService) List(ctx context.Context, sessionID int) ([]*models.Event, error) {
	if _, err := s.getSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.eventRepo.ListBySession(ctx, sessionID)
}

func (s *eventLogService) Get(ctx context.Context, sessionID int, eventID string) (*models.Event, error) {
	if _, err := s.getSession(ctx, sessionID); err != nil {
		return nil, err
	}
	event, err := s.eventRepo.GetByID(ctx, sessionID, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventLogService) Delete(ctx context.Context, userID, sessionID int, eventID string) error {
	if _, err := s.getOwned(ctx, userID, sessionID); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, sessionID, eventID); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	s.broadcastEvents(ctx, sessionID)
	return nil
}

func (s *eventLogService) Clear(ctx context.Context, userID, sessionID int) error {
	if _, err := s.getOwned(ctx, userID, sessionID); err != nil {
		return err
	}
	if err := s.eventRepo.Clear(ctx, sessionID); err != nil {
		return err
	}
	s.broadcastEvents(ctx, sessionID)
	return nil
}

// Activate jumps playback to the moment an event was tagged, paused,
// so the analyst can review or re-tag it. Sessions without a video
// just return the event.
func (s *eventLogService) Activate(ctx context.Context, userID, sessionID int, eventID string) (*models.Event, error) {
	session, err := s.getOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	event, err := s.eventRepo.GetByID(ctx, sessionID, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if session.VideoKey != nil {
		if err := s.sessionRepo.UpdatePlayback(ctx, sessionID, event.VideoTimestamp, false); err != nil {
			return nil, err
		}
	}
	return event, nil
}

func (s *eventLogService) broadcastEvents(ctx context.Context, sessionID int) {
	if s.hub == nil {
		return
	}
	events, err := s.eventRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return
	}
	s.hub.BroadcastSessionUpdate(sessionID, "EVENTS_UPDATED", events)
}

func (s *eventLogService) getSession(ctx context.Context, sessionID int) (*models.AnalysisSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *eventLogService) getOwned(ctx context.Context, userID, sessionID int) (*models.AnalysisSession, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrForbiddenOperation
	}
	return session, nil
}
