package services

import (
	"context"
	"errors"

	"github.com/askhat/football-analysis/models"
	"github.com/askhat/football-analysis/repositories"
)

// LineupService moves players between a session's starting set and its
// bench and assigns tactical positions. The lineup is a single-writer
// document: every mutation re-reads, transforms and replaces it whole.
type LineupService interface {
	Get(ctx context.Context, sessionID int) (*models.Lineup, error)
	AddToStarting(ctx context.Context, userID, sessionID, playerID int) (*models.Lineup, error)
	MoveToSubstitutes(ctx context.Context, userID, sessionID, playerID int) (*models.Lineup, error)
	SetTacticalPosition(ctx context.Context, userID, sessionID, playerID int, positionID string) (*models.Lineup, error)
}

type lineupService struct {
	sessionRepo repositories.SessionRepository
}

func NewLineupService(sessionRepo repositories.SessionRepository) LineupService {
	return &lineupService{sessionRepo: sessionRepo}
}

func (s *lineupService) Get(ctx context.Context, sessionID int) (*models.Lineup, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &session.Lineup, nil
}

func (s *lineupService) AddToStarting(ctx context.Context, userID, sessionID, playerID int) (*models.Lineup, error) {
	session, err := s.getOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	lineup := session.Lineup
	if len(lineup.Starting) >= models.MaxStartingPlayers {
		return nil, ErrLineupFull
	}

	idx := -1
	for i, p := range lineup.Substitutes {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		for _, p := range lineup.Starting {
			if p.ID == playerID {
				return nil, ErrPlayerAlreadyStarting
			}
		}
		return nil, ErrPlayerNotInLineup
	}

	player := lineup.Substitutes[idx]
	lineup.Substitutes = append(lineup.Substitutes[:idx], lineup.Substitutes[idx+1:]...)
	lineup.Starting = append(lineup.Starting, player)

	if err := s.sessionRepo.UpdateLineup(ctx, sessionID, lineup); err != nil {
		return nil, err
	}
	return &lineup, nil
}

func (s *lineupService) MoveToSubstitutes(ctx context.Context, userID, sessionID, playerID int) (*models.Lineup, error) {
	session, err := s.getOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	lineup := session.Lineup
	idx := -1
	for i, p := range lineup.Starting {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrPlayerNotInLineup
	}

	player := lineup.Starting[idx]
	player.LineupPosition = ""
	lineup.Starting = append(lineup.Starting[:idx], lineup.Starting[idx+1:]...)
	lineup.Substitutes = append(lineup.Substitutes, player)

	if err := s.sessionRepo.UpdateLineup(ctx, sessionID, lineup); err != nil {
		return nil, err
	}
	return &lineup, nil
}

func (s *lineupService) SetTacticalPosition(ctx context.Context, userID, sessionID, playerID int, positionID string) (*models.Lineup, error) {
	if !models.IsValidTacticalPosition(positionID) {
		return nil, ErrInvalidTacticalPosition
	}

	session, err := s.getOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	lineup := session.Lineup
	found := false
	for i := range lineup.Starting {
		if lineup.Starting[i].ID == playerID {
			lineup.Starting[i].LineupPosition = positionID
			found = true
			break
		}
	}
	if !found {
		return nil, ErrPlayerNotInLineup
	}

	if err := s.sessionRepo.UpdateLineup(ctx, sessionID, lineup); err != nil {
		return nil, err
	}
	return &lineup, nil
}

func (s *lineupService) getSession(ctx context.Context, sessionID int) (*models.AnalysisSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *lineupService) getOwnedSession(ctx context.Context, userID, sessionID int) (*models.AnalysisSession, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrForbiddenOperation
	}
	return session, nil
}
