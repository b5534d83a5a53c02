package services

import (
	"context"
	"sync"

	"github.com/askhat/football-analysis/models"
	"github.com/askhat/football-analysis/repositories"
)

// In-memory fakes shared by the service tests.

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[int]*models.AnalysisSession
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		sessions: make(map[int]*models.AnalysisSession),
		nextID:   1,
	}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *models.AnalysisSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session.ID = r.nextID
	r.nextID++
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, id int) (*models.AnalysisSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *fakeSessionRepo) ListByUser(ctx context.Context, userID int) ([]*models.AnalysisSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.AnalysisSession, 0)
	for _, session := range r.sessions {
		if session.UserID == userID {
			copied := *session
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) UpdateLineup(ctx context.Context, id int, lineup models.Lineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return repositories.ErrSessionNotFound
	}
	session.Lineup = lineup
	return nil
}

func (r *fakeSessionRepo) UpdateTeams(ctx context.Context, id int, updated *models.AnalysisSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return repositories.ErrSessionNotFound
	}
	session.HomeTeamID = updated.HomeTeamID
	session.HomeTeam = updated.HomeTeam
	session.AwayTeamID = updated.AwayTeamID
	session.AwayTeam = updated.AwayTeam
	session.Lineup = updated.Lineup
	return nil
}

func (r *fakeSessionRepo) UpdateVideoKey(ctx context.Context, id int, videoKey *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return repositories.ErrSessionNotFound
	}
	session.VideoKey = videoKey
	session.PlaybackPosition = 0
	session.IsPlaying = false
	return nil
}

func (r *fakeSessionRepo) UpdatePlayback(ctx context.Context, id int, position float64, playing bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return repositories.ErrSessionNotFound
	}
	session.PlaybackPosition = position
	session.IsPlaying = playing
	return nil
}

func (r *fakeSessionRepo) UpdateHalf(ctx context.Context, id int, half models.Half, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return repositories.ErrSessionNotFound
	}
	session.CurrentHalf = half
	session.HalfActive = active
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return repositories.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[int][]*models.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[int][]*models.Event)}
}

// Upsert mirrors the storage contract: same id is removed, the new
// event lands at the end of the log.
func (r *fakeEventRepo) Upsert(ctx context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	log := r.events[event.SessionID]
	filtered := make([]*models.Event, 0, len(log)+1)
	for _, existing := range log {
		if existing.ID != event.ID {
			filtered = append(filtered, existing)
		}
	}
	copied := *event
	r.events[event.SessionID] = append(filtered, &copied)
	return nil
}

func (r *fakeEventRepo) ListBySession(ctx context.Context, sessionID int) ([]*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log := r.events[sessionID]
	out := make([]*models.Event, 0, len(log))
	for _, event := range log {
		copied := *event
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, sessionID int, id string) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, event := range r.events[sessionID] {
		if event.ID == id {
			copied := *event
			return &copied, nil
		}
	}
	return nil, repositories.ErrEventNotFound
}

func (r *fakeEventRepo) Delete(ctx context.Context, sessionID int, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	log := r.events[sessionID]
	for i, event := range log {
		if event.ID == id {
			r.events[sessionID] = append(log[:i], log[i+1:]...)
			return nil
		}
	}
	return repositories.ErrEventNotFound
}

func (r *fakeEventRepo) Clear(ctx context.Context, sessionID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[sessionID] = nil
	return nil
}

type broadcastCall struct {
	sessionID   int
	messageType string
}

type fakeHub struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (h *fakeHub) BroadcastSessionUpdate(sessionID int, messageType string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, broadcastCall{sessionID: sessionID, messageType: messageType})
}

func (h *fakeHub) messageTypes() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.calls))
	for _, c := range h.calls {
		out = append(out, c.messageType)
	}
	return out
}

func testPlayer(id int, name string) models.Player {
	return models.Player{ID: id, Name: name, JerseyNumber: id}
}

func testSession(repo *fakeSessionRepo, userID int, starting, substitutes []models.Player) *models.AnalysisSession {
	session := &models.AnalysisSession{
		UserID:      userID,
		HomeTeamID:  1,
		HomeTeam:    "Manchester United",
		AwayTeamID:  2,
		AwayTeam:    "Liverpool",
		Lineup:      models.Lineup{Starting: starting, Substitutes: substitutes},
		CurrentHalf: models.HalfFirst,
	}
	_ = repo.Create(context.Background(), session)
	return session
}
