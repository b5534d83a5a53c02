package services

import (
	"context"
	"testing"

	"github.com/askhat/football-analysis/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventLogFixture(t *testing.T) (EventLogService, *fakeSessionRepo, *fakeEventRepo, *fakeHub, *models.AnalysisSession) {
	t.Helper()

	sessionRepo := newFakeSessionRepo()
	eventRepo := newFakeEventRepo()
	hub := &fakeHub{}
	session := testSession(sessionRepo, 10, nil, nil)

	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		event := baseEvent(id, models.EventBallRecovery)
		event.SessionID = session.ID
		event.VideoTimestamp = 100
		require.NoError(t, eventRepo.Upsert(ctx, event))
	}

	return NewEventLogService(sessionRepo, eventRepo, hub), sessionRepo, eventRepo, hub, session
}

func TestEventLogDelete(t *testing.T) {
	svc, _, _, hub, session := newEventLogFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, 10, session.ID, "b"))

	events, err := svc.List(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "a", events[0].ID)
	assert.Equal(t, "c", events[1].ID)
	assert.Contains(t, hub.messageTypes(), "EVENTS_UPDATED")

	assert.ErrorIs(t, svc.Delete(ctx, 10, session.ID, "missing"), ErrEventNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 99, session.ID, "a"), ErrForbiddenOperation)
}

func TestEventLogClear(t *testing.T) {
	svc, _, _, _, session := newEventLogFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Clear(ctx, 10, session.ID))
	events, err := svc.List(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventLogActivateSeeksPaused(t *testing.T) {
	svc, sessionRepo, _, _, session := newEventLogFixture(t)
	ctx := context.Background()

	videoKey := "videos/match.mp4"
	require.NoError(t, sessionRepo.UpdateVideoKey(ctx, session.ID, &videoKey))
	require.NoError(t, sessionRepo.UpdatePlayback(ctx, session.ID, 500, true))

	event, err := svc.Activate(ctx, 10, session.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", event.ID)

	stored, err := sessionRepo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, stored.PlaybackPosition)
	assert.False(t, stored.IsPlaying)
}

func TestEventLogUpsertMovesEventToEnd(t *testing.T) {
	svc, _, eventRepo, _, session := newEventLogFixture(t)
	ctx := context.Background()

	replacement := baseEvent("a", models.EventBallRecovery)
	replacement.SessionID = session.ID
	replacement.Result = "Complete"
	require.NoError(t, eventRepo.Upsert(ctx, replacement))

	events, err := svc.List(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, events, 3, "re-tagging never duplicates an id")
	assert.Equal(t, "b", events[0].ID)
	assert.Equal(t, "a", events[2].ID)
	assert.Equal(t, "Complete", events[2].Result)
}
