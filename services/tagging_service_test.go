package services

import (
	"context"
	"testing"
	"time"

	"github.com/askhat/football-analysis/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaggingFixture(t *testing.T) (*fakeSessionRepo, *fakeEventRepo, *fakeHub, TaggingService, *models.AnalysisSession) {
	t.Helper()

	sessionRepo := newFakeSessionRepo()
	eventRepo := newFakeEventRepo()
	hub := &fakeHub{}

	starting := []models.Player{
		testPlayer(1, "Rashford"),
		testPlayer(2, "Bruno Fernandes"),
		testPlayer(3, "Casemiro"),
	}
	substitutes := []models.Player{
		testPlayer(4, "Antony"),
		testPlayer(5, "Sancho"),
	}
	session := testSession(sessionRepo, 10, starting, substitutes)

	ctx := context.Background()
	videoKey := "videos/session_1/match.mp4"
	require.NoError(t, sessionRepo.UpdateVideoKey(ctx, session.ID, &videoKey))
	require.NoError(t, sessionRepo.UpdatePlayback(ctx, session.ID, 600.5, true))
	require.NoError(t, sessionRepo.UpdateHalf(ctx, session.ID, models.HalfFirst, true))

	svc := NewTaggingService(sessionRepo, eventRepo, hub)
	svc.(*taggingService).now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	return sessionRepo, eventRepo, hub, svc, session
}

func TestTaggingGroundPassFlow(t *testing.T) {
	sessionRepo, eventRepo, hub, svc, session := newTaggingFixture(t)
	ctx := context.Background()

	draft, event, err := svc.StartDraft(ctx, 10, session.ID, models.EventGroundPass, nil)
	require.NoError(t, err)
	require.Nil(t, event)
	require.NotNil(t, draft)
	assert.Equal(t, CategoryPass, draft.Category)
	assert.Equal(t, StepPlayer, draft.NextStep)
	assert.Equal(t, 7, draft.TotalSteps)

	// Starting a tag pauses playback at the tagged moment.
	stored, err := sessionRepo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsPlaying)
	assert.Equal(t, 600.5, stored.PlaybackPosition)

	steps := []StepInput{
		{Step: StepPlayer, PlayerID: 1},
		{Step: StepReceiver, PlayerID: 2},
		{Step: StepTechnique, Technique: "Right Foot"},
		{Step: StepStartLocation, Location: &models.Location{X: 30, Y: 40}},
		{Step: StepEndLocation, Location: &models.Location{X: 55, Y: 42}},
		{Step: StepExtraInfo, ExtraInfo: "Recovery"},
		{Step: StepResult, Result: "Complete"},
	}
	for i, input := range steps {
		draft, event, err = svc.Advance(ctx, 10, session.ID, CategoryPass, input)
		require.NoError(t, err, "step %d", i)
	}

	require.NotNil(t, event)
	require.Nil(t, draft)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, models.EventGroundPass, event.Type)
	assert.Equal(t, 600.5, event.VideoTimestamp)
	assert.Equal(t, "Rashford", event.PlayerName())
	assert.Equal(t, "Bruno Fernandes", event.PlayerReceiver)
	assert.Equal(t, "Right Foot", event.Technique)
	assert.Equal(t, "Complete", event.Result)
	assert.Equal(t, "Recovery", event.ExtraInfo)
	assert.Equal(t, "Open Play", event.PassType, "pass type defaults to open play")
	assert.Equal(t, models.NotApplicable, event.PlayerOut)
	assert.Equal(t, models.NotApplicable, event.PlayerIn)
	assert.Equal(t, models.NotApplicable, event.BodyPart)
	assert.Equal(t, models.NotApplicable, event.SaveTechnique)
	assert.Equal(t, "Manchester United", event.Team)
	assert.Equal(t, models.HalfFirst, event.Half)
	require.NotNil(t, event.StartLocation)
	require.NotNil(t, event.EndLocation)
	assert.Equal(t, 0.0, event.Duration, "instant events carry no duration")

	log, err := eventRepo.ListBySession(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Contains(t, hub.messageTypes(), "EVENTS_UPDATED")
}

func TestTaggingStoppageFinalizesImmediately(t *testing.T) {
	_, eventRepo, _, svc, session := newTaggingFixture(t)
	ctx := context.Background()

	draft, event, err := svc.StartDraft(ctx, 10, session.ID, models.EventWaterBreak, nil)
	require.NoError(t, err)
	assert.Nil(t, draft)
	require.NotNil(t, event)

	assert.Equal(t, models.EventWaterBreak, event.Type)
	assert.Equal(t, event.StartTime, event.EndTime)
	assert.Equal(t, 0.0, event.Duration)
	assert.Nil(t, event.Player)
	assert.Equal(t, models.NotApplicable, event.Technique)
	assert.Equal(t, "Manchester United", event.Team)

	log, err := eventRepo.ListBySession(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, log, 1)
}

func TestTaggingHalfNotStarted(t *testing.T) {
	sessionRepo, _, _, svc, session := newTaggingFixture(t)
	ctx := context.Background()
	require.NoError(t, sessionRepo.UpdateHalf(ctx, session.ID, models.HalfFirst, false))

	_, event, err := svc.StartDraft(ctx, 10, session.ID, models.EventVarStop, nil)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, models.HalfNotStarted, event.Half)
}

func TestTaggingSubSuppression(t *testing.T) {
	_, _, _, svc, session := newTaggingFixture(t)
	ctx := context.Background()

	_, _, err := svc.StartDraft(ctx, 10, session.ID, models.EventSub, nil)
	require.NoError(t, err)

	_, event, err := svc.Advance(ctx, 10, session.ID, CategorySpecial, StepInput{Step: StepPlayer, PlayerID: 1})
	require.NoError(t, err)
	require.Nil(t, event)

	_, event, err = svc.Advance(ctx, 10, session.ID, CategorySpecial, StepInput{Step: StepPlayerIn, PlayerID: 4})
	require.NoError(t, err)
	require.NotNil(t, event)

	assert.Nil(t, event.Player)
	assert.Nil(t, event.StartLocation)
	assert.Nil(t, event.EndLocation)
	assert.Equal(t, "Rashford", event.PlayerOut)
	assert.Equal(t, "Antony", event.PlayerIn)
	assert.Equal(t, models.NotApplicable, event.Technique)
	assert.Equal(t, models.NotApplicable, event.Result)
}

func TestTaggingSubRequiresStartingPlayerOut(t *testing.T) {
	_, _, _, svc, session := newTaggingFixture(t)
	ctx := context.Background()

	_, _, err := svc.StartDraft(ctx, 10, session.ID, models.EventSub, nil)
	require.NoError(t, err)

	// Player 4 is on the bench; it cannot be the outgoing player.
	_, _, err = svc.Advance(ctx, 10, session.ID, CategorySpecial, StepInput{Step: StepPlayer, PlayerID: 4})
	assert.ErrorIs(t, err, ErrPlayerNotInLineup)
}

func TestTaggingUnexpectedStep(t *testing.T) {
	_, _, _, svc, session := newTaggingFixture(t)
	ctx := context.Background()

	_, _, err := svc.StartDraft(ctx, 10, session.ID, models.EventShot, nil)
	require.NoError(t, err)

	_, _, err = svc.Advance(ctx, 10, session.ID, CategoryShot, StepInput{Step: StepResult, Result: "Complete"})
	assert.ErrorIs(t, err, ErrUnexpectedStep)
}

func TestTaggingReceiverIsPasser(t *testing.T) {
	_, _, _, svc, session := newTaggingFixture(t)
	ctx := context.Background()

	_, _, err := svc.StartDraft(ctx, 10, session.ID, models.EventHighPass, nil)
	require.NoError(t, err)

	_, _, err = svc.Advance(ctx, 10, session.ID, CategoryPass, StepInput{Step: StepPlayer, PlayerID: 2})
	require.NoError(t, err)

	_, _, err = svc.Advance(ctx, 10, session.ID, CategoryPass, StepInput{Step: StepReceiver, PlayerID: 2})
	assert.ErrorIs(t, err, ErrReceiverIsPasser)
}

func TestTaggingInvalidSelection(t *testing.T) {
	_, _, _, svc, session := newTaggingFixture(t)
	ctx := context.Background()

	_, _, err := svc.StartDraft(ctx, 10, session.ID, models.EventShot, nil)
	require.NoError(t, err)

	_, _, err = svc.Advance(ctx, 10, session.ID, CategoryShot, StepInput{Step: StepPlayer, PlayerID: 1})
	require.NoError(t, err)

	_, _, err = svc.Advance(ctx, 10, session.ID, CategoryShot, StepInput{Step: StepTechnique, Technique: "Backheel"})
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestTaggingCancelDiscardsDraft(t *testing.T) {
	_, eventRepo, _, svc, session := newTaggingFixture(t)
	ctx := context.Background()

	_, _, err := svc.StartDraft(ctx, 10, session.ID, models.EventDuel, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, 10, session.ID, CategoryDefensive))

	_, _, err = svc.Advance(ctx, 10, session.ID, CategoryDefensive, StepInput{Step: StepPlayer, PlayerID: 1})
	assert.ErrorIs(t, err, ErrDraftNotFound)

	log, err := eventRepo.ListBySession(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, log, "a cancelled draft leaves no trace in the log")
}

func TestTaggingIndependentCategories(t *testing.T) {
	_, _, _, svc, session := newTaggingFixture(t)
	ctx := context.Background()

	_, _, err := svc.StartDraft(ctx, 10, session.ID, models.EventLowPass, nil)
	require.NoError(t, err)
	_, _, err = svc.StartDraft(ctx, 10, session.ID, models.EventInterception, nil)
	require.NoError(t, err)

	// Advancing the defensive draft must not disturb the pass draft.
	_, _, err = svc.Advance(ctx, 10, session.ID, CategoryDefensive, StepInput{Step: StepPlayer, PlayerID: 3})
	require.NoError(t, err)

	passDraft, err := svc.CurrentDraft(ctx, 10, session.ID, CategoryPass)
	require.NoError(t, err)
	assert.Equal(t, StepPlayer, passDraft.NextStep)

	defDraft, err := svc.CurrentDraft(ctx, 10, session.ID, CategoryDefensive)
	require.NoError(t, err)
	assert.Equal(t, StepStartLocation, defDraft.NextStep)
}

func TestTaggingOwnGoalForTeamSelection(t *testing.T) {
	_, _, _, svc, session := newTaggingFixture(t)
	ctx := context.Background()

	_, _, err := svc.StartDraft(ctx, 10, session.ID, models.EventOwnGoalFor, nil)
	require.NoError(t, err)

	_, _, err = svc.Advance(ctx, 10, session.ID, CategorySpecial, StepInput{Step: StepTeam, Team: "Chelsea"})
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, event, err := svc.Advance(ctx, 10, session.ID, CategorySpecial, StepInput{Step: StepTeam, Team: "Liverpool"})
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "Liverpool", event.Team)
}

func TestTaggingOwnershipEnforced(t *testing.T) {
	_, _, _, svc, session := newTaggingFixture(t)
	ctx := context.Background()

	_, _, err := svc.StartDraft(ctx, 99, session.ID, models.EventShot, nil)
	assert.ErrorIs(t, err, ErrForbiddenOperation)
}

func TestTaggingRequiresStartingLineup(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	session := testSession(sessionRepo, 10, nil, []models.Player{testPlayer(1, "Rashford")})
	svc := NewTaggingService(sessionRepo, newFakeEventRepo(), &fakeHub{})

	_, _, err := svc.StartDraft(context.Background(), 10, session.ID, models.EventShot, nil)
	assert.ErrorIs(t, err, ErrLineupEmpty)
}

func TestTaggingUnknownEventType(t *testing.T) {
	_, _, _, svc, session := newTaggingFixture(t)
	ctx := context.Background()

	_, _, err := svc.StartDraft(ctx, 10, session.ID, models.EventType("Throw"), nil)
	assert.ErrorIs(t, err, ErrUnknownEventType)
}

func TestTaggingGoalkeeperResultDependsOnAction(t *testing.T) {
	_, _, _, svc, session := newTaggingFixture(t)
	ctx := context.Background()

	_, _, err := svc.StartDraft(ctx, 10, session.ID, models.EventGoalkeeper, nil)
	require.NoError(t, err)

	steps := []StepInput{
		{Step: StepPlayer, PlayerID: 3},
		{Step: StepGoalkeeperAction, Technique: "Punch"},
		{Step: StepStartLocation, Location: &models.Location{X: 5, Y: 40}},
		{Step: StepExtraInfo, SaveTechnique: "Diving"},
	}
	for _, input := range steps {
		_, _, err = svc.Advance(ctx, 10, session.ID, CategoryDefensive, input)
		require.NoError(t, err)
	}

	// "Success" belongs to the default goalkeeper set, not Punch.
	_, _, err = svc.Advance(ctx, 10, session.ID, CategoryDefensive, StepInput{Step: StepResult, Result: "Success"})
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, event, err := svc.Advance(ctx, 10, session.ID, CategoryDefensive, StepInput{Step: StepResult, Result: "Punched Out"})
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, "Punch", event.Technique)
	assert.Equal(t, "Punched Out", event.Result)
	assert.Equal(t, "Diving", event.SaveTechnique)
}

func TestTaggingStartDraftReplacesOpenDraft(t *testing.T) {
	_, _, _, svc, session := newTaggingFixture(t)
	ctx := context.Background()

	_, _, err := svc.StartDraft(ctx, 10, session.ID, models.EventGroundPass, nil)
	require.NoError(t, err)
	_, _, err = svc.Advance(ctx, 10, session.ID, CategoryPass, StepInput{Step: StepPlayer, PlayerID: 1})
	require.NoError(t, err)

	draft, _, err := svc.StartDraft(ctx, 10, session.ID, models.EventHighPass, nil)
	require.NoError(t, err)
	assert.Equal(t, models.EventHighPass, draft.EventType)
	assert.Equal(t, StepPlayer, draft.NextStep, "a new draft restarts the sequence")
}
