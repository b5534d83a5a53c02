package services

import (
	"context"
	"testing"

	"github.com/askhat/football-analysis/models"
	"github.com/askhat/football-analysis/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTeamRepo struct {
	teams map[int]*models.Team
}

func (r *fakeTeamRepo) Create(ctx context.Context, exec repositories.SQLExecutor, team *models.Team) error {
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return team, nil
}

func (r *fakeTeamRepo) ListByLeague(ctx context.Context, leagueID int) ([]*models.Team, error) {
	return nil, nil
}

func (r *fakeTeamRepo) Delete(ctx context.Context, id int) error { return nil }

type fakePlayerRepo struct {
	byTeam map[int][]*models.Player
}

func (r *fakePlayerRepo) Create(ctx context.Context, exec repositories.SQLExecutor, player *models.Player) error {
	r.byTeam[player.TeamID] = append(r.byTeam[player.TeamID], player)
	return nil
}

func (r *fakePlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	for _, players := range r.byTeam {
		for _, p := range players {
			if p.ID == id {
				return p, nil
			}
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	return r.byTeam[teamID], nil
}

func (r *fakePlayerRepo) Delete(ctx context.Context, id int) error { return nil }

func (r *fakePlayerRepo) SeedPositions(ctx context.Context, exec repositories.SQLExecutor, positions []models.Position) error {
	return nil
}

func (r *fakePlayerRepo) ListPositions(ctx context.Context) ([]models.Position, error) {
	return nil, nil
}

func newSessionFixture() (SessionService, *fakeSessionRepo, *fakeHub) {
	sessionRepo := newFakeSessionRepo()
	hub := &fakeHub{}

	teamRepo := &fakeTeamRepo{teams: map[int]*models.Team{
		1: {ID: 1, Name: "Manchester United"},
		2: {ID: 2, Name: "Liverpool"},
	}}
	roster := make([]*models.Player, 0, 3)
	for i := 1; i <= 3; i++ {
		p := testPlayer(i, "Player")
		p.TeamID = 1
		roster = append(roster, &p)
	}
	playerRepo := &fakePlayerRepo{byTeam: map[int][]*models.Player{1: roster}}

	svc := NewSessionService(sessionRepo, teamRepo, playerRepo, nil, hub)
	return svc, sessionRepo, hub
}

func TestSessionCreateLoadsRosterAsSubstitutes(t *testing.T) {
	svc, _, _ := newSessionFixture()
	ctx := context.Background()

	session, err := svc.Create(ctx, 10, CreateSessionInput{HomeTeamID: 1, AwayTeamID: 2})
	require.NoError(t, err)

	assert.Equal(t, "Manchester United", session.HomeTeam)
	assert.Equal(t, "Liverpool", session.AwayTeam)
	assert.Empty(t, session.Lineup.Starting)
	assert.Len(t, session.Lineup.Substitutes, 3)
	assert.Equal(t, models.HalfFirst, session.CurrentHalf)
	assert.False(t, session.HalfActive)

	_, err = svc.Create(ctx, 10, CreateSessionInput{HomeTeamID: 1, AwayTeamID: 99})
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestSessionSetTeamsRebuildsLineup(t *testing.T) {
	svc, sessionRepo, _ := newSessionFixture()
	ctx := context.Background()

	session, err := svc.Create(ctx, 10, CreateSessionInput{HomeTeamID: 1, AwayTeamID: 2})
	require.NoError(t, err)

	updated, err := svc.SetTeams(ctx, 10, session.ID, CreateSessionInput{HomeTeamID: 2, AwayTeamID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Liverpool", updated.HomeTeam)
	assert.Equal(t, "Manchester United", updated.AwayTeam)
	// Liverpool has no seeded roster, so the bench is empty again.
	assert.Empty(t, updated.Lineup.Starting)
	assert.Empty(t, updated.Lineup.Substitutes)

	stored, err := sessionRepo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.HomeTeamID)
	assert.Empty(t, stored.Lineup.Substitutes)

	_, err = svc.SetTeams(ctx, 10, session.ID, CreateSessionInput{HomeTeamID: 99, AwayTeamID: 1})
	assert.ErrorIs(t, err, ErrTeamNotFound)

	_, err = svc.SetTeams(ctx, 99, session.ID, CreateSessionInput{HomeTeamID: 2, AwayTeamID: 1})
	assert.ErrorIs(t, err, ErrForbiddenOperation)
}

func TestSessionPlaybackRequiresVideo(t *testing.T) {
	svc, sessionRepo, hub := newSessionFixture()
	ctx := context.Background()

	session, err := svc.Create(ctx, 10, CreateSessionInput{HomeTeamID: 1, AwayTeamID: 2})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Play(ctx, 10, session.ID), ErrNoVideoAttached)
	assert.ErrorIs(t, svc.Seek(ctx, 10, session.ID, 30), ErrNoVideoAttached)

	require.NoError(t, svc.AttachVideo(ctx, 10, session.ID, "videos/match.mp4"))
	require.NoError(t, svc.Play(ctx, 10, session.ID))

	stored, err := sessionRepo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPlaying)

	// Seeking clamps to the start and leaves playback paused.
	require.NoError(t, svc.Seek(ctx, 10, session.ID, -5))
	stored, err = sessionRepo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsPlaying)
	assert.Equal(t, 0.0, stored.PlaybackPosition)

	assert.Contains(t, hub.messageTypes(), "PLAYBACK_UPDATED")
	assert.Contains(t, hub.messageTypes(), "VIDEO_UPDATED")
}

func TestSessionSetHalfValidation(t *testing.T) {
	svc, sessionRepo, _ := newSessionFixture()
	ctx := context.Background()

	session, err := svc.Create(ctx, 10, CreateSessionInput{HomeTeamID: 1, AwayTeamID: 2})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.SetHalf(ctx, 10, session.ID, models.Half("3rd Half"), true), ErrInvalidHalf)

	require.NoError(t, svc.SetHalf(ctx, 10, session.ID, models.HalfSecond, true))
	stored, err := sessionRepo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.HalfSecond, stored.CurrentHalf)
	assert.True(t, stored.HalfActive)
	assert.Equal(t, models.HalfSecond, stored.EffectiveHalf())
}

func TestSessionOwnership(t *testing.T) {
	svc, _, _ := newSessionFixture()
	ctx := context.Background()

	session, err := svc.Create(ctx, 10, CreateSessionInput{HomeTeamID: 1, AwayTeamID: 2})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, 99, session.ID), ErrForbiddenOperation)
	assert.ErrorIs(t, svc.AttachVideo(ctx, 99, session.ID, "videos/x.mp4"), ErrForbiddenOperation)
}
