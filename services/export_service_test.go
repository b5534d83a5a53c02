package services

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/askhat/football-analysis/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func baseEvent(id string, eventType models.EventType) *models.Event {
	return &models.Event{
		ID:             id,
		SessionID:      1,
		Type:           eventType,
		VideoTimestamp: 754,
		Half:           models.HalfFirst,
		Player:         strPtr("Rashford"),
		PlayerReceiver: models.NotApplicable,
		PlayerOut:      models.NotApplicable,
		PlayerIn:       models.NotApplicable,
		Team:           "Manchester United",
		Technique:      models.NotApplicable,
		Result:         models.NotApplicable,
		ExtraInfo:      models.NotApplicable,
		PassType:       models.NotApplicable,
		BodyPart:       models.NotApplicable,
		SaveTechnique:  models.NotApplicable,
	}
}

func TestBuildCSVHeaderAndRowShape(t *testing.T) {
	lineup := models.Lineup{Starting: []models.Player{
		testPlayer(1, "Rashford"),
		testPlayer(2, "Bruno Fernandes"),
	}}

	pass := baseEvent("a", models.EventGroundPass)
	pass.StartLocation = &models.Location{X: 30.5, Y: 40}
	pass.EndLocation = &models.Location{X: 55, Y: 42}
	pass.Technique = "Right Foot"
	pass.Result = "Complete"
	pass.PassType = "Open Play"

	out := BuildCSV([]*models.Event{pass}, lineup)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header := records[0]
	require.Len(t, header, 25)
	assert.Equal(t, "ID", header[0])
	assert.Equal(t, "Timestamp", header[1])
	assert.Equal(t, "Save Technique", header[24])

	row := records[1]
	require.Len(t, row, 25)
	assert.Equal(t, "1", row[0], "row id is the 1-based log position")
	assert.Equal(t, "00:12:34", row[1])
	assert.Equal(t, "00:00.0", row[2])
	assert.Equal(t, "1st Half", row[3])
	assert.Equal(t, "2 players: Rashford, Bruno Fernandes", row[4])
	assert.Equal(t, "Ground Pass", row[5])
	assert.Equal(t, "Rashford", row[6])
	assert.Equal(t, "30.5", row[11], "passes report a trajectory")
	assert.Equal(t, "40", row[12])
	assert.Equal(t, "55", row[13])
	assert.Equal(t, "42", row[14])
	assert.Equal(t, "-", row[15], "goal location is shot-only")
	assert.Equal(t, "-", row[17], "field location is for single-point events")
}

func TestBuildCSVShotGoalLocation(t *testing.T) {
	shot := baseEvent("b", models.EventShot)
	shot.StartLocation = &models.Location{X: 80, Y: 36}
	shot.EndLocation = &models.Location{X: 100, Y: 44}
	shot.Technique = "Normal Shot"
	shot.BodyPart = "Right Foot"

	out := BuildCSV([]*models.Event{shot}, models.Lineup{})
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	row := records[1]

	assert.Equal(t, "100", row[15], "goal location mirrors the shot's end point")
	assert.Equal(t, "44", row[16])
	assert.Equal(t, "-", row[17])
	assert.Equal(t, "-", row[18])
}

func TestBuildCSVFieldLocationForSinglePointEvents(t *testing.T) {
	clearance := baseEvent("c", models.EventClearance)
	clearance.StartLocation = &models.Location{X: 12, Y: 60}

	out := BuildCSV([]*models.Event{clearance}, models.Lineup{})
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	row := records[1]

	assert.Equal(t, "-", row[11], "no trajectory columns for a clearance")
	assert.Equal(t, "-", row[13])
	assert.Equal(t, "12", row[17])
	assert.Equal(t, "60", row[18])
}

func TestBuildCSVQuotedFreeText(t *testing.T) {
	pass := baseEvent("d", models.EventHighPass)
	pass.ExtraInfo = `switch of play, under "pressure"`

	out := BuildCSV([]*models.Event{pass}, models.Lineup{Starting: []models.Player{
		testPlayer(1, "Rashford"),
	}})

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	row := records[1]
	assert.Equal(t, `switch of play, under "pressure"`, row[21],
		"commas and quotes in free text survive the round trip")
}

func TestBuildCSVSubRow(t *testing.T) {
	sub := baseEvent("e", models.EventSub)
	sub.Player = nil
	sub.PlayerOut = "Rashford"
	sub.PlayerIn = "Antony"

	out := BuildCSV([]*models.Event{sub}, models.Lineup{})
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	row := records[1]

	assert.Equal(t, "-", row[6])
	assert.Equal(t, "Rashford", row[8])
	assert.Equal(t, "Antony", row[9])
	assert.Equal(t, "-", row[11])
	assert.Equal(t, "-", row[17])
}

func TestExportCSVFilename(t *testing.T) {
	date := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "football_analysis_2025-03-01.csv", DefaultFilename(date))
	assert.Equal(t, "Manchester United Vs Liverpool 2025-03-01.csv", MatchupFilename("Manchester United", "Liverpool", date))
	assert.Equal(t, "football_analysis_2025-03-01.csv", MatchupFilename("", "Liverpool", date))
}

func TestExportServiceRendersSessionLog(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	eventRepo := newFakeEventRepo()
	session := testSession(sessionRepo, 10, []models.Player{testPlayer(1, "Rashford")}, nil)

	ctx := context.Background()
	first := baseEvent("a", models.EventBallRecovery)
	first.SessionID = session.ID
	first.StartLocation = &models.Location{X: 20, Y: 20}
	require.NoError(t, eventRepo.Upsert(ctx, first))

	second := baseEvent("b", models.EventBallRecovery)
	second.SessionID = session.ID
	require.NoError(t, eventRepo.Upsert(ctx, second))

	svc := NewExportService(sessionRepo, eventRepo)
	svc.(*exportService).now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }

	file, err := svc.ExportCSV(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Manchester United Vs Liverpool 2025-03-01.csv", file.Filename)

	records, err := csv.NewReader(strings.NewReader(string(file.Content))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "2", records[2][0])

	_, err = svc.ExportCSV(ctx, 404)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
