package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/askhat/football-analysis/models"
	"github.com/askhat/football-analysis/repositories"
)

// exportHeader is the fixed column set of the CSV download, in order.
var exportHeader = []string{
	"ID", "Timestamp", "Duration", "Half", "Lineup",
	"Event Type", "Player", "Player Receiver", "Player Out", "Player In", "Team",
	"Start X", "Start Y", "End X", "End Y",
	"Goal Location X", "Goal Location Y", "Field Location X", "Field Location Y",
	"Type", "Outcome", "Extra Info", "Pass Type", "Body Part", "Save Technique",
}

// ExportFile is a rendered CSV download.
type ExportFile struct {
	Filename string
	Content  []byte
}

// ExportService renders a session's event log as the analysis CSV.
type ExportService interface {
	ExportCSV(ctx context.Context, sessionID int) (*ExportFile, error)
}

type exportService struct {
	sessionRepo repositories.SessionRepository
	eventRepo   repositories.EventRepository
	now         func() time.Time
}

func NewExportService(sessionRepo repositories.SessionRepository, eventRepo repositories.EventRepository) ExportService {
	return &exportService{
		sessionRepo: sessionRepo,
		eventRepo:   eventRepo,
		now:         time.Now,
	}
}

func (s *exportService) ExportCSV(ctx context.Context, sessionID int) (*ExportFile, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	events, err := s.eventRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	content := BuildCSV(events, session.Lineup)
	return &ExportFile{
		Filename: MatchupFilename(session.HomeTeam, session.AwayTeam, s.now()),
		Content:  []byte(content),
	}, nil
}

// BuildCSV renders the event log in insertion order. Only the
// Timestamp, Duration, Lineup and Extra Info columns are quoted; they
// are the ones that can carry commas or free text.
func BuildCSV(events []*models.Event, lineup models.Lineup) string {
	var b strings.Builder
	b.WriteString(strings.Join(exportHeader, ","))
	b.WriteString("\n")

	lineupSummary := lineupSummary(lineup)
	for i, ev := range events {
		b.WriteString(strings.Join(exportRow(i+1, ev, lineupSummary), ","))
		b.WriteString("\n")
	}
	return b.String()
}

func exportRow(rowID int, ev *models.Event, lineupSummary string) []string {
	startX, startY := models.NotApplicable, models.NotApplicable
	endX, endY := models.NotApplicable, models.NotApplicable
	goalX, goalY := models.NotApplicable, models.NotApplicable
	fieldX, fieldY := models.NotApplicable, models.NotApplicable

	if ev.Type.TracksTrajectory() {
		if ev.StartLocation != nil {
			startX, startY = formatCoord(ev.StartLocation.X), formatCoord(ev.StartLocation.Y)
		}
		if ev.EndLocation != nil {
			endX, endY = formatCoord(ev.EndLocation.X), formatCoord(ev.EndLocation.Y)
		}
		if ev.Type == models.EventShot && ev.EndLocation != nil {
			goalX, goalY = formatCoord(ev.EndLocation.X), formatCoord(ev.EndLocation.Y)
		}
	} else if ev.StartLocation != nil {
		fieldX, fieldY = formatCoord(ev.StartLocation.X), formatCoord(ev.StartLocation.Y)
	}

	return []string{
		strconv.Itoa(rowID),
		quoteField(models.FormatTimestamp(ev.VideoTimestamp)),
		quoteField(models.FormatDuration(ev.Duration)),
		string(ev.Half),
		quoteField(lineupSummary),
		string(ev.Type),
		ev.PlayerName(),
		ev.PlayerReceiver,
		ev.PlayerOut,
		ev.PlayerIn,
		ev.Team,
		startX, startY,
		endX, endY,
		goalX, goalY,
		fieldX, fieldY,
		ev.Technique,
		ev.Result,
		quoteField(ev.ExtraInfo),
		ev.PassType,
		ev.BodyPart,
		ev.SaveTechnique,
	}
}

func lineupSummary(lineup models.Lineup) string {
	names := make([]string, 0, len(lineup.Starting))
	for _, p := range lineup.Starting {
		names = append(names, p.Name)
	}
	if len(names) == 0 {
		return "0 players"
	}
	return fmt.Sprintf("%d players: %s", len(names), strings.Join(names, ", "))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func quoteField(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// DefaultFilename is the generic download name used when no matchup is
// available.
func DefaultFilename(t time.Time) string {
	return fmt.Sprintf("football_analysis_%s.csv", t.Format("2006-01-02"))
}

// MatchupFilename names the download after the fixture and date.
func MatchupFilename(home, away string, t time.Time) string {
	if home == "" || away == "" {
		return DefaultFilename(t)
	}
	return fmt.Sprintf("%s Vs %s %s.csv", home, away, t.Format("2006-01-02"))
}
