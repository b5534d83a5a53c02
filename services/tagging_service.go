package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/askhat/football-analysis/models"
	"github.com/askhat/football-analysis/repositories"
	"github.com/google/uuid"
)

// TaggingService walks an analyst through the confirmation sequence of
// a match event and finalizes the result into the session's event log.
// Drafts live in memory only; a cancelled or abandoned draft leaves no
// trace in the log.
type TaggingService interface {
	StartDraft(ctx context.Context, userID, sessionID int, eventType models.EventType, videoTimestamp *float64) (*DraftView, *models.Event, error)
	Advance(ctx context.Context, userID, sessionID int, category Category, input StepInput) (*DraftView, *models.Event, error)
	Cancel(ctx context.Context, userID, sessionID int, category Category) error
	CurrentDraft(ctx context.Context, userID, sessionID int, category Category) (*DraftView, error)
}

// DraftView is the state returned after starting or advancing a draft.
type DraftView struct {
	Category   Category         `json:"category"`
	EventType  models.EventType `json:"event_type"`
	NextStep   Step             `json:"next_step"`
	StepIndex  int              `json:"step_index"`
	TotalSteps int              `json:"total_steps"`
	Event      models.Event     `json:"event"`
}

// StepInput carries the analyst's answer to the draft's current step.
// Only the fields relevant to that step are read.
type StepInput struct {
	Step          Step             `json:"step"`
	PlayerID      int              `json:"player_id,omitempty"`
	Team          string           `json:"team,omitempty"`
	Technique     string           `json:"technique,omitempty"`
	Result        string           `json:"result,omitempty"`
	BodyPart      string           `json:"body_part,omitempty"`
	Location      *models.Location `json:"location,omitempty"`
	ExtraInfo     string           `json:"extra_info,omitempty"`
	PassType      string           `json:"pass_type,omitempty"`
	SaveTechnique string           `json:"save_technique,omitempty"`
}

type draftKey struct {
	sessionID int
	category  Category
}

type draft struct {
	category Category
	event    models.Event
	steps    []Step
	idx      int
}

func (d *draft) view() *DraftView {
	return &DraftView{
		Category:   d.category,
		EventType:  d.event.Type,
		NextStep:   d.steps[d.idx],
		StepIndex:  d.idx,
		TotalSteps: len(d.steps),
		Event:      d.event,
	}
}

type taggingService struct {
	sessionRepo repositories.SessionRepository
	eventRepo   repositories.EventRepository
	hub         LiveBroadcaster
	now         func() time.Time

	mu     sync.Mutex
	drafts map[draftKey]*draft
}

func NewTaggingService(
	sessionRepo repositories.SessionRepository,
	eventRepo repositories.EventRepository,
	hub LiveBroadcaster,
) TaggingService {
	return &taggingService{
		sessionRepo: sessionRepo,
		eventRepo:   eventRepo,
		hub:         hub,
		now:         time.Now,
		drafts:      make(map[draftKey]*draft),
	}
}

// StartDraft pauses playback, records the tag's video timestamp and
// opens the first prompt of the sequence. A new draft replaces any
// open draft in the same category. Clock stoppages have no prompts and
// are finalized on the spot.
func (s *taggingService) StartDraft(ctx context.Context, userID, sessionID int, eventType models.EventType, videoTimestamp *float64) (*DraftView, *models.Event, error) {
	category, ok := CategoryOf(eventType)
	if !ok {
		return nil, nil, ErrUnknownEventType
	}
	steps, _ := StepsFor(eventType)

	session, err := s.getOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, nil, err
	}
	// Analysis does not start until a starting lineup is picked.
	if len(session.Lineup.Starting) == 0 {
		return nil, nil, ErrLineupEmpty
	}

	ts := session.PlaybackPosition
	if videoTimestamp != nil && *videoTimestamp >= 0 {
		ts = *videoTimestamp
	}
	if err := s.pausePlayback(ctx, session, ts); err != nil {
		return nil, nil, err
	}

	d := &draft{
		category: category,
		steps:    steps,
		event: models.Event{
			SessionID:      sessionID,
			Type:           eventType,
			VideoTimestamp: ts,
			StartTime:      ts,
		},
	}

	if len(steps) == 0 {
		event, err := s.finalize(ctx, session, d.event)
		if err != nil {
			return nil, nil, err
		}
		return nil, event, nil
	}

	s.mu.Lock()
	s.drafts[draftKey{sessionID: sessionID, category: category}] = d
	s.mu.Unlock()

	return d.view(), nil, nil
}

// Advance applies the analyst's answer to the draft's current step and
// either returns the next prompt or, after the last step, the
// finalized event.
func (s *taggingService) Advance(ctx context.Context, userID, sessionID int, category Category, input StepInput) (*DraftView, *models.Event, error) {
	session, err := s.getOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, nil, err
	}

	key := draftKey{sessionID: sessionID, category: category}

	s.mu.Lock()
	d, ok := s.drafts[key]
	if !ok {
		s.mu.Unlock()
		return nil, nil, ErrDraftNotFound
	}
	if input.Step != d.steps[d.idx] {
		s.mu.Unlock()
		return nil, nil, ErrUnexpectedStep
	}

	if err := s.applyStep(d, session, input); err != nil {
		s.mu.Unlock()
		return nil, nil, err
	}

	d.idx++
	if d.idx < len(d.steps) {
		view := d.view()
		s.mu.Unlock()
		return view, nil, nil
	}

	delete(s.drafts, key)
	pending := d.event
	s.mu.Unlock()

	event, err := s.finalize(ctx, session, pending)
	if err != nil {
		return nil, nil, err
	}
	return nil, event, nil
}

// Cancel discards the open draft for a category without touching the
// event log.
func (s *taggingService) Cancel(ctx context.Context, userID, sessionID int, category Category) error {
	if _, err := s.getOwnedSession(ctx, userID, sessionID); err != nil {
		return err
	}

	key := draftKey{sessionID: sessionID, category: category}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[key]; !ok {
		return ErrDraftNotFound
	}
	delete(s.drafts, key)
	return nil
}

func (s *taggingService) CurrentDraft(ctx context.Context, userID, sessionID int, category Category) (*DraftView, error) {
	if _, err := s.getOwnedSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[draftKey{sessionID: sessionID, category: category}]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return d.view(), nil
}

func (s *taggingService) applyStep(d *draft, session *models.AnalysisSession, input StepInput) error {
	ev := &d.event

	switch input.Step {
	case StepPlayer:
		player, err := s.lookupPlayer(session, input.PlayerID)
		if err != nil {
			return err
		}
		if ev.Type == models.EventSub {
			// The outgoing player must currently be on the pitch.
			if !inSet(session.Lineup.Starting, player.ID) {
				return ErrPlayerNotInLineup
			}
			ev.PlayerOut = player.Name
			return nil
		}
		name := player.Name
		ev.Player = &name

	case StepPlayerIn:
		player, err := s.lookupPlayer(session, input.PlayerID)
		if err != nil {
			return err
		}
		if !inSet(session.Lineup.Substitutes, player.ID) {
			return ErrPlayerNotInLineup
		}
		ev.PlayerIn = player.Name

	case StepReceiver:
		player, err := s.lookupPlayer(session, input.PlayerID)
		if err != nil {
			return err
		}
		if ev.Player != nil && player.Name == *ev.Player {
			return ErrReceiverIsPasser
		}
		ev.PlayerReceiver = player.Name

	case StepTechnique, StepGoalkeeperAction:
		if input.Technique == "" {
			return ErrSelectionRequired
		}
		if !optionAllowed(TechniqueOptions(ev.Type), input.Technique) {
			return ErrInvalidSelection
		}
		ev.Technique = input.Technique

	case StepStartLocation:
		if input.Location == nil {
			return ErrSelectionRequired
		}
		loc := *input.Location
		ev.StartLocation = &loc

	case StepEndLocation:
		if input.Location == nil {
			return ErrSelectionRequired
		}
		loc := *input.Location
		ev.EndLocation = &loc

	case StepBodyPart:
		if input.BodyPart == "" {
			return ErrSelectionRequired
		}
		if !optionAllowed(BodyPartOptions(), input.BodyPart) {
			return ErrInvalidSelection
		}
		ev.BodyPart = input.BodyPart

	case StepExtraInfo:
		// Extra info is free text and may stay empty.
		ev.ExtraInfo = input.ExtraInfo
		if ev.Type.IsPass() {
			passType := input.PassType
			if passType == "" {
				passType = "Open Play"
			}
			if !optionAllowed(PassTypeOptions(), passType) {
				return ErrInvalidSelection
			}
			ev.PassType = passType
		}
		if ev.Type == models.EventGoalkeeper {
			if input.BodyPart != "" {
				if !optionAllowed(BodyPartOptions(), input.BodyPart) {
					return ErrInvalidSelection
				}
				ev.BodyPart = input.BodyPart
			}
			if input.SaveTechnique != "" {
				if !optionAllowed(SaveTechniqueOptions(), input.SaveTechnique) {
					return ErrInvalidSelection
				}
				ev.SaveTechnique = input.SaveTechnique
			}
		}

	case StepResult:
		if input.Result == "" {
			return ErrSelectionRequired
		}
		if !optionAllowed(ResultOptions(ev.Type, ev.Technique), input.Result) {
			return ErrInvalidSelection
		}
		ev.Result = input.Result

	case StepTeam:
		if input.Team == "" {
			return ErrSelectionRequired
		}
		if input.Team != session.HomeTeam && input.Team != session.AwayTeam {
			return ErrInvalidSelection
		}
		ev.Team = input.Team

	default:
		return ErrUnexpectedStep
	}
	return nil
}

// finalize fills the remaining fields of a completed draft, appends it
// to the event log and notifies live viewers.
func (s *taggingService) finalize(ctx context.Context, session *models.AnalysisSession, ev models.Event) (*models.Event, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}

	endTime := ev.EndTime
	if endTime == 0 {
		if session.VideoKey != nil {
			endTime = session.PlaybackPosition
		} else {
			endTime = float64(s.now().UnixMilli()) / 1000
		}
	}
	ev.EndTime = endTime

	if ev.Type.IsStoppage() {
		ev.Duration = ev.EndTime - ev.StartTime
	} else {
		ev.StartTime = ev.VideoTimestamp
		ev.Duration = ev.EndTime - ev.VideoTimestamp
	}
	if ev.Duration < 0 {
		ev.Duration = 0
	}

	if ev.Type == models.EventSub {
		ev.Player = nil
		ev.StartLocation = nil
		ev.EndLocation = nil
	} else {
		ev.PlayerOut = models.NotApplicable
		ev.PlayerIn = models.NotApplicable
	}

	if ev.Team == "" {
		ev.Team = session.HomeTeam
	}
	ev.Half = session.EffectiveHalf()

	fillNotApplicable(&ev.PlayerReceiver)
	fillNotApplicable(&ev.PlayerOut)
	fillNotApplicable(&ev.PlayerIn)
	fillNotApplicable(&ev.Technique)
	fillNotApplicable(&ev.Result)
	fillNotApplicable(&ev.ExtraInfo)
	fillNotApplicable(&ev.PassType)
	fillNotApplicable(&ev.BodyPart)
	fillNotApplicable(&ev.SaveTechnique)

	if err := s.eventRepo.Upsert(ctx, &ev); err != nil {
		if errors.Is(err, repositories.ErrEventSessionInvalid) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	s.broadcastEvents(ctx, session.ID)

	if err := s.pausePlayback(ctx, session, session.PlaybackPosition); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *taggingService) broadcastEvents(ctx context.Context, sessionID int) {
	if s.hub == nil {
		return
	}
	events, err := s.eventRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return
	}
	s.hub.BroadcastSessionUpdate(sessionID, "EVENTS_UPDATED", events)
}

func (s *taggingService) pausePlayback(ctx context.Context, session *models.AnalysisSession, position float64) error {
	if session.VideoKey == nil {
		return nil
	}
	if err := s.sessionRepo.UpdatePlayback(ctx, session.ID, position, false); err != nil {
		return err
	}
	session.PlaybackPosition = position
	session.IsPlaying = false
	return nil
}

func (s *taggingService) lookupPlayer(session *models.AnalysisSession, playerID int) (models.Player, error) {
	if playerID == 0 {
		return models.Player{}, ErrSelectionRequired
	}
	player, ok := session.Lineup.FindPlayer(playerID)
	if !ok {
		return models.Player{}, ErrPlayerNotInLineup
	}
	return player, nil
}

func (s *taggingService) getOwnedSession(ctx context.Context, userID, sessionID int) (*models.AnalysisSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrForbiddenOperation
	}
	return session, nil
}

func inSet(players []models.Player, id int) bool {
	for _, p := range players {
		if p.ID == id {
			return true
		}
	}
	return false
}

func fillNotApplicable(field *string) {
	if *field == "" {
		*field = models.NotApplicable
	}
}
