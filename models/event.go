package models

import "time"

// NotApplicable is stored in every string field that does not apply to
// the event's type, so a persisted event never carries an absent field.
const NotApplicable = "-"

type Half string

const (
	HalfFirst      Half = "1st Half"
	HalfSecond     Half = "2nd Half"
	HalfExtraTime  Half = "Extra Time"
	HalfPenalties  Half = "Penalties"
	HalfNotStarted Half = "Not Started"
)

type EventType string

const (
	EventGroundPass   EventType = "Ground Pass"
	EventLowPass      EventType = "Low Pass"
	EventHighPass     EventType = "High Pass"
	EventShot         EventType = "Shot"
	EventDribble      EventType = "Dribble"
	EventDribblePast  EventType = "Dribble Past"
	EventMissControl  EventType = "Miss control"
	EventDispossessed EventType = "Dispossessed"
	EventBallRecovery EventType = "Ball Recovery"
	EventDuel         EventType = "Duel"
	EventInterception EventType = "Interception"
	EventPress        EventType = "Press"
	EventClearance    EventType = "Clearance"
	EventBlock        EventType = "Block"
	EventFoulWon      EventType = "Foul Won"
	EventFoulCommit   EventType = "Foul Commit"
	EventGoalkeeper   EventType = "Goalkeeper"
	EventOwnGoalFor   EventType = "Own Goal For"
	EventOffside      EventType = "Offside"
	EventOwnGoal      EventType = "Own Goal"
	EventError        EventType = "Error"
	EventBadBehaviour EventType = "Bad Behaviour"
	EventInjuryStop   EventType = "Injury Stop"
	EventVarStop      EventType = "Var Stop"
	EventBallDrop     EventType = "Ball Drop"
	EventWaterBreak   EventType = "Water Break"
	EventSub          EventType = "Sub"
)

// IsPass reports whether the type is one of the three pass variants,
// the only types that carry a receiving player.
func (t EventType) IsPass() bool {
	return t == EventGroundPass || t == EventLowPass || t == EventHighPass
}

// IsStoppage reports whether the type is a clock stoppage tagged with a
// real duration (everything else is instantaneous in practice).
func (t EventType) IsStoppage() bool {
	return t == EventVarStop || t == EventWaterBreak
}

// TracksTrajectory reports whether start/end coordinates are shown in
// the "Start X/Y" and "End X/Y" columns for this type. All other types
// render their single location under "Field Location X/Y" instead.
func (t EventType) TracksTrajectory() bool {
	switch t {
	case EventShot, EventGroundPass, EventHighPass, EventLowPass, EventPress:
		return true
	}
	return false
}

type Location struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Event is a single tagged match event. The struct is total: string
// fields hold NotApplicable when the type does not use them, and only
// Player/StartLocation/EndLocation may be nil (Sub events).
type Event struct {
	ID             string    `json:"id"`
	SessionID      int       `json:"session_id"`
	Type           EventType `json:"type"`
	VideoTimestamp float64   `json:"video_timestamp"`
	StartTime      float64   `json:"start_time"`
	EndTime        float64   `json:"end_time"`
	Duration       float64   `json:"duration"`
	Half           Half      `json:"half"`
	Player         *string   `json:"player"`
	PlayerReceiver string    `json:"player_receiver"`
	PlayerOut      string    `json:"player_out"`
	PlayerIn       string    `json:"player_in"`
	Team           string    `json:"team"`
	StartLocation  *Location `json:"start_location"`
	EndLocation    *Location `json:"end_location"`
	Technique      string    `json:"technique"`
	Result         string    `json:"result"`
	ExtraInfo      string    `json:"extra_info"`
	PassType       string    `json:"pass_type"`
	BodyPart       string    `json:"body_part"`
	SaveTechnique  string    `json:"save_technique"`
	CreatedAt      time.Time `json:"created_at"`
}

// PlayerName returns the tagged player or NotApplicable for Sub events.
func (e *Event) PlayerName() string {
	if e.Player == nil {
		return NotApplicable
	}
	return *e.Player
}
