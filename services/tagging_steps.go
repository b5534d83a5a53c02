package services

import "github.com/askhat/football-analysis/models"

// Category identifies one of the tagging panels. At most one draft per
// category may be open for a session at a time, so an analyst can hold
// an unfinished pass while tagging a defensive action.
type Category string

const (
	CategoryPass       Category = "pass"
	CategoryShot       Category = "shot"
	CategoryPossession Category = "possession"
	CategoryDefensive  Category = "defensive"
	CategorySpecial    Category = "special"
)

// Step is one prompt in a draft's confirmation sequence.
type Step string

const (
	StepPlayer           Step = "player"
	StepPlayerIn         Step = "player_in"
	StepReceiver         Step = "receiver"
	StepTechnique        Step = "technique"
	StepGoalkeeperAction Step = "goalkeeper_action"
	StepStartLocation    Step = "start_location"
	StepEndLocation      Step = "end_location"
	StepBodyPart         Step = "body_part"
	StepExtraInfo        Step = "extra_info"
	StepResult           Step = "result"
	StepTeam             Step = "team"
)

var eventCategories = map[models.EventType]Category{
	models.EventGroundPass:   CategoryPass,
	models.EventLowPass:      CategoryPass,
	models.EventHighPass:     CategoryPass,
	models.EventShot:         CategoryShot,
	models.EventDribble:      CategoryPossession,
	models.EventDribblePast:  CategoryPossession,
	models.EventMissControl:  CategoryPossession,
	models.EventDispossessed: CategoryPossession,
	models.EventBallRecovery: CategoryPossession,
	models.EventDuel:         CategoryDefensive,
	models.EventInterception: CategoryDefensive,
	models.EventPress:        CategoryDefensive,
	models.EventClearance:    CategoryDefensive,
	models.EventBlock:        CategoryDefensive,
	models.EventFoulWon:      CategoryDefensive,
	models.EventFoulCommit:   CategoryDefensive,
	models.EventGoalkeeper:   CategoryDefensive,
	models.EventOwnGoalFor:   CategorySpecial,
	models.EventOffside:      CategorySpecial,
	models.EventOwnGoal:      CategorySpecial,
	models.EventError:        CategorySpecial,
	models.EventBadBehaviour: CategorySpecial,
	models.EventInjuryStop:   CategorySpecial,
	models.EventVarStop:      CategorySpecial,
	models.EventBallDrop:     CategorySpecial,
	models.EventWaterBreak:   CategorySpecial,
	models.EventSub:          CategorySpecial,
}

// stepSequences lists, per event type, the prompts an analyst walks
// through before the event is finalized. Types absent from the map use
// the default sequence; stoppages have no prompts and finalize on the
// spot.
var stepSequences = map[models.EventType][]Step{
	models.EventGroundPass: {StepPlayer, StepReceiver, StepTechnique, StepStartLocation, StepEndLocation, StepExtraInfo, StepResult},
	models.EventLowPass:    {StepPlayer, StepReceiver, StepTechnique, StepStartLocation, StepEndLocation, StepExtraInfo, StepResult},
	models.EventHighPass:   {StepPlayer, StepReceiver, StepTechnique, StepStartLocation, StepEndLocation, StepExtraInfo, StepResult},

	models.EventShot: {StepPlayer, StepTechnique, StepStartLocation, StepEndLocation, StepBodyPart, StepResult},

	models.EventDribble:      {StepPlayer, StepTechnique, StepStartLocation, StepResult},
	models.EventDribblePast:  {StepPlayer, StepTechnique, StepStartLocation, StepResult},
	models.EventMissControl:  {StepPlayer, StepStartLocation},
	models.EventDispossessed: {StepPlayer, StepStartLocation},
	models.EventBallRecovery: {StepPlayer, StepStartLocation},

	models.EventDuel:         {StepPlayer, StepTechnique, StepStartLocation, StepResult},
	models.EventInterception: {StepPlayer, StepStartLocation, StepResult},
	models.EventPress:        {StepPlayer, StepStartLocation, StepEndLocation},
	models.EventClearance:    {StepPlayer, StepStartLocation},
	models.EventBlock:        {StepPlayer, StepStartLocation},
	models.EventFoulWon:      {StepPlayer, StepStartLocation},
	models.EventFoulCommit:   {StepPlayer, StepStartLocation},
	models.EventGoalkeeper:   {StepPlayer, StepGoalkeeperAction, StepStartLocation, StepExtraInfo, StepResult},

	models.EventVarStop:    {},
	models.EventWaterBreak: {},
	models.EventBallDrop:   {StepStartLocation},
	models.EventOwnGoalFor: {StepTeam},
	models.EventSub:        {StepPlayer, StepPlayerIn},
}

var defaultStepSequence = []Step{StepPlayer, StepStartLocation}

// CategoryOf returns the tagging category an event type belongs to.
func CategoryOf(t models.EventType) (Category, bool) {
	c, ok := eventCategories[t]
	return c, ok
}

// StepsFor returns the confirmation sequence for an event type. The
// second return is false for unknown types.
func StepsFor(t models.EventType) ([]Step, bool) {
	if _, ok := eventCategories[t]; !ok {
		return nil, false
	}
	if steps, ok := stepSequences[t]; ok {
		return steps, true
	}
	return defaultStepSequence, true
}
