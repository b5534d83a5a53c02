package services

import "github.com/askhat/football-analysis/models"

// Selection catalogs offered by the step dialogs. A confirm with a
// value outside the catalog is rejected; Extra Info is the only
// free-text field.

var techniqueOptions = map[models.EventType][]string{
	models.EventGroundPass:  {"Head", "Right Foot", "Left Foot", "Other", "Keeper Arm", "Heel", "Arial Pass"},
	models.EventLowPass:     {"Head", "Right Foot", "Left Foot", "Other", "Keeper Arm", "Heel"},
	models.EventHighPass:    {"Head", "Right Foot", "Left Foot", "Other", "Keeper Arm", "Heel"},
	models.EventDribble:     {"Over run", "Nut"},
	models.EventDribblePast: {"Over run", "Nut"},
	models.EventShot:        {"Normal Shot", "Volley", "Penalty", "Half volly", "over kik"},
	models.EventDuel:        {"Aerial", "Tackle"},
	models.EventGoalkeeper: {
		"Shot Saved", "Save", "Punch", "Collected", "Smother",
		"Penalty Saved", "Keeper Sweeper", "Goal Conceded", "Penalty Conceded", "Shot Faced",
	},
}

var bodyPartOptions = []string{
	"Right Foot", "Left Foot", "Head", "Chest", "Right Hand", "Left Hand", "Both Hands",
}

var passTypeOptions = []string{
	"Open Play", "Throw-in", "Corner", "Free Kick", "Goal Kick",
}

var saveTechniqueOptions = []string{"Diving", "Standing"}

// TechniqueOptions returns the technique catalog for an event type,
// empty when the type has no technique step.
func TechniqueOptions(t models.EventType) []string {
	return techniqueOptions[t]
}

// ResultOptions returns the outcome catalog for an event type. For
// goalkeeper events the set depends on the chosen action.
func ResultOptions(t models.EventType, technique string) []string {
	switch {
	case t == models.EventGoalkeeper && technique == "Punch":
		return []string{"Fail", "In Play Danger", "In Play Safe", "Punched Out", "Punch Outcome"}
	case t == models.EventGoalkeeper && technique == "Keeper Sweeper":
		return []string{"Clam", "Clear"}
	case t == models.EventGoalkeeper:
		return []string{"Success", "In Play Safe", "In Play Danger", "Saved Twice", "Touched Out", "Touched In", "No Touch"}
	case t == models.EventDribble || t == models.EventDribblePast:
		return []string{"Successful", "Unsuccessful"}
	case t == models.EventInterception:
		return []string{"Won", "Lost In Play", "Lost Out"}
	case t == models.EventDuel:
		return []string{"Lost Out", "Lost In Play", "Success In Play", "Won"}
	default:
		return []string{"Complete", "Incomplete", "Out"}
	}
}

// BodyPartOptions returns the body part catalog.
func BodyPartOptions() []string { return bodyPartOptions }

// PassTypeOptions returns the pass type catalog.
func PassTypeOptions() []string { return passTypeOptions }

// SaveTechniqueOptions returns the goalkeeper save technique catalog.
func SaveTechniqueOptions() []string { return saveTechniqueOptions }

func optionAllowed(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
