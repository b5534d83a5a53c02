package models

import "time"

type Position struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Player belongs to a catalog team. LineupPosition is the tactical slot
// assigned during lineup selection and overrides the natural position
// for display; empty until assigned.
type Player struct {
	ID             int       `json:"id"`
	TeamID         int       `json:"team_id"`
	Name           string    `json:"name"`
	PositionID     int       `json:"position_id"`
	Position       string    `json:"position,omitempty"`
	JerseyNumber   int       `json:"jersey_number"`
	Age            int       `json:"age,omitempty"`
	LineupPosition string    `json:"lineup_position,omitempty"`
	IsCustom       bool      `json:"is_custom,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// TacticalPosition is a concrete on-pitch slot (GK, CB, ...), grouped
// under one of the four natural position categories.
type TacticalPosition struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

var TacticalPositions = []TacticalPosition{
	{ID: "GK", Name: "Goalkeeper (GK)", Category: "Goalkeeper"},
	{ID: "CB", Name: "Center Back (CB)", Category: "Defender"},
	{ID: "LB", Name: "Left Back (LB)", Category: "Defender"},
	{ID: "RB", Name: "Right Back (RB)", Category: "Defender"},
	{ID: "LWB", Name: "Left Wing Back (LWB)", Category: "Defender"},
	{ID: "RWB", Name: "Right Wing Back (RWB)", Category: "Defender"},
	{ID: "CDM", Name: "Defensive Midfielder (CDM)", Category: "Midfielder"},
	{ID: "CM", Name: "Central Midfielder (CM)", Category: "Midfielder"},
	{ID: "CAM", Name: "Attacking Midfielder (CAM)", Category: "Midfielder"},
	{ID: "LM", Name: "Left Midfielder (LM)", Category: "Midfielder"},
	{ID: "RM", Name: "Right Midfielder (RM)", Category: "Midfielder"},
	{ID: "LW", Name: "Left Winger (LW)", Category: "Forward"},
	{ID: "RW", Name: "Right Winger (RW)", Category: "Forward"},
	{ID: "ST", Name: "Striker (ST)", Category: "Forward"},
	{ID: "SS", Name: "Second Striker (SS)", Category: "Forward"},
	{ID: "CF", Name: "Center Forward (CF)", Category: "Forward"},
}

// IsValidTacticalPosition reports whether id names a known slot.
func IsValidTacticalPosition(id string) bool {
	for _, p := range TacticalPositions {
		if p.ID == id {
			return true
		}
	}
	return false
}
