package models

import "time"

type League struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Season    string    `json:"season"`
	CreatedAt time.Time `json:"created_at"`
}

type Team struct {
	ID        int       `json:"id"`
	LeagueID  int       `json:"league_id"`
	Name      string    `json:"name"`
	City      string    `json:"city,omitempty"`
	Founded   int       `json:"founded,omitempty"`
	Stadium   string    `json:"stadium,omitempty"`
	IsCustom  bool      `json:"is_custom,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Players []Player `json:"players,omitempty"`
}
