package models

import "time"

// AnalysisSession is one match-tagging session: the team pairing, the
// lineup under analysis, the attached video and its playback state, and
// the match-period control used to tag the Half column.
type AnalysisSession struct {
	ID         int    `json:"id"`
	UserID     int    `json:"user_id"`
	HomeTeamID int    `json:"home_team_id"`
	HomeTeam   string `json:"home_team"`
	AwayTeamID int    `json:"away_team_id"`
	AwayTeam   string `json:"away_team"`
	Lineup     Lineup `json:"lineup"`

	VideoKey *string `json:"-"`
	VideoURL string  `json:"video_url,omitempty"`

	// Playback state mirrors the client's single video element.
	PlaybackPosition float64 `json:"playback_position"`
	IsPlaying        bool    `json:"is_playing"`

	CurrentHalf Half `json:"current_half"`
	HalfActive  bool `json:"half_active"`

	CreatedAt time.Time `json:"created_at"`
}

// EffectiveHalf is the period tag applied to events finalized now.
func (s *AnalysisSession) EffectiveHalf() Half {
	if !s.HalfActive {
		return HalfNotStarted
	}
	return s.CurrentHalf
}
