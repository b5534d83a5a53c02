package models

// MaxStartingPlayers caps the starting set of a lineup.
const MaxStartingPlayers = 11

// Lineup holds the two disjoint player sets of the team under analysis.
// Starting order reflects the sequence of tactical assignments, not the
// order players were loaded.
type Lineup struct {
	Starting    []Player `json:"starting"`
	Substitutes []Player `json:"substitutes"`
}

// AllPlayers returns starting followed by substitutes, the roster every
// player-selection step resolves against.
func (l *Lineup) AllPlayers() []Player {
	out := make([]Player, 0, len(l.Starting)+len(l.Substitutes))
	out = append(out, l.Starting...)
	out = append(out, l.Substitutes...)
	return out
}

// FindPlayer looks a player up by id across both sets.
func (l *Lineup) FindPlayer(id int) (Player, bool) {
	for _, p := range l.AllPlayers() {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}
