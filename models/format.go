package models

import "fmt"

// FormatTimestamp renders a video position in seconds as hh:mm:ss,
// matching the event table and the exported CSV.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatDuration renders an event duration in seconds as mm:ss.t
// (tenths of a second).
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	m := int(seconds) / 60
	s := int(seconds) % 60
	tenths := int(seconds*10) % 10
	return fmt.Sprintf("%02d:%02d.%d", m, s, tenths)
}
