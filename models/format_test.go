package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00"},
		{59.9, "00:00:59"},
		{754, "00:12:34"},
		{3661, "01:01:01"},
		{-5, "00:00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTimestamp(tt.seconds))
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00.0"},
		{12.34, "00:12.3"},
		{65.5, "01:05.5"},
		{-1, "00:00.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds))
	}
}

func TestEventTypeClassification(t *testing.T) {
	assert.True(t, EventGroundPass.IsPass())
	assert.False(t, EventShot.IsPass())

	assert.True(t, EventVarStop.IsStoppage())
	assert.True(t, EventWaterBreak.IsStoppage())
	assert.False(t, EventSub.IsStoppage())

	for _, tracked := range []EventType{EventShot, EventGroundPass, EventHighPass, EventLowPass, EventPress} {
		assert.True(t, tracked.TracksTrajectory(), string(tracked))
	}
	assert.False(t, EventClearance.TracksTrajectory())
}

func TestPlayerName(t *testing.T) {
	name := "Rashford"
	withPlayer := Event{Player: &name}
	assert.Equal(t, "Rashford", withPlayer.PlayerName())

	sub := Event{Type: EventSub}
	assert.Equal(t, NotApplicable, sub.PlayerName())
}
