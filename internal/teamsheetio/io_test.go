package teamsheetio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/pitchsim/internal/engine"
)

func sampleSheet() engine.Teamsheet {
	var sheet engine.Teamsheet
	sheet.Team = "Rovers"
	sheet.Tactic = engine.Tactic("442")
	positions := []string{"GK ", "RB", "CB", "CB", "LB", "RM", "CM", "CM", "LM", "ST", "ST"}
	for i, pos := range positions {
		sheet.Starters[i] = engine.LineupSlot{PositionCode: pos, Name: "Player" + pos[:2]}
	}
	for i := 0; i < engine.NSubs; i++ {
		sheet.Subs[i] = engine.LineupSlot{PositionCode: "SUB", Name: "Bench"}
	}
	sheet.PenaltyKicker = "ST"
	return sheet
}

func TestRoundTrip(t *testing.T) {
	sheet := sampleSheet()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &sheet))

	got, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, sheet.Team, got.Team)
	assert.Equal(t, sheet.Tactic, got.Tactic)
	assert.Equal(t, sheet.Starters, got.Starters)
	assert.Equal(t, sheet.Subs, got.Subs)
	assert.Equal(t, sheet.PenaltyKicker, got.PenaltyKicker)
}

func TestReadTooShortFails(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("Rovers\n442\n")))
	assert.Error(t, err)
}
