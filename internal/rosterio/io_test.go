package rosterio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/pitchsim/internal/engine"
)

func TestRoundTrip(t *testing.T) {
	players := []engine.Player{
		{
			Name: "Smith", Age: 27, Nationality: "ENG", PreferredSide: "R",
			St: 1, Tk: 80, Ps: 65, Sh: 40, Sm: 70, Ag: 55,
			KAb: 300, TAb: 300, PAb: 300, SAb: 300,
			Gam: 10, Sav: 0, Ktk: 20, Kps: 15, Sht: 5, Gls: 1, Ass: 2, DP: 4, Inj: 0, Sus: 0, Fit: 95,
		},
		{
			Name: "Diallo", Age: 22, Nationality: "FRA", PreferredSide: "LC",
			St: 5, Tk: 60, Ps: 72, Sh: 68, Sm: 75, Ag: 40,
			KAb: 300, TAb: 300, PAb: 300, SAb: 300,
			Gam: 12, Sav: 0, Ktk: 10, Kps: 30, Sht: 20, Gls: 6, Ass: 4, DP: 8, Inj: 1, Sus: 0, Fit: 80,
		},
	}

	roster, err := engine.NewRoster("Rovers", players)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &roster))

	got, err := Read(bytes.NewReader(buf.Bytes()), "Rovers")
	require.NoError(t, err)

	assert.Equal(t, roster.Team, got.Team)
	for i := 0; i < len(players); i++ {
		assert.Equal(t, roster.Players[i].Name, got.Players[i].Name)
		assert.Equal(t, roster.Players[i].PreferredSide, got.Players[i].PreferredSide)
		assert.Equal(t, roster.Players[i].Sh, got.Players[i].Sh)
		assert.Equal(t, roster.Players[i].Fit, got.Players[i].Fit)
	}
	for i := len(players); i < engine.MaxPlayers; i++ {
		assert.True(t, got.Players[i].IsPlaceholder())
	}
}

func TestReadTooShortFails(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("too short")), "X")
	assert.Error(t, err)
}
