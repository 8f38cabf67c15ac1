package rosterupdate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/pitchsim/internal/engine"
)

func buildRoster(t *testing.T, playerName string) engine.Roster {
	t.Helper()
	r, err := engine.NewRoster("Rovers", []engine.Player{
		{Name: playerName, Age: 24, Nationality: "ENG", PreferredSide: "C", St: 50, Tk: 50, Ps: 50, Sh: 50, Sm: 70, Ag: 40, KAb: 300, TAb: 300, PAb: 300, SAb: 300, Fit: 80, DP: 9},
	})
	require.NoError(t, err)
	return r
}

func TestUpdateFoldsMatchStateAndAccruesSuspensionOnFloorCrossing(t *testing.T) {
	roster := buildRoster(t, "Smith")
	roster.Players[0].DP = 19
	ms := engine.NewMatchState("Rovers", engine.TacticNormal)
	ms.Name[0] = "Smith"
	ms.Minutes[0] = 90
	ms.Yellow[0] = 1
	ms.Fatigue[0] = 0.6

	rng := rand.New(rand.NewSource(1))
	Update(&roster, ms, rng)

	p := &roster.Players[0]
	assert.Equal(t, int16(1), p.Gam)
	// DP started at 19, +DPYellow(4) = 23; floor(19/10)=1, floor(23/10)=2 -> Sus accrues the full floor (2), not the delta (1),
	// and Update's maintenance pass then counts it down by one.
	assert.Equal(t, int16(23), p.DP)
	assert.Equal(t, int16(1), p.Sus)
}

func TestMaintainRecoversFitnessAndCountsDown(t *testing.T) {
	roster := buildRoster(t, "Diallo")
	roster.Players[0].Fit = 90
	roster.Players[0].Sus = 2
	roster.Players[0].Inj = 3

	maintain(&roster)

	p := &roster.Players[0]
	assert.Equal(t, int16(100), p.Fit, "Fit clamps at 100")
	assert.Equal(t, int16(1), p.Sus)
	assert.Equal(t, int16(2), p.Inj)
}

func TestMaintainSkipsPlaceholders(t *testing.T) {
	roster := buildRoster(t, "Smith")
	before := roster.Players[1]
	maintain(&roster)
	assert.Equal(t, before, roster.Players[1])
}
