package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorCodesAndMessage(t *testing.T) {
	err := NewCapacityError("roster exceeds MaxPlayers", "Rovers")
	assert.Equal(t, ErrCodeCapacity, err.Code)
	assert.Contains(t, err.Error(), "roster exceeds MaxPlayers")
	assert.Contains(t, err.Error(), "Rovers")

	noDetails := NewConfigError("league file has 2 teams, need 5")
	assert.Equal(t, ErrCodeConfig, noDetails.Code)
	assert.NotContains(t, noDetails.Error(), " - ")
}

func TestStandingResetKeepsTeamName(t *testing.T) {
	s := LeagueStanding{Team: "Rovers", P: 10, W: 5, D: 2, L: 3, GF: 12, GA: 8, GD: 4, Pts: 17, Place: 1}
	s.Reset()
	assert.Equal(t, "Rovers", s.Team)
	assert.Zero(t, s.P)
	assert.Zero(t, s.Pts)
	assert.Zero(t, s.Place)
}

func TestRosterCapacityError(t *testing.T) {
	players := make([]Player, MaxPlayers+1)
	for i := range players {
		players[i] = Player{Name: "P"}
	}
	_, err := NewRoster("Overflow", players)
	assert.Error(t, err)
	appErr, ok := err.(*AppError)
	if assert.True(t, ok) {
		assert.Equal(t, ErrCodeCapacity, appErr.Code)
	}
}
