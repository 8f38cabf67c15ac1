package league

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jstittsworth/pitchsim/internal/engine"
)

func TestUpdateTableInvariants(t *testing.T) {
	table := []engine.LeagueStanding{{Team: "A"}, {Team: "B"}}
	UpdateTable(table, 0, 1, 2, 1)
	UpdateTable(table, 1, 0, 0, 0)

	for _, row := range table {
		assert.Equal(t, 3*row.W+row.D, row.Pts)
		assert.Equal(t, row.GF-row.GA, row.GD)
		assert.Equal(t, int16(2), row.P)
	}
	assert.Equal(t, int16(1), table[0].W)
	assert.Equal(t, int16(1), table[0].D)
}

func TestRankThreeWayTieByGDThenGF(t *testing.T) {
	table := []engine.LeagueStanding{
		{Team: "A", Pts: 10, GD: 2, GF: 5},
		{Team: "B", Pts: 10, GD: 2, GF: 3},
		{Team: "C", Pts: 10, GD: 1, GF: 9},
		{Team: "D", Pts: 12, GD: -3, GF: 1},
	}
	Rank(table)

	byTeam := make(map[string]int)
	for _, row := range table {
		byTeam[row.Team] = row.Place
	}
	assert.Equal(t, 1, byTeam["D"], "highest Pts ranks first regardless of GD")
	assert.Equal(t, 2, byTeam["A"], "tied on Pts, higher GD ranks above")
	assert.Equal(t, 3, byTeam["B"], "tied on Pts and GD, higher GF ranks above")
	assert.Equal(t, 4, byTeam["C"])
}
