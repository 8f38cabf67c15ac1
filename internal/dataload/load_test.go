package dataload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/pitchsim/internal/engine"
)

func TestLoadTeamsSortsAndTruncates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "league.dat")
	require.NoError(t, os.WriteFile(path, []byte("Zebras\nAlpha\nMagpies\nBravo\n"), 0o644))

	teams, err := LoadTeams(path, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Bravo", "Magpies"}, teams)
}

func TestLoadTeamsFailsWhenTooFew(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "league.dat")
	require.NoError(t, os.WriteFile(path, []byte("Alpha\nBravo\n"), 0o644))

	_, err := LoadTeams(path, 5)
	assert.Error(t, err)
}

func TestSaveAndLoadRostersRoundTrip(t *testing.T) {
	dir := t.TempDir()
	teams := []string{"Alpha", "Bravo"}

	rosters := make([]engine.Roster, len(teams))
	for i, team := range teams {
		r, err := engine.NewRoster(team, []engine.Player{
			{Name: team + "P1", Age: 25, Nationality: "ENG", PreferredSide: "C",
				St: 50, Tk: 50, Ps: 50, Sh: 50, Sm: 70, Ag: 40,
				KAb: 300, TAb: 300, PAb: 300, SAb: 300, Fit: 90},
		})
		require.NoError(t, err)
		rosters[i] = r
	}

	require.NoError(t, SaveRosters(dir, teams, rosters))

	got, err := LoadRosters(dir, teams)
	require.NoError(t, err)
	require.Len(t, got, len(teams))
	for i := range teams {
		assert.Equal(t, rosters[i].Team, got[i].Team)
		assert.Equal(t, rosters[i].Players[0].Name, got[i].Players[0].Name)
	}
}
