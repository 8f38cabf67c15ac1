package matchsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/pitchsim/internal/engine"
	"github.com/jstittsworth/pitchsim/internal/tactics"
	"github.com/jstittsworth/pitchsim/internal/teamsheet"
)

func fullRoster(t *testing.T, team string) engine.Roster {
	t.Helper()
	var players []engine.Player
	for i := int16(0); i < 16; i++ {
		players = append(players, engine.Player{
			Name: team + string(rune('A'+i)), Age: 24, Nationality: "ENG", PreferredSide: "C",
			St: 50 + i%20, Tk: 50 + i%15, Ps: 50 + i%10, Sh: 50 + i%25, Sm: 70, Ag: 40,
			KAb: 300, TAb: 300, PAb: 300, SAb: 300, Fit: 100,
		})
	}
	r, err := engine.NewRoster(team, players)
	require.NoError(t, err)
	return r
}

func buildMatchStates(t *testing.T) (*engine.MatchState, *engine.MatchState) {
	t.Helper()
	home := fullRoster(t, "Home")
	away := fullRoster(t, "Away")
	homeSheet := teamsheet.AutoSelect(&home, engine.TacticNormal)
	awaySheet := teamsheet.AutoSelect(&away, engine.TacticNormal)
	return engine.BuildMatchState(&home, &homeSheet), engine.BuildMatchState(&away, &awaySheet)
}

func TestPlayMatchPlaysFullNinetyMinutes(t *testing.T) {
	homeMS, awayMS := buildMatchStates(t)
	table := tactics.NewTable()
	rng := NewStream(1, 1)

	result := PlayMatch(homeMS, awayMS, table, rng)

	assert.Equal(t, 90, result.MinutesPlayed)
	assert.GreaterOrEqual(t, homeMS.ActiveCount(), 0)
	for i := 0; i < engine.NLineup; i++ {
		if homeMS.Active[i] {
			assert.GreaterOrEqual(t, homeMS.Fatigue[i], 0.1)
		}
	}
}

func TestPlayMatchDeterministicForSameStream(t *testing.T) {
	table := tactics.NewTable()

	home1, away1 := buildMatchStates(t)
	r1 := PlayMatch(home1, away1, table, NewStream(55, 3))

	home2, away2 := buildMatchStates(t)
	r2 := PlayMatch(home2, away2, table, NewStream(55, 3))

	assert.Equal(t, r1, r2)
	assert.Equal(t, home1.Gls, home2.Gls)
	assert.Equal(t, home1.Sht, home2.Sht)
	assert.Equal(t, away1.Gls, away2.Gls)
	assert.Equal(t, home1.Fatigue, home2.Fatigue)
}

func TestPlayMatchEndsEarlyBelowMinActivePlayers(t *testing.T) {
	homeMS, awayMS := buildMatchStates(t)
	table := tactics.NewTable()

	for i := 0; i < engine.NLineup; i++ {
		homeMS.Active[i] = i < 6 // below minActivePlayers
	}

	result := PlayMatch(homeMS, awayMS, table, NewStream(1, 1))
	assert.Equal(t, 0, result.MinutesPlayed)
}
