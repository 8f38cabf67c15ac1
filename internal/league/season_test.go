package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/pitchsim/internal/engine"
	"github.com/jstittsworth/pitchsim/internal/tactics"
)

func makeRoster(t *testing.T, team string, offset int16) engine.Roster {
	t.Helper()
	var players []engine.Player
	for i := int16(0); i < 16; i++ {
		players = append(players, engine.Player{
			Name:          team + string(rune('A'+i)),
			Age:           20 + (i % 10),
			Nationality:   "ENG",
			PreferredSide: "C",
			St:            50 + (i+offset)%40,
			Tk:            50 + (i+offset*2)%40,
			Ps:            50 + (i+offset*3)%40,
			Sh:            50 + (i+offset*5)%40,
			Sm:            70,
			Ag:            40,
			KAb:           300, TAb: 300, PAb: 300, SAb: 300,
			Fit: 100,
		})
	}
	r, err := engine.NewRoster(team, players)
	require.NoError(t, err)
	return r
}

func buildTestLeague(t *testing.T, scheduler Scheduler, seed int64) *League {
	t.Helper()
	teams := []string{"Alpha", "Bravo", "Charlie", "Delta"}
	rosters := make([]engine.Roster, len(teams))
	for i, name := range teams {
		rosters[i] = makeRoster(t, name, int16(i+1))
	}
	table := tactics.NewTable()
	l := InitLeague(teams, rosters, table, seed)
	l.Scheduler = scheduler
	return l
}

func TestPlaySeasonDeterministicAcrossSchedulers(t *testing.T) {
	const seed = int64(12345)

	work := buildTestLeague(t, SchedulerWorkStealing, seed)
	work.PlaySeason()

	composable := buildTestLeague(t, SchedulerComposable, seed)
	composable.PlaySeason()

	assert.Equal(t, work.Standings, composable.Standings)
}

func TestPlaySeasonInvariants(t *testing.T) {
	l := buildTestLeague(t, SchedulerWorkStealing, 999)
	l.PlaySeason()

	for _, s := range l.Standings {
		assert.Equal(t, 3*s.W+s.D, s.Pts, "Pts = 3W+D for %s", s.Team)
		assert.Equal(t, s.GF-s.GA, s.GD, "GD = GF-GA for %s", s.Team)
		assert.Equal(t, s.W+s.D+s.L, s.P, "P = W+D+L for %s", s.Team)
	}
}

func TestResetAllReproducesSeason(t *testing.T) {
	const seed = int64(42)
	l := buildTestLeague(t, SchedulerWorkStealing, seed)
	l.PlaySeason()
	first := make([]engine.LeagueStanding, len(l.Standings))
	copy(first, l.Standings)

	l.ResetAll()
	l.PlaySeason()

	assert.Equal(t, first, l.Standings)
}
