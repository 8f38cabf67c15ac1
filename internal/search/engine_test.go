package search

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/pitchsim/internal/engine"
	"github.com/jstittsworth/pitchsim/internal/league"
	"github.com/jstittsworth/pitchsim/internal/tactics"
)

func buildBaseline(t *testing.T) *league.League {
	t.Helper()
	teams := []string{"Alpha", "Bravo"}
	rosters := make([]engine.Roster, len(teams))
	for ti, name := range teams {
		var players []engine.Player
		for i := int16(0); i < 16; i++ {
			players = append(players, engine.Player{
				Name: name + string(rune('A'+i)), Age: 24, Nationality: "ENG", PreferredSide: "C",
				St: 50, Tk: 50, Ps: 50, Sh: 50, Sm: 70, Ag: 40,
				KAb: 300, TAb: 300, PAb: 300, SAb: 300, Fit: 100,
			})
		}
		r, err := engine.NewRoster(name, players)
		require.NoError(t, err)
		rosters[ti] = r
	}
	table := tactics.NewTable()
	baseline := league.InitLeague(teams, rosters, table, 7)
	baseline.PlaySeason()
	return baseline
}

func TestEngineStepsProgressAndTerminate(t *testing.T) {
	baseline := buildBaseline(t)
	table := tactics.NewTable()

	cfg := Config{NReps: 1, NSteps: 5, Thresh0: 2.0, ThreshD: 0.1, StepSize0: 5, StaleLimit: 100}
	rng := rand.New(rand.NewSource(1))
	init := RandomRatings(rng, baseline.Rosters)

	eng := NewEngine(baseline, table, cfg, init, 1, false)

	var results []StepResult
	for !eng.Done() {
		results = append(results, eng.Step())
	}

	require.Len(t, results, cfg.NSteps)
	for i, r := range results {
		assert.Equal(t, i+1, r.Step)
		assert.False(t, r.Restarted, "should not restart within StaleLimit in this short run")
	}

	_, bestRMSE := eng.Best()
	assert.GreaterOrEqual(t, bestRMSE, 0.0)
}

func TestEngineRestartsAfterStaleLimit(t *testing.T) {
	baseline := buildBaseline(t)
	table := tactics.NewTable()

	cfg := Config{NReps: 1, NSteps: 20, Thresh0: 0, ThreshD: 0, StepSize0: 1, StaleLimit: 3}
	rng := rand.New(rand.NewSource(2))
	init := RandomRatings(rng, baseline.Rosters)

	eng := NewEngine(baseline, table, cfg, init, 2, false)

	sawRestart := false
	for !eng.Done() {
		r := eng.Step()
		if r.Restarted {
			sawRestart = true
		}
	}
	assert.True(t, sawRestart, "a zero acceptance threshold should force a stale-limit restart")
}
