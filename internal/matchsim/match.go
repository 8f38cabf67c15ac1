package matchsim

import (
	"math/rand"

	"github.com/jstittsworth/pitchsim/internal/contrib"
	"github.com/jstittsworth/pitchsim/internal/engine"
	"github.com/jstittsworth/pitchsim/internal/tactics"
)

// minActivePlayers is the per-side floor below which the match aborts
// early (§8: "ends the match early when either side's sum drops below
// 7").
const minActivePlayers = 7

// Result carries the minutes actually played, used by callers that
// need to know whether a match terminated early.
type Result struct {
	MinutesPlayed int
}

// PlayMatch runs the full minute loop for one fixture (§4.4, §5). home
// and away must be freshly built MatchStates; PlayMatch computes their
// kickoff contribs via contrib.Compute itself. rng is the match's private
// stream (§5): never shared across matches or goroutines.
func PlayMatch(home, away *engine.MatchState, table *tactics.Table, rng *rand.Rand) Result {
	contrib.Compute(home, away, table)
	contrib.Compute(away, home, table)

	for minute := 1; minute <= 90; minute++ {
		if home.ActiveCount() < minActivePlayers || away.ActiveCount() < minActivePlayers {
			return Result{MinutesPlayed: minute - 1}
		}

		fatigueUpdate(home, rng)
		fatigueUpdate(away, rng)

		shotEvent(home, away, rng, true)
		foulEvent(home, away, rng)
		injuryEvent(home, away, table, rng)

		shotEvent(away, home, rng, false)
		foulEvent(away, home, rng)
		injuryEvent(away, home, table, rng)
	}
	return Result{MinutesPlayed: 90}
}
