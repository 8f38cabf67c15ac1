package contrib

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/pitchsim/internal/engine"
	"github.com/jstittsworth/pitchsim/internal/tactics"
)

func buildState(tactic engine.Tactic) *engine.MatchState {
	ms := engine.NewMatchState("Rovers", tactic)
	for i := 0; i < engine.NLineup; i++ {
		ms.Active[i] = true
		ms.Sh[i], ms.Ps[i], ms.Tk[i] = 50, 50, 50
		ms.PreferredSide[i] = "C"
	}
	ms.PositionCode[0] = "GK "
	ms.Gk = 0
	for i := 1; i <= 4; i++ {
		ms.PositionCode[i] = "DFC"
	}
	for i := 5; i <= 8; i++ {
		ms.PositionCode[i] = "MFC"
	}
	for i := 9; i <= 10; i++ {
		ms.PositionCode[i] = "FWC"
	}
	for i := 11; i < engine.NLineup; i++ {
		ms.Active[i] = false
	}
	return ms
}

func TestComputeZeroesGoalkeeperContribution(t *testing.T) {
	home := buildState(engine.TacticNormal)
	away := buildState(engine.TacticNormal)
	table := tactics.NewTable()

	Compute(home, away, table)

	assert.Zero(t, home.Sh0[0])
	assert.Zero(t, home.Ps0[0])
	assert.Zero(t, home.Tk0[0])
}

func TestComputeAppliesPreferredSidePenalty(t *testing.T) {
	home := buildState(engine.TacticNormal)
	away := buildState(engine.TacticNormal)
	table := tactics.NewTable()
	home.PreferredSide[1] = "L" // slot 1 plays 'C', preferred only 'L'

	Compute(home, away, table)

	// DF group is 4-strong and all-center, so side balance also applies
	// its 0.87 group multiplier before the preferred-side penalty.
	assert.InDelta(t, 50*0.87*0.75, home.Sh0[1], 0.001)
}

func TestComputeAppliesTacticAndBonusMultipliers(t *testing.T) {
	home := buildState(engine.TacticAttacking)
	away := buildState(engine.TacticNormal)

	table, err := tactics.Load(strings.NewReader("M A DF SH 1.2\nB N A DF SH 1.1\n"))
	require.NoError(t, err)

	Compute(home, away, table)

	assert.InDelta(t, 50*0.87*1.2*1.1, home.Sh0[1], 0.001)
}

// TestComputeSlotOnlyTouchesSubstitutedSlot guards against re-stacking
// the group's side-balance multiplier onto teammates that already went
// through the full pipeline at kickoff or an earlier substitution.
func TestComputeSlotOnlyTouchesSubstitutedSlot(t *testing.T) {
	home := buildState(engine.TacticNormal)
	away := buildState(engine.TacticNormal)
	table := tactics.NewTable()

	Compute(home, away, table)

	// The DF group (slots 1-4) is 4-strong and all-center, so every
	// slot's Sh0 already carries one application of the 0.87 multiplier.
	untouched := map[int]float64{
		2: home.Sh0[2],
		3: home.Sh0[3],
		4: home.Sh0[4],
	}
	untouchedPs := map[int]float64{2: home.Ps0[2], 3: home.Ps0[3], 4: home.Ps0[4]}
	untouchedTk := map[int]float64{2: home.Tk0[2], 3: home.Tk0[3], 4: home.Tk0[4]}

	// Simulate a substitution into slot 1: new skills, still in the
	// same 4-strong all-center DF group.
	home.Sh[1], home.Ps[1], home.Tk[1] = 80, 80, 80

	ComputeSlot(home, away, table, 1)

	assert.InDelta(t, 80*0.87, home.Sh0[1], 0.001)

	for idx, want := range untouched {
		assert.InDelta(t, want, home.Sh0[idx], 0.001, "slot %d Sh0 must not be re-multiplied", idx)
	}
	for idx, want := range untouchedPs {
		assert.InDelta(t, want, home.Ps0[idx], 0.001, "slot %d Ps0 must not be re-multiplied", idx)
	}
	for idx, want := range untouchedTk {
		assert.InDelta(t, want, home.Tk0[idx], 0.001, "slot %d Tk0 must not be re-multiplied", idx)
	}
}
