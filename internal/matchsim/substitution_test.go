package matchsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/pitchsim/internal/engine"
	"github.com/jstittsworth/pitchsim/internal/tactics"
)

// TestSubstituteEmergencyKeeperExcludesVictimAndGKSlots guards against
// promoting the injured keeper back onto himself (or onto another GK
// slot) when no substitutes remain: bestOutfieldKeeper must skip the
// victim, who is still Active at this point, and any group-GK slot.
func TestSubstituteEmergencyKeeperExcludesVictimAndGKSlots(t *testing.T) {
	homeMS, awayMS := buildMatchStates(t)
	table := tactics.NewTable()
	rng := NewStream(1, 1)

	homeMS.SubCnt = maxSubs // no subs remain

	victim := homeMS.Gk
	require.GreaterOrEqual(t, victim, 0)
	before := homeMS.PositionCode

	substitute(homeMS, awayMS, table, victim, rng)

	assert.NotEqual(t, victim, homeMS.Gk, "promotion must not resolve back onto the injured keeper")
	assert.True(t, homeMS.Active[homeMS.Gk], "promoted keeper must be an active slot")
	assert.Equal(t, "GK ", homeMS.PositionCode[homeMS.Gk])
	// Every other slot's position code is untouched by the promotion.
	for i := 0; i < engine.NLineup; i++ {
		if i == homeMS.Gk || i == victim {
			continue
		}
		assert.Equal(t, before[i], homeMS.PositionCode[i])
	}
}
