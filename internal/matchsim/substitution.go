package matchsim

import (
	"math/rand"

	"github.com/jstittsworth/pitchsim/internal/contrib"
	"github.com/jstittsworth/pitchsim/internal/engine"
	"github.com/jstittsworth/pitchsim/internal/tactics"
)

const maxSubs = 3

// substitute runs the per-side substitution state machine triggered by
// an injury to victim (§4.4). It activates a replacement (or promotes
// a keeper, or leaves the side a man down) but does not itself mark
// the victim inactive/injured — the caller does that once substitute
// returns, matching the source's event ordering.
func substitute(ms, opp *engine.MatchState, table *tactics.Table, victim int, rng *rand.Rand) {
	avail := func(i int) bool {
		return !ms.Active[i] && !ms.Injured[i] && !ms.Red[i] && ms.Yellow[i] < 2
	}
	victimWasGK := victim == ms.Gk

	if !anyAvail(ms, avail) || ms.SubCnt >= maxSubs {
		if victimWasGK {
			promoteIdx := bestOutfieldKeeper(ms, victim)
			if promoteIdx >= 0 {
				promoteToGK(ms, opp, table, promoteIdx)
			}
		}
		return
	}

	victimPos := ms.PositionCode[victim]
	victimGroup := groupCode(victimPos)

	// exact position match first.
	for i := 0; i < engine.NLineup; i++ {
		if avail(i) && ms.PositionCode[i] == victimPos {
			activateSlot(ms, opp, table, i)
			if victimWasGK {
				ms.Gk = i
			}
			ms.SubCnt++
			return
		}
	}

	if victimWasGK {
		idx := bestOutfieldAvail(ms, avail)
		if idx >= 0 {
			activateSlot(ms, opp, table, idx)
			promoteToGK(ms, opp, table, idx)
			ms.SubCnt++
		}
		return
	}

	// same group, else prefer non-GK available, else any.
	for i := 0; i < engine.NLineup; i++ {
		if avail(i) && groupCode(ms.PositionCode[i]) == victimGroup {
			activateSlot(ms, opp, table, i)
			ms.SubCnt++
			return
		}
	}
	for i := 0; i < engine.NLineup; i++ {
		if avail(i) && groupCode(ms.PositionCode[i]) != engine.PosGK {
			activateSlot(ms, opp, table, i)
			ms.SubCnt++
			return
		}
	}
	for i := 0; i < engine.NLineup; i++ {
		if avail(i) {
			activateSlot(ms, opp, table, i)
			ms.SubCnt++
			return
		}
	}
}

func anyAvail(ms *engine.MatchState, avail func(int) bool) bool {
	for i := 0; i < engine.NLineup; i++ {
		if avail(i) {
			return true
		}
	}
	return false
}

func groupCode(code string) engine.PositionGroup {
	if len(code) < 2 {
		return ""
	}
	return engine.PositionGroup(code[:2])
}

func activateSlot(ms, opp *engine.MatchState, table *tactics.Table, idx int) {
	ms.Active[idx] = true
	contrib.ComputeSlot(ms, opp, table, idx)
}

// bestOutfieldKeeper picks the highest-St active outfield player to
// take over as emergency keeper when no substitute is available.
// victim is still Active at this point (injuryEvent deactivates it
// only after substitute returns) and must be excluded, along with any
// other player already occupying GK, or promotion is a no-op that
// leaves ms.Gk pointing at the slot about to be marked inactive.
func bestOutfieldKeeper(ms *engine.MatchState, victim int) int {
	best, bestScore := -1, -1.0
	for i := 0; i < engine.NLineup; i++ {
		if !ms.Active[i] || i == victim || groupCode(ms.PositionCode[i]) == engine.PosGK {
			continue
		}
		score := float64(ms.St[i])
		if best == -1 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func bestOutfieldAvail(ms *engine.MatchState, avail func(int) bool) int {
	best, bestScore := -1, -1.0
	for i := 0; i < engine.NLineup; i++ {
		if !avail(i) {
			continue
		}
		score := float64(ms.St[i])
		if best == -1 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// promoteToGK reassigns idx as goalkeeper: its position code becomes
// "GK ", its Sh0/Ps0/Tk0 and fatigue deduction are zeroed, and it
// becomes the side's Gk index.
func promoteToGK(ms, opp *engine.MatchState, table *tactics.Table, idx int) {
	ms.PositionCode[idx] = "GK "
	ms.Sh0[idx], ms.Ps0[idx], ms.Tk0[idx] = 0, 0, 0
	ms.FatigueDeduction[idx] = 0
	ms.Gk = idx
}
