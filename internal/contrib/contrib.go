// Package contrib computes each match-state slot's Sh0/Ps0/Tk0
// contribution values from raw skills, side balance, tactic, and
// opponent bonus. Grounded on the teacher optimizer's staged-multiplier
// chaining (each adjustment applied in sequence over a working score).
package contrib

import (
	"github.com/jstittsworth/pitchsim/internal/engine"
	"github.com/jstittsworth/pitchsim/internal/tactics"
)

// Compute implements compute_contribs(ms, opp_ms) (§4.3) over every
// slot. It is called once at kickoff; after a substitution the
// single-slot ComputeSlot runs instead.
func Compute(ms, opp *engine.MatchState, table *tactics.Table) {
	for i := 0; i < engine.NLineup; i++ {
		ms.Sh0[i] = float64(ms.Sh[i])
		ms.Ps0[i] = float64(ms.Ps[i])
		ms.Tk0[i] = float64(ms.Tk[i])
	}

	sideBalance(ms)
	preferredSidePenalty(ms)
	tacticMultiplier(ms, table)
	opponentBonus(ms, opp, table)
	zeroGK(ms)
}

// ComputeSlot re-runs the same pipeline restricted to a single slot,
// used after a substitution swaps one player in (§4.4's "run
// update_sidefactor/tactmult/bonus for that single slot only"). The
// group's side-balance multiplier is recomputed against the new lineup
// but applied only to idx; every other slot in the group already
// carries its own fully-processed Sh0/Ps0/Tk0 from kickoff or an
// earlier substitution and must not be touched again.
func ComputeSlot(ms, opp *engine.MatchState, table *tactics.Table, idx int) {
	ms.Sh0[idx] = float64(ms.Sh[idx])
	ms.Ps0[idx] = float64(ms.Ps[idx])
	ms.Tk0[idx] = float64(ms.Tk[idx])

	mult := sideBalanceMult(ms, groupOf(ms, idx))
	ms.Sh0[idx] *= mult
	ms.Ps0[idx] *= mult
	ms.Tk0[idx] *= mult
	applyPreferredSide(ms, idx)
	applyTacticMult(ms, table, idx)
	applyBonus(ms, opp, table, idx)
	if groupOf(ms, idx) == engine.PosGK {
		ms.Sh0[idx], ms.Ps0[idx], ms.Tk0[idx] = 0, 0, 0
	}
}

func groupOf(ms *engine.MatchState, i int) engine.PositionGroup {
	code := ms.PositionCode[i]
	if len(code) < 2 {
		return ""
	}
	return engine.PositionGroup(code[:2])
}

func sideOf(ms *engine.MatchState, i int) byte {
	code := ms.PositionCode[i]
	if len(code) < 3 {
		return ' '
	}
	return code[2]
}

// sideBalance applies step (a) across every non-GK position group.
func sideBalance(ms *engine.MatchState) {
	for _, gd := range engine.AutoSelectOrder {
		if gd.Group == engine.PosGK {
			continue
		}
		sideBalanceGroup(ms, gd.Group)
	}
}

func sideBalanceGroup(ms *engine.MatchState, group engine.PositionGroup) {
	mult := sideBalanceMult(ms, group)
	if mult == 1.0 {
		return
	}
	for i := 0; i < engine.NLineup; i++ {
		if !ms.Active[i] || groupOf(ms, i) != group {
			continue
		}
		ms.Sh0[i] *= mult
		ms.Ps0[i] *= mult
		ms.Tk0[i] *= mult
	}
}

// sideBalanceMult computes step (a)'s multiplier for group without
// applying it, so a single-slot recompute (ComputeSlot, after a
// substitution) can apply it to just the affected slot instead of
// re-stacking it onto every already-processed teammate in the group
// (§4.4).
func sideBalanceMult(ms *engine.MatchState, group engine.PositionGroup) float64 {
	if group == engine.PosGK || group == "" {
		return 1.0
	}
	var nR, nL, nC int
	for i := 0; i < engine.NLineup; i++ {
		if !ms.Active[i] || groupOf(ms, i) != group {
			continue
		}
		switch sideOf(ms, i) {
		case 'R':
			nR++
		case 'L':
			nL++
		case 'C':
			nC++
		}
	}

	switch {
	case nR != nL:
		denom := nR + nL
		if denom > 0 {
			return 1 - 0.25*absInt(nR-nL)/float64(denom)
		}
		return 1.0
	case nC > 3 && nR == 0 && nL == 0:
		return 0.87
	default:
		return 1.0
	}
}

func absInt(v int) float64 {
	if v < 0 {
		return float64(-v)
	}
	return float64(v)
}

// preferredSidePenalty applies step (b).
func preferredSidePenalty(ms *engine.MatchState) {
	for i := 0; i < engine.NLineup; i++ {
		if !ms.Active[i] || groupOf(ms, i) == engine.PosGK {
			continue
		}
		applyPreferredSide(ms, i)
	}
}

func applyPreferredSide(ms *engine.MatchState, i int) {
	if groupOf(ms, i) == engine.PosGK {
		return
	}
	if !engine.PreferredSideContains(ms.PreferredSide[i], sideOf(ms, i)) {
		ms.Sh0[i] *= 0.75
		ms.Ps0[i] *= 0.75
		ms.Tk0[i] *= 0.75
	}
}

// tacticMultiplier applies step (c).
func tacticMultiplier(ms *engine.MatchState, table *tactics.Table) {
	for i := 0; i < engine.NLineup; i++ {
		if !ms.Active[i] || groupOf(ms, i) == engine.PosGK {
			continue
		}
		applyTacticMult(ms, table, i)
	}
}

func applyTacticMult(ms *engine.MatchState, table *tactics.Table, i int) {
	group := groupOf(ms, i)
	if group == engine.PosGK {
		return
	}
	ms.Sh0[i] *= float64(table.TactMult(ms.Tactic, group, engine.SkillShoot))
	ms.Ps0[i] *= float64(table.TactMult(ms.Tactic, group, engine.SkillPass))
	ms.Tk0[i] *= float64(table.TactMult(ms.Tactic, group, engine.SkillTackle))
}

// opponentBonus applies step (d).
func opponentBonus(ms, opp *engine.MatchState, table *tactics.Table) {
	for i := 0; i < engine.NLineup; i++ {
		if !ms.Active[i] || groupOf(ms, i) == engine.PosGK {
			continue
		}
		applyBonus(ms, opp, table, i)
	}
}

func applyBonus(ms, opp *engine.MatchState, table *tactics.Table, i int) {
	group := groupOf(ms, i)
	if group == engine.PosGK {
		return
	}
	ms.Sh0[i] *= float64(table.BonusMult(ms.Tactic, opp.Tactic, group, engine.SkillShoot))
	ms.Ps0[i] *= float64(table.BonusMult(ms.Tactic, opp.Tactic, group, engine.SkillPass))
	ms.Tk0[i] *= float64(table.BonusMult(ms.Tactic, opp.Tactic, group, engine.SkillTackle))
}

// zeroGK applies step (e).
func zeroGK(ms *engine.MatchState) {
	if ms.Gk < 0 {
		return
	}
	ms.Sh0[ms.Gk], ms.Ps0[ms.Gk], ms.Tk0[ms.Gk] = 0, 0, 0
}
