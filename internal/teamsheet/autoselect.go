// Package teamsheet builds default lineups from a roster. Grounded on
// the teacher optimizer's ranking idiom (sort candidates by a score,
// assign greedily, consume the candidate pool as you go).
package teamsheet

import (
	"sort"

	"github.com/jstittsworth/pitchsim/internal/engine"
)

// AutoSelect implements auto_teamsheet(roster, tactic) → Teamsheet (§4.2).
// tactic defaults to engine.TacticNormal if empty.
func AutoSelect(roster *engine.Roster, tactic engine.Tactic) engine.Teamsheet {
	if tactic == "" {
		tactic = engine.TacticNormal
	}
	availFit := roster.AvailableFitness()

	sheet := engine.Teamsheet{Team: roster.Team, Tactic: tactic}

	pkIdx := argmax(func(i int) float64 {
		return float64(roster.Players[i].Sh) * availFit[i]
	})
	if pkIdx >= 0 {
		sheet.PenaltyKicker = roster.Players[pkIdx].Name
	}

	starterI, subI := 0, 0
	for _, gd := range engine.AutoSelectOrder {
		cands := rankGroup(roster, availFit, gd.Group)
		take := gd.Starters + gd.Subs
		if take > len(cands) {
			take = len(cands)
		}
		for k := 0; k < take; k++ {
			idx := cands[k]
			side := byte('C')
			if gd.Group == engine.PosGK {
				side = ' '
			}
			slot := engine.LineupSlot{
				Name:         roster.Players[idx].Name,
				PositionCode: string(gd.Group) + string(side),
			}
			if k < gd.Starters {
				sheet.Starters[starterI] = slot
				starterI++
			} else {
				sheet.Subs[subI] = slot
				subI++
			}
			availFit[idx] = 0
		}
	}
	return sheet
}

// rankGroup returns roster indices for group, sorted by skill_of(group)
// * avail_fit descending, ties by earlier roster index, skipping players
// already consumed (avail_fit == 0) and placeholders.
func rankGroup(roster *engine.Roster, availFit [engine.MaxPlayers]float64, group engine.PositionGroup) []int {
	var idxs []int
	for i := range roster.Players {
		if roster.Players[i].IsPlaceholder() || availFit[i] == 0 {
			continue
		}
		idxs = append(idxs, i)
	}
	score := func(i int) float64 {
		return skillOf(&roster.Players[i], group) * availFit[i]
	}
	sort.SliceStable(idxs, func(a, b int) bool {
		sa, sb := score(idxs[a]), score(idxs[b])
		if sa != sb {
			return sa > sb
		}
		return idxs[a] < idxs[b]
	})
	return idxs
}

// skillOf picks the relevant rating per §4.2: St for GK, Tk for DF, Ps
// for MF, Sh for FW, Ps otherwise (DM, AM).
func skillOf(p *engine.Player, group engine.PositionGroup) float64 {
	switch group {
	case engine.PosGK:
		return float64(p.St)
	case engine.PosDF:
		return float64(p.Tk)
	case engine.PosMF:
		return float64(p.Ps)
	case engine.PosFW:
		return float64(p.Sh)
	default:
		return float64(p.Ps)
	}
}

func argmax(score func(i int) float64) int {
	best, bestScore := -1, -1.0
	for i := 0; i < engine.MaxPlayers; i++ {
		s := score(i)
		if best == -1 || s > bestScore {
			best, bestScore = i, s
		}
	}
	return best
}
