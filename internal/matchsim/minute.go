// Package matchsim is the per-minute stochastic match engine: fatigue,
// shot/pass/tackle/goal, foul/card/penalty, injury and substitution.
// Grounded on the teacher's seeded-per-entity Monte Carlo idiom
// (shared/pkg/simulator/monte_carlo.go) generalized from a single
// weighted draw per lineup to the full minute-by-minute event chain.
package matchsim

import (
	"math/rand"

	"github.com/jstittsworth/pitchsim/internal/engine"
	"github.com/jstittsworth/pitchsim/internal/tactics"
)

// fatigueUpdate applies the per-minute fatigue recalculation (§4.4) to
// one side and recomputes its post-fatigue contributions.
func fatigueUpdate(ms *engine.MatchState, rng *rand.Rand) {
	for i := 0; i < engine.NLineup; i++ {
		if !ms.Active[i] {
			ms.Shm[i], ms.Psm[i], ms.Tkm[i] = 0, 0, 0
			continue
		}
		ms.Minutes[i]++
		u := uniform(rng, -0.003, 0.003)
		ms.Fatigue[i] -= ms.FatigueDeduction[i] - u
		if ms.Fatigue[i] < 0.1 {
			ms.Fatigue[i] = 0.1
		}
		ms.Shm[i] = ms.Sh0[i] * ms.Fatigue[i]
		ms.Psm[i] = ms.Ps0[i] * ms.Fatigue[i]
		ms.Tkm[i] = ms.Tk0[i] * ms.Fatigue[i]
	}
}

func sumAgActive(ms *engine.MatchState) float64 {
	var s float64
	for i := 0; i < engine.NLineup; i++ {
		if ms.Active[i] {
			s += float64(ms.Ag[i])
		}
	}
	return s
}

func sumM(vals [engine.NLineup]float64) float64 {
	var s float64
	for _, v := range vals {
		s += v
	}
	return s
}

// shotEvent runs one side's shot/pass/tackle/goal chain for the minute
// (§4.4). side is the attacking team, opp the defending team, isHome
// adds the 0.02 home advantage before clamping p_shot.
func shotEvent(side, opp *engine.MatchState, rng *rand.Rand, isHome bool) {
	shm, psm, tkmOpp := sumM(side.Shm), sumM(side.Psm), sumM(opp.Tkm)
	pShot := 1.8 * (sumAgActive(side)/500000 + 0.08*squared(((shm+2*psm)/3)/(tkmOpp+1)))
	if isHome {
		pShot += 0.02
	}
	pShot = clamp01(pShot)
	if rng.Float64() >= pShot {
		return
	}

	shooter := weightedIndex(rng, side.Shm[:])

	passOccurred := false
	passer := -1
	if rng.Float64() < 0.75 {
		passer = drawPasser(rng, side, shooter)
		if passer >= 0 {
			shooterSide := posSide(side, shooter)
			passerSide := posSide(side, passer)
			if shooterSide != passerSide {
				passer = drawPasser(rng, side, shooter)
			}
		}
		if passer >= 0 {
			passOccurred = true
			// Bug-compatible with upstream: the key pass is credited
			// before the tackle check, so a tackled attack still
			// counts (§9).
			side.Kps[passer]++
		}
	}

	psmSide := sumM(side.Psm)
	pTackle := clampF(0.4*3*tkmOpp/(2*psmSide+shm), 0, 1)
	if rng.Float64() < pTackle {
		tackler := weightedIndex(rng, opp.Tkm[:])
		opp.Ktk[tackler]++
		return
	}

	side.Sht[shooter]++
	if rng.Float64() >= 0.58*side.Fatigue[shooter] {
		return // off-target
	}

	pGoal := clampF(0.02*float64(side.Sh[shooter])*side.Fatigue[shooter]-0.02*float64(opp.St[opp.Gk])+0.35, 0.1, 0.9)
	if rng.Float64() < pGoal {
		if rng.Float64() < 0.95 {
			side.Gls[shooter]++
			if passOccurred {
				side.Ass[passer]++
			}
		}
		// else: goal cancelled, no counters mutated.
		return
	}
	opp.Sav[opp.Gk]++
}

func drawPasser(rng *rand.Rand, ms *engine.MatchState, exclude int) int {
	weights := ms.Psm
	saved := weights[exclude]
	weights[exclude] = 0
	idx := weightedIndex(rng, weights[:])
	weights[exclude] = saved
	if idx == exclude {
		return -1
	}
	return idx
}

func posSide(ms *engine.MatchState, i int) byte {
	code := ms.PositionCode[i]
	if len(code) < 3 {
		return ' '
	}
	return code[2]
}

func squared(v float64) float64 { return v * v }

// foulEvent runs the foul/card/penalty chain for one side committing a
// foul against opp (§4.4).
func foulEvent(side, opp *engine.MatchState, rng *rand.Rand) {
	pFoul := 0.75 * sumAgActive(side) / 10000
	if rng.Float64() >= pFoul {
		return
	}

	weights := side.WeightScratch[:]
	for i := 0; i < engine.NLineup; i++ {
		weights[i] = 0
		if side.Active[i] {
			weights[i] = float64(side.Ag[i])
		}
	}
	fouler := weightedIndex(rng, weights)

	isGK := fouler == side.Gk
	yellow := false
	red := false
	if rng.Float64() < 0.6 {
		yellow = true
		side.Yellow[fouler]++
		if side.Yellow[fouler] >= 2 {
			side.Active[fouler] = false
		}
	} else if rng.Float64() < 0.04 {
		red = true
		side.Red[fouler] = true
		side.Active[fouler] = false
	}
	_ = yellow
	_ = red

	if isGK || rng.Float64() < 0.05 {
		taker := opp.Pk
		if taker < 0 || !opp.Active[taker] {
			taker = argmaxShFatActive(opp)
		}
		if taker < 0 {
			return
		}
		pPK := clampF(0.8+0.01*(float64(opp.Sh[taker])-float64(side.St[side.Gk])), 0, 1)
		if rng.Float64() < pPK {
			opp.Gls[taker]++
		}
	}
}

func argmaxShFatActive(ms *engine.MatchState) int {
	best, bestScore := -1, -1.0
	for i := 0; i < engine.NLineup; i++ {
		if !ms.Active[i] {
			continue
		}
		score := float64(ms.Sh[i]) * ms.Fatigue[i]
		if best == -1 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// injuryEvent runs the injury check for one side, triggered by the
// opponent's aggression (§4.4), and drives the substitution state
// machine on a hit.
func injuryEvent(side, opp *engine.MatchState, table *tactics.Table, rng *rand.Rand) {
	pInj := 0.15 * sumAgActive(opp) / 50000
	if rng.Float64() >= pInj {
		return
	}

	weights := side.WeightScratch[:]
	for i := 0; i < engine.NLineup; i++ {
		weights[i] = 0
		if side.Active[i] {
			weights[i] = 1
		}
	}
	victim := weightedIndex(rng, weights)

	substitute(side, opp, table, victim, rng)

	side.Active[victim] = false
	side.Injured[victim] = true
}
