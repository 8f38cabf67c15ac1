// Package rosterupdate folds one match's Match-State back into a
// Roster and advances injury/suspension/fitness/disciplinary state
// between matches. Update patches the matched roster players in place,
// field by field.
package rosterupdate

import (
	"math/rand"

	"github.com/jstittsworth/pitchsim/internal/engine"
)

const maxInjuryDraw = engine.MaxInjury

// Update implements update_roster(roster, ms) → roster (§4.5). It
// mutates roster in place and also runs the inter-match maintenance
// step (fitness recovery, suspension/injury countdown, stat
// saturation) that the source applies at the same point in the
// pipeline.
func Update(roster *engine.Roster, ms *engine.MatchState, rng *rand.Rand) {
	for slot := 0; slot < engine.NLineup; slot++ {
		idx := roster.IndexByName(ms.Name[slot])
		if idx < 0 {
			continue
		}
		p := &roster.Players[idx]

		if ms.Minutes[slot] > 0 {
			p.Gam++
		}
		p.Sav += ms.Sav[slot]
		p.Ktk += ms.Ktk[slot]
		p.Kps += ms.Kps[slot]
		p.Sht += ms.Sht[slot]
		p.Gls += ms.Gls[slot]
		p.Ass += ms.Ass[slot]

		dpBefore := p.DP
		p.DP += int16(ms.Yellow[slot])*engine.DPYellow + redToInt16(ms.Red[slot])*engine.DPRed

		if ms.Injured[slot] {
			p.Inj += int16(rng.Intn(maxInjuryDraw + 1))
		}
		p.Fit = int16(100 * ms.Fatigue[slot])

		// Suspension accrual (§4.5, preserved per §9 open question:
		// the full floor value DPF is added, not the delta).
		dp0 := dpBefore / engine.SusMargin
		dpf := p.DP / engine.SusMargin
		if dpf > dp0 {
			p.Sus += dpf
		}
	}

	maintain(roster)
}

func redToInt16(red bool) int16 {
	if red {
		return 1
	}
	return 0
}

// maintain runs the inter-match recovery step for every real player in
// the roster (§4.5).
func maintain(roster *engine.Roster) {
	for i := range roster.Players {
		p := &roster.Players[i]
		if p.IsPlaceholder() {
			continue
		}
		p.Fit += 20
		if p.Fit > 100 {
			p.Fit = 100
		}
		if p.Inj == 1 {
			p.Fit = engine.FitAfterInj
		}
		if p.Sus > 0 {
			p.Sus--
		}
		if p.Inj > 0 {
			p.Inj--
		}
		p.SaturateStats()
	}
}
