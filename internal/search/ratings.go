// Package search implements the rating-search engine: replicated
// season simulation, an RMSE fit metric, and a threshold-acceptance
// meta-heuristic over six per-player skill ratings (§4.9). Grounded on
// the teacher's optimizer config/result struct pairing (one struct for
// knobs, one for the outcome of a step) as seen across the
// optimization-service handlers.
package search

import (
	"math/rand"
	"sort"

	"github.com/jstittsworth/pitchsim/internal/engine"
)

// Ratings holds the six candidate skill values per (team, slot),
// shared by construction across every replica so they stay in sync on
// roster structure (§4.9: "the same perturbation set applied to all
// replicas").
type Ratings struct {
	St, Tk, Ps, Sh, Sm, Ag [][engine.MaxPlayers]int16
}

// NewRatings allocates a zeroed Ratings sized to nTeams.
func NewRatings(nTeams int) *Ratings {
	return &Ratings{
		St: make([][engine.MaxPlayers]int16, nTeams),
		Tk: make([][engine.MaxPlayers]int16, nTeams),
		Ps: make([][engine.MaxPlayers]int16, nTeams),
		Sh: make([][engine.MaxPlayers]int16, nTeams),
		Sm: make([][engine.MaxPlayers]int16, nTeams),
		Ag: make([][engine.MaxPlayers]int16, nTeams),
	}
}

// Clone deep-copies a Ratings set (used for sims_best/sims_last
// snapshots, §9: "avoid reference sharing to keep deepcopy semantics").
func (r *Ratings) Clone() *Ratings {
	out := NewRatings(len(r.St))
	copy(out.St, r.St)
	copy(out.Tk, r.Tk)
	copy(out.Ps, r.Ps)
	copy(out.Sh, r.Sh)
	copy(out.Sm, r.Sm)
	copy(out.Ag, r.Ag)
	return out
}

// ApplyTo writes the candidate ratings into every non-placeholder
// roster slot.
func (r *Ratings) ApplyTo(rosters []engine.Roster) {
	for t := range rosters {
		for i := range rosters[t].Players {
			p := &rosters[t].Players[i]
			if p.IsPlaceholder() {
				continue
			}
			p.St, p.Tk, p.Ps, p.Sh, p.Sm, p.Ag = r.St[t][i], r.Tk[t][i], r.Ps[t][i], r.Sh[t][i], r.Sm[t][i], r.Ag[t][i]
		}
	}
}

// Perturb implements the proposal step's random walk: ratings ←
// clamp_1_99(ratings + U{-stepsize..+stepsize}) applied to all six
// skills independently (§4.9).
func (r *Ratings) Perturb(rng *rand.Rand, stepsize int, rosters []engine.Roster) *Ratings {
	out := r.Clone()
	for t := range rosters {
		for i := range rosters[t].Players {
			if rosters[t].Players[i].IsPlaceholder() {
				continue
			}
			out.St[t][i] = jitter(rng, out.St[t][i], stepsize)
			out.Tk[t][i] = jitter(rng, out.Tk[t][i], stepsize)
			out.Ps[t][i] = jitter(rng, out.Ps[t][i], stepsize)
			out.Sh[t][i] = jitter(rng, out.Sh[t][i], stepsize)
			out.Sm[t][i] = jitter(rng, out.Sm[t][i], stepsize)
			out.Ag[t][i] = jitter(rng, out.Ag[t][i], stepsize)
		}
	}
	return out
}

func jitter(rng *rand.Rand, v int16, stepsize int) int16 {
	if stepsize <= 0 {
		return clamp1_99(v)
	}
	delta := rng.Intn(2*stepsize+1) - stepsize
	return clamp1_99(v + int16(delta))
}

func clamp1_99(v int16) int16 {
	if v < 1 {
		return 1
	}
	if v > 99 {
		return 99
	}
	return v
}

// RandomRatings implements the "random" initialization option (§4.9):
// each non-placeholder player gets six independent U{1..99} ratings.
func RandomRatings(rng *rand.Rand, rosters []engine.Roster) *Ratings {
	r := NewRatings(len(rosters))
	draw := func() int16 { return int16(1 + rng.Intn(99)) }
	for t := range rosters {
		for i := range rosters[t].Players {
			if rosters[t].Players[i].IsPlaceholder() {
				continue
			}
			r.St[t][i], r.Tk[t][i], r.Ps[t][i], r.Sh[t][i] = draw(), draw(), draw(), draw()
			r.Sm[t][i], r.Ag[t][i] = draw(), draw()
		}
	}
	return r
}

// PercentileRatings implements the "percentile" initialization option
// (§4.9): empirical CDF of baseline season-end {Sav,Ktk,Kps,Sht} maps
// respectively to {St,Tk,Ps,Sh}; Ag and Sm are fixed constants.
//
// The source assigns Ag=30, Sm=50 with a comment suggesting the two
// are swapped relative to intent; this keeps the source values
// verbatim rather than silently fixing them (§9).
func PercentileRatings(rosters []engine.Roster) *Ratings {
	r := NewRatings(len(rosters))

	stPct := ecdf(rosters, func(p *engine.Player) int16 { return p.Sav })
	tkPct := ecdf(rosters, func(p *engine.Player) int16 { return p.Ktk })
	psPct := ecdf(rosters, func(p *engine.Player) int16 { return p.Kps })
	shPct := ecdf(rosters, func(p *engine.Player) int16 { return p.Sht })

	for t := range rosters {
		for i := range rosters[t].Players {
			if rosters[t].Players[i].IsPlaceholder() {
				continue
			}
			key := slotKey{t, i}
			r.St[t][i] = stPct[key]
			r.Tk[t][i] = tkPct[key]
			r.Ps[t][i] = psPct[key]
			r.Sh[t][i] = shPct[key]
			r.Ag[t][i] = 30
			r.Sm[t][i] = 50
		}
	}
	return r
}

type slotKey struct{ team, idx int }

// ecdf computes the empirical CDF of stat(p) across every
// non-placeholder player in rosters, scaled to [0,1], multiplied by
// 100, and truncated to [1,99].
func ecdf(rosters []engine.Roster, stat func(*engine.Player) int16) map[slotKey]int16 {
	type entry struct {
		key slotKey
		val int16
	}
	var entries []entry
	for t := range rosters {
		for i := range rosters[t].Players {
			p := &rosters[t].Players[i]
			if p.IsPlaceholder() {
				continue
			}
			entries = append(entries, entry{slotKey{t, i}, stat(p)})
		}
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].val < entries[b].val })

	out := make(map[slotKey]int16, len(entries))
	n := len(entries)
	for rank, e := range entries {
		pctile := float64(rank+1) / float64(n)
		v := int16(pctile * 100)
		if v < 1 {
			v = 1
		}
		if v > 99 {
			v = 99
		}
		out[e.key] = v
	}
	return out
}
