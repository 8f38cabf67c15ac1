package engine

// MatchState is the per-team, 16-slot mutable snapshot the minute
// simulator operates on. It is reconstructed from a Roster + Teamsheet
// at kickoff and discarded at the next kickoff; never aliased across
// goroutines (each match owns two of these, one per side).
type MatchState struct {
	Team   string
	Tactic Tactic

	// Identity / skills copied from the selected Roster players.
	Name          [NLineup]string
	PositionCode  [NLineup]string
	PreferredSide [NLineup]string
	St, Tk, Ps, Sh, Sm, Ag [NLineup]int16

	// Per-match mutable state.
	Active  [NLineup]bool
	Fatigue [NLineup]float64 // [0.1, 1.0]
	FatigueDeduction [NLineup]float64
	Minutes [NLineup]int

	// Contributions: Sh0/Ps0/Tk0 are post side/tactic/bonus, pre
	// fatigue; Shm/Psm/Tkm are post-fatigue, recomputed every minute.
	Sh0, Ps0, Tk0 [NLineup]float64
	Shm, Psm, Tkm [NLineup]float64

	// Match counters, mirroring roster stats.
	Sav, Ktk, Kps, Sht, Gls, Ass [NLineup]int16
	Yellow [NLineup]int
	Red     [NLineup]bool
	Injured [NLineup]bool

	Pk int // index of current penalty kicker
	Gk int // index of current goalkeeper

	SubCnt int

	// WeightScratch is reused by the minute simulator's weighted-draw
	// events (foul fouler, injury victim) so a fresh slice isn't
	// allocated on every per-minute check (§9).
	WeightScratch [NLineup]float64
}

// ActiveCount returns the number of currently active (on-pitch) slots.
func (ms *MatchState) ActiveCount() int {
	n := 0
	for i := 0; i < NLineup; i++ {
		if ms.Active[i] {
			n++
		}
	}
	return n
}

// NewMatchState allocates a zeroed state for team and tactic, with no
// goalkeeper or penalty kicker assigned (Gk and Pk are -1);
// BuildMatchState calls it and fills it from a Roster + Teamsheet.
func NewMatchState(team string, tactic Tactic) *MatchState {
	return &MatchState{Team: team, Tactic: tactic, Pk: -1, Gk: -1}
}
