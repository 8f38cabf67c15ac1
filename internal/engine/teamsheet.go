package engine

import "strings"

// LineupSlot is one (Name, PositionCode) pairing in a teamsheet.
// PositionCode is a 3-character string "P1 P2 Side", e.g. "FWC",
// "GK " (GK has a blank side char).
type LineupSlot struct {
	Name         string
	PositionCode string
}

// Group returns the two-letter position group of a PositionCode.
func (s LineupSlot) Group() PositionGroup {
	if len(s.PositionCode) < 2 {
		return ""
	}
	return PositionGroup(s.PositionCode[:2])
}

// Side returns the side character of a PositionCode ('R','L','C',' ').
func (s LineupSlot) Side() byte {
	if len(s.PositionCode) < 3 {
		return ' '
	}
	return s.PositionCode[2]
}

// Teamsheet is a lineup selection: 11 starters, 5 subs, a designated
// penalty kicker, and a chosen tactic.
type Teamsheet struct {
	Team      string
	Tactic    Tactic
	Starters  [NStarters]LineupSlot
	Subs      [NSubs]LineupSlot
	PenaltyKicker string
}

// AllSlots returns starters followed by subs, fixed NLineup length,
// matching the Match-State slot order.
func (t *Teamsheet) AllSlots() [NLineup]LineupSlot {
	var out [NLineup]LineupSlot
	copy(out[:NStarters], t.Starters[:])
	copy(out[NStarters:], t.Subs[:])
	return out
}

// PreferredSideContains reports whether side is one of the characters
// in pref (the player's 4-slot PreferredSide string), per §4.3(b).
func PreferredSideContains(pref string, side byte) bool {
	return strings.IndexByte(pref, side) >= 0
}
