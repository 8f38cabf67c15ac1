// Package engine holds the value types shared by every stage of a match:
// rosters, teamsheets, the per-match mutable state, league standings, and
// the season schedule. Nothing here owns goroutines or I/O.
package engine

// Fixed dimensions. These are compile-time constants rather than
// configuration because every fixed-size array in the hot path
// (MatchState slots, substitution bitmaps, weighted-sample buffers) is
// sized against them.
const (
	MaxPlayers = 30
	NSubs      = 5
	NStarters  = 11
	NLineup    = NStarters + NSubs // 16

	PlaceholderName = "PLACEHOLDER"

	// Disciplinary point weights (§4.5).
	DPYellow   = 4
	DPRed      = 10
	SusMargin  = 10
	MaxInjury  = 9
	FitAfterInj = 80
)

// PositionGroup enumerates the six position groups used by the tactics
// table, the auto-selector and the contribution calculator.
type PositionGroup string

const (
	PosGK PositionGroup = "GK"
	PosDF PositionGroup = "DF"
	PosDM PositionGroup = "DM"
	PosMF PositionGroup = "MF"
	PosAM PositionGroup = "AM"
	PosFW PositionGroup = "FW"
)

// Skill identifies which of a player's three contribution channels a
// tactics/bonus row or a minute-simulator event is about.
type Skill string

const (
	SkillShoot  Skill = "SH"
	SkillPass   Skill = "PS"
	SkillTackle Skill = "TK"
)

// Tactic is the one-letter code selecting a multiplier table.
type Tactic string

const (
	TacticNormal     Tactic = "N"
	TacticDefensive  Tactic = "D"
	TacticAttacking  Tactic = "A"
	TacticCounter    Tactic = "C"
	TacticLongBall   Tactic = "L"
	TacticPossession Tactic = "P"
)

// groupDefault is one position group's (starters, subs) count used by
// the teamsheet auto-selector; AutoSelectOrder lists them in fixed
// iteration order.
type groupDefault struct {
	Group     PositionGroup
	Starters  int
	Subs      int
}

var AutoSelectOrder = []groupDefault{
	{PosGK, 1, 1},
	{PosDF, 4, 1},
	{PosDM, 0, 0},
	{PosMF, 4, 2},
	{PosAM, 0, 0},
	{PosFW, 2, 1},
}
