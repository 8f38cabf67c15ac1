package engine

// BuildMatchState copies the Teamsheet's 16 selected players' skills out
// of roster into a fresh MatchState, computing each slot's
// FatigueDeduction from stamina (§3): 0.0031 - 0.0022*(Sm-50)/50, with
// the GK deduction forced to zero.
func BuildMatchState(roster *Roster, sheet *Teamsheet) *MatchState {
	ms := NewMatchState(sheet.Team, sheet.Tactic)
	slots := sheet.AllSlots()

	for i, slot := range slots {
		idx := roster.IndexByName(slot.Name)
		var p Player
		if idx >= 0 {
			p = roster.Players[idx]
		}

		ms.Name[i] = slot.Name
		ms.PositionCode[i] = slot.PositionCode
		ms.PreferredSide[i] = p.PreferredSide
		ms.St[i], ms.Tk[i], ms.Ps[i], ms.Sh[i], ms.Sm[i], ms.Ag[i] = p.St, p.Tk, p.Ps, p.Sh, p.Sm, p.Ag

		ms.Active[i] = i < NStarters
		ms.Fatigue[i] = 1.0

		if slot.Group() == PosGK {
			ms.FatigueDeduction[i] = 0
		} else {
			ms.FatigueDeduction[i] = 0.0031 - 0.0022*(float64(p.Sm)-50)/50
		}

		if slot.Group() == PosGK && ms.Active[i] {
			ms.Gk = i
		}
		if slot.Name == sheet.PenaltyKicker {
			ms.Pk = i
		}
	}
	return ms
}
