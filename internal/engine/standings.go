package engine

// LeagueStanding is one team's row in the league table. Invariant:
// Pts = 3*W + D, GD = GF - GA (§3).
type LeagueStanding struct {
	Place int
	Team  string
	P, W, D, L int16
	GF, GA, GD int16
	Pts        int16
}

// Reset zeroes every accumulator field except Team, used by the
// league's explicit reset operation (§3 lifecycle).
func (s *LeagueStanding) Reset() {
	team := s.Team
	*s = LeagueStanding{Team: team}
}
