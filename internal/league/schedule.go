package league

import "github.com/jstittsworth/pitchsim/internal/engine"

// BuildSchedule implements build_schedule(n_teams) (§4.7): circle
// method round-robin doubled home/away. Team indices in the returned
// fixtures are 1-based into the team vector (§6).
func BuildSchedule(nTeams int) engine.Schedule {
	teams := make([]int, nTeams)
	for i := range teams {
		teams[i] = i + 1
	}
	ghost := false
	if nTeams%2 != 0 {
		teams = append(teams, 0) // ghost team, index 0 is never a real team
		ghost = true
	}
	n := len(teams)
	rounds := n - 1

	first := make(engine.Schedule, 0, rounds)
	for r := 0; r < rounds; r++ {
		var week engine.Week
		for i := 0; i < n/2; i++ {
			home, away := teams[i], teams[n-1-i]
			if ghost && (home == 0 || away == 0) {
				continue
			}
			if i == 0 {
				// fixed anchor alternates home/away by round parity so
				// it doesn't always host.
				if r%2 == 1 {
					home, away = away, home
				}
			}
			week = append(week, engine.Fixture{Home: home, Away: away})
		}
		first = append(first, week)
		teams = rotate(teams)
	}

	full := make(engine.Schedule, 0, 2*rounds)
	full = append(full, first...)
	for _, week := range first {
		reversed := make(engine.Week, len(week))
		for i, f := range week {
			reversed[i] = engine.Fixture{Home: f.Away, Away: f.Home}
		}
		full = append(full, reversed)
	}
	return full
}

// rotate fixes teams[0] in place and cycles the rest by one position,
// the standard circle-method step.
func rotate(teams []int) []int {
	if len(teams) < 2 {
		return teams
	}
	out := make([]int, len(teams))
	out[0] = teams[0]
	last := teams[len(teams)-1]
	for i := len(teams) - 1; i > 1; i-- {
		out[i] = teams[i-1]
	}
	out[1] = last
	return out
}
