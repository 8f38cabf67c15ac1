package league

import (
	"math/rand"
	"sync"

	"github.com/jstittsworth/pitchsim/internal/engine"
	"github.com/jstittsworth/pitchsim/internal/matchsim"
	"github.com/jstittsworth/pitchsim/internal/rosterupdate"
	"github.com/jstittsworth/pitchsim/internal/tactics"
	"github.com/jstittsworth/pitchsim/internal/teamsheet"
)

// Scheduler selects between the two worker strategies §5 calls for: a
// work-stealing pool (lower overhead, used when nesting with the
// rating-search replica axis is not in play) and a composable
// goroutine-per-match pool (safer for nesting under an outer fan-out).
type Scheduler int

const (
	// SchedulerWorkStealing bounds concurrency to a fixed pool size and
	// lets idle workers pull the next fixture off a shared channel.
	SchedulerWorkStealing Scheduler = iota
	// SchedulerComposable spawns one goroutine per fixture in the week,
	// gated only by a WaitGroup; safe to nest under an outer parallel
	// region (e.g. the rating-search replica loop) without oversubscribing
	// a shared pool.
	SchedulerComposable
)

// League is the mutable season state: teams, rosters, teamsheets,
// schedule, and the accumulating standings table (§3).
type League struct {
	Teams     []string
	Rosters   []engine.Roster
	Teamsheets []engine.Teamsheet
	Standings []engine.LeagueStanding
	Schedule  engine.Schedule
	Table     *tactics.Table

	RootSeed  int64
	Scheduler Scheduler
	Workers   int

	initialRosters []engine.Roster
}

// InitLeague implements init_league(teams, rosters, table, seed)
// (§6 lifecycle). Rosters are matched to teams by index; every team
// gets a default auto-selected teamsheet under TacticNormal.
func InitLeague(teams []string, rosters []engine.Roster, table *tactics.Table, seed int64) *League {
	l := &League{
		Teams:     teams,
		Rosters:   make([]engine.Roster, len(rosters)),
		Teamsheets: make([]engine.Teamsheet, len(rosters)),
		Standings: make([]engine.LeagueStanding, len(teams)),
		Schedule:  BuildSchedule(len(teams)),
		Table:     table,
		RootSeed:  seed,
		Scheduler: SchedulerWorkStealing,
		Workers:   4,
	}
	copy(l.Rosters, rosters)
	l.initialRosters = make([]engine.Roster, len(rosters))
	copy(l.initialRosters, rosters)

	for i := range l.Teams {
		l.Standings[i] = engine.LeagueStanding{Team: l.Teams[i]}
		l.Teamsheets[i] = teamsheet.AutoSelect(&l.Rosters[i], engine.TacticNormal)
	}
	return l
}

// ResetAll implements reset_all(league): standings and rosters revert
// to their initial snapshot and every teamsheet is rebuilt, so a
// second play_season with the same seed reproduces the first's final
// table bit-for-bit (§8).
func (l *League) ResetAll() {
	for i := range l.Standings {
		l.Standings[i].Reset()
	}
	copy(l.Rosters, l.initialRosters)
	for i := range l.Teams {
		l.Teamsheets[i] = teamsheet.AutoSelect(&l.Rosters[i], engine.TacticNormal)
	}
}

// matchIndex derives a stable index for a fixture so RNG streams are
// reproducible regardless of scheduling order or thread count (§5):
// weekIdx and slot together uniquely identify a match within the season.
func matchIndex(weekIdx, slot int) int {
	return weekIdx*1000 + slot
}

// PlayWeek implements play_week(league, week) (§4.8): every fixture in
// the week runs (independently; disjoint team sets), then standings
// and rosters update, then each team's teamsheet is rebuilt.
func (l *League) PlayWeek(weekIdx int) {
	week := l.Schedule[weekIdx]

	type outcome struct {
		fixture        engine.Fixture
		homeMS, awayMS *engine.MatchState
	}
	outcomes := make([]outcome, len(week))

	run := func(slot int) {
		f := week[slot]
		if f.Home == 0 || f.Away == 0 {
			return // ghost-team bye
		}
		homeIdx, awayIdx := f.Home-1, f.Away-1
		homeMS := engine.BuildMatchState(&l.Rosters[homeIdx], &l.Teamsheets[homeIdx])
		awayMS := engine.BuildMatchState(&l.Rosters[awayIdx], &l.Teamsheets[awayIdx])
		rng := matchsim.NewStream(l.RootSeed, matchIndex(weekIdx, slot))
		matchsim.PlayMatch(homeMS, awayMS, l.Table, rng)
		outcomes[slot] = outcome{fixture: f, homeMS: homeMS, awayMS: awayMS}
	}

	switch l.Scheduler {
	case SchedulerComposable:
		var wg sync.WaitGroup
		wg.Add(len(week))
		for slot := range week {
			slot := slot
			go func() {
				defer wg.Done()
				run(slot)
			}()
		}
		wg.Wait()
	default: // SchedulerWorkStealing
		jobs := make(chan int, len(week))
		for slot := range week {
			jobs <- slot
		}
		close(jobs)
		var wg sync.WaitGroup
		workers := l.Workers
		if workers < 1 {
			workers = 1
		}
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				for slot := range jobs {
					run(slot)
				}
			}()
		}
		wg.Wait()
	}

	// Fold results sequentially: deterministic order across matches in
	// a week is unspecified (§5), but standings/roster mutation must
	// not race, so it happens here on the caller's goroutine.
	for slot, o := range outcomes {
		if week[slot].Home == 0 || week[slot].Away == 0 {
			continue
		}
		homeIdx, awayIdx := o.fixture.Home-1, o.fixture.Away-1
		homeGls := sumGoals(o.homeMS)
		awayGls := sumGoals(o.awayMS)
		UpdateTable(l.Standings, homeIdx, awayIdx, homeGls, awayGls)

		rng := matchsim.NewStream(l.RootSeed, matchIndex(weekIdx, slot)+1)
		rosterupdate.Update(&l.Rosters[homeIdx], o.homeMS, rng)
		rosterupdate.Update(&l.Rosters[awayIdx], o.awayMS, rng)

		// §4.8's auto_teamsheet re-selection is literally
		// auto_teamsheet(roster, tactic="N") — always Normal, not
		// whatever tactic the team happens to carry.
		l.Teamsheets[homeIdx] = teamsheet.AutoSelect(&l.Rosters[homeIdx], engine.TacticNormal)
		l.Teamsheets[awayIdx] = teamsheet.AutoSelect(&l.Rosters[awayIdx], engine.TacticNormal)
	}
}

func sumGoals(ms *engine.MatchState) int16 {
	var total int16
	for _, g := range ms.Gls {
		total += g
	}
	return total
}

// PlayGame plays a single fixture ad hoc, outside the week loop
// (§6 lifecycle op play_game), without touching standings.
func PlayGame(home, away *engine.Roster, homeSheet, awaySheet *engine.Teamsheet, table *tactics.Table, rng *rand.Rand) matchsim.Result {
	homeMS := engine.BuildMatchState(home, homeSheet)
	awayMS := engine.BuildMatchState(away, awaySheet)
	return matchsim.PlayMatch(homeMS, awayMS, table, rng)
}

// PlaySeason implements play_season(league) (§4.8): iterates every
// week strictly sequentially (§5), then ranks the final table.
func (l *League) PlaySeason() {
	for week := range l.Schedule {
		l.PlayWeek(week)
	}
	Rank(l.Standings)
}
