// Package league drives the season: schedule construction, per-week
// match execution, standings maintenance and ranking. Worker fan-out is
// grounded on the teacher's analytics-worker goroutine/WaitGroup idiom
// (services/optimization-service/internal/analytics/worker/analytics_worker.go);
// the schedule's circle method is grounded on the pack's
// utakatalp-football-sim league scheduler.
package league

import (
	"sort"

	"github.com/jstittsworth/pitchsim/internal/engine"
)

// UpdateTable implements update_table(table, home_gls, away_gls,
// home_idx, away_idx) (§4.6): both rows advance by one played match.
func UpdateTable(table []engine.LeagueStanding, homeIdx, awayIdx int, homeGls, awayGls int16) {
	applyResult(&table[homeIdx], homeGls, awayGls)
	applyResult(&table[awayIdx], awayGls, homeGls)
}

func applyResult(row *engine.LeagueStanding, gf, ga int16) {
	row.P++
	row.GF += gf
	row.GA += ga
	switch {
	case gf > ga:
		row.W++
	case gf == ga:
		row.D++
	default:
		row.L++
	}
	row.GD = row.GF - row.GA
	row.Pts = 3*row.W + row.D
}

// Rank implements rank(table) (§4.6): assigns Place 1..N from one
// stable sort under (Pts desc, GD desc, GF+1 desc), so ties are broken
// strictly in that lexicographic order and rows equal on all three
// keep their table order.
func Rank(table []engine.LeagueStanding) {
	order := make([]int, len(table))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := &table[order[a]], &table[order[b]]
		if ra.Pts != rb.Pts {
			return ra.Pts > rb.Pts
		}
		if ra.GD != rb.GD {
			return ra.GD > rb.GD
		}
		return (ra.GF + 1) > (rb.GF + 1)
	})
	for place, idx := range order {
		table[idx].Place = place + 1
	}
}
