package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildScheduleEveryPairTwiceOnceHome(t *testing.T) {
	const nTeams = 8
	sched := BuildSchedule(nTeams)

	counts := make(map[[2]int]int)
	homeCounts := make(map[[2]int]int)
	for _, week := range sched {
		seen := make(map[int]bool)
		for _, f := range week {
			assert.False(t, seen[f.Home], "team %d plays twice in one week", f.Home)
			assert.False(t, seen[f.Away], "team %d plays twice in one week", f.Away)
			seen[f.Home] = true
			seen[f.Away] = true

			key := pairKey(f.Home, f.Away)
			counts[key]++
			homeKey := [2]int{f.Home, f.Away}
			homeCounts[homeKey]++
		}
	}

	for i := 1; i <= nTeams; i++ {
		for j := i + 1; j <= nTeams; j++ {
			key := pairKey(i, j)
			assert.Equal(t, 2, counts[key], "pair (%d,%d) should meet exactly twice", i, j)
			assert.Equal(t, 1, homeCounts[[2]int{i, j}], "team %d should host %d exactly once", i, j)
			assert.Equal(t, 1, homeCounts[[2]int{j, i}], "team %d should host %d exactly once", j, i)
		}
	}
}

func TestBuildScheduleOddTeamsSkipsGhost(t *testing.T) {
	const nTeams = 7
	sched := BuildSchedule(nTeams)
	for _, week := range sched {
		for _, f := range week {
			assert.NotEqual(t, 0, f.Home)
			assert.NotEqual(t, 0, f.Away)
		}
		assert.LessOrEqual(t, len(week), nTeams/2)
	}
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
