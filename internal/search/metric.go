package search

import (
	"math"

	"github.com/jstittsworth/pitchsim/internal/engine"
	"github.com/jstittsworth/pitchsim/internal/league"
)

// RMSE implements rmse(baseline, reps) (§4.9): sum of squares over
// player-level stats {Gam,Sav,Ktk,Kps,Sht,Gls,Ass,DP} and team-level
// stats {P,W,D,L,GF,GA,GD,Pts}, of per-slot differences cast to
// 64-bit, then sqrt(sumSq / (n_teams * n_reps)).
func RMSE(baseline *league.League, reps []*league.League) float64 {
	var sumSq float64
	nTeams := len(baseline.Teams)

	for _, rep := range reps {
		for t := 0; t < nTeams; t++ {
			sumSq += playerSumSq(&baseline.Rosters[t], &rep.Rosters[t])
			sumSq += teamSumSq(&baseline.Standings[t], &rep.Standings[t])
		}
	}

	n := float64(nTeams) * float64(len(reps))
	if n == 0 {
		return 0
	}
	return math.Sqrt(sumSq / n)
}

func playerSumSq(a, b *engine.Roster) float64 {
	var sum float64
	for i := range a.Players {
		pa, pb := &a.Players[i], &b.Players[i]
		sum += sqDiff(pa.Gam, pb.Gam)
		sum += sqDiff(pa.Sav, pb.Sav)
		sum += sqDiff(pa.Ktk, pb.Ktk)
		sum += sqDiff(pa.Kps, pb.Kps)
		sum += sqDiff(pa.Sht, pb.Sht)
		sum += sqDiff(pa.Gls, pb.Gls)
		sum += sqDiff(pa.Ass, pb.Ass)
		sum += sqDiff(pa.DP, pb.DP)
	}
	return sum
}

func teamSumSq(a, b *engine.LeagueStanding) float64 {
	var sum float64
	sum += sqDiff(a.P, b.P)
	sum += sqDiff(a.W, b.W)
	sum += sqDiff(a.D, b.D)
	sum += sqDiff(a.L, b.L)
	sum += sqDiff(a.GF, b.GF)
	sum += sqDiff(a.GA, b.GA)
	sum += sqDiff(a.GD, b.GD)
	sum += sqDiff(a.Pts, b.Pts)
	return sum
}

func sqDiff(x, y int16) float64 {
	d := float64(x) - float64(y)
	return d * d
}
