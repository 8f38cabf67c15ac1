// cmd/search runs a rating-search as a one-shot batch job, with no
// HTTP surface: load data, run the threshold-acceptance loop to
// completion, print the best ratings and RMSE; nothing is written to
// the database. Grounded on the teacher's cmd/migrate command-line
// shape (single LoadConfig call, fails fast to logrus.Fatalf), with
// options read through the flag package.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/pitchsim/internal/dataload"
	"github.com/jstittsworth/pitchsim/internal/league"
	"github.com/jstittsworth/pitchsim/internal/search"
	"github.com/jstittsworth/pitchsim/internal/tactics"
	"github.com/jstittsworth/pitchsim/pkg/config"
)

func main() {
	initMode := flag.String("init", "random", "initial ratings: random|percentile")
	seed := flag.Int64("seed", 0, "root seed (0 uses ROOT_SEED from config)")
	nreps := flag.Int("nreps", 0, "replica count (0 uses SEARCH_NREPS from config)")
	nsteps := flag.Int("nsteps", 0, "step count (0 uses SEARCH_NSTEPS from config)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	table, err := loadTacticsTable(cfg.TacticsFile)
	if err != nil {
		logrus.Fatalf("Failed to load tactics table: %v", err)
	}

	teams, err := dataload.LoadTeams(cfg.LeagueFile, cfg.NTeams)
	if err != nil {
		logrus.Fatalf("Failed to load league file: %v", err)
	}
	rosters, err := dataload.LoadRosters(cfg.RosterDir, teams)
	if err != nil {
		logrus.Fatalf("Failed to load rosters: %v", err)
	}

	rootSeed := cfg.RootSeed
	if *seed != 0 {
		rootSeed = *seed
	}

	searchCfg := search.Config{
		NReps:      cfg.SearchNReps,
		NSteps:     cfg.SearchNSteps,
		Thresh0:    cfg.SearchThresh0,
		ThreshD:    cfg.SearchThreshD,
		StepSize0:  cfg.SearchStepSize0,
		StaleLimit: cfg.SearchStaleLimit,
	}
	if *nreps > 0 {
		searchCfg.NReps = *nreps
	}
	if *nsteps > 0 {
		searchCfg.NSteps = *nsteps
	}

	baseline := league.InitLeague(teams, rosters, table, rootSeed)
	baseline.PlaySeason()

	rng := rand.New(rand.NewSource(rootSeed))
	var ratings *search.Ratings
	if *initMode == "percentile" {
		ratings = search.PercentileRatings(baseline.Rosters)
	} else {
		ratings = search.RandomRatings(rng, baseline.Rosters)
	}

	parallel := cfg.SearchParallel && searchCfg.NReps > 1
	eng := search.NewEngine(baseline, table, searchCfg, ratings, rootSeed, parallel)

	for !eng.Done() {
		result := eng.Step()
		logrus.WithFields(logrus.Fields{
			"step":      result.Step,
			"rmse":      result.RMSE,
			"accepted":  result.Accepted,
			"improved":  result.Improved,
			"restarted": result.Restarted,
		}).Info("rating-search step")
	}

	best, bestRMSE := eng.Best()
	out, err := json.MarshalIndent(best, "", "  ")
	if err != nil {
		logrus.Fatalf("Failed to marshal best ratings: %v", err)
	}

	fmt.Printf("best RMSE: %.4f\n", bestRMSE)
	fmt.Println(string(out))
}

func loadTacticsTable(path string) (*tactics.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tactics.Load(f)
}
