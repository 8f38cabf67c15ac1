// Package dataload assembles the external-collaborator file formats of
// §6 into the in-memory values init_league needs: the team vector from
// league.dat and each team's roster from ROSTER_DIR. Grounded on the
// teacher's migrate command's directory-walking seed idiom
// (cmd/migrate/main.go reads a fixed set of files at startup and
// fails fast on the first unreadable one).
package dataload

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jstittsworth/pitchsim/internal/engine"
	"github.com/jstittsworth/pitchsim/internal/rosterio"
	"github.com/jstittsworth/pitchsim/internal/rosterfeed"
)

// LoadTeams reads league.dat, sorts every line lexicographically, and
// keeps the first nTeams (§6).
func LoadTeams(leagueFile string, nTeams int) ([]string, error) {
	f, err := os.Open(leagueFile)
	if err != nil {
		return nil, engine.NewIOError("failed to open league file", err.Error())
	}
	defer f.Close()

	var teams []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		teams = append(teams, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, engine.NewIOError("failed reading league file", err.Error())
	}

	sort.Strings(teams)
	if len(teams) > nTeams {
		teams = teams[:nTeams]
	}
	if len(teams) < nTeams {
		return nil, engine.NewConfigError(fmt.Sprintf("league file has %d teams, need %d", len(teams), nTeams))
	}
	return teams, nil
}

// LoadRosters reads "<team>.roster" out of rosterDir for every team in
// teams, in the same order.
func LoadRosters(rosterDir string, teams []string) ([]engine.Roster, error) {
	rosters := make([]engine.Roster, len(teams))
	for i, team := range teams {
		path := filepath.Join(rosterDir, team+".roster")
		f, err := os.Open(path)
		if err != nil {
			return nil, engine.NewIOError(fmt.Sprintf("failed to open roster file for %s", team), err.Error())
		}
		roster, err := rosterio.Read(f, team)
		f.Close()
		if err != nil {
			return nil, err
		}
		rosters[i] = roster
	}
	return rosters, nil
}

// LoadRostersRemote fetches each team's roster over the optional
// remote feed instead of ROSTER_DIR, falling back to the local
// directory for any team the feed fails to serve (the feed is meant to
// seed fresher rosters ahead of a run, not to be a hard dependency).
func LoadRostersRemote(ctx context.Context, fetcher *rosterfeed.Fetcher, rosterDir string, teams []string) ([]engine.Roster, error) {
	rosters := make([]engine.Roster, len(teams))
	for i, team := range teams {
		r, err := fetcher.FetchRoster(ctx, team)
		if err == nil {
			rosters[i] = r
			continue
		}
		local, localErr := LoadRosters(rosterDir, []string{team})
		if localErr != nil {
			return nil, fmt.Errorf("roster feed failed for %s (%w) and no local fallback (%v)", team, err, localErr)
		}
		rosters[i] = local[0]
	}
	return rosters, nil
}

// SaveRosters implements the lifecycle op save_rosters(league) (§6):
// writes each roster back to "<team>.roster" in rosterDir.
func SaveRosters(rosterDir string, teams []string, rosters []engine.Roster) error {
	for i, team := range teams {
		path := filepath.Join(rosterDir, team+".roster")
		f, err := os.Create(path)
		if err != nil {
			return engine.NewIOError(fmt.Sprintf("failed to create roster file for %s", team), err.Error())
		}
		err = rosterio.Write(f, &rosters[i])
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
