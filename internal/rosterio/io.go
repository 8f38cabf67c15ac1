// Package rosterio reads and writes the fixed-width roster file format
// from §6. It is one of the external I/O collaborators the spec treats
// as out of core scope ("straightforward I/O and formatting... no
// interesting design"); this package gives it a complete, bit-exact
// implementation so round-trip tests (§8) have something to exercise.
package rosterio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jstittsworth/pitchsim/internal/engine"
)

// Column widths, in field order, from §6.
var widths = []int{13, 3, 4, 4, 3, 3, 3, 3, 3, 3, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4}

// headerBytes is the byte offset the §6 reader seeks past before
// splitting on newlines: two header lines of a fixed width each.
const headerBytes = 206

// Read parses a roster file and pads short rosters with placeholder
// entries up to engine.MaxPlayers.
func Read(r io.Reader, team string) (engine.Roster, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return engine.Roster{}, engine.NewIOError("failed reading roster file", err.Error())
	}
	if len(data) < headerBytes {
		return engine.Roster{}, engine.NewParseError("roster file shorter than header")
	}
	body := string(data[headerBytes:])

	var players []engine.Player
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, err := parseLine(line)
		if err != nil {
			return engine.Roster{}, err
		}
		if p.IsPlaceholder() {
			continue
		}
		players = append(players, p)
		if len(players) > engine.MaxPlayers {
			return engine.Roster{}, engine.NewCapacityError("roster exceeds MaxPlayers", team)
		}
	}
	return engine.NewRoster(team, players)
}

func parseLine(line string) (engine.Player, error) {
	cols, err := splitFixed(line, widths)
	if err != nil {
		return engine.Player{}, err
	}
	atoi := func(s string) (int16, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, engine.NewParseError("non-numeric rating", s)
		}
		return int16(v), nil
	}

	var p engine.Player
	var perr error
	field := func(i int) string { return strings.TrimSpace(cols[i]) }
	p.Name = field(0)
	if p.Age, perr = atoi(cols[1]); perr != nil {
		return p, perr
	}
	p.Nationality = field(2)
	p.PreferredSide = strings.TrimRight(cols[3], " ")

	vals := make([]int16, 0, 21)
	for i := 4; i < len(cols); i++ {
		v, err := atoi(cols[i])
		if err != nil {
			return p, err
		}
		vals = append(vals, v)
	}
	// order: St,Tk,Ps,Sh,Sm,Ag,KAb,TAb,PAb,SAb,Gam,Sav,Ktk,Kps,Sht,Gls,Ass,DP,Inj,Sus,Fit
	p.St, p.Tk, p.Ps, p.Sh, p.Sm, p.Ag = vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]
	p.KAb, p.TAb, p.PAb, p.SAb = vals[6], vals[7], vals[8], vals[9]
	p.Gam, p.Sav, p.Ktk, p.Kps, p.Sht, p.Gls, p.Ass = vals[10], vals[11], vals[12], vals[13], vals[14], vals[15], vals[16]
	p.DP, p.Inj, p.Sus, p.Fit = vals[17], vals[18], vals[19], vals[20]

	if p.Name == engine.PlaceholderName {
		return engine.NewPlaceholder(), nil
	}
	return p, nil
}

func splitFixed(line string, widths []int) ([]string, error) {
	cols := make([]string, len(widths))
	pos := 0
	for i, w := range widths {
		if pos+w > len(line) {
			// pad missing trailing whitespace-only columns
			if strings.TrimSpace(line[pos:]) == "" {
				cols[i] = ""
				pos = len(line)
				continue
			}
			return nil, engine.NewParseError("roster line too short")
		}
		cols[i] = line[pos : pos+w]
		pos += w
	}
	return cols, nil
}

// Write serializes a roster back to the fixed-width format, including
// its placeholder padding, so parse(write(roster)) round-trips (§8).
func Write(w io.Writer, r *engine.Roster) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, headerLegend()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(bw, strings.Repeat("-", 13+3+4+4+3*6+4*15-1)); err != nil {
		return err
	}
	// pad out to headerBytes so Read's seek-206 is exact on round trip.
	written := len(headerLegend()) + 1 + countDashes() + 1
	if written < headerBytes {
		if _, err := fmt.Fprint(bw, strings.Repeat(" ", headerBytes-written-1)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(bw); err != nil {
			return err
		}
	}

	for i := 0; i < engine.MaxPlayers; i++ {
		p := &r.Players[i]
		if err := writeLine(bw, p); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func headerLegend() string {
	return "Name         Age Nat PrsSt Tk Ps Sh Sm Ag KAb TAb PAb SAb Gam Sav Ktk Kps Sht Gls Ass  DP Inj Sus Fit"
}

func countDashes() int {
	return 13 + 3 + 4 + 4 + 3*6 + 4*15 - 1
}

func writeLine(w io.Writer, p *engine.Player) error {
	vals := []int16{p.St, p.Tk, p.Ps, p.Sh, p.Sm, p.Ag, p.KAb, p.TAb, p.PAb, p.SAb,
		p.Gam, p.Sav, p.Ktk, p.Kps, p.Sht, p.Gls, p.Ass, p.DP, p.Inj, p.Sus, p.Fit}
	line := fmt.Sprintf("%-13s%3d%4s%-4s", p.Name, p.Age, p.Nationality, p.PreferredSide)
	for i, v := range vals {
		if i < 6 {
			line += fmt.Sprintf("%3d", v) // St..Ag are 3 wide
		} else {
			line += fmt.Sprintf("%4d", v)
		}
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
