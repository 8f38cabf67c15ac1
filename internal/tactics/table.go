// Package tactics loads and serves the pure-data multiplier tables that
// the contribution calculator consults: per-(tactic, position, skill)
// multipliers, and per-(own-tactic, opp-tactic, position, skill) bonus
// multipliers. Grounded on the teacher's line-oriented text-provider
// parsers (internal/providers/*.go in the DFS backend) adapted to this
// spec's bit-exact fixed-format text file (§6).
package tactics

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jstittsworth/pitchsim/internal/engine"
)

type multKey struct {
	tactic engine.Tactic
	group  engine.PositionGroup
	skill  engine.Skill
}

type bonusKey struct {
	ownTactic, oppTactic engine.Tactic
	group                engine.PositionGroup
	skill                engine.Skill
}

// Table holds the parsed multiplier and bonus rows. The zero Table
// behaves as "no rows loaded" — TactMult returns 1.0 and BonusMult
// returns 1.0, per §7's "missing bonus entries resolve to 1.0".
type Table struct {
	mults  map[multKey]float32
	bonus  map[bonusKey]float32
}

// NewTable returns an empty table (all lookups fall back to 1.0, §4.1).
func NewTable() *Table {
	return &Table{mults: make(map[multKey]float32), bonus: make(map[bonusKey]float32)}
}

// TactMult returns the multiplier for (tactic, group, skill). GK is
// always neutral and is never consulted by callers, but the table
// still answers 1.0 for it defensively.
func (t *Table) TactMult(tactic engine.Tactic, group engine.PositionGroup, skill engine.Skill) float32 {
	if group == engine.PosGK {
		return 1.0
	}
	if v, ok := t.mults[multKey{tactic, group, skill}]; ok {
		return v
	}
	return 1.0
}

// BonusMult returns the bonus multiplier for
// (ownTactic, oppTactic, group, skill), or 1.0 if no row matches.
func (t *Table) BonusMult(ownTactic, oppTactic engine.Tactic, group engine.PositionGroup, skill engine.Skill) float32 {
	if v, ok := t.bonus[bonusKey{ownTactic, oppTactic, group, skill}]; ok {
		return v
	}
	return 1.0
}

// RowCounts reports how many multiplier and bonus rows were loaded.
// Nothing in the loader checks these counts.
func (t *Table) RowCounts() (mults, bonusRows int) {
	return len(t.mults), len(t.bonus)
}

// Load parses the tactics file format from §6: lines starting with 'M'
// contribute "M <tactic> <position> <skill> <mult>" rows, lines
// starting with 'B' contribute
// "B <opp_tactic> <own_tactic> <position> <skill> <mult>" rows.
// Blank lines and lines starting with any other character are ignored.
func Load(r io.Reader) (*Table, error) {
	t := NewTable()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "M":
			if len(fields) != 5 {
				return nil, engine.NewParseError("malformed multiplier row", fmt.Sprintf("line %d", lineNo))
			}
			mult, err := strconv.ParseFloat(fields[4], 32)
			if err != nil {
				return nil, engine.NewParseError("non-numeric multiplier", fmt.Sprintf("line %d", lineNo))
			}
			t.mults[multKey{
				tactic: engine.Tactic(fields[1]),
				group:  engine.PositionGroup(fields[2]),
				skill:  engine.Skill(fields[3]),
			}] = float32(mult)
		case "B":
			if len(fields) != 6 {
				return nil, engine.NewParseError("malformed bonus row", fmt.Sprintf("line %d", lineNo))
			}
			mult, err := strconv.ParseFloat(fields[5], 32)
			if err != nil {
				return nil, engine.NewParseError("non-numeric bonus multiplier", fmt.Sprintf("line %d", lineNo))
			}
			t.bonus[bonusKey{
				oppTactic: engine.Tactic(fields[1]),
				ownTactic: engine.Tactic(fields[2]),
				group:     engine.PositionGroup(fields[3]),
				skill:     engine.Skill(fields[4]),
			}] = float32(mult)
		default:
			// ignore unknown prefixes rather than erroring: the upstream
			// file format is tolerant of comment lines.
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, engine.NewIOError("failed reading tactics file", err.Error())
	}
	return t, nil
}
