// Package teamsheetio reads and writes the teamsheet file format of §6:
// team name, tactic, 11 starters, 5 subs, and a penalty-kicker line.
package teamsheetio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jstittsworth/pitchsim/internal/engine"
)

// Read parses a teamsheet file.
func Read(r io.Reader) (engine.Teamsheet, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return engine.Teamsheet{}, engine.NewIOError("failed reading teamsheet file", err.Error())
	}
	if len(lines) < 22 {
		return engine.Teamsheet{}, engine.NewParseError("teamsheet file too short")
	}

	var sheet engine.Teamsheet
	sheet.Team = lines[0]
	sheet.Tactic = engine.Tactic(strings.TrimSpace(lines[1]))

	for i := 0; i < engine.NStarters; i++ {
		slot, err := parseSlotLine(lines[3+i])
		if err != nil {
			return sheet, err
		}
		sheet.Starters[i] = slot
	}
	for i := 0; i < engine.NSubs; i++ {
		slot, err := parseSlotLine(lines[15+i])
		if err != nil {
			return sheet, err
		}
		sheet.Subs[i] = slot
	}
	pkLine := strings.TrimPrefix(lines[21], "PK:")
	sheet.PenaltyKicker = strings.TrimSpace(pkLine)
	return sheet, nil
}

func parseSlotLine(line string) (engine.LineupSlot, error) {
	fields := strings.SplitN(strings.TrimSpace(line), " ", 2)
	if len(fields) != 2 {
		return engine.LineupSlot{}, engine.NewParseError("malformed teamsheet slot line", line)
	}
	pos := fields[0]
	if pos == "GK" {
		pos = "GK " // collapsing space restored: GK has a blank side
	}
	return engine.LineupSlot{PositionCode: pos, Name: fields[1]}, nil
}

// Write serializes a teamsheet back to the §6 format.
func Write(w io.Writer, sheet *engine.Teamsheet) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, sheet.Team)
	fmt.Fprintln(bw, string(sheet.Tactic))
	fmt.Fprintln(bw)
	for _, slot := range sheet.Starters {
		if err := writeSlotLine(bw, slot); err != nil {
			return err
		}
	}
	fmt.Fprintln(bw)
	for _, slot := range sheet.Subs {
		if err := writeSlotLine(bw, slot); err != nil {
			return err
		}
	}
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "PK: %s\n", sheet.PenaltyKicker)
	return bw.Flush()
}

func writeSlotLine(w io.Writer, slot engine.LineupSlot) error {
	pos := strings.TrimRight(slot.PositionCode, " ")
	_, err := fmt.Fprintf(w, "%s %s\n", pos, slot.Name)
	return err
}
