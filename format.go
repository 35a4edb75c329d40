package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Announcement composes the congratulation message for c. names are the
// winners' display names; they are ignored when everyone tied.
func Announcement(c *Contest, names []string) string {
	winners := "*everyone*"
	if !c.Everyone() {
		winners = "*" + strings.Join(names, "* and *") + "*"
	}
	return fmt.Sprintf("🏆 Congratulations %s for winning %s #%s! 🏆", winners, c.Game.Title(), c.PuzzleID)
}

// printTable writes a human-readable summary of a run.
func printTable(w io.Writer, rep *Report) {
	fmt.Fprintf(w, "Run %s  date=%s offset=%d messages=%d\n", rep.RunID, rep.Date, rep.DayOffset, rep.Messages)
	fmt.Fprintf(w, "%-14s %-18s %-12s %7s %7s %6s\n", "Game", "Puzzle", "Outcome", "Matches", "Winners", "Posted")
	fmt.Fprintf(w, "%-14s %-18s %-12s %7s %7s %6s\n",
		"--------------", "------------------", "------------", "-------", "-------", "------")
	posted := 0
	for _, r := range rep.Results {
		mark := "-"
		switch {
		case r.Posted:
			mark = "yes"
			posted++
		case r.Error != "":
			mark = "FAIL"
		}
		fmt.Fprintf(w, "%-14s %-18s %-12s %7d %7d %6s\n", r.Game, r.PuzzleID, r.Outcome, r.Matches, len(r.Winners), mark)
	}
	fmt.Fprintf(w, "%-14s %-18s %-12s %7s %7s %6d\n", "TOTAL", "", "", "", "", posted)
}

func writeJSON(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
