package main

import (
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Scheme turns a day into the puzzle identifier printed in share texts.
type Scheme interface {
	PuzzleID(today time.Time, dayOffset int) string
}

// Sequential numbers puzzles one per day from Start on Reference.
type Sequential struct {
	Start     int
	Reference time.Time
	// Grouped renders thousands separators ("1,500").
	Grouped bool
}

var groupedPrinter = message.NewPrinter(language.English)

func (s Sequential) PuzzleID(today time.Time, dayOffset int) string {
	n := s.Number(today, dayOffset)
	if s.Grouped {
		return groupedPrinter.Sprintf("%d", n)
	}
	return strconv.Itoa(n)
}

// Number is the unformatted puzzle number.
func (s Sequential) Number(today time.Time, dayOffset int) int {
	return s.Start + daysBetween(s.Reference, today) + dayOffset
}

// CalendarDate identifies puzzles by their date, rendered with a time layout.
type CalendarDate struct {
	Layout string
}

func (c CalendarDate) PuzzleID(today time.Time, dayOffset int) string {
	return today.AddDate(0, 0, dayOffset).Format(c.Layout)
}

// daysBetween counts calendar days from a to b, each read as a civil date in
// its own location.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
