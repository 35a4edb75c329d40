package main

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// NameMatcher decides whether a message text names a game. Literal and
// *regexp.Regexp both satisfy it.
type NameMatcher interface {
	MatchString(s string) bool
	String() string
}

// Literal matches by plain substring containment.
type Literal string

func (l Literal) MatchString(s string) bool { return strings.Contains(s, string(l)) }
func (l Literal) String() string            { return string(l) }

// Game describes one supported daily puzzle: how to recognize its share text
// and how to score it.
type Game struct {
	Key         string
	Name        NameMatcher
	DisplayName string
	Scheme      Scheme
	Score       func(text string) float64
	// LowerIsBetter reverses the comparison (timed games).
	LowerIsBetter bool
}

// Title is the name used in announcements.
func (g *Game) Title() string {
	if g.DisplayName != "" {
		return g.DisplayName
	}
	if l, ok := g.Name.(Literal); ok {
		return string(l)
	}
	return g.Key
}

// Better reports whether score a strictly beats score b for this game.
func (g *Game) Better(a, b float64) bool {
	if g.LowerIsBetter {
		return a < b
	}
	return a > b
}

// PuzzleID returns the token a submission for today's puzzle must contain.
func (g *Game) PuzzleID(today time.Time, dayOffset int) string {
	return g.Scheme.PuzzleID(today, dayOffset)
}

// Registry is the ordered, immutable catalog of games. Iteration follows
// registration order, which is also the announcement order.
type Registry struct {
	games []*Game
	byKey map[string]*Game
}

// NewRegistry validates and registers the given games in order.
func NewRegistry(games ...*Game) (*Registry, error) {
	r := &Registry{byKey: make(map[string]*Game, len(games))}
	for i, g := range games {
		switch {
		case g == nil:
			return nil, fmt.Errorf("game %d: nil definition", i)
		case g.Key == "":
			return nil, fmt.Errorf("game %d: empty key", i)
		case g.Name == nil:
			return nil, fmt.Errorf("game %s: missing name matcher", g.Key)
		case g.Scheme == nil:
			return nil, fmt.Errorf("game %s: missing puzzle scheme", g.Key)
		case g.Score == nil:
			return nil, fmt.Errorf("game %s: missing scorer", g.Key)
		}
		if _, dup := r.byKey[g.Key]; dup {
			return nil, fmt.Errorf("game %s: registered twice", g.Key)
		}
		r.games = append(r.games, g)
		r.byKey[g.Key] = g
	}
	return r, nil
}

// Games returns the registered games in registration order.
func (r *Registry) Games() []*Game {
	out := make([]*Game, len(r.games))
	copy(out, r.games)
	return out
}

// Lookup returns the game with the given key, matched case-insensitively.
func (r *Registry) Lookup(key string) (*Game, bool) {
	if g, ok := r.byKey[key]; ok {
		return g, true
	}
	for _, g := range r.games {
		if strings.EqualFold(g.Key, key) {
			return g, true
		}
	}
	return nil, false
}

// Only returns a registry restricted to keys, keeping registration order.
// An empty keys list returns r unchanged.
func (r *Registry) Only(keys []string) (*Registry, error) {
	if len(keys) == 0 {
		return r, nil
	}
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		g, ok := r.Lookup(k)
		if !ok {
			return nil, fmt.Errorf("unknown game %q", k)
		}
		want[g.Key] = true
	}
	var games []*Game
	for _, g := range r.games {
		if want[g.Key] {
			games = append(games, g)
		}
	}
	return NewRegistry(games...)
}

// referenceDate anchors every sequentially numbered puzzle.
var referenceDate = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// pairsBestFlips is the fewest flips that can clear a Pairs board (8 pairs).
const pairsBestFlips = 16

// DefaultRegistry returns the built-in catalog.
func DefaultRegistry() *Registry {
	seq := func(start int, grouped bool) Sequential {
		return Sequential{Start: start, Reference: referenceDate, Grouped: grouped}
	}
	r, err := NewRegistry(
		&Game{Key: "Wordle", Name: Literal("Wordle"), Scheme: seq(1292, true), Score: scoreGuesses},
		&Game{Key: "Connections", Name: Literal("Connections"), Scheme: seq(570, false), Score: scoreCategoryGrid},
		&Game{Key: "Strands", Name: Literal("Strands"), Scheme: seq(304, false), Score: scoreSequence},
		// A Pips or Pairs post without a clock or flip count scores 0 and so
		// beats every real result. This is intended; the post still has to name
		// the game and today's puzzle to be counted at all.
		&Game{
			Key: "PipsEasy", DisplayName: "Pips Easy", Name: regexp.MustCompile(`Pips.*Easy`),
			Scheme: seq(-228, false), Score: scoreTimer, LowerIsBetter: true,
		},
		&Game{
			Key: "PipsMedium", DisplayName: "Pips Medium", Name: regexp.MustCompile(`Pips.*Medium`),
			Scheme: seq(-228, false), Score: scoreTimer, LowerIsBetter: true,
		},
		&Game{
			Key: "PipsHard", DisplayName: "Pips Hard", Name: regexp.MustCompile(`Pips.*Hard`),
			Scheme: seq(-228, false), Score: scoreTimer, LowerIsBetter: true,
		},
		&Game{
			Key: "BracketCity", DisplayName: "Bracket City", Name: Literal("[Bracket City]"),
			Scheme: CalendarDate{Layout: "January 2, 2006"}, Score: scoreTotal,
		},
		&Game{
			Key: "Pairs", Name: Literal("Pairs"),
			Scheme: CalendarDate{Layout: "2006-01-02"}, Score: flipScorer(pairsBestFlips), LowerIsBetter: true,
		},
	)
	if err != nil {
		panic(err)
	}
	return r
}
