package main

import (
	"regexp"
	"strconv"
	"strings"
)

// Extractors turn a share text into a comparable score. They are total: text
// without the expected pattern scores 0.

var guessesRe = regexp.MustCompile(`(\d+)/6`)

// scoreGuesses scores a six-guess word puzzle. Fewer guesses score higher;
// "X/6" does not match and scores the same as 6/6.
func scoreGuesses(text string) float64 {
	m := guessesRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	g, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return float64((6 - g) * 10)
}

var gridRowRe = regexp.MustCompile(`(?m)^(:.+?:){4}$`)

// Base scores per solved category, hardest last.
var gridRowScores = map[string]int{
	strings.Repeat(":large_yellow_square:", 4): 1,
	strings.Repeat(":large_green_square:", 4):  2,
	strings.Repeat(":large_blue_square:", 4):   3,
	strings.Repeat(":large_purple_square:", 4): 4,
}

// scoreCategoryGrid scores a 4x4 category puzzle. Each row is one attempt;
// a solved row scores its category weighted by how early it came, so rows
// after the fourth add nothing. See
// https://www.nytimes.com/2024/02/19/us/how-i-designed-my-perfect-connections-solve.html
func scoreCategoryGrid(text string) float64 {
	score := 0
	for i, row := range gridRowRe.FindAllString(text, -1) {
		score += gridRowScores[row] * max(4-i, 0)
	}
	return float64(score)
}

var emojiRe = regexp.MustCompile(`:.+?:`)

const (
	themeWordEmoji = ":large_blue_circle:"
	spangramEmoji  = ":large_yellow_circle:"
	hintEmoji      = ":bulb:"
)

// scoreSequence scores a word-path puzzle: +1 per theme word, -1 per hint.
// Finding the spangram earlier adds a fraction that only breaks ties.
func scoreSequence(text string) float64 {
	emojis := emojiRe.FindAllString(text, -1)
	var withoutHints []string
	for _, e := range emojis {
		if e != hintEmoji {
			withoutHints = append(withoutHints, e)
		}
	}

	score := 0.0
	for _, e := range emojis {
		switch e {
		case themeWordEmoji:
			score++
		case hintEmoji:
			score--
		case spangramEmoji:
			pos := indexOf(withoutHints, spangramEmoji)
			score += float64(len(withoutHints)-pos) * 0.1
		}
	}
	return score
}

func indexOf(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return -1
}

var clockRe = regexp.MustCompile(`(\d+):(\d+)`)

// scoreTimer scores a timed puzzle as elapsed seconds; lower is better.
func scoreTimer(text string) float64 {
	m := clockRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	return float64(clockSeconds(m[1], m[2]))
}

func clockSeconds(minutes, seconds string) int {
	mm, _ := strconv.Atoi(minutes)
	ss, _ := strconv.Atoi(seconds)
	return mm*60 + ss
}

var flipsRe = regexp.MustCompile(`(?is)(\d+)\s+flips?\b.*?(\d+):(\d+)`)

// flipScorer scores a matching-pairs game where flip count dominates time:
// each flip above best costs more than any realistic solve time.
func flipScorer(best int) func(string) float64 {
	return func(text string) float64 {
		if m := flipsRe.FindStringSubmatch(text); m != nil {
			flips, _ := strconv.Atoi(m[1])
			return float64((flips-best)*1000 + clockSeconds(m[2], m[3]))
		}
		return scoreTimer(text)
	}
}

var totalScoreRe = regexp.MustCompile(`Total Score:\s*(-?\d+(?:\.\d+)?)`)

// scoreTotal reads a puzzle's own published score.
func scoreTotal(text string) float64 {
	m := totalScoreRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return f
}
