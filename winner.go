package main

// SelectWinners reduces matches to the best-scoring subset for g. A strictly
// better score replaces the current leaders, an equal score joins them. Ties
// are never broken here.
func SelectWinners(matches []Message, g *Game) []Message {
	if len(matches) == 0 {
		return nil
	}
	winners := []Message{matches[0]}
	for _, m := range matches[1:] {
		best := g.Score(winners[0].Text)
		score := g.Score(m.Text)
		switch {
		case g.Better(score, best):
			winners = []Message{m}
		case score == best:
			winners = append(winners, m)
		}
	}
	return winners
}

// Outcome classifies how a game's contest ended.
type Outcome string

const (
	OutcomeNoMatch    Outcome = "no-match"
	OutcomeDefaultWin Outcome = "default-win"
	OutcomeWinners    Outcome = "winners"
)

// Contest is one game's submissions for one puzzle and who won it.
type Contest struct {
	Game     *Game
	PuzzleID string
	Matches  []Message
	Winners  []Message
}

// NewContest matches msgs against g's puzzle token and selects winners among
// the attributed submissions.
func NewContest(g *Game, token string, msgs []Message) *Contest {
	c := &Contest{Game: g, PuzzleID: token, Matches: authored(Match(msgs, g, token))}
	c.Winners = SelectWinners(c.Matches, g)
	return c
}

// Outcome reports how the contest ended.
func (c *Contest) Outcome() Outcome {
	switch len(c.Matches) {
	case 0:
		return OutcomeNoMatch
	case 1:
		return OutcomeDefaultWin
	}
	return OutcomeWinners
}

// Everyone reports whether every submission tied for first.
func (c *Contest) Everyone() bool {
	return len(c.Matches) > 1 && len(c.Winners) == len(c.Matches)
}

// WinnerIDs lists the winners' user ids in submission order.
func (c *Contest) WinnerIDs() []string {
	ids := make([]string, 0, len(c.Winners))
	for _, m := range c.Winners {
		ids = append(ids, m.User)
	}
	return ids
}
