package main

import "strings"

// Message is the part of a channel message the referee looks at. User is
// empty when the platform did not attribute the message to anyone.
type Message struct {
	Text string `json:"text"`
	User string `json:"user,omitempty"`
	TS   string `json:"ts,omitempty"`
}

// Match keeps the messages that report on puzzle token of game g, in input
// order. Both the puzzle token and the game name must appear.
func Match(msgs []Message, g *Game, token string) []Message {
	var out []Message
	for _, m := range msgs {
		if m.Text == "" || token == "" {
			continue
		}
		if strings.Contains(m.Text, token) && g.Name.MatchString(m.Text) {
			out = append(out, m)
		}
	}
	return out
}

// authored drops messages without an author; they cannot be congratulated.
func authored(msgs []Message) []Message {
	var out []Message
	for _, m := range msgs {
		if m.User != "" {
			out = append(out, m)
		}
	}
	return out
}
