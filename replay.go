package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tidwall/gjson"
)

// FileSource replays messages saved from Slack: either a conversations.history
// response ({"messages": [...]}) or a workspace export day file (a top-level
// array). The since bound is ignored since saved files are historical.
type FileSource struct {
	Path string
}

func (f FileSource) FetchRecentMessages(_ context.Context, _ string, _ time.Time) ([]Message, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	msgs, err := parseHistory(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	return msgs, nil
}

func parseHistory(data string) ([]Message, error) {
	if !gjson.Valid(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	root := gjson.Parse(data)
	list := root
	if !root.IsArray() {
		list = root.Get("messages")
		if !list.IsArray() {
			return nil, fmt.Errorf("no messages array")
		}
	}
	var out []Message
	list.ForEach(func(_, v gjson.Result) bool {
		out = append(out, Message{
			Text: v.Get("text").String(),
			User: v.Get("user").String(),
			TS:   v.Get("ts").String(),
		})
		return true
	})
	return out, nil
}

// printAnnouncer writes announcements instead of posting them (dry runs).
type printAnnouncer struct {
	w io.Writer
}

func (p printAnnouncer) PostMessage(_ context.Context, channel, text string) error {
	_, err := fmt.Fprintf(p.w, "[%s] %s\n", channel, text)
	return err
}
