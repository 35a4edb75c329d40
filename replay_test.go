package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const historyJSON = `{
  "ok": true,
  "messages": [
    {"type": "message", "user": "U1", "text": "Wordle 1,500 3/6", "ts": "1753700000.000100"},
    {"type": "message", "subtype": "bot_message", "text": "reminder: post your scores"},
    {"type": "message", "user": "U2", "text": "Wordle 1,500 4/6", "ts": "1753690000.000200"}
  ],
  "has_more": false
}`

func TestParseHistory(t *testing.T) {
	msgs, err := parseHistory(historyJSON)
	require.NoError(t, err)
	assert.Equal(t, []Message{
		{Text: "Wordle 1,500 3/6", User: "U1", TS: "1753700000.000100"},
		{Text: "reminder: post your scores"},
		{Text: "Wordle 1,500 4/6", User: "U2", TS: "1753690000.000200"},
	}, msgs)
}

func TestParseHistoryExportArray(t *testing.T) {
	msgs, err := parseHistory(`[{"user":"U1","text":"Strands #512"}]`)
	require.NoError(t, err)
	assert.Equal(t, []Message{{Text: "Strands #512", User: "U1"}}, msgs)
}

func TestParseHistoryRejectsGarbage(t *testing.T) {
	_, err := parseHistory(`{"messages": `)
	assert.Error(t, err)
	_, err = parseHistory(`{"ok": false, "error": "not_in_channel"}`)
	assert.Error(t, err)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte(historyJSON), 0o600))

	msgs, err := FileSource{Path: path}.FetchRecentMessages(context.Background(), "C1", time.Now())
	require.NoError(t, err)
	assert.Len(t, msgs, 3)

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}.FetchRecentMessages(context.Background(), "C1", time.Now())
	assert.Error(t, err)
}

func TestPrintAnnouncer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printAnnouncer{w: &buf}.PostMessage(context.Background(), "C2", "hello"))
	assert.Equal(t, "[C2] hello\n", buf.String())
}

func TestReplayDryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte(historyJSON), 0o600))

	var out bytes.Buffer
	cfg := DefaultConfig()
	cfg.SourceChannel, cfg.DestinationChannel = "C1", "C2"
	cfg.Replay, cfg.DryRun = path, true
	cfg.Games = []string{"Wordle"}
	require.NoError(t, cfg.Validate())

	ref, err := NewReferee(cfg, nil, &out)
	require.NoError(t, err)
	ref.Now = func() time.Time { return judgeDay }

	rep, err := ref.Run(context.Background(), RunParams{Source: "C1", Destination: "C2", Location: time.UTC})
	require.NoError(t, err)
	assert.True(t, rep.Results[0].Posted)
	assert.Equal(t, "[C2] 🏆 Congratulations *<@U1>* for winning Wordle #1,500! 🏆\n", out.String())
}
