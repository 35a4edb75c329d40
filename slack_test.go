package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// slackServer fakes the Web API methods the client uses. History is served
// one page per entry, chained with cursors "1", "2", ...
type slackServer struct {
	*httptest.Server

	mu       sync.Mutex
	pages    [][]map[string]string
	users    map[string]map[string]any
	postErr  string
	cursors  []string
	posted   []string
	channels []string
}

func newSlackServer(t *testing.T) *slackServer {
	t.Helper()
	s := &slackServer{users: map[string]map[string]any{}}
	mux := http.NewServeMux()
	mux.HandleFunc("/conversations.history", s.history)
	mux.HandleFunc("/users.info", s.userInfo)
	mux.HandleFunc("/chat.postMessage", s.postMessage)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *slackServer) client() *SlackClient {
	return NewSlackClient("xoxb-test", 0, zap.NewNop(), slack.OptionAPIURL(s.URL+"/"))
}

func (s *slackServer) history(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cursor := r.FormValue("cursor")
	s.cursors = append(s.cursors, cursor)
	page := 0
	if cursor != "" {
		if _, err := fmt.Sscan(cursor, &page); err != nil {
			writeBody(w, map[string]any{"ok": false, "error": "invalid_cursor"})
			return
		}
	}
	if page >= len(s.pages) {
		writeBody(w, map[string]any{"ok": true, "messages": []any{}})
		return
	}
	body := map[string]any{"ok": true, "messages": s.pages[page]}
	if page+1 < len(s.pages) {
		body["has_more"] = true
		body["response_metadata"] = map[string]string{"next_cursor": fmt.Sprint(page + 1)}
	}
	writeBody(w, body)
}

func (s *slackServer) userInfo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := r.FormValue("user")
	u, ok := s.users[id]
	switch {
	case id == "UERR":
		writeBody(w, map[string]any{"ok": false, "error": "fatal_error"})
	case !ok:
		writeBody(w, map[string]any{"ok": false, "error": "user_not_found"})
	default:
		writeBody(w, map[string]any{"ok": true, "user": u})
	}
}

func (s *slackServer) postMessage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.postErr != "" {
		writeBody(w, map[string]any{"ok": false, "error": s.postErr})
		return
	}
	s.channels = append(s.channels, r.FormValue("channel"))
	s.posted = append(s.posted, r.FormValue("text"))
	writeBody(w, map[string]any{"ok": true, "channel": r.FormValue("channel"), "ts": "1753693200.000100"})
}

func (s *slackServer) servePages(pages ...[]map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = pages
}

func (s *slackServer) failPosts(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postErr = code
}

func (s *slackServer) addUser(id, realName, displayName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = map[string]any{
		"id":      id,
		"profile": map[string]string{"real_name": realName, "display_name": displayName},
	}
}

func writeBody(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func TestSlackClientFetchFollowsCursor(t *testing.T) {
	srv := newSlackServer(t)
	srv.servePages(
		[]map[string]string{{"type": "message", "user": "U1", "text": "Wordle 1,500 3/6", "ts": "1753693200.000100"}},
		[]map[string]string{{"type": "message", "user": "U2", "text": "Wordle 1,500 4/6", "ts": "1753690000.000200"}},
		[]map[string]string{{"type": "message", "user": "U3", "text": "Strands #512", "ts": "1753680000.000300"}},
	)

	msgs, err := srv.client().FetchRecentMessages(context.Background(), "CSRC", judgeDay.Add(-DefaultLookback))
	require.NoError(t, err)
	assert.Equal(t, []Message{
		{Text: "Wordle 1,500 3/6", User: "U1", TS: "1753693200.000100"},
		{Text: "Wordle 1,500 4/6", User: "U2", TS: "1753690000.000200"},
		{Text: "Strands #512", User: "U3", TS: "1753680000.000300"},
	}, msgs)
	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, []string{"", "1", "2"}, srv.cursors)
}

func TestSlackClientFetchError(t *testing.T) {
	srv := newSlackServer(t)
	srv.Close()

	_, err := srv.client().FetchRecentMessages(context.Background(), "CSRC", judgeDay)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSlackClientLookupUser(t *testing.T) {
	srv := newSlackServer(t)
	srv.addUser("U1", "Ada Lovelace", "ada")
	c := srv.client()
	ctx := context.Background()

	u, err := c.LookupUser(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, &User{RealName: "Ada Lovelace", DisplayName: "ada"}, u)

	u, err = c.LookupUser(ctx, "UGONE")
	assert.NoError(t, err, "user_not_found is not an outage")
	assert.Nil(t, u)

	_, err = c.LookupUser(ctx, "UERR")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorContains(t, err, "fatal_error")
}

func TestSlackClientLookupUserThrottleCanceled(t *testing.T) {
	srv := newSlackServer(t)
	srv.addUser("U1", "Ada Lovelace", "ada")
	c := NewSlackClient("xoxb-test", 1, zap.NewNop(), slack.OptionAPIURL(srv.URL+"/"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.LookupUser(ctx, "U1")
	require.NoError(t, err, "first lookup uses the burst")

	_, err = c.LookupUser(ctx, "U1")
	assert.ErrorIs(t, err, ErrUnavailable, "waiting past the deadline counts as unavailable")
}

func TestSlackClientPostMessage(t *testing.T) {
	srv := newSlackServer(t)
	c := srv.client()

	require.NoError(t, c.PostMessage(context.Background(), "CDST", "hello"))
	srv.mu.Lock()
	assert.Equal(t, []string{"CDST"}, srv.channels)
	assert.Equal(t, []string{"hello"}, srv.posted)
	srv.mu.Unlock()

	srv.failPosts("channel_not_found")
	err := c.PostMessage(context.Background(), "CGONE", "hello")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorContains(t, err, "channel_not_found")
}
