package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrUnavailable wraps failures of the chat platform.
var ErrUnavailable = errors.New("platform unavailable")

// MessageSource fetches a channel's messages posted since a point in time.
type MessageSource interface {
	FetchRecentMessages(ctx context.Context, channel string, since time.Time) ([]Message, error)
}

// Announcer delivers announcement text to a channel.
type Announcer interface {
	PostMessage(ctx context.Context, channel, text string) error
}

// historyPageSize is the conversations.history page limit; Slack caps it at 999.
const historyPageSize = 200

// SlackClient talks to the Slack Web API. It is the MessageSource, UserLookup
// and Announcer of a live run.
type SlackClient struct {
	api     *slack.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewSlackClient creates a client for token. lookupsPerMinute throttles
// users.info calls; zero or less disables throttling.
func NewSlackClient(token string, lookupsPerMinute float64, log *zap.Logger, opts ...slack.Option) *SlackClient {
	if log == nil {
		log = zap.NewNop()
	}
	limit := rate.Inf
	if lookupsPerMinute > 0 {
		limit = rate.Limit(lookupsPerMinute / 60)
	}
	return &SlackClient{
		api:     slack.New(token, opts...),
		limiter: rate.NewLimiter(limit, 1),
		log:     log,
	}
}

// FetchRecentMessages pages through conversations.history back to since.
func (c *SlackClient) FetchRecentMessages(ctx context.Context, channel string, since time.Time) ([]Message, error) {
	params := &slack.GetConversationHistoryParameters{
		ChannelID: channel,
		Oldest:    strconv.FormatInt(since.Unix(), 10),
		Limit:     historyPageSize,
	}
	var out []Message
	for {
		resp, err := c.api.GetConversationHistoryContext(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("%w: conversations.history %s: %v", ErrUnavailable, channel, err)
		}
		for _, m := range resp.Messages {
			out = append(out, Message{Text: m.Text, User: m.User, TS: m.Timestamp})
		}
		c.log.Debug("fetched history page",
			zap.String("channel", channel), zap.Int("messages", len(resp.Messages)), zap.Bool("has_more", resp.HasMore))
		if !resp.HasMore || resp.ResponseMetaData.NextCursor == "" {
			return out, nil
		}
		params.Cursor = resp.ResponseMetaData.NextCursor
	}
}

// LookupUser fetches a profile with users.info. Unknown users yield (nil, nil).
func (c *SlackClient) LookupUser(ctx context.Context, id string) (*User, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: users.info %s: %v", ErrUnavailable, id, err)
	}
	u, err := c.api.GetUserInfoContext(ctx, id)
	if err != nil {
		var serr slack.SlackErrorResponse
		if errors.As(err, &serr) && serr.Err == "user_not_found" {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: users.info %s: %v", ErrUnavailable, id, err)
	}
	return &User{RealName: u.Profile.RealName, DisplayName: u.Profile.DisplayName}, nil
}

// PostMessage sends text to channel with chat.postMessage.
func (c *SlackClient) PostMessage(ctx context.Context, channel, text string) error {
	_, ts, err := c.api.PostMessageContext(ctx, channel, slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("%w: chat.postMessage %s: %v", ErrUnavailable, channel, err)
	}
	c.log.Debug("posted message", zap.String("channel", channel), zap.String("ts", ts))
	return nil
}
