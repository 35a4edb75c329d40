package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// DefaultLookback is how far back a run reads the source channel.
const DefaultLookback = 72 * time.Hour

// RunParams are the per-invocation inputs of a run.
type RunParams struct {
	Source      string
	Destination string
	DayOffset   int
	Lookback    time.Duration
	// Location decides which calendar day "today" is.
	Location *time.Location
}

// ContestResult summarizes one game of a run.
type ContestResult struct {
	Game     string   `json:"game"`
	PuzzleID string   `json:"puzzleId"`
	Outcome  Outcome  `json:"outcome"`
	Matches  int      `json:"matches"`
	Winners  []string `json:"winners,omitempty"`
	Posted   bool     `json:"posted"`
	Error    string   `json:"error,omitempty"`
}

// Report is the JSON-serializable result of a run.
type Report struct {
	RunID     string          `json:"runId"`
	Date      string          `json:"date"`
	DayOffset int             `json:"dayOffset"`
	Messages  int             `json:"messages"`
	Results   []ContestResult `json:"results"`
}

// Referee runs one round of winner announcements.
type Referee struct {
	Games  *Registry
	Source MessageSource
	Names  *NameCache
	Sink   Announcer
	Log    *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Run fetches the source channel once and announces each game's winners in
// registry order. Failing to fetch aborts the run; failing to post one
// announcement does not stop the others, and all post errors are returned
// joined once every game has been processed.
func (r *Referee) Run(ctx context.Context, p RunParams) (*Report, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	loc := p.Location
	if loc == nil {
		loc = time.Local
	}
	lookback := p.Lookback
	if lookback <= 0 {
		lookback = DefaultLookback
	}

	runID := uuid.NewString()
	log = log.With(zap.String("run_id", runID))
	today := now().In(loc)

	msgs, err := r.Source.FetchRecentMessages(ctx, p.Source, today.Add(-lookback))
	if err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}
	log.Info("fetched messages", zap.String("channel", p.Source), zap.Int("count", len(msgs)))

	report := &Report{
		RunID:     runID,
		Date:      today.Format(time.DateOnly),
		DayOffset: p.DayOffset,
		Messages:  len(msgs),
	}
	var errs []error
	for _, g := range r.Games.Games() {
		res, err := r.judge(ctx, log, g, today, msgs, p)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s #%s: %w", g.Key, res.PuzzleID, err))
		}
		report.Results = append(report.Results, res)
	}
	return report, errors.Join(errs...)
}

func (r *Referee) judge(ctx context.Context, log *zap.Logger, g *Game, today time.Time, msgs []Message, p RunParams) (ContestResult, error) {
	token := g.PuzzleID(today, p.DayOffset)
	log = log.With(zap.String("game", g.Key), zap.String("puzzle", token))
	log.Debug("looking for submissions")

	c := NewContest(g, token, msgs)
	res := ContestResult{Game: g.Key, PuzzleID: token, Outcome: c.Outcome(), Matches: len(c.Matches)}

	switch c.Outcome() {
	case OutcomeNoMatch:
		log.Info("no submissions, no winner this time")
		return res, nil
	case OutcomeDefaultWin:
		log.Info("single submission wins by default", zap.String("user", c.Matches[0].User))
		res.Winners = c.WinnerIDs()
		return res, nil
	}

	res.Winners = c.WinnerIDs()
	log.Info("selected winners", zap.Int("matches", len(c.Matches)), zap.Strings("winners", res.Winners))

	var names []string
	if !c.Everyone() {
		names = r.Names.ResolveAll(ctx, c.WinnerIDs())
	}
	text := Announcement(c, names)
	log.Info("announcing", zap.String("text", text))

	if err := r.Sink.PostMessage(ctx, p.Destination, text); err != nil {
		log.Error("post announcement failed", zap.Error(err))
		res.Error = err.Error()
		return res, err
	}
	res.Posted = true
	return res, nil
}

// NewReferee wires a Referee from cfg: Slack for live runs, a FileSource when
// replaying, and a printing sink on dry runs.
func NewReferee(cfg Config, log *zap.Logger, out io.Writer) (*Referee, error) {
	if log == nil {
		log = zap.NewNop()
	}
	games, err := DefaultRegistry().Only(cfg.Games)
	if err != nil {
		return nil, err
	}

	var slackClient *SlackClient
	if cfg.SlackToken != "" {
		var opts []slack.Option
		if cfg.SlackAPIURL != "" {
			opts = append(opts, slack.OptionAPIURL(cfg.SlackAPIURL))
		}
		slackClient = NewSlackClient(cfg.SlackToken, cfg.LookupsPerMinute, log, opts...)
	}

	r := &Referee{Games: games, Log: log}
	var lookup UserLookup = idLookup{}
	if slackClient != nil {
		r.Source, r.Sink, lookup = slackClient, slackClient, slackClient
	}
	if cfg.Replay != "" {
		r.Source = FileSource{Path: cfg.Replay}
	}
	if cfg.DryRun {
		r.Sink = printAnnouncer{w: out}
	}
	if r.Source == nil || r.Sink == nil {
		return nil, errors.New("slack token is required unless replaying a dry run")
	}
	r.Names = NewNameCache(lookup, log)
	return r, nil
}

// idLookup names users by their id when no Slack client is configured.
type idLookup struct{}

func (idLookup) LookupUser(_ context.Context, id string) (*User, error) {
	return &User{DisplayName: "<@" + id + ">"}, nil
}
