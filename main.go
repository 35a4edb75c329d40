//go:build !lambda

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var (
	configPath string
	offset     int
	games      []string
	dateFlag   string
	replayPath string
	dryRun     bool
	jsonOut    bool
	verbose    bool
	logFile    string
	lookback   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "puzzle-winners [source] [destination] [dayOffset]",
	Short: "Announce the daily puzzle winners of a Slack channel",
	Long: `Reads the last few days of a Slack channel, finds the share texts for
today's Wordle, Connections, Strands, Pips, Bracket City and Pairs puzzles,
and posts one congratulation per game to the destination channel.

Positional arguments override SLACK_CHANNEL_SOURCE, SLACK_CHANNEL_DESTINATION
and DAY_OFFSET. Flags must come before them, so negative offsets work:

  puzzle-winners --dry-run C012SOURCE C034DEST -1`,
	Args:          cobra.MaximumNArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.SetInterspersed(false)
	f.StringVar(&configPath, "config", "", "YAML config file")
	f.IntVar(&offset, "offset", 0, "day offset (-1 = yesterday's puzzles)")
	f.StringSliceVar(&games, "games", nil, "only judge these games (e.g. Wordle,Connections)")
	f.StringVar(&dateFlag, "date", "", "judge as if today were this date (YYYY-MM-DD)")
	f.StringVar(&replayPath, "replay", "", "read messages from a saved conversations.history JSON file")
	f.BoolVar(&dryRun, "dry-run", false, "print announcements instead of posting them")
	f.BoolVar(&jsonOut, "json", false, "print the run report as JSON")
	f.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	f.StringVar(&logFile, "log-file", "", "also write logs to this rotating file")
	f.DurationVar(&lookback, "lookback", 0, "how much channel history to read (default 72h)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, &cfg, args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Verbose, cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ref, err := NewReferee(cfg, logger, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}
	if dateFlag != "" {
		day, err := time.ParseInLocation(time.DateOnly, dateFlag, params.Location)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", dateFlag, err)
		}
		ref.Now = func() time.Time { return day.Add(12 * time.Hour) }
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rep, runErr := ref.Run(ctx, params)
	if rep != nil {
		out := cmd.OutOrStdout()
		if jsonOut {
			if err := writeJSON(out, rep); err != nil {
				return err
			}
		} else {
			printTable(out, rep)
		}
	}
	return runErr
}

// applyFlags layers CLI flags and positional arguments over cfg.
func applyFlags(cmd *cobra.Command, cfg *Config, args []string) error {
	f := cmd.Flags()
	if f.Changed("offset") {
		cfg.DayOffset = offset
	}
	if f.Changed("games") {
		cfg.Games = games
	}
	if f.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if f.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if f.Changed("lookback") {
		cfg.Lookback = lookback
	}
	cfg.Replay = replayPath
	cfg.DryRun = dryRun

	if len(args) > 0 {
		cfg.SourceChannel = args[0]
	}
	if len(args) > 1 {
		cfg.DestinationChannel = args[1]
	}
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid dayOffset %q", args[2])
		}
		cfg.DayOffset = n
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
