package main

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds everything a run needs. Later sources override earlier ones:
// DefaultConfig, then the YAML file, then the environment, then CLI arguments.
type Config struct {
	// SlackToken is the bot token (xoxb-...). Never read from the YAML file.
	SlackToken string `env:"SLACK_TOKEN" yaml:"-"`
	// SlackAPIURL overrides the Web API base URL (tests, proxies).
	SlackAPIURL string `env:"SLACK_API_URL" yaml:"slack_api_url"`
	// SourceChannel is where players post their results.
	SourceChannel string `env:"SLACK_CHANNEL_SOURCE" yaml:"source_channel"`
	// DestinationChannel receives the announcements.
	DestinationChannel string `env:"SLACK_CHANNEL_DESTINATION" yaml:"destination_channel"`
	// DayOffset shifts which day's puzzle is judged (-1 = yesterday).
	DayOffset int `env:"DAY_OFFSET" yaml:"day_offset"`
	// Lookback is how much channel history is read.
	Lookback time.Duration `env:"LOOKBACK" yaml:"lookback"`
	// Timezone decides the calendar day; empty means the local zone.
	Timezone string `env:"PUZZLE_TIMEZONE" yaml:"timezone"`
	// Games restricts the run to these registry keys; empty means all.
	Games []string `env:"GAMES" envSeparator:"," yaml:"games"`
	// LookupsPerMinute throttles users.info calls.
	LookupsPerMinute float64 `env:"SLACK_LOOKUPS_PER_MINUTE" yaml:"lookups_per_minute"`
	// Verbose enables debug logging.
	Verbose bool `env:"VERBOSE" yaml:"verbose"`
	// LogFile additionally writes JSON logs to a rotating file.
	LogFile string `env:"LOG_FILE" yaml:"log_file"`

	// Replay reads messages from a saved history file instead of Slack.
	Replay string `yaml:"-"`
	// DryRun prints announcements instead of posting them.
	DryRun bool `yaml:"-"`
}

// DefaultConfig returns the defaults used before any source is applied.
func DefaultConfig() Config {
	return Config{
		Lookback:         DefaultLookback,
		LookupsPerMinute: 50,
	}
}

// LoadConfig applies the YAML file at path (if non-empty) and then the
// environment on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate reports configuration that cannot produce a run.
func (c Config) Validate() error {
	var errs []error
	if c.SourceChannel == "" {
		errs = append(errs, errors.New("source channel is not set (SLACK_CHANNEL_SOURCE)"))
	}
	if c.DestinationChannel == "" {
		errs = append(errs, errors.New("destination channel is not set (SLACK_CHANNEL_DESTINATION)"))
	}
	if c.SlackToken == "" && !(c.Replay != "" && c.DryRun) {
		errs = append(errs, errors.New("slack token is not set (SLACK_TOKEN)"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Params converts the configuration into run parameters.
func (c Config) Params() (RunParams, error) {
	loc, err := c.Location()
	if err != nil {
		return RunParams{}, err
	}
	return RunParams{
		Source:      c.SourceChannel,
		Destination: c.DestinationChannel,
		DayOffset:   c.DayOffset,
		Lookback:    c.Lookback,
		Location:    loc,
	}, nil
}
