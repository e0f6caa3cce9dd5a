package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/GOAT858/Bid2Win/internal/engine"
)

type Config struct {
	HTTPAddr string
	LogLevel slog.Level

	Rules engine.Rules

	// Presentation timings; tests run with BotDelay zero.
	BotDelay       time.Duration
	AnnounceRound  time.Duration
	TrickHighlight time.Duration

	// Optional advisory oracle; unset API key disables it.
	OpenRouterAPIKey    string
	OpenRouterBaseURL   string
	OracleModel         string
	OracleFallbackModel []string
	OracleTimeout       time.Duration
}

// rulesFile is the YAML shape of a table preset. Absent fields keep their
// defaults, donegeon-style overlay.
type rulesFile struct {
	Seats             *int    `yaml:"seats"`
	HandSize          *int    `yaml:"hand_size"`
	BidMin            *int    `yaml:"bid_min"`
	BidMax            *int    `yaml:"bid_max"`
	BidStep           *int    `yaml:"bid_step"`
	BotBidCeiling     *int    `yaml:"bot_bid_ceiling"`
	DefaultBidderSeat *int    `yaml:"default_bidder_seat"`
	PartnerRank       *string `yaml:"partner_rank"`
	BotDelayMS        *int    `yaml:"bot_delay_ms"`
	Announcements     struct {
		RoundMS *int `yaml:"round_ms"`
		TrickMS *int `yaml:"trick_ms"`
	} `yaml:"announcements"`
}

func Load() (Config, error) {
	c := Config{
		HTTPAddr:          envOr("HTTP_ADDR", ":8080"),
		Rules:             engine.ClassicPreset(),
		BotDelay:          800 * time.Millisecond,
		AnnounceRound:     3500 * time.Millisecond,
		TrickHighlight:    1000 * time.Millisecond,
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL: envOr("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		OracleModel:       envOr("ORACLE_MODEL", "qwen/qwen3-4b:free"),
		OracleTimeout:     10 * time.Second,
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	if path := os.Getenv("RULES_FILE"); path != "" {
		if err := c.applyRulesFile(path); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("BOT_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BOT_DELAY %q: %w", v, err)
		}
		c.BotDelay = d
	}
	if v := os.Getenv("ORACLE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ORACLE_TIMEOUT %q: %w", v, err)
		}
		c.OracleTimeout = d
	}
	if v := os.Getenv("ORACLE_FALLBACK_MODELS"); v != "" {
		for _, m := range strings.Split(v, ",") {
			if m = strings.TrimSpace(m); m != "" {
				c.OracleFallbackModel = append(c.OracleFallbackModel, m)
			}
		}
	}

	if err := validateRules(c.Rules); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyRulesFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read rules file: %w", err)
	}
	var rf rulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return fmt.Errorf("parse rules file: %w", err)
	}

	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setInt(&c.Rules.Seats, rf.Seats)
	setInt(&c.Rules.HandSize, rf.HandSize)
	setInt(&c.Rules.BidMin, rf.BidMin)
	setInt(&c.Rules.BidMax, rf.BidMax)
	setInt(&c.Rules.BidStep, rf.BidStep)
	setInt(&c.Rules.BotBidCeiling, rf.BotBidCeiling)
	setInt(&c.Rules.DefaultBidderSeat, rf.DefaultBidderSeat)
	if rf.PartnerRank != nil {
		r, err := engine.ParseRank(*rf.PartnerRank)
		if err != nil {
			return fmt.Errorf("invalid partner_rank %q", *rf.PartnerRank)
		}
		c.Rules.PartnerRank = r
	}
	if rf.BotDelayMS != nil {
		c.BotDelay = time.Duration(*rf.BotDelayMS) * time.Millisecond
	}
	if rf.Announcements.RoundMS != nil {
		c.AnnounceRound = time.Duration(*rf.Announcements.RoundMS) * time.Millisecond
	}
	if rf.Announcements.TrickMS != nil {
		c.TrickHighlight = time.Duration(*rf.Announcements.TrickMS) * time.Millisecond
	}
	return nil
}

func validateRules(r engine.Rules) error {
	if r.Seats < 2 || r.Seats > 10 {
		return fmt.Errorf("seats must be between 2 and 10, got %d", r.Seats)
	}
	if r.HandSize < 1 || r.HandSize*r.Seats > engine.DeckSize {
		return fmt.Errorf("hand size %d does not fit a %d-seat deal", r.HandSize, r.Seats)
	}
	if r.BidStep <= 0 || r.BidMin <= 0 || r.BidMax < r.BidMin {
		return fmt.Errorf("invalid bid bounds %d..%d step %d", r.BidMin, r.BidMax, r.BidStep)
	}
	if r.DefaultBidderSeat < 0 || r.DefaultBidderSeat >= r.Seats {
		return fmt.Errorf("default bidder seat %d out of range", r.DefaultBidderSeat)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
