package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GOAT858/Bid2Win/internal/engine"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, engine.ClassicPreset(), c.Rules)
	assert.Equal(t, 800*time.Millisecond, c.BotDelay)
	assert.Equal(t, 3500*time.Millisecond, c.AnnounceRound)
	assert.Equal(t, 1000*time.Millisecond, c.TrickHighlight)
	assert.Empty(t, c.OpenRouterAPIKey)
}

func TestLoadRulesFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
seats: 6
bid_max: 200
partner_rank: "K"
bot_delay_ms: 0
announcements:
  round_ms: 2000
`), 0o644))
	t.Setenv("RULES_FILE", path)

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6, c.Rules.Seats)
	assert.Equal(t, 200, c.Rules.BidMax)
	assert.Equal(t, engine.RankK, c.Rules.PartnerRank)
	assert.Equal(t, time.Duration(0), c.BotDelay)
	assert.Equal(t, 2*time.Second, c.AnnounceRound)
	// Untouched fields keep their defaults.
	assert.Equal(t, 100, c.Rules.BidMin)
	assert.Equal(t, 5, c.Rules.HandSize)
	assert.Equal(t, 1000*time.Millisecond, c.TrickHighlight)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BOT_DELAY", "50ms")
	t.Setenv("ORACLE_FALLBACK_MODELS", "a, b ,")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", c.HTTPAddr)
	assert.Equal(t, 50*time.Millisecond, c.BotDelay)
	assert.Equal(t, []string{"a", "b"}, c.OracleFallbackModel)
}

func TestLoadRejectsBadSeatCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seats: 11\n"), 0o644))
	t.Setenv("RULES_FILE", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsOversizedDeal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seats: 10\nhand_size: 6\n"), 0o644))
	t.Setenv("RULES_FILE", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	_, err := Load()
	assert.Error(t, err)
}
