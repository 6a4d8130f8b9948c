package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
table {
  decks               = 8
  blackjack_payout    = 1.2
  starting_bankroll   = 1000
  min_bet             = 25
  max_bet             = 1000
  dealer_hits_soft_17 = false
  double_after_split  = false
  max_splits          = 2
  surrender_allowed   = false
  penetration         = 0.66
}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8, config.Decks)
	assert.Equal(t, 1.2, config.BlackjackPayout)
	assert.Equal(t, 1000, config.StartingBankroll)
	assert.Equal(t, 25, config.MinBet)
	assert.Equal(t, 1000, config.MaxBet)
	assert.False(t, config.DealerHitsSoft17)
	assert.False(t, config.DoubleAfterSplit)
	assert.Equal(t, 2, config.MaxSplits)
	assert.False(t, config.SurrenderAllowed)
	assert.Equal(t, 0.66, config.Penetration)
}

func TestLoadConfigPartialFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
table {
  decks   = 2
  min_bet = 10
}
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2, config.Decks)
	assert.Equal(t, 10, config.MinBet)
	assert.Equal(t, 1.5, config.BlackjackPayout)
	assert.Equal(t, 500, config.MaxBet)
	assert.Equal(t, 0.75, config.Penetration)
}

func TestLoadConfigParseError(t *testing.T) {
	path := writeConfig(t, `table { decks = `)
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no decks", func(c *Config) { c.Decks = 0 }},
		{"zero payout", func(c *Config) { c.BlackjackPayout = 0 }},
		{"zero min bet", func(c *Config) { c.MinBet = 0 }},
		{"max below min", func(c *Config) { c.MaxBet = 1 }},
		{"bankroll below min bet", func(c *Config) { c.StartingBankroll = 1 }},
		{"negative splits", func(c *Config) { c.MaxSplits = -1 }},
		{"penetration too high", func(c *Config) { c.Penetration = 1.5 }},
		{"penetration zero", func(c *Config) { c.Penetration = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			assert.Error(t, config.Validate())
		})
	}

	assert.NoError(t, DefaultConfig().Validate())
}
