package game

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config enumerates the house rules for a table. Immutable after
// construction; the engine only reads it.
type Config struct {
	Decks            int     `hcl:"decks,optional"`
	BlackjackPayout  float64 `hcl:"blackjack_payout,optional"`
	StartingBankroll int     `hcl:"starting_bankroll,optional"`
	MinBet           int     `hcl:"min_bet,optional"`
	MaxBet           int     `hcl:"max_bet,optional"`
	DealerHitsSoft17 bool    `hcl:"dealer_hits_soft_17,optional"`
	DoubleAfterSplit bool    `hcl:"double_after_split,optional"`
	MaxSplits        int     `hcl:"max_splits,optional"`
	SurrenderAllowed bool    `hcl:"surrender_allowed,optional"`
	Penetration      float64 `hcl:"penetration,optional"`
}

// tableFile is the HCL file shape: a single table block
type tableFile struct {
	Table *Config `hcl:"table,block"`
}

// DefaultConfig returns the standard six-deck table rules
func DefaultConfig() *Config {
	return &Config{
		Decks:            6,
		BlackjackPayout:  1.5,
		StartingBankroll: 500,
		MinBet:           5,
		MaxBet:           500,
		DealerHitsSoft17: true,
		DoubleAfterSplit: true,
		MaxSplits:        3,
		SurrenderAllowed: true,
		Penetration:      0.75,
	}
}

// LoadConfig loads table rules from an HCL file, falling back to defaults
// for the file itself and for any omitted fields.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var parsed tableFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := parsed.Table
	if config == nil {
		return DefaultConfig(), nil
	}

	defaults := DefaultConfig()
	if config.Decks == 0 {
		config.Decks = defaults.Decks
	}
	if config.BlackjackPayout == 0 {
		config.BlackjackPayout = defaults.BlackjackPayout
	}
	if config.StartingBankroll == 0 {
		config.StartingBankroll = defaults.StartingBankroll
	}
	if config.MinBet == 0 {
		config.MinBet = defaults.MinBet
	}
	if config.MaxBet == 0 {
		config.MaxBet = defaults.MaxBet
	}
	if config.MaxSplits == 0 {
		config.MaxSplits = defaults.MaxSplits
	}
	if config.Penetration == 0 {
		config.Penetration = defaults.Penetration
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for internally consistent rules
func (c *Config) Validate() error {
	if c.Decks < 1 {
		return fmt.Errorf("decks must be at least 1, got %d", c.Decks)
	}
	if c.BlackjackPayout <= 0 {
		return fmt.Errorf("blackjack payout must be positive, got %v", c.BlackjackPayout)
	}
	if c.MinBet <= 0 {
		return fmt.Errorf("minimum bet must be positive, got %d", c.MinBet)
	}
	if c.MaxBet < c.MinBet {
		return fmt.Errorf("maximum bet %d is below minimum bet %d", c.MaxBet, c.MinBet)
	}
	if c.StartingBankroll < c.MinBet {
		return fmt.Errorf("starting bankroll %d cannot cover the minimum bet %d", c.StartingBankroll, c.MinBet)
	}
	if c.MaxSplits < 0 {
		return fmt.Errorf("max splits cannot be negative, got %d", c.MaxSplits)
	}
	if c.Penetration <= 0 || c.Penetration > 1 {
		return fmt.Errorf("penetration must be in (0, 1], got %v", c.Penetration)
	}
	return nil
}
