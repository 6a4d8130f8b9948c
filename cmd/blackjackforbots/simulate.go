package main

import (
	"fmt"
	"time"

	"github.com/lox/blackjackforbots/cmd/blackjackforbots/shared"
	"github.com/lox/blackjackforbots/internal/game"
	"github.com/lox/blackjackforbots/internal/simulator"
)

type SimulateCmd struct {
	Rounds   int           `default:"100000" help:"Number of rounds to simulate"`
	Strategy string        `default:"basic" help:"Strategy: basic, dealer, stand, rand"`
	Bet      int           `default:"10" help:"Flat bet per round"`
	Seed     int64         `default:"0" help:"RNG seed (0 for random)"`
	Workers  int           `default:"4" help:"Parallel worker sessions"`
	Timeout  time.Duration `default:"5m" help:"Abort the batch after this long"`
	Config   string        `help:"Table rules file (HCL)" default:"table.hcl" type:"path"`
	Debug    bool          `help:"Debug logging"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	table, err := game.LoadConfig(c.Config)
	if err != nil {
		return fmt.Errorf("loading table rules: %w", err)
	}

	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}

	fmt.Printf("Simulating %d rounds: %s strategy, %d unit bet (seed: %d, workers: %d)\n",
		c.Rounds, c.Strategy, c.Bet, c.Seed, c.Workers)

	sim := simulator.New(simulator.Config{
		Rounds:   c.Rounds,
		Bet:      c.Bet,
		Strategy: c.Strategy,
		Seed:     c.Seed,
		Workers:  c.Workers,
		Timeout:  c.Timeout,
		Table:    table,
		Logger:   logger,
	})

	ctx := shared.SetupSignalHandler(logger)
	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	simulator.PrintSummary(stats, c.Strategy)
	fmt.Printf("\nTotal time: %v (%.0f rounds/sec)\n",
		duration.Round(time.Millisecond),
		float64(stats.Rounds)/duration.Seconds())
	return nil
}
