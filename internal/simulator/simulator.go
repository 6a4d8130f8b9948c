// Package simulator grinds out batches of rounds against a strategy and
// aggregates the results. Rounds are split across parallel workers, each
// with its own engine and deterministic seed, so a given seed always
// produces the same aggregate.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjackforbots/internal/game"
	"github.com/lox/blackjackforbots/internal/randutil"
	"github.com/lox/blackjackforbots/internal/strategy"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds   int
	Bet      int
	Strategy string
	Seed     int64
	Workers  int
	Timeout  time.Duration
	Table    *game.Config
	Logger   *log.Logger
	Clock    quartz.Clock
}

// Simulator runs blackjack round simulations
type Simulator struct {
	config Config
	clock  quartz.Clock
}

// New creates a simulator with the given configuration
func New(config Config) *Simulator {
	s := &Simulator{config: config, clock: config.Clock}
	if s.clock == nil {
		s.clock = quartz.NewReal()
	}
	if s.config.Table == nil {
		s.config.Table = game.DefaultConfig()
	}
	if s.config.Workers < 1 {
		s.config.Workers = 1
	}
	if s.config.Logger == nil {
		s.config.Logger = log.New(io.Discard)
	}
	return s
}

// Run executes the simulation and returns the merged statistics. A
// timeout aborts every worker; partial results are discarded.
func (s *Simulator) Run(ctx context.Context) (*Statistics, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var timedOut atomic.Bool
	if s.config.Timeout > 0 {
		timer := s.clock.AfterFunc(s.config.Timeout, func() {
			timedOut.Store(true)
			cancel()
		})
		defer timer.Stop()
	}

	workers := s.config.Workers
	if workers > s.config.Rounds {
		workers = s.config.Rounds
	}
	perWorker := make([]*Statistics, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		rounds := s.config.Rounds / workers
		if w < s.config.Rounds%workers {
			rounds++
		}

		// Seed space is partitioned per worker, leaving room for the
		// fresh-session seeds a busted bankroll consumes.
		seed := s.config.Seed + int64(w)*int64(s.config.Rounds+1)
		stats := &Statistics{}
		perWorker[w] = stats

		g.Go(func() error {
			return s.worker(ctx, seed, rounds, stats)
		})
	}

	if err := g.Wait(); err != nil {
		if timedOut.Load() {
			return nil, fmt.Errorf("simulation timed out after %v", s.config.Timeout)
		}
		return nil, err
	}

	merged := &Statistics{}
	for _, stats := range perWorker {
		merged.Merge(stats)
	}
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return merged, nil
}

// worker plays its share of rounds on a private engine. When the
// bankroll can no longer cover the bet it rebuys with a fresh session;
// per-round nets are independent so the statistics are unaffected.
func (s *Simulator) worker(ctx context.Context, seed int64, rounds int, stats *Statistics) error {
	strat, err := strategy.ForName(s.config.Strategy, randutil.New(seed))
	if err != nil {
		return err
	}

	eng := s.newEngine(seed)
	for r := 0; r < rounds; r++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if eng.Bankroll() < s.config.Bet {
			eng = s.newEngine(seed + int64(r) + 1)
		}

		result, err := s.playRound(eng, strat)
		if err != nil {
			return fmt.Errorf("round %d (seed %d): %w", r+1, seed, err)
		}
		stats.Add(result)
	}
	return nil
}

func (s *Simulator) newEngine(seed int64) *game.Engine {
	return game.NewEngine(s.config.Table, s.config.Logger, game.WithSeed(seed))
}

// playRound runs one bet-to-resolution cycle, asking the strategy for a
// decision at every active hand. A double or split the bankroll cannot
// fund falls back to a hit.
func (s *Simulator) playRound(eng *game.Engine, strat strategy.Strategy) (RoundResult, error) {
	bet := s.config.Bet
	round, err := eng.StartRound(bet)
	if err != nil {
		return RoundResult{}, err
	}

	for i := 0; i < len(round.Hands); i++ {
		for !round.Hands[i].Terminal() {
			legal, err := eng.LegalActions(i)
			if err != nil {
				return RoundResult{}, err
			}
			view := eng.State().Hands[i]

			action := strat.Decide(view, round.DealerUpcard(), legal)
			err = eng.ExecuteAction(i, action)
			if errors.Is(err, game.ErrInsufficientFunds) {
				err = eng.ExecuteAction(i, game.Hit)
			}
			if err != nil {
				return RoundResult{}, err
			}
		}
	}

	if err := eng.PlayDealer(); err != nil {
		return RoundResult{}, err
	}
	results, err := eng.ResolveRound()
	if err != nil {
		return RoundResult{}, err
	}

	result := RoundResult{
		NetUnits: float64(round.TotalPayout()-round.TotalBet()) / float64(bet),
		Hands:    len(results),
		Splits:   round.Splits(),
	}
	for _, res := range results {
		switch {
		case res.Outcome == game.OutcomeBlackjack:
			result.Blackjacks++
			result.Wins++
		case res.Outcome.Won():
			result.Wins++
		case res.Outcome.Lost():
			result.Losses++
		default:
			result.Pushes++
		}
	}
	return result, nil
}

// PrintSummary prints a summary of simulation results
func PrintSummary(stats *Statistics, strategyName string) {
	mean := stats.Mean()
	stdDev := stats.StdDev()
	stdErr := stats.StdError()
	low, high := stats.ConfidenceInterval95()

	fmt.Printf("\n=== RESULTS: %s strategy ===\n", strategyName)
	fmt.Printf("Rounds played: %d\n", stats.Rounds)
	fmt.Printf("Hands played: %d (%d splits)\n", stats.Hands, stats.Splits)
	fmt.Printf("Won/Lost/Pushed: %d/%d/%d\n", stats.Wins, stats.Losses, stats.Pushes)
	fmt.Printf("Blackjacks: %d\n", stats.Blackjacks)

	fmt.Printf("\n=== STATISTICAL RESULTS ===\n")
	fmt.Printf("Mean: %.4f units/round\n", mean)
	fmt.Printf("Std Dev: %.4f units\n", stdDev)
	fmt.Printf("Std Error: %.4f units\n", stdErr)
	fmt.Printf("95%% CI: [%.4f, %.4f] units/round\n", low, high)
	fmt.Printf("House edge: %.2f%%\n", stats.HouseEdge())
}
