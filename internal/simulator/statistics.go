package simulator

import (
	"fmt"
	"math"
)

// RoundResult is one resolved round from a worker session
type RoundResult struct {
	NetUnits   float64 // net outcome in units of the base bet
	Hands      int
	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int
	Splits     int
}

// Statistics aggregates simulation results across rounds and workers
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64 // sum of squares for variance

	Hands      int
	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int
	Splits     int
}

// Add incorporates one round into the statistics
func (s *Statistics) Add(result RoundResult) {
	s.Rounds++
	s.SumNet += result.NetUnits
	s.SumNet2 += result.NetUnits * result.NetUnits
	s.Hands += result.Hands
	s.Wins += result.Wins
	s.Losses += result.Losses
	s.Pushes += result.Pushes
	s.Blackjacks += result.Blackjacks
	s.Splits += result.Splits
}

// Merge folds another worker's statistics into this one
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Hands += other.Hands
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.Blackjacks += other.Blackjacks
	s.Splits += other.Splits
}

// Mean returns the average net result per round in bet units
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of per-round results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// HouseEdge returns the house take as a positive percentage of the bet
func (s *Statistics) HouseEdge() float64 {
	return -s.Mean() * 100
}

// Validate checks the accounting for internal consistency
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid round count: %d", s.Rounds)
	}
	if s.Hands < s.Rounds {
		return fmt.Errorf("hands (%d) cannot be fewer than rounds (%d)", s.Hands, s.Rounds)
	}
	if total := s.Wins + s.Losses + s.Pushes; total != s.Hands {
		return fmt.Errorf("result ledger mismatch: %d wins + %d losses + %d pushes != %d hands",
			s.Wins, s.Losses, s.Pushes, s.Hands)
	}
	if s.Hands != s.Rounds+s.Splits {
		return fmt.Errorf("hands (%d) should equal rounds (%d) plus splits (%d)",
			s.Hands, s.Rounds, s.Splits)
	}
	return nil
}
