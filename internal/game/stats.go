package game

// Stats accumulates result counters across the rounds of one session.
// The engine is the only writer; everyone else reads snapshots. A stats
// value lives for the whole session and is only reset by starting a new
// session.
type Stats struct {
	HandsPlayed     int
	HandsWon        int
	HandsLost       int
	HandsPushed     int
	Blackjacks      int
	TotalWagered    int
	MaxBankroll     int
	CurrentBankroll int
	SessionProfit   int

	startingBankroll int
}

// NewStats creates session stats anchored to the starting bankroll
func NewStats(startingBankroll int) *Stats {
	return &Stats{
		MaxBankroll:      startingBankroll,
		CurrentBankroll:  startingBankroll,
		startingBankroll: startingBankroll,
	}
}

// Record folds one resolved round into the counters. Pure accumulation:
// it never rejects input. Hands played counts resulting hands, so a split
// round contributes one per branch.
func (s *Stats) Record(results []Result, bankroll int) {
	s.HandsPlayed += len(results)
	for _, res := range results {
		s.TotalWagered += res.Bet
		switch {
		case res.Outcome == OutcomeBlackjack:
			s.Blackjacks++
			s.HandsWon++
		case res.Outcome.Won():
			s.HandsWon++
		case res.Outcome.Lost():
			s.HandsLost++
		default:
			s.HandsPushed++
		}
	}

	s.CurrentBankroll = bankroll
	if bankroll > s.MaxBankroll {
		s.MaxBankroll = bankroll
	}
	s.SessionProfit = bankroll - s.startingBankroll
}

// Snapshot returns a read-only copy for prompts and summaries
func (s *Stats) Snapshot() Stats {
	return *s
}

// WinRate returns the fraction of hands won, zero before any hand
func (s *Stats) WinRate() float64 {
	if s.HandsPlayed == 0 {
		return 0
	}
	return float64(s.HandsWon) / float64(s.HandsPlayed)
}
