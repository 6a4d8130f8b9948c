package game

import "github.com/lox/blackjackforbots/internal/deck"

// RoundState tracks a round through bet, deal, player turns, dealer play
// and resolution.
type RoundState int

const (
	RoundPlayerTurn RoundState = iota
	RoundDealerTurn
	RoundResolved
)

// String returns the string representation of a round state
func (s RoundState) String() string {
	switch s {
	case RoundPlayerTurn:
		return "player_turn"
	case RoundDealerTurn:
		return "dealer_turn"
	case RoundResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Outcome classifies the result of one player hand at resolution
type Outcome string

const (
	OutcomeWin        Outcome = "win"
	OutcomeBlackjack  Outcome = "blackjack"
	OutcomeDealerBust Outcome = "dealer_bust"
	OutcomeBust       Outcome = "bust"
	OutcomeLose       Outcome = "lose"
	OutcomePush       Outcome = "push"
	OutcomeSurrender  Outcome = "surrender"
)

// Won reports whether the outcome pays the player
func (o Outcome) Won() bool {
	return o == OutcomeWin || o == OutcomeBlackjack || o == OutcomeDealerBust
}

// Lost reports whether the outcome forfeits the bet. Surrender counts as
// a loss that pays back half the bet.
func (o Outcome) Lost() bool {
	return o == OutcomeLose || o == OutcomeBust || o == OutcomeSurrender
}

// Result records the resolution of one player hand
type Result struct {
	Cards   []deck.Card
	Bet     int
	Outcome Outcome
	Payout  int
}

// Round is the transient aggregate for one bet-to-resolution cycle. It is
// discarded once its results have been folded into the session stats.
type Round struct {
	Bet     int
	Hands   []*Hand
	Dealer  *Hand
	State   RoundState
	Results []Result

	// CardHistory lists every card dealt this round, in deal order
	CardHistory []deck.Card

	splits          int
	dealerBlackjack bool
}

// DealerUpcard returns the dealer's visible card. The first dealer card
// is the hole card and stays hidden until the dealer plays.
func (r *Round) DealerUpcard() deck.Card {
	return r.Dealer.cards[1]
}

// Splits returns the number of splits performed this round
func (r *Round) Splits() int {
	return r.splits
}

// AllTerminal reports whether every player hand has finished its turn
func (r *Round) AllTerminal() bool {
	for _, h := range r.Hands {
		if !h.Terminal() {
			return false
		}
	}
	return true
}

// allDead reports whether no player hand can still contest the dealer's
// total, letting the dealer skip drawing entirely. Busted and surrendered
// hands lose regardless; naturals win regardless, dealer blackjack having
// been ruled out by the peek.
func (r *Round) allDead() bool {
	for _, h := range r.Hands {
		if h.status != StatusBusted && h.status != StatusSurrendered && h.status != StatusBlackjack {
			return false
		}
	}
	return true
}

// TotalBet returns the sum of bets across all hands, including doubles
// and split branches.
func (r *Round) TotalBet() int {
	total := 0
	for _, h := range r.Hands {
		total += h.bet
	}
	return total
}

// TotalPayout returns the sum of payouts after resolution
func (r *Round) TotalPayout() int {
	total := 0
	for _, res := range r.Results {
		total += res.Payout
	}
	return total
}
