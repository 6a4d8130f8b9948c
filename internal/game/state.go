package game

import "github.com/lox/blackjackforbots/internal/deck"

// HandView is a read-only projection of one player hand
type HandView struct {
	Cards     []deck.Card
	Total     int
	Soft      bool
	Bet       int
	Status    Status
	Blackjack bool
	Bust      bool
	FromSplit bool
}

// TableState is a read-only snapshot of the table for UIs and bots. The
// dealer's hole card only appears once the round has resolved.
type TableState struct {
	Hands            []HandView
	DealerUpcard     *deck.Card
	DealerCards      []deck.Card
	DealerTotal      int
	Bankroll         int
	RunningCount     int
	TrueCount        float64
	CanTakeInsurance bool
	RoundState       RoundState
	RoundComplete    bool
}

// State captures the current table state. Safe to hold across engine
// calls; it shares nothing with live round structures.
func (e *Engine) State() *TableState {
	state := &TableState{
		Bankroll:     e.bankroll,
		RunningCount: e.shoe.RunningCount(),
		TrueCount:    e.shoe.TrueCount(),
	}
	if e.round == nil {
		return state
	}

	state.RoundState = e.round.State
	state.RoundComplete = e.round.State == RoundResolved
	state.CanTakeInsurance = e.CanTakeInsurance()

	for _, hand := range e.round.Hands {
		total, soft := hand.Value()
		state.Hands = append(state.Hands, HandView{
			Cards:     hand.Cards(),
			Total:     total,
			Soft:      soft,
			Bet:       hand.bet,
			Status:    hand.status,
			Blackjack: hand.IsBlackjack(),
			Bust:      hand.IsBust(),
			FromSplit: hand.fromSplit,
		})
	}

	if len(e.round.Dealer.cards) >= 2 {
		up := e.round.DealerUpcard()
		state.DealerUpcard = &up
	}
	if state.RoundComplete {
		state.DealerCards = e.round.Dealer.Cards()
		state.DealerTotal, _ = e.round.Dealer.Value()
	}
	return state
}
