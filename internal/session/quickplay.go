package session

import (
	"fmt"

	"github.com/lox/blackjackforbots/internal/game"
)

// RoundSummary is the synchronous result of one quick-played round
type RoundSummary struct {
	Bet      int
	Results  []game.Result
	Net      int
	Bankroll int
}

// QuickPlay drives one full round without suspending, feeding decisions
// from a pre-supplied action list. Scripted actions outside the legal set
// fall back to stand, and an exhausted list stands every remaining hand.
// Used by the batch simulator and by tests.
func (c *Controller) QuickPlay(bet int, actions []game.Action) (*RoundSummary, error) {
	if c.state == stateOver {
		return nil, fmt.Errorf("session is over")
	}

	round, err := c.engine.StartRound(bet)
	if err != nil {
		return nil, err
	}

	next := 0
	for i := 0; i < len(round.Hands); i++ {
		for !round.Hands[i].Terminal() {
			legal, err := c.engine.LegalActions(i)
			if err != nil {
				return nil, err
			}

			action := game.Stand
			if next < len(actions) {
				action = actions[next]
				next++
			}
			if !legalContains(legal, action) {
				action = game.Stand
			}
			if err := c.engine.ExecuteAction(i, action); err != nil {
				return nil, err
			}
		}
	}

	if err := c.engine.PlayDealer(); err != nil {
		return nil, err
	}
	results, err := c.engine.ResolveRound()
	if err != nil {
		return nil, err
	}

	summary := &RoundSummary{
		Bet:      bet,
		Results:  results,
		Net:      round.TotalPayout() - round.TotalBet(),
		Bankroll: c.engine.Bankroll(),
	}

	// Keep the interactive protocol consistent for callers that mix modes
	c.afterRound()
	return summary, nil
}

func legalContains(actions []game.Action, action game.Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
