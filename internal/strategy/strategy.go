// Package strategy provides decision sources for non-interactive play.
// The simulator pairs a strategy with the session controller's quick-play
// path to grind out rounds without prompting anyone.
package strategy

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/lox/blackjackforbots/internal/game"
)

// Strategy picks one action for a hand given the dealer's up-card and the
// legal set computed by the engine.
type Strategy interface {
	Name() string
	Decide(hand game.HandView, dealerUp deck.Card, legal []game.Action) game.Action
}

// ForName creates a strategy by its CLI name
func ForName(name string, rng *rand.Rand) (Strategy, error) {
	switch name {
	case "basic":
		return NewBasic(), nil
	case "dealer":
		return NewDealer(), nil
	case "stand":
		return NewStand(), nil
	case "rand":
		return NewRandom(rng), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

func has(legal []game.Action, action game.Action) bool {
	for _, a := range legal {
		if a == action {
			return true
		}
	}
	return false
}

// StandStrategy stands on everything. The floor for comparing anything
// else against.
type StandStrategy struct{}

// NewStand creates a strategy that always stands
func NewStand() *StandStrategy { return &StandStrategy{} }

func (s *StandStrategy) Name() string { return "stand" }

func (s *StandStrategy) Decide(game.HandView, deck.Card, []game.Action) game.Action {
	return game.Stand
}

// DealerStrategy mimics the house: hit below 17, stand otherwise
type DealerStrategy struct{}

// NewDealer creates a dealer-mimic strategy
func NewDealer() *DealerStrategy { return &DealerStrategy{} }

func (s *DealerStrategy) Name() string { return "dealer" }

func (s *DealerStrategy) Decide(hand game.HandView, _ deck.Card, legal []game.Action) game.Action {
	if hand.Total < 17 && has(legal, game.Hit) {
		return game.Hit
	}
	return game.Stand
}

// RandomStrategy picks uniformly from the legal set, restricted to the
// built-in actions
type RandomStrategy struct {
	rng *rand.Rand
}

// NewRandom creates a random strategy
func NewRandom(rng *rand.Rand) *RandomStrategy {
	return &RandomStrategy{rng: rng}
}

func (s *RandomStrategy) Name() string { return "rand" }

func (s *RandomStrategy) Decide(_ game.HandView, _ deck.Card, legal []game.Action) game.Action {
	builtin := make([]game.Action, 0, len(legal))
	for _, a := range legal {
		switch a {
		case game.Hit, game.Stand, game.Double, game.Split, game.Surrender:
			builtin = append(builtin, a)
		}
	}
	if len(builtin) == 0 {
		return game.Stand
	}
	return builtin[s.rng.IntN(len(builtin))]
}

// BasicStrategy plays a simplified version of the standard basic strategy
// chart: pair handling, soft totals, hard totals, and late surrender on
// hard 15/16 against strong up-cards.
type BasicStrategy struct{}

// NewBasic creates a basic strategy player
func NewBasic() *BasicStrategy { return &BasicStrategy{} }

func (s *BasicStrategy) Name() string { return "basic" }

func (s *BasicStrategy) Decide(hand game.HandView, dealerUp deck.Card, legal []game.Action) game.Action {
	up := dealerUp.Value

	if action, ok := s.pairAction(hand, up, legal); ok {
		return action
	}
	if action, ok := s.surrenderAction(hand, up, legal); ok {
		return action
	}
	if hand.Soft {
		return s.softAction(hand, up, legal)
	}
	return s.hardAction(hand, up, legal)
}

func (s *BasicStrategy) pairAction(hand game.HandView, up int, legal []game.Action) (game.Action, bool) {
	if !has(legal, game.Split) || len(hand.Cards) != 2 || hand.Cards[0].Value != hand.Cards[1].Value {
		return "", false
	}

	pair := hand.Cards[0].Value
	split := false
	switch {
	case hand.Cards[0].IsAce(), pair == 8:
		split = true
	case pair == 9:
		split = up <= 9 && up != 7
	case pair == 7:
		split = up <= 7
	case pair == 6:
		split = up <= 6
	case pair == 4:
		split = up == 5 || up == 6
	case pair == 2 || pair == 3:
		split = up <= 7
	}
	if split {
		return game.Split, true
	}
	return "", false
}

func (s *BasicStrategy) surrenderAction(hand game.HandView, up int, legal []game.Action) (game.Action, bool) {
	if !has(legal, game.Surrender) || hand.Soft {
		return "", false
	}
	if hand.Total == 16 && up >= 9 {
		return game.Surrender, true
	}
	if hand.Total == 15 && up == 10 {
		return game.Surrender, true
	}
	return "", false
}

func (s *BasicStrategy) softAction(hand game.HandView, up int, legal []game.Action) game.Action {
	switch {
	case hand.Total >= 19:
		return game.Stand
	case hand.Total == 18:
		if up >= 9 {
			return hitOr(legal, game.Stand)
		}
		if up >= 3 && up <= 6 && has(legal, game.Double) {
			return game.Double
		}
		return game.Stand
	case hand.Total >= 15 && up >= 4 && up <= 6 && has(legal, game.Double):
		return game.Double
	default:
		return hitOr(legal, game.Stand)
	}
}

func (s *BasicStrategy) hardAction(hand game.HandView, up int, legal []game.Action) game.Action {
	switch {
	case hand.Total >= 17:
		return game.Stand
	case hand.Total >= 13:
		if up <= 6 {
			return game.Stand
		}
		return hitOr(legal, game.Stand)
	case hand.Total == 12:
		if up >= 4 && up <= 6 {
			return game.Stand
		}
		return hitOr(legal, game.Stand)
	case hand.Total == 11:
		if has(legal, game.Double) {
			return game.Double
		}
		return hitOr(legal, game.Stand)
	case hand.Total == 10:
		if up <= 9 && has(legal, game.Double) {
			return game.Double
		}
		return hitOr(legal, game.Stand)
	case hand.Total == 9:
		if up >= 3 && up <= 6 && has(legal, game.Double) {
			return game.Double
		}
		return hitOr(legal, game.Stand)
	default:
		return hitOr(legal, game.Stand)
	}
}

func hitOr(legal []game.Action, fallback game.Action) game.Action {
	if has(legal, game.Hit) {
		return game.Hit
	}
	return fallback
}
