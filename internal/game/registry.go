package game

import "github.com/lox/blackjackforbots/internal/deck"

// ActionHandler executes a registered custom action against the engine.
// Returning false means the action had no effect and the hand stays
// active; true means it was handled and play proceeds as normal.
type ActionHandler func(engine *Engine, handIndex int) bool

// ActionValidator reports whether a custom action is currently legal for
// a hand
type ActionValidator func(hand *Hand) bool

// CustomAction pairs a handler with its legality check
type CustomAction struct {
	Name      Action
	Handler   ActionHandler
	Validator ActionValidator
}

// Registry holds the custom cards and actions contributed by extension
// code. It is handed to the engine at construction time; registrations
// after that point are picked up on the next shuffle (cards) or legal-
// action computation (actions).
type Registry struct {
	cards   []deck.Card
	actions []CustomAction
	index   map[Action]int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{index: make(map[Action]int)}
}

// RegisterCustomCard extends the card domain the shoe is built from.
// Four copies per deck are added, matching the standard ranks.
func (r *Registry) RegisterCustomCard(face string, value, count int) {
	r.cards = append(r.cards, deck.Custom(face, value, count))
}

// RegisterCustomAction registers a named action. A nil validator means
// the action is always legal for an active hand.
func (r *Registry) RegisterCustomAction(name string, handler ActionHandler, validator ActionValidator) {
	if validator == nil {
		validator = func(*Hand) bool { return true }
	}
	action := CustomAction{Name: Action(name), Handler: handler, Validator: validator}
	if i, ok := r.index[action.Name]; ok {
		r.actions[i] = action
		return
	}
	r.index[action.Name] = len(r.actions)
	r.actions = append(r.actions, action)
}

// CustomCards returns the registered card extensions in registration order
func (r *Registry) CustomCards() []deck.Card {
	cards := make([]deck.Card, len(r.cards))
	copy(cards, r.cards)
	return cards
}

// CustomActions returns the registered actions in registration order
func (r *Registry) CustomActions() []CustomAction {
	actions := make([]CustomAction, len(r.actions))
	copy(actions, r.actions)
	return actions
}

// Lookup finds a registered action by name
func (r *Registry) Lookup(name Action) (CustomAction, bool) {
	i, ok := r.index[name]
	if !ok {
		return CustomAction{}, false
	}
	return r.actions[i], true
}

// Clear removes all registrations
func (r *Registry) Clear() {
	r.cards = nil
	r.actions = nil
	r.index = make(map[Action]int)
}
