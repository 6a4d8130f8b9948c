package game

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for the engine's extension seam. These fire
// synchronously at the corresponding points of the round lifecycle.
const (
	EventTypeRoundStarted  EventType = "round_started"
	EventTypeCardDealt     EventType = "card_dealt"
	EventTypeDeckShuffled  EventType = "deck_shuffled"
	EventTypeRoundResolved EventType = "round_resolved"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a round
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartedEvent is published after a bet is accepted and the initial
// cards are dealt
type RoundStartedEvent struct {
	Bet       int
	timestamp time.Time
}

func (e RoundStartedEvent) EventType() EventType { return EventTypeRoundStarted }
func (e RoundStartedEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundStartedEvent creates a new round started event
func NewRoundStartedEvent(bet int) RoundStartedEvent {
	return RoundStartedEvent{Bet: bet, timestamp: time.Now()}
}

// CardDealtEvent is published for every card drawn from the shoe
type CardDealtEvent struct {
	Card      deck.Card
	timestamp time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// NewCardDealtEvent creates a new card dealt event
func NewCardDealtEvent(card deck.Card) CardDealtEvent {
	return CardDealtEvent{Card: card, timestamp: time.Now()}
}

// DeckShuffledEvent is published when the shoe is rebuilt and the running
// count resets
type DeckShuffledEvent struct {
	timestamp time.Time
}

func (e DeckShuffledEvent) EventType() EventType { return EventTypeDeckShuffled }
func (e DeckShuffledEvent) Timestamp() time.Time { return e.timestamp }

// NewDeckShuffledEvent creates a new deck shuffled event
func NewDeckShuffledEvent() DeckShuffledEvent {
	return DeckShuffledEvent{timestamp: time.Now()}
}

// RoundResolvedEvent is published once payouts for all hands are computed
type RoundResolvedEvent struct {
	Results   []Result
	timestamp time.Time
}

func (e RoundResolvedEvent) EventType() EventType { return EventTypeRoundResolved }
func (e RoundResolvedEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundResolvedEvent creates a new round resolved event
func NewRoundResolvedEvent(results []Result) RoundResolvedEvent {
	copied := make([]Result, len(results))
	copy(copied, results)
	return RoundResolvedEvent{Results: copied, timestamp: time.Now()}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription. Delivery is
// synchronous and fire-and-forget: no return value is consumed.
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus. A subscriber panic is
// recovered and logged so that mod code can never abort a round.
type SimpleEventBus struct {
	subscribers []EventSubscriber
	logger      *log.Logger
}

// NewEventBus creates a new event bus
func NewEventBus(logger *log.Logger) EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
		logger:      logger,
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		bus.deliver(subscriber, event)
	}
}

func (bus *SimpleEventBus) deliver(subscriber EventSubscriber, event GameEvent) {
	defer func() {
		if r := recover(); r != nil {
			bus.logger.Error("Event subscriber panicked",
				"event", event.EventType(),
				"panic", r)
		}
	}()
	subscriber.OnEvent(event)
}
