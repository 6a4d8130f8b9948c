package deck

import (
	"errors"
	rand "math/rand/v2"
)

// CardsPerDeck is the size of a single standard deck
const CardsPerDeck = 52

// ErrEmptyShoe is returned by Draw when no cards remain. The caller is
// expected to Shuffle and retry; the engine treats this as recoverable.
var ErrEmptyShoe = errors.New("shoe is empty")

// Shoe holds the pool of cards dealt across rounds until penetration
// forces a reshuffle. Drawing maintains the Hi-Lo running count
// incrementally.
type Shoe struct {
	cards        []Card
	fixed        []Card // non-nil for rigged shoes; Shuffle restores this order
	rng          *rand.Rand
	decks        int
	penetration  float64
	extras       []Card
	capacity     int
	runningCount int
}

// NewShoe builds a shuffled shoe of decks x 52 cards plus four copies per
// deck of each extra (registered custom) card, and resets the running
// count. Penetration is the fraction of the shoe dealt before a reshuffle
// is required.
func NewShoe(decks int, penetration float64, rng *rand.Rand, extras ...Card) *Shoe {
	if decks < 1 {
		decks = 1
	}
	s := &Shoe{
		rng:         rng,
		decks:       decks,
		penetration: penetration,
		extras:      extras,
	}
	s.rebuild()
	s.capacity = len(s.cards)
	s.shuffle()
	return s
}

// NewShoeFromCards builds a shoe that deals the given cards in order.
// It never reports NeedsShuffle; Shuffle restores the original order.
// Used to rig deals in tests.
func NewShoeFromCards(cards ...Card) *Shoe {
	fixed := make([]Card, len(cards))
	copy(fixed, cards)
	s := &Shoe{
		fixed:       fixed,
		penetration: 1.0,
		capacity:    len(fixed),
	}
	s.cards = append(s.cards, fixed...)
	return s
}

func (s *Shoe) rebuild() {
	s.cards = s.cards[:0]
	for d := 0; d < s.decks; d++ {
		for _, rank := range standardRanks {
			for i := 0; i < 4; i++ {
				s.cards = append(s.cards, New(rank))
			}
		}
		for _, extra := range s.extras {
			for i := 0; i < 4; i++ {
				s.cards = append(s.cards, extra)
			}
		}
	}
}

func (s *Shoe) shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Shuffle restores the shoe to its full size, reorders it and resets the
// running count to zero.
func (s *Shoe) Shuffle() {
	if s.fixed != nil {
		s.cards = append(s.cards[:0], s.fixed...)
	} else {
		s.rebuild()
		s.shuffle()
	}
	s.runningCount = 0
}

// Draw removes and returns the next card, updating the running count by
// the card's weight. Returns ErrEmptyShoe when no cards remain.
func (s *Shoe) Draw() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrEmptyShoe
	}
	card := s.cards[0]
	s.cards = s.cards[1:]
	s.runningCount += card.Count
	return card, nil
}

// Remaining returns the number of undealt cards
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Capacity returns the full size of the shoe after a shuffle
func (s *Shoe) Capacity() int {
	return s.capacity
}

// NeedsShuffle reports whether the remaining fraction of the shoe has
// dropped below 1 - penetration.
func (s *Shoe) NeedsShuffle() bool {
	if s.capacity == 0 {
		return false
	}
	return float64(len(s.cards))/float64(s.capacity) < 1-s.penetration
}

// RunningCount returns the Hi-Lo running count since the last shuffle
func (s *Shoe) RunningCount() int {
	return s.runningCount
}

// TrueCount normalizes the running count by the estimated number of decks
// remaining, clamped to at least one deck.
func (s *Shoe) TrueCount() float64 {
	decksLeft := float64(len(s.cards)) / CardsPerDeck
	if decksLeft < 1 {
		decksLeft = 1
	}
	return float64(s.runningCount) / decksLeft
}
