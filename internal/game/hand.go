package game

import (
	"fmt"
	"strings"

	"github.com/lox/blackjackforbots/internal/deck"
)

// Status tracks a hand through its lifecycle. A hand is terminal once it
// leaves StatusActive or holds a natural blackjack.
type Status int

const (
	StatusActive Status = iota
	StatusStood
	StatusBusted
	StatusDoubled
	StatusSurrendered
	StatusBlackjack
)

// String returns the string representation of a status
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusStood:
		return "stood"
	case StatusBusted:
		return "busted"
	case StatusDoubled:
		return "doubled"
	case StatusSurrendered:
		return "surrendered"
	case StatusBlackjack:
		return "blackjack"
	default:
		return "unknown"
	}
}

// Hand is an ordered sequence of cards belonging to one seat or split
// branch, with its bet and status. Value computation is cached until the
// next card is added.
type Hand struct {
	cards     []deck.Card
	bet       int
	status    Status
	fromSplit bool

	cachedTotal int
	cachedSoft  bool
	cacheValid  bool
}

// NewHand creates a hand holding the given cards with a bet attached
func NewHand(bet int, cards ...deck.Card) *Hand {
	h := &Hand{bet: bet}
	h.cards = append(h.cards, cards...)
	return h
}

// AddCard appends a card and invalidates the cached value
func (h *Hand) AddCard(card deck.Card) {
	h.cards = append(h.cards, card)
	h.cacheValid = false
}

// Cards returns a copy of the hand's cards in deal order
func (h *Hand) Cards() []deck.Card {
	cards := make([]deck.Card, len(h.cards))
	copy(cards, h.cards)
	return cards
}

// Bet returns the current bet riding on the hand
func (h *Hand) Bet() int {
	return h.bet
}

// Status returns the hand's lifecycle status
func (h *Hand) Status() Status {
	return h.status
}

// FromSplit reports whether the hand descends from a split. Split hands
// never qualify for the natural blackjack bonus.
func (h *Hand) FromSplit() bool {
	return h.fromSplit
}

// Value returns the best total for the hand and whether it is soft.
// Aces are summed as 11 and downgraded to 1 one at a time while the total
// busts; the hand is soft if an ace still counts as 11 in the final total.
func (h *Hand) Value() (total int, soft bool) {
	if h.cacheValid {
		return h.cachedTotal, h.cachedSoft
	}

	aces := 0
	for _, c := range h.cards {
		total += c.Value
		if c.IsAce() {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	soft = aces > 0

	h.cachedTotal = total
	h.cachedSoft = soft
	h.cacheValid = true
	return total, soft
}

// IsBust returns true when the best total exceeds 21
func (h *Hand) IsBust() bool {
	total, _ := h.Value()
	return total > 21
}

// IsBlackjack returns true for a natural: exactly two cards totalling 21
// on a hand that is not the product of a split.
func (h *Hand) IsBlackjack() bool {
	if len(h.cards) != 2 || h.fromSplit {
		return false
	}
	total, _ := h.Value()
	return total == 21
}

// Terminal reports whether the hand can take no further actions
func (h *Hand) Terminal() bool {
	return h.status != StatusActive || h.IsBlackjack()
}

// CanSplit returns true for a two-card pair of equal blackjack value when
// the round's split count has not reached the table limit.
func (h *Hand) CanSplit(maxSplits, splitsSoFar int) bool {
	return h.status == StatusActive &&
		len(h.cards) == 2 &&
		h.cards[0].Value == h.cards[1].Value &&
		splitsSoFar < maxSplits
}

// CanDouble returns true for an untouched two-card hand, subject to the
// double-after-split rule for hands descending from a split.
func (h *Hand) CanDouble(doubleAfterSplit bool) bool {
	if h.status != StatusActive || len(h.cards) != 2 {
		return false
	}
	if h.fromSplit && !doubleAfterSplit {
		return false
	}
	return true
}

// CanSurrender returns true when surrender is allowed, the hand has taken
// no prior action and is not a natural or a split branch.
func (h *Hand) CanSurrender(allowed bool) bool {
	return allowed &&
		h.status == StatusActive &&
		len(h.cards) == 2 &&
		!h.fromSplit &&
		!h.IsBlackjack()
}

// String renders the hand for logs, e.g. "A K (21, bet 100)"
func (h *Hand) String() string {
	faces := make([]string, len(h.cards))
	for i, c := range h.cards {
		faces[i] = c.String()
	}
	total, soft := h.Value()
	kind := ""
	if soft {
		kind = " soft"
	}
	return fmt.Sprintf("%s (%d%s, bet %d)", strings.Join(faces, " "), total, kind, h.bet)
}
