package game

import (
	"testing"

	"github.com/lox/blackjackforbots/internal/deck"
)

func cards(ranks ...deck.Rank) []deck.Card {
	out := make([]deck.Card, len(ranks))
	for i, r := range ranks {
		out[i] = deck.New(r)
	}
	return out
}

func handOf(ranks ...deck.Rank) *Hand {
	return NewHand(10, cards(ranks...)...)
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name  string
		ranks []deck.Rank
		total int
		soft  bool
	}{
		{"hard total", []deck.Rank{deck.Ten, deck.Seven}, 17, false},
		{"soft ace", []deck.Rank{deck.Ace, deck.Six}, 17, true},
		{"natural", []deck.Rank{deck.Ace, deck.King}, 21, true},
		{"ace downgrades", []deck.Rank{deck.Ace, deck.Six, deck.Ten}, 17, false},
		{"two aces", []deck.Rank{deck.Ace, deck.Ace}, 12, true},
		{"two aces hit", []deck.Rank{deck.Ace, deck.Ace, deck.Nine}, 21, true},
		{"all aces downgraded", []deck.Rank{deck.Ace, deck.Ace, deck.Ten, deck.Nine}, 21, false},
		{"bust", []deck.Rank{deck.Ten, deck.Nine, deck.Five}, 24, false},
		{"bust with downgraded ace", []deck.Rank{deck.Ace, deck.Ten, deck.Six, deck.Nine}, 26, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, soft := handOf(tt.ranks...).Value()
			if total != tt.total || soft != tt.soft {
				t.Errorf("Value() = (%d, %v), want (%d, %v)", total, soft, tt.total, tt.soft)
			}
		})
	}
}

func TestHandValueRecomputedAfterHit(t *testing.T) {
	h := handOf(deck.Ace, deck.Six)
	if total, soft := h.Value(); total != 17 || !soft {
		t.Fatalf("Value() = (%d, %v), want (17, true)", total, soft)
	}

	// The cached value must invalidate when a card lands
	h.AddCard(deck.New(deck.Ten))
	if total, soft := h.Value(); total != 17 || soft {
		t.Errorf("Value() after hit = (%d, %v), want (17, false)", total, soft)
	}

	// Repeated reads are stable
	if total, _ := h.Value(); total != 17 {
		t.Errorf("second Value() = %d, want 17", total)
	}
}

func TestIsBlackjack(t *testing.T) {
	if !handOf(deck.Ace, deck.Queen).IsBlackjack() {
		t.Error("A Q should be a natural")
	}
	if handOf(deck.Ace, deck.Six, deck.Four).IsBlackjack() {
		t.Error("three-card 21 is not a natural")
	}

	split := handOf(deck.Ace, deck.King)
	split.fromSplit = true
	if split.IsBlackjack() {
		t.Error("21 on a split branch is not a natural")
	}
}

func TestTerminal(t *testing.T) {
	h := handOf(deck.Ten, deck.Seven)
	if h.Terminal() {
		t.Error("active hand should not be terminal")
	}
	h.status = StatusStood
	if !h.Terminal() {
		t.Error("stood hand should be terminal")
	}

	if !handOf(deck.Ace, deck.King).Terminal() {
		t.Error("natural should be terminal without any action")
	}
}

func TestCanSplit(t *testing.T) {
	pair := handOf(deck.Eight, deck.Eight)
	if !pair.CanSplit(3, 0) {
		t.Error("8 8 should be splittable")
	}
	if pair.CanSplit(3, 3) {
		t.Error("split limit reached")
	}
	if pair.CanSplit(0, 0) {
		t.Error("max_splits 0 disables splitting")
	}

	// Equal value, not equal rank
	if !handOf(deck.King, deck.Ten).CanSplit(3, 0) {
		t.Error("K 10 are both ten-value and should be splittable")
	}
	if handOf(deck.Eight, deck.Nine).CanSplit(3, 0) {
		t.Error("8 9 is not a pair")
	}

	three := handOf(deck.Eight, deck.Eight)
	three.AddCard(deck.New(deck.Two))
	if three.CanSplit(3, 0) {
		t.Error("three-card hand cannot split")
	}
}

func TestCanDouble(t *testing.T) {
	h := handOf(deck.Five, deck.Six)
	if !h.CanDouble(true) {
		t.Error("fresh two-card hand should allow double")
	}

	h.AddCard(deck.New(deck.Two))
	if h.CanDouble(true) {
		t.Error("three-card hand cannot double")
	}

	split := handOf(deck.Five, deck.Six)
	split.fromSplit = true
	if !split.CanDouble(true) {
		t.Error("split hand should double when DAS is on")
	}
	if split.CanDouble(false) {
		t.Error("split hand cannot double when DAS is off")
	}
}

func TestCanSurrender(t *testing.T) {
	h := handOf(deck.Ten, deck.Six)
	if !h.CanSurrender(true) {
		t.Error("fresh hand should allow surrender")
	}
	if h.CanSurrender(false) {
		t.Error("table rule disables surrender")
	}

	h.AddCard(deck.New(deck.Two))
	if h.CanSurrender(true) {
		t.Error("surrender is only available before acting")
	}

	split := handOf(deck.Ten, deck.Six)
	split.fromSplit = true
	if split.CanSurrender(true) {
		t.Error("split branches cannot surrender")
	}

	if handOf(deck.Ace, deck.King).CanSurrender(true) {
		t.Error("a natural cannot surrender")
	}
}

func TestHandString(t *testing.T) {
	got := handOf(deck.Ace, deck.Six).String()
	want := "A 6 (17 soft, bet 10)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
