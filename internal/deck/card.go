package deck

// Rank represents a card's face token
type Rank string

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"
)

// blackjackValues maps each standard rank to its blackjack value.
// Aces are counted as 11 here; Hand.Value downgrades them to 1 as needed.
var blackjackValues = map[Rank]int{
	Two: 2, Three: 3, Four: 4, Five: 5, Six: 6,
	Seven: 7, Eight: 8, Nine: 9, Ten: 10,
	Jack: 10, Queen: 10, King: 10, Ace: 11,
}

// hiLoWeights maps each standard rank to its Hi-Lo count weight:
// +1 for low cards (2-6), 0 for neutral (7-9), -1 for tens and aces.
var hiLoWeights = map[Rank]int{
	Two: 1, Three: 1, Four: 1, Five: 1, Six: 1,
	Seven: 0, Eight: 0, Nine: 0,
	Ten: -1, Jack: -1, Queen: -1, King: -1, Ace: -1,
}

// standardRanks in display order
var standardRanks = []Rank{
	Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten,
	Jack, Queen, King, Ace,
}

// Card is an immutable card token. The blackjack value and Hi-Lo count
// weight travel with the card so that shoes can carry registered custom
// cards alongside the standard domain.
type Card struct {
	Rank  Rank
	Value int
	Count int
}

// New creates a card for a standard rank. It panics on an unknown rank
// since that indicates a programming error; custom faces go through Custom.
func New(rank Rank) Card {
	value, ok := blackjackValues[rank]
	if !ok {
		panic("deck: unknown rank " + string(rank))
	}
	return Card{Rank: rank, Value: value, Count: hiLoWeights[rank]}
}

// Custom creates a card outside the standard domain, carrying its own
// blackjack value and count weight. Used by the custom-card registration
// seam consulted when a shoe is built.
func Custom(face string, value, count int) Card {
	return Card{Rank: Rank(face), Value: value, Count: count}
}

// String returns the face token of the card
func (c Card) String() string {
	return string(c.Rank)
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// IsTenValue returns true for cards worth ten (10, J, Q, K and any
// custom card valued at ten)
func (c Card) IsTenValue() bool {
	return c.Value == 10
}

// StandardRanks returns the standard rank domain in order
func StandardRanks() []Rank {
	ranks := make([]Rank, len(standardRanks))
	copy(ranks, standardRanks)
	return ranks
}
