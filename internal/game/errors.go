package game

import "errors"

// Recoverable error kinds surfaced to the session controller. All are
// re-promptable conditions, never fatal to the session.
var (
	// ErrInvalidBet indicates a bet outside the configured range or
	// exceeding the current bankroll.
	ErrInvalidBet = errors.New("invalid bet")

	// ErrIllegalAction indicates an action not in the hand's legal set.
	ErrIllegalAction = errors.New("illegal action")

	// ErrInsufficientFunds indicates a double or split that the bankroll
	// cannot cover.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrRoundInProgress indicates StartRound was called before the
	// previous round resolved.
	ErrRoundInProgress = errors.New("round already in progress")

	// ErrNoRound indicates an action or resolution call with no round
	// in flight.
	ErrNoRound = errors.New("no round in progress")

	// ErrHandIndex indicates a hand index outside the current round.
	ErrHandIndex = errors.New("hand index out of range")
)
