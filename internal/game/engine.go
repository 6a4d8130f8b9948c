package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/lox/blackjackforbots/internal/randutil"
)

// Engine orchestrates one table: bet validation, dealing, legal-action
// computation, action execution, dealer play and payout resolution. The
// same engine serves interactive play and batch simulation; it never
// suspends mid-round.
type Engine struct {
	config   *Config
	shoe     *deck.Shoe
	registry *Registry
	bus      EventBus
	logger   *log.Logger
	bankroll int
	stats    *Stats
	round    *Round
	seed     *int64
}

// EngineOption customises engine construction
type EngineOption func(*Engine)

// WithShoe replaces the shoe, typically with a rigged one for tests
func WithShoe(shoe *deck.Shoe) EngineOption {
	return func(e *Engine) { e.shoe = shoe }
}

// WithRegistry supplies the custom card/action registry. Registered cards
// are folded into the shoe when it is built.
func WithRegistry(registry *Registry) EngineOption {
	return func(e *Engine) { e.registry = registry }
}

// WithEventBus replaces the event bus
func WithEventBus(bus EventBus) EngineOption {
	return func(e *Engine) { e.bus = bus }
}

// WithSeed builds the shoe from a deterministic seed
func WithSeed(seed int64) EngineOption {
	return func(e *Engine) { e.seed = &seed }
}

// NewEngine creates an engine for the given table rules
func NewEngine(config *Config, logger *log.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		config:   config,
		registry: NewRegistry(),
		logger:   logger,
		bankroll: config.StartingBankroll,
		stats:    NewStats(config.StartingBankroll),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.bus == nil {
		e.bus = NewEventBus(logger)
	}
	if e.shoe == nil {
		seed := time.Now().UnixNano()
		if e.seed != nil {
			seed = *e.seed
		}
		e.shoe = deck.NewShoe(config.Decks, config.Penetration, randutil.New(seed), e.registry.CustomCards()...)
	}

	logger.Info("Table opened",
		"decks", config.Decks,
		"bankroll", e.bankroll,
		"minBet", config.MinBet,
		"maxBet", config.MaxBet)
	return e
}

// Config returns the table rules
func (e *Engine) Config() *Config {
	return e.config
}

// Bankroll returns the player's current bankroll
func (e *Engine) Bankroll() int {
	return e.bankroll
}

// Stats returns a snapshot of the session counters
func (e *Engine) Stats() Stats {
	return e.stats.Snapshot()
}

// Round returns the round in flight, or nil between rounds
func (e *Engine) Round() *Round {
	return e.round
}

// Shoe returns the shoe, exposing the running and true counts
func (e *Engine) Shoe() *deck.Shoe {
	return e.shoe
}

// EventBus returns the bus mod code subscribes to
func (e *Engine) EventBus() EventBus {
	return e.bus
}

// ValidateBet checks a bet against the table limits and the bankroll
func (e *Engine) ValidateBet(bet int) error {
	if bet < e.config.MinBet {
		return fmt.Errorf("%w: minimum bet is %d", ErrInvalidBet, e.config.MinBet)
	}
	if bet > e.config.MaxBet {
		return fmt.Errorf("%w: maximum bet is %d", ErrInvalidBet, e.config.MaxBet)
	}
	if bet > e.bankroll {
		return fmt.Errorf("%w: bet %d exceeds bankroll %d", ErrInvalidBet, bet, e.bankroll)
	}
	return nil
}

// StartRound validates the bet, reshuffles the shoe if penetration was
// reached, deducts the bet and deals two cards each to player and dealer.
// The dealer's first card is the hole card. When the up-card is an ace or
// ten-value the dealer peeks; a dealer natural (or a player natural)
// short-circuits the player turn.
func (e *Engine) StartRound(bet int) (*Round, error) {
	if e.round != nil && e.round.State != RoundResolved {
		return nil, ErrRoundInProgress
	}
	if err := e.ValidateBet(bet); err != nil {
		return nil, err
	}

	if e.shoe.NeedsShuffle() {
		e.reshuffle()
	}

	e.bankroll -= bet
	round := &Round{Bet: bet, State: RoundPlayerTurn}
	e.round = round

	player := NewHand(bet)
	round.Dealer = NewHand(0)
	round.Hands = []*Hand{player}

	// Deal order mirrors a live table: player, dealer hole, player, dealer up
	for _, h := range []*Hand{player, round.Dealer, player, round.Dealer} {
		card, err := e.draw()
		if err != nil {
			return nil, err
		}
		h.AddCard(card)
	}

	if player.IsBlackjack() {
		player.status = StatusBlackjack
	}

	up := round.DealerUpcard()
	if up.IsAce() || up.IsTenValue() {
		if total, _ := round.Dealer.Value(); total == 21 {
			round.dealerBlackjack = true
		}
	}
	if round.dealerBlackjack {
		// Peeked natural ends the player turn before it starts
		if player.status == StatusActive {
			player.status = StatusStood
		}
	}
	if round.dealerBlackjack || round.AllTerminal() {
		round.State = RoundDealerTurn
	}

	e.bus.Publish(NewRoundStartedEvent(bet))
	e.logger.Debug("Round started",
		"bet", bet,
		"player", player.String(),
		"dealerUp", up.String(),
		"bankroll", e.bankroll)
	return round, nil
}

// LegalActions computes the action set for one hand. Terminal hands have
// no actions. The result is stable until an action executes. Funding is
// not checked here; an unfunded double or split fails at execution with
// ErrInsufficientFunds.
func (e *Engine) LegalActions(handIndex int) ([]Action, error) {
	hand, err := e.playableHand(handIndex)
	if err != nil {
		return nil, err
	}
	if hand.Terminal() {
		return []Action{}, nil
	}

	actions := []Action{Hit, Stand}
	if hand.CanDouble(e.config.DoubleAfterSplit) {
		actions = append(actions, Double)
	}
	if hand.CanSplit(e.config.MaxSplits, e.round.splits) {
		actions = append(actions, Split)
	}
	if hand.CanSurrender(e.config.SurrenderAllowed) {
		actions = append(actions, Surrender)
	}
	for _, custom := range e.registry.CustomActions() {
		if e.validateCustom(custom, hand) {
			actions = append(actions, custom.Name)
		}
	}
	return actions, nil
}

// ExecuteAction applies a player action to a hand. Actions outside the
// legal set fail with ErrIllegalAction, never silently.
func (e *Engine) ExecuteAction(handIndex int, action Action) error {
	hand, err := e.playableHand(handIndex)
	if err != nil {
		return err
	}
	legal, err := e.LegalActions(handIndex)
	if err != nil {
		return err
	}
	if !containsAction(legal, action) {
		return fmt.Errorf("%w: %s", ErrIllegalAction, action)
	}

	switch action {
	case Hit:
		card, err := e.draw()
		if err != nil {
			return err
		}
		hand.AddCard(card)
		if hand.IsBust() {
			hand.status = StatusBusted
		}

	case Stand:
		hand.status = StatusStood

	case Double:
		if e.bankroll < hand.bet {
			return fmt.Errorf("%w: double requires %d, bankroll is %d", ErrInsufficientFunds, hand.bet, e.bankroll)
		}
		e.bankroll -= hand.bet
		card, err := e.draw()
		if err != nil {
			return err
		}
		hand.AddCard(card)
		hand.bet *= 2
		hand.status = StatusDoubled
		if hand.IsBust() {
			hand.status = StatusBusted
		}

	case Split:
		if e.bankroll < hand.bet {
			return fmt.Errorf("%w: split requires %d, bankroll is %d", ErrInsufficientFunds, hand.bet, e.bankroll)
		}
		e.bankroll -= hand.bet
		if err := e.split(handIndex, hand); err != nil {
			return err
		}

	case Surrender:
		// Half the bet comes back at resolution; the hand is done now
		hand.status = StatusSurrendered

	default:
		custom, ok := e.registry.Lookup(action)
		if !ok {
			return fmt.Errorf("%w: %s", ErrIllegalAction, action)
		}
		if handled := e.invokeCustom(custom, handIndex); !handled {
			e.logger.Debug("Custom action had no effect", "action", action)
		}
	}

	if e.round.AllTerminal() {
		e.round.State = RoundDealerTurn
	}

	e.logger.Debug("Action executed",
		"action", action,
		"handIndex", handIndex,
		"hand", hand.String(),
		"status", hand.status)
	return nil
}

// split moves the second card of a pair into a new hand inserted directly
// after its producer, deals one card to each branch and duplicates the
// bet. Both branches carry the split lineage marker so a later 21 never
// pays the blackjack bonus.
func (e *Engine) split(handIndex int, hand *Hand) error {
	second := hand.cards[1]
	hand.cards = hand.cards[:1]
	hand.cacheValid = false
	hand.fromSplit = true

	branch := NewHand(hand.bet, second)
	branch.fromSplit = true

	for _, h := range []*Hand{hand, branch} {
		card, err := e.draw()
		if err != nil {
			return err
		}
		h.AddCard(card)
	}

	hands := e.round.Hands
	hands = append(hands, nil)
	copy(hands[handIndex+2:], hands[handIndex+1:])
	hands[handIndex+1] = branch
	e.round.Hands = hands
	e.round.splits++
	return nil
}

// PlayDealer reveals the hole card and draws to the house rule: hit below
// 17, and on soft 17 when the table says so. The dealer draws nothing
// when every player hand already busted or surrendered; those hands lose
// regardless, mirroring live table play.
func (e *Engine) PlayDealer() error {
	if e.round == nil {
		return ErrNoRound
	}
	if !e.round.AllTerminal() {
		return fmt.Errorf("dealer cannot play: player hands still active")
	}
	if e.round.dealerBlackjack || e.round.allDead() {
		return nil
	}

	for {
		total, soft := e.round.Dealer.Value()
		if total < 17 || (total == 17 && soft && e.config.DealerHitsSoft17) {
			card, err := e.draw()
			if err != nil {
				return err
			}
			e.round.Dealer.AddCard(card)
			continue
		}
		break
	}
	return nil
}

// ResolveRound compares every player hand against the dealer, pays out,
// and folds the results into the session stats. Bankroll and stats update
// together as one unit per round.
func (e *Engine) ResolveRound() ([]Result, error) {
	if e.round == nil {
		return nil, ErrNoRound
	}
	if !e.round.AllTerminal() {
		return nil, fmt.Errorf("cannot resolve: player hands still active")
	}

	dealerTotal, _ := e.round.Dealer.Value()
	dealerBlackjack := e.round.Dealer.IsBlackjack()

	results := make([]Result, 0, len(e.round.Hands))
	for _, hand := range e.round.Hands {
		total, _ := hand.Value()
		res := Result{Cards: hand.Cards(), Bet: hand.bet}

		switch {
		case hand.status == StatusSurrendered:
			res.Outcome = OutcomeSurrender
			res.Payout = hand.bet / 2
		case hand.IsBlackjack():
			if dealerBlackjack {
				res.Outcome = OutcomePush
				res.Payout = hand.bet
			} else {
				res.Outcome = OutcomeBlackjack
				res.Payout = hand.bet + int(e.config.BlackjackPayout*float64(hand.bet))
			}
		case hand.IsBust():
			res.Outcome = OutcomeBust
		case dealerBlackjack:
			res.Outcome = OutcomeLose
		case dealerTotal > 21:
			res.Outcome = OutcomeDealerBust
			res.Payout = hand.bet * 2
		case total > dealerTotal:
			res.Outcome = OutcomeWin
			res.Payout = hand.bet * 2
		case total == dealerTotal:
			res.Outcome = OutcomePush
			res.Payout = hand.bet
		default:
			res.Outcome = OutcomeLose
		}
		results = append(results, res)
	}

	payout := 0
	for _, res := range results {
		payout += res.Payout
	}
	e.bankroll += payout
	e.round.Results = results
	e.round.State = RoundResolved
	e.stats.Record(results, e.bankroll)

	e.bus.Publish(NewRoundResolvedEvent(results))
	e.logger.Debug("Round resolved",
		"dealer", e.round.Dealer.String(),
		"payout", payout,
		"bankroll", e.bankroll)
	return results, nil
}

// CanTakeInsurance reports whether the dealer's up-card offers insurance.
// Only the availability signal is exposed; the side bet itself is not
// implemented.
func (e *Engine) CanTakeInsurance() bool {
	return e.round != nil && len(e.round.Dealer.cards) >= 2 && e.round.DealerUpcard().IsAce()
}

func (e *Engine) playableHand(handIndex int) (*Hand, error) {
	if e.round == nil || e.round.State == RoundResolved {
		return nil, ErrNoRound
	}
	if handIndex < 0 || handIndex >= len(e.round.Hands) {
		return nil, fmt.Errorf("%w: %d", ErrHandIndex, handIndex)
	}
	return e.round.Hands[handIndex], nil
}

// draw pulls the next card, recovering from an exhausted shoe with a
// reshuffle. The empty-shoe condition never reaches callers.
func (e *Engine) draw() (deck.Card, error) {
	card, err := e.shoe.Draw()
	if errors.Is(err, deck.ErrEmptyShoe) {
		e.reshuffle()
		card, err = e.shoe.Draw()
	}
	if err != nil {
		return deck.Card{}, fmt.Errorf("drawing card: %w", err)
	}
	if e.round != nil {
		e.round.CardHistory = append(e.round.CardHistory, card)
	}
	e.bus.Publish(NewCardDealtEvent(card))
	return card, nil
}

func (e *Engine) reshuffle() {
	e.shoe.Shuffle()
	e.bus.Publish(NewDeckShuffledEvent())
	e.logger.Debug("Shoe shuffled, running count reset")
}

func (e *Engine) validateCustom(custom CustomAction, hand *Hand) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Custom action validator panicked",
				"action", custom.Name,
				"panic", r)
			ok = false
		}
	}()
	return custom.Validator(hand)
}

func (e *Engine) invokeCustom(custom CustomAction, handIndex int) (handled bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Custom action handler panicked",
				"action", custom.Name,
				"panic", r)
			handled = false
		}
	}()
	return custom.Handler(e, handIndex)
}
