// Package session turns the engine's synchronous round-resolution calls
// into a suspend/resume protocol: the controller produces one prompt per
// required decision and resumes exactly where it stopped when the caller
// supplies a response. Callers that cannot own a blocking call stack
// (TUIs, bots) drive the whole game this way.
package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjackforbots/internal/game"
)

// PromptKind tags what kind of input a prompt requires
type PromptKind string

const (
	PromptBetInput    PromptKind = "bet_input"
	PromptActionInput PromptKind = "action_input"
	PromptInfo        PromptKind = "info"
	PromptGameOver    PromptKind = "game_over"
)

// Prompt is the structured record produced at each suspension point.
// Validation failures come back as the same prompt kind with Err set,
// never as a fault across the suspension boundary.
type Prompt struct {
	Kind         PromptKind
	Message      string
	HandIndex    int
	LegalActions []string
	Err          string
	Results      []game.Result
	Summary      *game.Stats
	State        *game.TableState
}

type controllerState int

const (
	stateBet controllerState = iota
	stateAction
	stateRoundDone
	stateOver
)

// Controller is the explicit state machine wrapping one engine session.
// Single-threaded and cooperative: it only advances inside Resume.
type Controller struct {
	engine  *game.Engine
	logger  *log.Logger
	state   controllerState
	handIdx int
	prompt  Prompt
}

// New creates a controller and computes the opening prompt: a bet request,
// or game over immediately when the bankroll cannot cover the minimum bet.
func New(engine *game.Engine, logger *log.Logger) *Controller {
	c := &Controller{engine: engine, logger: logger}
	if engine.Bankroll() < engine.Config().MinBet {
		c.toGameOver("Insufficient funds to play")
	} else {
		c.toBetPrompt("")
	}
	return c
}

// Prompt returns the prompt the session is currently suspended on
func (c *Controller) Prompt() Prompt {
	return c.prompt
}

// Resume supplies the response for the current prompt and advances to the
// next suspension point. After game_over the controller is absorbing and
// keeps returning the final prompt.
func (c *Controller) Resume(input string) Prompt {
	switch c.state {
	case stateBet:
		c.resumeBet(input)
	case stateAction:
		c.resumeAction(input)
	case stateRoundDone:
		c.afterRound()
	case stateOver:
		// terminal; nothing to resume
	}
	return c.prompt
}

// Finish abandons the session at the current suspension point and
// produces the final summary. There is no cleanup beyond discarding the
// in-flight round.
func (c *Controller) Finish() Prompt {
	if c.state != stateOver {
		c.toGameOver("Session ended")
	}
	return c.prompt
}

func (c *Controller) resumeBet(input string) {
	bet, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		c.toBetPrompt("Enter a whole number")
		return
	}

	if _, err := c.engine.StartRound(bet); err != nil {
		c.logger.Debug("Bet rejected", "bet", bet, "error", err)
		c.toBetPrompt(err.Error())
		return
	}
	c.handIdx = 0
	c.advance()
}

func (c *Controller) resumeAction(input string) {
	action := game.Action(strings.ToLower(strings.TrimSpace(input)))
	if err := c.engine.ExecuteAction(c.handIdx, action); err != nil {
		c.logger.Debug("Action rejected", "action", action, "handIndex", c.handIdx, "error", err)
		c.toActionPrompt(c.handIdx, err.Error())
		return
	}
	c.advance()
}

// advance walks forward to the next still-active hand in ascending index
// order; hands created by a split sit directly after their producer, so a
// forward scan preserves the prompt ordering guarantee. With no active
// hands left it plays the dealer and resolves.
func (c *Controller) advance() {
	round := c.engine.Round()
	if round.State == game.RoundPlayerTurn {
		for i := c.handIdx; i < len(round.Hands); i++ {
			if !round.Hands[i].Terminal() {
				c.handIdx = i
				c.toActionPrompt(i, "")
				return
			}
		}
	}

	if err := c.engine.PlayDealer(); err != nil {
		c.logger.Error("Dealer play failed", "error", err)
		c.toGameOver(err.Error())
		return
	}
	results, err := c.engine.ResolveRound()
	if err != nil {
		c.logger.Error("Round resolution failed", "error", err)
		c.toGameOver(err.Error())
		return
	}

	c.state = stateRoundDone
	c.prompt = Prompt{
		Kind:    PromptInfo,
		Message: "Round complete",
		Results: results,
		State:   c.engine.State(),
	}
}

func (c *Controller) afterRound() {
	if c.engine.Bankroll() < c.engine.Config().MinBet {
		c.toGameOver("Insufficient funds to continue")
		return
	}
	c.toBetPrompt("")
}

func (c *Controller) toBetPrompt(errMsg string) {
	cfg := c.engine.Config()
	maxBet := cfg.MaxBet
	if bankroll := c.engine.Bankroll(); bankroll < maxBet {
		maxBet = bankroll
	}
	c.state = stateBet
	c.prompt = Prompt{
		Kind:    PromptBetInput,
		Message: fmt.Sprintf("Enter bet (%d-%d)", cfg.MinBet, maxBet),
		Err:     errMsg,
		State:   c.engine.State(),
	}
}

func (c *Controller) toActionPrompt(handIndex int, errMsg string) {
	legal, err := c.engine.LegalActions(handIndex)
	if err != nil {
		c.logger.Error("Legal action computation failed", "error", err, "handIndex", handIndex)
		c.toGameOver(err.Error())
		return
	}
	c.state = stateAction
	c.handIdx = handIndex
	c.prompt = Prompt{
		Kind:         PromptActionInput,
		Message:      fmt.Sprintf("Choose action for hand %d", handIndex+1),
		HandIndex:    handIndex,
		LegalActions: game.ActionNames(legal),
		Err:          errMsg,
		State:        c.engine.State(),
	}
}

func (c *Controller) toGameOver(message string) {
	summary := c.engine.Stats()
	c.state = stateOver
	c.prompt = Prompt{
		Kind:    PromptGameOver,
		Message: message,
		Summary: &summary,
		State:   c.engine.State(),
	}
}
