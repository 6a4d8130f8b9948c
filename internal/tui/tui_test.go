package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/lox/blackjackforbots/internal/game"
	"github.com/lox/blackjackforbots/internal/session"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// riggedModel deals the given ranks in order: player, dealer hole,
// player, dealer up, then draws.
func riggedModel(ranks ...deck.Rank) *Model {
	cards := make([]deck.Card, len(ranks))
	for i, r := range ranks {
		cards[i] = deck.New(r)
	}
	engine := game.NewEngine(game.DefaultConfig(), testLogger(),
		game.WithShoe(deck.NewShoeFromCards(cards...)))
	controller := session.New(engine, testLogger())
	return New(controller, testLogger())
}

func enter(m *Model, input string) {
	m.input.SetValue(input)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestModelStartsOnBetPrompt(t *testing.T) {
	m := riggedModel(deck.Ten, deck.Ten, deck.Six, deck.Nine)
	assert.Equal(t, session.PromptBetInput, m.prompt.Kind)
}

func TestModelPlaysRound(t *testing.T) {
	m := riggedModel(deck.Ten, deck.Ten, deck.Six, deck.Nine, deck.Two)

	enter(m, "10")
	require.Equal(t, session.PromptActionInput, m.prompt.Kind)
	assert.Contains(t, m.prompt.LegalActions, "hit")

	enter(m, "stand")
	require.Equal(t, session.PromptInfo, m.prompt.Kind)
	assert.NotEmpty(t, m.gameLog, "round results land in the log")

	// Any input acknowledges the info prompt and starts the next round
	enter(m, "")
	assert.Equal(t, session.PromptBetInput, m.prompt.Kind)
}

func TestModelRepromptsOnBadInput(t *testing.T) {
	m := riggedModel(deck.Ten, deck.Ten, deck.Six, deck.Nine)

	enter(m, "not a bet")
	assert.Equal(t, session.PromptBetInput, m.prompt.Kind)
	assert.NotEmpty(t, m.prompt.Err)
}

func TestModelQuitCommand(t *testing.T) {
	m := riggedModel(deck.Ten, deck.Ten, deck.Six, deck.Nine)

	enter(m, "quit")
	assert.True(t, m.quitting)
	assert.Equal(t, session.PromptGameOver, m.prompt.Kind)
}

func TestModelCtrlCFinishes(t *testing.T) {
	m := riggedModel(deck.Ten, deck.Ten, deck.Six, deck.Nine)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
}

func TestViewBeforeSizing(t *testing.T) {
	m := riggedModel(deck.Ten, deck.Ten, deck.Six, deck.Nine)
	assert.Equal(t, "Loading...", m.View())
}

func TestViewRendersTable(t *testing.T) {
	m := riggedModel(deck.Ten, deck.Ten, deck.Six, deck.Nine)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	enter(m, "10")

	view := m.View()
	assert.Contains(t, view, "Bankroll")
	assert.Contains(t, view, "Dealer")
}

func TestFinalViewShowsSummary(t *testing.T) {
	m := riggedModel(deck.Ten, deck.Ten, deck.Six, deck.Nine, deck.Two)
	enter(m, "10")
	enter(m, "stand")
	enter(m, "") // acknowledge the round summary
	enter(m, "quit")

	view := m.View()
	assert.Contains(t, view, "Hands played: 1")
	assert.Contains(t, view, "Session profit: -10")
}
