// Package tui renders an interactive table on top of the session
// controller. The controller owns the game protocol; the model just
// displays the current prompt and feeds typed input back through Resume.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjackforbots/internal/deck"
	"github.com/lox/blackjackforbots/internal/game"
	"github.com/lox/blackjackforbots/internal/session"
)

// Model is the Bubble Tea model for an interactive table session
type Model struct {
	controller *session.Controller
	logger     *log.Logger

	logViewport viewport.Model
	input       textinput.Model

	gameLog  []string
	prompt   session.Prompt
	quitting bool

	width       int
	height      int
	initialized bool
}

// New creates a model suspended on the controller's opening prompt
func New(controller *session.Controller, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		controller:  controller,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
		prompt:      controller.Prompt(),
	}
	m.describePrompt()
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quit()
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "enter":
			if done := m.submit(strings.TrimSpace(m.input.Value())); done {
				return m, tea.Sequence(tea.ClearScreen, tea.Quit)
			}
			m.input.SetValue("")
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit resumes the controller with the typed input and reports whether
// the session is finished.
func (m *Model) submit(input string) bool {
	switch m.prompt.Kind {
	case session.PromptGameOver:
		m.quitting = true
		return true
	case session.PromptInfo:
		// Info prompts acknowledge with any keypress; input is discarded
		m.prompt = m.controller.Resume("")
	default:
		if input == "quit" {
			m.quit()
			return true
		}
		m.prompt = m.controller.Resume(input)
	}
	m.describePrompt()
	return false
}

func (m *Model) quit() {
	m.prompt = m.controller.Finish()
	m.logSummary()
	m.quitting = true
}

// describePrompt appends log lines narrating the transition the session
// just made.
func (m *Model) describePrompt() {
	switch m.prompt.Kind {
	case session.PromptInfo:
		for i, res := range m.prompt.Results {
			m.addLog(fmt.Sprintf("Hand %d: %s  %s, paid %d",
				i+1, formatCards(res.Cards), outcomeLabel(res.Outcome), res.Payout))
		}
		if state := m.prompt.State; state != nil && len(state.DealerCards) > 0 {
			m.addLog(fmt.Sprintf("Dealer: %s (%d)", formatCards(state.DealerCards), state.DealerTotal))
		}
	case session.PromptGameOver:
		m.logSummary()
	}
}

func (m *Model) logSummary() {
	if m.prompt.Summary == nil {
		return
	}
	s := m.prompt.Summary
	m.addLog(fmt.Sprintf("Session over: %d hands, %d won, %d lost, %d pushed, profit %+d",
		s.HandsPlayed, s.HandsWon, s.HandsLost, s.HandsPushed, s.SessionProfit))
}

func (m *Model) addLog(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// View renders the table, log and input panes
func (m *Model) View() string {
	if m.quitting {
		return m.finalView()
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)

	actionWidth := max(1, m.width-2)
	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(actionWidth)
	actionPane := actionStyle.Render(actionContent)

	tableContent := m.renderTablePane()
	tableWidth := max(25, lipgloss.Width(tableContent))
	tableHeight := max(1, m.height-actionHeight-6)
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(tableWidth).
		Height(tableHeight)
	tablePane := tableStyle.Render(tableContent)

	logWidth := max(1, m.width-tableWidth-6)
	logHeight := tableHeight
	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight
	if !m.initialized && logWidth > 1 && logHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(logHeight)
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, tablePane, logPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) finalView() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(" Game over "))
	b.WriteString("\n")
	if m.prompt.Message != "" {
		b.WriteString(m.prompt.Message)
		b.WriteString("\n")
	}
	if s := m.prompt.Summary; s != nil {
		b.WriteString(fmt.Sprintf("Hands played: %d\n", s.HandsPlayed))
		b.WriteString(fmt.Sprintf("Won/Lost/Pushed: %d/%d/%d\n", s.HandsWon, s.HandsLost, s.HandsPushed))
		b.WriteString(fmt.Sprintf("Blackjacks: %d\n", s.Blackjacks))
		b.WriteString(fmt.Sprintf("Total wagered: %d\n", s.TotalWagered))
		b.WriteString(fmt.Sprintf("Session profit: %+d\n", s.SessionProfit))
	}
	return b.String()
}

// renderTablePane shows the dealer and player hands from the prompt's
// table snapshot.
func (m *Model) renderTablePane() string {
	state := m.prompt.State
	if state == nil {
		return InfoStyle.Render("Waiting for deal...")
	}

	var b strings.Builder
	b.WriteString(WarningStyle.Render(fmt.Sprintf("Bankroll: $%d", state.Bankroll)))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Count: %+d running, %+.1f true",
		state.RunningCount, state.TrueCount)))
	b.WriteString("\n\n")

	if state.RoundComplete && len(state.DealerCards) > 0 {
		b.WriteString(DealerStyle.Render(fmt.Sprintf("Dealer: %s (%d)",
			formatCards(state.DealerCards), state.DealerTotal)))
		b.WriteString("\n")
	} else if state.DealerUpcard != nil {
		b.WriteString(DealerStyle.Render(fmt.Sprintf("Dealer: [?? %s]", state.DealerUpcard.String())))
		if state.CanTakeInsurance {
			b.WriteString(InfoStyle.Render("  (insurance offered)"))
		}
		b.WriteString("\n")
	}

	for i, hand := range state.Hands {
		label := fmt.Sprintf("Hand %d", i+1)
		if m.prompt.Kind == session.PromptActionInput && i == m.prompt.HandIndex {
			label = "» " + label
		}
		total := fmt.Sprintf("%d", hand.Total)
		if hand.Soft {
			total = "soft " + total
		}
		b.WriteString(HandInfoStyle.Render(fmt.Sprintf("%s: %s (%s) bet $%d %s",
			label, formatCards(hand.Cards), total, hand.Bet, handTag(hand))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderActionPane() string {
	var b strings.Builder

	if m.prompt.Err != "" {
		b.WriteString(ErrorStyle.Render(m.prompt.Err))
		b.WriteString("\n")
	}
	b.WriteString(HandInfoStyle.Render(m.prompt.Message))
	b.WriteString("\n")

	if m.prompt.Kind == session.PromptActionInput && len(m.prompt.LegalActions) > 0 {
		labels := make([]string, len(m.prompt.LegalActions))
		for i, name := range m.prompt.LegalActions {
			labels[i] = SuccessStyle.Render("[" + name + "]")
		}
		b.WriteString(ActionsStyle.Render("Actions: " + strings.Join(labels, " ")))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("Enter to submit • 'quit' or Ctrl+C to leave the table"))
	return b.String()
}

func handTag(hand game.HandView) string {
	switch {
	case hand.Blackjack:
		return SuccessStyle.Render("blackjack!")
	case hand.Bust:
		return ErrorStyle.Render("bust")
	case hand.Status == game.StatusStood:
		return "stood"
	case hand.Status == game.StatusDoubled:
		return "doubled"
	case hand.Status == game.StatusSurrendered:
		return "surrendered"
	default:
		return ""
	}
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = CardStyle.Render(card.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func outcomeLabel(outcome game.Outcome) string {
	switch {
	case outcome == game.OutcomePush:
		return WarningStyle.Render("push")
	case outcome.Won():
		return SuccessStyle.Render(string(outcome))
	default:
		return ErrorStyle.Render(string(outcome))
	}
}
