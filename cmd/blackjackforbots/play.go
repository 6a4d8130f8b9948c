package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/blackjackforbots/cmd/blackjackforbots/shared"
	"github.com/lox/blackjackforbots/internal/game"
	"github.com/lox/blackjackforbots/internal/session"
	"github.com/lox/blackjackforbots/internal/tui"
)

type PlayCmd struct {
	Config  string `help:"Table rules file (HCL)" default:"table.hcl" type:"path"`
	Seed    int64  `help:"RNG seed (0 for random)" default:"0"`
	LogFile string `help:"Write logs to a file" type:"path"`
	Debug   bool   `help:"Debug logging"`
}

func (c *PlayCmd) Run() error {
	config, err := game.LoadConfig(c.Config)
	if err != nil {
		return fmt.Errorf("loading table rules: %w", err)
	}

	logger, cleanup, err := shared.SetupTUILogger(c.LogFile, c.Debug)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer cleanup()

	var opts []game.EngineOption
	if c.Seed != 0 {
		opts = append(opts, game.WithSeed(c.Seed))
	}

	engine := game.NewEngine(config, logger, opts...)
	controller := session.New(engine, logger)
	model := tui.New(controller, logger)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running table session: %w", err)
	}
	return nil
}
