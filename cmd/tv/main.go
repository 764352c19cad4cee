package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quadroqm/quadro/internal/api"
	"github.com/quadroqm/quadro/internal/config"
	"github.com/quadroqm/quadro/internal/logging"
	"github.com/quadroqm/quadro/internal/tv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := logging.Init(); err != nil {
		log.Printf("logging unavailable: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Server.BaseURL == "" {
		return fmt.Errorf("no server configured: set server.base_url in the config file or QUADRO_SERVER_URL")
	}

	// The public feed needs no session, so the display talks to the API
	// with a plain client.
	feed := api.NewClient(cfg.Server.BaseURL, nil)
	model := tv.NewModel(feed, cfg.Server.TVRefresh.Std())

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
