package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cli/browser"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"

	"github.com/NotMugil/nyt-tui/internal/api"
	"github.com/NotMugil/nyt-tui/internal/app"
	"github.com/NotMugil/nyt-tui/internal/config"
	"github.com/NotMugil/nyt-tui/internal/logging"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(logging.Config{Path: cfg.Logger.File, Level: cfg.Logger.Level})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting", zap.String("base_url", cfg.API.BaseURL), zap.Int("requests_per_min", cfg.API.RequestsPerMin))

	// The browser package prints to stdout by default, which would corrupt the TUI.
	browser.Stdout = nil
	browser.Stderr = nil

	zone.NewGlobal()
	model := app.New(app.Options{
		APIKey: cfg.API.Key,
		Client: api.Options{
			BaseURL:        cfg.API.BaseURL,
			RequestsPerMin: cfg.API.RequestsPerMin,
			Logger:         logger,
		},
		Logger: logger,
		Open:   browser.OpenURL,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
