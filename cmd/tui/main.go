package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"socialdash/internal/config"
	"socialdash/internal/dataset"
	"socialdash/internal/engine"
	"socialdash/internal/logging"
	"socialdash/internal/models"
	"socialdash/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	dataFile := flag.String("data", cfg.Data.File, "Dataset file (.json or .csv); empty uses the bundled one")
	topN := flag.Int("top", cfg.Dashboard.TopN, "Entities per chart")
	altScreen := flag.Bool("alt-screen", true, "Use the terminal alternate screen buffer")
	flag.Parse()

	// stdout belongs to the TUI; log to a file unless one is configured
	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = "logs/tui.log"
	}
	logger, err := logging.NewLogger(cfg.Logging.Level, logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	var ds *engine.Dataset
	if *dataFile == "" {
		ds, err = dataset.Default()
	} else {
		ds, err = engine.LoadFile(*dataFile, cfg.Data.Validate)
	}
	if err != nil {
		logger.Error("Failed to load dataset", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m := tui.New(ds, *topN, func(period engine.PeriodKey, r models.EntityRecord) {
		logger.Info("Entity clicked", zap.String("period", string(period)), zap.String("entity", r.Name))
	})
	opts := []tea.ProgramOption{}
	if *altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		logger.Error("TUI exited", zap.Error(err))
		os.Exit(1)
	}
}
