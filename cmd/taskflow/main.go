package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"

	"github.com/nhle/taskflow/internal/app"
	"github.com/nhle/taskflow/internal/auth"
	"github.com/nhle/taskflow/internal/logging"
	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "taskflow: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load() // load .env if present

	configPath := pflag.String("config", model.DefaultConfigPath(), "path to the YAML config file")
	pflag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	opts, err := cfg.Display.ViewOptions()
	if err != nil {
		return err
	}

	logger, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer logCloser.Close()

	kv, err := store.Open(cfg.Storage)
	if err != nil {
		logger.WithError(err).Error("opening storage failed")
		return fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}
	defer kv.Close()

	persistence := store.NewPersistence(kv, logger)
	authService := auth.NewService(persistence, auth.NewPasswordHasher(bcrypt.DefaultCost), logger)

	logger.WithField("backend", cfg.Storage.Backend).Info("taskflow starting")

	m := app.New(context.Background(), app.Deps{
		Auth:        authService,
		Persistence: persistence,
		ViewOptions: opts,
		Logger:      logger,
		Config:      cfg,
		ConfigPath:  *configPath,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.WithError(err).Error("ui exited with error")
		return fmt.Errorf("running ui: %w", err)
	}

	logger.Info("taskflow stopped")
	return nil
}
