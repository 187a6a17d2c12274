package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexanderramin/peek/internal/cli"
	"github.com/alexanderramin/peek/internal/config"
	"github.com/alexanderramin/peek/internal/db"
	"github.com/alexanderramin/peek/internal/repository"
	"github.com/alexanderramin/peek/internal/service"
	"github.com/alexanderramin/peek/internal/store"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	repos := repository.NewSQLiteRepos(database)
	projectRepo, stateRepo, userRepo, workItemRepo := repos.Projects, repos.States, repos.Users, repos.WorkItems

	uow := db.NewSQLiteUnitOfWork(database)
	entities := store.New(workItemRepo, projectRepo, stateRepo, userRepo, store.WithLogger(logger))

	app := &cli.App{
		Config:    cfg,
		Projects:  service.NewProjectService(projectRepo),
		States:    service.NewStateService(stateRepo, projectRepo),
		Users:     service.NewUserService(userRepo),
		WorkItems: service.NewWorkItemService(workItemRepo, uow),
		Store:     entities,
		Operations: service.NewWorkItemOperations(uow, entities,
			service.WithObserver(service.NewLogUseCaseObserver(logger))),
		Logger: logger,
	}

	// Detect interactive terminal; the panel renders statically otherwise.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// openLogger writes text logs to PEEK_LOG_FILE when set, otherwise stderr.
func openLogger(cfg config.Config) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	var w io.Writer = os.Stderr
	closeFn := func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}
