package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/docflow/docflow-core/internal/application/handlers"
	"github.com/docflow/docflow-core/internal/domain/services"
	"github.com/docflow/docflow-core/internal/infrastructure/config"
	"github.com/docflow/docflow-core/internal/infrastructure/directory/yamlfile"
	"github.com/docflow/docflow-core/internal/infrastructure/store/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and stores are internal.
type Deps struct {
	Config    *config.Config
	Workflow  *handlers.WorkflowHandler
	Documents *handlers.DocumentHandler
	Tasks     *handlers.TaskHandler
	Policies  *handlers.PolicyHandler
	Activity  *handlers.ActivityHandler
}

// withDeps loads config and builds dependencies, then calls the provided
// function. It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if globalUser == 0 {
		return errors.New("user is required (use --user flag)")
	}

	store, err := sqlite.NewStore(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}

	directory, err := yamlfile.Load(cfg.Roles.Path)
	if err != nil {
		return fmt.Errorf("loading role directory: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	workflowService := services.NewWorkflowService(store, store, store, directory, logger)
	documentService := services.NewDocumentService(store, store, store, logger)
	taskService := services.NewTaskService(store, store, logger)
	acceptanceService := services.NewAcceptanceService(store, store, store, logger)

	deps := &Deps{
		Config:    cfg,
		Workflow:  handlers.NewWorkflowHandler(workflowService, store, store, directory),
		Documents: handlers.NewDocumentHandler(documentService, directory),
		Tasks:     handlers.NewTaskHandler(taskService, directory),
		Policies:  handlers.NewPolicyHandler(acceptanceService),
		Activity:  handlers.NewActivityHandler(store),
	}

	return fn(deps)
}
