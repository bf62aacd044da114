package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docflow/docflow-core/internal/domain/entities"
	"github.com/docflow/docflow-core/internal/infrastructure/config"
	"github.com/docflow/docflow-core/internal/infrastructure/directory/yamlfile"
	"github.com/docflow/docflow-core/internal/infrastructure/store/sqlite"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new docflow workspace",
		Long:  "Creates a .docflow directory with default configuration, a starter role registry, and the SQLite database.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if config.Exists(cwd) {
		return fmt.Errorf("docflow already initialized in %s", cwd)
	}

	cfg := config.Default(cwd)
	if err := config.Save(cwd, cfg); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	fmt.Printf("Created %s\n", config.ConfigFilePath(cwd))

	// Starter registry; edit roles.yaml to match the real organization.
	users := []yamlfile.User{
		{ID: 1, Name: "admin", Roles: []entities.Role{entities.RoleAdmin}},
		{ID: 2, Name: "manager", Roles: []entities.Role{entities.RoleManager}},
		{ID: 3, Name: "coordinator", Roles: []entities.Role{entities.RoleCoordinator}},
		{ID: 4, Name: "employee", Roles: []entities.Role{entities.RoleEmployee}},
	}
	if err := yamlfile.Save(cfg.Roles.Path, users); err != nil {
		return fmt.Errorf("writing roles file: %w", err)
	}
	fmt.Printf("Created %s\n", cfg.Roles.Path)

	store, err := sqlite.NewStore(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	fmt.Printf("Created database: %s\n", store.Path())
	fmt.Println("Docflow initialized successfully!")

	return nil
}
