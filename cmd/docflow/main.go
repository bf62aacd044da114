// Package main provides the entry point for the docflow CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0-dev"
	globalUser int64
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "docflow",
		Short:   "A document and task approval workflow engine",
		Version: version,
	}

	rootCmd.PersistentFlags().Int64VarP(&globalUser, "user", "u", 0, "Acting user id (required)")

	rootCmd.AddCommand(
		newInitCmd(),
		newDocumentCmd(),
		newTaskCmd(),
		newSubmitCmd(),
		newDecideCmd(),
		newApprovalsCmd(),
		newPolicyCmd(),
		newActivityCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
