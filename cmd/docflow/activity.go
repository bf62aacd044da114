package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

func newActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Inspect the activity log",
	}

	cmd.AddCommand(
		newActivityEntityCmd(),
		newActivityActionCmd(),
	)

	return cmd
}

func newActivityEntityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entity <type> <id>",
		Short: "Show activity for one entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0], args[1])
			if err != nil {
				return err
			}
			return withDeps(func(d *Deps) error {
				activity, err := d.Activity.HandleForEntity(cmd.Context(), ref)
				if err != nil {
					return fmt.Errorf("listing activity: %w", err)
				}
				displayActivity(activity)
				return nil
			})
		},
	}
}

func newActivityActionCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "action <action>",
		Short: "Show activity entries by action",
		Long: `Shows recent activity entries with the given action
(create, update, submit, approved, rejected, accept, delete).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				activity, err := d.Activity.HandleByAction(cmd.Context(), args[0], limit)
				if err != nil {
					return fmt.Errorf("listing activity: %w", err)
				}
				displayActivity(activity)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultActivityLimit, "Maximum number of entries to display")

	return cmd
}

func displayActivity(activity []entities.Activity) {
	if len(activity) == 0 {
		fmt.Println("No activity recorded.")
		return
	}
	for _, entry := range activity {
		fmt.Printf("%s\t%s\t%s\tby user %d", entry.CreatedAt.Format("2006-01-02 15:04"), entry.Action, entry.Entity, entry.UserID)
		if entry.Details != "" {
			fmt.Printf("\t%s", entry.Details)
		}
		fmt.Println()
	}
}
