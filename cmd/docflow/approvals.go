package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

func newApprovalsCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "approvals",
		Short: "List approvals addressed to you",
		Long: `Lists the approval records addressed to the acting user,
optionally filtered by status.

Examples:
  docflow approvals --user 2
  docflow approvals --user 2 --status pending`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				approvals, err := d.Workflow.HandleListApprovals(cmd.Context(), globalUser, entities.Status(status))
				if err != nil {
					return fmt.Errorf("listing approvals: %w", err)
				}
				displayApprovals(approvals)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by approval status")

	cmd.AddCommand(newApprovalsEntityCmd())

	return cmd
}

func newApprovalsEntityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entity <type> <id>",
		Short: "List all approvals for an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0], args[1])
			if err != nil {
				return err
			}
			return withDeps(func(d *Deps) error {
				approvals, err := d.Workflow.HandleListEntityApprovals(cmd.Context(), ref)
				if err != nil {
					return fmt.Errorf("listing approvals: %w", err)
				}
				displayApprovals(approvals)
				return nil
			})
		},
	}
}

func displayApprovals(approvals []entities.Approval) {
	if len(approvals) == 0 {
		fmt.Println("No approvals found.")
		return
	}
	for _, a := range approvals {
		fmt.Printf("%d\t[%s]\t%s\tapprover %d\n", a.ID, a.Status, a.Entity, a.UserID)
		if a.Comments != "" {
			fmt.Printf("\tComments: %s\n", a.Comments)
		}
	}
}
