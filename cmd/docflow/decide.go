package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

func newDecideCmd() *cobra.Command {
	var comments string

	cmd := &cobra.Command{
		Use:   "decide <approval-id> <approved|rejected>",
		Short: "Record an approval decision",
		Long: `Records your decision on a pending approval. A single rejection
vetoes the submission; approval of the entity requires every approver to
approve.

Examples:
  docflow decide 12 approved --user 2
  docflow decide 12 rejected --user 3 -m "needs a security review"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			approvalID, err := parseID(args[0])
			if err != nil {
				return err
			}
			status := entities.Status(args[1])

			return withDeps(func(d *Deps) error {
				approval, err := d.Workflow.HandleDecide(cmd.Context(), approvalID, status, comments, globalUser)
				if err != nil {
					return fmt.Errorf("recording decision: %w", err)
				}
				fmt.Printf("Recorded %s on approval %d for %s\n", approval.Status, approval.ID, approval.Entity)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&comments, "comments", "m", "", "Decision comments")

	return cmd
}
