package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <type> <id>",
		Short: "Submit an entity for approval",
		Long: `Submits a document, task, or policy for approval. One pending
approval record is created for every user holding an approver role for the
entity type, and the entity moves to pending.

Examples:
  docflow submit document 3 --user 4
  docflow submit policy 7 --user 2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0], args[1])
			if err != nil {
				return err
			}
			return withDeps(func(d *Deps) error {
				if err := d.Workflow.HandleSubmit(cmd.Context(), ref, globalUser); err != nil {
					return fmt.Errorf("submitting %s: %w", ref, err)
				}
				fmt.Printf("Submitted %s for approval\n", ref)
				return nil
			})
		},
	}
}
