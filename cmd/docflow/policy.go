package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPolicyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Policy acceptance operations",
	}

	cmd.AddCommand(
		newPolicyAcceptCmd(),
		newPolicyAcceptancesCmd(),
	)

	return cmd
}

func newPolicyAcceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept <document-id>",
		Short: "Acknowledge an approved policy",
		Long: `Records the acting user's acceptance of an approved policy
document. Accepting a policy twice is a no-op.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			documentID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withDeps(func(d *Deps) error {
				acceptance, err := d.Policies.HandleAccept(cmd.Context(), globalUser, documentID)
				if err != nil {
					return fmt.Errorf("accepting policy: %w", err)
				}
				fmt.Printf("Accepted policy %d at %s\n", acceptance.DocumentID, acceptance.AcceptedAt.Format("2006-01-02 15:04"))
				return nil
			})
		},
	}
}

func newPolicyAcceptancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "acceptances <document-id>",
		Short: "List who has accepted a policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			documentID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withDeps(func(d *Deps) error {
				acceptances, err := d.Policies.HandleListAcceptances(cmd.Context(), documentID)
				if err != nil {
					return fmt.Errorf("listing acceptances: %w", err)
				}
				if len(acceptances) == 0 {
					fmt.Println("No acceptances recorded.")
					return nil
				}
				for _, a := range acceptances {
					fmt.Printf("user %d\t%s\n", a.UserID, a.AcceptedAt.Format("2006-01-02 15:04"))
				}
				return nil
			})
		},
	}
}
