package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

func newDocumentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "document",
		Short: "Manage documents",
		Long:  "Create, inspect, update, and delete documents and policies.",
	}

	cmd.AddCommand(
		newDocumentCreateCmd(),
		newDocumentGetCmd(),
		newDocumentListCmd(),
		newDocumentUpdateCmd(),
		newDocumentDeleteCmd(),
		newDocumentHistoryCmd(),
	)

	return cmd
}

func newDocumentCreateCmd() *cobra.Command {
	var (
		department string
		category   string
		content    string
	)

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a new draft document",
		Long: `Creates a new document in draft state at version 1.0.
Use --category policy to create a policy document.

Examples:
  docflow document create "Onboarding Guide" --content "Welcome aboard"
  docflow document create "Remote Work Policy" --category policy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocumentCreate(cmd, args[0], department, category, content)
		},
	}

	cmd.Flags().StringVarP(&department, "department", "d", "", "Owning department")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Document category (policy marks a policy document)")
	cmd.Flags().StringVar(&content, "content", "", "Document body")

	return cmd
}

func runDocumentCreate(cmd *cobra.Command, title, department, category, content string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		doc := &entities.Document{
			Title:      title,
			Department: department,
			Category:   category,
			Content:    content,
		}
		if err := d.Documents.HandleCreate(ctx, doc, globalUser); err != nil {
			return fmt.Errorf("creating document: %w", err)
		}

		fmt.Printf("Created %s: %s (version %s)\n", doc.Ref(), doc.Title, doc.Version)
		return nil
	})
}

func newDocumentGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withDeps(func(d *Deps) error {
				doc, err := d.Documents.HandleGet(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("getting document: %w", err)
				}
				displayDocument(doc)
				return nil
			})
		},
	}
}

func newDocumentListCmd() *cobra.Command {
	var (
		status string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				docs, err := d.Documents.HandleList(cmd.Context(), entities.Status(status), limit)
				if err != nil {
					return fmt.Errorf("listing documents: %w", err)
				}
				if len(docs) == 0 {
					fmt.Println("No documents found.")
					return nil
				}
				for _, doc := range docs {
					fmt.Printf("%d\t[%s]\t%s (v%s)\n", doc.ID, doc.Status, doc.Title, doc.Version)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by workflow status")
	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultListLimit, "Maximum number of documents to display")

	return cmd
}

func newDocumentUpdateCmd() *cobra.Command {
	var (
		title      string
		department string
		category   string
		content    string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a document",
		Long: `Updates document fields. Changing the content bumps the minor
version and records a new version snapshot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withDeps(func(d *Deps) error {
				doc, err := d.Documents.HandleUpdate(cmd.Context(), id, title, department, category, content, globalUser)
				if err != nil {
					return fmt.Errorf("updating document: %w", err)
				}
				fmt.Printf("Updated %s: %s (version %s)\n", doc.Ref(), doc.Title, doc.Version)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&department, "department", "d", "", "New department")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category")
	cmd.Flags().StringVar(&content, "content", "", "New document body")

	return cmd
}

func newDocumentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withDeps(func(d *Deps) error {
				if err := d.Documents.HandleDelete(cmd.Context(), id, globalUser); err != nil {
					return fmt.Errorf("deleting document: %w", err)
				}
				fmt.Printf("Deleted document %d\n", id)
				return nil
			})
		},
	}
}

func newDocumentHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Show a document's version history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withDeps(func(d *Deps) error {
				versions, err := d.Documents.HandleHistory(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("getting history: %w", err)
				}
				if len(versions) == 0 {
					fmt.Println("No versions recorded.")
					return nil
				}
				for _, v := range versions {
					fmt.Printf("v%s\tby user %d\t%s\n", v.Version, v.CreatedBy, v.CreatedAt.Format("2006-01-02 15:04"))
				}
				return nil
			})
		},
	}
}

func displayDocument(doc *entities.Document) {
	fmt.Printf("ID: %d\n", doc.ID)
	fmt.Printf("  Title: %s\n", doc.Title)
	fmt.Printf("  Status: %s\n", doc.Status)
	fmt.Printf("  Version: %s\n", doc.Version)
	if doc.Department != "" {
		fmt.Printf("  Department: %s\n", doc.Department)
	}
	if doc.Category != "" {
		fmt.Printf("  Category: %s\n", doc.Category)
	}
	if doc.Content != "" {
		fmt.Printf("  Content: %s\n", doc.Content)
	}
	fmt.Printf("  Created by user %d at %s\n", doc.CreatedBy, doc.CreatedAt.Format("2006-01-02 15:04"))
}
