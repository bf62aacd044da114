package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
		Long:  "Create, inspect, update, and delete tasks.",
	}

	cmd.AddCommand(
		newTaskCreateCmd(),
		newTaskGetCmd(),
		newTaskListCmd(),
		newTaskUpdateCmd(),
		newTaskDeleteCmd(),
	)

	return cmd
}

func newTaskCreateCmd() *cobra.Command {
	var (
		description string
		priority    string
		assignedTo  int64
	)

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a new draft task",
		Long: `Creates a new task in draft state.

Examples:
  docflow task create "Rotate credentials" --priority high
  docflow task create "Review Q3 budget" --assign 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				task := &entities.Task{
					Title:       args[0],
					Description: description,
					Priority:    priority,
					AssignedTo:  assignedTo,
				}
				if err := d.Tasks.HandleCreate(cmd.Context(), task, globalUser); err != nil {
					return fmt.Errorf("creating task: %w", err)
				}
				fmt.Printf("Created %s: %s\n", task.Ref(), task.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Task priority (low, medium, high)")
	cmd.Flags().Int64Var(&assignedTo, "assign", 0, "Assignee user id")

	return cmd
}

func newTaskGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withDeps(func(d *Deps) error {
				task, err := d.Tasks.HandleGet(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("getting task: %w", err)
				}
				displayTask(task)
				return nil
			})
		},
	}
}

func newTaskListCmd() *cobra.Command {
	var (
		status string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				tasks, err := d.Tasks.HandleList(cmd.Context(), entities.Status(status), limit)
				if err != nil {
					return fmt.Errorf("listing tasks: %w", err)
				}
				if len(tasks) == 0 {
					fmt.Println("No tasks found.")
					return nil
				}
				for _, task := range tasks {
					fmt.Printf("%d\t[%s]\t%s\n", task.ID, task.Status, task.Title)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by workflow status")
	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultListLimit, "Maximum number of tasks to display")

	return cmd
}

func newTaskUpdateCmd() *cobra.Command {
	var (
		title       string
		description string
		priority    string
		assignedTo  int64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withDeps(func(d *Deps) error {
				task, err := d.Tasks.HandleUpdate(cmd.Context(), id, title, description, priority, assignedTo, globalUser)
				if err != nil {
					return fmt.Errorf("updating task: %w", err)
				}
				fmt.Printf("Updated %s: %s\n", task.Ref(), task.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "New priority")
	cmd.Flags().Int64Var(&assignedTo, "assign", 0, "New assignee user id")

	return cmd
}

func newTaskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withDeps(func(d *Deps) error {
				if err := d.Tasks.HandleDelete(cmd.Context(), id, globalUser); err != nil {
					return fmt.Errorf("deleting task: %w", err)
				}
				fmt.Printf("Deleted task %d\n", id)
				return nil
			})
		},
	}
}

func displayTask(task *entities.Task) {
	fmt.Printf("ID: %d\n", task.ID)
	fmt.Printf("  Title: %s\n", task.Title)
	fmt.Printf("  Status: %s\n", task.Status)
	if task.Description != "" {
		fmt.Printf("  Description: %s\n", task.Description)
	}
	if task.Priority != "" {
		fmt.Printf("  Priority: %s\n", task.Priority)
	}
	if task.AssignedTo != 0 {
		fmt.Printf("  Assigned to user %d\n", task.AssignedTo)
	}
	fmt.Printf("  Created by user %d at %s\n", task.CreatedBy, task.CreatedAt.Format("2006-01-02 15:04"))
}
