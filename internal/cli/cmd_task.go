package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// newTaskCmd creates the task command group.
func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage to-do items",
	}

	cmd.AddCommand(newTaskAddCmd())
	cmd.AddCommand(newTaskListCmd())
	cmd.AddCommand(newTaskRmCmd())

	return cmd
}

func newTaskAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <user-id> <title>...",
		Short: "Add a task for a person",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			title := strings.Join(args[1:], " ")

			pdb, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = pdb.Close() }()

			id, err := pdb.AddTask(title, userID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %d\n", id)
			return nil
		},
	}
}

func newTaskListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list <user-id>",
		Aliases: []string{"ls"},
		Short:   "List a person's tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}

			pdb, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = pdb.Close() }()

			tasks, err := pdb.FetchUserTasks(userID)
			if err != nil {
				return err
			}

			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}

			w := newTable(cmd.OutOrStdout())
			printHeader(w, "ID", "TITLE")
			for _, t := range tasks {
				fmt.Fprintf(w, "%d\t%s\n", t.ID, truncate(t.Title, 60))
			}
			return w.Flush()
		},
	}
}

func newTaskRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			pdb, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = pdb.Close() }()

			if err := pdb.DeleteTask(id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed task %d\n", id)
			return nil
		},
	}
}
