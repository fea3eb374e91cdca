package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// newProjectCmd creates the project command group.
func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage shared projects",
	}

	cmd.AddCommand(newProjectAddCmd())
	cmd.AddCommand(newProjectListCmd())
	cmd.AddCommand(newProjectAssignCmd())
	cmd.AddCommand(newProjectMembersCmd())
	cmd.AddCommand(newProjectRmCmd())

	return cmd
}

func newProjectAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>...",
		Short: "Create a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pdb, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = pdb.Close() }()

			id, err := pdb.AddProject(strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %d\n", id)
			return nil
		},
	}
}

func newProjectListCmd() *cobra.Command {
	var forUser int64

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects",
		Long: `List all projects, or only the projects a person participates in.

Example:
  tinyplan project list
  tinyplan project list --user 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pdb, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = pdb.Close() }()

			projects, err := pdb.FetchProjects()
			if forUser > 0 {
				projects, err = pdb.FetchUserProjects(forUser)
			}
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}

			w := newTable(cmd.OutOrStdout())
			printHeader(w, "ID", "TITLE")
			for _, p := range projects {
				fmt.Fprintf(w, "%d\t%s\n", p.ID, truncate(p.Title, 60))
			}
			return w.Flush()
		},
	}

	cmd.Flags().Int64Var(&forUser, "user", 0, "only projects this user participates in")

	return cmd
}

func newProjectAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <user-id> <project-id>",
		Short: "Put a person on a project",
		Long:  "Put a person on a project. Assigning someone twice is harmless.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			projectID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[1])
			}

			pdb, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = pdb.Close() }()

			if err := pdb.AddUserToProject(userID, projectID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Assigned user %d to project %d\n", userID, projectID)
			return nil
		},
	}
}

func newProjectMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members <project-id>",
		Short: "List the people on a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}

			pdb, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = pdb.Close() }()

			users, err := pdb.FetchProjectUsers(projectID)
			if err != nil {
				return err
			}

			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No members.")
				return nil
			}

			w := newTable(cmd.OutOrStdout())
			printHeader(w, "ID", "NAME", "PHONE")
			for _, u := range users {
				fmt.Fprintf(w, "%d\t%s\t%s\n", u.ID, truncate(u.Name, 40), u.Phone)
			}
			return w.Flush()
		},
	}
}

func newProjectRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove a project and its memberships",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid project id %q", args[0])
			}

			pdb, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = pdb.Close() }()

			if err := pdb.DeleteProject(id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %d\n", id)
			return nil
		},
	}
}
