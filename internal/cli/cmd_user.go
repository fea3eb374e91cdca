package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// newUserCmd creates the user command group.
func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage people",
	}

	cmd.AddCommand(newUserAddCmd())
	cmd.AddCommand(newUserListCmd())
	cmd.AddCommand(newUserUpdateCmd())
	cmd.AddCommand(newUserRmCmd())

	return cmd
}

func newUserAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <phone>",
		Short: "Register a person",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pdb, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = pdb.Close() }()

			id, err := pdb.InsertUser(args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created user %d\n", id)
			return nil
		},
	}
}

func newUserListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all people",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pdb, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = pdb.Close() }()

			users, err := pdb.FetchUsers()
			if err != nil {
				return err
			}

			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users found. Add one with: tinyplan user add <name> <phone>")
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

func newUserUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <name> <phone>",
		Short: "Change a person's name and phone",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}

			pdb, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = pdb.Close() }()

			if err := pdb.UpdateUser(id, args[1], args[2]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated user %d\n", id)
			return nil
		},
	}
}

func newUserRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove a person, their tasks, and their memberships",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}

			pdb, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = pdb.Close() }()

			if err := pdb.DeleteUser(id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed user %d\n", id)
			return nil
		},
	}
}
