package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tinyplan/tinyplan/internal/db"
)

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the database as YAML",
		Long: `Dump all people, tasks, projects, and memberships as YAML.

Writes to stdout unless -o is given. Row ids are preserved so the
dump can be restored with "tinyplan import".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pdb, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = pdb.Close() }()

			snap, err := pdb.Export()
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(snap)
			if err != nil {
				return fmt.Errorf("marshal snapshot: %w", err)
			}

			if outFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			if err := os.WriteFile(outFile, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", outFile, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", "", "write to file instead of stdout")

	return cmd
}

// newImportCmd creates the import command.
func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Restore the database from a YAML dump",
		Long: `Restore the database from a YAML dump produced by "tinyplan export".

Existing data is replaced. The restore runs in one transaction, so a
malformed dump leaves the current data untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			var snap db.Snapshot
			if err := yaml.Unmarshal(data, &snap); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			pdb, err := openDB()
			if err != nil {
				return err
			}
			defer func() { _ = pdb.Close() }()

			if err := pdb.Import(cmd.Context(), &snap); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d users, %d tasks, %d projects, %d memberships\n",
				len(snap.Users), len(snap.Tasks), len(snap.Projects), len(snap.Memberships))
			return nil
		},
	}
}
