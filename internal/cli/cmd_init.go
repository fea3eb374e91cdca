package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tinyplan/tinyplan/internal/config"
	"github.com/tinyplan/tinyplan/internal/db"
)

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize tinyplan in the current directory",
		Long: `Create a .tinyplan directory with a config file and an empty database.

With --global, initialize under the home directory instead. The global
database is the fallback when no project-local .tinyplan exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base := config.Dir
			if global {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("resolve home directory: %w", err)
				}
				base = filepath.Join(home, config.Dir)
			}

			cfgPath := filepath.Join(base, config.ConfigFileName)
			if _, err := os.Stat(cfgPath); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Already initialized (%s exists)\n", cfgPath)
				return nil
			}

			cfg := config.Default()
			cfg.Database.Path = filepath.Join(base, config.DBFileName)
			if err := cfg.Write(cfgPath); err != nil {
				return err
			}

			// Open once so the schema exists before the first command runs.
			pdb, err := db.OpenPlanner(cfg.Database.Path)
			if err != nil {
				return err
			}
			if err := pdb.Close(); err != nil {
				return fmt.Errorf("close database: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized tinyplan in %s\n", base)
			fmt.Fprintf(cmd.OutOrStdout(), "  config:   %s\n", cfgPath)
			fmt.Fprintf(cmd.OutOrStdout(), "  database: %s\n", cfg.Database.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "initialize in the home directory")

	return cmd
}
