// Package cli implements the tinyplan command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tinyplan/tinyplan/internal/config"
	"github.com/tinyplan/tinyplan/internal/db"
	"github.com/tinyplan/tinyplan/internal/db/driver"
	planerrors "github.com/tinyplan/tinyplan/internal/errors"
)

var (
	cfgFile string
	dbPath  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tinyplan",
	Short: "Local planner for people, tasks, and shared projects",
	Long: `tinyplan keeps a local database of people, their to-do items, and the
shared projects they collaborate on.

Quick start:
  tinyplan init                        Initialize tinyplan in current directory
  tinyplan user add "Ann" "+1-000"     Register a person
  tinyplan task add 1 "Buy milk"       Add a task for user 1
  tinyplan project add "Launch"        Create a shared project
  tinyplan project assign 1 1          Put user 1 on project 1`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if pe := planerrors.AsPlanError(err); pe != nil {
			fmt.Fprintln(os.Stderr, pe.UserMessage())
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .tinyplan/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database file (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newUserCmd())
	rootCmd.AddCommand(newTaskCmd())
	rootCmd.AddCommand(newProjectCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in .tinyplan directory
		viper.AddConfigPath(config.Dir)
		viper.AddConfigPath("$HOME/" + config.Dir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("TINYPLAN")
	viper.AutomaticEnv()

	// Missing config files are fine; defaults apply.
	_ = viper.ReadInConfig()
}

// openDB opens the configured database. Callers own the returned handle and
// must Close it.
func openDB() (*db.PlannerDB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// viper sees the --config file, which config.Load does not.
	if v := viper.GetString("database.dialect"); v != "" {
		cfg.Database.Dialect = v
	}
	if v := viper.GetString("database.path"); v != "" {
		cfg.Database.Path = v
	}
	if v := viper.GetString("database.dsn"); v != "" {
		cfg.Database.DSN = v
	}

	// The --db flag wins over everything.
	if dbPath != "" {
		cfg.Database.Dialect = "sqlite"
		cfg.Database.Path = dbPath
	}

	dialect, err := driver.ParseDialect(cfg.Database.Dialect)
	if err != nil {
		return nil, err
	}

	return db.OpenPlannerWithDialect(cfg.DSN(), dialect)
}
