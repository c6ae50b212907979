// Command migrate applies the database schema without starting the API server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/yukikurage/priority-focus-api/internal/config"
	"github.com/yukikurage/priority-focus-api/internal/database"
	"github.com/yukikurage/priority-focus-api/internal/logging"
)

var (
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Priority Focus schema migrations",
	Long:  "Creates or updates the managers, team_members and priorities tables and their list indexes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := connect()
		if err != nil {
			return err
		}
		defer func() { _ = database.Close() }()

		return database.Migrate(log)
	},
}

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create missing list indexes only",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := connect()
		if err != nil {
			return err
		}
		defer func() { _ = database.Close() }()

		return database.AddIndexes(database.GetDB(), log)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(indexesCmd)
}

func connect() (*slog.Logger, error) {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := config.Load()
	level := cfg.LogLevel
	if verbose {
		level = "DEBUG"
	}
	log := logging.New(level)

	if err := database.Connect(cfg, log); err != nil {
		return nil, err
	}
	return log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
