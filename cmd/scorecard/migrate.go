package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/interview-scorecard/internal/config"
	"github.com/jonathan/interview-scorecard/internal/db"
	"github.com/spf13/cobra"
)

var (
	migrateDatabaseURL string
	migratePrint       bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database tables",
	Long:  "Apply the schema to the database. Statements are idempotent, so running it twice is safe.",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL)")
	migrateCmd.Flags().BoolVar(&migratePrint, "print", false, "Print the schema instead of applying it")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	if migratePrint {
		_, err := fmt.Fprint(cmd.OutOrStdout(), db.Schema())
		return err
	}

	databaseURL := migrateDatabaseURL
	if databaseURL == "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		databaseURL = cfg.Database.URL
	}
	if databaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL or use --db-url)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Schema applied")
	return nil
}
