package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/interview-scorecard/internal/config"
	"github.com/jonathan/interview-scorecard/internal/db"
	"github.com/jonathan/interview-scorecard/internal/types"
	"github.com/spf13/cobra"
)

var (
	roleEmail       string
	roleName        string
	roleDatabaseURL string
)

var setRoleCmd = &cobra.Command{
	Use:   "set-role",
	Short: "Assign a role to a registered user",
	Long: `Assign a role to a user directly in the database.

Self-registration always creates Viewers. Use this to promote the first Admin,
who can then manage roles through PUT /users/{id}/role.`,
	RunE: runSetRole,
}

func init() {
	setRoleCmd.Flags().StringVar(&roleEmail, "email", "", "Email of the registered user (required)")
	setRoleCmd.Flags().StringVar(&roleName, "role", "", "Role to assign (required)")
	setRoleCmd.Flags().StringVar(&roleDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL)")

	if err := setRoleCmd.MarkFlagRequired("email"); err != nil {
		panic(fmt.Sprintf("failed to mark email flag as required: %v", err))
	}
	if err := setRoleCmd.MarkFlagRequired("role"); err != nil {
		panic(fmt.Sprintf("failed to mark role flag as required: %v", err))
	}
	rootCmd.AddCommand(setRoleCmd)
}

// parseRole checks name against the known roles.
func parseRole(name string) (types.Role, error) {
	req := types.UpdateUserRoleRequest{Role: types.Role(name)}
	if err := req.Validate(); err != nil {
		return "", fmt.Errorf("unknown role %q", name)
	}
	return req.Role, nil
}

func runSetRole(cmd *cobra.Command, _ []string) error {
	role, err := parseRole(roleName)
	if err != nil {
		return err
	}

	databaseURL := roleDatabaseURL
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

	user, err := database.GetUserByEmail(ctx, roleEmail)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("no user registered with email %s", roleEmail)
	}
	if err := database.UpdateUserRole(ctx, user.ID, role); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "User %d (%s) is now %s\n", user.ID, user.Email, role)
	return nil
}
