package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"process-maps-backend/internal/auth"
	"process-maps-backend/internal/config"
	"process-maps-backend/internal/models"
	"process-maps-backend/internal/repo"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		config.ConfigureLogger(cfg.LogLevel, cfg.LogFormat)

		db, err := config.OpenDB(cfg.Database)
		if err != nil {
			return err
		}
		defer config.CloseDB(db)

		return config.Migrate(db)
	},
}

var (
	tokenEmail string
	tokenName  string
)

// tokenCmd mints a session token for scripting and the procmap CLI
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a session token for a user",
	Long: `Issue a session token for the given email, creating the user if needed.

The token is accepted as a Bearer credential by every authenticated route.`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "email of the user to sign in as (required)")
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "display name for a newly created user")
	_ = tokenCmd.MarkFlagRequired("email")
}

func runToken(cmd *cobra.Command, args []string) error {
	email := strings.TrimSpace(tokenEmail)
	if email == "" {
		return fmt.Errorf("--email must not be blank")
	}

	cfg := config.Load()
	config.ConfigureLogger(cfg.LogLevel, cfg.LogFormat)

	sessions, err := auth.NewSessions(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	if err != nil {
		return err
	}

	db, err := config.OpenDB(cfg.Database)
	if err != nil {
		return err
	}
	defer config.CloseDB(db)

	users := repo.NewUserRepository(db)
	user, err := users.GetUserByEmail(context.Background(), email)
	if errors.Is(err, repo.ErrUserNotFound) {
		user, err = users.UpsertUser(context.Background(), &models.User{
			Email: email,
			Name:  tokenName,
		})
	}
	if err != nil {
		return err
	}

	token, err := sessions.Issue(user.Email, user.Name)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
