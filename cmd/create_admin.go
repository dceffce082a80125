package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"folio/api/database"
	"folio/api/store"
)

var (
	adminEmail    string
	adminPassword string
)

const minPasswordLength = 8

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a dashboard account",
	RunE: func(cmd *cobra.Command, args []string) error {
		hashed, err := hashAdminPassword(adminEmail, adminPassword)
		if err != nil {
			return err
		}

		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := database.NewSQLDB(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()

		admin, err := store.NewAdminStore(db, log).CreateAdmin(ctx, adminEmail, hashed)
		if errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("admin %s already exists", adminEmail)
		}
		if err != nil {
			return err
		}

		log.Info("admin created", zap.String("admin_id", admin.ID.String()), zap.String("email", admin.Email))
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createAdminCmd)
}

func hashAdminPassword(email, password string) ([]byte, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email %q: %w", email, err)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return hashed, nil
}
