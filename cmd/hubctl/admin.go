package main

import (
	"errors"
	"fmt"
	"strings"

	"studentshub/internal/domain/user"
	"studentshub/internal/repository"
	ucauth "studentshub/internal/usecase/auth"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newCreateAdminCmd() *cobra.Command {
	var email, password, firstName, lastName string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email = user.NormalizeEmail(email)
			if !strings.Contains(email, "@") {
				return errors.New("--email must be a valid address")
			}
			if len(strings.TrimSpace(password)) < 8 {
				return errors.New("--password must be at least 8 characters")
			}

			db, _, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			hash, err := ucauth.HashPassword(password, bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			u, err := repository.NewPostgresStore(db).Users().Create(cmd.Context(), user.User{
				ID:           uuid.New(),
				Email:        email,
				PasswordHash: hash,
				Role:         user.RoleAdmin,
				FirstName:    strings.TrimSpace(firstName),
				LastName:     strings.TrimSpace(lastName),
				IsActive:     true,
			})
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("user %s already exists", email)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", u.Email, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email (required)")
	cmd.Flags().StringVar(&password, "password", "", "admin password (required)")
	cmd.Flags().StringVar(&firstName, "first-name", "Platform", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "Admin", "last name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
