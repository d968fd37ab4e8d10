package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bookhaven/bookhaven-client/internal/api"
	"github.com/bookhaven/bookhaven-client/internal/session"
	pkgerrors "github.com/bookhaven/bookhaven-client/pkg/errors"
)

func newLoginCmd(app **App) *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok := (*app).Session.Login(cmd.Context(), username, password); !ok {
				return pkgerrors.New(pkgerrors.CodeUnauthorized, "login failed")
			}
			user := (*app).Session.CurrentUser()
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newRegisterCmd(app **App) *cobra.Command {
	var username string
	var email string
	var password string
	var role string
	var avatarPath string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := session.RegisterInput{
				Username: username,
				Email:    email,
				Password: password,
				Role:     role,
			}
			if avatarPath != "" {
				file, err := os.Open(avatarPath)
				if err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "open avatar file")
				}
				defer file.Close()
				input.Avatar = &api.FileField{
					Field:    "user_img",
					Filename: avatarPath,
					Reader:   file,
				}
			}

			ok, message := (*app).Session.Register(cmd.Context(), input)
			if !ok {
				return pkgerrors.New(pkgerrors.CodeValidation, message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account created.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&role, "role", "buyer", "Account role (buyer or seller)")
	cmd.Flags().StringVar(&avatarPath, "avatar", "", "Path to a profile image")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd(app **App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and discard stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return (*app).Session.Logout(cmd.Context())
		},
	}
}

func newWhoamiCmd(app **App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := (*app).Session.CurrentUser()
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", user.Username, user.Email, user.Role)
			return nil
		},
	}
}
