package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codeblaze/portal/internal/authflow"
)

func newRegisterCmd(a *app) *cobra.Command {
	var form authflow.RegisterForm
	var otp string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and verify it with the mailed code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if form.ConfirmPassword == "" {
				form.ConfirmPassword = form.Password
			}

			ctx, cancel := a.requestContext(cmd)
			err := a.flow.Register(ctx, form)
			cancel()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.flow.Notice())

			if otp == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Code: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no code entered")
				}
				otp = strings.TrimSpace(line)
			}

			ctx, cancel = a.requestContext(cmd)
			defer cancel()
			if err := a.flow.SubmitOTP(ctx, authflow.ParseOTP(otp)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.flow.Notice())
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "full name")
	cmd.Flags().StringVar(&form.Email, "email", "", "account e-mail")
	cmd.Flags().StringVar(&form.Password, "password", "", "password, at least 8 characters")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "password again (defaults to --password)")
	cmd.Flags().StringVar(&otp, "otp", "", "verification code; prompted for when omitted")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var form authflow.LoginForm

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print the access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			s, err := a.flow.Login(ctx, form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n%s\n", s.User.Email, s.User.Role, s.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Email, "email", "", "account e-mail")
	cmd.Flags().StringVar(&form.Password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newProfileCmd(a *app) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the account behind an access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd)
			defer cancel()

			a.client.SetToken(token)
			u, err := a.client.Profile(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\nrole: %s\nverified: %t\n", u.Name, u.Email, u.Role, u.Verified)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "access token printed by login")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func newForgotPasswordCmd(a *app) *cobra.Command {
	var form authflow.ForgotPasswordForm

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset link",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.flow.ForgotPassword(); err != nil {
				return err
			}

			ctx, cancel := a.requestContext(cmd)
			defer cancel()
			if err := a.flow.SubmitForgotPassword(ctx, form); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.flow.Notice())
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Email, "email", "", "account e-mail")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newResetPasswordCmd(a *app) *cobra.Command {
	var token string
	var form authflow.ResetPasswordForm

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password with the token from a reset link",
		RunE: func(cmd *cobra.Command, args []string) error {
			if form.ConfirmPassword == "" {
				form.ConfirmPassword = form.Password
			}
			if err := a.flow.OpenResetLink(token); err != nil {
				return err
			}

			ctx, cancel := a.requestContext(cmd)
			defer cancel()
			if err := a.flow.SubmitResetPassword(ctx, form); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.flow.Notice())
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "token from the reset link")
	cmd.Flags().StringVar(&form.Password, "password", "", "new password, at least 8 characters")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "new password again (defaults to --password)")
	_ = cmd.MarkFlagRequired("token")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
