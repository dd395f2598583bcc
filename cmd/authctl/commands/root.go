// Package commands implements the authctl command tree.
package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/codeblaze/portal/internal/authflow"
	"github.com/codeblaze/portal/internal/pkg/config"
	"github.com/codeblaze/portal/pkg/client"
	"github.com/codeblaze/portal/pkg/logger"
)

// app is shared by every subcommand once the root has loaded the config.
type app struct {
	cfg    *config.Config
	client *client.Client
	flow   *authflow.Controller
	log    zerolog.Logger
}

func (a *app) requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.cfg.RequestTimeout)
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}
	var backendURL string

	rootCmd := &cobra.Command{
		Use:           "authctl",
		Short:         "Drive the CodeBlaze account flow and browse jobs from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			if backendURL != "" {
				cfg.BackendURL = backendURL
			}
			a.cfg = cfg
			a.log = logger.New(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  true,
				Service: "authctl",
				Output:  cmd.ErrOrStderr(),
			})
			a.client = client.New(cfg.BackendURL, cfg.RequestTimeout)
			a.flow = authflow.NewController(a.client, a.log)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend-url", "", "portal API base URL (overrides BACKEND_URL)")

	rootCmd.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newProfileCmd(a),
		newForgotPasswordCmd(a),
		newResetPasswordCmd(a),
		newJobsCmd(a),
	)

	return rootCmd
}
