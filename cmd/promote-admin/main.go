package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Apurer/pet-adoption-api/internal/app/api"
	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "promote-admin <email>",
		Short: "Grant the admin role to an existing account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return promote(ctx, args[0], cmd.OutOrStdout())
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "time allowed to reach the database")
	return cmd
}

func promote(ctx context.Context, email string, out io.Writer) error {
	cfg, err := api.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN not set; promoting an in-memory account has no effect")
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	services, err := api.NewServices(ctx, cfg, &platformobservability.Instruments{Logger: logger})
	if err != nil {
		return err
	}
	defer services.Close()

	promoted, err := services.Users.Promote(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to promote %s: %w", email, err)
	}
	_, err = fmt.Fprintf(out, "%s (%s) is now %s\n", promoted.Entity.Email, promoted.Entity.ID, promoted.Entity.Role)
	return err
}
