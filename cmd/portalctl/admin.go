// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/uniportal/internal/platform/config"
	"github.com/taibuivan/uniportal/internal/platform/migration"
	"github.com/taibuivan/uniportal/internal/platform/sec"
	"github.com/taibuivan/uniportal/internal/platform/validate"
)

func newHashPasswordCmd() *cobra.Command {
	var allowWeak bool

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print the stored form of a password read from stdin",
		Long: `Hash a password the way the API stores it, for seeding accounts by hand.

The password is read from standard input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readSecret(cmd.InOrStdin())
			if err != nil {
				return err
			}
			if !allowWeak && !validate.IsStrongPassword(password) {
				return errors.New("password does not meet the password policy (use --allow-weak to override)")
			}

			hash, err := sec.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().BoolVar(&allowWeak, "allow-weak", false, "Accept passwords outside the password policy")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long:  `Apply every pending migration using DATABASE_URL and MIGRATION_PATH from the environment.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}
}
