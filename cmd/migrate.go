// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/tribes-music/session-service/migrations"
)

var (
	migrateDSN    string
	migrateFormat string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, closeDB, err := newMigrationProvider(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()

		results, err := provider.Up(cmd.Context())
		if err != nil {
			return err
		}
		return printMigrationResults(cmd, results)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [version]",
	Short: "Roll back the last migration, or down to the given version",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, closeDB, err := newMigrationProvider(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()

		var results []*goose.MigrationResult
		if len(args) == 1 {
			version, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || version < 0 {
				return fmt.Errorf("invalid version number: %q", args[0])
			}
			results, err = provider.DownTo(cmd.Context(), version)
			if err != nil {
				return err
			}
		} else {
			result, err := provider.Down(cmd.Context())
			if err != nil {
				return err
			}
			results = append(results, result)
		}
		return printMigrationResults(cmd, results)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of every known migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, closeDB, err := newMigrationProvider(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()

		statuses, err := provider.Status(cmd.Context())
		if err != nil {
			return err
		}

		if migrateFormat == "json" {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(statuses)
		}
		for _, s := range statuses {
			appliedAt := "Pending"
			if s.State == goose.StateApplied {
				appliedAt = s.AppliedAt.Format(time.RFC3339)
			}
			cmd.Printf("%-24s  %s\n", appliedAt, s.Source.Path)
		}
		return nil
	},
}

var migrateCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Exit non-zero if migrations are pending",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, closeDB, err := newMigrationProvider(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()

		hasPending, err := provider.HasPending(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to check pending migrations: %w", err)
		}
		current, versionErr := provider.GetDBVersion(cmd.Context())

		if migrateFormat == "json" {
			status := "ok"
			if hasPending {
				status = "pending"
			} else if versionErr != nil {
				status = "unknown"
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
				"status":  status,
				"version": current,
			})
		}

		if hasPending {
			return fmt.Errorf("migrations are pending: current version %d", current)
		}
		cmd.Printf("Database is up to date (version %d)\n", current)
		return nil
	},
}

// newMigrationProvider opens a plain database/sql connection over the pgx
// stdlib driver; goose does not work against a pgxpool.
func newMigrationProvider(ctx context.Context) (*goose.Provider, func() error, error) {
	dsn := migrateDSN
	if dsn == "" {
		dsn = os.Getenv("DSN")
	}
	if dsn == "" {
		return nil, nil, fmt.Errorf("no DSN provided, set the --dsn flag or the DSN environment variable")
	}

	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("DSN validation failed: %w", err)
	}

	db := stdlib.OpenDB(*config)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("DB connection failed: %w", err)
	}

	var opts []goose.ProviderOption
	if migrateFormat == "json" {
		opts = append(opts, goose.WithLogger(goose.NopLogger()))
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.EmbedMigrations, opts...)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to create goose provider: %w", err)
	}

	return provider, db.Close, nil
}

func printMigrationResults(cmd *cobra.Command, results []*goose.MigrationResult) error {
	if migrateFormat == "json" {
		if results == nil {
			results = []*goose.MigrationResult{}
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
			"applied": results,
		})
	}
	for _, r := range results {
		cmd.Printf("Applied %s in %s\n", r.Source.Path, r.Duration)
	}
	return nil
}

func init() {
	migrateCmd.PersistentFlags().StringVar(&migrateDSN, "dsn", "", "PostgreSQL DSN connection string (falls back to the DSN environment variable)")
	migrateCmd.PersistentFlags().StringVarP(&migrateFormat, "format", "f", "text", "Output format (text or json)")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
	migrateCmd.AddCommand(migrateCheckCmd)
	rootCmd.AddCommand(migrateCmd)
}
