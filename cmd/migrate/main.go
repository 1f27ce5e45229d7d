package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"travelagg/cfg"
	"travelagg/internal/catalog"
	"travelagg/pkg/db"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the database schema and catalog data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(_ *db.SQLClient, m *db.Migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				return printVersion(cmd, m)
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back every migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(_ *db.SQLClient, m *db.Migrator) error {
				if err := m.Down(); err != nil {
					return err
				}
				return printVersion(cmd, m)
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(_ *db.SQLClient, m *db.Migrator) error {
				return printVersion(cmd, m)
			})
		},
	})

	root.AddCommand(importCmd())
	return root
}

func importCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the catalog tables with the contents of a YAML catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := catalog.LoadFile(file)
			if err != nil {
				return err
			}
			return withMigrator(cmd.Context(), func(client *db.SQLClient, m *db.Migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				if err := catalog.NewRepository(client).Import(cmd.Context(), snap.Document()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d agents, %d packages, %d routes, %d ribbons\n",
					len(snap.Agents()), len(snap.Packages()), len(snap.Routes()), len(snap.Ribbons()))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML catalog to import")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func withMigrator(ctx context.Context, fn func(*db.SQLClient, *db.Migrator) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	config, err := cfg.LoadDatabase()
	if err != nil {
		return err
	}

	client, err := db.NewSQLClient(ctx, db.Driver(config.Driver), config.DSN())
	if err != nil {
		return err
	}
	defer client.Close()

	m, err := db.NewMigrator(client, config.MigrationsURL)
	if err != nil {
		return err
	}
	return fn(client, m)
}

func printVersion(cmd *cobra.Command, m *db.Migrator) error {
	v, dirty, err := m.Version()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty: %t)\n", v, dirty)
	return nil
}
