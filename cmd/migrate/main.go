package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	pg "pettabl/internal/adapters/storage/postgres"
	"pettabl/internal/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dsn string

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Migraciones de la base de pettabl",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dsn, "dsn", "", "DSN de Postgres (default: DB_DSN)")

	open := func() (*migrate.Migrate, error) {
		if dsn == "" {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			dsn = cfg.DBDSN
		}
		if dsn == "" {
			return nil, errors.New("DB_DSN environment variable or --dsn is required")
		}
		return pg.NewMigrator(dsn)
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica las migraciones pendientes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				m, err := open()
				if err != nil {
					return err
				}
				defer m.Close()
				if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
					return err
				}
				cmd.Println("Migration up successful")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Revierte migraciones (todas si no se indica steps)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := open()
				if err != nil {
					return err
				}
				defer m.Close()

				if len(args) == 1 {
					n, convErr := strconv.Atoi(args[0])
					if convErr != nil || n <= 0 {
						return fmt.Errorf("invalid steps %q", args[0])
					}
					err = m.Steps(-n)
				} else {
					err = m.Down()
				}
				if err != nil && !errors.Is(err, migrate.ErrNoChange) {
					return err
				}
				cmd.Println("Migration down successful")
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Muestra la versión actual del esquema",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				m, err := open()
				if err != nil {
					return err
				}
				defer m.Close()

				v, dirty, err := m.Version()
				if errors.Is(err, migrate.ErrNilVersion) {
					cmd.Println("no migrations applied")
					return nil
				}
				if err != nil {
					return err
				}
				cmd.Printf("version %d (dirty=%t)\n", v, dirty)
				return nil
			},
		},
	)

	return root
}
