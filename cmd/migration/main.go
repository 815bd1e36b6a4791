package main

import (
	"context"
	"fmt"
	"os"
	"sisregip-service/internal/app/config"
	"sisregip-service/internal/app/drivers/database"
	"sisregip-service/internal/app/drivers/logger"
	"sisregip-service/internal/migration"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	internalConfig := config.NewInternalConfig()
	driverConfig := config.NewDriverConfig(internalConfig)
	log := logger.NewLogrusLogger(internalConfig.App.Env, "")

	if err := newRootCommand(driverConfig, log).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(driverConfig *config.DriverConfig, log *logrus.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "sisregip-migrate",
		Short:         "Manage the SISREGIP protocol database schema",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&driverConfig.Database.Driver, "driver", driverConfig.Database.Driver, "database driver (postgres or sqlite)")
	root.PersistentFlags().StringVar(&driverConfig.Database.SQLitePath, "sqlite-path", driverConfig.Database.SQLitePath, "sqlite database file")

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				db := database.NewSQLDatabase(driverConfig)
				defer db.Close()

				applied, err := migration.Up(db, driverConfig.Database.Driver)
				if err != nil {
					return err
				}
				log.WithField("driver", driverConfig.Database.Driver).Infof("Applied %d migrations", applied)
				return nil
			},
		},
		newDownCommand(driverConfig, log),
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they were applied",
			RunE: func(cmd *cobra.Command, args []string) error {
				db := database.NewSQLDatabase(driverConfig)
				defer db.Close()

				statuses, err := migration.ListStatus(db, driverConfig.Database.Driver)
				if err != nil {
					return err
				}
				for _, status := range statuses {
					state := "pending"
					if status.Applied {
						state = "applied"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%-50s %s\n", status.ID, state)
				}
				return nil
			},
		},
		newSchemaDumpCommand(driverConfig),
		&cobra.Command{
			Use:   "version",
			Short: "Print the build version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\nTag: %s\n", Version, Tag)
			},
		},
	)
	return root
}

func newDownCommand(driverConfig *config.DriverConfig, log *logrus.Logger) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db := database.NewSQLDatabase(driverConfig)
			defer db.Close()

			rolledBack, err := migration.Down(db, driverConfig.Database.Driver, steps)
			if err != nil {
				return err
			}
			log.WithField("driver", driverConfig.Database.Driver).Infof("Rolled back %d migrations", rolledBack)
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back (0 rolls back all)")
	return cmd
}

func newSchemaDumpCommand(driverConfig *config.DriverConfig) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "schema-dump",
		Short: "Print tables, columns, keys and indexes of the live schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db := database.NewSQLDatabase(driverConfig)
			defer db.Close()

			schema, err := migration.DumpSchema(context.Background(), db, driverConfig.Database.Driver)
			if err != nil {
				return err
			}

			switch format {
			case "yaml":
				encoder := yaml.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent(2)
				defer encoder.Close()
				return encoder.Encode(schema)
			case "json":
				out, err := json.MarshalIndent(schema, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return err
			default:
				return fmt.Errorf("unknown format %q, expected json or yaml", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format (json or yaml)")
	return cmd
}
