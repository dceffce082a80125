package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"folio/api/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		db, err := database.NewSQLDB(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			return err
		}
		log.Info("schema applied", zap.String("driver", cfg.Database.Driver))

		if cfg.Analytics.Backend == "clickhouse" {
			ch, err := database.NewClickHouseDB(ctx, cfg.ClickHouse, log)
			if err != nil {
				return err
			}
			defer ch.Close()
			if err := ch.Migrate(ctx); err != nil {
				return err
			}
			log.Info("clickhouse schema applied")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
