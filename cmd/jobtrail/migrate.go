package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kiranshivaraju/jobtrail/internal/config"
	"github.com/kiranshivaraju/jobtrail/internal/store"
)

func newMigrateCmd(root *rootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long: `Apply every pending up migration to DATABASE_URL.
Only the postgres store backend is managed here; Supabase projects apply the
same SQL through their own migration tooling.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(root.cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.Database.Backend != config.BackendPostgres {
				return fmt.Errorf("migrate requires STORE_BACKEND=postgres, got %q", cfg.Database.Backend)
			}
			if err := store.RunMigrations(cfg.Database.URL, dir); err != nil {
				return err
			}
			slog.Info("database migrations applied", "dir", dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "migrations", "directory holding SQL migrations")
	return cmd
}
