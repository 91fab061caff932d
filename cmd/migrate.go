package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/parc-info/db"
	"github.com/frahmantamala/parc-info/internal/core/database"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		Use:       "migrate [up|down|status|version]",
		Short:     "Apply the embedded SQL migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status", "version"},
		RunE:      runMigration,
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "shorthand for `migrate down`")
}

// migrationCommand resolves the goose command from args and the rollback flag.
func migrationCommand(args []string, rollback bool) string {
	switch {
	case len(args) == 1:
		return args[0]
	case rollback:
		return "down"
	default:
		return "up"
	}
}

func runMigration(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	command := migrationCommand(args, migrateRollback)

	if cfg.Database.Driver == database.DriverSQLite {
		if command != "up" {
			return fmt.Errorf("migrate %s: not supported for sqlite, the schema comes from the models", command)
		}
		gdb, err := database.Open(cfg.Database)
		if err != nil {
			return err
		}
		defer database.Close(gdb)
		return database.AutoMigrate(gdb)
	}

	sqlDB, err := goose.OpenDBWithDriver("pgx", cfg.Database.GetDSN())
	if err != nil {
		return fmt.Errorf("goose: open database: %w", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(db.Migrations)
	goose.SetTableName("schema_migrations")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := goose.RunContext(ctx, command, sqlDB, db.MigrationsDir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
