package main

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/streetmart/backend/internal/infrastructure/config"
	"github.com/streetmart/backend/internal/infrastructure/logger"
	"github.com/streetmart/backend/internal/infrastructure/migration"
	"github.com/streetmart/backend/internal/infrastructure/persistence"
	"github.com/streetmart/backend/internal/infrastructure/seed"
	"github.com/streetmart/backend/migrations"
)

// cli carries the global flags and the lazily built logger and config
type cli struct {
	migrationsPath string
	logLevel       string

	log *zap.Logger
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "migrate",
		Short: "StreetMart database migration tool",
		Long: `Apply and inspect the postgres schema migrations and load the demo marketplace.

Without --path the migrations embedded in the binary are used.
Connection settings come from config.toml and MARKET_DATABASE_* variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c.log = logger.New(&logger.Config{Level: c.logLevel, Format: "console", Output: "stdout"})
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			c.cfg = cfg
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&c.migrationsPath, "path", "", "migrations directory (default: embedded)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(
		c.migratorCmd("up", "Apply all pending migrations", cobra.NoArgs,
			func(m *migration.Migrator, _ []string) error { return m.Up() }),
		c.migratorCmd("down", "Roll back all migrations", cobra.NoArgs,
			func(m *migration.Migrator, _ []string) error { return m.Down() }),
		c.migratorCmd("steps <n>", "Apply n migrations (negative rolls back)", cobra.ExactArgs(1),
			func(m *migration.Migrator, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid step count %q", args[0])
				}
				return m.Steps(n)
			}),
		c.migratorCmd("goto <version>", "Migrate up or down to a version", cobra.ExactArgs(1),
			func(m *migration.Migrator, args []string) error {
				v, err := strconv.ParseUint(args[0], 10, 32)
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return m.GoTo(uint(v))
			}),
		c.migratorCmd("version", "Show the applied migration version", cobra.NoArgs, c.printVersion),
		c.migratorCmd("force <version>", "Set the version without migrating (clears a dirty state)", cobra.ExactArgs(1),
			func(m *migration.Migrator, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return m.Force(v)
			}),
		c.createCmd(),
		c.listCmd(),
		c.seedCmd(),
	)
	return root
}

// migratorCmd builds a subcommand that runs op against an open postgres migrator
func (c *cli) migratorCmd(use, short string, args cobra.PositionalArgs, op func(*migration.Migrator, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(_ *cobra.Command, args []string) error {
			if c.cfg.Database.Driver == config.DriverSQLite {
				return errors.New("SQL migrations target postgres; sqlite builds its schema on server start or with 'seed'")
			}

			db, err := sql.Open("postgres", c.cfg.Database.DSN())
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()
			if err := db.Ping(); err != nil {
				return fmt.Errorf("ping database: %w", err)
			}

			var m *migration.Migrator
			if c.migrationsPath == "" {
				m, err = migration.NewFromFS(db, migrations.FS, c.log)
			} else {
				var abs string
				if abs, err = filepath.Abs(c.migrationsPath); err == nil {
					m, err = migration.New(db, abs, c.log)
				}
			}
			if err != nil {
				return err
			}
			defer func() {
				if err := m.Close(); err != nil {
					c.log.Warn("Failed to close migrator", zap.Error(err))
				}
			}()

			return op(m, args)
		},
	}
}

func (c *cli) printVersion(m *migration.Migrator, _ []string) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if version == 0 {
		c.log.Info("No migrations applied")
		return nil
	}
	c.log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

func (c *cli) sourceDir() string {
	if c.migrationsPath != "" {
		return c.migrationsPath
	}
	return "migrations"
}

func (c *cli) createCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> [description]",
		Short: "Create an empty up/down migration pair",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			description := ""
			if len(args) == 2 {
				description = args[1]
			}
			mf, err := migration.CreateMigration(c.sourceDir(), args[0], description)
			if err != nil {
				return err
			}
			c.log.Info("Migration created",
				zap.String("version", mf.Version),
				zap.String("up_file", mf.UpPath),
				zap.String("down_file", mf.DownPath),
			)
			return nil
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the migration files on disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := migration.ListMigrations(c.sourceDir())
			if err != nil {
				return err
			}
			if len(names) == 0 {
				c.log.Info("No migrations found")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), "  -", name)
			}
			return nil
		},
	}
}

func (c *cli) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo vendors, suppliers, products and listings",
		Long: `Insert whatever part of the demo marketplace is missing. Running it twice is a no-op.
On postgres run 'migrate up' first; on sqlite the schema is created here.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gormLog := logger.NewGormLogger(c.log, logger.MapGormLogLevel(c.cfg.Database.LogLevel))
			db, err := persistence.NewDatabaseWithCustomLogger(&c.cfg.Database, gormLog)
			if err != nil {
				return err
			}
			defer db.Close()

			if db.DriverName() == config.DriverSQLite {
				if err := db.AutoMigrate(); err != nil {
					return err
				}
			}

			res, err := seed.New(db.DB, c.log).Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d products, %d listings\n", res.Users, res.Products, res.Listings)
			return nil
		},
	}
}
