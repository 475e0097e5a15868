// Command migrate applies the products collection migrations to MongoDB.
package main

import (
	"embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/chetanpal14/web-application-assignment/internal/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/spf13/cobra"

	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
)

//go:embed migrations/*.json
var migrations embed.FS

// migrationsCollection stores the applied version next to the products collection.
const migrationsCollection = "schema_migrations"

var (
	uriFlag      string
	databaseFlag string
)

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Manage the products collection schema",
	Long:          "Applies the embedded MongoDB command migrations (collection and indexes) of the product service.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(func(m *migrate.Migrate) error {
			if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("failed to run up migrations: %w", err)
			}
			cmd.Println("migrations applied successfully")
			return nil
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down [n]",
	Short: "Revert the last n migrations, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := parseSteps(args)
		if err != nil {
			return err
		}
		return withMigrator(func(m *migrate.Migrate) error {
			if steps == 0 {
				err = m.Down()
			} else {
				err = m.Steps(-steps)
			}
			if err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("failed to run down migrations: %w", err)
			}
			cmd.Println("migrations reverted successfully")
			return nil
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current migration version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(func(m *migrate.Migrate) error {
			v, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				cmd.Println("no migrations applied")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			cmd.Printf("version: %d, dirty: %v\n", v, dirty)
			return nil
		})
	},
}

var forceCmd = &cobra.Command{
	Use:   "force <version>",
	Short: "Force set the migration version (use with caution)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		return withMigrator(func(m *migrate.Migrate) error {
			if err := m.Force(v); err != nil {
				return fmt.Errorf("failed to force version: %w", err)
			}
			cmd.Printf("forced to version %d\n", v)
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&uriFlag, "uri", "", "MongoDB connection string (default from config)")
	rootCmd.PersistentFlags().StringVar(&databaseFlag, "database", "", "database name (default from config)")
	rootCmd.AddCommand(upCmd, downCmd, versionCmd, forceCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// withMigrator opens a migrator for the configured database and closes it after fn.
func withMigrator(fn func(m *migrate.Migrate) error) error {
	uri, dbName, err := target()
	if err != nil {
		return err
	}
	dsn, err := migrationURL(uri, dbName)
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	return fn(m)
}

// target resolves the connection string and database name, flags first.
func target() (string, string, error) {
	uri, dbName := uriFlag, databaseFlag
	if uri != "" && dbName != "" {
		return uri, dbName, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", "", fmt.Errorf("failed to load configuration: %w", err)
	}
	if uri == "" {
		uri = cfg.Database.URI
	}
	if dbName == "" {
		dbName = cfg.Database.Name
	}
	return uri, dbName, nil
}

// migrationURL puts the database name in the path of uri, which is where the
// migrate mongodb driver reads it from.
func migrationURL(uri, dbName string) (string, error) {
	if dbName == "" {
		return "", errors.New("database name is not configured")
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = "/" + strings.TrimPrefix(dbName, "/")
	q := u.Query()
	if q.Get("x-migrations-collection") == "" {
		q.Set("x-migrations-collection", migrationsCollection)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// parseSteps reads the optional step count of down.
func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid step count %q", args[0])
	}
	return n, nil
}
