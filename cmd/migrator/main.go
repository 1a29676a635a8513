package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"
)

const dsnEnvName = "GREENCART_SQL_DB"

func main() {
	dsn := pflag.StringP("dsn", "d", "", "postgres connection string")
	dir := pflag.StringP("migrations", "m", "migrations", "migrations directory")
	pflag.Parse()

	initLogger()

	if *dsn == "" {
		*dsn = os.Getenv(dsnEnvName)
	}
	if *dsn == "" {
		slog.Error(fmt.Sprintf("--dsn flag or %s is required", dsnEnvName))
		os.Exit(2)
	}

	if err := run(*dsn, *dir); err != nil {
		slog.Error("failed to migrate", "err", err)
		os.Exit(2)
	}
}

func run(dsn, dir string) error {
	m, err := migrate.New("file://"+dir, toMigrateURL(dsn))
	if err != nil {
		return err
	}
	m.Log = migrateLogger{}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("schema is up to date")
			return nil
		}
		return err
	}

	slog.Info("migrations applied")
	return nil
}

// toMigrateURL rewrites the configured postgres dsn to the scheme the
// pgx/v5 migrate driver registers under.
func toMigrateURL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return "pgx5://" + dsn
}

type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...any) {
	slog.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (migrateLogger) Verbose() bool { return true }

func initLogger() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
}
