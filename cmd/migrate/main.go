package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"storefront/config"
)

const (
	dsnFlag            = "dsn"
	migrationsPathFlag = "migrations-path"
	stepsFlag          = "steps"
)

type migrationLogger struct {
	log *zap.Logger
}

func (l migrationLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...))
}

func (l migrationLogger) Verbose() bool { return true }

// usage: migrate [flags] up|down|version
func main() {
	cfg := config.LoadConfig()

	dsn := pflag.StringP(dsnFlag, "d", cfg.DSN(), "postgres connection string")
	migrationsPath := pflag.StringP(migrationsPathFlag, "m", cfg.MigrationsDir, "directory holding the SQL migrations")
	steps := pflag.IntP(stepsFlag, "n", 0, "number of migrations to apply or roll back, 0 means all (up) or one (down)")
	pflag.Parse()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	command := "up"
	if pflag.NArg() > 0 {
		command = pflag.Arg(0)
	}

	if err := run(command, *dsn, *migrationsPath, *steps, logger); err != nil {
		logger.Error("migration failed", zap.String("command", command), zap.Error(err))
		_ = logger.Sync()
		os.Exit(2)
	}
}

func run(command, dsn, migrationsPath string, steps int, logger *zap.Logger) error {
	m, err := config.NewMigrator(dsn, migrationsPath)
	if err != nil {
		return err
	}
	defer m.Close()
	m.Log = migrationLogger{log: logger}

	switch command {
	case "up":
		if steps > 0 {
			err = m.Steps(steps)
		} else {
			err = m.Up()
		}
	case "down":
		if steps <= 0 {
			steps = 1
		}
		err = m.Steps(-steps)
	case "version":
		version, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			logger.Info("no migrations applied yet")
			return nil
		}
		if verr != nil {
			return verr
		}
		logger.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	default:
		return fmt.Errorf("unknown command %q, want up, down or version", command)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to apply")
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("migrations applied", zap.String("command", command))
	return nil
}
