package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"

	"passkeeper/internal/buildinfo"
	"passkeeper/internal/cli"
	"passkeeper/internal/config"
	"passkeeper/internal/cryptox"
	"passkeeper/internal/keystore"
	"passkeeper/internal/logging"
	"passkeeper/internal/repositories/repomanager"
	"passkeeper/internal/vault"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	if err := run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}

// sqlDriverName maps a configured database driver to the name it is
// registered under in database/sql.
func sqlDriverName(driver string) (string, error) {
	switch driver {
	case repomanager.DriverSQLite:
		return "sqlite", nil
	case repomanager.DriverPostgres:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unknown database driver: %q", driver)
	}
}

func newKeyStore(cfg *config.Config) (keystore.KeyStore, func() error, error) {
	switch cfg.KeyStoreBackend {
	case keystore.BackendFile:
		ks, err := keystore.NewFileKeyStore(cfg.KeyStorePath)
		if err != nil {
			return nil, nil, err
		}
		return ks, func() error { return nil }, nil
	case keystore.BackendBolt:
		ks, err := keystore.NewBoltKeyStore(cfg.KeyStorePath)
		if err != nil {
			return nil, nil, err
		}
		return ks, ks.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown key store backend: %q", cfg.KeyStoreBackend)
	}
}

func run(ctx context.Context) error {
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	driverName, err := sqlDriverName(cfg.DatabaseDriver)
	if err != nil {
		return err
	}

	db, err := sql.Open(driverName, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("opening credential store: %w", err)
	}
	defer db.Close()

	rm, err := repomanager.New(cfg.DatabaseDriver)
	if err != nil {
		return err
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	keys, closeKeys, err := newKeyStore(cfg)
	if err != nil {
		return err
	}
	defer closeKeys()

	cipher, err := cryptox.New(cfg.CipherAlgorithm)
	if err != nil {
		return err
	}

	v := vault.New(db, rm, keys, cipher, logger)
	cli.NewApp(v).Run(ctx)
	return nil
}
