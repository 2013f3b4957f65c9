package config

import (
	"flag"
	"os"

	"passkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-r string   database driver: sqlite or postgres
//	-d string   database DSN (file path for sqlite)
//	-b string   keystore backend: file or bolt
//	-k string   keystore path (directory for file, db file for bolt)
//	-e string   cipher algorithm: aes-gcm or xchacha20
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-r", "-d", "-b", "-k", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDriver, "r", cfg.DatabaseDriver, "database driver (sqlite|postgres)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.KeyStoreBackend, "b", cfg.KeyStoreBackend, "keystore backend (file|bolt)")
	fs.StringVar(&cfg.KeyStorePath, "k", cfg.KeyStorePath, "keystore path")
	fs.StringVar(&cfg.CipherAlgorithm, "e", cfg.CipherAlgorithm, "cipher algorithm (aes-gcm|xchacha20)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
