// Package config holds runtime settings for the passkeeper CLI and the
// layered loading scheme: defaults, then an optional JSON file, then
// command-line flags, with later sources taking precedence.
package config

// Config holds runtime settings for passkeeper.
//
// Fields:
//   - DatabaseDriver: credential store backend, "sqlite" or "postgres".
//   - DatabaseDSN: DSN for the chosen driver (file path for sqlite).
//   - KeyStoreBackend: key material backend, "file" or "bolt".
//   - KeyStorePath: key directory for "file", database path for "bolt".
//   - CipherAlgorithm: AEAD used for secrets, "aes-gcm" or "xchacha20".
type Config struct {
	DatabaseDriver  string
	DatabaseDSN     string
	KeyStoreBackend string
	KeyStorePath    string
	CipherAlgorithm string
}

// LoadDefaults populates c with sensible defaults for a local vault.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "passkeeper.db"
	c.KeyStoreBackend = "file"
	c.KeyStorePath = "keys"
	c.CipherAlgorithm = "aes-gcm"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
