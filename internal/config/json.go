package config

import (
	"encoding/json"
	"os"

	"passkeeper/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Empty fields
// leave the corresponding Config value untouched.
type JsonConfig struct {
	DatabaseDriver  string `json:"database_driver"`
	DatabaseDSN     string `json:"database_dsn"`
	KeyStoreBackend string `json:"keystore_backend"`
	KeyStorePath    string `json:"keystore_path"`
	CipherAlgorithm string `json:"cipher_algorithm"`
}

// parseJson overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. If no file is named, nothing happens. Read or unmarshal
// errors panic; configuration is resolved once at startup and a broken
// config file is not a condition to continue under.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDriver != "" {
		cfg.DatabaseDriver = jc.DatabaseDriver
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.KeyStoreBackend != "" {
		cfg.KeyStoreBackend = jc.KeyStoreBackend
	}
	if jc.KeyStorePath != "" {
		cfg.KeyStorePath = jc.KeyStorePath
	}
	if jc.CipherAlgorithm != "" {
		cfg.CipherAlgorithm = jc.CipherAlgorithm
	}
}
