package config

import (
	"encoding/json"
	"os"

	"github.com/avolkov/pinboard/internal/flagx"
	"github.com/avolkov/pinboard/internal/timex"
)

// JsonConfig is the intermediate DTO used only for reading JSON
// configuration files. It uses timex.Duration for interval fields, which
// allows parsing both string values such as "30s" and integer nanoseconds.
type JsonConfig struct {
	DatabaseDSN     string         `json:"database_dsn"`
	MaxPinsPerScope int            `json:"max_pins_per_scope"`
	CommandTimeout  timex.Duration `json:"command_timeout"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; when neither is set, no JSON file is loaded. Zero-valued fields in
// the file leave the current Config values alone.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.MaxPinsPerScope != 0 {
		config.MaxPinsPerScope = c.MaxPinsPerScope
	}
	if c.CommandTimeout.Duration != 0 {
		config.CommandTimeout = c.CommandTimeout.Duration
	}
}
