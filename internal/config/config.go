package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Config is the server's JSON configuration, per spec.md §6's table. Fields
// not listed there are ignored on read (encoding/json already does this).
type Config struct {
	Port                 uint16 `json:"port"`
	MOTD                 string `json:"motd"`
	MaxPlayers           uint32 `json:"max_players"`
	OnlineMode           bool   `json:"online_mode"`
	CompressionThreshold int32  `json:"compression_threshold"`
	KeepAliveIntervalMS  uint32 `json:"keepalive_interval_ms"`
	KeepAliveTimeoutMS   uint32 `json:"keepalive_timeout_ms"`
	Logging              LoggingConfig `json:"logging"`
}

type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
	File   string `json:"file"`
}

// Defaults mirrors the table's stated defaults, applied before a file is
// unmarshaled on top so an absent key falls back to the documented value.
func Defaults() Config {
	return Config{
		Port:                 25565,
		MOTD:                 "A Minecraft Server",
		MaxPlayers:           20,
		OnlineMode:           true,
		CompressionThreshold: 256,
		KeepAliveIntervalMS:  20000,
		KeepAliveTimeoutMS:   30000,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parse config file")
	}
	return &cfg, nil
}
