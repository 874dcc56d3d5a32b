package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server Server `yaml:"server" json:"server"`
	DB     DB     `yaml:"db" json:"db"`
	WS     WS     `yaml:"ws" json:"ws"`
}

type Server struct {
	Port string `yaml:"port" json:"port"`
}

// DB selects the database/sql driver backing the task table.
// Driver is "sqlite3" or "postgres"; DSN is a file path (or ":memory:")
// for sqlite3 and a connection string for postgres.
type DB struct {
	Driver string `yaml:"driver" json:"driver"`
	DSN    string `yaml:"dsn" json:"dsn"`
}

type WS struct {
	// SendBuffer is the per-observer outbound queue; an observer whose
	// queue overflows is dropped rather than slowing the hub down.
	SendBuffer int `yaml:"send_buffer" json:"send_buffer"`
	// BroadcastBuffer is the hub's inbound event queue.
	BroadcastBuffer int `yaml:"broadcast_buffer" json:"broadcast_buffer"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "3000"},
		DB:     DB{Driver: "sqlite3", DSN: "tasks.db"},
		WS:     WS{SendBuffer: 32, BroadcastBuffer: 256},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
