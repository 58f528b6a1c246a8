// Package config loads crawlgraph settings from defaults, an optional YAML file,
// a .env file and CRAWLGRAPH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Store kinds.
const (
	StoreNone     = "none"
	StoreMemory   = "memory"
	StoreNeo4j    = "neo4j"
	StorePostgres = "postgres"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatDOT     = "dot"
	FormatMermaid = "mermaid"
)

var (
	// ErrNoEntry is returned when no entry file is configured.
	ErrNoEntry = errors.New("no entry file configured")
	// ErrMissingDSN is returned when the postgres store has no DSN.
	ErrMissingDSN = errors.New("store.postgres.dsn is required for the postgres store")
)

// Config is the top-level configuration.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Entry   string        `mapstructure:"entry"`
	Format  string        `mapstructure:"format"`
	Store   StoreConfig   `mapstructure:"store"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Log     LogConfig     `mapstructure:"log"`
}

// StoreConfig selects and configures the graph store.
type StoreConfig struct {
	Kind     string         `mapstructure:"kind"`
	Neo4j    Neo4jConfig    `mapstructure:"neo4j"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// Neo4jConfig holds Neo4j connection settings.
type Neo4jConfig struct {
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// PostgresConfig holds Postgres connection settings.
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// MetricsConfig holds metrics output settings.
type MetricsConfig struct {
	// Textfile is a path for prometheus textfile output. Empty disables it.
	Textfile string `mapstructure:"textfile"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Validate checks the configuration for unsupported values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Entry) == "" {
		return ErrNoEntry
	}

	switch c.Format {
	case FormatJSON, FormatDOT, FormatMermaid:
	default:
		return fmt.Errorf("unknown format: %s (valid options: %s, %s, %s)", c.Format, FormatJSON, FormatDOT, FormatMermaid)
	}

	switch c.Store.Kind {
	case StoreNone, StoreMemory, StoreNeo4j:
	case StorePostgres:
		if strings.TrimSpace(c.Store.Postgres.DSN) == "" {
			return ErrMissingDSN
		}
	default:
		return fmt.Errorf("unknown store: %s (valid options: %s, %s, %s, %s)",
			c.Store.Kind, StoreNone, StoreMemory, StoreNeo4j, StorePostgres)
	}

	return nil
}
