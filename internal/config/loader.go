package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".crawlgraph"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for crawlgraph settings.
const envPrefix = "CRAWLGRAPH"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Defaults.
const (
	DefaultFormat        = FormatJSON
	DefaultStoreKind     = StoreNeo4j
	DefaultNeo4jURI      = "neo4j://localhost:7687"
	DefaultNeo4jUsername = "neo4j"
	DefaultNeo4jPassword = "rootpass"
	DefaultLogLevel      = "info"
)

// DefaultEntry returns the default entry file, the AGS config under the user's home.
func DefaultEntry() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ags", "config.js")
}

// Load loads configuration from a .env file, the config file, env vars and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("entry", DefaultEntry())
	viperCfg.SetDefault("format", DefaultFormat)

	viperCfg.SetDefault("store.kind", DefaultStoreKind)
	viperCfg.SetDefault("store.neo4j.uri", DefaultNeo4jURI)
	viperCfg.SetDefault("store.neo4j.username", DefaultNeo4jUsername)
	viperCfg.SetDefault("store.neo4j.password", DefaultNeo4jPassword)
	viperCfg.SetDefault("store.neo4j.database", "")
	viperCfg.SetDefault("store.postgres.dsn", "")

	viperCfg.SetDefault("metrics.textfile", "")

	viperCfg.SetDefault("log.level", DefaultLogLevel)
	viperCfg.SetDefault("log.json", false)
}
