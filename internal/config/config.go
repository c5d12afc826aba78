package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/agenthands/tensorgraph/internal/core/model"
)

type Neo4jConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type ConcurrencyConfig struct {
	// Fetch bounds how many independent label / sub-type fetches run at
	// once, so bulk retrieval cannot exhaust the store's connection pool.
	Fetch int `toml:"fetch"`
}

type Config struct {
	Neo4j       Neo4jConfig       `toml:"neo4j"`
	Server      ServerConfig      `toml:"server"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
	// Relations is the classification table: relationship type -> sub-type
	// -> expected endpoint labels.
	Relations model.Relations `toml:"relations"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return &cfg, nil
}

// LoadRelations reads a standalone relation-schema file for library users
// who configure the store connection themselves.
func LoadRelations(path string) (model.Relations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read relations file '%s': %w", path, err)
	}

	var doc struct {
		Relations model.Relations `toml:"relations"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return doc.Relations, nil
}
