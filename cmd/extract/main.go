// Command extract runs one subgraph extraction against a live store and
// prints the snapshot as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/agenthands/tensorgraph/internal/config"
	"github.com/agenthands/tensorgraph/internal/core"
	"github.com/agenthands/tensorgraph/internal/driver"
)

func main() {
	cfgPath := flag.String("config", "config/config.toml", "path to the TOML configuration")
	filter := flag.String("filter", "", "Cypher filter query selecting seed nodes (must return n)")
	depth := flag.Int("depth", 1, "expansion depth bound")
	flag.Parse()

	if *filter == "" {
		logrus.Fatal("a -filter query is required")
	}

	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		cfg.Neo4j.URI = uri
	}

	ctx := context.Background()
	d, err := driver.NewNeo4jDriver(cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password, cfg.Neo4j.Database)
	if err != nil {
		logrus.Fatalf("Failed to connect to graph store: %v", err)
	}
	defer d.Close(ctx)

	downloader := core.NewDownloader(d, cfg.Relations, cfg.Concurrency.Fetch)
	snapshot, err := downloader.RetrieveSubgraph(ctx, *filter, *depth)
	if err != nil {
		logrus.Fatalf("Extraction failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		logrus.Fatalf("Failed to encode snapshot: %v", err)
	}
}
