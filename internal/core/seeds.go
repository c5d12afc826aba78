package core

import (
	"context"
	"fmt"

	"github.com/agenthands/tensorgraph/internal/driver"
)

// Seed filter queries must return the matched nodes under this column.
const seedColumn = "n"

// resolveSeeds runs the caller's filter query and collects the identities
// of every node it returned. An empty result is a valid "no subgraph"
// outcome and comes back as an empty slice, not an error.
func resolveSeeds(ctx context.Context, run driver.RunFunc, filterQuery string) ([]int64, error) {
	records, err := run(ctx, filterQuery, nil)
	if err != nil {
		return nil, err
	}

	seeds := make([]int64, 0, len(records))
	for _, rec := range records {
		v, ok := rec.Get(seedColumn)
		if !ok {
			return nil, fmt.Errorf("seed filter must return nodes as %q", seedColumn)
		}
		node, err := driver.DecodeNode(v)
		if err != nil {
			return nil, fmt.Errorf("seed filter: %w", err)
		}
		seeds = append(seeds, node.ID)
	}
	return seeds, nil
}
