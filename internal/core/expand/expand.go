// Package expand grows a bounded-depth subgraph around a seed set and
// accumulates its deduplicated node buckets and raw edge groups.
package expand

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/agenthands/tensorgraph/internal/core/model"
	"github.com/agenthands/tensorgraph/internal/driver"
)

// The depth bound is interpolated because Cypher does not parameterize
// variable-length bounds. Paths are undirected so expansion reaches
// neighbors on either end of a relationship.
const expandQueryFmt = `
	MATCH (start)
	WHERE id(start) IN $seed_ids
	MATCH p = (start)-[*1..%d]-(other)
	RETURN p
`

type bucketKey struct {
	Label string
	ID    int64
}

// Accumulator holds the result of one expansion: per-label node buckets
// with aligned features, and raw edges grouped by relationship type.
type Accumulator struct {
	NodeIDs      map[string][]int64
	NodeFeatures map[string][]map[string]any
	Edges        map[string][]model.RawEdge

	inBucket mapset.Set[bucketKey]
	seenRels mapset.Set[int64]
	paths    int
}

func newAccumulator() *Accumulator {
	return &Accumulator{
		NodeIDs:      map[string][]int64{},
		NodeFeatures: map[string][]map[string]any{},
		Edges:        map[string][]model.RawEdge{},
		inBucket:     mapset.NewThreadUnsafeSet[bucketKey](),
		seenRels:     mapset.NewThreadUnsafeSet[int64](),
	}
}

// Paths returns how many traversal rows were consumed.
func (a *Accumulator) Paths() int { return a.paths }

// addPath folds one path into the accumulator. A node joins each of its
// label buckets at most once, however many paths revisit it; an edge is
// recorded once per distinct store relationship identity, so self-loops and
// parallel edges stay distinct while re-traversals collapse.
func (a *Accumulator) addPath(p model.Path) {
	for _, n := range p.Nodes {
		for _, label := range n.Labels {
			if !a.inBucket.Add(bucketKey{Label: label, ID: n.ID}) {
				continue
			}
			a.NodeIDs[label] = append(a.NodeIDs[label], n.ID)
			a.NodeFeatures[label] = append(a.NodeFeatures[label], n.Props)
		}
	}
	for _, e := range p.Edges {
		if !a.seenRels.Add(e.ID) {
			continue
		}
		a.Edges[e.Type] = append(a.Edges[e.Type], e)
	}
	a.paths++
}

// Expand requests every path of length 1..depth touching a seed and folds
// the result set. It must run inside the extraction's read session so a
// failure discards the whole unit.
func Expand(ctx context.Context, run driver.RunFunc, seeds []int64, depth int) (*Accumulator, error) {
	records, err := run(ctx, fmt.Sprintf(expandQueryFmt, depth), map[string]any{"seed_ids": seeds})
	if err != nil {
		return nil, err
	}

	acc := newAccumulator()
	for _, rec := range records {
		v, ok := rec.Get("p")
		if !ok {
			return nil, fmt.Errorf("expansion row is missing the path column")
		}
		p, err := driver.DecodePath(v)
		if err != nil {
			return nil, fmt.Errorf("expansion: %w", err)
		}
		acc.addPath(p)
	}
	return acc, nil
}
