package core

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/agenthands/tensorgraph/internal/core/model"
	"github.com/agenthands/tensorgraph/internal/driver"
)

const (
	nodesByLabelQueryFmt = "MATCH (n:`%s`) RETURN n"

	edgesBySubTypeQueryFmt = "MATCH (a:`%s`)-[r:`%s`]->(b:`%s`) " +
		"RETURN id(a) AS src, id(b) AS dst, properties(r) AS props"

	nodeNameQuery = "MATCH (n) WHERE id(n) = $id RETURN n.name AS name"
)

// LabelNodes holds one label bucket fetched outside the subgraph path:
// identities and aligned property maps.
type LabelNodes struct {
	IDs      []int64          `json:"ids"`
	Features []map[string]any `json:"features"`
}

// RetrieveNodes fetches every node of each requested label. Labels are
// independent, so they are fetched concurrently, bounded by FetchLimit;
// the first failure cancels the rest.
func (d *Downloader) RetrieveNodes(ctx context.Context, labels []string) (map[string]LabelNodes, error) {
	out := make(map[string]LabelNodes, len(labels))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.FetchLimit)
	for _, label := range labels {
		label := label
		g.Go(func() error {
			res, err := d.Driver.ExecuteQuery(ctx, fmt.Sprintf(nodesByLabelQueryFmt, label), nil)
			if err != nil {
				return err
			}

			var nodes LabelNodes
			for _, rec := range res.Records {
				v, ok := rec.Get(seedColumn)
				if !ok {
					return fmt.Errorf("label %q fetch returned a row without a node", label)
				}
				node, err := driver.DecodeNode(v)
				if err != nil {
					return fmt.Errorf("label %q fetch: %w", label, err)
				}
				nodes.IDs = append(nodes.IDs, node.ID)
				nodes.Features = append(nodes.Features, node.Props)
			}

			mu.Lock()
			out[label] = nodes
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// RetrieveEdges fetches every declared (relationship type, sub-type) as a
// directed label-to-label match, concurrently across sub-types with the
// same bound as RetrieveNodes. Sub-types with no edges in the store are
// omitted from the result.
func (d *Downloader) RetrieveEdges(ctx context.Context) (map[string]map[string]model.EdgeIndex, map[string]map[string][]map[string]any, error) {
	indices := make(map[string]map[string]model.EdgeIndex, len(d.Relations))
	attrs := make(map[string]map[string][]map[string]any, len(d.Relations))
	for _, relType := range d.Relations.Types() {
		indices[relType] = map[string]model.EdgeIndex{}
		attrs[relType] = map[string][]map[string]any{}
	}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.FetchLimit)
	for _, relType := range d.Relations.Types() {
		for _, subType := range d.Relations.SubTypes(relType) {
			relType, subType := relType, subType
			ep := d.Relations[relType][subType]
			g.Go(func() error {
				query := fmt.Sprintf(edgesBySubTypeQueryFmt, ep.Source, relType, ep.Target)
				res, err := d.Driver.ExecuteQuery(ctx, query, nil)
				if err != nil {
					return err
				}

				var idx model.EdgeIndex
				var feats []map[string]any
				for _, rec := range res.Records {
					src, err := int64Column(rec.Get("src"))
					if err != nil {
						return fmt.Errorf("%s/%s fetch: %w", relType, subType, err)
					}
					dst, err := int64Column(rec.Get("dst"))
					if err != nil {
						return fmt.Errorf("%s/%s fetch: %w", relType, subType, err)
					}
					props, _ := rec.Get("props")
					propMap, _ := props.(map[string]any)

					idx[0] = append(idx[0], src)
					idx[1] = append(idx[1], dst)
					feats = append(feats, propMap)
				}
				if idx.Len() == 0 {
					return nil
				}

				mu.Lock()
				indices[relType][subType] = idx
				attrs[relType][subType] = feats
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return indices, attrs, nil
}

// NodeNameByID looks up a single node's name property. The second return
// reports whether the node exists and carries a name.
func (d *Downloader) NodeNameByID(ctx context.Context, id int64) (string, bool, error) {
	res, err := d.Driver.ExecuteQuery(ctx, nodeNameQuery, map[string]any{"id": id})
	if err != nil {
		return "", false, err
	}
	if len(res.Records) == 0 {
		return "", false, nil
	}
	v, ok := res.Records[0].Get("name")
	if !ok || v == nil {
		return "", false, nil
	}
	name, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("node %d has a non-string name (%T)", id, v)
	}
	return name, true, nil
}

// RunCustomQuery executes an arbitrary caller query and returns the raw
// rows as column-keyed maps.
func (d *Downloader) RunCustomQuery(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	res, err := d.Driver.ExecuteQuery(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]any, 0, len(res.Records))
	for _, rec := range res.Records {
		rows = append(rows, rec.AsMap())
	}
	return rows, nil
}

func int64Column(v any, ok bool) (int64, error) {
	if !ok {
		return 0, fmt.Errorf("row is missing an id column")
	}
	id, isInt := v.(int64)
	if !isInt {
		return 0, fmt.Errorf("id column is %T, not int64", v)
	}
	return id, nil
}
