package driver

import (
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/agenthands/tensorgraph/internal/core/model"
)

// DecodeNode converts a raw record value into a model.Node. Anything other
// than a node value is a decode error; downstream code never sees
// runtime-shaped rows.
func DecodeNode(v any) (model.Node, error) {
	n, ok := v.(dbtype.Node)
	if !ok {
		return model.Node{}, fmt.Errorf("expected node value, got %T", v)
	}
	return model.Node{ID: n.Id, Labels: n.Labels, Props: n.Props}, nil
}

// DecodePath converts a raw path value into decoded nodes and raw edges.
// Endpoint labels for each edge are resolved from the path's own node list,
// so classification works against a fixed shape with no further store
// round-trips.
func DecodePath(v any) (model.Path, error) {
	p, ok := v.(dbtype.Path)
	if !ok {
		return model.Path{}, fmt.Errorf("expected path value, got %T", v)
	}

	byID := make(map[int64]dbtype.Node, len(p.Nodes))
	path := model.Path{
		Nodes: make([]model.Node, 0, len(p.Nodes)),
		Edges: make([]model.RawEdge, 0, len(p.Relationships)),
	}
	for _, n := range p.Nodes {
		byID[n.Id] = n
		path.Nodes = append(path.Nodes, model.Node{ID: n.Id, Labels: n.Labels, Props: n.Props})
	}
	for _, r := range p.Relationships {
		src, ok := byID[r.StartId]
		if !ok {
			return model.Path{}, fmt.Errorf("relationship %d references node %d outside its path", r.Id, r.StartId)
		}
		dst, ok := byID[r.EndId]
		if !ok {
			return model.Path{}, fmt.Errorf("relationship %d references node %d outside its path", r.Id, r.EndId)
		}
		path.Edges = append(path.Edges, model.RawEdge{
			ID:        r.Id,
			Type:      r.Type,
			SrcID:     r.StartId,
			DstID:     r.EndId,
			Props:     r.Props,
			SrcLabels: src.Labels,
			DstLabels: dst.Labels,
		})
	}
	return path, nil
}
