package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// EdgeIndex is a 2xM index array: row 0 holds source identities, row 1 the
// aligned destination identities. Column order is the classifier's input
// order and is stable.
type EdgeIndex [2][]int64

// Len returns M, the number of columns.
func (e EdgeIndex) Len() int { return len(e[0]) }

// Snapshot is the complete result of one extraction call. It is constructed
// per call and must not be mutated once returned.
type Snapshot struct {
	// NodeIDs maps label -> ordered node identities; an identity appears at
	// most once per bucket.
	NodeIDs map[string][]int64 `json:"nodes_ids"`
	// NodeFeatures maps label -> property maps aligned with NodeIDs.
	NodeFeatures map[string][]map[string]any `json:"nodes_features"`
	// EdgeIndices maps relationship type -> sub-type -> 2xM index array.
	// Sub-types with zero classified edges are absent, never empty.
	EdgeIndices map[string]map[string]EdgeIndex `json:"edges_indices"`
	// EdgeAttrs mirrors EdgeIndices with property maps aligned per column.
	EdgeAttrs map[string]map[string][]map[string]any `json:"edges_attributes"`
	// DiscardedEdges counts raw edges whose label pair matched no declared
	// sub-type.
	DiscardedEdges int `json:"discarded_edges"`
}

// NewSnapshot returns an empty snapshot with all maps allocated.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		NodeIDs:      map[string][]int64{},
		NodeFeatures: map[string][]map[string]any{},
		EdgeIndices:  map[string]map[string]EdgeIndex{},
		EdgeAttrs:    map[string]map[string][]map[string]any{},
	}
}

// Empty reports whether the snapshot contains no nodes at all, the terminal
// outcome for a filter that matched no seeds.
func (s *Snapshot) Empty() bool {
	return len(s.NodeIDs) == 0
}

// FeatureMatrix assembles a dense numeric matrix for one label bucket: one
// row per node in bucket order, one column per requested property key.
// Properties must be numeric on every node of the bucket.
func (s *Snapshot) FeatureMatrix(label string, keys []string) (*mat.Dense, error) {
	feats, ok := s.NodeFeatures[label]
	if !ok || len(feats) == 0 {
		return nil, fmt.Errorf("no nodes with label %q in snapshot", label)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no feature keys requested for label %q", label)
	}
	m := mat.NewDense(len(feats), len(keys), nil)
	for i, props := range feats {
		for j, key := range keys {
			v, ok := props[key]
			if !ok {
				return nil, fmt.Errorf("node %d of label %q has no property %q", i, label, key)
			}
			f, err := asFloat(v)
			if err != nil {
				return nil, fmt.Errorf("label %q property %q: %w", label, key, err)
			}
			m.Set(i, j, f)
		}
	}
	return m, nil
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("value %v (%T) is not numeric", v, v)
	}
}
