// Package tensor converts classified edge groups into array-oriented form.
package tensor

import "github.com/agenthands/tensorgraph/internal/core/model"

// Assemble emits, for every sub-type with at least one member, a 2xM index
// array (row 0 sources, row 1 destinations, columns in input order) and the
// aligned property sequence. Empty sub-types are omitted, not emitted as
// zero-column arrays.
func Assemble(classified map[string]map[string][]model.ClassifiedEdge) (map[string]map[string]model.EdgeIndex, map[string]map[string][]map[string]any) {
	indices := make(map[string]map[string]model.EdgeIndex, len(classified))
	attrs := make(map[string]map[string][]map[string]any, len(classified))

	for relType, groups := range classified {
		indices[relType] = make(map[string]model.EdgeIndex, len(groups))
		attrs[relType] = make(map[string][]map[string]any, len(groups))

		for subType, edges := range groups {
			if len(edges) == 0 {
				continue
			}
			idx := model.EdgeIndex{make([]int64, len(edges)), make([]int64, len(edges))}
			feats := make([]map[string]any, len(edges))
			for i, e := range edges {
				idx[0][i] = e.SrcID
				idx[1][i] = e.DstID
				feats[i] = e.Props
			}
			indices[relType][subType] = idx
			attrs[relType][subType] = feats
		}
	}
	return indices, attrs
}
