// Package classify resolves raw edges into schema-declared sub-types based
// on the label pair of their endpoints.
package classify

import (
	"fmt"
	"sort"

	"github.com/agenthands/tensorgraph/internal/core/model"
	"github.com/agenthands/tensorgraph/internal/metrics"
)

// UnknownRelationshipTypeError reports a relationship type present in the
// raw data but absent from the relation schema. A schema gap is a
// configuration error and fails the extraction, unlike an unmatched label
// pair, which is a per-edge data-shape mismatch and only counted.
type UnknownRelationshipTypeError struct {
	RelType string
}

func (e *UnknownRelationshipTypeError) Error() string {
	return fmt.Sprintf("relationship type %q has no schema entry", e.RelType)
}

// Classifier applies a Relations table to raw edge groups.
type Classifier struct {
	Relations model.Relations
}

// Classify groups each relationship type's raw edges by sub-type. For every
// edge the cartesian product of its endpoint labels is probed against the
// declared pairs and the first match wins; labels are put in lexical order
// first, so multi-label endpoints resolve the same way on every run.
// Returns the grouped edges and the count of discarded ones.
func (c *Classifier) Classify(groups map[string][]model.RawEdge) (map[string]map[string][]model.ClassifiedEdge, int, error) {
	out := make(map[string]map[string][]model.ClassifiedEdge, len(groups))
	discarded := 0

	for relType, edges := range groups {
		def, ok := c.Relations[relType]
		if !ok {
			return nil, 0, &UnknownRelationshipTypeError{RelType: relType}
		}

		// Sub-types declaring the same label pair would be a schema
		// conflict; lexical order makes the winner stable.
		lookup := make(map[model.Endpoints]string, len(def))
		for _, subType := range c.Relations.SubTypes(relType) {
			lookup[def[subType]] = subType
		}

		grouped := make(map[string][]model.ClassifiedEdge, len(def))
		for _, e := range edges {
			subType, ok := match(lookup, e.SrcLabels, e.DstLabels)
			if !ok {
				discarded++
				metrics.DiscardedEdges.Inc()
				continue
			}
			grouped[subType] = append(grouped[subType], model.ClassifiedEdge{
				SrcID: e.SrcID,
				DstID: e.DstID,
				Props: e.Props,
			})
		}
		out[relType] = grouped
	}
	return out, discarded, nil
}

func match(lookup map[model.Endpoints]string, srcLabels, dstLabels []string) (string, bool) {
	src := sortedCopy(srcLabels)
	dst := sortedCopy(dstLabels)
	for _, sl := range src {
		for _, tl := range dst {
			if subType, ok := lookup[model.Endpoints{Source: sl, Target: tl}]; ok {
				return subType, true
			}
		}
	}
	return "", false
}

func sortedCopy(labels []string) []string {
	out := append([]string(nil), labels...)
	sort.Strings(out)
	return out
}
