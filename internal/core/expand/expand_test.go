package expand

import (
	"context"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedRun(records []*neo4j.Record, captured *string) func(context.Context, string, map[string]any) ([]*neo4j.Record, error) {
	return func(_ context.Context, cypher string, _ map[string]any) ([]*neo4j.Record, error) {
		if captured != nil {
			*captured = cypher
		}
		return records, nil
	}
}

func pathRecord(nodes []dbtype.Node, rels []dbtype.Relationship) *neo4j.Record {
	return &neo4j.Record{
		Keys:   []string{"p"},
		Values: []any{dbtype.Path{Nodes: nodes, Relationships: rels}},
	}
}

func TestExpand_DepthBoundInQuery(t *testing.T) {
	var query string
	_, err := Expand(context.Background(), fixedRun(nil, &query), []int64{1}, 3)
	require.NoError(t, err)
	assert.Contains(t, query, "[*1..3]")
	assert.Contains(t, query, "$seed_ids")
}

func TestExpand_BucketsNodesPerLabelOnce(t *testing.T) {
	person := dbtype.Node{Id: 1, Labels: []string{"Person", "Admin"}, Props: map[string]any{"name": "ada"}}
	repo := dbtype.Node{Id: 2, Labels: []string{"Repo"}}
	rel := dbtype.Relationship{Id: 10, StartId: 1, EndId: 2, Type: "owns"}

	records := []*neo4j.Record{
		pathRecord([]dbtype.Node{person, repo}, []dbtype.Relationship{rel}),
		pathRecord([]dbtype.Node{person, repo}, []dbtype.Relationship{rel}),
	}

	acc, err := Expand(context.Background(), fixedRun(records, nil), []int64{1}, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, acc.Paths())
	// A multi-label node joins every label bucket, once each.
	assert.Equal(t, []int64{1}, acc.NodeIDs["Person"])
	assert.Equal(t, []int64{1}, acc.NodeIDs["Admin"])
	assert.Equal(t, []int64{2}, acc.NodeIDs["Repo"])
	assert.Equal(t, "ada", acc.NodeFeatures["Person"][0]["name"])
	assert.Len(t, acc.NodeFeatures["Person"], len(acc.NodeIDs["Person"]))

	// The same relationship instance across two paths collapses to one.
	require.Len(t, acc.Edges["owns"], 1)
	assert.Equal(t, []string{"Person", "Admin"}, acc.Edges["owns"][0].SrcLabels)
	assert.Equal(t, []string{"Repo"}, acc.Edges["owns"][0].DstLabels)
}

func TestExpand_MissingPathColumn(t *testing.T) {
	records := []*neo4j.Record{{Keys: []string{"x"}, Values: []any{int64(1)}}}
	_, err := Expand(context.Background(), fixedRun(records, nil), []int64{1}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path column")
}

func TestExpand_NonPathValue(t *testing.T) {
	records := []*neo4j.Record{{Keys: []string{"p"}, Values: []any{"not a path"}}}
	_, err := Expand(context.Background(), fixedRun(records, nil), []int64{1}, 1)
	require.Error(t, err)
}
