package core

import (
	"context"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/tensorgraph/internal/core/model"
)

func TestRetrieveNodes(t *testing.T) {
	mock := &MockDriver{Responses: []MockResponse{
		{Match: "MATCH (n:`User`)", Records: []*neo4j.Record{
			nodeRecord(mockNode(1, []string{"User"}, map[string]any{"name": "ada"})),
			nodeRecord(mockNode(4, []string{"User"}, map[string]any{"name": "grace"})),
		}},
		{Match: "MATCH (n:`Repo`)", Records: []*neo4j.Record{
			nodeRecord(mockNode(2, []string{"Repo"}, map[string]any{"stars": int64(7)})),
		}},
	}}

	d := NewDownloader(mock, nil, 2)
	out, err := d.RetrieveNodes(context.Background(), []string{"User", "Repo"})
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, []int64{1, 4}, out["User"].IDs)
	assert.Equal(t, "grace", out["User"].Features[1]["name"])
	assert.Equal(t, []int64{2}, out["Repo"].IDs)
	assert.Len(t, out["Repo"].Features, len(out["Repo"].IDs))
}

func TestRetrieveNodes_UnknownLabelIsEmpty(t *testing.T) {
	mock := &MockDriver{}
	d := NewDownloader(mock, nil, 1)

	out, err := d.RetrieveNodes(context.Background(), []string{"Ghost"})
	require.NoError(t, err)
	assert.Empty(t, out["Ghost"].IDs)
}

func TestRetrieveEdges(t *testing.T) {
	relations := model.Relations{
		"owns": {
			"owns_repo": {Source: "User", Target: "Repo"},
			"owns_org":  {Source: "User", Target: "Org"},
		},
	}
	mock := &MockDriver{Responses: []MockResponse{
		{Match: "MATCH (a:`User`)-[r:`owns`]->(b:`Repo`)", Records: []*neo4j.Record{
			{Keys: []string{"src", "dst", "props"}, Values: []any{int64(1), int64(2), map[string]any{"since": int64(2021)}}},
			{Keys: []string{"src", "dst", "props"}, Values: []any{int64(4), int64(2), map[string]any{}}},
		}},
		// No owns_org edges in the store.
	}}

	d := NewDownloader(mock, relations, 2)
	indices, attrs, err := d.RetrieveEdges(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.EdgeIndex{{1, 4}, {2, 2}}, indices["owns"]["owns_repo"])
	require.Len(t, attrs["owns"]["owns_repo"], 2)
	assert.Equal(t, int64(2021), attrs["owns"]["owns_repo"][0]["since"])

	// Empty sub-types are omitted, not emitted as zero-column arrays.
	_, ok := indices["owns"]["owns_org"]
	assert.False(t, ok)
}

func TestNodeNameByID(t *testing.T) {
	mock := &MockDriver{Responses: []MockResponse{
		{Match: "WHERE id(n) = $id", Records: []*neo4j.Record{
			{Keys: []string{"name"}, Values: []any{"ada"}},
		}},
	}}

	d := NewDownloader(mock, nil, 1)
	name, found, err := d.NodeNameByID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "ada", name)
}

func TestNodeNameByID_Missing(t *testing.T) {
	mock := &MockDriver{}
	d := NewDownloader(mock, nil, 1)

	name, found, err := d.NodeNameByID(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, name)
}

func TestRunCustomQuery(t *testing.T) {
	mock := &MockDriver{Responses: []MockResponse{
		{Match: "RETURN count(n)", Records: []*neo4j.Record{
			{Keys: []string{"count(n)"}, Values: []any{int64(3)}},
		}},
	}}

	d := NewDownloader(mock, nil, 1)
	rows, err := d.RunCustomQuery(context.Background(), "MATCH (n) RETURN count(n)", nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(3), rows[0]["count(n)"])
}
