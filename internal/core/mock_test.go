package core

import (
	"context"
	"strings"
	"sync"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/agenthands/tensorgraph/internal/driver"
)

// MockResponse pairs a query fragment with the records to return when the
// issued Cypher contains it. Responses are probed in order.
type MockResponse struct {
	Match   string
	Records []*neo4j.Record
}

type MockDriver struct {
	Responses []MockResponse
	Queries   []string
	Err       error

	mu sync.Mutex
}

func (m *MockDriver) lookup(cypher string) ([]*neo4j.Record, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, cypher)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	for _, r := range m.Responses {
		if strings.Contains(cypher, r.Match) {
			return r.Records, nil
		}
	}
	return nil, nil
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, cypher string, params map[string]any) (neo4j.EagerResult, error) {
	records, err := m.lookup(cypher)
	if err != nil {
		return neo4j.EagerResult{}, err
	}
	return neo4j.EagerResult{Records: records}, nil
}

func (m *MockDriver) ExecuteRead(ctx context.Context, work func(ctx context.Context, run driver.RunFunc) error) error {
	return work(ctx, func(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
		return m.lookup(cypher)
	})
}

func (m *MockDriver) Close(ctx context.Context) error { return nil }

func mockNode(id int64, labels []string, props map[string]any) dbtype.Node {
	return dbtype.Node{Id: id, Labels: labels, Props: props}
}

func mockRel(id, start, end int64, relType string, props map[string]any) dbtype.Relationship {
	return dbtype.Relationship{Id: id, StartId: start, EndId: end, Type: relType, Props: props}
}

func pathRecord(nodes []dbtype.Node, rels []dbtype.Relationship) *neo4j.Record {
	return &neo4j.Record{
		Keys:   []string{"p"},
		Values: []any{dbtype.Path{Nodes: nodes, Relationships: rels}},
	}
}

func nodeRecord(n dbtype.Node) *neo4j.Record {
	return &neo4j.Record{Keys: []string{"n"}, Values: []any{n}}
}
