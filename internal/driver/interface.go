package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// RunFunc executes one Cypher statement inside the session opened by
// ExecuteRead and returns the fully collected records.
type RunFunc func(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)

// GraphDriver is the query-executor boundary. ExecuteQuery runs a single
// statement in a driver-managed session. ExecuteRead brackets work in one
// scoped read transaction: the session is acquired before work runs and
// released on every exit path, so a failure or timeout discards the whole
// unit rather than leaking a partial one.
type GraphDriver interface {
	ExecuteQuery(ctx context.Context, cypher string, params map[string]any) (neo4j.EagerResult, error)
	ExecuteRead(ctx context.Context, work func(ctx context.Context, run RunFunc) error) error
	Close(ctx context.Context) error
}
