package driver

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/sirupsen/logrus"

	"github.com/agenthands/tensorgraph/internal/metrics"
)

// Neo4jDriver implements GraphDriver on the bolt protocol. It works against
// Neo4j and Memgraph.
type Neo4jDriver struct {
	Driver   neo4j.DriverWithContext
	Database string
}

func NewNeo4jDriver(uri, username, password, database string) (*Neo4jDriver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"uri": uri, "database": database}).Info("connected to graph store")
	return &Neo4jDriver{Driver: driver, Database: database}, nil
}

func (d *Neo4jDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *Neo4jDriver) ExecuteQuery(ctx context.Context, cypher string, params map[string]any) (neo4j.EagerResult, error) {
	start := time.Now()
	opts := []neo4j.ExecuteQueryConfigurationOption{}
	if d.Database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(d.Database))
	}
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, cypher, params, neo4j.EagerResultTransformer, opts...)
	metrics.QueryDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.QueriesTotal.WithLabelValues("error").Inc()
		return neo4j.EagerResult{}, &QueryError{Query: cypher, Err: err}
	}
	metrics.QueriesTotal.WithLabelValues("ok").Inc()
	return *result, nil
}

// ExecuteRead opens one read session and explicit transaction, runs work
// inside it, and releases both on every exit path. Statements are not
// retried: a failure mid-work rolls the whole unit back.
func (d *Neo4jDriver) ExecuteRead(ctx context.Context, work func(ctx context.Context, run RunFunc) error) error {
	session := d.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: d.Database,
	})
	defer session.Close(ctx)

	tx, err := session.BeginTransaction(ctx)
	if err != nil {
		return &QueryError{Query: "BEGIN", Err: err}
	}
	defer tx.Close(ctx)

	run := func(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
		start := time.Now()
		res, err := tx.Run(ctx, cypher, params)
		if err == nil {
			var records []*neo4j.Record
			records, err = res.Collect(ctx)
			if err == nil {
				metrics.QueryDuration.Observe(time.Since(start).Seconds())
				metrics.QueriesTotal.WithLabelValues("ok").Inc()
				return records, nil
			}
		}
		metrics.QueryDuration.Observe(time.Since(start).Seconds())
		metrics.QueriesTotal.WithLabelValues("error").Inc()
		return nil, &QueryError{Query: cypher, Err: err}
	}

	if err := work(ctx, run); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
