package core

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/agenthands/tensorgraph/internal/core/classify"
	"github.com/agenthands/tensorgraph/internal/core/expand"
	"github.com/agenthands/tensorgraph/internal/core/model"
	"github.com/agenthands/tensorgraph/internal/core/tensor"
	"github.com/agenthands/tensorgraph/internal/driver"
	"github.com/agenthands/tensorgraph/internal/metrics"
)

// ErrInvalidDepth rejects expansion requests with a depth bound below 1.
var ErrInvalidDepth = errors.New("expansion depth must be at least 1")

// Downloader extracts typed, array-oriented graph snapshots from a store.
// One Downloader may serve many extractions; each call gets its own scoped
// session through the driver.
type Downloader struct {
	Driver     driver.GraphDriver
	Relations  model.Relations
	FetchLimit int
	Log        *logrus.Logger
}

func NewDownloader(d driver.GraphDriver, relations model.Relations, fetchLimit int) *Downloader {
	if fetchLimit < 1 {
		fetchLimit = 1
	}
	return &Downloader{
		Driver:     d,
		Relations:  relations,
		FetchLimit: fetchLimit,
		Log:        logrus.StandardLogger(),
	}
}

// RetrieveSubgraph runs one full extraction: the filter query selects seed
// nodes, the subgraph around them is expanded up to depth hops, raw edges
// are classified against the relation schema, and the result is assembled
// into a snapshot. Everything runs inside a single read session, so the
// caller either gets a complete, internally consistent snapshot or an
// error — never a truncated one. A filter matching nothing yields an empty
// snapshot, not an error.
func (d *Downloader) RetrieveSubgraph(ctx context.Context, filterQuery string, depth int) (*model.Snapshot, error) {
	if depth < 1 {
		return nil, ErrInvalidDepth
	}

	snapshot := model.NewSnapshot()
	err := d.Driver.ExecuteRead(ctx, func(ctx context.Context, run driver.RunFunc) error {
		seeds, err := resolveSeeds(ctx, run, filterQuery)
		if err != nil {
			return err
		}
		if len(seeds) == 0 {
			d.Log.WithField("filter", filterQuery).Info("seed filter matched no nodes")
			return nil
		}

		acc, err := expand.Expand(ctx, run, seeds, depth)
		if err != nil {
			return err
		}

		classifier := &classify.Classifier{Relations: d.Relations}
		classified, discarded, err := classifier.Classify(acc.Edges)
		if err != nil {
			return err
		}

		snapshot.NodeIDs = acc.NodeIDs
		snapshot.NodeFeatures = acc.NodeFeatures
		snapshot.EdgeIndices, snapshot.EdgeAttrs = tensor.Assemble(classified)
		snapshot.DiscardedEdges = discarded

		d.Log.WithFields(logrus.Fields{
			"depth":              depth,
			"seeds":              len(seeds),
			"paths":              acc.Paths(),
			"labels":             len(acc.NodeIDs),
			"relationship_types": len(acc.Edges),
			"discarded_edges":    discarded,
		}).Info("subgraph extraction finished")
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.Snapshots.Inc()
	return snapshot, nil
}
