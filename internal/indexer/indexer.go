// Package indexer ships aggregated search results to an analytics backend.
// Indexing is best-effort: the search path never waits on it or surfaces
// its failures.
package indexer

import (
	"context"

	"github.com/joblens/aggregator/internal/domain"
)

// Indexer is the interface for result-analytics backends.
type Indexer interface {
	// BulkIndex indexes a batch of normalized jobs.
	BulkIndex(ctx context.Context, jobs []domain.Job) error
}
