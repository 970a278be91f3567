package replication

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds in-flight upserts per type so a sync pass cannot
// swamp the central store over a thin link.
const DefaultConcurrency = 3

// Applier is what the runner drives; satisfied by *Executor, stubbed in tests.
type Applier interface {
	Apply(ctx context.Context, m Mapping, rec Record, src, dst Store) error
}

// RecordFailure is one record that could not be applied. The record stays
// dirty in its source store and is retried on the next pass.
type RecordFailure struct {
	Identity any
	Err      error
}

// BatchResult accounts for every record attempted in one type's batch.
type BatchResult struct {
	Type      string
	Attempted int
	Succeeded int
	Failures  []RecordFailure
}

// Runner drives a collection of records through an Applier with a fixed
// concurrency ceiling. Records within a type have no ordering dependency on
// each other (ordering is enforced at the type level by the orchestrator), so
// completion order is unspecified.
type Runner struct {
	applier Applier
	limit   int
}

func NewRunner(applier Applier, limit int) *Runner {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	return &Runner{applier: applier, limit: limit}
}

// Run applies every record and returns when all are accounted for. Record
// failures are collected, not propagated: one bad record never aborts its
// siblings. A MappingError is different — it is a configuration error that
// would repeat for every record, so it aborts the remaining batch and is
// returned to the orchestrator.
func (r *Runner) Run(ctx context.Context, m Mapping, records []Record, src, dst Store) (BatchResult, error) {
	result := BatchResult{Type: m.Type, Attempted: len(records)}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)

	for _, rec := range records {
		rec := rec
		g.Go(func() error {
			// an aborted batch cancels the group context; records admitted
			// after that must not reach the stores
			if err := ctx.Err(); err != nil {
				return err
			}
			err := r.applier.Apply(ctx, m, rec, src, dst)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				result.Succeeded++
				return nil
			default:
				var mapErr *MappingError
				if errors.As(err, &mapErr) {
					return err // abort the type
				}
				result.Failures = append(result.Failures, RecordFailure{
					Identity: rec[m.SourceIdentity()],
					Err:      err,
				})
				return nil
			}
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}
