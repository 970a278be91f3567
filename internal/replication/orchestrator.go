package replication

import (
	"context"
	"log"
	"time"
)

// TypeError is a whole-type failure inside an otherwise continuing pass
// (today that means a mapping configuration error aborted the type's batch).
type TypeError struct {
	Type string `json:"type"`
	Err  string `json:"error"`
}

// PassSummary is the structured result of one replication pass.
type PassSummary struct {
	PerType   map[string]int  `json:"per_type_counts"`
	Failures  []RecordFailure `json:"-"`
	Errors    []TypeError     `json:"errors,omitempty"`
	Failed    int             `json:"failed"`
	Total     int             `json:"total"`
	Timestamp time.Time       `json:"timestamp"`
}

// SyncStatus reports outstanding work per type without running a pass.
type SyncStatus struct {
	PerType map[string]int64 `json:"per_type_unsynced"`
	Total   int64            `json:"total"`
}

// Orchestrator executes replication passes: entity types strictly in
// dependency-rank order, one bounded batch per type. The pass itself is
// stateless and re-entrant — the durable state lives entirely in each
// record's sync columns, so an interrupted pass just leaves some records
// dirty for the next one.
type Orchestrator struct {
	local    Store
	central  Store
	runner   *Runner
	mappings []Mapping
	now      func() time.Time
}

func NewOrchestrator(local, central Store, runner *Runner) *Orchestrator {
	return &Orchestrator{
		local:    local,
		central:  central,
		runner:   runner,
		mappings: Registry(),
		now:      time.Now,
	}
}

// RunPass executes one full replication pass. Connectivity to both stores is
// established first and a failure there aborts everything — a half-connected
// pass is never attempted. After that, failures are isolated: a bad record or
// a bad type never stops the remaining types.
func (o *Orchestrator) RunPass(ctx context.Context) (*PassSummary, error) {
	if err := o.local.Ping(ctx); err != nil {
		return nil, &ConnectivityError{Store: "local", Err: err}
	}
	if err := o.central.Ping(ctx); err != nil {
		return nil, &ConnectivityError{Store: "central", Err: err}
	}

	summary := &PassSummary{PerType: make(map[string]int, len(o.mappings))}

	for _, m := range o.mappings {
		src, dst := o.local, o.central
		if m.Direction == Download {
			src, dst = o.central, o.local
		}

		// Dirty rows only, in both directions, regardless of the soft-delete
		// flag: deletions replicate like every other change, and a record
		// already acknowledged by the counterpart has nothing to send. This
		// is what makes back-to-back passes converge to zero work.
		records, err := src.FetchDirty(ctx, m.SourceTable())
		if err != nil {
			log.Printf("Sync %s: fetch failed: %v", m.Type, err)
			summary.Errors = append(summary.Errors, TypeError{Type: m.Type, Err: err.Error()})
			summary.PerType[m.Type] = 0
			continue
		}

		res, err := o.runner.Run(ctx, m, records, src, dst)
		if err != nil {
			// configuration error aborted the type; the pass moves on
			log.Printf("Sync %s: batch aborted: %v", m.Type, err)
			summary.Errors = append(summary.Errors, TypeError{Type: m.Type, Err: err.Error()})
		}

		summary.PerType[m.Type] = res.Succeeded
		summary.Total += res.Succeeded
		summary.Failed += len(res.Failures)
		summary.Failures = append(summary.Failures, res.Failures...)

		for _, f := range res.Failures {
			log.Printf("Sync %s: record %v failed: %v", m.Type, f.Identity, f.Err)
		}
		log.Printf("Synced %d %s (%s)", res.Succeeded, m.Type, m.Direction)
	}

	summary.Timestamp = o.now()
	return summary, nil
}

// Status counts outstanding dirty records per type in the local store,
// deleted-and-dirty included. Read-only; safe to call during a running pass.
func (o *Orchestrator) Status(ctx context.Context) (*SyncStatus, error) {
	status := &SyncStatus{PerType: make(map[string]int64, len(o.mappings))}
	for _, m := range o.mappings {
		n, err := o.local.CountDirty(ctx, m.LocalTable)
		if err != nil {
			return nil, err
		}
		status.PerType[m.Type] = n
		status.Total += n
	}
	return status, nil
}
