package replication

import (
	"context"
	"errors"
	"time"

	"dario.cat/mergo"
)

// Executor applies one source record to the target store: insert if the
// identity is absent, merge into the existing row otherwise, and stamp sync
// metadata. The source row is acknowledged (marked synced) only after the
// target write is confirmed, so a target failure leaves the source dirty and
// the record is retried next pass. Upsert-by-identity is idempotent, which
// makes that retry safe.
type Executor struct {
	now func() time.Time
}

func NewExecutor() *Executor {
	return &Executor{now: time.Now}
}

// metadata columns are rewritten on every pass and never participate in
// merge conflict detection.
var metaColumns = map[string]bool{
	"sync":       true,
	"synced_at":  true,
	"created_at": true,
	"updated_at": true,
}

// Apply upserts rec (source-shaped) through mapping m from src into dst.
func (e *Executor) Apply(ctx context.Context, m Mapping, rec Record, src, dst Store) error {
	mapped, err := m.MapToTarget(rec)
	if err != nil {
		return err
	}

	sourceID := rec[m.SourceIdentity()]
	targetID := mapped[m.TargetIdentity()]
	now := e.now()

	// sync metadata is stamped fresh on the target, never carried over
	mapped["sync"] = true
	mapped["synced_at"] = now

	existing, err := dst.FindByIdentity(ctx, m.TargetTable(), m.TargetIdentity(), targetID)
	switch {
	case err == nil:
		merged, mergeErr := mergeRecords(m, targetID, existing, mapped)
		if mergeErr != nil {
			return mergeErr
		}
		if err := dst.UpdateByIdentity(ctx, m.TargetTable(), m.TargetIdentity(), targetID, merged); err != nil {
			return err
		}
	case errors.Is(err, ErrNotFound):
		if err := dst.Insert(ctx, m.TargetTable(), mapped); err != nil {
			return err
		}
	default:
		return err
	}

	// acknowledge on the source only now that the target write succeeded
	return src.UpdateByIdentity(ctx, m.SourceTable(), m.SourceIdentity(), sourceID, Record{
		"sync":      true,
		"synced_at": now,
	})
}

// mergeRecords overlays the incoming fields onto the existing row. A column
// holding text on one side and a number on the other is an incompatible
// shape: the record is skipped with a ConflictError rather than silently
// corrupted.
func mergeRecords(m Mapping, identity any, existing, incoming Record) (Record, error) {
	for col, have := range existing {
		if metaColumns[col] {
			continue
		}
		want, ok := incoming[col]
		if !ok {
			continue
		}
		if incompatible(have, want) {
			return nil, &ConflictError{Type: m.Type, Identity: identity, Field: col}
		}
	}

	// incoming fields win outright, zero values included (a stock level of 0
	// is data, not absence); columns the incoming record does not carry keep
	// their existing value
	merged := existing.Clone()
	if err := mergo.Merge(&merged, incoming, mergo.WithOverwriteWithEmptyValue); err != nil {
		return nil, err
	}
	return merged, nil
}

// value classes for shape checking. Drivers disagree on bool-vs-int and
// string-vs-bytes, so those collapse into one class each; anything exotic is
// left alone.
const (
	classOther = iota
	classNumeric
	classText
)

func valueClass(v any) int {
	switch v.(type) {
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return classNumeric
	case string, []byte:
		return classText
	default:
		return classOther
	}
}

func incompatible(a, b any) bool {
	ca, cb := valueClass(a), valueClass(b)
	if ca == classOther || cb == classOther {
		return false
	}
	return ca != cb
}
