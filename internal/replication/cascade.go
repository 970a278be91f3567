package replication

import (
	"context"
	"log"
)

// TouchedSet is every record one logical transaction touched, keyed by entity
// type name (registry key), valued by identity values in that type's identity
// column.
type TouchedSet map[string][]any

// Invalidator flags a whole touched set dirty in one pass. A sale is not a
// single-record write — header, lines, payments, stock adjustments, customer
// touch — and if those rows carried mixed sync flags across a crash, the
// central mirror could end up with the header but not one of its lines. The
// cascade runs last, after all primary writes, and re-stamps the entire set
// so the next pass uploads it as a consistent group.
type Invalidator struct {
	local Store
}

func NewInvalidator(local Store) *Invalidator {
	return &Invalidator{local: local}
}

// Invalidate marks every identified record sync=false, syncedAt=null.
// Idempotent: a second call re-stamps the same flags. An identifier that no
// longer exists (race with a concurrent delete) is logged and skipped; it
// never fails the rest of the cascade. Returns the number of rows flagged.
func (i *Invalidator) Invalidate(ctx context.Context, touched TouchedSet) (int64, error) {
	var flagged int64

	// walk the registry rather than the map so the pass order is stable
	for _, m := range Registry() {
		ids, ok := touched[m.Type]
		if !ok || len(ids) == 0 {
			continue
		}

		ids = dedupe(ids)
		n, err := i.local.MarkDirty(ctx, m.LocalTable, m.Identity, ids)
		if err != nil {
			return flagged, err
		}
		flagged += n

		if missing := int64(len(ids)) - n; missing > 0 {
			log.Printf("Warning: %v", &PartialCascadeError{Type: m.Type, Missing: int(missing)})
		}
	}

	return flagged, nil
}

func dedupe(ids []any) []any {
	seen := make(map[any]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
