package replication

import (
	"context"
	"sync"
	"time"
)

// memStore is an in-memory Store used across the engine tests. It keeps the
// same observable behavior as the GORM implementation: rows keyed by table,
// dirty means sync != true, updates merge column-wise.
type memStore struct {
	mu     sync.Mutex
	tables map[string][]Record

	pingErr  error
	writeErr error // returned by Insert/UpdateByIdentity when set

	fetched []string // tables FetchDirty was called for, in order
}

func newMemStore() *memStore {
	return &memStore{tables: make(map[string][]Record)}
}

func (s *memStore) seed(table string, recs ...Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range recs {
		s.tables[table] = append(s.tables[table], rec.Clone())
	}
}

// row returns a copy of the first row matching column==value, or nil.
func (s *memStore) row(table, column string, value any) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.tables[table] {
		if rec[column] == value {
			return rec.Clone()
		}
	}
	return nil
}

func (s *memStore) count(table string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tables[table])
}

func (s *memStore) Ping(ctx context.Context) error {
	return s.pingErr
}

func (s *memStore) FetchDirty(ctx context.Context, table string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetched = append(s.fetched, table)

	var out []Record
	for _, rec := range s.tables[table] {
		if rec["sync"] != true {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

func (s *memStore) FindByIdentity(ctx context.Context, table, column string, value any) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.tables[table] {
		if rec[column] == value {
			return rec.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memStore) Insert(ctx context.Context, table string, rec Record) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = append(s.tables[table], rec.Clone())
	return nil
}

func (s *memStore) UpdateByIdentity(ctx context.Context, table, column string, value any, fields Record) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.tables[table] {
		if rec[column] == value {
			for k, v := range fields {
				rec[k] = v
			}
			return nil
		}
	}
	return ErrNotFound
}

func (s *memStore) MarkDirty(ctx context.Context, table, column string, values []any) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, value := range values {
		for _, rec := range s.tables[table] {
			if rec[column] == value {
				rec["sync"] = false
				rec["synced_at"] = nil
				n++
				break
			}
		}
	}
	return n, nil
}

func (s *memStore) CountDirty(ctx context.Context, table string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, rec := range s.tables[table] {
		if rec["sync"] != true {
			n++
		}
	}
	return n, nil
}

// fixedClock pins executor timestamps in tests.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
