package replication

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Store is the handle the engine uses for either side of replication. Both
// stores expose the same surface; which one is "source" and which is
// "target" depends on each mapping's direction. Handles are passed in
// explicitly so a pass can never touch a store it was not given.
type Store interface {
	// Ping probes connectivity. A pass starts only if both stores answer.
	Ping(ctx context.Context) error
	// FetchDirty returns rows with sync=false, soft-deleted or not; a
	// deletion replicates the same way as any other change.
	FetchDirty(ctx context.Context, table string) ([]Record, error)
	// FindByIdentity returns the row whose identity column equals value, or
	// ErrNotFound.
	FindByIdentity(ctx context.Context, table, column string, value any) (Record, error)
	// Insert writes a new row.
	Insert(ctx context.Context, table string, rec Record) error
	// UpdateByIdentity merges the given columns into the matching row.
	UpdateByIdentity(ctx context.Context, table, column string, value any, fields Record) error
	// MarkDirty resets sync metadata on every row whose identity column is in
	// values, returning how many rows were actually flagged.
	MarkDirty(ctx context.Context, table, column string, values []any) (int64, error)
	// CountDirty counts rows with sync=false, soft-deleted or not.
	CountDirty(ctx context.Context, table string) (int64, error)
}

// GormStore adapts a *gorm.DB to the Store interface, working on generic
// records via Table() so one implementation serves both schemas.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// DB exposes the underlying handle for callers that need typed queries
// (repositories share the local handle with the engine).
func (s *GormStore) DB() *gorm.DB { return s.db }

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) FetchDirty(ctx context.Context, table string) ([]Record, error) {
	var rows []map[string]interface{}
	err := s.db.WithContext(ctx).Table(table).Where("sync = ?", false).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toRecords(rows), nil
}

func (s *GormStore) FindByIdentity(ctx context.Context, table, column string, value any) (Record, error) {
	var rows []map[string]interface{}
	err := s.db.WithContext(ctx).Table(table).
		Where(column+" = ?", value).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return Record(rows[0]), nil
}

func (s *GormStore) Insert(ctx context.Context, table string, rec Record) error {
	return s.db.WithContext(ctx).Table(table).Create(map[string]interface{}(rec)).Error
}

func (s *GormStore) UpdateByIdentity(ctx context.Context, table, column string, value any, fields Record) error {
	return s.db.WithContext(ctx).Table(table).
		Where(column+" = ?", value).
		Updates(map[string]interface{}(fields)).Error
}

func (s *GormStore) MarkDirty(ctx context.Context, table, column string, values []any) (int64, error) {
	res := s.db.WithContext(ctx).Table(table).
		Where(column+" IN ?", values).
		Updates(map[string]interface{}{
			"sync":       false,
			"synced_at":  nil,
			"updated_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (s *GormStore) CountDirty(ctx context.Context, table string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Table(table).Where("sync = ?", false).Count(&count).Error
	return count, err
}

func toRecords(rows []map[string]interface{}) []Record {
	recs := make([]Record, len(rows))
	for i, row := range rows {
		recs[i] = Record(row)
	}
	return recs
}
