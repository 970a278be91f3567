package service

import (
	"testing"
	"time"

	"go-pos-sync/internal/model"
	"go-pos-sync/internal/replication"
	"go-pos-sync/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a throwaway in-memory local store with the full schema.
// One connection, same as the real local store.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Warehouse{},
		&model.User{},
		&model.ReceiptSetting{},
		&model.Product{},
		&model.Customer{},
		&model.Supplier{},
		&model.Sale{},
		&model.SaleItem{},
		&model.PaymentMethod{},
		&model.Purchase{},
		&model.PurchaseItem{},
	))
	return db
}

func newTestInvalidator(db *gorm.DB) *replication.Invalidator {
	return replication.NewInvalidator(replication.NewGormStore(db))
}

func newTestSalesService(db *gorm.DB) SalesService {
	return NewSalesService(db,
		repository.NewWarehouseRepo(db),
		repository.NewProductRepo(db),
		repository.NewSaleRepo(db),
		newTestInvalidator(db), nil)
}

func newTestPurchaseService(db *gorm.DB) PurchaseService {
	return NewPurchaseService(db,
		repository.NewWarehouseRepo(db),
		repository.NewProductRepo(db),
		repository.NewPurchaseRepo(db),
		newTestInvalidator(db), nil)
}

// seeded reference rows arrive synced, the way a download pass leaves them

func markSynced(m *model.SyncMeta) {
	now := time.Now()
	m.Sync = true
	m.SyncedAt = &now
}

func seedWarehouse(t *testing.T, db *gorm.DB) *model.Warehouse {
	t.Helper()
	w := &model.Warehouse{WarehouseCode: "WH-01", Name: "Main Street"}
	markSynced(&w.SyncMeta)
	require.NoError(t, db.Create(w).Error)
	return w
}

func seedProduct(t *testing.T, db *gorm.DB, qty int) *model.Product {
	t.Helper()
	p := &model.Product{
		Barcode:     "8991234500017",
		Name:        "Beans 1kg",
		Quantity:    qty,
		Unit:        "pcs",
		Cost:        9.50,
		RetailPrice: 14.00,
		WarehouseID: "WH-01",
	}
	markSynced(&p.SyncMeta)
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedCustomer(t *testing.T, db *gorm.DB) *model.Customer {
	t.Helper()
	c := &model.Customer{Name: "Walk-in", WarehouseID: "WH-01"}
	markSynced(&c.SyncMeta)
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedSupplier(t *testing.T, db *gorm.DB) *model.Supplier {
	t.Helper()
	s := &model.Supplier{Name: "Acme Foods", WarehouseID: "WH-01"}
	markSynced(&s.SyncMeta)
	require.NoError(t, db.Create(s).Error)
	return s
}

// reloadProduct reads the row back regardless of its deletion flag.
func reloadProduct(t *testing.T, db *gorm.DB, id any) model.Product {
	t.Helper()
	var p model.Product
	require.NoError(t, db.First(&p, "id = ?", id).Error)
	return p
}
