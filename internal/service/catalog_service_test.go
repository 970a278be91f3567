package service

import (
	"testing"

	"go-pos-sync/internal/model"
	"go-pos-sync/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestCatalogService(db *gorm.DB) CatalogService {
	return NewCatalogService(
		repository.NewProductRepo(db),
		repository.NewSupplierRepo(db),
		repository.NewCustomerRepo(db),
		repository.NewWarehouseRepo(db),
		nil)
}

func TestCreateProduct(t *testing.T) {
	db := setupTestDB(t)
	seedWarehouse(t, db)
	svc := newTestCatalogService(db)

	p := &model.Product{Name: "Sugar 1kg", Barcode: "8991234500024", Quantity: 40, WarehouseID: "WH-01"}
	require.NoError(t, svc.CreateProduct(p))

	got := reloadProduct(t, db, p.ID)
	assert.Equal(t, "Sugar 1kg", got.Name)
	assert.False(t, got.Sync, "new records start dirty")
	assert.Nil(t, got.SyncedAt)
}

func TestCreateProductUnknownWarehouse(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCatalogService(db)

	err := svc.CreateProduct(&model.Product{Name: "Sugar 1kg", WarehouseID: "WH-99"})
	assert.ErrorIs(t, err, ErrReferenceNotFound)
}

func TestUpdateProductResetsSyncFlag(t *testing.T) {
	db := setupTestDB(t)
	seedWarehouse(t, db)
	product := seedProduct(t, db, 20)
	svc := newTestCatalogService(db)

	update := *product
	update.RetailPrice = 15.50

	got, err := svc.UpdateProduct(product.ID, &update)
	require.NoError(t, err)
	assert.Equal(t, 15.50, got.RetailPrice)

	persisted := reloadProduct(t, db, product.ID)
	assert.Equal(t, 15.50, persisted.RetailPrice)
	assert.False(t, persisted.Sync)
}

func TestDeleteProductIsSoftAndDirty(t *testing.T) {
	db := setupTestDB(t)
	seedWarehouse(t, db)
	product := seedProduct(t, db, 20)
	svc := newTestCatalogService(db)

	require.NoError(t, svc.DeleteProduct(product.ID))

	// still present for the sync pass to upload, invisible to searches
	got := reloadProduct(t, db, product.ID)
	assert.True(t, got.IsDeleted)
	assert.False(t, got.Sync)

	results, total, err := svc.SearchProducts("", 20, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, results)

	assert.ErrorIs(t, svc.DeleteProduct(product.ID), ErrNotFound)
	assert.ErrorIs(t, svc.DeleteProduct(uuid.New()), ErrNotFound)
}

func TestSearchProducts(t *testing.T) {
	db := setupTestDB(t)
	seedWarehouse(t, db)
	seedProduct(t, db, 20) // "Beans 1kg"
	svc := newTestCatalogService(db)

	p := &model.Product{Name: "Sugar 1kg", Barcode: "8991234500024", WarehouseID: "WH-01"}
	require.NoError(t, svc.CreateProduct(p))

	results, total, err := svc.SearchProducts("sugar", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, results, 1)
	assert.Equal(t, "Sugar 1kg", results[0].Name)

	// barcode matches too
	_, total, err = svc.SearchProducts("8991234500017", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// bogus limits fall back to the default page size
	_, total, err = svc.SearchProducts("", -5, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestSupplierLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCatalogService(db)

	s := &model.Supplier{Name: "Acme Foods", Phone: "0812000111"}
	require.NoError(t, svc.CreateSupplier(s))

	s.Phone = "0812000222"
	updated, err := svc.UpdateSupplier(s.ID, s)
	require.NoError(t, err)
	assert.Equal(t, "0812000222", updated.Phone)
	assert.False(t, updated.Sync)

	require.NoError(t, svc.DeleteSupplier(s.ID))
	suppliers, err := svc.GetSuppliers()
	require.NoError(t, err)
	assert.Empty(t, suppliers)
}
