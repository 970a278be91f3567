package service

import (
	"context"
	"testing"

	"go-pos-sync/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func purchaseRequest(productID uuid.UUID, qty int) *model.PurchaseRequest {
	return &model.PurchaseRequest{
		ReferenceNo: "PO-0001",
		WarehouseID: "WH-01",
		SubTotal:    float64(qty) * 9.50,
		GrandTotal:  float64(qty) * 9.50,
		PaidAmount:  float64(qty) * 9.50,
		Items: []model.PurchaseItemRequest{{
			ProductID:   productID,
			ProductName: "Beans 1kg",
			Cost:        9.50,
			Quantity:    qty,
			Total:       float64(qty) * 9.50,
		}},
	}
}

func TestRecordPurchase(t *testing.T) {
	db := setupTestDB(t)
	seedWarehouse(t, db)
	product := seedProduct(t, db, 20)
	supplier := seedSupplier(t, db)
	svc := newTestPurchaseService(db)

	req := purchaseRequest(product.ID, 7)
	req.SupplierID = &supplier.ID

	res, err := svc.RecordPurchase(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "PO-0001", res.ReferenceNo)
	assert.Equal(t, 1, res.PurchaseItems)
	assert.Equal(t, 1, res.Products)

	// incoming stock, same dirty-in-the-same-write rule as sales
	got := reloadProduct(t, db, product.ID)
	assert.Equal(t, 27, got.Quantity)
	assert.False(t, got.Sync)

	var purchase model.Purchase
	require.NoError(t, db.First(&purchase, "reference_no = ?", "PO-0001").Error)
	assert.False(t, purchase.Sync)
	require.NotNil(t, purchase.SupplierID)
	assert.Equal(t, supplier.ID, *purchase.SupplierID)

	var supp model.Supplier
	require.NoError(t, db.First(&supp, "id = ?", supplier.ID).Error)
	assert.False(t, supp.Sync)
}

func TestRecordPurchaseRejectsBadInput(t *testing.T) {
	db := setupTestDB(t)
	seedWarehouse(t, db)
	product := seedProduct(t, db, 20)
	svc := newTestPurchaseService(db)

	tests := []struct {
		name   string
		mutate func(*model.PurchaseRequest)
	}{
		{"missing reference number", func(r *model.PurchaseRequest) { r.ReferenceNo = "" }},
		{"no items", func(r *model.PurchaseRequest) { r.Items = nil }},
		{"zero quantity", func(r *model.PurchaseRequest) { r.Items[0].Quantity = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := purchaseRequest(product.ID, 7)
			tt.mutate(req)

			_, err := svc.RecordPurchase(context.Background(), req)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, 20, reloadProduct(t, db, product.ID).Quantity)
		})
	}
}

func TestRecordPurchaseUnknownProductRollsBack(t *testing.T) {
	db := setupTestDB(t)
	seedWarehouse(t, db)
	seedProduct(t, db, 20)
	svc := newTestPurchaseService(db)

	_, err := svc.RecordPurchase(context.Background(), purchaseRequest(uuid.New(), 7))
	assert.ErrorIs(t, err, ErrReferenceNotFound)

	var n int64
	require.NoError(t, db.Model(&model.Purchase{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestDeletePurchaseBacksOutStock(t *testing.T) {
	db := setupTestDB(t)
	seedWarehouse(t, db)
	product := seedProduct(t, db, 20)
	svc := newTestPurchaseService(db)

	_, err := svc.RecordPurchase(context.Background(), purchaseRequest(product.ID, 7))
	require.NoError(t, err)
	require.Equal(t, 27, reloadProduct(t, db, product.ID).Quantity)

	res, err := svc.DeletePurchase(context.Background(), "PO-0001")
	require.NoError(t, err)

	assert.Equal(t, 1, res.RestoredProductCount)
	assert.Equal(t, 1, res.DeletedPurchaseItems)
	assert.Equal(t, 20, reloadProduct(t, db, product.ID).Quantity)

	var purchase model.Purchase
	require.NoError(t, db.First(&purchase, "reference_no = ?", "PO-0001").Error)
	assert.True(t, purchase.IsDeleted)
	assert.False(t, purchase.Sync)

	_, err = svc.GetPurchase("PO-0001")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePurchaseUnknownReference(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPurchaseService(db)

	_, err := svc.DeletePurchase(context.Background(), "PO-9999")
	assert.ErrorIs(t, err, ErrNotFound)
}
