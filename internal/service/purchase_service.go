package service

import (
	"context"
	"errors"
	"log"
	"time"

	"go-pos-sync/internal/model"
	"go-pos-sync/internal/replication"
	"go-pos-sync/internal/repository"
	"go-pos-sync/internal/ws"
	"go-pos-sync/pkg/validator"

	"gorm.io/gorm"
)

type PurchaseService interface {
	RecordPurchase(ctx context.Context, req *model.PurchaseRequest) (*model.PurchaseResult, error)
	DeletePurchase(ctx context.Context, referenceNo string) (*model.DeletePurchaseResult, error)
	GetPurchase(referenceNo string) (*model.Purchase, error)
	ListPurchases(limit, offset int) ([]model.Purchase, int64, error)
}

type purchaseService struct {
	db            *gorm.DB
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	purchaseRepo  repository.PurchaseRepository
	invalidator   *replication.Invalidator
	wsHub         *ws.Hub
}

func NewPurchaseService(
	db *gorm.DB,
	wRepo repository.WarehouseRepository,
	pRepo repository.ProductRepository,
	puRepo repository.PurchaseRepository,
	invalidator *replication.Invalidator,
	hub *ws.Hub,
) PurchaseService {
	return &purchaseService{
		db:            db,
		warehouseRepo: wRepo,
		productRepo:   pRepo,
		purchaseRepo:  puRepo,
		invalidator:   invalidator,
		wsHub:         hub,
	}
}

// RecordPurchase is the incoming-stock counterpart of RecordSale: header,
// line items and stock increments in one local transaction, cascade after.
func (s *purchaseService) RecordPurchase(ctx context.Context, req *model.PurchaseRequest) (*model.PurchaseResult, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, &ValidationError{Field: first.FailedField, Tag: first.Tag}
	}

	if _, err := s.warehouseRepo.FindByCode(req.WarehouseID); err != nil {
		return nil, ErrReferenceNotFound
	}

	touched := replication.TouchedSet{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		purchase := &model.Purchase{
			ReferenceNo: req.ReferenceNo,
			SubTotal:    req.SubTotal,
			TaxRate:     req.TaxRate,
			GrandTotal:  req.GrandTotal,
			PaidAmount:  req.PaidAmount,
			Balance:     req.Balance,
			Notes:       req.Notes,
			WarehouseID: req.WarehouseID,
			SupplierID:  req.SupplierID,
		}
		purchase.MarkDirty()
		if err := tx.Create(purchase).Error; err != nil {
			return err
		}
		touched["purchases"] = []any{purchase.ReferenceNo}

		for _, item := range req.Items {
			var product model.Product
			if err := tx.First(&product, "id = ? AND is_deleted = ?", item.ProductID, false).Error; err != nil {
				return ErrReferenceNotFound
			}

			line := &model.PurchaseItem{
				PurchaseID:  purchase.ReferenceNo,
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Cost:        item.Cost,
				Quantity:    item.Quantity,
				Total:       item.Total,
				WarehouseID: req.WarehouseID,
			}
			line.MarkDirty()
			if err := tx.Create(line).Error; err != nil {
				return err
			}
			touched["purchase_items"] = append(touched["purchase_items"], line.ID.String())

			if err := s.productRepo.AdjustQuantity(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
			touched["products"] = append(touched["products"], item.ProductID.String())
		}

		if req.SupplierID != nil {
			touched["suppliers"] = []any{req.SupplierID.String()}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.invalidator.Invalidate(ctx, touched); err != nil {
		log.Printf("Warning: cascade after purchase %s failed: %v", req.ReferenceNo, err)
	}

	if s.wsHub != nil {
		s.wsHub.BroadcastEvent(ws.Event{
			Type: "purchase_recorded",
			Payload: map[string]interface{}{
				"reference_no": req.ReferenceNo,
				"items":        len(req.Items),
			},
		})
	}

	return &model.PurchaseResult{
		ReferenceNo:   req.ReferenceNo,
		PurchaseItems: len(touched["purchase_items"]),
		Products:      len(touched["products"]),
	}, nil
}

// DeletePurchase backs the received stock out again and soft-deletes the
// purchase family, all dirty for the next pass.
func (s *purchaseService) DeletePurchase(ctx context.Context, referenceNo string) (*model.DeletePurchaseResult, error) {
	purchase, err := s.purchaseRepo.FindByReference(referenceNo)
	if err != nil {
		return nil, ErrNotFound
	}

	touched := replication.TouchedSet{"purchases": []any{referenceNo}}
	restored := 0

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range purchase.PurchaseItems {
			if err := s.productRepo.AdjustQuantity(tx, item.ProductID, -item.Quantity); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					log.Printf("Warning: product %s missing while reversing stock for %s", item.ProductID, referenceNo)
					continue
				}
				return err
			}
			restored++
			touched["products"] = append(touched["products"], item.ProductID.String())
		}

		deleted := map[string]interface{}{
			"is_deleted": true,
			"sync":       false,
			"synced_at":  nil,
			"updated_at": time.Now(),
		}

		if err := tx.Model(&model.Purchase{}).Where("reference_no = ?", referenceNo).Updates(deleted).Error; err != nil {
			return err
		}
		return tx.Model(&model.PurchaseItem{}).Where("purchase_id = ?", referenceNo).Updates(deleted).Error
	})
	if err != nil {
		return nil, err
	}

	for _, item := range purchase.PurchaseItems {
		touched["purchase_items"] = append(touched["purchase_items"], item.ID.String())
	}

	if _, err := s.invalidator.Invalidate(ctx, touched); err != nil {
		log.Printf("Warning: cascade after deleting purchase %s failed: %v", referenceNo, err)
	}

	return &model.DeletePurchaseResult{
		ReferenceNo:          referenceNo,
		RestoredProductCount: restored,
		DeletedPurchaseItems: len(purchase.PurchaseItems),
	}, nil
}

func (s *purchaseService) GetPurchase(referenceNo string) (*model.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByReference(referenceNo)
	if err != nil {
		return nil, ErrNotFound
	}
	return purchase, nil
}

func (s *purchaseService) ListPurchases(limit, offset int) ([]model.Purchase, int64, error) {
	return s.purchaseRepo.FindAll(limit, offset)
}
