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

type SalesService interface {
	RecordSale(ctx context.Context, req *model.SaleRequest) (*model.SaleResult, error)
	DeleteSale(ctx context.Context, invoiceNo string) (*model.DeleteSaleResult, error)
	GetSale(invoiceNo string) (*model.Sale, error)
	ListSales(limit, offset int) ([]model.Sale, int64, error)
}

type salesService struct {
	db            *gorm.DB
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	saleRepo      repository.SaleRepository
	invalidator   *replication.Invalidator
	wsHub         *ws.Hub
}

func NewSalesService(
	db *gorm.DB,
	wRepo repository.WarehouseRepository,
	pRepo repository.ProductRepository,
	sRepo repository.SaleRepository,
	invalidator *replication.Invalidator,
	hub *ws.Hub,
) SalesService {
	return &salesService{
		db:            db,
		warehouseRepo: wRepo,
		productRepo:   pRepo,
		saleRepo:      sRepo,
		invalidator:   invalidator,
		wsHub:         hub,
	}
}

// RecordSale performs the primary writes of one sale — header, line items,
// payment lines, stock decrements — in a single local transaction, then runs
// the cascade invalidator over the full touched set so the next sync pass
// uploads the whole group together.
func (s *salesService) RecordSale(ctx context.Context, req *model.SaleRequest) (*model.SaleResult, error) {
	// 1. Validate input before touching anything
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, &ValidationError{Field: first.FailedField, Tag: first.Tag}
	}

	// 2. The warehouse reference must resolve
	if _, err := s.warehouseRepo.FindByCode(req.WarehouseID); err != nil {
		return nil, ErrReferenceNotFound
	}

	touched := replication.TouchedSet{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		sale := &model.Sale{
			InvoiceNo:   req.InvoiceNo,
			SubTotal:    req.SubTotal,
			TaxRate:     req.TaxRate,
			GrandTotal:  req.GrandTotal,
			AmountPaid:  req.AmountPaid,
			PaidAmount:  req.GrandTotal - req.Balance,
			Balance:     req.Balance,
			Notes:       req.Notes,
			Cashier:     req.Cashier,
			WarehouseID: req.WarehouseID,
			CustomerID:  req.CustomerID,
		}
		sale.MarkDirty()
		if err := tx.Create(sale).Error; err != nil {
			return err
		}
		touched["sales"] = []any{sale.InvoiceNo}

		for _, item := range req.Items {
			var product model.Product
			if err := tx.First(&product, "id = ? AND is_deleted = ?", item.ProductID, false).Error; err != nil {
				return ErrReferenceNotFound
			}
			if product.Quantity < item.Quantity {
				return ErrInsufficientStock
			}

			line := &model.SaleItem{
				SaleID:        sale.InvoiceNo,
				ProductID:     item.ProductID,
				ProductName:   item.ProductName,
				Cost:          item.CostPrice,
				SelectedPrice: item.SalePrice,
				PriceType:     item.PriceType,
				Quantity:      item.Quantity,
				Discount:      item.Discount,
				Total:         item.Total,
				Profit:        item.Profit,
				CustomerID:    req.CustomerID,
				WarehouseID:   req.WarehouseID,
			}
			line.MarkDirty()
			if err := tx.Create(line).Error; err != nil {
				return err
			}
			touched["sale_items"] = append(touched["sale_items"], line.ID.String())

			// decrement fused with the dirty-flag reset, one UPDATE
			if err := s.productRepo.AdjustQuantity(tx, item.ProductID, -item.Quantity); err != nil {
				return err
			}
			touched["products"] = append(touched["products"], item.ProductID.String())
		}

		for _, pm := range req.PaymentMethods {
			payment := &model.PaymentMethod{
				Method:      pm.Method,
				Amount:      pm.Amount,
				SaleID:      sale.InvoiceNo,
				WarehouseID: req.WarehouseID,
			}
			payment.MarkDirty()
			if err := tx.Create(payment).Error; err != nil {
				return err
			}
			touched["payment_methods"] = append(touched["payment_methods"], payment.ID.String())
		}

		if req.CustomerID != nil {
			touched["customers"] = []any{req.CustomerID.String()}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 3. Cascade: flag the entire touched set dirty in one pass, after the
	// primary writes are durable
	if _, err := s.invalidator.Invalidate(ctx, touched); err != nil {
		log.Printf("Warning: cascade after sale %s failed: %v", req.InvoiceNo, err)
	}

	result := &model.SaleResult{
		SaleID: req.InvoiceNo,
		Touched: model.TouchedRecordCounts{
			Sale:           1,
			SaleItems:      len(touched["sale_items"]),
			PaymentMethods: len(touched["payment_methods"]),
			Products:       len(touched["products"]),
			Customer:       len(touched["customers"]),
		},
	}

	if s.wsHub != nil {
		s.wsHub.BroadcastEvent(ws.Event{
			Type: "sale_recorded",
			Payload: map[string]interface{}{
				"invoice_no":  req.InvoiceNo,
				"grand_total": req.GrandTotal,
				"items":       len(req.Items),
				"cashier":     req.Cashier,
			},
		})
	}

	return result, nil
}

// DeleteSale reverses the stock decrements and soft-deletes the sale family.
// The deletion is a normal mutation: every touched row comes out dirty so the
// delete replicates on the next pass.
func (s *salesService) DeleteSale(ctx context.Context, invoiceNo string) (*model.DeleteSaleResult, error) {
	sale, err := s.saleRepo.FindByInvoice(invoiceNo)
	if err != nil {
		return nil, ErrNotFound
	}

	touched := replication.TouchedSet{"sales": []any{invoiceNo}}
	restored := 0

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range sale.SaleItems {
			if err := s.productRepo.AdjustQuantity(tx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// product vanished since the sale; nothing to restore
					log.Printf("Warning: product %s missing while restoring stock for %s", item.ProductID, invoiceNo)
					continue
				}
				return err
			}
			restored++
			touched["products"] = append(touched["products"], item.ProductID.String())
		}

		now := time.Now()
		deleted := map[string]interface{}{
			"is_deleted": true,
			"sync":       false,
			"synced_at":  nil,
			"updated_at": now,
		}

		if err := tx.Model(&model.Sale{}).Where("invoice_no = ?", invoiceNo).Updates(deleted).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.SaleItem{}).Where("sale_id = ?", invoiceNo).Updates(deleted).Error; err != nil {
			return err
		}
		return tx.Model(&model.PaymentMethod{}).Where("sale_id = ?", invoiceNo).Updates(deleted).Error
	})
	if err != nil {
		return nil, err
	}

	for _, item := range sale.SaleItems {
		touched["sale_items"] = append(touched["sale_items"], item.ID.String())
	}
	for _, pm := range sale.PaymentMethods {
		touched["payment_methods"] = append(touched["payment_methods"], pm.ID.String())
	}

	if _, err := s.invalidator.Invalidate(ctx, touched); err != nil {
		log.Printf("Warning: cascade after deleting sale %s failed: %v", invoiceNo, err)
	}

	if s.wsHub != nil {
		s.wsHub.BroadcastEvent(ws.Event{
			Type: "sale_deleted",
			Payload: map[string]interface{}{
				"invoice_no":        invoiceNo,
				"restored_products": restored,
			},
		})
	}

	return &model.DeleteSaleResult{
		SaleID:                invoiceNo,
		RestoredProductCount:  restored,
		DeletedSaleItems:      len(sale.SaleItems),
		DeletedPaymentMethods: len(sale.PaymentMethods),
	}, nil
}

func (s *salesService) GetSale(invoiceNo string) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByInvoice(invoiceNo)
	if err != nil {
		return nil, ErrNotFound
	}
	return sale, nil
}

func (s *salesService) ListSales(limit, offset int) ([]model.Sale, int64, error) {
	return s.saleRepo.FindAll(limit, offset)
}
