package repository

import (
	"go-pos-sync/internal/model"

	"gorm.io/gorm"
)

type SaleRepository interface {
	FindByInvoice(invoiceNo string) (*model.Sale, error)
	FindAll(limit, offset int) ([]model.Sale, int64, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// FindByInvoice loads the full sale family: header, line items, payment
// lines. Soft-deleted sales are invisible here.
func (r *saleRepo) FindByInvoice(invoiceNo string) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.
		Preload("SaleItems", "is_deleted = ?", false).
		Preload("PaymentMethods", "is_deleted = ?", false).
		First(&sale, "invoice_no = ? AND is_deleted = ?", invoiceNo, false).Error
	return &sale, err
}

func (r *saleRepo) FindAll(limit, offset int) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.Model(&model.Sale{}).Where("is_deleted = ?", false)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&sales).Error
	return sales, total, err
}
