package repository

import (
	"go-pos-sync/internal/model"

	"gorm.io/gorm"
)

type PurchaseRepository interface {
	FindByReference(referenceNo string) (*model.Purchase, error)
	FindAll(limit, offset int) ([]model.Purchase, int64, error)
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) FindByReference(referenceNo string) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.
		Preload("PurchaseItems", "is_deleted = ?", false).
		First(&purchase, "reference_no = ? AND is_deleted = ?", referenceNo, false).Error
	return &purchase, err
}

func (r *purchaseRepo) FindAll(limit, offset int) ([]model.Purchase, int64, error) {
	var purchases []model.Purchase
	var total int64

	q := r.db.Model(&model.Purchase{}).Where("is_deleted = ?", false)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&purchases).Error
	return purchases, total, err
}
