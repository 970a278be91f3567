package repository

import (
	"time"

	"go-pos-sync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	Search(query string, limit, offset int) ([]model.Product, int64, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	Update(product *model.Product) error
	SoftDelete(id uuid.UUID) error
	AdjustQuantity(tx *gorm.DB, id uuid.UUID, delta int) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	product.MarkDirty()
	return r.db.Create(product).Error
}

// Search lists non-deleted products, optionally filtered by name/barcode,
// with offset pagination.
func (r *productRepo) Search(query string, limit, offset int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.Model(&model.Product{}).Where("is_deleted = ?", false)
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("name LIKE ? OR barcode LIKE ?", like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ? AND is_deleted = ?", id, false).Error
	return &product, err
}

// Update saves scalar changes and resets the sync flag in the same write.
func (r *productRepo) Update(product *model.Product) error {
	product.MarkDirty()
	return r.db.Save(product).Error
}

// SoftDelete flips is_deleted and dirties the record so the deletion itself
// replicates; nothing is physically removed.
func (r *productRepo) SoftDelete(id uuid.UUID) error {
	res := r.db.Model(&model.Product{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"sync":       false,
			"synced_at":  nil,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AdjustQuantity menerima *gorm.DB (tx) agar bisa berjalan dalam transaksi.
// The quantity change and the sync flag reset happen in one UPDATE: partial
// application (quantity changed, flag not reset) is a consistency violation.
func (r *productRepo) AdjustQuantity(tx *gorm.DB, id uuid.UUID, delta int) error {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"sync":       false,
			"synced_at":  nil,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
