package repository

import (
	"time"

	"go-pos-sync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	FindByID(id uuid.UUID) (*model.Customer, error)
	FindAll() ([]model.Customer, error)
	Create(customer *model.Customer) error
	Update(customer *model.Customer) error
}

type SupplierRepository interface {
	FindByID(id uuid.UUID) (*model.Supplier, error)
	FindAll() ([]model.Supplier, error)
	Create(supplier *model.Supplier) error
	Update(supplier *model.Supplier) error
	SoftDelete(id uuid.UUID) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.First(&customer, "id = ? AND is_deleted = ?", id, false).Error
	return &customer, err
}

func (r *customerRepo) FindAll() ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Where("is_deleted = ?", false).Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Create(customer *model.Customer) error {
	customer.MarkDirty()
	return r.db.Create(customer).Error
}

func (r *customerRepo) Update(customer *model.Customer) error {
	customer.MarkDirty()
	return r.db.Save(customer).Error
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

func (r *supplierRepo) FindByID(id uuid.UUID) (*model.Supplier, error) {
	var supplier model.Supplier
	err := r.db.First(&supplier, "id = ? AND is_deleted = ?", id, false).Error
	return &supplier, err
}

func (r *supplierRepo) FindAll() ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.Where("is_deleted = ?", false).Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) Create(supplier *model.Supplier) error {
	supplier.MarkDirty()
	return r.db.Create(supplier).Error
}

func (r *supplierRepo) Update(supplier *model.Supplier) error {
	supplier.MarkDirty()
	return r.db.Save(supplier).Error
}

func (r *supplierRepo) SoftDelete(id uuid.UUID) error {
	res := r.db.Model(&model.Supplier{}).
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
