package repository

import (
	"go-pos-sync/internal/model"

	"gorm.io/gorm"
)

type WarehouseRepository interface {
	FindAll() ([]model.Warehouse, error)
	FindByCode(code string) (*model.Warehouse, error)
}

type warehouseRepo struct {
	db *gorm.DB
}

func NewWarehouseRepo(db *gorm.DB) WarehouseRepository {
	return &warehouseRepo{db}
}

func (r *warehouseRepo) FindAll() ([]model.Warehouse, error) {
	var warehouses []model.Warehouse
	err := r.db.Where("is_deleted = ?", false).Order("name ASC").Find(&warehouses).Error
	return warehouses, err
}

func (r *warehouseRepo) FindByCode(code string) (*model.Warehouse, error) {
	var warehouse model.Warehouse
	err := r.db.First(&warehouse, "warehouse_code = ? AND is_deleted = ?", code, false).Error
	return &warehouse, err
}
