package service

import (
	"go-pos-sync/internal/model"
	"go-pos-sync/internal/repository"
	"go-pos-sync/internal/ws"
	"go-pos-sync/pkg/validator"

	"github.com/google/uuid"
)

// CatalogService covers the single-entity writes around the replication
// engine: product and supplier maintenance. Every mutation here resets the
// record's sync flag — a record is never left sync=true with unreflected
// local changes.
type CatalogService interface {
	CreateProduct(req *model.Product) error
	UpdateProduct(id uuid.UUID, req *model.Product) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	SearchProducts(query string, limit, offset int) ([]model.Product, int64, error)

	CreateSupplier(req *model.Supplier) error
	UpdateSupplier(id uuid.UUID, req *model.Supplier) (*model.Supplier, error)
	DeleteSupplier(id uuid.UUID) error
	GetSuppliers() ([]model.Supplier, error)

	GetWarehouses() ([]model.Warehouse, error)
	GetCustomers() ([]model.Customer, error)
}

type catalogService struct {
	productRepo   repository.ProductRepository
	supplierRepo  repository.SupplierRepository
	customerRepo  repository.CustomerRepository
	warehouseRepo repository.WarehouseRepository
	wsHub         *ws.Hub
}

func NewCatalogService(
	pRepo repository.ProductRepository,
	sRepo repository.SupplierRepository,
	cRepo repository.CustomerRepository,
	wRepo repository.WarehouseRepository,
	hub *ws.Hub,
) CatalogService {
	return &catalogService{
		productRepo:   pRepo,
		supplierRepo:  sRepo,
		customerRepo:  cRepo,
		warehouseRepo: wRepo,
		wsHub:         hub,
	}
}

func (s *catalogService) CreateProduct(req *model.Product) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return &ValidationError{Field: first.FailedField, Tag: first.Tag}
	}
	if _, err := s.warehouseRepo.FindByCode(req.WarehouseID); err != nil {
		return ErrReferenceNotFound
	}
	return s.productRepo.Create(req)
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	existing.Name = req.Name
	existing.Barcode = req.Barcode
	existing.Unit = req.Unit
	existing.Cost = req.Cost
	existing.WholesalePrice = req.WholesalePrice
	existing.RetailPrice = req.RetailPrice
	existing.TaxRate = req.TaxRate
	existing.Quantity = req.Quantity

	// Update resets the sync flag in the same save
	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	if s.wsHub != nil {
		s.wsHub.BroadcastEvent(ws.Event{
			Type: "product_updated",
			Payload: map[string]interface{}{
				"id":       existing.ID,
				"name":     existing.Name,
				"quantity": existing.Quantity,
			},
		})
	}
	return existing, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	if err := s.productRepo.SoftDelete(id); err != nil {
		return ErrNotFound
	}
	return nil
}

func (s *catalogService) SearchProducts(query string, limit, offset int) ([]model.Product, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.productRepo.Search(query, limit, offset)
}

func (s *catalogService) CreateSupplier(req *model.Supplier) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return &ValidationError{Field: first.FailedField, Tag: first.Tag}
	}
	return s.supplierRepo.Create(req)
}

func (s *catalogService) UpdateSupplier(id uuid.UUID, req *model.Supplier) (*model.Supplier, error) {
	existing, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	existing.Name = req.Name
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.Address = req.Address

	if err := s.supplierRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *catalogService) DeleteSupplier(id uuid.UUID) error {
	if err := s.supplierRepo.SoftDelete(id); err != nil {
		return ErrNotFound
	}
	return nil
}

func (s *catalogService) GetSuppliers() ([]model.Supplier, error) {
	return s.supplierRepo.FindAll()
}

func (s *catalogService) GetWarehouses() ([]model.Warehouse, error) {
	return s.warehouseRepo.FindAll()
}

func (s *catalogService) GetCustomers() ([]model.Customer, error) {
	return s.customerRepo.FindAll()
}
