package model

import "github.com/google/uuid"

// Purchase mirrors Sale for the incoming direction of stock. Its identity
// across stores is the reference number.
type Purchase struct {
	BaseModel
	SyncMeta
	ReferenceNo string     `gorm:"column:reference_no;type:varchar(50);uniqueIndex;not null" json:"reference_no" validate:"required"`
	SubTotal    float64    `gorm:"default:0" json:"sub_total"`
	TaxRate     float64    `gorm:"default:0" json:"tax_rate"`
	GrandTotal  float64    `gorm:"default:0" json:"grand_total"`
	PaidAmount  float64    `gorm:"default:0" json:"paid_amount"`
	Balance     float64    `gorm:"default:0" json:"balance"`
	Notes       string     `gorm:"type:text" json:"notes"`
	WarehouseID string     `gorm:"column:warehouse_id;type:varchar(50);index;not null" json:"warehouse_id"`
	SupplierID  *uuid.UUID `gorm:"column:supplier_id;type:varchar(36);index" json:"supplier_id"`

	PurchaseItems []PurchaseItem `gorm:"foreignKey:PurchaseID;references:ReferenceNo" json:"purchase_items,omitempty"`
}

type PurchaseItem struct {
	BaseModel
	SyncMeta
	PurchaseID  string    `gorm:"column:purchase_id;type:varchar(50);index;not null" json:"purchase_id"` // reference number
	ProductID   uuid.UUID `gorm:"column:product_id;type:varchar(36);index;not null" json:"product_id"`
	ProductName string    `gorm:"type:varchar(255)" json:"product_name"`
	Cost        float64   `gorm:"default:0" json:"cost"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Total       float64   `gorm:"default:0" json:"total"`
	WarehouseID string    `gorm:"column:warehouse_id;type:varchar(50);index" json:"warehouse_id"`
}

// ---- request/response shapes for the purchase endpoints ----

type PurchaseItemRequest struct {
	ProductID   uuid.UUID `json:"product_id" validate:"uuid_required"`
	ProductName string    `json:"product_name"`
	Cost        float64   `json:"cost"`
	Quantity    int       `json:"quantity" validate:"required,gt=0"`
	Total       float64   `json:"total"`
}

type PurchaseRequest struct {
	ReferenceNo string                `json:"reference_no" validate:"required"`
	Items       []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
	SupplierID  *uuid.UUID            `json:"supplier_id"`
	WarehouseID string                `json:"warehouse_id" validate:"required"` // warehouse code
	SubTotal    float64               `json:"subtotal"`
	TaxRate     float64               `json:"tax_rate"`
	GrandTotal  float64               `json:"grand_total"`
	PaidAmount  float64               `json:"paid_amount"`
	Balance     float64               `json:"balance"`
	Notes       string                `json:"notes"`
}

type PurchaseResult struct {
	ReferenceNo   string `json:"reference_no"`
	PurchaseItems int    `json:"purchase_items"`
	Products      int    `json:"products"`
}

type DeletePurchaseResult struct {
	ReferenceNo          string `json:"reference_no"`
	RestoredProductCount int    `json:"restored_product_count"`
	DeletedPurchaseItems int    `json:"deleted_purchase_items"`
}
