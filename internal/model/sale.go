package model

import "github.com/google/uuid"

// Sale is the header of a point-of-sale transaction. Its identity across
// stores is the invoice number, not the row ID; sale items and payment lines
// reference it by invoice number as well.
type Sale struct {
	BaseModel
	SyncMeta
	InvoiceNo   string     `gorm:"column:invoice_no;type:varchar(50);uniqueIndex;not null" json:"invoice_no" validate:"required"`
	SubTotal    float64    `gorm:"default:0" json:"sub_total"`
	TaxRate     float64    `gorm:"default:0" json:"tax_rate"`
	GrandTotal  float64    `gorm:"default:0" json:"grand_total"`
	AmountPaid  float64    `gorm:"default:0" json:"amount_paid"`
	PaidAmount  float64    `gorm:"default:0" json:"paid_amount"`
	Balance     float64    `gorm:"default:0" json:"balance"`
	Notes       string     `gorm:"type:text" json:"notes"`
	Cashier     string     `gorm:"type:varchar(100)" json:"cashier"`
	WarehouseID string     `gorm:"column:warehouse_id;type:varchar(50);index;not null" json:"warehouse_id"`
	CustomerID  *uuid.UUID `gorm:"column:customer_id;type:varchar(36);index" json:"customer_id"`

	SaleItems      []SaleItem      `gorm:"foreignKey:SaleID;references:InvoiceNo" json:"sale_items,omitempty"`
	PaymentMethods []PaymentMethod `gorm:"foreignKey:SaleID;references:InvoiceNo" json:"payment_methods,omitempty"`
}

// SaleItem holds a denormalized snapshot of product name/cost at sale time so
// historical lines stay stable when the product record later changes.
type SaleItem struct {
	BaseModel
	SyncMeta
	SaleID        string     `gorm:"column:sale_id;type:varchar(50);index;not null" json:"sale_id"` // invoice number
	ProductID     uuid.UUID  `gorm:"column:product_id;type:varchar(36);index;not null" json:"product_id"`
	ProductName   string     `gorm:"type:varchar(255)" json:"product_name"`
	Cost          float64    `gorm:"default:0" json:"cost"`
	SelectedPrice float64    `gorm:"default:0" json:"selected_price"`
	PriceType     string     `gorm:"type:varchar(20)" json:"price_type"`
	Quantity      int        `gorm:"not null" json:"quantity"`
	Discount      float64    `gorm:"default:0" json:"discount"`
	Total         float64    `gorm:"default:0" json:"total"`
	Profit        float64    `gorm:"default:0" json:"profit"`
	CustomerID    *uuid.UUID `gorm:"column:customer_id;type:varchar(36);index" json:"customer_id"`
	WarehouseID   string     `gorm:"column:warehouse_id;type:varchar(50);index" json:"warehouse_id"`
}

// PaymentMethod is one payment line of a sale (a sale can be split across
// cash/card/etc).
type PaymentMethod struct {
	BaseModel
	SyncMeta
	Method      string  `gorm:"type:varchar(20);not null" json:"method"`
	Amount      float64 `gorm:"not null" json:"amount"`
	SaleID      string  `gorm:"column:sale_id;type:varchar(50);index;not null" json:"sale_id"` // invoice number
	WarehouseID string  `gorm:"column:warehouse_id;type:varchar(50);index" json:"warehouse_id"`
}

// ---- request/response shapes for the sale endpoints ----

type SaleItemRequest struct {
	ProductID   uuid.UUID `json:"product_id" validate:"uuid_required"`
	ProductName string    `json:"product_name"`
	CostPrice   float64   `json:"cost_price"`
	SalePrice   float64   `json:"sale_price"`
	PriceType   string    `json:"price_type"`
	Quantity    int       `json:"quantity" validate:"required,gt=0"`
	Discount    float64   `json:"discount"`
	Total       float64   `json:"total"`
	Profit      float64   `json:"profit"`
}

type SalePaymentRequest struct {
	Method string  `json:"method" validate:"required"`
	Amount float64 `json:"amount" validate:"gte=0"`
}

type SaleRequest struct {
	InvoiceNo      string               `json:"invoice_no" validate:"required"`
	Items          []SaleItemRequest    `json:"items" validate:"required,min=1,dive"`
	PaymentMethods []SalePaymentRequest `json:"payment_methods" validate:"dive"`
	CustomerID     *uuid.UUID           `json:"customer_id"`
	WarehouseID    string               `json:"warehouse_id" validate:"required"` // warehouse code
	SubTotal       float64              `json:"subtotal"`
	TaxRate        float64              `json:"tax_rate"`
	GrandTotal     float64              `json:"grand_total"`
	AmountPaid     float64              `json:"amount_paid"`
	Balance        float64              `json:"balance"`
	Notes          string               `json:"notes"`
	Cashier        string               `json:"cashier"`
}

// TouchedRecordCounts reports how many records of each kind one sale touched,
// i.e. how many rows the cascade flagged for the next sync pass.
type TouchedRecordCounts struct {
	Sale           int `json:"sale"`
	SaleItems      int `json:"sale_items"`
	PaymentMethods int `json:"payment_methods"`
	Products       int `json:"products"`
	Customer       int `json:"customer"`
}

type SaleResult struct {
	SaleID  string              `json:"sale_id"` // invoice number
	Touched TouchedRecordCounts `json:"touched_record_counts"`
}

type DeleteSaleResult struct {
	SaleID                string `json:"sale_id"`
	RestoredProductCount  int    `json:"restored_product_count"`
	DeletedSaleItems      int    `json:"deleted_sale_items"`
	DeletedPaymentMethods int    `json:"deleted_payment_methods"`
}
