package model

type Product struct {
	BaseModel
	SyncMeta
	Barcode        string  `gorm:"type:varchar(50);uniqueIndex" json:"barcode"`
	Name           string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Quantity       int     `gorm:"default:0" json:"quantity"`
	Unit           string  `gorm:"type:varchar(20)" json:"unit"`
	Cost           float64 `gorm:"default:0" json:"cost"`
	WholesalePrice float64 `gorm:"default:0" json:"wholesale_price"`
	RetailPrice    float64 `gorm:"default:0" json:"retail_price"`
	TaxRate        float64 `gorm:"default:0" json:"tax_rate"`
	WarehouseID    string  `gorm:"column:warehouse_id;type:varchar(50);index;not null" json:"warehouse_id" validate:"required"`
}
