package model

// Warehouse is slowly-changing reference data owned by the central store.
// The local row is a mirror: it is only ever written by the download
// direction of a sync pass and arrives already marked synced.
type Warehouse struct {
	BaseModel
	SyncMeta
	WarehouseCode string `gorm:"type:varchar(50);uniqueIndex;not null" json:"warehouse_code" validate:"required"`
	Name          string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Address       string `gorm:"type:text" json:"address"`
	Phone         string `gorm:"type:varchar(20)" json:"phone"`
	Email         string `gorm:"type:varchar(255)" json:"email"`
}

// ReceiptSetting holds the printed-receipt header/footer for one warehouse.
// One row per warehouse; the warehouse reference doubles as the identity.
type ReceiptSetting struct {
	BaseModel
	SyncMeta
	WarehouseID  string `gorm:"column:warehouse_id;type:varchar(50);uniqueIndex;not null" json:"warehouse_id" validate:"required"`
	BusinessName string `gorm:"type:varchar(255)" json:"business_name"`
	Address      string `gorm:"type:text" json:"address"`
	Phone        string `gorm:"type:varchar(20)" json:"phone"`
	Footer       string `gorm:"type:text" json:"footer"`
}
