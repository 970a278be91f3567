package model

// Customer and Supplier are thin party records scoped to a warehouse. Both
// upload to the central store; edits reset the sync flag like any mutation.

type Customer struct {
	BaseModel
	SyncMeta
	Name         string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone        string `gorm:"type:varchar(20)" json:"phone"`
	Email        string `gorm:"type:varchar(255)" json:"email"`
	Address      string `gorm:"type:text" json:"address"`
	CustomerType string `gorm:"type:varchar(20);default:'retail'" json:"customer_type"`
	WarehouseID  string `gorm:"column:warehouse_id;type:varchar(50);index" json:"warehouse_id"`
}

type Supplier struct {
	BaseModel
	SyncMeta
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone       string `gorm:"type:varchar(20)" json:"phone"`
	Email       string `gorm:"type:varchar(255)" json:"email"`
	Address     string `gorm:"type:text" json:"address"`
	WarehouseID string `gorm:"column:warehouse_id;type:varchar(50);index" json:"warehouse_id"`
}
