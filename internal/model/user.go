package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents a cashier/operator account. Like warehouses, users are
// reference data downloaded from the central store; the local copy exists so
// login keeps working while disconnected.
type User struct {
	BaseModel
	SyncMeta
	UserName    string `gorm:"column:username;type:varchar(100);uniqueIndex;not null" json:"username" validate:"required"`
	FullName    string `gorm:"type:varchar(255)" json:"full_name"`
	Email       string `gorm:"type:varchar(255)" json:"email"`
	Password    string `gorm:"type:varchar(255);not null" json:"-"` // bcrypt hash, hidden from JSON
	Role        string `gorm:"type:varchar(50);default:'cashier'" json:"role"`
	WarehouseID string `gorm:"column:warehouse_id;type:varchar(50);index" json:"warehouse_id"`
	// no column default: GORM drops zero-value fields that carry one, which
	// would silently re-activate a deactivated user on insert
	IsActive bool `json:"is_active"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	UserName    string    `json:"username"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	WarehouseID string    `json:"warehouse_id"`
	IsActive    bool      `json:"is_active"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		UserName:    u.UserName,
		FullName:    u.FullName,
		Email:       u.Email,
		Role:        u.Role,
		WarehouseID: u.WarehouseID,
		IsActive:    u.IsActive,
	}
}
