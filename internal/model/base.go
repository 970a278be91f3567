package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel handles ID (UUID) and standard timestamps
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primary_key" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Hook Before Create untuk generate UUID otomatis
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	return
}

// SyncMeta carries the replication attributes every synchronizable entity has
// in both stores. Sync flips to true only after the counterpart store accepted
// this exact version; any local mutation must reset it to false in the same
// write. Deletion is soft (IsDeleted) so it replicates like any other update.
type SyncMeta struct {
	Sync      bool       `gorm:"column:sync;default:false;index" json:"sync"`
	SyncedAt  *time.Time `gorm:"column:synced_at" json:"synced_at"`
	IsDeleted bool       `gorm:"column:is_deleted;default:false;index" json:"is_deleted"`
}

// MarkDirty resets the sync flag. Write paths that build whole structs use
// this; raw UPDATE paths set the same columns inline.
func (m *SyncMeta) MarkDirty() {
	m.Sync = false
	m.SyncedAt = nil
}
