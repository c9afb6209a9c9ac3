package model

import (
	"time"

	"gorm.io/gorm"
)

// Supplier represents a vendor contact record scoped to a tenant and
// referenced by purchase orders.
type Supplier struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	TenantID  uint           `json:"tenant_id" gorm:"index;not null;comment:'Tenant this supplier belongs to'"`
	Name      string         `json:"name" gorm:"type:varchar(100);index;not null"`
	Email     string         `json:"email" gorm:"type:varchar(100)"`
	Phone     string         `json:"phone" gorm:"type:varchar(20)"`
	Address   string         `json:"address" gorm:"type:text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
