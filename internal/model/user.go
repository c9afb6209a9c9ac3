package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles within a tenant. OWNER and MANAGER may create and mutate
// catalog and purchasing data; STAFF is limited to reads and selling.
const (
	RoleOwner   = "OWNER"
	RoleManager = "MANAGER"
	RoleStaff   = "STAFF"
)

// User represents an authenticated member of a tenant.
// A user belongs to exactly one tenant and holds exactly one role in it.
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null"`
	Email     string         `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"type:varchar(255);not null"`
	Role      string         `json:"role" gorm:"type:varchar(20);not null"`
	TenantID  uint           `json:"tenant_id" gorm:"index;not null;comment:'Tenant this user belongs to'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
