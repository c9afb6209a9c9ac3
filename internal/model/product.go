package model

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog entry owned by a tenant. A product is only
// sellable through its variants and must always have at least one.
type Product struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	TenantID    uint             `json:"tenant_id" gorm:"index;not null;comment:'Tenant this product belongs to'"`
	Name        string           `json:"name" gorm:"type:varchar(255);not null"`
	Category    string           `json:"category" gorm:"type:varchar(100)"`
	Description string           `json:"description" gorm:"type:text"`
	Variants    []ProductVariant `json:"variants" gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `json:"deleted_at,omitempty" gorm:"index"`
}

// ProductVariant is a sellable configuration of a product (size, color, ...)
// with its own SKU, price and stock level. TenantID is denormalized from the
// parent product so stock mutations can be a single conditional UPDATE that
// also enforces tenant isolation.
type ProductVariant struct {
	ID                uint              `json:"id" gorm:"primaryKey"`
	ProductID         uint              `json:"product_id" gorm:"index;not null"`
	TenantID          uint              `json:"tenant_id" gorm:"index;not null;comment:'Tenant this variant belongs to'"`
	SKU               string            `json:"sku" gorm:"type:varchar(100);not null;index:idx_variant_tenant_sku"`
	Attributes        map[string]string `json:"attributes" gorm:"serializer:json"`
	Price             float64           `json:"price" gorm:"not null"`
	Stock             int               `json:"stock" gorm:"not null;default:0"`
	LowStockThreshold int               `json:"low_stock_threshold" gorm:"not null;default:5"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// DefaultLowStockThreshold is applied when a variant is created without an
// explicit threshold.
const DefaultLowStockThreshold = 5
