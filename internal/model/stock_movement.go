package model

import (
	"time"
)

// Stock movement types. SALE quantities are recorded negative, PURCHASE and
// RETURN positive, ADJUSTMENT carries either sign.
const (
	MovementPurchase   = "PURCHASE"
	MovementSale       = "SALE"
	MovementReturn     = "RETURN"
	MovementAdjustment = "ADJUSTMENT"
)

// StockMovement is an append-only ledger entry recording a signed stock
// change for a variant. Rows are never updated or deleted; the ledger is the
// sole source of historical truth for the dashboard aggregations.
type StockMovement struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TenantID  uint      `json:"tenant_id" gorm:"index:idx_movement_tenant_type;not null;comment:'Tenant this movement belongs to'"`
	ProductID uint      `json:"product_id" gorm:"index;not null"`
	VariantID uint      `json:"variant_id" gorm:"index;not null"`
	Type      string    `json:"type" gorm:"type:varchar(20);index:idx_movement_tenant_type;not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Reference string    `json:"reference,omitempty" gorm:"type:varchar(50)"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
