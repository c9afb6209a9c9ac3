package model

import (
	"time"

	"gorm.io/gorm"
)

// Purchase order lifecycle. Transitions move strictly forward:
// DRAFT -> SENT -> CONFIRMED -> RECEIVED. RECEIVED is reached only by
// receiving every ordered unit, never by a direct status change.
const (
	POStatusDraft     = "DRAFT"
	POStatusSent      = "SENT"
	POStatusConfirmed = "CONFIRMED"
	POStatusReceived  = "RECEIVED"
)

// PurchaseOrder represents an order placed with a supplier for one or more
// product variants. It must always have at least one item.
type PurchaseOrder struct {
	ID           uint                `json:"id" gorm:"primaryKey"`
	TenantID     uint                `json:"tenant_id" gorm:"index:idx_po_tenant_status;not null;comment:'Tenant this purchase order belongs to'"`
	SupplierID   uint                `json:"supplier_id" gorm:"index;not null"`
	Status       string              `json:"status" gorm:"type:varchar(20);index:idx_po_tenant_status;not null;default:'DRAFT'"`
	ExpectedDate *time.Time          `json:"expected_date,omitempty"`
	Items        []PurchaseOrderItem `json:"items" gorm:"foreignKey:PurchaseOrderID"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	DeletedAt    gorm.DeletedAt      `json:"-" gorm:"index"`
}

// PurchaseOrderItem is a single line of a purchase order. ReceivedQty never
// exceeds OrderedQty.
type PurchaseOrderItem struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	PurchaseOrderID uint      `json:"purchase_order_id" gorm:"index;not null"`
	ProductID       uint      `json:"product_id" gorm:"not null"`
	VariantID       uint      `json:"variant_id" gorm:"not null"`
	OrderedQty      int       `json:"ordered_qty" gorm:"not null"`
	ReceivedQty     int       `json:"received_qty" gorm:"not null;default:0"`
	Price           float64   `json:"price" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FullyReceived reports whether every item of the order has been received in
// full.
func (po *PurchaseOrder) FullyReceived() bool {
	for _, item := range po.Items {
		if item.ReceivedQty != item.OrderedQty {
			return false
		}
	}
	return true
}
