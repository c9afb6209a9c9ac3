package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventory-service/internal/model"

	"gorm.io/gorm"
)

// Service implements the transactional inventory operations: selling a
// variant, creating and receiving purchase orders, and stock adjustments.
// Every method takes the tenant id explicitly; no query runs without a
// tenant filter.
type Service struct {
	db *gorm.DB
}

// NewService creates a new inventory service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// POItemInput is one requested line of a new purchase order.
type POItemInput struct {
	ProductID  uint
	VariantID  uint
	OrderedQty int
	Price      float64
}

// ReceiptInput is one line of a receive call against a purchase order.
type ReceiptInput struct {
	VariantID  uint
	ReceiveQty int
}

// SellVariant atomically decrements a variant's stock and appends a SALE
// movement with the negated quantity. The stock check and the decrement are
// a single conditional UPDATE: if the variant does not belong to the tenant
// or its stock is below the requested quantity, no row matches and nothing
// is written.
func (s *Service) SellVariant(ctx context.Context, tenantID, productID, variantID uint, quantity int) (*model.Product, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ProductVariant{}).
			Where("id = ? AND product_id = ? AND tenant_id = ? AND stock >= ?",
				variantID, productID, tenantID, quantity).
			Update("stock", gorm.Expr("stock - ?", quantity))
		if res.Error != nil {
			return fmt.Errorf("failed to decrement stock: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		movement := model.StockMovement{
			TenantID:  tenantID,
			ProductID: productID,
			VariantID: variantID,
			Type:      model.MovementSale,
			Quantity:  -quantity,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return fmt.Errorf("failed to record sale movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadProduct(ctx, tenantID, productID)
}

// AdjustVariantStock applies a signed stock correction (RETURN or ADJUSTMENT)
// and appends the matching ledger entry. The update is guarded so stock can
// never go below zero.
func (s *Service) AdjustVariantStock(ctx context.Context, tenantID, productID, variantID uint, delta int, movementType string) (*model.Product, error) {
	if delta == 0 {
		return nil, ErrInvalidQuantity
	}
	if movementType != model.MovementReturn && movementType != model.MovementAdjustment {
		return nil, ErrInvalidQuantity
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ProductVariant{}).
			Where("id = ? AND product_id = ? AND tenant_id = ? AND stock + ? >= 0",
				variantID, productID, tenantID, delta).
			Update("stock", gorm.Expr("stock + ?", delta))
		if res.Error != nil {
			return fmt.Errorf("failed to adjust stock: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		movement := model.StockMovement{
			TenantID:  tenantID,
			ProductID: productID,
			VariantID: variantID,
			Type:      movementType,
			Quantity:  delta,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return fmt.Errorf("failed to record %s movement: %w", movementType, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadProduct(ctx, tenantID, productID)
}

// CreatePurchaseOrder validates the supplier and every referenced variant
// against the tenant, then creates the order in DRAFT with zero received
// quantities.
func (s *Service) CreatePurchaseOrder(ctx context.Context, tenantID, supplierID uint, expectedDate *time.Time, items []POItemInput) (*model.PurchaseOrder, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	for _, item := range items {
		if item.OrderedQty < 1 {
			return nil, ErrInvalidQuantity
		}
	}

	var po model.PurchaseOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var supplierCount int64
		if err := tx.Model(&model.Supplier{}).
			Where("id = ? AND tenant_id = ?", supplierID, tenantID).
			Count(&supplierCount).Error; err != nil {
			return fmt.Errorf("failed to validate supplier: %w", err)
		}
		if supplierCount == 0 {
			return ErrInvalidSupplier
		}

		for _, item := range items {
			// The variant must belong to the referenced product, and the
			// product to the tenant. A mismatched variant would make the
			// receive path a silent no-op on stock.
			var variantCount int64
			if err := tx.Model(&model.ProductVariant{}).
				Where("id = ? AND product_id = ? AND tenant_id = ?",
					item.VariantID, item.ProductID, tenantID).
				Count(&variantCount).Error; err != nil {
				return fmt.Errorf("failed to validate product variant: %w", err)
			}
			if variantCount == 0 {
				return ErrInvalidProduct
			}
		}

		po = model.PurchaseOrder{
			TenantID:     tenantID,
			SupplierID:   supplierID,
			Status:       model.POStatusDraft,
			ExpectedDate: expectedDate,
		}
		for _, item := range items {
			po.Items = append(po.Items, model.PurchaseOrderItem{
				ProductID:   item.ProductID,
				VariantID:   item.VariantID,
				OrderedQty:  item.OrderedQty,
				ReceivedQty: 0,
				Price:       item.Price,
			})
		}
		if err := tx.Create(&po).Error; err != nil {
			return fmt.Errorf("failed to create purchase order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &po, nil
}

// AdvancePurchaseOrderStatus moves an order one step forward:
// DRAFT -> SENT -> CONFIRMED. RECEIVED cannot be set directly; it is reached
// only through ReceivePurchaseOrder.
func (s *Service) AdvancePurchaseOrderStatus(ctx context.Context, tenantID, poID uint, next string) (*model.PurchaseOrder, error) {
	var prior string
	switch next {
	case model.POStatusSent:
		prior = model.POStatusDraft
	case model.POStatusConfirmed:
		prior = model.POStatusSent
	default:
		return nil, ErrInvalidTransition
	}

	var po model.PurchaseOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND tenant_id = ?", poID, tenantID).First(&po).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load purchase order: %w", err)
		}

		// Guard on the prior status so a concurrent transition loses cleanly.
		res := tx.Model(&model.PurchaseOrder{}).
			Where("id = ? AND status = ?", po.ID, prior).
			Update("status", next)
		if res.Error != nil {
			return fmt.Errorf("failed to update purchase order status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		return tx.Preload("Items").First(&po, po.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &po, nil
}

// ReceivePurchaseOrder records receipts against a CONFIRMED order. For each
// receipt it increments the item's received quantity and the variant's stock
// and appends a PURCHASE movement; all receipts in the call commit or roll
// back together. When every item is fully received the order transitions to
// RECEIVED within the same transaction.
func (s *Service) ReceivePurchaseOrder(ctx context.Context, tenantID, poID uint, receipts []ReceiptInput) (*model.PurchaseOrder, error) {
	if len(receipts) == 0 {
		return nil, ErrNoItems
	}

	var result model.PurchaseOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var po model.PurchaseOrder
		if err := tx.Preload("Items").
			Where("id = ? AND tenant_id = ?", poID, tenantID).
			First(&po).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load purchase order: %w", err)
		}
		if po.Status != model.POStatusConfirmed {
			return ErrOrderNotReceivable
		}

		for _, receipt := range receipts {
			if receipt.ReceiveQty <= 0 {
				return ErrInvalidQuantity
			}

			var item *model.PurchaseOrderItem
			for i := range po.Items {
				if po.Items[i].VariantID == receipt.VariantID {
					item = &po.Items[i]
					break
				}
			}
			if item == nil {
				return ErrItemNotInOrder
			}

			remaining := item.OrderedQty - item.ReceivedQty
			if receipt.ReceiveQty > remaining {
				return ErrOverReceive
			}

			// Guarded increment: a concurrent receive that already consumed
			// the remaining quantity makes this match zero rows.
			res := tx.Model(&model.PurchaseOrderItem{}).
				Where("id = ? AND ordered_qty - received_qty >= ?", item.ID, receipt.ReceiveQty).
				Update("received_qty", gorm.Expr("received_qty + ?", receipt.ReceiveQty))
			if res.Error != nil {
				return fmt.Errorf("failed to update received quantity: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrOverReceive
			}

			res = tx.Model(&model.ProductVariant{}).
				Where("id = ? AND product_id = ? AND tenant_id = ?",
					item.VariantID, item.ProductID, tenantID).
				Update("stock", gorm.Expr("stock + ?", receipt.ReceiveQty))
			if res.Error != nil {
				return fmt.Errorf("failed to increment stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrItemNotInOrder
			}

			movement := model.StockMovement{
				TenantID:  tenantID,
				ProductID: item.ProductID,
				VariantID: item.VariantID,
				Type:      model.MovementPurchase,
				Quantity:  receipt.ReceiveQty,
				Reference: fmt.Sprintf("po:%d", po.ID),
			}
			if err := tx.Create(&movement).Error; err != nil {
				return fmt.Errorf("failed to record purchase movement: %w", err)
			}

			// Keep the in-memory copy current so duplicate variants in one
			// call validate against the already-received quantity.
			item.ReceivedQty += receipt.ReceiveQty
		}

		// Recount outstanding items from the database so a completion racing
		// a concurrent receive is never missed.
		var outstanding int64
		if err := tx.Model(&model.PurchaseOrderItem{}).
			Where("purchase_order_id = ? AND received_qty < ordered_qty", po.ID).
			Count(&outstanding).Error; err != nil {
			return fmt.Errorf("failed to count outstanding items: %w", err)
		}
		if outstanding == 0 {
			if err := tx.Model(&model.PurchaseOrder{}).
				Where("id = ?", po.ID).
				Update("status", model.POStatusReceived).Error; err != nil {
				return fmt.Errorf("failed to mark purchase order received: %w", err)
			}
		}

		return tx.Preload("Items").First(&result, po.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListPurchaseOrders returns the tenant's purchase orders, newest first.
func (s *Service) ListPurchaseOrders(ctx context.Context, tenantID uint) ([]model.PurchaseOrder, error) {
	var orders []model.PurchaseOrder
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list purchase orders: %w", err)
	}
	return orders, nil
}

func (s *Service) loadProduct(ctx context.Context, tenantID, productID uint) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_variants.id")
		}).
		Where("id = ? AND tenant_id = ?", productID, tenantID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return &product, nil
}
