package inventory

import (
	"context"
	"fmt"

	"inventory-service/internal/model"

	"gorm.io/gorm"
)

// LowStockItem is one flagged variant in the replenishment report.
type LowStockItem struct {
	ProductID      uint   `json:"product_id"`
	ProductName    string `json:"product_name"`
	VariantID      uint   `json:"variant_id"`
	SKU            string `json:"sku"`
	CurrentStock   int    `json:"current_stock"`
	IncomingQty    int    `json:"incoming_qty"`
	EffectiveStock int    `json:"effective_stock"`
	Threshold      int    `json:"threshold"`
}

// LowStockReport reconciles on-hand stock against quantity still outstanding
// on CONFIRMED purchase orders. A variant is flagged when
// stock + incoming <= its low-stock threshold. Pure read, no mutation.
// Enumeration is deterministic: products by id, variants by id.
func (s *Service) LowStockReport(ctx context.Context, tenantID uint) ([]LowStockItem, error) {
	var products []model.Product
	if err := s.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_variants.id")
		}).
		Where("tenant_id = ?", tenantID).
		Order("id").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	var confirmedPOs []model.PurchaseOrder
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND status = ?", tenantID, model.POStatusConfirmed).
		Find(&confirmedPOs).Error; err != nil {
		return nil, fmt.Errorf("failed to load confirmed purchase orders: %w", err)
	}

	report := make([]LowStockItem, 0)
	for _, product := range products {
		for _, variant := range product.Variants {
			incomingQty := 0
			for _, po := range confirmedPOs {
				for _, item := range po.Items {
					if item.ProductID == product.ID && item.VariantID == variant.ID {
						incomingQty += item.OrderedQty - item.ReceivedQty
					}
				}
			}

			effectiveStock := variant.Stock + incomingQty
			if effectiveStock <= variant.LowStockThreshold {
				report = append(report, LowStockItem{
					ProductID:      product.ID,
					ProductName:    product.Name,
					VariantID:      variant.ID,
					SKU:            variant.SKU,
					CurrentStock:   variant.Stock,
					IncomingQty:    incomingQty,
					EffectiveStock: effectiveStock,
					Threshold:      variant.LowStockThreshold,
				})
			}
		}
	}

	return report, nil
}
