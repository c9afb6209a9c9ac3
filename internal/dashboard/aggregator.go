package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"inventory-service/internal/model"

	"gorm.io/gorm"
)

// Service computes the read-only dashboard aggregations over the catalog and
// the movement ledger. All queries are tenant-scoped and side-effect-free.
type Service struct {
	db *gorm.DB
}

// NewService creates a new dashboard service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// TopSeller is one ranked entry of the 30-day best-seller list.
type TopSeller struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	VariantID   uint   `json:"variant_id"`
	TotalSold   int    `json:"total_sold"`
}

// MovementPoint is the net signed stock change of one calendar day.
type MovementPoint struct {
	Date          string `json:"date"`
	TotalMovement int    `json:"total_movement"`
}

// Overview bundles the dashboard aggregations.
type Overview struct {
	InventoryValue float64         `json:"inventory_value"`
	TopSellers     []TopSeller     `json:"top_sellers"`
	StockGraph     []MovementPoint `json:"stock_graph"`
}

// Overview computes inventory valuation, the 30-day top sellers and the
// 7-day movement graph for a tenant.
func (s *Service) Overview(ctx context.Context, tenantID uint) (*Overview, error) {
	value, err := s.inventoryValue(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	sellers, err := s.topSellers(ctx, tenantID, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	graph, err := s.stockGraph(ctx, tenantID, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	return &Overview{
		InventoryValue: value,
		TopSellers:     sellers,
		StockGraph:     graph,
	}, nil
}

// inventoryValue sums stock * price over all of the tenant's variants.
func (s *Service) inventoryValue(ctx context.Context, tenantID uint) (float64, error) {
	var value float64
	err := s.db.WithContext(ctx).
		Model(&model.ProductVariant{}).
		Select("COALESCE(SUM(stock * price), 0)").
		Where("tenant_id = ?", tenantID).
		Scan(&value).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute inventory value: %w", err)
	}
	return value, nil
}

// topSellers groups SALE movements since the cutoff by (product, variant) and
// returns the five largest absolute sold quantities, descending.
func (s *Service) topSellers(ctx context.Context, tenantID uint, since time.Time) ([]TopSeller, error) {
	sellers := make([]TopSeller, 0, 5)
	err := s.db.WithContext(ctx).
		Model(&model.StockMovement{}).
		Select("stock_movements.product_id, products.name AS product_name, stock_movements.variant_id, SUM(ABS(stock_movements.quantity)) AS total_sold").
		Joins("LEFT JOIN products ON products.id = stock_movements.product_id").
		Where("stock_movements.tenant_id = ? AND stock_movements.type = ? AND stock_movements.created_at >= ?",
			tenantID, model.MovementSale, since).
		Group("stock_movements.product_id, products.name, stock_movements.variant_id").
		Order("total_sold DESC").
		Limit(5).
		Scan(&sellers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute top sellers: %w", err)
	}
	return sellers, nil
}

// stockGraph buckets all movement types since the cutoff by calendar day.
// Bucketing happens in Go so the aggregation behaves identically on postgres
// and the sqlite test database; the 7-day window keeps the scan small.
func (s *Service) stockGraph(ctx context.Context, tenantID uint, since time.Time) ([]MovementPoint, error) {
	var movements []model.StockMovement
	err := s.db.WithContext(ctx).
		Select("created_at", "quantity").
		Where("tenant_id = ? AND created_at >= ?", tenantID, since).
		Find(&movements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load stock movements: %w", err)
	}

	byDay := make(map[string]int)
	for _, m := range movements {
		day := m.CreatedAt.Format("2006-01-02")
		byDay[day] += m.Quantity
	}

	graph := make([]MovementPoint, 0, len(byDay))
	for day, total := range byDay {
		graph = append(graph, MovementPoint{Date: day, TotalMovement: total})
	}
	sort.Slice(graph, func(i, j int) bool {
		return graph[i].Date < graph[j].Date
	})
	return graph, nil
}
