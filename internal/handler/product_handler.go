package handler

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"inventory-service/internal/inventory"
	"inventory-service/internal/middleware"
	"inventory-service/internal/model"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VariantRequest defines one variant in a product creation/update request.
// ID is set only on update, to address an existing variant.
type VariantRequest struct {
	ID                uint              `json:"id,omitempty"`
	SKU               string            `json:"sku"`
	Attributes        map[string]string `json:"attributes"`
	Price             float64           `json:"price"`
	Stock             int               `json:"stock"`
	LowStockThreshold *int              `json:"lowStockThreshold,omitempty"`
}

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Variants    []VariantRequest `json:"variants"`
}

func validateVariants(variants []VariantRequest, requireAll bool) string {
	if requireAll && len(variants) == 0 {
		return "product must have at least one variant"
	}
	for _, v := range variants {
		if v.SKU == "" {
			return "variant sku is required"
		}
		if v.Price < 0 {
			return "variant price must not be negative"
		}
		if v.Stock < 0 {
			return "variant stock must not be negative"
		}
	}
	return ""
}

func thresholdOrDefault(t *int) int {
	if t == nil || *t <= 0 {
		return model.DefaultLowStockThreshold
	}
	return *t
}

// CreateProduct handles creating a new product with its variants
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("product", "create")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		prometheus.TenantContextMissingCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "tenant_id is required"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request data"})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "product name is required"})
	}
	if msg := validateVariants(req.Variants, true); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": msg})
	}

	product := model.Product{
		TenantID:    tenantID,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
	}
	for _, v := range req.Variants {
		product.Variants = append(product.Variants, model.ProductVariant{
			TenantID:          tenantID,
			SKU:               v.SKU,
			Attributes:        v.Attributes,
			Price:             v.Price,
			Stock:             v.Stock,
			LowStockThreshold: thresholdOrDefault(v.LowStockThreshold),
		})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := database.GetDB().Create(&product).Error; err != nil {
		log.Error("Failed to create product",
			zap.String("name", req.Name),
			zap.Uint("tenant_id", tenantID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "failed to create product"})
	}

	log.Info("Product created successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int("variants", len(product.Variants)),
		zap.Uint("tenant_id", tenantID))
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": product})
}

// ListProducts handles retrieving the tenant's products, paginated
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("product", "list")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		prometheus.TenantContextMissingCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "tenant_id is required"})
	}

	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}

	db := database.GetDB()
	var total int64
	if err := db.Model(&model.Product{}).Where("tenant_id = ?", tenantID).Count(&total).Error; err != nil {
		log.Error("Failed to count products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "failed to retrieve products"})
	}

	var products []model.Product
	if err := db.
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_variants.id")
		}).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error; err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "failed to retrieve products"})
	}

	log.Info("Products retrieved successfully",
		zap.Int("count", len(products)),
		zap.Int64("total", total),
		zap.Int("page", page))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"products":   products,
			"total":      total,
			"page":       page,
			"totalPages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// GetProduct handles retrieving a single product by ID
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("product", "get")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		prometheus.TenantContextMissingCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "tenant_id is required"})
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid product id"})
	}

	var product model.Product
	result := database.GetDB().
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_variants.id")
		}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&product)
	if result.Error != nil {
		log.Warn("Product not found", zap.Uint("product_id", id), zap.Uint("tenant_id", tenantID))
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "product not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": product})
}

// UpdateProduct handles updating a product's fields and upserting variants.
// Variant stock is never changed here: stock moves only through the sell,
// receive and adjust operations so the movement ledger stays authoritative.
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("product", "update")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		prometheus.TenantContextMissingCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "tenant_id is required"})
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid product id"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "product name is required"})
	}
	if msg := validateVariants(req.Variants, false); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": msg})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	var product model.Product
	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Variants").
			Where("id = ? AND tenant_id = ?", id, tenantID).
			First(&product).Error; err != nil {
			return inventory.ErrNotFound
		}

		if err := tx.Model(&product).Updates(map[string]interface{}{
			"name":        req.Name,
			"category":    req.Category,
			"description": req.Description,
		}).Error; err != nil {
			return err
		}

		existing := make(map[uint]*model.ProductVariant, len(product.Variants))
		for i := range product.Variants {
			existing[product.Variants[i].ID] = &product.Variants[i]
		}

		for _, v := range req.Variants {
			if v.ID == 0 {
				variant := model.ProductVariant{
					ProductID:         product.ID,
					TenantID:          tenantID,
					SKU:               v.SKU,
					Attributes:        v.Attributes,
					Price:             v.Price,
					Stock:             v.Stock,
					LowStockThreshold: thresholdOrDefault(v.LowStockThreshold),
				}
				if err := tx.Create(&variant).Error; err != nil {
					return err
				}
				continue
			}

			if _, ok := existing[v.ID]; !ok {
				return inventory.ErrNotFound
			}
			updates := map[string]interface{}{
				"sku":        v.SKU,
				"attributes": v.Attributes,
				"price":      v.Price,
			}
			if v.LowStockThreshold != nil && *v.LowStockThreshold > 0 {
				updates["low_stock_threshold"] = *v.LowStockThreshold
			}
			if err := tx.Model(&model.ProductVariant{}).
				Where("id = ? AND product_id = ? AND tenant_id = ?", v.ID, product.ID, tenantID).
				Updates(updates).Error; err != nil {
				return err
			}
		}

		return tx.Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_variants.id")
		}).First(&product, product.ID).Error
	})
	if err != nil {
		log.Error("Failed to update product",
			zap.Uint("product_id", id),
			zap.Uint("tenant_id", tenantID),
			zap.Error(err))
		return businessError(c, err)
	}

	log.Info("Product updated successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": product})
}

// SellVariant handles selling a quantity of one variant
func SellVariant(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("variant", "sell")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		prometheus.TenantContextMissingCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "tenant_id is required"})
	}

	productID, err := parseUintParam(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid product id"})
	}
	variantID, err := parseUintParam(c, "variantId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid variant id"})
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("transaction")(time.Now())
	svc := inventory.NewService(database.GetDB())
	product, err := svc.SellVariant(c.Request().Context(), tenantID, productID, variantID, req.Quantity)
	if err != nil {
		if err == inventory.ErrInsufficientStock {
			prometheus.RecordStockConflict("insufficient_stock")
		}
		log.Warn("Sell rejected",
			zap.Uint("product_id", productID),
			zap.Uint("variant_id", variantID),
			zap.Int("quantity", req.Quantity),
			zap.Error(err))
		return businessError(c, err)
	}

	log.Info("Variant sold",
		zap.Uint("product_id", productID),
		zap.Uint("variant_id", variantID),
		zap.Int("quantity", req.Quantity),
		zap.Uint("tenant_id", tenantID))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": product})
}

// AdjustVariant handles manual stock corrections (returns and adjustments)
func AdjustVariant(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("variant", "adjust")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		prometheus.TenantContextMissingCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "tenant_id is required"})
	}

	productID, err := parseUintParam(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid product id"})
	}
	variantID, err := parseUintParam(c, "variantId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid variant id"})
	}

	var req struct {
		Delta int    `json:"delta"`
		Type  string `json:"type"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request data"})
	}
	if req.Type == "" {
		req.Type = model.MovementAdjustment
	}

	defer prometheus.TrackDBOperation("transaction")(time.Now())
	svc := inventory.NewService(database.GetDB())
	product, err := svc.AdjustVariantStock(c.Request().Context(), tenantID, productID, variantID, req.Delta, req.Type)
	if err != nil {
		if err == inventory.ErrInsufficientStock {
			prometheus.RecordStockConflict("adjustment_below_zero")
		}
		log.Warn("Adjustment rejected",
			zap.Uint("variant_id", variantID),
			zap.Int("delta", req.Delta),
			zap.Error(err))
		return businessError(c, err)
	}

	log.Info("Stock adjusted",
		zap.Uint("product_id", productID),
		zap.Uint("variant_id", variantID),
		zap.Int("delta", req.Delta),
		zap.String("type", req.Type))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": product})
}

// LowStock handles the low-stock / effective-stock report
func LowStock(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("product", "low_stock")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		prometheus.TenantContextMissingCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "tenant_id is required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	svc := inventory.NewService(database.GetDB())
	report, err := svc.LowStockReport(c.Request().Context(), tenantID)
	if err != nil {
		log.Error("Failed to compute low-stock report", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "failed to compute low-stock report"})
	}

	log.Info("Low-stock report computed",
		zap.Int("flagged", len(report)),
		zap.Uint("tenant_id", tenantID))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": report})
}
