package handler

import (
	"net/http"
	"time"

	"inventory-service/internal/middleware"
	"inventory-service/internal/model"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SupplierRequest defines the structure for supplier creation requests
type SupplierRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CreateSupplier creates a new supplier for the current tenant
func CreateSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("supplier", "create")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		prometheus.TenantContextMissingCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "tenant_id is required"})
	}

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request data"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "supplier name is required"})
	}

	supplier := model.Supplier{
		TenantID: tenantID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := database.GetDB().Create(&supplier).Error; err != nil {
		log.Error("Failed to create supplier",
			zap.String("name", req.Name),
			zap.Uint("tenant_id", tenantID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "failed to create supplier"})
	}

	log.Info("Supplier created successfully",
		zap.Uint("id", supplier.ID),
		zap.String("name", supplier.Name),
		zap.Uint("tenant_id", supplier.TenantID))
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": supplier})
}

// ListSuppliers retrieves all suppliers for the current tenant
func ListSuppliers(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("supplier", "list")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		prometheus.TenantContextMissingCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "tenant_id is required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var suppliers []model.Supplier
	if err := database.GetDB().
		Where("tenant_id = ?", tenantID).
		Order("name").
		Find(&suppliers).Error; err != nil {
		log.Error("Failed to list suppliers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "failed to retrieve suppliers"})
	}

	log.Info("Suppliers retrieved successfully",
		zap.Int("count", len(suppliers)),
		zap.Uint("tenant_id", tenantID))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": suppliers})
}
