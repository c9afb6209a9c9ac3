package handler

import (
	"net/http"
	"time"

	"inventory-service/internal/dashboard"
	"inventory-service/internal/middleware"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetDashboard returns the tenant's dashboard aggregations: inventory value,
// 30-day top sellers and the 7-day movement graph.
func GetDashboard(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("dashboard", "get")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		prometheus.TenantContextMissingCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "tenant_id is required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	svc := dashboard.NewService(database.GetDB())
	overview, err := svc.Overview(c.Request().Context(), tenantID)
	if err != nil {
		log.Error("Failed to compute dashboard", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "failed to compute dashboard"})
	}

	log.Info("Dashboard computed",
		zap.Float64("inventory_value", overview.InventoryValue),
		zap.Int("top_sellers", len(overview.TopSellers)),
		zap.Uint("tenant_id", tenantID))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": overview})
}
