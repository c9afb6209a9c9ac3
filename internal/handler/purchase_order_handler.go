package handler

import (
	"net/http"
	"time"

	"inventory-service/internal/inventory"
	"inventory-service/internal/middleware"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// POItemRequest defines one line of a purchase order creation request
type POItemRequest struct {
	ProductID  uint    `json:"productId"`
	VariantID  uint    `json:"variantId"`
	OrderedQty int     `json:"orderedQty"`
	Price      float64 `json:"price"`
}

// PurchaseOrderRequest defines the structure for purchase order creation
type PurchaseOrderRequest struct {
	SupplierID   uint            `json:"supplierId"`
	ExpectedDate *time.Time      `json:"expectedDate,omitempty"`
	Items        []POItemRequest `json:"items"`
}

// ReceiveItemRequest defines one line of a receive request
type ReceiveItemRequest struct {
	VariantID  uint `json:"variantId"`
	ReceiveQty int  `json:"receiveQty"`
}

// CreatePurchaseOrder creates a DRAFT purchase order for the current tenant
func CreatePurchaseOrder(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("purchase_order", "create")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		prometheus.TenantContextMissingCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "tenant_id is required"})
	}

	var req PurchaseOrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request data"})
	}
	for _, item := range req.Items {
		if item.Price < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "item price must not be negative"})
		}
	}

	items := make([]inventory.POItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, inventory.POItemInput{
			ProductID:  item.ProductID,
			VariantID:  item.VariantID,
			OrderedQty: item.OrderedQty,
			Price:      item.Price,
		})
	}

	defer prometheus.TrackDBOperation("transaction")(time.Now())
	svc := inventory.NewService(database.GetDB())
	po, err := svc.CreatePurchaseOrder(c.Request().Context(), tenantID, req.SupplierID, req.ExpectedDate, items)
	if err != nil {
		log.Warn("Purchase order creation rejected",
			zap.Uint("supplier_id", req.SupplierID),
			zap.Uint("tenant_id", tenantID),
			zap.Error(err))
		return businessError(c, err)
	}

	log.Info("Purchase order created",
		zap.Uint("po_id", po.ID),
		zap.Uint("supplier_id", po.SupplierID),
		zap.Int("items", len(po.Items)),
		zap.Uint("tenant_id", tenantID))
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": po})
}

// ListPurchaseOrders retrieves the tenant's purchase orders, newest first
func ListPurchaseOrders(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("purchase_order", "list")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		prometheus.TenantContextMissingCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "tenant_id is required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	svc := inventory.NewService(database.GetDB())
	orders, err := svc.ListPurchaseOrders(c.Request().Context(), tenantID)
	if err != nil {
		log.Error("Failed to list purchase orders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "failed to retrieve purchase orders"})
	}

	log.Info("Purchase orders retrieved successfully",
		zap.Int("count", len(orders)),
		zap.Uint("tenant_id", tenantID))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": orders})
}

// ReceivePurchaseOrder records receipts against a confirmed purchase order
func ReceivePurchaseOrder(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("purchase_order", "receive")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		prometheus.TenantContextMissingCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "tenant_id is required"})
	}

	poID, err := parseUintParam(c, "poId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid purchase order id"})
	}

	var req struct {
		Items []ReceiveItemRequest `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request data"})
	}

	receipts := make([]inventory.ReceiptInput, 0, len(req.Items))
	for _, item := range req.Items {
		receipts = append(receipts, inventory.ReceiptInput{
			VariantID:  item.VariantID,
			ReceiveQty: item.ReceiveQty,
		})
	}

	defer prometheus.TrackDBOperation("transaction")(time.Now())
	svc := inventory.NewService(database.GetDB())
	po, err := svc.ReceivePurchaseOrder(c.Request().Context(), tenantID, poID, receipts)
	if err != nil {
		if err == inventory.ErrOverReceive {
			prometheus.RecordStockConflict("over_receive")
		}
		log.Warn("Receive rejected",
			zap.Uint("po_id", poID),
			zap.Uint("tenant_id", tenantID),
			zap.Error(err))
		return businessError(c, err)
	}

	log.Info("Purchase order received",
		zap.Uint("po_id", po.ID),
		zap.String("status", po.Status),
		zap.Int("receipts", len(receipts)),
		zap.Uint("tenant_id", tenantID))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": po})
}

// UpdatePurchaseOrderStatus advances a purchase order through its lifecycle
func UpdatePurchaseOrderStatus(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOperation("purchase_order", "status")

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		prometheus.TenantContextMissingCounter.Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "tenant_id is required"})
	}

	poID, err := parseUintParam(c, "poId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid purchase order id"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	svc := inventory.NewService(database.GetDB())
	po, err := svc.AdvancePurchaseOrderStatus(c.Request().Context(), tenantID, poID, req.Status)
	if err != nil {
		log.Warn("Status change rejected",
			zap.Uint("po_id", poID),
			zap.String("status", req.Status),
			zap.Error(err))
		return businessError(c, err)
	}

	log.Info("Purchase order status updated",
		zap.Uint("po_id", po.ID),
		zap.String("status", po.Status),
		zap.Uint("tenant_id", tenantID))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": po})
}
