package inventory

import (
	"context"
	"errors"
	"testing"

	"inventory-service/internal/model"
	"inventory-service/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database object: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTenant(t *testing.T, db *gorm.DB, name string) model.Tenant {
	t.Helper()
	tenant := model.Tenant{Name: name, Active: true}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}
	return tenant
}

func createProductWithVariant(t *testing.T, db *gorm.DB, tenantID uint, sku string, stock, threshold int) model.Product {
	t.Helper()
	product := model.Product{
		TenantID: tenantID,
		Name:     "Product " + sku,
		Category: "Test",
		Variants: []model.ProductVariant{
			{
				TenantID:          tenantID,
				SKU:               sku,
				Attributes:        map[string]string{"size": "M"},
				Price:             10.0,
				Stock:             stock,
				LowStockThreshold: threshold,
			},
		},
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return product
}

func createSupplier(t *testing.T, db *gorm.DB, tenantID uint) model.Supplier {
	t.Helper()
	supplier := model.Supplier{TenantID: tenantID, Name: "Test Supplier"}
	if err := db.Create(&supplier).Error; err != nil {
		t.Fatalf("failed to create supplier: %v", err)
	}
	return supplier
}

func createPO(t *testing.T, db *gorm.DB, tenantID, supplierID uint, status string, items []model.PurchaseOrderItem) model.PurchaseOrder {
	t.Helper()
	po := model.PurchaseOrder{
		TenantID:   tenantID,
		SupplierID: supplierID,
		Status:     status,
		Items:      items,
	}
	if err := db.Create(&po).Error; err != nil {
		t.Fatalf("failed to create purchase order: %v", err)
	}
	return po
}

func variantStock(t *testing.T, db *gorm.DB, variantID uint) int {
	t.Helper()
	var variant model.ProductVariant
	if err := db.First(&variant, variantID).Error; err != nil {
		t.Fatalf("failed to load variant: %v", err)
	}
	return variant.Stock
}

func movementCount(t *testing.T, db *gorm.DB, variantID uint) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&model.StockMovement{}).Where("variant_id = ?", variantID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count movements: %v", err)
	}
	return count
}

func ledgerSum(t *testing.T, db *gorm.DB, variantID uint) int {
	t.Helper()
	var sum int
	if err := db.Model(&model.StockMovement{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("variant_id = ?", variantID).
		Scan(&sum).Error; err != nil {
		t.Fatalf("failed to sum ledger: %v", err)
	}
	return sum
}

func TestSellVariant(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	tenant := createTenant(t, db, "acme")
	product := createProductWithVariant(t, db, tenant.ID, "SKU-1", 10, 5)
	variant := product.Variants[0]

	updated, err := svc.SellVariant(ctx, tenant.ID, product.ID, variant.ID, 10)
	if err != nil {
		t.Fatalf("SellVariant() error = %v", err)
	}
	if got := updated.Variants[0].Stock; got != 0 {
		t.Errorf("expected stock 0, got %d", got)
	}

	var movements []model.StockMovement
	if err := db.Where("variant_id = ?", variant.ID).Find(&movements).Error; err != nil {
		t.Fatalf("failed to load movements: %v", err)
	}
	if len(movements) != 1 {
		t.Fatalf("expected 1 movement, got %d", len(movements))
	}
	if movements[0].Type != model.MovementSale {
		t.Errorf("expected SALE movement, got %s", movements[0].Type)
	}
	if movements[0].Quantity != -10 {
		t.Errorf("expected quantity -10, got %d", movements[0].Quantity)
	}

	// A subsequent sell must fail atomically with no stock change and no
	// ledger entry.
	_, err = svc.SellVariant(ctx, tenant.ID, product.ID, variant.ID, 1)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if got := variantStock(t, db, variant.ID); got != 0 {
		t.Errorf("expected stock 0 after failed sell, got %d", got)
	}
	if got := movementCount(t, db, variant.ID); got != 1 {
		t.Errorf("expected 1 movement after failed sell, got %d", got)
	}
}

func TestSellVariant_InvalidQuantity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	tenant := createTenant(t, db, "acme")
	product := createProductWithVariant(t, db, tenant.ID, "SKU-1", 10, 5)
	variant := product.Variants[0]

	for _, qty := range []int{0, -3} {
		if _, err := svc.SellVariant(ctx, tenant.ID, product.ID, variant.ID, qty); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("SellVariant(qty=%d) expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
	if got := variantStock(t, db, variant.ID); got != 10 {
		t.Errorf("expected stock unchanged at 10, got %d", got)
	}
	if got := movementCount(t, db, variant.ID); got != 0 {
		t.Errorf("expected no movements, got %d", got)
	}
}

func TestSellVariant_TenantIsolation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	tenantA := createTenant(t, db, "tenant-a")
	tenantB := createTenant(t, db, "tenant-b")
	product := createProductWithVariant(t, db, tenantA.ID, "SKU-A", 10, 5)
	variant := product.Variants[0]

	// Selling another tenant's variant behaves identically to a nonexistent
	// variant and must not mutate anything.
	_, err := svc.SellVariant(ctx, tenantB.ID, product.ID, variant.ID, 1)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock for foreign tenant, got %v", err)
	}
	if got := variantStock(t, db, variant.ID); got != 10 {
		t.Errorf("expected stock unchanged at 10, got %d", got)
	}
	if got := movementCount(t, db, variant.ID); got != 0 {
		t.Errorf("expected no movements, got %d", got)
	}
}

func TestAdjustVariantStock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	tenant := createTenant(t, db, "acme")
	product := createProductWithVariant(t, db, tenant.ID, "SKU-1", 10, 5)
	variant := product.Variants[0]

	updated, err := svc.AdjustVariantStock(ctx, tenant.ID, product.ID, variant.ID, 5, model.MovementReturn)
	if err != nil {
		t.Fatalf("AdjustVariantStock() error = %v", err)
	}
	if got := updated.Variants[0].Stock; got != 15 {
		t.Errorf("expected stock 15, got %d", got)
	}

	// A correction below zero is rejected with no partial state.
	_, err = svc.AdjustVariantStock(ctx, tenant.ID, product.ID, variant.ID, -100, model.MovementAdjustment)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if got := variantStock(t, db, variant.ID); got != 15 {
		t.Errorf("expected stock unchanged at 15, got %d", got)
	}

	// Only RETURN and ADJUSTMENT are valid correction types.
	if _, err := svc.AdjustVariantStock(ctx, tenant.ID, product.ID, variant.ID, 1, model.MovementSale); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity for SALE type, got %v", err)
	}
}

func TestLedgerStockConsistency(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	tenant := createTenant(t, db, "acme")
	supplier := createSupplier(t, db, tenant.ID)
	product := createProductWithVariant(t, db, tenant.ID, "SKU-1", 50, 5)
	variant := product.Variants[0]
	initialStock := 50

	po := createPO(t, db, tenant.ID, supplier.ID, model.POStatusConfirmed, []model.PurchaseOrderItem{
		{ProductID: product.ID, VariantID: variant.ID, OrderedQty: 30, Price: 4.0},
	})

	if _, err := svc.SellVariant(ctx, tenant.ID, product.ID, variant.ID, 12); err != nil {
		t.Fatalf("sell: %v", err)
	}
	if _, err := svc.ReceivePurchaseOrder(ctx, tenant.ID, po.ID, []ReceiptInput{{VariantID: variant.ID, ReceiveQty: 20}}); err != nil {
		t.Fatalf("receive: %v", err)
	}
	if _, err := svc.AdjustVariantStock(ctx, tenant.ID, product.ID, variant.ID, 3, model.MovementReturn); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if _, err := svc.SellVariant(ctx, tenant.ID, product.ID, variant.ID, 7); err != nil {
		t.Fatalf("sell: %v", err)
	}

	// currentStock == initialStock + sum of all ledger entries.
	stock := variantStock(t, db, variant.ID)
	sum := ledgerSum(t, db, variant.ID)
	if stock != initialStock+sum {
		t.Errorf("ledger inconsistent: stock %d, initial %d, ledger sum %d", stock, initialStock, sum)
	}
	if stock != 54 {
		t.Errorf("expected stock 54, got %d", stock)
	}
}

func TestCreatePurchaseOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	tenant := createTenant(t, db, "acme")
	supplier := createSupplier(t, db, tenant.ID)
	product := createProductWithVariant(t, db, tenant.ID, "SKU-1", 10, 5)
	variant := product.Variants[0]

	po, err := svc.CreatePurchaseOrder(ctx, tenant.ID, supplier.ID, nil, []POItemInput{
		{ProductID: product.ID, VariantID: variant.ID, OrderedQty: 20, Price: 4.0},
	})
	if err != nil {
		t.Fatalf("CreatePurchaseOrder() error = %v", err)
	}
	if po.Status != model.POStatusDraft {
		t.Errorf("expected status DRAFT, got %s", po.Status)
	}
	if len(po.Items) != 1 || po.Items[0].ReceivedQty != 0 {
		t.Errorf("expected one item with receivedQty 0, got %+v", po.Items)
	}
}

func TestCreatePurchaseOrder_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	tenantA := createTenant(t, db, "tenant-a")
	tenantB := createTenant(t, db, "tenant-b")
	supplierA := createSupplier(t, db, tenantA.ID)
	supplierB := createSupplier(t, db, tenantB.ID)
	productA := createProductWithVariant(t, db, tenantA.ID, "SKU-A", 10, 5)
	otherProduct := createProductWithVariant(t, db, tenantA.ID, "SKU-X", 10, 5)
	variantA := productA.Variants[0]

	item := POItemInput{ProductID: productA.ID, VariantID: variantA.ID, OrderedQty: 5, Price: 1.0}

	// Another tenant's supplier is indistinguishable from a nonexistent one.
	if _, err := svc.CreatePurchaseOrder(ctx, tenantA.ID, supplierB.ID, nil, []POItemInput{item}); !errors.Is(err, ErrInvalidSupplier) {
		t.Errorf("expected ErrInvalidSupplier, got %v", err)
	}

	// A variant that does not belong to the referenced product is rejected.
	mismatched := POItemInput{ProductID: otherProduct.ID, VariantID: variantA.ID, OrderedQty: 5, Price: 1.0}
	if _, err := svc.CreatePurchaseOrder(ctx, tenantA.ID, supplierA.ID, nil, []POItemInput{mismatched}); !errors.Is(err, ErrInvalidProduct) {
		t.Errorf("expected ErrInvalidProduct, got %v", err)
	}

	// Tenant B cannot order against tenant A's catalog.
	if _, err := svc.CreatePurchaseOrder(ctx, tenantB.ID, supplierB.ID, nil, []POItemInput{item}); !errors.Is(err, ErrInvalidProduct) {
		t.Errorf("expected ErrInvalidProduct for foreign catalog, got %v", err)
	}

	if _, err := svc.CreatePurchaseOrder(ctx, tenantA.ID, supplierA.ID, nil, nil); !errors.Is(err, ErrNoItems) {
		t.Errorf("expected ErrNoItems, got %v", err)
	}

	zeroQty := POItemInput{ProductID: productA.ID, VariantID: variantA.ID, OrderedQty: 0, Price: 1.0}
	if _, err := svc.CreatePurchaseOrder(ctx, tenantA.ID, supplierA.ID, nil, []POItemInput{zeroQty}); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestAdvancePurchaseOrderStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	tenant := createTenant(t, db, "acme")
	otherTenant := createTenant(t, db, "other")
	supplier := createSupplier(t, db, tenant.ID)
	product := createProductWithVariant(t, db, tenant.ID, "SKU-1", 10, 5)
	po := createPO(t, db, tenant.ID, supplier.ID, model.POStatusDraft, []model.PurchaseOrderItem{
		{ProductID: product.ID, VariantID: product.Variants[0].ID, OrderedQty: 5, Price: 1.0},
	})

	// Skipping SENT is not allowed.
	if _, err := svc.AdvancePurchaseOrderStatus(ctx, tenant.ID, po.ID, model.POStatusConfirmed); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition for DRAFT->CONFIRMED, got %v", err)
	}

	// RECEIVED is never reachable by a direct status change.
	if _, err := svc.AdvancePurchaseOrderStatus(ctx, tenant.ID, po.ID, model.POStatusReceived); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition for ->RECEIVED, got %v", err)
	}

	updated, err := svc.AdvancePurchaseOrderStatus(ctx, tenant.ID, po.ID, model.POStatusSent)
	if err != nil {
		t.Fatalf("DRAFT->SENT error = %v", err)
	}
	if updated.Status != model.POStatusSent {
		t.Errorf("expected SENT, got %s", updated.Status)
	}

	updated, err = svc.AdvancePurchaseOrderStatus(ctx, tenant.ID, po.ID, model.POStatusConfirmed)
	if err != nil {
		t.Fatalf("SENT->CONFIRMED error = %v", err)
	}
	if updated.Status != model.POStatusConfirmed {
		t.Errorf("expected CONFIRMED, got %s", updated.Status)
	}

	// Wrong tenant behaves like a nonexistent order.
	if _, err := svc.AdvancePurchaseOrderStatus(ctx, otherTenant.ID, po.ID, model.POStatusSent); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign tenant, got %v", err)
	}
}

func TestReceivePurchaseOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	tenant := createTenant(t, db, "acme")
	supplier := createSupplier(t, db, tenant.ID)
	product := createProductWithVariant(t, db, tenant.ID, "SKU-1", 0, 5)
	variant := product.Variants[0]
	po := createPO(t, db, tenant.ID, supplier.ID, model.POStatusConfirmed, []model.PurchaseOrderItem{
		{ProductID: product.ID, VariantID: variant.ID, OrderedQty: 20, Price: 4.0},
	})

	// Receiving more than ordered fails with no stock change.
	_, err := svc.ReceivePurchaseOrder(ctx, tenant.ID, po.ID, []ReceiptInput{{VariantID: variant.ID, ReceiveQty: 25}})
	if !errors.Is(err, ErrOverReceive) {
		t.Fatalf("expected ErrOverReceive, got %v", err)
	}
	if got := variantStock(t, db, variant.ID); got != 0 {
		t.Errorf("expected stock unchanged at 0, got %d", got)
	}
	if got := movementCount(t, db, variant.ID); got != 0 {
		t.Errorf("expected no movements after failed receive, got %d", got)
	}

	// Receiving the full ordered quantity succeeds and completes the order.
	received, err := svc.ReceivePurchaseOrder(ctx, tenant.ID, po.ID, []ReceiptInput{{VariantID: variant.ID, ReceiveQty: 20}})
	if err != nil {
		t.Fatalf("ReceivePurchaseOrder() error = %v", err)
	}
	if received.Status != model.POStatusReceived {
		t.Errorf("expected status RECEIVED, got %s", received.Status)
	}
	if received.Items[0].ReceivedQty != 20 {
		t.Errorf("expected receivedQty 20, got %d", received.Items[0].ReceivedQty)
	}
	if !received.FullyReceived() {
		t.Error("expected order to report fully received")
	}
	if got := variantStock(t, db, variant.ID); got != 20 {
		t.Errorf("expected stock 20, got %d", got)
	}

	var movement model.StockMovement
	if err := db.Where("variant_id = ?", variant.ID).First(&movement).Error; err != nil {
		t.Fatalf("failed to load movement: %v", err)
	}
	if movement.Type != model.MovementPurchase || movement.Quantity != 20 {
		t.Errorf("expected PURCHASE +20 movement, got %s %d", movement.Type, movement.Quantity)
	}

	// A completed order accepts no further receipts.
	_, err = svc.ReceivePurchaseOrder(ctx, tenant.ID, po.ID, []ReceiptInput{{VariantID: variant.ID, ReceiveQty: 1}})
	if !errors.Is(err, ErrOrderNotReceivable) {
		t.Fatalf("expected ErrOrderNotReceivable on RECEIVED order, got %v", err)
	}
	if got := variantStock(t, db, variant.ID); got != 20 {
		t.Errorf("expected stock unchanged at 20, got %d", got)
	}
}

func TestReceivePurchaseOrder_PartialThenComplete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	tenant := createTenant(t, db, "acme")
	supplier := createSupplier(t, db, tenant.ID)
	product := createProductWithVariant(t, db, tenant.ID, "SKU-1", 3, 5)
	variant := product.Variants[0]
	po := createPO(t, db, tenant.ID, supplier.ID, model.POStatusConfirmed, []model.PurchaseOrderItem{
		{ProductID: product.ID, VariantID: variant.ID, OrderedQty: 10, Price: 2.0},
	})

	partial, err := svc.ReceivePurchaseOrder(ctx, tenant.ID, po.ID, []ReceiptInput{{VariantID: variant.ID, ReceiveQty: 4}})
	if err != nil {
		t.Fatalf("partial receive error = %v", err)
	}
	if partial.Status != model.POStatusConfirmed {
		t.Errorf("expected status CONFIRMED after partial receive, got %s", partial.Status)
	}
	if partial.Items[0].ReceivedQty != 4 {
		t.Errorf("expected receivedQty 4, got %d", partial.Items[0].ReceivedQty)
	}
	if got := variantStock(t, db, variant.ID); got != 7 {
		t.Errorf("expected stock 7, got %d", got)
	}

	completed, err := svc.ReceivePurchaseOrder(ctx, tenant.ID, po.ID, []ReceiptInput{{VariantID: variant.ID, ReceiveQty: 6}})
	if err != nil {
		t.Fatalf("completing receive error = %v", err)
	}
	if completed.Status != model.POStatusReceived {
		t.Errorf("expected status RECEIVED, got %s", completed.Status)
	}
	if got := variantStock(t, db, variant.ID); got != 13 {
		t.Errorf("expected stock 13, got %d", got)
	}
}

func TestReceivePurchaseOrder_RollbackOnError(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	tenant := createTenant(t, db, "acme")
	supplier := createSupplier(t, db, tenant.ID)
	product := createProductWithVariant(t, db, tenant.ID, "SKU-1", 0, 5)
	variant := product.Variants[0]
	stray := createProductWithVariant(t, db, tenant.ID, "SKU-2", 0, 5)
	po := createPO(t, db, tenant.ID, supplier.ID, model.POStatusConfirmed, []model.PurchaseOrderItem{
		{ProductID: product.ID, VariantID: variant.ID, OrderedQty: 10, Price: 1.0},
	})

	// The first receipt is valid but the second names a variant outside the
	// order; everything must roll back.
	_, err := svc.ReceivePurchaseOrder(ctx, tenant.ID, po.ID, []ReceiptInput{
		{VariantID: variant.ID, ReceiveQty: 5},
		{VariantID: stray.Variants[0].ID, ReceiveQty: 1},
	})
	if !errors.Is(err, ErrItemNotInOrder) {
		t.Fatalf("expected ErrItemNotInOrder, got %v", err)
	}

	if got := variantStock(t, db, variant.ID); got != 0 {
		t.Errorf("expected stock rolled back to 0, got %d", got)
	}
	if got := movementCount(t, db, variant.ID); got != 0 {
		t.Errorf("expected no movements after rollback, got %d", got)
	}
	var item model.PurchaseOrderItem
	if err := db.Where("purchase_order_id = ?", po.ID).First(&item).Error; err != nil {
		t.Fatalf("failed to load item: %v", err)
	}
	if item.ReceivedQty != 0 {
		t.Errorf("expected receivedQty rolled back to 0, got %d", item.ReceivedQty)
	}
}

func TestReceivePurchaseOrder_StatusGate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	tenant := createTenant(t, db, "acme")
	supplier := createSupplier(t, db, tenant.ID)
	product := createProductWithVariant(t, db, tenant.ID, "SKU-1", 0, 5)
	variant := product.Variants[0]

	for _, status := range []string{model.POStatusDraft, model.POStatusSent} {
		po := createPO(t, db, tenant.ID, supplier.ID, status, []model.PurchaseOrderItem{
			{ProductID: product.ID, VariantID: variant.ID, OrderedQty: 10, Price: 1.0},
		})
		_, err := svc.ReceivePurchaseOrder(ctx, tenant.ID, po.ID, []ReceiptInput{{VariantID: variant.ID, ReceiveQty: 1}})
		if !errors.Is(err, ErrOrderNotReceivable) {
			t.Errorf("expected ErrOrderNotReceivable for %s order, got %v", status, err)
		}
	}
	if got := variantStock(t, db, variant.ID); got != 0 {
		t.Errorf("expected stock unchanged at 0, got %d", got)
	}
}

func TestReceivePurchaseOrder_TenantIsolation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	tenantA := createTenant(t, db, "tenant-a")
	tenantB := createTenant(t, db, "tenant-b")
	supplier := createSupplier(t, db, tenantA.ID)
	product := createProductWithVariant(t, db, tenantA.ID, "SKU-A", 0, 5)
	variant := product.Variants[0]
	po := createPO(t, db, tenantA.ID, supplier.ID, model.POStatusConfirmed, []model.PurchaseOrderItem{
		{ProductID: product.ID, VariantID: variant.ID, OrderedQty: 10, Price: 1.0},
	})

	// Another tenant's PO id behaves identically to a nonexistent id.
	_, err := svc.ReceivePurchaseOrder(ctx, tenantB.ID, po.ID, []ReceiptInput{{VariantID: variant.ID, ReceiveQty: 1}})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign tenant, got %v", err)
	}
	if got := variantStock(t, db, variant.ID); got != 0 {
		t.Errorf("expected stock unchanged at 0, got %d", got)
	}
}
