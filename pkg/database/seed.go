package database

import (
	"fmt"

	"inventory-service/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedDemoData creates a demo tenant with one user per role, a supplier and a
// small catalog. It is a no-op when the demo tenant already exists, so it is
// safe to run on every boot when SEED_DEMO_DATA is enabled.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Tenant{}).Where("name = ?", "Demo Tenant").Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for demo tenant: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		tenant := model.Tenant{Name: "Demo Tenant", Active: true}
		if err := tx.Create(&tenant).Error; err != nil {
			return fmt.Errorf("failed to create demo tenant: %w", err)
		}

		users := []struct {
			name  string
			email string
			role  string
		}{
			{"Demo Owner", "owner@demo.local", model.RoleOwner},
			{"Demo Manager", "manager@demo.local", model.RoleManager},
			{"Demo Staff", "staff@demo.local", model.RoleStaff},
		}
		for _, u := range users {
			hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash demo password: %w", err)
			}
			user := model.User{
				Name:     u.name,
				Email:    u.email,
				Password: string(hash),
				Role:     u.role,
				TenantID: tenant.ID,
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("failed to create demo user %s: %w", u.email, err)
			}
		}

		supplier := model.Supplier{
			TenantID: tenant.ID,
			Name:     "Acme Wholesale",
			Email:    "sales@acme.local",
			Phone:    "+1-555-0100",
			Address:  "1 Warehouse Way",
		}
		if err := tx.Create(&supplier).Error; err != nil {
			return fmt.Errorf("failed to create demo supplier: %w", err)
		}

		products := []model.Product{
			{
				TenantID: tenant.ID,
				Name:     "Classic T-Shirt",
				Category: "Apparel",
				Variants: []model.ProductVariant{
					{
						TenantID:          tenant.ID,
						SKU:               "TSHIRT-S-BLK",
						Attributes:        map[string]string{"size": "S", "color": "black"},
						Price:             19.90,
						Stock:             40,
						LowStockThreshold: 5,
					},
					{
						TenantID:          tenant.ID,
						SKU:               "TSHIRT-M-BLK",
						Attributes:        map[string]string{"size": "M", "color": "black"},
						Price:             19.90,
						Stock:             3,
						LowStockThreshold: 5,
					},
				},
			},
			{
				TenantID: tenant.ID,
				Name:     "Canvas Tote",
				Category: "Accessories",
				Variants: []model.ProductVariant{
					{
						TenantID:          tenant.ID,
						SKU:               "TOTE-NAT",
						Attributes:        map[string]string{"color": "natural"},
						Price:             12.50,
						Stock:             120,
						LowStockThreshold: 10,
					},
				},
			},
		}
		for i := range products {
			if err := tx.Create(&products[i]).Error; err != nil {
				return fmt.Errorf("failed to create demo product %s: %w", products[i].Name, err)
			}
		}

		return nil
	})
}
