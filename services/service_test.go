package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
	"github.com/yudharma/resto-pos/utils"
)

var testDBSeq int64

// newTestDB opens a fresh in-memory database per test so state never
// leaks between tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Branch{},
		&models.Counter{},
		&models.Table{},
		&models.Customer{},
		&models.CustomerAddress{},
		&models.Category{},
		&models.FoodItem{},
		&models.Variation{},
		&models.AddOn{},
		&models.Discount{},
		&models.Coupon{},
		&models.CouponUsage{},
		&models.Ingredient{},
		&models.RecipeItem{},
		&models.StockMovement{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemAddOn{},
		&models.Payment{},
		&models.Delivery{},
		&models.Settings{},
		&models.TaxRule{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

const testTenant = uint(1)

// seedCatalog creates a branch, a category and one food item, returning
// the food item.
func seedCatalog(t *testing.T, db *gorm.DB, price float64) *models.FoodItem {
	t.Helper()

	branch := models.Branch{TenantID: testTenant, Name: "Main Branch", Code: "MAIN", IsActive: true}
	if err := db.Create(&branch).Error; err != nil {
		t.Fatalf("seed branch: %v", err)
	}
	category := models.Category{TenantID: testTenant, Name: "Food"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	food := models.FoodItem{
		TenantID:   testTenant,
		CategoryID: category.ID,
		Name:       "Nasi Goreng",
		Price:      price,
		IsActive:   true,
	}
	if err := db.Create(&food).Error; err != nil {
		t.Fatalf("seed food item: %v", err)
	}
	return &food
}

// seedRecipe attaches an ingredient with the given stock and per-unit
// consumption to the food item.
func seedRecipe(t *testing.T, db *gorm.DB, foodItemID uint, name string, stock, perUnit float64) *models.Ingredient {
	t.Helper()

	ingredient := models.Ingredient{TenantID: testTenant, Name: name, Unit: "g", Stock: stock}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("seed ingredient: %v", err)
	}
	recipe := models.RecipeItem{FoodItemID: foodItemID, IngredientID: ingredient.ID, Quantity: perUnit}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("seed recipe: %v", err)
	}
	return &ingredient
}

func newPricing(db *gorm.DB) *PricingService {
	settings := NewSettingsService(db)
	return NewPricingService(db, NewCouponService(db), NewTaxService(db, settings), settings)
}

func newOrders(db *gorm.DB) *OrderService {
	settings := NewSettingsService(db)
	lifecycle := NewLifecycleService(db)
	return NewOrderService(db,
		newPricing(db),
		NewInventoryService(db),
		NewCouponService(db),
		settings,
		NewDeliveryService(db, lifecycle),
	)
}
