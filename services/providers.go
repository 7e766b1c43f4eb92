package services

import "github.com/yudharma/resto-pos/models"

// The order pipeline consumes its collaborators through these small
// interfaces. The concrete implementations live in this package; tests
// substitute failing fakes to exercise the compensation paths.

// StockRequirement is one food-item demand derived from the cart.
type StockRequirement struct {
	FoodItemID uint `json:"food_item_id"`
	Quantity   int  `json:"quantity"`
}

// InsufficientStock describes one ingredient that cannot cover the cart.
type InsufficientStock struct {
	IngredientID   uint    `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	Available      float64 `json:"available"`
	Required       float64 `json:"required"`
}

// StockValidation is the result of a read-only stock check.
type StockValidation struct {
	IsValid           bool                `json:"is_valid"`
	InsufficientItems []InsufficientStock `json:"insufficient_items,omitempty"`
}

// InventoryGate validates requested quantities before any order row is
// written and deducts them only after the order has been persisted.
type InventoryGate interface {
	ValidateStockForOrder(tenantID uint, reqs []StockRequirement) (*StockValidation, error)
	DeductStockForOrder(tenantID, actorID, orderID uint, reqs []StockRequirement) error
}

// CouponProvider validates a coupon code against a discount base and
// records redemptions.
type CouponProvider interface {
	Validate(tenantID uint, code string, subtotal float64, customerID *uint) (discount float64, couponID uint, err error)
	RecordUsage(tenantID, couponID, orderID uint, customerID *uint) error
}

// TaxLine is one item's contribution to the tax computation.
type TaxLine struct {
	FoodItemID uint
	CategoryID uint
	Subtotal   float64
}

// TaxProvider computes the order tax. serviceCharge is a reserved input
// that is always zero today; the contract keeps it so callers do not
// change when service charges ship.
type TaxProvider interface {
	CalculateTaxForOrder(tenantID uint, lines []TaxLine, taxableAmount, deliveryCharge, serviceCharge float64) (float64, error)
}

// SettingsProvider resolves the tenant's runtime settings.
type SettingsProvider interface {
	GetSettings(tenantID uint) (*models.Settings, error)
}

// DeliveryProvider creates the delivery record for delivery orders.
// Failures are non-fatal to order creation.
type DeliveryProvider interface {
	CreateDeliveryForOrder(tenantID, orderID uint, customerAddressID *uint, charge float64, notes string) (*models.Delivery, error)
}
