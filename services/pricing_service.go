package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
)

// CartAddOn selects an add-on for one cart line.
type CartAddOn struct {
	AddOnID  uint `json:"add_on_id"`
	Quantity int  `json:"quantity"`
}

// CartItem is one requested order line.
type CartItem struct {
	FoodItemID  uint        `json:"food_item_id"`
	VariationID *uint       `json:"variation_id,omitempty"`
	Quantity    int         `json:"quantity"`
	Notes       string      `json:"notes"`
	AddOns      []CartAddOn `json:"add_ons,omitempty"`
}

// AddOnPricing snapshots an add-on price for one line.
type AddOnPricing struct {
	AddOnID   uint    `json:"add_on_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// ItemPricing is the priced form of one cart line.
type ItemPricing struct {
	FoodItemID  uint           `json:"food_item_id"`
	CategoryID  uint           `json:"category_id"`
	VariationID *uint          `json:"variation_id,omitempty"`
	Quantity    int            `json:"quantity"`
	UnitPrice   float64        `json:"unit_price"`
	Discount    float64        `json:"discount"`
	Tax         float64        `json:"tax"`
	Subtotal    float64        `json:"subtotal"` // unit price x quantity, before discounts
	Notes       string         `json:"notes"`
	AddOns      []AddOnPricing `json:"add_ons,omitempty"`
}

// PricingBreakdown is the fully itemized result of ComputeTotals. It is
// consumed immediately to populate the order and never persisted itself.
type PricingBreakdown struct {
	Subtotal       float64       `json:"subtotal"`
	ItemDiscounts  float64       `json:"item_discounts"`
	ExtraDiscount  float64       `json:"extra_discount"`
	CouponDiscount float64       `json:"coupon_discount"`
	CouponID       *uint         `json:"coupon_id,omitempty"`
	TaxAmount      float64       `json:"tax_amount"`
	DeliveryCharge float64       `json:"delivery_charge"`
	TotalAmount    float64       `json:"total_amount"`
	Items          []ItemPricing `json:"items"`
}

// DiscountTotal is the order-level discount field: item promotions plus
// the manual discount plus the coupon.
func (b *PricingBreakdown) DiscountTotal() float64 {
	return round2(b.ItemDiscounts + b.ExtraDiscount + b.CouponDiscount)
}

// PricingService turns a cart into a priced breakdown. It only reads
// catalog and settings data; it mutates nothing.
type PricingService struct {
	db       *gorm.DB
	coupons  CouponProvider
	tax      TaxProvider
	settings SettingsProvider
}

func NewPricingService(db *gorm.DB, coupons CouponProvider, tax TaxProvider, settings SettingsProvider) *PricingService {
	return &PricingService{db: db, coupons: coupons, tax: tax, settings: settings}
}

// ComputeTotals prices the cart: per-item unit price (base + variation +
// add-ons), the first active promotional discount per item, the clamped
// manual discount, the coupon (validation failures propagate), the
// delivery charge for delivery orders and, when the tenant has taxes
// enabled, the tax on the fully discounted base.
func (s *PricingService) ComputeTotals(tenantID uint, items []CartItem, extraDiscount float64, couponCode, orderType string, customerID *uint) (*PricingBreakdown, error) {
	now := time.Now()
	bd := &PricingBreakdown{}

	for _, ci := range items {
		if ci.Quantity < 1 {
			return nil, ErrEmptyCart
		}

		var food models.FoodItem
		err := s.db.Preload("Variations").Preload("AddOns").Preload("Discounts").
			Where("tenant_id = ?", tenantID).
			First(&food, ci.FoodItemID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &FoodItemNotFoundError{FoodItemID: ci.FoodItemID}
			}
			return nil, err
		}

		unitPrice := food.Price
		if ci.VariationID != nil {
			variation := findVariation(food.Variations, *ci.VariationID)
			if variation == nil {
				return nil, &FoodItemNotFoundError{FoodItemID: ci.FoodItemID}
			}
			unitPrice += variation.PriceAdjustment
		}

		var addOns []AddOnPricing
		for _, ca := range ci.AddOns {
			addOn := findAddOn(food.AddOns, ca.AddOnID)
			if addOn == nil {
				return nil, &FoodItemNotFoundError{FoodItemID: ci.FoodItemID}
			}
			qty := ca.Quantity
			if qty < 1 {
				qty = 1
			}
			unitPrice += addOn.Price * float64(qty)
			addOns = append(addOns, AddOnPricing{AddOnID: addOn.ID, Quantity: qty, UnitPrice: addOn.Price})
		}

		itemSubtotal := round2(unitPrice * float64(ci.Quantity))
		bd.Subtotal = round2(bd.Subtotal + itemSubtotal)

		// First matching active discount only; no stacking, no best-of.
		discount := 0.0
		for i := range food.Discounts {
			d := &food.Discounts[i]
			if !d.ActiveAt(now) {
				continue
			}
			if d.Type == models.DiscountPercentage {
				discount = itemSubtotal * d.Value / 100
			} else {
				discount = d.Value * float64(ci.Quantity)
			}
			break
		}
		if discount > itemSubtotal {
			discount = itemSubtotal
		}
		discount = round2(discount)
		bd.ItemDiscounts = round2(bd.ItemDiscounts + discount)

		bd.Items = append(bd.Items, ItemPricing{
			FoodItemID:  food.ID,
			CategoryID:  food.CategoryID,
			VariationID: ci.VariationID,
			Quantity:    ci.Quantity,
			UnitPrice:   round2(unitPrice),
			Discount:    discount,
			Subtotal:    itemSubtotal,
			Notes:       ci.Notes,
			AddOns:      addOns,
		})
	}

	// The manual discount can never exceed the value still on the order.
	remaining := bd.Subtotal - bd.ItemDiscounts
	extra := extraDiscount
	if extra > remaining {
		extra = remaining
	}
	if extra < 0 {
		extra = 0
	}
	bd.ExtraDiscount = round2(extra)

	if couponCode != "" {
		base := round2(bd.Subtotal - bd.ItemDiscounts - bd.ExtraDiscount)
		discount, couponID, err := s.coupons.Validate(tenantID, couponCode, base, customerID)
		if err != nil {
			return nil, err
		}
		bd.CouponDiscount = round2(discount)
		bd.CouponID = &couponID
	}

	settings, err := s.settings.GetSettings(tenantID)
	if err != nil {
		return nil, err
	}

	afterDiscounts := round2(bd.Subtotal - bd.ItemDiscounts - bd.ExtraDiscount - bd.CouponDiscount)

	if orderType == models.OrderTypeDelivery {
		// A zero threshold means delivery is never free.
		if settings.FreeDeliveryThreshold > 0 && afterDiscounts >= settings.FreeDeliveryThreshold {
			bd.DeliveryCharge = 0
		} else {
			bd.DeliveryCharge = settings.DefaultDeliveryCharge
		}
	}

	if settings.EnableTaxSystem {
		lines := make([]TaxLine, 0, len(bd.Items))
		for _, it := range bd.Items {
			lines = append(lines, TaxLine{FoodItemID: it.FoodItemID, CategoryID: it.CategoryID, Subtotal: it.Subtotal})
		}
		// Service charge is a reserved input, always zero for now.
		tax, err := s.tax.CalculateTaxForOrder(tenantID, lines, afterDiscounts, bd.DeliveryCharge, 0)
		if err != nil {
			return nil, err
		}
		bd.TaxAmount = round2(tax)
	}

	// Attribute tax to items proportionally to their pre-discount share.
	if bd.Subtotal > 0 {
		for i := range bd.Items {
			bd.Items[i].Tax = round2(bd.Items[i].Subtotal / bd.Subtotal * bd.TaxAmount)
		}
	}

	total := afterDiscounts + bd.TaxAmount + bd.DeliveryCharge
	if total < 0 {
		total = 0
	}
	bd.TotalAmount = round2(total)

	return bd, nil
}

func findVariation(variations []models.Variation, id uint) *models.Variation {
	for i := range variations {
		if variations[i].ID == id {
			return &variations[i]
		}
	}
	return nil
}

func findAddOn(addOns []models.AddOn, id uint) *models.AddOn {
	for i := range addOns {
		if addOns[i].ID == id {
			return &addOns[i]
		}
	}
	return nil
}

// round2 keeps money at two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
