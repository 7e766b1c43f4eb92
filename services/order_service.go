package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/kds"
	"github.com/yudharma/resto-pos/models"
	"github.com/yudharma/resto-pos/utils"
)

// DeliveryAddress carries free-text address fields for walk-in delivery
// customers without a saved address. It is serialized into the delivery
// note.
type DeliveryAddress struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
}

// CreateOrderRequest is the full cart a terminal submits.
type CreateOrderRequest struct {
	BranchID          *uint            `json:"branch_id,omitempty"`
	CounterID         *uint            `json:"counter_id,omitempty"`
	TableID           *uint            `json:"table_id,omitempty"`
	CustomerID        *uint            `json:"customer_id,omitempty"`
	OrderType         string           `json:"order_type"`
	Items             []CartItem       `json:"items"`
	ExtraDiscount     float64          `json:"extra_discount"`
	CouponCode        string           `json:"coupon_code"`
	TokenNumber       string           `json:"token_number"`
	PaymentMethod     string           `json:"payment_method"`
	PaymentTiming     string           `json:"payment_timing"`
	CustomerAddressID *uint            `json:"customer_address_id,omitempty"`
	DeliveryAddress   *DeliveryAddress `json:"delivery_address,omitempty"`
}

// UpdateOrderRequest replaces the entire item set of an unpaid order.
type UpdateOrderRequest struct {
	Items         []CartItem `json:"items"`
	ExtraDiscount float64    `json:"extra_discount"`
	CouponCode    string     `json:"coupon_code"`
}

// OrderService assembles orders: it validates, prices, persists and
// deducts in a strict sequence, compensating with a soft delete when
// stock deduction fails after the order was already written.
type OrderService struct {
	db        *gorm.DB
	pricing   *PricingService
	inventory InventoryGate
	coupons   CouponProvider
	settings  SettingsProvider
	delivery  DeliveryProvider
}

func NewOrderService(db *gorm.DB, pricing *PricingService, inventory InventoryGate, coupons CouponProvider, settings SettingsProvider, delivery DeliveryProvider) *OrderService {
	return &OrderService{
		db:        db,
		pricing:   pricing,
		inventory: inventory,
		coupons:   coupons,
		settings:  settings,
		delivery:  delivery,
	}
}

// CreateOrder runs the creation pipeline. Step order is a hard
// invariant: validate stock, price, persist order, persist items,
// deduct stock. The worst failure then is a priced order whose stock
// was never deducted, which the compensating delete cleans up.
func (s *OrderService) CreateOrder(tenantID, actorID uint, req *CreateOrderRequest) (*models.Order, error) {
	branch, err := s.resolveBranch(tenantID, req.BranchID)
	if err != nil {
		return nil, err
	}

	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	orderType := req.OrderType
	if orderType == "" {
		orderType = models.OrderTypeDineIn
	}
	switch orderType {
	case models.OrderTypeDineIn, models.OrderTypeTakeaway, models.OrderTypeDelivery:
	default:
		return nil, ErrInvalidOrderType
	}

	reqs := stockRequirements(req.Items)
	validation, err := s.inventory.ValidateStockForOrder(tenantID, reqs)
	if err != nil {
		return nil, err
	}
	if !validation.IsValid {
		return nil, &InsufficientStockError{Items: validation.InsufficientItems}
	}

	bd, err := s.pricing.ComputeTotals(tenantID, req.Items, req.ExtraDiscount, req.CouponCode, orderType, req.CustomerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	orderNumber, err := s.nextOrderNumber(tenantID, branch, now)
	if err != nil {
		return nil, err
	}
	tokenNumber := req.TokenNumber
	if tokenNumber == "" {
		tokenNumber, err = s.nextTokenNumber(tenantID, branch.ID, now)
		if err != nil {
			return nil, err
		}
	}

	counterID := req.CounterID
	if counterID == nil {
		counterID = s.defaultCounter(tenantID, branch.ID)
	}

	paymentTiming := req.PaymentTiming
	if paymentTiming == "" {
		paymentTiming = models.PayAfter
	}

	cashier := actorID
	order := models.Order{
		TenantID:       tenantID,
		BranchID:       branch.ID,
		OrderNumber:    orderNumber,
		TokenNumber:    tokenNumber,
		OrderType:      orderType,
		Status:         models.OrderStatusPending,
		PaymentStatus:  models.PaymentStatusUnpaid,
		PaymentTiming:  paymentTiming,
		Subtotal:       bd.Subtotal,
		DiscountAmount: bd.DiscountTotal(),
		TaxAmount:      bd.TaxAmount,
		DeliveryCharge: bd.DeliveryCharge,
		CounterID:      counterID,
		TableID:        req.TableID,
		CustomerID:     req.CustomerID,
		CashierID:      &cashier,
		CouponID:       bd.CouponID,
		PlacedAt:       now,
	}
	order.RecomputeTotal()

	if err := s.db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	if err := s.createItems(order.ID, bd); err != nil {
		// Do not leave a half-created order standing.
		s.compensate(&order, "order item persistence failed")
		return nil, fmt.Errorf("persist order items: %w", err)
	}

	if bd.CouponID != nil {
		if err := s.coupons.RecordUsage(tenantID, *bd.CouponID, order.ID, req.CustomerID); err != nil {
			// Non-fatal: coupon bookkeeping never rolls back a priced order.
			utils.ErrorLogger.Printf("record coupon usage for order %d: %v", order.ID, err)
		}
	}

	if err := s.inventory.DeductStockForOrder(tenantID, actorID, order.ID, reqs); err != nil {
		// Stock raced between validate and deduct.
		s.compensate(&order, "stock deduction failed")
		return nil, &DeductionFailedError{Cause: err}
	}

	if orderType == models.OrderTypeDineIn && req.TableID != nil {
		s.occupyTable(tenantID, *req.TableID)
	}

	if req.PaymentMethod != "" && paymentTiming == models.PayFirst {
		payment := models.Payment{
			TenantID:    tenantID,
			OrderID:     order.ID,
			Amount:      order.TotalAmount,
			Method:      req.PaymentMethod,
			Status:      models.PaymentRecordPending,
			ReferenceID: uuid.NewString(),
		}
		if err := s.db.Create(&payment).Error; err != nil {
			utils.ErrorLogger.Printf("create pending payment for order %d: %v", order.ID, err)
		}
	}

	if orderType == models.OrderTypeDelivery {
		notes := ""
		if req.DeliveryAddress != nil {
			if raw, err := json.Marshal(req.DeliveryAddress); err == nil {
				notes = string(raw)
			}
		}
		if _, err := s.delivery.CreateDeliveryForOrder(tenantID, order.ID, req.CustomerAddressID, order.DeliveryCharge, notes); err != nil {
			utils.ErrorLogger.Printf("create delivery for order %d: %v", order.ID, err)
		}
	}

	hydrated, err := s.GetOrder(tenantID, order.ID)
	if err != nil {
		// Creation already succeeded; return what we hold in memory.
		utils.ErrorLogger.Printf("rehydrate order %d: %v", order.ID, err)
		kds.BroadcastOrderEvent(kds.EventOrderCreated, tenantID, order.ID, &order)
		return &order, nil
	}

	kds.BroadcastOrderEvent(kds.EventOrderCreated, tenantID, order.ID, hydrated)
	return hydrated, nil
}

// UpdateOrder replaces the entire item set of an unpaid order. Items
// are deleted and recreated rather than diffed, totals go through the
// same pricing path, and the status resets to pending so the kitchen
// sees the changed cart again.
func (s *OrderService) UpdateOrder(tenantID, actorID, orderID uint, req *UpdateOrderRequest) (*models.Order, error) {
	var order models.Order
	err := s.db.Where("tenant_id = ?", tenantID).First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.PaymentStatus == models.PaymentStatusPaid {
		return nil, ErrOrderAlreadyPaid
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	reqs := stockRequirements(req.Items)
	validation, err := s.inventory.ValidateStockForOrder(tenantID, reqs)
	if err != nil {
		return nil, err
	}
	if !validation.IsValid {
		return nil, &InsufficientStockError{Items: validation.InsufficientItems}
	}

	bd, err := s.pricing.ComputeTotals(tenantID, req.Items, req.ExtraDiscount, req.CouponCode, order.OrderType, order.CustomerID)
	if err != nil {
		return nil, err
	}

	if err := s.replaceItems(order.ID, bd); err != nil {
		return nil, fmt.Errorf("replace order items: %w", err)
	}

	order.Subtotal = bd.Subtotal
	order.DiscountAmount = bd.DiscountTotal()
	order.TaxAmount = bd.TaxAmount
	order.DeliveryCharge = bd.DeliveryCharge
	order.CouponID = bd.CouponID
	order.Status = models.OrderStatusPending
	order.RecomputeTotal()
	if err := s.db.Save(&order).Error; err != nil {
		return nil, err
	}

	// Stock for the replaced items is deducted again; a failure here is
	// logged rather than rolled back.
	if err := s.inventory.DeductStockForOrder(tenantID, actorID, order.ID, reqs); err != nil {
		utils.ErrorLogger.Printf("re-deduct stock for order %d: %v", order.ID, err)
	}

	hydrated, err := s.GetOrder(tenantID, order.ID)
	if err != nil {
		utils.ErrorLogger.Printf("rehydrate order %d: %v", order.ID, err)
		hydrated = &order
	}

	kds.BroadcastOrderEvent(kds.EventOrderUpdated, tenantID, order.ID, hydrated)
	return hydrated, nil
}

// GetOrder reconstructs the complete order view for API responses.
func (s *OrderService) GetOrder(tenantID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.
		Preload("Branch").
		Preload("Counter").
		Preload("Table").
		Preload("Customer").
		Preload("Cashier").
		Preload("Items").
		Preload("Items.FoodItem").
		Preload("Items.Variation").
		Preload("Items.AddOns").
		Preload("Items.AddOns.AddOn").
		Preload("Payments").
		Where("tenant_id = ?", tenantID).
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// OrderFilter narrows ListOrders.
type OrderFilter struct {
	Status    string
	OrderType string
	BranchID  *uint
	DateFrom  *time.Time
	DateTo    *time.Time
}

// ListOrders returns the tenant's orders, newest first.
func (s *OrderService) ListOrders(tenantID uint, filter OrderFilter) ([]models.Order, error) {
	q := s.db.Preload("Items").Preload("Branch").Where("tenant_id = ?", tenantID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.OrderType != "" {
		q = q.Where("order_type = ?", filter.OrderType)
	}
	if filter.BranchID != nil {
		q = q.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.DateFrom != nil {
		q = q.Where("placed_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("placed_at < ?", *filter.DateTo)
	}
	var orders []models.Order
	err := q.Order("placed_at desc").Find(&orders).Error
	return orders, err
}

// KitchenOrders lists the orders the kitchen display shows, oldest first.
func (s *OrderService) KitchenOrders(tenantID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").Preload("Items.FoodItem").Preload("Table").
		Where("tenant_id = ? AND status IN ?", tenantID,
			[]string{models.OrderStatusPending, models.OrderStatusPreparing, models.OrderStatusReady}).
		Order("placed_at asc").
		Find(&orders).Error
	return orders, err
}

// resolveBranch returns the requested branch when it exists under the
// tenant, otherwise the tenant's oldest active branch, otherwise a
// freshly created default. The fallback is intentional: POS terminals
// must be able to take orders before formal branch setup is complete.
func (s *OrderService) resolveBranch(tenantID uint, branchID *uint) (*models.Branch, error) {
	if branchID != nil {
		var branch models.Branch
		err := s.db.Where("tenant_id = ? AND is_active = ?", tenantID, true).First(&branch, *branchID).Error
		if err == nil {
			return &branch, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var branch models.Branch
	err := s.db.Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("created_at asc").
		First(&branch).Error
	if err == nil {
		return &branch, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	branch = models.Branch{
		TenantID: tenantID,
		Name:     "Main Branch",
		Code:     "MAIN",
		IsActive: true,
	}
	if err := s.db.Create(&branch).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

// nextOrderNumber derives the branch-scoped daily sequence from a count
// of today's orders. Two concurrent creations on the same branch can
// race to the same value; uniqueness is best-effort here.
func (s *OrderService) nextOrderNumber(tenantID uint, branch *models.Branch, now time.Time) (string, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int64
	err := s.db.Model(&models.Order{}).
		Where("tenant_id = ? AND branch_id = ? AND created_at >= ?", tenantID, branch.ID, midnight).
		Count(&count).Error
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%04d", branch.Code, now.Format("20060102"), count+1), nil
}

// nextTokenNumber is the daily token sequence, counted only among
// orders that already carry a token.
func (s *OrderService) nextTokenNumber(tenantID, branchID uint, now time.Time) (string, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int64
	err := s.db.Model(&models.Order{}).
		Where("tenant_id = ? AND branch_id = ? AND created_at >= ? AND token_number <> ''", tenantID, branchID, midnight).
		Count(&count).Error
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%03d", count+1), nil
}

func (s *OrderService) defaultCounter(tenantID, branchID uint) *uint {
	var counter models.Counter
	err := s.db.Where("tenant_id = ? AND branch_id = ? AND is_active = ?", tenantID, branchID, true).
		Order("created_at asc").
		First(&counter).Error
	if err != nil {
		return nil
	}
	return &counter.ID
}

// createItems writes the priced lines and their add-on snapshots,
// mirroring the breakdown math into the stored rows.
func (s *OrderService) createItems(orderID uint, bd *PricingBreakdown) error {
	for _, it := range bd.Items {
		item := models.OrderItem{
			OrderID:        orderID,
			FoodItemID:     it.FoodItemID,
			VariationID:    it.VariationID,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			DiscountAmount: it.Discount,
			TaxAmount:      it.Tax,
			Subtotal:       round2(it.Subtotal - it.Discount + it.Tax),
			Notes:          it.Notes,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return err
		}
		for _, ao := range it.AddOns {
			row := models.OrderItemAddOn{
				OrderItemID: item.ID,
				AddOnID:     ao.AddOnID,
				Quantity:    ao.Quantity,
				UnitPrice:   ao.UnitPrice,
			}
			if err := s.db.Create(&row).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// replaceItems drops the current lines wholesale and writes the new
// ones. Items are owned by their order and never partially updated.
func (s *OrderService) replaceItems(orderID uint, bd *PricingBreakdown) error {
	var itemIDs []uint
	if err := s.db.Model(&models.OrderItem{}).Where("order_id = ?", orderID).Pluck("id", &itemIDs).Error; err != nil {
		return err
	}
	if len(itemIDs) > 0 {
		if err := s.db.Where("order_item_id IN ?", itemIDs).Delete(&models.OrderItemAddOn{}).Error; err != nil {
			return err
		}
		if err := s.db.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
	}
	return s.createItems(orderID, bd)
}

// compensate soft-deletes an order a later pipeline step orphaned.
func (s *OrderService) compensate(order *models.Order, reason string) {
	now := time.Now()
	order.Status = models.OrderStatusCancelled
	order.CancelledAt = &now
	order.CancellationReason = reason
	if err := s.db.Save(order).Error; err != nil {
		utils.ErrorLogger.Printf("compensate order %d: %v", order.ID, err)
	}
	if err := s.db.Delete(order).Error; err != nil {
		utils.ErrorLogger.Printf("compensate order %d: %v", order.ID, err)
	}
}

// occupyTable marks a dine-in table occupied. Best-effort: tables are
// free-form identifiers, not a hard foreign key.
func (s *OrderService) occupyTable(tenantID, tableID uint) {
	err := s.db.Model(&models.Table{}).
		Where("id = ? AND tenant_id = ?", tableID, tenantID).
		UpdateColumn("status", models.TableOccupied).Error
	if err != nil {
		utils.ErrorLogger.Printf("occupy table %d: %v", tableID, err)
	}
}

func stockRequirements(items []CartItem) []StockRequirement {
	reqs := make([]StockRequirement, 0, len(items))
	for _, it := range items {
		reqs = append(reqs, StockRequirement{FoodItemID: it.FoodItemID, Quantity: it.Quantity})
	}
	return reqs
}
