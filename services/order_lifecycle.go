package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/kds"
	"github.com/yudharma/resto-pos/models"
	"github.com/yudharma/resto-pos/utils"
)

// orderTransitions is the full status machine. A status missing a
// target here rejects the transition; completed and cancelled accept
// nothing further.
var orderTransitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing: {models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusReady:     {models.OrderStatusServed, models.OrderStatusCancelled},
	models.OrderStatusServed:    {models.OrderStatusCompleted, models.OrderStatusCancelled},
	models.OrderStatusCompleted: {},
	models.OrderStatusCancelled: {},
}

// AllowedTransitions returns the statuses an order may move to next.
func AllowedTransitions(status string) []string {
	return orderTransitions[status]
}

// LifecycleService drives the order status machine and the payment
// status flip, with their side effects.
type LifecycleService struct {
	db *gorm.DB
}

func NewLifecycleService(db *gorm.DB) *LifecycleService {
	return &LifecycleService{db: db}
}

func (s *LifecycleService) loadOrder(tenantID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Where("tenant_id = ?", tenantID).First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// UpdateStatus moves the order along the status machine. Entering
// completed stamps the completion time, refreshes the customer's
// aggregate stats and releases the table; entering cancelled stamps the
// cancellation and releases the table.
func (s *LifecycleService) UpdateStatus(tenantID, orderID uint, newStatus, reason string) (*models.Order, error) {
	order, err := s.loadOrder(tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(order.Status, newStatus) {
		return nil, &InvalidTransitionError{
			From:    order.Status,
			To:      newStatus,
			Allowed: orderTransitions[order.Status],
		}
	}

	now := time.Now()
	order.Status = newStatus

	switch newStatus {
	case models.OrderStatusCompleted:
		order.CompletedAt = &now
	case models.OrderStatusCancelled:
		order.CancelledAt = &now
		order.CancellationReason = reason
	}

	if err := s.db.Save(order).Error; err != nil {
		return nil, err
	}

	if newStatus == models.OrderStatusCompleted && order.CustomerID != nil {
		s.refreshCustomerStats(tenantID, *order.CustomerID)
	}
	if newStatus == models.OrderStatusCompleted || newStatus == models.OrderStatusCancelled {
		s.releaseTable(order)
	}

	kds.BroadcastOrderEvent(kds.EventOrderStatusChanged, tenantID, order.ID, order)
	return order, nil
}

// MarkPaid flips the payment status to paid. PaidAt is stamped only the
// first time, and a completed payment record is upserted for the
// supplied amount and method.
func (s *LifecycleService) MarkPaid(tenantID, orderID uint, amount float64, method string) (*models.Order, error) {
	order, err := s.loadOrder(tenantID, orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order.PaymentStatus = models.PaymentStatusPaid
	if order.PaidAt == nil {
		order.PaidAt = &now
	}
	if err := s.db.Save(order).Error; err != nil {
		return nil, err
	}

	if method == "" {
		method = "cash"
	}

	var payment models.Payment
	err = s.db.Where("order_id = ?", order.ID).First(&payment).Error
	switch {
	case err == nil:
		payment.Amount = amount
		payment.Method = method
		payment.Status = models.PaymentRecordCompleted
		if payment.PaidAt == nil {
			payment.PaidAt = order.PaidAt
		}
		err = s.db.Save(&payment).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		payment = models.Payment{
			TenantID:    tenantID,
			OrderID:     order.ID,
			Amount:      amount,
			Method:      method,
			Status:      models.PaymentRecordCompleted,
			ReferenceID: uuid.NewString(),
			PaidAt:      order.PaidAt,
		}
		err = s.db.Create(&payment).Error
	}
	if err != nil {
		return nil, err
	}

	kds.BroadcastOrderEvent(kds.EventOrderUpdated, tenantID, order.ID, order)
	return order, nil
}

// DeleteOrder soft-deletes an order. Only pending and cancelled orders
// qualify; the tombstone keeps the row auditable while excluding it
// from every future read.
func (s *LifecycleService) DeleteOrder(tenantID, orderID uint, reason string) error {
	order, err := s.loadOrder(tenantID, orderID)
	if err != nil {
		return err
	}

	if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusCancelled {
		return ErrOrderNotDeletable
	}

	now := time.Now()
	order.Status = models.OrderStatusCancelled
	order.CancelledAt = &now
	order.CancellationReason = reason
	if err := s.db.Save(order).Error; err != nil {
		return err
	}

	s.releaseTable(order)

	if err := s.db.Delete(order).Error; err != nil {
		return err
	}

	kds.BroadcastOrderEvent(kds.EventOrderDeleted, tenantID, order.ID, nil)
	return nil
}

// refreshCustomerStats recomputes the customer's aggregates from all
// completed orders. Full recomputation keeps the numbers self-healing
// against any previously missed update.
func (s *LifecycleService) refreshCustomerStats(tenantID, customerID uint) {
	var stats struct {
		TotalOrders int
		TotalSpent  float64
	}
	err := s.db.Model(&models.Order{}).
		Select("COUNT(*) as total_orders, COALESCE(SUM(total_amount), 0) as total_spent").
		Where("tenant_id = ? AND customer_id = ? AND status = ?", tenantID, customerID, models.OrderStatusCompleted).
		Scan(&stats).Error
	if err != nil {
		utils.ErrorLogger.Printf("refresh stats for customer %d: %v", customerID, err)
		return
	}

	// MAX(completed_at) scans as a raw string on some drivers, so the
	// latest timestamp comes from a column-typed read instead.
	var lastOrder *time.Time
	var latest models.Order
	err = s.db.Where("tenant_id = ? AND customer_id = ? AND status = ?", tenantID, customerID, models.OrderStatusCompleted).
		Order("completed_at DESC").First(&latest).Error
	switch {
	case err == nil:
		lastOrder = latest.CompletedAt
	case !errors.Is(err, gorm.ErrRecordNotFound):
		utils.ErrorLogger.Printf("refresh stats for customer %d: %v", customerID, err)
		return
	}

	err = s.db.Model(&models.Customer{}).
		Where("id = ? AND tenant_id = ?", customerID, tenantID).
		Updates(map[string]interface{}{
			"total_orders":    stats.TotalOrders,
			"total_spent":     stats.TotalSpent,
			"last_order_date": lastOrder,
		}).Error
	if err != nil {
		utils.ErrorLogger.Printf("save stats for customer %d: %v", customerID, err)
	}
}

// releaseTable frees the order's table. Best-effort: tables are loose
// identifiers, a missing row is tolerated.
func (s *LifecycleService) releaseTable(order *models.Order) {
	if order.TableID == nil {
		return
	}
	err := s.db.Model(&models.Table{}).
		Where("id = ? AND tenant_id = ?", *order.TableID, order.TenantID).
		UpdateColumn("status", models.TableAvailable).Error
	if err != nil {
		utils.ErrorLogger.Printf("release table %d for order %d: %v", *order.TableID, order.ID, err)
	}
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
