package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
	"github.com/yudharma/resto-pos/utils"
)

// deliveryTransitions mirrors the order machine for the delivery leg.
// cancelled -> pending is the explicit restore path.
var deliveryTransitions = map[string][]string{
	models.DeliveryPending:        {models.DeliveryAssigned, models.DeliveryCancelled},
	models.DeliveryAssigned:       {models.DeliveryOutForDelivery, models.DeliveryCancelled},
	models.DeliveryOutForDelivery: {models.DeliveryDelivered, models.DeliveryCancelled},
	models.DeliveryDelivered:      {},
	models.DeliveryCancelled:      {models.DeliveryPending},
}

// DeliveryService implements DeliveryProvider and the delivery status
// machine. Completing a delivery completes the owning order.
type DeliveryService struct {
	db        *gorm.DB
	lifecycle *LifecycleService
}

func NewDeliveryService(db *gorm.DB, lifecycle *LifecycleService) *DeliveryService {
	return &DeliveryService{db: db, lifecycle: lifecycle}
}

// CreateDeliveryForOrder writes the delivery record for a delivery
// order. The order keeps standing if this fails; the caller only logs.
func (s *DeliveryService) CreateDeliveryForOrder(tenantID, orderID uint, customerAddressID *uint, charge float64, notes string) (*models.Delivery, error) {
	delivery := models.Delivery{
		TenantID:          tenantID,
		OrderID:           orderID,
		CustomerAddressID: customerAddressID,
		Status:            models.DeliveryPending,
		Charge:            charge,
		Notes:             notes,
	}
	if err := s.db.Create(&delivery).Error; err != nil {
		return nil, err
	}
	return &delivery, nil
}

func (s *DeliveryService) loadDelivery(tenantID, deliveryID uint) (*models.Delivery, error) {
	var delivery models.Delivery
	err := s.db.Where("tenant_id = ?", tenantID).First(&delivery, deliveryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeliveryNotFound
		}
		return nil, err
	}
	return &delivery, nil
}

// AssignRider moves a pending delivery to assigned.
func (s *DeliveryService) AssignRider(tenantID, deliveryID, riderID uint) (*models.Delivery, error) {
	delivery, err := s.loadDelivery(tenantID, deliveryID)
	if err != nil {
		return nil, err
	}
	if !deliveryTransitionAllowed(delivery.Status, models.DeliveryAssigned) {
		return nil, &InvalidTransitionError{
			From:    delivery.Status,
			To:      models.DeliveryAssigned,
			Allowed: deliveryTransitions[delivery.Status],
		}
	}

	now := time.Now()
	delivery.Status = models.DeliveryAssigned
	delivery.RiderID = &riderID
	delivery.AssignedAt = &now
	if err := s.db.Save(delivery).Error; err != nil {
		return nil, err
	}
	return delivery, nil
}

// UpdateStatus moves the delivery along its machine. A restore
// (cancelled -> pending) clears the previous assignment; delivered
// stamps the time and completes the owning order.
func (s *DeliveryService) UpdateStatus(tenantID, deliveryID uint, newStatus string) (*models.Delivery, error) {
	delivery, err := s.loadDelivery(tenantID, deliveryID)
	if err != nil {
		return nil, err
	}

	if !deliveryTransitionAllowed(delivery.Status, newStatus) {
		return nil, &InvalidTransitionError{
			From:    delivery.Status,
			To:      newStatus,
			Allowed: deliveryTransitions[delivery.Status],
		}
	}

	now := time.Now()
	delivery.Status = newStatus

	switch newStatus {
	case models.DeliveryPending:
		delivery.RiderID = nil
		delivery.AssignedAt = nil
	case models.DeliveryDelivered:
		delivery.DeliveredAt = &now
	}

	if err := s.db.Save(delivery).Error; err != nil {
		return nil, err
	}

	if newStatus == models.DeliveryDelivered {
		s.completeOwningOrder(tenantID, delivery.OrderID)
	}
	return delivery, nil
}

// completeOwningOrder walks the order to completed when the delivery
// lands. Intermediate hops go through the same machine so the side
// effects (stats, table release) still fire.
func (s *DeliveryService) completeOwningOrder(tenantID, orderID uint) {
	order, err := s.lifecycle.loadOrder(tenantID, orderID)
	if err != nil {
		utils.ErrorLogger.Printf("complete order %d after delivery: %v", orderID, err)
		return
	}

	path := map[string]string{
		models.OrderStatusPending:   models.OrderStatusPreparing,
		models.OrderStatusPreparing: models.OrderStatusReady,
		models.OrderStatusReady:     models.OrderStatusServed,
		models.OrderStatusServed:    models.OrderStatusCompleted,
	}
	for order.Status != models.OrderStatusCompleted {
		next, ok := path[order.Status]
		if !ok {
			return // cancelled or unknown, nothing to do
		}
		order, err = s.lifecycle.UpdateStatus(tenantID, orderID, next, "")
		if err != nil {
			utils.ErrorLogger.Printf("complete order %d after delivery: %v", orderID, err)
			return
		}
	}
}

// ListByStatus returns the tenant's deliveries, optionally filtered.
func (s *DeliveryService) ListByStatus(tenantID uint, status string) ([]models.Delivery, error) {
	q := s.db.Preload("CustomerAddress").Preload("Rider").Where("tenant_id = ?", tenantID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var deliveries []models.Delivery
	err := q.Order("created_at desc").Find(&deliveries).Error
	return deliveries, err
}

func deliveryTransitionAllowed(from, to string) bool {
	for _, allowed := range deliveryTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
