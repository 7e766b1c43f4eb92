package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
)

func seedOrder(t *testing.T, db *gorm.DB, status string) *models.Order {
	t.Helper()
	order := models.Order{
		TenantID:    testTenant,
		BranchID:    1,
		OrderNumber: "MAIN-20260101-0001",
		OrderType:   models.OrderTypeDineIn,
		Status:      status,
	}
	require.NoError(t, db.Create(&order).Error)
	return &order
}

func TestUpdateStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	lifecycle := NewLifecycleService(db)

	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{models.OrderStatusPending, models.OrderStatusPreparing, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusPending, models.OrderStatusReady, false},
		{models.OrderStatusPreparing, models.OrderStatusReady, true},
		{models.OrderStatusPreparing, models.OrderStatusServed, false},
		{models.OrderStatusReady, models.OrderStatusServed, true},
		{models.OrderStatusReady, models.OrderStatusPending, false},
		{models.OrderStatusServed, models.OrderStatusCompleted, true},
		{models.OrderStatusServed, models.OrderStatusCancelled, true},
		{models.OrderStatusCompleted, models.OrderStatusPending, false},
		{models.OrderStatusCompleted, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusPending, false},
	}

	for _, tc := range cases {
		order := seedOrder(t, db, tc.from)
		_, err := lifecycle.UpdateStatus(testTenant, order.ID, tc.to, "")
		if tc.allowed {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
		} else {
			var invalid *InvalidTransitionError
			assert.True(t, errors.As(err, &invalid), "%s -> %s", tc.from, tc.to)
		}
	}
}

func TestUpdateStatusInvalidReportsAllowed(t *testing.T) {
	db := newTestDB(t)
	lifecycle := NewLifecycleService(db)
	order := seedOrder(t, db, models.OrderStatusReady)

	_, err := lifecycle.UpdateStatus(testTenant, order.ID, models.OrderStatusPending, "")

	var invalid *InvalidTransitionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, models.OrderStatusReady, invalid.From)
	assert.Equal(t, models.OrderStatusPending, invalid.To)
	assert.Equal(t, []string{models.OrderStatusServed, models.OrderStatusCancelled}, invalid.Allowed)
}

func TestUpdateStatusStampsTimes(t *testing.T) {
	db := newTestDB(t)
	lifecycle := NewLifecycleService(db)

	order := seedOrder(t, db, models.OrderStatusServed)
	updated, err := lifecycle.UpdateStatus(testTenant, order.ID, models.OrderStatusCompleted, "")
	require.NoError(t, err)
	assert.NotNil(t, updated.CompletedAt)

	order = seedOrder(t, db, models.OrderStatusPending)
	updated, err = lifecycle.UpdateStatus(testTenant, order.ID, models.OrderStatusCancelled, "customer left")
	require.NoError(t, err)
	assert.NotNil(t, updated.CancelledAt)
	assert.Equal(t, "customer left", updated.CancellationReason)
}

func TestCompletingOrderRefreshesCustomerStats(t *testing.T) {
	db := newTestDB(t)
	lifecycle := NewLifecycleService(db)

	customer := models.Customer{TenantID: testTenant, Name: "Budi"}
	require.NoError(t, db.Create(&customer).Error)

	order := models.Order{
		TenantID:    testTenant,
		BranchID:    1,
		OrderNumber: "MAIN-20260101-0001",
		OrderType:   models.OrderTypeDineIn,
		Status:      models.OrderStatusServed,
		Subtotal:    80,
		TotalAmount: 80,
		CustomerID:  &customer.ID,
	}
	require.NoError(t, db.Create(&order).Error)

	_, err := lifecycle.UpdateStatus(testTenant, order.ID, models.OrderStatusCompleted, "")
	require.NoError(t, err)

	var reloaded models.Customer
	require.NoError(t, db.First(&reloaded, customer.ID).Error)
	assert.Equal(t, 1, reloaded.TotalOrders)
	assert.Equal(t, 80.0, reloaded.TotalSpent)
	assert.NotNil(t, reloaded.LastOrderDate)

	second := models.Order{
		TenantID:    testTenant,
		BranchID:    1,
		OrderNumber: "MAIN-20260101-0002",
		OrderType:   models.OrderTypeDineIn,
		Status:      models.OrderStatusServed,
		Subtotal:    20,
		TotalAmount: 20,
		CustomerID:  &customer.ID,
	}
	require.NoError(t, db.Create(&second).Error)
	_, err = lifecycle.UpdateStatus(testTenant, second.ID, models.OrderStatusCompleted, "")
	require.NoError(t, err)

	first := *reloaded.LastOrderDate
	require.NoError(t, db.First(&reloaded, customer.ID).Error)
	assert.Equal(t, 2, reloaded.TotalOrders)
	assert.Equal(t, 100.0, reloaded.TotalSpent)
	require.NotNil(t, reloaded.LastOrderDate)
	assert.False(t, reloaded.LastOrderDate.Before(first))
}

func TestCompletingOrderReleasesTable(t *testing.T) {
	db := newTestDB(t)
	lifecycle := NewLifecycleService(db)

	table := models.Table{TenantID: testTenant, BranchID: 1, TableNumber: "T1", Status: models.TableOccupied}
	require.NoError(t, db.Create(&table).Error)

	order := models.Order{
		TenantID:    testTenant,
		BranchID:    1,
		OrderNumber: "MAIN-20260101-0001",
		OrderType:   models.OrderTypeDineIn,
		Status:      models.OrderStatusServed,
		TableID:     &table.ID,
	}
	require.NoError(t, db.Create(&order).Error)

	_, err := lifecycle.UpdateStatus(testTenant, order.ID, models.OrderStatusCompleted, "")
	require.NoError(t, err)

	var reloaded models.Table
	require.NoError(t, db.First(&reloaded, table.ID).Error)
	assert.Equal(t, models.TableAvailable, reloaded.Status)
}

func TestMarkPaidStampsOnce(t *testing.T) {
	db := newTestDB(t)
	lifecycle := NewLifecycleService(db)
	order := seedOrder(t, db, models.OrderStatusPending)

	paid, err := lifecycle.MarkPaid(testTenant, order.ID, 50, "cash")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, paid.PaymentStatus)
	require.NotNil(t, paid.PaidAt)
	firstPaidAt := *paid.PaidAt

	paid, err = lifecycle.MarkPaid(testTenant, order.ID, 50, "card")
	require.NoError(t, err)
	require.NotNil(t, paid.PaidAt)
	assert.True(t, paid.PaidAt.Equal(firstPaidAt))

	// Still a single payment record, updated in place.
	var payments []models.Payment
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.Equal(t, models.PaymentRecordCompleted, payments[0].Status)
	assert.Equal(t, "card", payments[0].Method)
}

func TestMarkPaidDefaultsToCash(t *testing.T) {
	db := newTestDB(t)
	lifecycle := NewLifecycleService(db)
	order := seedOrder(t, db, models.OrderStatusPending)

	_, err := lifecycle.MarkPaid(testTenant, order.ID, 25, "")
	require.NoError(t, err)

	var payment models.Payment
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&payment).Error)
	assert.Equal(t, "cash", payment.Method)
}

func TestDeleteOrderRules(t *testing.T) {
	db := newTestDB(t)
	lifecycle := NewLifecycleService(db)

	pending := seedOrder(t, db, models.OrderStatusPending)
	require.NoError(t, lifecycle.DeleteOrder(testTenant, pending.ID, "mistake"))

	var tombstone models.Order
	require.NoError(t, db.Unscoped().First(&tombstone, pending.ID).Error)
	assert.Equal(t, models.OrderStatusCancelled, tombstone.Status)
	assert.Equal(t, "mistake", tombstone.CancellationReason)
	assert.True(t, tombstone.DeletedAt.Valid)

	preparing := seedOrder(t, db, models.OrderStatusPreparing)
	err := lifecycle.DeleteOrder(testTenant, preparing.ID, "")
	assert.ErrorIs(t, err, ErrOrderNotDeletable)

	completed := seedOrder(t, db, models.OrderStatusCompleted)
	err = lifecycle.DeleteOrder(testTenant, completed.ID, "")
	assert.ErrorIs(t, err, ErrOrderNotDeletable)

	cancelled := seedOrder(t, db, models.OrderStatusCancelled)
	assert.NoError(t, lifecycle.DeleteOrder(testTenant, cancelled.ID, ""))
}

func TestLifecycleScopedToTenant(t *testing.T) {
	db := newTestDB(t)
	lifecycle := NewLifecycleService(db)
	order := seedOrder(t, db, models.OrderStatusPending)

	_, err := lifecycle.UpdateStatus(2, order.ID, models.OrderStatusPreparing, "")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
