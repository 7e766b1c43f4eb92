package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yudharma/resto-pos/models"
)

func TestCouponValidatePercentageWithCap(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Coupon{
		TenantID:          testTenant,
		Code:              "HALF",
		Type:              models.CouponPercentage,
		Value:             50,
		MaxDiscountAmount: 20,
		IsActive:          true,
	}).Error)

	coupons := NewCouponService(db)

	discount, _, err := coupons.Validate(testTenant, "HALF", 30, nil)
	require.NoError(t, err)
	assert.Equal(t, 15.0, discount)

	discount, _, err = coupons.Validate(testTenant, "HALF", 100, nil)
	require.NoError(t, err)
	assert.Equal(t, 20.0, discount)
}

func TestCouponValidateNormalizesCode(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Coupon{
		TenantID: testTenant,
		Code:     "HALF",
		Type:     models.CouponFixed,
		Value:    5,
		IsActive: true,
	}).Error)

	coupons := NewCouponService(db)

	// Codes arrive as cashiers type them.
	discount, _, err := coupons.Validate(testTenant, " half ", 30, nil)
	require.NoError(t, err)
	assert.Equal(t, 5.0, discount)
}

func TestCouponValidateFixed(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Coupon{
		TenantID: testTenant,
		Code:     "TAKE15",
		Type:     models.CouponFixed,
		Value:    15,
		IsActive: true,
	}).Error)

	coupons := NewCouponService(db)

	discount, _, err := coupons.Validate(testTenant, "TAKE15", 40, nil)
	require.NoError(t, err)
	assert.Equal(t, 15.0, discount)

	_, _, err = coupons.Validate(testTenant, "TAKE15", 10, nil)
	assert.ErrorIs(t, err, ErrCouponAmountTooLow)
}

func TestCouponValidateFailureClasses(t *testing.T) {
	db := newTestDB(t)
	coupons := NewCouponService(db)

	_, _, err := coupons.Validate(testTenant, "MISSING", 100, nil)
	assert.ErrorIs(t, err, ErrCouponNotFound)

	require.NoError(t, db.Create(&models.Coupon{
		TenantID: testTenant, Code: "OFF", Type: models.CouponFixed, Value: 5, IsActive: false,
	}).Error)
	_, _, err = coupons.Validate(testTenant, "OFF", 100, nil)
	assert.ErrorIs(t, err, ErrCouponInactive)

	future := time.Now().Add(24 * time.Hour)
	require.NoError(t, db.Create(&models.Coupon{
		TenantID: testTenant, Code: "SOON", Type: models.CouponFixed, Value: 5,
		IsActive: true, StartDate: &future,
	}).Error)
	_, _, err = coupons.Validate(testTenant, "SOON", 100, nil)
	assert.ErrorIs(t, err, ErrCouponNotYetValid)

	past := time.Now().Add(-24 * time.Hour)
	require.NoError(t, db.Create(&models.Coupon{
		TenantID: testTenant, Code: "GONE", Type: models.CouponFixed, Value: 5,
		IsActive: true, EndDate: &past,
	}).Error)
	_, _, err = coupons.Validate(testTenant, "GONE", 100, nil)
	assert.ErrorIs(t, err, ErrCouponExpired)

	require.NoError(t, db.Create(&models.Coupon{
		TenantID: testTenant, Code: "BIG", Type: models.CouponFixed, Value: 5,
		MinOrderAmount: 50, IsActive: true,
	}).Error)
	_, _, err = coupons.Validate(testTenant, "BIG", 40, nil)
	var belowMin *CouponBelowMinimumError
	require.True(t, errors.As(err, &belowMin))
	assert.Equal(t, 50.0, belowMin.Minimum)

	require.NoError(t, db.Create(&models.Coupon{
		TenantID: testTenant, Code: "RARE", Type: models.CouponFixed, Value: 5,
		UsageLimit: 2, UsedCount: 2, IsActive: true,
	}).Error)
	_, _, err = coupons.Validate(testTenant, "RARE", 100, nil)
	assert.ErrorIs(t, err, ErrCouponLimitReached)
}

func TestCouponOncePerCustomer(t *testing.T) {
	db := newTestDB(t)
	coupon := models.Coupon{
		TenantID: testTenant, Code: "ONCE", Type: models.CouponFixed, Value: 5,
		OncePerCustomer: true, IsActive: true,
	}
	require.NoError(t, db.Create(&coupon).Error)

	customerID := uint(7)
	require.NoError(t, db.Create(&models.CouponUsage{
		TenantID: testTenant, CouponID: coupon.ID, OrderID: 1, CustomerID: &customerID,
	}).Error)

	coupons := NewCouponService(db)

	_, _, err := coupons.Validate(testTenant, "ONCE", 100, &customerID)
	assert.ErrorIs(t, err, ErrCouponAlreadyUsed)

	// A different customer, or an anonymous order, still redeems.
	other := uint(8)
	_, _, err = coupons.Validate(testTenant, "ONCE", 100, &other)
	assert.NoError(t, err)
	_, _, err = coupons.Validate(testTenant, "ONCE", 100, nil)
	assert.NoError(t, err)
}

func TestCouponScopedToTenant(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Coupon{
		TenantID: testTenant, Code: "MINE", Type: models.CouponFixed, Value: 5, IsActive: true,
	}).Error)

	coupons := NewCouponService(db)
	_, _, err := coupons.Validate(2, "MINE", 100, nil)
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestRecordUsageBumpsCounter(t *testing.T) {
	db := newTestDB(t)
	coupon := models.Coupon{
		TenantID: testTenant, Code: "COUNT", Type: models.CouponFixed, Value: 5, IsActive: true,
	}
	require.NoError(t, db.Create(&coupon).Error)

	coupons := NewCouponService(db)
	require.NoError(t, coupons.RecordUsage(testTenant, coupon.ID, 42, nil))

	var reloaded models.Coupon
	require.NoError(t, db.First(&reloaded, coupon.ID).Error)
	assert.Equal(t, 1, reloaded.UsedCount)

	var usages int64
	db.Model(&models.CouponUsage{}).Where("coupon_id = ?", coupon.ID).Count(&usages)
	assert.Equal(t, int64(1), usages)
}
