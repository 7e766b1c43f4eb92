package services

import (
	"errors"
	"fmt"
	"strings"
)

// Client errors: the caller's input is wrong and the message tells POS
// staff what to fix.
var (
	ErrEmptyCart         = errors.New("order must contain at least one item")
	ErrInvalidOrderType  = errors.New("order type must be dine_in, takeaway or delivery")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderAlreadyPaid  = errors.New("order is already paid and can no longer be modified")
	ErrOrderNotDeletable = errors.New("only pending or cancelled orders can be deleted")
	ErrDeliveryNotFound  = errors.New("delivery not found")
)

// Coupon validation errors, one per failure class.
var (
	ErrCouponNotFound     = errors.New("coupon not found")
	ErrCouponInactive     = errors.New("coupon is not active")
	ErrCouponExpired      = errors.New("coupon has expired")
	ErrCouponNotYetValid  = errors.New("coupon is not valid yet")
	ErrCouponLimitReached = errors.New("coupon usage limit has been reached")
	ErrCouponAlreadyUsed  = errors.New("coupon has already been used by this customer")
	ErrCouponAmountTooLow = errors.New("order amount is less than the coupon value")
)

// CouponBelowMinimumError reports the minimum the order must reach.
type CouponBelowMinimumError struct {
	Minimum float64
}

func (e *CouponBelowMinimumError) Error() string {
	return fmt.Sprintf("order amount is below the coupon minimum of %.2f", e.Minimum)
}

// FoodItemNotFoundError aborts pricing when a cart line references an
// unknown or inactive food item.
type FoodItemNotFoundError struct {
	FoodItemID uint
}

func (e *FoodItemNotFoundError) Error() string {
	return fmt.Sprintf("food item %d not found", e.FoodItemID)
}

// InsufficientStockError lists every ingredient that cannot cover the
// cart, with the quantities staff need to see.
type InsufficientStockError struct {
	Items []InsufficientStock
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Items))
	for _, it := range e.Items {
		parts = append(parts, fmt.Sprintf("%s (Available: %g, Required: %g)",
			it.IngredientName, it.Available, it.Required))
	}
	return "insufficient stock: " + strings.Join(parts, ", ")
}

// DeductionFailedError is returned when stock deduction fails after the
// order was already persisted; the order has been cancelled by then.
type DeductionFailedError struct {
	Cause error
}

func (e *DeductionFailedError) Error() string {
	return fmt.Sprintf("stock deduction failed and the order was cancelled: %v", e.Cause)
}

func (e *DeductionFailedError) Unwrap() error { return e.Cause }

// InvalidTransitionError names the states the order can actually move to.
type InvalidTransitionError struct {
	From    string
	To      string
	Allowed []string
}

func (e *InvalidTransitionError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("cannot transition order from %q to %q: %q is a terminal status", e.From, e.To, e.From)
	}
	return fmt.Sprintf("cannot transition order from %q to %q (allowed: %s)",
		e.From, e.To, strings.Join(e.Allowed, ", "))
}
