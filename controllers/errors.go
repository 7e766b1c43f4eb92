package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yudharma/resto-pos/services"
	"github.com/yudharma/resto-pos/utils"
)

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

// tenantID pulls the tenant scope the auth middleware stored.
func tenantID(c *gin.Context) uint {
	v, _ := c.Get("tenant_id")
	id, _ := v.(uint)
	return id
}

// actorID pulls the authenticated user id.
func actorID(c *gin.Context) uint {
	v, _ := c.Get("user_id")
	id, _ := v.(uint)
	return id
}

// respondServiceError maps the service error taxonomy onto HTTP. Client
// errors carry the structured detail staff need to act without support.
func respondServiceError(c *gin.Context, err error) {
	var (
		insufficientErr *services.InsufficientStockError
		transitionErr   *services.InvalidTransitionError
		belowMinErr     *services.CouponBelowMinimumError
		foodNotFoundErr *services.FoodItemNotFoundError
		deductionErr    *services.DeductionFailedError
	)

	switch {
	case errors.As(err, &insufficientErr):
		utils.RespondJSON(c, http.StatusBadRequest, err.Error(), gin.H{
			"insufficient_items": insufficientErr.Items,
		})
	case errors.As(err, &transitionErr):
		utils.RespondJSON(c, http.StatusBadRequest, err.Error(), gin.H{
			"allowed_statuses": transitionErr.Allowed,
		})
	case errors.As(err, &deductionErr):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &belowMinErr),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidOrderType),
		errors.Is(err, services.ErrOrderAlreadyPaid),
		errors.Is(err, services.ErrOrderNotDeletable),
		errors.Is(err, services.ErrCouponInactive),
		errors.Is(err, services.ErrCouponExpired),
		errors.Is(err, services.ErrCouponNotYetValid),
		errors.Is(err, services.ErrCouponLimitReached),
		errors.Is(err, services.ErrCouponAlreadyUsed),
		errors.Is(err, services.ErrCouponAmountTooLow):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &foodNotFoundErr),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrDeliveryNotFound),
		errors.Is(err, services.ErrCouponNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
