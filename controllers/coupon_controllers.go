package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
	"github.com/yudharma/resto-pos/services"
	"github.com/yudharma/resto-pos/utils"
)

type CouponController struct {
	DB      *gorm.DB
	Coupons *services.CouponService
}

func NewCouponController(db *gorm.DB, coupons *services.CouponService) *CouponController {
	return &CouponController{DB: db, Coupons: coupons}
}

// GetAllCoupons
func (cc *CouponController) GetAllCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := cc.DB.Where("tenant_id = ?", tenantID(c)).Find(&coupons).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of coupons", coupons)
}

// CreateCoupon -> duplicate codes within a tenant conflict. The active
// and once-per-customer flags default to true when the payload omits
// them but an explicit false sticks.
func (cc *CouponController) CreateCoupon(c *gin.Context) {
	var req struct {
		Code              string     `json:"code"`
		Type              string     `json:"type"`
		Value             float64    `json:"value"`
		MinOrderAmount    float64    `json:"min_order_amount"`
		MaxDiscountAmount float64    `json:"max_discount_amount"`
		UsageLimit        int        `json:"usage_limit"`
		OncePerCustomer   *bool      `json:"once_per_customer"`
		IsActive          *bool      `json:"is_active"`
		StartDate         *time.Time `json:"start_date"`
		EndDate           *time.Time `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Code == "" {
		utils.RespondError(c, http.StatusBadRequest, &CustomError{"coupon code is required"})
		return
	}
	if req.Type != models.CouponPercentage && req.Type != models.CouponFixed {
		utils.RespondError(c, http.StatusBadRequest, &CustomError{"coupon type must be percentage or fixed"})
		return
	}

	coupon := models.Coupon{
		TenantID:          tenantID(c),
		Code:              strings.ToUpper(strings.TrimSpace(req.Code)),
		Type:              req.Type,
		Value:             req.Value,
		MinOrderAmount:    req.MinOrderAmount,
		MaxDiscountAmount: req.MaxDiscountAmount,
		UsageLimit:        req.UsageLimit,
		OncePerCustomer:   true,
		IsActive:          true,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
	}
	if req.OncePerCustomer != nil {
		coupon.OncePerCustomer = *req.OncePerCustomer
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	var existing models.Coupon
	err := cc.DB.Where("tenant_id = ? AND code = ?", coupon.TenantID, coupon.Code).First(&existing).Error
	if err == nil {
		utils.RespondError(c, http.StatusConflict, &CustomError{"a coupon with this code already exists"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := cc.DB.Create(&coupon).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Coupon created", coupon)
}

// UpdateCoupon
func (cc *CouponController) UpdateCoupon(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("coupon_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var coupon models.Coupon
	if err := cc.DB.Where("tenant_id = ?", tenantID(c)).First(&coupon, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Value             *float64 `json:"value"`
		MinOrderAmount    *float64 `json:"min_order_amount"`
		MaxDiscountAmount *float64 `json:"max_discount_amount"`
		UsageLimit        *int     `json:"usage_limit"`
		OncePerCustomer   *bool    `json:"once_per_customer"`
		IsActive          *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Value != nil {
		coupon.Value = *req.Value
	}
	if req.MinOrderAmount != nil {
		coupon.MinOrderAmount = *req.MinOrderAmount
	}
	if req.MaxDiscountAmount != nil {
		coupon.MaxDiscountAmount = *req.MaxDiscountAmount
	}
	if req.UsageLimit != nil {
		coupon.UsageLimit = *req.UsageLimit
	}
	if req.OncePerCustomer != nil {
		coupon.OncePerCustomer = *req.OncePerCustomer
	}
	if req.IsActive != nil {
		coupon.IsActive = *req.IsActive
	}

	if err := cc.DB.Save(&coupon).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Coupon updated", coupon)
}

// DeleteCoupon -> soft delete; usage history stays auditable
func (cc *CouponController) DeleteCoupon(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("coupon_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result := cc.DB.Where("tenant_id = ?", tenantID(c)).Delete(&models.Coupon{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, gorm.ErrRecordNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Coupon deleted", gin.H{"coupon_id": id})
}

// ValidateCoupon -> dry-run a code against an amount before checkout
func (cc *CouponController) ValidateCoupon(c *gin.Context) {
	var req struct {
		Code       string  `json:"code" binding:"required"`
		Subtotal   float64 `json:"subtotal" binding:"required"`
		CustomerID *uint   `json:"customer_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	discount, couponID, err := cc.Coupons.Validate(tenantID(c), req.Code, req.Subtotal, req.CustomerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Coupon is valid", gin.H{
		"coupon_id": couponID,
		"discount":  discount,
	})
}
