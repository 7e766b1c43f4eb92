package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
	"github.com/yudharma/resto-pos/services"
	"github.com/yudharma/resto-pos/utils"
)

type OrderController struct {
	DB        *gorm.DB
	Orders    *services.OrderService
	Lifecycle *services.LifecycleService
}

func NewOrderController(db *gorm.DB, orders *services.OrderService, lifecycle *services.LifecycleService) *OrderController {
	return &OrderController{DB: db, Orders: orders, Lifecycle: lifecycle}
}

// CreateOrder -> run the full creation pipeline
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.CreateOrder(tenantID(c), actorID(c), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetAllOrders -> list orders with optional filters
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	filter := services.OrderFilter{
		Status:    c.Query("status"),
		OrderType: c.Query("order_type"),
	}
	if branchStr := c.Query("branch_id"); branchStr != "" {
		if id, err := strconv.ParseUint(branchStr, 10, 32); err == nil {
			branchID := uint(id)
			filter.BranchID = &branchID
		}
	}
	if fromStr := c.Query("date_from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			filter.DateFrom = &from
		}
	}
	if toStr := c.Query("date_to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			end := to.AddDate(0, 0, 1)
			filter.DateTo = &end
		}
	}

	orders, err := oc.Orders.ListOrders(tenantID(c), filter)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> hydrated detail of one order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.GetOrder(tenantID(c), uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrder -> replace the item set of an unpaid order
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req services.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.UpdateOrder(tenantID(c), actorID(c), uint(id), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// UpdateOrderStatus -> drive the status machine
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Lifecycle.UpdateStatus(tenantID(c), uint(id), req.Status, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// MarkOrderPaid -> flip payment status, upsert the payment record
func (oc *OrderController) MarkOrderPaid(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Amount float64 `json:"amount"`
		Method string  `json:"method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Lifecycle.MarkPaid(tenantID(c), uint(id), req.Amount, req.Method)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order marked as paid", order)
}

// DeleteOrder -> soft delete, pending/cancelled only
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)

	if err := oc.Lifecycle.DeleteOrder(tenantID(c), uint(id), req.Reason); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": id})
}

// GetKitchenDisplay -> active orders for the kitchen, oldest first
func (oc *OrderController) GetKitchenDisplay(c *gin.Context) {
	orders, err := oc.Orders.KitchenOrders(tenantID(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kitchen display orders", orders)
}

// GetOrderPayments -> payment records of one order
func (oc *OrderController) GetOrderPayments(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var payments []models.Payment
	if err := oc.DB.Where("tenant_id = ? AND order_id = ?", tenantID(c), id).Find(&payments).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order payments", payments)
}
