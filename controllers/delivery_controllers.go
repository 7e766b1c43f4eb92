package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
	"github.com/yudharma/resto-pos/services"
	"github.com/yudharma/resto-pos/utils"
)

type DeliveryController struct {
	DB         *gorm.DB
	Deliveries *services.DeliveryService
}

func NewDeliveryController(db *gorm.DB, deliveries *services.DeliveryService) *DeliveryController {
	return &DeliveryController{DB: db, Deliveries: deliveries}
}

// GetAllDeliveries -> list, optionally filtered by status
func (dc *DeliveryController) GetAllDeliveries(c *gin.Context) {
	deliveries, err := dc.Deliveries.ListByStatus(tenantID(c), c.Query("status"))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of deliveries", deliveries)
}

// AssignRider -> pending -> assigned
func (dc *DeliveryController) AssignRider(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("delivery_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		RiderID uint `json:"rider_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	delivery, err := dc.Deliveries.AssignRider(tenantID(c), uint(id), req.RiderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Rider assigned", delivery)
}

// UpdateDeliveryStatus -> drive the delivery machine
func (dc *DeliveryController) UpdateDeliveryStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("delivery_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	delivery, err := dc.Deliveries.UpdateStatus(tenantID(c), uint(id), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Delivery status updated", delivery)
}

// RestoreDelivery -> cancelled -> pending, clearing the old assignment
func (dc *DeliveryController) RestoreDelivery(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("delivery_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	delivery, err := dc.Deliveries.UpdateStatus(tenantID(c), uint(id), models.DeliveryPending)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Delivery restored", delivery)
}
