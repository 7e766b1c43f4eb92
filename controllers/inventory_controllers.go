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

type InventoryController struct {
	DB        *gorm.DB
	Inventory *services.InventoryService
}

func NewInventoryController(db *gorm.DB, inventory *services.InventoryService) *InventoryController {
	return &InventoryController{DB: db, Inventory: inventory}
}

// GetAllIngredients
func (ic *InventoryController) GetAllIngredients(c *gin.Context) {
	var ingredients []models.Ingredient
	if err := ic.DB.Where("tenant_id = ?", tenantID(c)).Order("name asc").Find(&ingredients).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of ingredients", ingredients)
}

// CreateIngredient
func (ic *InventoryController) CreateIngredient(c *gin.Context) {
	var req struct {
		Name           string  `json:"name" binding:"required"`
		Unit           string  `json:"unit" binding:"required"`
		Stock          float64 `json:"stock"`
		AlertThreshold float64 `json:"alert_threshold"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ingredient := models.Ingredient{
		TenantID:       tenantID(c),
		Name:           req.Name,
		Unit:           req.Unit,
		Stock:          req.Stock,
		AlertThreshold: req.AlertThreshold,
	}
	if err := ic.DB.Create(&ingredient).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Ingredient created", ingredient)
}

// AdjustStock -> manual restock or correction, audited as a movement
func (ic *InventoryController) AdjustStock(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("ingredient_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Change float64 `json:"change" binding:"required"`
		Reason string  `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reason := req.Reason
	if reason == "" {
		if req.Change > 0 {
			reason = models.StockReasonRestock
		} else {
			reason = models.StockReasonAdjustment
		}
	}

	ingredient, err := ic.Inventory.AdjustStock(tenantID(c), actorID(c), uint(id), req.Change, reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Stock adjusted", ingredient)
}

// GetLowStock -> ingredients at or below their alert threshold
func (ic *InventoryController) GetLowStock(c *gin.Context) {
	ingredients, err := ic.Inventory.LowStock(tenantID(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Low stock ingredients", ingredients)
}

// GetStockMovements -> audit trail, newest first
func (ic *InventoryController) GetStockMovements(c *gin.Context) {
	q := ic.DB.Where("tenant_id = ?", tenantID(c))
	if ingredientStr := c.Query("ingredient_id"); ingredientStr != "" {
		q = q.Where("ingredient_id = ?", ingredientStr)
	}

	var movements []models.StockMovement
	if err := q.Order("created_at desc").Limit(200).Find(&movements).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Stock movements", movements)
}

// ValidateStock -> dry-run a cart against current stock
func (ic *InventoryController) ValidateStock(c *gin.Context) {
	var req struct {
		Items []services.StockRequirement `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	validation, err := ic.Inventory.ValidateStockForOrder(tenantID(c), req.Items)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Stock validation result", validation)
}
