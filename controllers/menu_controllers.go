package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
	"github.com/yudharma/resto-pos/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllFoodItems -> catalog with variations, add-ons and discounts
func (mc *MenuController) GetAllFoodItems(c *gin.Context) {
	q := mc.DB.Preload("Category").Preload("Variations").Preload("AddOns").Preload("Discounts").
		Where("tenant_id = ?", tenantID(c))
	if categoryStr := c.Query("category_id"); categoryStr != "" {
		q = q.Where("category_id = ?", categoryStr)
	}

	var items []models.FoodItem
	if err := q.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of food items", items)
}

// GetFoodItemByID
func (mc *MenuController) GetFoodItemByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.FoodItem
	err = mc.DB.Preload("Category").Preload("Variations").Preload("AddOns").Preload("Discounts").
		Preload("Recipe").Preload("Recipe.Ingredient").
		Where("tenant_id = ?", tenantID(c)).
		First(&item, id).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food item detail", item)
}

type foodItemRequest struct {
	CategoryID  uint    `json:"category_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
	Variations  []struct {
		Name            string  `json:"name" binding:"required"`
		PriceAdjustment float64 `json:"price_adjustment"`
	} `json:"variations"`
	AddOns []struct {
		Name  string  `json:"name" binding:"required"`
		Price float64 `json:"price"`
	} `json:"add_ons"`
	Recipe []struct {
		IngredientID uint    `json:"ingredient_id" binding:"required"`
		Quantity     float64 `json:"quantity" binding:"required"`
	} `json:"recipe"`
}

// CreateFoodItem -> item plus nested variations, add-ons and recipe
func (mc *MenuController) CreateFoodItem(c *gin.Context) {
	var req foodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.FoodItem{
		TenantID:    tenantID(c),
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	err := mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		for _, v := range req.Variations {
			variation := models.Variation{FoodItemID: item.ID, Name: v.Name, PriceAdjustment: v.PriceAdjustment}
			if err := tx.Create(&variation).Error; err != nil {
				return err
			}
		}
		for _, a := range req.AddOns {
			addOn := models.AddOn{FoodItemID: item.ID, Name: a.Name, Price: a.Price}
			if err := tx.Create(&addOn).Error; err != nil {
				return err
			}
		}
		for _, r := range req.Recipe {
			recipe := models.RecipeItem{FoodItemID: item.ID, IngredientID: r.IngredientID, Quantity: r.Quantity}
			if err := tx.Create(&recipe).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Food item created", item)
}

// UpdateFoodItem -> base fields only; nested sets have their own endpoints
func (mc *MenuController) UpdateFoodItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.FoodItem
	if err := mc.DB.Where("tenant_id = ?", tenantID(c)).First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		CategoryID  *uint    `json:"category_id"`
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
		ImageURL    *string  `json:"image_url"`
		IsActive    *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.CategoryID != nil {
		item.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.ImageURL != nil {
		item.ImageURL = req.ImageURL
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food item updated", item)
}

// DeleteFoodItem -> soft delete; historic order items keep pointing at it
func (mc *MenuController) DeleteFoodItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result := mc.DB.Where("tenant_id = ?", tenantID(c)).Delete(&models.FoodItem{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, gorm.ErrRecordNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food item deleted", gin.H{"item_id": id})
}

// CreateDiscount -> attach a promotional discount to a food item
func (mc *MenuController) CreateDiscount(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.FoodItem
	if err := mc.DB.Where("tenant_id = ?", tenantID(c)).First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name      string     `json:"name"`
		Type      string     `json:"type"`
		Value     float64    `json:"value"`
		IsActive  *bool      `json:"is_active"`
		StartDate *time.Time `json:"start_date"`
		EndDate   *time.Time `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Type != models.DiscountPercentage && req.Type != models.DiscountFixed {
		utils.RespondError(c, http.StatusBadRequest, &CustomError{"discount type must be percentage or fixed"})
		return
	}

	discount := models.Discount{
		TenantID:   tenantID(c),
		FoodItemID: item.ID,
		Name:       req.Name,
		Type:       req.Type,
		Value:      req.Value,
		IsActive:   true,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	if req.IsActive != nil {
		discount.IsActive = *req.IsActive
	}
	if err := mc.DB.Create(&discount).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Discount created", discount)
}

// DeleteDiscount
func (mc *MenuController) DeleteDiscount(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("discount_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result := mc.DB.Where("tenant_id = ?", tenantID(c)).Delete(&models.Discount{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, gorm.ErrRecordNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Discount deleted", gin.H{"discount_id": id})
}
