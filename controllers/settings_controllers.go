package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
	"github.com/yudharma/resto-pos/services"
	"github.com/yudharma/resto-pos/utils"
)

type SettingsController struct {
	DB       *gorm.DB
	Settings *services.SettingsService
}

func NewSettingsController(db *gorm.DB, settings *services.SettingsService) *SettingsController {
	return &SettingsController{DB: db, Settings: settings}
}

// GetSettings -> tenant settings, created with defaults on first read
func (sc *SettingsController) GetSettings(c *gin.Context) {
	settings, err := sc.Settings.GetSettings(tenantID(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tenant settings", settings)
}

// UpdateSettings -> mounted behind the admin role middleware
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var req models.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	settings, err := sc.Settings.UpdateSettings(tenantID(c), &req)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Settings updated", settings)
}

// GetTaxRules
func (sc *SettingsController) GetTaxRules(c *gin.Context) {
	var rules []models.TaxRule
	if err := sc.DB.Where("tenant_id = ?", tenantID(c)).Find(&rules).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tax rules", rules)
}

// CreateTaxRule -> mounted behind the admin role middleware
func (sc *SettingsController) CreateTaxRule(c *gin.Context) {
	var req models.TaxRule
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	req.ID = 0
	req.TenantID = tenantID(c)
	req.IsActive = true
	if err := sc.DB.Create(&req).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Tax rule created", req)
}
