package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
	"github.com/yudharma/resto-pos/utils"
)

type BranchController struct {
	DB *gorm.DB
}

func NewBranchController(db *gorm.DB) *BranchController {
	return &BranchController{DB: db}
}

// GetAllBranches
func (bc *BranchController) GetAllBranches(c *gin.Context) {
	var branches []models.Branch
	if err := bc.DB.Where("tenant_id = ?", tenantID(c)).Order("created_at asc").Find(&branches).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of branches", branches)
}

// CreateBranch
func (bc *BranchController) CreateBranch(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Code    string `json:"code" binding:"required"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	branch := models.Branch{
		TenantID: tenantID(c),
		Name:     req.Name,
		Code:     req.Code,
		Address:  req.Address,
		Phone:    req.Phone,
		IsActive: true,
	}
	if err := bc.DB.Create(&branch).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Branch created", branch)
}

// UpdateBranch
func (bc *BranchController) UpdateBranch(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("branch_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var branch models.Branch
	if err := bc.DB.Where("tenant_id = ?", tenantID(c)).First(&branch, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Code     *string `json:"code"`
		Address  *string `json:"address"`
		Phone    *string `json:"phone"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Code != nil {
		branch.Code = *req.Code
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}
	if req.IsActive != nil {
		branch.IsActive = *req.IsActive
	}

	if err := bc.DB.Save(&branch).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Branch updated", branch)
}

// GetBranchCounters
func (bc *BranchController) GetBranchCounters(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("branch_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var counters []models.Counter
	if err := bc.DB.Where("tenant_id = ? AND branch_id = ?", tenantID(c), id).Find(&counters).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of counters", counters)
}

// CreateCounter
func (bc *BranchController) CreateCounter(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("branch_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var branch models.Branch
	if err := bc.DB.Where("tenant_id = ?", tenantID(c)).First(&branch, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	counter := models.Counter{
		TenantID: tenantID(c),
		BranchID: branch.ID,
		Name:     req.Name,
		IsActive: true,
	}
	if err := bc.DB.Create(&counter).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Counter created", counter)
}
