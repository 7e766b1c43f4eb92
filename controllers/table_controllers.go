package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
	"github.com/yudharma/resto-pos/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// GetAllTables
func (tc *TableController) GetAllTables(c *gin.Context) {
	q := tc.DB.Where("tenant_id = ?", tenantID(c))
	if branchStr := c.Query("branch_id"); branchStr != "" {
		q = q.Where("branch_id = ?", branchStr)
	}

	var tables []models.Table
	if err := q.Order("table_number asc").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// CreateTable
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		BranchID    uint   `json:"branch_id" binding:"required"`
		TableNumber string `json:"table_number" binding:"required"`
		Capacity    int    `json:"capacity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	capacity := req.Capacity
	if capacity <= 0 {
		capacity = 4
	}

	table := models.Table{
		TenantID:    tenantID(c),
		BranchID:    req.BranchID,
		TableNumber: req.TableNumber,
		Capacity:    capacity,
		Status:      models.TableAvailable,
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// UpdateTableStatus
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("table_id"))
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
	if req.Status != models.TableAvailable && req.Status != models.TableOccupied {
		utils.RespondError(c, http.StatusBadRequest, &CustomError{"status must be available or occupied"})
		return
	}

	var table models.Table
	if err := tc.DB.Where("tenant_id = ?", tenantID(c)).First(&table, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table.Status = req.Status
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

// DeleteTable
func (tc *TableController) DeleteTable(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("table_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result := tc.DB.Where("tenant_id = ?", tenantID(c)).Delete(&models.Table{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, gorm.ErrRecordNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"table_id": id})
}
