package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
	"github.com/yudharma/resto-pos/utils"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// GetAllCustomers
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	q := cc.DB.Preload("Addresses").Where("tenant_id = ?", tenantID(c))
	if search := c.Query("search"); search != "" {
		q = q.Where("name LIKE ? OR phone LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var customers []models.Customer
	if err := q.Order("name asc").Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

// CreateCustomer
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer := models.Customer{
		TenantID: tenantID(c),
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
	}
	if err := cc.DB.Create(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New customer created (ID=%d) for tenant %d", customer.ID, customer.TenantID)
	utils.RespondJSON(c, http.StatusCreated, "Customer created", customer)
}

// GetCustomerByID -> customer with addresses and aggregate stats
func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("customer_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := cc.DB.Preload("Addresses").Where("tenant_id = ?", tenantID(c)).First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}

// GetCustomerOrders -> the customer's order history, newest first
func (cc *CustomerController) GetCustomerOrders(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("customer_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var orders []models.Order
	err = cc.DB.Preload("Items").
		Where("tenant_id = ? AND customer_id = ?", tenantID(c), id).
		Order("placed_at desc").
		Find(&orders).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer orders", orders)
}

// CreateCustomerAddress
func (cc *CustomerController) CreateCustomerAddress(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("customer_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := cc.DB.Where("tenant_id = ?", tenantID(c)).First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Label       string `json:"label"`
		AddressLine string `json:"address_line" binding:"required"`
		City        string `json:"city"`
		Phone       string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	address := models.CustomerAddress{
		CustomerID:  customer.ID,
		Label:       req.Label,
		AddressLine: req.AddressLine,
		City:        req.City,
		Phone:       req.Phone,
	}
	if err := cc.DB.Create(&address).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Address created", address)
}

// UpdateCustomer
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("customer_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := cc.DB.Where("tenant_id = ?", tenantID(c)).First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name  *string `json:"name"`
		Phone *string `json:"phone"`
		Email *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}

	if err := cc.DB.Save(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer updated", customer)
}
