package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
	"github.com/yudharma/resto-pos/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Register a new user. The first user of a new tenant registers with a
// tenant name and gets the admin role.
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Name       string `json:"name" binding:"required"`
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required,min=8"`
		Role       string `json:"role"`
		TenantID   *uint  `json:"tenant_id"`
		TenantName string `json:"tenant_name"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	role := req.Role
	var tenantIDValue uint
	if req.TenantID != nil {
		tenantIDValue = *req.TenantID
		if role == "" {
			role = "cashier"
		}
	} else {
		tenant := models.Tenant{Name: req.TenantName, Email: req.Email, IsActive: true}
		if tenant.Name == "" {
			tenant.Name = req.Name
		}
		if err := uc.DB.Create(&tenant).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		tenantIDValue = tenant.ID
		role = "admin"
	}

	user := models.User{
		TenantID: tenantIDValue,
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s (tenant=%d, role=%s)", user.Email, user.TenantID, user.Role)

	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id":   user.ID,
		"tenant_id": user.TenantID,
	})
}

// Login -> return JWT carrying user, tenant and role
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.TenantID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":     token,
		"user_role": strings.ToLower(user.Role),
		"tenant_id": user.TenantID,
	})
}

// Logout -> blacklist the presented token
func (uc *UserController) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString != "" {
		utils.BlacklistToken(tokenString)
	}
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// GetProfile -> the authenticated user
func (uc *UserController) GetProfile(c *gin.Context) {
	var user models.User
	if err := uc.DB.First(&user, actorID(c)).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", gin.H{
		"id":        user.ID,
		"tenant_id": user.TenantID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
	})
}

// GetAllUsers -> tenant-scoped listing, mounted behind the admin role
// middleware.
func (uc *UserController) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := uc.DB.Where("tenant_id = ?", tenantID(c)).Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All users", users)
}
