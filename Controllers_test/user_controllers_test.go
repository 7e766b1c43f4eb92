package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/controllers"
	"github.com/yudharma/resto-pos/middlewares"
	"github.com/yudharma/resto-pos/models"
)

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	userCtrl := controllers.NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)

	authed := router.Group("/")
	authed.Use(authAs(1, 1, "admin"))
	authed.GET("/users", middlewares.RequireRole("admin"), userCtrl.GetAllUsers)
	return router
}

func TestRegisterFirstUserCreatesTenant(t *testing.T) {
	db := setupTestDB(t)
	router := setupUserRouter(db)

	w := doJSON(t, router, "POST", "/register", map[string]interface{}{
		"name":        "Owner",
		"email":       "owner@example.com",
		"password":    "supersecret",
		"tenant_name": "Warung Sederhana",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "owner@example.com").First(&user).Error)
	assert.Equal(t, "admin", user.Role)
	assert.NotEqual(t, "supersecret", user.Password)

	var tenant models.Tenant
	require.NoError(t, db.First(&tenant, user.TenantID).Error)
	assert.Equal(t, "Warung Sederhana", tenant.Name)
}

func TestRegisterJoinExistingTenantDefaultsToCashier(t *testing.T) {
	db := setupTestDB(t)
	router := setupUserRouter(db)

	tenant := models.Tenant{Name: "Existing", IsActive: true}
	require.NoError(t, db.Create(&tenant).Error)

	w := doJSON(t, router, "POST", "/register", map[string]interface{}{
		"name":      "Staff",
		"email":     "staff@example.com",
		"password":  "supersecret",
		"tenant_id": tenant.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "staff@example.com").First(&user).Error)
	assert.Equal(t, "cashier", user.Role)
	assert.Equal(t, tenant.ID, user.TenantID)
}

func TestRegisterValidation(t *testing.T) {
	db := setupTestDB(t)
	router := setupUserRouter(db)

	w := doJSON(t, router, "POST", "/register", map[string]interface{}{
		"name":     "NoEmail",
		"password": "supersecret",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "POST", "/register", map[string]interface{}{
		"name":     "ShortPass",
		"email":    "short@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupUserRouter(db)

	w := doJSON(t, router, "POST", "/register", map[string]interface{}{
		"name":     "Owner",
		"email":    "login@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/login", map[string]interface{}{
		"email":    "login@example.com",
		"password": "supersecret",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, "admin", data["user_role"])

	w = doJSON(t, router, "POST", "/login", map[string]interface{}{
		"email":    "login@example.com",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetAllUsersAdminOnly(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&models.User{
		TenantID: 1, Name: "A", Email: "a@example.com", Password: "x", Role: "admin",
	}).Error)
	require.NoError(t, db.Create(&models.User{
		TenantID: 2, Name: "B", Email: "b@example.com", Password: "x", Role: "admin",
	}).Error)

	router := setupUserRouter(db)
	w := doJSON(t, router, "GET", "/users", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	users := resp["data"].([]interface{})
	assert.Len(t, users, 1)

	// A cashier is refused by the role middleware.
	gin.SetMode(gin.TestMode)
	cashierRouter := gin.Default()
	cashierRouter.Use(authAs(1, 1, "cashier"))
	cashierRouter.GET("/users", middlewares.RequireRole("admin"), controllers.NewUserController(db).GetAllUsers)
	w = doJSON(t, cashierRouter, "GET", "/users", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
