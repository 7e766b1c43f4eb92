package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/controllers"
	"github.com/yudharma/resto-pos/models"
	"github.com/yudharma/resto-pos/services"
)

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	router.Use(authAs(1, 1, "admin"))

	settingsSvc := services.NewSettingsService(db)
	couponSvc := services.NewCouponService(db)
	taxSvc := services.NewTaxService(db, settingsSvc)
	inventorySvc := services.NewInventoryService(db)
	pricingSvc := services.NewPricingService(db, couponSvc, taxSvc, settingsSvc)
	lifecycleSvc := services.NewLifecycleService(db)
	deliverySvc := services.NewDeliveryService(db, lifecycleSvc)
	orderSvc := services.NewOrderService(db, pricingSvc, inventorySvc, couponSvc, settingsSvc, deliverySvc)

	orderCtrl := controllers.NewOrderController(db, orderSvc, lifecycleSvc)
	router.POST("/orders", orderCtrl.CreateOrder)
	router.GET("/orders", orderCtrl.GetAllOrders)
	router.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	router.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	router.POST("/orders/:order_id/pay", orderCtrl.MarkOrderPaid)
	router.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	return router
}

func seedOrderCatalog(t *testing.T, db *gorm.DB) *models.FoodItem {
	t.Helper()
	branch := models.Branch{TenantID: 1, Name: "Main Branch", Code: "MAIN", IsActive: true}
	require.NoError(t, db.Create(&branch).Error)
	category := models.Category{TenantID: 1, Name: "Food"}
	require.NoError(t, db.Create(&category).Error)
	food := models.FoodItem{TenantID: 1, CategoryID: category.ID, Name: "Nasi Goreng", Price: 25, IsActive: true}
	require.NoError(t, db.Create(&food).Error)
	return &food
}

func TestCreateOrderEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupOrderRouter(db)
	food := seedOrderCatalog(t, db)

	w := doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"food_item_id": food.ID, "quantity": 2},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, "Order created", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, 50.0, data["total_amount"])
	expectedNumber := fmt.Sprintf("MAIN-%s-0001", time.Now().Format("20060102"))
	assert.Equal(t, expectedNumber, data["order_number"])
}

func TestCreateOrderEndpointEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	router := setupOrderRouter(db)
	seedOrderCatalog(t, db)

	w := doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"items": []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, "order must contain at least one item", resp["message"])
}

func TestCreateOrderEndpointInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	router := setupOrderRouter(db)
	food := seedOrderCatalog(t, db)

	ingredient := models.Ingredient{TenantID: 1, Name: "Flour", Unit: "g", Stock: 2}
	require.NoError(t, db.Create(&ingredient).Error)
	require.NoError(t, db.Create(&models.RecipeItem{
		FoodItemID: food.ID, IngredientID: ingredient.ID, Quantity: 1,
	}).Error)

	w := doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"food_item_id": food.ID, "quantity": 5},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeBody(t, w)
	assert.Equal(t, "insufficient stock: Flour (Available: 2, Required: 5)", resp["message"])
	data := resp["data"].(map[string]interface{})
	items := data["insufficient_items"].([]interface{})
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "Flour", first["ingredient_name"])
	assert.Equal(t, 2.0, first["available"])
	assert.Equal(t, 5.0, first["required"])
}

func TestUpdateOrderStatusEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupOrderRouter(db)
	food := seedOrderCatalog(t, db)

	w := doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"food_item_id": food.ID, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := int(decodeBody(t, w)["data"].(map[string]interface{})["id"].(float64))

	w = doJSON(t, router, "PATCH", fmt.Sprintf("/orders/%d/status", orderID), map[string]interface{}{
		"status": "preparing",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Skipping straight to served is rejected with the allowed set.
	w = doJSON(t, router, "PATCH", fmt.Sprintf("/orders/%d/status", orderID), map[string]interface{}{
		"status": "served",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody(t, w)
	data := resp["data"].(map[string]interface{})
	allowed := data["allowed_statuses"].([]interface{})
	assert.ElementsMatch(t, []interface{}{"ready", "cancelled"}, allowed)
}

func TestMarkOrderPaidEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupOrderRouter(db)
	food := seedOrderCatalog(t, db)

	w := doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"food_item_id": food.ID, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := int(decodeBody(t, w)["data"].(map[string]interface{})["id"].(float64))

	w = doJSON(t, router, "POST", fmt.Sprintf("/orders/%d/pay", orderID), map[string]interface{}{
		"amount": 25.0,
		"method": "qris",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "paid", data["payment_status"])
}

func TestDeleteOrderEndpointRules(t *testing.T) {
	db := setupTestDB(t)
	router := setupOrderRouter(db)
	food := seedOrderCatalog(t, db)

	w := doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"items": []map[string]interface{}{
			{"food_item_id": food.ID, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := int(decodeBody(t, w)["data"].(map[string]interface{})["id"].(float64))

	// Move past pending; deletion must then be refused.
	w = doJSON(t, router, "PATCH", fmt.Sprintf("/orders/%d/status", orderID), map[string]interface{}{
		"status": "preparing",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "DELETE", fmt.Sprintf("/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "PATCH", fmt.Sprintf("/orders/%d/status", orderID), map[string]interface{}{
		"status": "cancelled", "reason": "test",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "DELETE", fmt.Sprintf("/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Gone from the listing afterwards.
	w = doJSON(t, router, "GET", fmt.Sprintf("/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
