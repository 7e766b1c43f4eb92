package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
	"github.com/yudharma/resto-pos/utils"
)

var ctrlDBSeq int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	dsn := fmt.Sprintf("file:ctrl%d?mode=memory&cache=shared", atomic.AddInt64(&ctrlDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Branch{},
		&models.Counter{},
		&models.Table{},
		&models.Customer{},
		&models.CustomerAddress{},
		&models.Category{},
		&models.FoodItem{},
		&models.Variation{},
		&models.AddOn{},
		&models.Discount{},
		&models.Coupon{},
		&models.CouponUsage{},
		&models.Ingredient{},
		&models.RecipeItem{},
		&models.StockMovement{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemAddOn{},
		&models.Payment{},
		&models.Delivery{},
		&models.Settings{},
		&models.TaxRule{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// authAs stands in for the auth middleware during tests.
func authAs(tenantID, userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("tenant_id", tenantID)
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return resp
}
