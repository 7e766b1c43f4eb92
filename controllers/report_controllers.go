package controllers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
	"github.com/yudharma/resto-pos/utils"
)

type ReportController struct {
	DB *gorm.DB
}

// NewReportController builds the reporting handlers. All report routes
// are mounted behind the admin role middleware.
func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// GetSalesSummary -> order counts and revenue grouped by status
func (rc *ReportController) GetSalesSummary(c *gin.Context) {
	var summary struct {
		TotalOrders     int64   `json:"total_orders"`
		CompletedOrders int64   `json:"completed_orders"`
		CancelledOrders int64   `json:"cancelled_orders"`
		TotalRevenue    float64 `json:"total_revenue"`
		TotalDiscount   float64 `json:"total_discount"`
		TotalTax        float64 `json:"total_tax"`
	}

	tenant := tenantID(c)
	rc.DB.Model(&models.Order{}).Where("tenant_id = ?", tenant).Count(&summary.TotalOrders)
	rc.DB.Model(&models.Order{}).Where("tenant_id = ? AND status = ?", tenant, models.OrderStatusCompleted).Count(&summary.CompletedOrders)
	rc.DB.Model(&models.Order{}).Where("tenant_id = ? AND status = ?", tenant, models.OrderStatusCancelled).Count(&summary.CancelledOrders)

	rc.DB.Model(&models.Order{}).
		Where("tenant_id = ? AND status = ?", tenant, models.OrderStatusCompleted).
		Select("COALESCE(SUM(total_amount),0) as total_revenue, COALESCE(SUM(discount_amount),0) as total_discount, COALESCE(SUM(tax_amount),0) as total_tax").
		Scan(&summary)

	utils.RespondJSON(c, http.StatusOK, "Sales summary", summary)
}

// GetPopularItems -> top sellers by quantity and revenue
func (rc *ReportController) GetPopularItems(c *gin.Context) {
	var items []struct {
		FoodItemID uint    `json:"food_item_id"`
		Name       string  `json:"name"`
		Quantity   int64   `json:"quantity"`
		Revenue    float64 `json:"revenue"`
	}

	err := rc.DB.Raw(`
		SELECT f.id as food_item_id, f.name as name,
		SUM(oi.quantity) as quantity, SUM(oi.subtotal) as revenue
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.id
		JOIN food_items f ON oi.food_item_id = f.id
		WHERE o.tenant_id = ? AND o.deleted_at IS NULL
		GROUP BY f.id, f.name
		ORDER BY quantity DESC
		LIMIT 10
	`, tenantID(c)).Scan(&items).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Popular items", items)
}

// GetPeakHours -> order volume per hour of day
func (rc *ReportController) GetPeakHours(c *gin.Context) {
	var placed []time.Time
	err := rc.DB.Model(&models.Order{}).
		Where("tenant_id = ?", tenantID(c)).
		Pluck("placed_at", &placed).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	counts := make(map[int]int64)
	for _, t := range placed {
		counts[t.Local().Hour()]++
	}

	type hourCount struct {
		Hour  int   `json:"hour"`
		Count int64 `json:"count"`
	}
	hours := make([]hourCount, 0, len(counts))
	for h, n := range counts {
		hours = append(hours, hourCount{Hour: h, Count: n})
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Count > hours[j].Count })

	utils.RespondJSON(c, http.StatusOK, "Peak hours", hours)
}
