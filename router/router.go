package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/controllers"
	"github.com/yudharma/resto-pos/middlewares"
	"github.com/yudharma/resto-pos/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Services wired bottom-up so the order pipeline gets its providers.
	settingsSvc := services.NewSettingsService(db)
	couponSvc := services.NewCouponService(db)
	taxSvc := services.NewTaxService(db, settingsSvc)
	inventorySvc := services.NewInventoryService(db)
	pricingSvc := services.NewPricingService(db, couponSvc, taxSvc, settingsSvc)
	lifecycleSvc := services.NewLifecycleService(db)
	deliverySvc := services.NewDeliveryService(db, lifecycleSvc)
	orderSvc := services.NewOrderService(db, pricingSvc, inventorySvc, couponSvc, settingsSvc, deliverySvc)

	userCtrl := controllers.NewUserController(db)
	branchCtrl := controllers.NewBranchController(db)
	tableCtrl := controllers.NewTableController(db)
	customerCtrl := controllers.NewCustomerController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	menuCtrl := controllers.NewMenuController(db)
	couponCtrl := controllers.NewCouponController(db, couponSvc)
	inventoryCtrl := controllers.NewInventoryController(db, inventorySvc)
	orderCtrl := controllers.NewOrderController(db, orderSvc, lifecycleSvc)
	deliveryCtrl := controllers.NewDeliveryController(db, deliverySvc)
	settingsCtrl := controllers.NewSettingsController(db, settingsSvc)
	reportCtrl := controllers.NewReportController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())

	adminOnly := middlewares.RequireRole("admin")

	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/users", adminOnly, userCtrl.GetAllUsers)

	// BRANCHES
	auth.GET("/branches", branchCtrl.GetAllBranches)
	auth.POST("/branches", branchCtrl.CreateBranch)
	auth.PATCH("/branches/:branch_id", branchCtrl.UpdateBranch)
	auth.GET("/branches/:branch_id/counters", branchCtrl.GetBranchCounters)
	auth.POST("/branches/:branch_id/counters", branchCtrl.CreateCounter)

	// TABLES
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.POST("/tables", tableCtrl.CreateTable)
	auth.PATCH("/tables/:table_id", tableCtrl.UpdateTableStatus)
	auth.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

	// CUSTOMERS
	auth.GET("/customers", customerCtrl.GetAllCustomers)
	auth.POST("/customers", customerCtrl.CreateCustomer)
	auth.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
	auth.PATCH("/customers/:customer_id", customerCtrl.UpdateCustomer)
	auth.GET("/customers/:customer_id/orders", customerCtrl.GetCustomerOrders)
	auth.POST("/customers/:customer_id/addresses", customerCtrl.CreateCustomerAddress)

	// CATEGORIES
	auth.GET("/categories", categoryCtrl.GetAllCategories)
	auth.POST("/categories", categoryCtrl.CreateCategory)
	auth.PATCH("/categories/:category_id", categoryCtrl.UpdateCategory)
	auth.DELETE("/categories/:category_id", categoryCtrl.DeleteCategory)

	// MENU
	auth.GET("/menus", menuCtrl.GetAllFoodItems)
	auth.POST("/menus", menuCtrl.CreateFoodItem)
	auth.GET("/menus/:item_id", menuCtrl.GetFoodItemByID)
	auth.PATCH("/menus/:item_id", menuCtrl.UpdateFoodItem)
	auth.DELETE("/menus/:item_id", menuCtrl.DeleteFoodItem)
	auth.POST("/menus/:item_id/discounts", menuCtrl.CreateDiscount)
	auth.DELETE("/menus/:item_id/discounts/:discount_id", menuCtrl.DeleteDiscount)

	// COUPONS
	auth.GET("/coupons", couponCtrl.GetAllCoupons)
	auth.POST("/coupons", couponCtrl.CreateCoupon)
	auth.PATCH("/coupons/:coupon_id", couponCtrl.UpdateCoupon)
	auth.DELETE("/coupons/:coupon_id", couponCtrl.DeleteCoupon)
	auth.POST("/coupons/validate", couponCtrl.ValidateCoupon)

	// INVENTORY
	auth.GET("/ingredients", inventoryCtrl.GetAllIngredients)
	auth.POST("/ingredients", inventoryCtrl.CreateIngredient)
	auth.POST("/ingredients/:ingredient_id/adjust", inventoryCtrl.AdjustStock)
	auth.GET("/ingredients/low-stock", inventoryCtrl.GetLowStock)
	auth.GET("/stock-movements", inventoryCtrl.GetStockMovements)
	auth.POST("/stock/validate", inventoryCtrl.ValidateStock)

	// ORDERS
	auth.POST("/orders", orderCtrl.CreateOrder)
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id", orderCtrl.UpdateOrder)
	auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	auth.POST("/orders/:order_id/pay", orderCtrl.MarkOrderPaid)
	auth.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	auth.GET("/orders/:order_id/payments", orderCtrl.GetOrderPayments)
	auth.GET("/kitchen/display", orderCtrl.GetKitchenDisplay)

	// DELIVERIES
	auth.GET("/deliveries", deliveryCtrl.GetAllDeliveries)
	auth.POST("/deliveries/:delivery_id/assign", deliveryCtrl.AssignRider)
	auth.PATCH("/deliveries/:delivery_id/status", deliveryCtrl.UpdateDeliveryStatus)
	auth.POST("/deliveries/:delivery_id/restore", deliveryCtrl.RestoreDelivery)

	// SETTINGS (writes are admin-only)
	auth.GET("/settings", settingsCtrl.GetSettings)
	auth.PATCH("/settings", adminOnly, settingsCtrl.UpdateSettings)
	auth.GET("/tax-rules", settingsCtrl.GetTaxRules)
	auth.POST("/tax-rules", adminOnly, settingsCtrl.CreateTaxRule)

	// REPORTS (admin)
	reports := auth.Group("/reports", adminOnly)
	reports.GET("/sales-summary", reportCtrl.GetSalesSummary)
	reports.GET("/popular-items", reportCtrl.GetPopularItems)
	reports.GET("/peak-hours", reportCtrl.GetPeakHours)

	// WebSocket endpoint for the kitchen display
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/kds", controllers.KDSHandler)
	}

	return r
}
