package database

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
)

// Connect opens the MySQL connection described by the environment.
func Connect() (*gorm.DB, error) {
	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "127.0.0.1"
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "3306"
	}
	user := os.Getenv("DB_USER")
	if user == "" {
		user = "root"
	}
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	if name == "" {
		name = "resto_pos"
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, name)

	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
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
}
