package services

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/yudharma/resto-pos/models"
)

// InventoryService implements InventoryGate over the ingredient ledger.
// Validation is read-only; deduction runs in one transaction so a
// failure never leaves a partial deduction behind.
type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// ingredientNeeds expands food-item demands through their recipes into
// aggregate per-ingredient quantities. Items without a recipe consume
// nothing and pass validation.
func (s *InventoryService) ingredientNeeds(reqs []StockRequirement) (map[uint]float64, error) {
	needs := make(map[uint]float64)
	for _, req := range reqs {
		var recipe []models.RecipeItem
		if err := s.db.Where("food_item_id = ?", req.FoodItemID).Find(&recipe).Error; err != nil {
			return nil, err
		}
		for _, ri := range recipe {
			needs[ri.IngredientID] += ri.Quantity * float64(req.Quantity)
		}
	}
	return needs, nil
}

// ValidateStockForOrder checks the cart against current stock without
// mutating anything. The insufficient list carries name, available and
// required quantities so the rejection message is actionable.
func (s *InventoryService) ValidateStockForOrder(tenantID uint, reqs []StockRequirement) (*StockValidation, error) {
	needs, err := s.ingredientNeeds(reqs)
	if err != nil {
		return nil, err
	}

	result := &StockValidation{IsValid: true}
	for _, id := range sortedKeys(needs) {
		var ingredient models.Ingredient
		if err := s.db.Where("tenant_id = ?", tenantID).First(&ingredient, id).Error; err != nil {
			return nil, fmt.Errorf("load ingredient %d: %w", id, err)
		}
		if ingredient.Stock < needs[id] {
			result.IsValid = false
			result.InsufficientItems = append(result.InsufficientItems, InsufficientStock{
				IngredientID:   ingredient.ID,
				IngredientName: ingredient.Name,
				Available:      ingredient.Stock,
				Required:       needs[id],
			})
		}
	}
	return result, nil
}

// DeductStockForOrder applies the deduction and records a movement row
// per ingredient referencing the order. The whole deduction is atomic:
// if any ingredient raced below the requirement since validation, the
// transaction rolls back and the caller compensates.
func (s *InventoryService) DeductStockForOrder(tenantID, actorID, orderID uint, reqs []StockRequirement) error {
	needs, err := s.ingredientNeeds(reqs)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, id := range sortedKeys(needs) {
			qty := needs[id]
			res := tx.Model(&models.Ingredient{}).
				Where("id = ? AND tenant_id = ? AND stock >= ?", id, tenantID, qty).
				UpdateColumn("stock", gorm.Expr("stock - ?", qty))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Stock changed between validate and deduct.
				var ingredient models.Ingredient
				if err := tx.Where("tenant_id = ?", tenantID).First(&ingredient, id).Error; err != nil {
					return fmt.Errorf("ingredient %d no longer available", id)
				}
				return &InsufficientStockError{Items: []InsufficientStock{{
					IngredientID:   ingredient.ID,
					IngredientName: ingredient.Name,
					Available:      ingredient.Stock,
					Required:       qty,
				}}}
			}

			actor := actorID
			order := orderID
			movement := models.StockMovement{
				TenantID:     tenantID,
				IngredientID: id,
				Change:       -qty,
				Reason:       models.StockReasonOrder,
				OrderID:      &order,
				ActorID:      &actor,
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AdjustStock applies a manual correction or restock and audits it.
func (s *InventoryService) AdjustStock(tenantID, actorID, ingredientID uint, change float64, reason string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ?", tenantID).First(&ingredient, ingredientID).Error; err != nil {
			return err
		}
		if ingredient.Stock+change < 0 {
			return &InsufficientStockError{Items: []InsufficientStock{{
				IngredientID:   ingredient.ID,
				IngredientName: ingredient.Name,
				Available:      ingredient.Stock,
				Required:       -change,
			}}}
		}
		if err := tx.Model(&ingredient).UpdateColumn("stock", gorm.Expr("stock + ?", change)).Error; err != nil {
			return err
		}
		actor := actorID
		movement := models.StockMovement{
			TenantID:     tenantID,
			IngredientID: ingredientID,
			Change:       change,
			Reason:       reason,
			ActorID:      &actor,
		}
		return tx.Create(&movement).Error
	})
	if err != nil {
		return nil, err
	}
	ingredient.Stock += change
	return &ingredient, nil
}

// LowStock lists ingredients at or below their alert threshold.
func (s *InventoryService) LowStock(tenantID uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := s.db.Where("tenant_id = ? AND alert_threshold > 0 AND stock <= alert_threshold", tenantID).
		Order("stock asc").
		Find(&ingredients).Error
	return ingredients, err
}

func sortedKeys(m map[uint]float64) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
