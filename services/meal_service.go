package services

import (
	"fmt"
	"time"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/config"
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/models"
)

type MealService struct {
	foodSvc *FoodService
}

func NewMealService(fs *FoodService) *MealService {
	return &MealService{foodSvc: fs}
}

// MealItemRequest describes one logged food. Barcode entries are resolved
// against the catalog and scaled by grams; everything else (manual entry,
// AI photo/text estimates) arrives with the nutrients already filled in.
type MealItemRequest struct {
	FoodName string  `json:"food_name"`
	Barcode  string  `json:"barcode"`
	Grams    float64 `json:"grams"`
	Source   string  `json:"source"` // "barcode" | "photo" | "text" | "manual"

	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Sugar    float64 `json:"sugar"`
	Fiber    float64 `json:"fiber"`
	Sodium   float64 `json:"sodium"`
}

func (s *MealService) buildItem(mealID uint, it MealItemRequest) (*models.MealItem, error) {
	mi := &models.MealItem{
		MealID:   mealID,
		FoodName: it.FoodName,
		Barcode:  it.Barcode,
		Grams:    it.Grams,
		Source:   it.Source,
		Calories: it.Calories,
		Protein:  it.Protein,
		Carbs:    it.Carbs,
		Fat:      it.Fat,
		Sugar:    it.Sugar,
		Fiber:    it.Fiber,
		Sodium:   it.Sodium,
	}

	if it.Barcode != "" {
		res, err := s.foodSvc.LookupBarcode(it.Barcode)
		if err != nil {
			return nil, fmt.Errorf("resolve barcode %s: %w", it.Barcode, err)
		}
		p := res.Product
		if mi.FoodName == "" {
			mi.FoodName = p.Name
		}
		grams := it.Grams
		if grams <= 0 {
			grams = 100
			mi.Grams = grams
		}
		factor := grams / 100.0
		mi.Calories = p.Calories * factor
		mi.Protein = p.Protein * factor
		mi.Carbs = p.Carbs * factor
		mi.Fat = p.Fat * factor
		mi.Sugar = p.Sugar * factor
		mi.Fiber = p.Fiber * factor
		mi.Sodium = p.Sodium * factor
		mi.Source = "barcode"
	}

	if mi.FoodName == "" {
		return nil, fmt.Errorf("food_name is required for non-barcode items")
	}
	return mi, nil
}

func (s *MealService) AddMeal(userID uint, mealType string, ateAt time.Time, items []MealItemRequest) (*models.Meal, error) {
	meal := &models.Meal{UserID: userID, Type: mealType, AteAt: ateAt}
	if err := config.DB.Create(meal).Error; err != nil {
		return nil, err
	}

	for _, it := range items {
		mi, err := s.buildItem(meal.ID, it)
		if err != nil {
			return nil, err
		}
		if err := config.DB.Create(mi).Error; err != nil {
			return nil, err
		}
	}

	var populated models.Meal
	if err := config.DB.Preload("Items").First(&populated, meal.ID).Error; err != nil {
		return nil, err
	}
	return &populated, nil
}

func (s *MealService) UpdateMeal(userID, mealID uint, mealType string, ateAt time.Time, items []MealItemRequest) (*models.Meal, error) {
	var meal models.Meal
	if err := config.DB.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		return nil, err
	}
	meal.Type = mealType
	meal.AteAt = ateAt
	if err := config.DB.Save(&meal).Error; err != nil {
		return nil, err
	}

	// replace items wholesale; snapshots are cheap to rebuild
	if err := config.DB.Where("meal_id = ?", meal.ID).Delete(&models.MealItem{}).Error; err != nil {
		return nil, err
	}
	for _, it := range items {
		mi, err := s.buildItem(meal.ID, it)
		if err != nil {
			return nil, err
		}
		if err := config.DB.Create(mi).Error; err != nil {
			return nil, err
		}
	}

	var updated models.Meal
	if err := config.DB.Preload("Items").First(&updated, meal.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MealService) DeleteMeal(userID, mealID uint) error {
	if err := config.DB.Where("meal_id = ?", mealID).Delete(&models.MealItem{}).Error; err != nil {
		return err
	}
	return config.DB.
		Where("id = ? AND user_id = ?", mealID, userID).
		Delete(&models.Meal{}).Error
}

func (s *MealService) GetMeal(userID, mealID uint) (*models.Meal, error) {
	var meal models.Meal
	err := config.DB.
		Preload("Items").
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		return nil, err // could be ErrRecordNotFound
	}
	return &meal, nil
}

func (s *MealService) ListMeals(userID uint) ([]models.Meal, error) {
	var meals []models.Meal
	err := config.DB.
		Preload("Items").
		Where("user_id = ?", userID).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) ListMealsByDateRange(userID uint, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := config.DB.
		Preload("Items").
		Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, from, to).
		Order("ate_at DESC").
		Find(&meals).Error
	return meals, err
}

// RecentMealItem is a flat row for the "recently logged" card.
type RecentMealItem struct {
	ID       uint      `json:"id"`
	MealID   uint      `json:"meal_id"`
	FoodName string    `json:"food_name"`
	Calories float64   `json:"calories"`
	AteAt    time.Time `json:"ate_at"`
}

func (s *MealService) ListRecentMealItems(userID uint, limit int) ([]RecentMealItem, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []RecentMealItem
	err := config.DB.
		Table("meal_items").
		Select("meal_items.id, meal_items.meal_id, meal_items.food_name, meal_items.calories, meals.ate_at").
		Joins("JOIN meals ON meals.id = meal_items.meal_id").
		Where("meals.user_id = ?", userID).
		Order("meals.ate_at DESC, meal_items.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
