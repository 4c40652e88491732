package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/config"
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/models"
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/utils"

	"gorm.io/gorm"
)

type FoodService struct {
	off *OpenFoodFactsService
	rek *RekognitionService
	ai  *AIService
}

func NewFoodService(off *OpenFoodFactsService, rek *RekognitionService, ai *AIService) *FoodService {
	return &FoodService{off: off, rek: rek, ai: ai}
}

// ProductResult bundles a resolved product with its health classification.
type ProductResult struct {
	Product  models.FoodProduct     `json:"product"`
	Rating   string                 `json:"rating"`
	Reason   string                 `json:"reason,omitempty"`
	Warnings []utils.ProductWarning `json:"warnings,omitempty"`
}

// LookupBarcode resolves a scanned barcode against the local catalog first,
// then OpenFoodFacts, caching what it finds.
func (s *FoodService) LookupBarcode(barcode string) (*ProductResult, error) {
	if barcode == "" {
		return nil, fmt.Errorf("barcode is required")
	}

	var product models.FoodProduct
	err := config.DB.Where("barcode = ?", barcode).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fetched, ferr := s.off.FetchProduct(barcode)
		if ferr != nil {
			return nil, ferr
		}
		product = *fetched
		if cerr := config.DB.Create(&product).Error; cerr != nil {
			// cache miss is not fatal; serve the fetched product anyway
			log.Printf("food product cache write failed for %s: %v", barcode, cerr)
		}
	} else if err != nil {
		return nil, err
	}

	return s.rate(&product), nil
}

// RecognizePhoto runs label detection on a food photo and resolves the best
// label to catalog products. Callers gate this behind the food_scan quota.
func (s *FoodService) RecognizePhoto(base64Img string) ([]models.FoodProduct, []string, error) {
	labels, err := s.rek.RecognizeFoodLabels(base64Img)
	if err != nil {
		return nil, nil, err
	}

	products, err := s.off.SearchProducts(labels[0], 5)
	if err != nil {
		return nil, labels, err
	}
	return products, labels, nil
}

// AnalyzeDescription estimates nutrients for a typed food description.
// Callers gate this behind the relevant AI feature quota.
func (s *FoodService) AnalyzeDescription(description string) (*NutrientEstimate, error) {
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}
	return s.ai.AnalyzeFoodText(description)
}

// Search is a plain name search against OpenFoodFacts.
func (s *FoodService) Search(query string) ([]models.FoodProduct, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	return s.off.SearchProducts(query, 10)
}

// rate asks the AI for a classification and falls back to the local rule
// table when it is unavailable.
func (s *FoodService) rate(p *models.FoodProduct) *ProductResult {
	res := &ProductResult{Product: *p}

	rating, reason, err := s.ai.RateProduct(p)
	if err == nil && rating != "" {
		res.Rating = rating
		res.Reason = reason
		return res
	}
	if err != nil {
		log.Printf("ai product rating unavailable for %s, using local rules: %v", p.Barcode, err)
	}

	local := utils.RateProductLocal(p.Name, p.Fat, p.Sugar, p.Sodium, p.Fiber)
	res.Rating = local.Rating
	res.Warnings = local.Warnings
	return res
}
