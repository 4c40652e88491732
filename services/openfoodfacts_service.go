package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/models"
)

type OpenFoodFactsService struct {
	baseURL string
	client  *http.Client
}

// NewOpenFoodFactsService initializes the client for the public OFF API.
func NewOpenFoodFactsService() *OpenFoodFactsService {
	return &OpenFoodFactsService{
		baseURL: "https://world.openfoodfacts.org",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type offNutriments struct {
	EnergyKcal100g float64 `json:"energy-kcal_100g"`
	Proteins100g   float64 `json:"proteins_100g"`
	Carbs100g      float64 `json:"carbohydrates_100g"`
	Fat100g        float64 `json:"fat_100g"`
	Sugars100g     float64 `json:"sugars_100g"`
	Fiber100g      float64 `json:"fiber_100g"`
	Sodium100g     float64 `json:"sodium_100g"` // grams in OFF
}

type offProduct struct {
	Code        string        `json:"code"`
	ProductName string        `json:"product_name"`
	Brands      string        `json:"brands"`
	Nutriments  offNutriments `json:"nutriments"`
}

type offProductResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

// FetchProduct looks a product up by barcode.
func (s *OpenFoodFactsService) FetchProduct(barcode string) (*models.FoodProduct, error) {
	u := fmt.Sprintf("%s/api/v2/product/%s.json", s.baseURL, url.PathEscape(barcode))

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call OpenFoodFacts: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenFoodFacts response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("product %s not found", barcode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openfoodfacts API error %d: %s", resp.StatusCode, string(body))
	}

	var pr offProductResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("failed to parse OpenFoodFacts JSON: %w", err)
	}
	if pr.Status != 1 {
		return nil, fmt.Errorf("product %s not found", barcode)
	}

	return toFoodProduct(pr.Product), nil
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}

// SearchProducts does a free-text product search, used to resolve photo
// recognition labels to concrete products.
func (s *OpenFoodFactsService) SearchProducts(query string, limit int) ([]models.FoodProduct, error) {
	if limit <= 0 {
		limit = 5
	}
	u := fmt.Sprintf("%s/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page_size=%d",
		s.baseURL, url.QueryEscape(query), limit)

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call OpenFoodFacts search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenFoodFacts search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openfoodfacts search API error %d: %s", resp.StatusCode, string(body))
	}

	var sr offSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse OpenFoodFacts search JSON: %w", err)
	}

	results := make([]models.FoodProduct, 0, len(sr.Products))
	for _, p := range sr.Products {
		if p.ProductName == "" {
			continue
		}
		results = append(results, *toFoodProduct(p))
	}
	return results, nil
}

func toFoodProduct(p offProduct) *models.FoodProduct {
	return &models.FoodProduct{
		Barcode:  p.Code,
		Name:     p.ProductName,
		Brand:    p.Brands,
		Calories: p.Nutriments.EnergyKcal100g,
		Protein:  p.Nutriments.Proteins100g,
		Carbs:    p.Nutriments.Carbs100g,
		Fat:      p.Nutriments.Fat100g,
		Sugar:    p.Nutriments.Sugars100g,
		Fiber:    p.Nutriments.Fiber100g,
		Sodium:   p.Nutriments.Sodium100g * 1000, // OFF reports grams; store mg
	}
}
