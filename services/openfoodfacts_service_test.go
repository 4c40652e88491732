package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOFFTestService(handler http.HandlerFunc) (*OpenFoodFactsService, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return &OpenFoodFactsService{
		baseURL: srv.URL,
		client:  &http.Client{Timeout: 2 * time.Second},
	}, srv
}

func TestFetchProduct(t *testing.T) {
	svc, srv := newOFFTestService(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/product/737628064502.json", r.URL.Path)
		w.Write([]byte(`{
			"status": 1,
			"product": {
				"code": "737628064502",
				"product_name": "Rice Noodles",
				"brands": "Thai Kitchen",
				"nutriments": {
					"energy-kcal_100g": 385,
					"proteins_100g": 7.7,
					"carbohydrates_100g": 76.9,
					"fat_100g": 3.8,
					"sugars_100g": 13.5,
					"fiber_100g": 1.9,
					"sodium_100g": 0.72
				}
			}
		}`))
	})
	defer srv.Close()

	p, err := svc.FetchProduct("737628064502")
	require.NoError(t, err)
	assert.Equal(t, "737628064502", p.Barcode)
	assert.Equal(t, "Rice Noodles", p.Name)
	assert.Equal(t, "Thai Kitchen", p.Brand)
	assert.Equal(t, 385.0, p.Calories)
	assert.Equal(t, 7.7, p.Protein)
	assert.Equal(t, 720.0, p.Sodium) // OFF grams converted to mg
}

func TestFetchProductNotFound(t *testing.T) {
	svc, srv := newOFFTestService(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 0, "status_verbose": "product not found"}`))
	})
	defer srv.Close()

	_, err := svc.FetchProduct("000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFetchProductServerError(t *testing.T) {
	svc, srv := newOFFTestService(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})
	defer srv.Close()

	_, err := svc.FetchProduct("737628064502")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSearchProductsSkipsUnnamed(t *testing.T) {
	svc, srv := newOFFTestService(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "banana", r.URL.Query().Get("search_terms"))
		assert.Equal(t, "5", r.URL.Query().Get("page_size"))
		w.Write([]byte(`{
			"products": [
				{"code": "1", "product_name": "Banana Chips", "nutriments": {"energy-kcal_100g": 519}},
				{"code": "2", "product_name": "", "nutriments": {"energy-kcal_100g": 90}},
				{"code": "3", "product_name": "Banana Puree", "nutriments": {"energy-kcal_100g": 89}}
			]
		}`))
	})
	defer srv.Close()

	results, err := svc.SearchProducts("banana", 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Banana Chips", results[0].Name)
	assert.Equal(t, "Banana Puree", results[1].Name)
}
