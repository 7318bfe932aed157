package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"stock-pulse/apperror"
	"stock-pulse/catalog"
	"stock-pulse/chart"
	"stock-pulse/loader"
	"stock-pulse/models"
	"stock-pulse/search"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	ds, err := loader.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}
	cat, err := catalog.Build(ds, chart.NewGenerator(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	mux := http.NewServeMux()
	NewHandler(search.NewInMemoryEngine(cat.Stocks()), cat).Register(mux)
	return mux
}

func get(t *testing.T, mux http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestSearch(t *testing.T) {
	mux := newTestMux(t)

	rec := get(t, mux, "/search?q=bank")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var results []models.Stock
	if err := json.NewDecoder(rec.Body).Decode(&results); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("Expected 3 results, got %d", len(results))
	}

	rec = get(t, mux, "/search")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing q, got %d", rec.Code)
	}
	var body errorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != apperror.ErrBadRequest {
		t.Errorf("Expected code %s, got %s", apperror.ErrBadRequest, body.Code)
	}
}

func TestGetStock(t *testing.T) {
	mux := newTestMux(t)

	rec := get(t, mux, "/api/stock?symbol=tcs.ns")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp struct {
		Slug             string              `json:"slug"`
		CurrentPrice     float64             `json:"currentPrice"`
		PreviousDayClose float64             `json:"previousDayClose"`
		History          []models.PricePoint `json:"history"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Slug != "tcs" {
		t.Errorf("Expected slug tcs, got %s", resp.Slug)
	}
	if resp.CurrentPrice != 4125.80 {
		t.Errorf("Expected current price 4125.80, got %v", resp.CurrentPrice)
	}
	if resp.PreviousDayClose <= resp.CurrentPrice {
		t.Errorf("Expected previous close above price for a loser, got %v", resp.PreviousDayClose)
	}
	if len(resp.History) != chart.PointsPerSeries {
		t.Errorf("Expected %d history points, got %d", chart.PointsPerSeries, len(resp.History))
	}

	if rec := get(t, mux, "/api/stock"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
	if rec := get(t, mux, "/api/stock?symbol=NOPE.NS"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestStockAndSectorRoutes(t *testing.T) {
	mux := newTestMux(t)

	tests := []struct {
		target string
		status int
	}{
		{"/api/stocks", http.StatusOK},
		{"/api/stocks/reliance", http.StatusOK},
		{"/api/stocks/unknown", http.StatusNotFound},
		{"/api/sectors", http.StatusOK},
		{"/api/sectors/banking-stocks", http.StatusOK},
		{"/api/sectors/unknown", http.StatusNotFound},
		{"/api/indices", http.StatusOK},
		{"/api/movers", http.StatusOK},
		{"/api/movers?n=abc", http.StatusBadRequest},
		{"/api/movers?n=-1", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, mux, tt.target)
			if rec.Code != tt.status {
				t.Errorf("Expected %d, got %d", tt.status, rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected application/json, got %s", ct)
			}
		})
	}
}

func TestGetSector(t *testing.T) {
	mux := newTestMux(t)

	rec := get(t, mux, "/api/sectors/banking-stocks")
	var resp struct {
		Name   string         `json:"name"`
		Count  int            `json:"count"`
		Stocks []models.Stock `json:"stocks"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Name != "Banking" {
		t.Errorf("Expected Banking, got %s", resp.Name)
	}
	if len(resp.Stocks) != resp.Count {
		t.Errorf("Expected %d stocks, got %d", resp.Count, len(resp.Stocks))
	}
}

func TestMovers(t *testing.T) {
	mux := newTestMux(t)

	rec := get(t, mux, "/api/movers?n=2")
	var resp struct {
		Gainers []models.Stock `json:"gainers"`
		Losers  []models.Stock `json:"losers"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Gainers) != 2 || resp.Gainers[0].Slug != "tata-motors" {
		t.Errorf("Unexpected gainers: %+v", resp.Gainers)
	}
	if len(resp.Losers) != 2 || resp.Losers[0].Slug != "sbi" {
		t.Errorf("Unexpected losers: %+v", resp.Losers)
	}

	rec = get(t, mux, "/api/movers")
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Gainers) != catalog.DefaultTopN {
		t.Errorf("Expected %d gainers by default, got %d", catalog.DefaultTopN, len(resp.Gainers))
	}
}
