package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"stock-pulse/apperror"
	"stock-pulse/catalog"
	"stock-pulse/logger"
	"stock-pulse/metrics"
	"stock-pulse/models"
	"stock-pulse/search"
)

type Handler struct {
	Engine  search.SearchEngine
	Catalog *catalog.Catalog
}

func NewHandler(engine search.SearchEngine, cat *catalog.Catalog) *Handler {
	return &Handler{Engine: engine, Catalog: cat}
}

// Register mounts the JSON routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /search", h.Search)
	mux.HandleFunc("GET /api/stock", h.GetStock)
	mux.HandleFunc("GET /api/stocks", h.ListStocks)
	mux.HandleFunc("GET /api/stocks/{slug}", h.GetStockBySlug)
	mux.HandleFunc("GET /api/sectors", h.ListSectors)
	mux.HandleFunc("GET /api/sectors/{slug}", h.GetSector)
	mux.HandleFunc("GET /api/movers", h.Movers)
	mux.HandleFunc("GET /api/indices", h.Indices)
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, apperror.ErrBadRequest, "Missing query parameter 'q'")
		return
	}

	metrics.SearchQueries.Inc()
	writeJSON(w, http.StatusOK, h.Engine.Search(query))
}

// stockResponse keeps the chart-ready shape the stock page script reads.
type stockResponse struct {
	*models.Stock
	CurrentPrice     float64             `json:"currentPrice"`
	PreviousDayClose float64             `json:"previousDayClose"`
	History          []models.PricePoint `json:"history"`
}

func newStockResponse(stock *models.Stock) stockResponse {
	return stockResponse{
		Stock:            stock,
		CurrentPrice:     stock.Price,
		PreviousDayClose: stock.PreviousClose(),
		History:          stock.ChartData,
	}
}

func (h *Handler) GetStock(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, apperror.ErrBadRequest, "Missing symbol parameter")
		return
	}

	stock := h.Engine.GetBySymbol(symbol)
	if stock != nil {
		// the engine holds the index copy; the catalog carries the chart
		stock = h.Catalog.StockBySlug(stock.Slug)
	}
	if stock == nil {
		writeError(w, http.StatusNotFound, apperror.ErrNotFound, "Stock not found")
		return
	}

	writeJSON(w, http.StatusOK, newStockResponse(stock))
}

func (h *Handler) ListStocks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Stocks())
}

func (h *Handler) GetStockBySlug(w http.ResponseWriter, r *http.Request) {
	stock := h.Catalog.StockBySlug(r.PathValue("slug"))
	if stock == nil {
		writeError(w, http.StatusNotFound, apperror.ErrNotFound, "Stock not found")
		return
	}
	writeJSON(w, http.StatusOK, newStockResponse(stock))
}

func (h *Handler) ListSectors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Sectors())
}

func (h *Handler) GetSector(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	sector := h.Catalog.SectorBySlug(slug)
	if sector == nil {
		writeError(w, http.StatusNotFound, apperror.ErrNotFound, "Sector not found")
		return
	}

	response := struct {
		*models.Sector
		Stocks []models.Stock `json:"stocks"`
	}{
		Sector: sector,
		Stocks: h.Catalog.StocksBySector(slug),
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) Movers(w http.ResponseWriter, r *http.Request) {
	n := catalog.DefaultTopN
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeError(w, http.StatusBadRequest, apperror.ErrBadRequest, "n must be a non-negative integer")
			return
		}
		n = v
	}

	response := struct {
		Gainers []models.Stock `json:"gainers"`
		Losers  []models.Stock `json:"losers"`
	}{
		Gainers: h.Catalog.TopGainers(n),
		Losers:  h.Catalog.TopLosers(n),
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) Indices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Indices())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(err, "encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	writeJSON(w, status, errorBody{Error: msg, Code: code})
}
