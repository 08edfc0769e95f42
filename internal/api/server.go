// Package api exposes the pricing engine, catalog lookup and inventory store
// over HTTP with a uniform JSON envelope.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/soletrack/soletrack/internal/catalog"
	"github.com/soletrack/soletrack/internal/inventory"
	"github.com/soletrack/soletrack/internal/pricing"
)

// Server holds the services behind the HTTP API.
type Server struct {
	pricing *pricing.Service
	catalog *catalog.Service
	store   inventory.Store
}

// NewServer wires the services into a Server.
func NewServer(pricingSvc *pricing.Service, catalogSvc *catalog.Service, store inventory.Store) *Server {
	return &Server{pricing: pricingSvc, catalog: catalogSvc, store: store}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/pricing/lookup", s.handlePricingLookup)
	mux.HandleFunc("POST /api/pricing/search", s.handlePricingSearch)
	mux.HandleFunc("POST /api/lookup-sku", s.handleLookupSKU)
	mux.HandleFunc("GET /api/brands", s.handleBrands)

	mux.HandleFunc("GET /api/analytics", s.handleAnalytics)

	mux.HandleFunc("GET /api/sneakers", s.handleListSneakers)
	mux.HandleFunc("POST /api/sneakers", s.handleCreateSneaker)
	mux.HandleFunc("GET /api/sneakers/{id}", s.handleGetSneaker)
	mux.HandleFunc("PUT /api/sneakers/{id}", s.handleUpdateSneaker)
	mux.HandleFunc("DELETE /api/sneakers/{id}", s.handleDeleteSneaker)

	mux.HandleFunc("GET /api/sales", s.handleListSales)
	mux.HandleFunc("POST /api/sales", s.handleCreateSale)
	mux.HandleFunc("DELETE /api/sales/{id}", s.handleDeleteSale)

	mux.HandleFunc("GET /api/listings", s.handleListListings)
	mux.HandleFunc("POST /api/listings", s.handleCreateListing)
	mux.HandleFunc("PUT /api/listings/{id}", s.handleUpdateListing)
	mux.HandleFunc("DELETE /api/listings/{id}", s.handleDeleteListing)

	return mux
}

// envelope is the uniform response shape: exactly one of data or error is set.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Success: false, Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePricingLookup(w http.ResponseWriter, r *http.Request) {
	var req pricing.LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.pricing.Lookup(r.Context(), req)
	if err != nil {
		s.writePricingError(w, err)
		return
	}
	writeData(w, http.StatusOK, resp)
}

func (s *Server) handlePricingSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	results, err := s.pricing.SearchByQuery(r.Context(), req.Query)
	if err != nil {
		s.writePricingError(w, err)
		return
	}
	writeData(w, http.StatusOK, results)
}

// writePricingError maps the facade's error taxonomy onto status codes.
func (s *Server) writePricingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pricing.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, pricing.ErrNoData):
		writeError(w, http.StatusNotFound, "no pricing data found")
	default:
		zap.L().Error("api: pricing lookup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleLookupSKU(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SKU string `json:"sku"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.catalog.LookupBySKU(r.Context(), req.SKU)
	if err != nil {
		if errors.Is(err, catalog.ErrEmptySKU) {
			writeError(w, http.StatusBadRequest, "sku is required")
			return
		}
		zap.L().Error("api: sku lookup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if result == nil {
		writeError(w, http.StatusNotFound, "no product found for sku")
		return
	}
	writeData(w, http.StatusOK, result)
}

func (s *Server) handleBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := s.catalog.Brands(r.Context())
	if err != nil {
		zap.L().Error("api: brand listing failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if brands == nil {
		brands = []string{}
	}
	writeData(w, http.StatusOK, brands)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	sneakers, err := s.store.ListSneakers(r.Context(), inventory.SneakerFilter{})
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	sales, err := s.store.ListSales(r.Context(), inventory.SaleFilter{})
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, inventory.ComputeAnalytics(sneakers, sales))
}

func (s *Server) handleListSneakers(w http.ResponseWriter, r *http.Request) {
	filter := inventory.SneakerFilter{
		Search:    r.URL.Query().Get("search"),
		Condition: r.URL.Query().Get("condition"),
		Brand:     r.URL.Query().Get("brand"),
	}
	sneakers, err := s.store.ListSneakers(r.Context(), filter)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if sneakers == nil {
		sneakers = []inventory.Sneaker{}
	}
	writeData(w, http.StatusOK, sneakers)
}

func (s *Server) handleCreateSneaker(w http.ResponseWriter, r *http.Request) {
	var sn inventory.Sneaker
	if err := json.NewDecoder(r.Body).Decode(&sn); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if sn.Brand == "" || sn.Model == "" || sn.Size == "" {
		writeError(w, http.StatusBadRequest, "brand, model and size are required")
		return
	}
	if err := s.store.CreateSneaker(r.Context(), &sn); err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusCreated, sn)
}

func (s *Server) handleGetSneaker(w http.ResponseWriter, r *http.Request) {
	sn, err := s.store.GetSneaker(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, sn)
}

func (s *Server) handleUpdateSneaker(w http.ResponseWriter, r *http.Request) {
	var sn inventory.Sneaker
	if err := json.NewDecoder(r.Body).Decode(&sn); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sn.ID = r.PathValue("id")
	if err := s.store.UpdateSneaker(r.Context(), &sn); err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, sn)
}

func (s *Server) handleDeleteSneaker(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteSneaker(r.Context(), r.PathValue("id")); err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := s.store.ListSales(r.Context(), inventory.SaleFilter{
		Platform: r.URL.Query().Get("platform"),
	})
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if sales == nil {
		sales = []inventory.Sale{}
	}
	writeData(w, http.StatusOK, sales)
}

func (s *Server) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	var sale inventory.Sale
	if err := json.NewDecoder(r.Body).Decode(&sale); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if sale.SneakerID == "" || sale.SalePrice <= 0 {
		writeError(w, http.StatusBadRequest, "sneaker_id and a positive sale_price are required")
		return
	}
	// The sneaker must exist before recording its sale.
	if _, err := s.store.GetSneaker(r.Context(), sale.SneakerID); err != nil {
		s.writeStoreError(w, err)
		return
	}
	if err := s.store.CreateSale(r.Context(), &sale); err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusCreated, sale)
}

func (s *Server) handleDeleteSale(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteSale(r.Context(), r.PathValue("id")); err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListListings(w http.ResponseWriter, r *http.Request) {
	listings, err := s.store.ListListings(r.Context(), inventory.ListingFilter{
		SneakerID: r.URL.Query().Get("sneaker_id"),
		Status:    r.URL.Query().Get("status"),
		Platform:  r.URL.Query().Get("platform"),
	})
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if listings == nil {
		listings = []inventory.Listing{}
	}
	writeData(w, http.StatusOK, listings)
}

func (s *Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	var l inventory.Listing
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if l.SneakerID == "" || l.Platform == "" {
		writeError(w, http.StatusBadRequest, "sneaker_id and platform are required")
		return
	}
	if _, err := s.store.GetSneaker(r.Context(), l.SneakerID); err != nil {
		s.writeStoreError(w, err)
		return
	}
	if err := s.store.CreateListing(r.Context(), &l); err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusCreated, l)
}

func (s *Server) handleUpdateListing(w http.ResponseWriter, r *http.Request) {
	var l inventory.Listing
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	l.ID = r.PathValue("id")
	if err := s.store.UpdateListing(r.Context(), &l); err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, l)
}

func (s *Server) handleDeleteListing(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteListing(r.Context(), r.PathValue("id")); err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, inventory.ErrNotFound) {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	zap.L().Error("api: store operation failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
