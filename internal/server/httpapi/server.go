// Package httpapi exposes the sweet shop REST API.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/devanshyadav01/sweetshop/internal/model"
	"github.com/devanshyadav01/sweetshop/internal/repository"
	"github.com/devanshyadav01/sweetshop/internal/service"
	"github.com/devanshyadav01/sweetshop/internal/token"
)

// ClaimVerifier checks a bearer token and returns its claims.
type ClaimVerifier interface {
	Verify(tokenStr string) (*token.Claims, error)
}

// Server wires services into HTTP handlers.
type Server struct {
	auth      service.AuthService
	catalog   service.CatalogService
	inventory service.InventoryService
	users     repository.UserRepository
	verifier  ClaimVerifier
	log       *zap.Logger
}

// New constructs a Server with injected services.
func New(
	auth service.AuthService,
	catalog service.CatalogService,
	inventory service.InventoryService,
	users repository.UserRepository,
	verifier ClaimVerifier,
	log *zap.Logger,
) *Server {
	return &Server{
		auth:      auth,
		catalog:   catalog,
		inventory: inventory,
		users:     users,
		verifier:  verifier,
		log:       log,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(s.recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Route("/sweets", func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/", s.handleListSweets)
			r.Get("/search", s.handleSearchSweets)
			r.Post("/{id}/purchase", s.handlePurchase)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)

				r.Post("/", s.handleCreateSweet)
				r.Put("/{id}", s.handleUpdateSweet)
				r.Delete("/{id}", s.handleDeleteSweet)
				r.Post("/{id}/restock", s.handleRestock)
			})
		})
	})

	return r
}

// userPayload is the public shape of an account in API responses.
type userPayload struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func toUserPayload(u *model.User) userPayload {
	return userPayload{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}
}

// --- Auth ---

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	tok, u, err := s.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"token":   tok,
		"user":    toUserPayload(u),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	tok, u, err := s.auth.LoginWithIP(r.Context(), req.Email, req.Password, r.RemoteAddr)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   tok,
		"user":    toUserPayload(u),
	})
}

// --- Catalog ---

type sweetRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	Quantity *int64   `json:"quantity"`
}

func (s *Server) handleListSweets(w http.ResponseWriter, r *http.Request) {
	sweets, err := s.catalog.List(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if sweets == nil {
		sweets = []model.Sweet{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"sweets": sweets})
}

func (s *Server) handleSearchSweets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := model.SweetFilter{
		Name:     q.Get("name"),
		Category: q.Get("category"),
	}
	if raw := q.Get("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid minPrice")
			return
		}
		f.MinPrice = &v
	}
	if raw := q.Get("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid maxPrice")
			return
		}
		f.MaxPrice = &v
	}
	sweets, err := s.catalog.Search(r.Context(), f)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if sweets == nil {
		sweets = []model.Sweet{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"sweets": sweets, "count": len(sweets)})
}

func (s *Server) handleCreateSweet(w http.ResponseWriter, r *http.Request) {
	var req sweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	n := model.NewSweet{}
	if req.Name != nil {
		n.Name = *req.Name
	}
	if req.Category != nil {
		n.Category = *req.Category
	}
	if req.Price != nil {
		n.Price = *req.Price
	}
	if req.Quantity != nil {
		n.Quantity = *req.Quantity
	}
	sweet, err := s.catalog.Create(r.Context(), n)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Sweet added successfully",
		"sweet":   sweet,
	})
}

func (s *Server) handleUpdateSweet(w http.ResponseWriter, r *http.Request) {
	id, ok := sweetID(w, r)
	if !ok {
		return
	}
	var req sweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	up := model.SweetUpdate{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
	}
	sweet, err := s.catalog.Update(r.Context(), id, up)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Sweet updated successfully",
		"sweet":   sweet,
	})
}

func (s *Server) handleDeleteSweet(w http.ResponseWriter, r *http.Request) {
	id, ok := sweetID(w, r)
	if !ok {
		return
	}
	sweet, err := s.catalog.Delete(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Sweet deleted successfully",
		"sweet":   sweet,
	})
}

// --- Inventory ---

type quantityRequest struct {
	Quantity *int64 `json:"quantity"`
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := sweetID(w, r)
	if !ok {
		return
	}
	qty := int64(1) // default purchase quantity
	if r.ContentLength != 0 {
		var req quantityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Quantity != nil {
			qty = *req.Quantity
		}
	}
	sweet, err := s.inventory.Purchase(r.Context(), id, qty)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Purchase successful",
		"sweet":     sweet,
		"purchased": qty,
	})
}

func (s *Server) handleRestock(w http.ResponseWriter, r *http.Request) {
	id, ok := sweetID(w, r)
	if !ok {
		return
	}
	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}
	sweet, err := s.inventory.Restock(r.Context(), id, *req.Quantity)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Restock successful",
		"sweet":     sweet,
		"restocked": *req.Quantity,
	})
}

// sweetID parses the {id} route param. A non-numeric id behaves like an
// unknown one.
func sweetID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusNotFound, "Sweet not found")
		return 0, false
	}
	return id, true
}
