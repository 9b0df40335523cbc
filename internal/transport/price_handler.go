package transport

import (
	"errors"
	"fmt"
	"net/http"

	"tienda-api/internal/domain"
	"tienda-api/internal/middleware"
	"tienda-api/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type priceCreateRequest struct {
	PrecioCompra *float64 `json:"precioCompra"`
	PrecioVenta  *float64 `json:"precioVenta"`
}

type priceUpdateRequest struct {
	PrecioCompra *float64 `json:"precioCompra"`
	PrecioVenta  *float64 `json:"precioVenta"`
}

// PriceHandler handles HTTP requests for prices. A price pairs a purchase
// cost with a sale value and is attached to product details.
type PriceHandler struct {
	prices repository.Store[domain.Price]
	logger *zap.Logger
}

func NewPriceHandler(prices repository.Store[domain.Price], logger *zap.Logger) *PriceHandler {
	return &PriceHandler{prices: prices, logger: logger}
}

func (h *PriceHandler) RegisterRoutes(r chi.Router) {
	r.Route("/prices", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *PriceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req priceCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if msg := firstMissing(
		required{req.PrecioCompra == nil, "El precio de compra es obligatorio"},
		required{req.PrecioVenta == nil, "El precio de venta es obligatorio"},
	); msg != "" {
		middleware.RespondWithMessage(w, http.StatusBadRequest, msg)
		return
	}

	price := &domain.Price{
		PrecioCompra: *req.PrecioCompra,
		PrecioVenta:  *req.PrecioVenta,
		IsActive:     true,
	}
	if err := h.prices.Create(r.Context(), price); err != nil {
		h.logger.Error("Failed to create price", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, price)
}

func (h *PriceHandler) List(w http.ResponseWriter, r *http.Request) {
	prices, err := h.prices.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list prices", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, prices)
}

func (h *PriceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "El precio no fue encontrado")
		return
	}

	price, err := h.prices.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "El precio no fue encontrado")
			return
		}
		h.logger.Error("Failed to get price", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, price)
}

func (h *PriceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := parseID(r)
	if !ok {
		middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("El precio %s fue eliminado o no existe, y no se puede editar.", raw))
		return
	}

	var req priceUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := map[string]any{}
	if req.PrecioCompra != nil {
		patch["precio_compra"] = *req.PrecioCompra
	}
	if req.PrecioVenta != nil {
		patch["precio_venta"] = *req.PrecioVenta
	}

	price, err := h.prices.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInactive) {
			middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("El precio %d fue eliminado o no existe, y no se puede editar.", id))
			return
		}
		h.logger.Error("Failed to update price", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, price)
}

func (h *PriceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "Precio no encontrado")
		return
	}

	if err := h.prices.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusBadRequest, "Precio no encontrado")
			return
		}
		h.logger.Error("Failed to delete price", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithMessage(w, http.StatusOK, fmt.Sprintf("El precio %d fue eliminado", id))
}
