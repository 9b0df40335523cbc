package transport

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"tienda-api/internal/domain"
	"tienda-api/internal/middleware"
	"tienda-api/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const inactiveAddressForOrderMessage = "No se puede asignar una dirección inactiva a una orden de compra"

type buyOrderCreateRequest struct {
	Total         *float64   `json:"total"`
	FechaDeCompra *time.Time `json:"fechaDeCompra"`
	DireccionID   *int       `json:"direccionId"`
}

type buyOrderUpdateRequest struct {
	Total         *float64   `json:"total"`
	FechaDeCompra *time.Time `json:"fechaDeCompra"`
	DireccionID   *int       `json:"direccionId"`
}

// BuyOrderHandler handles HTTP requests for purchase orders.
type BuyOrderHandler struct {
	orders    repository.Store[domain.BuyOrder]
	addresses repository.Store[domain.Address]
	logger    *zap.Logger
}

func NewBuyOrderHandler(orders repository.Store[domain.BuyOrder], addresses repository.Store[domain.Address], logger *zap.Logger) *BuyOrderHandler {
	return &BuyOrderHandler{orders: orders, addresses: addresses, logger: logger}
}

func (h *BuyOrderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/buyOrders", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *BuyOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req buyOrderCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if msg := firstMissing(
		required{req.Total == nil, "El monto total es obligatorio"},
		required{req.FechaDeCompra == nil, "La fecha de compra es obligatoria"},
		required{req.DireccionID == nil, "El id de la dirección es obligatorio"},
	); msg != "" {
		middleware.RespondWithMessage(w, http.StatusBadRequest, msg)
		return
	}

	if !guardActive(w, r, h.addresses, *req.DireccionID, inactiveAddressForOrderMessage, h.logger) {
		return
	}

	order := &domain.BuyOrder{
		Total:         *req.Total,
		FechaDeCompra: *req.FechaDeCompra,
		DireccionID:   *req.DireccionID,
		IsActive:      true,
	}
	if err := h.orders.Create(r.Context(), order); err != nil {
		h.logger.Error("Failed to create buy order", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

func (h *BuyOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list buy orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

func (h *BuyOrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "La orden de compra no fue encontrada")
		return
	}

	order, err := h.orders.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "La orden de compra no fue encontrada")
			return
		}
		h.logger.Error("Failed to get buy order", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

func (h *BuyOrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := parseID(r)
	if !ok {
		middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("La orden de compra %s fue eliminada o no existe, y no se puede editar.", raw))
		return
	}

	var req buyOrderUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := map[string]any{}
	if req.Total != nil {
		patch["total"] = *req.Total
	}
	if req.FechaDeCompra != nil {
		patch["fecha_de_compra"] = *req.FechaDeCompra
	}
	if req.DireccionID != nil {
		if !guardActive(w, r, h.addresses, *req.DireccionID, inactiveAddressForOrderMessage, h.logger) {
			return
		}
		patch["direccion_id"] = *req.DireccionID
	}

	order, err := h.orders.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInactive) {
			middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("La orden de compra %d fue eliminada o no existe, y no se puede editar.", id))
			return
		}
		h.logger.Error("Failed to update buy order", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

func (h *BuyOrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "Orden de compra no encontrada")
		return
	}

	if err := h.orders.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusBadRequest, "Orden de compra no encontrada")
			return
		}
		h.logger.Error("Failed to delete buy order", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithMessage(w, http.StatusOK, fmt.Sprintf("La orden de compra %d fue eliminada", id))
}
