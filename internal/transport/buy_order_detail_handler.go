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

const (
	inactiveOrderMessage          = "No se puede asignar una orden de compra inactiva a un detalle de orden"
	inactiveDetailForOrderMessage = "No se puede asignar un detalle de producto inactivo a un detalle de orden"
	orderDetailNotEditableFmt     = "El detalle de orden de compra %v fue eliminado o no existe, y no se puede editar."
)

type buyOrderDetailCreateRequest struct {
	Cantidad          *int     `json:"cantidad"`
	Subtotal          *float64 `json:"subtotal"`
	OrdenCompraID     *int     `json:"ordenCompraId"`
	DetalleProductoID *int     `json:"detalleProductoId"`
}

type buyOrderDetailUpdateRequest struct {
	Cantidad          *int     `json:"cantidad"`
	Subtotal          *float64 `json:"subtotal"`
	OrdenCompraID     *int     `json:"ordenCompraId"`
	DetalleProductoID *int     `json:"detalleProductoId"`
}

// BuyOrderDetailHandler handles HTTP requests for the line items of a
// purchase order.
type BuyOrderDetailHandler struct {
	lines   repository.Store[domain.BuyOrderDetail]
	orders  repository.Store[domain.BuyOrder]
	details repository.Store[domain.ProductDetail]
	logger  *zap.Logger
}

func NewBuyOrderDetailHandler(
	lines repository.Store[domain.BuyOrderDetail],
	orders repository.Store[domain.BuyOrder],
	details repository.Store[domain.ProductDetail],
	logger *zap.Logger,
) *BuyOrderDetailHandler {
	return &BuyOrderDetailHandler{lines: lines, orders: orders, details: details, logger: logger}
}

func (h *BuyOrderDetailHandler) RegisterRoutes(r chi.Router) {
	r.Route("/buyOrderDetails", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *BuyOrderDetailHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req buyOrderDetailCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if msg := firstMissing(
		required{req.Cantidad == nil, "La cantidad del producto es obligatoria"},
		required{req.Subtotal == nil, "El subtotal de la compra es obligatorio"},
		required{req.OrdenCompraID == nil, "El id de la orden de compra es obligatorio"},
		required{req.DetalleProductoID == nil, "El id del detalle del producto es obligatorio"},
	); msg != "" {
		middleware.RespondWithMessage(w, http.StatusBadRequest, msg)
		return
	}

	if !guardActive(w, r, h.orders, *req.OrdenCompraID, inactiveOrderMessage, h.logger) {
		return
	}
	if !guardActive(w, r, h.details, *req.DetalleProductoID, inactiveDetailForOrderMessage, h.logger) {
		return
	}

	line := &domain.BuyOrderDetail{
		Cantidad:          *req.Cantidad,
		Subtotal:          *req.Subtotal,
		OrdenCompraID:     *req.OrdenCompraID,
		DetalleProductoID: *req.DetalleProductoID,
		IsActive:          true,
	}
	if err := h.lines.Create(r.Context(), line); err != nil {
		h.logger.Error("Failed to create buy order detail", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, line)
}

func (h *BuyOrderDetailHandler) List(w http.ResponseWriter, r *http.Request) {
	lines, err := h.lines.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list buy order details", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, lines)
}

func (h *BuyOrderDetailHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "El detalle de orden de compra no fue encontrado")
		return
	}

	line, err := h.lines.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "El detalle de orden de compra no fue encontrado")
			return
		}
		h.logger.Error("Failed to get buy order detail", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, line)
}

func (h *BuyOrderDetailHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := parseID(r)
	if !ok {
		middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf(orderDetailNotEditableFmt, raw))
		return
	}

	var req buyOrderDetailUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := map[string]any{}
	if req.Cantidad != nil {
		patch["cantidad"] = *req.Cantidad
	}
	if req.Subtotal != nil {
		patch["subtotal"] = *req.Subtotal
	}
	if req.OrdenCompraID != nil {
		if !guardActive(w, r, h.orders, *req.OrdenCompraID, inactiveOrderMessage, h.logger) {
			return
		}
		patch["orden_compra_id"] = *req.OrdenCompraID
	}
	if req.DetalleProductoID != nil {
		if !guardActive(w, r, h.details, *req.DetalleProductoID, inactiveDetailForOrderMessage, h.logger) {
			return
		}
		patch["detalle_producto_id"] = *req.DetalleProductoID
	}

	line, err := h.lines.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInactive) {
			middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf(orderDetailNotEditableFmt, id))
			return
		}
		h.logger.Error("Failed to update buy order detail", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, line)
}

func (h *BuyOrderDetailHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "Detalle de orden de compra no encontrado")
		return
	}

	if err := h.lines.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusBadRequest, "Detalle de orden de compra no encontrado")
			return
		}
		h.logger.Error("Failed to delete buy order detail", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithMessage(w, http.StatusOK, fmt.Sprintf("El detalle de orden de compra %d fue eliminado", id))
}
