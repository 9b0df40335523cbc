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
	inactiveProductMessage      = "No se puede asignar un producto inactivo a un detalle de producto"
	inactivePriceMessage        = "No se puede asignar un precio inactivo a un detalle de producto"
	productDetailNotEditableFmt = "El detalle de producto %v fue eliminado o no existe, y no se puede editar."
)

type productDetailCreateRequest struct {
	Estado     string `json:"estado"`
	Talle      string `json:"talle"`
	Color      string `json:"color"`
	Marca      string `json:"marca"`
	Stock      *int   `json:"stock"`
	ProductoID *int   `json:"productoId"`
	PrecioID   *int   `json:"precioId"`
}

type productDetailUpdateRequest struct {
	Estado     *string `json:"estado"`
	Talle      *string `json:"talle"`
	Color      *string `json:"color"`
	Marca      *string `json:"marca"`
	Stock      *int    `json:"stock"`
	ProductoID *int    `json:"productoId"`
	PrecioID   *int    `json:"precioId"`
}

// ProductDetailHandler handles HTTP requests for product variants: the
// concrete size/color/stock entries that hang off a product and carry its
// price and images.
type ProductDetailHandler struct {
	details  repository.Store[domain.ProductDetail]
	products repository.Store[domain.Product]
	prices   repository.Store[domain.Price]
	logger   *zap.Logger
}

func NewProductDetailHandler(
	details repository.Store[domain.ProductDetail],
	products repository.Store[domain.Product],
	prices repository.Store[domain.Price],
	logger *zap.Logger,
) *ProductDetailHandler {
	return &ProductDetailHandler{details: details, products: products, prices: prices, logger: logger}
}

func (h *ProductDetailHandler) RegisterRoutes(r chi.Router) {
	r.Route("/productDetails", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *ProductDetailHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productDetailCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if msg := firstMissing(
		required{req.Estado == "", "El estado del producto es obligatorio"},
		required{req.Talle == "", "El talle del producto es obligatorio"},
		required{req.Color == "", "El color del producto es obligatorio"},
		required{req.Marca == "", "La marca del producto es obligatoria"},
		required{req.Stock == nil, "El stock del producto es obligatorio"},
		required{req.ProductoID == nil, "El id del producto es obligatorio"},
		required{req.PrecioID == nil, "El id del precio del producto es obligatorio"},
	); msg != "" {
		middleware.RespondWithMessage(w, http.StatusBadRequest, msg)
		return
	}

	if !guardActive(w, r, h.products, *req.ProductoID, inactiveProductMessage, h.logger) {
		return
	}
	if !guardActive(w, r, h.prices, *req.PrecioID, inactivePriceMessage, h.logger) {
		return
	}

	detail := &domain.ProductDetail{
		Estado:     req.Estado,
		Talle:      req.Talle,
		Color:      req.Color,
		Marca:      req.Marca,
		Stock:      *req.Stock,
		ProductoID: *req.ProductoID,
		PrecioID:   *req.PrecioID,
		IsActive:   true,
	}
	if err := h.details.Create(r.Context(), detail); err != nil {
		h.logger.Error("Failed to create product detail", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, detail)
}

func (h *ProductDetailHandler) List(w http.ResponseWriter, r *http.Request) {
	details, err := h.details.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list product details", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, details)
}

func (h *ProductDetailHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "El detalle de producto no fue encontrado")
		return
	}

	detail, err := h.details.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "El detalle de producto no fue encontrado")
			return
		}
		h.logger.Error("Failed to get product detail", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, detail)
}

func (h *ProductDetailHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := parseID(r)
	if !ok {
		middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf(productDetailNotEditableFmt, raw))
		return
	}

	var req productDetailUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := map[string]any{}
	if req.Estado != nil {
		patch["estado"] = *req.Estado
	}
	if req.Talle != nil {
		patch["talle"] = *req.Talle
	}
	if req.Color != nil {
		patch["color"] = *req.Color
	}
	if req.Marca != nil {
		patch["marca"] = *req.Marca
	}
	if req.Stock != nil {
		patch["stock"] = *req.Stock
	}
	if req.ProductoID != nil {
		if !guardActive(w, r, h.products, *req.ProductoID, inactiveProductMessage, h.logger) {
			return
		}
		patch["producto_id"] = *req.ProductoID
	}
	if req.PrecioID != nil {
		if !guardActive(w, r, h.prices, *req.PrecioID, inactivePriceMessage, h.logger) {
			return
		}
		patch["precio_id"] = *req.PrecioID
	}

	detail, err := h.details.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInactive) {
			middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf(productDetailNotEditableFmt, id))
			return
		}
		h.logger.Error("Failed to update product detail", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, detail)
}

func (h *ProductDetailHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "Detalle de producto no encontrado")
		return
	}

	if err := h.details.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusBadRequest, "Detalle de producto no encontrado")
			return
		}
		h.logger.Error("Failed to delete product detail", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithMessage(w, http.StatusOK, fmt.Sprintf("El detalle de producto %d fue eliminado", id))
}
