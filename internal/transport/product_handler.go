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

type productCreateRequest struct {
	Nombre       string `json:"nombre"`
	Sexo         string `json:"sexo"`
	TipoProducto string `json:"tipoProducto"`
}

type productUpdateRequest struct {
	Nombre       *string `json:"nombre"`
	Sexo         *string `json:"sexo"`
	TipoProducto *string `json:"tipoProducto"`
}

// ProductHandler handles HTTP requests for the product catalog. Reads are
// public; writes require the admin gates passed to RegisterRoutes.
type ProductHandler struct {
	products repository.Store[domain.Product]
	logger   *zap.Logger
}

func NewProductHandler(products repository.Store[domain.Product], logger *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

func (h *ProductHandler) RegisterRoutes(r chi.Router, gates ...func(http.Handler) http.Handler) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(gates...)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if msg := firstMissing(
		required{req.Nombre == "", "El nombre es obligatorio"},
		required{req.Sexo == "", "El sexo es obligatorio"},
		required{req.TipoProducto == "", "El tipo de producto es obligatorio"},
	); msg != "" {
		middleware.RespondWithMessage(w, http.StatusBadRequest, msg)
		return
	}

	product := &domain.Product{
		Nombre:       req.Nombre,
		Sexo:         req.Sexo,
		TipoProducto: req.TipoProducto,
		IsActive:     true,
	}
	if err := h.products.Create(r.Context(), product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			middleware.RespondWithMessage(w, http.StatusBadRequest, "El nombre ingresado ya existe")
			return
		}
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "El producto no fue encontrado")
		return
	}

	product, err := h.products.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "El producto no fue encontrado")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := parseID(r)
	if !ok {
		middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("El producto %s fue eliminado o no existe, y no se puede editar.", raw))
		return
	}

	var req productUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := map[string]any{}
	if req.Nombre != nil {
		patch["nombre"] = *req.Nombre
	}
	if req.Sexo != nil {
		patch["sexo"] = *req.Sexo
	}
	if req.TipoProducto != nil {
		patch["tipo_producto"] = *req.TipoProducto
	}

	product, err := h.products.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrInactive):
			middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("El producto %d fue eliminado o no existe, y no se puede editar.", id))
		case errors.Is(err, repository.ErrDuplicate):
			middleware.RespondWithMessage(w, http.StatusBadRequest, "El nombre ingresado ya existe")
		default:
			h.logger.Error("Failed to update product", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "Producto no encontrado")
		return
	}

	if err := h.products.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusBadRequest, "Producto no encontrado")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithMessage(w, http.StatusOK, fmt.Sprintf("El producto %d fue eliminado", id))
}
