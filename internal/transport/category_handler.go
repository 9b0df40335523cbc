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

const inactiveParentCategoryMessage = "No se puede asignar una categoría inactiva como categoría padre"

type categoryCreateRequest struct {
	Nombre           string `json:"nombre"`
	CategoriaPadreID *int   `json:"categoriaPadreId"`
}

type categoryUpdateRequest struct {
	Nombre           *string `json:"nombre"`
	CategoriaPadreID *int    `json:"categoriaPadreId"`
}

// CategoryHandler handles HTTP requests for categories. Categories form a
// tree through an optional parent reference.
type CategoryHandler struct {
	categories repository.Store[domain.Category]
	logger     *zap.Logger
}

func NewCategoryHandler(categories repository.Store[domain.Category], logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: logger}
}

func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Nombre == "" {
		middleware.RespondWithMessage(w, http.StatusBadRequest, "El nombre es obligatorio")
		return
	}

	if req.CategoriaPadreID != nil {
		if !guardActive(w, r, h.categories, *req.CategoriaPadreID, inactiveParentCategoryMessage, h.logger) {
			return
		}
	}

	category := &domain.Category{
		Nombre:           req.Nombre,
		CategoriaPadreID: req.CategoriaPadreID,
		IsActive:         true,
	}
	if err := h.categories.Create(r.Context(), category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			middleware.RespondWithMessage(w, http.StatusBadRequest, "El nombre ingresado ya existe")
			return
		}
		h.logger.Error("Failed to create category", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "La categoría no fue encontrada")
		return
	}

	category, err := h.categories.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "La categoría no fue encontrada")
			return
		}
		h.logger.Error("Failed to get category", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := parseID(r)
	if !ok {
		middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("La categoría %s fue eliminada o no existe, y no se puede editar.", raw))
		return
	}

	var req categoryUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := map[string]any{}
	if req.Nombre != nil {
		patch["nombre"] = *req.Nombre
	}
	if req.CategoriaPadreID != nil {
		if !guardActive(w, r, h.categories, *req.CategoriaPadreID, inactiveParentCategoryMessage, h.logger) {
			return
		}
		patch["categoria_padre_id"] = *req.CategoriaPadreID
	}

	category, err := h.categories.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrInactive):
			middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("La categoría %d fue eliminada o no existe, y no se puede editar.", id))
		case errors.Is(err, repository.ErrDuplicate):
			middleware.RespondWithMessage(w, http.StatusBadRequest, "El nombre ingresado ya existe")
		default:
			h.logger.Error("Failed to update category", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "Categoría no encontrada")
		return
	}

	if err := h.categories.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusBadRequest, "Categoría no encontrada")
			return
		}
		h.logger.Error("Failed to delete category", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithMessage(w, http.StatusOK, fmt.Sprintf("La categoría %d fue eliminada", id))
}
