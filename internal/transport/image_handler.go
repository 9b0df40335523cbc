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

const inactiveDetailForImageMessage = "No se puede asignar un detalle de producto inactivo a una imagen"

type imageCreateRequest struct {
	URL               string `json:"url"`
	DetalleProductoID *int   `json:"detalleProductoId"`
}

type imageUpdateRequest struct {
	URL               *string `json:"url"`
	DetalleProductoID *int    `json:"detalleProductoId"`
}

// ImageHandler handles HTTP requests for product images.
type ImageHandler struct {
	images  repository.Store[domain.Image]
	details repository.Store[domain.ProductDetail]
	logger  *zap.Logger
}

func NewImageHandler(images repository.Store[domain.Image], details repository.Store[domain.ProductDetail], logger *zap.Logger) *ImageHandler {
	return &ImageHandler{images: images, details: details, logger: logger}
}

func (h *ImageHandler) RegisterRoutes(r chi.Router) {
	r.Route("/images", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *ImageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req imageCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if msg := firstMissing(
		required{req.URL == "", "La url es obligatoria"},
		required{req.DetalleProductoID == nil, "El id del detalle producto es obligatorio"},
	); msg != "" {
		middleware.RespondWithMessage(w, http.StatusBadRequest, msg)
		return
	}

	if !guardActive(w, r, h.details, *req.DetalleProductoID, inactiveDetailForImageMessage, h.logger) {
		return
	}

	image := &domain.Image{
		URL:               req.URL,
		DetalleProductoID: *req.DetalleProductoID,
		IsActive:          true,
	}
	if err := h.images.Create(r.Context(), image); err != nil {
		h.logger.Error("Failed to create image", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, image)
}

func (h *ImageHandler) List(w http.ResponseWriter, r *http.Request) {
	images, err := h.images.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list images", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, images)
}

func (h *ImageHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "La imagen no fue encontrada")
		return
	}

	image, err := h.images.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "La imagen no fue encontrada")
			return
		}
		h.logger.Error("Failed to get image", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, image)
}

func (h *ImageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := parseID(r)
	if !ok {
		middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("La imagen %s fue eliminada o no existe, y no se puede editar.", raw))
		return
	}

	var req imageUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := map[string]any{}
	if req.URL != nil {
		patch["url"] = *req.URL
	}
	if req.DetalleProductoID != nil {
		if !guardActive(w, r, h.details, *req.DetalleProductoID, inactiveDetailForImageMessage, h.logger) {
			return
		}
		patch["detalle_producto_id"] = *req.DetalleProductoID
	}

	image, err := h.images.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInactive) {
			middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("La imagen %d fue eliminada o no existe, y no se puede editar.", id))
			return
		}
		h.logger.Error("Failed to update image", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, image)
}

func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "Imagen no encontrada")
		return
	}

	if err := h.images.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusBadRequest, "Imagen no encontrada")
			return
		}
		h.logger.Error("Failed to delete image", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithMessage(w, http.StatusOK, fmt.Sprintf("La imagen %d fue eliminada", id))
}
