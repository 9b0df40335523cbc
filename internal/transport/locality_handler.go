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

const inactiveProvinceMessage = "No se puede asignar una provincia inactiva a una localidad"

type localityCreateRequest struct {
	Nombre      string `json:"nombre"`
	ProvinciaID int    `json:"provinciaId"`
}

type localityUpdateRequest struct {
	Nombre      *string `json:"nombre"`
	ProvinciaID *int    `json:"provinciaId"`
}

// LocalityHandler handles HTTP requests for localities
type LocalityHandler struct {
	localities repository.Store[domain.Locality]
	provinces  repository.Store[domain.Province]
	logger     *zap.Logger
}

func NewLocalityHandler(localities repository.Store[domain.Locality], provinces repository.Store[domain.Province], logger *zap.Logger) *LocalityHandler {
	return &LocalityHandler{localities: localities, provinces: provinces, logger: logger}
}

func (h *LocalityHandler) RegisterRoutes(r chi.Router) {
	r.Route("/localities", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *LocalityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req localityCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if msg := firstMissing(
		required{req.Nombre == "", "El nombre es obligatorio"},
		required{req.ProvinciaID == 0, "El id de la provincia es obligatorio"},
	); msg != "" {
		middleware.RespondWithMessage(w, http.StatusBadRequest, msg)
		return
	}

	if !guardActive(w, r, h.provinces, req.ProvinciaID, inactiveProvinceMessage, h.logger) {
		return
	}

	locality := &domain.Locality{Nombre: req.Nombre, ProvinciaID: req.ProvinciaID, IsActive: true}
	if err := h.localities.Create(r.Context(), locality); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			middleware.RespondWithMessage(w, http.StatusBadRequest, "El nombre ingresado ya existe")
			return
		}
		h.logger.Error("Failed to create locality", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, locality)
}

func (h *LocalityHandler) List(w http.ResponseWriter, r *http.Request) {
	localities, err := h.localities.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list localities", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, localities)
}

func (h *LocalityHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "La localidad no fue encontrada")
		return
	}

	locality, err := h.localities.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "La localidad no fue encontrada")
			return
		}
		h.logger.Error("Failed to get locality", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, locality)
}

func (h *LocalityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := parseID(r)
	if !ok {
		middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("La localidad %s fue eliminada o no existe, y no se puede editar.", raw))
		return
	}

	var req localityUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := map[string]any{}
	if req.Nombre != nil {
		patch["nombre"] = *req.Nombre
	}
	if req.ProvinciaID != nil {
		if !guardActive(w, r, h.provinces, *req.ProvinciaID, inactiveProvinceMessage, h.logger) {
			return
		}
		patch["provincia_id"] = *req.ProvinciaID
	}

	locality, err := h.localities.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrInactive):
			middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("La localidad %d fue eliminada o no existe, y no se puede editar.", id))
		case errors.Is(err, repository.ErrDuplicate):
			middleware.RespondWithMessage(w, http.StatusBadRequest, "El nombre ingresado ya existe")
		default:
			h.logger.Error("Failed to update locality", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, locality)
}

func (h *LocalityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "Localidad no encontrada")
		return
	}

	if err := h.localities.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusBadRequest, "Localidad no encontrada")
			return
		}
		h.logger.Error("Failed to delete locality", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithMessage(w, http.StatusOK, fmt.Sprintf("La localidad %d fue eliminada", id))
}
