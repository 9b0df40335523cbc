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

const inactiveCountryMessage = "No se puede asignar un país inactivo a una provincia"

type provinceCreateRequest struct {
	Nombre string `json:"nombre"`
	PaisID int    `json:"paisId"`
}

type provinceUpdateRequest struct {
	Nombre *string `json:"nombre"`
	PaisID *int    `json:"paisId"`
}

// ProvinceHandler handles HTTP requests for provinces
type ProvinceHandler struct {
	provinces repository.Store[domain.Province]
	countries repository.Store[domain.Country]
	logger    *zap.Logger
}

func NewProvinceHandler(provinces repository.Store[domain.Province], countries repository.Store[domain.Country], logger *zap.Logger) *ProvinceHandler {
	return &ProvinceHandler{provinces: provinces, countries: countries, logger: logger}
}

func (h *ProvinceHandler) RegisterRoutes(r chi.Router) {
	r.Route("/provinces", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *ProvinceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req provinceCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if msg := firstMissing(
		required{req.Nombre == "", "El nombre es obligatorio"},
		required{req.PaisID == 0, "El id del pais es obligatorio"},
	); msg != "" {
		middleware.RespondWithMessage(w, http.StatusBadRequest, msg)
		return
	}

	if !guardActive(w, r, h.countries, req.PaisID, inactiveCountryMessage, h.logger) {
		return
	}

	province := &domain.Province{Nombre: req.Nombre, PaisID: req.PaisID, IsActive: true}
	if err := h.provinces.Create(r.Context(), province); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			middleware.RespondWithMessage(w, http.StatusBadRequest, "El nombre ingresado ya existe")
			return
		}
		h.logger.Error("Failed to create province", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, province)
}

func (h *ProvinceHandler) List(w http.ResponseWriter, r *http.Request) {
	provinces, err := h.provinces.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list provinces", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, provinces)
}

func (h *ProvinceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "La provincia no fue encontrada")
		return
	}

	province, err := h.provinces.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "La provincia no fue encontrada")
			return
		}
		h.logger.Error("Failed to get province", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, province)
}

func (h *ProvinceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := parseID(r)
	if !ok {
		middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("La provincia %s fue eliminada o no existe, y no se puede editar.", raw))
		return
	}

	var req provinceUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := map[string]any{}
	if req.Nombre != nil {
		patch["nombre"] = *req.Nombre
	}
	if req.PaisID != nil {
		if !guardActive(w, r, h.countries, *req.PaisID, inactiveCountryMessage, h.logger) {
			return
		}
		patch["pais_id"] = *req.PaisID
	}

	province, err := h.provinces.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrInactive):
			middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("La provincia %d fue eliminada o no existe, y no se puede editar.", id))
		case errors.Is(err, repository.ErrDuplicate):
			middleware.RespondWithMessage(w, http.StatusBadRequest, "El nombre ingresado ya existe")
		default:
			h.logger.Error("Failed to update province", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, province)
}

func (h *ProvinceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "Provincia no encontrada")
		return
	}

	if err := h.provinces.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusBadRequest, "Provincia no encontrada")
			return
		}
		h.logger.Error("Failed to delete province", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithMessage(w, http.StatusOK, fmt.Sprintf("La provincia %d fue eliminada", id))
}
