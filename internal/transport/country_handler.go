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

type countryCreateRequest struct {
	Nombre string `json:"nombre"`
}

type countryUpdateRequest struct {
	Nombre *string `json:"nombre"`
}

// CountryHandler handles HTTP requests for countries
type CountryHandler struct {
	countries repository.Store[domain.Country]
	logger    *zap.Logger
}

func NewCountryHandler(countries repository.Store[domain.Country], logger *zap.Logger) *CountryHandler {
	return &CountryHandler{countries: countries, logger: logger}
}

func (h *CountryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/countries", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *CountryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req countryCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if msg := firstMissing(
		required{req.Nombre == "", "El nombre es obligatorio"},
	); msg != "" {
		middleware.RespondWithMessage(w, http.StatusBadRequest, msg)
		return
	}

	country := &domain.Country{Nombre: req.Nombre, IsActive: true}
	if err := h.countries.Create(r.Context(), country); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			middleware.RespondWithMessage(w, http.StatusBadRequest, "El nombre ingresado ya existe")
			return
		}
		h.logger.Error("Failed to create country", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, country)
}

func (h *CountryHandler) List(w http.ResponseWriter, r *http.Request) {
	countries, err := h.countries.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list countries", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, countries)
}

func (h *CountryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "El pais no fue encontrado")
		return
	}

	country, err := h.countries.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "El pais no fue encontrado")
			return
		}
		h.logger.Error("Failed to get country", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, country)
}

func (h *CountryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := parseID(r)
	if !ok {
		middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("El pais %s fue eliminado o no existe, y no se puede editar.", raw))
		return
	}

	var req countryUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := map[string]any{}
	if req.Nombre != nil {
		patch["nombre"] = *req.Nombre
	}

	country, err := h.countries.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrInactive):
			middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("El pais %d fue eliminado o no existe, y no se puede editar.", id))
		case errors.Is(err, repository.ErrDuplicate):
			middleware.RespondWithMessage(w, http.StatusBadRequest, "El nombre ingresado ya existe")
		default:
			h.logger.Error("Failed to update country", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, country)
}

func (h *CountryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "Pais no encontrado")
		return
	}

	if err := h.countries.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusBadRequest, "Pais no encontrado")
			return
		}
		h.logger.Error("Failed to delete country", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithMessage(w, http.StatusOK, fmt.Sprintf("El pais %d fue eliminado", id))
}
