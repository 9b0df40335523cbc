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

type discountCreateRequest struct {
	Porcentaje  *float64   `json:"porcentaje"`
	FechaInicio *time.Time `json:"fechaInicio"`
	FechaFinal  *time.Time `json:"fechaFinal"`
}

type discountUpdateRequest struct {
	Porcentaje  *float64   `json:"porcentaje"`
	FechaInicio *time.Time `json:"fechaInicio"`
	FechaFinal  *time.Time `json:"fechaFinal"`
}

// DiscountHandler handles HTTP requests for discounts. All routes run behind
// the admin gates passed to RegisterRoutes.
type DiscountHandler struct {
	discounts repository.Store[domain.Discount]
	logger    *zap.Logger
}

func NewDiscountHandler(discounts repository.Store[domain.Discount], logger *zap.Logger) *DiscountHandler {
	return &DiscountHandler{discounts: discounts, logger: logger}
}

func (h *DiscountHandler) RegisterRoutes(r chi.Router, gates ...func(http.Handler) http.Handler) {
	r.Route("/discounts", func(r chi.Router) {
		r.Use(gates...)
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *DiscountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req discountCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if msg := firstMissing(
		required{req.Porcentaje == nil, "El porcentaje es obligatorio"},
		required{req.FechaInicio == nil, "La fecha de inicio es obligatoria"},
		required{req.FechaFinal == nil, "La fecha final es obligatoria"},
	); msg != "" {
		middleware.RespondWithMessage(w, http.StatusBadRequest, msg)
		return
	}

	discount := &domain.Discount{
		Porcentaje:  *req.Porcentaje,
		FechaInicio: *req.FechaInicio,
		FechaFinal:  *req.FechaFinal,
		IsActive:    true,
	}
	if err := h.discounts.Create(r.Context(), discount); err != nil {
		h.logger.Error("Failed to create discount", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, discount)
}

func (h *DiscountHandler) List(w http.ResponseWriter, r *http.Request) {
	discounts, err := h.discounts.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list discounts", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, discounts)
}

func (h *DiscountHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "El descuento no fue encontrado")
		return
	}

	discount, err := h.discounts.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "El descuento no fue encontrado")
			return
		}
		h.logger.Error("Failed to get discount", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, discount)
}

func (h *DiscountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := parseID(r)
	if !ok {
		middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("El descuento %s fue eliminado o no existe, y no se puede editar.", raw))
		return
	}

	var req discountUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := map[string]any{}
	if req.Porcentaje != nil {
		patch["porcentaje"] = *req.Porcentaje
	}
	if req.FechaInicio != nil {
		patch["fecha_inicio"] = *req.FechaInicio
	}
	if req.FechaFinal != nil {
		patch["fecha_final"] = *req.FechaFinal
	}

	discount, err := h.discounts.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInactive) {
			middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("El descuento %d fue eliminado o no existe, y no se puede editar.", id))
			return
		}
		h.logger.Error("Failed to update discount", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, discount)
}

func (h *DiscountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "Descuento no encontrado")
		return
	}

	if err := h.discounts.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusBadRequest, "Descuento no encontrado")
			return
		}
		h.logger.Error("Failed to delete discount", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithMessage(w, http.StatusOK, fmt.Sprintf("El descuento %d fue eliminado", id))
}
