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

const inactiveLocalityMessage = "No se puede asignar una localidad inactiva a una dirección"

type addressCreateRequest struct {
	Calle        string `json:"calle"`
	Numero       int    `json:"numero"`
	DeptoNro     string `json:"deptoNro"`
	CodigoPostal string `json:"codigoPostal"`
	LocalidadID  int    `json:"localidadId"`
}

type addressUpdateRequest struct {
	Calle        *string `json:"calle"`
	Numero       *int    `json:"numero"`
	DeptoNro     *string `json:"deptoNro"`
	CodigoPostal *string `json:"codigoPostal"`
	LocalidadID  *int    `json:"localidadId"`
}

// AddressHandler handles HTTP requests for addresses. The route prefix
// keeps the legacy spelling for wire compatibility.
type AddressHandler struct {
	addresses  repository.Store[domain.Address]
	localities repository.Store[domain.Locality]
	logger     *zap.Logger
}

func NewAddressHandler(addresses repository.Store[domain.Address], localities repository.Store[domain.Locality], logger *zap.Logger) *AddressHandler {
	return &AddressHandler{addresses: addresses, localities: localities, logger: logger}
}

func (h *AddressHandler) RegisterRoutes(r chi.Router, gates ...func(http.Handler) http.Handler) {
	r.Route("/adress", func(r chi.Router) {
		r.Use(gates...)
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req addressCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if msg := firstMissing(
		required{req.Calle == "", "La calle es obligatoria"},
		required{req.Numero == 0, "El número es obligatorio"},
		required{req.DeptoNro == "", "El número de departamento es obligatorio"},
		required{req.CodigoPostal == "", "El código postal es obligatorio"},
		required{req.LocalidadID == 0, "El id de la localidad es obligatorio"},
	); msg != "" {
		middleware.RespondWithMessage(w, http.StatusBadRequest, msg)
		return
	}

	if !guardActive(w, r, h.localities, req.LocalidadID, inactiveLocalityMessage, h.logger) {
		return
	}

	address := &domain.Address{
		Calle:        req.Calle,
		Numero:       req.Numero,
		DeptoNro:     req.DeptoNro,
		CodigoPostal: req.CodigoPostal,
		LocalidadID:  req.LocalidadID,
		IsActive:     true,
	}
	if err := h.addresses.Create(r.Context(), address); err != nil {
		h.logger.Error("Failed to create address", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, address)
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.addresses.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list addresses", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, addresses)
}

func (h *AddressHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "La dirección no fue encontrada")
		return
	}

	address, err := h.addresses.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "La dirección no fue encontrada")
			return
		}
		h.logger.Error("Failed to get address", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, address)
}

func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := parseID(r)
	if !ok {
		middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("La dirección %s fue eliminada o no existe, y no se puede editar.", raw))
		return
	}

	var req addressUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := map[string]any{}
	if req.Calle != nil {
		patch["calle"] = *req.Calle
	}
	if req.Numero != nil {
		patch["numero"] = *req.Numero
	}
	if req.DeptoNro != nil {
		patch["depto_nro"] = *req.DeptoNro
	}
	if req.CodigoPostal != nil {
		patch["codigo_postal"] = *req.CodigoPostal
	}
	if req.LocalidadID != nil {
		if !guardActive(w, r, h.localities, *req.LocalidadID, inactiveLocalityMessage, h.logger) {
			return
		}
		patch["localidad_id"] = *req.LocalidadID
	}

	address, err := h.addresses.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrInactive):
			middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("La dirección %d fue eliminada o no existe, y no se puede editar.", id))
		default:
			h.logger.Error("Failed to update address", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, address)
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "Dirección no encontrada")
		return
	}

	if err := h.addresses.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusBadRequest, "Dirección no encontrada")
			return
		}
		h.logger.Error("Failed to delete address", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithMessage(w, http.StatusOK, fmt.Sprintf("La dirección %d fue eliminada", id))
}
