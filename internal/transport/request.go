package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"tienda-api/internal/middleware"
	"tienda-api/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const serverErrorMessage = "Hubo un error, pruebe más tarde"

// decodeBody decodes the JSON request body into v, answering 400 on a
// malformed payload. Reports whether decoding succeeded.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		middleware.RespondWithMessage(w, http.StatusBadRequest, "El cuerpo de la petición no es válido")
		return false
	}
	return true
}

// parseID parses the :id path parameter. The raw value is returned for use
// in messages even when parsing fails.
func parseID(r *http.Request) (int, string, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	return id, raw, err == nil
}

// required describes one required-field check with its Spanish message.
type required struct {
	missing bool
	message string
}

// firstMissing walks the checks in declaration order and returns the
// message of the first missing field. Later fields are never validated.
func firstMissing(fields ...required) string {
	for _, f := range fields {
		if f.missing {
			return f.message
		}
	}
	return ""
}

// guardActive enforces the referential-activity invariant: the referenced
// record must exist and be active at check time. On violation it answers
// 400 with the resource-specific message; on a storage failure it answers
// 500. Reports whether the handler may proceed.
func guardActive[T repository.Record](w http.ResponseWriter, r *http.Request, store repository.Store[T], id int, message string, logger *zap.Logger) bool {
	err := store.AssertActive(r.Context(), id)
	switch {
	case err == nil:
		return true
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrInactive):
		middleware.RespondWithMessage(w, http.StatusBadRequest, message)
		return false
	default:
		logger.Error("Referential guard failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return false
	}
}
