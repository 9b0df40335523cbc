package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tienda-api/internal/domain"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newCountryRouter(store *mockStore[domain.Country]) chi.Router {
	router := chi.NewRouter()
	NewCountryHandler(store, zap.NewNop()).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func doJSONWithToken(t *testing.T, router chi.Router, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response is not valid JSON: %v (body %q)", err, rec.Body.String())
	}
	return payload
}

func TestCountryCreate(t *testing.T) {
	t.Run("missing nombre is rejected without creating a record", func(t *testing.T) {
		store := newMockCountryStore()
		router := newCountryRouter(store)

		rec := doJSON(t, router, http.MethodPost, "/countries", map[string]any{})

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
		if got := decodeJSON(t, rec)["message"]; got != "El nombre es obligatorio" {
			t.Errorf("unexpected message: %v", got)
		}
		if store.count() != 0 {
			t.Errorf("expected no records, got %d", store.count())
		}
	})

	t.Run("valid country is created active", func(t *testing.T) {
		store := newMockCountryStore()
		router := newCountryRouter(store)

		rec := doJSON(t, router, http.MethodPost, "/countries", map[string]any{"nombre": "Argentina"})

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d (body %s)", rec.Code, rec.Body.String())
		}
		payload := decodeJSON(t, rec)
		if payload["nombre"] != "Argentina" {
			t.Errorf("unexpected nombre: %v", payload["nombre"])
		}
		if payload["isActive"] != true {
			t.Errorf("expected isActive true, got %v", payload["isActive"])
		}
	})

	t.Run("duplicate nombre is rejected", func(t *testing.T) {
		store := newMockCountryStore()
		router := newCountryRouter(store)

		doJSON(t, router, http.MethodPost, "/countries", map[string]any{"nombre": "Argentina"})
		rec := doJSON(t, router, http.MethodPost, "/countries", map[string]any{"nombre": "Argentina"})

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
		if got := decodeJSON(t, rec)["message"]; got != "El nombre ingresado ya existe" {
			t.Errorf("unexpected message: %v", got)
		}
	})
}

func TestCountryGetByID(t *testing.T) {
	t.Run("unknown id returns 404", func(t *testing.T) {
		router := newCountryRouter(newMockCountryStore())

		rec := doJSON(t, router, http.MethodGet, "/countries/99", nil)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
		if got := decodeJSON(t, rec)["error"]; got != "El pais no fue encontrado" {
			t.Errorf("unexpected error: %v", got)
		}
	})

	t.Run("non-numeric id behaves like an unknown id", func(t *testing.T) {
		router := newCountryRouter(newMockCountryStore())

		rec := doJSON(t, router, http.MethodGet, "/countries/abc", nil)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
	})

	t.Run("deactivated country is not retrievable", func(t *testing.T) {
		store := newMockCountryStore()
		router := newCountryRouter(store)

		doJSON(t, router, http.MethodPost, "/countries", map[string]any{"nombre": "Argentina"})
		doJSON(t, router, http.MethodDelete, "/countries/1", nil)

		rec := doJSON(t, router, http.MethodGet, "/countries/1", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
	})
}

func TestCountryList(t *testing.T) {
	store := newMockCountryStore()
	router := newCountryRouter(store)

	doJSON(t, router, http.MethodPost, "/countries", map[string]any{"nombre": "Argentina"})
	doJSON(t, router, http.MethodPost, "/countries", map[string]any{"nombre": "Chile"})
	doJSON(t, router, http.MethodDelete, "/countries/2", nil)

	rec := doJSON(t, router, http.MethodGet, "/countries", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var countries []domain.Country
	if err := json.Unmarshal(rec.Body.Bytes(), &countries); err != nil {
		t.Fatalf("response is not a country list: %v", err)
	}
	if len(countries) != 1 || countries[0].Nombre != "Argentina" {
		t.Errorf("expected only the active country, got %+v", countries)
	}
}

func TestCountryUpdate(t *testing.T) {
	t.Run("edits an active country", func(t *testing.T) {
		store := newMockCountryStore()
		router := newCountryRouter(store)

		doJSON(t, router, http.MethodPost, "/countries", map[string]any{"nombre": "Argentina"})
		rec := doJSON(t, router, http.MethodPut, "/countries/1", map[string]any{"nombre": "Uruguay"})

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d (body %s)", rec.Code, rec.Body.String())
		}
		if got := decodeJSON(t, rec)["nombre"]; got != "Uruguay" {
			t.Errorf("unexpected nombre: %v", got)
		}
	})

	t.Run("deactivated country cannot be edited", func(t *testing.T) {
		store := newMockCountryStore()
		router := newCountryRouter(store)

		doJSON(t, router, http.MethodPost, "/countries", map[string]any{"nombre": "Argentina"})
		doJSON(t, router, http.MethodDelete, "/countries/1", nil)

		rec := doJSON(t, router, http.MethodPut, "/countries/1", map[string]any{"nombre": "Uruguay"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
		if got := decodeJSON(t, rec)["message"]; got != "El pais 1 fue eliminado o no existe, y no se puede editar." {
			t.Errorf("unexpected message: %v", got)
		}
	})
}

func TestCountryDelete(t *testing.T) {
	t.Run("soft deletes and reports the id", func(t *testing.T) {
		store := newMockCountryStore()
		router := newCountryRouter(store)

		doJSON(t, router, http.MethodPost, "/countries", map[string]any{"nombre": "Argentina"})
		rec := doJSON(t, router, http.MethodDelete, "/countries/1", nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if got := decodeJSON(t, rec)["message"]; got != "El pais 1 fue eliminado" {
			t.Errorf("unexpected message: %v", got)
		}
	})

	t.Run("deleting twice still succeeds", func(t *testing.T) {
		store := newMockCountryStore()
		router := newCountryRouter(store)

		doJSON(t, router, http.MethodPost, "/countries", map[string]any{"nombre": "Argentina"})
		doJSON(t, router, http.MethodDelete, "/countries/1", nil)

		rec := doJSON(t, router, http.MethodDelete, "/countries/1", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
	})

	t.Run("unknown id returns 400", func(t *testing.T) {
		router := newCountryRouter(newMockCountryStore())

		rec := doJSON(t, router, http.MethodDelete, "/countries/99", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
		if got := decodeJSON(t, rec)["error"]; got != "Pais no encontrado" {
			t.Errorf("unexpected error: %v", got)
		}
	})
}
