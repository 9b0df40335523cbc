package transport

import (
	"net/http"
	"testing"

	"tienda-api/internal/domain"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newProvinceRouter(provinces *mockStore[domain.Province], countries *mockStore[domain.Country]) chi.Router {
	router := chi.NewRouter()
	NewProvinceHandler(provinces, countries, zap.NewNop()).RegisterRoutes(router)
	NewCountryHandler(countries, zap.NewNop()).RegisterRoutes(router)
	return router
}

func TestProvinceCreateGuardsCountry(t *testing.T) {
	t.Run("missing country blocks the create", func(t *testing.T) {
		provinces := newMockProvinceStore()
		router := newProvinceRouter(provinces, newMockCountryStore())

		rec := doJSON(t, router, http.MethodPost, "/provinces", map[string]any{
			"nombre": "Mendoza",
			"paisId": 42,
		})

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
		if got := decodeJSON(t, rec)["message"]; got != "No se puede asignar un país inactivo a una provincia" {
			t.Errorf("unexpected message: %v", got)
		}
		if provinces.count() != 0 {
			t.Errorf("expected no provinces, got %d", provinces.count())
		}
	})

	t.Run("deactivated country blocks the create", func(t *testing.T) {
		provinces := newMockProvinceStore()
		countries := newMockCountryStore()
		router := newProvinceRouter(provinces, countries)

		doJSON(t, router, http.MethodPost, "/countries", map[string]any{"nombre": "Argentina"})
		doJSON(t, router, http.MethodDelete, "/countries/1", nil)

		rec := doJSON(t, router, http.MethodPost, "/provinces", map[string]any{
			"nombre": "Mendoza",
			"paisId": 1,
		})

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
		if provinces.count() != 0 {
			t.Errorf("expected no provinces, got %d", provinces.count())
		}
	})

	t.Run("active country allows the create", func(t *testing.T) {
		provinces := newMockProvinceStore()
		countries := newMockCountryStore()
		router := newProvinceRouter(provinces, countries)

		doJSON(t, router, http.MethodPost, "/countries", map[string]any{"nombre": "Argentina"})

		rec := doJSON(t, router, http.MethodPost, "/provinces", map[string]any{
			"nombre": "Mendoza",
			"paisId": 1,
		})

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d (body %s)", rec.Code, rec.Body.String())
		}
		if provinces.count() != 1 {
			t.Errorf("expected one province, got %d", provinces.count())
		}
	})
}

func TestProvinceCreateRequiredFields(t *testing.T) {
	router := newProvinceRouter(newMockProvinceStore(), newMockCountryStore())

	rec := doJSON(t, router, http.MethodPost, "/provinces", map[string]any{"paisId": 1})
	if got := decodeJSON(t, rec)["message"]; got != "El nombre es obligatorio" {
		t.Errorf("unexpected message: %v", got)
	}

	rec = doJSON(t, router, http.MethodPost, "/provinces", map[string]any{"nombre": "Mendoza"})
	if got := decodeJSON(t, rec)["message"]; got != "El id del pais es obligatorio" {
		t.Errorf("unexpected message: %v", got)
	}
}

func TestProvinceUpdateGuardsCountry(t *testing.T) {
	provinces := newMockProvinceStore()
	countries := newMockCountryStore()
	router := newProvinceRouter(provinces, countries)

	doJSON(t, router, http.MethodPost, "/countries", map[string]any{"nombre": "Argentina"})
	doJSON(t, router, http.MethodPost, "/countries", map[string]any{"nombre": "Chile"})
	doJSON(t, router, http.MethodPost, "/provinces", map[string]any{"nombre": "Mendoza", "paisId": 1})
	doJSON(t, router, http.MethodDelete, "/countries/2", nil)

	rec := doJSON(t, router, http.MethodPut, "/provinces/1", map[string]any{"paisId": 2})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}

	// The active country is still assignable.
	rec = doJSON(t, router, http.MethodPut, "/provinces/1", map[string]any{"paisId": 1, "nombre": "San Juan"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body %s)", rec.Code, rec.Body.String())
	}
	if got := decodeJSON(t, rec)["nombre"]; got != "San Juan" {
		t.Errorf("unexpected nombre: %v", got)
	}
}
