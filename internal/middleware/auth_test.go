package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tienda-api/internal/domain"
	"tienda-api/internal/service"

	"go.uber.org/zap"
)

func authProtected(tokens *service.TokenService) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(tokens, zap.NewNop())(next)
}

func adminProtected(tokens *service.TokenService) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(tokens, zap.NewNop())(RequireAdmin(zap.NewNop())(next))
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return payload["error"]
}

func tokenFor(t *testing.T, tokens *service.TokenService, rol domain.Rol) string {
	t.Helper()

	token, err := tokens.Generate(&domain.User{
		ID:    7,
		Email: "ana@example.com",
		Rol:   rol,
	})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func TestAuthMiddleware(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)

	t.Run("missing header returns 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		authProtected(tokens).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
		if got := errorBody(t, rec); got != "No autorizado, se requiere un Token de acceso" {
			t.Errorf("unexpected error: %q", got)
		}
	})

	t.Run("malformed header returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		authProtected(tokens).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("garbage token returns 403", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		authProtected(tokens).ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", rec.Code)
		}
		if got := errorBody(t, rec); got != "Token inválido o expirado" {
			t.Errorf("unexpected error: %q", got)
		}
	})

	t.Run("expired token returns 403", func(t *testing.T) {
		expired := service.NewTokenService("test-secret", -time.Minute)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, expired, domain.RolCliente))
		rec := httptest.NewRecorder()
		authProtected(tokens).ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", rec.Code)
		}
	})

	t.Run("token signed with another secret returns 403", func(t *testing.T) {
		other := service.NewTokenService("other-secret", time.Hour)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, other, domain.RolCliente))
		rec := httptest.NewRecorder()
		authProtected(tokens).ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", rec.Code)
		}
	})

	t.Run("valid token passes and exposes claims", func(t *testing.T) {
		var gotID int
		var gotRol domain.Rol
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID, _ = GetUserID(r.Context())
			gotRol, _ = GetUserRol(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, tokens, domain.RolAdmin))
		rec := httptest.NewRecorder()
		AuthMiddleware(tokens, zap.NewNop())(next).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if gotID != 7 {
			t.Errorf("expected user id 7 in context, got %d", gotID)
		}
		if gotRol != domain.RolAdmin {
			t.Errorf("expected ADMIN rol in context, got %s", gotRol)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)

	t.Run("CLIENTE is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, tokens, domain.RolCliente))
		rec := httptest.NewRecorder()
		adminProtected(tokens).ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", rec.Code)
		}
		if got := errorBody(t, rec); got != "Acceso denegado: se requiere rol de administrador" {
			t.Errorf("unexpected error: %q", got)
		}
	})

	t.Run("ADMIN passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, tokens, domain.RolAdmin))
		rec := httptest.NewRecorder()
		adminProtected(tokens).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
	})
}
