package middleware

import (
	"context"
	"net/http"
	"strings"

	"tienda-api/internal/domain"
	"tienda-api/internal/service"

	"go.uber.org/zap"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
	UserRolKey   contextKey = "user_rol"
)

// AuthMiddleware validates the bearer credential and stores its claims in
// the request context. A missing header is 401; a token that fails
// signature or expiry checks is 403.
func AuthMiddleware(tokens *service.TokenService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("Missing authorization header")
				RespondWithError(w, http.StatusUnauthorized, "No autorizado, se requiere un Token de acceso")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Debug("Invalid authorization header format")
				RespondWithError(w, http.StatusUnauthorized, "No autorizado, se requiere un Token de acceso")
				return
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				RespondWithError(w, http.StatusForbidden, "Token inválido o expirado")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
			ctx = context.WithValue(ctx, UserRolKey, claims.Rol)

			logger.Debug("User authenticated",
				zap.Int("user_id", claims.UserID),
				zap.String("rol", string(claims.Rol)),
			)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects authenticated requests whose role claim is not ADMIN.
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rol, ok := GetUserRol(r.Context())
			if !ok || rol != domain.RolAdmin {
				logger.Warn("Non-admin user attempted to access admin endpoint",
					zap.String("rol", string(rol)),
				)
				RespondWithError(w, http.StatusForbidden, "Acceso denegado: se requiere rol de administrador")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID extracts the user id from the request context
func GetUserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(UserIDKey).(int)
	return id, ok
}

// GetUserEmail extracts the user email from the request context
func GetUserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// GetUserRol extracts the role claim from the request context
func GetUserRol(ctx context.Context) (domain.Rol, bool) {
	rol, ok := ctx.Value(UserRolKey).(domain.Rol)
	return rol, ok
}
