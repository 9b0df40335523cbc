package transport

import (
	"errors"
	"net/http"

	"tienda-api/internal/middleware"
	"tienda-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	DNI      string `json:"dni"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// AuthHandler handles account registration and login.
type AuthHandler struct {
	auth   service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if msg := firstMissing(
		required{req.Password == "", "El password es obligatorio"},
		required{req.Email == "", "El email es obligatorio"},
		required{req.Username == "", "El nombre de usuario es obligatorio"},
		required{req.Nombre == "", "El nombre es obligatorio"},
		required{req.Apellido == "", "El apellido es obligatorio"},
		required{req.DNI == "", "El dni es obligatorio"},
	); msg != "" {
		middleware.RespondWithMessage(w, http.StatusBadRequest, msg)
		return
	}

	if !middleware.ValidEmail(req.Email) {
		middleware.RespondWithMessage(w, http.StatusBadRequest, "El email no es válido")
		return
	}

	token, err := h.auth.Register(r.Context(), service.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		DNI:      req.DNI,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			middleware.RespondWithMessage(w, http.StatusBadRequest, "El mail ingresado ya existe")
			return
		}
		h.logger.Error("Failed to register user", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if msg := firstMissing(
		required{req.Password == "", "El password es obligatorio"},
		required{req.Email == "", "El email es obligatorio"},
	); msg != "" {
		middleware.RespondWithMessage(w, http.StatusBadRequest, msg)
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			middleware.RespondWithMessage(w, http.StatusBadRequest, "Usuario no encontrado")
		case errors.Is(err, service.ErrInvalidCredentials):
			middleware.RespondWithMessage(w, http.StatusUnauthorized, "Usuario y contraseña no coinciden")
		default:
			h.logger.Error("Failed to log in user", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, tokenResponse{Token: token})
}
