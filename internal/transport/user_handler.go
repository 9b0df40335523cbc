package transport

import (
	"errors"
	"fmt"
	"net/http"

	"tienda-api/internal/domain"
	"tienda-api/internal/middleware"
	"tienda-api/internal/repository"
	"tienda-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type userCreateRequest struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Username string     `json:"username"`
	Nombre   string     `json:"nombre"`
	Apellido string     `json:"apellido"`
	DNI      string     `json:"dni"`
	Rol      domain.Rol `json:"rol"`
}

type userUpdateRequest struct {
	Email    *string     `json:"email"`
	Password *string     `json:"password"`
	Username *string     `json:"username"`
	Nombre   *string     `json:"nombre"`
	Apellido *string     `json:"apellido"`
	DNI      *string     `json:"dni"`
	Rol      *domain.Rol `json:"rol"`
}

// UserHandler handles HTTP requests for user administration. Account
// self-service goes through /auth.
type UserHandler struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func NewUserHandler(users repository.UserRepository, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req userCreateRequest
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
		required{req.Rol == "", "El rol es obligatorio"},
	); msg != "" {
		middleware.RespondWithMessage(w, http.StatusBadRequest, msg)
		return
	}

	if !middleware.ValidEmail(req.Email) {
		middleware.RespondWithMessage(w, http.StatusBadRequest, "El email no es válido")
		return
	}

	hashed, err := service.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("Failed to hash password", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	user := &domain.User{
		Email:    req.Email,
		Password: hashed,
		Username: req.Username,
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		DNI:      req.DNI,
		Rol:      req.Rol,
		IsActive: true,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			middleware.RespondWithMessage(w, http.StatusBadRequest, "El mail ingresado ya existe")
			return
		}
		h.logger.Error("Failed to create user", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, users)
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "El usuario no fue encontrado")
		return
	}

	user, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "El usuario no fue encontrado")
			return
		}
		h.logger.Error("Failed to get user", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := parseID(r)
	if !ok {
		middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("El usuario %s fue eliminado o no existe, y no se puede editar.", raw))
		return
	}

	var req userUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := map[string]any{}
	if req.Email != nil {
		if !middleware.ValidEmail(*req.Email) {
			middleware.RespondWithMessage(w, http.StatusBadRequest, "El email no es válido")
			return
		}
		patch["email"] = *req.Email
	}
	if req.Password != nil {
		hashed, err := service.HashPassword(*req.Password)
		if err != nil {
			h.logger.Error("Failed to hash password", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
			return
		}
		patch["password"] = hashed
	}
	if req.Username != nil {
		patch["username"] = *req.Username
	}
	if req.Nombre != nil {
		patch["nombre"] = *req.Nombre
	}
	if req.Apellido != nil {
		patch["apellido"] = *req.Apellido
	}
	if req.DNI != nil {
		patch["dni"] = *req.DNI
	}
	if req.Rol != nil {
		patch["rol"] = *req.Rol
	}

	user, err := h.users.Update(r.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrInactive):
			middleware.RespondWithMessage(w, http.StatusBadRequest, fmt.Sprintf("El usuario %d fue eliminado o no existe, y no se puede editar.", id))
		case errors.Is(err, repository.ErrDuplicate):
			middleware.RespondWithMessage(w, http.StatusBadRequest, "El mail ingresado ya existe")
		default:
			h.logger.Error("Failed to update user", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := parseID(r)
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "Usuario no encontrado")
		return
	}

	if err := h.users.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			middleware.RespondWithError(w, http.StatusBadRequest, "Usuario no encontrado")
			return
		}
		h.logger.Error("Failed to delete user", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, serverErrorMessage)
		return
	}

	middleware.RespondWithMessage(w, http.StatusOK, fmt.Sprintf("El usuario %d fue eliminado", id))
}
