package service

import (
	"context"
	"errors"
	"fmt"

	"tienda-api/internal/domain"
	"tienda-api/internal/repository"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// RegisterParams carries the fields required to open an account.
type RegisterParams struct {
	Email    string
	Password string
	Username string
	Nombre   string
	Apellido string
	DNI      string
}

// AuthService registers accounts and exchanges credentials for bearer
// tokens.
type AuthService interface {
	Register(ctx context.Context, params RegisterParams) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *TokenService
}

func NewAuthService(users repository.UserRepository, tokens *TokenService) AuthService {
	return &authService{users: users, tokens: tokens}
}

// Register creates a CLIENTE account with a hashed password and returns a
// freshly issued token.
func (s *authService) Register(ctx context.Context, params RegisterParams) (string, error) {
	hashed, err := HashPassword(params.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:    params.Email,
		Password: hashed,
		Username: params.Username,
		Nombre:   params.Nombre,
		Apellido: params.Apellido,
		DNI:      params.DNI,
		Rol:      domain.RolCliente,
		IsActive: true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return s.tokens.Generate(user)
}

// Login verifies the credentials and issues a token. A password mismatch
// halts the flow; no token is issued.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if !CheckPassword(password, user.Password) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Generate(user)
}
