package service

import (
	"context"
	"time"

	"github.com/paridu/pos-backend/internal/apperr"
	"github.com/paridu/pos-backend/internal/config"
	"github.com/paridu/pos-backend/internal/dto"
	"github.com/paridu/pos-backend/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthService issues terminal session tokens. There are no accounts and no
// passwords: the shop terminal picks an operator name and role, and the
// token scopes what that terminal may call until it expires.
type AuthService interface {
	CreateSession(ctx context.Context, req dto.CreateSessionRequest) (*dto.SessionResponse, error)
}

type authService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) CreateSession(_ context.Context, req dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	ttl := time.Duration(s.cfg.SessionHours) * time.Hour
	now := time.Now()

	claims := middleware.SessionClaims{
		Name: req.Name,
		Role: req.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	return &dto.SessionResponse{
		Token:     signed,
		TokenType: "bearer",
		ExpiresIn: int(ttl.Seconds()),
		Name:      req.Name,
		Role:      req.Role,
	}, nil
}
