package authenticating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/revenue-insights-api/internal/config"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
	"github.com/vfg2006/revenue-insights-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

type Authenticator interface {
	Enabled() bool
	IssueToken(apiKey string) (*domain.TokenResponse, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg config.Auth
	now func() time.Time
}

func NewService(cfg config.Auth) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &Service{cfg: cfg, now: time.Now}
}

// Enabled is false when no signing secret is configured.
func (s *Service) Enabled() bool {
	return s.cfg.Secret != ""
}

// IssueToken exchanges an API key for a signed token. The admin key is checked first.
func (s *Service) IssueToken(apiKey string) (*domain.TokenResponse, error) {
	if !s.Enabled() {
		return nil, NewAuthError(ErrAuthDisabled, apiErrors.ErrInvalidRequest, "tokens are not needed, authentication is disabled")
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "api_key is required")
	}

	scope, ok := s.scopeFor(apiKey)
	if !ok {
		return nil, NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "unknown api key")
	}

	expiresAt := s.now().Add(s.cfg.TokenTTL)
	token, err := generateJWT(scope, expiresAt, s.cfg.Secret)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "could not sign token")
	}

	return &domain.TokenResponse{Token: token, Scope: scope, ExpiresAt: expiresAt}, nil
}

func (s *Service) scopeFor(apiKey string) (domain.Scope, bool) {
	candidates := []struct {
		hash  string
		scope domain.Scope
	}{
		{hash: s.cfg.AdminKeyHash, scope: domain.ScopeAdmin},
		{hash: s.cfg.AnalystKeyHash, scope: domain.ScopeAnalyst},
	}

	for _, c := range candidates {
		if c.hash == "" {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(c.hash), []byte(apiKey)) == nil {
			return c.scope, true
		}
	}
	return "", false
}

func generateJWT(scope domain.Scope, expiresAt time.Time, secretKey string) (string, error) {
	claims := domain.Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "revenue-insights-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, err.Error())
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}
	return claims, nil
}
