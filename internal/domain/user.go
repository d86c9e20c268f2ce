package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Scope string

const (
	ScopeAdmin   Scope = "admin"
	ScopeAnalyst Scope = "analyst"
)

type TokenRequest struct {
	APIKey string `json:"api_key"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	Scope     Scope     `json:"scope"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Claims struct {
	Scope Scope `json:"scope"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c != nil && c.Scope == ScopeAdmin
}
