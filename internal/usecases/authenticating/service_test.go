package authenticating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/revenue-insights-api/internal/config"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func hash(t *testing.T, key string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newService(t *testing.T) *Service {
	return NewService(config.Auth{
		Secret:         "test-secret",
		AdminKeyHash:   hash(t, "admin-key"),
		AnalystKeyHash: hash(t, "analyst-key"),
		TokenTTL:       time.Hour,
	})
}

func TestIssueAndValidateToken(t *testing.T) {
	s := newService(t)

	tests := []struct {
		key   string
		scope domain.Scope
	}{
		{key: "admin-key", scope: domain.ScopeAdmin},
		{key: " analyst-key ", scope: domain.ScopeAnalyst},
	}

	for _, tt := range tests {
		t.Run(string(tt.scope), func(t *testing.T) {
			resp, err := s.IssueToken(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.scope, resp.Scope)
			assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)

			claims, err := s.ValidateToken(resp.Token)
			require.NoError(t, err)
			assert.Equal(t, tt.scope, claims.Scope)
			assert.Equal(t, tt.scope == domain.ScopeAdmin, claims.IsAdmin())
		})
	}
}

func TestIssueToken_Errors(t *testing.T) {
	s := newService(t)

	_, err := s.IssueToken("")
	assert.ErrorIs(t, err, ErrMissingRequiredData)
	assert.True(t, IsCredentialsError(err))

	_, err = s.IssueToken("wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	disabled := NewService(config.Auth{})
	assert.False(t, disabled.Enabled())
	_, err = disabled.IssueToken("admin-key")
	assert.ErrorIs(t, err, ErrAuthDisabled)
}

func TestValidateToken_Rejects(t *testing.T) {
	s := newService(t)

	_, err := s.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewService(config.Auth{Secret: "other", AdminKeyHash: hash(t, "k")})
	resp, err := other.IssueToken("k")
	require.NoError(t, err)
	_, err = s.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := newService(t)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	resp, err = expired.IssueToken("admin-key")
	require.NoError(t, err)
	_, err = s.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
