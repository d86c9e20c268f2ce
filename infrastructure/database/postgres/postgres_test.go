package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/revenue-insights-api/internal/config"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
)

func TestNewConnection_Disabled(t *testing.T) {
	conn, err := NewConnection(context.Background(), config.Database{Enabled: false, Driver: "postgres"})
	assert.Nil(t, conn)
	assert.ErrorIs(t, err, domain.ErrStorageDisabled)
}

func TestNewConnection_UnknownDriver(t *testing.T) {
	conn, err := NewConnection(context.Background(), config.Database{Enabled: true, Driver: "oracle", DSN: "oracle://x"})
	assert.Nil(t, conn)
	assert.ErrorContains(t, err, "open oracle database")
}
