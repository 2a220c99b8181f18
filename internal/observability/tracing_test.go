package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/pvf-customer-form/internal/config"
	"github.com/BerylCAtieno/pvf-customer-form/internal/logger"
)

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), logger.NewNop(), config.TracingConfig{}, "test")

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracingEnabled(t *testing.T) {
	cfg := config.TracingConfig{Enabled: true, ServiceName: "pvf-customer-form-test"}

	shutdown, err := InitTracing(context.Background(), logger.NewNop(), cfg, "test")

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
