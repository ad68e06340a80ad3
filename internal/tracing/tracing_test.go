package tracing

import (
	"testing"

	"github.com/storefront-labs/storefront-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {

	t.Run("Success - Disabled without endpoint", func(t *testing.T) {
		shutdown, err := Setup(t.Context(), config.Otel{ServiceName: "storefront-api"})

		require.NoError(t, err)
		require.NotNil(t, shutdown)
		assert.NoError(t, shutdown(t.Context()))
	})

	t.Run("Success - Exporter configured", func(t *testing.T) {
		shutdown, err := Setup(t.Context(), config.Otel{
			ServiceName:      "storefront-api",
			ExporterEndpoint: "localhost:4318",
			SamplerRatio:     0.5,
		})

		require.NoError(t, err)
		require.NotNil(t, shutdown)
		assert.NoError(t, shutdown(t.Context()))
	})
}
