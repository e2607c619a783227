package access_test

import (
	"testing"

	"github.com/aussiebroadwan/lounge/pkg/accesssdk"
	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness check endpoint.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupAccessContainer(t, nil)
	defer cleanup()

	health, err := accesssdk.NewClient(baseURL, "").GetLiveness(t.Context())
	assertHealthy(t, health, err)
}

// TestReadyzEndpoint verifies the database and scheduler checks pass.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupAccessContainer(t, nil)
	defer cleanup()

	health, err := accesssdk.NewClient(baseURL, "").GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "ok", health.Checks.Scheduler)
}
