package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/silo"
	opshttp "github.com/aretw0/silo/internal/adapters/http"
	"github.com/aretw0/silo/pkg/adapters/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpsServer(t *testing.T) {
	store, err := silo.New("", silo.WithStore(memory.NewStore()), silo.WithAutosave(false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, store.WaitReady(ctx))
	require.NoError(t, store.Set(ctx, "s1", []byte("v")))

	reg := prometheus.NewRegistry()
	handler := opshttp.NewHandler(store, "sessions", reg)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Run("healthz", func(t *testing.T) {
		resp, err := srv.Client().Get(srv.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("readyz", func(t *testing.T) {
		resp, err := srv.Client().Get(srv.URL + "/readyz")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("stats", func(t *testing.T) {
		resp, err := srv.Client().Get(srv.URL + "/stats")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "ready", body["state"])
		assert.Equal(t, "sessions", body["collection"])
		assert.EqualValues(t, 1, body["records"])
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := srv.Client().Get(srv.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, 200, resp.StatusCode)
	})
}
