package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vin-gateway/internal/config"
)

func fakeVPIC(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Results":[{"Variable":"Manufacturer Name","Value":"HONDA"},{"Variable":"Model","Value":"Civic"},{"Variable":"Model Year","Value":"2004"}]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func loadConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	for k, val := range env {
		t.Setenv(k, val)
	}
	cfg, err := config.Load(config.New())
	require.NoError(t, err)
	return cfg
}

func TestBuildApp_MemoryBackends(t *testing.T) {
	up := fakeVPIC(t)
	cfg := loadConfig(t, map[string]string{"UPSTREAM_URL": up.URL})

	a, err := buildApp(context.Background(), cfg, newLogger(io.Discard, "error"))
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.memCache)
	require.NotNil(t, a.stats)

	v, err := a.gateway.Decode(context.Background(), "2HGES16575H123456")
	require.NoError(t, err)
	assert.Equal(t, "Civic", v.Model)
	assert.Equal(t, 1, a.memCache.Len())

	rec, err := a.gateway.Vehicle("1HGCM82633A123456")
	require.NoError(t, err)
	assert.Equal(t, "Hondaorg", rec.Org)
	assert.Len(t, a.orgs.List(), 2)
}

func TestBuildApp_RedisBackends(t *testing.T) {
	mr := miniredis.RunT(t)
	up := fakeVPIC(t)
	cfg := loadConfig(t, map[string]string{
		"UPSTREAM_URL":   up.URL,
		"CACHE_BACKEND":  "redis",
		"STATS_BACKEND":  "redis",
		"REDIS_ADDR":     mr.Addr(),
		"RATE_ALGORITHM": "token-bucket",
		"SEED_DATA":      "false",
	})

	a, err := buildApp(context.Background(), cfg, newLogger(io.Discard, "error"))
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.memCache)
	assert.Nil(t, a.stats)
	assert.Empty(t, a.orgs.List())

	_, err = a.gateway.Decode(context.Background(), "2HGES16575H123456")
	require.NoError(t, err)
	assert.True(t, mr.Exists("vin:decode:2HGES16575H123456"))
}

func TestBuildApp_RedisDown(t *testing.T) {
	cfg := loadConfig(t, map[string]string{
		"CACHE_BACKEND": "redis",
		"REDIS_ADDR":    "127.0.0.1:1",
	})

	_, err := buildApp(context.Background(), cfg, newLogger(io.Discard, "error"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping")
}
