package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/haguru/mongolens/config"
	"github.com/haguru/mongolens/internal/auth"
	"github.com/haguru/mongolens/internal/middleware"
	"github.com/haguru/mongolens/internal/routes"
	"github.com/haguru/mongolens/internal/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.ServiceConfig {
	t.Helper()
	cfg, err := LoadConfig("../../res/config.yaml")
	require.NoError(t, err)
	cfg.LogLevel = "error"
	cfg.Port = "0"
	cfg.RateLimit.Enabled = false
	return cfg
}

func serve(app *App, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	app.Server.(*server.Server).Handler().ServeHTTP(rr, req)
	return rr
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("../../res/config.yaml", filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "mongolens", cfg.ServiceName)

	_, err = LoadConfig("does_not_exist.yaml")
	assert.Error(t, err)
}

func TestNewAppServesHealthAndMetrics(t *testing.T) {
	app, err := NewApp(testConfig(t))
	require.NoError(t, err)

	rr := serve(app, httptest.NewRequest(http.MethodGet, routes.HealthRouteAPI, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"data":{"status":"ok","clients":0}}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))

	rr = serve(app, httptest.NewRequest(http.MethodGet, routes.MetricsRouteAPI, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "mongolens_mongo_pool_clients")
}

func TestNewAppRejectsBadRequestsBeforeConnecting(t *testing.T) {
	app, err := NewApp(testConfig(t))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, routes.TestConnectionRouteAPI, bytes.NewBufferString(`{"connectionString":"postgres://x"}`))
	req.Header.Set(routes.ContentType, routes.ContentTypeJson)
	rr := serve(app, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Connection failed")
	assert.Equal(t, 0, app.Pool.Len())
}

func TestNewAppWithAuth(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.Enabled = true
	cfg.Auth.PrivateKeyPath = filepath.Join(t.TempDir(), "key.pem")

	_, err := NewApp(cfg)
	require.Error(t, err)

	token, err := MintToken(cfg, "ops-team", true)
	require.NoError(t, err)

	app, err := NewApp(cfg)
	require.NoError(t, err)

	body := `{"connectionString":"mongodb://db.example.com"}`
	req := httptest.NewRequest(http.MethodPost, routes.ListDatabasesRouteAPI, bytes.NewBufferString(body))
	req.Header.Set(routes.ContentType, routes.ContentTypeJson)
	assert.Equal(t, http.StatusUnauthorized, serve(app, req).Code)

	key, err := auth.LoadECDSAPrivateKey(cfg.Auth.PrivateKeyPath)
	require.NoError(t, err)
	claims, err := auth.VerifyToken(token, &key.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, "ops-team", claims.Operator)

	rr := serve(app, httptest.NewRequest(http.MethodGet, routes.HealthRouteAPI, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Host = "127.0.0.1"
	app, err := NewApp(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
