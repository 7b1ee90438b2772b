package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/dreis/minhasfinancas-api/internal/config"
	"github.com/dreis/minhasfinancas-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "debug"},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			URL:    filepath.Join(t.TempDir(), "financas.db"),
		},
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret-that-is-at-least-32-characters",
			TokenLifetimeMinutes: 60,
			BCryptCost:           4,
		},
	}
}

func newTestApp(t *testing.T) *application {
	t.Helper()
	_, log := logger.NewTestLogger()
	app, err := newApplication(context.Background(), testConfig(t), log)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app
}

func postJSON(t *testing.T, client *http.Client, url, token string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func TestNewApplicationRejectsShortSecret(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.JWTSecret = "short"

	_, err := newApplication(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "JWT")
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(newTestApp(t).setupRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, healthResponse{Status: "ok", Driver: "sqlite"}, body)
}

func TestHealthReportsClosedDatabase(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.setupRouter())
	defer srv.Close()

	require.NoError(t, app.backend.DB.Close())

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRegisterAuthenticateAndCreateEntry(t *testing.T) {
	srv := httptest.NewServer(newTestApp(t).setupRouter())
	defer srv.Close()
	client := srv.Client()

	resp := postJSON(t, client, srv.URL+"/api/users", "", map[string]string{
		"name": "Usuario", "email": "usuario@email.com", "password": "senha",
	})
	_ = resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, client, srv.URL+"/api/users/authenticate", "", map[string]string{
		"email": "usuario@email.com", "password": "senha",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var authResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&authResp))
	_ = resp.Body.Close()
	require.NotEmpty(t, authResp.Token)

	resp = postJSON(t, client, srv.URL+"/api/entries", authResp.Token, map[string]any{
		"description": "Salario",
		"month":       1,
		"year":        2024,
		"value":       "5000.00",
		"type":        "INCOME",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var entry struct {
		Status string `json:"status"`
		Value  string `json:"value"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entry))
	_ = resp.Body.Close()
	assert.Equal(t, "PENDING", entry.Status)
	assert.Equal(t, "5000.00", entry.Value)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/entries?description=sal", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+authResp.Token)
	resp, err = client.Do(req)
	require.NoError(t, err)
	var found []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&found))
	_ = resp.Body.Close()
	assert.Len(t, found, 1)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	app := newTestApp(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
