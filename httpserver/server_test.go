package httpserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/apexfleet/botstrap/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *runner.Supervisor) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sup := runner.NewSupervisor(log, []string{"true"})

	srv, err := New(&Config{
		ListenAddr:               "127.0.0.1:0",
		Log:                      log,
		GracefulShutdownDuration: time.Second,
		ReadTimeout:              time.Second,
		WriteTimeout:             time.Second,
	}, sup, "apex_daan", 10, []string{"DISCORD_BOT_TOKEN", "PLAYER_UID"})
	require.NoError(t, err)
	return srv, sup
}

func TestServer_Livez(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.getRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"alive"}`, rec.Body.String())
}

func TestServer_ReadyzBeforeHandoff(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.getRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	// The child has not been started, so the server must report not ready.
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_Status(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.getRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp statusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	assert.Equal(t, "apex_daan", resp.Instance)
	assert.Equal(t, 10, resp.DelaySeconds)
	assert.Equal(t, []string{"DISCORD_BOT_TOKEN", "PLAYER_UID"}, resp.ExportedSlots)
	assert.False(t, resp.ChildRunning)
	assert.Zero(t, resp.ChildPID)
}

func TestServer_StatusNeverExposesSecretValues(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "super-secret-token")

	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.getRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.NotContains(t, rec.Body.String(), "super-secret-token")
}
