package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/viant/quantor/model/proc"
	"github.com/viant/quantor/service/engine"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.IOSimulation.Enabled = false
	core, err := engine.New(engine.WithConfig(cfg))
	assert.NoError(t, err)
	app := fiber.New()
	NewHandler(core).Register(app)
	return app
}

func jsonRequest(method, target string, body any) *http.Request {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	request := httptest.NewRequest(method, target, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	return request
}

func TestCreateAndGetProcess(t *testing.T) {
	app := newTestApp(t)

	response, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/processes", map[string]any{
		"name": "worker", "priority": 3, "burstTimeMs": 500,
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, response.StatusCode)

	var created proc.Process
	assert.NoError(t, json.NewDecoder(response.Body).Decode(&created))
	assert.Equal(t, 1, created.PID)
	assert.Equal(t, proc.StateReady, created.State)

	response, err = app.Test(jsonRequest(http.MethodGet, "/api/v1/processes/1", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, response.StatusCode)

	response, err = app.Test(jsonRequest(http.MethodGet, "/api/v1/processes/99", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, response.StatusCode)
}

func TestCreateProcessValidation(t *testing.T) {
	app := newTestApp(t)

	response, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/processes", map[string]any{
		"name": "worker", "priority": 99, "burstTimeMs": 500,
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, response.StatusCode)
}

func TestLifecycleEndpoints(t *testing.T) {
	app := newTestApp(t)

	_, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/processes", map[string]any{
		"name": "victim", "priority": 5, "burstTimeMs": 10000,
	}))
	assert.NoError(t, err)

	// Wait is valid for a READY process.
	response, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/processes/1/wait", map[string]any{
		"durationMs": 500,
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, response.StatusCode)

	response, err = app.Test(jsonRequest(http.MethodPost, "/api/v1/processes/99/wait", map[string]any{
		"durationMs": 500,
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, response.StatusCode)

	response, err = app.Test(jsonRequest(http.MethodPost, "/api/v1/processes/1/unblock", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, response.StatusCode)

	// Terminate is idempotent.
	for i := 0; i < 2; i++ {
		response, err = app.Test(jsonRequest(http.MethodDelete, "/api/v1/processes/1", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, response.StatusCode)
	}

	response, err = app.Test(jsonRequest(http.MethodGet, "/api/v1/stats", nil))
	assert.NoError(t, err)
	var snapshot proc.Snapshot
	assert.NoError(t, json.NewDecoder(response.Body).Decode(&snapshot))
	assert.Equal(t, 1, snapshot.Stats.TerminatedProcesses)

	response, err = app.Test(jsonRequest(http.MethodGet, "/api/v1/processes?state=terminated", nil))
	assert.NoError(t, err)
	var terminated []proc.Process
	assert.NoError(t, json.NewDecoder(response.Body).Decode(&terminated))
	assert.Equal(t, 1, len(terminated))

	response, err = app.Test(jsonRequest(http.MethodGet, "/api/v1/processes?state=ready,running", nil))
	assert.NoError(t, err)
	var live []proc.Process
	assert.NoError(t, json.NewDecoder(response.Body).Decode(&live))
	assert.Empty(t, live)
}

func TestConfigEndpoints(t *testing.T) {
	app := newTestApp(t)

	response, err := app.Test(jsonRequest(http.MethodPut, "/api/v1/config", map[string]any{
		"timeQuantumMs": 250,
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, response.StatusCode)

	var cfg engine.Config
	assert.NoError(t, json.NewDecoder(response.Body).Decode(&cfg))
	assert.Equal(t, 250, cfg.TimeQuantumMs)
	assert.Equal(t, engine.DefaultConfig().AgingFactorSec, cfg.AgingFactorSec)

	response, err = app.Test(jsonRequest(http.MethodPut, "/api/v1/config", map[string]any{
		"agingFactorSec": 0,
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, response.StatusCode)
}

func TestProcFileEndpoints(t *testing.T) {
	app := newTestApp(t)

	request := httptest.NewRequest(http.MethodPost, "/proc/sched_stats", strings.NewReader("NEW crunch 500 3"))
	response, err := app.Test(request)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, response.StatusCode)

	response, err = app.Test(httptest.NewRequest(http.MethodGet, "/proc/sched_stats", nil))
	assert.NoError(t, err)
	body, _ := io.ReadAll(response.Body)
	assert.Contains(t, string(body), "=== Scheduler Status ===")
	assert.Contains(t, string(body), "crunch")

	request = httptest.NewRequest(http.MethodPost, "/proc/sched_stats", strings.NewReader("BOGUS 1"))
	response, err = app.Test(request)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, response.StatusCode)
}
