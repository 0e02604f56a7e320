package restapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"hydroroute.org/internal/app"
	"hydroroute.org/internal/appconf"
	"hydroroute.org/internal/logging"
	"hydroroute.org/internal/models"
	"hydroroute.org/internal/planner"
)

// createTestApi creates a new RestAPI backed by a planner built from the
// pipeline fixture.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	plannerConfig := planner.Config{
		DatasetPath:   models.GetFixturePath(t, "pipelines.geojson"),
		SnapThreshold: planner.DefaultSnapThreshold,
		Env:           appconf.Test,
	}
	logger := logging.NewStructuredLogger(io.Discard, slog.LevelInfo)
	manager, err := planner.InitNetworkManager(context.Background(), plannerConfig, logger)
	require.NoError(t, err)
	t.Cleanup(manager.Shutdown)

	application := &app.Application{
		Config: appconf.Config{
			Env:       appconf.EnvFlagToEnvironment("test"),
			ApiKeys:   []string{"TEST"},
			RateLimit: 100,
			CostRate:  models.DefaultCostRate,
		},
		PlannerConfig: plannerConfig,
		Logger:        logger,
		Planner:       manager,
	}

	api := NewRestAPI(application)
	t.Cleanup(api.Shutdown)
	return api
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()

	server := httptest.NewServer(api.Routes())
	defer server.Close()
	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	err = json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}

// serveApiAndRetrieveFieldErrors requests an endpoint that is expected to
// fail validation and returns the field errors.
func serveApiAndRetrieveFieldErrors(t *testing.T, api *RestAPI, endpoint string) (*http.Response, map[string][]string) {
	t.Helper()

	server := httptest.NewServer(api.Routes())
	defer server.Close()
	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body.FieldErrors
}

// entryOf returns data.entry of a successful response.
func entryOf(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok, "data.entry should be an object")
	return entry
}
