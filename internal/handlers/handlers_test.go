package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"resumehub/config"
	"resumehub/internal/app"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		GeneralEnvironment:    "test",
		DatabaseDriver:        config.DriverSQLite,
		DatabaseDbPath:        filepath.Join(t.TempDir(), "test.db"),
		AdapterTimeoutSeconds: 5,
		SyncModeGitHub:        config.ModeFixture,
		SyncModeCoursera:      config.ModeLive,
		SyncModeDevfolio:      config.ModeFixture,
		SyncAllModeGitHub:     config.ModeFixture,
		SyncAllModeCoursera:   config.ModeFixture,
		SyncAllModeDevfolio:   config.ModeFixture,
	}
}

func newTestServer(t *testing.T, cfg config.Config) *fiber.App {
	t.Helper()

	application, err := app.Build(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	_, err = application.Database.Migrate()
	require.NoError(t, err)

	server := fiber.New()
	require.NoError(t, Router(server, application))
	return server
}

func doRequest(
	t *testing.T,
	server *fiber.App,
	method, path, userID, body string,
) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := server.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp.StatusCode, decoded
}

func TestHealth(t *testing.T) {
	server := newTestServer(t, testConfig(t))

	status, body := doRequest(t, server, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["database"])
}

func TestRequireUser(t *testing.T) {
	server := newTestServer(t, testConfig(t))

	status, body := doRequest(t, server, http.MethodGet, "/api/integrations/data", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])

	status, _ = doRequest(t, server, http.MethodGet, "/api/integrations/data?userId=user-1", "", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestSyncPlatformRoutes(t *testing.T) {
	server := newTestServer(t, testConfig(t))

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "github fixture",
			path:           "/api/integrations/github?username=octo",
			expectedStatus: http.StatusOK,
			expectedMsg:    "Successfully synced 3 items from GitHub",
		},
		{
			name:           "github missing username",
			path:           "/api/integrations/github",
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "GitHub username is required",
		},
		{
			name:           "devfolio missing username",
			path:           "/api/integrations/devfolio?username=%20",
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Devfolio username is required",
		},
		{
			name:           "coursera missing api key",
			path:           "/api/integrations/coursera",
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "API key is required. Please provide your Coursera API key.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, server, http.MethodGet, tt.path, "user-1", "")
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedMsg, body["message"])
		})
	}
}

func TestSyncCoursera_ReturnsInstructions(t *testing.T) {
	server := newTestServer(t, testConfig(t))

	status, body := doRequest(t, server, http.MethodGet, "/api/integrations/coursera?apiKey=abc", "user-1", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.True(t, strings.HasPrefix(body["message"].(string), "Coursera integration requires manual export."))

	instructions, ok := body["instructions"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, instructions["manual"])

	status, body = doRequest(t, server, http.MethodGet, "/api/integrations/data", "user-1", "")
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Empty(t, data["all"])
}

func TestSyncAllAndData(t *testing.T) {
	server := newTestServer(t, testConfig(t))

	status, body := doRequest(t, server, http.MethodPost, "/api/integrations/sync-all", "user-1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Successfully synced 9 items from all platforms", body["message"])

	summary := body["data"].(map[string]any)
	assert.Equal(t, map[string]any{"coursera": 3.0, "github": 3.0, "devfolio": 3.0}, summary["platforms"])

	status, body = doRequest(t, server, http.MethodGet, "/api/integrations/data", "user-1", "")
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Len(t, data["all"], 9)
	assert.Len(t, data["stats"], 3)

	status, body = doRequest(t, server, http.MethodGet, "/api/resume", "user-1", "")
	require.Equal(t, http.StatusOK, status)
	resume := body["data"].(map[string]any)
	assert.Len(t, resume["projects"], 3)
	assert.Len(t, resume["courses"], 3)
	assert.Len(t, resume["achievements"], 3)
}

func TestDeleteIntegrationData(t *testing.T) {
	server := newTestServer(t, testConfig(t))

	status, body := doRequest(t, server, http.MethodGet, "/api/integrations/github?username=octo", "user-1", "")
	require.Equal(t, http.StatusOK, status)
	records := body["data"].(map[string]any)["records"].([]any)
	id := records[0].(map[string]any)["id"].(string)

	status, body = doRequest(t, server, http.MethodDelete, "/api/integrations/data/"+id, "user-2", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Integration data not found", body["message"])

	status, body = doRequest(t, server, http.MethodDelete, "/api/integrations/data/"+id, "user-1", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Integration data deleted successfully", body["message"])
}

func TestResumeRoutes(t *testing.T) {
	server := newTestServer(t, testConfig(t))

	status, body := doRequest(t, server, http.MethodGet, "/api/resume", "user-1", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Resume not found", body["message"])

	status, _ = doRequest(t, server, http.MethodPost, "/api/save-resume", "user-1",
		`{"projects": [{"description": "missing title"}]}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = doRequest(t, server, http.MethodPost, "/api/save-resume", "user-1",
		`{"summary": "Engineer.", "personalInfo": {"name": "Ada"}, "projects": [{"title": "A"}, {"title": "a"}]}`)
	require.Equal(t, http.StatusOK, status)
	resume := body["data"].(map[string]any)
	assert.Equal(t, "Engineer.", resume["summary"])
	assert.Len(t, resume["projects"], 1)

	status, body = doRequest(t, server, http.MethodPost, "/api/generate-summary", "user-1",
		`{"name": "Ada", "skills": ["Go"]}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t,
		"Ada is a passionate Software Developer with expertise in Go. "+
			"Known for delivering high-quality solutions and staying current with industry trends.",
		body["data"].(map[string]any)["summary"],
	)

	status, _ = doRequest(t, server, http.MethodDelete, "/api/resume", "user-1", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, server, http.MethodDelete, "/api/resume", "user-1", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminRoutes(t *testing.T) {
	t.Run("clear my data", func(t *testing.T) {
		server := newTestServer(t, testConfig(t))

		status, _ := doRequest(t, server, http.MethodPost, "/api/integrations/sync-all", "user-1", "")
		require.Equal(t, http.StatusOK, status)

		status, body := doRequest(t, server, http.MethodDelete, "/api/admin/clear-my-data", "user-1", "")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, map[string]any{"integrations": 9.0, "resumes": 1.0}, body["deleted"])
	})

	t.Run("clear all refused in production", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.GeneralEnvironment = "production"
		server := newTestServer(t, cfg)

		status, body := doRequest(t, server, http.MethodDelete, "/api/admin/clear-all-data", "user-1", "")
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "This endpoint is only available in development", body["message"])
	})
}
