package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nishantarora/portfolio/internal/app"
	"github.com/nishantarora/portfolio/internal/domain"
	"github.com/nishantarora/portfolio/internal/mocks"
	"github.com/nishantarora/portfolio/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewBuildInfo(t *testing.T) {
	bi := NewBuildInfo("1.0.0", "abc123", "2024-01-15T10:00:00Z")

	assert.Equal(t, "1.0.0", bi.Version)
	assert.Equal(t, "abc123", bi.Commit)
	assert.Equal(t, "2024-01-15T10:00:00Z", bi.BuildTime)
	assert.Equal(t, runtime.Version(), bi.GoVersion)
}

func TestNewHealthHandler(t *testing.T) {
	registry := mocks.NewMockHealthRegistry(t)
	buildInfo := NewBuildInfo("1.0.0", "abc123", "2024-01-15T10:00:00Z")

	handler := NewHealthHandler(registry, buildInfo, nil)

	require.NotNil(t, handler)
}

func TestHealthHandler_Liveness(t *testing.T) {
	registry := mocks.NewMockHealthRegistry(t)
	handler := NewHealthHandler(registry, BuildInfo{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/-/live", nil)

	handler.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp livenessResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*mocks.MockHealthRegistry)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "all checks healthy",
			setupMock: func(m *mocks.MockHealthRegistry) {
				m.EXPECT().CheckAll(mock.Anything).Return(&ports.HealthResult{
					Status: ports.HealthStatusHealthy,
					Checks: map[string]*ports.CheckResult{
						"content-store": {Status: ports.HealthStatusHealthy},
					},
				})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "healthy",
		},
		{
			name: "one check unhealthy",
			setupMock: func(m *mocks.MockHealthRegistry) {
				m.EXPECT().CheckAll(mock.Anything).Return(&ports.HealthResult{
					Status: ports.HealthStatusUnhealthy,
					Checks: map[string]*ports.CheckResult{
						"content-store": {Status: ports.HealthStatusUnhealthy, Message: "posts/posts.json: file does not exist"},
					},
				})
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "unhealthy",
		},
		{
			name: "no checks registered",
			setupMock: func(m *mocks.MockHealthRegistry) {
				m.EXPECT().CheckAll(mock.Anything).Return(&ports.HealthResult{
					Status: ports.HealthStatusHealthy,
					Checks: map[string]*ports.CheckResult{},
				})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "healthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := mocks.NewMockHealthRegistry(t)
			tt.setupMock(registry)

			handler := NewHealthHandler(registry, BuildInfo{}, nil)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/-/ready", nil)

			handler.Readiness(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestHealthHandler_BuildInfoHandler(t *testing.T) {
	registry := mocks.NewMockHealthRegistry(t)
	buildInfo := BuildInfo{
		Version:   "1.2.3",
		Commit:    "def456",
		BuildTime: "2024-02-01T12:00:00Z",
		GoVersion: "go1.23.0",
	}

	handler := NewHealthHandler(registry, buildInfo, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/-/build", nil)

	handler.BuildInfoHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp BuildInfo
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, "def456", resp.Commit)
	assert.Equal(t, "2024-02-01T12:00:00Z", resp.BuildTime)
	assert.Equal(t, "go1.23.0", resp.GoVersion)
}

func TestMetricsHandler(t *testing.T) {
	handler := MetricsHandler()

	require.NotNil(t, handler)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/-/metrics", nil)

	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestHealthHandler_RegisterHealthRoutes(t *testing.T) {
	registry := mocks.NewMockHealthRegistry(t)
	registry.EXPECT().CheckAll(mock.Anything).Return(&ports.HealthResult{
		Status: ports.HealthStatusHealthy,
		Checks: map[string]*ports.CheckResult{},
	}).Maybe()

	handler := NewHealthHandler(registry, BuildInfo{Version: "test"}, nil)

	router := gin.New()
	group := router.Group("/-")
	handler.RegisterHealthRoutes(group)

	routes := router.Routes()

	expectedRoutes := []string{
		"GET /-/live",
		"GET /-/ready",
		"GET /-/build",
		"GET /-/metrics",
	}

	routeMap := make(map[string]bool)
	for _, r := range routes {
		routeMap[r.Method+" "+r.Path] = true
	}

	for _, expected := range expectedRoutes {
		assert.True(t, routeMap[expected], "missing route: %s", expected)
	}
}

func TestHealthHandler_RegisterHealthRoutesOnEngine(t *testing.T) {
	registry := mocks.NewMockHealthRegistry(t)
	registry.EXPECT().CheckAll(mock.Anything).Return(&ports.HealthResult{
		Status: ports.HealthStatusHealthy,
		Checks: map[string]*ports.CheckResult{},
	}).Maybe()

	handler := NewHealthHandler(registry, BuildInfo{}, nil)

	router := gin.New()
	handler.RegisterHealthRoutesOnEngine(router)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/-/live", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

type stubPublishStatus struct {
	last *app.PublishReport
}

func (s stubPublishStatus) Last() *app.PublishReport { return s.last }

func TestHealthHandler_BuildInfoHandler_LastPublish(t *testing.T) {
	started := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		publishes PublishStatus
		check     func(t *testing.T, body map[string]any)
	}{
		{
			name:      "no publisher",
			publishes: nil,
			check: func(t *testing.T, body map[string]any) {
				assert.NotContains(t, body, "lastPublish")
			},
		},
		{
			name:      "nothing published yet",
			publishes: stubPublishStatus{},
			check: func(t *testing.T, body map[string]any) {
				assert.NotContains(t, body, "lastPublish")
			},
		},
		{
			name: "partial publish",
			publishes: stubPublishStatus{last: &app.PublishReport{
				StartedAt: started,
				Duration:  1500 * time.Millisecond,
				Pages: []*app.BuildReport{{
					Kind:      domain.KindPost,
					Total:     3,
					Succeeded: 2,
					Failed:    []app.RecordFailure{{ID: "older", Err: errors.New("disk full")}},
				}},
				Feed:   &app.FeedReport{Path: "feed.xml", Items: 3},
				Errors: []string{"post build incomplete: 2 of 3 records written"},
			}},
			check: func(t *testing.T, body map[string]any) {
				last, ok := body["lastPublish"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "2024-03-02T10:00:00Z", last["startedAt"])
				assert.InDelta(t, 1500, last["durationMs"], 0)
				assert.InDelta(t, 3, last["feedItems"], 0)
				assert.Equal(t, []any{"post build incomplete: 2 of 3 records written"}, last["errors"])

				pages := last["pages"].([]any)
				require.Len(t, pages, 1)
				post := pages[0].(map[string]any)
				assert.Equal(t, "post", post["kind"])
				assert.Equal(t, []any{"older"}, post["failed"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(mocks.NewMockHealthRegistry(t), BuildInfo{Version: "1.0.0"}, tt.publishes)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/-/build", nil)

			handler.BuildInfoHandler(c)
			require.Equal(t, http.StatusOK, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "1.0.0", body["version"])

			tt.check(t, body)
		})
	}
}
