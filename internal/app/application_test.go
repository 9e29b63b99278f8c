package app

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cawver-web/internal/background"
	"cawver-web/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:              "8080",
		Environment:       "test",
		CORSOrigins:       []string{"https://cawver.test"},
		RateLimitRequests: 1000,
		RateLimitWindow:   60,
		EnableMetrics:     true,
		SiteURL:           "https://cawver.test",
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *Application {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	application, err := New(cfg, Options{BaseContext: ctx})
	require.NoError(t, err)

	t.Cleanup(func() {
		cancel()
		shutdownCtx, done := context.WithTimeout(context.Background(), time.Second)
		defer done()
		_ = application.Shutdown(shutdownCtx)
	})
	return application
}

func serve(application *Application, method, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	application.Router().ServeHTTP(recorder, httptest.NewRequest(method, target, nil))
	return recorder
}

func TestNewRequiresValidConfig(t *testing.T) {
	_, err := New(nil, Options{})
	assert.Error(t, err)

	cfg := testConfig()
	cfg.Port = "http"
	_, err = New(cfg, Options{})
	assert.Error(t, err)
}

func TestRoutes(t *testing.T) {
	application := newTestApp(t, testConfig())

	cases := []struct {
		target string
		status int
	}{
		{target: "/", status: http.StatusOK},
		{target: "/thesis", status: http.StatusOK},
		{target: "/portfolio", status: http.StatusOK},
		{target: "/pitch", status: http.StatusOK},
		{target: "/garage", status: http.StatusOK},
		{target: "/apply", status: http.StatusOK},
		{target: "/thesis/", status: http.StatusNotFound},
		{target: "/nowhere", status: http.StatusNotFound},
		{target: "/health", status: http.StatusOK},
		{target: "/metrics", status: http.StatusOK},
		{target: "/sitemap.xml", status: http.StatusOK},
		{target: "/robots.txt", status: http.StatusOK},
		{target: "/static/site.css", status: http.StatusOK},
		{target: "/favicon.ico", status: http.StatusOK},
		{target: "/api/v1/navigation?path=/", status: http.StatusOK},
		{target: "/api/v1/missing", status: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			recorder := serve(application, http.MethodGet, tc.target)
			assert.Equal(t, tc.status, recorder.Code)
			assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
		})
	}
}

func TestUnknownAPIRouteIsJSON(t *testing.T) {
	application := newTestApp(t, testConfig())

	recorder := serve(application, http.MethodGet, "/api/v1/missing")
	assert.Contains(t, recorder.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, recorder.Body.String(), "Route not found")
}

func TestNonProductionResponsesAreNoIndex(t *testing.T) {
	application := newTestApp(t, testConfig())

	recorder := serve(application, http.MethodGet, "/")
	assert.Equal(t, "noindex, nofollow", recorder.Header().Get("X-Robots-Tag"))
	assert.NotEmpty(t, recorder.Header().Get("Content-Security-Policy"))
}

func TestRobotsFileIsNotTaggedNoIndex(t *testing.T) {
	application := newTestApp(t, testConfig())

	recorder := serve(application, http.MethodGet, "/robots.txt")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Header().Get("X-Robots-Tag"))
}

func TestMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.EnableMetrics = false
	application := newTestApp(t, cfg)

	assert.Equal(t, http.StatusNotFound, serve(application, http.MethodGet, "/metrics").Code)
}

func TestEnvironmentOverridesContent(t *testing.T) {
	cfg := testConfig()
	cfg.SiteName = "cawver labs"
	cfg.PitchEmail = "deals@cawver.test"
	application := newTestApp(t, cfg)

	site := application.Content().Site()
	assert.Equal(t, "cawver labs", site.Brand.Name)
	assert.Equal(t, "deals@cawver.test", site.Pitch.Email)
	assert.Equal(t, "garage@cawver.com", site.Apply.Email)

	body := serve(application, http.MethodGet, "/pitch").Body.String()
	assert.Contains(t, body, "mailto:deals@cawver.test")
}

func TestContentFileIsWatched(t *testing.T) {
	source, err := os.ReadFile(filepath.Join("..", "content", "default.yaml"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, source, 0o644))

	cfg := testConfig()
	cfg.ContentFile = path
	cfg.ContentWatch = true
	application := newTestApp(t, cfg)
	require.NotNil(t, application.watcher)

	updated := strings.Replace(string(source), "name: cawver", "name: renamed", 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	require.Eventually(t, func() bool {
		return strings.Contains(serve(application, http.MethodGet, "/").Body.String(), "<span>renamed</span>")
	}, 5*time.Second, 20*time.Millisecond)
}

func TestShutdownStopsBackgroundWhenDrainFails(t *testing.T) {
	source, err := os.ReadFile(filepath.Join("..", "content", "default.yaml"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, source, 0o644))

	cfg := testConfig()
	cfg.ContentFile = path
	cfg.ContentWatch = true
	application := newTestApp(t, cfg)
	require.NotNil(t, application.scheduler)

	entered := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	application.server = &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
	})}
	go func() { _ = application.server.Serve(listener) }()

	go func() {
		resp, err := http.Get("http://" + listener.Addr().String() + "/")
		if err == nil {
			resp.Body.Close()
		}
	}()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("request never reached the handler")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, application.Shutdown(ctx), context.Canceled)

	err = application.scheduler.Schedule(background.Job{
		Name: "after-shutdown",
		Run:  func(context.Context) error { return nil },
	})
	assert.ErrorIs(t, err, background.ErrSchedulerStopped)
}
