package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddlewareLabelsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MetricsMiddleware())
	router.GET("/garage", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/garage", "200"))
	unmatchedBefore := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404"))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/garage", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/random-1234", nil))

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/garage", "200")); got != before+1 {
		t.Fatalf("expected /garage counter to grow by one, got %v -> %v", before, got)
	}
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")); got != unmatchedBefore+1 {
		t.Fatalf("expected unmatched counter to grow by one, got %v -> %v", unmatchedBefore, got)
	}
}

func TestObserveMenuState(t *testing.T) {
	ObserveMenuState("open")
	before := testutil.ToFloat64(menuViews.WithLabelValues("open"))
	ObserveMenuState("open")
	if got := testutil.ToFloat64(menuViews.WithLabelValues("open")); got != before+1 {
		t.Fatalf("expected open counter to grow by one, got %v -> %v", before, got)
	}
}
