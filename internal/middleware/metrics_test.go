package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "404" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("{}"))
	})

	for _, path := range []string{"/products/1", "/products/2", "/products/404"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.requests.WithLabelValues("GET", "/products/{id}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.requests.WithLabelValues("GET", "/products/{id}", "404")))

	count, err := testutil.GatherAndCount(reg, "pvc_shop_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	err = testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP pvc_shop_http_requests_total HTTP requests by method, route and status code.
# TYPE pvc_shop_http_requests_total counter
pvc_shop_http_requests_total{method="GET",route="/products/{id}",status="200"} 2
pvc_shop_http_requests_total{method="GET",route="/products/{id}",status="404"} 1
`), "pvc_shop_http_requests_total")
	assert.NoError(t, err)
}
