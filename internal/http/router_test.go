package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/pyramid-service/internal/http/handlers"
	"github.com/preston-bernstein/pyramid-service/internal/testutil"
)

func TestRouterRoutesKnownPaths(t *testing.T) {
	svc, _ := testutil.NewPyramidService()
	router := NewRouter(handlers.NewHandler(svc, nil, handlers.Limits{}, nil))

	cases := map[string]int{
		"/health":          http.StatusOK,
		"/ready":           http.StatusOK,
		"/themes":          http.StatusOK,
		"/themes/eorzea":   http.StatusOK,
		"/themes/atlantis": http.StatusNotFound,
		"/pyramids":        http.StatusOK,
		"/pyramids/foo":    http.StatusNotFound, // known route with missing pyramid
	}

	for path, expected := range cases {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
	}
}

func TestRouterCreateThenFetch(t *testing.T) {
	svc, _ := testutil.NewPyramidService()
	router := NewRouter(handlers.NewHandler(svc, nil, handlers.Limits{}, nil))

	rr := testutil.ServeJSON(t, router, http.MethodPost, "/pyramids", map[string]any{"levels": []int{2, 2}})
	testutil.AssertStatus(t, rr, http.StatusCreated)

	rr = testutil.Serve(router, http.MethodGet, rr.Header().Get("Location"), nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	svc, _ := testutil.NewPyramidService()
	router := NewRouter(handlers.NewHandler(svc, nil, handlers.Limits{}, nil))

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
}
