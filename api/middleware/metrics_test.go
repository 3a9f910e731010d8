package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method string
	route  string
	status int
}

type fakeObserver struct {
	seen []observation
}

func (f *fakeObserver) ObserveRequest(method string, route string, status int, _ time.Duration) {
	f.seen = append(f.seen, observation{method: method, route: route, status: status})
}

func TestRequestMetrics_UsesRouteTemplate(t *testing.T) {
	observer := &fakeObserver{}
	e := echo.New()
	e.Use(RequestMetrics(observer))
	e.GET("/blogs/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot)
	})

	for _, path := range []string{"/blogs/123", "/boom"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Len(t, observer.seen, 2)
	assert.Equal(t, observation{method: http.MethodGet, route: "/blogs/:id", status: http.StatusNoContent}, observer.seen[0])
	assert.Equal(t, observation{method: http.MethodGet, route: "/boom", status: http.StatusTeapot}, observer.seen[1])
}
