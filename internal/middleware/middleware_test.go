package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"koistore/internal/middleware"
	"koistore/pkg/lib/logger/slogdiscard"

	"github.com/stretchr/testify/assert"
)

func TestCorrelationID_Generated(t *testing.T) {
	var seen string
	h := middleware.CorrelationID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetCorrelationID(r.Context())
	}))

	ww := httptest.NewRecorder()
	h.ServeHTTP(ww, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, ww.Header().Get(middleware.HeaderCorrelationID))
}

func TestCorrelationID_Propagated(t *testing.T) {
	var seen string
	h := middleware.CorrelationID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetCorrelationID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.HeaderCorrelationID, "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "abc-123", seen)
}

func TestLogger_PassesThrough(t *testing.T) {
	h := middleware.Logger(slogdiscard.NewDiscardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	ww := httptest.NewRecorder()
	h.ServeHTTP(ww, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, ww.Code)
}
