package routes_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	adminhandler "koistore/internal/handlers/admin"
	adminmocks "koistore/internal/handlers/admin/mocks"
	carthandler "koistore/internal/handlers/cart"
	sessionhandler "koistore/internal/handlers/session"
	storefronthandler "koistore/internal/handlers/storefront"
	"koistore/internal/middleware"
	"koistore/internal/routes"
	serviceerrors "koistore/internal/service"
	"koistore/pkg/lib/logger/slogdiscard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newHandler() http.Handler {
	log := slogdiscard.NewDiscardLogger()
	return routes.New(
		log,
		sessionhandler.New(log, nil),
		carthandler.New(log, nil, nil, nil),
		storefronthandler.NewCatalog(log, nil),
		storefronthandler.NewAccount(log, nil, nil),
		adminhandler.New(log, nil, nil, nil),
	).Handler()
}

func TestRoutes(t *testing.T) {
	h := newHandler()

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{name: "health", method: http.MethodGet, path: "/healthz", want: http.StatusOK},
		{name: "unknown path", method: http.MethodGet, path: "/carts/1", want: http.StatusNotFound},
		{name: "wrong method", method: http.MethodPut, path: "/sessions", want: http.StatusMethodNotAllowed},
		{name: "bad session id", method: http.MethodGet, path: "/sessions/not-a-uuid/cart", want: http.StatusBadRequest},
		{name: "bad fish id", method: http.MethodGet, path: "/fish/abc", want: http.StatusBadRequest},
		{name: "upload needs a session", method: http.MethodPost, path: "/uploads", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRoutes_CorrelationHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(middleware.HeaderCorrelationID, "abc-123")

	newHandler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(middleware.HeaderCorrelationID))
}

func TestRoutes_UploadRequiresLogin(t *testing.T) {
	const sid = "0f8fad5b-d9cb-469f-a165-70867728950e"
	log := slogdiscard.NewDiscardLogger()

	uploader := new(adminmocks.Uploader)
	auth := new(adminmocks.Authorizer)
	auth.On("Authorize", mock.Anything, sid).Return(context.Background(), serviceerrors.ErrUnauthenticated)

	h := routes.New(
		log,
		sessionhandler.New(log, nil),
		carthandler.New(log, nil, nil, nil),
		storefronthandler.NewCatalog(log, nil),
		storefronthandler.NewAccount(log, nil, nil),
		adminhandler.New(log, new(adminmocks.Backoffice), uploader, auth),
	).Handler()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "x.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/sessions/"+sid+"/admin/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	auth.AssertExpectations(t)
}
