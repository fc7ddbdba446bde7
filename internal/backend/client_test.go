package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"koistore/internal/backend"
	"koistore/internal/backend/odata"
	"koistore/internal/middleware"
	"koistore/internal/models"
	"koistore/pkg/lib/logger/slogdiscard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := backend.New(slogdiscard.NewDiscardLogger(), srv.URL+"/api", time.Second)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_EnvelopeSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/KoiFish/7", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "cid-1", r.Header.Get(middleware.HeaderCorrelationID))
		writeJSON(w, http.StatusOK, map[string]any{
			"isSuccess": true,
			"data":      map[string]any{"id": 7, "name": "Kohaku", "price": 5000000},
		})
	})

	ctx := backend.WithToken(middleware.WithCorrelationID(context.Background(), "cid-1"), "tok")
	fish, err := c.GetFish(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, fish.Id)
	assert.EqualValues(t, 5_000_000, fish.Price)
}

func TestClient_EnvelopeFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"isSuccess": false, "message": "fish already sold"})
	})

	_, err := c.CreateOrder(context.Background(), models.OrderRequest{})
	var apiErr *backend.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "fish already sold", apiErr.Message)
}

func TestClient_HTTPErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		wantIs  error
		wantMsg string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: map[string]any{"message": "token expired"}, wantIs: backend.ErrUnauthorized, wantMsg: "token expired"},
		{name: "not found", status: http.StatusNotFound, body: map[string]any{"title": "Not Found"}, wantIs: backend.ErrNotFound, wantMsg: "Not Found"},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantMsg: `"boom"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := c.Me(context.Background())
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			var apiErr *backend.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	c, err := backend.New(slogdiscard.NewDiscardLogger(), "http://127.0.0.1:1", 200*time.Millisecond)
	require.NoError(t, err)

	_, err = c.Me(context.Background())
	assert.Error(t, err)
}

func TestClient_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"isSuccess": true})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Me(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_ListDietsFlattensPascalCase(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/odata/diets", r.URL.Path)
		assert.Equal(t, "$orderby=Name&$count=true", r.URL.RawQuery)
		writeJSON(w, http.StatusOK, map[string]any{
			"@odata.count": 12,
			"value": []map[string]any{
				{"Id": 1, "Name": "Standard", "DietCost": 20000, "Description": "pellets"},
				{"Id": 2, "Name": "Premium", "DietCost": 50000},
			},
		})
	})

	page, err := c.ListDiets(context.Background(), odata.New().OrderBy("Name", false).Count())
	require.NoError(t, err)
	assert.Equal(t, 12, page.Count)
	require.Len(t, page.Items, 2)
	assert.Equal(t, models.Diet{Id: 1, Name: "Standard", DietCost: 20_000, Description: "pellets"}, page.Items[0])
}

func TestClient_ListCertificatesFlattensFishName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"value": []map[string]any{
				{"Id": 3, "KoiFishId": 7, "CertificateType": "ORIGIN", "CertificateUrl": "https://img/x.png", "KoiFish": map[string]any{"Name": "Kohaku"}},
			},
		})
	})

	page, err := c.ListCertificates(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Count)
	assert.Equal(t, "Kohaku", page.Items[0].FishName)
	assert.Equal(t, "https://img/x.png", page.Items[0].URL)
}

func TestClient_ListMySaleRequests(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/odata/my-request-for-sales", r.URL.Path)
		assert.Equal(t, "Status eq 'PENDING'", r.URL.Query().Get("$filter"))
		assert.Equal(t, "KoiFish($expand=KoiFishImages)", r.URL.Query().Get("$expand"))
		writeJSON(w, http.StatusOK, map[string]any{
			"value": []map[string]any{{
				"Id": 4, "KoiFishId": 9, "PriceDealed": 1200000, "Method": "ONLINE", "Status": "PENDING",
				"KoiFish": map[string]any{"Id": 9, "Name": "Showa", "KoiFishImages": []map[string]any{{"Url": "https://img/1"}}},
			}},
		})
	})

	page, err := c.ListMySaleRequests(context.Background(), odata.New().Eq("Status", "PENDING"))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	got := page.Items[0]
	assert.Equal(t, models.SaleRequestPending, got.Status)
	assert.True(t, got.Reviewable)
	require.NotNil(t, got.Fish)
	assert.Equal(t, "Showa", got.Fish.Name)
	assert.Equal(t, []string{"https://img/1"}, got.Fish.Images)
}

func TestClient_UnknownStatusRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"isSuccess": true,
			"data":      []map[string]any{{"id": 1, "status": "LOST_AT_SEA"}},
		})
	})

	_, err := c.ListMyOrders(context.Background())
	assert.ErrorIs(t, err, models.ErrUnknownStatus)
}

func TestClient_OrderDetailAction(t *testing.T) {
	tests := []struct {
		action   backend.OrderDetailAction
		wantBody string
	}{
		{action: backend.ActionAssign, wantBody: `{"staffId":12}`},
		{action: backend.ActionShip, wantBody: ``},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/order-details/5/"+string(tt.action), r.URL.Path)
				body, _ := io.ReadAll(r.Body)
				if tt.wantBody == "" {
					assert.Empty(t, body)
				} else {
					assert.JSONEq(t, tt.wantBody, string(body))
				}
				writeJSON(w, http.StatusOK, map[string]any{"isSuccess": true, "data": map[string]any{"id": 5, "status": "ASSIGNED"}})
			})

			d, err := c.OrderDetailAction(context.Background(), 5, tt.action, 12)
			require.NoError(t, err)
			assert.Equal(t, models.OrderDetailAssigned, d.Status)
		})
	}
}

func TestParseOrderDetailAction(t *testing.T) {
	a, err := backend.ParseOrderDetailAction("approve")
	require.NoError(t, err)
	assert.Equal(t, backend.ActionApprove, a)

	_, err = backend.ParseOrderDetailAction("refund")
	assert.Error(t, err)
}

func TestClient_WithdrawalEndpoints(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/api/WithdrawnRequest/GetListByUserId/3":
			writeJSON(w, http.StatusOK, map[string]any{"isSuccess": true, "data": []map[string]any{{"id": 1, "amount": 100000, "status": "PENDING"}}})
		default:
			writeJSON(w, http.StatusOK, map[string]any{"isSuccess": true, "data": true})
		}
	})

	ctx := context.Background()
	list, err := c.ListWithdrawals(ctx, 3)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Reviewable)

	require.NoError(t, c.ApproveWithdrawal(ctx, 1))
	require.NoError(t, c.RejectWithdrawal(ctx, 2))

	assert.Equal(t, []string{
		"GET /api/WithdrawnRequest/GetListByUserId/3",
		"PUT /api/WithdrawnRequest/ApproveRequest/1",
		"PUT /api/WithdrawnRequest/RejectRequest/2",
	}, paths)
}

func TestClient_Login(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req backend.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@b.vn", req.Email)
		writeJSON(w, http.StatusOK, map[string]any{"isSuccess": true, "data": map[string]any{"token": "jwt", "refreshToken": "rt"}})
	})

	tokens, err := c.Login(context.Background(), "a@b.vn", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.AuthTokens{Token: "jwt", RefreshToken: "rt"}, tokens)
}

func TestClient_EmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	ctx := context.Background()

	order, err := c.CreateOrder(ctx, models.OrderRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Zero(t, order.Id)

	assert.NoError(t, c.DeleteFish(ctx, 4))
	assert.NoError(t, c.CancelSaleRequest(ctx, 4))
}

func TestClient_BackofficeEndpoints(t *testing.T) {
	var got []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Method+" "+r.URL.Path)
		switch {
		case r.Method == http.MethodGet && (r.URL.Path == "/api/koi-breeds" || r.URL.Path == "/api/faqs" || r.URL.Path == "/api/orders"):
			writeJSON(w, http.StatusOK, map[string]any{"isSuccess": true, "data": []map[string]any{{"id": 1}}})
		default:
			writeJSON(w, http.StatusOK, map[string]any{"isSuccess": true, "data": map[string]any{"id": 9}})
		}
	})
	ctx := context.Background()

	tests := []struct {
		want string
		call func() error
	}{
		{"PUT /api/KoiFish/9", func() error { _, err := c.UpdateFish(ctx, models.KoiFish{Id: 9}); return err }},
		{"DELETE /api/KoiFish/9", func() error { return c.DeleteFish(ctx, 9) }},
		{"GET /api/koi-breeds", func() error { l, err := c.ListBreeds(ctx); assert.Len(t, l, 1); return err }},
		{"POST /api/koi-breeds", func() error { _, err := c.CreateBreed(ctx, models.Breed{Name: "Asagi"}); return err }},
		{"PUT /api/koi-breeds/2", func() error { _, err := c.UpdateBreed(ctx, models.Breed{Id: 2}); return err }},
		{"DELETE /api/koi-breeds/2", func() error { return c.DeleteBreed(ctx, 2) }},
		{"POST /api/diets", func() error { _, err := c.CreateDiet(ctx, models.Diet{Name: "Basic"}); return err }},
		{"PUT /api/diets/3", func() error { _, err := c.UpdateDiet(ctx, models.Diet{Id: 3}); return err }},
		{"DELETE /api/diets/3", func() error { return c.DeleteDiet(ctx, 3) }},
		{"POST /api/koi-certificates", func() error { _, err := c.CreateCertificate(ctx, models.Certificate{}); return err }},
		{"PUT /api/koi-certificates/5", func() error { _, err := c.UpdateCertificate(ctx, models.Certificate{Id: 5}); return err }},
		{"DELETE /api/koi-certificates/5", func() error { return c.DeleteCertificate(ctx, 5) }},
		{"GET /api/faqs", func() error { l, err := c.ListFAQs(ctx); assert.Len(t, l, 1); return err }},
		{"POST /api/faqs", func() error { _, err := c.CreateFAQ(ctx, models.FAQ{}); return err }},
		{"PUT /api/faqs/6", func() error { _, err := c.UpdateFAQ(ctx, models.FAQ{Id: 6}); return err }},
		{"DELETE /api/faqs/6", func() error { return c.DeleteFAQ(ctx, 6) }},
		{"GET /api/orders", func() error { l, err := c.ListOrders(ctx); assert.Len(t, l, 1); return err }},
		{"GET /api/orders/9", func() error { o, err := c.GetOrder(ctx, 9); assert.Equal(t, 9, o.Id); return err }},
		{"GET /api/nurture-consignments/9", func() error { _, err := c.GetConsignment(ctx, 9); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got = nil
			require.NoError(t, tt.call())
			assert.Equal(t, []string{tt.want}, got)
		})
	}
}
