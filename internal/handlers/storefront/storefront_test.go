package storefronthandler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"koistore/internal/backend"
	"koistore/internal/backend/odata"
	storefronthandler "koistore/internal/handlers/storefront"
	"koistore/internal/handlers/storefront/mocks"
	"koistore/internal/models"
	serviceerrors "koistore/internal/service"
	"koistore/pkg/lib/logger/slogdiscard"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sid = "0f8fad5b-d9cb-469f-a165-70867728950e"

type tokenKey struct{}

var authorized = context.WithValue(context.Background(), tokenKey{}, "jwt")

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestFishQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    string
		wantErr bool
	}{
		{
			name:  "defaults",
			query: "",
			want:  "$skip=0&$top=12&$count=true",
		},
		{
			name:  "search and price range",
			query: "search=kohaku&minPrice=100&maxPrice=900&page=2&pageSize=10",
			want:  "$filter=" + "%28contains%28Name%2C%20%27kohaku%27%29%29%20and%20%28Price%20ge%20100%29%20and%20%28Price%20le%20900%29" + "&$skip=10&$top=10&$count=true",
		},
		{
			name:  "order by price desc",
			query: "orderBy=price&desc=true",
			want:  "$orderby=Price%20desc&$skip=0&$top=12&$count=true",
		},
		{name: "unknown order field", query: "orderBy=color", wantErr: true},
		{name: "page size too big", query: "pageSize=1000", wantErr: true},
		{name: "bad price", query: "minPrice=cheap", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/fish?"+tt.query, nil)
			q, err := storefronthandler.FishQuery(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Encode())
		})
	}
}

func catalogRouter(c *mocks.Catalog) http.Handler {
	h := storefronthandler.NewCatalog(slogdiscard.NewDiscardLogger(), c)
	r := chi.NewRouter()
	r.Get("/fish", h.ListFish)
	r.Get("/fish/{fishId}", h.GetFish)
	r.Get("/diets", h.ListDiets)
	return r
}

func TestCatalog(t *testing.T) {
	c := new(mocks.Catalog)
	c.On("ListFish", mock.Anything, mock.MatchedBy(func(q *odata.Query) bool {
		return strings.Contains(q.Encode(), "Gender%20eq%20%27Male%27")
	})).Return(backend.Page[models.KoiFish]{Items: []models.KoiFish{{Id: 1, Name: "Kohaku"}}, Count: 1}, nil)
	c.On("GetFish", mock.Anything, 1).Return(models.KoiFish{Id: 1}, nil)
	c.On("GetFish", mock.Anything, 2).Return(models.KoiFish{}, &backend.Error{Status: http.StatusNotFound})
	c.On("ListDiets", mock.Anything, mock.Anything).Return(backend.Page[models.Diet]{}, &backend.Error{Status: http.StatusInternalServerError, Message: "db"})
	r := catalogRouter(c)

	rec := serve(r, http.MethodGet, "/fish?gender=Male", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)

	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/fish?pageSize=0", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/fish/1", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/fish/2", "").Code)
	assert.Equal(t, http.StatusBadGateway, serve(r, http.MethodGet, "/diets", "").Code)
	c.AssertExpectations(t)
}

func accountRouter(a *mocks.Account, s *mocks.Sessions) http.Handler {
	h := storefronthandler.NewAccount(slogdiscard.NewDiscardLogger(), a, s)
	r := chi.NewRouter()
	r.Route("/sessions/{sid}", func(r chi.Router) {
		r.Get("/wallet", h.Wallet)
		r.Post("/wallet/deposit", h.Deposit)
		r.Get("/orders", h.Orders)
		r.Get("/consignments", h.Consignments)
		r.Get("/sale-requests", h.SaleRequests)
		r.Post("/sale-requests", h.CreateSaleRequest)
		r.Delete("/sale-requests/{id}", h.CancelSaleRequest)
		r.Get("/withdrawals", h.Withdrawals)
		r.Post("/withdrawals", h.CreateWithdrawal)
	})
	return r
}

func TestAccount_RequiresLogin(t *testing.T) {
	a := new(mocks.Account)
	s := new(mocks.Sessions)
	s.On("Authorize", mock.Anything, sid).Return(context.Background(), serviceerrors.ErrUnauthenticated)
	r := accountRouter(a, s)

	for _, path := range []string{"/wallet", "/orders", "/consignments", "/sale-requests", "/withdrawals"} {
		rec := serve(r, http.MethodGet, "/sessions/"+sid+path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
	a.AssertNotCalled(t, "MyWallet", mock.Anything)
}

func TestAccount(t *testing.T) {
	a := new(mocks.Account)
	s := new(mocks.Sessions)
	s.On("Authorize", mock.Anything, sid).Return(authorized, nil)
	s.On("UserId", authorized, sid).Return(42, nil)

	a.On("MyWallet", authorized).Return(models.Wallet{Balance: 100}, nil)
	a.On("Deposit", authorized, int64(50000)).Return(backend.DepositResult{PaymentURL: "https://pay.example/x"}, nil)
	a.On("ListMyOrders", authorized).Return([]models.Order{{Id: 1}}, nil)
	a.On("ListMyConsignments", authorized).Return([]models.Consignment{}, nil)
	a.On("ListMySaleRequests", authorized, mock.MatchedBy(func(q *odata.Query) bool {
		return strings.Contains(q.Encode(), "Status%20eq%20%27PENDING%27")
	})).Return(backend.Page[models.RequestForSale]{}, nil)
	a.On("CreateSaleRequest", authorized, backend.SaleRequestCreate{KoiFishId: 3, PriceDealed: 1000, Method: "ONLINE"}).
		Return(models.RequestForSale{Id: 8}, nil)
	a.On("CancelSaleRequest", authorized, 8).Return(nil)
	a.On("ListWithdrawals", authorized, 42).Return([]models.WithdrawnRequest{}, nil)
	a.On("CreateWithdrawal", authorized, backend.WithdrawalCreate{Amount: 10, BankName: "VCB", BankAccount: "0123"}).
		Return(models.WithdrawnRequest{Id: 2}, nil)

	r := accountRouter(a, s)
	base := "/sessions/" + sid

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, base+"/wallet", "").Code)
	rec := serve(r, http.MethodPost, base+"/wallet/deposit", `{"amount":50000}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pay.example")
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, base+"/wallet/deposit", `{"amount":0}`).Code)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, base+"/orders", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, base+"/consignments", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, base+"/sale-requests?status=pending", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, base+"/sale-requests?status=SHIPPED", "").Code)

	assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, base+"/sale-requests", `{"koiFishId":3,"priceDealed":1000,"method":"ONLINE"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, base+"/sale-requests", `{"koiFishId":3,"priceDealed":1000,"method":"BARTER"}`).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodDelete, base+"/sale-requests/8", "").Code)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, base+"/withdrawals", "").Code)
	assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, base+"/withdrawals", `{"amount":10,"bankName":"VCB","bankAccount":"0123"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, base+"/withdrawals", `{"amount":10,"bankName":"VCB","bankAccount":"abc"}`).Code)

	a.AssertExpectations(t)
}
