package routes

import (
	"log/slog"
	"net/http"

	adminhandler "koistore/internal/handlers/admin"
	carthandler "koistore/internal/handlers/cart"
	"koistore/internal/handlers/response"
	sessionhandler "koistore/internal/handlers/session"
	storefronthandler "koistore/internal/handlers/storefront"
	"koistore/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Routes struct {
	log      *slog.Logger
	sessions *sessionhandler.Handler
	cart     *carthandler.Handler
	catalog  *storefronthandler.CatalogHandler
	account  *storefronthandler.AccountHandler
	admin    *adminhandler.Handler
}

func New(
	log *slog.Logger,
	sessions *sessionhandler.Handler,
	cart *carthandler.Handler,
	catalog *storefronthandler.CatalogHandler,
	account *storefronthandler.AccountHandler,
	admin *adminhandler.Handler,
) *Routes {
	return &Routes{
		log:      log,
		sessions: sessions,
		cart:     cart,
		catalog:  catalog,
		account:  account,
		admin:    admin,
	}
}

func (rt *Routes) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Logger(rt.log))
	r.Use(chimw.Recoverer)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.Fail(w, rt.log, http.StatusNotFound, "Not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		response.Fail(w, rt.log, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/fish", rt.catalog.ListFish)
	r.Get("/fish/{fishId}", rt.catalog.GetFish)
	r.Get("/diets", rt.catalog.ListDiets)

	r.Post("/sessions", rt.sessions.Create)
	r.Route("/sessions/{sid}", func(r chi.Router) {
		r.Delete("/", rt.sessions.Destroy)
		r.Post("/login", rt.sessions.Login)
		r.Post("/logout", rt.sessions.Logout)
		r.Get("/me", rt.sessions.Me)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", rt.cart.ViewCart)
			r.Delete("/", rt.cart.ClearCart)
			r.Post("/items", rt.cart.AddToCart)
			r.Delete("/items/{fishId}", rt.cart.RemoveFromCart)
			r.Put("/items/{fishId}/quantity", rt.cart.UpdateQuantity)
			r.Put("/items/{fishId}/consignment", rt.cart.SetConsignment)
			r.Patch("/items/{fishId}/consignment", rt.cart.PatchConsignment)
		})
		r.Post("/checkout", rt.cart.Checkout)

		r.Get("/wallet", rt.account.Wallet)
		r.Post("/wallet/deposit", rt.account.Deposit)
		r.Get("/orders", rt.account.Orders)
		r.Get("/consignments", rt.account.Consignments)
		r.Get("/sale-requests", rt.account.SaleRequests)
		r.Post("/sale-requests", rt.account.CreateSaleRequest)
		r.Delete("/sale-requests/{id}", rt.account.CancelSaleRequest)
		r.Get("/withdrawals", rt.account.Withdrawals)
		r.Post("/withdrawals", rt.account.CreateWithdrawal)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/uploads", rt.admin.Upload)

			r.Post("/fish", rt.admin.CreateFish)
			r.Put("/fish/{id}", rt.admin.UpdateFish)
			r.Delete("/fish/{id}", rt.admin.DeleteFish)

			r.Get("/breeds", rt.admin.ListBreeds)
			r.Post("/breeds", rt.admin.CreateBreed)
			r.Put("/breeds/{id}", rt.admin.UpdateBreed)
			r.Delete("/breeds/{id}", rt.admin.DeleteBreed)

			r.Post("/diets", rt.admin.CreateDiet)
			r.Put("/diets/{id}", rt.admin.UpdateDiet)
			r.Delete("/diets/{id}", rt.admin.DeleteDiet)

			r.Get("/certificates", rt.admin.ListCertificates)
			r.Post("/certificates", rt.admin.CreateCertificate)
			r.Put("/certificates/{id}", rt.admin.UpdateCertificate)
			r.Delete("/certificates/{id}", rt.admin.DeleteCertificate)

			r.Get("/faqs", rt.admin.ListFAQs)
			r.Post("/faqs", rt.admin.CreateFAQ)
			r.Put("/faqs/{id}", rt.admin.UpdateFAQ)
			r.Delete("/faqs/{id}", rt.admin.DeleteFAQ)

			r.Get("/orders", rt.admin.ListOrders)
			r.Get("/orders/{id}", rt.admin.GetOrder)
			r.Get("/consignments/{id}", rt.admin.GetConsignment)
			r.Post("/order-details/{id}/{action}", rt.admin.OrderDetailAction)
			r.Post("/withdrawals/{id}/{decision}", rt.admin.DecideWithdrawal)
		})
	})

	return r
}
