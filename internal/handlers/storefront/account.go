package storefronthandler

import (
	"context"
	"log/slog"
	"net/http"

	"koistore/internal/backend"
	"koistore/internal/backend/odata"
	"koistore/internal/handlers/response"
	"koistore/internal/models"
	"koistore/pkg/lib/urlparser"
)

type Account interface {
	MyWallet(ctx context.Context) (models.Wallet, error)
	Deposit(ctx context.Context, amount int64) (backend.DepositResult, error)
	ListMyOrders(ctx context.Context) ([]models.Order, error)
	ListMyConsignments(ctx context.Context) ([]models.Consignment, error)
	ListMySaleRequests(ctx context.Context, q *odata.Query) (backend.Page[models.RequestForSale], error)
	CreateSaleRequest(ctx context.Context, req backend.SaleRequestCreate) (models.RequestForSale, error)
	CancelSaleRequest(ctx context.Context, id int) error
	ListWithdrawals(ctx context.Context, userId int) ([]models.WithdrawnRequest, error)
	CreateWithdrawal(ctx context.Context, req backend.WithdrawalCreate) (models.WithdrawnRequest, error)
}

type Sessions interface {
	Authorize(ctx context.Context, sessionId string) (context.Context, error)
	UserId(ctx context.Context, sessionId string) (int, error)
}

type AccountHandler struct {
	log      *slog.Logger
	account  Account
	sessions Sessions
}

func NewAccount(log *slog.Logger, account Account, sessions Sessions) *AccountHandler {
	return &AccountHandler{
		log:      log,
		account:  account,
		sessions: sessions,
	}
}

// authorize resolves {sid} to a context carrying the backend token. It
// writes the error response itself and reports whether to continue.
func (h *AccountHandler) authorize(w http.ResponseWriter, r *http.Request, log *slog.Logger) (context.Context, string, bool) {
	sid, err := urlparser.SessionID(r)
	if err != nil {
		response.Error(w, log, err, "")
		return nil, "", false
	}
	ctx, err := h.sessions.Authorize(r.Context(), sid)
	if err != nil {
		response.Error(w, log, err, "Failed to authorize")
		return nil, "", false
	}
	return ctx, sid, true
}

// GET /sessions/{sid}/wallet
func (h *AccountHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storefront.Wallet"
	log := h.log.With("op", op)

	ctx, _, ok := h.authorize(w, r, log)
	if !ok {
		return
	}

	wallet, err := h.account.MyWallet(ctx)
	if err != nil {
		response.Error(w, log, err, "Failed to load wallet")
		return
	}
	response.OK(w, log, wallet)
}

// POST /sessions/{sid}/wallet/deposit
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storefront.Deposit"
	log := h.log.With("op", op)

	var req backend.DepositRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, log, err, "")
		return
	}

	ctx, _, ok := h.authorize(w, r, log)
	if !ok {
		return
	}

	res, err := h.account.Deposit(ctx, req.Amount)
	if err != nil {
		response.Error(w, log, err, "Failed to start deposit")
		return
	}
	response.OK(w, log, res)
}

// GET /sessions/{sid}/orders
func (h *AccountHandler) Orders(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storefront.Orders"
	log := h.log.With("op", op)

	ctx, _, ok := h.authorize(w, r, log)
	if !ok {
		return
	}

	orders, err := h.account.ListMyOrders(ctx)
	if err != nil {
		response.Error(w, log, err, "Failed to list orders")
		return
	}
	response.OK(w, log, orders)
}

// GET /sessions/{sid}/consignments
func (h *AccountHandler) Consignments(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storefront.Consignments"
	log := h.log.With("op", op)

	ctx, _, ok := h.authorize(w, r, log)
	if !ok {
		return
	}

	list, err := h.account.ListMyConsignments(ctx)
	if err != nil {
		response.Error(w, log, err, "Failed to list consignments")
		return
	}
	response.OK(w, log, list)
}

// GET /sessions/{sid}/sale-requests
func (h *AccountHandler) SaleRequests(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storefront.SaleRequests"
	log := h.log.With("op", op)

	q := odata.New().OrderBy("CreatedAt", true)
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParseSaleRequestStatus(raw)
		if err != nil {
			response.Error(w, log, urlparser.ErrBadParam, "")
			return
		}
		q.Eq("Status", string(status))
	}
	if err := pageParams(r, q); err != nil {
		response.Error(w, log, err, "")
		return
	}

	ctx, _, ok := h.authorize(w, r, log)
	if !ok {
		return
	}

	page, err := h.account.ListMySaleRequests(ctx, q)
	if err != nil {
		response.Error(w, log, err, "Failed to list sale requests")
		return
	}
	response.OK(w, log, page)
}

// POST /sessions/{sid}/sale-requests
func (h *AccountHandler) CreateSaleRequest(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storefront.CreateSaleRequest"
	log := h.log.With("op", op)

	var req backend.SaleRequestCreate
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, log, err, "")
		return
	}

	ctx, _, ok := h.authorize(w, r, log)
	if !ok {
		return
	}

	created, err := h.account.CreateSaleRequest(ctx, req)
	if err != nil {
		response.Error(w, log, err, "Failed to create sale request")
		return
	}
	response.JSON(w, log, http.StatusCreated, created)
}

// DELETE /sessions/{sid}/sale-requests/{id}
func (h *AccountHandler) CancelSaleRequest(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storefront.CancelSaleRequest"
	log := h.log.With("op", op)

	id, err := urlparser.Int(r, "id")
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	ctx, _, ok := h.authorize(w, r, log)
	if !ok {
		return
	}

	if err := h.account.CancelSaleRequest(ctx, id); err != nil {
		response.Error(w, log, err, "Failed to cancel sale request")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /sessions/{sid}/withdrawals
func (h *AccountHandler) Withdrawals(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storefront.Withdrawals"
	log := h.log.With("op", op)

	ctx, sid, ok := h.authorize(w, r, log)
	if !ok {
		return
	}

	userId, err := h.sessions.UserId(ctx, sid)
	if err != nil {
		response.Error(w, log, err, "Failed to resolve user")
		return
	}

	list, err := h.account.ListWithdrawals(ctx, userId)
	if err != nil {
		response.Error(w, log, err, "Failed to list withdrawals")
		return
	}
	response.OK(w, log, list)
}

// POST /sessions/{sid}/withdrawals
func (h *AccountHandler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.storefront.CreateWithdrawal"
	log := h.log.With("op", op)

	var req backend.WithdrawalCreate
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, log, err, "")
		return
	}

	ctx, _, ok := h.authorize(w, r, log)
	if !ok {
		return
	}

	created, err := h.account.CreateWithdrawal(ctx, req)
	if err != nil {
		response.Error(w, log, err, "Failed to create withdrawal")
		return
	}
	response.JSON(w, log, http.StatusCreated, created)
}
