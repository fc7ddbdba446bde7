package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"koistore/internal/models"
)

func (c *Client) MyWallet(ctx context.Context) (models.Wallet, error) {
	const op = "backend.MyWallet"
	return call[models.Wallet](ctx, c, op, http.MethodGet, "users/me/wallets", nil)
}

type DepositRequest struct {
	Amount int64 `json:"amount" validate:"gt=0"`
}

// DepositResult carries the payment-gateway URL the shopper completes the
// deposit at.
type DepositResult struct {
	PaymentURL string `json:"paymentUrl"`
}

func (c *Client) Deposit(ctx context.Context, amount int64) (DepositResult, error) {
	const op = "backend.Deposit"
	return call[DepositResult](ctx, c, op, http.MethodPost, "wallets/deposit", DepositRequest{Amount: amount})
}

type WithdrawalCreate struct {
	Amount      int64  `json:"amount" validate:"gt=0"`
	BankName    string `json:"bankName" validate:"required"`
	BankAccount string `json:"bankAccount" validate:"required,numeric"`
}

func (c *Client) CreateWithdrawal(ctx context.Context, req WithdrawalCreate) (models.WithdrawnRequest, error) {
	const op = "backend.CreateWithdrawal"
	return call[models.WithdrawnRequest](ctx, c, op, http.MethodPost, "WithdrawnRequest/CreateRequest", req)
}

func (c *Client) ApproveWithdrawal(ctx context.Context, id int) error {
	const op = "backend.ApproveWithdrawal"
	_, err := call[json.RawMessage](ctx, c, op, http.MethodPut, "WithdrawnRequest/ApproveRequest/"+strconv.Itoa(id), nil)
	return err
}

func (c *Client) RejectWithdrawal(ctx context.Context, id int) error {
	const op = "backend.RejectWithdrawal"
	_, err := call[json.RawMessage](ctx, c, op, http.MethodPut, "WithdrawnRequest/RejectRequest/"+strconv.Itoa(id), nil)
	return err
}

func (c *Client) ListWithdrawals(ctx context.Context, userId int) ([]models.WithdrawnRequest, error) {
	const op = "backend.ListWithdrawals"
	return call[[]models.WithdrawnRequest](ctx, c, op, http.MethodGet, "WithdrawnRequest/GetListByUserId/"+strconv.Itoa(userId), nil)
}
