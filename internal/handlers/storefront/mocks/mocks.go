package mocks

import (
	"context"

	"koistore/internal/backend"
	"koistore/internal/backend/odata"
	"koistore/internal/models"

	"github.com/stretchr/testify/mock"
)

type Catalog struct {
	mock.Mock
}

func (m *Catalog) ListFish(ctx context.Context, q *odata.Query) (backend.Page[models.KoiFish], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(backend.Page[models.KoiFish]), args.Error(1)
}
func (m *Catalog) GetFish(ctx context.Context, id int) (models.KoiFish, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.KoiFish), args.Error(1)
}
func (m *Catalog) ListDiets(ctx context.Context, q *odata.Query) (backend.Page[models.Diet], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(backend.Page[models.Diet]), args.Error(1)
}

type Account struct {
	mock.Mock
}

func (m *Account) MyWallet(ctx context.Context) (models.Wallet, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Wallet), args.Error(1)
}
func (m *Account) Deposit(ctx context.Context, amount int64) (backend.DepositResult, error) {
	args := m.Called(ctx, amount)
	return args.Get(0).(backend.DepositResult), args.Error(1)
}
func (m *Account) ListMyOrders(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Order), args.Error(1)
}
func (m *Account) ListMyConsignments(ctx context.Context) ([]models.Consignment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Consignment), args.Error(1)
}
func (m *Account) ListMySaleRequests(ctx context.Context, q *odata.Query) (backend.Page[models.RequestForSale], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(backend.Page[models.RequestForSale]), args.Error(1)
}
func (m *Account) CreateSaleRequest(ctx context.Context, req backend.SaleRequestCreate) (models.RequestForSale, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.RequestForSale), args.Error(1)
}
func (m *Account) CancelSaleRequest(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *Account) ListWithdrawals(ctx context.Context, userId int) ([]models.WithdrawnRequest, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).([]models.WithdrawnRequest), args.Error(1)
}
func (m *Account) CreateWithdrawal(ctx context.Context, req backend.WithdrawalCreate) (models.WithdrawnRequest, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.WithdrawnRequest), args.Error(1)
}

type Sessions struct {
	mock.Mock
}

func (m *Sessions) Authorize(ctx context.Context, sessionId string) (context.Context, error) {
	args := m.Called(ctx, sessionId)
	return args.Get(0).(context.Context), args.Error(1)
}
func (m *Sessions) UserId(ctx context.Context, sessionId string) (int, error) {
	args := m.Called(ctx, sessionId)
	return args.Int(0), args.Error(1)
}
