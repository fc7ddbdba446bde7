package mocks

import (
	"context"

	"koistore/internal/backend"
	"koistore/internal/backend/odata"
	"koistore/internal/models"

	"github.com/stretchr/testify/mock"
)

type Storage struct {
	mock.Mock
}

func (m *Storage) GetEntry(ctx context.Context, sessionId, key string) (models.SessionEntry, error) {
	args := m.Called(ctx, sessionId, key)
	return args.Get(0).(models.SessionEntry), args.Error(1)
}
func (m *Storage) PutEntry(ctx context.Context, sessionId, key string, value []byte, expectedRevision int64) (int64, error) {
	args := m.Called(ctx, sessionId, key, value, expectedRevision)
	return args.Get(0).(int64), args.Error(1)
}

type Diets struct {
	mock.Mock
}

func (m *Diets) ListDiets(ctx context.Context, q *odata.Query) (backend.Page[models.Diet], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(backend.Page[models.Diet]), args.Error(1)
}

type Orders struct {
	mock.Mock
}

func (m *Orders) CreateOrder(ctx context.Context, req models.OrderRequest) (models.Order, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Order), args.Error(1)
}

type Notifier struct {
	mock.Mock
}

func (m *Notifier) CartChanged(ctx context.Context, cart models.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}
func (m *Notifier) OrderSubmitted(ctx context.Context, sessionId string, order models.Order, fishCount int) error {
	args := m.Called(ctx, sessionId, order, fishCount)
	return args.Error(0)
}
