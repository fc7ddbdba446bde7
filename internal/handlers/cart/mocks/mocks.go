package mocks

import (
	"context"

	"koistore/internal/consignment"
	"koistore/internal/models"
	cartservice "koistore/internal/service/cart"

	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) Summary(ctx context.Context, sessionId string) (cartservice.View, error) {
	args := m.Called(ctx, sessionId)
	return args.Get(0).(cartservice.View), args.Error(1)
}
func (m *Service) AddToCart(ctx context.Context, sessionId string, fish models.KoiFish) (models.Cart, error) {
	args := m.Called(ctx, sessionId, fish)
	return args.Get(0).(models.Cart), args.Error(1)
}
func (m *Service) RemoveFromCart(ctx context.Context, sessionId string, fishId int) (models.Cart, error) {
	args := m.Called(ctx, sessionId, fishId)
	return args.Get(0).(models.Cart), args.Error(1)
}
func (m *Service) UpdateCartItemQuantity(ctx context.Context, sessionId string, fishId, quantity int) (models.Cart, error) {
	args := m.Called(ctx, sessionId, fishId, quantity)
	return args.Get(0).(models.Cart), args.Error(1)
}
func (m *Service) UpdateCartItemConsignment(ctx context.Context, sessionId string, fishId int, consign bool, cfg *models.ConsignmentConfig) (models.Cart, error) {
	args := m.Called(ctx, sessionId, fishId, consign, cfg)
	return args.Get(0).(models.Cart), args.Error(1)
}
func (m *Service) PatchConsignment(ctx context.Context, sessionId string, fishId int, p consignment.Patch) (models.Cart, error) {
	args := m.Called(ctx, sessionId, fishId, p)
	return args.Get(0).(models.Cart), args.Error(1)
}
func (m *Service) ClearCart(ctx context.Context, sessionId string) error {
	args := m.Called(ctx, sessionId)
	return args.Error(0)
}
func (m *Service) Checkout(ctx context.Context, sessionId, shippingAddress, note string) (models.Order, error) {
	args := m.Called(ctx, sessionId, shippingAddress, note)
	return args.Get(0).(models.Order), args.Error(1)
}

type Catalog struct {
	mock.Mock
}

func (m *Catalog) GetFish(ctx context.Context, id int) (models.KoiFish, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.KoiFish), args.Error(1)
}

type Authorizer struct {
	mock.Mock
}

func (m *Authorizer) Authorize(ctx context.Context, sessionId string) (context.Context, error) {
	args := m.Called(ctx, sessionId)
	return args.Get(0).(context.Context), args.Error(1)
}
