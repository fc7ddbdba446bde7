package mocks

import (
	"context"

	"koistore/internal/models"

	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) Create(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *Service) Destroy(ctx context.Context, sessionId string) error {
	args := m.Called(ctx, sessionId)
	return args.Error(0)
}
func (m *Service) Login(ctx context.Context, sessionId, email, password string) (models.User, error) {
	args := m.Called(ctx, sessionId, email, password)
	return args.Get(0).(models.User), args.Error(1)
}
func (m *Service) Logout(ctx context.Context, sessionId string) error {
	args := m.Called(ctx, sessionId)
	return args.Error(0)
}
func (m *Service) Me(ctx context.Context, sessionId string) (models.User, error) {
	args := m.Called(ctx, sessionId)
	return args.Get(0).(models.User), args.Error(1)
}
