package mocks

import (
	"context"

	"koistore/internal/models"

	"github.com/stretchr/testify/mock"
)

type Storage struct {
	mock.Mock
}

func (m *Storage) CreateSession(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *Storage) DeleteSession(ctx context.Context, sessionId string) error {
	args := m.Called(ctx, sessionId)
	return args.Error(0)
}
func (m *Storage) GetEntry(ctx context.Context, sessionId, key string) (models.SessionEntry, error) {
	args := m.Called(ctx, sessionId, key)
	return args.Get(0).(models.SessionEntry), args.Error(1)
}
func (m *Storage) PutEntry(ctx context.Context, sessionId, key string, value []byte, expectedRevision int64) (int64, error) {
	args := m.Called(ctx, sessionId, key, value, expectedRevision)
	return args.Get(0).(int64), args.Error(1)
}
func (m *Storage) DeleteEntries(ctx context.Context, sessionId string, keys ...string) error {
	args := m.Called(ctx, sessionId, keys)
	return args.Error(0)
}

type Auth struct {
	mock.Mock
}

func (m *Auth) Login(ctx context.Context, email, password string) (models.AuthTokens, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(models.AuthTokens), args.Error(1)
}
func (m *Auth) Me(ctx context.Context) (models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.User), args.Error(1)
}
