package mocks

import (
	"context"
	"io"

	"koistore/internal/backend"
	"koistore/internal/backend/odata"
	"koistore/internal/models"

	"github.com/stretchr/testify/mock"
)

type Backoffice struct {
	mock.Mock
}

func (m *Backoffice) OrderDetailAction(ctx context.Context, id int, action backend.OrderDetailAction, staffId int) (models.OrderDetail, error) {
	args := m.Called(ctx, id, action, staffId)
	return args.Get(0).(models.OrderDetail), args.Error(1)
}
func (m *Backoffice) ApproveWithdrawal(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *Backoffice) RejectWithdrawal(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *Backoffice) CreateFish(ctx context.Context, fish models.KoiFish) (models.KoiFish, error) {
	args := m.Called(ctx, fish)
	return args.Get(0).(models.KoiFish), args.Error(1)
}

type Uploader struct {
	mock.Mock
}

func (m *Uploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, filename, r)
	return args.String(0), args.Error(1)
}

type Authorizer struct {
	mock.Mock
}

func (m *Authorizer) Authorize(ctx context.Context, sessionId string) (context.Context, error) {
	args := m.Called(ctx, sessionId)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *Backoffice) ListOrders(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Order), args.Error(1)
}
func (m *Backoffice) GetOrder(ctx context.Context, id int) (models.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Order), args.Error(1)
}
func (m *Backoffice) GetConsignment(ctx context.Context, id int) (models.Consignment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Consignment), args.Error(1)
}
func (m *Backoffice) UpdateFish(ctx context.Context, fish models.KoiFish) (models.KoiFish, error) {
	args := m.Called(ctx, fish)
	return args.Get(0).(models.KoiFish), args.Error(1)
}
func (m *Backoffice) DeleteFish(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *Backoffice) ListBreeds(ctx context.Context) ([]models.Breed, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Breed), args.Error(1)
}
func (m *Backoffice) CreateBreed(ctx context.Context, b models.Breed) (models.Breed, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(models.Breed), args.Error(1)
}
func (m *Backoffice) UpdateBreed(ctx context.Context, b models.Breed) (models.Breed, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(models.Breed), args.Error(1)
}
func (m *Backoffice) DeleteBreed(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *Backoffice) CreateDiet(ctx context.Context, d models.Diet) (models.Diet, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(models.Diet), args.Error(1)
}
func (m *Backoffice) UpdateDiet(ctx context.Context, d models.Diet) (models.Diet, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(models.Diet), args.Error(1)
}
func (m *Backoffice) DeleteDiet(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *Backoffice) ListCertificates(ctx context.Context, q *odata.Query) (backend.Page[backend.CertificateView], error) {
	args := m.Called(ctx, q)
	return args.Get(0).(backend.Page[backend.CertificateView]), args.Error(1)
}
func (m *Backoffice) CreateCertificate(ctx context.Context, cert models.Certificate) (models.Certificate, error) {
	args := m.Called(ctx, cert)
	return args.Get(0).(models.Certificate), args.Error(1)
}
func (m *Backoffice) UpdateCertificate(ctx context.Context, cert models.Certificate) (models.Certificate, error) {
	args := m.Called(ctx, cert)
	return args.Get(0).(models.Certificate), args.Error(1)
}
func (m *Backoffice) DeleteCertificate(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *Backoffice) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.FAQ), args.Error(1)
}
func (m *Backoffice) CreateFAQ(ctx context.Context, f models.FAQ) (models.FAQ, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(models.FAQ), args.Error(1)
}
func (m *Backoffice) UpdateFAQ(ctx context.Context, f models.FAQ) (models.FAQ, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(models.FAQ), args.Error(1)
}
func (m *Backoffice) DeleteFAQ(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
