package catalog

import (
	"context"
	"testing"

	domaincatalog "github.com/autoparts/backend/internal/domain/catalog"
	"github.com/autoparts/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockProductRepository is a testify mock of catalog.ProductRepository
type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, p *domaincatalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepository) Update(ctx context.Context, p *domaincatalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domaincatalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domaincatalog.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context, filter domaincatalog.ListFilter) ([]domaincatalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domaincatalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepository) FindForUpdate(ctx context.Context, ids []uuid.UUID) ([]domaincatalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domaincatalog.Product), args.Error(1)
}

func (m *mockProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (int64, error) {
	args := m.Called(ctx, id, quantity)
	return args.Get(0).(int64), args.Error(1)
}

// fakeImageStorage records saved keys and returns deterministic URLs
type fakeImageStorage struct {
	saved map[string][]byte
}

func newFakeImageStorage() *fakeImageStorage {
	return &fakeImageStorage{saved: make(map[string][]byte)}
}

func (f *fakeImageStorage) Save(_ context.Context, key string, data []byte, _ string) (string, error) {
	f.saved[key] = data
	return "/uploads/" + key, nil
}

func (f *fakeImageStorage) Delete(_ context.Context, key string) error {
	delete(f.saved, key)
	return nil
}

func TestCreateProduct(t *testing.T) {
	repo := new(mockProductRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
	svc := NewProductService(repo, newFakeImageStorage(), zap.NewNop())

	resp, err := svc.Create(context.Background(), CreateProductRequest{
		Name:  "LED Headlight",
		Part:  "headlight",
		Price: "150.00",
		Stock: 10,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "LED Headlight", resp.Name)
	assert.Equal(t, "150.00", resp.Price)
	assert.Equal(t, 10, resp.Stock)
	repo.AssertExpectations(t)
}

func TestCreateProductWithImage(t *testing.T) {
	repo := new(mockProductRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
	images := newFakeImageStorage()
	svc := NewProductService(repo, images, zap.NewNop())

	resp, err := svc.Create(context.Background(), CreateProductRequest{
		Name:  "Brake Pad",
		Part:  "brake",
		Price: "80",
		Stock: 4,
	}, &ImageUpload{Filename: "pad.jpg", ContentType: "image/jpeg", Data: []byte("jpegdata")})
	require.NoError(t, err)

	assert.Contains(t, resp.ImageURL, resp.ID.String())
	assert.Len(t, images.saved, 1)
}

func TestCreateProductInvalidPrice(t *testing.T) {
	svc := NewProductService(new(mockProductRepository), nil, zap.NewNop())

	_, err := svc.Create(context.Background(), CreateProductRequest{
		Name:  "Brake Pad",
		Part:  "brake",
		Price: "not-a-number",
		Stock: 4,
	}, nil)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
}

func TestUpdateProductNotFound(t *testing.T) {
	repo := new(mockProductRepository)
	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
	svc := NewProductService(repo, nil, zap.NewNop())

	_, err := svc.Update(context.Background(), uuid.New(), UpdateProductRequest{
		Name: "X", Part: "y", Price: "1",
	}, nil)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRestock(t *testing.T) {
	product, err := domaincatalog.NewProduct("Mirror", "mirror", decimal.NewFromInt(40), 3, "")
	require.NoError(t, err)

	repo := new(mockProductRepository)
	repo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	repo.On("Update", mock.Anything, product).Return(nil)
	svc := NewProductService(repo, nil, zap.NewNop())

	resp, err := svc.Restock(context.Background(), product.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 8, resp.Stock)

	_, err = svc.Restock(context.Background(), product.ID, 0)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
}
