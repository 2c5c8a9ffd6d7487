package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"product-catalog/internal/model"
	"product-catalog/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Read(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) ReadByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, payload model.ProductInput) (model.Product, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, id string, payload model.ProductInput) (model.Product, error) {
	args := m.Called(ctx, id, payload)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func TestProductService_PassesResultsThrough(t *testing.T) {
	ctx := context.Background()
	product := model.Product{ID: "1", Name: "Latte", Price: model.Ptr(2.45)}
	payload := model.ProductInput{Name: model.Ptr("Latte")}

	repo := new(MockProductRepository)
	repo.On("Read", ctx).Return([]model.Product{product}, nil)
	repo.On("ReadByID", ctx, "1").Return(product, nil)
	repo.On("Create", ctx, payload).Return(product, nil)
	repo.On("Update", ctx, "1", payload).Return(product, nil)
	repo.On("Delete", ctx, "1").Return(product, nil)

	svc := NewProductService(repo, zerolog.Nop())

	products, err := svc.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Product{product}, products)

	got, err := svc.ReadByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, product, got)

	got, err = svc.Create(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, product, got)

	got, err = svc.Update(ctx, "1", payload)
	require.NoError(t, err)
	assert.Equal(t, product, got)

	got, err = svc.Delete(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, product, got)

	repo.AssertExpectations(t)
}

func TestProductService_ErrorsAreNotWrapped(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		err  error
		call func(svc repository.ProductRepository) error
	}{
		{
			name: "Read",
			err:  errors.New("database error"),
			call: func(svc repository.ProductRepository) error {
				_, err := svc.Read(ctx)
				return err
			},
		},
		{
			name: "ReadByID not found",
			err:  model.ErrProductNotFound,
			call: func(svc repository.ProductRepository) error {
				_, err := svc.ReadByID(ctx, "404")
				return err
			},
		},
		{
			name: "Create",
			err:  errors.New("unique violation"),
			call: func(svc repository.ProductRepository) error {
				_, err := svc.Create(ctx, model.ProductInput{})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockProductRepository)
			repo.On("Read", ctx).Return(nil, tt.err).Maybe()
			repo.On("ReadByID", ctx, "404").Return(model.Product{}, tt.err).Maybe()
			repo.On("Create", ctx, model.ProductInput{}).Return(model.Product{}, tt.err).Maybe()

			err := tt.call(NewProductService(repo, zerolog.Nop()))
			assert.Same(t, tt.err, err)
		})
	}
}

func TestProductService_LogsFailures(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)

	repo := new(MockProductRepository)
	repo.On("Delete", ctx, "1").Return(model.Product{}, errors.New("disk full"))
	repo.On("Update", ctx, "2", model.ProductInput{}).Return(model.Product{}, model.ErrProductNotFound)

	svc := NewProductService(repo, logger)

	_, err := svc.Delete(ctx, "1")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "failed to delete product")
	assert.Contains(t, buf.String(), "disk full")

	buf.Reset()
	_, err = svc.Update(ctx, "2", model.ProductInput{})
	assert.Same(t, model.ErrProductNotFound, err)
	assert.Empty(t, buf.String(), "not found is only logged at debug level")
}
