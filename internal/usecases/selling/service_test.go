package selling_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-manager-api/internal/domain"
	"github.com/vfg2006/sales-manager-api/internal/usecases/selling"
	"github.com/vfg2006/sales-manager-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func ptr[T any](v T) *T {
	return &v
}

func TestCreate(t *testing.T) {
	t.Run("deve criar venda válida preenchendo SoldAt com o horário atual", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSaleRepository(ctrl)
		service := selling.NewService(repo)

		before := time.Now()

		repo.EXPECT().
			Insert(gomock.Any()).
			DoAndReturn(func(sale *domain.Sale) (*domain.Sale, error) {
				assert.Equal(t, "Camisa", sale.Name)
				assert.Equal(t, 29.90, sale.UnitPrice)
				assert.Equal(t, 10, sale.Quantity)
				assert.False(t, sale.SoldAt.Before(before))
				assert.Nil(t, sale.Notes)

				sale.ID = 1
				return sale, nil
			})

		sale, err := service.Create(selling.CreateSaleInput{
			Name:      "  Camisa  ",
			UnitPrice: 29.90,
			Quantity:  10,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, sale.ID)
		assert.Equal(t, "Camisa", sale.Name)
	})

	t.Run("deve respeitar SoldAt informado e normalizar observações", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSaleRepository(ctrl)
		service := selling.NewService(repo)

		soldAt := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

		repo.EXPECT().
			Insert(gomock.Any()).
			DoAndReturn(func(sale *domain.Sale) (*domain.Sale, error) {
				assert.True(t, sale.SoldAt.Equal(soldAt))
				require.NotNil(t, sale.Notes)
				assert.Equal(t, "promoção de verão", *sale.Notes)

				sale.ID = 2
				return sale, nil
			})

		_, err := service.Create(selling.CreateSaleInput{
			Name:      "Camisa",
			UnitPrice: 29.90,
			Quantity:  10,
			SoldAt:    &soldAt,
			Notes:     ptr("  promoção de verão  "),
		})

		require.NoError(t, err)
	})

	t.Run("deve rejeitar dados inválidos sem tocar no repositório", func(t *testing.T) {
		tests := []struct {
			name  string
			input selling.CreateSaleInput
			field string
		}{
			{
				name:  "nome vazio",
				input: selling.CreateSaleInput{Name: "   ", UnitPrice: 10, Quantity: 1},
				field: "name",
			},
			{
				name:  "nome acima de 100 caracteres",
				input: selling.CreateSaleInput{Name: strings.Repeat("a", 101), UnitPrice: 10, Quantity: 1},
				field: "name",
			},
			{
				name:  "preço zero",
				input: selling.CreateSaleInput{Name: "Camisa", UnitPrice: 0, Quantity: 1},
				field: "unit_price",
			},
			{
				name:  "preço negativo",
				input: selling.CreateSaleInput{Name: "Camisa", UnitPrice: -5, Quantity: 1},
				field: "unit_price",
			},
			{
				name:  "quantidade zero",
				input: selling.CreateSaleInput{Name: "Camisa", UnitPrice: 10, Quantity: 0},
				field: "quantity",
			},
			{
				name:  "quantidade negativa",
				input: selling.CreateSaleInput{Name: "Camisa", UnitPrice: 10, Quantity: -3},
				field: "quantity",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				repo := mocks.NewMockSaleRepository(ctrl)
				service := selling.NewService(repo)

				sale, err := service.Create(tt.input)

				assert.Nil(t, sale)
				require.Error(t, err)
				assert.ErrorIs(t, err, selling.ErrInvalidSaleData)

				var validationErr *selling.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Equal(t, tt.field, validationErr.Field)
			})
		}
	})

	t.Run("deve aceitar nome com exatamente 100 caracteres", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSaleRepository(ctrl)
		service := selling.NewService(repo)

		repo.EXPECT().
			Insert(gomock.Any()).
			DoAndReturn(func(sale *domain.Sale) (*domain.Sale, error) {
				sale.ID = 3
				return sale, nil
			})

		_, err := service.Create(selling.CreateSaleInput{
			Name:      strings.Repeat("a", 100),
			UnitPrice: 10,
			Quantity:  1,
		})

		require.NoError(t, err)
	})

	t.Run("deve embrulhar falha do repositório", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSaleRepository(ctrl)
		service := selling.NewService(repo)

		repo.EXPECT().
			Insert(gomock.Any()).
			Return(nil, errors.New("connection refused"))

		sale, err := service.Create(selling.CreateSaleInput{
			Name:      "Camisa",
			UnitPrice: 29.90,
			Quantity:  10,
		})

		assert.Nil(t, sale)
		require.Error(t, err)

		var saleErr *selling.SaleError
		require.ErrorAs(t, err, &saleErr)
		assert.Equal(t, apiErrors.ErrDatabaseOperation, saleErr.Code)
	})
}

func TestCreateBatch(t *testing.T) {
	t.Run("deve inserir o lote inteiro em uma transação", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSaleRepository(ctrl)
		service := selling.NewService(repo)

		repo.EXPECT().
			InsertBatch(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, sales []*domain.Sale) error {
				require.Len(t, sales, 2)
				assert.Equal(t, "Camisa", sales[0].Name)
				assert.Equal(t, "Boné", sales[1].Name)
				return nil
			})

		sales, err := service.CreateBatch(context.Background(), []selling.CreateSaleInput{
			{Name: "Camisa", UnitPrice: 29.90, Quantity: 10},
			{Name: "Boné", UnitPrice: 19.90, Quantity: 15},
		})

		require.NoError(t, err)
		assert.Len(t, sales, 2)
	})

	t.Run("deve rejeitar o lote inteiro apontando a venda inválida", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSaleRepository(ctrl)
		service := selling.NewService(repo)

		sales, err := service.CreateBatch(context.Background(), []selling.CreateSaleInput{
			{Name: "Camisa", UnitPrice: 29.90, Quantity: 10},
			{Name: "Boné", UnitPrice: 0, Quantity: 15},
		})

		assert.Nil(t, sales)
		require.Error(t, err)
		assert.ErrorIs(t, err, selling.ErrInvalidSaleData)
		assert.Contains(t, err.Error(), "venda 2")
	})

	t.Run("deve rejeitar lote vazio", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSaleRepository(ctrl)
		service := selling.NewService(repo)

		sales, err := service.CreateBatch(context.Background(), nil)

		assert.Nil(t, sales)
		assert.ErrorIs(t, err, selling.ErrInvalidSaleData)
	})
}

func TestGet(t *testing.T) {
	t.Run("deve devolver a venda encontrada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSaleRepository(ctrl)
		service := selling.NewService(repo)

		repo.EXPECT().
			FindByID(7).
			Return(&domain.Sale{ID: 7, Name: "Camisa", UnitPrice: 29.90, Quantity: 10}, nil)

		sale, err := service.Get(7)

		require.NoError(t, err)
		assert.Equal(t, 7, sale.ID)
	})

	t.Run("deve devolver ErrSaleNotFound quando a venda não existe", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSaleRepository(ctrl)
		service := selling.NewService(repo)

		repo.EXPECT().FindByID(99).Return(nil, nil)

		sale, err := service.Get(99)

		assert.Nil(t, sale)
		assert.ErrorIs(t, err, selling.ErrSaleNotFound)
	})
}

func TestUpdate(t *testing.T) {
	existing := func() *domain.Sale {
		return &domain.Sale{
			ID:        5,
			Name:      "Camisa",
			UnitPrice: 29.90,
			Quantity:  10,
			SoldAt:    time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC),
		}
	}

	t.Run("deve atualizar apenas os campos informados", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSaleRepository(ctrl)
		service := selling.NewService(repo)

		repo.EXPECT().FindByID(5).Return(existing(), nil)
		repo.EXPECT().
			Update(gomock.Any()).
			DoAndReturn(func(sale *domain.Sale) error {
				assert.Equal(t, "Camisa", sale.Name)
				assert.Equal(t, 34.90, sale.UnitPrice)
				assert.Equal(t, 10, sale.Quantity)
				return nil
			})

		sale, err := service.Update(5, selling.UpdateSaleInput{
			UnitPrice: ptr(34.90),
		})

		require.NoError(t, err)
		assert.Equal(t, 34.90, sale.UnitPrice)
	})

	t.Run("deve rejeitar campo inválido sem persistir nada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSaleRepository(ctrl)
		service := selling.NewService(repo)

		repo.EXPECT().FindByID(5).Return(existing(), nil)

		sale, err := service.Update(5, selling.UpdateSaleInput{
			Name:     ptr("Calça"),
			Quantity: ptr(-1),
		})

		assert.Nil(t, sale)
		require.Error(t, err)

		var validationErr *selling.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "quantity", validationErr.Field)
	})

	t.Run("deve devolver ErrSaleNotFound para id inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSaleRepository(ctrl)
		service := selling.NewService(repo)

		repo.EXPECT().FindByID(99).Return(nil, nil)

		sale, err := service.Update(99, selling.UpdateSaleInput{
			UnitPrice: ptr(34.90),
		})

		assert.Nil(t, sale)
		assert.ErrorIs(t, err, selling.ErrSaleNotFound)
	})
}

func TestDelete(t *testing.T) {
	t.Run("deve remover venda existente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSaleRepository(ctrl)
		service := selling.NewService(repo)

		repo.EXPECT().Delete(5).Return(true, nil)

		assert.NoError(t, service.Delete(5))
	})

	t.Run("deve devolver ErrSaleNotFound quando nada foi removido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSaleRepository(ctrl)
		service := selling.NewService(repo)

		repo.EXPECT().Delete(99).Return(false, nil)

		assert.ErrorIs(t, service.Delete(99), selling.ErrSaleNotFound)
	})
}

func TestSearchByName(t *testing.T) {
	t.Run("deve delegar a busca por substring ao repositório", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSaleRepository(ctrl)
		service := selling.NewService(repo)

		repo.EXPECT().
			FindByNameContains("cam").
			Return([]*domain.Sale{{ID: 1, Name: "Camisa"}}, nil)

		sales, err := service.SearchByName("cam")

		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, "Camisa", sales[0].Name)
	})
}

func TestStatistics(t *testing.T) {
	t.Run("deve consolidar contagem, faturamento e médias", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSaleRepository(ctrl)
		service := selling.NewService(repo)

		repo.EXPECT().FindAll().Return([]*domain.Sale{
			{ID: 1, Name: "Camisa", UnitPrice: 29.90, Quantity: 10},
			{ID: 2, Name: "Calça", UnitPrice: 89.90, Quantity: 5},
			{ID: 3, Name: "Boné", UnitPrice: 19.90, Quantity: 15},
		}, nil)

		stats, err := service.Statistics()

		require.NoError(t, err)
		assert.Equal(t, 3, stats.SalesCount)
		assert.InDelta(t, 1047.00, stats.TotalRevenue, 0.001)
		assert.Equal(t, 30, stats.TotalQuantity)
		assert.InDelta(t, 46.566666, stats.AveragePrice, 0.001)
		assert.InDelta(t, 10.0, stats.AverageQuantity, 0.001)
	})

	t.Run("deve devolver estatísticas zeradas para ledger vazio", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockSaleRepository(ctrl)
		service := selling.NewService(repo)

		repo.EXPECT().FindAll().Return(nil, nil)

		stats, err := service.Statistics()

		require.NoError(t, err)
		assert.Zero(t, stats.SalesCount)
		assert.Zero(t, stats.TotalRevenue)
		assert.Zero(t, stats.AveragePrice)
	})
}
