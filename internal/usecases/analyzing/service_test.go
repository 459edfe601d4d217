package analyzing_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-manager-api/internal/config"
	"github.com/vfg2006/sales-manager-api/internal/domain"
	"github.com/vfg2006/sales-manager-api/internal/usecases/analyzing"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T, threshold float64) (analyzing.AnalysisService, *mocks.MockSaleRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSaleRepository(ctrl)

	cfg := &config.Config{}
	cfg.Analysis.LowCostThreshold = threshold

	return analyzing.NewService(repo, cfg), repo
}

func TestServiceLowCost(t *testing.T) {
	base := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	snapshot := []*domain.Sale{
		{ID: 1, Name: "Camisa", UnitPrice: 29.90, Quantity: 10, SoldAt: base},
		{ID: 2, Name: "Boné", UnitPrice: 19.90, Quantity: 15, SoldAt: base.AddDate(0, 0, 1)},
	}

	t.Run("deve usar o limite configurado quando nenhum é informado", func(t *testing.T) {
		service, repo := newService(t, 25.0)
		repo.EXPECT().FindAll().Return(snapshot, nil)

		report, err := service.LowCost(nil)

		require.NoError(t, err)
		assert.Equal(t, 25.0, report.Threshold)
		assert.Equal(t, 1, report.ProductCount)
	})

	t.Run("deve preferir o limite informado na chamada", func(t *testing.T) {
		service, repo := newService(t, 25.0)
		repo.EXPECT().FindAll().Return(snapshot, nil)

		custom := 50.0
		report, err := service.LowCost(&custom)

		require.NoError(t, err)
		assert.Equal(t, 50.0, report.Threshold)
		assert.Equal(t, 2, report.ProductCount)
	})

	t.Run("deve cair no limite padrão quando a configuração é inválida", func(t *testing.T) {
		service, repo := newService(t, 0)
		repo.EXPECT().FindAll().Return(snapshot, nil)

		report, err := service.LowCost(nil)

		require.NoError(t, err)
		assert.Equal(t, analyzing.DefaultLowCostThreshold, report.Threshold)
	})
}

func TestServiceDashboard(t *testing.T) {
	t.Run("deve montar todas as seções a partir de um único snapshot", func(t *testing.T) {
		service, repo := newService(t, 20.0)

		base := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
		repo.EXPECT().FindAll().Return([]*domain.Sale{
			{ID: 1, Name: "Camisa", UnitPrice: 29.90, Quantity: 10, SoldAt: base},
			{ID: 2, Name: "Calça", UnitPrice: 89.90, Quantity: 5, SoldAt: base.AddDate(0, 0, 1)},
			{ID: 3, Name: "Boné", UnitPrice: 19.90, Quantity: 15, SoldAt: base.AddDate(0, 0, 2)},
		}, nil).Times(1)

		dashboard, err := service.Dashboard()

		require.NoError(t, err)
		require.NotNil(t, dashboard.Revenue)
		require.NotNil(t, dashboard.LowCost)
		require.NotNil(t, dashboard.AboveAverage)
		require.NotNil(t, dashboard.ByProduct)
		require.NotNil(t, dashboard.Overview)
		require.NotNil(t, dashboard.Trend)

		assert.InDelta(t, 1047.00, dashboard.Revenue.Total, 0.001)
		assert.InDelta(t, dashboard.Revenue.Total, dashboard.Overview.TotalRevenue, 0.001)
		assert.Equal(t, dashboard.Revenue.ItemCount, dashboard.Overview.SalesCount)
	})

	t.Run("deve propagar falha do repositório", func(t *testing.T) {
		service, repo := newService(t, 20.0)
		repo.EXPECT().FindAll().Return(nil, errors.New("connection refused"))

		dashboard, err := service.Dashboard()

		assert.Nil(t, dashboard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "snapshot")
	})
}
