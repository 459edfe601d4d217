package analyzing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-manager-api/internal/domain"
	"github.com/vfg2006/sales-manager-api/internal/usecases/analyzing"
)

func saleAt(id int, name string, unitPrice float64, quantity int, soldAt time.Time) *domain.Sale {
	return &domain.Sale{
		ID:        id,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		SoldAt:    soldAt,
	}
}

// storeSnapshot monta o cenário clássico da loja: camisa, calça e boné
// vendidos em dias consecutivos.
func storeSnapshot() []*domain.Sale {
	base := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	return []*domain.Sale{
		saleAt(1, "Camisa", 29.90, 10, base),
		saleAt(2, "Calça", 89.90, 5, base.AddDate(0, 0, 1)),
		saleAt(3, "Boné", 19.90, 15, base.AddDate(0, 0, 2)),
	}
}

func TestTotalRevenue(t *testing.T) {
	t.Run("deve somar o faturamento de todas as vendas", func(t *testing.T) {
		report := analyzing.TotalRevenue(storeSnapshot())

		assert.InDelta(t, 1047.00, report.Total, 0.001)
		assert.Equal(t, 3, report.ItemCount)

		require.Len(t, report.Items, 3)
		assert.Equal(t, "Camisa", report.Items[0].Name)
		assert.InDelta(t, 299.00, report.Items[0].Revenue, 0.001)
		assert.InDelta(t, 449.50, report.Items[1].Revenue, 0.001)
		assert.InDelta(t, 298.50, report.Items[2].Revenue, 0.001)
	})

	t.Run("deve devolver relatório zerado para snapshot vazio", func(t *testing.T) {
		report := analyzing.TotalRevenue(nil)

		assert.Zero(t, report.Total)
		assert.Zero(t, report.ItemCount)
		assert.Empty(t, report.Items)
	})

	t.Run("deve ser indiferente à ordem das vendas no total", func(t *testing.T) {
		sales := storeSnapshot()
		reversed := []*domain.Sale{sales[2], sales[1], sales[0]}

		assert.InDelta(t,
			analyzing.TotalRevenue(sales).Total,
			analyzing.TotalRevenue(reversed).Total,
			0.001,
		)
	})
}

func TestLowCost(t *testing.T) {
	t.Run("deve selecionar apenas vendas com preço abaixo do limite", func(t *testing.T) {
		report := analyzing.LowCost(storeSnapshot(), analyzing.DefaultLowCostThreshold)

		assert.Equal(t, 20.0, report.Threshold)
		assert.Equal(t, 1, report.ProductCount)
		assert.InDelta(t, 298.50, report.TotalRevenue, 0.001)

		require.Len(t, report.Products, 1)
		assert.Equal(t, "Boné", report.Products[0].Name)
	})

	t.Run("deve excluir venda com preço exatamente no limite", func(t *testing.T) {
		sales := []*domain.Sale{
			saleAt(1, "Caneta", 20.00, 3, time.Now()),
		}

		report := analyzing.LowCost(sales, 20.0)

		assert.Zero(t, report.ProductCount)
		assert.Empty(t, report.Products)
	})

	t.Run("deve aceitar limite customizado", func(t *testing.T) {
		report := analyzing.LowCost(storeSnapshot(), 50.0)

		assert.Equal(t, 2, report.ProductCount)
		assert.InDelta(t, 597.50, report.TotalRevenue, 0.001)
	})

	t.Run("deve devolver relatório zerado para snapshot vazio", func(t *testing.T) {
		report := analyzing.LowCost(nil, 20.0)

		assert.Zero(t, report.ProductCount)
		assert.Zero(t, report.TotalRevenue)
	})
}

func TestAboveAverage(t *testing.T) {
	t.Run("deve selecionar vendas com quantidade acima da média", func(t *testing.T) {
		report := analyzing.AboveAverage(storeSnapshot())

		assert.InDelta(t, 10.0, report.AverageQuantity, 0.001)
		assert.Equal(t, 1, report.ItemCount)
		assert.Equal(t, 3, report.TotalCount)

		require.Len(t, report.Items, 1)
		assert.Equal(t, "Boné", report.Items[0].Name)
		assert.InDelta(t, 5.0, report.Items[0].Difference, 0.001)
	})

	t.Run("deve excluir venda exatamente na média", func(t *testing.T) {
		base := time.Now()
		sales := []*domain.Sale{
			saleAt(1, "A", 10.0, 5, base),
			saleAt(2, "B", 10.0, 5, base),
		}

		report := analyzing.AboveAverage(sales)

		assert.InDelta(t, 5.0, report.AverageQuantity, 0.001)
		assert.Zero(t, report.ItemCount)
	})

	t.Run("deve devolver relatório zerado para snapshot vazio", func(t *testing.T) {
		report := analyzing.AboveAverage(nil)

		assert.Zero(t, report.AverageQuantity)
		assert.Zero(t, report.ItemCount)
		assert.Zero(t, report.TotalCount)
	})
}

func TestByProduct(t *testing.T) {
	t.Run("deve agrupar por nome preservando a ordem de chegada", func(t *testing.T) {
		base := time.Now()
		sales := []*domain.Sale{
			saleAt(1, "Camisa", 30.00, 2, base),
			saleAt(2, "Calça", 80.00, 1, base),
			saleAt(3, "Camisa", 40.00, 4, base),
		}

		report := analyzing.ByProduct(sales)

		assert.Equal(t, 2, report.ProductCount)
		assert.Equal(t, []string{"Camisa", "Calça"}, report.ProductNames)

		camisa := report.Products["Camisa"]
		require.NotNil(t, camisa)
		assert.Equal(t, 6, camisa.TotalQuantity)
		assert.InDelta(t, 220.00, camisa.TotalRevenue, 0.001)
		assert.Len(t, camisa.Transactions, 2)
	})

	t.Run("deve calcular preço médio sem ponderar pela quantidade", func(t *testing.T) {
		base := time.Now()
		sales := []*domain.Sale{
			saleAt(1, "Camisa", 10.00, 100, base),
			saleAt(2, "Camisa", 30.00, 1, base),
		}

		report := analyzing.ByProduct(sales)

		// média simples (10+30)/2, não a média ponderada
		assert.InDelta(t, 20.00, report.Products["Camisa"].AveragePrice, 0.001)
	})

	t.Run("deve tratar nomes com caixa diferente como produtos distintos", func(t *testing.T) {
		base := time.Now()
		sales := []*domain.Sale{
			saleAt(1, "Camisa", 30.00, 2, base),
			saleAt(2, "camisa", 30.00, 2, base),
		}

		report := analyzing.ByProduct(sales)

		assert.Equal(t, 2, report.ProductCount)
		assert.Contains(t, report.Products, "Camisa")
		assert.Contains(t, report.Products, "camisa")
	})

	t.Run("deve devolver relatório vazio para snapshot vazio", func(t *testing.T) {
		report := analyzing.ByProduct(nil)

		assert.Zero(t, report.ProductCount)
		assert.Empty(t, report.Products)
		assert.Empty(t, report.ProductNames)
	})
}

func TestGlobalStatistics(t *testing.T) {
	t.Run("deve consolidar estatísticas e destaques", func(t *testing.T) {
		stats := analyzing.GlobalStatistics(storeSnapshot())

		assert.Equal(t, 3, stats.SalesCount)
		assert.InDelta(t, 1047.00, stats.TotalRevenue, 0.001)
		assert.Equal(t, 30, stats.TotalQuantity)
		assert.InDelta(t, 46.566666, stats.AveragePrice, 0.001)
		assert.InDelta(t, 10.0, stats.AverageQuantity, 0.001)

		require.NotNil(t, stats.MostSoldProduct)
		assert.Equal(t, "Boné", stats.MostSoldProduct.Name)
		assert.Equal(t, 15, stats.MostSoldProduct.TotalQuantity)

		require.NotNil(t, stats.HighestRevenueProduct)
		assert.Equal(t, "Calça", stats.HighestRevenueProduct.Name)
		assert.InDelta(t, 449.50, stats.HighestRevenueProduct.TotalRevenue, 0.001)
	})

	t.Run("deve resolver empate pelo menor nome lexicográfico", func(t *testing.T) {
		base := time.Now()
		sales := []*domain.Sale{
			saleAt(1, "Zebra", 10.00, 5, base),
			saleAt(2, "Arara", 10.00, 5, base),
		}

		stats := analyzing.GlobalStatistics(sales)

		require.NotNil(t, stats.MostSoldProduct)
		assert.Equal(t, "Arara", stats.MostSoldProduct.Name)
		require.NotNil(t, stats.HighestRevenueProduct)
		assert.Equal(t, "Arara", stats.HighestRevenueProduct.Name)
	})

	t.Run("deve devolver estatísticas zeradas sem destaques para snapshot vazio", func(t *testing.T) {
		stats := analyzing.GlobalStatistics(nil)

		assert.Zero(t, stats.SalesCount)
		assert.Zero(t, stats.TotalRevenue)
		assert.Nil(t, stats.MostSoldProduct)
		assert.Nil(t, stats.HighestRevenueProduct)
	})
}

func TestTrend(t *testing.T) {
	t.Run("deve comparar a venda mais antiga com a mais recente", func(t *testing.T) {
		report := analyzing.Trend(storeSnapshot())

		assert.Equal(t, domain.TrendDecreasing, report.PriceTrend)
		assert.Equal(t, domain.TrendIncreasing, report.QuantityTrend)
		// (298.50 - 299.00) / 299.00 * 100
		assert.InDelta(t, -0.16722, report.RevenueGrowthPercent, 0.001)

		require.NotNil(t, report.PeriodStart)
		require.NotNil(t, report.PeriodEnd)
		assert.True(t, report.PeriodStart.Before(*report.PeriodEnd))
	})

	t.Run("deve ignorar a ordem de chegada do snapshot", func(t *testing.T) {
		sales := storeSnapshot()
		reversed := []*domain.Sale{sales[2], sales[1], sales[0]}

		report := analyzing.Trend(reversed)

		assert.Equal(t, domain.TrendDecreasing, report.PriceTrend)
		assert.Equal(t, domain.TrendIncreasing, report.QuantityTrend)
	})

	t.Run("deve indicar estabilidade quando extremos são iguais", func(t *testing.T) {
		base := time.Now()
		sales := []*domain.Sale{
			saleAt(1, "Camisa", 30.00, 2, base),
			saleAt(2, "Camisa", 30.00, 2, base.Add(time.Hour)),
		}

		report := analyzing.Trend(sales)

		assert.Equal(t, domain.TrendStable, report.PriceTrend)
		assert.Equal(t, domain.TrendStable, report.QuantityTrend)
		assert.Zero(t, report.RevenueGrowthPercent)
	})

	t.Run("deve sinalizar dados insuficientes com menos de duas vendas", func(t *testing.T) {
		for _, sales := range [][]*domain.Sale{
			nil,
			{saleAt(1, "Camisa", 30.00, 2, time.Now())},
		} {
			report := analyzing.Trend(sales)

			assert.Equal(t, domain.TrendInsufficientData, report.PriceTrend)
			assert.Equal(t, domain.TrendInsufficientData, report.QuantityTrend)
			assert.Zero(t, report.RevenueGrowthPercent)
			assert.Nil(t, report.PeriodStart)
			assert.Nil(t, report.PeriodEnd)
		}
	})
}
