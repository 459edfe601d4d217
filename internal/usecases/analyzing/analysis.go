// Package analyzing contém o motor de análise de vendas: funções puras
// sobre um snapshot já carregado do ledger. Nenhuma função consulta o
// banco nem falha para entrada vazia ou degenerada.
package analyzing

import (
	"sort"

	"github.com/vfg2006/sales-manager-api/internal/domain"
)

// DefaultLowCostThreshold é o limite padrão de preço para produto de baixo custo.
const DefaultLowCostThreshold = 20.0

// TotalRevenue calcula o faturamento total e o detalhamento por item,
// preservando a ordem do snapshot.
func TotalRevenue(sales []*domain.Sale) *domain.RevenueReport {
	report := &domain.RevenueReport{
		Items: make([]*domain.RevenueItem, 0, len(sales)),
	}

	for _, sale := range sales {
		revenue := sale.Revenue()
		report.Total += revenue
		report.Items = append(report.Items, &domain.RevenueItem{
			ID:        sale.ID,
			Name:      sale.Name,
			UnitPrice: sale.UnitPrice,
			Quantity:  sale.Quantity,
			Revenue:   revenue,
			SoldAt:    sale.SoldAt,
		})
	}

	report.ItemCount = len(report.Items)
	return report
}

// LowCost seleciona as vendas com preço unitário estritamente abaixo do limite.
func LowCost(sales []*domain.Sale, threshold float64) *domain.LowCostReport {
	report := &domain.LowCostReport{
		Threshold: threshold,
		Products:  make([]*domain.RevenueItem, 0),
	}

	for _, sale := range sales {
		if sale.UnitPrice >= threshold {
			continue
		}

		revenue := sale.Revenue()
		report.TotalRevenue += revenue
		report.Products = append(report.Products, &domain.RevenueItem{
			ID:        sale.ID,
			Name:      sale.Name,
			UnitPrice: sale.UnitPrice,
			Quantity:  sale.Quantity,
			Revenue:   revenue,
			SoldAt:    sale.SoldAt,
		})
	}

	report.ProductCount = len(report.Products)
	return report
}

// AboveAverage identifica as vendas com quantidade estritamente acima da
// média do snapshot. Uma venda exatamente na média fica de fora.
func AboveAverage(sales []*domain.Sale) *domain.AboveAverageReport {
	report := &domain.AboveAverageReport{
		Items:      make([]*domain.AboveAverageItem, 0),
		TotalCount: len(sales),
	}

	if len(sales) == 0 {
		return report
	}

	totalQuantity := 0
	for _, sale := range sales {
		totalQuantity += sale.Quantity
	}
	average := float64(totalQuantity) / float64(len(sales))
	report.AverageQuantity = average

	for _, sale := range sales {
		if float64(sale.Quantity) <= average {
			continue
		}

		report.Items = append(report.Items, &domain.AboveAverageItem{
			ID:              sale.ID,
			Name:            sale.Name,
			Quantity:        sale.Quantity,
			AverageQuantity: average,
			Difference:      float64(sale.Quantity) - average,
			Revenue:         sale.Revenue(),
			SoldAt:          sale.SoldAt,
		})
	}

	report.ItemCount = len(report.Items)
	return report
}

// ByProduct agrupa as vendas pelo nome exato do produto. A chave é
// case-sensitive de propósito: "Camisa" e "camisa" formam grupos
// distintos, comportamento herdado do sistema original.
func ByProduct(sales []*domain.Sale) *domain.ProductGroupReport {
	report := &domain.ProductGroupReport{
		Products:     make(map[string]*domain.ProductGroup),
		ProductNames: make([]string, 0),
	}

	for _, sale := range sales {
		group, ok := report.Products[sale.Name]
		if !ok {
			group = &domain.ProductGroup{
				Name:         sale.Name,
				Transactions: make([]*domain.ProductTransaction, 0, 1),
			}
			report.Products[sale.Name] = group
			report.ProductNames = append(report.ProductNames, sale.Name)
		}

		group.TotalQuantity += sale.Quantity
		group.TotalRevenue += sale.Revenue()
		group.Transactions = append(group.Transactions, &domain.ProductTransaction{
			ID:        sale.ID,
			UnitPrice: sale.UnitPrice,
			Quantity:  sale.Quantity,
			SoldAt:    sale.SoldAt,
		})
	}

	// Preço médio por produto: média simples dos preços unitários das
	// transações, sem ponderar pela quantidade.
	for _, group := range report.Products {
		var priceSum float64
		for _, tx := range group.Transactions {
			priceSum += tx.UnitPrice
		}
		group.AveragePrice = priceSum / float64(len(group.Transactions))
	}

	report.ProductCount = len(report.Products)
	return report
}

// GlobalStatistics consolida as estatísticas gerais do snapshot, incluindo
// o produto mais vendido e o de maior faturamento. Empates são resolvidos
// pelo menor nome em ordem lexicográfica, para manter o resultado
// determinístico.
func GlobalStatistics(sales []*domain.Sale) *domain.GlobalStatistics {
	stats := &domain.GlobalStatistics{}
	if len(sales) == 0 {
		return stats
	}

	var priceSum float64
	for _, sale := range sales {
		stats.TotalRevenue += sale.Revenue()
		stats.TotalQuantity += sale.Quantity
		priceSum += sale.UnitPrice
	}

	stats.SalesCount = len(sales)
	stats.AveragePrice = priceSum / float64(len(sales))
	stats.AverageQuantity = float64(stats.TotalQuantity) / float64(len(sales))

	grouped := ByProduct(sales)

	var mostSold, highestRevenue *domain.ProductGroup
	for _, name := range grouped.ProductNames {
		group := grouped.Products[name]

		if mostSold == nil ||
			group.TotalQuantity > mostSold.TotalQuantity ||
			(group.TotalQuantity == mostSold.TotalQuantity && group.Name < mostSold.Name) {
			mostSold = group
		}

		if highestRevenue == nil ||
			group.TotalRevenue > highestRevenue.TotalRevenue ||
			(group.TotalRevenue == highestRevenue.TotalRevenue && group.Name < highestRevenue.Name) {
			highestRevenue = group
		}
	}

	stats.MostSoldProduct = highlight(mostSold)
	stats.HighestRevenueProduct = highlight(highestRevenue)

	return stats
}

func highlight(group *domain.ProductGroup) *domain.ProductHighlight {
	if group == nil {
		return nil
	}

	return &domain.ProductHighlight{
		Name:          group.Name,
		TotalQuantity: group.TotalQuantity,
		TotalRevenue:  group.TotalRevenue,
	}
}

// Trend compara a venda mais antiga com a mais recente (dois pontos,
// não é regressão). Com menos de duas vendas devolve o sentinela de
// dados insuficientes.
func Trend(sales []*domain.Sale) *domain.TrendReport {
	if len(sales) < 2 {
		return &domain.TrendReport{
			PriceTrend:    domain.TrendInsufficientData,
			QuantityTrend: domain.TrendInsufficientData,
		}
	}

	ordered := make([]*domain.Sale, len(sales))
	copy(ordered, sales)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SoldAt.Before(ordered[j].SoldAt)
	})

	earliest := ordered[0]
	latest := ordered[len(ordered)-1]

	report := &domain.TrendReport{
		PriceTrend:    direction(earliest.UnitPrice, latest.UnitPrice),
		QuantityTrend: direction(float64(earliest.Quantity), float64(latest.Quantity)),
	}

	if earliestRevenue := earliest.Revenue(); earliestRevenue > 0 {
		report.RevenueGrowthPercent = (latest.Revenue() - earliestRevenue) / earliestRevenue * 100
	}

	periodStart := earliest.SoldAt
	periodEnd := latest.SoldAt
	report.PeriodStart = &periodStart
	report.PeriodEnd = &periodEnd

	return report
}

func direction(earliest, latest float64) string {
	switch {
	case latest > earliest:
		return domain.TrendIncreasing
	case latest < earliest:
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}
