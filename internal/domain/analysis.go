package domain

import "time"

// Direções possíveis para a análise de tendência.
const (
	TrendIncreasing       = "increasing"
	TrendDecreasing       = "decreasing"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
)

// RevenueItem é o detalhamento de faturamento de uma venda dentro do relatório total.
type RevenueItem struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Revenue   float64   `json:"revenue"`
	SoldAt    time.Time `json:"sold_at"`
}

// RevenueReport é o faturamento total com o detalhamento por item,
// na mesma ordem do snapshot de entrada.
type RevenueReport struct {
	Total     float64        `json:"total"`
	Items     []*RevenueItem `json:"items"`
	ItemCount int            `json:"item_count"`
}

// LowCostReport lista as vendas cujo preço unitário fica estritamente
// abaixo do limite configurado.
type LowCostReport struct {
	Threshold    float64        `json:"threshold"`
	Products     []*RevenueItem `json:"products"`
	ProductCount int            `json:"product_count"`
	TotalRevenue float64        `json:"total_revenue"`
}

// AboveAverageItem é uma venda com quantidade estritamente acima da média do snapshot.
type AboveAverageItem struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Quantity        int       `json:"quantity"`
	AverageQuantity float64   `json:"average_quantity"`
	Difference      float64   `json:"difference"`
	Revenue         float64   `json:"revenue"`
	SoldAt          time.Time `json:"sold_at"`
}

// AboveAverageReport identifica vendas acima da quantidade média.
// TotalCount guarda o tamanho do snapshot original, para que o consumidor
// derive "abaixo ou na média" por subtração.
type AboveAverageReport struct {
	AverageQuantity float64             `json:"average_quantity"`
	Items           []*AboveAverageItem `json:"items"`
	ItemCount       int                 `json:"item_count"`
	TotalCount      int                 `json:"total_count"`
}

// ProductTransaction é uma transação individual dentro de um grupo de produto.
type ProductTransaction struct {
	ID        int       `json:"id"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	SoldAt    time.Time `json:"sold_at"`
}

// ProductGroup agrega as vendas de um mesmo produto.
// AveragePrice é a média aritmética simples dos preços unitários das
// transações do grupo, sem ponderação por quantidade.
type ProductGroup struct {
	Name          string                `json:"name"`
	TotalQuantity int                   `json:"total_quantity"`
	TotalRevenue  float64               `json:"total_revenue"`
	AveragePrice  float64               `json:"average_price"`
	Transactions  []*ProductTransaction `json:"transactions"`
}

// ProductGroupReport agrupa as vendas pelo nome exato do produto
// (case-sensitive). ProductNames preserva a ordem de primeira aparição
// no snapshot, já que a iteração de map não é determinística.
type ProductGroupReport struct {
	Products     map[string]*ProductGroup `json:"products"`
	ProductNames []string                 `json:"product_names"`
	ProductCount int                      `json:"product_count"`
}

// ProductHighlight destaca um produto em uma estatística global
// (mais vendido ou maior faturamento).
type ProductHighlight struct {
	Name          string  `json:"name"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// GlobalStatistics reúne as estatísticas gerais do ledger inteiro.
// Produtos em destaque ficam nil quando não há vendas.
type GlobalStatistics struct {
	SalesCount            int               `json:"sales_count"`
	TotalRevenue          float64           `json:"total_revenue"`
	TotalQuantity         int               `json:"total_quantity"`
	AveragePrice          float64           `json:"average_price"`
	AverageQuantity       float64           `json:"average_quantity"`
	MostSoldProduct       *ProductHighlight `json:"most_sold_product"`
	HighestRevenueProduct *ProductHighlight `json:"highest_revenue_product"`
}

// TrendReport é a comparação de dois pontos (venda mais antiga x mais
// recente); não é uma regressão.
type TrendReport struct {
	PriceTrend           string     `json:"price_trend"`
	QuantityTrend        string     `json:"quantity_trend"`
	RevenueGrowthPercent float64    `json:"revenue_growth_percent"`
	PeriodStart          *time.Time `json:"period_start,omitempty"`
	PeriodEnd            *time.Time `json:"period_end,omitempty"`
}

// Dashboard combina todas as análises calculadas sobre um único snapshot.
type Dashboard struct {
	Revenue      *RevenueReport      `json:"revenue"`
	LowCost      *LowCostReport      `json:"low_cost"`
	AboveAverage *AboveAverageReport `json:"above_average"`
	ByProduct    *ProductGroupReport `json:"by_product"`
	Overview     *GlobalStatistics   `json:"overview"`
	Trend        *TrendReport        `json:"trend"`
}
