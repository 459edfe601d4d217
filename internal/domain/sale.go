package domain

import "time"

// Sale representa uma venda registrada no ledger.
// O ID é atribuído pelo banco na criação e nunca muda depois disso.
type Sale struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	SoldAt    time.Time `json:"sold_at"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Revenue calcula o faturamento desta venda (preço unitário x quantidade).
// Valor derivado, nunca persistido.
func (s *Sale) Revenue() float64 {
	return s.UnitPrice * float64(s.Quantity)
}

// SalesStatistics são as estatísticas básicas sobre todas as vendas registradas.
// Ledger vazio produz a struct zerada (sem divisão por zero).
type SalesStatistics struct {
	SalesCount      int     `json:"sales_count"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalQuantity   int     `json:"total_quantity"`
	AveragePrice    float64 `json:"average_price"`
	AverageQuantity float64 `json:"average_quantity"`
}
