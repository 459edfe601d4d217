package analyzing

import (
	"fmt"

	"github.com/vfg2006/sales-manager-api/infrastructure/repository"
	"github.com/vfg2006/sales-manager-api/internal/config"
	"github.com/vfg2006/sales-manager-api/internal/domain"
)

// AnalysisService expõe as análises sobre o ledger. Cada chamada tira um
// único snapshot (FindAll) e roda as funções puras sobre ele — nunca
// reconsulta o banco no meio de um cálculo.
type AnalysisService interface {
	Revenue() (*domain.RevenueReport, error)
	LowCost(threshold *float64) (*domain.LowCostReport, error)
	AboveAverage() (*domain.AboveAverageReport, error)
	ByProduct() (*domain.ProductGroupReport, error)
	Overview() (*domain.GlobalStatistics, error)
	Trend() (*domain.TrendReport, error)
	Dashboard() (*domain.Dashboard, error)
}

type Service struct {
	saleRepo         repository.SaleRepository
	defaultThreshold float64
}

func NewService(saleRepo repository.SaleRepository, cfg *config.Config) AnalysisService {
	threshold := cfg.Analysis.LowCostThreshold
	if threshold <= 0 {
		threshold = DefaultLowCostThreshold
	}

	return &Service{
		saleRepo:         saleRepo,
		defaultThreshold: threshold,
	}
}

func (s *Service) snapshot() ([]*domain.Sale, error) {
	sales, err := s.saleRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar snapshot de vendas: %w", err)
	}
	return sales, nil
}

func (s *Service) Revenue() (*domain.RevenueReport, error) {
	sales, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return TotalRevenue(sales), nil
}

func (s *Service) LowCost(threshold *float64) (*domain.LowCostReport, error) {
	sales, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	limit := s.defaultThreshold
	if threshold != nil && *threshold > 0 {
		limit = *threshold
	}

	return LowCost(sales, limit), nil
}

func (s *Service) AboveAverage() (*domain.AboveAverageReport, error) {
	sales, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return AboveAverage(sales), nil
}

func (s *Service) ByProduct() (*domain.ProductGroupReport, error) {
	sales, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return ByProduct(sales), nil
}

func (s *Service) Overview() (*domain.GlobalStatistics, error) {
	sales, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return GlobalStatistics(sales), nil
}

func (s *Service) Trend() (*domain.TrendReport, error) {
	sales, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return Trend(sales), nil
}

// Dashboard calcula todas as análises sobre o mesmo snapshot, garantindo
// consistência interna entre as seções.
func (s *Service) Dashboard() (*domain.Dashboard, error) {
	sales, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		Revenue:      TotalRevenue(sales),
		LowCost:      LowCost(sales, s.defaultThreshold),
		AboveAverage: AboveAverage(sales),
		ByProduct:    ByProduct(sales),
		Overview:     GlobalStatistics(sales),
		Trend:        Trend(sales),
	}, nil
}
