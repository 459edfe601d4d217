// Package reporting gera relatórios HTML a partir das análises do ledger.
// Os gráficos do sistema original ficaram de fora; o relatório é texto
// templateado, pronto para o operador abrir no navegador.
package reporting

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-manager-api/internal/config"
	"github.com/vfg2006/sales-manager-api/internal/domain"
	"github.com/vfg2006/sales-manager-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-manager-api/pkg/utils"
)

type ReportService interface {
	GenerateSummaryReport() (string, error)
}

type Service struct {
	analysisService analyzing.AnalysisService
	outputDir       string
}

func NewService(analysisService analyzing.AnalysisService, cfg *config.Config) ReportService {
	return &Service{
		analysisService: analysisService,
		outputDir:       cfg.Report.OutputDir,
	}
}

type summaryData struct {
	GeneratedAt string
	Overview    *domain.GlobalStatistics
	Trend       *domain.TrendReport
	LowCost     *domain.LowCostReport
	Products    []*domain.ProductGroup
}

// GenerateSummaryReport calcula o dashboard sobre um único snapshot e
// escreve o relatório HTML no diretório configurado. Retorna o caminho
// do arquivo gerado.
func (s *Service) GenerateSummaryReport() (string, error) {
	dashboard, err := s.analysisService.Dashboard()
	if err != nil {
		return "", fmt.Errorf("erro ao calcular análises para o relatório: %w", err)
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("erro ao criar diretório de relatórios: %w", err)
	}

	reportID, err := utils.GenerateID()
	if err != nil {
		return "", fmt.Errorf("erro ao gerar identificador do relatório: %w", err)
	}

	filename := fmt.Sprintf("relatorio_vendas_%s_%s.html", time.Now().Format("2006-01-02"), reportID)
	path := filepath.Join(s.outputDir, filename)

	data := summaryData{
		GeneratedAt: time.Now().Format("02/01/2006 15:04"),
		Overview:    roundOverview(dashboard.Overview),
		Trend:       dashboard.Trend,
		LowCost:     dashboard.LowCost,
		Products:    orderedProducts(dashboard.ByProduct),
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("erro ao criar arquivo de relatório: %w", err)
	}
	defer file.Close()

	if err := summaryTemplate.Execute(file, data); err != nil {
		return "", fmt.Errorf("erro ao renderizar relatório: %w", err)
	}

	logrus.WithField("path", path).Info("Relatório de vendas gerado")
	return path, nil
}

// roundOverview arredonda os valores exibidos para duas casas; os valores
// crus continuam disponíveis só pela API.
func roundOverview(overview *domain.GlobalStatistics) *domain.GlobalStatistics {
	if overview == nil {
		return nil
	}

	rounded := *overview
	rounded.TotalRevenue = utils.RoundWithTwoDecimalPlace(overview.TotalRevenue)
	rounded.AveragePrice = utils.RoundWithTwoDecimalPlace(overview.AveragePrice)
	rounded.AverageQuantity = utils.RoundWithTwoDecimalPlace(overview.AverageQuantity)
	return &rounded
}

func orderedProducts(report *domain.ProductGroupReport) []*domain.ProductGroup {
	if report == nil {
		return nil
	}

	products := make([]*domain.ProductGroup, 0, len(report.ProductNames))
	for _, name := range report.ProductNames {
		group := *report.Products[name]
		group.TotalRevenue = utils.RoundWithTwoDecimalPlace(group.TotalRevenue)
		group.AveragePrice = utils.RoundWithTwoDecimalPlace(group.AveragePrice)
		products = append(products, &group)
	}
	return products
}

var summaryTemplate = template.Must(template.New("summary").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Relatório de Vendas</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #343a40; }
h1 { color: #2e86ab; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: left; }
th { background: #f8f9fa; }
</style>
</head>
<body>
<h1>Relatório de Vendas</h1>
<p>Gerado em {{.GeneratedAt}}</p>

<h2>Visão Geral</h2>
<table>
<tr><th>Total de vendas</th><td>{{.Overview.SalesCount}}</td></tr>
<tr><th>Faturamento total</th><td>R$ {{printf "%.2f" .Overview.TotalRevenue}}</td></tr>
<tr><th>Quantidade total</th><td>{{.Overview.TotalQuantity}}</td></tr>
<tr><th>Preço médio</th><td>R$ {{printf "%.2f" .Overview.AveragePrice}}</td></tr>
<tr><th>Quantidade média</th><td>{{printf "%.2f" .Overview.AverageQuantity}}</td></tr>
{{if .Overview.MostSoldProduct}}<tr><th>Produto mais vendido</th><td>{{.Overview.MostSoldProduct.Name}} ({{.Overview.MostSoldProduct.TotalQuantity}} un.)</td></tr>{{end}}
{{if .Overview.HighestRevenueProduct}}<tr><th>Maior faturamento</th><td>{{.Overview.HighestRevenueProduct.Name}} (R$ {{printf "%.2f" .Overview.HighestRevenueProduct.TotalRevenue}})</td></tr>{{end}}
</table>

<h2>Tendência</h2>
<table>
<tr><th>Preço</th><td>{{.Trend.PriceTrend}}</td></tr>
<tr><th>Quantidade</th><td>{{.Trend.QuantityTrend}}</td></tr>
<tr><th>Crescimento do faturamento</th><td>{{printf "%.2f" .Trend.RevenueGrowthPercent}}%</td></tr>
</table>

<h2>Produtos de Baixo Custo (abaixo de R$ {{printf "%.2f" .LowCost.Threshold}})</h2>
<p>{{.LowCost.ProductCount}} venda(s), faturamento de R$ {{printf "%.2f" .LowCost.TotalRevenue}}</p>

<h2>Por Produto</h2>
<table>
<tr><th>Produto</th><th>Quantidade</th><th>Faturamento</th><th>Preço médio</th></tr>
{{range .Products}}<tr><td>{{.Name}}</td><td>{{.TotalQuantity}}</td><td>R$ {{printf "%.2f" .TotalRevenue}}</td><td>R$ {{printf "%.2f" .AveragePrice}}</td></tr>
{{end}}</table>
</body>
</html>
`))
