package handler

import (
	"net/http"

	"github.com/vfg2006/sales-manager-api/internal/api/handler/router"
	"github.com/vfg2006/sales-manager-api/internal/scheduler"
	"github.com/vfg2006/sales-manager-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-manager-api/internal/usecases/selling"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

// Sales expõe o CRUD do ledger de vendas. A listagem aceita ?name= para
// busca por substring (case-insensitive) e ?from=/?to= para recorte de
// período, mantendo a mesma ordenação.
func Sales(service selling.SaleService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sales",
			Method:  http.MethodPost,
			Handler: CreateSale(service),
		},
		{
			Path:    "/v1/sales/batch",
			Method:  http.MethodPost,
			Handler: ImportSales(service),
		},
		{
			Path:    "/v1/sales",
			Method:  http.MethodGet,
			Handler: ListSales(service),
		},
		{
			Path:    "/v1/sales/:id",
			Method:  http.MethodGet,
			Handler: GetSale(service),
		},
		{
			Path:    "/v1/sales/:id",
			Method:  http.MethodPut,
			Handler: UpdateSale(service),
		},
		{
			Path:    "/v1/sales/:id",
			Method:  http.MethodDelete,
			Handler: DeleteSale(service),
		},
		{
			Path:    "/v1/statistics",
			Method:  http.MethodGet,
			Handler: GetStatistics(service),
		},
	}
}

func Analysis(service analyzing.AnalysisService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/analysis/revenue",
			Method:  http.MethodGet,
			Handler: GetRevenueAnalysis(service),
		},
		{
			Path:    "/v1/analysis/low-cost",
			Method:  http.MethodGet,
			Handler: GetLowCostAnalysis(service),
		},
		{
			Path:    "/v1/analysis/above-average",
			Method:  http.MethodGet,
			Handler: GetAboveAverageAnalysis(service),
		},
		{
			Path:    "/v1/analysis/by-product",
			Method:  http.MethodGet,
			Handler: GetByProductAnalysis(service),
		},
		{
			Path:    "/v1/analysis/overview",
			Method:  http.MethodGet,
			Handler: GetOverviewAnalysis(service),
		},
		{
			Path:    "/v1/analysis/trend",
			Method:  http.MethodGet,
			Handler: GetTrendAnalysis(service),
		},
		{
			Path:    "/v1/analysis/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(service),
		},
	}
}

func Reports(dailyReportService *scheduler.DailyReportService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports/summary",
			Method:  http.MethodPost,
			Handler: GenerateSummaryReport(dailyReportService),
		},
		{
			Path:    "/v1/reports/status",
			Method:  http.MethodGet,
			Handler: GetReportStatus(dailyReportService),
		},
	}
}
