package handler

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-manager-api/internal/usecases/analyzing"
	"github.com/vfg2006/sales-manager-api/pkg/apiErrors"
)

// GetRevenueAnalysis retorna o faturamento total com detalhamento por item
func GetRevenueAnalysis(service analyzing.AnalysisService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := service.Revenue()
		if err != nil {
			handleAnalysisError(w, err)
			return
		}

		writeJSON(w, report)
	}
}

// GetLowCostAnalysis retorna as vendas abaixo do limite de preço.
// Aceita ?threshold= para sobrescrever o limite configurado.
func GetLowCostAnalysis(service analyzing.AnalysisService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var threshold *float64

		if raw := r.URL.Query().Get("threshold"); raw != "" {
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil || value <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Limite de preço inválido", nil)
				return
			}
			threshold = &value
		}

		report, err := service.LowCost(threshold)
		if err != nil {
			handleAnalysisError(w, err)
			return
		}

		writeJSON(w, report)
	}
}

func GetAboveAverageAnalysis(service analyzing.AnalysisService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := service.AboveAverage()
		if err != nil {
			handleAnalysisError(w, err)
			return
		}

		writeJSON(w, report)
	}
}

func GetByProductAnalysis(service analyzing.AnalysisService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := service.ByProduct()
		if err != nil {
			handleAnalysisError(w, err)
			return
		}

		writeJSON(w, report)
	}
}

func GetOverviewAnalysis(service analyzing.AnalysisService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.Overview()
		if err != nil {
			handleAnalysisError(w, err)
			return
		}

		writeJSON(w, stats)
	}
}

func GetTrendAnalysis(service analyzing.AnalysisService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := service.Trend()
		if err != nil {
			handleAnalysisError(w, err)
			return
		}

		writeJSON(w, report)
	}
}

// GetDashboard retorna todas as análises calculadas sobre um único snapshot
func GetDashboard(service analyzing.AnalysisService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dashboard, err := service.Dashboard()
		if err != nil {
			handleAnalysisError(w, err)
			return
		}

		writeJSON(w, dashboard)
	}
}

func handleAnalysisError(w http.ResponseWriter, err error) {
	logrus.WithError(err).Error("Erro ao calcular análise de vendas")
	apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao calcular análise", nil)
}
