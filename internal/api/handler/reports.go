package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-manager-api/internal/scheduler"
	"github.com/vfg2006/sales-manager-api/pkg/apiErrors"
)

// GenerateSummaryReport dispara a geração imediata do relatório-resumo
func GenerateSummaryReport(service *scheduler.DailyReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path, err := service.RunNow()
		if err != nil {
			logrus.WithError(err).Error("Erro ao gerar relatório sob demanda")
			apiErrors.WriteError(w, apiErrors.ErrReportGeneration, "Erro ao gerar relatório", nil)
			return
		}

		writeJSON(w, map[string]string{
			"path": path,
		})
	}
}

// GetReportStatus retorna o estado da última geração de relatório
func GetReportStatus(service *scheduler.DailyReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, service.Status())
	}
}
