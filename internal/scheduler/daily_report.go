// Package scheduler contém o agendamento de geração periódica de relatórios
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-manager-api/internal/config"
	"github.com/vfg2006/sales-manager-api/internal/usecases/reporting"
)

type DailyReportConfig struct {
	CronSchedule string
	Enabled      bool
}

// DailyReportService gera o relatório-resumo de vendas uma vez por dia.
type DailyReportService struct {
	scheduler          *gocron.Scheduler
	reportService      reporting.ReportService
	config             DailyReportConfig
	runMutex           sync.Mutex
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastReportPath     string
}

func NewDailyReportService(reportService reporting.ReportService, cfg *config.Config) *DailyReportService {
	reportConfig := DailyReportConfig{
		CronSchedule: cfg.DailyReport.CronSchedule,
		Enabled:      cfg.DailyReport.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": reportConfig.CronSchedule,
		"enabled":       reportConfig.Enabled,
	}).Info("Configuração do agendador de relatório diário carregada")

	return &DailyReportService{
		scheduler:     scheduler,
		reportService: reportService,
		config:        reportConfig,
	}
}

func (s *DailyReportService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de relatório diário desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de relatório diário")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunNow(); err != nil {
			logrus.WithError(err).Error("Erro na geração do relatório diário")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar geração do relatório diário: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de relatório diário")
		s.scheduler.Stop()
	}()

	return nil
}

// RunNow gera o relatório imediatamente. Uma execução por vez; o mutex
// protege contra o cron e um disparo manual correrem juntos.
func (s *DailyReportService) RunNow() (string, error) {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	s.lastRunStartedAt = time.Now()

	path, err := s.reportService.GenerateSummaryReport()
	if err != nil {
		return "", err
	}

	s.lastRunCompletedAt = time.Now()
	s.lastReportPath = path

	logrus.WithFields(logrus.Fields{
		"path":     path,
		"duration": s.lastRunCompletedAt.Sub(s.lastRunStartedAt).String(),
	}).Info("Relatório diário gerado")

	return path, nil
}

// Status expõe o estado da última execução para o endpoint de diagnóstico.
func (s *DailyReportService) Status() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	return map[string]any{
		"enabled":               s.config.Enabled,
		"cron_schedule":         s.config.CronSchedule,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_report_path":      s.lastReportPath,
	}
}
