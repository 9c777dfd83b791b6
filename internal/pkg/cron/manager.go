package cron

import (
	"Huntboard/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine            *cron.Cron
	dailyMetricJob    *job.DailyMetricJob
	sessionCleanupJob *job.SessionCleanupJob
	automationTaskJob *job.AutomationTaskJob
	alertJob          *job.AlertJob
}

func NewCronManager(
	dailyMetricJob *job.DailyMetricJob,
	sessionCleanupJob *job.SessionCleanupJob,
	automationTaskJob *job.AutomationTaskJob,
	alertJob *job.AlertJob,
) *Manager {
	return &Manager{
		engine:            cron.New(cron.WithSeconds()),
		dailyMetricJob:    dailyMetricJob,
		sessionCleanupJob: sessionCleanupJob,
		automationTaskJob: automationTaskJob,
		alertJob:          alertJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@daily", s.dailyMetricJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@every 1h", s.sessionCleanupJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@every 1m", s.automationTaskJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@every 5m", s.alertJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
