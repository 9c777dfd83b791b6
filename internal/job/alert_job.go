package job

import (
	"Huntboard/internal/pkg/logger"
	"Huntboard/internal/service"
	"context"

	"github.com/google/uuid"
)

// AlertJob 每 5 分钟评估一次告警规则
type AlertJob struct {
	automation service.AutomationService
}

func NewAlertJob(automation service.AutomationService) *AlertJob {
	return &AlertJob{automation: automation}
}

func (s *AlertJob) Run() {
	traceID := "job-alert-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)
	s.automation.ScanRules(ctx)
}
