package job

import (
	"Huntboard/internal/pkg/logger"
	"Huntboard/internal/service"
	"context"

	"github.com/google/uuid"
)

// AutomationTaskJob 每分钟驱动一次自动化任务扫描
type AutomationTaskJob struct {
	automation service.AutomationService
}

func NewAutomationTaskJob(automation service.AutomationService) *AutomationTaskJob {
	return &AutomationTaskJob{automation: automation}
}

func (s *AutomationTaskJob) Run() {
	traceID := "job-automation-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)
	s.automation.ScanTasks(ctx)
}
