package api

import "Huntboard/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler        *handler.UserHandler
	ApplicationHandler *handler.ApplicationHandler
	ResumeHandler      *handler.ResumeHandler
	InterviewHandler   *handler.InterviewHandler
	AnalyticsHandler   *handler.AnalyticsHandler
	AutomationHandler  *handler.AutomationHandler
	AIHandler          *handler.AIHandler
	ImportHandler      *handler.ImportHandler
}
