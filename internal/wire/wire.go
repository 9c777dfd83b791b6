package wire

import (
	"Huntboard/internal/api"
	"Huntboard/internal/api/config"
	"Huntboard/internal/api/handler"
	"Huntboard/internal/job"
	"Huntboard/internal/pkg/cache"
	"Huntboard/internal/pkg/cron"
	"Huntboard/internal/pkg/es"
	"Huntboard/internal/pkg/llm"
	hbmongo "Huntboard/internal/pkg/mongo"
	"Huntboard/internal/pkg/webfetch"
	"Huntboard/internal/repository"
	"Huntboard/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router     *gin.Engine
	DB         *gorm.DB
	CronMgr    *cron.Manager
	Automation service.AutomationService
	Fetcher    webfetch.Fetcher
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	sessionRepo := repository.NewUserSessionRepo(db)
	metricRepo := repository.NewUserDailyMetricRepo(db)

	appRepo := hbmongo.NewApplicationRepo(mongoDB)
	resumeRepo := hbmongo.NewResumeRepo(mongoDB)
	interviewRepo := hbmongo.NewInterviewRepo(mongoDB)

	searchRepo := es.NewApplicationRepo(es.Client)

	reportCache := cache.NewReportCache(10 * time.Minute)
	caller := llm.NewCaller()
	fetcher := webfetch.NewFetcher()

	userService := service.NewUserService(userRepo, sessionRepo)
	applicationService := service.NewApplicationService(appRepo, searchRepo)
	resumeService := service.NewResumeService(resumeRepo)
	interviewService := service.NewInterviewService(interviewRepo, appRepo)
	analyticsService := service.NewAnalyticsService(appRepo, resumeRepo, interviewRepo, userRepo, sessionRepo, metricRepo, reportCache)
	aiService := service.NewAIService(caller, appRepo, resumeRepo, userRepo)
	importService := service.NewImportService(fetcher, caller)

	dailyMetricJob := job.NewDailyMetricJob(appRepo, interviewRepo, metricRepo)
	automationService := service.NewAutomationService(appRepo, reportCache, dailyMetricJob)

	handlers := &api.HandlersGroup{
		UserHandler:        handler.NewUserHandler(userService),
		ApplicationHandler: handler.NewApplicationHandler(applicationService),
		ResumeHandler:      handler.NewResumeHandler(resumeService),
		InterviewHandler:   handler.NewInterviewHandler(interviewService),
		AnalyticsHandler:   handler.NewAnalyticsHandler(analyticsService),
		AutomationHandler:  handler.NewAutomationHandler(automationService),
		AIHandler:          handler.NewAIHandler(aiService),
		ImportHandler:      handler.NewImportHandler(importService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(
		dailyMetricJob,
		job.NewSessionCleanupJob(sessionRepo),
		job.NewAutomationTaskJob(automationService),
		job.NewAlertJob(automationService),
	)

	return &ApplicationContainer{
		Router:     router,
		DB:         db,
		CronMgr:    cronMgr,
		Automation: automationService,
		Fetcher:    fetcher,
	}, nil
}
