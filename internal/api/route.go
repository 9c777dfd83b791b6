package api

import (
	"Huntboard/internal/api/middleware"
	"Huntboard/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
				authGroup.PUT("/info", group.UserHandler.UpdateUserInfo)
				authGroup.PUT("/password", group.UserHandler.ChangePassword)
				authGroup.POST("/avatar", group.UserHandler.UploadAvatar)
				authGroup.GET("/sessions", group.UserHandler.GetRecentSessions)
			}
		}

		appGroup := apiGroup.Group("/applications")
		appGroup.Use(middleware.AuthMiddleware())
		{
			appGroup.POST("", group.ApplicationHandler.Create)
			appGroup.GET("", group.ApplicationHandler.List)
			appGroup.GET("/search", group.ApplicationHandler.Search)
			appGroup.GET("/companies/suggest", group.ApplicationHandler.SuggestCompanies)
			appGroup.GET("/:id", group.ApplicationHandler.Get)
			appGroup.PUT("/:id", group.ApplicationHandler.Update)
			appGroup.DELETE("/:id", group.ApplicationHandler.Delete)
			appGroup.PUT("/:id/status", group.ApplicationHandler.ChangeStatus)
			appGroup.POST("/:id/communications", group.ApplicationHandler.AddCommunication)
			appGroup.POST("/:id/attachments", group.ApplicationHandler.UploadAttachment)
			appGroup.GET("/:id/attachments/url", group.ApplicationHandler.AttachmentURL)
		}

		resumeGroup := apiGroup.Group("/resumes")
		resumeGroup.Use(middleware.AuthMiddleware())
		{
			resumeGroup.POST("", group.ResumeHandler.Create)
			resumeGroup.GET("", group.ResumeHandler.List)
			resumeGroup.GET("/:id", group.ResumeHandler.Get)
			resumeGroup.PUT("/:id", group.ResumeHandler.Update)
			resumeGroup.DELETE("/:id", group.ResumeHandler.Delete)
		}

		interviewGroup := apiGroup.Group("/interviews")
		interviewGroup.Use(middleware.AuthMiddleware())
		{
			interviewGroup.POST("", group.InterviewHandler.Schedule)
			interviewGroup.GET("", group.InterviewHandler.ListByApplication)
			interviewGroup.GET("/upcoming", group.InterviewHandler.ListUpcoming)
			interviewGroup.GET("/:id", group.InterviewHandler.Get)
			interviewGroup.PUT("/:id/outcome", group.InterviewHandler.RecordOutcome)
			interviewGroup.PUT("/:id/reschedule", group.InterviewHandler.Reschedule)
			interviewGroup.DELETE("/:id", group.InterviewHandler.Delete)
			interviewGroup.GET("/:id/ics", group.InterviewHandler.ExportICS)
		}

		analyticsGroup := apiGroup.Group("/analytics")
		analyticsGroup.Use(middleware.AuthMiddleware())
		{
			analyticsGroup.GET("/dashboard", group.AnalyticsHandler.Dashboard)
			analyticsGroup.GET("/user", group.AnalyticsHandler.UserReport)
			analyticsGroup.GET("/company", group.AnalyticsHandler.CompanyReport)
			analyticsGroup.GET("/history", group.AnalyticsHandler.History)
			analyticsGroup.POST("/refresh", group.AnalyticsHandler.Refresh)

			adminGroup := analyticsGroup.Group("")
			adminGroup.Use(middleware.CheckRoles("ADMIN"))
			{
				adminGroup.GET("/cache/stats", group.AnalyticsHandler.CacheStats)
			}
		}

		// 自动化任务与告警规则仅管理员可配置
		automationGroup := apiGroup.Group("/automation")
		automationGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles("ADMIN"))
		{
			automationGroup.POST("/tasks", group.AutomationHandler.CreateTask)
			automationGroup.GET("/tasks", group.AutomationHandler.ListTasks)
			automationGroup.DELETE("/tasks/:id", group.AutomationHandler.DeleteTask)
			automationGroup.POST("/rules", group.AutomationHandler.CreateRule)
			automationGroup.GET("/rules", group.AutomationHandler.ListRules)
			automationGroup.DELETE("/rules/:id", group.AutomationHandler.DeleteRule)
		}

		aiGroup := apiGroup.Group("/ai")
		{
			// 薪资建议不强制登录，登录用户会带上档案里的经验年限
			aiGroup.POST("/salary-suggest", middleware.AuthOptionalMiddleware(), group.AIHandler.SalarySuggest)

			aiAuthGroup := aiGroup.Group("")
			aiAuthGroup.Use(middleware.AuthMiddleware())
			{
				aiAuthGroup.POST("/job-match", group.AIHandler.JobMatch)
				aiAuthGroup.POST("/resume-review/:resume_id", group.AIHandler.ResumeReview)
			}
		}

		importGroup := apiGroup.Group("/import")
		importGroup.Use(middleware.AuthMiddleware())
		{
			importGroup.POST("/posting", group.ImportHandler.ImportPosting)
			importGroup.GET("/draft", group.ImportHandler.LastDraft)
		}

		// 管理端用户管理
		adminUserGroup := apiGroup.Group("/admin/users")
		adminUserGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles("ADMIN"))
		{
			adminUserGroup.PUT("/:id/tier", group.UserHandler.ChangeTier)
			adminUserGroup.DELETE("/:id", group.UserHandler.DeleteUser)
		}
	}

	return r
}
