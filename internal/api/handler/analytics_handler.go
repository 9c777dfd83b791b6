package handler

import (
	"Huntboard/internal/pkg/response"
	"Huntboard/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsSvc service.AnalyticsService
}

func NewAnalyticsHandler(analyticsSvc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

func (s *AnalyticsHandler) Dashboard(c *gin.Context) {
	userID := c.GetUint64("user_id")
	metrics, err := s.analyticsSvc.DashboardMetrics(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, metrics)
}

func (s *AnalyticsHandler) UserReport(c *gin.Context) {
	userID := c.GetUint64("user_id")
	report, err := s.analyticsSvc.UserAnalytics(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}

func (s *AnalyticsHandler) CompanyReport(c *gin.Context) {
	userID := c.GetUint64("user_id")
	company := c.Query("company")
	if company == "" {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	report, err := s.analyticsSvc.CompanyAnalytics(c.Request.Context(), userID, company)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}

// History 每日活动快照序列，默认取最近 30 天
func (s *AnalyticsHandler) History(c *gin.Context) {
	userID := c.GetUint64("user_id")
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	history, err := s.analyticsSvc.ActivityHistory(c.Request.Context(), userID, days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, history)
}

// Refresh 主动失效当前用户的报表缓存，下一次查询重新聚合
func (s *AnalyticsHandler) Refresh(c *gin.Context) {
	userID := c.GetUint64("user_id")
	s.analyticsSvc.InvalidateUser(userID)
	response.Success(c, nil)
}

func (s *AnalyticsHandler) CacheStats(c *gin.Context) {
	response.Success(c, s.analyticsSvc.CacheStats())
}
