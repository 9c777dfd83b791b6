package handler

import (
	"Huntboard/internal/api/dto"
	"Huntboard/internal/pkg/response"
	"Huntboard/internal/service"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	aiSvc service.AIService
}

func NewAIHandler(aiSvc service.AIService) *AIHandler {
	return &AIHandler{aiSvc: aiSvc}
}

func (s *AIHandler) JobMatch(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var reqDTO dto.JobMatchRequestDTO
	err := c.ShouldBind(&reqDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	matchDTO, err := s.aiSvc.AnalyzeJobMatch(c.Request.Context(), userID, &reqDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, matchDTO)
}

func (s *AIHandler) ResumeReview(c *gin.Context) {
	userID := c.GetUint64("user_id")
	reviewDTO, err := s.aiSvc.ReviewResume(c.Request.Context(), userID, c.Param("resume_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, reviewDTO)
}

func (s *AIHandler) SalarySuggest(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var reqDTO dto.SalarySuggestRequestDTO
	err := c.ShouldBind(&reqDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	suggestDTO, err := s.aiSvc.SuggestSalary(c.Request.Context(), userID, &reqDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, suggestDTO)
}
