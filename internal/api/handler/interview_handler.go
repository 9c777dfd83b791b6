package handler

import (
	"Huntboard/internal/api/dto"
	"Huntboard/internal/pkg/response"
	"Huntboard/internal/pkg/util"
	"Huntboard/internal/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewSvc service.InterviewService
}

func NewInterviewHandler(interviewSvc service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviewSvc: interviewSvc}
}

func (s *InterviewHandler) Schedule(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var baseDTO dto.InterviewBaseDTO
	err := c.ShouldBind(&baseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&baseDTO); err != nil {
		response.Error(c, err)
		return
	}
	interviewDTO, err := s.interviewSvc.Schedule(c.Request.Context(), userID, &baseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, interviewDTO)
}

func (s *InterviewHandler) Get(c *gin.Context) {
	userID := c.GetUint64("user_id")
	interviewDTO, err := s.interviewSvc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, interviewDTO)
}

func (s *InterviewHandler) ListByApplication(c *gin.Context) {
	userID := c.GetUint64("user_id")
	applicationID := c.Query("application_id")
	if applicationID == "" {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	list, err := s.interviewSvc.ListByApplication(c.Request.Context(), userID, applicationID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *InterviewHandler) ListUpcoming(c *gin.Context) {
	userID := c.GetUint64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	list, err := s.interviewSvc.ListUpcoming(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *InterviewHandler) RecordOutcome(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var outcomeDTO dto.InterviewOutcomeDTO
	err := c.ShouldBind(&outcomeDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&outcomeDTO); err != nil {
		response.Error(c, err)
		return
	}
	err = s.interviewSvc.RecordOutcome(c.Request.Context(), userID, c.Param("id"), &outcomeDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *InterviewHandler) Reschedule(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var reDTO dto.InterviewRescheduleDTO
	err := c.ShouldBind(&reDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	err = s.interviewSvc.Reschedule(c.Request.Context(), userID, c.Param("id"), &reDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *InterviewHandler) Delete(c *gin.Context) {
	userID := c.GetUint64("user_id")
	err := s.interviewSvc.Delete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ExportICS 导出单场面试的日历文件
func (s *InterviewHandler) ExportICS(c *gin.Context) {
	userID := c.GetUint64("user_id")
	ics, err := s.interviewSvc.ExportICS(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="interview.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}
