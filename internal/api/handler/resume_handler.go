package handler

import (
	"Huntboard/internal/api/dto"
	"Huntboard/internal/pkg/response"
	"Huntboard/internal/pkg/util"
	"Huntboard/internal/service"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	resumeSvc service.ResumeService
}

func NewResumeHandler(resumeSvc service.ResumeService) *ResumeHandler {
	return &ResumeHandler{resumeSvc: resumeSvc}
}

func (s *ResumeHandler) Create(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var baseDTO dto.ResumeBaseDTO
	err := c.ShouldBind(&baseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&baseDTO); err != nil {
		response.Error(c, err)
		return
	}
	resumeDTO, err := s.resumeSvc.Create(c.Request.Context(), userID, &baseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resumeDTO)
}

func (s *ResumeHandler) Get(c *gin.Context) {
	userID := c.GetUint64("user_id")
	resumeDTO, err := s.resumeSvc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resumeDTO)
}

func (s *ResumeHandler) List(c *gin.Context) {
	userID := c.GetUint64("user_id")
	list, err := s.resumeSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *ResumeHandler) Update(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var baseDTO dto.ResumeBaseDTO
	err := c.ShouldBind(&baseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&baseDTO); err != nil {
		response.Error(c, err)
		return
	}
	err = s.resumeSvc.Update(c.Request.Context(), userID, c.Param("id"), &baseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ResumeHandler) Delete(c *gin.Context) {
	userID := c.GetUint64("user_id")
	err := s.resumeSvc.Delete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
