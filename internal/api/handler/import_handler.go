package handler

import (
	"Huntboard/internal/api/dto"
	"Huntboard/internal/pkg/response"
	"Huntboard/internal/pkg/util"
	"Huntboard/internal/service"

	"github.com/gin-gonic/gin"
)

type ImportHandler struct {
	importSvc service.ImportService
}

func NewImportHandler(importSvc service.ImportService) *ImportHandler {
	return &ImportHandler{importSvc: importSvc}
}

// ImportPosting 抓取职位链接并生成投递草稿
func (s *ImportHandler) ImportPosting(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var reqDTO dto.ImportRequestDTO
	err := c.ShouldBind(&reqDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&reqDTO); err != nil {
		response.Error(c, err)
		return
	}
	draft, err := s.importSvc.ImportPosting(c.Request.Context(), userID, reqDTO.URL)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, draft)
}

func (s *ImportHandler) LastDraft(c *gin.Context) {
	userID := c.GetUint64("user_id")
	draft, err := s.importSvc.LastDraft(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, draft)
}
