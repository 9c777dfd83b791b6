package handler

import (
	"Huntboard/internal/api/dto"
	"Huntboard/internal/pkg/response"
	"Huntboard/internal/pkg/util"
	"Huntboard/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	appSvc service.ApplicationService
}

func NewApplicationHandler(appSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc}
}

func (s *ApplicationHandler) Create(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var baseDTO dto.ApplicationBaseDTO
	err := c.ShouldBind(&baseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&baseDTO); err != nil {
		response.Error(c, err)
		return
	}
	appDTO, err := s.appSvc.Create(c.Request.Context(), userID, &baseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, appDTO)
}

func (s *ApplicationHandler) Get(c *gin.Context) {
	userID := c.GetUint64("user_id")
	appDTO, err := s.appSvc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, appDTO)
}

func (s *ApplicationHandler) List(c *gin.Context) {
	userID := c.GetUint64("user_id")
	status := c.Query("status")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	list, err := s.appSvc.List(c.Request.Context(), userID, status, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *ApplicationHandler) Update(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var baseDTO dto.ApplicationBaseDTO
	err := c.ShouldBind(&baseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&baseDTO); err != nil {
		response.Error(c, err)
		return
	}
	err = s.appSvc.Update(c.Request.Context(), userID, c.Param("id"), &baseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ApplicationHandler) ChangeStatus(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var changeDTO dto.ChangeStatusDTO
	err := c.ShouldBind(&changeDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	err = s.appSvc.ChangeStatus(c.Request.Context(), userID, c.Param("id"), &changeDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ApplicationHandler) AddCommunication(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var commDTO dto.CommunicationDTO
	err := c.ShouldBind(&commDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&commDTO); err != nil {
		response.Error(c, err)
		return
	}
	err = s.appSvc.AddCommunication(c.Request.Context(), userID, c.Param("id"), &commDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ApplicationHandler) Delete(c *gin.Context) {
	userID := c.GetUint64("user_id")
	err := s.appSvc.Delete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ApplicationHandler) Search(c *gin.Context) {
	userID := c.GetUint64("user_id")
	var searchDTO dto.ApplicationSearchDTO
	err := c.ShouldBindQuery(&searchDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&searchDTO); err != nil {
		response.Error(c, err)
		return
	}
	page, err := s.appSvc.Search(c.Request.Context(), userID, &searchDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *ApplicationHandler) SuggestCompanies(c *gin.Context) {
	userID := c.GetUint64("user_id")
	prefix := c.Query("prefix")
	if prefix == "" {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	companies, err := s.appSvc.SuggestCompanies(c.Request.Context(), userID, prefix)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, companies)
}

func (s *ApplicationHandler) UploadAttachment(c *gin.Context) {
	userID := c.GetUint64("user_id")
	file, err := c.FormFile("file")
	if err != nil || file == nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer func() {
		_ = reader.Close()
	}()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		response.Error(c, err)
		return
	}

	attDTO, err := s.appSvc.UploadAttachment(c.Request.Context(), userID, c.Param("id"), file.Filename, contentType, reader, file.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, attDTO)
}

func (s *ApplicationHandler) AttachmentURL(c *gin.Context) {
	userID := c.GetUint64("user_id")
	objectKey := c.Query("object_key")
	if objectKey == "" {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	url, err := s.appSvc.AttachmentURL(c.Request.Context(), userID, c.Param("id"), objectKey)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]string{
		"url": url,
	})
}
