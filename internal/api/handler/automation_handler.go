package handler

import (
	"Huntboard/internal/api/dto"
	"Huntboard/internal/pkg/response"
	"Huntboard/internal/pkg/util"
	"Huntboard/internal/service"

	"github.com/gin-gonic/gin"
)

type AutomationHandler struct {
	automationSvc service.AutomationService
}

func NewAutomationHandler(automationSvc service.AutomationService) *AutomationHandler {
	return &AutomationHandler{automationSvc: automationSvc}
}

func (s *AutomationHandler) CreateTask(c *gin.Context) {
	var baseDTO dto.TaskBaseDTO
	err := c.ShouldBind(&baseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&baseDTO); err != nil {
		response.Error(c, err)
		return
	}
	taskDTO, err := s.automationSvc.RegisterTask(&baseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, taskDTO)
}

func (s *AutomationHandler) ListTasks(c *gin.Context) {
	response.Success(c, s.automationSvc.ListTasks())
}

func (s *AutomationHandler) DeleteTask(c *gin.Context) {
	err := s.automationSvc.RemoveTask(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AutomationHandler) CreateRule(c *gin.Context) {
	var baseDTO dto.RuleBaseDTO
	err := c.ShouldBind(&baseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&baseDTO); err != nil {
		response.Error(c, err)
		return
	}
	ruleDTO, err := s.automationSvc.RegisterRule(&baseDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ruleDTO)
}

func (s *AutomationHandler) ListRules(c *gin.Context) {
	response.Success(c, s.automationSvc.ListRules())
}

func (s *AutomationHandler) DeleteRule(c *gin.Context) {
	err := s.automationSvc.RemoveRule(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
