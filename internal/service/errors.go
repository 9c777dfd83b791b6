package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrUserNotFound            = errors.New("用户不存在")
	ErrUserBan                 = errors.New("用户已被封禁")
	ErrUserExist               = errors.New("用户已存在")
	ErrUserUsernameExist       = errors.New("用户名已存在")
	ErrUserEmailExist          = errors.New("邮箱已注册")
	ErrPasswordIncorrect       = errors.New("密码错误")
	ErrMissingLoginCredentials = errors.New("缺少登录凭据")
	ErrFileNotSupported        = errors.New("不支持的文件类型")
	ErrFileNotExist            = errors.New("文件不存在")
	ErrApplicationNotFound     = errors.New("投递记录不存在")
	ErrStatusInvalid           = errors.New("无效的投递状态")
	ErrResumeNotFound          = errors.New("简历不存在")
	ErrInterviewNotFound       = errors.New("面试安排不存在")
	ErrTaskNotFound            = errors.New("自动化任务不存在")
	ErrRuleNotFound            = errors.New("告警规则不存在")
	ErrComparatorInvalid       = errors.New("无效的比较符")
	ErrMetricInvalid           = errors.New("无效的指标名称")
	ErrMatchUnavailable        = errors.New("匹配分析暂时不可用，请稍后重试")
	ErrImportFailed            = errors.New("职位页面导入失败")
	UnauthorizedError          = errors.New("权限不足")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrUserNotFound:            NotFound,
	ErrUserBan:                 Unauthorized,
	ErrUserExist:               BadRequest,
	ErrUserUsernameExist:       BadRequest,
	ErrUserEmailExist:          BadRequest,
	ErrPasswordIncorrect:       Unauthorized,
	ErrMissingLoginCredentials: Unauthorized,
	ErrFileNotSupported:        BadRequest,
	ErrFileNotExist:            NotFound,
	ErrApplicationNotFound:     NotFound,
	ErrStatusInvalid:           BadRequest,
	ErrResumeNotFound:          NotFound,
	ErrInterviewNotFound:       NotFound,
	ErrTaskNotFound:            NotFound,
	ErrRuleNotFound:            NotFound,
	ErrComparatorInvalid:       BadRequest,
	ErrMetricInvalid:           BadRequest,
	ErrMatchUnavailable:        InternalServerError,
	ErrImportFailed:            BadRequest,
	UnauthorizedError:          Forbidden,
	UnExpectedError:            InternalServerError,
}
