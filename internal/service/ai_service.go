package service

import (
	"Huntboard/internal/api/config"
	"Huntboard/internal/api/dto"
	"Huntboard/internal/pkg/llm"
	"Huntboard/internal/pkg/mongo"
	"Huntboard/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const retryBackoff = 500 * time.Millisecond

// 简历诊断降级时的默认检查清单
var defaultReviewChecklist = []string{
	"为每段经历补充可量化的业务结果",
	"把技能列表按目标岗位的要求重新排序",
	"概述控制在三句话以内，突出差异点",
	"检查时间线是否存在未解释的空档",
}

// 薪资建议降级时的静态区间（按年，人民币）
var fallbackSalaryTable = map[string][2]int64{
	"junior": {120000, 220000},
	"mid":    {220000, 420000},
	"senior": {420000, 800000},
}

type AIService interface {
	AnalyzeJobMatch(ctx context.Context, userID uint64, reqDTO *dto.JobMatchRequestDTO) (*dto.JobMatchDTO, error)
	ReviewResume(ctx context.Context, userID uint64, resumeID string) (*dto.ResumeReviewDTO, error)
	SuggestSalary(ctx context.Context, userID uint64, reqDTO *dto.SalarySuggestRequestDTO) (*dto.SalarySuggestDTO, error)
}

type AIServiceImpl struct {
	caller     llm.Caller
	appRepo    mongo.ApplicationRepo
	resumeRepo mongo.ResumeRepo
	userRepo   repository.UserRepo
	maxRetries int
}

func NewAIService(caller llm.Caller, appRepo mongo.ApplicationRepo, resumeRepo mongo.ResumeRepo, userRepo repository.UserRepo) AIService {
	retries := config.Cfg.LLM.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	return &AIServiceImpl{
		caller:     caller,
		appRepo:    appRepo,
		resumeRepo: resumeRepo,
		userRepo:   userRepo,
		maxRetries: retries,
	}
}

// AnalyzeJobMatch 岗位匹配分析。重试耗尽后直接报错，
// 不返回编造的分数——宁缺毋滥。
func (s *AIServiceImpl) AnalyzeJobMatch(ctx context.Context, userID uint64, reqDTO *dto.JobMatchRequestDTO) (*dto.JobMatchDTO, error) {
	app, err := s.appRepo.GetByID(ctx, userID, reqDTO.ApplicationID)
	if err != nil || app == nil {
		return nil, ErrApplicationNotFound
	}
	resume, err := s.resumeRepo.GetByID(ctx, userID, reqDTO.ResumeID)
	if err != nil || resume == nil {
		return nil, ErrResumeNotFound
	}

	input := &llm.JobMatchInput{
		Position:      app.Position,
		Company:       app.Company,
		Description:   app.Notes,
		JobSkills:     app.Skills,
		ResumeSummary: resume.Summary,
		ResumeSkills:  resume.Skills,
	}
	for _, exp := range resume.Experience {
		input.RecentExperience = append(input.RecentExperience, exp.Role+" @ "+exp.Company)
		if len(input.RecentExperience) >= 3 {
			break
		}
	}
	if user, err := s.userRepo.GetUserById(ctx, userID); err == nil && user != nil {
		input.YearsExperience = user.UserDetail.YearsExperience
	}

	var result *llm.JobMatchResult
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		result, err = s.caller.JobMatch(ctx, input)
		if err == nil {
			return &dto.JobMatchDTO{
				Score:     result.Score,
				Strengths: result.Strengths,
				Gaps:      result.Gaps,
				Advice:    result.Advice,
			}, nil
		}
		log.WarnContext(ctx, "job match attempt failed", "attempt", attempt, "err", err)
		if attempt < s.maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBackoff * time.Duration(attempt)):
			}
		}
	}

	log.ErrorContext(ctx, "job match exhausted retries", "user_id", userID, "application_id", reqDTO.ApplicationID, "err", err)
	return nil, ErrMatchUnavailable
}

// ReviewResume 简历诊断，模型不可用时降级为默认检查清单
func (s *AIServiceImpl) ReviewResume(ctx context.Context, userID uint64, resumeID string) (*dto.ResumeReviewDTO, error) {
	resume, err := s.resumeRepo.GetByID(ctx, userID, resumeID)
	if err != nil || resume == nil {
		return nil, ErrResumeNotFound
	}

	resumeJSON, err := json.Marshal(resume)
	if err != nil {
		return nil, err
	}

	review, err := s.caller.ResumeReview(ctx, string(resumeJSON))
	if err != nil {
		log.WarnContext(ctx, "resume review degraded", "resume_id", resumeID, "err", err)
		return &dto.ResumeReviewDTO{
			Score:       degradedResumeScore(resume),
			Suggestions: defaultReviewChecklist,
			Degraded:    true,
		}, nil
	}

	return &dto.ResumeReviewDTO{
		Score:       review.Score,
		Issues:      review.Issues,
		Suggestions: review.Suggestions,
	}, nil
}

// SuggestSalary 薪资建议，模型不可用时降级为静态区间表
func (s *AIServiceImpl) SuggestSalary(ctx context.Context, userID uint64, reqDTO *dto.SalarySuggestRequestDTO) (*dto.SalarySuggestDTO, error) {
	years := 0
	if user, err := s.userRepo.GetUserById(ctx, userID); err == nil && user != nil {
		years = user.UserDetail.YearsExperience
	}

	suggestion, err := s.caller.SalarySuggest(ctx, reqDTO.Position, reqDTO.Location, years)
	if err != nil {
		log.WarnContext(ctx, "salary suggest degraded", "position", reqDTO.Position, "err", err)
		band := fallbackSalaryTable[seniorityBand(reqDTO.Position, years)]
		return &dto.SalarySuggestDTO{
			Min:      band[0],
			Max:      band[1],
			Currency: "CNY",
			Degraded: true,
		}, nil
	}

	return &dto.SalarySuggestDTO{
		Min:       suggestion.Min,
		Max:       suggestion.Max,
		Currency:  suggestion.Currency,
		Rationale: suggestion.Rationale,
	}, nil
}

// degradedResumeScore 只基于区块完整度粗算，明确标记为降级结果
func degradedResumeScore(resume *mongo.Resume) int {
	score := 40
	summary, skills, experience, education := resume.SectionsComplete()
	for _, ok := range []bool{summary, skills, experience, education} {
		if ok {
			score += 10
		}
	}
	return score
}

func seniorityBand(position string, years int) string {
	lower := strings.ToLower(position)
	switch {
	case years >= 8 || strings.Contains(lower, "senior") || strings.Contains(lower, "staff") || strings.Contains(lower, "资深"):
		return "senior"
	case years >= 3 || strings.Contains(lower, "mid"):
		return "mid"
	default:
		return "junior"
	}
}
