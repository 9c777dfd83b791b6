package llm

import (
	"context"
	"errors"
	log "log/slog"

	"github.com/goccy/go-json"
	"github.com/tmc/langchaingo/llms"
)

var ErrEmptyResponse = errors.New("模型未返回内容")

// JobMatchInput 岗位匹配分析的入参
type JobMatchInput struct {
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Description string   `json:"description,omitempty"`
	JobSkills   []string `json:"job_skills,omitempty"`

	ResumeSummary    string   `json:"resume_summary,omitempty"`
	ResumeSkills     []string `json:"resume_skills,omitempty"`
	YearsExperience  int      `json:"years_experience,omitempty"`
	RecentExperience []string `json:"recent_experience,omitempty"`
}

// JobMatchResult 岗位匹配分析结果
type JobMatchResult struct {
	Score     int      `json:"score"`
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
	Advice    string   `json:"advice"`
}

// ResumeReviewResult 简历诊断结果
type ResumeReviewResult struct {
	Score       int      `json:"score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// SalarySuggestion 薪资建议
type SalarySuggestion struct {
	Min       int64  `json:"min"`
	Max       int64  `json:"max"`
	Currency  string `json:"currency"`
	Rationale string `json:"rationale"`
}

// PostingExtract 从职位页面文本中抽取的结构化字段
type PostingExtract struct {
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	Location    string   `json:"location"`
	SalaryMin   int64    `json:"salary_min"`
	SalaryMax   int64    `json:"salary_max"`
	Currency    string   `json:"currency"`
	Skills      []string `json:"skills"`
	Description string   `json:"description"`
}

// Caller 模型调用入口，单次调用不带重试，重试与降级由上层决定
type Caller interface {
	JobMatch(ctx context.Context, input *JobMatchInput) (*JobMatchResult, error)
	ResumeReview(ctx context.Context, resumeJSON string) (*ResumeReviewResult, error)
	SalarySuggest(ctx context.Context, position, location string, yearsExperience int) (*SalarySuggestion, error)
	ExtractPosting(ctx context.Context, pageText string) (*PostingExtract, error)
}

type callerImpl struct{}

func NewCaller() Caller {
	return &callerImpl{}
}

func (s *callerImpl) JobMatch(ctx context.Context, input *JobMatchInput) (*JobMatchResult, error) {
	result := &JobMatchResult{}
	if err := s.fetchInto(ctx, jobMatchPrompt, input, 0.2, result); err != nil {
		return nil, err
	}
	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}
	return result, nil
}

func (s *callerImpl) ResumeReview(ctx context.Context, resumeJSON string) (*ResumeReviewResult, error) {
	resp, err := fetchModel(ctx, resumeReviewPrompt, resumeJSON, 0.3)
	if err != nil {
		log.Error("AI大模型请求失败", "err", err)
		return nil, err
	}
	result := &ResumeReviewResult{}
	if err := decodeChoice(resp, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *callerImpl) SalarySuggest(ctx context.Context, position, location string, yearsExperience int) (*SalarySuggestion, error) {
	payload := map[string]interface{}{
		"position":         position,
		"location":         location,
		"years_experience": yearsExperience,
	}
	result := &SalarySuggestion{}
	if err := s.fetchInto(ctx, salarySuggestPrompt, payload, 0.2, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *callerImpl) ExtractPosting(ctx context.Context, pageText string) (*PostingExtract, error) {
	resp, err := fetchModel(ctx, postingExtractPrompt, pageText, 0.1)
	if err != nil {
		log.Error("AI大模型请求失败", "err", err)
		return nil, err
	}
	result := &PostingExtract{}
	if err := decodeChoice(resp, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *callerImpl) fetchInto(ctx context.Context, systemPrompt string, payload interface{}, temp float64, out interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		log.Error("AI大模型请求数据序列化失败", "err", err)
		return err
	}

	resp, err := fetchModel(ctx, systemPrompt, string(payloadJSON), temp)
	if err != nil {
		log.Error("AI大模型请求失败", "err", err)
		return err
	}

	return decodeChoice(resp, out)
}

func decodeChoice(resp *llms.ContentResponse, out interface{}) error {
	if resp == nil || len(resp.Choices) == 0 {
		return ErrEmptyResponse
	}
	cleaned := extractJSON(resp.Choices[0].Content)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		log.Error("AI大模型返回数据解析失败", "err", err)
		return err
	}
	return nil
}
